package repository

import (
	"fmt"
	"sort"

	"gorm.io/gorm"
)

// lockProviderDays takes a transaction scoped advisory lock per (provider,
// date). Keys are sorted so concurrent callers never wait on each other in
// opposite orders.
func lockProviderDays(tx *gorm.DB, providerID uint, dates []string) error {
	keys := providerDayKeys(providerID, dates)
	for _, key := range keys {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error; err != nil {
			return err
		}
	}
	return nil
}

func providerDayKeys(providerID uint, dates []string) []string {
	seen := make(map[string]struct{}, len(dates))
	keys := make([]string, 0, len(dates))
	for _, d := range dates {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		keys = append(keys, fmt.Sprintf("provider-day:%d:%s", providerID, d))
	}
	sort.Strings(keys)
	return keys
}
