package memory

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hairsol/booking-engine/internal/models"
)

// Seed is the catalog a memory store starts with; in production the catalog
// is owned by the accounts and provider-profile services.
type Seed struct {
	Users     []models.User            `json:"users"`
	Providers []models.ServiceProvider `json:"providers"`
	Services  []models.Service         `json:"services"`
}

func (s *Store) LoadSeed(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed: %w", err)
	}

	var seed Seed
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("decode seed: %w", err)
	}

	for _, u := range seed.Users {
		s.AddUser(u)
	}
	for _, p := range seed.Providers {
		s.AddProvider(p)
	}
	for _, svc := range seed.Services {
		s.AddService(svc)
	}
	return nil
}
