package memory

import (
	"context"
	"sort"

	"github.com/hairsol/booking-engine/internal/audit"
	"github.com/hairsol/booking-engine/internal/models"
)

func (s *Store) Write(ctx context.Context, log *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.ID = s.id()
	log.CreatedAt = s.now()
	s.auditLogs = append(s.auditLogs, *log)
	return nil
}

func (s *Store) List(ctx context.Context, f audit.Filter) ([]models.AuditLog, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.AuditLog
	for _, l := range s.auditLogs {
		if l.ServiceProviderID == nil || *l.ServiceProviderID != f.ServiceProviderID {
			continue
		}
		if f.Action != "" && l.Action != f.Action {
			continue
		}
		if f.Entity != "" && l.Entity != f.Entity {
			continue
		}
		if f.From != nil && l.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && !l.CreatedAt.Before(*f.To) {
			continue
		}
		out = append(out, l)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return page(out, f.Offset, f.Limit), int64(len(out)), nil
}

var _ audit.Store = (*Store)(nil)
