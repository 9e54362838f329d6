package memory

import (
	"context"

	"github.com/hairsol/booking-engine/internal/models"
	"github.com/hairsol/booking-engine/internal/outbox"
)

func (s *Store) ClaimBatch(
	ctx context.Context,
	limit int,
	publish func(events []models.OutboxEvent) error,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var idx []int
	var batch []models.OutboxEvent
	for i, ev := range s.outbox {
		if ev.PublishedAt != nil {
			continue
		}
		if limit > 0 && len(batch) >= limit {
			break
		}
		idx = append(idx, i)
		batch = append(batch, ev)
	}
	if len(batch) == 0 {
		return nil
	}

	if err := publish(batch); err != nil {
		return err
	}

	// published rows are dropped so the slice only holds pending events
	claimed := make(map[int]bool, len(idx))
	for _, i := range idx {
		claimed[i] = true
	}
	pending := s.outbox[:0]
	for i, ev := range s.outbox {
		if !claimed[i] {
			pending = append(pending, ev)
		}
	}
	s.outbox = pending
	return nil
}

var _ outbox.Store = (*Store)(nil)
