package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hairsol/booking-engine/internal/models"
	"github.com/hairsol/booking-engine/internal/outbox"
)

type OutboxGormRepository struct {
	db *gorm.DB
}

func NewOutboxGormRepository(db *gorm.DB) *OutboxGormRepository {
	return &OutboxGormRepository{db: db}
}

// ClaimBatch locks unpublished rows with SKIP LOCKED so several publishers can
// share the table.
func (r *OutboxGormRepository) ClaimBatch(
	ctx context.Context,
	limit int,
	publish func(events []models.OutboxEvent) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var events []models.OutboxEvent
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("published_at IS NULL").
			Order("id ASC").
			Limit(limit).
			Find(&events).Error; err != nil {
			return err
		}
		if len(events) == 0 {
			return nil
		}

		if err := publish(events); err != nil {
			return err
		}

		ids := make([]uint, len(events))
		for i, ev := range events {
			ids[i] = ev.ID
		}
		return tx.Model(&models.OutboxEvent{}).
			Where("id IN ?", ids).
			Update("published_at", time.Now().UTC()).Error
	})
}

// Compile-time check
var _ outbox.Store = (*OutboxGormRepository)(nil)
