package audit

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/hairsol/booking-engine/internal/models"
)

type Filter struct {
	ServiceProviderID uint
	Action            string
	Entity            string
	From              *time.Time
	To                *time.Time
	Offset            int
	Limit             int
}

type Store interface {
	Write(ctx context.Context, log *models.AuditLog) error
	List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error)
}

type GormStore struct {
	db *gorm.DB
}

func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Write(ctx context.Context, log *models.AuditLog) error {
	return s.db.WithContext(ctx).Create(log).Error
}

func (s *GormStore) List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error) {
	q := s.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("service_provider_id = ?", f.ServiceProviderID)

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

var _ Store = (*GormStore)(nil)
