package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/hairsol/booking-engine/internal/domain/availability"
	"github.com/hairsol/booking-engine/internal/models"
)

const windowIndexName = "ux_availability_window"

type AvailabilityGormRepository struct {
	db *gorm.DB
}

func NewAvailabilityGormRepository(db *gorm.DB) *AvailabilityGormRepository {
	return &AvailabilityGormRepository{db: db}
}

// --------------------------------------------------
// Transactions
// --------------------------------------------------

func (r *AvailabilityGormRepository) InProviderDays(
	ctx context.Context,
	providerID uint,
	dates []string,
	fn func(tx availability.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockProviderDays(tx, providerID, dates); err != nil {
			return err
		}
		return fn(&AvailabilityGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Windows
// --------------------------------------------------

func (r *AvailabilityGormRepository) GetWindow(
	ctx context.Context,
	id uint,
) (*models.AvailabilityWindow, error) {

	var w models.AvailabilityWindow
	if err := r.db.WithContext(ctx).First(&w, id).Error; err != nil {
		return nil, notFound(err, availability.ErrNotFound)
	}
	return &w, nil
}

func (r *AvailabilityGormRepository) ListWindowsByDate(
	ctx context.Context,
	providerID uint,
	date string,
) ([]models.AvailabilityWindow, error) {

	var windows []models.AvailabilityWindow
	if err := r.db.WithContext(ctx).
		Where("service_provider_id = ? AND date = ?", providerID, date).
		Order("start_time ASC").
		Find(&windows).Error; err != nil {
		return nil, err
	}
	return windows, nil
}

func (r *AvailabilityGormRepository) ListWindows(
	ctx context.Context,
	providerID uint,
	offset int,
	limit int,
) ([]models.AvailabilityWindow, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.AvailabilityWindow{}).
		Where("service_provider_id = ?", providerID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var windows []models.AvailabilityWindow
	if err := q.
		Order("date DESC").
		Order("start_time ASC").
		Offset(offset).
		Limit(limit).
		Find(&windows).Error; err != nil {
		return nil, 0, err
	}
	return windows, total, nil
}

func (r *AvailabilityGormRepository) CreateWindow(
	ctx context.Context,
	w *models.AvailabilityWindow,
) error {
	return mapWindowConflict(r.db.WithContext(ctx).Create(w).Error)
}

func (r *AvailabilityGormRepository) UpdateWindow(
	ctx context.Context,
	w *models.AvailabilityWindow,
) error {
	res := r.db.WithContext(ctx).
		Model(&models.AvailabilityWindow{}).
		Where("id = ?", w.ID).
		Updates(map[string]any{
			"date":       w.Date,
			"start_time": w.StartTime,
			"end_time":   w.EndTime,
		})
	if res.Error != nil {
		return mapWindowConflict(res.Error)
	}
	if res.RowsAffected == 0 {
		return availability.ErrNotFound
	}
	return nil
}

func (r *AvailabilityGormRepository) DeleteWindow(
	ctx context.Context,
	id uint,
) error {
	res := r.db.WithContext(ctx).Delete(&models.AvailabilityWindow{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return availability.ErrNotFound
	}
	return nil
}

// Compile-time check
var _ availability.Repository = (*AvailabilityGormRepository)(nil)
