package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/hairsol/booking-engine/internal/domain/catalog"
	"github.com/hairsol/booking-engine/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

func (r *CatalogGormRepository) GetProviderByUserID(
	ctx context.Context,
	userID uint,
) (*models.ServiceProvider, error) {

	var p models.ServiceProvider
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&p).Error; err != nil {
		return nil, notFound(err, catalog.ErrNotFound)
	}
	return &p, nil
}

func (r *CatalogGormRepository) GetProviderByBusinessName(
	ctx context.Context,
	name string,
) (*models.ServiceProvider, error) {

	var p models.ServiceProvider
	if err := r.db.WithContext(ctx).
		Where("LOWER(business_name) = LOWER(?)", name).
		First(&p).Error; err != nil {
		return nil, notFound(err, catalog.ErrNotFound)
	}
	return &p, nil
}

func (r *CatalogGormRepository) GetServiceByName(
	ctx context.Context,
	providerID uint,
	name string,
) (*models.Service, error) {

	var s models.Service
	if err := r.db.WithContext(ctx).
		Where("service_provider_id = ? AND LOWER(service_name) = LOWER(?)", providerID, name).
		Order("id ASC").
		First(&s).Error; err != nil {
		return nil, notFound(err, catalog.ErrNotFound)
	}
	return &s, nil
}

// Compile-time check
var _ catalog.Repository = (*CatalogGormRepository)(nil)
