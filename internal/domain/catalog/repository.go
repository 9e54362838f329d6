package catalog

import (
	"context"
	"errors"

	"github.com/hairsol/booking-engine/internal/models"
)

var ErrNotFound = errors.New("catalog: not found")

// Repository is the read-only view of the provider/service catalog.
type Repository interface {
	GetProviderByUserID(ctx context.Context, userID uint) (*models.ServiceProvider, error)

	// GetProviderByBusinessName matches case-insensitively.
	GetProviderByBusinessName(ctx context.Context, name string) (*models.ServiceProvider, error)

	// GetServiceByName matches case-insensitively within the provider.
	GetServiceByName(ctx context.Context, providerID uint, name string) (*models.Service, error)
}
