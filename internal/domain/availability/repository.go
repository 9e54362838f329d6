package availability

import (
	"context"
	"errors"

	"github.com/hairsol/booking-engine/internal/models"
)

var ErrNotFound = errors.New("availability: window not found")

type Repository interface {
	// InProviderDays runs fn while holding the per (provider, date) locks for
	// every date given. Bookings take the same locks.
	InProviderDays(
		ctx context.Context,
		providerID uint,
		dates []string,
		fn func(tx Repository) error,
	) error

	GetWindow(ctx context.Context, id uint) (*models.AvailabilityWindow, error)

	ListWindowsByDate(
		ctx context.Context,
		providerID uint,
		date string,
	) ([]models.AvailabilityWindow, error)

	ListWindows(
		ctx context.Context,
		providerID uint,
		offset int,
		limit int,
	) ([]models.AvailabilityWindow, int64, error)

	CreateWindow(ctx context.Context, w *models.AvailabilityWindow) error
	UpdateWindow(ctx context.Context, w *models.AvailabilityWindow) error
	DeleteWindow(ctx context.Context, id uint) error
}
