package availability

import (
	"context"

	domain "github.com/hairsol/booking-engine/internal/domain/availability"
	"github.com/hairsol/booking-engine/internal/domain/catalog"
	"github.com/hairsol/booking-engine/internal/dto"
	"github.com/hairsol/booking-engine/internal/httperr"
	"github.com/hairsol/booking-engine/internal/identity"
	"github.com/hairsol/booking-engine/internal/models"
	"github.com/hairsol/booking-engine/internal/timezone"
)

type AvailabilityQueries struct {
	catalog catalog.Repository
	repo    domain.Repository
}

func NewAvailabilityQueries(
	catalog catalog.Repository,
	repo domain.Repository,
) *AvailabilityQueries {
	return &AvailabilityQueries{
		catalog: catalog,
		repo:    repo,
	}
}

// Get returns one of the caller's own windows.
func (q *AvailabilityQueries) Get(
	ctx context.Context,
	p identity.Principal,
	windowID uint,
) (*models.AvailabilityWindow, error) {
	provider, err := providerFor(ctx, q.catalog, p)
	if err != nil {
		return nil, err
	}
	return ownedWindow(ctx, q.repo, provider.ID, windowID)
}

func (q *AvailabilityQueries) ListByProvider(
	ctx context.Context,
	businessName string,
	page dto.PageRequest,
) (dto.Page[models.AvailabilityWindow], error) {
	provider, err := providerByName(ctx, q.catalog, businessName)
	if err != nil {
		return dto.Page[models.AvailabilityWindow]{}, err
	}

	windows, total, err := q.repo.ListWindows(ctx, provider.ID, page.Offset(), page.PageSize)
	if err != nil {
		return dto.Page[models.AvailabilityWindow]{}, err
	}
	return dto.NewPage(page, windows, total), nil
}

func (q *AvailabilityQueries) ListByProviderDate(
	ctx context.Context,
	businessName string,
	date string,
) ([]models.AvailabilityWindow, error) {
	if date == "" {
		return nil, httperr.Validation(httperr.CodeMissingFields, "date is required.")
	}
	d, err := timezone.ParseDate(date)
	if err != nil {
		return nil, httperr.Validation(httperr.CodeInvalidFormat, "Invalid date format, expected YYYY-MM-DD.")
	}

	provider, err := providerByName(ctx, q.catalog, businessName)
	if err != nil {
		return nil, err
	}

	return q.repo.ListWindowsByDate(ctx, provider.ID, d)
}
