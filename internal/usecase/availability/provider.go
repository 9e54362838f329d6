package availability

import (
	"context"
	"errors"

	"github.com/hairsol/booking-engine/internal/domain/catalog"
	"github.com/hairsol/booking-engine/internal/httperr"
	"github.com/hairsol/booking-engine/internal/identity"
	"github.com/hairsol/booking-engine/internal/models"
)

// providerFor resolves the provider profile of a professional caller.
func providerFor(
	ctx context.Context,
	cat catalog.Repository,
	p identity.Principal,
) (*models.ServiceProvider, error) {
	if err := p.RequireProfessional(); err != nil {
		return nil, err
	}

	provider, err := cat.GetProviderByUserID(ctx, p.UserID)
	if errors.Is(err, catalog.ErrNotFound) {
		return nil, httperr.NotFoundErr(httperr.CodeProviderProfileNotFound, "Service provider profile not found.")
	}
	if err != nil {
		return nil, err
	}
	return provider, nil
}

func providerByName(
	ctx context.Context,
	cat catalog.Repository,
	businessName string,
) (*models.ServiceProvider, error) {
	provider, err := cat.GetProviderByBusinessName(ctx, businessName)
	if errors.Is(err, catalog.ErrNotFound) {
		return nil, httperr.NotFoundErr(httperr.CodeProviderNotFound, "Service provider does not exist.")
	}
	if err != nil {
		return nil, err
	}
	return provider, nil
}

func windowNotFound() error {
	return httperr.NotFoundErr(httperr.CodeAvailabilityNotFound, "Availability not found.")
}

func overlapError(w *models.AvailabilityWindow) error {
	return httperr.Conflict(
		httperr.CodeOverlappingWindow,
		"The time slot overlaps with an existing availability ("+w.StartTime+" - "+w.EndTime+").",
	)
}
