package availability

import (
	"context"

	"github.com/hairsol/booking-engine/internal/audit"
	domain "github.com/hairsol/booking-engine/internal/domain/availability"
	"github.com/hairsol/booking-engine/internal/domain/catalog"
	"github.com/hairsol/booking-engine/internal/httperr"
	"github.com/hairsol/booking-engine/internal/identity"
	"github.com/hairsol/booking-engine/internal/metrics"
	"github.com/hairsol/booking-engine/internal/models"
	"github.com/hairsol/booking-engine/internal/timezone"
)

type WindowInput struct {
	Date      string
	StartTime string
	EndTime   string
}

type DeclareAvailability struct {
	catalog catalog.Repository
	repo    domain.Repository
	audit   *audit.Dispatcher
	clock   timezone.Clock
}

func NewDeclareAvailability(
	catalog catalog.Repository,
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *DeclareAvailability {
	return &DeclareAvailability{
		catalog: catalog,
		repo:    repo,
		audit:   audit,
		clock:   clock,
	}
}

func (uc *DeclareAvailability) Execute(
	ctx context.Context,
	p identity.Principal,
	in WindowInput,
) (w *models.AvailabilityWindow, err error) {
	defer func() { metrics.RecordAvailability("declare", httperr.CodeOf(err)) }()

	provider, err := providerFor(ctx, uc.catalog, p)
	if err != nil {
		return nil, err
	}

	slot, err := domain.Normalize(domain.Slot{
		Date:      in.Date,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
	}, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	w = &models.AvailabilityWindow{
		ServiceProviderID: provider.ID,
		Date:              slot.Date,
		StartTime:         slot.StartTime,
		EndTime:           slot.EndTime,
	}

	err = uc.repo.InProviderDays(ctx, provider.ID, []string{slot.Date}, func(tx domain.Repository) error {
		existing, err := tx.ListWindowsByDate(ctx, provider.ID, slot.Date)
		if err != nil {
			return err
		}
		if other := domain.FindOverlap(slot, existing, 0); other != nil {
			return overlapError(other)
		}
		return tx.CreateWindow(ctx, w)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ServiceProviderID: audit.Ptr(provider.ID),
		UserID:            audit.Ptr(p.UserID),
		Action:            audit.ActionAvailabilityDeclared,
		Entity:            audit.EntityAvailability,
		EntityID:          audit.Ptr(w.ID),
		Metadata:          slot,
	})

	return w, nil
}
