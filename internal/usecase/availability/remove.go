package availability

import (
	"context"
	"errors"

	"github.com/hairsol/booking-engine/internal/audit"
	domain "github.com/hairsol/booking-engine/internal/domain/availability"
	"github.com/hairsol/booking-engine/internal/domain/catalog"
	"github.com/hairsol/booking-engine/internal/httperr"
	"github.com/hairsol/booking-engine/internal/identity"
	"github.com/hairsol/booking-engine/internal/metrics"
)

// RemoveAvailability deletes a window without looking at the appointments
// booked inside it; those stay as they are.
type RemoveAvailability struct {
	catalog catalog.Repository
	repo    domain.Repository
	audit   *audit.Dispatcher
}

func NewRemoveAvailability(
	catalog catalog.Repository,
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RemoveAvailability {
	return &RemoveAvailability{
		catalog: catalog,
		repo:    repo,
		audit:   audit,
	}
}

func (uc *RemoveAvailability) Execute(
	ctx context.Context,
	p identity.Principal,
	windowID uint,
) (err error) {
	defer func() { metrics.RecordAvailability("remove", httperr.CodeOf(err)) }()

	provider, err := providerFor(ctx, uc.catalog, p)
	if err != nil {
		return err
	}

	w, err := ownedWindow(ctx, uc.repo, provider.ID, windowID)
	if err != nil {
		return err
	}

	err = uc.repo.InProviderDays(ctx, provider.ID, []string{w.Date}, func(tx domain.Repository) error {
		if err := tx.DeleteWindow(ctx, w.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return windowNotFound()
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ServiceProviderID: audit.Ptr(provider.ID),
		UserID:            audit.Ptr(p.UserID),
		Action:            audit.ActionAvailabilityRemoved,
		Entity:            audit.EntityAvailability,
		EntityID:          audit.Ptr(w.ID),
		Metadata:          domain.Slot{Date: w.Date, StartTime: w.StartTime, EndTime: w.EndTime},
	})

	return nil
}
