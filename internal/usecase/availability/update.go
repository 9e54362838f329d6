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
	"github.com/hairsol/booking-engine/internal/models"
	"github.com/hairsol/booking-engine/internal/timezone"
)

// UpdateWindowInput carries a partial update; nil fields keep their value.
type UpdateWindowInput struct {
	Date      *string
	StartTime *string
	EndTime   *string
}

type UpdateAvailability struct {
	catalog catalog.Repository
	repo    domain.Repository
	audit   *audit.Dispatcher
	clock   timezone.Clock
}

func NewUpdateAvailability(
	catalog catalog.Repository,
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *UpdateAvailability {
	return &UpdateAvailability{
		catalog: catalog,
		repo:    repo,
		audit:   audit,
		clock:   clock,
	}
}

func (uc *UpdateAvailability) Execute(
	ctx context.Context,
	p identity.Principal,
	windowID uint,
	in UpdateWindowInput,
) (w *models.AvailabilityWindow, err error) {
	defer func() { metrics.RecordAvailability("update", httperr.CodeOf(err)) }()

	provider, err := providerFor(ctx, uc.catalog, p)
	if err != nil {
		return nil, err
	}

	current, err := ownedWindow(ctx, uc.repo, provider.ID, windowID)
	if err != nil {
		return nil, err
	}

	slot, err := domain.Normalize(domain.Slot{
		Date:      valueOr(in.Date, current.Date),
		StartTime: valueOr(in.StartTime, current.StartTime),
		EndTime:   valueOr(in.EndTime, current.EndTime),
	}, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	dates := []string{current.Date, slot.Date}
	err = uc.repo.InProviderDays(ctx, provider.ID, dates, func(tx domain.Repository) error {
		locked, err := ownedWindow(ctx, tx, provider.ID, windowID)
		if err != nil {
			return err
		}

		existing, err := tx.ListWindowsByDate(ctx, provider.ID, slot.Date)
		if err != nil {
			return err
		}
		if other := domain.FindOverlap(slot, existing, locked.ID); other != nil {
			return overlapError(other)
		}

		locked.Date, locked.StartTime, locked.EndTime = slot.Date, slot.StartTime, slot.EndTime
		if err := tx.UpdateWindow(ctx, locked); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return windowNotFound()
			}
			return err
		}
		w = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ServiceProviderID: audit.Ptr(provider.ID),
		UserID:            audit.Ptr(p.UserID),
		Action:            audit.ActionAvailabilityUpdated,
		Entity:            audit.EntityAvailability,
		EntityID:          audit.Ptr(w.ID),
		Metadata: map[string]any{
			"from": domain.Slot{Date: current.Date, StartTime: current.StartTime, EndTime: current.EndTime},
			"to":   slot,
		},
	})

	return w, nil
}

// ownedWindow hides other providers' windows behind the same not-found error.
func ownedWindow(
	ctx context.Context,
	repo domain.Repository,
	providerID uint,
	windowID uint,
) (*models.AvailabilityWindow, error) {
	w, err := repo.GetWindow(ctx, windowID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, windowNotFound()
	}
	if err != nil {
		return nil, err
	}
	if w.ServiceProviderID != providerID {
		return nil, windowNotFound()
	}
	return w, nil
}

func valueOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}
