package appointment

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	domain "github.com/hairsol/booking-engine/internal/domain/appointment"
	"github.com/hairsol/booking-engine/internal/metrics"
	"github.com/hairsol/booking-engine/internal/models"
	"github.com/hairsol/booking-engine/internal/timezone"
)

// maxRefreshAttempts bounds the reload loop when another writer keeps moving
// the same appointment; the status can only move forward, so a few rounds are
// always enough to observe the final state.
const maxRefreshAttempts = 4

// Refresher brings appointments up to date with the lifecycle before they are
// read. Every read path goes through it.
type Refresher struct {
	repo   domain.Repository
	clock  timezone.Clock
	logger *zap.Logger
}

func NewRefresher(
	repo domain.Repository,
	clock timezone.Clock,
	logger *zap.Logger,
) *Refresher {
	return &Refresher{
		repo:   repo,
		clock:  clock,
		logger: logger,
	}
}

// Refresh advances ap in place and persists the change with a compare-and-set
// on the status it was read with.
func (r *Refresher) Refresh(ctx context.Context, ap *models.Appointment) error {
	for attempt := 0; attempt < maxRefreshAttempts; attempt++ {
		from := domain.Status(ap.Status)
		if from.Terminal() {
			return nil
		}

		next, ok := domain.AdvanceAppointment(ap, r.clock.Now())
		if !ok {
			r.logger.Warn("skipping appointment with malformed schedule",
				zap.Uint("appointment_id", ap.ID),
				zap.String("date", ap.Date),
				zap.String("time", ap.Time),
			)
			return nil
		}
		if next.Status == from {
			return nil
		}

		moved, err := r.repo.AdvanceStatus(ctx, ap.ID, from, next.Status, next.Notes)
		if err != nil {
			return err
		}
		if moved {
			metrics.RecordTransition(string(from), string(next.Status))
			ap.Status, ap.Notes = string(next.Status), next.Notes
			return nil
		}

		// someone else moved it; start again from what is stored now
		fresh, err := r.repo.GetAppointment(ctx, ap.ID)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		*ap = *fresh
	}
	return nil
}

// RefreshDue advances every open appointment matched by f and returns how
// many changed status.
func (r *Refresher) RefreshDue(ctx context.Context, f domain.DueFilter) (int, error) {
	due, err := r.repo.ListDue(ctx, f)
	if err != nil {
		return 0, err
	}

	changed := 0
	for i := range due {
		before := due[i].Status
		if err := r.Refresh(ctx, &due[i]); err != nil {
			return changed, err
		}
		if due[i].Status != before {
			changed++
		}
	}
	return changed, nil
}

func (r *Refresher) RefreshClient(ctx context.Context, clientID uint) error {
	_, err := r.RefreshDue(ctx, domain.DueFilter{ClientID: clientID, Until: r.horizon()})
	return err
}

func (r *Refresher) RefreshProvider(ctx context.Context, providerID uint) error {
	_, err := r.RefreshDue(ctx, domain.DueFilter{ProviderID: providerID, Until: r.horizon()})
	return err
}

// horizon is the last date whose appointments can already have moved:
// anything after tomorrow is more than 50 minutes away.
func (r *Refresher) horizon() string {
	return timezone.DateOf(r.clock.Now().Add(24 * time.Hour))
}
