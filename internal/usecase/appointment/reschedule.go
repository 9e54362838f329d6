package appointment

import (
	"context"
	"errors"

	"github.com/hairsol/booking-engine/internal/audit"
	domain "github.com/hairsol/booking-engine/internal/domain/appointment"
	"github.com/hairsol/booking-engine/internal/httperr"
	"github.com/hairsol/booking-engine/internal/identity"
	"github.com/hairsol/booking-engine/internal/metrics"
	"github.com/hairsol/booking-engine/internal/models"
	"github.com/hairsol/booking-engine/internal/timezone"
)

// RescheduleInput carries the new schedule; a nil field keeps the current value.
type RescheduleInput struct {
	Date *string
	Time *string
}

type RescheduleAppointment struct {
	repo      domain.Repository
	refresher *Refresher
	audit     *audit.Dispatcher
	clock     timezone.Clock
}

func NewRescheduleAppointment(
	repo domain.Repository,
	refresher *Refresher,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:      repo,
		refresher: refresher,
		audit:     audit,
		clock:     clock,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	p identity.Principal,
	appointmentID uint,
	in RescheduleInput,
) (ap *models.Appointment, err error) {
	defer func() { metrics.RecordBooking("reschedule", httperr.CodeOf(err)) }()

	if in.Date == nil && in.Time == nil {
		return nil, httperr.Validation(httperr.CodeMissingFields, "date or time is required.")
	}

	ap, err = clientAppointment(ctx, uc.repo, p, appointmentID)
	if err != nil {
		return nil, err
	}

	date, clock := ap.Date, ap.Time
	if in.Date != nil {
		if date, err = timezone.ParseDate(*in.Date); err != nil {
			return nil, httperr.Validation(httperr.CodeInvalidFormat, "Invalid date format, expected YYYY-MM-DD.")
		}
	}
	if in.Time != nil {
		if clock, err = timezone.ParseClock(*in.Time); err != nil {
			return nil, httperr.Validation(httperr.CodeInvalidFormat, "Invalid time format, expected HH:MM:SS.")
		}
	}

	if err := uc.refresher.Refresh(ctx, ap); err != nil {
		return nil, err
	}
	if err := domain.CanReschedule(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	from := map[string]string{"date": ap.Date, "time": ap.Time}

	dates := []string{ap.Date, date}
	err = uc.repo.InProviderDays(ctx, ap.ServiceProviderID, dates, func(tx domain.Repository) error {
		if err := domain.CheckFits(ctx, tx, domain.Candidate{
			ProviderID: ap.ServiceProviderID,
			Service:    &ap.Service,
			Date:       date,
			Time:       clock,
			ExcludeID:  ap.ID,
		}, uc.clock.Now()); err != nil {
			return err
		}

		err := tx.UpdateSchedule(ctx, ap.ID, date, clock)
		if errors.Is(err, domain.ErrNotFound) {
			// the lifecycle moved it between the refresh and the lock
			return domain.CanReschedule(domain.StatusWaiting)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	ap.Date, ap.Time = date, clock

	uc.audit.Dispatch(audit.Event{
		ServiceProviderID: audit.Ptr(ap.ServiceProviderID),
		UserID:            audit.Ptr(p.UserID),
		Action:            audit.ActionAppointmentMoved,
		Entity:            audit.EntityAppointment,
		EntityID:          audit.Ptr(ap.ID),
		Metadata: map[string]any{
			"from": from,
			"to":   map[string]string{"date": date, "time": clock},
		},
	})

	return ap, nil
}
