package appointment

import (
	"context"
	"strings"

	"github.com/hairsol/booking-engine/internal/audit"
	domain "github.com/hairsol/booking-engine/internal/domain/appointment"
	"github.com/hairsol/booking-engine/internal/domain/catalog"
	"github.com/hairsol/booking-engine/internal/httperr"
	"github.com/hairsol/booking-engine/internal/identity"
	"github.com/hairsol/booking-engine/internal/metrics"
	"github.com/hairsol/booking-engine/internal/models"
	"github.com/hairsol/booking-engine/internal/outbox"
	"github.com/hairsol/booking-engine/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	Date            string
	Time            string
	ServiceProvider string
	Service         string
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	catalog catalog.Repository
	repo    domain.Repository
	audit   *audit.Dispatcher
	clock   timezone.Clock
}

func NewBookAppointment(
	catalog catalog.Repository,
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *BookAppointment {
	return &BookAppointment{
		catalog: catalog,
		repo:    repo,
		audit:   audit,
		clock:   clock,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	p identity.Principal,
	in BookAppointmentInput,
) (ap *models.Appointment, err error) {
	defer func() { metrics.RecordBooking("book", httperr.CodeOf(err)) }()

	// --------------------------------------------------
	// 1. Caller and payload
	// --------------------------------------------------
	if err := p.RequireClient(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Date) == "" ||
		strings.TrimSpace(in.Time) == "" ||
		strings.TrimSpace(in.ServiceProvider) == "" ||
		strings.TrimSpace(in.Service) == "" {
		return nil, httperr.Validation(
			httperr.CodeMissingFields,
			"date, time, service_provider and service are required.",
		)
	}

	// --------------------------------------------------
	// 2. Provider and service
	// --------------------------------------------------
	provider, err := resolveProvider(ctx, uc.catalog, in.ServiceProvider)
	if err != nil {
		return nil, err
	}
	service, err := resolveService(ctx, uc.catalog, provider.ID, in.Service)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Formats
	// --------------------------------------------------
	date, err := timezone.ParseDate(in.Date)
	if err != nil {
		return nil, httperr.Validation(httperr.CodeInvalidFormat, "Invalid date format, expected YYYY-MM-DD.")
	}
	clock, err := timezone.ParseClock(in.Time)
	if err != nil {
		return nil, httperr.Validation(httperr.CodeInvalidFormat, "Invalid time format, expected HH:MM:SS.")
	}

	// --------------------------------------------------
	// 4. Check and write under the provider/day lock
	// --------------------------------------------------
	ap = domain.NewAppointment(p.UserID, provider, service, date, clock)

	err = uc.repo.InProviderDays(ctx, provider.ID, []string{date}, func(tx domain.Repository) error {
		if err := domain.CheckFits(ctx, tx, domain.Candidate{
			ProviderID: provider.ID,
			Service:    service,
			Date:       date,
			Time:       clock,
		}, uc.clock.Now()); err != nil {
			return err
		}

		if err := tx.CreateBooking(ctx, ap, domain.NewCheckout(service)); err != nil {
			return err
		}

		ev, err := outbox.NewBookingConfirmed(ap)
		if err != nil {
			return err
		}
		return tx.EnqueueEvent(ctx, ev)
	})
	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeAlreadyBooked) {
			uc.audit.Dispatch(audit.Event{
				ServiceProviderID: audit.Ptr(provider.ID),
				UserID:            audit.Ptr(p.UserID),
				Action:            audit.ActionAppointmentConflict,
				Entity:            audit.EntityAppointment,
				Metadata: map[string]any{
					"service_id": service.ID,
					"date":       date,
					"time":       clock,
				},
			})
		}
		return nil, err
	}

	// --------------------------------------------------
	// 5. Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		ServiceProviderID: audit.Ptr(provider.ID),
		UserID:            audit.Ptr(p.UserID),
		Action:            audit.ActionAppointmentBooked,
		Entity:            audit.EntityAppointment,
		EntityID:          audit.Ptr(ap.ID),
		Metadata:          snapshot(ap),
	})

	return ap, nil
}
