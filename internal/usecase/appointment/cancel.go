package appointment

import (
	"context"
	"errors"

	"github.com/hairsol/booking-engine/internal/audit"
	domain "github.com/hairsol/booking-engine/internal/domain/appointment"
	"github.com/hairsol/booking-engine/internal/httperr"
	"github.com/hairsol/booking-engine/internal/identity"
	"github.com/hairsol/booking-engine/internal/metrics"
)

// CancelAppointment removes the appointment and its checkout. The audit trail
// keeps the only record of it.
type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	p identity.Principal,
	appointmentID uint,
) (err error) {
	defer func() { metrics.RecordBooking("cancel", httperr.CodeOf(err)) }()

	ap, err := clientAppointment(ctx, uc.repo, p, appointmentID)
	if err != nil {
		return err
	}

	err = uc.repo.InProviderDays(ctx, ap.ServiceProviderID, []string{ap.Date}, func(tx domain.Repository) error {
		return tx.DeleteAppointment(ctx, ap.ID)
	})
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.NotFoundErr(httperr.CodeAppointmentNotFound, "Appointment not found.")
	}
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ServiceProviderID: audit.Ptr(ap.ServiceProviderID),
		UserID:            audit.Ptr(p.UserID),
		Action:            audit.ActionAppointmentCancelled,
		Entity:            audit.EntityAppointment,
		EntityID:          audit.Ptr(ap.ID),
		Metadata:          snapshot(ap),
	})

	return nil
}
