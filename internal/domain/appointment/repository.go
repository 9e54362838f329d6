package appointment

import (
	"context"
	"errors"

	"github.com/hairsol/booking-engine/internal/models"
)

var ErrNotFound = errors.New("appointment: not found")

type Order int

const (
	OrderByDateDesc Order = iota
	OrderByCreatedDesc
)

type ListFilter struct {
	ClientID   uint
	ProviderID uint
	Statuses   []Status
	Date       string
	Order      Order
	Offset     int
	Limit      int
}

// DueFilter selects open appointments whose lifecycle may need to move.
type DueFilter struct {
	ClientID   uint
	ProviderID uint
	Until      string
	Limit      int
}

type Repository interface {
	Lookup

	// -------- Transactions --------
	InProviderDays(
		ctx context.Context,
		providerID uint,
		dates []string,
		fn func(tx Repository) error,
	) error

	// -------- Booking --------
	// CreateBooking persists the appointment and its checkout together.
	CreateBooking(
		ctx context.Context,
		ap *models.Appointment,
		checkout *models.AppointmentCheckout,
	) error

	EnqueueEvent(ctx context.Context, ev *models.OutboxEvent) error

	ListBookedTimes(
		ctx context.Context,
		providerID uint,
		serviceID uint,
		date string,
	) ([]string, error)

	// -------- Appointment --------
	// GetAppointment preloads provider, service and checkout.
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)

	// UpdateSchedule moves a booked appointment; ErrNotFound when it is no
	// longer booked.
	UpdateSchedule(ctx context.Context, id uint, date string, clock string) error

	DeleteAppointment(ctx context.Context, id uint) error

	// -------- Lifecycle --------
	// AdvanceStatus is a compare-and-set on status; false means another
	// writer moved it first.
	AdvanceStatus(
		ctx context.Context,
		id uint,
		from Status,
		to Status,
		notes string,
	) (bool, error)

	UpdateNotes(ctx context.Context, id uint, notes string) error

	// -------- Queries --------
	ListAppointments(ctx context.Context, f ListFilter) ([]models.Appointment, int64, error)
	ListDue(ctx context.Context, f DueFilter) ([]models.Appointment, error)
}
