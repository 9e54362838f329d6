package memory

import (
	"context"
	"sort"

	domain "github.com/hairsol/booking-engine/internal/domain/appointment"
	"github.com/hairsol/booking-engine/internal/httperr"
	"github.com/hairsol/booking-engine/internal/models"
)

type AppointmentRepository struct {
	s *Store
}

func (s *Store) Appointments() *AppointmentRepository {
	return &AppointmentRepository{s: s}
}

// --------------------------------------------------
// Transactions
// --------------------------------------------------

func (r *AppointmentRepository) InProviderDays(
	ctx context.Context,
	providerID uint,
	dates []string,
	fn func(tx domain.Repository) error,
) error {
	unlock := r.s.lockDays(providerID, dates)
	defer unlock()
	return fn(r)
}

// --------------------------------------------------
// Conflict lookups
// --------------------------------------------------

func (r *AppointmentRepository) ListWindowsByDate(
	ctx context.Context,
	providerID uint,
	date string,
) ([]models.AvailabilityWindow, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.windowsOn(providerID, date), nil
}

func (r *AppointmentRepository) SlotTaken(
	ctx context.Context,
	providerID uint,
	serviceID uint,
	date string,
	clock string,
	excludeID uint,
) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.slotTaken(providerID, serviceID, date, clock, excludeID), nil
}

func (r *AppointmentRepository) ListBookedTimes(
	ctx context.Context,
	providerID uint,
	serviceID uint,
	date string,
) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var times []string
	for _, ap := range r.s.appointments {
		if ap.ServiceProviderID == providerID &&
			ap.ServiceID == serviceID &&
			ap.Date == date &&
			ap.Status != string(domain.StatusCancelled) {
			times = append(times, ap.Time)
		}
	}
	sort.Strings(times)
	return times, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *AppointmentRepository) CreateBooking(
	ctx context.Context,
	ap *models.Appointment,
	checkout *models.AppointmentCheckout,
) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.slotTaken(ap.ServiceProviderID, ap.ServiceID, ap.Date, ap.Time, 0) {
		return httperr.Conflict(httperr.CodeAlreadyBooked, "This slot is already booked.")
	}

	now := r.s.now()
	ap.ID = r.s.id()
	ap.CreatedAt, ap.UpdatedAt = now, now

	checkout.ID = r.s.id()
	checkout.AppointmentID = ap.ID
	checkout.CreatedAt, checkout.UpdatedAt = now, now

	stored := *ap
	stored.ServiceProvider = models.ServiceProvider{}
	stored.Service = models.Service{}
	stored.Checkout = nil
	r.s.appointments[ap.ID] = stored
	r.s.checkouts[ap.ID] = *checkout

	ap.Checkout = checkout
	return nil
}

func (r *AppointmentRepository) EnqueueEvent(ctx context.Context, ev *models.OutboxEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ev.ID = r.s.id()
	ev.CreatedAt = r.s.now()
	r.s.outbox = append(r.s.outbox, *ev)
	return nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentRepository) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ap, ok := r.s.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := r.s.hydrate(ap)
	return &out, nil
}

func (r *AppointmentRepository) UpdateSchedule(ctx context.Context, id uint, date string, clock string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ap, ok := r.s.appointments[id]
	if !ok || ap.Status != string(domain.StatusBooked) {
		return domain.ErrNotFound
	}
	if r.s.slotTaken(ap.ServiceProviderID, ap.ServiceID, date, clock, id) {
		return httperr.Conflict(httperr.CodeAlreadyBooked, "This slot is already booked.")
	}
	ap.Date, ap.Time = date, clock
	ap.UpdatedAt = r.s.now()
	r.s.appointments[id] = ap
	return nil
}

func (r *AppointmentRepository) DeleteAppointment(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.appointments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.appointments, id)
	delete(r.s.checkouts, id)
	return nil
}

// --------------------------------------------------
// Lifecycle
// --------------------------------------------------

func (r *AppointmentRepository) AdvanceStatus(
	ctx context.Context,
	id uint,
	from domain.Status,
	to domain.Status,
	notes string,
) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ap, ok := r.s.appointments[id]
	if !ok || ap.Status != string(from) {
		return false, nil
	}
	ap.Status, ap.Notes = string(to), notes
	ap.UpdatedAt = r.s.now()
	r.s.appointments[id] = ap
	return true, nil
}

func (r *AppointmentRepository) UpdateNotes(ctx context.Context, id uint, notes string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ap, ok := r.s.appointments[id]
	if !ok {
		return domain.ErrNotFound
	}
	ap.Notes = notes
	ap.UpdatedAt = r.s.now()
	r.s.appointments[id] = ap
	return nil
}

// --------------------------------------------------
// Queries
// --------------------------------------------------

func (r *AppointmentRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []models.Appointment
	for _, ap := range r.s.appointments {
		if f.ClientID != 0 && ap.ClientID != f.ClientID {
			continue
		}
		if f.ProviderID != 0 && ap.ServiceProviderID != f.ProviderID {
			continue
		}
		if f.Date != "" && ap.Date != f.Date {
			continue
		}
		if len(f.Statuses) > 0 && !hasStatus(f.Statuses, ap.Status) {
			continue
		}
		out = append(out, r.s.hydrate(ap))
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if f.Order == domain.OrderByCreatedDesc {
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.ID > b.ID
		}
		if a.Date != b.Date {
			return a.Date > b.Date
		}
		if a.Time != b.Time {
			return a.Time > b.Time
		}
		return a.ID > b.ID
	})

	return page(out, f.Offset, f.Limit), int64(len(out)), nil
}

func (r *AppointmentRepository) ListDue(ctx context.Context, f domain.DueFilter) ([]models.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []models.Appointment
	for _, ap := range r.s.appointments {
		if !hasStatus(domain.OpenStatuses, ap.Status) || ap.Date > f.Until {
			continue
		}
		if f.ClientID != 0 && ap.ClientID != f.ClientID {
			continue
		}
		if f.ProviderID != 0 && ap.ServiceProviderID != f.ProviderID {
			continue
		}
		out = append(out, r.s.hydrate(ap))
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

// Events returns a snapshot of the outbox.
func (s *Store) Events() []models.OutboxEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.OutboxEvent(nil), s.outbox...)
}

// Checkout returns the checkout stored for an appointment.
func (s *Store) Checkout(appointmentID uint) (models.AppointmentCheckout, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.checkouts[appointmentID]
	return c, ok
}

// hydrate expects s.mu to be held.
func (s *Store) hydrate(ap models.Appointment) models.Appointment {
	ap.ServiceProvider = s.providers[ap.ServiceProviderID]
	ap.Service = s.services[ap.ServiceID]
	if c, ok := s.checkouts[ap.ID]; ok {
		ap.Checkout = &c
	}
	return ap
}

// slotTaken expects s.mu to be held.
func (s *Store) slotTaken(providerID, serviceID uint, date, clock string, excludeID uint) bool {
	for _, ap := range s.appointments {
		if ap.ID == excludeID {
			continue
		}
		if ap.ServiceProviderID == providerID &&
			ap.ServiceID == serviceID &&
			ap.Date == date &&
			ap.Time == clock &&
			ap.Status != string(domain.StatusCancelled) {
			return true
		}
	}
	return false
}

func hasStatus(statuses []domain.Status, s string) bool {
	for _, st := range statuses {
		if string(st) == s {
			return true
		}
	}
	return false
}

var _ domain.Repository = (*AppointmentRepository)(nil)
