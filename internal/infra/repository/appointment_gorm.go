package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/hairsol/booking-engine/internal/domain/appointment"
	"github.com/hairsol/booking-engine/internal/models"
)

const slotIndexName = "ux_appointments_slot"

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Transactions
// --------------------------------------------------

func (r *AppointmentGormRepository) InProviderDays(
	ctx context.Context,
	providerID uint,
	dates []string,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockProviderDays(tx, providerID, dates); err != nil {
			return err
		}
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Conflict lookups
// --------------------------------------------------

func (r *AppointmentGormRepository) ListWindowsByDate(
	ctx context.Context,
	providerID uint,
	date string,
) ([]models.AvailabilityWindow, error) {

	var windows []models.AvailabilityWindow
	if err := r.db.WithContext(ctx).
		Where("service_provider_id = ? AND date = ?", providerID, date).
		Order("start_time ASC").
		Find(&windows).Error; err != nil {
		return nil, err
	}
	return windows, nil
}

func (r *AppointmentGormRepository) SlotTaken(
	ctx context.Context,
	providerID uint,
	serviceID uint,
	date string,
	clock string,
	excludeID uint,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"service_provider_id = ? AND service_id = ? AND date = ? AND time = ? AND status <> ?",
			providerID, serviceID, date, clock, string(domain.StatusCancelled),
		)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AppointmentGormRepository) ListBookedTimes(
	ctx context.Context,
	providerID uint,
	serviceID uint,
	date string,
) ([]string, error) {

	var times []string
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"service_provider_id = ? AND service_id = ? AND date = ? AND status <> ?",
			providerID, serviceID, date, string(domain.StatusCancelled),
		).
		Order("time ASC").
		Pluck("time", &times).Error; err != nil {
		return nil, err
	}
	return times, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateBooking(
	ctx context.Context,
	ap *models.Appointment,
	checkout *models.AppointmentCheckout,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("ServiceProvider", "Service", "Client", "Checkout").Create(ap).Error; err != nil {
			return mapSlotConflict(err)
		}

		checkout.AppointmentID = ap.ID
		if err := tx.Create(checkout).Error; err != nil {
			return err
		}

		ap.Checkout = checkout
		return nil
	})
}

func (r *AppointmentGormRepository) EnqueueEvent(
	ctx context.Context,
	ev *models.OutboxEvent,
) error {
	return r.db.WithContext(ctx).Create(ev).Error
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("ServiceProvider").
		Preload("Service").
		Preload("Checkout").
		First(&ap, id).Error; err != nil {
		return nil, notFound(err, domain.ErrNotFound)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateSchedule(
	ctx context.Context,
	id uint,
	date string,
	clock string,
) error {
	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", id, string(domain.StatusBooked)).
		Updates(map[string]any{
			"date": date,
			"time": clock,
		})
	if res.Error != nil {
		return mapSlotConflict(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("appointment_id = ?", id).Delete(&models.AppointmentCheckout{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Appointment{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

// --------------------------------------------------
// Lifecycle
// --------------------------------------------------

func (r *AppointmentGormRepository) AdvanceStatus(
	ctx context.Context,
	id uint,
	from domain.Status,
	to domain.Status,
	notes string,
) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]any{
			"status": string(to),
			"notes":  notes,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *AppointmentGormRepository) UpdateNotes(
	ctx context.Context,
	id uint,
	notes string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("notes", notes).Error
}

// --------------------------------------------------
// Queries
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.Appointment{})
	if f.ClientID != 0 {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if f.ProviderID != 0 {
		q = q.Where("service_provider_id = ?", f.ProviderID)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", statusStrings(f.Statuses))
	}
	if f.Date != "" {
		q = q.Where("date = ?", f.Date)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch f.Order {
	case domain.OrderByCreatedDesc:
		q = q.Order("created_at DESC").Order("id DESC")
	default:
		q = q.Order("date DESC").Order("time DESC").Order("id DESC")
	}

	var apps []models.Appointment
	if err := q.
		Preload("ServiceProvider").
		Preload("Service").
		Preload("Checkout").
		Offset(f.Offset).
		Limit(f.Limit).
		Find(&apps).Error; err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

func (r *AppointmentGormRepository) ListDue(
	ctx context.Context,
	f domain.DueFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Service").
		Where("status IN ?", statusStrings(domain.OpenStatuses)).
		Where("date <= ?", f.Until)
	if f.ClientID != 0 {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if f.ProviderID != 0 {
		q = q.Where("service_provider_id = ?", f.ProviderID)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var apps []models.Appointment
	if err := q.Order("date ASC").Order("time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func statusStrings(statuses []domain.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
