package outbox

import (
	"encoding/json"
	"strconv"

	"github.com/google/uuid"

	"github.com/hairsol/booking-engine/internal/models"
)

const (
	AggregateAppointment = "appointment"

	EventAppointmentBooked = "appointment.booked.v1"
)

// BookingConfirmed is published once a booking has committed.
type BookingConfirmed struct {
	EventID       string `json:"event_id"`
	ClientID      uint   `json:"client_id"`
	AppointmentID uint   `json:"appointment_id"`
	ProviderID    uint   `json:"service_provider_id"`
	ServiceID     uint   `json:"service_id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
}

func NewBookingConfirmed(ap *models.Appointment) (*models.OutboxEvent, error) {
	eventID := uuid.NewString()

	payload, err := json.Marshal(BookingConfirmed{
		EventID:       eventID,
		ClientID:      ap.ClientID,
		AppointmentID: ap.ID,
		ProviderID:    ap.ServiceProviderID,
		ServiceID:     ap.ServiceID,
		Date:          ap.Date,
		Time:          ap.Time,
	})
	if err != nil {
		return nil, err
	}

	return &models.OutboxEvent{
		EventID:       eventID,
		AggregateType: AggregateAppointment,
		AggregateID:   strconv.FormatUint(uint64(ap.ID), 10),
		EventType:     EventAppointmentBooked,
		Payload:       string(payload),
	}, nil
}
