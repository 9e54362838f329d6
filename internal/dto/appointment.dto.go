package dto

import (
	"time"

	"github.com/hairsol/booking-engine/internal/models"
)

type ProviderSummary struct {
	ID           uint   `json:"id"`
	BusinessName string `json:"business_name"`
}

type ServiceSummary struct {
	ID              uint    `json:"id"`
	ServiceName     string  `json:"service_name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
}

type CheckoutSummary struct {
	ID            uint    `json:"id"`
	TotalPrice    float64 `json:"total_price"`
	PaymentStatus string  `json:"payment_status"`
	PaymentMethod string  `json:"payment_method"`
}

type AppointmentDTO struct {
	ID              uint             `json:"id"`
	ClientID        uint             `json:"client_id"`
	Date            string           `json:"date"`
	Time            string           `json:"time"`
	Status          string           `json:"status"`
	Notes           string           `json:"notes"`
	ServiceProvider ProviderSummary  `json:"service_provider"`
	Service         ServiceSummary   `json:"service"`
	Checkout        *CheckoutSummary `json:"checkout,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func FromAppointment(ap models.Appointment) AppointmentDTO {
	out := AppointmentDTO{
		ID:       ap.ID,
		ClientID: ap.ClientID,
		Date:     ap.Date,
		Time:     ap.Time,
		Status:   ap.Status,
		Notes:    ap.Notes,
		ServiceProvider: ProviderSummary{
			ID:           ap.ServiceProviderID,
			BusinessName: ap.ServiceProvider.BusinessName,
		},
		Service: ServiceSummary{
			ID:              ap.ServiceID,
			ServiceName:     ap.Service.ServiceName,
			Price:           ap.Service.Price,
			DurationMinutes: ap.Service.DurationMinutes,
		},
		CreatedAt: ap.CreatedAt,
		UpdatedAt: ap.UpdatedAt,
	}

	if ap.Checkout != nil {
		out.Checkout = &CheckoutSummary{
			ID:            ap.Checkout.ID,
			TotalPrice:    ap.Checkout.TotalPrice,
			PaymentStatus: ap.Checkout.PaymentStatus,
			PaymentMethod: ap.Checkout.PaymentMethod,
		}
	}

	return out
}

type AvailabilityDTO struct {
	ID                uint   `json:"id"`
	ServiceProviderID uint   `json:"service_provider_id"`
	Date              string `json:"date"`
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
}

func FromWindow(w models.AvailabilityWindow) AvailabilityDTO {
	return AvailabilityDTO{
		ID:                w.ID,
		ServiceProviderID: w.ServiceProviderID,
		Date:              w.Date,
		StartTime:         w.StartTime,
		EndTime:           w.EndTime,
	}
}
