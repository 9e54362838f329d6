package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint `gorm:"not null;index" json:"client_id"`
	Client   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ServiceProviderID uint            `gorm:"not null;index" json:"service_provider_id"`
	ServiceProvider   ServiceProvider `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service_provider"`

	ServiceID uint    `gorm:"not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service"`

	// slot uniqueness lives in the ux_appointments_slot partial index (see db.NewDB)
	Date string `gorm:"size:10;not null;index" json:"date"`
	Time string `gorm:"size:8;not null" json:"time"`

	Status string `gorm:"size:20;not null;default:'booked';index" json:"status"`
	Notes  string `gorm:"size:255" json:"notes"`

	Checkout *AppointmentCheckout `gorm:"foreignKey:AppointmentID" json:"checkout,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
