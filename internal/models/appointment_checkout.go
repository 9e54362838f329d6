package models

import "time"

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"

	PaymentMethodCash = "cash"
)

type AppointmentCheckout struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AppointmentID uint `gorm:"uniqueIndex;not null" json:"appointment_id"`

	TotalPrice    float64 `gorm:"type:decimal(10,2);not null" json:"total_price"`
	PaymentStatus string  `gorm:"size:20;not null;default:'pending'" json:"payment_status"`
	PaymentMethod string  `gorm:"size:20;not null;default:'cash'" json:"payment_method"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
