package models

import "time"

type Service struct {
	ID                uint `gorm:"primaryKey" json:"id"`
	ServiceProviderID uint `gorm:"index;not null" json:"service_provider_id"`

	ServiceName     string  `gorm:"size:100;not null" json:"service_name"`
	Price           float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	DurationMinutes int     `gorm:"not null" json:"duration_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
