package models

import "time"

// AvailabilityWindow is a bookable range on one calendar date. Dates are
// stored as YYYY-MM-DD and times as HH:MM:SS so string order is time order.
type AvailabilityWindow struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	ServiceProviderID uint            `gorm:"not null;uniqueIndex:ux_availability_window,priority:1;index:ix_availability_provider_date,priority:1" json:"service_provider_id"`
	ServiceProvider   ServiceProvider `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Date      string `gorm:"size:10;not null;uniqueIndex:ux_availability_window,priority:2;index:ix_availability_provider_date,priority:2" json:"date"`
	StartTime string `gorm:"size:8;not null;uniqueIndex:ux_availability_window,priority:3" json:"start_time"`
	EndTime   string `gorm:"size:8;not null;uniqueIndex:ux_availability_window,priority:4" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
