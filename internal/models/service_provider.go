package models

import "time"

type ServiceProvider struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	BusinessName        string `gorm:"size:100;uniqueIndex;not null" json:"business_name"`
	BusinessDescription string `gorm:"type:text" json:"business_description"`
	City                string `gorm:"size:100" json:"city"`
	Country             string `gorm:"size:100" json:"country"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
