package models

import "time"

// User mirrors an account owned by the identity provider. The engine only
// reads it to attach appointments to clients.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	UserType string `gorm:"size:20;not null;default:'client'" json:"user_type"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
