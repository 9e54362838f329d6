package models

import "time"

type OutboxEvent struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	EventID string `gorm:"size:36;uniqueIndex;not null" json:"event_id"`

	AggregateType string `gorm:"size:50;not null" json:"aggregate_type"`
	AggregateID   string `gorm:"size:64;not null" json:"aggregate_id"`
	EventType     string `gorm:"size:100;not null" json:"event_type"`
	Payload       string `gorm:"type:jsonb;not null" json:"payload"`

	PublishedAt *time.Time `gorm:"index" json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
}
