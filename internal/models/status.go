package models

import (
	"time"

	"github.com/google/uuid"
)

// StatusCheck is an append-only client ping record. Never updated or deleted.
type StatusCheck struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientName string    `gorm:"not null" json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}
