package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultUserID is used until real authentication exists.
const DefaultUserID = "default_user"

// Avatar represents a configured AI persona owned by a user.
type Avatar struct {
	ID                     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID                 string    `gorm:"not null;index" json:"user_id"`
	Name                   string    `gorm:"not null" json:"name"`
	PersonalityDescription string    `gorm:"not null" json:"personality_description"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
	IsActive               bool      `gorm:"default:true" json:"is_active"`
}
