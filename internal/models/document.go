package models

import (
	"time"

	"github.com/google/uuid"
)

// TrainingDocument is an uploaded reference text attached to one avatar.
// Content stays base64-encoded at rest and is only decoded when building prompts.
// Documents are immutable: create and delete, no update.
type TrainingDocument struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AvatarID      uuid.UUID `gorm:"type:uuid;not null;index" json:"avatar_id"`
	Filename      string    `gorm:"not null" json:"filename"`
	ContentBase64 string    `gorm:"not null" json:"content_base64"`
	ContentType   string    `gorm:"not null" json:"content_type"`
	UploadedAt    time.Time `json:"uploaded_at"`
}
