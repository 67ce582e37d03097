package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type MessageRole string

const (
	RoleVisitor MessageRole = "visitor"
	RoleAvatar  MessageRole = "avatar"
)

// Message is one entry in a conversation transcript.
type Message struct {
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
}

// Conversation is an ordered exchange between one visitor and one avatar.
// The transcript lives in a single JSON column; each chat turn rewrites the
// whole list (visitor message + avatar reply appended together).
type Conversation struct {
	ID        uuid.UUID                    `gorm:"type:uuid;primaryKey" json:"id"`
	AvatarID  uuid.UUID                    `gorm:"type:uuid;not null;index" json:"avatar_id"`
	VisitorID string                       `gorm:"not null" json:"visitor_id"`
	Messages  datatypes.JSONSlice[Message] `json:"messages"`
	StartedAt time.Time                    `json:"started_at"`
	EndedAt   *time.Time                   `json:"ended_at"`
	Summary   *string                      `json:"summary"`
}
