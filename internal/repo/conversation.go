package repo

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"zeny-ai-backend/internal/models"
)

const maxConversations = 100

type ConversationRepo struct {
	db *gorm.DB
}

type ConversationRepoInterface interface {
	Create(conv *models.Conversation) error
	GetByID(id uuid.UUID) (*models.Conversation, error)
	ListByAvatar(avatarID uuid.UUID) ([]models.Conversation, error)
	ReplaceMessages(id uuid.UUID, messages []models.Message) error
	SetSummary(id uuid.UUID, summary string, endedAt time.Time) error
}

func NewConversationRepository(db *gorm.DB) ConversationRepoInterface {
	return &ConversationRepo{db: db}
}

func (r *ConversationRepo) Create(conv *models.Conversation) error {
	conv.ID = uuid.New()
	conv.StartedAt = time.Now().UTC()
	if conv.Messages == nil {
		conv.Messages = datatypes.NewJSONSlice([]models.Message{})
	}
	return r.db.Create(conv).Error
}

func (r *ConversationRepo) GetByID(id uuid.UUID) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.Where("id = ?", id).First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *ConversationRepo) ListByAvatar(avatarID uuid.UUID) ([]models.Conversation, error) {
	var convs []models.Conversation
	err := r.db.Where("avatar_id = ?", avatarID).Limit(maxConversations).Find(&convs).Error
	return convs, err
}

// ReplaceMessages writes the whole transcript back in one update. There is no
// transaction around read-append-write; concurrent turns on the same
// conversation are last-write-wins.
func (r *ConversationRepo) ReplaceMessages(id uuid.UUID, messages []models.Message) error {
	result := r.db.Model(&models.Conversation{}).
		Where("id = ?", id).
		Update("messages", datatypes.NewJSONSlice(messages))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetSummary overwrites any previous summary and marks the conversation ended.
// The conversation stays readable and can still receive chat turns afterwards.
func (r *ConversationRepo) SetSummary(id uuid.UUID, summary string, endedAt time.Time) error {
	result := r.db.Model(&models.Conversation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"summary":  summary,
			"ended_at": endedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
