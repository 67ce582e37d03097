package repo

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"zeny-ai-backend/internal/models"
)

const maxAvatars = 100

type AvatarRepo struct {
	db *gorm.DB
}

type AvatarRepoInterface interface {
	Create(avatar *models.Avatar) error
	ListByUser(userID string) ([]models.Avatar, error)
	GetByID(id uuid.UUID, userID string) (*models.Avatar, error)
	GetActiveByID(id uuid.UUID) (*models.Avatar, error)
	Update(id uuid.UUID, userID string, fields map[string]interface{}) (*models.Avatar, error)
	Delete(id uuid.UUID, userID string) error
}

func NewAvatarRepository(db *gorm.DB) AvatarRepoInterface {
	return &AvatarRepo{db: db}
}

func (r *AvatarRepo) Create(avatar *models.Avatar) error {
	now := time.Now().UTC()
	avatar.ID = uuid.New()
	avatar.CreatedAt = now
	avatar.UpdatedAt = now
	avatar.IsActive = true
	return r.db.Create(avatar).Error
}

func (r *AvatarRepo) ListByUser(userID string) ([]models.Avatar, error) {
	var avatars []models.Avatar
	err := r.db.Where("user_id = ?", userID).Limit(maxAvatars).Find(&avatars).Error
	return avatars, err
}

func (r *AvatarRepo) GetByID(id uuid.UUID, userID string) (*models.Avatar, error) {
	var avatar models.Avatar
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&avatar).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &avatar, nil
}

// GetActiveByID looks up an avatar regardless of owner, but only when active.
// Used by the visitor-facing chat path.
func (r *AvatarRepo) GetActiveByID(id uuid.UUID) (*models.Avatar, error) {
	var avatar models.Avatar
	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&avatar).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &avatar, nil
}

// Update applies a partial field set and stamps updated_at. The supplied map
// contains only the caller-provided fields.
func (r *AvatarRepo) Update(id uuid.UUID, userID string, fields map[string]interface{}) (*models.Avatar, error) {
	fields["updated_at"] = time.Now().UTC()

	result := r.db.Model(&models.Avatar{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(id, userID)
}

func (r *AvatarRepo) Delete(id uuid.UUID, userID string) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Avatar{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
