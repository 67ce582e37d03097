package repo

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"zeny-ai-backend/internal/models"
)

const maxDocuments = 100

type DocumentRepo struct {
	db *gorm.DB
}

type DocumentRepoInterface interface {
	Create(doc *models.TrainingDocument) error
	ListByAvatar(avatarID uuid.UUID) ([]models.TrainingDocument, error)
	Delete(id uuid.UUID) error
}

func NewDocumentRepository(db *gorm.DB) DocumentRepoInterface {
	return &DocumentRepo{db: db}
}

func (r *DocumentRepo) Create(doc *models.TrainingDocument) error {
	doc.ID = uuid.New()
	doc.UploadedAt = time.Now().UTC()
	return r.db.Create(doc).Error
}

func (r *DocumentRepo) ListByAvatar(avatarID uuid.UUID) ([]models.TrainingDocument, error) {
	var docs []models.TrainingDocument
	err := r.db.Where("avatar_id = ?", avatarID).Limit(maxDocuments).Find(&docs).Error
	return docs, err
}

func (r *DocumentRepo) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.TrainingDocument{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
