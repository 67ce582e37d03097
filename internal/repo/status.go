package repo

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"zeny-ai-backend/internal/models"
)

const maxStatusChecks = 1000

type StatusRepo struct {
	db *gorm.DB
}

type StatusRepoInterface interface {
	Create(check *models.StatusCheck) error
	List() ([]models.StatusCheck, error)
}

func NewStatusRepository(db *gorm.DB) StatusRepoInterface {
	return &StatusRepo{db: db}
}

func (r *StatusRepo) Create(check *models.StatusCheck) error {
	check.ID = uuid.New()
	check.Timestamp = time.Now().UTC()
	return r.db.Create(check).Error
}

func (r *StatusRepo) List() ([]models.StatusCheck, error) {
	var checks []models.StatusCheck
	err := r.db.Limit(maxStatusChecks).Find(&checks).Error
	return checks, err
}
