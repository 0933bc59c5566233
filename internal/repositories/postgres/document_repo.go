package postgres

import (
	"context"

	"github.com/shramik-saathi/backend/internal/models"
	"gorm.io/gorm"
)

type DocumentRepository interface {
	Insert(ctx context.Context, d *models.WorkerDocument) error
	ListByUser(ctx context.Context, userID string) ([]models.WorkerDocument, error)
}

type documentRepo struct {
	db *gorm.DB
}

func NewDocumentRepo(db *gorm.DB) DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Insert(ctx context.Context, d *models.WorkerDocument) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *documentRepo) ListByUser(ctx context.Context, userID string) ([]models.WorkerDocument, error) {
	var rows []models.WorkerDocument
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("upload_at DESC").
		Find(&rows).Error
	return rows, err
}
