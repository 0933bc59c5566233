package postgres

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"github.com/shramik-saathi/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QueryRecordRepository interface {
	Insert(ctx context.Context, rec *models.QueryRecord) error
	// SimilarUnanswered returns unanswered query rows ordered by cosine
	// distance to the given embedding.
	SimilarUnanswered(ctx context.Context, embedding []float32, limit int) ([]models.QueryRecord, error)
}

type queryRecordRepo struct {
	db *gorm.DB
}

func NewQueryRecordRepo(db *gorm.DB) QueryRecordRepository {
	return &queryRecordRepo{db: db}
}

func (r *queryRecordRepo) Insert(ctx context.Context, rec *models.QueryRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *queryRecordRepo) SimilarUnanswered(ctx context.Context, embedding []float32, limit int) ([]models.QueryRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows []models.QueryRecord
	err := r.db.WithContext(ctx).
		Where("status = ?", models.StatusUnanswered).
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:  "embedding <=> ?",
			Vars: []interface{}{pgvector.NewVector(embedding)},
		}}).
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
