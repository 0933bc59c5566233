package mongo

import (
	"context"

	"github.com/shramik-saathi/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FAQRepository interface {
	// GetAll returns every FAQ record in the collection's natural order.
	// That order is what makes ranking ties deterministic, so no sort is
	// applied here.
	GetAll(ctx context.Context) ([]models.FAQ, error)
	Upsert(ctx context.Context, f *models.FAQ) error
}

type faqRepo struct {
	col *mongo.Collection
}

func NewFAQRepo(db *mongo.Database) FAQRepository {
	return &faqRepo{col: db.Collection("faqs")}
}

func (r *faqRepo) GetAll(ctx context.Context) ([]models.FAQ, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var faqs []models.FAQ
	if err := cur.All(ctx, &faqs); err != nil {
		return nil, err
	}
	return faqs, nil
}

func (r *faqRepo) Upsert(ctx context.Context, f *models.FAQ) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"question_id": f.QuestionID},
		bson.M{"$set": f},
		options.Update().SetUpsert(true),
	)
	return err
}
