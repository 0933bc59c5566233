package mongo

import (
	"context"

	"github.com/shramik-saathi/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SynonymRepository interface {
	// FindBySynonyms returns entries whose language-selected synonym set
	// intersects tokens. Tokens must already be trimmed and case-folded.
	FindBySynonyms(ctx context.Context, language string, tokens []string) ([]models.SynonymEntry, error)
	Upsert(ctx context.Context, e *models.SynonymEntry) error
}

type synonymRepo struct {
	col *mongo.Collection
}

func NewSynonymRepo(db *mongo.Database) SynonymRepository {
	return &synonymRepo{col: db.Collection("keywords")}
}

func (r *synonymRepo) FindBySynonyms(ctx context.Context, language string, tokens []string) ([]models.SynonymEntry, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	field := "hindi_synonyms"
	if language == models.LanguageEN {
		field = "english_synonyms"
	}

	cur, err := r.col.Find(ctx, bson.M{field: bson.M{"$in": tokens}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var entries []models.SynonymEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *synonymRepo) Upsert(ctx context.Context, e *models.SynonymEntry) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"english_keyword": e.EnglishKeyword, "hindi_keyword": e.HindiKeyword},
		bson.M{"$set": e},
		options.Update().SetUpsert(true),
	)
	return err
}
