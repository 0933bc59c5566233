package mongo

import (
	"context"
	"time"

	"github.com/shramik-saathi/backend/internal/models"
	"github.com/shramik-saathi/backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type LogRepository interface {
	// Insert appends one interaction entry and returns the store-assigned
	// identifier. The log is append-only from the engine's side.
	Insert(ctx context.Context, e *models.LogEntry) (string, error)
	ListUnanswered(ctx context.Context, limit int64) ([]models.LogEntry, error)
	ListAll(ctx context.Context, limit int64) ([]models.LogEntry, error)
	// SubmitAnswer records a human-reviewed answer on an escalated entry.
	SubmitAnswer(ctx context.Context, id, answer string, answeredAt time.Time) error
}

type logRepo struct {
	col *mongo.Collection
}

func NewLogRepo(db *mongo.Database) LogRepository {
	return &logRepo{col: db.Collection("logs")}
}

func (r *logRepo) Insert(ctx context.Context, e *models.LogEntry) (string, error) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	res, err := r.col.InsertOne(ctx, e)
	if err != nil {
		return "", err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return "", nil
}

func (r *logRepo) ListUnanswered(ctx context.Context, limit int64) ([]models.LogEntry, error) {
	filter := bson.M{
		"status": models.StatusUnanswered,
		"answer": bson.M{"$exists": false},
	}
	return r.list(ctx, filter, limit)
}

func (r *logRepo) ListAll(ctx context.Context, limit int64) ([]models.LogEntry, error) {
	return r.list(ctx, bson.M{}, limit)
}

func (r *logRepo) list(ctx context.Context, filter bson.M, limit int64) ([]models.LogEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var entries []models.LogEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *logRepo) SubmitAnswer(ctx context.Context, id, answer string, answeredAt time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return utils.ErrNotFound
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"answer":      answer,
			"answered_at": answeredAt.UTC(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}
