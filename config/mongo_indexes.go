package config

import (
	"context"
	"errors"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureMongoIndexes() error {
	if MongoClient == nil {
		return errors.New("MongoClient is nil; call InitMongo() first")
	}

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "chatbot_db"
	}
	db := MongoClient.Database(dbName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// faqs: one record per question_id (ingest upserts by it)
	faqs := db.Collection("faqs")
	_, err := faqs.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "question_id", Value: 1}},
			Options: options.Index().
				SetName("uniq_question_id").
				SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("by_category"),
		},
	})
	if err != nil {
		return err
	}

	// keywords: synonym membership lookups run $in against both sets
	keywords := db.Collection("keywords")
	_, err = keywords.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "english_synonyms", Value: 1}},
			Options: options.Index().SetName("by_english_synonyms"),
		},
		{
			Keys:    bson.D{{Key: "hindi_synonyms", Value: 1}},
			Options: options.Index().SetName("by_hindi_synonyms"),
		},
	})
	if err != nil {
		return err
	}

	// logs: review queues read newest-first, filtered by status
	logs := db.Collection("logs")
	_, err = logs.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("by_timestamp"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("by_status_ts"),
		},
	})
	return err
}
