package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/shramik-saathi/backend/config"
	"github.com/shramik-saathi/backend/internal/etl"
	"github.com/shramik-saathi/backend/internal/logger"
	"github.com/shramik-saathi/backend/internal/providers/embedding"
	mongorepo "github.com/shramik-saathi/backend/internal/repositories/mongo"
)

func main() {
	faqPath := flag.String("faqs", "", "path to FAQ CSV (ID,category,Question,answer_en,answer_hi,keywords_en,keywords_hi)")
	synonymPath := flag.String("synonyms", "", "path to synonym CSV (english_keyword,hindi_keyword,english_synonym,hindi_synonym)")
	flag.Parse()

	if *faqPath == "" && *synonymPath == "" {
		log.Fatal("nothing to do: pass -faqs and/or -synonyms")
	}

	_ = godotenv.Load()
	l := logger.New()
	ctx := context.Background()

	if err := config.InitMongo(); err != nil {
		log.Fatalf("MongoDB init error: %v", err)
	}
	if err := config.EnsureMongoIndexes(); err != nil {
		log.Fatalf("MongoDB index error: %v", err)
	}

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "chatbot_db"
	}
	db := config.MongoClient.Database(dbName)

	in := &etl.Ingester{
		FAQs:     mongorepo.NewFAQRepo(db),
		Synonyms: mongorepo.NewSynonymRepo(db),
		Logger:   l,
	}

	if *faqPath != "" {
		embedder, err := embedding.NewVertexEmbedder(ctx,
			os.Getenv("GOOGLE_PROJECT_ID"),
			os.Getenv("GOOGLE_LOCATION"),
			os.Getenv("EMBEDDING_MODEL"),
		)
		if err != nil {
			log.Fatalf("embedding provider init error: %v", err)
		}
		defer embedder.Close()
		in.Embedder = embedder

		n, err := in.IngestFAQs(ctx, *faqPath)
		if err != nil {
			log.Fatalf("FAQ ingest failed after %d rows: %v", n, err)
		}
	}

	if *synonymPath != "" {
		n, err := in.IngestSynonyms(ctx, *synonymPath)
		if err != nil {
			log.Fatalf("synonym ingest failed after %d rows: %v", n, err)
		}
	}
}
