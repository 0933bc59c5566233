package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/shramik-saathi/backend/config"
	"github.com/shramik-saathi/backend/internal/api/handlers"
	"github.com/shramik-saathi/backend/internal/api/middleware"
	"github.com/shramik-saathi/backend/internal/api/routes"
	"github.com/shramik-saathi/backend/internal/cache"
	"github.com/shramik-saathi/backend/internal/logger"
	"github.com/shramik-saathi/backend/internal/models"
	"github.com/shramik-saathi/backend/internal/nlp"
	"github.com/shramik-saathi/backend/internal/providers/embedding"
	"github.com/shramik-saathi/backend/internal/providers/sms"
	"github.com/shramik-saathi/backend/internal/providers/stt"
	mongorepo "github.com/shramik-saathi/backend/internal/repositories/mongo"
	pgrepo "github.com/shramik-saathi/backend/internal/repositories/postgres"
	"github.com/shramik-saathi/backend/internal/services"
	"github.com/shramik-saathi/backend/internal/storage"
	"github.com/shramik-saathi/backend/internal/workers"
)

func main() {
	_ = godotenv.Load()

	l := logger.New()
	ctx := context.Background()

	// Stores
	if err := config.InitMongo(); err != nil {
		log.Fatalf("MongoDB init error: %v", err)
	}
	if err := config.EnsureMongoIndexes(); err != nil {
		log.Fatalf("MongoDB index error: %v", err)
	}
	l.Info("MongoDB connected")

	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	if err := config.PostgresDB.AutoMigrate(
		&models.User{},
		&models.WorkerDocument{},
		&models.QueryRecord{},
	); err != nil {
		l.WithError(err).Warn("postgres automigrate failed")
	}
	l.Info("PostgreSQL connected")

	if err := config.InitRedis(); err != nil {
		log.Fatalf("Redis init error: %v", err)
	}
	l.Info("Redis connected")

	mongoDBName := os.Getenv("MONGO_DB")
	if mongoDBName == "" {
		mongoDBName = "chatbot_db"
	}
	db := config.MongoClient.Database(mongoDBName)

	// Embedding provider; the matching engine is useless without it.
	embedder, err := embedding.NewVertexEmbedder(ctx,
		os.Getenv("GOOGLE_PROJECT_ID"),
		os.Getenv("GOOGLE_LOCATION"),
		os.Getenv("EMBEDDING_MODEL"),
	)
	if err != nil {
		log.Fatalf("embedding provider init error: %v", err)
	}
	defer embedder.Close()
	l.Info("embedding provider ready")

	// Repositories
	faqRepo := mongorepo.NewFAQRepo(db)
	synonymRepo := mongorepo.NewSynonymRepo(db)
	logRepo := mongorepo.NewLogRepo(db)
	userRepo := pgrepo.NewUserRepo(config.PostgresDB)
	documentRepo := pgrepo.NewDocumentRepo(config.PostgresDB)
	recordRepo := pgrepo.NewQueryRecordRepo(config.PostgresDB)

	// Services
	threshold := nlp.DefaultConfidenceThreshold
	if v := os.Getenv("CONFIDENCE_THRESHOLD"); v != "" {
		if f, perr := strconv.ParseFloat(v, 64); perr == nil && f > 0 {
			threshold = f
		}
	}

	tokenTTL := 30 * time.Minute
	if v := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); v != "" {
		if m, perr := strconv.Atoi(v); perr == nil && m > 0 {
			tokenTTL = time.Duration(m) * time.Minute
		}
	}

	expander := services.NewSynonymExpander(synonymRepo)
	chatSvc := services.NewChatService(expander, embedder, faqRepo, logRepo, recordRepo, threshold, l)
	authSvc := services.NewAuthService(userRepo, os.Getenv("JWT_SECRET"), tokenTTL)
	otpSvc := services.NewOTPService(
		cache.NewRedisCache(config.RedisClient),
		&sms.LogSender{Logger: l},
		5*time.Minute,
	)
	reviewSvc := services.NewReviewService(logRepo, faqRepo, recordRepo, embedder)

	var uploader storage.Uploader
	if bucket := os.Getenv("GCS_BUCKET"); bucket != "" {
		gcsUploader, uerr := storage.NewGCSUploader(ctx, bucket)
		if uerr != nil {
			log.Fatalf("GCS init error: %v", uerr)
		}
		defer gcsUploader.Close()
		uploader = gcsUploader
	} else {
		l.Warn("GCS_BUCKET not set; document uploads disabled")
	}
	documentSvc := services.NewDocumentService(documentRepo, uploader)

	// Voice pipeline is optional: without speech credentials the text chat
	// still works.
	if sttProv, serr := stt.NewGoogleSpeech(ctx); serr != nil {
		l.WithError(serr).Warn("speech provider init failed; voice queries disabled")
	} else {
		defer sttProv.Close()
		pool := &workers.VoiceWorkerPool{
			Redis:  config.RedisClient,
			STT:    sttProv,
			Chat:   chatSvc,
			Logger: l,
		}
		if werr := pool.Start(ctx); werr != nil {
			l.WithError(werr).Warn("voice worker pool failed to start")
		}
	}

	// HTTP
	r := gin.New()
	r.Use(middleware.RequestLogger(l), gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		Chat:     handlers.NewChatHandler(chatSvc),
		Auth:     handlers.NewAuthHandler(authSvc),
		OTP:      handlers.NewOTPHandler(otpSvc),
		Admin:    handlers.NewAdminHandler(reviewSvc),
		Document: handlers.NewDocumentHandler(documentSvc),
		WS:       handlers.NewWSHandler(config.RedisClient, ""),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
