package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/shramik-saathi/backend/internal/models"
	"github.com/shramik-saathi/backend/internal/nlp"
	"github.com/shramik-saathi/backend/internal/providers/embedding"
	mongorepo "github.com/shramik-saathi/backend/internal/repositories/mongo"
	pgrepo "github.com/shramik-saathi/backend/internal/repositories/postgres"
	"github.com/shramik-saathi/backend/internal/utils"
)

// ChatService is the FAQ matching engine: synonym expansion, embedding,
// similarity ranking, threshold decision, and the one-entry-per-interaction
// log contract.
type ChatService interface {
	Ask(ctx context.Context, q models.ChatQuery) (*models.ChatResponse, error)
}

type chatService struct {
	expander SynonymExpander
	embedder embedding.Provider
	faqs     mongorepo.FAQRepository
	logs     mongorepo.LogRepository

	// optional analytics sink; nil disables the side-channel
	records pgrepo.QueryRecordRepository

	threshold float64
	log       *logrus.Logger
}

func NewChatService(
	expander SynonymExpander,
	embedder embedding.Provider,
	faqs mongorepo.FAQRepository,
	logs mongorepo.LogRepository,
	records pgrepo.QueryRecordRepository,
	threshold float64,
	logger *logrus.Logger,
) ChatService {
	if threshold <= 0 {
		threshold = nlp.DefaultConfidenceThreshold
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &chatService{
		expander:  expander,
		embedder:  embedder,
		faqs:      faqs,
		logs:      logs,
		records:   records,
		threshold: threshold,
		log:       logger,
	}
}

// Ask runs one chat interaction to completion. Exactly one log entry is
// appended per call that enters the engine: after the decision on the
// success path, or before the error is surfaced on the failure path. A
// failed log append never alters an already-computed response.
func (s *chatService) Ask(ctx context.Context, q models.ChatQuery) (*models.ChatResponse, error) {
	const op = "ChatService.Ask"

	if strings.TrimSpace(q.QueryText) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "query_text is required", nil)
	}

	language := q.Language
	if language == "" {
		language = models.LanguageEN
	}

	s.log.WithFields(logrus.Fields{
		"user_id":  q.UserID,
		"language": language,
	}).Infof("received chat query: %q", q.QueryText)

	terms, err := s.expander.Expand(ctx, q.QueryText, language)
	if err != nil {
		return nil, s.fail(ctx, q, language, nil,
			utils.E(utils.CodeInternal, op, "synonym expansion failed", err))
	}

	expandedText := q.QueryText
	if len(terms) > 0 {
		expandedText += " " + strings.Join(terms, " ")
	}

	queryVec, err := s.embedder.Embed(ctx, expandedText)
	if err != nil {
		msg := "failed to embed query"
		if errors.Is(err, embedding.ErrModelUnavailable) {
			msg = "embedding model unavailable"
		}
		return nil, s.fail(ctx, q, language, nil,
			utils.E(utils.CodeUnavailable, op, msg, err))
	}

	faqs, err := s.faqs.GetAll(ctx)
	if err != nil {
		return nil, s.fail(ctx, q, language, nil,
			utils.E(utils.CodeInternal, op, "failed to load knowledge base", err))
	}

	if len(faqs) == 0 {
		s.log.Warn("knowledge base is empty")
		resp := &models.ChatResponse{
			BotResponse: nlp.MsgEmptyKnowledgeBase,
			Status:      models.StatusUnanswered,
			Language:    language,
		}
		s.appendLog(ctx, q, language, resp.BotResponse, resp.Status, nil)
		s.appendRecord(ctx, q, language, resp.Status, nil, queryVec, terms)
		return resp, nil
	}

	best, highest := nlp.RankFAQs(queryVec, faqs)

	var score *float64
	if best != nil {
		score = &highest
		s.log.WithFields(logrus.Fields{
			"faq_id": best.QuestionID,
			"score":  highest,
		}).Info("best match")
	}

	text, status := nlp.Decide(best, highest, language, s.threshold)

	resp := &models.ChatResponse{
		BotResponse:     text,
		Status:          status,
		Language:        language,
		SimilarityScore: score,
	}

	s.appendLog(ctx, q, language, text, status, score)
	s.appendRecord(ctx, q, language, status, score, queryVec, terms)

	return resp, nil
}

// fail appends the error-path log entry, then hands the error back to the
// caller. The entry is written before the error surfaces; if the append
// itself fails that is diagnostic only.
func (s *chatService) fail(ctx context.Context, q models.ChatQuery, language string, score *float64, err error) error {
	s.log.WithError(err).WithFields(logrus.Fields{
		"user_id": q.UserID,
	}).Errorf("error processing chat query %q", q.QueryText)

	s.appendLog(ctx, q, language, nlp.MsgInternalError, models.StatusError, score)
	return err
}

func (s *chatService) appendLog(ctx context.Context, q models.ChatQuery, language, responseText string, status models.ChatStatus, score *float64) {
	entry := &models.LogEntry{
		Timestamp:       time.Now().UTC(),
		UserID:          q.UserID,
		QueryText:       q.QueryText,
		BotResponseText: responseText,
		Status:          status,
		Language:        language,
		SimilarityScore: score,
	}

	id, err := s.logs.Insert(ctx, entry)
	if err != nil {
		s.log.WithError(err).WithField("user_id", q.UserID).Error("failed to append interaction log")
		return
	}
	s.log.WithField("log_id", id).Debug("interaction logged")
}

// appendRecord feeds the Postgres analytics side-channel, written on every
// non-error outcome. Best-effort: a failure here must never reach the
// caller.
func (s *chatService) appendRecord(ctx context.Context, q models.ChatQuery, language string, status models.ChatStatus, score *float64, queryVec []float32, terms []string) {
	if s.records == nil {
		return
	}

	meta, _ := json.Marshal(map[string]any{"expanded_terms": terms})
	rec := &models.QueryRecord{
		ID:              uuid.NewString(),
		UserID:          q.UserID,
		QueryText:       q.QueryText,
		Status:          status,
		Language:        language,
		SimilarityScore: score,
		Embedding:       pgvector.NewVector(queryVec),
		Metadata:        datatypes.JSON(meta),
		Timestamp:       time.Now().UTC(),
	}

	if err := s.records.Insert(ctx, rec); err != nil {
		s.log.WithError(err).Warn("failed to append query analytics record")
	}
}
