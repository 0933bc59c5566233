package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shramik-saathi/backend/internal/models"
	"github.com/shramik-saathi/backend/internal/providers/embedding"
	mongorepo "github.com/shramik-saathi/backend/internal/repositories/mongo"
	pgrepo "github.com/shramik-saathi/backend/internal/repositories/postgres"
	"github.com/shramik-saathi/backend/internal/utils"
)

// ReviewService backs the admin escalation workflow: browsing the
// interaction log, answering escalated queries, and growing the knowledge
// base.
type ReviewService interface {
	UnansweredLogs(ctx context.Context, limit int64) ([]models.LogEntry, error)
	AllLogs(ctx context.Context, limit int64) ([]models.LogEntry, error)
	SubmitAnswer(ctx context.Context, logID, answer string) error
	AddFAQ(ctx context.Context, f *models.FAQ) error
	SimilarUnanswered(ctx context.Context, queryText string, limit int) ([]models.QueryRecord, error)
}

type reviewService struct {
	logs     mongorepo.LogRepository
	faqs     mongorepo.FAQRepository
	records  pgrepo.QueryRecordRepository
	embedder embedding.Provider
}

func NewReviewService(
	logs mongorepo.LogRepository,
	faqs mongorepo.FAQRepository,
	records pgrepo.QueryRecordRepository,
	embedder embedding.Provider,
) ReviewService {
	return &reviewService{logs: logs, faqs: faqs, records: records, embedder: embedder}
}

func (s *reviewService) UnansweredLogs(ctx context.Context, limit int64) ([]models.LogEntry, error) {
	const op = "ReviewService.UnansweredLogs"

	out, err := s.logs.ListUnanswered(ctx, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list unanswered logs", err)
	}
	return out, nil
}

func (s *reviewService) AllLogs(ctx context.Context, limit int64) ([]models.LogEntry, error) {
	const op = "ReviewService.AllLogs"

	out, err := s.logs.ListAll(ctx, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list logs", err)
	}
	return out, nil
}

func (s *reviewService) SubmitAnswer(ctx context.Context, logID, answer string) error {
	const op = "ReviewService.SubmitAnswer"

	if logID == "" || strings.TrimSpace(answer) == "" {
		return utils.E(utils.CodeInvalidArgument, op, "log_id and answer are required", nil)
	}

	err := s.logs.SubmitAnswer(ctx, logID, answer, time.Now().UTC())
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "log entry not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to submit answer", err)
	}
	return nil
}

// AddFAQ embeds the record the same way the offline ingest pipeline does
// (question + answers + keywords) and upserts it by question_id.
func (s *reviewService) AddFAQ(ctx context.Context, f *models.FAQ) error {
	const op = "ReviewService.AddFAQ"

	if f == nil || f.QuestionID == "" || strings.TrimSpace(f.Question) == "" {
		return utils.E(utils.CodeInvalidArgument, op, "question_id and question are required", nil)
	}

	text := EmbeddingText(f)
	if text == "" {
		return utils.E(utils.CodeInvalidArgument, op, "faq has no text to embed", nil)
	}

	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return utils.E(utils.CodeUnavailable, op, "failed to embed faq", err)
	}
	f.Embedding = vec

	if err := s.faqs.Upsert(ctx, f); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to store faq", err)
	}
	return nil
}

func (s *reviewService) SimilarUnanswered(ctx context.Context, queryText string, limit int) ([]models.QueryRecord, error) {
	const op = "ReviewService.SimilarUnanswered"

	if strings.TrimSpace(queryText) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "query_text is required", nil)
	}
	if s.records == nil {
		return nil, utils.E(utils.CodeUnavailable, op, "query analytics store is not configured", nil)
	}

	vec, err := s.embedder.Embed(ctx, queryText)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to embed query", err)
	}

	out, err := s.records.SimilarUnanswered(ctx, vec, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to search similar queries", err)
	}
	return out, nil
}

// EmbeddingText composes the text a FAQ record is embedded from. Shared by
// the ingest pipeline and the admin add-FAQ path so both produce vectors in
// the same space.
func EmbeddingText(f *models.FAQ) string {
	parts := []string{
		f.Question,
		f.AnswerEN,
		f.AnswerHI,
		strings.Join(f.KeywordsEN, " "),
		strings.Join(f.KeywordsHI, " "),
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
