package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/shramik-saathi/backend/internal/models"
	"github.com/shramik-saathi/backend/internal/nlp"
	"github.com/shramik-saathi/backend/internal/providers/embedding"
	"github.com/shramik-saathi/backend/internal/utils"
)

type stubExpander struct {
	terms []string
	err   error
}

func (s *stubExpander) Expand(_ context.Context, _, _ string) ([]string, error) {
	return s.terms, s.err
}

type stubEmbedder struct {
	vec  []float32
	err  error
	seen []string
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	s.seen = append(s.seen, text)
	if s.err != nil {
		return nil, s.err
	}
	return s.vec, nil
}

func (s *stubEmbedder) Close() error { return nil }

type stubFAQRepo struct {
	faqs []models.FAQ
	err  error
}

func (s *stubFAQRepo) GetAll(_ context.Context) ([]models.FAQ, error) {
	return s.faqs, s.err
}

func (s *stubFAQRepo) Upsert(_ context.Context, _ *models.FAQ) error { return nil }

type stubLogRepo struct {
	entries []models.LogEntry
	err     error
}

func (s *stubLogRepo) Insert(_ context.Context, e *models.LogEntry) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.entries = append(s.entries, *e)
	return "log-id", nil
}

func (s *stubLogRepo) ListUnanswered(_ context.Context, _ int64) ([]models.LogEntry, error) {
	return nil, nil
}

func (s *stubLogRepo) ListAll(_ context.Context, _ int64) ([]models.LogEntry, error) {
	return nil, nil
}

func (s *stubLogRepo) SubmitAnswer(_ context.Context, _, _ string, _ time.Time) error {
	return nil
}

type stubRecordRepo struct {
	records []models.QueryRecord
	err     error
}

func (s *stubRecordRepo) Insert(_ context.Context, rec *models.QueryRecord) error {
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, *rec)
	return nil
}

func (s *stubRecordRepo) SimilarUnanswered(_ context.Context, _ []float32, _ int) ([]models.QueryRecord, error) {
	return nil, nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func bilingualFAQ(id string, emb ...float32) models.FAQ {
	return models.FAQ{
		QuestionID: id,
		AnswerEN:   "answer " + id + " (en)",
		AnswerHI:   "answer " + id + " (hi)",
		Embedding:  emb,
	}
}

func TestChatServiceAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("confident match answers and logs once", func(t *testing.T) {
		logs := &stubLogRepo{}
		svc := NewChatService(
			&stubExpander{terms: []string{"wage", "मज़दूरी"}},
			&stubEmbedder{vec: []float32{1, 0}},
			&stubFAQRepo{faqs: []models.FAQ{
				bilingualFAQ("q1", 0, 1),
				bilingualFAQ("q2", 1, 0),
			}},
			logs, nil, 0.2, quietLogger(),
		)

		resp, err := svc.Ask(ctx, models.ChatQuery{
			UserID:    "u1",
			QueryText: "minimum wage",
			Language:  models.LanguageEN,
		})
		require.NoError(t, err)
		require.Equal(t, "answer q2 (en)", resp.BotResponse)
		require.Equal(t, models.StatusAnswered, resp.Status)
		require.NotNil(t, resp.SimilarityScore)
		require.InDelta(t, 1.0, *resp.SimilarityScore, 1e-9)

		require.Len(t, logs.entries, 1)
		entry := logs.entries[0]
		require.Equal(t, "u1", entry.UserID)
		require.Equal(t, "minimum wage", entry.QueryText)
		require.Equal(t, models.StatusAnswered, entry.Status)
		require.NotNil(t, entry.SimilarityScore)
	})

	t.Run("hindi query gets the hindi answer", func(t *testing.T) {
		svc := NewChatService(
			&stubExpander{},
			&stubEmbedder{vec: []float32{1, 0}},
			&stubFAQRepo{faqs: []models.FAQ{bilingualFAQ("q1", 1, 0)}},
			&stubLogRepo{}, nil, 0.2, quietLogger(),
		)

		resp, err := svc.Ask(ctx, models.ChatQuery{
			UserID:    "u1",
			QueryText: "न्यूनतम मज़दूरी",
			Language:  models.LanguageHI,
		})
		require.NoError(t, err)
		require.Equal(t, "answer q1 (hi)", resp.BotResponse)
		require.Equal(t, models.StatusAnswered, resp.Status)
	})

	t.Run("low similarity escalates as unanswered", func(t *testing.T) {
		logs := &stubLogRepo{}
		svc := NewChatService(
			&stubExpander{},
			&stubEmbedder{vec: []float32{1, 0}},
			&stubFAQRepo{faqs: []models.FAQ{bilingualFAQ("q1", 0, 1)}},
			logs, nil, 0.2, quietLogger(),
		)

		resp, err := svc.Ask(ctx, models.ChatQuery{UserID: "u1", QueryText: "unrelated"})
		require.NoError(t, err)
		require.Equal(t, nlp.MsgEscalation, resp.BotResponse)
		require.Equal(t, models.StatusUnanswered, resp.Status)
		require.NotNil(t, resp.SimilarityScore)

		require.Len(t, logs.entries, 1)
		require.Equal(t, models.StatusUnanswered, logs.entries[0].Status)
	})

	t.Run("empty knowledge base", func(t *testing.T) {
		logs := &stubLogRepo{}
		svc := NewChatService(
			&stubExpander{},
			&stubEmbedder{vec: []float32{1, 0}},
			&stubFAQRepo{},
			logs, nil, 0.2, quietLogger(),
		)

		resp, err := svc.Ask(ctx, models.ChatQuery{UserID: "u1", QueryText: "anything"})
		require.NoError(t, err)
		require.Equal(t, nlp.MsgEmptyKnowledgeBase, resp.BotResponse)
		require.Equal(t, models.StatusUnanswered, resp.Status)
		require.Nil(t, resp.SimilarityScore)

		require.Len(t, logs.entries, 1)
		require.Nil(t, logs.entries[0].SimilarityScore)
	})

	t.Run("no usable embeddings behaves like empty knowledge base", func(t *testing.T) {
		svc := NewChatService(
			&stubExpander{},
			&stubEmbedder{vec: []float32{1, 0}},
			&stubFAQRepo{faqs: []models.FAQ{{QuestionID: "q1", AnswerEN: "x"}}},
			&stubLogRepo{}, nil, 0.2, quietLogger(),
		)

		resp, err := svc.Ask(ctx, models.ChatQuery{UserID: "u1", QueryText: "anything"})
		require.NoError(t, err)
		require.Equal(t, nlp.MsgEmptyKnowledgeBase, resp.BotResponse)
		require.Equal(t, models.StatusUnanswered, resp.Status)
		require.Nil(t, resp.SimilarityScore)
	})

	t.Run("expanded terms reach the embedder", func(t *testing.T) {
		emb := &stubEmbedder{vec: []float32{1, 0}}
		svc := NewChatService(
			&stubExpander{terms: []string{"salary", "वेतन"}},
			emb,
			&stubFAQRepo{faqs: []models.FAQ{bilingualFAQ("q1", 1, 0)}},
			&stubLogRepo{}, nil, 0.2, quietLogger(),
		)

		_, err := svc.Ask(ctx, models.ChatQuery{UserID: "u1", QueryText: "pay"})
		require.NoError(t, err)
		require.Equal(t, []string{"pay salary वेतन"}, emb.seen)
	})

	t.Run("embedder failure logs an error entry", func(t *testing.T) {
		logs := &stubLogRepo{}
		svc := NewChatService(
			&stubExpander{},
			&stubEmbedder{err: embedding.ErrModelUnavailable},
			&stubFAQRepo{faqs: []models.FAQ{bilingualFAQ("q1", 1, 0)}},
			logs, nil, 0.2, quietLogger(),
		)

		resp, err := svc.Ask(ctx, models.ChatQuery{UserID: "u1", QueryText: "anything"})
		require.Error(t, err)
		require.Nil(t, resp)
		require.True(t, utils.IsCode(err, utils.CodeUnavailable))

		require.Len(t, logs.entries, 1)
		require.Equal(t, models.StatusError, logs.entries[0].Status)
		require.Equal(t, nlp.MsgInternalError, logs.entries[0].BotResponseText)
	})

	t.Run("expander failure logs an error entry", func(t *testing.T) {
		logs := &stubLogRepo{}
		svc := NewChatService(
			&stubExpander{err: errors.New("mongo down")},
			&stubEmbedder{vec: []float32{1, 0}},
			&stubFAQRepo{faqs: []models.FAQ{bilingualFAQ("q1", 1, 0)}},
			logs, nil, 0.2, quietLogger(),
		)

		_, err := svc.Ask(ctx, models.ChatQuery{UserID: "u1", QueryText: "anything"})
		require.Error(t, err)
		require.Len(t, logs.entries, 1)
		require.Equal(t, models.StatusError, logs.entries[0].Status)
	})

	t.Run("blank query is rejected without logging", func(t *testing.T) {
		logs := &stubLogRepo{}
		svc := NewChatService(
			&stubExpander{},
			&stubEmbedder{vec: []float32{1, 0}},
			&stubFAQRepo{},
			logs, nil, 0.2, quietLogger(),
		)

		_, err := svc.Ask(ctx, models.ChatQuery{UserID: "u1", QueryText: "   "})
		require.Error(t, err)
		require.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
		require.Empty(t, logs.entries)
	})

	t.Run("log append failure never alters the response", func(t *testing.T) {
		svc := NewChatService(
			&stubExpander{},
			&stubEmbedder{vec: []float32{1, 0}},
			&stubFAQRepo{faqs: []models.FAQ{bilingualFAQ("q1", 1, 0)}},
			&stubLogRepo{err: errors.New("mongo down")},
			nil, 0.2, quietLogger(),
		)

		resp, err := svc.Ask(ctx, models.ChatQuery{UserID: "u1", QueryText: "wages"})
		require.NoError(t, err)
		require.Equal(t, "answer q1 (en)", resp.BotResponse)
		require.Equal(t, models.StatusAnswered, resp.Status)
	})

	t.Run("analytics row is written on every non-error outcome", func(t *testing.T) {
		records := &stubRecordRepo{}
		logs := &stubLogRepo{}
		faqs := &stubFAQRepo{}
		svc := NewChatService(
			&stubExpander{},
			&stubEmbedder{vec: []float32{1, 0}},
			faqs, logs, records, 0.2, quietLogger(),
		)

		// empty knowledge base
		resp, err := svc.Ask(ctx, models.ChatQuery{UserID: "u1", QueryText: "anything"})
		require.NoError(t, err)
		require.Equal(t, nlp.MsgEmptyKnowledgeBase, resp.BotResponse)
		require.Len(t, records.records, 1)
		require.Nil(t, records.records[0].SimilarityScore)

		// answered
		faqs.faqs = []models.FAQ{bilingualFAQ("q1", 1, 0)}
		resp, err = svc.Ask(ctx, models.ChatQuery{UserID: "u1", QueryText: "wages"})
		require.NoError(t, err)
		require.Equal(t, models.StatusAnswered, resp.Status)
		require.Len(t, records.records, 2)
		require.NotNil(t, records.records[1].SimilarityScore)

		// the canonical log got exactly one entry per interaction either way
		require.Len(t, logs.entries, 2)
	})

	t.Run("analytics failure never alters the response", func(t *testing.T) {
		svc := NewChatService(
			&stubExpander{},
			&stubEmbedder{vec: []float32{1, 0}},
			&stubFAQRepo{faqs: []models.FAQ{bilingualFAQ("q1", 1, 0)}},
			&stubLogRepo{},
			&stubRecordRepo{err: errors.New("postgres down")},
			0.2, quietLogger(),
		)

		resp, err := svc.Ask(ctx, models.ChatQuery{UserID: "u1", QueryText: "wages"})
		require.NoError(t, err)
		require.Equal(t, "answer q1 (en)", resp.BotResponse)
	})

	t.Run("missing language defaults to english", func(t *testing.T) {
		svc := NewChatService(
			&stubExpander{},
			&stubEmbedder{vec: []float32{1, 0}},
			&stubFAQRepo{faqs: []models.FAQ{bilingualFAQ("q1", 1, 0)}},
			&stubLogRepo{}, nil, 0.2, quietLogger(),
		)

		resp, err := svc.Ask(ctx, models.ChatQuery{UserID: "u1", QueryText: "wages"})
		require.NoError(t, err)
		require.Equal(t, models.LanguageEN, resp.Language)
		require.Equal(t, "answer q1 (en)", resp.BotResponse)
	})
}
