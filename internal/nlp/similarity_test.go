package nlp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shramik-saathi/backend/internal/models"
)

func TestCosineSimilarity(t *testing.T) {
	t.Run("identical vectors score one", func(t *testing.T) {
		v := []float32{0.3, -0.5, 0.8}
		require.InDelta(t, 1.0, CosineSimilarity(v, v), 1e-9)
	})

	t.Run("orthogonal vectors score zero", func(t *testing.T) {
		require.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	})

	t.Run("opposite vectors score minus one", func(t *testing.T) {
		require.InDelta(t, -1.0, CosineSimilarity([]float32{1, 2}, []float32{-1, -2}), 1e-9)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := []float32{0.1, 0.9, -0.3}
		b := []float32{0.7, 0.2, 0.4}
		require.Equal(t, CosineSimilarity(a, b), CosineSimilarity(b, a))
	})

	t.Run("empty vector scores zero", func(t *testing.T) {
		require.Equal(t, 0.0, CosineSimilarity(nil, []float32{1, 2}))
		require.Equal(t, 0.0, CosineSimilarity([]float32{1, 2}, nil))
	})

	t.Run("zero norm scores zero", func(t *testing.T) {
		require.Equal(t, 0.0, CosineSimilarity([]float32{0, 0, 0}, []float32{1, 2, 3}))
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		a := []float32{0.25, -0.75, 0.5, 0.1}
		b := []float32{0.6, 0.3, -0.2, 0.9}
		first := CosineSimilarity(a, b)
		for i := 0; i < 100; i++ {
			require.Equal(t, first, CosineSimilarity(a, b))
		}
	})
}

func TestRankFAQs(t *testing.T) {
	faq := func(id string, emb ...float32) models.FAQ {
		return models.FAQ{QuestionID: id, Embedding: emb}
	}

	t.Run("highest score wins", func(t *testing.T) {
		candidates := []models.FAQ{
			faq("q1", 0, 1),
			faq("q2", 1, 0),
			faq("q3", 1, 1),
		}
		best, score := RankFAQs([]float32{1, 0}, candidates)
		require.NotNil(t, best)
		require.Equal(t, "q2", best.QuestionID)
		require.InDelta(t, 1.0, score, 1e-9)
	})

	t.Run("exact tie keeps the earliest candidate", func(t *testing.T) {
		candidates := []models.FAQ{
			faq("first", 1, 0),
			faq("second", 1, 0),
			faq("third", 1, 0),
		}
		best, _ := RankFAQs([]float32{1, 0}, candidates)
		require.NotNil(t, best)
		require.Equal(t, "first", best.QuestionID)
	})

	t.Run("candidates without embeddings are skipped", func(t *testing.T) {
		candidates := []models.FAQ{
			faq("missing"),
			faq("present", 1, 0),
		}
		best, score := RankFAQs([]float32{1, 0}, candidates)
		require.NotNil(t, best)
		require.Equal(t, "present", best.QuestionID)
		require.InDelta(t, 1.0, score, 1e-9)
	})

	t.Run("no usable candidates", func(t *testing.T) {
		best, score := RankFAQs([]float32{1, 0}, []models.FAQ{faq("a"), faq("b")})
		require.Nil(t, best)
		require.Equal(t, -1.0, score)
	})

	t.Run("empty candidate list", func(t *testing.T) {
		best, score := RankFAQs([]float32{1, 0}, nil)
		require.Nil(t, best)
		require.Equal(t, -1.0, score)
	})

	t.Run("zero-norm embedding still beats nothing", func(t *testing.T) {
		// a score of 0.0 is above the -1.0 floor, so a degenerate
		// embedding is still a candidate
		candidates := []models.FAQ{faq("zero", 0, 0)}
		best, score := RankFAQs([]float32{1, 0}, candidates)
		require.NotNil(t, best)
		require.Equal(t, "zero", best.QuestionID)
		require.Equal(t, 0.0, score)
	})
}
