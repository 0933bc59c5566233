package nlp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shramik-saathi/backend/internal/models"
)

func TestDecide(t *testing.T) {
	bilingual := &models.FAQ{
		QuestionID: "q1",
		AnswerEN:   "You can register at your local labour office.",
		AnswerHI:   "आप अपने स्थानीय श्रम कार्यालय में पंजीकरण कर सकते हैं।",
	}

	t.Run("nil best means empty knowledge base", func(t *testing.T) {
		msg, status := Decide(nil, -1.0, models.LanguageEN, DefaultConfidenceThreshold)
		require.Equal(t, MsgEmptyKnowledgeBase, msg)
		require.Equal(t, models.StatusUnanswered, status)
	})

	t.Run("score exactly at threshold is accepted", func(t *testing.T) {
		msg, status := Decide(bilingual, 0.2, models.LanguageEN, DefaultConfidenceThreshold)
		require.Equal(t, bilingual.AnswerEN, msg)
		require.Equal(t, models.StatusAnswered, status)
	})

	t.Run("score just below threshold escalates", func(t *testing.T) {
		msg, status := Decide(bilingual, 0.1999, models.LanguageEN, DefaultConfidenceThreshold)
		require.Equal(t, MsgEscalation, msg)
		require.Equal(t, models.StatusUnanswered, status)
	})

	t.Run("hindi preferred when requested and available", func(t *testing.T) {
		msg, status := Decide(bilingual, 0.9, models.LanguageHI, DefaultConfidenceThreshold)
		require.Equal(t, bilingual.AnswerHI, msg)
		require.Equal(t, models.StatusAnswered, status)
	})

	t.Run("hindi request falls back to english", func(t *testing.T) {
		enOnly := &models.FAQ{QuestionID: "q2", AnswerEN: "English only."}
		msg, status := Decide(enOnly, 0.9, models.LanguageHI, DefaultConfidenceThreshold)
		require.Equal(t, "English only.", msg)
		require.Equal(t, models.StatusAnswered, status)
	})

	t.Run("english request ignores hindi answer", func(t *testing.T) {
		hiOnly := &models.FAQ{QuestionID: "q3", AnswerHI: "केवल हिंदी।"}
		msg, status := Decide(hiOnly, 0.9, models.LanguageEN, DefaultConfidenceThreshold)
		require.Equal(t, MsgNoTranslation, msg)
		require.Equal(t, models.StatusAnswered, status)
	})

	t.Run("match with no answers at all still counts as answered", func(t *testing.T) {
		bare := &models.FAQ{QuestionID: "q4"}
		msg, status := Decide(bare, 0.9, models.LanguageHI, DefaultConfidenceThreshold)
		require.Equal(t, MsgNoTranslation, msg)
		require.Equal(t, models.StatusAnswered, status)
	})

	t.Run("custom threshold is honored", func(t *testing.T) {
		msg, status := Decide(bilingual, 0.5, models.LanguageEN, 0.6)
		require.Equal(t, MsgEscalation, msg)
		require.Equal(t, models.StatusUnanswered, status)

		msg, status = Decide(bilingual, 0.6, models.LanguageEN, 0.6)
		require.Equal(t, bilingual.AnswerEN, msg)
		require.Equal(t, models.StatusAnswered, status)
	})
}
