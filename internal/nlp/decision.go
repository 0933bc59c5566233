package nlp

import "github.com/shramik-saathi/backend/internal/models"

// DefaultConfidenceThreshold is the minimum cosine similarity accepted as a
// valid answer. Tunable via CONFIDENCE_THRESHOLD; the comparison is
// inclusive.
const DefaultConfidenceThreshold = 0.2

const (
	MsgEmptyKnowledgeBase = "I'm sorry, my knowledge base is currently empty. Please try again later."
	MsgEscalation         = "I'm sorry, I don't have a precise answer for that right now. Your query has been noted for review by our team."
	MsgNoTranslation      = "I found a relevant answer, but it's not available in your selected language."
	MsgInternalError      = "An internal error occurred while processing your request. Please try again."
)

// Decide applies the confidence threshold and language preference to the
// ranking result. It is stateless: identical inputs always produce the same
// output.
//
// A nil best means there was nothing to match against. A match at or above
// the threshold answers in Hindi when requested and available, falls back
// to English, and still counts as answered when neither translation exists
// (the caller gets the missing-translation notice instead of an answer).
func Decide(best *models.FAQ, score float64, language string, threshold float64) (string, models.ChatStatus) {
	if best == nil {
		return MsgEmptyKnowledgeBase, models.StatusUnanswered
	}

	if score >= threshold {
		if language == models.LanguageHI && best.AnswerHI != "" {
			return best.AnswerHI, models.StatusAnswered
		}
		if best.AnswerEN != "" {
			return best.AnswerEN, models.StatusAnswered
		}
		return MsgNoTranslation, models.StatusAnswered
	}

	return MsgEscalation, models.StatusUnanswered
}
