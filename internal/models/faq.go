package models

// FAQ is one curated knowledge-base entry, keyed by QuestionID. Records are
// written by the offline ingest pipeline and are read-only to the matching
// engine.
type FAQ struct {
	QuestionID string `bson:"question_id" json:"question_id"`
	Category   string `bson:"category" json:"category"`
	Question   string `bson:"question" json:"question"`

	// Answers are bilingual; either side may be empty.
	AnswerEN string `bson:"answer_en" json:"answer_en"`
	AnswerHI string `bson:"answer_hi" json:"answer_hi"`

	KeywordsEN []string `bson:"keywords_en" json:"keywords_en"`
	KeywordsHI []string `bson:"keywords_hi" json:"keywords_hi"`

	// Empty when ingestion failed to embed the record; the ranker skips
	// such records.
	Embedding []float32 `bson:"embedding" json:"-"`
}

func (f *FAQ) HasEmbedding() bool { return len(f.Embedding) > 0 }
