package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	LanguageEN       = "en"
	LanguageHI       = "hi"
	LanguageHinglish = "hinglish"
)

type ChatStatus string

const (
	StatusAnswered   ChatStatus = "answered"
	StatusUnanswered ChatStatus = "unanswered"
	StatusError      ChatStatus = "error"
)

// ChatQuery is the transient engine input.
type ChatQuery struct {
	UserID    string `json:"user_id"`
	QueryText string `json:"query_text" binding:"required"`
	Language  string `json:"language"` // en|hi|hinglish, defaults to en
}

// ChatResponse is what the caller gets back. SimilarityScore is nil when
// there was no FAQ to compare against.
type ChatResponse struct {
	BotResponse     string     `json:"bot_response"`
	Status          ChatStatus `json:"status"`
	Language        string     `json:"language"`
	SimilarityScore *float64   `json:"similarity_score"`
}

// LogEntry is the immutable interaction record appended once per chat
// interaction, success or not. The engine never updates or deletes entries;
// the admin review flow owns the reviewed/answer fields.
type LogEntry struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Timestamp       time.Time          `bson:"timestamp" json:"timestamp"`
	UserID          string             `bson:"user_id" json:"user_id"`
	QueryText       string             `bson:"query_text" json:"query_text"`
	BotResponseText string             `bson:"bot_response_text" json:"bot_response_text"`
	Status          ChatStatus         `bson:"status" json:"status"`
	Language        string             `bson:"language" json:"language"`
	SimilarityScore *float64           `bson:"similarity_score,omitempty" json:"similarity_score,omitempty"`

	// Filled by the admin review flow, never by the engine.
	Answer     string     `bson:"answer,omitempty" json:"answer,omitempty"`
	AnsweredAt *time.Time `bson:"answered_at,omitempty" json:"answered_at,omitempty"`
}
