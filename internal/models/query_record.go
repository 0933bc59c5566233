package models

import (
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// QueryRecord is the analytics side-channel for chat interactions: one row
// per query with its embedding, written best-effort after the canonical
// interaction log. The admin similar-queries lookup searches these rows by
// vector distance.
type QueryRecord struct {
	ID        string     `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    string     `gorm:"column:user_id;type:text;index" json:"user_id"`
	QueryText string     `gorm:"column:query_text;type:text" json:"query_text"`
	Status    ChatStatus `gorm:"column:status;type:text;index" json:"status"`
	Language  string     `gorm:"column:language;type:text" json:"language"`

	SimilarityScore *float64        `gorm:"column:similarity_score" json:"similarity_score"`
	Embedding       pgvector.Vector `gorm:"column:embedding;type:vector(768)" json:"-"`
	Metadata        datatypes.JSON  `gorm:"column:metadata;type:jsonb" json:"metadata"`

	Timestamp time.Time `gorm:"column:timestamp;type:timestamptz;index" json:"timestamp"`
}

func (QueryRecord) TableName() string { return "query_records" }
