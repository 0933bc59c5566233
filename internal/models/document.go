package models

import "time"

// WorkerDocument is the metadata row for a file a laborer uploaded
// (identity proof, work certificate, wage slip). The file itself lives in
// object storage at FilePath.
type WorkerDocument struct {
	ID       string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID   string `gorm:"column:user_id;type:uuid;index" json:"user_id"`
	DocType  string `gorm:"column:doc_type;type:text" json:"doc_type"`
	FileName string `gorm:"column:file_name;type:text" json:"file_name"`
	FilePath string `gorm:"column:file_path;type:text" json:"file_path"`

	FileSize int    `gorm:"column:file_size;type:integer" json:"file_size"`
	MimeType string `gorm:"column:mime_type;type:text" json:"mime_type"`

	UploadAt time.Time `gorm:"column:upload_at;type:timestamptz" json:"upload_at"`
}

func (WorkerDocument) TableName() string { return "worker_documents" }
