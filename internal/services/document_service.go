package services

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/shramik-saathi/backend/internal/models"
	pgrepo "github.com/shramik-saathi/backend/internal/repositories/postgres"
	"github.com/shramik-saathi/backend/internal/storage"
	"github.com/shramik-saathi/backend/internal/utils"
)

// DocumentService stores laborer documents (identity proofs, work
// certificates) in object storage and their metadata in Postgres.
type DocumentService interface {
	Upload(ctx context.Context, userID, docType, fileName string, fileSize int, mimeType, objectName string, r io.Reader) (*models.WorkerDocument, error)
	List(ctx context.Context, userID string) ([]models.WorkerDocument, error)
}

type documentService struct {
	repo     pgrepo.DocumentRepository
	uploader storage.Uploader
}

func NewDocumentService(repo pgrepo.DocumentRepository, uploader storage.Uploader) DocumentService {
	return &documentService{repo: repo, uploader: uploader}
}

func (s *documentService) Upload(ctx context.Context, userID, docType, fileName string, fileSize int, mimeType, objectName string, r io.Reader) (*models.WorkerDocument, error) {
	const op = "DocumentService.Upload"

	if userID == "" || objectName == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id and object_name are required", nil)
	}
	if s.uploader == nil {
		return nil, utils.E(utils.CodeInternal, op, "uploader is not configured", nil)
	}

	storedPath, err := s.uploader.Upload(ctx, objectName, mimeType, r)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to upload document", err)
	}

	row := &models.WorkerDocument{
		ID:       uuid.NewString(),
		UserID:   userID,
		DocType:  docType,
		FileName: fileName,
		FilePath: storedPath,
		FileSize: fileSize,
		MimeType: mimeType,
		UploadAt: time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, row); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to persist document metadata", err)
	}
	return row, nil
}

func (s *documentService) List(ctx context.Context, userID string) ([]models.WorkerDocument, error) {
	const op = "DocumentService.List"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	out, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list documents", err)
	}
	return out, nil
}
