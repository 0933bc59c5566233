package handlers

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shramik-saathi/backend/internal/services"
	"github.com/shramik-saathi/backend/internal/utils"
)

const maxDocumentBytes = 10 << 20

type DocumentHandler struct {
	svc services.DocumentService
}

func NewDocumentHandler(svc services.DocumentService) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

func (h *DocumentHandler) Upload(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "DocumentHandler.Upload", "file is required", err))
		return
	}
	if fileHeader.Size > maxDocumentBytes {
		writeError(c, utils.E(utils.CodeInvalidArgument, "DocumentHandler.Upload", "file too large", nil))
		return
	}

	docType := c.PostForm("doc_type")
	if docType == "" {
		docType = "other"
	}

	f, err := fileHeader.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, "DocumentHandler.Upload", "failed to read file", err))
		return
	}
	defer f.Close()

	objectName := "documents/" + userID + "/" + uuid.NewString() + path.Ext(fileHeader.Filename)
	mimeType := fileHeader.Header.Get("Content-Type")

	doc, err := h.svc.Upload(c.Request.Context(), userID, docType, fileHeader.Filename,
		int(fileHeader.Size), mimeType, objectName, f)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (h *DocumentHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	docs, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}
