package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shramik-saathi/backend/internal/models"
	"github.com/shramik-saathi/backend/internal/services"
	"github.com/shramik-saathi/backend/internal/utils"
)

type AdminHandler struct {
	svc services.ReviewService
}

func NewAdminHandler(svc services.ReviewService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func listLimit(c *gin.Context) int64 {
	n, err := strconv.ParseInt(c.DefaultQuery("limit", "0"), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (h *AdminHandler) UnansweredLogs(c *gin.Context) {
	logs, err := h.svc.UnansweredLogs(c.Request.Context(), listLimit(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (h *AdminHandler) AllLogs(c *gin.Context) {
	logs, err := h.svc.AllLogs(c.Request.Context(), listLimit(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

type SubmitAnswerRequest struct {
	Answer string `json:"answer" binding:"required"`
}

func (h *AdminHandler) SubmitAnswer(c *gin.Context) {
	logID := c.Param("log_id")

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AdminHandler.SubmitAnswer", "answer cannot be empty", err))
		return
	}

	if err := h.svc.SubmitAnswer(c.Request.Context(), logID, req.Answer); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "answer submitted successfully"})
}

type AddFAQRequest struct {
	QuestionID string   `json:"question_id" binding:"required"`
	Category   string   `json:"category"`
	Question   string   `json:"question" binding:"required"`
	AnswerEN   string   `json:"answer_en"`
	AnswerHI   string   `json:"answer_hi"`
	KeywordsEN []string `json:"keywords_en"`
	KeywordsHI []string `json:"keywords_hi"`
}

func (h *AdminHandler) AddFAQ(c *gin.Context) {
	var req AddFAQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AdminHandler.AddFAQ", "invalid request body", err))
		return
	}

	faq := &models.FAQ{
		QuestionID: req.QuestionID,
		Category:   req.Category,
		Question:   req.Question,
		AnswerEN:   req.AnswerEN,
		AnswerHI:   req.AnswerHI,
		KeywordsEN: req.KeywordsEN,
		KeywordsHI: req.KeywordsHI,
	}

	if err := h.svc.AddFAQ(c.Request.Context(), faq); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "faq stored", "question_id": faq.QuestionID})
}

func (h *AdminHandler) SimilarQueries(c *gin.Context) {
	queryText := c.Query("query_text")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	out, err := h.svc.SimilarUnanswered(c.Request.Context(), queryText, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
