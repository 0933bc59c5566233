package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shramik-saathi/backend/internal/models"
	"github.com/shramik-saathi/backend/internal/nlp"
	"github.com/shramik-saathi/backend/internal/services"
	"github.com/shramik-saathi/backend/internal/utils"
)

type ChatHandler struct {
	svc services.ChatService
}

func NewChatHandler(svc services.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

func (h *ChatHandler) Chat(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req models.ChatQuery
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ChatHandler.Chat", "invalid request body", err))
		return
	}
	req.UserID = userID

	resp, err := h.svc.Ask(c.Request.Context(), req)
	if err != nil {
		if utils.IsCode(err, utils.CodeInvalidArgument) {
			writeError(c, err)
			return
		}

		// Infrastructure failure: the interaction was already logged with
		// status error; the caller only gets the generic message.
		language := req.Language
		if language == "" {
			language = models.LanguageEN
		}
		c.JSON(http.StatusInternalServerError, models.ChatResponse{
			BotResponse: nlp.MsgInternalError,
			Status:      models.StatusError,
			Language:    language,
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}
