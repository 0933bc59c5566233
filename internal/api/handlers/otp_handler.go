package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shramik-saathi/backend/internal/services"
	"github.com/shramik-saathi/backend/internal/utils"
)

type OTPHandler struct {
	svc services.OTPService
}

func NewOTPHandler(svc services.OTPService) *OTPHandler {
	return &OTPHandler{svc: svc}
}

type SendOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

func (h *OTPHandler) Send(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "OTPHandler.Send", "invalid request body", err))
		return
	}

	if err := h.svc.Send(c.Request.Context(), strings.TrimSpace(req.Phone)); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP sent successfully"})
}

func (h *OTPHandler) Verify(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "OTPHandler.Verify", "invalid request body", err))
		return
	}

	ok, err := h.svc.Verify(c.Request.Context(), strings.TrimSpace(req.Phone), strings.TrimSpace(req.OTP))
	if err != nil {
		writeError(c, err)
		return
	}
	if !ok {
		writeError(c, utils.E(utils.CodeInvalidArgument, "OTPHandler.Verify", "invalid OTP", nil))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP verified"})
}
