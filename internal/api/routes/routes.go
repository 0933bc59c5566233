package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/shramik-saathi/backend/internal/api/handlers"
	"github.com/shramik-saathi/backend/internal/api/middleware"
)

type Deps struct {
	Chat     *handlers.ChatHandler
	Auth     *handlers.AuthHandler
	OTP      *handlers.OTPHandler
	Admin    *handlers.AdminHandler
	Document *handlers.DocumentHandler
	WS       *handlers.WSHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Public
	r.POST("/register_api/register-user", d.Auth.Register)
	r.POST("/login_api/login", d.Auth.Login)
	r.POST("/otp_api/send-otp", d.OTP.Send)
	r.POST("/otp_api/verify-otp", d.OTP.Verify)

	// Authenticated (JWT)
	auth := r.Group("/")
	auth.Use(middleware.JWTAuth())

	auth.POST("/chat_api/chat", d.Chat.Chat)
	auth.GET("/ws/chat", d.WS.ChatWS)

	auth.POST("/documents/upload", d.Document.Upload)
	auth.GET("/documents", d.Document.List)

	// Admin review
	review := auth.Group("/admin_api")
	review.GET("/unanswered_logs", middleware.RequireReviewer(), d.Admin.UnansweredLogs)
	review.GET("/all_logs", middleware.RequireReviewer(), d.Admin.AllLogs)
	review.GET("/similar_queries", middleware.RequireReviewer(), d.Admin.SimilarQueries)
	review.POST("/answer/:log_id", middleware.RequireAdmin(), d.Admin.SubmitAnswer)
	review.POST("/add_faq", middleware.RequireAdmin(), d.Admin.AddFAQ)
}
