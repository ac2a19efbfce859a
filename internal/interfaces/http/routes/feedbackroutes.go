package routes

import (
	"github.com/gin-gonic/gin"

	"tavern/internal/interfaces/http/handlers"
	"tavern/internal/interfaces/http/middleware"
)

// FeedbackRouteConfig holds dependencies for feedback routes.
type FeedbackRouteConfig struct {
	FeedbackHandler *handlers.FeedbackHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// SetupFeedbackRoutes configures feedback submission.
func SetupFeedbackRoutes(engine *gin.Engine, cfg *FeedbackRouteConfig) {
	feedback := engine.Group("/feedback")
	feedback.Use(cfg.AuthMiddleware.RequireAuth())
	{
		feedback.POST("", cfg.FeedbackHandler.SubmitFeedback)
	}
}
