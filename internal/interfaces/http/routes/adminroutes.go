package routes

import (
	"github.com/gin-gonic/gin"

	"tavern/internal/interfaces/http/handlers"
	"tavern/internal/interfaces/http/middleware"
	"tavern/internal/shared/authorization"
)

// AdminRouteConfig holds dependencies for admin routes.
type AdminRouteConfig struct {
	AdminHandler   *handlers.AdminHandler
	SessionHandler *handlers.SessionHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupAdminRoutes configures the admin-only surface.
func SetupAdminRoutes(engine *gin.Engine, cfg *AdminRouteConfig) {
	admin := engine.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth())
	admin.Use(authorization.RequireAdmin())
	{
		admin.GET("/users", cfg.AdminHandler.ListUsers)
		admin.PUT("/users/:id/plan", cfg.AdminHandler.ChangeUserPlan)
		admin.GET("/feedback", cfg.AdminHandler.ListFeedback)
		admin.GET("/sessions/stats", cfg.SessionHandler.SessionStats)
	}
}
