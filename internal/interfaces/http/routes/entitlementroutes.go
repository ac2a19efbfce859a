package routes

import (
	"github.com/gin-gonic/gin"

	"tavern/internal/interfaces/http/handlers"
	"tavern/internal/interfaces/http/middleware"
)

// EntitlementRouteConfig holds dependencies for entitlement routes.
type EntitlementRouteConfig struct {
	EntitlementHandler *handlers.EntitlementHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

// SetupEntitlementRoutes configures the plan catalog and the caller's
// effective entitlement surface.
func SetupEntitlementRoutes(engine *gin.Engine, cfg *EntitlementRouteConfig) {
	// public plan catalog
	engine.GET("/plans", cfg.EntitlementHandler.ListPlans)

	me := engine.Group("/me")
	me.Use(cfg.AuthMiddleware.RequireAuth())
	{
		me.GET("/entitlements", cfg.EntitlementHandler.GetMyEntitlements)
		me.GET("/limits", cfg.EntitlementHandler.GetMyLimits)
	}
}
