// Package routes mounts the HTTP route groups.
package routes

import (
	"github.com/gin-gonic/gin"

	"tavern/internal/interfaces/http/handlers"
	"tavern/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for auth routes.
type AuthRouteConfig struct {
	AuthHandler *handlers.AuthHandler
	RateLimiter *middleware.RateLimiter
}

// SetupAuthRoutes configures registration and login.
func SetupAuthRoutes(engine *gin.Engine, cfg *AuthRouteConfig) {
	auth := engine.Group("/auth")
	if cfg.RateLimiter != nil {
		auth.Use(cfg.RateLimiter.Limit())
	}
	{
		auth.POST("/register", cfg.AuthHandler.Register)
		auth.POST("/login", cfg.AuthHandler.Login)
	}
}
