package routes

import (
	"github.com/gin-gonic/gin"

	"tavern/internal/interfaces/http/handlers"
	"tavern/internal/interfaces/http/middleware"
)

// CharacterRouteConfig holds dependencies for character routes.
type CharacterRouteConfig struct {
	CharacterHandler *handlers.CharacterHandler
	AuthMiddleware   *middleware.AuthMiddleware
	CharacterQuota   *middleware.CharacterQuotaMiddleware
}

// SetupCharacterRoutes configures character creation and listing.
func SetupCharacterRoutes(engine *gin.Engine, cfg *CharacterRouteConfig) {
	characters := engine.Group("/characters")
	characters.Use(cfg.AuthMiddleware.RequireAuth())
	{
		characters.GET("", cfg.CharacterHandler.ListMyCharacters)
		characters.POST("",
			cfg.CharacterQuota.CheckCharacterCreation(),
			cfg.CharacterHandler.CreateCharacter)
	}
}
