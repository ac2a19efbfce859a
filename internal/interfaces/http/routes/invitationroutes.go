package routes

import (
	"github.com/gin-gonic/gin"

	"tavern/internal/interfaces/http/handlers"
	"tavern/internal/interfaces/http/middleware"
)

// InvitationRouteConfig holds dependencies for invitation routes.
type InvitationRouteConfig struct {
	InvitationHandler *handlers.InvitationHandler
	AuthMiddleware    *middleware.AuthMiddleware
	InvitationQuota   *middleware.InvitationQuotaMiddleware
}

// SetupInvitationRoutes configures sending, listing and answering
// invitations. The accept gate peeks the response body and only runs the
// quota state machine on accept intent.
func SetupInvitationRoutes(engine *gin.Engine, cfg *InvitationRouteConfig) {
	invitations := engine.Group("/invitations")
	invitations.Use(cfg.AuthMiddleware.RequireAuth())
	{
		invitations.GET("", cfg.InvitationHandler.ListMyInvitations)
		invitations.PUT("/:id",
			cfg.InvitationQuota.CheckInvitationAccept(),
			cfg.InvitationHandler.Respond)
	}

	campaigns := engine.Group("/campaigns")
	campaigns.Use(cfg.AuthMiddleware.RequireAuth())
	{
		campaigns.POST("/:id/invitations", cfg.InvitationHandler.Invite)
	}
}
