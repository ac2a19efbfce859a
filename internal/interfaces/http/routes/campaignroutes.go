package routes

import (
	"github.com/gin-gonic/gin"

	"tavern/internal/domain/entitlement"
	"tavern/internal/interfaces/http/handlers"
	"tavern/internal/interfaces/http/middleware"
)

// CampaignRouteConfig holds dependencies for campaign routes.
type CampaignRouteConfig struct {
	CampaignHandler *handlers.CampaignHandler
	SessionHandler  *handlers.SessionHandler
	AuthMiddleware  *middleware.AuthMiddleware
	CampaignQuota   *middleware.CampaignQuotaMiddleware
	FeatureGate     *middleware.FeatureGateMiddleware
}

// SetupCampaignRoutes configures campaign CRUD, joining, join requests and
// the live session room.
func SetupCampaignRoutes(engine *gin.Engine, cfg *CampaignRouteConfig) {
	campaigns := engine.Group("/campaigns")
	campaigns.Use(cfg.AuthMiddleware.RequireAuth())
	{
		campaigns.GET("", cfg.CampaignHandler.ListMyCampaigns)
		campaigns.POST("",
			cfg.CampaignQuota.CheckCampaignCreation(),
			cfg.CampaignHandler.CreateCampaign)
		campaigns.GET("/:id", cfg.CampaignHandler.GetCampaign)
		campaigns.POST("/:id/join",
			cfg.CampaignQuota.CheckPlayerCap(),
			cfg.CampaignHandler.JoinCampaign)
		campaigns.POST("/:id/join-requests", cfg.CampaignHandler.RequestJoin)
		campaigns.GET("/:id/session",
			cfg.FeatureGate.RequireFeature(entitlement.FeatureSessionChat),
			cfg.SessionHandler.JoinSession)
	}

	joinRequests := engine.Group("/join-requests")
	joinRequests.Use(cfg.AuthMiddleware.RequireAuth())
	{
		joinRequests.POST("/:id/approve",
			cfg.CampaignQuota.CheckJoinRequestApproval(),
			cfg.CampaignHandler.ApproveJoinRequest)
		joinRequests.POST("/:id/decline", cfg.CampaignHandler.DeclineJoinRequest)
	}
}
