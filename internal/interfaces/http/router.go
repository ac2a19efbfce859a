package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tavern/internal/interfaces/http/middleware"
	"tavern/internal/interfaces/http/routes"
)

// SetupRouter builds the Gin engine with the global middleware chain and
// every route group mounted.
func (c *Container) SetupRouter() *gin.Engine {
	gin.SetMode(c.cfg.Server.Mode)
	engine := gin.New()

	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(c.log))
	engine.Use(middleware.ErrorHandler())
	engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	engine.Use(middleware.SecurityHeaders())

	engine.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.SetupAuthRoutes(engine, &routes.AuthRouteConfig{
		AuthHandler: c.authHandler,
		RateLimiter: c.rateLimiter,
	})
	routes.SetupEntitlementRoutes(engine, &routes.EntitlementRouteConfig{
		EntitlementHandler: c.entitlementHandler,
		AuthMiddleware:     c.authMiddleware,
	})
	routes.SetupCampaignRoutes(engine, &routes.CampaignRouteConfig{
		CampaignHandler: c.campaignHandler,
		SessionHandler:  c.sessionHandler,
		AuthMiddleware:  c.authMiddleware,
		CampaignQuota:   c.campaignQuota,
		FeatureGate:     c.featureGate,
	})
	routes.SetupCharacterRoutes(engine, &routes.CharacterRouteConfig{
		CharacterHandler: c.characterHandler,
		AuthMiddleware:   c.authMiddleware,
		CharacterQuota:   c.characterQuota,
	})
	routes.SetupInvitationRoutes(engine, &routes.InvitationRouteConfig{
		InvitationHandler: c.invitationHandler,
		AuthMiddleware:    c.authMiddleware,
		InvitationQuota:   c.invitationQuota,
	})
	routes.SetupFeedbackRoutes(engine, &routes.FeedbackRouteConfig{
		FeedbackHandler: c.feedbackHandler,
		AuthMiddleware:  c.authMiddleware,
	})
	routes.SetupAdminRoutes(engine, &routes.AdminRouteConfig{
		AdminHandler:   c.adminHandler,
		SessionHandler: c.sessionHandler,
		AuthMiddleware: c.authMiddleware,
	})

	c.engine = engine
	return engine
}
