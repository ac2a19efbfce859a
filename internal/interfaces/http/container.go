// Package http wires the HTTP surface: repositories, use cases, handlers,
// middleware and routes.
package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authUC "tavern/internal/application/auth/usecases"
	campaignUC "tavern/internal/application/campaign/usecases"
	characterUC "tavern/internal/application/character/usecases"
	entitlementUC "tavern/internal/application/entitlement/usecases"
	feedbackUC "tavern/internal/application/feedback/usecases"
	invitationUC "tavern/internal/application/invitation/usecases"
	userUC "tavern/internal/application/user/usecases"
	"tavern/internal/domain/campaign"
	"tavern/internal/domain/character"
	"tavern/internal/domain/entitlement"
	"tavern/internal/domain/feedback"
	"tavern/internal/domain/invitation"
	"tavern/internal/domain/user"
	"tavern/internal/infrastructure/auth"
	"tavern/internal/infrastructure/config"
	"tavern/internal/infrastructure/email"
	"tavern/internal/infrastructure/ratelimit"
	"tavern/internal/infrastructure/realtime"
	"tavern/internal/infrastructure/repository"
	"tavern/internal/interfaces/http/handlers"
	"tavern/internal/interfaces/http/middleware"
	"tavern/internal/shared/logger"
	"tavern/internal/shared/services/markdown"
)

type repositories struct {
	users        user.Repository
	userLimits   entitlement.UserLimitsRepository
	campaigns    campaign.Repository
	memberships  campaign.MembershipRepository
	joinRequests campaign.JoinRequestRepository
	characters   character.Repository
	invitations  invitation.Repository
	feedback     feedback.Repository
}

// Container wires the full HTTP surface and owns its background services.
type Container struct {
	engine *gin.Engine
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories

	authMiddleware  *middleware.AuthMiddleware
	campaignQuota   *middleware.CampaignQuotaMiddleware
	characterQuota  *middleware.CharacterQuotaMiddleware
	invitationQuota *middleware.InvitationQuotaMiddleware
	featureGate     *middleware.FeatureGateMiddleware
	rateLimiter     *middleware.RateLimiter

	authHandler        *handlers.AuthHandler
	campaignHandler    *handlers.CampaignHandler
	characterHandler   *handlers.CharacterHandler
	invitationHandler  *handlers.InvitationHandler
	entitlementHandler *handlers.EntitlementHandler
	adminHandler       *handlers.AdminHandler
	feedbackHandler    *handlers.FeedbackHandler
	sessionHandler     *handlers.SessionHandler

	sessionHub *realtime.SessionHub
	hubCancel  context.CancelFunc
}

// NewContainer assembles every dependency of the HTTP surface.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) *Container {
	c := &Container{
		cfg: cfg,
		log: log,
	}

	c.repos = &repositories{
		users:        repository.NewUserRepository(db, log),
		userLimits:   repository.NewUserLimitsRepository(db, log),
		campaigns:    repository.NewCampaignRepository(db, log),
		memberships:  repository.NewMembershipRepository(db, log),
		joinRequests: repository.NewJoinRequestRepository(db, log),
		characters:   repository.NewCharacterRepository(db, log),
		invitations:  repository.NewInvitationRepository(db, log),
		feedback:     repository.NewFeedbackRepository(db, log),
	}

	hasher := auth.NewPasswordHasher(cfg.Auth.Password.BcryptCost)
	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	mailer := email.NewMailer(&cfg.Email, log)
	renderer := markdown.NewRenderer()

	// entitlement core
	getUserLimitsUC := entitlementUC.NewGetUserLimitsUseCase(c.repos.userLimits, log)
	getCharacterLimitUC := entitlementUC.NewGetCharacterLimitUseCase(getUserLimitsUC, c.repos.campaigns, log)
	getEntitlementsUC := entitlementUC.NewGetEntitlementsUseCase(c.repos.userLimits, log)
	changePlanUC := entitlementUC.NewChangePlanUseCase(c.repos.users, c.repos.userLimits, log)

	// auth
	registerUC := authUC.NewRegisterUseCase(c.repos.users, c.repos.userLimits, hasher, log)
	loginUC := authUC.NewLoginUseCase(c.repos.users, hasher, jwtService, log)

	// campaigns
	createCampaignUC := campaignUC.NewCreateCampaignUseCase(c.repos.campaigns, c.repos.memberships, getUserLimitsUC, log)
	getCampaignUC := campaignUC.NewGetCampaignUseCase(c.repos.campaigns)
	listCampaignsUC := campaignUC.NewListCampaignsUseCase(c.repos.campaigns)
	addPlayerUC := campaignUC.NewAddPlayerUseCase(c.repos.campaigns, c.repos.memberships, getUserLimitsUC, log)
	requestJoinUC := campaignUC.NewRequestJoinUseCase(c.repos.campaigns, c.repos.memberships, c.repos.joinRequests, log)
	approveJoinRequestUC := campaignUC.NewApproveJoinRequestUseCase(c.repos.campaigns, c.repos.joinRequests, addPlayerUC, log)
	declineJoinRequestUC := campaignUC.NewDeclineJoinRequestUseCase(c.repos.campaigns, c.repos.joinRequests, log)

	// characters
	createCharacterUC := characterUC.NewCreateCharacterUseCase(c.repos.characters, getCharacterLimitUC, log)
	listCharactersUC := characterUC.NewListCharactersUseCase(c.repos.characters)

	// invitations
	inviteUC := invitationUC.NewInviteUseCase(c.repos.campaigns, c.repos.invitations, c.repos.users, mailer, log)
	respondUC := invitationUC.NewRespondUseCase(c.repos.invitations, addPlayerUC, log)
	listInvitationsUC := invitationUC.NewListInvitationsUseCase(c.repos.invitations)

	// feedback and admin
	submitFeedbackUC := feedbackUC.NewSubmitFeedbackUseCase(c.repos.feedback, log)
	listFeedbackUC := feedbackUC.NewListFeedbackUseCase(c.repos.feedback, renderer, log)
	listUsersUC := userUC.NewListUsersUseCase(c.repos.users)

	// middleware
	c.authMiddleware = middleware.NewAuthMiddleware(jwtService, log)
	c.campaignQuota = middleware.NewCampaignQuotaMiddleware(
		c.repos.campaigns, c.repos.memberships, c.repos.joinRequests, getUserLimitsUC, log)
	c.characterQuota = middleware.NewCharacterQuotaMiddleware(c.repos.characters, getCharacterLimitUC, log)
	c.invitationQuota = middleware.NewInvitationQuotaMiddleware(
		c.repos.invitations, c.repos.campaigns, c.repos.memberships, getUserLimitsUC, log)
	c.featureGate = middleware.NewFeatureGateMiddleware(log)

	if cfg.RateLimit.Enabled {
		c.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		c.rateLimiter = middleware.NewRateLimiter(ratelimit.NewRedisRateLimiter(c.redis), cfg.RateLimit.RequestsPerMinute)
	}

	// live sessions
	c.sessionHub = realtime.NewSessionHub(log)
	hubCtx, cancel := context.WithCancel(context.Background())
	c.hubCancel = cancel
	go c.sessionHub.Run(hubCtx)

	// handlers
	c.authHandler = handlers.NewAuthHandler(registerUC, loginUC)
	c.campaignHandler = handlers.NewCampaignHandler(
		createCampaignUC, getCampaignUC, listCampaignsUC,
		addPlayerUC, requestJoinUC, approveJoinRequestUC, declineJoinRequestUC)
	c.characterHandler = handlers.NewCharacterHandler(createCharacterUC, listCharactersUC)
	c.invitationHandler = handlers.NewInvitationHandler(inviteUC, respondUC, listInvitationsUC)
	c.entitlementHandler = handlers.NewEntitlementHandler(getEntitlementsUC, getUserLimitsUC)
	c.adminHandler = handlers.NewAdminHandler(listUsersUC, changePlanUC, listFeedbackUC)
	c.feedbackHandler = handlers.NewFeedbackHandler(submitFeedbackUC)
	c.sessionHandler = handlers.NewSessionHandler(c.sessionHub, c.repos.campaigns, c.repos.memberships)

	return c
}

// Shutdown stops background services.
func (c *Container) Shutdown() {
	if c.hubCancel != nil {
		c.hubCancel()
	}
	if c.redis != nil {
		_ = c.redis.Close()
	}
}
