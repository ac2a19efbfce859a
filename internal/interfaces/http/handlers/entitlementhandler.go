package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tavern/internal/application/entitlement/usecases"
	"tavern/internal/domain/entitlement"
	"tavern/internal/shared/constants"
	"tavern/internal/shared/logger"
	"tavern/internal/shared/utils"
)

type EntitlementHandler struct {
	getEntitlementsUC *usecases.GetEntitlementsUseCase
	getUserLimitsUC   *usecases.GetUserLimitsUseCase
	logger            logger.Interface
}

func NewEntitlementHandler(
	getEntitlementsUC *usecases.GetEntitlementsUseCase,
	getUserLimitsUC *usecases.GetUserLimitsUseCase,
) *EntitlementHandler {
	return &EntitlementHandler{
		getEntitlementsUC: getEntitlementsUC,
		getUserLimitsUC:   getUserLimitsUC,
		logger:            logger.NewLogger(),
	}
}

// GetMyEntitlements returns the caller's effective entitlement bundle:
// plan, display limits with per-user overrides applied, and feature flags.
func (h *EntitlementHandler) GetMyEntitlements(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	role := c.GetString(constants.ContextKeyUserRole)
	plan := c.GetString(constants.ContextKeyUserPlan)

	result, err := h.getEntitlementsUC.Execute(c.Request.Context(), userID, role, plan)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

type UserLimitsResponse struct {
	MaxCampaignsCreated   int `json:"max_campaigns_created"`
	MaxPlayersPerCampaign int `json:"max_players_per_campaign"`
	MaxCharactersPlayer   int `json:"max_characters_player"`
	MaxCharactersGM       int `json:"max_characters_gm"`
	MaxJoinedCampaigns    int `json:"max_joined_campaigns"`
}

// GetMyLimits returns the caller's enforcement limit row, bootstrapping it
// on first touch.
func (h *EntitlementHandler) GetMyLimits(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limits, err := h.getUserLimitsUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", UserLimitsResponse{
		MaxCampaignsCreated:   limits.MaxCampaignsCreated,
		MaxPlayersPerCampaign: limits.MaxPlayersPerCampaign,
		MaxCharactersPlayer:   limits.MaxCharactersPlayer,
		MaxCharactersGM:       limits.MaxCharactersGM,
		MaxJoinedCampaigns:    limits.MaxJoinedCampaigns,
	})
}

type PlanResponse struct {
	Key        string                 `json:"key"`
	Name       string                 `json:"name"`
	PriceCents int                    `json:"price_cents"`
	Limits     entitlement.LimitSet   `json:"limits"`
	Features   entitlement.FeatureSet `json:"features"`
}

func toPlanResponse(def entitlement.PlanDefinition) PlanResponse {
	return PlanResponse{
		Key:        def.Key.String(),
		Name:       def.Name,
		PriceCents: def.PriceCents,
		Limits:     def.Limits,
		Features:   def.Features,
	}
}

// ListPlans returns the public plan catalog. No authentication required.
func (h *EntitlementHandler) ListPlans(c *gin.Context) {
	plans := []PlanResponse{
		toPlanResponse(entitlement.GetPlanDefinition(entitlement.PlanFree.String())),
		toPlanResponse(entitlement.GetPlanDefinition(entitlement.PlanPremium.String())),
	}
	utils.SuccessResponse(c, http.StatusOK, "", plans)
}
