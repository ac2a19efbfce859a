package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	entitlementUC "tavern/internal/application/entitlement/usecases"
	"tavern/internal/domain/campaign"
	"tavern/internal/infrastructure/metrics"
	"tavern/internal/shared/constants"
	"tavern/internal/shared/errors"
	"tavern/internal/shared/logger"
	"tavern/internal/shared/utils"
)

// CampaignQuotaMiddleware hosts the campaign-related quota gates: campaign
// creation, player capacity on join, and player capacity on join-request
// approval. The gates are the friendly fast path; the repository-level
// conditional inserts remain the hard guarantee under races.
type CampaignQuotaMiddleware struct {
	campaignRepo    campaign.Repository
	membershipRepo  campaign.MembershipRepository
	joinRequestRepo campaign.JoinRequestRepository
	getUserLimits   *entitlementUC.GetUserLimitsUseCase
	logger          logger.Interface
}

func NewCampaignQuotaMiddleware(
	campaignRepo campaign.Repository,
	membershipRepo campaign.MembershipRepository,
	joinRequestRepo campaign.JoinRequestRepository,
	getUserLimits *entitlementUC.GetUserLimitsUseCase,
	logger logger.Interface,
) *CampaignQuotaMiddleware {
	return &CampaignQuotaMiddleware{
		campaignRepo:    campaignRepo,
		membershipRepo:  membershipRepo,
		joinRequestRepo: joinRequestRepo,
		getUserLimits:   getUserLimits,
		logger:          logger,
	}
}

// CheckCampaignCreation rejects campaign creation once the actor owns as
// many campaigns as their limit allows.
func (m *CampaignQuotaMiddleware) CheckCampaignCreation() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actorID(c)
		if !ok {
			return
		}
		if actorIsAdmin(c) {
			c.Next()
			return
		}

		limits, err := m.getUserLimits.Execute(c.Request.Context(), userID)
		if err != nil {
			m.logger.Errorw("failed to resolve limits", "user_id", userID, "error", err)
			m.rejectInternal(c, constants.QuotaResourceCampaigns)
			return
		}

		current, err := m.campaignRepo.CountOwnedByUser(c.Request.Context(), userID)
		if err != nil {
			m.logger.Errorw("failed to count owned campaigns", "user_id", userID, "error", err)
			m.rejectInternal(c, constants.QuotaResourceCampaigns)
			return
		}

		if int(current) >= limits.MaxCampaignsCreated {
			metrics.ObserveQuotaCheck(constants.QuotaResourceCampaigns, metrics.OutcomeRejected)
			utils.QuotaExceededResponse(c, constants.QuotaResourceCampaigns,
				limits.MaxCampaignsCreated, int(current))
			c.Abort()
			return
		}

		metrics.ObserveQuotaCheck(constants.QuotaResourceCampaigns, metrics.OutcomeAllowed)
		c.Next()
	}
}

// CheckPlayerCap gates joining the campaign in the "id" path parameter.
// The campaign owner and existing members pass untouched; everyone else is
// held against the owner's player cap.
func (m *CampaignQuotaMiddleware) CheckPlayerCap() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actorID(c)
		if !ok {
			return
		}
		if actorIsAdmin(c) {
			c.Next()
			return
		}

		campaignID, ok := pathID(c, "id")
		if !ok {
			return
		}

		m.enforcePlayerCap(c, userID, campaignID)
	}
}

// CheckJoinRequestApproval gates approving the join request in the "id"
// path parameter: the player cap applies to the requester being admitted,
// resolved through the join request's campaign.
func (m *CampaignQuotaMiddleware) CheckJoinRequestApproval() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, ok := actorID(c)
		if !ok {
			return
		}
		if actorIsAdmin(c) {
			c.Next()
			return
		}

		requestID, ok := pathID(c, "id")
		if !ok {
			return
		}

		req, err := m.joinRequestRepo.GetByID(c.Request.Context(), requestID)
		if err != nil {
			if err == campaign.ErrJoinRequestNotFound {
				utils.ErrorResponseWithError(c, errors.NewNotFoundError("join request not found"))
				c.Abort()
				return
			}
			m.logger.Errorw("failed to load join request", "request_id", requestID, "error", err)
			m.rejectInternal(c, constants.QuotaResourcePlayersPerCampaign)
			return
		}

		m.enforcePlayerCap(c, req.UserID(), req.CampaignID())
	}
}

// enforcePlayerCap runs the shared join state machine for joiningUserID
// entering campaignID: owner pass, member pass, cap check against the
// owner's limits.
func (m *CampaignQuotaMiddleware) enforcePlayerCap(c *gin.Context, joiningUserID, campaignID uint) {
	ctx := c.Request.Context()

	ownerID, err := m.campaignRepo.GetOwnerID(ctx, campaignID)
	if err != nil {
		m.logger.Errorw("failed to resolve campaign owner", "campaign_id", campaignID, "error", err)
		m.rejectInternal(c, constants.QuotaResourcePlayersPerCampaign)
		return
	}
	if ownerID == 0 {
		utils.ErrorResponseWithError(c, errors.NewNotFoundError("campaign not found"))
		c.Abort()
		return
	}

	// the GM never consumes a player slot in their own campaign
	if ownerID == joiningUserID {
		c.Next()
		return
	}

	isMember, err := m.membershipRepo.IsMember(ctx, joiningUserID, campaignID)
	if err != nil {
		m.logger.Errorw("failed to check membership",
			"user_id", joiningUserID, "campaign_id", campaignID, "error", err)
		m.rejectInternal(c, constants.QuotaResourcePlayersPerCampaign)
		return
	}
	if isMember {
		// re-affirming an existing membership never consumes quota
		c.Next()
		return
	}

	// player capacity belongs to the GM's limit set, not the joiner's
	limits, err := m.getUserLimits.Execute(ctx, ownerID)
	if err != nil {
		m.logger.Errorw("failed to resolve owner limits", "owner_id", ownerID, "error", err)
		m.rejectInternal(c, constants.QuotaResourcePlayersPerCampaign)
		return
	}

	current, err := m.membershipRepo.CountPlayers(ctx, campaignID)
	if err != nil {
		m.logger.Errorw("failed to count players", "campaign_id", campaignID, "error", err)
		m.rejectInternal(c, constants.QuotaResourcePlayersPerCampaign)
		return
	}

	if int(current) >= limits.MaxPlayersPerCampaign {
		metrics.ObserveQuotaCheck(constants.QuotaResourcePlayersPerCampaign, metrics.OutcomeRejected)
		utils.QuotaExceededResponse(c, constants.QuotaResourcePlayersPerCampaign,
			limits.MaxPlayersPerCampaign, int(current))
		c.Abort()
		return
	}

	metrics.ObserveQuotaCheck(constants.QuotaResourcePlayersPerCampaign, metrics.OutcomeAllowed)
	c.Next()
}

func (m *CampaignQuotaMiddleware) rejectInternal(c *gin.Context, resource string) {
	metrics.ObserveQuotaCheck(resource, metrics.OutcomeError)
	utils.ErrorResponseWithError(c, errors.NewInternalError(constants.ErrMsgInternalServerError))
	c.Abort()
}

// pathID parses a positive integer path parameter, rejecting 400 otherwise
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("invalid "+name+" parameter"))
		c.Abort()
		return 0, false
	}
	return uint(id), true
}
