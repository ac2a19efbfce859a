package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	entitlementUC "tavern/internal/application/entitlement/usecases"
	"tavern/internal/domain/campaign"
	"tavern/internal/domain/invitation"
	"tavern/internal/infrastructure/metrics"
	"tavern/internal/shared/constants"
	"tavern/internal/shared/errors"
	"tavern/internal/shared/logger"
	"tavern/internal/shared/utils"
)

// invitationResponseBody is the peeked request body. Clients are loose about
// the field name, so both status and action are accepted.
type invitationResponseBody struct {
	Status string `json:"status"`
	Action string `json:"action"`
}

// InvitationQuotaMiddleware gates invitation acceptance. The gate only
// activates on accept intent; declines and other updates pass untouched.
type InvitationQuotaMiddleware struct {
	invitationRepo invitation.Repository
	campaignRepo   campaign.Repository
	membershipRepo campaign.MembershipRepository
	getUserLimits  *entitlementUC.GetUserLimitsUseCase
	logger         logger.Interface
}

func NewInvitationQuotaMiddleware(
	invitationRepo invitation.Repository,
	campaignRepo campaign.Repository,
	membershipRepo campaign.MembershipRepository,
	getUserLimits *entitlementUC.GetUserLimitsUseCase,
	logger logger.Interface,
) *InvitationQuotaMiddleware {
	return &InvitationQuotaMiddleware{
		invitationRepo: invitationRepo,
		campaignRepo:   campaignRepo,
		membershipRepo: membershipRepo,
		getUserLimits:  getUserLimits,
		logger:         logger,
	}
}

// CheckInvitationAccept holds an accepting invitee against two quotas in
// order: their own joined-campaigns ceiling first, then the campaign's
// player cap drawn from the owner's limits.
func (m *InvitationQuotaMiddleware) CheckInvitationAccept() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actorID(c)
		if !ok {
			return
		}
		if actorIsAdmin(c) {
			c.Next()
			return
		}

		invitationID, ok := pathID(c, "id")
		if !ok {
			return
		}

		// peek the body without consuming it; the handler binds it again
		var body invitationResponseBody
		if err := c.ShouldBindBodyWith(&body, binding.JSON); err != nil {
			utils.ErrorResponseWithError(c, errors.NewBadRequestError("invalid request body"))
			c.Abort()
			return
		}
		intent := body.Status
		if intent == "" {
			intent = body.Action
		}
		if !invitation.IsAcceptIntent(intent) {
			// declines and status noise never consume quota
			c.Next()
			return
		}

		ctx := c.Request.Context()

		inv, err := m.invitationRepo.GetByID(ctx, invitationID)
		if err != nil {
			if err == invitation.ErrInvitationNotFound {
				utils.ErrorResponseWithError(c, errors.NewNotFoundError("invitation not found"))
				c.Abort()
				return
			}
			m.logger.Errorw("failed to load invitation", "invitation_id", invitationID, "error", err)
			m.rejectInternal(c, constants.QuotaResourceJoinedCampaigns)
			return
		}
		if !inv.IsFor(userID) {
			utils.ErrorResponseWithError(c, errors.NewForbiddenError("this invitation is not addressed to you"))
			c.Abort()
			return
		}

		ownerID, err := m.campaignRepo.GetOwnerID(ctx, inv.CampaignID())
		if err != nil {
			m.logger.Errorw("failed to resolve campaign owner", "campaign_id", inv.CampaignID(), "error", err)
			m.rejectInternal(c, constants.QuotaResourceJoinedCampaigns)
			return
		}
		if ownerID == 0 {
			utils.ErrorResponseWithError(c, errors.NewNotFoundError("campaign not found"))
			c.Abort()
			return
		}

		// a GM accepting an invite into their own campaign is a no-op pass
		if ownerID == userID {
			c.Next()
			return
		}

		isMember, err := m.membershipRepo.IsMember(ctx, userID, inv.CampaignID())
		if err != nil {
			m.logger.Errorw("failed to check membership",
				"user_id", userID, "campaign_id", inv.CampaignID(), "error", err)
			m.rejectInternal(c, constants.QuotaResourceJoinedCampaigns)
			return
		}
		if isMember {
			c.Next()
			return
		}

		// quota one: the invitee's joined-campaigns ceiling
		inviteeLimits, err := m.getUserLimits.Execute(ctx, userID)
		if err != nil {
			m.logger.Errorw("failed to resolve invitee limits", "user_id", userID, "error", err)
			m.rejectInternal(c, constants.QuotaResourceJoinedCampaigns)
			return
		}
		joined, err := m.membershipRepo.CountJoinedCampaignsAsPlayer(ctx, userID)
		if err != nil {
			m.logger.Errorw("failed to count joined campaigns", "user_id", userID, "error", err)
			m.rejectInternal(c, constants.QuotaResourceJoinedCampaigns)
			return
		}
		if int(joined) >= inviteeLimits.MaxJoinedCampaigns {
			metrics.ObserveQuotaCheck(constants.QuotaResourceJoinedCampaigns, metrics.OutcomeRejected)
			utils.QuotaExceededResponse(c, constants.QuotaResourceJoinedCampaigns,
				inviteeLimits.MaxJoinedCampaigns, int(joined))
			c.Abort()
			return
		}

		// quota two: the campaign's player cap, drawn from the owner's limits
		ownerLimits, err := m.getUserLimits.Execute(ctx, ownerID)
		if err != nil {
			m.logger.Errorw("failed to resolve owner limits", "owner_id", ownerID, "error", err)
			m.rejectInternal(c, constants.QuotaResourcePlayersPerCampaign)
			return
		}
		players, err := m.membershipRepo.CountPlayers(ctx, inv.CampaignID())
		if err != nil {
			m.logger.Errorw("failed to count players", "campaign_id", inv.CampaignID(), "error", err)
			m.rejectInternal(c, constants.QuotaResourcePlayersPerCampaign)
			return
		}
		if int(players) >= ownerLimits.MaxPlayersPerCampaign {
			metrics.ObserveQuotaCheck(constants.QuotaResourcePlayersPerCampaign, metrics.OutcomeRejected)
			utils.QuotaExceededResponse(c, constants.QuotaResourcePlayersPerCampaign,
				ownerLimits.MaxPlayersPerCampaign, int(players))
			c.Abort()
			return
		}

		metrics.ObserveQuotaCheck(constants.QuotaResourceJoinedCampaigns, metrics.OutcomeAllowed)
		metrics.ObserveQuotaCheck(constants.QuotaResourcePlayersPerCampaign, metrics.OutcomeAllowed)
		c.Next()
	}
}

func (m *InvitationQuotaMiddleware) rejectInternal(c *gin.Context, resource string) {
	metrics.ObserveQuotaCheck(resource, metrics.OutcomeError)
	utils.ErrorResponseWithError(c, errors.NewInternalError(constants.ErrMsgInternalServerError))
	c.Abort()
}
