package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tavern/internal/domain/campaign"
	"tavern/internal/infrastructure/realtime"
	"tavern/internal/shared/logger"
	"tavern/internal/shared/utils"
)

// SessionHandler bridges HTTP into the live session rooms. Only the GM and
// campaign members may connect.
type SessionHandler struct {
	hub            *realtime.SessionHub
	campaignRepo   campaign.Repository
	membershipRepo campaign.MembershipRepository
	logger         logger.Interface
}

func NewSessionHandler(
	hub *realtime.SessionHub,
	campaignRepo campaign.Repository,
	membershipRepo campaign.MembershipRepository,
) *SessionHandler {
	return &SessionHandler{
		hub:            hub,
		campaignRepo:   campaignRepo,
		membershipRepo: membershipRepo,
		logger:         logger.NewLogger(),
	}
}

// JoinSession upgrades the request into the campaign's session room.
func (h *SessionHandler) JoinSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	campaignID, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	ownerID, err := h.campaignRepo.GetOwnerID(ctx, campaignID)
	if err != nil {
		h.logger.Errorw("failed to resolve campaign owner", "campaign_id", campaignID, "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
		return
	}
	if ownerID == 0 {
		utils.ErrorResponse(c, http.StatusNotFound, "campaign not found")
		return
	}

	if ownerID != userID {
		isMember, err := h.membershipRepo.IsMember(ctx, userID, campaignID)
		if err != nil {
			h.logger.Errorw("failed to check membership",
				"user_id", userID, "campaign_id", campaignID, "error", err)
			utils.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
			return
		}
		if !isMember {
			utils.ErrorResponse(c, http.StatusForbidden, "not a campaign member")
			return
		}
	}

	h.hub.HandleSession(c.Writer, c.Request, campaignID, userID)
}

// SessionStats exposes hub counters for the admin surface.
func (h *SessionHandler) SessionStats(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "", h.hub.Stats())
}
