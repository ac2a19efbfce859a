package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"tavern/internal/application/invitation/usecases"
	"tavern/internal/domain/invitation"
	"tavern/internal/shared/logger"
	"tavern/internal/shared/utils"
)

type InvitationHandler struct {
	inviteUC          *usecases.InviteUseCase
	respondUC         *usecases.RespondUseCase
	listInvitationsUC *usecases.ListInvitationsUseCase
	logger            logger.Interface
}

func NewInvitationHandler(
	inviteUC *usecases.InviteUseCase,
	respondUC *usecases.RespondUseCase,
	listInvitationsUC *usecases.ListInvitationsUseCase,
) *InvitationHandler {
	return &InvitationHandler{
		inviteUC:          inviteUC,
		respondUC:         respondUC,
		listInvitationsUC: listInvitationsUC,
		logger:            logger.NewLogger(),
	}
}

type InviteRequest struct {
	InviteeID uint `json:"invitee_id" binding:"required"`
}

// RespondRequest accepts either field; clients are loose about the name.
type RespondRequest struct {
	Status string `json:"status"`
	Action string `json:"action"`
}

type InvitationResponse struct {
	ID         uint      `json:"id"`
	CampaignID uint      `json:"campaign_id"`
	InviterID  uint      `json:"inviter_id"`
	InviteeID  uint      `json:"invitee_id"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func toInvitationResponse(inv *invitation.Invitation) InvitationResponse {
	return InvitationResponse{
		ID:         inv.ID(),
		CampaignID: inv.CampaignID(),
		InviterID:  inv.InviterID(),
		InviteeID:  inv.InviteeID(),
		Status:     string(inv.Status()),
		CreatedAt:  inv.CreatedAt(),
	}
}

func (h *InvitationHandler) Invite(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	campaignID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for invite", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.inviteUC.Execute(c.Request.Context(), usecases.InviteCommand{
		CampaignID: campaignID,
		InviterID:  userID,
		InviteeID:  req.InviteeID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toInvitationResponse(result), "invitation sent")
}

// Respond records the invitee's answer. The body is bound with
// ShouldBindBodyWith because the quota gate ahead of this handler has
// already peeked it.
func (h *InvitationHandler) Respond(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	invitationID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req RespondRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	intent := req.Status
	if intent == "" {
		intent = req.Action
	}

	result, err := h.respondUC.Execute(c.Request.Context(), usecases.RespondCommand{
		InvitationID: invitationID,
		UserID:       userID,
		Accept:       invitation.IsAcceptIntent(intent),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "invitation updated", toInvitationResponse(result))
}

func (h *InvitationHandler) ListMyInvitations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	invitations, err := h.listInvitationsUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	out := make([]InvitationResponse, 0, len(invitations))
	for _, inv := range invitations {
		out = append(out, toInvitationResponse(inv))
	}
	utils.SuccessResponse(c, http.StatusOK, "", out)
}
