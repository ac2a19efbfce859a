package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tavern/internal/application/campaign/usecases"
	"tavern/internal/domain/campaign"
	"tavern/internal/shared/logger"
	"tavern/internal/shared/utils"
)

type CampaignHandler struct {
	createCampaignUC     *usecases.CreateCampaignUseCase
	getCampaignUC        *usecases.GetCampaignUseCase
	listCampaignsUC      *usecases.ListCampaignsUseCase
	addPlayerUC          *usecases.AddPlayerUseCase
	requestJoinUC        *usecases.RequestJoinUseCase
	approveJoinRequestUC *usecases.ApproveJoinRequestUseCase
	declineJoinRequestUC *usecases.DeclineJoinRequestUseCase
	logger               logger.Interface
}

func NewCampaignHandler(
	createCampaignUC *usecases.CreateCampaignUseCase,
	getCampaignUC *usecases.GetCampaignUseCase,
	listCampaignsUC *usecases.ListCampaignsUseCase,
	addPlayerUC *usecases.AddPlayerUseCase,
	requestJoinUC *usecases.RequestJoinUseCase,
	approveJoinRequestUC *usecases.ApproveJoinRequestUseCase,
	declineJoinRequestUC *usecases.DeclineJoinRequestUseCase,
) *CampaignHandler {
	return &CampaignHandler{
		createCampaignUC:     createCampaignUC,
		getCampaignUC:        getCampaignUC,
		listCampaignsUC:      listCampaignsUC,
		addPlayerUC:          addPlayerUC,
		requestJoinUC:        requestJoinUC,
		approveJoinRequestUC: approveJoinRequestUC,
		declineJoinRequestUC: declineJoinRequestUC,
		logger:               logger.NewLogger(),
	}
}

type CreateCampaignRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=2000"`
}

type RequestJoinRequest struct {
	Message string `json:"message" binding:"max=500"`
}

type CampaignResponse struct {
	ID          uint           `json:"id"`
	OwnerID     uint           `json:"owner_id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Settings    map[string]any `json:"settings,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

func toCampaignResponse(c *campaign.Campaign) CampaignResponse {
	return CampaignResponse{
		ID:          c.ID(),
		OwnerID:     c.OwnerID(),
		Name:        c.Name(),
		Description: c.Description(),
		Settings:    c.Settings(),
		CreatedAt:   c.CreatedAt(),
	}
}

type JoinRequestResponse struct {
	ID         uint      `json:"id"`
	CampaignID uint      `json:"campaign_id"`
	UserID     uint      `json:"user_id"`
	Message    string    `json:"message,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create campaign", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	role := c.GetString("user_role")
	result, err := h.createCampaignUC.Execute(c.Request.Context(), usecases.CreateCampaignCommand{
		OwnerID:     userID,
		OwnerRole:   role,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toCampaignResponse(result), "campaign created")
}

func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	campaignID, ok := paramID(c, "id")
	if !ok {
		return
	}

	result, err := h.getCampaignUC.Execute(c.Request.Context(), campaignID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toCampaignResponse(result))
}

func (h *CampaignHandler) ListMyCampaigns(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	campaigns, err := h.listCampaignsUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	out := make([]CampaignResponse, 0, len(campaigns))
	for _, cp := range campaigns {
		out = append(out, toCampaignResponse(cp))
	}
	utils.SuccessResponse(c, http.StatusOK, "", out)
}

// JoinCampaign admits the caller as a player. The quota gate ahead of this
// handler has already run the owner/member/cap state machine; the
// conditional insert below stays as the race backstop.
func (h *CampaignHandler) JoinCampaign(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	campaignID, ok := paramID(c, "id")
	if !ok {
		return
	}

	err := h.addPlayerUC.Execute(c.Request.Context(), usecases.AddPlayerCommand{
		CampaignID: campaignID,
		UserID:     userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "joined campaign", nil)
}

func (h *CampaignHandler) RequestJoin(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	campaignID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req RequestJoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.requestJoinUC.Execute(c.Request.Context(), usecases.RequestJoinCommand{
		CampaignID: campaignID,
		UserID:     userID,
		Message:    req.Message,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, JoinRequestResponse{
		ID:         result.ID(),
		CampaignID: result.CampaignID(),
		UserID:     result.UserID(),
		Message:    result.Message(),
		Status:     string(result.Status()),
		CreatedAt:  result.CreatedAt(),
	}, "join request submitted")
}

func (h *CampaignHandler) ApproveJoinRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	requestID, ok := paramID(c, "id")
	if !ok {
		return
	}

	err := h.approveJoinRequestUC.Execute(c.Request.Context(), usecases.ApproveJoinRequestCommand{
		RequestID:  requestID,
		ApproverID: userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "join request approved", nil)
}

func (h *CampaignHandler) DeclineJoinRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	requestID, ok := paramID(c, "id")
	if !ok {
		return
	}

	err := h.declineJoinRequestUC.Execute(c.Request.Context(), usecases.DeclineJoinRequestCommand{
		RequestID:  requestID,
		DeclinerID: userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "join request declined", nil)
}
