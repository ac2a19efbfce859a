package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	entitlementUC "tavern/internal/application/entitlement/usecases"
	feedbackUC "tavern/internal/application/feedback/usecases"
	userUC "tavern/internal/application/user/usecases"
	"tavern/internal/shared/logger"
	"tavern/internal/shared/utils"
)

// AdminHandler hosts the admin-only operations: user listing, plan changes
// and feedback review. Routes mounting it sit behind RequireAdmin.
type AdminHandler struct {
	listUsersUC    *userUC.ListUsersUseCase
	changePlanUC   *entitlementUC.ChangePlanUseCase
	listFeedbackUC *feedbackUC.ListFeedbackUseCase
	logger         logger.Interface
}

func NewAdminHandler(
	listUsersUC *userUC.ListUsersUseCase,
	changePlanUC *entitlementUC.ChangePlanUseCase,
	listFeedbackUC *feedbackUC.ListFeedbackUseCase,
) *AdminHandler {
	return &AdminHandler{
		listUsersUC:    listUsersUC,
		changePlanUC:   changePlanUC,
		listFeedbackUC: listFeedbackUC,
		logger:         logger.NewLogger(),
	}
}

type ChangePlanRequest struct {
	Plan string `json:"plan" binding:"required"`
}

type FeedbackEntryResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Category  string    `json:"category"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	BodyHTML  string    `json:"body_html"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, pageSize := pagination(c)

	users, total, err := h.listUsersUC.Execute(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	utils.ListSuccessResponse(c, out, total, page, pageSize)
}

// ChangeUserPlan rewrites a user's plan and replaces their enforcement
// limit row with the new plan's defaults.
func (h *AdminHandler) ChangeUserPlan(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req ChangePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for change plan", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.changePlanUC.Execute(c.Request.Context(), entitlementUC.ChangePlanCommand{
		UserID:  userID,
		PlanKey: req.Plan,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "plan updated", nil)
}

func (h *AdminHandler) ListFeedback(c *gin.Context) {
	page, pageSize := pagination(c)

	entries, total, err := h.listFeedbackUC.Execute(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	out := make([]FeedbackEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, FeedbackEntryResponse{
			ID:        e.Feedback.ID(),
			UserID:    e.Feedback.UserID(),
			Category:  string(e.Feedback.Category()),
			Subject:   e.Feedback.Subject(),
			Body:      e.Feedback.Body(),
			BodyHTML:  e.HTML,
			CreatedAt: e.Feedback.CreatedAt(),
		})
	}
	utils.ListSuccessResponse(c, out, total, page, pageSize)
}
