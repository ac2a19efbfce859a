package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tavern/internal/application/feedback/usecases"
	"tavern/internal/shared/logger"
	"tavern/internal/shared/utils"
)

type FeedbackHandler struct {
	submitFeedbackUC *usecases.SubmitFeedbackUseCase
	logger           logger.Interface
}

func NewFeedbackHandler(submitFeedbackUC *usecases.SubmitFeedbackUseCase) *FeedbackHandler {
	return &FeedbackHandler{
		submitFeedbackUC: submitFeedbackUC,
		logger:           logger.NewLogger(),
	}
}

type SubmitFeedbackRequest struct {
	Category string `json:"category" binding:"required" validate:"required,oneof=bug feature general"`
	Subject  string `json:"subject" binding:"required" validate:"required,min=1,max=200"`
	Body     string `json:"body" binding:"required" validate:"required,min=1,max=5000"`
}

func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for feedback", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.submitFeedbackUC.Execute(c.Request.Context(), usecases.SubmitFeedbackCommand{
		UserID:   userID,
		Category: req.Category,
		Subject:  req.Subject,
		Body:     req.Body,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"id": result.ID()}, "feedback submitted")
}
