// Package usecases contains the feedback application services.
package usecases

import (
	"context"
	"fmt"

	"tavern/internal/domain/feedback"
	apperrors "tavern/internal/shared/errors"
	"tavern/internal/shared/logger"
	"tavern/internal/shared/services/markdown"
)

type SubmitFeedbackCommand struct {
	UserID   uint
	Category string
	Subject  string
	Body     string
}

// SubmitFeedbackUseCase records user feedback
type SubmitFeedbackUseCase struct {
	feedbackRepo feedback.Repository
	logger       logger.Interface
}

func NewSubmitFeedbackUseCase(feedbackRepo feedback.Repository, logger logger.Interface) *SubmitFeedbackUseCase {
	return &SubmitFeedbackUseCase{
		feedbackRepo: feedbackRepo,
		logger:       logger,
	}
}

func (uc *SubmitFeedbackUseCase) Execute(ctx context.Context, cmd SubmitFeedbackCommand) (*feedback.Feedback, error) {
	f, err := feedback.NewFeedback(cmd.UserID, feedback.Category(cmd.Category), cmd.Subject, cmd.Body)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := uc.feedbackRepo.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("failed to submit feedback: %w", err)
	}
	return f, nil
}

// RenderedFeedback pairs a feedback entry with its sanitized HTML body
type RenderedFeedback struct {
	Feedback *feedback.Feedback
	HTML     string
}

// ListFeedbackUseCase lists feedback for admin review, with markdown bodies
// rendered to sanitized HTML.
type ListFeedbackUseCase struct {
	feedbackRepo feedback.Repository
	renderer     *markdown.Renderer
	logger       logger.Interface
}

func NewListFeedbackUseCase(feedbackRepo feedback.Repository, renderer *markdown.Renderer, logger logger.Interface) *ListFeedbackUseCase {
	return &ListFeedbackUseCase{
		feedbackRepo: feedbackRepo,
		renderer:     renderer,
		logger:       logger,
	}
}

func (uc *ListFeedbackUseCase) Execute(ctx context.Context, page, pageSize int) ([]RenderedFeedback, int64, error) {
	entries, total, err := uc.feedbackRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list feedback: %w", err)
	}

	rendered := make([]RenderedFeedback, 0, len(entries))
	for _, f := range entries {
		html, err := uc.renderer.Render(f.Body())
		if err != nil {
			uc.logger.Warnw("failed to render feedback body", "feedback_id", f.ID(), "error", err)
			html = ""
		}
		rendered = append(rendered, RenderedFeedback{Feedback: f, HTML: html})
	}
	return rendered, total, nil
}
