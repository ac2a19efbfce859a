package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"tavern/internal/domain/feedback"
	"tavern/internal/infrastructure/persistence/models"
	"tavern/internal/shared/logger"
)

// FeedbackRepository implements feedback.Repository with GORM
type FeedbackRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db *gorm.DB, logger logger.Interface) feedback.Repository {
	return &FeedbackRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new feedback entry
func (r *FeedbackRepository) Create(ctx context.Context, entity *feedback.Feedback) error {
	model := models.FeedbackModel{
		UserID:   entity.UserID(),
		Category: string(entity.Category()),
		Subject:  entity.Subject(),
		Body:     entity.Body(),
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.logger.Errorw("failed to create feedback", "user_id", entity.UserID(), "error", err)
		return fmt.Errorf("failed to create feedback: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set feedback ID: %w", err)
	}
	return nil
}

// GetByID retrieves a feedback entry by ID
func (r *FeedbackRepository) GetByID(ctx context.Context, id uint) (*feedback.Feedback, error) {
	var model models.FeedbackModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, feedback.ErrFeedbackNotFound
		}
		r.logger.Errorw("failed to get feedback", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}

	return feedback.ReconstructFeedback(
		model.ID, model.UserID, feedback.Category(model.Category),
		model.Subject, model.Body, model.CreatedAt,
	)
}

// List retrieves feedback entries with pagination, newest first
func (r *FeedbackRepository) List(ctx context.Context, page, pageSize int) ([]*feedback.Feedback, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.FeedbackModel{}).Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count feedback", "error", err)
		return nil, 0, fmt.Errorf("failed to count feedback: %w", err)
	}

	var feedbackModels []*models.FeedbackModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&feedbackModels).Error
	if err != nil {
		r.logger.Errorw("failed to list feedback", "error", err)
		return nil, 0, fmt.Errorf("failed to list feedback: %w", err)
	}

	entries := make([]*feedback.Feedback, 0, len(feedbackModels))
	for _, model := range feedbackModels {
		entity, err := feedback.ReconstructFeedback(
			model.ID, model.UserID, feedback.Category(model.Category),
			model.Subject, model.Body, model.CreatedAt,
		)
		if err != nil {
			r.logger.Warnw("failed to map feedback model, skipping", "id", model.ID, "error", err)
			continue
		}
		entries = append(entries, entity)
	}
	return entries, total, nil
}
