package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"tavern/internal/domain/campaign"
	"tavern/internal/infrastructure/persistence/models"
	"tavern/internal/shared/logger"
)

// JoinRequestRepository implements campaign.JoinRequestRepository with GORM
type JoinRequestRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewJoinRequestRepository creates a new join request repository
func NewJoinRequestRepository(db *gorm.DB, logger logger.Interface) campaign.JoinRequestRepository {
	return &JoinRequestRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new join request
func (r *JoinRequestRepository) Create(ctx context.Context, entity *campaign.JoinRequest) error {
	model := models.JoinRequestModel{
		CampaignID: entity.CampaignID(),
		UserID:     entity.UserID(),
		Message:    entity.Message(),
		Status:     string(entity.Status()),
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.logger.Errorw("failed to create join request",
			"campaign_id", entity.CampaignID(), "user_id", entity.UserID(), "error", err)
		return fmt.Errorf("failed to create join request: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set join request ID: %w", err)
	}

	r.logger.Infow("join request created",
		"id", model.ID, "campaign_id", model.CampaignID, "user_id", model.UserID)
	return nil
}

// GetByID retrieves a join request by ID
func (r *JoinRequestRepository) GetByID(ctx context.Context, id uint) (*campaign.JoinRequest, error) {
	var model models.JoinRequestModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, campaign.ErrJoinRequestNotFound
		}
		r.logger.Errorw("failed to get join request", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get join request: %w", err)
	}

	return campaign.ReconstructJoinRequest(
		model.ID, model.CampaignID, model.UserID, model.Message,
		campaign.JoinRequestStatus(model.Status), model.CreatedAt, model.UpdatedAt,
	)
}

// Update persists entity changes
func (r *JoinRequestRepository) Update(ctx context.Context, entity *campaign.JoinRequest) error {
	result := r.db.WithContext(ctx).
		Model(&models.JoinRequestModel{}).
		Where("id = ?", entity.ID()).
		Update("status", string(entity.Status()))
	if result.Error != nil {
		r.logger.Errorw("failed to update join request", "id", entity.ID(), "error", result.Error)
		return fmt.Errorf("failed to update join request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return campaign.ErrJoinRequestNotFound
	}
	return nil
}
