package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"tavern/internal/domain/invitation"
	"tavern/internal/infrastructure/persistence/models"
	"tavern/internal/shared/logger"
)

// InvitationRepository implements invitation.Repository with GORM
type InvitationRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewInvitationRepository creates a new invitation repository
func NewInvitationRepository(db *gorm.DB, logger logger.Interface) invitation.Repository {
	return &InvitationRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new invitation
func (r *InvitationRepository) Create(ctx context.Context, entity *invitation.Invitation) error {
	model := r.toModel(entity)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create invitation",
			"campaign_id", entity.CampaignID(), "invitee_id", entity.InviteeID(), "error", err)
		return fmt.Errorf("failed to create invitation: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set invitation ID: %w", err)
	}

	r.logger.Infow("invitation created",
		"id", model.ID, "campaign_id", model.CampaignID, "invitee_id", model.InviteeID)
	return nil
}

// GetByID retrieves an invitation by ID
func (r *InvitationRepository) GetByID(ctx context.Context, id uint) (*invitation.Invitation, error) {
	var model models.InvitationModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, invitation.ErrInvitationNotFound
		}
		r.logger.Errorw("failed to get invitation", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}

	return r.toEntity(&model)
}

// ListByInvitee lists invitations addressed to the user
func (r *InvitationRepository) ListByInvitee(ctx context.Context, inviteeID uint) ([]*invitation.Invitation, error) {
	var invitationModels []*models.InvitationModel

	err := r.db.WithContext(ctx).
		Where("invitee_id = ?", inviteeID).
		Order("created_at DESC").
		Find(&invitationModels).Error
	if err != nil {
		r.logger.Errorw("failed to list invitations", "invitee_id", inviteeID, "error", err)
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}

	invitations := make([]*invitation.Invitation, 0, len(invitationModels))
	for _, model := range invitationModels {
		entity, err := r.toEntity(model)
		if err != nil {
			r.logger.Warnw("failed to map invitation model, skipping", "id", model.ID, "error", err)
			continue
		}
		invitations = append(invitations, entity)
	}
	return invitations, nil
}

// Update persists entity changes
func (r *InvitationRepository) Update(ctx context.Context, entity *invitation.Invitation) error {
	result := r.db.WithContext(ctx).
		Model(&models.InvitationModel{}).
		Where("id = ?", entity.ID()).
		Update("status", string(entity.Status()))
	if result.Error != nil {
		r.logger.Errorw("failed to update invitation", "id", entity.ID(), "error", result.Error)
		return fmt.Errorf("failed to update invitation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return invitation.ErrInvitationNotFound
	}
	return nil
}

func (r *InvitationRepository) toModel(entity *invitation.Invitation) *models.InvitationModel {
	return &models.InvitationModel{
		ID:         entity.ID(),
		CampaignID: entity.CampaignID(),
		InviterID:  entity.InviterID(),
		InviteeID:  entity.InviteeID(),
		Status:     string(entity.Status()),
		CreatedAt:  entity.CreatedAt(),
	}
}

func (r *InvitationRepository) toEntity(model *models.InvitationModel) (*invitation.Invitation, error) {
	return invitation.ReconstructInvitation(
		model.ID, model.CampaignID, model.InviterID, model.InviteeID,
		invitation.Status(model.Status), model.CreatedAt, model.UpdatedAt,
	)
}
