package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tavern/internal/domain/entitlement"
	"tavern/internal/infrastructure/persistence/models"
	"tavern/internal/shared/logger"
)

// UserLimitsRepository implements entitlement.UserLimitsRepository with GORM
type UserLimitsRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewUserLimitsRepository creates a new user limits repository
func NewUserLimitsRepository(db *gorm.DB, logger logger.Interface) entitlement.UserLimitsRepository {
	return &UserLimitsRepository{
		db:     db,
		logger: logger,
	}
}

// EnsureDefaults inserts the bootstrap limit row for the user if none exists.
// Insert-or-ignore: an existing row is never modified here, so limits granted
// by an earlier plan change survive concurrent bootstrap attempts.
func (r *UserLimitsRepository) EnsureDefaults(ctx context.Context, userID uint) error {
	defaults := entitlement.DefaultLimits(userID)
	model := models.UserLimitsModel{
		UserID:                defaults.UserID,
		MaxCampaignsCreated:   defaults.MaxCampaignsCreated,
		MaxPlayersPerCampaign: defaults.MaxPlayersPerCampaign,
		MaxCharactersPlayer:   defaults.MaxCharactersPlayer,
		MaxCharactersGM:       defaults.MaxCharactersGM,
		MaxJoinedCampaigns:    defaults.MaxJoinedCampaigns,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&model).Error
	if err != nil {
		r.logger.Errorw("failed to ensure default limits", "user_id", userID, "error", err)
		return fmt.Errorf("failed to ensure default limits: %w", err)
	}
	return nil
}

// GetByUserID returns the user's limit row, or nil when absent
func (r *UserLimitsRepository) GetByUserID(ctx context.Context, userID uint) (*entitlement.UserLimits, error) {
	var model models.UserLimitsModel

	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get user limits", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get user limits: %w", err)
	}

	return &entitlement.UserLimits{
		UserID:                model.UserID,
		MaxCampaignsCreated:   model.MaxCampaignsCreated,
		MaxPlayersPerCampaign: model.MaxPlayersPerCampaign,
		MaxCharactersPlayer:   model.MaxCharactersPlayer,
		MaxCharactersGM:       model.MaxCharactersGM,
		MaxJoinedCampaigns:    model.MaxJoinedCampaigns,
	}, nil
}

// Upsert replaces the user's limit row. Used by admin plan changes.
func (r *UserLimitsRepository) Upsert(ctx context.Context, limits entitlement.UserLimits) error {
	model := models.UserLimitsModel{
		UserID:                limits.UserID,
		MaxCampaignsCreated:   limits.MaxCampaignsCreated,
		MaxPlayersPerCampaign: limits.MaxPlayersPerCampaign,
		MaxCharactersPlayer:   limits.MaxCharactersPlayer,
		MaxCharactersGM:       limits.MaxCharactersGM,
		MaxJoinedCampaigns:    limits.MaxJoinedCampaigns,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"max_campaigns_created",
			"max_players_per_campaign",
			"max_characters_player",
			"max_characters_gm",
			"max_joined_campaigns",
			"updated_at",
		}),
	}).Create(&model).Error
	if err != nil {
		r.logger.Errorw("failed to upsert user limits", "user_id", limits.UserID, "error", err)
		return fmt.Errorf("failed to upsert user limits: %w", err)
	}

	r.logger.Infow("user limits updated", "user_id", limits.UserID)
	return nil
}
