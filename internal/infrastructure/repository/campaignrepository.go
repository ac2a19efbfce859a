package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"tavern/internal/domain/campaign"
	"tavern/internal/infrastructure/persistence/models"
	"tavern/internal/shared/constants"
	"tavern/internal/shared/logger"
)

// CampaignRepository implements campaign.Repository with GORM
type CampaignRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewCampaignRepository creates a new campaign repository
func NewCampaignRepository(db *gorm.DB, logger logger.Interface) campaign.Repository {
	return &CampaignRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new campaign
func (r *CampaignRepository) Create(ctx context.Context, entity *campaign.Campaign) error {
	model, err := r.toModel(entity)
	if err != nil {
		return fmt.Errorf("failed to map campaign entity: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create campaign", "owner_id", entity.OwnerID(), "error", err)
		return fmt.Errorf("failed to create campaign: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set campaign ID: %w", err)
	}

	r.logger.Infow("campaign created", "id", model.ID, "owner_id", model.OwnerID)
	return nil
}

// CreateWithCap inserts the campaign only while the owner holds fewer than
// maxOwned campaigns. The count and the insert happen in one conditional
// statement, so two racing requests cannot both slip past the ceiling.
func (r *CampaignRepository) CreateWithCap(ctx context.Context, entity *campaign.Campaign, maxOwned int) error {
	model, err := r.toModel(entity)
	if err != nil {
		return fmt.Errorf("failed to map campaign entity: %w", err)
	}

	insertSQL := fmt.Sprintf(`INSERT INTO %s (owner_id, name, description, settings, version, created_at, updated_at)
		SELECT ?, ?, ?, ?, ?, ?, ?
		WHERE (SELECT COUNT(*) FROM %s WHERE owner_id = ?) < ?`,
		constants.TableCampaigns, constants.TableCampaigns)

	// insert and ID recovery share one transaction, so the last-insert-id
	// call reads this connection's insert and never a concurrent one
	var id uint
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Exec(insertSQL,
			model.OwnerID, model.Name, model.Description, model.Settings, model.Version,
			model.CreatedAt, model.UpdatedAt,
			model.OwnerID, maxOwned,
		)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return campaign.ErrCampaignCapReached
		}
		return tx.Raw(lastInsertIDQuery(tx)).Scan(&id).Error
	})
	if err != nil {
		if err == campaign.ErrCampaignCapReached {
			return err
		}
		r.logger.Errorw("failed conditional campaign insert", "owner_id", model.OwnerID, "error", err)
		return fmt.Errorf("failed to create campaign: %w", err)
	}
	if err := entity.SetID(id); err != nil {
		return fmt.Errorf("failed to set campaign ID: %w", err)
	}

	r.logger.Infow("campaign created", "id", id, "owner_id", model.OwnerID)
	return nil
}

// lastInsertIDQuery returns the dialect's query for the connection-local
// generated ID. Tests run on sqlite, production on mysql.
func lastInsertIDQuery(db *gorm.DB) string {
	if db.Dialector.Name() == "sqlite" {
		return "SELECT last_insert_rowid()"
	}
	return "SELECT LAST_INSERT_ID()"
}

// GetByID retrieves a campaign by ID
func (r *CampaignRepository) GetByID(ctx context.Context, id uint) (*campaign.Campaign, error) {
	var model models.CampaignModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, campaign.ErrCampaignNotFound
		}
		r.logger.Errorw("failed to get campaign", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	return r.toEntity(&model)
}

// GetOwnerID returns the owning user's ID, or 0 when the campaign is absent
func (r *CampaignRepository) GetOwnerID(ctx context.Context, id uint) (uint, error) {
	var ownerID uint

	err := r.db.WithContext(ctx).
		Model(&models.CampaignModel{}).
		Where("id = ?", id).
		Limit(1).
		Pluck("owner_id", &ownerID).Error
	if err != nil {
		r.logger.Errorw("failed to get campaign owner", "id", id, "error", err)
		return 0, fmt.Errorf("failed to get campaign owner: %w", err)
	}
	return ownerID, nil
}

// CountOwnedByUser counts campaigns owned by the user
func (r *CampaignRepository) CountOwnedByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&models.CampaignModel{}).
		Where("owner_id = ?", userID).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count owned campaigns", "user_id", userID, "error", err)
		return 0, fmt.Errorf("failed to count owned campaigns: %w", err)
	}
	return count, nil
}

// HasOwnedCampaign reports whether the user owns at least one campaign
func (r *CampaignRepository) HasOwnedCampaign(ctx context.Context, userID uint) (bool, error) {
	var exists bool

	err := r.db.WithContext(ctx).
		Model(&models.CampaignModel{}).
		Select("count(*) > 0").
		Where("owner_id = ?", userID).
		Find(&exists).Error
	if err != nil {
		r.logger.Errorw("failed to probe owned campaigns", "user_id", userID, "error", err)
		return false, fmt.Errorf("failed to probe owned campaigns: %w", err)
	}
	return exists, nil
}

// ListByOwner lists the user's campaigns
func (r *CampaignRepository) ListByOwner(ctx context.Context, userID uint) ([]*campaign.Campaign, error) {
	var campaignModels []*models.CampaignModel

	err := r.db.WithContext(ctx).
		Where("owner_id = ?", userID).
		Order("created_at DESC").
		Find(&campaignModels).Error
	if err != nil {
		r.logger.Errorw("failed to list campaigns", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}

	campaigns := make([]*campaign.Campaign, 0, len(campaignModels))
	for _, model := range campaignModels {
		entity, err := r.toEntity(model)
		if err != nil {
			r.logger.Warnw("failed to map campaign model, skipping", "id", model.ID, "error", err)
			continue
		}
		campaigns = append(campaigns, entity)
	}
	return campaigns, nil
}

func (r *CampaignRepository) toModel(entity *campaign.Campaign) (*models.CampaignModel, error) {
	settings, err := json.Marshal(entity.Settings())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal campaign settings: %w", err)
	}
	return &models.CampaignModel{
		ID:          entity.ID(),
		OwnerID:     entity.OwnerID(),
		Name:        entity.Name(),
		Description: entity.Description(),
		Settings:    datatypes.JSON(settings),
		Version:     entity.Version(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}, nil
}

func (r *CampaignRepository) toEntity(model *models.CampaignModel) (*campaign.Campaign, error) {
	settings := make(map[string]any)
	if len(model.Settings) > 0 {
		if err := json.Unmarshal(model.Settings, &settings); err != nil {
			return nil, fmt.Errorf("failed to unmarshal campaign settings: %w", err)
		}
	}
	return campaign.ReconstructCampaign(
		model.ID, model.OwnerID, model.Name, model.Description,
		settings, model.CreatedAt, model.UpdatedAt, model.Version,
	)
}
