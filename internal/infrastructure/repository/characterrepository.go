package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"tavern/internal/domain/character"
	"tavern/internal/infrastructure/persistence/models"
	"tavern/internal/shared/logger"
)

// CharacterRepository implements character.Repository with GORM
type CharacterRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewCharacterRepository creates a new character repository
func NewCharacterRepository(db *gorm.DB, logger logger.Interface) character.Repository {
	return &CharacterRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new character
func (r *CharacterRepository) Create(ctx context.Context, entity *character.Character) error {
	model, err := r.toModel(entity)
	if err != nil {
		return fmt.Errorf("failed to map character entity: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create character", "owner_id", entity.OwnerID(), "error", err)
		return fmt.Errorf("failed to create character: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set character ID: %w", err)
	}

	r.logger.Infow("character created", "id", model.ID, "owner_id", model.OwnerID)
	return nil
}

// GetByID retrieves a character by ID
func (r *CharacterRepository) GetByID(ctx context.Context, id uint) (*character.Character, error) {
	var model models.CharacterModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, character.ErrCharacterNotFound
		}
		r.logger.Errorw("failed to get character", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get character: %w", err)
	}

	return r.toEntity(&model)
}

// CountByOwner counts characters owned by the user
func (r *CharacterRepository) CountByOwner(ctx context.Context, ownerID uint) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&models.CharacterModel{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count characters", "owner_id", ownerID, "error", err)
		return 0, fmt.Errorf("failed to count characters: %w", err)
	}
	return count, nil
}

// ListByOwner lists the user's characters
func (r *CharacterRepository) ListByOwner(ctx context.Context, ownerID uint) ([]*character.Character, error) {
	var characterModels []*models.CharacterModel

	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&characterModels).Error
	if err != nil {
		r.logger.Errorw("failed to list characters", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}

	characters := make([]*character.Character, 0, len(characterModels))
	for _, model := range characterModels {
		entity, err := r.toEntity(model)
		if err != nil {
			r.logger.Warnw("failed to map character model, skipping", "id", model.ID, "error", err)
			continue
		}
		characters = append(characters, entity)
	}
	return characters, nil
}

// Update persists entity changes
func (r *CharacterRepository) Update(ctx context.Context, entity *character.Character) error {
	model, err := r.toModel(entity)
	if err != nil {
		return fmt.Errorf("failed to map character entity: %w", err)
	}

	result := r.db.WithContext(ctx).
		Model(&models.CharacterModel{}).
		Where("id = ?", entity.ID()).
		Updates(map[string]any{
			"campaign_id": model.CampaignID,
			"name":        model.Name,
			"sheet":       model.Sheet,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update character", "id", entity.ID(), "error", result.Error)
		return fmt.Errorf("failed to update character: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return character.ErrCharacterNotFound
	}
	return nil
}

func (r *CharacterRepository) toModel(entity *character.Character) (*models.CharacterModel, error) {
	sheet, err := json.Marshal(entity.Sheet())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal character sheet: %w", err)
	}
	return &models.CharacterModel{
		ID:         entity.ID(),
		OwnerID:    entity.OwnerID(),
		CampaignID: entity.CampaignID(),
		Name:       entity.Name(),
		Sheet:      datatypes.JSON(sheet),
		CreatedAt:  entity.CreatedAt(),
		UpdatedAt:  entity.UpdatedAt(),
	}, nil
}

func (r *CharacterRepository) toEntity(model *models.CharacterModel) (*character.Character, error) {
	sheet := make(map[string]any)
	if len(model.Sheet) > 0 {
		if err := json.Unmarshal(model.Sheet, &sheet); err != nil {
			return nil, fmt.Errorf("failed to unmarshal character sheet: %w", err)
		}
	}
	return character.ReconstructCharacter(
		model.ID, model.OwnerID, model.CampaignID, model.Name,
		sheet, model.CreatedAt, model.UpdatedAt,
	)
}
