package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"tavern/internal/domain/user"
	"tavern/internal/infrastructure/persistence/models"
	apperrors "tavern/internal/shared/errors"
	"tavern/internal/shared/logger"
)

// UserRepository implements user.Repository with GORM
type UserRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB, logger logger.Interface) user.Repository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, entity *user.User) error {
	model := r.toModel(entity)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return fmt.Errorf("email already registered")
		}
		r.logger.Errorw("failed to create user", "email", entity.Email(), "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set user ID: %w", err)
	}

	r.logger.Infow("user created", "id", model.ID, "email", model.Email)
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	var model models.UserModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, user.ErrUserNotFound
		}
		r.logger.Errorw("failed to get user", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return r.toEntity(&model)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model models.UserModel

	email = strings.ToLower(strings.TrimSpace(email))
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, user.ErrUserNotFound
		}
		r.logger.Errorw("failed to get user by email", "error", err)
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return r.toEntity(&model)
}

// List retrieves users with pagination
func (r *UserRepository) List(ctx context.Context, page, pageSize int) ([]*user.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.UserModel{}).Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count users", "error", err)
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var userModels []*models.UserModel
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&userModels).Error
	if err != nil {
		r.logger.Errorw("failed to list users", "error", err)
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*user.User, 0, len(userModels))
	for _, model := range userModels {
		entity, err := r.toEntity(model)
		if err != nil {
			r.logger.Warnw("failed to map user model, skipping", "id", model.ID, "error", err)
			continue
		}
		users = append(users, entity)
	}
	return users, total, nil
}

// Update persists entity changes
func (r *UserRepository) Update(ctx context.Context, entity *user.User) error {
	result := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("id = ?", entity.ID()).
		Updates(map[string]any{
			"name":   entity.Name(),
			"role":   entity.Role().String(),
			"plan":   entity.Plan(),
			"status": string(entity.Status()),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update user", "id", entity.ID(), "error", result.Error)
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) toModel(entity *user.User) *models.UserModel {
	return &models.UserModel{
		ID:           entity.ID(),
		Email:        entity.Email(),
		Name:         entity.Name(),
		PasswordHash: entity.PasswordHash(),
		Role:         entity.Role().String(),
		Plan:         entity.Plan(),
		Status:       string(entity.Status()),
		CreatedAt:    entity.CreatedAt(),
	}
}

func (r *UserRepository) toEntity(model *models.UserModel) (*user.User, error) {
	return user.ReconstructUser(
		model.ID, model.Email, model.Name, model.PasswordHash,
		model.Role, model.Plan, user.Status(model.Status),
		model.CreatedAt, model.UpdatedAt,
	)
}
