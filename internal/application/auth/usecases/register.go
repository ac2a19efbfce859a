// Package usecases contains the authentication application services.
package usecases

import (
	"context"
	"fmt"

	"tavern/internal/domain/entitlement"
	"tavern/internal/domain/user"
	apperrors "tavern/internal/shared/errors"
	"tavern/internal/shared/logger"
)

type RegisterCommand struct {
	Email    string
	Name     string
	Password string
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// RegisterUseCase creates a new account on the FREE plan and bootstraps its
// enforcement limit row so the first quota check never races the insert.
type RegisterUseCase struct {
	userRepo   user.Repository
	limitsRepo entitlement.UserLimitsRepository
	hasher     PasswordHasher
	logger     logger.Interface
}

func NewRegisterUseCase(
	userRepo user.Repository,
	limitsRepo entitlement.UserLimitsRepository,
	hasher PasswordHasher,
	logger logger.Interface,
) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo:   userRepo,
		limitsRepo: limitsRepo,
		hasher:     hasher,
		logger:     logger,
	}
}

func (uc *RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (*user.User, error) {
	if len(cmd.Password) < 8 {
		return nil, apperrors.NewValidationError("password must be at least 8 characters")
	}

	existing, err := uc.userRepo.GetByEmail(ctx, cmd.Email)
	if err != nil && err != user.ErrUserNotFound {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("email already registered")
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u, err := user.NewUser(cmd.Email, cmd.Name, hash)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// eager bootstrap; the gates would lazily create this anyway
	if err := uc.limitsRepo.EnsureDefaults(ctx, u.ID()); err != nil {
		uc.logger.Warnw("failed to bootstrap limits at registration", "user_id", u.ID(), "error", err)
	}

	uc.logger.Infow("user registered", "user_id", u.ID())
	return u, nil
}
