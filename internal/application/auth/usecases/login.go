package usecases

import (
	"context"
	"fmt"

	"tavern/internal/domain/user"
	"tavern/internal/infrastructure/auth"
	apperrors "tavern/internal/shared/errors"
	"tavern/internal/shared/logger"
)

type LoginCommand struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token string
	User  *user.User
}

// LoginUseCase verifies credentials and issues an access token carrying the
// user's role and plan.
type LoginUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	jwt      *auth.JWTService
	logger   logger.Interface
}

func NewLoginUseCase(
	userRepo user.Repository,
	hasher PasswordHasher,
	jwt *auth.JWTService,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		jwt:      jwt,
		logger:   logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	u, err := uc.userRepo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		if err == user.ErrUserNotFound {
			return nil, apperrors.NewUnauthorizedError("invalid credentials")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !u.IsActive() {
		return nil, apperrors.NewForbiddenError("account is deactivated")
	}
	if !uc.hasher.Verify(cmd.Password, u.PasswordHash()) {
		uc.logger.Warnw("failed login attempt", "user_id", u.ID())
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}

	token, err := uc.jwt.Generate(u.ID(), u.Role(), u.Plan())
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResult{Token: token, User: u}, nil
}
