// Package usecases contains the entitlement application services: limit
// resolution, entitlement assembly, and the admin plan-change boundary.
package usecases

import (
	"context"
	"fmt"

	"tavern/internal/domain/entitlement"
	"tavern/internal/shared/logger"
)

// GetUserLimitsUseCase resolves a user's effective enforcement limits,
// bootstrapping the default row on first touch.
type GetUserLimitsUseCase struct {
	limitsRepo entitlement.UserLimitsRepository
	logger     logger.Interface
}

func NewGetUserLimitsUseCase(
	limitsRepo entitlement.UserLimitsRepository,
	logger logger.Interface,
) *GetUserLimitsUseCase {
	return &GetUserLimitsUseCase{
		limitsRepo: limitsRepo,
		logger:     logger,
	}
}

// Execute returns the user's limit row. The row is created with defaults if
// absent, so every authenticated user always resolves to concrete limits.
// A read that still comes back empty after bootstrap falls back to the
// in-memory defaults rather than failing the request.
func (uc *GetUserLimitsUseCase) Execute(ctx context.Context, userID uint) (*entitlement.UserLimits, error) {
	if userID == 0 {
		return nil, entitlement.ErrMissingUserID
	}

	if err := uc.limitsRepo.EnsureDefaults(ctx, userID); err != nil {
		uc.logger.Errorw("failed to bootstrap user limits", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to bootstrap user limits: %w", err)
	}

	limits, err := uc.limitsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user limits: %w", err)
	}
	if limits == nil {
		uc.logger.Warnw("limit row missing after bootstrap, using defaults", "user_id", userID)
		defaults := entitlement.DefaultLimits(userID)
		return &defaults, nil
	}
	return limits, nil
}
