package usecases

import (
	"context"
	"fmt"

	"tavern/internal/domain/entitlement"
	"tavern/internal/domain/user"
	apperrors "tavern/internal/shared/errors"
	"tavern/internal/shared/logger"
)

type ChangePlanCommand struct {
	UserID  uint
	PlanKey string
}

// ChangePlanUseCase is the admin plan-change boundary. It rewrites the
// user's plan and replaces the enforcement limit row with the new plan's
// defaults. This is the only write path that touches existing limit rows.
type ChangePlanUseCase struct {
	userRepo   user.Repository
	limitsRepo entitlement.UserLimitsRepository
	logger     logger.Interface
}

func NewChangePlanUseCase(
	userRepo user.Repository,
	limitsRepo entitlement.UserLimitsRepository,
	logger logger.Interface,
) *ChangePlanUseCase {
	return &ChangePlanUseCase{
		userRepo:   userRepo,
		limitsRepo: limitsRepo,
		logger:     logger,
	}
}

func (uc *ChangePlanUseCase) Execute(ctx context.Context, cmd ChangePlanCommand) error {
	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		if err == user.ErrUserNotFound {
			return apperrors.NewNotFoundError("user not found")
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	planKey := entitlement.NormalizePlanKey(cmd.PlanKey)
	u.ChangePlan(planKey.String())
	if err := uc.userRepo.Update(ctx, u); err != nil {
		return fmt.Errorf("failed to update user plan: %w", err)
	}

	// Translate the plan into enforcement limits and replace the row.
	limits := entitlement.EnforcementDefaults(planKey)
	limits.UserID = cmd.UserID
	if err := uc.limitsRepo.Upsert(ctx, limits); err != nil {
		return fmt.Errorf("failed to rewrite enforcement limits: %w", err)
	}

	uc.logger.Infow("user plan changed", "user_id", cmd.UserID, "plan", planKey.String())
	return nil
}
