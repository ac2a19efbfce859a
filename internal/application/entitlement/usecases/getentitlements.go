package usecases

import (
	"context"

	"tavern/internal/domain/entitlement"
	"tavern/internal/shared/authorization"
	"tavern/internal/shared/logger"
)

// GetEntitlementsUseCase assembles the effective entitlement bundle for an
// actor: plan catalog definition, per-user enforcement overrides, and the
// admin sentinel when the role warrants it.
type GetEntitlementsUseCase struct {
	limitsRepo entitlement.UserLimitsRepository
	logger     logger.Interface
}

func NewGetEntitlementsUseCase(
	limitsRepo entitlement.UserLimitsRepository,
	logger logger.Interface,
) *GetEntitlementsUseCase {
	return &GetEntitlementsUseCase{
		limitsRepo: limitsRepo,
		logger:     logger,
	}
}

// Execute resolves the entitlement for the given actor. Admins never touch
// storage. For everyone else the stored enforcement row, when present, is
// merged over the plan's display limits so the response shows both
// vocabularies the way the clients consume them.
func (uc *GetEntitlementsUseCase) Execute(ctx context.Context, userID uint, role, plan string) (entitlement.Entitlement, error) {
	if authorization.IsAdminRole(role) {
		return entitlement.AdminEntitlement(), nil
	}

	var override entitlement.LimitSet
	if userID != 0 {
		limits, err := uc.limitsRepo.GetByUserID(ctx, userID)
		if err != nil {
			// entitlement display is best-effort; fall back to plan defaults
			uc.logger.Warnw("failed to read limit overrides, using plan defaults",
				"user_id", userID, "error", err)
		} else if limits != nil {
			override = limits.ToSet()
		}
	}

	return entitlement.BuildEntitlements(role, plan, override), nil
}
