package usecases

import (
	"context"
	"fmt"

	"tavern/internal/domain/campaign"
	"tavern/internal/shared/logger"
)

// GetCharacterLimitUseCase picks the character ceiling that applies to a
// user. GMs (anyone owning at least one campaign) get the GM ceiling, which
// covers their NPC roster; everyone else gets the player ceiling.
type GetCharacterLimitUseCase struct {
	getUserLimits *GetUserLimitsUseCase
	campaignRepo  campaign.Repository
	logger        logger.Interface
}

func NewGetCharacterLimitUseCase(
	getUserLimits *GetUserLimitsUseCase,
	campaignRepo campaign.Repository,
	logger logger.Interface,
) *GetCharacterLimitUseCase {
	return &GetCharacterLimitUseCase{
		getUserLimits: getUserLimits,
		campaignRepo:  campaignRepo,
		logger:        logger,
	}
}

// Execute returns the applicable character limit for the user
func (uc *GetCharacterLimitUseCase) Execute(ctx context.Context, userID uint) (int, error) {
	limits, err := uc.getUserLimits.Execute(ctx, userID)
	if err != nil {
		return 0, err
	}

	isGM, err := uc.campaignRepo.HasOwnedCampaign(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve GM status: %w", err)
	}

	if isGM {
		return limits.MaxCharactersGM, nil
	}
	return limits.MaxCharactersPlayer, nil
}
