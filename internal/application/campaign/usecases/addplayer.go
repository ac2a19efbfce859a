package usecases

import (
	"context"
	"fmt"

	entitlementUC "tavern/internal/application/entitlement/usecases"
	"tavern/internal/domain/campaign"
	"tavern/internal/shared/constants"
	apperrors "tavern/internal/shared/errors"
	"tavern/internal/shared/logger"
)

type AddPlayerCommand struct {
	CampaignID uint
	UserID     uint
}

// AddPlayerUseCase admits a player into a campaign under the campaign
// owner's player cap. Already-member admissions are idempotent successes.
type AddPlayerUseCase struct {
	campaignRepo   campaign.Repository
	membershipRepo campaign.MembershipRepository
	getUserLimits  *entitlementUC.GetUserLimitsUseCase
	logger         logger.Interface
}

func NewAddPlayerUseCase(
	campaignRepo campaign.Repository,
	membershipRepo campaign.MembershipRepository,
	getUserLimits *entitlementUC.GetUserLimitsUseCase,
	logger logger.Interface,
) *AddPlayerUseCase {
	return &AddPlayerUseCase{
		campaignRepo:   campaignRepo,
		membershipRepo: membershipRepo,
		getUserLimits:  getUserLimits,
		logger:         logger,
	}
}

func (uc *AddPlayerUseCase) Execute(ctx context.Context, cmd AddPlayerCommand) error {
	ownerID, err := uc.campaignRepo.GetOwnerID(ctx, cmd.CampaignID)
	if err != nil {
		return fmt.Errorf("failed to resolve campaign owner: %w", err)
	}
	if ownerID == 0 {
		return apperrors.NewNotFoundError("campaign not found")
	}

	// the player cap is the owner's limit, not the joiner's
	limits, err := uc.getUserLimits.Execute(ctx, ownerID)
	if err != nil {
		return err
	}

	err = uc.membershipRepo.AddPlayerWithCap(ctx, cmd.CampaignID, cmd.UserID, limits.MaxPlayersPerCampaign)
	switch err {
	case nil:
		return nil
	case campaign.ErrAlreadyMember:
		// joining twice is fine
		return nil
	case campaign.ErrPlayerCapReached:
		current, countErr := uc.membershipRepo.CountPlayers(ctx, cmd.CampaignID)
		if countErr != nil {
			current = int64(limits.MaxPlayersPerCampaign)
		}
		return apperrors.NewQuotaExceededError(
			constants.QuotaResourcePlayersPerCampaign, limits.MaxPlayersPerCampaign, int(current))
	default:
		return fmt.Errorf("failed to add player: %w", err)
	}
}
