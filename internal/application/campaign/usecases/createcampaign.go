// Package usecases contains the campaign application services.
package usecases

import (
	"context"
	"fmt"

	"tavern/internal/domain/campaign"
	entitlementUC "tavern/internal/application/entitlement/usecases"
	"tavern/internal/shared/constants"
	apperrors "tavern/internal/shared/errors"
	"tavern/internal/shared/logger"
)

type CreateCampaignCommand struct {
	OwnerID     uint
	OwnerRole   string
	Name        string
	Description string
}

// CreateCampaignUseCase creates a campaign under the owner's campaign cap.
// The middleware gate has usually rejected over-quota requests already; the
// conditional insert here is the transactional backstop against races.
type CreateCampaignUseCase struct {
	campaignRepo   campaign.Repository
	membershipRepo campaign.MembershipRepository
	getUserLimits  *entitlementUC.GetUserLimitsUseCase
	logger         logger.Interface
}

func NewCreateCampaignUseCase(
	campaignRepo campaign.Repository,
	membershipRepo campaign.MembershipRepository,
	getUserLimits *entitlementUC.GetUserLimitsUseCase,
	logger logger.Interface,
) *CreateCampaignUseCase {
	return &CreateCampaignUseCase{
		campaignRepo:   campaignRepo,
		membershipRepo: membershipRepo,
		getUserLimits:  getUserLimits,
		logger:         logger,
	}
}

func (uc *CreateCampaignUseCase) Execute(ctx context.Context, cmd CreateCampaignCommand) (*campaign.Campaign, error) {
	c, err := campaign.NewCampaign(cmd.OwnerID, cmd.Name, cmd.Description)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	limits, err := uc.getUserLimits.Execute(ctx, cmd.OwnerID)
	if err != nil {
		return nil, err
	}

	if err := uc.campaignRepo.CreateWithCap(ctx, c, limits.MaxCampaignsCreated); err != nil {
		if err == campaign.ErrCampaignCapReached {
			current, countErr := uc.campaignRepo.CountOwnedByUser(ctx, cmd.OwnerID)
			if countErr != nil {
				current = int64(limits.MaxCampaignsCreated)
			}
			return nil, apperrors.NewQuotaExceededError(
				constants.QuotaResourceCampaigns, limits.MaxCampaignsCreated, int(current))
		}
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	// the GM's own membership row
	gm, err := campaign.NewMember(c.ID(), cmd.OwnerID, campaign.MemberRoleGM)
	if err != nil {
		return nil, fmt.Errorf("failed to build GM membership: %w", err)
	}
	if err := uc.membershipRepo.AddMember(ctx, gm); err != nil && err != campaign.ErrAlreadyMember {
		uc.logger.Errorw("failed to add GM membership", "campaign_id", c.ID(), "error", err)
		return nil, fmt.Errorf("failed to add GM membership: %w", err)
	}

	return c, nil
}
