package usecases

import (
	"context"
	"fmt"

	"tavern/internal/domain/campaign"
	apperrors "tavern/internal/shared/errors"
)

// GetCampaignUseCase loads a single campaign
type GetCampaignUseCase struct {
	campaignRepo campaign.Repository
}

func NewGetCampaignUseCase(campaignRepo campaign.Repository) *GetCampaignUseCase {
	return &GetCampaignUseCase{campaignRepo: campaignRepo}
}

func (uc *GetCampaignUseCase) Execute(ctx context.Context, id uint) (*campaign.Campaign, error) {
	c, err := uc.campaignRepo.GetByID(ctx, id)
	if err != nil {
		if err == campaign.ErrCampaignNotFound {
			return nil, apperrors.NewNotFoundError("campaign not found")
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	return c, nil
}

// ListCampaignsUseCase lists the campaigns a user owns
type ListCampaignsUseCase struct {
	campaignRepo campaign.Repository
}

func NewListCampaignsUseCase(campaignRepo campaign.Repository) *ListCampaignsUseCase {
	return &ListCampaignsUseCase{campaignRepo: campaignRepo}
}

func (uc *ListCampaignsUseCase) Execute(ctx context.Context, ownerID uint) ([]*campaign.Campaign, error) {
	campaigns, err := uc.campaignRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, nil
}
