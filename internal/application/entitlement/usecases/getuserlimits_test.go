package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/mock"

	"tavern/internal/domain/entitlement"
	"tavern/internal/shared/logger"
)

func TestGetUserLimits_RequiresUserID(t *testing.T) {
	repo := new(mockUserLimitsRepository)
	uc := NewGetUserLimitsUseCase(repo, logger.NewLogger())

	_, err := uc.Execute(context.Background(), 0)
	assert.ErrorIs(t, err, entitlement.ErrMissingUserID)
	repo.AssertNotCalled(t, "EnsureDefaults")
}

func TestGetUserLimits_BootstrapsBeforeReading(t *testing.T) {
	repo := new(mockUserLimitsRepository)
	stored := entitlement.UserLimits{
		UserID:                7,
		MaxCampaignsCreated:   25,
		MaxPlayersPerCampaign: 20,
		MaxCharactersPlayer:   25,
		MaxCharactersGM:       100,
		MaxJoinedCampaigns:    50,
	}
	repo.On("EnsureDefaults", mock.Anything, uint(7)).Return(nil)
	repo.On("GetByUserID", mock.Anything, uint(7)).Return(&stored, nil)

	uc := NewGetUserLimitsUseCase(repo, logger.NewLogger())
	limits, err := uc.Execute(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, stored, *limits)
	repo.AssertExpectations(t)
}

func TestGetUserLimits_FallsBackToDefaultsWhenRowVanishes(t *testing.T) {
	repo := new(mockUserLimitsRepository)
	repo.On("EnsureDefaults", mock.Anything, uint(3)).Return(nil)
	repo.On("GetByUserID", mock.Anything, uint(3)).Return(nil, nil)

	uc := NewGetUserLimitsUseCase(repo, logger.NewLogger())
	limits, err := uc.Execute(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, entitlement.DefaultLimits(3), *limits)
}

func TestGetUserLimits_PropagatesBootstrapFailure(t *testing.T) {
	repo := new(mockUserLimitsRepository)
	repo.On("EnsureDefaults", mock.Anything, uint(9)).Return(errors.New("db down"))

	uc := NewGetUserLimitsUseCase(repo, logger.NewLogger())
	_, err := uc.Execute(context.Background(), 9)
	assert.Error(t, err)
	repo.AssertNotCalled(t, "GetByUserID")
}

func TestGetCharacterLimit_SplitsGMAndPlayer(t *testing.T) {
	limitsRepo := new(mockUserLimitsRepository)
	stored := entitlement.DefaultLimits(5)
	limitsRepo.On("EnsureDefaults", mock.Anything, uint(5)).Return(nil)
	limitsRepo.On("GetByUserID", mock.Anything, uint(5)).Return(&stored, nil)

	t.Run("gm ceiling when the user owns a campaign", func(t *testing.T) {
		campaignRepo := new(mockCampaignRepository)
		campaignRepo.On("HasOwnedCampaign", mock.Anything, uint(5)).Return(true, nil)

		uc := NewGetCharacterLimitUseCase(
			NewGetUserLimitsUseCase(limitsRepo, logger.NewLogger()),
			campaignRepo, logger.NewLogger())
		limit, err := uc.Execute(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, stored.MaxCharactersGM, limit)
	})

	t.Run("player ceiling otherwise", func(t *testing.T) {
		campaignRepo := new(mockCampaignRepository)
		campaignRepo.On("HasOwnedCampaign", mock.Anything, uint(5)).Return(false, nil)

		uc := NewGetCharacterLimitUseCase(
			NewGetUserLimitsUseCase(limitsRepo, logger.NewLogger()),
			campaignRepo, logger.NewLogger())
		limit, err := uc.Execute(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, stored.MaxCharactersPlayer, limit)
	})
}
