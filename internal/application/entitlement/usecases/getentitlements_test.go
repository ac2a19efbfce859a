package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tavern/internal/domain/entitlement"
	"tavern/internal/shared/logger"
)

func TestGetEntitlements_AdminNeverTouchesStorage(t *testing.T) {
	repo := new(mockUserLimitsRepository)
	uc := NewGetEntitlementsUseCase(repo, logger.NewLogger())

	for _, role := range []string{"ADMIN", "admin", "Admin"} {
		ent, err := uc.Execute(context.Background(), 1, role, "FREE")
		require.NoError(t, err)
		assert.True(t, ent.Admin)
		assert.Equal(t, entitlement.UnlimitedSentinel, ent.Limits[entitlement.LimitMaxCampaignsCreated])
	}
	repo.AssertNotCalled(t, "GetByUserID")
}

func TestGetEntitlements_MergesStoredOverrides(t *testing.T) {
	repo := new(mockUserLimitsRepository)
	stored := entitlement.UserLimits{
		UserID:                4,
		MaxCampaignsCreated:   99,
		MaxPlayersPerCampaign: 5,
		MaxCharactersPlayer:   3,
		MaxCharactersGM:       10,
		MaxJoinedCampaigns:    5,
	}
	repo.On("GetByUserID", mock.Anything, uint(4)).Return(&stored, nil)

	uc := NewGetEntitlementsUseCase(repo, logger.NewLogger())
	ent, err := uc.Execute(context.Background(), 4, "USER", "FREE")
	require.NoError(t, err)

	assert.False(t, ent.Admin)
	assert.Equal(t, "FREE", ent.Plan)
	// override key wins
	assert.Equal(t, 99, ent.Limits[entitlement.LimitMaxCampaignsCreated])
	// catalog keys survive the merge untouched
	assert.Equal(t, 3, ent.Limits[entitlement.LimitMaxCampaigns])
}

func TestGetEntitlements_StorageFailureFallsBackToPlanDefaults(t *testing.T) {
	repo := new(mockUserLimitsRepository)
	repo.On("GetByUserID", mock.Anything, uint(2)).Return(nil, assert.AnError)

	uc := NewGetEntitlementsUseCase(repo, logger.NewLogger())
	ent, err := uc.Execute(context.Background(), 2, "USER", "PREMIUM")
	require.NoError(t, err)
	assert.Equal(t, "PREMIUM", ent.Plan)
	assert.Equal(t, 25, ent.Limits[entitlement.LimitMaxCampaigns])
}
