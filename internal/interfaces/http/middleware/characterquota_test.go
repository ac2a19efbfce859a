package middleware

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	entitlementUC "tavern/internal/application/entitlement/usecases"
	"tavern/internal/domain/entitlement"
	"tavern/internal/shared/logger"
)

func newCharacterGate(characterRepo *mockCharacterRepository, campaignRepo *mockCampaignRepository,
	limits map[uint]entitlement.UserLimits) *CharacterQuotaMiddleware {
	log := logger.NewLogger()
	getCharacterLimit := entitlementUC.NewGetCharacterLimitUseCase(
		limitsUseCase(limits), campaignRepo, log)
	return NewCharacterQuotaMiddleware(characterRepo, getCharacterLimit, log)
}

func TestCheckCharacterCreation_PlayerCeiling(t *testing.T) {
	// free player ceiling is 3
	campaignRepo := new(mockCampaignRepository)
	campaignRepo.On("HasOwnedCampaign", anyCtx, uint(1)).Return(false, nil)

	t.Run("rejects at the player ceiling", func(t *testing.T) {
		characterRepo := new(mockCharacterRepository)
		characterRepo.On("CountByOwner", anyCtx, uint(1)).Return(int64(3), nil)

		gate := newCharacterGate(characterRepo, campaignRepo,
			map[uint]entitlement.UserLimits{1: freeLimits(1)})
		w, reached := runGate(t, gate.CheckCharacterCreation(),
			&identity{userID: 1, role: "USER", plan: "FREE"}, http.MethodPost, "/r", "")

		assert.False(t, reached)
		assert.Equal(t, http.StatusConflict, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Quota)
		assert.Equal(t, "characters", resp.Quota.Resource)
		assert.Equal(t, 3, resp.Quota.Limit)
		assert.Equal(t, 3, resp.Quota.Current)
	})

	t.Run("passes under the player ceiling", func(t *testing.T) {
		characterRepo := new(mockCharacterRepository)
		characterRepo.On("CountByOwner", anyCtx, uint(1)).Return(int64(2), nil)

		gate := newCharacterGate(characterRepo, campaignRepo,
			map[uint]entitlement.UserLimits{1: freeLimits(1)})
		_, reached := runGate(t, gate.CheckCharacterCreation(),
			&identity{userID: 1, role: "USER", plan: "FREE"}, http.MethodPost, "/r", "")

		assert.True(t, reached)
	})
}

func TestCheckCharacterCreation_GMCeiling(t *testing.T) {
	// owning a campaign moves the user to the GM ceiling, 10 on the free plan
	campaignRepo := new(mockCampaignRepository)
	campaignRepo.On("HasOwnedCampaign", anyCtx, uint(2)).Return(true, nil)

	t.Run("a count over the player ceiling still passes for a GM", func(t *testing.T) {
		characterRepo := new(mockCharacterRepository)
		characterRepo.On("CountByOwner", anyCtx, uint(2)).Return(int64(9), nil)

		gate := newCharacterGate(characterRepo, campaignRepo,
			map[uint]entitlement.UserLimits{2: freeLimits(2)})
		_, reached := runGate(t, gate.CheckCharacterCreation(),
			&identity{userID: 2, role: "USER", plan: "FREE"}, http.MethodPost, "/r", "")

		assert.True(t, reached)
	})

	t.Run("rejects at the GM ceiling", func(t *testing.T) {
		characterRepo := new(mockCharacterRepository)
		characterRepo.On("CountByOwner", anyCtx, uint(2)).Return(int64(10), nil)

		gate := newCharacterGate(characterRepo, campaignRepo,
			map[uint]entitlement.UserLimits{2: freeLimits(2)})
		w, reached := runGate(t, gate.CheckCharacterCreation(),
			&identity{userID: 2, role: "USER", plan: "FREE"}, http.MethodPost, "/r", "")

		assert.False(t, reached)
		assert.Equal(t, http.StatusConflict, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Quota)
		assert.Equal(t, 10, resp.Quota.Limit)
	})
}

func TestCheckCharacterCreation_AdminBypass(t *testing.T) {
	characterRepo := new(mockCharacterRepository)
	gate := newCharacterGate(characterRepo, new(mockCampaignRepository), nil)

	_, reached := runGate(t, gate.CheckCharacterCreation(),
		&identity{userID: 9, role: "ADMIN", plan: "FREE"}, http.MethodPost, "/r", "")

	assert.True(t, reached)
	characterRepo.AssertNotCalled(t, "CountByOwner")
}

func TestCheckCharacterCreation_GMProbeFailureIsInternal(t *testing.T) {
	campaignRepo := new(mockCampaignRepository)
	campaignRepo.On("HasOwnedCampaign", anyCtx, uint(1)).Return(false, assert.AnError)

	gate := newCharacterGate(new(mockCharacterRepository), campaignRepo,
		map[uint]entitlement.UserLimits{1: freeLimits(1)})
	w, reached := runGate(t, gate.CheckCharacterCreation(),
		&identity{userID: 1, role: "USER", plan: "FREE"}, http.MethodPost, "/r", "")

	assert.False(t, reached)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
