package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tavern/internal/domain/campaign"
	"tavern/internal/domain/entitlement"
	"tavern/internal/shared/logger"
)

func freeLimits(userID uint) entitlement.UserLimits {
	l := entitlement.DefaultLimits(userID)
	return l
}

func newCampaignGate(campaignRepo *mockCampaignRepository, membershipRepo *mockMembershipRepository,
	joinRequestRepo *mockJoinRequestRepository, limits map[uint]entitlement.UserLimits) *CampaignQuotaMiddleware {
	return NewCampaignQuotaMiddleware(
		campaignRepo, membershipRepo, joinRequestRepo,
		limitsUseCase(limits), logger.NewLogger())
}

func TestCheckCampaignCreation_RejectsAtLimit(t *testing.T) {
	campaignRepo := new(mockCampaignRepository)
	campaignRepo.On("CountOwnedByUser", anyCtx, uint(1)).Return(int64(3), nil)

	gate := newCampaignGate(campaignRepo, nil, nil,
		map[uint]entitlement.UserLimits{1: freeLimits(1)})

	w, reached := runGate(t, gate.CheckCampaignCreation(),
		&identity{userID: 1, role: "USER", plan: "FREE"}, http.MethodPost, "/r", "")

	assert.False(t, reached)
	assert.Equal(t, http.StatusConflict, w.Code)

	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Quota)
	assert.Equal(t, "campaigns", resp.Quota.Resource)
	assert.Equal(t, 3, resp.Quota.Limit)
	assert.Equal(t, 3, resp.Quota.Current)
}

func TestCheckCampaignCreation_PassesUnderLimit(t *testing.T) {
	campaignRepo := new(mockCampaignRepository)
	campaignRepo.On("CountOwnedByUser", anyCtx, uint(1)).Return(int64(2), nil)

	gate := newCampaignGate(campaignRepo, nil, nil,
		map[uint]entitlement.UserLimits{1: freeLimits(1)})

	w, reached := runGate(t, gate.CheckCampaignCreation(),
		&identity{userID: 1, role: "USER", plan: "FREE"}, http.MethodPost, "/r", "")

	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCheckCampaignCreation_AdminBypassesEverything(t *testing.T) {
	// no repo expectations at all: an admin must never touch storage
	campaignRepo := new(mockCampaignRepository)
	gate := newCampaignGate(campaignRepo, nil, nil, nil)

	for _, role := range []string{"ADMIN", "admin", "Admin"} {
		_, reached := runGate(t, gate.CheckCampaignCreation(),
			&identity{userID: 1, role: role, plan: "FREE"}, http.MethodPost, "/r", "")
		assert.True(t, reached, "role %q must bypass", role)
	}
	campaignRepo.AssertNotCalled(t, "CountOwnedByUser")
}

func TestCheckCampaignCreation_RequiresAuth(t *testing.T) {
	gate := newCampaignGate(new(mockCampaignRepository), nil, nil, nil)

	w, reached := runGate(t, gate.CheckCampaignCreation(), nil, http.MethodPost, "/r", "")
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckCampaignCreation_StorageFailureIsInternal(t *testing.T) {
	campaignRepo := new(mockCampaignRepository)
	campaignRepo.On("CountOwnedByUser", anyCtx, uint(1)).Return(int64(0), assert.AnError)

	gate := newCampaignGate(campaignRepo, nil, nil,
		map[uint]entitlement.UserLimits{1: freeLimits(1)})

	w, reached := runGate(t, gate.CheckCampaignCreation(),
		&identity{userID: 1, role: "USER", plan: "FREE"}, http.MethodPost, "/r", "")

	assert.False(t, reached)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.NotContains(t, resp.Error.Message, "assert.AnError", "internal details must not leak")
}

func TestCheckPlayerCap_JoinStateMachine(t *testing.T) {
	const (
		gmID       = uint(10)
		joinerID   = uint(20)
		campaignID = uint(5)
	)
	limits := map[uint]entitlement.UserLimits{gmID: freeLimits(gmID)} // max 5 players

	t.Run("owner passes without any cap check", func(t *testing.T) {
		campaignRepo := new(mockCampaignRepository)
		campaignRepo.On("GetOwnerID", anyCtx, campaignID).Return(gmID, nil)
		membershipRepo := new(mockMembershipRepository)

		gate := newCampaignGate(campaignRepo, membershipRepo, nil, limits)
		_, reached := runGate(t, gate.CheckPlayerCap(),
			&identity{userID: gmID, role: "USER", plan: "FREE"}, http.MethodPost, "/r/5", "")

		assert.True(t, reached)
		membershipRepo.AssertNotCalled(t, "CountPlayers")
	})

	t.Run("existing member re-joins untouched", func(t *testing.T) {
		campaignRepo := new(mockCampaignRepository)
		campaignRepo.On("GetOwnerID", anyCtx, campaignID).Return(gmID, nil)
		membershipRepo := new(mockMembershipRepository)
		membershipRepo.On("IsMember", anyCtx, joinerID, campaignID).Return(true, nil)

		gate := newCampaignGate(campaignRepo, membershipRepo, nil, limits)
		_, reached := runGate(t, gate.CheckPlayerCap(),
			&identity{userID: joinerID, role: "USER", plan: "FREE"}, http.MethodPost, "/r/5", "")

		assert.True(t, reached)
		membershipRepo.AssertNotCalled(t, "CountPlayers")
	})

	t.Run("full campaign rejects new joiner with the owner's limit", func(t *testing.T) {
		campaignRepo := new(mockCampaignRepository)
		campaignRepo.On("GetOwnerID", anyCtx, campaignID).Return(gmID, nil)
		membershipRepo := new(mockMembershipRepository)
		membershipRepo.On("IsMember", anyCtx, joinerID, campaignID).Return(false, nil)
		membershipRepo.On("CountPlayers", anyCtx, campaignID).Return(int64(5), nil)

		gate := newCampaignGate(campaignRepo, membershipRepo, nil, limits)
		w, reached := runGate(t, gate.CheckPlayerCap(),
			&identity{userID: joinerID, role: "USER", plan: "FREE"}, http.MethodPost, "/r/5", "")

		assert.False(t, reached)
		assert.Equal(t, http.StatusConflict, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Quota)
		assert.Equal(t, "players_per_campaign", resp.Quota.Resource)
		assert.Equal(t, 5, resp.Quota.Limit)
		assert.Equal(t, 5, resp.Quota.Current)
	})

	t.Run("campaign with room admits the joiner", func(t *testing.T) {
		campaignRepo := new(mockCampaignRepository)
		campaignRepo.On("GetOwnerID", anyCtx, campaignID).Return(gmID, nil)
		membershipRepo := new(mockMembershipRepository)
		membershipRepo.On("IsMember", anyCtx, joinerID, campaignID).Return(false, nil)
		membershipRepo.On("CountPlayers", anyCtx, campaignID).Return(int64(4), nil)

		gate := newCampaignGate(campaignRepo, membershipRepo, nil, limits)
		_, reached := runGate(t, gate.CheckPlayerCap(),
			&identity{userID: joinerID, role: "USER", plan: "FREE"}, http.MethodPost, "/r/5", "")

		assert.True(t, reached)
	})

	t.Run("absent campaign is 404", func(t *testing.T) {
		campaignRepo := new(mockCampaignRepository)
		campaignRepo.On("GetOwnerID", anyCtx, campaignID).Return(uint(0), nil)

		gate := newCampaignGate(campaignRepo, new(mockMembershipRepository), nil, limits)
		w, reached := runGate(t, gate.CheckPlayerCap(),
			&identity{userID: joinerID, role: "USER", plan: "FREE"}, http.MethodPost, "/r/5", "")

		assert.False(t, reached)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id is 400", func(t *testing.T) {
		gate := newCampaignGate(new(mockCampaignRepository), new(mockMembershipRepository), nil, limits)
		w, reached := runGate(t, gate.CheckPlayerCap(),
			&identity{userID: joinerID, role: "USER", plan: "FREE"}, http.MethodPost, "/r/banana", "")

		assert.False(t, reached)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCheckJoinRequestApproval_ResolvesCampaignThroughRequest(t *testing.T) {
	const (
		gmID       = uint(10)
		requester  = uint(30)
		campaignID = uint(5)
		requestID  = uint(77)
	)
	limits := map[uint]entitlement.UserLimits{gmID: freeLimits(gmID)}

	req, err := campaign.ReconstructJoinRequest(requestID, campaignID, requester, "",
		campaign.JoinRequestPending, time.Now(), time.Now())
	require.NoError(t, err)

	t.Run("full campaign blocks approval", func(t *testing.T) {
		joinRequestRepo := new(mockJoinRequestRepository)
		joinRequestRepo.On("GetByID", anyCtx, requestID).Return(req, nil)
		campaignRepo := new(mockCampaignRepository)
		campaignRepo.On("GetOwnerID", anyCtx, campaignID).Return(gmID, nil)
		membershipRepo := new(mockMembershipRepository)
		membershipRepo.On("IsMember", anyCtx, requester, campaignID).Return(false, nil)
		membershipRepo.On("CountPlayers", anyCtx, campaignID).Return(int64(5), nil)

		gate := newCampaignGate(campaignRepo, membershipRepo, joinRequestRepo, limits)
		w, reached := runGate(t, gate.CheckJoinRequestApproval(),
			&identity{userID: gmID, role: "USER", plan: "FREE"}, http.MethodPost, "/r/77", "")

		assert.False(t, reached)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("campaign with room lets the approval through", func(t *testing.T) {
		joinRequestRepo := new(mockJoinRequestRepository)
		joinRequestRepo.On("GetByID", anyCtx, requestID).Return(req, nil)
		campaignRepo := new(mockCampaignRepository)
		campaignRepo.On("GetOwnerID", anyCtx, campaignID).Return(gmID, nil)
		membershipRepo := new(mockMembershipRepository)
		membershipRepo.On("IsMember", anyCtx, requester, campaignID).Return(false, nil)
		membershipRepo.On("CountPlayers", anyCtx, campaignID).Return(int64(2), nil)

		gate := newCampaignGate(campaignRepo, membershipRepo, joinRequestRepo, limits)
		_, reached := runGate(t, gate.CheckJoinRequestApproval(),
			&identity{userID: gmID, role: "USER", plan: "FREE"}, http.MethodPost, "/r/77", "")

		assert.True(t, reached)
	})

	t.Run("absent join request is 404", func(t *testing.T) {
		joinRequestRepo := new(mockJoinRequestRepository)
		joinRequestRepo.On("GetByID", anyCtx, requestID).Return(nil, campaign.ErrJoinRequestNotFound)

		gate := newCampaignGate(new(mockCampaignRepository), new(mockMembershipRepository), joinRequestRepo, limits)
		w, reached := runGate(t, gate.CheckJoinRequestApproval(),
			&identity{userID: gmID, role: "USER", plan: "FREE"}, http.MethodPost, "/r/77", "")

		assert.False(t, reached)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
