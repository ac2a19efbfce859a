package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tavern/internal/domain/entitlement"
	"tavern/internal/domain/invitation"
	"tavern/internal/infrastructure/metrics"
	"tavern/internal/shared/constants"
	"tavern/internal/shared/logger"
)

const (
	inviteGMID     = uint(10)
	inviteeID      = uint(20)
	inviteCampID   = uint(5)
	pendingInvite  = uint(42)
	invitePathBase = "/r/42"
)

func pendingInvitation(t *testing.T) *invitation.Invitation {
	t.Helper()
	inv, err := invitation.ReconstructInvitation(pendingInvite, inviteCampID, inviteGMID, inviteeID,
		invitation.StatusPending, time.Now(), time.Now())
	require.NoError(t, err)
	return inv
}

func newInvitationGate(invitationRepo *mockInvitationRepository, campaignRepo *mockCampaignRepository,
	membershipRepo *mockMembershipRepository, limits map[uint]entitlement.UserLimits) *InvitationQuotaMiddleware {
	return NewInvitationQuotaMiddleware(
		invitationRepo, campaignRepo, membershipRepo,
		limitsUseCase(limits), logger.NewLogger())
}

func TestCheckInvitationAccept_NonAcceptPassesUntouched(t *testing.T) {
	// declines and unknown statuses must pass without a single repo call
	invitationRepo := new(mockInvitationRepository)
	gate := newInvitationGate(invitationRepo, new(mockCampaignRepository), new(mockMembershipRepository), nil)

	for _, body := range []string{
		`{"status":"declined"}`,
		`{"status":"pending"}`,
		`{"status":"rejected"}`,
		`{"action":"snooze"}`,
		`{}`,
	} {
		_, reached := runGate(t, gate.CheckInvitationAccept(),
			&identity{userID: inviteeID, role: "USER", plan: "FREE"},
			http.MethodPut, invitePathBase, body)
		assert.True(t, reached, "body %s must pass through", body)
	}
	invitationRepo.AssertNotCalled(t, "GetByID")
}

func TestCheckInvitationAccept_AcceptSynonymsTrigger(t *testing.T) {
	limits := map[uint]entitlement.UserLimits{
		inviteGMID: freeLimits(inviteGMID),
		inviteeID:  freeLimits(inviteeID),
	}

	for _, body := range []string{
		`{"status":"accepted"}`,
		`{"status":"Accept"}`,
		`{"action":"approve"}`,
		`{"status":" YES "}`,
		`{"action":"ok"}`,
	} {
		invitationRepo := new(mockInvitationRepository)
		invitationRepo.On("GetByID", anyCtx, pendingInvite).Return(pendingInvitation(t), nil)
		campaignRepo := new(mockCampaignRepository)
		campaignRepo.On("GetOwnerID", anyCtx, inviteCampID).Return(inviteGMID, nil)
		membershipRepo := new(mockMembershipRepository)
		membershipRepo.On("IsMember", anyCtx, inviteeID, inviteCampID).Return(false, nil)
		membershipRepo.On("CountJoinedCampaignsAsPlayer", anyCtx, inviteeID).Return(int64(5), nil)

		gate := newInvitationGate(invitationRepo, campaignRepo, membershipRepo, limits)
		w, reached := runGate(t, gate.CheckInvitationAccept(),
			&identity{userID: inviteeID, role: "USER", plan: "FREE"},
			http.MethodPut, invitePathBase, body)

		assert.False(t, reached, "body %s must trigger quota evaluation", body)
		assert.Equal(t, http.StatusConflict, w.Code)
	}
}

func TestCheckInvitationAccept_JoinedQuotaBeforePlayerCap(t *testing.T) {
	// when both quotas are exhausted, the invitee's joined-campaigns ceiling
	// wins: it is checked first and the player cap is never consulted
	invitationRepo := new(mockInvitationRepository)
	invitationRepo.On("GetByID", anyCtx, pendingInvite).Return(pendingInvitation(t), nil)
	campaignRepo := new(mockCampaignRepository)
	campaignRepo.On("GetOwnerID", anyCtx, inviteCampID).Return(inviteGMID, nil)
	membershipRepo := new(mockMembershipRepository)
	membershipRepo.On("IsMember", anyCtx, inviteeID, inviteCampID).Return(false, nil)
	membershipRepo.On("CountJoinedCampaignsAsPlayer", anyCtx, inviteeID).Return(int64(5), nil)

	gate := newInvitationGate(invitationRepo, campaignRepo, membershipRepo,
		map[uint]entitlement.UserLimits{
			inviteGMID: freeLimits(inviteGMID),
			inviteeID:  freeLimits(inviteeID),
		})
	w, reached := runGate(t, gate.CheckInvitationAccept(),
		&identity{userID: inviteeID, role: "USER", plan: "FREE"},
		http.MethodPut, invitePathBase, `{"status":"accepted"}`)

	assert.False(t, reached)
	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Quota)
	assert.Equal(t, "joined_campaigns", resp.Quota.Resource)
	assert.Equal(t, 5, resp.Quota.Limit)
	assert.Equal(t, 5, resp.Quota.Current)
	membershipRepo.AssertNotCalled(t, "CountPlayers")
}

func TestCheckInvitationAccept_PlayerCapAfterJoinedQuota(t *testing.T) {
	invitationRepo := new(mockInvitationRepository)
	invitationRepo.On("GetByID", anyCtx, pendingInvite).Return(pendingInvitation(t), nil)
	campaignRepo := new(mockCampaignRepository)
	campaignRepo.On("GetOwnerID", anyCtx, inviteCampID).Return(inviteGMID, nil)
	membershipRepo := new(mockMembershipRepository)
	membershipRepo.On("IsMember", anyCtx, inviteeID, inviteCampID).Return(false, nil)
	membershipRepo.On("CountJoinedCampaignsAsPlayer", anyCtx, inviteeID).Return(int64(1), nil)
	membershipRepo.On("CountPlayers", anyCtx, inviteCampID).Return(int64(5), nil)

	gate := newInvitationGate(invitationRepo, campaignRepo, membershipRepo,
		map[uint]entitlement.UserLimits{
			inviteGMID: freeLimits(inviteGMID),
			inviteeID:  freeLimits(inviteeID),
		})
	w, reached := runGate(t, gate.CheckInvitationAccept(),
		&identity{userID: inviteeID, role: "USER", plan: "FREE"},
		http.MethodPut, invitePathBase, `{"status":"accepted"}`)

	assert.False(t, reached)
	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Quota)
	assert.Equal(t, "players_per_campaign", resp.Quota.Resource)
	assert.Equal(t, 5, resp.Quota.Limit)
}

func TestCheckInvitationAccept_BothQuotasClearAdmit(t *testing.T) {
	invitationRepo := new(mockInvitationRepository)
	invitationRepo.On("GetByID", anyCtx, pendingInvite).Return(pendingInvitation(t), nil)
	campaignRepo := new(mockCampaignRepository)
	campaignRepo.On("GetOwnerID", anyCtx, inviteCampID).Return(inviteGMID, nil)
	membershipRepo := new(mockMembershipRepository)
	membershipRepo.On("IsMember", anyCtx, inviteeID, inviteCampID).Return(false, nil)
	membershipRepo.On("CountJoinedCampaignsAsPlayer", anyCtx, inviteeID).Return(int64(2), nil)
	membershipRepo.On("CountPlayers", anyCtx, inviteCampID).Return(int64(3), nil)

	gate := newInvitationGate(invitationRepo, campaignRepo, membershipRepo,
		map[uint]entitlement.UserLimits{
			inviteGMID: freeLimits(inviteGMID),
			inviteeID:  freeLimits(inviteeID),
		})
	_, reached := runGate(t, gate.CheckInvitationAccept(),
		&identity{userID: inviteeID, role: "USER", plan: "FREE"},
		http.MethodPut, invitePathBase, `{"status":"accepted"}`)

	assert.True(t, reached)
}

func TestCheckInvitationAccept_FullPassCountsBothQuotas(t *testing.T) {
	// an admitted accept ran both checks, so both resources must record an
	// allowed outcome
	invitationRepo := new(mockInvitationRepository)
	invitationRepo.On("GetByID", anyCtx, pendingInvite).Return(pendingInvitation(t), nil)
	campaignRepo := new(mockCampaignRepository)
	campaignRepo.On("GetOwnerID", anyCtx, inviteCampID).Return(inviteGMID, nil)
	membershipRepo := new(mockMembershipRepository)
	membershipRepo.On("IsMember", anyCtx, inviteeID, inviteCampID).Return(false, nil)
	membershipRepo.On("CountJoinedCampaignsAsPlayer", anyCtx, inviteeID).Return(int64(0), nil)
	membershipRepo.On("CountPlayers", anyCtx, inviteCampID).Return(int64(0), nil)

	joinedAllowed := metrics.QuotaChecksTotal.WithLabelValues(
		constants.QuotaResourceJoinedCampaigns, metrics.OutcomeAllowed)
	playersAllowed := metrics.QuotaChecksTotal.WithLabelValues(
		constants.QuotaResourcePlayersPerCampaign, metrics.OutcomeAllowed)
	joinedBefore := testutil.ToFloat64(joinedAllowed)
	playersBefore := testutil.ToFloat64(playersAllowed)

	gate := newInvitationGate(invitationRepo, campaignRepo, membershipRepo,
		map[uint]entitlement.UserLimits{
			inviteGMID: freeLimits(inviteGMID),
			inviteeID:  freeLimits(inviteeID),
		})
	_, reached := runGate(t, gate.CheckInvitationAccept(),
		&identity{userID: inviteeID, role: "USER", plan: "FREE"},
		http.MethodPut, invitePathBase, `{"status":"accepted"}`)

	require.True(t, reached)
	assert.Equal(t, joinedBefore+1, testutil.ToFloat64(joinedAllowed))
	assert.Equal(t, playersBefore+1, testutil.ToFloat64(playersAllowed))
}

func TestCheckInvitationAccept_WrongInviteeForbidden(t *testing.T) {
	invitationRepo := new(mockInvitationRepository)
	invitationRepo.On("GetByID", anyCtx, pendingInvite).Return(pendingInvitation(t), nil)

	gate := newInvitationGate(invitationRepo, new(mockCampaignRepository), new(mockMembershipRepository), nil)
	w, reached := runGate(t, gate.CheckInvitationAccept(),
		&identity{userID: 99, role: "USER", plan: "FREE"},
		http.MethodPut, invitePathBase, `{"status":"accepted"}`)

	assert.False(t, reached)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCheckInvitationAccept_AbsentInvitationNotFound(t *testing.T) {
	invitationRepo := new(mockInvitationRepository)
	invitationRepo.On("GetByID", anyCtx, pendingInvite).Return(nil, invitation.ErrInvitationNotFound)

	gate := newInvitationGate(invitationRepo, new(mockCampaignRepository), new(mockMembershipRepository), nil)
	w, reached := runGate(t, gate.CheckInvitationAccept(),
		&identity{userID: inviteeID, role: "USER", plan: "FREE"},
		http.MethodPut, invitePathBase, `{"status":"accepted"}`)

	assert.False(t, reached)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckInvitationAccept_ExistingMemberPasses(t *testing.T) {
	invitationRepo := new(mockInvitationRepository)
	invitationRepo.On("GetByID", anyCtx, pendingInvite).Return(pendingInvitation(t), nil)
	campaignRepo := new(mockCampaignRepository)
	campaignRepo.On("GetOwnerID", anyCtx, inviteCampID).Return(inviteGMID, nil)
	membershipRepo := new(mockMembershipRepository)
	membershipRepo.On("IsMember", anyCtx, inviteeID, inviteCampID).Return(true, nil)

	gate := newInvitationGate(invitationRepo, campaignRepo, membershipRepo, nil)
	_, reached := runGate(t, gate.CheckInvitationAccept(),
		&identity{userID: inviteeID, role: "USER", plan: "FREE"},
		http.MethodPut, invitePathBase, `{"status":"accepted"}`)

	assert.True(t, reached)
	membershipRepo.AssertNotCalled(t, "CountJoinedCampaignsAsPlayer")
}

func TestCheckInvitationAccept_MalformedBodyRejected(t *testing.T) {
	gate := newInvitationGate(new(mockInvitationRepository), new(mockCampaignRepository), new(mockMembershipRepository), nil)

	w, reached := runGate(t, gate.CheckInvitationAccept(),
		&identity{userID: inviteeID, role: "USER", plan: "FREE"},
		http.MethodPut, invitePathBase, `{"status":`)

	assert.False(t, reached)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckInvitationAccept_AdminBypass(t *testing.T) {
	invitationRepo := new(mockInvitationRepository)
	gate := newInvitationGate(invitationRepo, new(mockCampaignRepository), new(mockMembershipRepository), nil)

	_, reached := runGate(t, gate.CheckInvitationAccept(),
		&identity{userID: 1, role: "ADMIN", plan: "FREE"},
		http.MethodPut, invitePathBase, `{"status":"accepted"}`)

	assert.True(t, reached)
	invitationRepo.AssertNotCalled(t, "GetByID")
}
