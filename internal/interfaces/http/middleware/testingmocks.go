package middleware

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tavern/internal/domain/campaign"
	"tavern/internal/domain/character"
	"tavern/internal/domain/entitlement"
	"tavern/internal/domain/invitation"
)

type mockUserLimitsRepository struct {
	mock.Mock
}

func (m *mockUserLimitsRepository) EnsureDefaults(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockUserLimitsRepository) GetByUserID(ctx context.Context, userID uint) (*entitlement.UserLimits, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entitlement.UserLimits), args.Error(1)
}

func (m *mockUserLimitsRepository) Upsert(ctx context.Context, limits entitlement.UserLimits) error {
	args := m.Called(ctx, limits)
	return args.Error(0)
}

type mockCampaignRepository struct {
	mock.Mock
}

func (m *mockCampaignRepository) Create(ctx context.Context, c *campaign.Campaign) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCampaignRepository) CreateWithCap(ctx context.Context, c *campaign.Campaign, maxOwned int) error {
	args := m.Called(ctx, c, maxOwned)
	return args.Error(0)
}

func (m *mockCampaignRepository) GetByID(ctx context.Context, id uint) (*campaign.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*campaign.Campaign), args.Error(1)
}

func (m *mockCampaignRepository) GetOwnerID(ctx context.Context, id uint) (uint, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(uint), args.Error(1)
}

func (m *mockCampaignRepository) CountOwnedByUser(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCampaignRepository) HasOwnedCampaign(ctx context.Context, userID uint) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockCampaignRepository) ListByOwner(ctx context.Context, userID uint) ([]*campaign.Campaign, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*campaign.Campaign), args.Error(1)
}

type mockMembershipRepository struct {
	mock.Mock
}

func (m *mockMembershipRepository) AddMember(ctx context.Context, member *campaign.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *mockMembershipRepository) AddPlayerWithCap(ctx context.Context, campaignID, userID uint, maxPlayers int) error {
	args := m.Called(ctx, campaignID, userID, maxPlayers)
	return args.Error(0)
}

func (m *mockMembershipRepository) IsMember(ctx context.Context, userID, campaignID uint) (bool, error) {
	args := m.Called(ctx, userID, campaignID)
	return args.Bool(0), args.Error(1)
}

func (m *mockMembershipRepository) CountPlayers(ctx context.Context, campaignID uint) (int64, error) {
	args := m.Called(ctx, campaignID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockMembershipRepository) CountJoinedCampaignsAsPlayer(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type mockJoinRequestRepository struct {
	mock.Mock
}

func (m *mockJoinRequestRepository) Create(ctx context.Context, r *campaign.JoinRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *mockJoinRequestRepository) GetByID(ctx context.Context, id uint) (*campaign.JoinRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*campaign.JoinRequest), args.Error(1)
}

func (m *mockJoinRequestRepository) Update(ctx context.Context, r *campaign.JoinRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

type mockInvitationRepository struct {
	mock.Mock
}

func (m *mockInvitationRepository) Create(ctx context.Context, i *invitation.Invitation) error {
	args := m.Called(ctx, i)
	return args.Error(0)
}

func (m *mockInvitationRepository) GetByID(ctx context.Context, id uint) (*invitation.Invitation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invitation.Invitation), args.Error(1)
}

func (m *mockInvitationRepository) ListByInvitee(ctx context.Context, inviteeID uint) ([]*invitation.Invitation, error) {
	args := m.Called(ctx, inviteeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*invitation.Invitation), args.Error(1)
}

func (m *mockInvitationRepository) Update(ctx context.Context, i *invitation.Invitation) error {
	args := m.Called(ctx, i)
	return args.Error(0)
}

type mockCharacterRepository struct {
	mock.Mock
}

func (m *mockCharacterRepository) Create(ctx context.Context, ch *character.Character) error {
	args := m.Called(ctx, ch)
	return args.Error(0)
}

func (m *mockCharacterRepository) GetByID(ctx context.Context, id uint) (*character.Character, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*character.Character), args.Error(1)
}

func (m *mockCharacterRepository) CountByOwner(ctx context.Context, ownerID uint) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCharacterRepository) ListByOwner(ctx context.Context, ownerID uint) ([]*character.Character, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*character.Character), args.Error(1)
}

func (m *mockCharacterRepository) Update(ctx context.Context, ch *character.Character) error {
	args := m.Called(ctx, ch)
	return args.Error(0)
}
