package usecases

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tavern/internal/domain/campaign"
	"tavern/internal/domain/entitlement"
	"tavern/internal/domain/user"
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

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepository) List(ctx context.Context, page, pageSize int) ([]*user.User, int64, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*user.User), args.Get(1).(int64), args.Error(2)
}

func (m *mockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}
