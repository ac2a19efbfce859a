package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tavern/internal/domain/entitlement"
	"tavern/internal/domain/user"
	apperrors "tavern/internal/shared/errors"
	"tavern/internal/shared/logger"
)

func testUser(t *testing.T, id uint) *user.User {
	t.Helper()
	u, err := user.ReconstructUser(id, "gm@example.com", "GM", "hash",
		"USER", "FREE", user.StatusActive, time.Now(), time.Now())
	require.NoError(t, err)
	return u
}

func TestChangePlan_RewritesEnforcementLimits(t *testing.T) {
	userRepo := new(mockUserRepository)
	limitsRepo := new(mockUserLimitsRepository)

	u := testUser(t, 8)
	userRepo.On("GetByID", mock.Anything, uint(8)).Return(u, nil)
	userRepo.On("Update", mock.Anything, u).Return(nil)

	expected := entitlement.EnforcementDefaults(entitlement.PlanPremium)
	expected.UserID = 8
	limitsRepo.On("Upsert", mock.Anything, expected).Return(nil)

	uc := NewChangePlanUseCase(userRepo, limitsRepo, logger.NewLogger())
	err := uc.Execute(context.Background(), ChangePlanCommand{UserID: 8, PlanKey: "premium"})
	require.NoError(t, err)

	assert.Equal(t, "PREMIUM", u.Plan())
	limitsRepo.AssertExpectations(t)
}

func TestChangePlan_UnknownPlanFallsBackToFree(t *testing.T) {
	userRepo := new(mockUserRepository)
	limitsRepo := new(mockUserLimitsRepository)

	u := testUser(t, 8)
	userRepo.On("GetByID", mock.Anything, uint(8)).Return(u, nil)
	userRepo.On("Update", mock.Anything, u).Return(nil)

	expected := entitlement.EnforcementDefaults(entitlement.PlanFree)
	expected.UserID = 8
	limitsRepo.On("Upsert", mock.Anything, expected).Return(nil)

	uc := NewChangePlanUseCase(userRepo, limitsRepo, logger.NewLogger())
	require.NoError(t, uc.Execute(context.Background(), ChangePlanCommand{UserID: 8, PlanKey: "ULTRA"}))
	assert.Equal(t, "FREE", u.Plan())
}

func TestChangePlan_UserNotFound(t *testing.T) {
	userRepo := new(mockUserRepository)
	limitsRepo := new(mockUserLimitsRepository)
	userRepo.On("GetByID", mock.Anything, uint(99)).Return(nil, user.ErrUserNotFound)

	uc := NewChangePlanUseCase(userRepo, limitsRepo, logger.NewLogger())
	err := uc.Execute(context.Background(), ChangePlanCommand{UserID: 99, PlanKey: "PREMIUM"})

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
	limitsRepo.AssertNotCalled(t, "Upsert")
}
