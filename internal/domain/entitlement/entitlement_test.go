package entitlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEntitlements_AdminBypassesPlan(t *testing.T) {
	for _, role := range []string{"ADMIN", "admin", "Admin", " admin "} {
		ent := BuildEntitlements(role, "FREE", LimitSet{LimitMaxCampaigns: 1})

		assert.True(t, ent.Admin, "role %q", role)
		assert.Equal(t, UnlimitedSentinel, ent.Limits[LimitMaxCampaigns], "role %q", role)
		assert.Equal(t, UnlimitedSentinel, ent.Limits[LimitMaxCampaignsCreated], "role %q", role)
		for key, enabled := range ent.Features {
			assert.True(t, enabled, "feature %s, role %q", key, role)
		}
	}
}

func TestBuildEntitlements_AdminReturnsCopy(t *testing.T) {
	first := BuildEntitlements("ADMIN", "", nil)
	first.Limits[LimitMaxCampaigns] = 0
	first.Features[FeatureExportData] = false

	second := BuildEntitlements("ADMIN", "", nil)
	assert.Equal(t, UnlimitedSentinel, second.Limits[LimitMaxCampaigns])
	assert.True(t, second.Features[FeatureExportData])
}

func TestBuildEntitlements_OverridesWin(t *testing.T) {
	ent := BuildEntitlements("USER", "FREE", LimitSet{
		LimitMaxCampaigns: 7,
	})

	assert.Equal(t, "FREE", ent.Plan)
	assert.Equal(t, 7, ent.Limits[LimitMaxCampaigns])
	// keys absent from the override keep the plan default
	assert.Equal(t, 10, ent.Limits[LimitMaxCharacters])
	assert.Equal(t, 5, ent.Limits[LimitMaxPlayersPerSession])
}

func TestBuildEntitlements_EnforcementOverridesMergeIn(t *testing.T) {
	// overrides use the enforcement vocabulary; they merge alongside the
	// catalog keys rather than replacing them
	ent := BuildEntitlements("user", "premium", LimitSet{
		LimitMaxCampaignsCreated: 30,
	})

	assert.Equal(t, "PREMIUM", ent.Plan)
	assert.Equal(t, 30, ent.Limits[LimitMaxCampaignsCreated])
	assert.Equal(t, 25, ent.Limits[LimitMaxCampaigns])
}

func TestBuildEntitlements_Idempotent(t *testing.T) {
	overrides := LimitSet{LimitMaxCampaigns: 4}

	first := BuildEntitlements("USER", "FREE", overrides)
	second := BuildEntitlements("USER", "FREE", overrides)
	require.Equal(t, first, second)

	// mutating one result must not bleed into the other
	first.Limits[LimitMaxCampaigns] = 99
	assert.Equal(t, 4, second.Limits[LimitMaxCampaigns])
}

func TestBuildEntitlements_UnknownPlanFallsBackToFree(t *testing.T) {
	ent := BuildEntitlements("USER", "GOLD", nil)
	assert.Equal(t, "FREE", ent.Plan)
	assert.False(t, ent.Features[FeatureExportData])
}

func TestLimitSetMerge(t *testing.T) {
	base := LimitSet{"a": 1, "b": 2}
	merged := base.Merge(LimitSet{"b": 20, "c": 30})

	assert.Equal(t, LimitSet{"a": 1, "b": 20, "c": 30}, merged)
	// base is untouched
	assert.Equal(t, LimitSet{"a": 1, "b": 2}, base)
}

func TestFeatureClassification(t *testing.T) {
	assert.True(t, IsPremiumFeature(FeatureExportData))
	assert.True(t, IsPremiumFeature(FeatureAdvancedFog))
	assert.False(t, IsPremiumFeature(FeaturePremiumBadge))
	assert.False(t, IsPremiumFeature(FeatureDiceRoller))

	assert.True(t, IsKnownFeature(FeaturePremiumBadge))
	assert.False(t, IsKnownFeature("teleportation"))
}
