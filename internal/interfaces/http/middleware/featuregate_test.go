package middleware

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tavern/internal/domain/entitlement"
	"tavern/internal/shared/logger"
	"tavern/internal/shared/utils"
)

func featureGate(featureKey string) func(t *testing.T, id *identity) (int, bool, utils.APIResponse) {
	gate := NewFeatureGateMiddleware(logger.NewLogger()).RequireFeature(featureKey)
	return func(t *testing.T, id *identity) (int, bool, utils.APIResponse) {
		t.Helper()
		w, reached := runGate(t, gate, id, http.MethodGet, "/r", "")
		var resp utils.APIResponse
		if !reached {
			resp = decodeResponse(t, w)
		}
		return w.Code, reached, resp
	}
}

func TestRequireFeature_PremiumFeatureDeniedOnFree(t *testing.T) {
	run := featureGate(entitlement.FeatureExportData)

	code, reached, resp := run(t, &identity{userID: 1, role: "USER", plan: "FREE"})
	assert.False(t, reached)
	assert.Equal(t, http.StatusForbidden, code)

	require.NotNil(t, resp.Data)
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var info utils.FeatureInfo
	require.NoError(t, json.Unmarshal(raw, &info))
	assert.Equal(t, "exportData", info.Feature)
	assert.Equal(t, "FREE", info.Plan)
}

func TestRequireFeature_PremiumFeatureAllowedOnPremium(t *testing.T) {
	run := featureGate(entitlement.FeatureExportData)

	_, reached, _ := run(t, &identity{userID: 1, role: "USER", plan: "PREMIUM"})
	assert.True(t, reached)
}

func TestRequireFeature_FreeFeatureAllowedForEveryone(t *testing.T) {
	run := featureGate(entitlement.FeatureDiceRoller)

	for _, plan := range []string{"FREE", "PREMIUM", "gibberish"} {
		_, reached, _ := run(t, &identity{userID: 1, role: "USER", plan: plan})
		assert.True(t, reached, "plan %q must access diceRoller", plan)
	}
}

func TestRequireFeature_UnknownKeyRejectedForAll(t *testing.T) {
	// a typo in a route registration must surface as a denial, never an
	// open gate
	run := featureGate("secretLaboratory")

	for _, plan := range []string{"FREE", "PREMIUM"} {
		code, reached, _ := run(t, &identity{userID: 1, role: "USER", plan: plan})
		assert.False(t, reached, "plan %q must be denied an unknown key", plan)
		assert.Equal(t, http.StatusForbidden, code)
	}
}

func TestRequireFeature_AdminAlwaysPasses(t *testing.T) {
	for _, key := range []string{entitlement.FeatureExportData, "secretLaboratory"} {
		run := featureGate(key)
		_, reached, _ := run(t, &identity{userID: 1, role: "ADMIN", plan: "FREE"})
		assert.True(t, reached, "admin must pass gate on %q", key)
	}
}

func TestRequireFeature_RequiresAuth(t *testing.T) {
	run := featureGate(entitlement.FeatureDiceRoller)

	code, reached, _ := run(t, nil)
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRequireFeature_UnknownPlanTreatedAsFree(t *testing.T) {
	run := featureGate(entitlement.FeatureExportData)

	code, reached, _ := run(t, &identity{userID: 1, role: "USER", plan: "GOLD"})
	assert.False(t, reached)
	assert.Equal(t, http.StatusForbidden, code)
}
