package middleware

import (
	"github.com/gin-gonic/gin"

	"tavern/internal/domain/entitlement"
	"tavern/internal/infrastructure/metrics"
	"tavern/internal/shared/logger"
	"tavern/internal/shared/utils"
)

// FeatureGateMiddleware denies access to plan-gated features.
type FeatureGateMiddleware struct {
	logger logger.Interface
}

func NewFeatureGateMiddleware(logger logger.Interface) *FeatureGateMiddleware {
	return &FeatureGateMiddleware{logger: logger}
}

// RequireFeature gates a route on the named feature key. Admins always
// pass. Unknown keys are rejected for everyone: the feature set is a closed
// enumeration, and a typo in a route registration should surface as a 403
// in the first smoke test, not as an open gate in production.
func (m *FeatureGateMiddleware) RequireFeature(featureKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := actorID(c); !ok {
			return
		}
		if actorIsAdmin(c) {
			c.Next()
			return
		}

		plan := actorPlan(c)

		if !entitlement.IsKnownFeature(featureKey) {
			m.logger.Warnw("unknown feature key in gate", "feature", featureKey)
			metrics.ObserveFeatureDenial(featureKey)
			utils.FeatureForbiddenResponse(c, featureKey, plan)
			c.Abort()
			return
		}

		if entitlement.IsPremiumFeature(featureKey) &&
			entitlement.NormalizePlanKey(plan) != entitlement.PlanPremium {
			metrics.ObserveFeatureDenial(featureKey)
			utils.FeatureForbiddenResponse(c, featureKey, plan)
			c.Abort()
			return
		}

		c.Next()
	}
}
