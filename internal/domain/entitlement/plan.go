package entitlement

import "strings"

type PlanKey string

const (
	PlanFree    PlanKey = "FREE"
	PlanPremium PlanKey = "PREMIUM"
)

func (k PlanKey) String() string {
	return string(k)
}

// PlanDefinition describes a plan tier: display limits (catalog vocabulary)
// and feature flags. Definitions are process-wide constants.
type PlanDefinition struct {
	Key        PlanKey
	Name       string
	PriceCents int
	Limits     LimitSet
	Features   FeatureSet
}

var planCatalog = map[PlanKey]PlanDefinition{
	PlanFree: {
		Key:        PlanFree,
		Name:       "Free",
		PriceCents: 0,
		Limits: LimitSet{
			LimitMaxCampaigns:         3,
			LimitMaxCharacters:        10,
			LimitMaxPlayersPerSession: 5,
		},
		Features: FeatureSet{
			FeatureExportData:       false,
			FeatureGMPrivateNotes:   false,
			FeatureAdvancedFog:      false,
			FeatureExtraStorage:     false,
			FeatureUnlimitedHistory: false,
			FeaturePremiumBadge:     false,
			FeatureDiceRoller:       true,
			FeatureBasicMaps:        true,
			FeatureSessionChat:      true,
		},
	},
	PlanPremium: {
		Key:        PlanPremium,
		Name:       "Premium",
		PriceCents: 499,
		Limits: LimitSet{
			LimitMaxCampaigns:         25,
			LimitMaxCharacters:        100,
			LimitMaxPlayersPerSession: 20,
		},
		Features: FeatureSet{
			FeatureExportData:       true,
			FeatureGMPrivateNotes:   true,
			FeatureAdvancedFog:      true,
			FeatureExtraStorage:     true,
			FeatureUnlimitedHistory: true,
			FeaturePremiumBadge:     true,
			FeatureDiceRoller:       true,
			FeatureBasicMaps:        true,
			FeatureSessionChat:      true,
		},
	},
}

// NormalizePlanKey trims and uppercases raw plan input. Empty and
// unrecognized values normalize to FREE.
func NormalizePlanKey(raw string) PlanKey {
	key := PlanKey(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := planCatalog[key]; ok {
		return key
	}
	return PlanFree
}

// GetPlanDefinition resolves a raw plan key to its definition. Always
// returns a valid definition; unrecognized input resolves to FREE. The
// returned definition is an independent copy.
func GetPlanDefinition(raw string) PlanDefinition {
	def := planCatalog[NormalizePlanKey(raw)]
	def.Limits = def.Limits.Clone()
	def.Features = def.Features.Clone()
	return def
}
