package entitlement

// Feature keys known to the platform.
const (
	FeatureExportData       = "exportData"
	FeatureGMPrivateNotes   = "gmPrivateNotes"
	FeatureAdvancedFog      = "advancedFog"
	FeatureExtraStorage     = "extraStorage"
	FeatureUnlimitedHistory = "unlimitedHistory"
	FeaturePremiumBadge     = "premiumBadge"
	FeatureDiceRoller       = "diceRoller"
	FeatureBasicMaps        = "basicMaps"
	FeatureSessionChat      = "sessionChat"
)

// FeatureSet maps a feature key to whether the plan enables it.
type FeatureSet map[string]bool

// Clone returns an independent copy of the set.
func (s FeatureSet) Clone() FeatureSet {
	out := make(FeatureSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// premiumOnlyFeatures are gated behind the PREMIUM plan. premiumBadge is
// plan-informational and deliberately not part of this set.
var premiumOnlyFeatures = map[string]bool{
	FeatureExportData:       true,
	FeatureGMPrivateNotes:   true,
	FeatureAdvancedFog:      true,
	FeatureExtraStorage:     true,
	FeatureUnlimitedHistory: true,
}

// knownFeatures is the closed set of feature keys accepted by the feature
// gate. Keys outside this set are rejected rather than passed through.
var knownFeatures = map[string]bool{
	FeatureExportData:       true,
	FeatureGMPrivateNotes:   true,
	FeatureAdvancedFog:      true,
	FeatureExtraStorage:     true,
	FeatureUnlimitedHistory: true,
	FeaturePremiumBadge:     true,
	FeatureDiceRoller:       true,
	FeatureBasicMaps:        true,
	FeatureSessionChat:      true,
}

// IsPremiumFeature reports whether the key requires the PREMIUM plan.
func IsPremiumFeature(key string) bool {
	return premiumOnlyFeatures[key]
}

// IsKnownFeature reports whether the key belongs to the closed feature set.
func IsKnownFeature(key string) bool {
	return knownFeatures[key]
}
