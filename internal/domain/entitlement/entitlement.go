// Package entitlement holds the plan catalog and the resolved entitlement
// model: the effective bundle of limits and feature flags for an actor.
package entitlement

import "strings"

const adminRole = "ADMIN"

// Entitlement is the resolved, effective bundle of limits and feature
// flags for a specific actor at request time.
type Entitlement struct {
	Plan       string     `json:"plan"`
	PlanName   string     `json:"plan_name"`
	PriceCents int        `json:"price_cents"`
	Limits     LimitSet   `json:"limits"`
	Features   FeatureSet `json:"features"`
	Admin      bool       `json:"admin"`
}

// AdminEntitlement returns a copy of the admin sentinel bundle: every
// feature enabled and every limit set to UnlimitedSentinel, in both
// vocabularies.
func AdminEntitlement() Entitlement {
	limits := LimitSet{
		LimitMaxCampaigns:          UnlimitedSentinel,
		LimitMaxCharacters:         UnlimitedSentinel,
		LimitMaxPlayersPerSession:  UnlimitedSentinel,
		LimitMaxCampaignsCreated:   UnlimitedSentinel,
		LimitMaxPlayersPerCampaign: UnlimitedSentinel,
		LimitMaxCharactersPlayer:   UnlimitedSentinel,
		LimitMaxCharactersGM:       UnlimitedSentinel,
		LimitMaxJoinedCampaigns:    UnlimitedSentinel,
	}
	features := make(FeatureSet, len(knownFeatures))
	for key := range knownFeatures {
		features[key] = true
	}
	return Entitlement{
		Plan:       adminRole,
		PlanName:   "Administrator",
		PriceCents: 0,
		Limits:     limits,
		Features:   features,
		Admin:      true,
	}
}

// BuildEntitlements resolves the effective entitlement for an actor.
// An ADMIN role (case-insensitive) short-circuits to the admin sentinel,
// ignoring plan and overrides entirely. Otherwise the plan definition is
// resolved and overrideLimits is shallow-merged on top of the plan's
// display limits: override keys win, absent keys keep plan defaults.
// Pure and side-effect-free.
func BuildEntitlements(role, plan string, overrideLimits LimitSet) Entitlement {
	if strings.EqualFold(strings.TrimSpace(role), adminRole) {
		return AdminEntitlement()
	}

	def := GetPlanDefinition(plan)
	return Entitlement{
		Plan:       def.Key.String(),
		PlanName:   def.Name,
		PriceCents: def.PriceCents,
		Limits:     def.Limits.Merge(overrideLimits),
		Features:   def.Features.Clone(),
		Admin:      false,
	}
}
