package entitlement

// Catalog vocabulary limit keys, used for plan display.
const (
	LimitMaxCampaigns         = "max_campaigns"
	LimitMaxCharacters        = "max_characters"
	LimitMaxPlayersPerSession = "max_players_per_session"
)

// Enforcement vocabulary limit keys, used by the quota gates.
// Kept separate from the catalog vocabulary on purpose; EnforcementDefaults
// is the single translation point between the two.
const (
	LimitMaxCampaignsCreated   = "max_campaigns_created"
	LimitMaxPlayersPerCampaign = "max_players_per_campaign"
	LimitMaxCharactersPlayer   = "max_characters_player"
	LimitMaxCharactersGM       = "max_characters_gm"
	LimitMaxJoinedCampaigns    = "max_joined_campaigns"
)

// UnlimitedSentinel is the numeric ceiling used by the admin entitlement.
const UnlimitedSentinel = 1_000_000

// LimitSet maps a limit key to its non-negative ceiling.
type LimitSet map[string]int

// Clone returns an independent copy of the set.
func (s LimitSet) Clone() LimitSet {
	out := make(LimitSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Merge returns a copy of s with every key present in override replacing
// the value in s. Keys absent from override keep their value from s.
func (s LimitSet) Merge(override LimitSet) LimitSet {
	out := s.Clone()
	for k, v := range override {
		out[k] = v
	}
	return out
}

// UserLimits is the per-user enforcement limit row. A row is bootstrapped
// lazily with DefaultLimits the first time a user's limits are resolved and
// is only rewritten by explicit admin plan changes.
type UserLimits struct {
	UserID                uint
	MaxCampaignsCreated   int
	MaxPlayersPerCampaign int
	MaxCharactersPlayer   int
	MaxCharactersGM       int
	MaxJoinedCampaigns    int
}

// ToSet converts the row into the enforcement-vocabulary limit set.
func (l UserLimits) ToSet() LimitSet {
	return LimitSet{
		LimitMaxCampaignsCreated:   l.MaxCampaignsCreated,
		LimitMaxPlayersPerCampaign: l.MaxPlayersPerCampaign,
		LimitMaxCharactersPlayer:   l.MaxCharactersPlayer,
		LimitMaxCharactersGM:       l.MaxCharactersGM,
		LimitMaxJoinedCampaigns:    l.MaxJoinedCampaigns,
	}
}

// DefaultLimits returns the bootstrap enforcement limits inserted the first
// time a user's limit row is resolved. These match the FREE plan.
func DefaultLimits(userID uint) UserLimits {
	limits := EnforcementDefaults(PlanFree)
	limits.UserID = userID
	return limits
}

// EnforcementDefaults translates a plan key into enforcement-vocabulary
// limits. This is the only place the catalog and enforcement vocabularies
// meet; it runs at the plan-change boundary, never inside a gate.
func EnforcementDefaults(key PlanKey) UserLimits {
	switch key {
	case PlanPremium:
		return UserLimits{
			MaxCampaignsCreated:   25,
			MaxPlayersPerCampaign: 20,
			MaxCharactersPlayer:   25,
			MaxCharactersGM:       100,
			MaxJoinedCampaigns:    50,
		}
	default:
		return UserLimits{
			MaxCampaignsCreated:   3,
			MaxPlayersPerCampaign: 5,
			MaxCharactersPlayer:   3,
			MaxCharactersGM:       10,
			MaxJoinedCampaigns:    5,
		}
	}
}
