package entitlement

import "context"

// UserLimitsRepository persists per-user enforcement limit rows.
type UserLimitsRepository interface {
	// EnsureDefaults inserts the bootstrap DefaultLimits row for the user if
	// none exists yet. Insert-or-ignore semantics: an existing row is never
	// touched, regardless of the user's current plan.
	EnsureDefaults(ctx context.Context, userID uint) error

	// GetByUserID returns the user's limit row, or nil when absent.
	GetByUserID(ctx context.Context, userID uint) (*UserLimits, error)

	// Upsert replaces the user's limit row. Used by admin plan changes.
	Upsert(ctx context.Context, limits UserLimits) error
}
