package entitlement

import "errors"

var (
	// ErrMissingUserID is returned when limits are resolved without a user ID
	ErrMissingUserID = errors.New("user ID is required")

	// ErrLimitsNotFound is returned when no limit row exists after bootstrap
	ErrLimitsNotFound = errors.New("user limits not found")
)
