// Package ratelimit provides request rate limiting backed by Redis.
package ratelimit

import (
	"context"
	"time"
)

// Limits describes the per-window request ceilings for a single key.
// A zero ceiling disables that window.
type Limits struct {
	RequestsPerMinute int
	RequestsPerHour   int
	RequestsPerDay    int
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, limits Limits) (bool, error)
	GetRemaining(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}
