package core

import (
	"context"
	"time"
)

// TimeProvider abstracts time operations for the domain. Ledger record
// timestamps are always assigned through this port, never by callers.
type TimeProvider interface {
	Now() time.Time
	Since(t time.Time) time.Duration
	WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc)
}
