package mongo

import (
	"context"
	"time"
)

// WithTimeout bounds a single operation by timeout. Inside a transaction callback
// the session rides along as a context value, so the derived context still runs
// in that transaction. A non-positive timeout leaves ctx unbounded.
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
