package geocoding

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultRateLimit is the spacing between outbound requests to free providers
const DefaultRateLimit = 1000 * time.Millisecond

// RateLimiter enforces a minimum interval between outbound provider calls.
// It is shared process-wide; concurrent callers queue behind the same delay.
type RateLimiter struct {
	clock    clockwork.Clock
	interval time.Duration

	mu   sync.Mutex
	last time.Time
}

func NewRateLimiter(clock clockwork.Clock, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		clock:    clock,
		interval: interval,
	}
}

// Wait blocks until interval has elapsed since the previous slot was granted.
// The lock is held while sleeping so waiters are serialized.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.interval > 0 && !r.last.IsZero() {
		if delay := r.interval - r.clock.Since(r.last); delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-r.clock.After(delay):
			}
		}
	}

	r.last = r.clock.Now()
	return nil
}
