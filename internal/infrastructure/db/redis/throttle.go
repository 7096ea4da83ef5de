package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const throttleTTL = 2 * time.Minute

// ResetThrottle suppresses duplicate one-time-code emails backed by Redis.
// Key format: reset:<role>:<email>:<window>
//
// Within a code window the generated code is identical, so at most one email
// per window carries new information. Keys outlive the window slightly and
// expire on their own.
type ResetThrottle struct {
	client *redis.Client
}

// NewResetThrottle creates a ResetThrottle wrapping the given Redis client.
func NewResetThrottle(client *redis.Client) *ResetThrottle {
	return &ResetThrottle{client: client}
}

// AlreadySent reports whether a code email already went out for this account
// in this window.
func (t *ResetThrottle) AlreadySent(ctx context.Context, role, email string, window int64) (bool, error) {
	n, err := t.client.Exists(ctx, t.key(role, email, window)).Result()
	if err != nil {
		return false, fmt.Errorf("reset throttle check: %w", err)
	}
	return n > 0, nil
}

// MarkSent records that this window's code email went out (expires after
// throttleTTL).
func (t *ResetThrottle) MarkSent(ctx context.Context, role, email string, window int64) error {
	return t.client.Set(ctx, t.key(role, email, window), "1", throttleTTL).Err()
}

func (t *ResetThrottle) key(role, email string, window int64) string {
	return fmt.Sprintf("reset:%s:%s:%d", role, email, window)
}
