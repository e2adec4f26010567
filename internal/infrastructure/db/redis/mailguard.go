package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const sentMailTTL = 10 * time.Minute

// SentMailGuard makes OTP mail dispatch idempotent: a double-submitted
// registration enqueues the same code twice, but only one mail leaves the
// process. Keys include the code itself, so a resend (fresh code) is never
// suppressed. This is dispatch dedup, not attempt rate limiting.
// Key format: mail:<recipient>:<purpose>:<code>
type SentMailGuard struct {
	client *redis.Client
}

// NewSentMailGuard creates a SentMailGuard wrapping the given Redis client.
func NewSentMailGuard(client *redis.Client) *SentMailGuard {
	return &SentMailGuard{client: client}
}

// AlreadySent reports whether this exact mail has already been dispatched.
func (g *SentMailGuard) AlreadySent(ctx context.Context, recipient, purpose, code string) (bool, error) {
	n, err := g.client.Exists(ctx, g.key(recipient, purpose, code)).Result()
	if err != nil {
		return false, fmt.Errorf("sent-mail check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this mail has been dispatched (expires after sentMailTTL).
func (g *SentMailGuard) Mark(ctx context.Context, recipient, purpose, code string) error {
	return g.client.Set(ctx, g.key(recipient, purpose, code), "1", sentMailTTL).Err()
}

func (g *SentMailGuard) key(recipient, purpose, code string) string {
	return fmt.Sprintf("mail:%s:%s:%s", recipient, purpose, code)
}
