package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist marks tokens dead before their natural expiry, keyed by the
// token id. Entries carry the token's remaining validity as TTL, so the
// list cleans itself up; a token past its expiry fails verification
// anyway and needs no entry.
// Key format: denylist:<token_id>
type Denylist struct {
	client *redis.Client
}

// NewDenylist creates a Denylist wrapping the given Redis client.
func NewDenylist(client *redis.Client) *Denylist {
	return &Denylist{client: client}
}

// Revoke records the token as dead for ttl.
func (d *Denylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return d.client.Set(ctx, d.key(tokenID), "1", ttl).Err()
}

// IsRevoked reports whether the token has been revoked.
func (d *Denylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("denylist check: %w", err)
	}
	return n > 0, nil
}

func (d *Denylist) key(tokenID string) string {
	return "denylist:" + tokenID
}
