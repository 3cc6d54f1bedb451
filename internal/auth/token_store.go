package auth

import (
	"context"
	"time"

	"taskboard/internal/cache"
)

const denylistKeyPrefix = "denylist:token:"

// TokenDenylist records revoked access tokens until their natural expiry.
// Logout revokes the token's jti; the JWT middleware rejects revoked ids.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RedisDenylist stores revoked token ids in Redis.
type RedisDenylist struct {
	cache *cache.Client
}

// Ensure RedisDenylist implements TokenDenylist
var _ TokenDenylist = (*RedisDenylist)(nil)

// NewRedisDenylist creates a Redis-backed token denylist.
func NewRedisDenylist(cache *cache.Client) *RedisDenylist {
	return &RedisDenylist{cache: cache}
}

// Revoke marks a token id as revoked until its expiry.
func (d *RedisDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// already expired, nothing to record
		return nil
	}
	return d.cache.Set(ctx, denylistKeyPrefix+tokenID, []byte("1"), ttl)
}

// IsRevoked reports whether a token id has been revoked. Fails open on
// cache errors, matching the cache client's miss semantics.
func (d *RedisDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	data, err := d.cache.Get(ctx, denylistKeyPrefix+tokenID)
	if err != nil {
		return false, nil
	}
	return data != nil, nil
}
