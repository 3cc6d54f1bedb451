package auth

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"

	"taskboard/internal/cache"
)

func newTestDenylist(t *testing.T) (*RedisDenylist, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	return NewRedisDenylist(cache.New(mr.Addr(), "", 0)), mr
}

func TestRedisDenylist_RevokeAndCheck(t *testing.T) {
	denylist, _ := newTestDenylist(t)
	ctx := context.Background()

	revoked, err := denylist.IsRevoked(ctx, "jti-1")
	assert.NoError(t, err)
	assert.False(t, revoked)

	assert.NoError(t, denylist.Revoke(ctx, "jti-1", time.Minute))

	revoked, err = denylist.IsRevoked(ctx, "jti-1")
	assert.NoError(t, err)
	assert.True(t, revoked)

	// other token ids are unaffected
	revoked, err = denylist.IsRevoked(ctx, "jti-2")
	assert.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisDenylist_EntryExpiresWithToken(t *testing.T) {
	denylist, mr := newTestDenylist(t)
	ctx := context.Background()

	assert.NoError(t, denylist.Revoke(ctx, "jti-1", time.Minute))

	mr.FastForward(2 * time.Minute)

	revoked, err := denylist.IsRevoked(ctx, "jti-1")
	assert.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisDenylist_IgnoresExpiredTokens(t *testing.T) {
	denylist, _ := newTestDenylist(t)
	ctx := context.Background()

	// A token past its expiry needs no denylist entry.
	assert.NoError(t, denylist.Revoke(ctx, "jti-old", -time.Minute))

	revoked, err := denylist.IsRevoked(ctx, "jti-old")
	assert.NoError(t, err)
	assert.False(t, revoked)
}
