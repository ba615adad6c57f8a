package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRevocationList(t *testing.T) {
	ctx := context.Background()
	list := NewMemoryRevocationList(16)

	revoked, err := list.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, list.Revoke(ctx, "jti-1", time.Hour))
	revoked, err = list.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// 空 jti 和非正 ttl 忽略
	require.NoError(t, list.Revoke(ctx, "", time.Hour))
	require.NoError(t, list.Revoke(ctx, "jti-2", 0))
	revoked, err = list.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestMemoryRevocationListExpires(t *testing.T) {
	ctx := context.Background()
	list := NewMemoryRevocationList(16)

	require.NoError(t, list.Revoke(ctx, "short", 20*time.Millisecond))
	require.Eventually(t, func() bool {
		revoked, err := list.IsRevoked(ctx, "short")
		return err == nil && !revoked
	}, time.Second, 10*time.Millisecond)
}

func TestMemoryRevocationListSweep(t *testing.T) {
	ctx := context.Background()
	list := NewMemoryRevocationList(16)

	require.NoError(t, list.Revoke(ctx, "short", 10*time.Millisecond))
	require.NoError(t, list.Revoke(ctx, "long", time.Hour))

	time.Sleep(30 * time.Millisecond)
	removed, err := list.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	revoked, err := list.IsRevoked(ctx, "long")
	require.NoError(t, err)
	assert.True(t, revoked)
}
