package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLockout(t *testing.T) {
	l := NewLockout(2, time.Minute)

	assert.False(t, l.Locked("a"))
	l.Fail("a")
	assert.False(t, l.Locked("a"))
	l.Fail("a")
	assert.True(t, l.Locked("a"))
	assert.False(t, l.Locked("b"))

	l.Reset("a")
	assert.False(t, l.Locked("a"))
}

func TestLockoutDisabled(t *testing.T) {
	l := NewLockout(0, 0)
	for i := 0; i < 10; i++ {
		l.Fail("a")
	}
	assert.False(t, l.Locked("a"))
}

func TestLockoutWindowExpires(t *testing.T) {
	l := NewLockout(1, 30*time.Millisecond)
	l.Fail("a")
	require.True(t, l.Locked("a"))
	assert.Eventually(t, func() bool { return !l.Locked("a") }, time.Second, 10*time.Millisecond)
}

func TestBcryptHasher(t *testing.T) {
	ctx := context.Background()
	h := &BcryptHasher{Cost: bcrypt.MinCost}

	digest, err := h.Hash(ctx, "Passw0rd!")
	require.NoError(t, err)

	ok, err := h.Verify(ctx, "Passw0rd!", digest)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(ctx, "wrong", digest)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = h.Verify(ctx, "x", "not-a-hash")
	assert.Error(t, err)

	assert.Equal(t, 10, NewBcryptHasher().Cost)
}
