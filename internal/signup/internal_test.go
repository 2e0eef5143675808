package signup

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOTP(t *testing.T) {
	for range 1000 {
		otp, err := newOTP()
		require.NoError(t, err)
		require.Len(t, otp, 6)
		assert.GreaterOrEqual(t, otp, "100000")
		assert.LessOrEqual(t, otp, "999999")
	}
}

func TestOTPMatches(t *testing.T) {
	assert.True(t, otpMatches("123456", "123456"))
	assert.True(t, otpMatches("123456", "  123456\n"))
	assert.False(t, otpMatches("123456", "123457"))
	assert.False(t, otpMatches("123456", "12345"))
	assert.False(t, otpMatches("", ""))
}

func TestNewPassword(t *testing.T) {
	a, err := newPassword()
	require.NoError(t, err)
	b, err := newPassword()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestKeyedMutex(t *testing.T) {
	k := newKeyedMutex()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		active  int
		maxSeen int
	)

	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			unlock := k.Lock("ada@example.com")
			defer unlock()

			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Equal(t, 0, k.size())

	// different keys do not block each other
	unlockA := k.Lock("a")
	unlockB := k.Lock("b")
	assert.Equal(t, 2, k.size())
	unlockA()
	unlockB()
	assert.Equal(t, 0, k.size())
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.Put(ctx, &PendingSignup{Email: "ada@example.com", OTPCode: "123456", OTPExpiresAt: now}))

	p, err := s.Get(ctx, "ada@example.com")
	require.NoError(t, err)
	p.OTPCode = "mutated"

	p, err = s.Get(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "123456", p.OTPCode)

	n, err := s.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, n)

	deleted, err := s.Delete(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.Delete(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.False(t, deleted)
}
