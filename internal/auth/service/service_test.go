package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionManager(t *testing.T) {
	m := NewSessionManager()
	token := m.Issue("u1")

	id, ok := m.Resolve(token)
	require.True(t, ok)
	assert.Equal(t, "u1", id)

	m.Revoke(token)
	_, ok = m.Resolve(token)
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestOTPStore_Verify(t *testing.T) {
	s := NewOTPStore(time.Minute, 3, 0)

	code, err := s.Issue("+919876543210")
	require.NoError(t, err)
	assert.Len(t, code, CodeLength)

	assert.ErrorIs(t, s.Verify("+910000000000", code), ErrNoCode)
	require.NoError(t, s.Verify("+919876543210", code))
	assert.ErrorIs(t, s.Verify("+919876543210", code), ErrNoCode, "codes are single use")
}

func TestOTPStore_Attempts(t *testing.T) {
	s := NewOTPStore(time.Minute, 3, 0)
	code, err := s.Issue("+919876543210")
	require.NoError(t, err)

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	assert.ErrorIs(t, s.Verify("+919876543210", wrong), ErrCodeMismatch)
	assert.ErrorIs(t, s.Verify("+919876543210", wrong), ErrCodeMismatch)
	assert.ErrorIs(t, s.Verify("+919876543210", wrong), ErrTooManyAttempts)
	assert.ErrorIs(t, s.Verify("+919876543210", code), ErrNoCode)
}

func TestOTPStore_Expiry(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	s := NewOTPStore(5*time.Minute, 3, 0)
	s.now = func() time.Time { return now }

	code, err := s.Issue("+919876543210")
	require.NoError(t, err)

	now = now.Add(6 * time.Minute)
	assert.ErrorIs(t, s.Verify("+919876543210", code), ErrCodeExpired)
}

func TestOTPStore_ReissueReplaces(t *testing.T) {
	s := NewOTPStore(time.Minute, 3, 0)
	first, err := s.Issue("+919876543210")
	require.NoError(t, err)
	second, err := s.Issue("+919876543210")
	require.NoError(t, err)

	if first != second {
		assert.ErrorIs(t, s.Verify("+919876543210", first), ErrCodeMismatch)
	}
	assert.NoError(t, s.Verify("+919876543210", second))
}

func TestOTPStore_Cooldown(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	s := NewOTPStore(5*time.Minute, 3, 30*time.Second)
	s.now = func() time.Time { return now }

	_, err := s.Issue("+919876543210")
	require.NoError(t, err)

	now = now.Add(10 * time.Second)
	_, err = s.Issue("+919876543210")
	assert.ErrorIs(t, err, ErrTooSoon)
	_, err = s.Issue("+910000000000")
	assert.NoError(t, err, "cooldown is per phone")

	now = now.Add(30 * time.Second)
	_, err = s.Issue("+919876543210")
	assert.NoError(t, err)
}

func TestOTPStore_ReissueKeepsAttempts(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	s := NewOTPStore(5*time.Minute, 3, time.Second)
	s.now = func() time.Time { return now }

	code, err := s.Issue("+919876543210")
	require.NoError(t, err)
	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	assert.ErrorIs(t, s.Verify("+919876543210", wrong), ErrCodeMismatch)
	assert.ErrorIs(t, s.Verify("+919876543210", wrong), ErrCodeMismatch)

	now = now.Add(2 * time.Second)
	code, err = s.Issue("+919876543210")
	require.NoError(t, err)
	wrong = "000000"
	if code == wrong {
		wrong = "111111"
	}
	assert.ErrorIs(t, s.Verify("+919876543210", wrong), ErrTooManyAttempts, "a fresh code does not reset the count")
}

func TestOTPStore_IssueSweepsExpired(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	s := NewOTPStore(time.Minute, 3, 10*time.Second)
	s.now = func() time.Time { return now }

	for _, phone := range []string{"+911111111111", "+912222222222", "+913333333333"} {
		_, err := s.Issue(phone)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, s.Len())

	now = now.Add(2 * time.Minute)
	_, err := s.Issue("+914444444444")
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
	assert.Len(t, s.issued, 1)
}
