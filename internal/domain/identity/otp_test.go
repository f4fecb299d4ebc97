package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificationConfirm(t *testing.T) {
	now := time.Now()

	t.Run("succeeds with matching code inside window", func(t *testing.T) {
		v := Verification{}
		require.NoError(t, v.Issue("123456", now))

		err := v.Confirm("123456", now.Add(5*time.Minute))
		require.NoError(t, err)
		assert.True(t, v.Verified)
		assert.Nil(t, v.OTP)
	})

	t.Run("fails when already verified", func(t *testing.T) {
		v := Verification{Verified: true}
		assert.ErrorIs(t, v.Confirm("123456", now), ErrAlreadyVerified)
	})

	t.Run("fails when no code issued", func(t *testing.T) {
		v := Verification{}
		assert.ErrorIs(t, v.Confirm("123456", now), ErrNoCodeIssued)
	})

	t.Run("fails on mismatch", func(t *testing.T) {
		v := Verification{}
		require.NoError(t, v.Issue("123456", now))
		assert.ErrorIs(t, v.Confirm("654321", now), ErrOTPMismatch)
		assert.False(t, v.Verified)
	})

	t.Run("accepts code one second before expiry", func(t *testing.T) {
		v := Verification{}
		require.NoError(t, v.Issue("123456", now))
		assert.NoError(t, v.Confirm("123456", now.Add(OTPValidity-time.Second)))
	})

	t.Run("accepts code exactly at expiry", func(t *testing.T) {
		v := Verification{}
		require.NoError(t, v.Issue("123456", now))
		assert.NoError(t, v.Confirm("123456", now.Add(OTPValidity)))
	})

	t.Run("rejects code one second after expiry", func(t *testing.T) {
		v := Verification{}
		require.NoError(t, v.Issue("123456", now))
		assert.ErrorIs(t, v.Confirm("123456", now.Add(OTPValidity+time.Second)), ErrOTPExpired)
	})
}

func TestVerificationReissue(t *testing.T) {
	now := time.Now()

	t.Run("reissue replaces previous code", func(t *testing.T) {
		v := Verification{}
		require.NoError(t, v.Issue("111111", now))
		require.NoError(t, v.Issue("222222", now.Add(time.Minute)))

		assert.ErrorIs(t, v.Confirm("111111", now.Add(2*time.Minute)), ErrOTPMismatch)
		assert.NoError(t, v.Confirm("222222", now.Add(2*time.Minute)))
	})

	t.Run("reissue refreshes the window", func(t *testing.T) {
		v := Verification{}
		require.NoError(t, v.Issue("111111", now))
		later := now.Add(9 * time.Minute)
		require.NoError(t, v.Issue("222222", later))

		// 11 minutes after the first issue, 2 minutes after the second
		assert.NoError(t, v.Confirm("222222", now.Add(11*time.Minute)))
	})

	t.Run("issue refuses verified accounts", func(t *testing.T) {
		v := Verification{Verified: true}
		assert.ErrorIs(t, v.Issue("123456", now), ErrAlreadyVerified)
	})
}

func TestVerificationConsumeCode(t *testing.T) {
	now := time.Now()

	t.Run("clears code without touching verified flag", func(t *testing.T) {
		v := Verification{Verified: true}
		v.Replace("333333", now)

		require.NoError(t, v.ConsumeCode("333333", now.Add(time.Minute)))
		assert.True(t, v.Verified)
		assert.Nil(t, v.OTP)
	})

	t.Run("enforces the validity window", func(t *testing.T) {
		v := Verification{Verified: true}
		v.Replace("333333", now)
		assert.ErrorIs(t, v.ConsumeCode("333333", now.Add(OTPValidity+time.Second)), ErrOTPExpired)
	})
}
