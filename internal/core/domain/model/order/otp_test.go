package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOTP(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	t.Run("issues a numeric code of the requested length", func(t *testing.T) {
		otp, err := order.NewOTP(order.DeliveryOTPDigits, now)

		require.NoError(t, err)
		assert.Len(t, otp.Code(), 4)
		assert.Regexp(t, `^\d{4}$`, otp.Code())
		assert.Equal(t, now, otp.IssuedAt())
		assert.Equal(t, 0, otp.Attempts())
	})

	t.Run("assignment codes are six digits", func(t *testing.T) {
		otp, err := order.NewOTP(order.AssignmentOTPDigits, now)

		require.NoError(t, err)
		assert.Regexp(t, `^\d{6}$`, otp.Code())
	})

	t.Run("rejects non-positive length", func(t *testing.T) {
		_, err := order.NewOTP(0, now)
		require.Error(t, err)
	})
}

func TestOTP_Verify(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	restore := func(t *testing.T, code string) *order.OTP {
		t.Helper()
		otp, err := order.RestoreOTP(code, order.DeliveryOTPDigits, now, 0)
		require.NoError(t, err)
		return otp
	}

	t.Run("accepts the right code within validity", func(t *testing.T) {
		otp := restore(t, "1234")

		assert.NoError(t, otp.Verify("1234", now.Add(9*time.Minute)))
	})

	t.Run("expires after the validity window", func(t *testing.T) {
		otp := restore(t, "1234")

		err := otp.Verify("1234", now.Add(order.OTPValidity+time.Second))

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrOTPExpired)
	})

	t.Run("verifies exactly at the validity boundary", func(t *testing.T) {
		otp := restore(t, "1234")

		assert.NoError(t, otp.Verify("1234", now.Add(order.OTPValidity)))
	})

	t.Run("wrong code counts down attempts", func(t *testing.T) {
		otp := restore(t, "1234")

		err := otp.Verify("0000", now)
		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrOTPCodeMismatch)

		var mismatch *order.InvalidOTPCodeError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, 2, mismatch.AttemptsRemaining)

		err = otp.Verify("1111", now)
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, 1, mismatch.AttemptsRemaining)
	})

	t.Run("third wrong code exhausts the budget", func(t *testing.T) {
		otp := restore(t, "1234")

		_ = otp.Verify("0000", now)
		_ = otp.Verify("0000", now)
		err := otp.Verify("0000", now)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrOTPAttemptsExceeded)
	})

	t.Run("right code still works after wrong attempts", func(t *testing.T) {
		otp := restore(t, "1234")

		_ = otp.Verify("0000", now)
		_ = otp.Verify("1111", now)

		assert.NoError(t, otp.Verify("1234", now))
	})
}

func TestOTP_ValidateReissue(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	otp, err := order.RestoreOTP("1234", order.DeliveryOTPDigits, now, 0)
	require.NoError(t, err)

	t.Run("rate limits inside the cooldown", func(t *testing.T) {
		err := otp.ValidateReissue(now.Add(time.Minute))

		require.Error(t, err)
		require.ErrorIs(t, err, order.ErrOTPRateLimited)

		var rateLimited *order.OTPRateLimitedError
		require.ErrorAs(t, err, &rateLimited)
		assert.Equal(t, time.Minute, rateLimited.RetryAfter)
	})

	t.Run("allows reissue after the cooldown", func(t *testing.T) {
		assert.NoError(t, otp.ValidateReissue(now.Add(order.OTPResendCooldown)))
	})
}

func TestRestoreOTP(t *testing.T) {
	now := time.Now()

	t.Run("rejects empty code", func(t *testing.T) {
		_, err := order.RestoreOTP("", 4, now, 0)
		require.Error(t, err)
	})

	t.Run("rejects attempts outside the budget", func(t *testing.T) {
		_, err := order.RestoreOTP("1234", 4, now, 4)
		require.Error(t, err)

		_, err = order.RestoreOTP("1234", 4, now, -1)
		require.Error(t, err)
	})
}
