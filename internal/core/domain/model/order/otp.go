package order

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"fulfillment/internal/pkg/errs"
)

const (
	// DeliveryOTPDigits is the length of the code that gates the Delivered transition.
	DeliveryOTPDigits = 4

	// AssignmentOTPDigits is the length of the code issued when a delivery
	// agent is assigned to an order.
	AssignmentOTPDigits = 6

	// OTPValidity is how long an issued code stays verifiable.
	OTPValidity = 10 * time.Minute

	// OTPResendCooldown is the minimum interval between issuing codes for the
	// same order.
	OTPResendCooldown = 2 * time.Minute

	// OTPMaxAttempts is the number of wrong codes tolerated before the code
	// is invalidated.
	OTPMaxAttempts = 3
)

// OTP protocol errors. Match them with errors.Is; InvalidOTPCodeError
// additionally carries the remaining attempts.
var (
	// ErrOTPExpired is returned when a code is verified after its validity
	// window. The code is cleared and a fresh one must be issued.
	ErrOTPExpired = errors.New("otp expired")

	// ErrOTPAttemptsExceeded is returned when the attempt budget is spent.
	// The code is cleared and a fresh one must be issued.
	ErrOTPAttemptsExceeded = errors.New("otp attempts exceeded")

	// ErrOTPRateLimited is returned when a new code is requested during the
	// resend cooldown of the previous one.
	ErrOTPRateLimited = errors.New("otp rate limited")

	// ErrOTPCodeMismatch is the sentinel for a wrong code with attempts left.
	ErrOTPCodeMismatch = errors.New("otp code mismatch")
)

// OTPRateLimitedError reports a premature reissue request and how long the
// caller has to wait.
type OTPRateLimitedError struct {
	RetryAfter time.Duration
}

func (e *OTPRateLimitedError) Error() string {
	return fmt.Sprintf("%s: retry after %s", ErrOTPRateLimited, e.RetryAfter.Round(time.Second))
}

func (e *OTPRateLimitedError) Unwrap() error {
	return ErrOTPRateLimited
}

// InvalidOTPCodeError reports a wrong code and the attempts remaining before
// the code is invalidated.
type InvalidOTPCodeError struct {
	AttemptsRemaining int
}

func (e *InvalidOTPCodeError) Error() string {
	return fmt.Sprintf("%s: %d attempts remaining", ErrOTPCodeMismatch, e.AttemptsRemaining)
}

func (e *InvalidOTPCodeError) Unwrap() error {
	return ErrOTPCodeMismatch
}

// OTP is a one-time code bound to a single order. Two kinds exist: the
// 6-digit assignment code issued when an agent takes the order, and the
// 4-digit delivery code whose verification is the only path to Delivered.
// They never share state.
//
// The protocol, enforced here and independent of wall-clock access by taking
// explicit timestamps:
//   - a code is verifiable for OTPValidity after issue
//   - a replacement may not be issued until OTPResendCooldown has passed
//   - OTPMaxAttempts wrong codes invalidate the code
type OTP struct {
	code     string
	digits   int
	issuedAt time.Time
	attempts int
}

// NewOTP issues a fresh random numeric code of the given length.
func NewOTP(digits int, now time.Time) (*OTP, error) {
	if digits <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("digits", fmt.Errorf("%d is not greater than 0", digits))
	}

	code, err := generateNumericCode(digits)
	if err != nil {
		return nil, err
	}

	return &OTP{
		code:     code,
		digits:   digits,
		issuedAt: now,
	}, nil
}

// RestoreOTP reconstructs an OTP from persistent storage.
func RestoreOTP(code string, digits int, issuedAt time.Time, attempts int) (*OTP, error) {
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}
	if attempts < 0 || attempts > OTPMaxAttempts {
		return nil, errs.NewValueIsOutOfRangeError("attempts", attempts, 0, OTPMaxAttempts)
	}

	return &OTP{
		code:     code,
		digits:   digits,
		issuedAt: issuedAt,
		attempts: attempts,
	}, nil
}

// Code returns the numeric code. Exposed so it can be handed to the
// notification channel; it is never logged by the domain itself.
func (o *OTP) Code() string {
	return o.code
}

// Digits returns the code length.
func (o *OTP) Digits() int {
	return o.digits
}

// IssuedAt returns when the code was issued.
func (o *OTP) IssuedAt() time.Time {
	return o.issuedAt
}

// Attempts returns how many wrong codes have been submitted.
func (o *OTP) Attempts() int {
	return o.attempts
}

// IsExpired reports whether the validity window has passed at the given time.
func (o *OTP) IsExpired(now time.Time) bool {
	return now.After(o.issuedAt.Add(OTPValidity))
}

// ValidateReissue checks the resend cooldown. Returns an
// *OTPRateLimitedError if a replacement may not be issued yet.
func (o *OTP) ValidateReissue(now time.Time) error {
	readyAt := o.issuedAt.Add(OTPResendCooldown)
	if now.Before(readyAt) {
		return &OTPRateLimitedError{RetryAfter: readyAt.Sub(now)}
	}
	return nil
}

// Verify checks a submitted code at the given time.
//
// Returns:
//   - nil if the code matches within its validity window
//   - ErrOTPExpired if the validity window has passed; the caller must clear the code
//   - ErrOTPAttemptsExceeded if this wrong attempt spent the budget; the caller must clear the code
//   - *InvalidOTPCodeError for a wrong code with attempts remaining
func (o *OTP) Verify(code string, now time.Time) error {
	if o.IsExpired(now) {
		return ErrOTPExpired
	}

	if code != o.code {
		o.attempts++
		if o.attempts >= OTPMaxAttempts {
			return ErrOTPAttemptsExceeded
		}
		return &InvalidOTPCodeError{AttemptsRemaining: OTPMaxAttempts - o.attempts}
	}

	return nil
}

// generateNumericCode produces a uniformly random zero-padded numeric string.
func generateNumericCode(digits int) (string, error) {
	limit := big.NewInt(1)
	for range digits {
		limit.Mul(limit, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}

	return fmt.Sprintf("%0*d", digits, n), nil
}
