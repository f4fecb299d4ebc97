package identity

import (
	"time"

	"github.com/daana/backend/internal/domain/shared"
)

// OTPValidity is how long an issued code stays usable
const OTPValidity = 10 * time.Minute

// CodeGenerator produces one-time verification codes
type CodeGenerator interface {
	Generate() (string, error)
}

// OTP verification errors
var (
	ErrAlreadyVerified = shared.NewDomainError("ALREADY_VERIFIED", "Account is already verified")
	ErrNoCodeIssued    = shared.NewDomainError("NO_CODE_ISSUED", "No verification code has been issued for this account")
	ErrOTPMismatch     = shared.NewDomainError("OTP_MISMATCH", "Verification code is incorrect")
	ErrOTPExpired      = shared.NewDomainError("OTP_EXPIRED", "Verification code has expired")
)

// OTP is an issued one-time code with its issue time
type OTP struct {
	Code     string
	IssuedAt time.Time
}

// Expired reports whether the code is past its validity window at now
func (o *OTP) Expired(now time.Time) bool {
	return now.Sub(o.IssuedAt) > OTPValidity
}

// Verification tracks the OTP lifecycle of an account.
// A later Issue or Replace fully supersedes any stored code.
type Verification struct {
	Verified bool
	OTP      *OTP
}

// Issue stores a fresh verification code, rejecting already verified accounts
func (v *Verification) Issue(code string, now time.Time) error {
	if v.Verified {
		return ErrAlreadyVerified
	}
	v.OTP = &OTP{Code: code, IssuedAt: now}
	return nil
}

// Replace stores a code without the verified guard, used for password resets
func (v *Verification) Replace(code string, now time.Time) {
	v.OTP = &OTP{Code: code, IssuedAt: now}
}

// Confirm validates the submitted code and marks the account verified.
// The stored code is cleared on success.
func (v *Verification) Confirm(code string, now time.Time) error {
	if v.Verified {
		return ErrAlreadyVerified
	}
	if err := v.check(code, now); err != nil {
		return err
	}
	v.Verified = true
	v.OTP = nil
	return nil
}

// ConsumeCode validates and clears the stored code without touching the
// verified flag. Password reset uses this on accounts that are already
// verified.
func (v *Verification) ConsumeCode(code string, now time.Time) error {
	if err := v.check(code, now); err != nil {
		return err
	}
	v.OTP = nil
	return nil
}

func (v *Verification) check(code string, now time.Time) error {
	if v.OTP == nil {
		return ErrNoCodeIssued
	}
	if v.OTP.Code != code {
		return ErrOTPMismatch
	}
	if v.OTP.Expired(now) {
		return ErrOTPExpired
	}
	return nil
}
