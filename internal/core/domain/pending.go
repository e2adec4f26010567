package domain

import (
	"errors"
	"time"
)

var ErrPendingNotFound = errors.New("no pending verification for this email")
var ErrInvalidCode = errors.New("invalid verification code")
var ErrCodeExpired = errors.New("verification code expired")

// PendingRegistration holds an unverified registrant together with the OTP
// that proves control of the email address. Records are removed on successful
// verification; the store's TTL index collects the rest after OTPExpiry.
type PendingRegistration struct {
	Name         string
	Email        string
	PasswordHash string
	OTPCode      string
	OTPExpiry    time.Time
}

// PasswordReset is the ephemeral record for the forgot-password flow. It is
// keyed by email like PendingRegistration but exists independently: a user
// stays verified while a reset is pending.
type PasswordReset struct {
	Email     string
	OTPCode   string
	OTPExpiry time.Time
}
