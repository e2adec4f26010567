package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/arclab/arclab-api/internal/core/domain"
)

const (
	otpDigits = 6
	otpTTL    = 5 * time.Minute
)

var otpMax = big.NewInt(1_000_000)

// issueOTP returns a uniformly random 6-digit numeric code and its expiry,
// five minutes from now.
func issueOTP(now time.Time) (string, time.Time) {
	n, err := rand.Int(rand.Reader, otpMax)
	if err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("%06d", now.UnixNano()%1_000_000), now.Add(otpTTL)
	}
	return fmt.Sprintf("%06d", n.Int64()), now.Add(otpTTL)
}

// verifyOTP checks a submitted code against the stored code and expiry.
// Expiry is checked first so a stale-but-matching code reports ErrCodeExpired,
// not ErrInvalidCode; the two outcomes stay distinguishable to callers.
func verifyOTP(submitted, stored string, expiry, now time.Time) error {
	if now.After(expiry) {
		return domain.ErrCodeExpired
	}
	if len(submitted) != otpDigits || submitted != stored {
		return domain.ErrInvalidCode
	}
	return nil
}
