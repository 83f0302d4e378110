package usecase

import (
	"crypto/rand"
	"math/big"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultOtpLength     = 6
	defaultOtpTTLMinutes = 10
)

// OTPIssuer mints fixed-length numeric one-time codes with a short validity
// window. It is stateless: the contract record carries the live code, so
// single-use is enforced by the manager clearing the fields on success.
type OTPIssuer struct {
	length int
	ttl    time.Duration
}

func NewOTPIssuer(length int, ttl time.Duration) *OTPIssuer {
	if length <= 0 {
		length = defaultOtpLength
	}
	if ttl <= 0 {
		ttl = defaultOtpTTLMinutes * time.Minute
	}
	return &OTPIssuer{length: length, ttl: ttl}
}

// NewOTPIssuerFromEnv reads OTP_CODE_LENGTH and OTP_TTL_MINUTES, falling back
// to 6 digits / 10 minutes.
func NewOTPIssuerFromEnv() *OTPIssuer {
	length := defaultOtpLength
	if v, err := strconv.Atoi(strings.TrimSpace(os.Getenv("OTP_CODE_LENGTH"))); err == nil && v > 0 {
		length = v
	}
	ttl := time.Duration(defaultOtpTTLMinutes) * time.Minute
	if v, err := strconv.Atoi(strings.TrimSpace(os.Getenv("OTP_TTL_MINUTES"))); err == nil && v > 0 {
		ttl = time.Duration(v) * time.Minute
	}
	return NewOTPIssuer(length, ttl)
}

// Issue mints a fresh code from crypto/rand. Leading zeros are kept: the code
// is a digit string of exactly the configured length.
func (i *OTPIssuer) Issue(now time.Time) (code string, expiresAt time.Time, err error) {
	var b strings.Builder
	b.Grow(i.length)
	for n := 0; n < i.length; n++ {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", time.Time{}, err
		}
		b.WriteByte(byte('0' + d.Int64()))
	}
	return b.String(), now.Add(i.ttl).UTC(), nil
}

// Validate checks a submitted code against the stored one. It returns false
// when no code is pending, the code differs, or the expiry has passed; the
// three cases are deliberately indistinguishable to the caller.
func (i *OTPIssuer) Validate(submitted string, stored *string, expiresAt *time.Time, now time.Time) bool {
	if stored == nil || expiresAt == nil {
		return false
	}
	if now.After(*expiresAt) {
		return false
	}
	return submitted == *stored
}
