// Package otpgen produces time-windowed numeric recovery codes (TOTP).
//
// Codes are a pure function of the shared secret and the current 30-second
// window: two calls inside one window return the same code, and a caller who
// retries after the window elapses gets a fresh one. The code itself is never
// stored; callers persist only a hash of it.
package otpgen

import (
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// DefaultPeriod is the code validity window in seconds.
const DefaultPeriod = 30

// Generator derives six-digit codes from a base32-encoded shared secret.
type Generator struct {
	secret string
	period uint
}

// New returns a Generator for the given base32 secret. A period of 0 falls
// back to DefaultPeriod.
func New(secret string, period uint) Generator {
	if period == 0 {
		period = DefaultPeriod
	}
	return Generator{secret: secret, period: period}
}

// Period returns the window length.
func (g Generator) Period() time.Duration {
	return time.Duration(g.period) * time.Second
}

// Generate returns the code for the window containing at.
func (g Generator) Generate(at time.Time) (string, error) {
	return totp.GenerateCodeCustom(g.secret, at, g.opts())
}

// Window returns the window index containing at, used to key per-window
// side effects such as send throttling.
func (g Generator) Window(at time.Time) int64 {
	return at.Unix() / int64(g.period)
}

func (g Generator) opts() totp.ValidateOpts {
	return totp.ValidateOpts{
		Period:    g.period,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	}
}
