package config

import "time"

const (
	// DefaultCaptchaVerifyURL is Google's reCAPTCHA verification endpoint.
	DefaultCaptchaVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

	// DefaultCaptchaTimeout bounds a single siteverify round trip.
	DefaultCaptchaTimeout = 5 * time.Second
)

// AccessConfig controls guest access to tickets.
type AccessConfig struct {
	// MandatoryLogin is the login policy used until an administrator stores
	// an explicit value in the settings table.
	MandatoryLogin bool `koanf:"mandatory_login"`

	// SessionTTL is how long a ticket session token stays valid.
	SessionTTL time.Duration `koanf:"session_ttl"`

	// CheckRate is the sustained number of /ticket/check requests per second
	// allowed for a single client IP.
	CheckRate float64 `koanf:"check_rate"`

	// CheckBurst is the number of requests a client may fire at once.
	CheckBurst int `koanf:"check_burst"`
}

// DefaultAccessConfig returns the access block used when none is configured.
func DefaultAccessConfig() *AccessConfig {
	return &AccessConfig{
		MandatoryLogin: false,
		SessionTTL:     24 * time.Hour,
		CheckRate:      1,
		CheckBurst:     5,
	}
}

// applyDefaults fills zero values of a partially configured block.
func (a *AccessConfig) applyDefaults() {
	defaults := DefaultAccessConfig()
	if a.SessionTTL <= 0 {
		a.SessionTTL = defaults.SessionTTL
	}
	if a.CheckRate <= 0 {
		a.CheckRate = defaults.CheckRate
	}
	if a.CheckBurst <= 0 {
		a.CheckBurst = defaults.CheckBurst
	}
}
