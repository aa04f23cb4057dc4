package config

import "time"

// AuthConfig contains credential storage configuration.
type AuthConfig struct {
	// TokenKey is the storage key for the persisted credential,
	// the client-side equivalent of the "token" cookie.
	TokenKey string `env:"TOKEN_KEY" envDefault:"shopfront:token"`

	// TokenTTL is the credential lifetime. The storefront issues
	// 7-day sessions.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"168h"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.TokenKey == "" {
		a.TokenKey = "shopfront:token"
	}
	if a.TokenTTL <= 0 {
		a.TokenTTL = 168 * time.Hour
	}
}
