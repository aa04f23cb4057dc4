package config

import (
	"strings"
	"time"
)

// APIConfig contains backend endpoint configuration.
type APIConfig struct {
	// BaseURL is the backend API root, including the version prefix.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8000/api/v1"`

	// Timeout is the outer deadline for every request. The gateway
	// adds no retries and no further deadline of its own.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// Sanitize applies guardrails to API configuration values.
func (a *APIConfig) Sanitize() {
	a.BaseURL = strings.TrimSuffix(strings.TrimSpace(a.BaseURL), "/")
	if a.Timeout <= 0 {
		a.Timeout = 30 * time.Second
	}
}
