package config

// AppConfig is the main client configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config files
// for details on available environment variables:
//   - api.go: backend endpoint configuration
//   - auth.go: credential storage configuration
//   - redis.go: Redis connection for the persisted credential
//   - routes.go: navigation routes for redirects and the route guard
type AppConfig struct {
	// IsDev controls development behavior (in-memory credential store,
	// verbose logging). Set DEV=true for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Backend endpoint configuration.
	API APIConfig `envPrefix:"API_"`

	// Credential storage configuration.
	Auth AuthConfig `envPrefix:"AUTH_"`

	// Redis connection for the persisted credential.
	Redis RedisConfig `envPrefix:"REDIS_"`

	// Navigation routes.
	Routes RoutesConfig `envPrefix:"ROUTE_"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment
// variables.
func (c *AppConfig) Sanitize() {
	c.API.Sanitize()
	c.Auth.Sanitize()
	c.Routes.Sanitize()
}
