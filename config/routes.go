package config

// RoutesConfig contains the navigation routes used for redirects and
// by the route guard.
type RoutesConfig struct {
	// Login is the redirect target for unauthenticated access and
	// rejected credentials.
	Login string `env:"LOGIN" envDefault:"/login"`

	// Home is the redirect target for denied admin and guest-only
	// navigation.
	Home string `env:"HOME" envDefault:"/"`
}

// Sanitize applies guardrails to route configuration values.
func (r *RoutesConfig) Sanitize() {
	if r.Login == "" {
		r.Login = "/login"
	}
	if r.Home == "" {
		r.Home = "/"
	}
}
