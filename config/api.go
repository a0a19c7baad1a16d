package config

import "time"

// APIConfig contains the storefront API endpoint configuration.
type APIConfig struct {
	// BaseURL is the root of the storefront REST API, including the path
	// prefix (e.g. "https://shop.example.com/api").
	BaseURL string `env:"BASE_URL" yaml:"base_url"`

	// Timeout bounds each HTTP request.
	Timeout time.Duration `env:"TIMEOUT" yaml:"timeout"`
}

// Sanitize applies defaults and guardrails to API configuration values.
func (a *APIConfig) Sanitize() {
	if a.BaseURL == "" {
		a.BaseURL = "http://localhost:8000/api"
	}
	if a.Timeout <= 0 {
		a.Timeout = 30 * time.Second
	}
}
