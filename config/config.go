package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded in two layers: an optional YAML file first, then
// environment variables on top using the github.com/caarlos0/env library.
// Defaults live in Sanitize so the file layer is never clobbered by them.
// See individual domain config files for available variables:
//   - api.go: storefront API endpoint configuration
//   - storage.go: local state storage configuration
//   - session.go: session lifecycle configuration
//   - cart.go: cart reconciliation configuration
type AppConfig struct {
	// IsDev controls development mode behavior (verbose logging, pretty
	// output). Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" yaml:"dev"`

	// API endpoint configuration
	API APIConfig `envPrefix:"API_" yaml:"api"`

	// Local state storage configuration
	Storage StorageConfig `yaml:"storage"`

	// Session lifecycle configuration
	Session SessionConfig `envPrefix:"SESSION_" yaml:"session"`

	// Cart reconciliation configuration
	Cart CartConfig `envPrefix:"CART_" yaml:"cart"`
}

// Sanitize applies defaults and guardrails to configuration values. Call it
// after both layers have been loaded.
func (c *AppConfig) Sanitize() {
	c.API.Sanitize()
	c.Storage.Sanitize()
	c.Session.Sanitize()
	c.Cart.Sanitize()
	c.detectDevMode()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
