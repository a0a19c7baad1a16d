package config

import "time"

// SessionConfig contains session lifecycle configuration.
type SessionConfig struct {
	// LoginPath is the navigation target after a forced sign-out.
	LoginPath string `env:"LOGIN_PATH" yaml:"login_path"`

	// VerifyInterval is how often the background runner revalidates the
	// stored token against the server. Zero disables the runner.
	VerifyInterval time.Duration `env:"VERIFY_INTERVAL" yaml:"verify_interval"`

	// VerifyEnabled toggles the background verification runner.
	VerifyEnabled bool `env:"VERIFY_ENABLED" yaml:"verify_enabled"`
}

// Sanitize applies defaults and guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.LoginPath == "" {
		s.LoginPath = "/login"
	}
	if s.VerifyInterval <= 0 {
		s.VerifyInterval = 5 * time.Minute
	}
	// Never hammer the verify endpoint.
	if s.VerifyInterval < 10*time.Second {
		s.VerifyInterval = 10 * time.Second
	}
}
