package config

import "time"

// CartConfig contains cart reconciliation configuration.
type CartConfig struct {
	// MirrorTimeout bounds each fire-and-forget write to the server-side
	// cart mirror.
	MirrorTimeout time.Duration `env:"MIRROR_TIMEOUT" yaml:"mirror_timeout"`
}

// Sanitize applies defaults and guardrails to cart configuration values.
func (c *CartConfig) Sanitize() {
	if c.MirrorTimeout <= 0 {
		c.MirrorTimeout = 10 * time.Second
	}
}
