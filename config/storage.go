package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Storage backends.
const (
	StorageFile  = "file"
	StorageRedis = "redis"
)

// StorageConfig contains local state storage configuration. The client keeps
// its session snapshot, cart, and device id in a small key-value store.
type StorageConfig struct {
	// Backend selects the store implementation: "file" (default) or "redis".
	Backend string `env:"STORAGE_BACKEND" yaml:"backend"`

	// Path is the state file location for the file backend.
	Path string `env:"STORAGE_PATH" yaml:"path"`

	// Passphrase, when set, encrypts values at rest with AES-GCM.
	Passphrase string `env:"STORAGE_PASSPHRASE" yaml:"passphrase"`

	// Redis connection settings for the redis backend.
	Redis RedisConfig `envPrefix:"REDIS_" yaml:"redis"`
}

// RedisConfig contains Redis configuration for the redis storage backend.
type RedisConfig struct {
	Addr     string        `env:"ADDR"     yaml:"addr"`
	Password string        `env:"PASSWORD" yaml:"password"`
	DB       int           `env:"DB"       yaml:"db"`
	Prefix   string        `env:"PREFIX"   yaml:"prefix"`
	TTL      time.Duration `env:"TTL"      yaml:"ttl"`
}

// Sanitize applies defaults and guardrails to storage configuration values.
func (s *StorageConfig) Sanitize() {
	s.Backend = strings.ToLower(strings.TrimSpace(s.Backend))
	if s.Backend != StorageRedis {
		s.Backend = StorageFile
	}
	if s.Path == "" {
		s.Path = defaultStatePath()
	}
	if s.Redis.Addr == "" {
		s.Redis.Addr = "localhost:6379"
	}
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "storefront-state.json"
	}
	return filepath.Join(home, ".storefront", "state.json")
}
