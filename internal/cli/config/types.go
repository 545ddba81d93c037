// Package config loads querypad configuration from file, environment
// variables, and CLI flags.
package config

import (
	"fmt"

	"github.com/leapstack-labs/querypad/pkg/playground"
)

// Config holds the full CLI/server configuration.
type Config struct {
	// Port the share service listens on.
	Port int `koanf:"port"`

	// BaseURL is the public playground URL share links point at.
	BaseURL string `koanf:"base_url"`

	// StatePath is the SQLite database used by the document provider.
	StatePath string `koanf:"state_path"`

	// SharesDir is the directory used by the file provider.
	SharesDir string `koanf:"shares_dir"`

	// Provider is the default provider for new shares.
	Provider string `koanf:"provider"`

	// SessionSecret signs the recent-shares browser session cookie.
	SessionSecret string `koanf:"session_secret"`

	Verbose bool `koanf:"verbose"`
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if !playground.ProviderID(c.Provider).IsKnown() {
		return fmt.Errorf("unknown provider %q (supported: %v)", c.Provider, playground.ProviderIDs())
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	return nil
}
