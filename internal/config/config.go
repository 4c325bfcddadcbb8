// Package config manages the on-disk settings under ~/.config/homeroom:
// which gateway mode to use and where the relay or script endpoint lives.
// The direct mode (URL + client-held key) exists for local development
// against the script endpoint without a relay in between.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"homeroom/internal/gateway"
)

// Mode selects the gateway strategy at construction time.
type Mode string

const (
	ModeRelay  Mode = "relay"
	ModeDirect Mode = "direct"
)

// Config is the global settings file at ~/.config/homeroom/config.json.
type Config struct {
	Mode      Mode   `json:"mode"`
	RelayURL  string `json:"relay_url,omitempty"`
	ScriptURL string `json:"script_url,omitempty"`
	APIKey    string `json:"api_key,omitempty"`
}

// Dir returns the config directory, creating it if necessary.
// HOMEROOM_CONFIG_DIR overrides the default (used by tests).
func Dir() (string, error) {
	if dir := os.Getenv("HOMEROOM_CONFIG_DIR"); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("create config dir: %w", err)
		}
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	dir := filepath.Join(home, ".config", "homeroom")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	return dir, nil
}

// Load reads the settings file; a missing file yields defaults (relay mode,
// no endpoint — the engine reports NOT_CONFIGURED until init is run).
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, "config.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{Mode: ModeRelay}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeRelay
	}
	return &cfg, nil
}

// Save writes the settings file (0600: the direct-mode key lives here).
func Save(cfg *Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0600)
}

// Gateway builds the gateway for the configured mode. The choice is made
// once here; nothing downstream inspects the environment.
func (c *Config) Gateway() gateway.Caller {
	if c.Mode == ModeDirect {
		return gateway.NewDirect(c.ScriptURL, c.APIKey)
	}
	return gateway.NewRelay(c.RelayURL)
}
