package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOMEROOM_CONFIG_DIR", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Mode != ModeRelay {
		t.Errorf("mode = %s, want relay", cfg.Mode)
	}
	if cfg.RelayURL != "" {
		t.Errorf("relay URL = %q, want empty", cfg.RelayURL)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOMEROOM_CONFIG_DIR", dir)

	want := &Config{Mode: ModeDirect, ScriptURL: "https://script.example/exec", APIKey: "k123"}
	if err := Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// The key lives in this file; it must not be world-readable.
	info, err := os.Stat(filepath.Join(dir, "config.json"))
	if err != nil {
		t.Fatalf("stat config: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config perms = %o, want 600", perm)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Mode != ModeDirect || got.ScriptURL != want.ScriptURL || got.APIKey != want.APIKey {
		t.Errorf("loaded = %+v, want %+v", got, want)
	}
}

func TestGatewaySelection(t *testing.T) {
	relay := &Config{Mode: ModeRelay, RelayURL: "http://relay.example"}
	if !relay.Gateway().Configured() {
		t.Error("relay gateway with URL should be configured")
	}

	empty := &Config{Mode: ModeRelay}
	if empty.Gateway().Configured() {
		t.Error("relay gateway without URL should not be configured")
	}

	direct := &Config{Mode: ModeDirect, ScriptURL: "http://script.example", APIKey: "k"}
	if !direct.Gateway().Configured() {
		t.Error("direct gateway with URL and key should be configured")
	}

	keyless := &Config{Mode: ModeDirect, ScriptURL: "http://script.example"}
	if keyless.Gateway().Configured() {
		t.Error("direct gateway without key should not be configured")
	}
}
