package config

import (
	"strings"
	"testing"
)

// mapBackend is an in-memory ConfigBackend for tests.
type mapBackend struct {
	strings map[string]string
	ints    map[string]int
}

func (b *mapBackend) GetString(key string) (string, bool, error) {
	v, ok := b.strings[key]
	return v, ok, nil
}

func (b *mapBackend) GetInt(key string) (int, bool, error) {
	v, ok := b.ints[key]
	return v, ok, nil
}

func (b *mapBackend) SetString(key, val string) error {
	if b.strings == nil {
		b.strings = make(map[string]string)
	}
	b.strings[key] = val
	return nil
}

func (b *mapBackend) SetInt(key string, val int) error {
	if b.ints == nil {
		b.ints = make(map[string]int)
	}
	b.ints[key] = val
	return nil
}

func (b *mapBackend) Delete(key string) error {
	delete(b.strings, key)
	delete(b.ints, key)
	return nil
}

// mockKeychain is a test double for the keychain interface.
type mockKeychain struct {
	value string
	err   error
}

func (m mockKeychain) Get(service, account string) (string, error) {
	return m.value, m.err
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, s := range specs {
		t.Setenv(s.env, "")
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := loadWith(&mapBackend{}, mockKeychain{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 4600 {
		t.Errorf("Server.Port = %d, want 4600", cfg.Server.Port)
	}
	if cfg.Server.MCPPort != 4601 {
		t.Errorf("Server.MCPPort = %d, want 4601", cfg.Server.MCPPort)
	}
	if cfg.Digest.TopN != 10 {
		t.Errorf("Digest.TopN = %d, want 10", cfg.Digest.TopN)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "info")
	}
	if cfg.Storage.DataDir == "" {
		t.Error("Storage.DataDir should have a default")
	}
	if cfg.API.Token != "" {
		t.Errorf("API.Token = %q, want empty", cfg.API.Token)
	}
}

func TestBackendValues(t *testing.T) {
	clearEnv(t)

	b := &mapBackend{
		strings: map[string]string{
			"storage.data_dir": "/tmp/jobtrack-test",
			"log.level":        "debug",
		},
		ints: map[string]int{
			"server.port":  5600,
			"digest.top_n": 5,
		},
	}

	cfg, err := loadWith(b, mockKeychain{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 5600 {
		t.Errorf("Server.Port = %d, want 5600", cfg.Server.Port)
	}
	if cfg.Storage.DataDir != "/tmp/jobtrack-test" {
		t.Errorf("Storage.DataDir = %q", cfg.Storage.DataDir)
	}
	if cfg.Digest.TopN != 5 {
		t.Errorf("Digest.TopN = %d, want 5", cfg.Digest.TopN)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
}

func TestEnvOverridesBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("JOBTRACK_SERVER_PORT", "7000")
	t.Setenv("JOBTRACK_LOG_LEVEL", "warn")

	b := &mapBackend{
		strings: map[string]string{"log.level": "debug"},
		ints:    map[string]int{"server.port": 5600},
	}

	cfg, err := loadWith(b, mockKeychain{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000", cfg.Server.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "warn")
	}
}

func TestTokenFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("JOBTRACK_API_TOKEN", "env-token")

	cfg, err := loadWith(&mapBackend{}, mockKeychain{value: "keychain-token"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.API.Token != "env-token" {
		t.Errorf("API.Token = %q, want %q", cfg.API.Token, "env-token")
	}
}

func TestTokenKeychainFallback(t *testing.T) {
	clearEnv(t)

	cfg, err := loadWith(&mapBackend{}, mockKeychain{value: "keychain-token"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.API.Token != "keychain-token" {
		t.Errorf("API.Token = %q, want %q", cfg.API.Token, "keychain-token")
	}
}

func TestSlogLevel(t *testing.T) {
	cases := map[string]string{
		"debug": "DEBUG",
		"info":  "INFO",
		"warn":  "WARN",
		"error": "ERROR",
		"bogus": "INFO",
	}
	for name, want := range cases {
		got := (LogConfig{Level: name}).SlogLevel().String()
		if got != want {
			t.Errorf("SlogLevel(%q) = %s, want %s", name, got, want)
		}
	}
}

func TestShowAllExcludesSecrets(t *testing.T) {
	cfg := defaults()
	cfg.API.Token = "super-secret"

	for _, ki := range ShowAll(cfg) {
		if ki.Key == "api.token" {
			t.Error("ShowAll should not include api.token")
		}
		if strings.Contains(ki.Value, "super-secret") {
			t.Errorf("ShowAll leaked secret in key %s", ki.Key)
		}
	}
}

func TestValidKeys(t *testing.T) {
	keys := ValidKeys()
	want := map[string]bool{
		"server.port":      false,
		"server.mcp_port":  false,
		"storage.data_dir": false,
		"digest.top_n":     false,
		"log.level":        false,
	}
	for _, k := range keys {
		if k == "api.token" {
			t.Error("ValidKeys should not include api.token")
		}
		if _, ok := want[k]; ok {
			want[k] = true
		}
	}
	for k, seen := range want {
		if !seen {
			t.Errorf("ValidKeys missing %s", k)
		}
	}
}
