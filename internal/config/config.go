package config

import (
	"log/slog"
	"strings"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Digest  DigestConfig
	Log     LogConfig
	API     APIConfig
}

type ServerConfig struct {
	Port    int
	MCPPort int
}

type StorageConfig struct {
	DataDir string
}

type DigestConfig struct {
	TopN int
}

type LogConfig struct {
	Level string
}

type APIConfig struct {
	// Token guards the HTTP API when set. Empty disables auth,
	// which is the expected mode for a localhost-only tracker.
	Token string
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:    4600,
			MCPPort: 4601,
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir(),
		},
		Digest: DigestConfig{
			TopN: 10,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// SlogLevel maps the configured level name onto slog's scale.
// Unknown names fall back to info.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load reads configuration from the platform-native backend, environment
// variables, and platform secret store.
//
// On macOS the backend is UserDefaults (domain: com.jobtrack.app) and the
// API token falls back to macOS Keychain (service: jobtrack, account:
// api_token). On Linux the backend is a JSON file at
// $XDG_CONFIG_HOME/jobtrack/config.json and secrets live in
// $XDG_DATA_HOME/jobtrack/secrets.json.
//
// Environment variables (JOBTRACK_*) override backend values on all
// platforms.
func Load() (Config, error) {
	return loadWith(newPlatformBackend(), keychainReader{})
}

// keychain abstracts secret store access for testing.
type keychain interface {
	Get(service, account string) (string, error)
}

func loadWith(b ConfigBackend, kc keychain) (Config, error) {
	cfg := defaults()

	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)

	// Try the platform secret store for the API token if still empty.
	if cfg.API.Token == "" {
		if tok, err := kc.Get("jobtrack", "api_token"); err == nil && tok != "" {
			cfg.API.Token = tok
		}
	}

	return cfg, nil
}

// keychainReader reads from the platform secret store.
type keychainReader struct{}

func (keychainReader) Get(service, account string) (string, error) {
	out, err := keychainGet(service, account)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
