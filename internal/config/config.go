package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/titanous/json5"
)

// Config is the root configuration for the relay process.
type Config struct {
	Discord   DiscordConfig   `json:"discord"`
	DeepL     DeepLConfig     `json:"deepl"`
	Languages LanguagesConfig `json:"languages"`
	Telemetry TelemetryConfig `json:"telemetry,omitempty"`
}

// DiscordConfig holds the chat platform credential.
// Token is NEVER read from the config file (secret) — only from env DISCORD_TOKEN.
type DiscordConfig struct {
	Token string `json:"-"`
}

// DeepLConfig holds the translation service credential and endpoint.
// APIKey is NEVER read from the config file (secret) — only from env DEEPL_API_KEY.
type DeepLConfig struct {
	APIKey  string `json:"-"`
	APIBase string `json:"api_base,omitempty"` // default https://api.deepl.com
}

// LanguagesConfig holds the process-wide language pair used when a
// channel topic carries no configuration of its own.
type LanguagesConfig struct {
	Default string `json:"default"`
	Target  string `json:"target"`
}

// TelemetryConfig configures OpenTelemetry export for traces.
// When enabled, spans are exported to an OTLP-compatible backend
// (Jaeger, Tempo, Datadog, etc.).
type TelemetryConfig struct {
	Enabled     bool   `json:"enabled,omitempty"`      // enable OTLP export (default false)
	Endpoint    string `json:"endpoint,omitempty"`     // OTLP endpoint (e.g. "localhost:4317")
	Protocol    string `json:"protocol,omitempty"`     // "grpc" (default) or "http"
	Insecure    bool   `json:"insecure,omitempty"`     // plaintext transport, for local dev
	ServiceName string `json:"service_name,omitempty"` // OTEL service name (default "lingorelay")
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		DeepL: DeepLConfig{
			APIBase: "https://api.deepl.com",
		},
		Languages: LanguagesConfig{
			Default: "JA",
			Target:  "JA",
		},
	}
}

// Load reads config from a JSON file, then overlays env vars.
// A missing file is not an error; env vars alone are a valid setup.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := json5.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides overlays env vars onto the config.
// Env vars take precedence over file values.
func (c *Config) applyEnvOverrides() {
	envStr := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	envStr("DISCORD_TOKEN", &c.Discord.Token)
	envStr("DEEPL_API_KEY", &c.DeepL.APIKey)
	envStr("DEFAULT_LANGUAGE", &c.Languages.Default)
	envStr("TARGET_LANGUAGE", &c.Languages.Target)
}

// Validate checks required credentials and normalizes language codes.
// The relay must not start without both credentials.
func (c *Config) Validate() error {
	if c.DeepL.APIKey == "" {
		return fmt.Errorf("DEEPL_API_KEY is required")
	}
	if c.Discord.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.Languages.Default == "" || c.Languages.Target == "" {
		return fmt.Errorf("default and target languages must not be empty")
	}
	c.Languages.Default = strings.ToUpper(c.Languages.Default)
	c.Languages.Target = strings.ToUpper(c.Languages.Target)
	return nil
}
