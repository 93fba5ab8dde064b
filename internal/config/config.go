// Package config loads service settings from a JSON or YAML file and the
// environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-ats/internal/storage"
)

// Config is the full service configuration. Every field has a usable
// default, so an empty file (or no file) yields a working text-only
// service with the model disabled.
type Config struct {
	Server    ServerConfig    `json:"server" yaml:"server"`
	LLM       LLMConfig       `json:"llm" yaml:"llm"`
	Upload    UploadConfig    `json:"upload" yaml:"upload"`
	Fetch     FetchConfig     `json:"fetch" yaml:"fetch"`
	Archive   ArchiveConfig   `json:"archive" yaml:"archive"`
	Storage   storage.Config  `json:"storage" yaml:"storage"`
	Events    EventsConfig    `json:"events" yaml:"events"`
	RateLimit RateLimitConfig `json:"rate_limit" yaml:"rate_limit"`
	Auth      AuthConfig      `json:"auth" yaml:"auth"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port           int      `json:"port" yaml:"port"`
	Environment    string   `json:"environment" yaml:"environment"`
	AllowedOrigins []string `json:"allowed_origins,omitempty" yaml:"allowed_origins,omitempty"`
	MaxBodyBytes   int64    `json:"max_body_bytes,omitempty" yaml:"max_body_bytes,omitempty"`
}

// LLMConfig configures the improvement advisor's model.
type LLMConfig struct {
	Provider string `json:"provider" yaml:"provider"` // gemini or openai
	APIKey   string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	BaseURL  string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	// Model overrides the standard-tier model.
	Model             string `json:"model,omitempty" yaml:"model,omitempty"`
	TimeoutSeconds    int    `json:"timeout_seconds" yaml:"timeout_seconds"`
	Retries           int    `json:"retries" yaml:"retries"`
	RequestsPerMinute int    `json:"requests_per_minute" yaml:"requests_per_minute"`
}

// UploadConfig limits résumé uploads.
type UploadConfig struct {
	MaxFileBytes int `json:"max_file_bytes" yaml:"max_file_bytes"`
}

// FetchConfig controls job posting downloads. Off by default; when on,
// only public addresses are fetched.
type FetchConfig struct {
	Enabled        bool   `json:"enabled" yaml:"enabled"`
	UseBrowser     bool   `json:"use_browser" yaml:"use_browser"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds"`
	UserAgent      string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
}

// ArchiveConfig selects the analysis archive. An empty driver disables it.
type ArchiveConfig struct {
	Driver string `json:"driver" yaml:"driver"` // postgres, mysql or sqlite
	DSN    string `json:"dsn" yaml:"dsn"`
}

// EventsConfig configures AMQP publishing. An empty URL disables it.
type EventsConfig struct {
	URL      string `json:"url" yaml:"url"`
	Exchange string `json:"exchange" yaml:"exchange"`
}

// RateLimitConfig configures per-client request limits.
type RateLimitConfig struct {
	Enabled       bool     `json:"enabled" yaml:"enabled"`
	DefaultLimit  int      `json:"default_limit" yaml:"default_limit"`
	WindowSeconds int      `json:"window_seconds" yaml:"window_seconds"`
	AnalyzeLimit  int      `json:"analyze_limit" yaml:"analyze_limit"` // per hour
	Whitelist     []string `json:"whitelist,omitempty" yaml:"whitelist,omitempty"`
	Blacklist     []string `json:"blacklist,omitempty" yaml:"blacklist,omitempty"`
}

// AuthConfig turns on bearer tokens. The secret comes from JWT_SECRET.
type AuthConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080, Environment: "development"},
		LLM: LLMConfig{
			Provider:          "gemini",
			TimeoutSeconds:    30,
			Retries:           1,
			RequestsPerMinute: 60,
		},
		Upload: UploadConfig{MaxFileBytes: 10 << 20},
		Fetch:  FetchConfig{TimeoutSeconds: 15},
		Events: EventsConfig{Exchange: "resume_ats"},
		RateLimit: RateLimitConfig{
			Enabled:       true,
			DefaultLimit:  300,
			WindowSeconds: 60,
			AnalyzeLimit:  30,
		},
	}
}

// LoadConfig reads path over the defaults. The format follows the
// extension: .yaml and .yml are YAML, anything else JSON. An empty path
// returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}
	return cfg, nil
}

// Load reads path, applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and required companions.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("config error: 'server.port' must be between 1 and 65535, got %d", c.Server.Port))
	}
	switch c.LLM.Provider {
	case "gemini", "openai":
	default:
		errs = append(errs, fmt.Errorf("config error: 'llm.provider' must be gemini or openai, got %q", c.LLM.Provider))
	}
	if c.LLM.TimeoutSeconds < 0 || c.Fetch.TimeoutSeconds < 0 {
		errs = append(errs, errors.New("config error: timeouts must be non-negative"))
	}
	if c.Upload.MaxFileBytes < 0 {
		errs = append(errs, errors.New("config error: 'upload.max_file_bytes' must be non-negative"))
	}
	switch c.Archive.Driver {
	case "":
	case "postgres", "mysql", "sqlite":
		if c.Archive.DSN == "" {
			errs = append(errs, errors.New("config error: 'archive.dsn' is required when an archive driver is set"))
		}
	default:
		errs = append(errs, fmt.Errorf("config error: unsupported archive driver %q", c.Archive.Driver))
	}
	switch c.Storage.Backend {
	case "":
	case storage.BackendMinio, storage.BackendS3, "r2":
		if c.Storage.Bucket == "" {
			errs = append(errs, errors.New("config error: 'storage.bucket' is required when a storage backend is set"))
		}
	default:
		errs = append(errs, fmt.Errorf("config error: unsupported storage backend %q", c.Storage.Backend))
	}
	if c.RateLimit.Enabled && (c.RateLimit.DefaultLimit < 0 || c.RateLimit.WindowSeconds <= 0) {
		errs = append(errs, errors.New("config error: rate limits need a non-negative limit and a positive window"))
	}
	return errors.Join(errs...)
}

// Production reports whether error details must be hidden.
func (c *Config) Production() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

// LLMTimeout returns the advisor timeout.
func (c *Config) LLMTimeout() time.Duration {
	return time.Duration(c.LLM.TimeoutSeconds) * time.Second
}

// FetchTimeout returns the job posting download timeout.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}
