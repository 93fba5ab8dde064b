package ratelimit

import (
	"strings"
	"time"
)

// EndpointConfig is the limit for one endpoint.
type EndpointConfig struct {
	Path   string        `json:"path" yaml:"path"`     // exact path, or a prefix when it ends in "/"
	Method string        `json:"method" yaml:"method"` // HTTP method
	Limit  int           `json:"limit" yaml:"limit"`   // requests per window; 0 means unlimited
	Window time.Duration `json:"window" yaml:"window"`
	Burst  int           `json:"burst" yaml:"burst"` // defaults to Limit
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool             `json:"enabled" yaml:"enabled"`
	DefaultLimit    int              `json:"default_limit" yaml:"default_limit"`
	DefaultWindow   time.Duration    `json:"default_window" yaml:"default_window"`
	CleanupInterval time.Duration    `json:"cleanup_interval" yaml:"cleanup_interval"`
	Whitelist       map[string]bool  `json:"-" yaml:"-"`
	Blacklist       map[string]bool  `json:"-" yaml:"-"`
	EndpointConfigs []EndpointConfig `json:"endpoints,omitempty" yaml:"endpoints,omitempty"`
}

// DefaultConfig returns the limits used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Enabled:         true,
		DefaultLimit:    300,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Whitelist:       map[string]bool{},
		Blacklist:       map[string]bool{},
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-endpoint limits. Analyses call the
// model, so they get the strictest budget.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/api/resumeAI", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/api/analyses/", Method: "GET", Limit: 120, Window: time.Minute, Burst: 20},
	}
}

// ParseIPList parses a comma-separated list of addresses into a set.
func ParseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}
	return result
}
