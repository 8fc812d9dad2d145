// Package config provides configuration loading and validation for the
// LexiGraph service. Configuration comes from an optional JSON file with
// environment variable overrides; database credentials are environment-only.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/c360/lexigraph/errors"
)

// Environment variable names for the graph database connection.
// Absence of any one of them puts the service into mock mode.
const (
	EnvNeo4jURI      = "NEO4J_URI"
	EnvNeo4jUsername = "NEO4J_USERNAME"
	EnvNeo4jPassword = "NEO4J_PASSWORD"

	EnvNATSURL = "LEXIGRAPH_NATS_URL"
)

// Config represents the complete service configuration
type Config struct {
	Server ServerConfig `json:"server"`
	Metric MetricConfig `json:"metrics"`
	Neo4j  Neo4jConfig  `json:"neo4j"`
	NATS   NATSConfig   `json:"nats"`
	Stream StreamConfig `json:"stream"`
}

// ServerConfig defines the HTTP gateway listener settings
type ServerConfig struct {
	Port int `json:"port"`

	// EnableCORS enables CORS headers (default: false, requires explicit cors_origins)
	EnableCORS bool `json:"enable_cors"`

	// CORSOrigins lists allowed CORS origins (required when EnableCORS is true).
	// Use ["*"] for development only.
	CORSOrigins []string `json:"cors_origins,omitempty"`

	// MaxRequestSize limits request body size in bytes (default: 1MB)
	MaxRequestSize int64 `json:"max_request_size,omitempty"`
}

// MetricConfig defines the Prometheus metrics endpoint settings
type MetricConfig struct {
	Port int    `json:"port"`           // 0 disables the metrics server
	Path string `json:"path,omitempty"` // default "/metrics"
}

// Neo4jConfig defines the graph database connection.
// All three fields must be present for the database to be used;
// otherwise the executor runs in mock mode.
type Neo4jConfig struct {
	URI      string `json:"uri,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"-"` // environment-only, never serialized
}

// Configured reports whether a complete database connection is available
func (n Neo4jConfig) Configured() bool {
	return n.URI != "" && n.Username != "" && n.Password != ""
}

// NATSConfig defines the optional event-mirror connection
type NATSConfig struct {
	URL           string `json:"url,omitempty"` // empty disables mirroring
	ClientName    string `json:"client_name,omitempty"`
	SubjectPrefix string `json:"subject_prefix,omitempty"` // default "lexigraph.events"
}

// Enabled reports whether event mirroring is configured
func (n NATSConfig) Enabled() bool {
	return n.URL != ""
}

// StreamConfig defines response streaming behavior
type StreamConfig struct {
	// ResultDelayStr is the pacing delay between successive result events
	// (e.g. "100ms"). Cosmetic pacing for live consumers, not backpressure.
	ResultDelayStr string `json:"result_delay,omitempty"`

	// resultDelay is the parsed duration (internal use)
	resultDelay time.Duration
}

// ResultDelay returns the parsed pacing delay
func (s StreamConfig) ResultDelay() time.Duration {
	return s.resultDelay
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8000,
			MaxRequestSize: 1 << 20,
		},
		Metric: MetricConfig{
			Port: 9090,
			Path: "/metrics",
		},
		NATS: NATSConfig{
			ClientName:    "lexigraph",
			SubjectPrefix: "lexigraph.events",
		},
		Stream: StreamConfig{
			ResultDelayStr: "100ms",
		},
	}
}

// Load builds configuration from an optional JSON file and the environment.
// File values override defaults; environment values override the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.WrapInvalid(err, "Config", "Load", "read config file")
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.WrapInvalid(err, "Config", "Load", "parse config file")
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv overrides configuration from the environment
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvNeo4jURI); v != "" {
		c.Neo4j.URI = v
	}
	if v := os.Getenv(EnvNeo4jUsername); v != "" {
		c.Neo4j.Username = v
	}
	if v := os.Getenv(EnvNeo4jPassword); v != "" {
		c.Neo4j.Password = v
	}
	if v := os.Getenv(EnvNATSURL); v != "" {
		c.NATS.URL = v
	}
	if v := os.Getenv("LEXIGRAPH_RESULT_DELAY"); v != "" {
		c.Stream.ResultDelayStr = v
	}
}

// Validate ensures the configuration is usable and parses internal fields
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			fmt.Sprintf("invalid server port: %d", c.Server.Port))
	}

	if c.Metric.Port < 0 || c.Metric.Port > 65535 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			fmt.Sprintf("invalid metrics port: %d", c.Metric.Port))
	}

	if c.Server.MaxRequestSize <= 0 {
		c.Server.MaxRequestSize = 1 << 20
	}

	if c.Server.EnableCORS && len(c.Server.CORSOrigins) == 0 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			"cors_origins is required when enable_cors is true")
	}

	if c.Stream.ResultDelayStr == "" {
		c.Stream.ResultDelayStr = "100ms"
	}
	delay, err := time.ParseDuration(c.Stream.ResultDelayStr)
	if err != nil {
		return errors.WrapInvalid(err, "Config", "Validate",
			fmt.Sprintf("invalid result_delay: %s", c.Stream.ResultDelayStr))
	}
	if delay < 0 || delay > 5*time.Second {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			"result_delay must be between 0 and 5s")
	}
	c.Stream.resultDelay = delay

	if c.NATS.SubjectPrefix == "" {
		c.NATS.SubjectPrefix = "lexigraph.events"
	}
	if c.NATS.ClientName == "" {
		c.NATS.ClientName = "lexigraph"
	}

	return nil
}
