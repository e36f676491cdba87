// ABOUTME: Configuration loading and parsing for the docdesk service
// ABOUTME: Supports YAML files with environment variable expansion and duration parsing

package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete docdesk configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Knowledge KnowledgeConfig `yaml:"knowledge"`
	Resolver  ResolverConfig  `yaml:"resolver"`
	Sessions  SessionsConfig  `yaml:"sessions"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// ServerConfig holds server address configuration.
type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`
}

// KnowledgeConfig holds the knowledge table source.
// An empty path means the builtin table compiled into the binary.
type KnowledgeConfig struct {
	Path string `yaml:"path"`
}

// ResolverConfig holds the simulated lookup latency. Each resolution
// waits Delay plus a uniform random amount up to Jitter.
type ResolverConfig struct {
	Delay  time.Duration `yaml:"-"`
	Jitter time.Duration `yaml:"-"`

	// Raw string values for YAML unmarshaling
	DelayRaw  string `yaml:"delay"`
	JitterRaw string `yaml:"jitter"`
}

// SessionsConfig holds session lifecycle configuration.
type SessionsConfig struct {
	IdleTTL time.Duration `yaml:"-"`

	IdleTTLRaw string `yaml:"idle_ttl"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig holds metrics endpoint configuration.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Default returns the configuration used when no file is provided.
func Default() *Config {
	return &Config{
		Server:    ServerConfig{HTTPAddr: ":8080"},
		Resolver:  ResolverConfig{Delay: 900 * time.Millisecond, Jitter: 600 * time.Millisecond},
		Sessions:  SessionsConfig{IdleTTL: 30 * time.Minute},
		Logging:   LoggingConfig{Level: "info", Format: "text"},
		Metrics:   MetricsConfig{Enabled: false, Path: "/metrics"},
	}
}

// Load reads a configuration file from the given path and returns a parsed
// Config merged over the defaults. Environment variables in the format
// ${VAR_NAME} are expanded. Duration strings are parsed into time.Duration
// values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expandedData := expandEnvVars(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expandedData), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := parseDurations(cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// envVarPattern matches ${VAR_NAME} references in raw YAML content.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding
// environment variable values. Unset variables expand to empty strings.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all required configuration fields are present and
// valid. Returns an error describing the first validation failure.
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return fmt.Errorf("server.http_addr is required")
	}
	if c.Resolver.Delay < 0 {
		return fmt.Errorf("resolver.delay must not be negative")
	}
	if c.Resolver.Jitter < 0 {
		return fmt.Errorf("resolver.jitter must not be negative")
	}
	if c.Sessions.IdleTTL <= 0 {
		return fmt.Errorf("sessions.idle_ttl must be positive")
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format %q is not one of text, json", c.Logging.Format)
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("metrics.path is required when metrics are enabled")
	}
	return nil
}

// parseDurations converts the raw duration strings into time.Duration values.
func parseDurations(cfg *Config) error {
	var err error

	if cfg.Resolver.DelayRaw != "" {
		cfg.Resolver.Delay, err = time.ParseDuration(cfg.Resolver.DelayRaw)
		if err != nil {
			return fmt.Errorf("parsing resolver.delay %q: %w", cfg.Resolver.DelayRaw, err)
		}
	}

	if cfg.Resolver.JitterRaw != "" {
		cfg.Resolver.Jitter, err = time.ParseDuration(cfg.Resolver.JitterRaw)
		if err != nil {
			return fmt.Errorf("parsing resolver.jitter %q: %w", cfg.Resolver.JitterRaw, err)
		}
	}

	if cfg.Sessions.IdleTTLRaw != "" {
		cfg.Sessions.IdleTTL, err = time.ParseDuration(cfg.Sessions.IdleTTLRaw)
		if err != nil {
			return fmt.Errorf("parsing sessions.idle_ttl %q: %w", cfg.Sessions.IdleTTLRaw, err)
		}
	}

	return nil
}
