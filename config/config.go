// Package config loads the postboard server configuration from a YAML file
// with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given. A missing file means
// defaults.
const DefaultPath = "postboard.yaml"

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`

	// Seed posts are created, in order, when the store starts.
	Seed []SeedPost `yaml:"seed"`
}

type ServerConfig struct {
	Addr            string `yaml:"addr"`
	RequestTimeout  string `yaml:"request_timeout"`
	ReadTimeout     string `yaml:"read_timeout"`
	WriteTimeout    string `yaml:"write_timeout"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

type SeedPost struct {
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":5001",
			RequestTimeout:  "1m",
			ReadTimeout:     "10s",
			WriteTimeout:    "10s",
			ShutdownTimeout: "5s",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Seed: []SeedPost{
			{Title: "Hello", Content: "First post"},
			{Title: "Another", Content: "Second post"},
		},
	}
}

// Load reads the YAML file at path over the defaults, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Addr = ":" + port
	}
	if addr := os.Getenv("POSTBOARD_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if level := os.Getenv("POSTBOARD_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if format := os.Getenv("POSTBOARD_LOG_FORMAT"); format != "" {
		c.Logging.Format = format
	}
}

func (c *Config) Validate() error {
	var errs []error

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}

	durations := []struct {
		name, value string
	}{
		{"server.request_timeout", c.Server.RequestTimeout},
		{"server.read_timeout", c.Server.ReadTimeout},
		{"server.write_timeout", c.Server.WriteTimeout},
		{"server.shutdown_timeout", c.Server.ShutdownTimeout},
	}
	for _, d := range durations {
		if _, err := parseDuration(d.value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", d.name, err))
		}
	}
	if to, err := parseDuration(c.Server.RequestTimeout); err == nil && to < time.Second {
		errs = append(errs, fmt.Errorf("server.request_timeout must be at least 1s, got %s", to))
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown logging.level %q", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("unknown logging.format %q", c.Logging.Format))
	}

	for i, p := range c.Seed {
		if p.Title == "" || p.Content == "" {
			errs = append(errs, fmt.Errorf("seed[%d]: title and content are required", i))
		}
	}

	return errors.Join(errs...)
}

func parseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %s", s)
	}
	return d, nil
}

// Durations returns the server timeouts. Call after Validate.
func (s ServerConfig) Durations() (request, read, write, shutdown time.Duration) {
	request, _ = parseDuration(s.RequestTimeout)
	read, _ = parseDuration(s.ReadTimeout)
	write, _ = parseDuration(s.WriteTimeout)
	shutdown, _ = parseDuration(s.ShutdownTimeout)
	return
}
