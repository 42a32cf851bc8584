package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is read from the working directory when --config is not set.
const DefaultFileName = "cursorcast.yaml"

// Config captures the user-adjustable knobs for the recorder host.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Listener ListenerConfig `yaml:"listener"`
	Devices  DevicesConfig  `yaml:"devices"`
	Emitter  EmitterConfig  `yaml:"emitter"`
	HTTP     HTTPConfig     `yaml:"http"`

	// Source indicates where the configuration originated (defaults or a file path).
	Source string `yaml:"-"`
}

// LoggingConfig defines log verbosity and formatting.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ListenerConfig selects the raw pointer source.
type ListenerConfig struct {
	Source              string `yaml:"source"`
	SyntheticIntervalMS int    `yaml:"synthetic_interval_ms"`
}

// DevicesConfig selects the camera/screen enumeration provider.
type DevicesConfig struct {
	Provider string `yaml:"provider"`
}

// EmitterConfig sizes per-subscriber event buffers.
type EmitterConfig struct {
	Buffer int `yaml:"buffer"`
}

// HTTPConfig controls the local command and event server.
type HTTPConfig struct {
	Address             string `yaml:"address"`
	ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
}

// Default returns the baseline configuration used when no overrides are supplied.
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Listener: ListenerConfig{
			Source:              "native",
			SyntheticIntervalMS: 250,
		},
		Devices: DevicesConfig{
			Provider: "static",
		},
		Emitter: EmitterConfig{
			Buffer: 64,
		},
		HTTP: HTTPConfig{
			Address:            "127.0.0.1:51425",
			ReadTimeoutSeconds: 5,
		},
		Source: "<defaults>",
	}
}

// Load reads configuration from disk if present, otherwise returning defaults.
// When path is empty, the loader attempts to read ./cursorcast.yaml but tolerates a missing file.
func Load(path string) (Config, error) {
	cfg := Default()

	candidate := strings.TrimSpace(path)
	explicit := candidate != ""
	if !explicit {
		candidate = DefaultFileName
	}

	file, err := os.Open(candidate)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if explicit {
				return cfg, fmt.Errorf("config file %q not found", candidate)
			}
			return cfg, nil
		}
		return cfg, fmt.Errorf("open config file %q: %w", candidate, err)
	}
	defer file.Close()

	if err := decode(file, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file %q: %w", candidate, err)
	}
	cfg.Source = candidate
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

// Validate ensures essential configuration values are present and sensible.
func (c Config) Validate() error {
	if _, err := NormalizeLogLevel(c.Logging.Level); err != nil {
		return err
	}
	if _, err := NormalizeFormat(c.Logging.Format); err != nil {
		return err
	}
	switch c.Listener.Source {
	case "native", "synthetic":
	default:
		return fmt.Errorf("listener.source must be native or synthetic, got %q", c.Listener.Source)
	}
	if c.Listener.SyntheticIntervalMS < 0 {
		return errors.New("listener.synthetic_interval_ms must not be negative")
	}
	if c.Listener.Source == "synthetic" && c.Listener.SyntheticIntervalMS == 0 {
		return errors.New("listener.synthetic_interval_ms must be positive when listener.source is synthetic")
	}
	switch c.Devices.Provider {
	case "static", "native":
	default:
		return fmt.Errorf("devices.provider must be static or native, got %q", c.Devices.Provider)
	}
	if c.Emitter.Buffer <= 0 {
		return errors.New("emitter.buffer must be positive")
	}
	if strings.TrimSpace(c.HTTP.Address) == "" {
		return errors.New("http.address must not be empty")
	}
	if c.HTTP.ReadTimeoutSeconds < 0 || c.HTTP.WriteTimeoutSeconds < 0 {
		return errors.New("http timeouts must not be negative")
	}
	return nil
}

func (c *Config) normalize() {
	defaults := Default()

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Listener.Source = strings.ToLower(strings.TrimSpace(c.Listener.Source))
	c.Devices.Provider = strings.ToLower(strings.TrimSpace(c.Devices.Provider))
	c.HTTP.Address = strings.TrimSpace(c.HTTP.Address)

	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaults.Logging.Format
	}
	if c.Listener.Source == "" {
		c.Listener.Source = defaults.Listener.Source
	}
	if c.Devices.Provider == "" {
		c.Devices.Provider = defaults.Devices.Provider
	}
	if c.HTTP.Address == "" {
		c.HTTP.Address = defaults.HTTP.Address
	}
}

// NormalizeLogLevel validates and lowercases known logging levels.
func NormalizeLogLevel(level string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return "info", nil
	case "debug":
		return "debug", nil
	case "warn", "warning":
		return "warn", nil
	case "error":
		return "error", nil
	default:
		return "", fmt.Errorf("unsupported log level %q", level)
	}
}

// NormalizeFormat validates and canonicalizes logging format identifiers.
func NormalizeFormat(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return "json", nil
	case "console", "text":
		return "console", nil
	default:
		return "", fmt.Errorf("unsupported log format %q", format)
	}
}
