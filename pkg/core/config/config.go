package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no configuration file exists
var ErrNotFound = errors.New("config file not found")

// EnvVar names the environment variable holding the config path
const EnvVar = "MINIC_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General  GeneralConfig  `toml:"general" yaml:"general"`
	Frontend FrontendConfig `toml:"frontend" yaml:"frontend"`
	Output   OutputConfig   `toml:"output" yaml:"output"`
	Watch    WatchConfig    `toml:"watch" yaml:"watch"`
}

// GeneralConfig holds logging settings
type GeneralConfig struct {
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
	LogFile   string `toml:"log_file" yaml:"log_file"`
}

// FrontendConfig holds limits for the lexer and parser
type FrontendConfig struct {
	MaxSourceBytes int `toml:"max_source_bytes" yaml:"max_source_bytes"`
	MaxDepth       int `toml:"max_depth" yaml:"max_depth"`
	CacheSize      int `toml:"cache_size" yaml:"cache_size"` // negative disables the cache
}

// OutputConfig holds report settings
type OutputConfig struct {
	Format string `toml:"format" yaml:"format"` // table, json or yaml
	Color  string `toml:"color" yaml:"color"`   // auto, always or never
}

// WatchConfig holds file watching settings
type WatchConfig struct {
	Debounce Duration `toml:"debounce" yaml:"debounce"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from the MINIC_CONFIG environment variable
// or the first default location that exists
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		for _, p := range DefaultPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return nil, fmt.Errorf("%w: set %s or create minic.toml", ErrNotFound, EnvVar)
	}

	return Load(path)
}

// DefaultPaths lists the locations searched when MINIC_CONFIG is unset
func DefaultPaths() []string {
	return []string{
		"./minic.toml",
		"./minic.yaml",
		"./configs/minic.toml",
		filepath.Join(os.Getenv("HOME"), ".config/minic/config.toml"),
	}
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Frontend
	if c.Frontend.MaxSourceBytes == 0 {
		c.Frontend.MaxSourceBytes = 1 << 20
	}
	if c.Frontend.MaxDepth == 0 {
		c.Frontend.MaxDepth = 512
	}
	if c.Frontend.CacheSize == 0 {
		c.Frontend.CacheSize = 128
	}

	// Output
	if c.Output.Format == "" {
		c.Output.Format = "table"
	}
	if c.Output.Color == "" {
		c.Output.Color = "auto"
	}

	// Watch
	if c.Watch.Debounce.Duration == 0 {
		c.Watch.Debounce.Duration = 200 * time.Millisecond
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.General.LogFile = os.ExpandEnv(c.General.LogFile)
}

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.General.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("general.log_level: unknown level %q", c.General.LogLevel))
	}
	switch c.General.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("general.log_format: unknown format %q", c.General.LogFormat))
	}
	if c.Frontend.MaxSourceBytes < 0 {
		errs = append(errs, fmt.Errorf("frontend.max_source_bytes: must be positive"))
	}
	if c.Frontend.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("frontend.max_depth: must be positive"))
	}
	switch c.Output.Format {
	case "table", "json", "yaml":
	default:
		errs = append(errs, fmt.Errorf("output.format: unknown format %q", c.Output.Format))
	}
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		errs = append(errs, fmt.Errorf("output.color: want auto, always or never, got %q", c.Output.Color))
	}
	if c.Watch.Debounce.Duration < 0 {
		errs = append(errs, fmt.Errorf("watch.debounce: must not be negative"))
	}

	return errors.Join(errs...)
}
