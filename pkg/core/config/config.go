package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	elmlog "github.com/msto63/elm/foundation/core/log"
)

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig  `toml:"general" yaml:"general"`
	Loggers []LoggerConfig `toml:"loggers" yaml:"loggers"`
	Alloc   AllocConfig    `toml:"alloc" yaml:"alloc"`
	Metrics MetricsConfig  `toml:"metrics" yaml:"metrics"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name        string `toml:"name" yaml:"name"`
	Environment string `toml:"environment" yaml:"environment"`
	DataDir     string `toml:"data_dir" yaml:"data_dir"`

	// Debug keeps the builtin debug logger active; when false it is
	// aliased to the null logger.
	Debug bool `toml:"debug" yaml:"debug"`
}

// LoggerConfig describes one named shared logger
type LoggerConfig struct {
	Name string `toml:"name" yaml:"name"`

	// Output is one of stdout, stderr, discard, file:<path> or
	// archive:<path> (a SQLite database).
	Output string `toml:"output" yaml:"output"`

	// Format is plain, debug, json or logfmt.
	Format string `toml:"format" yaml:"format"`

	// Options uses the option letters understood by log.ParseOptions.
	Options string `toml:"options" yaml:"options"`

	// FlushInterval bounds how long archive lines wait before being stored.
	FlushInterval Duration `toml:"flush_interval" yaml:"flush_interval"`

	// BatchSize is the number of archive lines stored per transaction.
	BatchSize int `toml:"batch_size" yaml:"batch_size"`
}

// AllocConfig holds limits for the allocation shim
type AllocConfig struct {
	MaxLiveErrors int   `toml:"max_live_errors" yaml:"max_live_errors"`
	MaxBytes      int64 `toml:"max_bytes" yaml:"max_bytes"`
}

// MetricsConfig holds Prometheus instrumentation settings
type MetricsConfig struct {
	Enabled bool `toml:"enabled" yaml:"enabled"`
}

// Output kinds accepted in LoggerConfig.Output
const (
	OutputStdout  = "stdout"
	OutputStderr  = "stderr"
	OutputDiscard = "discard"
	OutputFile    = "file"
	OutputArchive = "archive"
)

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

// Load loads configuration from a TOML or YAML file, chosen by extension
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	switch detectFormat(path) {
	case "yaml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from ELM_CONFIG or the default locations.
// When no file exists the defaults are returned.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv("ELM_CONFIG")
	if path == "" {
		for _, p := range DefaultPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// DefaultPaths lists the files LoadFromEnv tries, in order
func DefaultPaths() []string {
	return []string{
		"./configs/elm.toml",
		"./elm.toml",
	}
}

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// detectFormat determines the configuration format from file extension
func detectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "toml"
	}
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.General.Name == "" {
		c.General.Name = "elm"
	}
	if c.General.Environment == "" {
		c.General.Environment = "development"
	}
	if c.General.DataDir == "" {
		c.General.DataDir = "./data"
	}

	for i := range c.Loggers {
		l := &c.Loggers[i]
		if l.Output == "" {
			l.Output = OutputStderr
		}
		if l.Format == "" {
			l.Format = elmlog.FormatPlain.String()
		}
		if l.FlushInterval.Duration == 0 {
			l.FlushInterval.Duration = time.Second
		}
		if l.BatchSize == 0 {
			l.BatchSize = 64
		}
	}
}

// expandEnvVars expands environment variables in configuration values
func (c *Config) expandEnvVars() {
	c.General.DataDir = os.ExpandEnv(c.General.DataDir)
	for i := range c.Loggers {
		c.Loggers[i].Output = os.ExpandEnv(c.Loggers[i].Output)
	}
}

// Validate checks logger definitions and limits
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Loggers))
	for i, l := range c.Loggers {
		if l.Name == "" {
			return fmt.Errorf("loggers[%d]: name is required", i)
		}
		if seen[l.Name] {
			return fmt.Errorf("loggers[%d]: duplicate logger name %q", i, l.Name)
		}
		seen[l.Name] = true

		if _, _, err := l.Target(); err != nil {
			return fmt.Errorf("logger %s: %w", l.Name, err)
		}
		if _, err := elmlog.ParseFormat(l.Format); err != nil {
			return fmt.Errorf("logger %s: %w", l.Name, err)
		}
		if _, err := elmlog.ParseOptions(l.Options); err != nil {
			return fmt.Errorf("logger %s: %w", l.Name, err)
		}
		if l.BatchSize < 0 {
			return fmt.Errorf("logger %s: batch_size must not be negative", l.Name)
		}
	}

	if c.Alloc.MaxLiveErrors < 0 {
		return fmt.Errorf("alloc.max_live_errors must not be negative")
	}
	if c.Alloc.MaxBytes < 0 {
		return fmt.Errorf("alloc.max_bytes must not be negative")
	}
	return nil
}

// Target splits Output into its kind and, for file and archive outputs,
// the path.
func (l LoggerConfig) Target() (kind, path string, err error) {
	kind, path, _ = strings.Cut(l.Output, ":")
	switch kind {
	case OutputStdout, OutputStderr, OutputDiscard:
		if path != "" {
			return "", "", fmt.Errorf("output %q takes no path", kind)
		}
		return kind, "", nil
	case OutputFile, OutputArchive:
		if path == "" {
			return "", "", fmt.Errorf("output %q requires a path", kind)
		}
		return kind, path, nil
	default:
		return "", "", fmt.Errorf("unknown output %q", l.Output)
	}
}

// Logger returns the logger definition with the given name
func (c *Config) Logger(name string) (LoggerConfig, bool) {
	for _, l := range c.Loggers {
		if l.Name == name {
			return l, true
		}
	}
	return LoggerConfig{}, false
}
