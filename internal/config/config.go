package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/DarthSidM/sqm-project/internal/discovery"
)

// CurrentVersion is the config schema version
const CurrentVersion = 1

// DirName is the per-project state directory
const DirName = ".sqm"

// Config represents the complete sqm configuration
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Discovery DiscoveryConfig `json:"discovery" mapstructure:"discovery"`
	Analysis  AnalysisConfig  `json:"analysis" mapstructure:"analysis"`
	Cache     CacheConfig     `json:"cache" mapstructure:"cache"`
	History   HistoryConfig   `json:"history" mapstructure:"history"`
	Output    OutputConfig    `json:"output" mapstructure:"output"`
	Logging   LoggingConfig   `json:"logging" mapstructure:"logging"`
}

// DiscoveryConfig controls which files are analyzed
type DiscoveryConfig struct {
	// Directories are analyzed when none are given on the command line
	Directories []string `json:"directories" mapstructure:"directories"`
	Extensions  []string `json:"extensions" mapstructure:"extensions"`
	ExcludeDirs []string `json:"excludeDirs" mapstructure:"excludeDirs"`
}

// AnalysisConfig controls the per-file pipeline
type AnalysisConfig struct {
	// Workers bounds concurrent file analysis; 0 means one per CPU
	Workers int `json:"workers" mapstructure:"workers"`

	// Tokenizer is "auto" (tree-sitter with regex fallback) or "regex"
	Tokenizer string `json:"tokenizer" mapstructure:"tokenizer"`
}

// CacheConfig contains the per-file result cache configuration
type CacheConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`

	// Path is the SQLite database, relative to the project root unless absolute
	Path string `json:"path" mapstructure:"path"`
}

// HistoryConfig controls recording of runs
type HistoryConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`
}

// OutputConfig contains report rendering defaults
type OutputConfig struct {
	Format   string `json:"format" mapstructure:"format"`
	Compress bool   `json:"compress" mapstructure:"compress"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string `json:"level" mapstructure:"level"`

	// File, when set, receives a copy of the log at FileLevel
	File      string `json:"file" mapstructure:"file"`
	FileLevel string `json:"fileLevel" mapstructure:"fileLevel"`
}

// Tokenizer modes
const (
	TokenizerAuto  = "auto"
	TokenizerRegex = "regex"
)

// Output formats
const (
	FormatHuman = "human"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTOML  = "toml"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	opts := discovery.DefaultOptions()
	return &Config{
		Version: CurrentVersion,
		Discovery: DiscoveryConfig{
			Directories: []string{"./frontend/src", "./backend"},
			Extensions:  opts.Extensions,
			ExcludeDirs: opts.ExcludeDirs,
		},
		Analysis: AnalysisConfig{
			Workers:   0,
			Tokenizer: TokenizerAuto,
		},
		Cache: CacheConfig{
			Enabled: true,
			Path:    filepath.Join(DirName, "sqm.db"),
		},
		History: HistoryConfig{
			Enabled: false,
		},
		Output: OutputConfig{
			Format:   FormatHuman,
			Compress: false,
		},
		Logging: LoggingConfig{
			Level:     "warn",
			FileLevel: "debug",
		},
	}
}

// setDefaults registers every key so environment overrides and Unmarshal see them
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("version", cfg.Version)
	v.SetDefault("discovery.directories", cfg.Discovery.Directories)
	v.SetDefault("discovery.extensions", cfg.Discovery.Extensions)
	v.SetDefault("discovery.excludeDirs", cfg.Discovery.ExcludeDirs)
	v.SetDefault("analysis.workers", cfg.Analysis.Workers)
	v.SetDefault("analysis.tokenizer", cfg.Analysis.Tokenizer)
	v.SetDefault("cache.enabled", cfg.Cache.Enabled)
	v.SetDefault("cache.path", cfg.Cache.Path)
	v.SetDefault("history.enabled", cfg.History.Enabled)
	v.SetDefault("output.format", cfg.Output.Format)
	v.SetDefault("output.compress", cfg.Output.Compress)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.fileLevel", cfg.Logging.FileLevel)
}

// LoadConfig loads configuration from .sqm/config.json under root, or from
// configFile when it is not empty. A missing default config file yields the
// defaults. SQM_* environment variables override file values, for example
// SQM_ANALYSIS_WORKERS=4.
func LoadConfig(root, configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix("SQM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("json")
		v.AddConfigPath(filepath.Join(root, DirName))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to .sqm/config.json under root
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, DirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0o644)
}

// DatabasePath resolves Cache.Path against root
func (c *Config) DatabasePath(root string) string {
	if filepath.IsAbs(c.Cache.Path) {
		return c.Cache.Path
	}
	return filepath.Join(root, c.Cache.Path)
}

// DiscoveryOptions converts the discovery section for discovery.Walk
func (c *Config) DiscoveryOptions() discovery.Options {
	return discovery.Options{
		Extensions:  c.Discovery.Extensions,
		ExcludeDirs: c.Discovery.ExcludeDirs,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if len(c.Discovery.Extensions) == 0 {
		return &ConfigError{Field: "discovery.extensions", Message: "at least one extension is required"}
	}
	if c.Analysis.Workers < 0 {
		return &ConfigError{Field: "analysis.workers", Message: "must not be negative"}
	}
	switch c.Analysis.Tokenizer {
	case TokenizerAuto, TokenizerRegex:
	default:
		return &ConfigError{Field: "analysis.tokenizer", Message: "must be auto or regex"}
	}
	switch c.Output.Format {
	case FormatHuman, FormatJSON, FormatYAML, FormatTOML:
	default:
		return &ConfigError{Field: "output.format", Message: "must be human, json, yaml or toml"}
	}
	if c.Cache.Enabled && c.Cache.Path == "" {
		return &ConfigError{Field: "cache.path", Message: "required when the cache is enabled"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
