package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harrison/skydiff/internal/logger"
	"github.com/harrison/skydiff/internal/models"
	"github.com/harrison/skydiff/internal/report"
)

// Config represents skydiff configuration options
type Config struct {
	// Reference is the implementation treated as ground truth (side A)
	Reference models.Implementation `yaml:"reference"`

	// Candidate is the implementation being verified (side B)
	Candidate models.Implementation `yaml:"candidate"`

	// Categories are compared in this order
	Categories []models.Category `yaml:"categories"`

	// Format selects the report renderer (markdown, html, json)
	Format string `yaml:"format"`

	// ShowItems lists individual false positives and misses
	ShowItems bool `yaml:"show_items"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir enables a structured run log in this directory when non-empty
	LogDir string `yaml:"log_dir"`

	// Timeout bounds each analyzer command (0 = wait indefinitely)
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultConfig returns the configuration that compares the Python skylos
// CLI against the Rust port, both run on the current directory.
func DefaultConfig() *Config {
	return &Config{
		Reference: models.Implementation{
			Name:    "Python",
			Command: "python3 -m skylos.cli . --json",
			Output:  "python_output.json",
		},
		Candidate: models.Implementation{
			Name:    "Rust",
			Command: "./skylos-rs/target/release/skylos-rs . --json",
			Output:  "rust_output.json",
		},
		Categories: append([]models.Category(nil), models.DefaultCategories...),
		Format:     string(report.FormatMarkdown),
		ShowItems:  false,
		LogLevel:   "info",
		LogDir:     "",
		Timeout:    0,
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Use a temporary struct to handle duration parsing and partial sections
	type yamlConfig struct {
		Reference  models.Implementation `yaml:"reference"`
		Candidate  models.Implementation `yaml:"candidate"`
		Categories []string              `yaml:"categories"`
		Format     string                `yaml:"format"`
		ShowItems  *bool                 `yaml:"show_items"`
		LogLevel   string                `yaml:"log_level"`
		LogDir     string                `yaml:"log_dir"`
		Timeout    string                `yaml:"timeout"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	mergeImplementation(&cfg.Reference, yamlCfg.Reference)
	mergeImplementation(&cfg.Candidate, yamlCfg.Candidate)

	if len(yamlCfg.Categories) > 0 {
		categories, err := models.ParseCategories(yamlCfg.Categories)
		if err != nil {
			return nil, fmt.Errorf("invalid categories: %w", err)
		}
		cfg.Categories = categories
	}
	if yamlCfg.Format != "" {
		cfg.Format = yamlCfg.Format
	}
	if yamlCfg.ShowItems != nil {
		cfg.ShowItems = *yamlCfg.ShowItems
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.LogDir != "" {
		cfg.LogDir = yamlCfg.LogDir
	}
	if yamlCfg.Timeout != "" {
		timeout, err := time.ParseDuration(yamlCfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout format %q: %w", yamlCfg.Timeout, err)
		}
		cfg.Timeout = timeout
	}

	return cfg, nil
}

// mergeImplementation copies the non-empty fields of src over dst.
func mergeImplementation(dst *models.Implementation, src models.Implementation) {
	if src.Name != "" {
		dst.Name = src.Name
	}
	if src.Command != "" {
		dst.Command = src.Command
	}
	if src.Output != "" {
		dst.Output = src.Output
	}
}

// LoadConfigFromDir loads configuration from .skydiff/config.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ".skydiff", "config.yaml"))
}

// FlagOverrides carries CLI flag values; nil fields were not set.
type FlagOverrides struct {
	ReferenceName    *string
	ReferenceCommand *string
	ReferenceOutput  *string
	CandidateName    *string
	CandidateCommand *string
	CandidateOutput  *string
	Categories       []models.Category
	Format           *string
	ShowItems        *bool
	LogLevel         *string
	LogDir           *string
	Timeout          *time.Duration
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(f FlagOverrides) {
	setString(&c.Reference.Name, f.ReferenceName)
	setString(&c.Reference.Command, f.ReferenceCommand)
	setString(&c.Reference.Output, f.ReferenceOutput)
	setString(&c.Candidate.Name, f.CandidateName)
	setString(&c.Candidate.Command, f.CandidateCommand)
	setString(&c.Candidate.Output, f.CandidateOutput)
	if len(f.Categories) > 0 {
		c.Categories = f.Categories
	}
	setString(&c.Format, f.Format)
	if f.ShowItems != nil {
		c.ShowItems = *f.ShowItems
	}
	setString(&c.LogLevel, f.LogLevel)
	setString(&c.LogDir, f.LogDir)
	if f.Timeout != nil {
		c.Timeout = *f.Timeout
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if err := c.Reference.Validate(); err != nil {
		return fmt.Errorf("reference: %w", err)
	}
	if err := c.Candidate.Validate(); err != nil {
		return fmt.Errorf("candidate: %w", err)
	}
	if filepath.Clean(c.Reference.Output) == filepath.Clean(c.Candidate.Output) {
		return fmt.Errorf("reference and candidate must write to different output files, both use %q", c.Reference.Output)
	}

	if len(c.Categories) == 0 {
		return fmt.Errorf("at least one category is required")
	}
	keys := make([]string, 0, len(c.Categories))
	for _, cat := range c.Categories {
		keys = append(keys, string(cat))
	}
	if _, err := models.ParseCategories(keys); err != nil {
		return fmt.Errorf("invalid categories: %w", err)
	}

	if _, err := report.ParseFormat(c.Format); err != nil {
		return err
	}

	if !logger.IsValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	// Timeout can be 0 (no timeout) or positive, negative is invalid
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %v", c.Timeout)
	}

	return nil
}
