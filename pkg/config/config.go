// Package config provides configuration loading and management for bgviewer.
// It handles loading configuration from YAML files, overriding it from the
// environment and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"bgviewer/pkg/hierarchy"
)

// DefaultEnvFiles are the dotenv files read by Load when present
var DefaultEnvFiles = []string{".env", ".env.local"}

// Config represents the application configuration loaded from YAML
type Config struct {
	// Atlas parameters
	Atlas struct {
		// Dir is the atlas bundle directory (metadata.json, structures.json, meshes/)
		Dir string `yaml:"dir" env:"BGVIEWER_ATLAS_DIR"`
	} `yaml:"atlas"`

	// Viewer parameters
	Viewer struct {
		// Theme is the colour theme, dark or light
		Theme string `yaml:"theme" env:"BGVIEWER_THEME"`

		// IconDir holds the tree branch and check box icons
		IconDir string `yaml:"iconDir" env:"BGVIEWER_ICON_DIR"`

		// AnnotationsOpacity is the opacity of rendered label slices
		AnnotationsOpacity float64 `yaml:"annotationsOpacity" env:"BGVIEWER_ANNOTATIONS_OPACITY"`

		// ExpandDepth is how many levels of the region tree start expanded
		ExpandDepth int `yaml:"expandDepth" env:"BGVIEWER_EXPAND_DEPTH"`
	} `yaml:"viewer"`

	// Hierarchy projection parameters
	Hierarchy struct {
		// ExcludedTags are structures left out of the region tree
		ExcludedTags []string `yaml:"excludedTags" env:"BGVIEWER_EXCLUDED_TAGS" envSeparator:";"`

		// MissingParent is drop, reparent or fail
		MissingParent string `yaml:"missingParent" env:"BGVIEWER_MISSING_PARENT"`
	} `yaml:"hierarchy"`

	// Logging parameters
	Logging struct {
		// Level is one of silent, error, warn, info, debug
		Level string `yaml:"level" env:"LOG_LEVEL"`
	} `yaml:"logging"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Viewer.Theme = "dark"
	cfg.Viewer.IconDir = "icons"
	cfg.Viewer.AnnotationsOpacity = 0.3
	cfg.Viewer.ExpandDepth = 2

	cfg.Hierarchy.ExcludedTags = append([]string(nil), hierarchy.DefaultExcludedTags...)
	cfg.Hierarchy.MissingParent = hierarchy.DropMissingParent.String()

	cfg.Logging.Level = "info"

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// LoadEnv loads the dotenv files that exist and returns how many were read
func LoadEnv(envFiles []string) (int, error) {
	existing := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}

	if len(existing) == 0 {
		return 0, nil
	}

	return len(existing), godotenv.Load(existing...)
}

// Load reads the YAML file, applies environment overrides and validates the result
func Load(configPath string, envFiles []string) (*Config, error) {
	if _, err := LoadEnv(envFiles); err != nil {
		return nil, fmt.Errorf("error loading env files: %w", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if _, ok := palettes[c.Viewer.Theme]; !ok {
		return fmt.Errorf("theme argument invalid: %s, should be either dark or light", c.Viewer.Theme)
	}
	if c.Viewer.AnnotationsOpacity < 0 || c.Viewer.AnnotationsOpacity > 1 {
		return fmt.Errorf("annotations opacity must be between 0 and 1, got %g", c.Viewer.AnnotationsOpacity)
	}
	if c.Viewer.ExpandDepth < 0 {
		return fmt.Errorf("expand depth must be non-negative, got %d", c.Viewer.ExpandDepth)
	}
	if _, err := hierarchy.ParseMissingParentPolicy(c.Hierarchy.MissingParent); err != nil {
		return err
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// ProjectionOptions returns the hierarchy projection options described by the configuration
func (c *Config) ProjectionOptions() (hierarchy.Options, error) {
	policy, err := hierarchy.ParseMissingParentPolicy(c.Hierarchy.MissingParent)
	if err != nil {
		return hierarchy.Options{}, err
	}

	// An empty list in the file means nothing is excluded, so the copy is never nil
	tags := make([]string, len(c.Hierarchy.ExcludedTags))
	copy(tags, c.Hierarchy.ExcludedTags)

	return hierarchy.Options{
		ExcludedTags:  tags,
		MissingParent: policy,
	}, nil
}

// Theme returns the colour theme selected by the configuration
func (c *Config) Theme() (Theme, error) {
	return ThemeFor(c.Viewer.Theme, c.Viewer.IconDir)
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
