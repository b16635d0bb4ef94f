package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration.
type Config struct {
	Options Options `yaml:"options" json:"options"`
}

// Options represents subtraction and output options.
type Options struct {
	Format         string   `yaml:"format" json:"format"`
	Template       string   `yaml:"template" json:"template"`
	Subtrahends    []string `yaml:"subtrahends" json:"subtrahends"`
	StrictAccessor bool     `yaml:"strictAccessor" json:"strictAccessor"`
	Write          bool     `yaml:"write" json:"write"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Options: DefaultOptions(),
	}
}

// LoadFile loads configuration from a file (YAML or JSON based on extension).
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))

	var loaded Config
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing JSON config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			if err := json.Unmarshal(data, &loaded); err != nil {
				return fmt.Errorf("unable to parse config as YAML or JSON")
			}
		}
	}

	// Subtrahend paths are relative to the config file.
	dir := filepath.Dir(path)
	for i, s := range loaded.Options.Subtrahends {
		if !filepath.IsAbs(s) {
			loaded.Options.Subtrahends[i] = filepath.Join(dir, s)
		}
	}
	if loaded.Options.Template != "" && !filepath.IsAbs(loaded.Options.Template) {
		loaded.Options.Template = filepath.Join(dir, loaded.Options.Template)
	}

	c.merge(&loaded)

	return nil
}

// merge merges the loaded config into the current config.
func (c *Config) merge(loaded *Config) {
	if loaded.Options.Format != "" {
		c.Options.Format = loaded.Options.Format
	}
	if loaded.Options.Template != "" {
		c.Options.Template = loaded.Options.Template
	}
	c.Options.Subtrahends = append(c.Options.Subtrahends, loaded.Options.Subtrahends...)
	if loaded.Options.StrictAccessor {
		c.Options.StrictAccessor = true
	}
	if loaded.Options.Write {
		c.Options.Write = true
	}
}

// Validate checks that the options can be acted on.
func (c *Config) Validate() error {
	switch c.Options.Format {
	case FormatYAML, FormatJSON:
	case FormatTemplate:
		if c.Options.Template == "" {
			return fmt.Errorf("format %q requires a template file", FormatTemplate)
		}
	default:
		return fmt.Errorf("unknown output format %q", c.Options.Format)
	}
	if len(c.Options.Subtrahends) == 0 {
		return fmt.Errorf("at least one subtrahend file is required")
	}
	return nil
}
