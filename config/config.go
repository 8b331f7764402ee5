// Package config provides configuration loading and management for caseschema.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/caseschema/export"
	"github.com/c360studio/caseschema/graph"
	"github.com/c360studio/caseschema/investigation"
	"github.com/c360studio/caseschema/output"
)

// Config represents the complete caseschema configuration
type Config struct {
	Output     OutputConfig     `yaml:"output"`
	Generate   GenerateConfig   `yaml:"generate"`
	Examples   ExamplesConfig   `yaml:"examples"`
	Validation ValidationConfig `yaml:"validation"`
	NATS       NATSConfig       `yaml:"nats"`
	Watch      WatchConfig      `yaml:"watch"`
	Export     ExportConfig     `yaml:"export"`
}

// OutputConfig configures where and how schema documents are written
type OutputConfig struct {
	// Dir is the schema output directory (default: schemas)
	Dir string `yaml:"dir"`
	// Format is json or yaml
	Format string `yaml:"format"`
	// Indent is the JSON indent width; 0 writes compact JSON
	Indent *int `yaml:"indent,omitempty"`
}

// GenerateConfig selects which schemas a run produces
type GenerateConfig struct {
	// Types lists the investigation types to compile
	Types []string `yaml:"types"`
	// Base is the type compiled into base_investigation
	Base string `yaml:"base"`
	// BasicDefinitions adds the "string" and "xsd_dateTime" definitions
	BasicDefinitions *bool `yaml:"basic_definitions,omitempty"`
	// Combine lists combined schemas to build
	Combine []CombineConfig `yaml:"combine,omitempty"`
}

// CombineConfig describes one combined schema
type CombineConfig struct {
	Name            string   `yaml:"name"`
	Types           []string `yaml:"types"`
	UnionProperties bool     `yaml:"union_properties,omitempty"`
}

// ExamplesConfig configures example record generation
type ExamplesConfig struct {
	Enabled  *bool  `yaml:"enabled,omitempty"`
	Dir      string `yaml:"dir"`
	Count    int    `yaml:"count"`
	Validate *bool  `yaml:"validate,omitempty"`
}

// ValidationConfig configures instance validation
type ValidationConfig struct {
	// AssertFormat turns format keywords (date-time) into assertions
	AssertFormat *bool `yaml:"assert_format,omitempty"`
}

// NATSConfig configures triple publishing
type NATSConfig struct {
	// URL is the NATS server URL (empty = publishing disabled)
	URL string `yaml:"url"`
	// Subject is the ingest subject
	Subject string `yaml:"subject"`
}

// WatchConfig configures watch mode
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// ExportConfig configures RDF export
type ExportConfig struct {
	Format  string `yaml:"format"`
	Profile string `yaml:"profile"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	types := make([]string, 0, len(investigation.Types()))
	for _, t := range investigation.Types() {
		types = append(types, t.String())
	}
	return &Config{
		Output: OutputConfig{
			Dir:    "schemas",
			Format: string(output.FormatJSON),
			Indent: intPtr(output.DefaultIndent),
		},
		Generate: GenerateConfig{
			Types:            types,
			Base:             investigation.CyberIntrusion.String(),
			BasicDefinitions: boolPtr(true),
		},
		Examples: ExamplesConfig{
			Enabled:  boolPtr(true),
			Dir:      "examples",
			Count:    1,
			Validate: boolPtr(true),
		},
		NATS: NATSConfig{
			Subject: graph.IngestSubject,
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
		Export: ExportConfig{
			Format:  string(export.FormatTurtle),
			Profile: string(export.ProfileClasses),
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	var errs []error
	if c.Output.Dir == "" {
		errs = append(errs, errors.New("output.dir is required"))
	}
	if _, err := output.ParseFormat(c.Output.Format); err != nil {
		errs = append(errs, fmt.Errorf("output.format: %w", err))
	}
	if c.Output.Indent != nil && *c.Output.Indent < 0 {
		errs = append(errs, errors.New("output.indent must not be negative"))
	}
	if len(c.Generate.Types) == 0 {
		errs = append(errs, errors.New("generate.types must list at least one type"))
	}
	for _, s := range c.Generate.Types {
		if _, err := investigation.ParseType(s); err != nil {
			errs = append(errs, fmt.Errorf("generate.types: %w", err))
		}
	}
	if _, err := investigation.ParseType(c.Generate.Base); err != nil {
		errs = append(errs, fmt.Errorf("generate.base: %w", err))
	}
	for i, cc := range c.Generate.Combine {
		if cc.Name == "" {
			errs = append(errs, fmt.Errorf("generate.combine[%d].name is required", i))
		}
		if len(cc.Types) < 2 {
			errs = append(errs, fmt.Errorf("generate.combine[%d] needs at least two types", i))
		}
		for _, s := range cc.Types {
			if _, err := investigation.ParseType(s); err != nil {
				errs = append(errs, fmt.Errorf("generate.combine[%d]: %w", i, err))
			}
		}
	}
	if c.ExamplesEnabled() {
		if c.Examples.Dir == "" {
			errs = append(errs, errors.New("examples.dir is required when examples are enabled"))
		}
		if c.Examples.Count < 1 {
			errs = append(errs, errors.New("examples.count must be at least 1"))
		}
	}
	if c.Watch.Debounce < 0 {
		errs = append(errs, errors.New("watch.debounce must not be negative"))
	}
	if _, err := export.ParseFormat(c.Export.Format); err != nil {
		errs = append(errs, fmt.Errorf("export.format: %w", err))
	}
	if _, err := export.ParseProfile(c.Export.Profile); err != nil {
		errs = append(errs, fmt.Errorf("export.profile: %w", err))
	}
	return errors.Join(errs...)
}

// Types returns the parsed generate.types, in order and without duplicates.
func (c *Config) Types() ([]investigation.Type, error) {
	return parseTypes(c.Generate.Types)
}

// BaseType returns the parsed generate.base.
func (c *Config) BaseType() (investigation.Type, error) {
	return investigation.ParseType(c.Generate.Base)
}

// Indent returns the JSON indent width, defaulting when unset.
func (c *Config) Indent() int {
	if c.Output.Indent == nil {
		return output.DefaultIndent
	}
	return *c.Output.Indent
}

// AssertFormat reports whether format keywords are asserted.
func (c *Config) AssertFormat() bool {
	return c.Validation.AssertFormat != nil && *c.Validation.AssertFormat
}

// BasicDefinitions reports whether basic definitions are added.
func (c *Config) BasicDefinitions() bool {
	return c.Generate.BasicDefinitions == nil || *c.Generate.BasicDefinitions
}

// ExamplesEnabled reports whether example records are generated.
func (c *Config) ExamplesEnabled() bool {
	return c.Examples.Enabled == nil || *c.Examples.Enabled
}

// ValidateExamples reports whether generated examples are validated.
func (c *Config) ValidateExamples() bool {
	return c.Examples.Validate == nil || *c.Examples.Validate
}

// CombineTypes returns the parsed types of a combine entry.
func (cc CombineConfig) CombineTypes() ([]investigation.Type, error) {
	return parseTypes(cc.Types)
}

func parseTypes(in []string) ([]investigation.Type, error) {
	out := make([]investigation.Type, 0, len(in))
	for _, s := range in {
		t, err := investigation.ParseType(s)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out, nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// loadOverlay reads a file without defaults so that Merge only sees the keys
// the file sets.
func loadOverlay(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Output
	if other.Output.Dir != "" {
		c.Output.Dir = other.Output.Dir
	}
	if other.Output.Format != "" {
		c.Output.Format = other.Output.Format
	}
	if other.Output.Indent != nil {
		c.Output.Indent = other.Output.Indent
	}

	// Generate
	if len(other.Generate.Types) > 0 {
		c.Generate.Types = other.Generate.Types
	}
	if other.Generate.Base != "" {
		c.Generate.Base = other.Generate.Base
	}
	if other.Generate.BasicDefinitions != nil {
		c.Generate.BasicDefinitions = other.Generate.BasicDefinitions
	}
	if len(other.Generate.Combine) > 0 {
		c.Generate.Combine = other.Generate.Combine
	}

	// Examples
	if other.Examples.Enabled != nil {
		c.Examples.Enabled = other.Examples.Enabled
	}
	if other.Examples.Dir != "" {
		c.Examples.Dir = other.Examples.Dir
	}
	if other.Examples.Count != 0 {
		c.Examples.Count = other.Examples.Count
	}
	if other.Examples.Validate != nil {
		c.Examples.Validate = other.Examples.Validate
	}

	// Validation
	if other.Validation.AssertFormat != nil {
		c.Validation.AssertFormat = other.Validation.AssertFormat
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.Subject != "" {
		c.NATS.Subject = other.NATS.Subject
	}

	// Watch
	if other.Watch.Debounce != 0 {
		c.Watch.Debounce = other.Watch.Debounce
	}

	// Export
	if other.Export.Format != "" {
		c.Export.Format = other.Export.Format
	}
	if other.Export.Profile != "" {
		c.Export.Profile = other.Export.Profile
	}
}

func boolPtr(b bool) *bool { return &b }

func intPtr(i int) *int { return &i }
