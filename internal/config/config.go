// Package config loads connector.yaml, the generator's description of the
// connector project.
package config

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file looked up in the project root.
const DefaultFile = "connector.yaml"

// Config describes where handler units live and where generated code goes.
// All directories are slash-separated and relative to the project root.
type Config struct {
	Name         string `yaml:"name" json:"name"`
	Version      string `yaml:"version" json:"version"`
	Module       string `yaml:"module" json:"module"`
	ActionsDir   string `yaml:"actions_dir" json:"actions_dir"`
	TriggersDir  string `yaml:"triggers_dir" json:"triggers_dir"`
	OutputDir    string `yaml:"output_dir" json:"output_dir"`
	Package      string `yaml:"package" json:"package"`
	TemplatesDir string `yaml:"templates_dir,omitempty" json:"templates_dir,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Name:        "connector",
		Version:     "0.0.0",
		Module:      "connector",
		ActionsDir:  "actions",
		TriggersDir: "triggers",
		OutputDir:   "internal/generated",
		Package:     "generated",
	}
}

// Load reads a configuration file. Fields left empty take their defaults.
func Load(file string) (*Config, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", file, err)
	}
	return Parse(data, file)
}

// LoadOptional is Load, except that a missing file yields Default.
func LoadOptional(file string) (*Config, error) {
	cfg, err := Load(file)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes YAML configuration. source is only used in error messages.
func Parse(data []byte, source string) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", source, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", source, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Module == "" {
		c.Module = def.Module
	}
	if c.ActionsDir == "" {
		c.ActionsDir = def.ActionsDir
	}
	if c.TriggersDir == "" {
		c.TriggersDir = def.TriggersDir
	}
	if c.OutputDir == "" {
		c.OutputDir = def.OutputDir
	}
	if c.Package == "" {
		c.Package = def.Package
	}
}

// Validate checks the directory layout for obvious mistakes.
func (c *Config) Validate() error {
	for field, dir := range map[string]string{
		"actions_dir":  c.ActionsDir,
		"triggers_dir": c.TriggersDir,
		"output_dir":   c.OutputDir,
	} {
		if path.IsAbs(dir) || !isLocal(dir) {
			return fmt.Errorf("%s %q must be a relative path inside the project", field, dir)
		}
	}
	if !token.IsIdentifier(c.Package) {
		return fmt.Errorf("package %q is not a valid Go package name", c.Package)
	}
	if c.ActionsDir == c.TriggersDir {
		return fmt.Errorf("actions_dir and triggers_dir must differ (both %q)", c.ActionsDir)
	}
	return nil
}

// ImportPath returns the Go import path of a directory inside the project.
func (c *Config) ImportPath(dir string) string {
	return path.Join(c.Module, dir)
}

func isLocal(dir string) bool {
	clean := path.Clean(dir)
	return clean != "." && clean != ".." && !strings.HasPrefix(clean, "../")
}
