// Package config loads the checker configuration from tsinfer.yaml.
//
// A configuration file looks like:
//
//	maxDepth: 64             # type nesting limit for assignability
//	maxExpressionDepth: 512  # expression nesting limit for inference
//	checkArguments: true     # check call arguments against parameter types
//	globals:                 # extra identifiers with a fixed type
//	  window: any
//	  VERSION: string
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"tsinfer/pkg/checker"
	"tsinfer/pkg/types"
	"tsinfer/pkg/typeyaml"
)

// FileName is the configuration file FindConfig looks for.
const FileName = "tsinfer.yaml"

// Config is the parsed contents of tsinfer.yaml.
type Config struct {
	// Path is the file the configuration was read from, empty for defaults.
	Path string `yaml:"-"`

	// MaxDepth bounds type recursion in assignability. Zero means the default.
	MaxDepth int `yaml:"maxDepth,omitempty"`

	// MaxExpressionDepth bounds expression recursion in inference. Zero means
	// the default.
	MaxExpressionDepth int `yaml:"maxExpressionDepth,omitempty"`

	// CheckArguments enables argument checking during call resolution.
	CheckArguments bool `yaml:"checkArguments,omitempty"`

	// Globals holds the raw YAML of each global's type; see GlobalTypes.
	Globals map[string]yaml.Node `yaml:"globals,omitempty"`

	globals map[string]types.Type
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		MaxDepth:           types.DefaultMaxDepth,
		MaxExpressionDepth: checker.DefaultMaxExpressionDepth,
	}
}

// Load reads and parses a tsinfer.yaml file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses tsinfer.yaml content. The path argument is used only for
// error messages and Config.Path.
func Parse(data []byte, path string) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.Path = path
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfig searches for tsinfer.yaml starting from dir and walking up to
// parent directories. It returns an empty path and nil error when no file
// is found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// validate checks limits and decodes the globals.
func (c *Config) validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("%s: maxDepth must not be negative", c.Path)
	}
	if c.MaxExpressionDepth < 0 {
		return fmt.Errorf("%s: maxExpressionDepth must not be negative", c.Path)
	}
	c.globals = make(map[string]types.Type, len(c.Globals))
	for name, node := range c.Globals {
		if name == "" {
			return fmt.Errorf("%s: globals: empty name", c.Path)
		}
		t, err := typeyaml.DecodeType(&node)
		if err != nil {
			return fmt.Errorf("%s: globals: %s: %w", c.Path, name, err)
		}
		c.globals[name] = t
	}
	return nil
}

// GlobalTypes returns the decoded globals.
func (c *Config) GlobalTypes() map[string]types.Type {
	return c.globals
}

// Options converts the configuration to checker options. logger may be nil.
func (c *Config) Options(logger *slog.Logger) checker.Options {
	return checker.Options{
		MaxDepth:           c.MaxDepth,
		MaxExpressionDepth: c.MaxExpressionDepth,
		CheckArguments:     c.CheckArguments,
		Globals:            c.globals,
		Logger:             logger,
	}
}
