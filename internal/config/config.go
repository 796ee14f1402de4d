// Package config carries the explicit run parameters every stage operation
// takes: where artifacts go, which stage is running, and the statistical
// settings. Nothing in the core reads ambient process state; the CLI resolves
// defaults (like the working directory) into a Config before the core runs.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Run identifies one stage invocation: the output root all artifact keys are
// relative to, the stage name, and the base identifier of the source
// recording (the input filename stem).
type Run struct {
	OutputRoot string `json:"output_root" yaml:"output_root" validate:"required"`
	Stage      string `json:"stage,omitempty" yaml:"stage,omitempty"`
	BaseID     string `json:"base_id,omitempty" yaml:"base_id,omitempty"`
}

// Config is the full tool configuration.
type Config struct {
	Run      Run     `json:"run" yaml:"run"`
	Baseline string  `json:"baseline,omitempty" yaml:"baseline,omitempty"`
	Alpha    float64 `json:"alpha,omitempty" yaml:"alpha,omitempty" validate:"omitempty,gt=0,lt=1"`
	Format   string  `json:"format,omitempty" yaml:"format,omitempty" validate:"omitempty,oneof=csv xlsx"`
}

// Default returns the configuration used when no file is given: output root
// is the current directory (resolved to absolute), alpha 0.05.
func Default() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return nil, err
	}
	return &Config{
		Run:   Run{OutputRoot: abs},
		Alpha: 0.05,
	}, nil
}

// Load parses a config from bytes. ext is the file extension for format
// hint; empty means detect from content (JSON starts with "{", else YAML).
func Load(data []byte, ext string) (*Config, error) {
	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}
	var cfg Config
	switch {
	case ext == ".yaml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	case ext == ".json" || strings.HasPrefix(strings.TrimSpace(string(data)), "{"):
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	}
	return &cfg, nil
}

// LoadFromPath reads and parses a config file (YAML or JSON by extension).
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Load(data, filepath.Ext(path))
}

// Validate checks the configuration, including the (0,1) alpha range.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if !filepath.IsAbs(c.Run.OutputRoot) {
		return fmt.Errorf("invalid config: output_root %q must be absolute", c.Run.OutputRoot)
	}
	return nil
}
