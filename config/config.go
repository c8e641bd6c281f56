// Package config provides configuration loading and management for grfsim.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	randfield "github.com/flywave/go-randfield"
	"gopkg.in/yaml.v3"
)

const (
	LayoutGrid    = "grid"
	LayoutLattice = "lattice"
	LayoutScatter = "scatter"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Model holds the covariance model of the simulated field
	Model struct {
		randfield.Model `yaml:",inline"`

		// Anisotropy rotates and squeezes the correlation ellipse
		Anisotropy randfield.Anisotropy `yaml:"anisotropy"`

		// Jitter is added to the covariance diagonal before factorizing
		Jitter float64 `yaml:"jitter"`
	} `yaml:"model"`

	// Layout selects the simulation locations
	Layout struct {
		// Kind is one of grid, lattice or scatter
		Kind string `yaml:"kind"`

		// NX and NY are the grid dimensions for grid and lattice layouts
		NX int `yaml:"nx"`
		NY int `yaml:"ny"`

		// Points is the number of scattered locations
		Points int `yaml:"points"`

		// ThinCell merges locations sharing a cell of this size; 0 disables thinning
		ThinCell float64 `yaml:"thinCell"`

		// Interpolator names the resampler used by Resample
		Interpolator string `yaml:"interpolator"`

		// Resample upsamples grid output to this size; 0 keeps the simulation size
		Resample [2]int `yaml:"resample"`
	} `yaml:"layout"`

	// Sampling parameters
	Sampling struct {
		// Seed makes runs reproducible
		Seed uint64 `yaml:"seed"`

		// Samples is the number of independent realisations to draw
		Samples int `yaml:"samples"`

		// Lags is the number of semivariogram bins reported; 0 disables the report
		Lags int `yaml:"lags"`
	} `yaml:"sampling"`

	// Output parameters
	Output struct {
		// Path is the JSON output file
		Path string `yaml:"path"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Model.Model = randfield.Model{Type: randfield.Exponential, Variance: 1, Range: 0.25}
	cfg.Model.Anisotropy = randfield.Isotropic

	cfg.Layout.Kind = LayoutGrid
	cfg.Layout.NX = 30
	cfg.Layout.NY = 30
	cfg.Layout.Points = 200
	cfg.Layout.Interpolator = randfield.BILINEAR

	cfg.Sampling.Seed = 1
	cfg.Sampling.Samples = 1

	cfg.Output.Path = "field.json"
	cfg.Output.Verbose = true

	return cfg
}

// Validate checks the configuration before any simulation work starts
func (c *Config) Validate() error {
	if err := c.Model.Model.Validate(); err != nil {
		return err
	}
	if err := c.Model.Anisotropy.Validate(); err != nil {
		return err
	}
	if c.Model.Jitter < 0 {
		return fmt.Errorf("%w: jitter must be >= 0", randfield.ErrInvalidParameter)
	}
	switch c.Layout.Kind {
	case LayoutGrid, LayoutLattice:
		if c.Layout.NX < 1 || c.Layout.NY < 1 {
			return fmt.Errorf("%w: grid size must be >= 1, got %dx%d", randfield.ErrInvalidParameter, c.Layout.NX, c.Layout.NY)
		}
		if c.Layout.ThinCell > 0 {
			return errors.New("config: thinning is only supported for scatter layouts")
		}
	case LayoutScatter:
		if c.Layout.Points < 1 {
			return fmt.Errorf("%w: points must be >= 1, got %d", randfield.ErrInvalidParameter, c.Layout.Points)
		}
	default:
		return fmt.Errorf("config: unknown layout %q", c.Layout.Kind)
	}
	if c.Layout.ThinCell < 0 {
		return fmt.Errorf("%w: thinCell must be >= 0", randfield.ErrInvalidParameter)
	}
	if c.Layout.Resample[0] < 0 || c.Layout.Resample[1] < 0 {
		return fmt.Errorf("%w: resample size must be >= 0", randfield.ErrInvalidParameter)
	}
	if c.Sampling.Samples < 1 {
		return fmt.Errorf("%w: samples must be >= 1, got %d", randfield.ErrInvalidParameter, c.Sampling.Samples)
	}
	if c.Sampling.Lags < 0 {
		return fmt.Errorf("%w: lags must be >= 0", randfield.ErrInvalidParameter)
	}
	if c.Output.Path == "" {
		return errors.New("config: output path is empty")
	}
	return nil
}

// Load loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func Load(configPath string) (*Config, error) {
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

// Save saves the configuration to a YAML file
func Save(cfg *Config, configPath string) error {
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
	return Save(DefaultConfig(), configPath)
}
