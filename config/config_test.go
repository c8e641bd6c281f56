package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	randfield "github.com/flywave/go-randfield"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "grfsim.yaml")

	cfg := DefaultConfig()
	cfg.Model.Type = randfield.Spherical
	cfg.Model.Nugget = 0.1
	cfg.Model.Anisotropy = randfield.Anisotropy{Angle: 30, Ratio: 0.5}
	cfg.Layout.Kind = LayoutScatter
	cfg.Layout.ThinCell = 0.01
	cfg.Sampling.Lags = 10
	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grfsim.yaml")
	data := []byte("model:\n  type: gaussian\n  range: 0.1\nsampling:\n  samples: 4\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, randfield.Gaussian, cfg.Model.Type)
	assert.Equal(t, 0.1, cfg.Model.Range)
	assert.Equal(t, 1.0, cfg.Model.Variance)
	assert.Equal(t, 4, cfg.Sampling.Samples)
	assert.Equal(t, 30, cfg.Layout.NX)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grfsim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: [unterminated"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{"Variance", func(c *Config) { c.Model.Variance = 0 }, randfield.ErrInvalidParameter},
		{"Range", func(c *Config) { c.Model.Range = -1 }, randfield.ErrInvalidParameter},
		{"Ratio", func(c *Config) { c.Model.Anisotropy.Ratio = 0 }, randfield.ErrInvalidParameter},
		{"Jitter", func(c *Config) { c.Model.Jitter = -1 }, randfield.ErrInvalidParameter},
		{"GridSize", func(c *Config) { c.Layout.NX = 0 }, randfield.ErrInvalidParameter},
		{"Points", func(c *Config) { c.Layout.Kind = LayoutScatter; c.Layout.Points = 0 }, randfield.ErrInvalidParameter},
		{"Samples", func(c *Config) { c.Sampling.Samples = 0 }, randfield.ErrInvalidParameter},
		{"Lags", func(c *Config) { c.Sampling.Lags = -1 }, randfield.ErrInvalidParameter},
		{"Layout", func(c *Config) { c.Layout.Kind = "hexagon" }, nil},
		{"ThinGrid", func(c *Config) { c.Layout.ThinCell = 0.1 }, nil},
		{"Output", func(c *Config) { c.Output.Path = "" }, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			if tc.target != nil {
				assert.True(t, errors.Is(err, tc.target), "got %v", err)
			}
		})
	}
}

func TestCreateDefaultConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grfsim.yaml")
	require.NoError(t, CreateDefaultConfigFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "type: exponential")
	assert.Contains(t, string(data), "range: 0.25")
}
