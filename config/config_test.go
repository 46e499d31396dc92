package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/polyevolve/failure"
	"github.com/lixenwraith/polyevolve/parameter"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "polyevolve.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_EmptyPathIsDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, parameter.GAPopulationSize, cfg.Engine.PopulationSize)
	assert.Equal(t, parameter.GAMaxPolygons, cfg.Engine.Limits.MaxPolygons)
}

func TestLoad_OverridesOnlyPresentKeys(t *testing.T) {
	path := writeConfig(t, `
[engine]
population_size = 9
cross_over_rate = 0.4
combiner = "one-point"

[engine.limits]
width = 64
max_vertices = 8

[target]
path = "mona.png"

[display]
refresh = "250ms"

[snapshot]
every = 0
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9, cfg.Engine.PopulationSize)
	assert.Equal(t, 0.4, cfg.Engine.CrossOverRate)
	assert.Equal(t, parameter.GAMutationRate, cfg.Engine.MutationRate)
	assert.Equal(t, "one-point", cfg.Engine.Combiner)
	assert.Equal(t, "rank", cfg.Engine.Selector)
	assert.Equal(t, 64, cfg.Engine.Limits.Width)
	assert.Equal(t, 8, cfg.Engine.Limits.MaxVertices)
	assert.Equal(t, parameter.GAVertexCount, cfg.Engine.Limits.VertexCount)
	assert.Equal(t, 250*time.Millisecond, cfg.Display.Refresh)
	assert.True(t, cfg.Display.Enabled)
	assert.Zero(t, cfg.Snapshot.Every)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_UnknownKey(t *testing.T) {
	path := writeConfig(t, "[engine]\npopulation = 4\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownKey)
	assert.Contains(t, err.Error(), "engine.population")
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "[engine\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		sentinel error
	}{
		{"population", func(c *Config) { c.Engine.PopulationSize = 0 }, failure.ErrEmptyPopulation},
		{"crossover", func(c *Config) { c.Engine.CrossOverRate = 2 }, failure.ErrInvalidRate},
		{"mutation", func(c *Config) { c.Engine.MutationRate = -1 }, failure.ErrInvalidRate},
		{"negative canvas", func(c *Config) { c.Engine.Limits.Height = -1 }, failure.ErrInvalidLimits},
		{"selector", func(c *Config) { c.Engine.Selector = "tournament" }, failure.ErrUnknownStrategy},
		{"combiner", func(c *Config) { c.Engine.Combiner = "uniform" }, failure.ErrUnknownStrategy},
		{"no target", func(c *Config) { c.Target.Path = "" }, failure.ErrInvalidLimits},
		{"refresh", func(c *Config) { c.Display.Refresh = 0 }, failure.ErrInvalidRate},
		{"snapshot", func(c *Config) { c.Snapshot.Every = -5 }, failure.ErrInvalidRate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Target.Path = "target.png"
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, failure.IsConfiguration(err))
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestEngineConfig(t *testing.T) {
	cfg := Default()
	cfg.Engine.PopulationSize = 7
	cfg.Engine.Seed = 99
	cfg.Engine.Limits.MaxPolygons = 40

	ec := cfg.EngineConfig(32, 24)
	assert.Equal(t, 7, ec.PopulationSize)
	assert.Equal(t, uint64(99), ec.Seed)
	assert.Equal(t, 32, ec.Limits.Width)
	assert.Equal(t, 24, ec.Limits.Height)
	assert.Equal(t, 40, ec.Limits.MaxPolygons)
	assert.Equal(t, parameter.GAHistorySize, ec.HistorySize)
	assert.NoError(t, ec.Validate())
}
