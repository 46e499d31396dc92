// Package config loads run settings from a TOML file layered over the
// parameter defaults and validates them before anything is started
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/polyevolve/failure"
	"github.com/lixenwraith/polyevolve/genetic"
	"github.com/lixenwraith/polyevolve/genetic/registry"
	"github.com/lixenwraith/polyevolve/genome"
	"github.com/lixenwraith/polyevolve/parameter"
)

// ErrUnknownKey marks a configuration key outside the documented set
var ErrUnknownKey = errors.New("unknown configuration key")

// Config is the full run configuration
type Config struct {
	Engine   Engine   `toml:"engine"`
	Target   Target   `toml:"target"`
	Display  Display  `toml:"display"`
	Audio    Audio    `toml:"audio"`
	Metrics  Metrics  `toml:"metrics"`
	Snapshot Snapshot `toml:"snapshot"`
}

// Engine holds GA parameters; zero canvas dimensions follow the target image
type Engine struct {
	PopulationSize  int           `toml:"population_size"`
	CrossOverRate   float64       `toml:"cross_over_rate"`
	MutationRate    float64       `toml:"mutation_rate"`
	InitialPolygons int           `toml:"initial_polygons"`
	Parallelism     int           `toml:"parallelism"`
	Seed            uint64        `toml:"seed"`
	Selector        string        `toml:"selector"`
	Combiner        string        `toml:"combiner"`
	Limits          genome.Limits `toml:"limits"`
}

type Target struct {
	Path    string `toml:"path"`
	MaxSide int    `toml:"max_side"`
}

type Display struct {
	Enabled bool          `toml:"enabled"`
	Refresh time.Duration `toml:"refresh"`
}

type Audio struct {
	Enabled bool `toml:"enabled"`
}

type Metrics struct {
	Listen string `toml:"listen"`
}

type Snapshot struct {
	Dir   string `toml:"dir"`
	Every int    `toml:"every"`
}

// Default returns the parameter defaults
func Default() Config {
	return Config{
		Engine: Engine{
			PopulationSize:  parameter.GAPopulationSize,
			CrossOverRate:   parameter.GACrossOverRate,
			MutationRate:    parameter.GAMutationRate,
			InitialPolygons: parameter.GAInitialPolygons,
			Parallelism:     parameter.GAParallelism,
			Selector:        parameter.GASelector,
			Combiner:        parameter.GACombiner,
			Limits: genome.Limits{
				MaxPolygons: parameter.GAMaxPolygons,
				MaxVertices: parameter.GAMaxVertices,
				VertexCount: parameter.GAVertexCount,
			},
		},
		Target:   Target{MaxSide: parameter.TargetMaxSide},
		Display:  Display{Enabled: parameter.DisplayEnabled, Refresh: parameter.DisplayRefresh},
		Audio:    Audio{Enabled: parameter.AudioEnabled},
		Metrics:  Metrics{Listen: parameter.MetricsListen},
		Snapshot: Snapshot{Dir: parameter.GASnapshotDir, Every: parameter.GASnapshotEvery},
	}
}

// Load decodes path over the defaults; an empty path returns the defaults
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	md, err := toml.NewDecoder(f).Decode(&cfg)
	if err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, failure.NewConfigurationError("config", ErrUnknownKey, "%s", strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Validate checks everything that does not depend on the target image
func (c Config) Validate() error {
	e := c.Engine
	if e.PopulationSize <= 0 {
		return failure.NewConfigurationError("engine.population_size", failure.ErrEmptyPopulation, "got %d", e.PopulationSize)
	}
	if e.CrossOverRate < 0 || e.CrossOverRate > 1 {
		return failure.NewConfigurationError("engine.cross_over_rate", failure.ErrInvalidRate, "got %v", e.CrossOverRate)
	}
	if e.MutationRate < 0 || e.MutationRate > 1 {
		return failure.NewConfigurationError("engine.mutation_rate", failure.ErrInvalidRate, "got %v", e.MutationRate)
	}
	if e.Limits.Width < 0 || e.Limits.Height < 0 {
		return failure.NewConfigurationError("engine.limits", failure.ErrInvalidLimits,
			"canvas %dx%d", e.Limits.Width, e.Limits.Height)
	}

	reg := registry.Default()
	if !slices.Contains(reg.SelectorNames(), e.Selector) {
		return failure.NewConfigurationError("engine.selector", failure.ErrUnknownStrategy,
			"%q not in %v", e.Selector, reg.SelectorNames())
	}
	if !slices.Contains(reg.CombinerNames(), e.Combiner) {
		return failure.NewConfigurationError("engine.combiner", failure.ErrUnknownStrategy,
			"%q not in %v", e.Combiner, reg.CombinerNames())
	}

	if c.Target.Path == "" {
		return failure.NewConfigurationError("target.path", failure.ErrInvalidLimits, "no target image")
	}
	if c.Target.MaxSide < 0 {
		return failure.NewConfigurationError("target.max_side", failure.ErrInvalidLimits, "got %d", c.Target.MaxSide)
	}
	if c.Display.Enabled && c.Display.Refresh <= 0 {
		return failure.NewConfigurationError("display.refresh", failure.ErrInvalidRate, "got %s", c.Display.Refresh)
	}
	if c.Snapshot.Every < 0 {
		return failure.NewConfigurationError("snapshot.every", failure.ErrInvalidRate, "got %d", c.Snapshot.Every)
	}
	return nil
}

// EngineConfig builds the engine configuration for the resolved canvas size
func (c Config) EngineConfig(width, height int) genetic.EngineConfig {
	ec := genetic.DefaultConfig(width, height)
	ec.PopulationSize = c.Engine.PopulationSize
	ec.CrossOverRate = c.Engine.CrossOverRate
	ec.MutationRate = c.Engine.MutationRate
	ec.InitialPolygons = c.Engine.InitialPolygons
	ec.Parallelism = c.Engine.Parallelism
	ec.Seed = c.Engine.Seed
	ec.Limits.MaxPolygons = c.Engine.Limits.MaxPolygons
	ec.Limits.MaxVertices = c.Engine.Limits.MaxVertices
	ec.Limits.VertexCount = c.Engine.Limits.VertexCount
	return ec
}
