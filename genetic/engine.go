package genetic

import (
	"cmp"
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/lixenwraith/polyevolve/failure"
	"github.com/lixenwraith/polyevolve/genetic/fitness"
	"github.com/lixenwraith/polyevolve/genetic/tracking"
	"github.com/lixenwraith/polyevolve/geometry"
	"github.com/lixenwraith/polyevolve/genome"
	"github.com/lixenwraith/polyevolve/parameter"
)

// ErrNotEvaluated is returned by Reproduce when the current generation has no fitness yet
var ErrNotEvaluated = errors.New("generation not evaluated")

// --- Algorithm Engine ---

// EngineConfig holds the run parameters
type EngineConfig struct {
	// PopulationSize is the number of genomes per generation, elite included
	PopulationSize int
	// CrossOverRate is the probability crossover fires vs. cloning both parents
	CrossOverRate float64
	// MutationRate is the probability an offspring receives one mutation
	MutationRate float64
	// InitialPolygons is polygons per freshly created genome
	InitialPolygons int
	// Parallelism > 1 evaluates concurrently; requires WithRasterizerFactory
	Parallelism int
	// HistorySize bounds retained per-generation statistics
	HistorySize int
	// Seed for random number generation (0 for random seed)
	Seed uint64
	// Limits bound canvas coordinates and genome shape
	Limits genome.Limits
}

// DefaultConfig returns the parameter defaults for a width x height canvas
func DefaultConfig(width, height int) EngineConfig {
	return EngineConfig{
		PopulationSize:  parameter.GAPopulationSize,
		CrossOverRate:   parameter.GACrossOverRate,
		MutationRate:    parameter.GAMutationRate,
		InitialPolygons: parameter.GAInitialPolygons,
		Parallelism:     parameter.GAParallelism,
		HistorySize:     parameter.GAHistorySize,
		Limits: genome.Limits{
			Width:       width,
			Height:      height,
			MaxPolygons: parameter.GAMaxPolygons,
			MaxVertices: parameter.GAMaxVertices,
			VertexCount: parameter.GAVertexCount,
		},
	}
}

// Validate returns a ConfigurationError for any setting the engine cannot run with
func (c EngineConfig) Validate() error {
	if c.PopulationSize <= 0 {
		return failure.NewConfigurationError("population_size", failure.ErrEmptyPopulation, "got %d", c.PopulationSize)
	}
	if c.CrossOverRate < 0 || c.CrossOverRate > 1 || math.IsNaN(c.CrossOverRate) {
		return failure.NewConfigurationError("cross_over_rate", failure.ErrInvalidRate, "got %v", c.CrossOverRate)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 || math.IsNaN(c.MutationRate) {
		return failure.NewConfigurationError("mutation_rate", failure.ErrInvalidRate, "got %v", c.MutationRate)
	}
	if err := c.Limits.Validate(); err != nil {
		return err
	}
	return c.Limits.ValidatePolygonCount(c.InitialPolygons)
}

// Engine owns one population and runs evaluate/reproduce generations
type Engine struct {
	config EngineConfig

	// Operators
	selector    Selector
	combiner    Combiner
	mutator     Mutator
	initializer Initializer

	// Collaborators
	rasterizer Rasterizer
	surfaces   *surfacePool
	evaluator  *fitness.Evaluator
	sink       Sink
	logger     *zap.Logger
	collector  *tracking.Collector

	// State
	rng         *rand.Rand
	individuals []*genome.Individual
	elite       *genome.Individual
	bestFitness float64
	rankSum     int
	generation  int
	evaluated   bool
	improved    bool
	started     time.Time
}

// Option customizes an Engine at construction
type Option func(*Engine)

// WithSelector replaces rank selection
func WithSelector(s Selector) Option { return func(e *Engine) { e.selector = s } }

// WithCombiner replaces two-point crossover
func WithCombiner(c Combiner) Option { return func(e *Engine) { e.combiner = c } }

// WithMutator replaces the table mutator
func WithMutator(m Mutator) Option { return func(e *Engine) { e.mutator = m } }

// WithInitializer replaces random genome creation for the initial population
func WithInitializer(f Initializer) Option { return func(e *Engine) { e.initializer = f } }

// WithSink attaches a display sink
func WithSink(s Sink) Option { return func(e *Engine) { e.sink = s } }

// WithLogger attaches a logger; the default discards
func WithLogger(l *zap.Logger) Option { return func(e *Engine) { e.logger = l } }

// WithRand supplies the random source, overriding Seed
func WithRand(rng *rand.Rand) Option { return func(e *Engine) { e.rng = rng } }

// WithRasterizerFactory enables parallel evaluation with private surfaces
func WithRasterizerFactory(f RasterizerFactory) Option {
	return func(e *Engine) { e.surfaces = newSurfacePool(f) }
}

// WithPopulation seeds the initial population instead of random creation.
// Members are cloned; the count must equal PopulationSize.
func WithPopulation(members []*genome.Individual) Option {
	return func(e *Engine) {
		e.individuals = make([]*genome.Individual, len(members))
		for i, m := range members {
			e.individuals[i] = m.Clone()
		}
	}
}

// NewEngine validates the configuration and target, then creates the initial population
func NewEngine(config EngineConfig, rasterizer Rasterizer, target []byte, opts ...Option) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	evaluator, err := fitness.NewEvaluator(target, config.Limits.Width, config.Limits.Height)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		config:      config,
		rasterizer:  rasterizer,
		evaluator:   evaluator,
		selector:    RankSelector{},
		combiner:    TwoPointCombiner{},
		mutator:     TableMutator{Limits: config.Limits},
		logger:      zap.NewNop(),
		bestFitness: math.Inf(-1),
		rankSum:     config.PopulationSize * (config.PopulationSize + 1) / 2,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.rng == nil {
		if config.Seed == 0 {
			e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		} else {
			e.rng = rand.New(rand.NewPCG(config.Seed, config.Seed))
		}
	}
	if e.initializer == nil {
		e.initializer = func(rng *rand.Rand) *genome.Individual {
			return genome.New(rng, config.InitialPolygons, config.Limits)
		}
	}
	if e.rasterizer == nil && e.surfaces == nil {
		return nil, failure.NewConfigurationError("rasterizer", failure.ErrNoRasterizer, "neither rasterizer nor factory given")
	}
	if e.config.Parallelism > 1 && e.surfaces == nil {
		e.logger.Warn("parallel evaluation needs a rasterizer factory, evaluating sequentially",
			zap.Int("parallelism", e.config.Parallelism))
		e.config.Parallelism = 1
	}
	e.collector = tracking.NewCollector(max(config.HistorySize, 1))

	if e.individuals == nil {
		e.individuals = make([]*genome.Individual, config.PopulationSize)
		for i := range e.individuals {
			e.individuals[i] = e.initializer(e.rng)
		}
	} else if len(e.individuals) != config.PopulationSize {
		return nil, failure.NewConfigurationError("population", failure.ErrEmptyPopulation,
			"seeded %d members, want %d", len(e.individuals), config.PopulationSize)
	}

	e.logger.Info("engine ready",
		zap.Int("population", config.PopulationSize),
		zap.Int("width", config.Limits.Width),
		zap.Int("height", config.Limits.Height),
		zap.Int("initial_polygons", config.InitialPolygons),
		zap.Float64("cross_over_rate", config.CrossOverRate),
		zap.Float64("mutation_rate", config.MutationRate),
		zap.Int("parallelism", max(e.config.Parallelism, 1)),
	)
	return e, nil
}

// Run loops evaluate → report → stop check → reproduce until stop returns true
// or ctx is cancelled. Both are honored only between phases, so the
// population is always fully evaluated when Run returns.
func (e *Engine) Run(ctx context.Context, stop StopFunc) error {
	if stop == nil {
		stop = Never()
	}
	e.started = time.Now()

	for {
		if err := e.Evaluate(); err != nil {
			return err
		}
		if stop(e.Status()) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := e.Reproduce(); err != nil {
			return err
		}
	}
}

// Step runs one full generation: Evaluate then Reproduce
func (e *Engine) Step() error {
	if err := e.Evaluate(); err != nil {
		return err
	}
	return e.Reproduce()
}

// Evaluate renders and scores every member, updates the elite and notifies the sink.
// A rasterizer error is returned as is and leaves the generation unevaluated.
func (e *Engine) Evaluate() error {
	if e.started.IsZero() {
		e.started = time.Now()
	}
	e.evaluated = false
	e.improved = false

	var err error
	if e.config.Parallelism > 1 {
		err = e.evaluateParallel()
	} else {
		err = e.evaluateSequential()
	}
	if err != nil {
		e.logger.Error("evaluation failed", zap.Int("generation", e.generation), zap.Error(err))
		return err
	}
	e.evaluated = true

	stats := tracking.Summarize(e.generation, e.individuals, e.elite)
	e.collector.Collect(stats)

	e.logger.Debug("generation evaluated",
		zap.Int("generation", e.generation),
		zap.Float64("best", stats.Best),
		zap.Float64("elite", e.bestFitness),
		zap.Float64("mean", stats.Mean),
		zap.Int("polygons", stats.ElitePolygons),
		zap.Bool("improved", e.improved),
	)

	if e.sink != nil {
		e.sink.Observe(Report{
			Generation:  e.generation,
			BestFitness: e.bestFitness,
			Best:        e.elite.Clone(),
			Polygons:    e.elite.PolygonCount(),
			Improved:    e.improved,
			Stats:       stats,
		})
	}
	return nil
}

// evaluateSequential scores members in population order on the shared rasterizer
func (e *Engine) evaluateSequential() error {
	w, h := e.evaluator.Size()
	for _, ind := range e.individuals {
		pixels, err := e.rasterizer.Render(ind, w, h)
		if err != nil {
			return err
		}
		score, err := e.evaluator.Score(pixels)
		if err != nil {
			return err
		}
		ind.Fitness = score
		e.considerElite(ind)
	}
	return nil
}

// evaluateParallel scores members on pooled private surfaces, then reduces
// in population order so ties resolve exactly as the sequential scan
func (e *Engine) evaluateParallel() error {
	w, h := e.evaluator.Size()
	scores := make([]float64, len(e.individuals))

	p := pool.New().WithErrors().WithFirstError().WithMaxGoroutines(e.config.Parallelism)
	for i, ind := range e.individuals {
		p.Go(func() error {
			surface := e.surfaces.acquire()
			defer e.surfaces.release(surface)

			pixels, err := surface.Render(ind, w, h)
			if err != nil {
				return err
			}
			score, err := e.evaluator.Score(pixels)
			if err != nil {
				return err
			}
			scores[i] = score
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return err
	}

	for i, ind := range e.individuals {
		ind.Fitness = scores[i]
		e.considerElite(ind)
	}
	return nil
}

// considerElite takes a private clone when ind strictly beats the best-ever fitness
func (e *Engine) considerElite(ind *genome.Individual) {
	if ind.Fitness <= e.bestFitness {
		return
	}
	e.bestFitness = ind.Fitness
	e.elite = ind.Clone()
	e.improved = true

	e.logger.Debug("elite improved",
		zap.Int("generation", e.generation),
		zap.Float64("fitness", ind.Fitness),
		zap.Int("polygons", ind.PolygonCount()),
	)
}

// Reproduce replaces the population with the elite plus offspring of
// rank-selected parents, exactly PopulationSize members
func (e *Engine) Reproduce() error {
	if !e.evaluated {
		return ErrNotEvaluated
	}

	slices.SortStableFunc(e.individuals, func(a, b *genome.Individual) int {
		return cmp.Compare(b.Fitness, a.Fitness)
	})

	size := e.config.PopulationSize
	next := make([]*genome.Individual, 0, size+1)
	next = append(next, e.elite.Clone())

	for len(next) < size {
		parent1 := e.selector.Select(e.individuals, e.rankSum, e.rng)
		parent2 := e.selector.Select(e.individuals, e.rankSum, e.rng)
		off1, off2 := e.mate(parent1, parent2)
		next = append(next, off1, off2)
	}

	// An even size overshoots by one offspring
	clear(next[size:])
	e.individuals = next[:size]
	e.generation++
	e.evaluated = false
	return nil
}

// mate recombines (or clones) two parents and gates one mutation per offspring
func (e *Engine) mate(parent1, parent2 *genome.Individual) (*genome.Individual, *genome.Individual) {
	var polys1, polys2 []geometry.Polygon
	if e.rng.Float64() < e.config.CrossOverRate {
		polys1, polys2 = e.combiner.Combine(parent1, parent2, e.rng)
	} else {
		polys1, polys2 = CloneParents(parent1, parent2)
	}

	offspring1 := genome.FromPolygons(polys1)
	offspring2 := genome.FromPolygons(polys2)

	if e.rng.Float64() < e.config.MutationRate {
		e.mutator.Mutate(offspring1, e.rng)
	}
	if e.rng.Float64() < e.config.MutationRate {
		e.mutator.Mutate(offspring2, e.rng)
	}
	return offspring1, offspring2
}

// --- Accessors ---

// Status snapshots the values stop predicates look at
func (e *Engine) Status() Status {
	var elapsed time.Duration
	if !e.started.IsZero() {
		elapsed = time.Since(e.started)
	}
	return Status{
		Generation:  e.generation,
		BestFitness: e.bestFitness,
		Elapsed:     elapsed,
		History:     e.collector,
	}
}

// Generation returns the index of the current population
func (e *Engine) Generation() int { return e.generation }

// BestFitness returns the best-ever fitness, -Inf before the first evaluation
func (e *Engine) BestFitness() float64 { return e.bestFitness }

// Elite returns a clone of the best-ever genome, nil before the first evaluation
func (e *Engine) Elite() *genome.Individual {
	if e.elite == nil {
		return nil
	}
	return e.elite.Clone()
}

// Individuals returns clones of the current population in its current order
func (e *Engine) Individuals() []*genome.Individual {
	out := make([]*genome.Individual, len(e.individuals))
	for i, ind := range e.individuals {
		out[i] = ind.Clone()
	}
	return out
}

// RankSum returns N(N+1)/2
func (e *Engine) RankSum() int { return e.rankSum }

// Config returns the effective configuration
func (e *Engine) Config() EngineConfig { return e.config }

// History returns the per-generation statistics collector
func (e *Engine) History() *tracking.Collector { return e.collector }
