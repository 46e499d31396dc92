// Package registry maps strategy names from configuration to genetic operators
package registry

import (
	"fmt"
	"slices"
	"sync"

	"github.com/lixenwraith/polyevolve/failure"
	"github.com/lixenwraith/polyevolve/genetic"
	"github.com/lixenwraith/polyevolve/genome"
)

// SelectorFactory builds a selector for a run
type SelectorFactory func(limits genome.Limits) genetic.Selector

// CombinerFactory builds a combiner for a run
type CombinerFactory func(limits genome.Limits) genetic.Combiner

// Registry holds named selectors and combiners
type Registry struct {
	selectors map[string]SelectorFactory
	combiners map[string]CombinerFactory
	mu        sync.RWMutex
}

// New creates an empty registry
func New() *Registry {
	return &Registry{
		selectors: make(map[string]SelectorFactory),
		combiners: make(map[string]CombinerFactory),
	}
}

// Default creates a registry holding the built-in strategies
func Default() *Registry {
	r := New()
	_ = r.RegisterSelector("rank", func(genome.Limits) genetic.Selector { return genetic.RankSelector{} })
	_ = r.RegisterSelector("roulette", func(genome.Limits) genetic.Selector { return genetic.RouletteSelector{} })
	_ = r.RegisterCombiner("two-point", func(genome.Limits) genetic.Combiner { return genetic.TwoPointCombiner{} })
	_ = r.RegisterCombiner("one-point", func(genome.Limits) genetic.Combiner { return genetic.OnePointCombiner{} })
	_ = r.RegisterCombiner("cut-and-splice", func(l genome.Limits) genetic.Combiner {
		return genetic.CutAndSpliceCombiner{MaxPolygons: l.MaxPolygons}
	})
	return r
}

// RegisterSelector adds a named selector
func (r *Registry) RegisterSelector(name string, f SelectorFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.selectors[name]; exists {
		return fmt.Errorf("selector %q already registered", name)
	}
	r.selectors[name] = f
	return nil
}

// RegisterCombiner adds a named combiner
func (r *Registry) RegisterCombiner(name string, f CombinerFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.combiners[name]; exists {
		return fmt.Errorf("combiner %q already registered", name)
	}
	r.combiners[name] = f
	return nil
}

// Selector builds the named selector
func (r *Registry) Selector(name string, limits genome.Limits) (genetic.Selector, error) {
	r.mu.RLock()
	f, ok := r.selectors[name]
	r.mu.RUnlock()

	if !ok {
		return nil, failure.NewConfigurationError("selector", failure.ErrUnknownStrategy,
			"%q not in %v", name, r.SelectorNames())
	}
	return f(limits), nil
}

// Combiner builds the named combiner
func (r *Registry) Combiner(name string, limits genome.Limits) (genetic.Combiner, error) {
	r.mu.RLock()
	f, ok := r.combiners[name]
	r.mu.RUnlock()

	if !ok {
		return nil, failure.NewConfigurationError("combiner", failure.ErrUnknownStrategy,
			"%q not in %v", name, r.CombinerNames())
	}
	return f(limits), nil
}

// Options resolves both names into engine options
func (r *Registry) Options(selector, combiner string, limits genome.Limits) ([]genetic.Option, error) {
	s, err := r.Selector(selector, limits)
	if err != nil {
		return nil, err
	}
	c, err := r.Combiner(combiner, limits)
	if err != nil {
		return nil, err
	}
	return []genetic.Option{genetic.WithSelector(s), genetic.WithCombiner(c)}, nil
}

// SelectorNames lists registered selectors, sorted
func (r *Registry) SelectorNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.selectors)
}

// CombinerNames lists registered combiners, sorted
func (r *Registry) CombinerNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.combiners)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
