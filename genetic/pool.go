package genetic

import "sync"

// surfacePool manages reusable rendering surfaces for parallel evaluation
type surfacePool struct {
	factory RasterizerFactory
	free    []Rasterizer
	created int
	mu      sync.Mutex
}

func newSurfacePool(factory RasterizerFactory) *surfacePool {
	return &surfacePool{factory: factory}
}

// acquire gets or creates a surface
func (p *surfacePool) acquire() Rasterizer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.free) > 0 {
		r := p.free[len(p.free)-1]
		p.free = p.free[:len(p.free)-1]
		return r
	}
	p.created++
	return p.factory()
}

// release returns a surface to the pool
func (p *surfacePool) release(r Rasterizer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.free = append(p.free, r)
}

// size returns surfaces ever created
func (p *surfacePool) size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.created
}
