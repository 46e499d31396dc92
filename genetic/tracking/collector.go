package tracking

import "sync"

// Collector keeps the most recent generation statistics in a ring buffer.
// Safe for one writer (the engine) and concurrent readers (display, metrics).
type Collector struct {
	mu    sync.RWMutex
	ring  []Stats
	next  int
	count int
	total int
}

// NewCollector creates a collector retaining up to capacity generations
func NewCollector(capacity int) *Collector {
	if capacity < 1 {
		capacity = 1
	}
	return &Collector{ring: make([]Stats, capacity)}
}

// Collect records one generation
func (c *Collector) Collect(s Stats) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ring[c.next] = s
	c.next = (c.next + 1) % len(c.ring)
	if c.count < len(c.ring) {
		c.count++
	}
	c.total++
}

// Last returns the newest entry
func (c *Collector) Last() (Stats, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.count == 0 {
		return Stats{}, false
	}
	return c.ring[(c.next-1+len(c.ring))%len(c.ring)], true
}

// History returns retained entries, oldest first
func (c *Collector) History() []Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Stats, 0, c.count)
	start := (c.next - c.count + len(c.ring)) % len(c.ring)
	for i := range c.count {
		out = append(out, c.ring[(start+i)%len(c.ring)])
	}
	return out
}

// Total returns the number of generations ever collected
func (c *Collector) Total() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.total
}

// Improvement returns elite fitness gained over the last window generations.
// ok is false until window+1 entries are retained.
func (c *Collector) Improvement(window int) (delta float64, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if window < 1 || c.count <= window {
		return 0, false
	}
	newest := c.ring[(c.next-1+len(c.ring))%len(c.ring)]
	older := c.ring[(c.next-1-window+2*len(c.ring))%len(c.ring)]
	return newest.Elite - older.Elite, true
}

// Reset clears all retained entries
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.ring)
	c.next, c.count, c.total = 0, 0, 0
}
