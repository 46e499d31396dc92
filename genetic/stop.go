package genetic

import (
	"time"

	"github.com/lixenwraith/polyevolve/genetic/tracking"
)

// Status is what a stop predicate sees between generations
type Status struct {
	Generation  int
	BestFitness float64
	Elapsed     time.Duration
	// History holds recent per-generation statistics, newest last
	History *tracking.Collector
}

// Never keeps the run going until the context is cancelled
func Never() StopFunc {
	return func(Status) bool { return false }
}

// MaxGenerations stops once generation n has been evaluated
func MaxGenerations(n int) StopFunc {
	return func(s Status) bool { return s.Generation >= n }
}

// FitnessAtLeast stops once the elite reaches f
func FitnessAtLeast(f float64) StopFunc {
	return func(s Status) bool { return s.BestFitness >= f }
}

// Within stops after d of wall-clock time
func Within(d time.Duration) StopFunc {
	return func(s Status) bool { return s.Elapsed >= d }
}

// Stagnant stops when the elite gained less than eps over the last window
// generations. It remembers the generation of the last gain itself, so the
// window is not bounded by the retained history. The returned predicate is
// stateful and belongs to a single run.
func Stagnant(window int, eps float64) StopFunc {
	var (
		seen     bool
		baseline float64
		mark     int
	)
	return func(s Status) bool {
		if window < 1 {
			return false
		}
		if !seen || s.BestFitness-baseline >= eps {
			seen = true
			baseline = s.BestFitness
			mark = s.Generation
		}
		return s.Generation-mark >= window
	}
}

// AnyOf stops when any predicate does
func AnyOf(stops ...StopFunc) StopFunc {
	return func(s Status) bool {
		for _, stop := range stops {
			if stop != nil && stop(s) {
				return true
			}
		}
		return false
	}
}
