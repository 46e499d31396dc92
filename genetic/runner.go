package genetic

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Runner drives an Engine on its own goroutine and publishes the latest
// report on a one-slot channel, so a slow display never blocks evolution
type Runner struct {
	engine *Engine
	stop   StopFunc

	reports chan Report
	done    chan struct{}
	err     error

	cancel   context.CancelFunc
	stopOnce sync.Once
	running  atomic.Bool
}

// NewRunner wraps engine; stop may be nil to run until Stop
func NewRunner(engine *Engine, stop StopFunc) *Runner {
	r := &Runner{
		engine:  engine,
		stop:    stop,
		reports: make(chan Report, 1),
		done:    make(chan struct{}),
	}
	engine.sink = Sinks{engine.sink, SinkFunc(r.publish)}
	return r
}

// Start launches the run; a second call is a no-op
func (r *Runner) Start(ctx context.Context) {
	if !r.running.CompareAndSwap(false, true) {
		return
	}
	ctx, r.cancel = context.WithCancel(ctx)

	go func() {
		defer close(r.done)
		defer r.running.Store(false)

		err := r.engine.Run(ctx, r.stop)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
		r.err = err

		r.engine.logger.Info("run finished",
			zap.Int("generation", r.engine.Generation()),
			zap.Float64("best_fitness", r.engine.BestFitness()),
			zap.Error(err),
		)
	}()
}

// Stop requests the run to end after the current phase and waits for it
func (r *Runner) Stop() {
	r.stopOnce.Do(func() {
		if r.cancel != nil {
			r.cancel()
		}
	})
	if r.cancel != nil {
		<-r.done
	}
}

// Running reports whether the evolution goroutine is active
func (r *Runner) Running() bool { return r.running.Load() }

// Reports delivers the newest generation report; older unread reports are replaced
func (r *Runner) Reports() <-chan Report { return r.reports }

// Done is closed when the run ends
func (r *Runner) Done() <-chan struct{} { return r.done }

// Err returns the run error once Done is closed; cancellation is not an error
func (r *Runner) Err() error {
	select {
	case <-r.done:
		return r.err
	default:
		return nil
	}
}

// Engine returns the wrapped engine; only safe to inspect once Done is closed
func (r *Runner) Engine() *Engine { return r.engine }

func (r *Runner) publish(report Report) {
	for {
		select {
		case r.reports <- report:
			return
		default:
		}
		select {
		case <-r.reports:
		default:
		}
	}
}
