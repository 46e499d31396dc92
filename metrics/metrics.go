// Package metrics exports run progress as Prometheus metrics
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lixenwraith/polyevolve/genetic"
	"github.com/lixenwraith/polyevolve/genetic/tracking"
)

// Sink records every generation report into a private registry
type Sink struct {
	registry *prometheus.Registry

	generation   prometheus.Gauge
	stats        *prometheus.GaugeVec
	polygons     prometheus.Gauge
	improvements prometheus.Counter
	generations  prometheus.Counter
}

// NewSink creates the collectors labelled with runID
func NewSink(runID string) *Sink {
	constLabels := prometheus.Labels{"run_id": runID}
	s := &Sink{
		registry: prometheus.NewRegistry(),
		generation: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "polyevolve_generation", Help: "Index of the last evaluated generation", ConstLabels: constLabels,
		}),
		stats: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "polyevolve_generation_stats", Help: "Statistics of the last evaluated generation", ConstLabels: constLabels,
		}, []string{"stat"}),
		polygons: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "polyevolve_elite_polygons", Help: "Polygon count of the elite", ConstLabels: constLabels,
		}),
		improvements: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "polyevolve_elite_improvements_total", Help: "Generations that produced a new elite", ConstLabels: constLabels,
		}),
		generations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "polyevolve_generations_total", Help: "Generations evaluated", ConstLabels: constLabels,
		}),
	}
	s.registry.MustRegister(s.generation, s.stats, s.polygons, s.improvements, s.generations)
	return s
}

// Observe implements genetic.Sink
func (s *Sink) Observe(report genetic.Report) {
	s.generation.Set(float64(report.Generation))
	s.polygons.Set(float64(report.Polygons))
	for name, v := range report.Stats.Bundle() {
		if name == tracking.MetricGeneration {
			continue
		}
		s.stats.WithLabelValues(name).Set(v)
	}
	s.generations.Inc()
	if report.Improved {
		s.improvements.Inc()
	}
}

// Registry exposes the registry for tests and extra collectors
func (s *Sink) Registry() *prometheus.Registry {
	return s.registry
}

// Handler serves the registry in the Prometheus text format
func (s *Sink) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled
func (s *Sink) Serve(ctx context.Context, addr string, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", s.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
