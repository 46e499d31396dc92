package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/polyevolve/audio"
	"github.com/lixenwraith/polyevolve/config"
	"github.com/lixenwraith/polyevolve/genetic"
	"github.com/lixenwraith/polyevolve/genetic/persistence"
	"github.com/lixenwraith/polyevolve/genetic/registry"
	"github.com/lixenwraith/polyevolve/metrics"
	"github.com/lixenwraith/polyevolve/raster"
	"github.com/lixenwraith/polyevolve/render"
	"github.com/lixenwraith/polyevolve/target"
)

type runFlags struct {
	configPath  string
	population  int
	seed        uint64
	parallelism int
	generations int
	fitness     float64
	duration    time.Duration
	stagnation  int
	noDisplay   bool
	audio       bool
	metrics     string
	snapshotDir string
	logFile     string
	debug       bool
}

func runCommand(args []string) error {
	var f runFlags
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	fs.StringVar(&f.configPath, "config", "", "TOML configuration file")
	fs.IntVar(&f.population, "population", 0, "Population size (overrides config)")
	fs.Uint64Var(&f.seed, "seed", 0, "Random seed (overrides config, 0 = random)")
	fs.IntVar(&f.parallelism, "parallel", 0, "Evaluation goroutines (overrides config)")
	fs.IntVar(&f.generations, "generations", 0, "Stop after N generations (0 = no limit)")
	fs.Float64Var(&f.fitness, "fitness", 0, "Stop once fitness reaches this value (0 = no limit)")
	fs.DurationVar(&f.duration, "duration", 0, "Stop after this wall-clock time (0 = no limit)")
	fs.IntVar(&f.stagnation, "stagnation", 0, "Stop when fitness gains under 1e-6 over N generations (0 = off)")
	fs.BoolVar(&f.noDisplay, "no-display", false, "Disable the terminal preview")
	fs.BoolVar(&f.audio, "audio", false, "Chime on every elite improvement")
	fs.StringVar(&f.metrics, "metrics", "", "Serve Prometheus metrics on this address")
	fs.StringVar(&f.snapshotDir, "snapshots", "", "Snapshot directory (overrides config)")
	fs.StringVar(&f.logFile, "log", "", "Log file (default polyevolve.log while the display is on)")
	fs.BoolVar(&f.debug, "debug", false, "Development logging with per-generation detail")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: polyevolve run [options] [image]")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	applyFlags(&cfg, fs, &f)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logFile := f.logFile
	if logFile == "" && cfg.Display.Enabled {
		logFile = "polyevolve.log"
	}
	logger, err := newLogger(f.debug, logFile)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync()

	return run(cfg, stopFunc(&f), logger)
}

// applyFlags overrides config values with explicitly set flags only
func applyFlags(cfg *config.Config, fs *flag.FlagSet, f *runFlags) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "population":
			cfg.Engine.PopulationSize = f.population
		case "seed":
			cfg.Engine.Seed = f.seed
		case "parallel":
			cfg.Engine.Parallelism = f.parallelism
		case "no-display":
			cfg.Display.Enabled = !f.noDisplay
		case "audio":
			cfg.Audio.Enabled = f.audio
		case "metrics":
			cfg.Metrics.Listen = f.metrics
		case "snapshots":
			cfg.Snapshot.Dir = f.snapshotDir
		}
	})
	if fs.NArg() > 0 {
		cfg.Target.Path = fs.Arg(0)
	}
}

func stopFunc(f *runFlags) genetic.StopFunc {
	var stops []genetic.StopFunc
	if f.generations > 0 {
		stops = append(stops, genetic.MaxGenerations(f.generations))
	}
	if f.fitness > 0 {
		stops = append(stops, genetic.FitnessAtLeast(f.fitness))
	}
	if f.duration > 0 {
		stops = append(stops, genetic.Within(f.duration))
	}
	if f.stagnation > 0 {
		stops = append(stops, genetic.Stagnant(f.stagnation, 1e-6))
	}
	if len(stops) == 0 {
		return genetic.Never()
	}
	return genetic.AnyOf(stops...)
}

func run(cfg config.Config, stop genetic.StopFunc, logger *zap.Logger) error {
	tgt, err := target.Load(cfg.Target.Path, cfg.Engine.Limits.Width, cfg.Engine.Limits.Height, cfg.Target.MaxSide)
	if err != nil {
		return err
	}
	logger.Info("target loaded",
		zap.String("path", cfg.Target.Path),
		zap.Int("width", tgt.Width),
		zap.Int("height", tgt.Height),
	)

	ec := cfg.EngineConfig(tgt.Width, tgt.Height)
	opts, err := registry.Default().Options(cfg.Engine.Selector, cfg.Engine.Combiner, ec.Limits)
	if err != nil {
		return err
	}
	opts = append(opts, genetic.WithLogger(logger))
	if ec.Parallelism > 1 {
		opts = append(opts, genetic.WithRasterizerFactory(func() genetic.Rasterizer { return raster.New() }))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Sinks
	var sinks genetic.Sinks

	manager := persistence.NewManager(cfg.Snapshot.Dir)
	exporter := persistence.NewExporter(manager, raster.New(), tgt.Width, tgt.Height, cfg.Snapshot.Every, logger)
	sinks = append(sinks, exporter)
	logger.Info("run started", zap.String("run_id", manager.RunID()), zap.String("snapshots", cfg.Snapshot.Dir))

	if cfg.Metrics.Listen != "" {
		m := metrics.NewSink(manager.RunID())
		sinks = append(sinks, m)
		go func() {
			if err := m.Serve(ctx, cfg.Metrics.Listen, logger); err != nil {
				logger.Error("metrics server failed", zap.Error(err))
			}
		}()
	}

	if cfg.Audio.Enabled {
		chime := audio.NewChime()
		if err := chime.Initialize(); err != nil {
			// Non-fatal, run continues without sound
			logger.Warn("audio initialization failed", zap.Error(err))
		} else {
			defer chime.Cleanup()
			sinks = append(sinks, chime)
		}
	}

	var display *render.Terminal
	var screen tcell.Screen
	if cfg.Display.Enabled {
		screen, err = tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		defer screen.Fini()
		display = render.NewTerminal(screen, tgt.Image(), logger)
		sinks = append(sinks, display)
	}
	opts = append(opts, genetic.WithSink(sinks))

	engine, err := genetic.NewEngine(ec, raster.New(), tgt.Pixels, opts...)
	if err != nil {
		return err
	}

	runner := genetic.NewRunner(engine, stop)
	runner.Start(ctx)

	if display != nil {
		go display.Run(ctx, cfg.Display.Refresh, cancel)
	} else {
		go logProgress(ctx, runner, logger)
	}

	select {
	case <-runner.Done():
	case <-ctx.Done():
		runner.Stop()
	}
	exporter.Flush()

	if err := runner.Err(); err != nil {
		return err
	}
	if screen != nil {
		screen.Fini()
	}
	fmt.Fprintf(os.Stderr, "Finished at generation %d, fitness %.6f, snapshots in %s (run %s)\n",
		engine.Generation(), engine.BestFitness(), cfg.Snapshot.Dir, manager.RunID())
	return nil
}

// logProgress reports elite improvements when no display owns the terminal
func logProgress(ctx context.Context, runner *genetic.Runner, logger *zap.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-runner.Done():
			return
		case report := <-runner.Reports():
			if report.Improved {
				logger.Info("elite improved",
					zap.Int("generation", report.Generation),
					zap.Float64("fitness", report.BestFitness),
					zap.Int("polygons", report.Polygons),
				)
			}
		}
	}
}
