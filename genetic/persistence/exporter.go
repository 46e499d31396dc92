package persistence

import (
	"sync"

	"go.uber.org/zap"

	"github.com/lixenwraith/polyevolve/genetic"
)

// Exporter is a genetic.Sink saving the elite every N generations and on Flush
type Exporter struct {
	manager    *Manager
	rasterizer genetic.Rasterizer
	width      int
	height     int
	every      int
	logger     *zap.Logger

	mu    sync.Mutex
	last  *genetic.Report
	saved int
}

// NewExporter creates an exporter; every <= 0 only exports on Flush
func NewExporter(manager *Manager, rasterizer genetic.Rasterizer, width, height, every int, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{
		manager:    manager,
		rasterizer: rasterizer,
		width:      width,
		height:     height,
		every:      every,
		logger:     logger,
		saved:      -1,
	}
}

// Observe implements genetic.Sink
func (x *Exporter) Observe(report genetic.Report) {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.last = &report
	if x.every > 0 && report.Generation > 0 && report.Generation%x.every == 0 {
		x.export(report)
	}
}

// Flush exports the newest report unless it was already exported
func (x *Exporter) Flush() {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.last != nil && x.last.Generation != x.saved {
		x.export(*x.last)
	}
}

func (x *Exporter) export(report genetic.Report) {
	if report.Best == nil {
		return
	}
	path, err := x.manager.Save(FromIndividual(x.manager.RunID(), report.Generation, x.width, x.height, report.Best))
	if err != nil {
		x.logger.Error("snapshot save failed", zap.Int("generation", report.Generation), zap.Error(err))
		return
	}

	pixels, err := x.rasterizer.Render(report.Best, x.width, x.height)
	if err != nil {
		x.logger.Error("snapshot render failed", zap.Int("generation", report.Generation), zap.Error(err))
		return
	}
	img, err := x.manager.SaveImage(report.Generation, pixels, x.width, x.height)
	if err != nil {
		x.logger.Error("snapshot image failed", zap.Int("generation", report.Generation), zap.Error(err))
		return
	}

	x.saved = report.Generation
	x.logger.Info("snapshot saved",
		zap.Int("generation", report.Generation),
		zap.Float64("fitness", report.BestFitness),
		zap.String("genome", path),
		zap.String("image", img),
	)
}
