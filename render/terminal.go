// Package render shows evolution progress in the terminal: the target and
// the current elite side by side with a status line underneath
package render

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/polyevolve/genetic"
	"github.com/lixenwraith/polyevolve/raster"
)

// Terminal is a genetic.Sink drawing onto a tcell screen. Observe only
// stores the newest report; drawing happens on the Run goroutine.
type Terminal struct {
	screen tcell.Screen
	target *image.RGBA
	canvas *raster.Renderer
	logger *zap.Logger

	mu       sync.Mutex
	latest   *genetic.Report
	dirty    bool
	started  time.Time
	improved int
}

// NewTerminal creates a display for a target image on an initialized screen
func NewTerminal(screen tcell.Screen, target *image.RGBA, logger *zap.Logger) *Terminal {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Terminal{
		screen:  screen,
		target:  target,
		canvas:  raster.New(),
		logger:  logger,
		started: time.Now(),
		dirty:   true,
	}
}

// Observe implements genetic.Sink
func (t *Terminal) Observe(report genetic.Report) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.latest = &report
	t.dirty = true
	if report.Improved {
		t.improved++
	}
}

// Run redraws every refresh until ctx is done or the user quits with q, Esc
// or Ctrl-C, in which case quit is called
func (t *Terminal) Run(ctx context.Context, refresh time.Duration, quit func()) {
	ticker := time.NewTicker(refresh)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	t.Draw()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-eventChan:
			if !t.handleEvent(ev) {
				quit()
				return
			}
		case <-ticker.C:
			t.Draw()
		}
	}
}

// handleEvent returns false when the user asked to quit
func (t *Terminal) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
	case *tcell.EventResize:
		t.screen.Sync()
		t.mu.Lock()
		t.dirty = true
		t.mu.Unlock()
	}
	return true
}

// Draw paints target, elite and status when something changed since the last draw
func (t *Terminal) Draw() {
	t.mu.Lock()
	if !t.dirty {
		t.mu.Unlock()
		return
	}
	report := t.latest
	improved := t.improved
	t.dirty = false
	t.mu.Unlock()

	t.screen.Clear()
	sw, sh := t.screen.Size()
	paneW := max((sw-3)/2, 1)
	paneH := max(sh-2, 1)

	w, h := t.target.Bounds().Dx(), t.target.Bounds().Dy()
	outW, outH := PreviewSize(w, h, paneW, paneH)
	t.blit(ConvertImage(t.target, outW, outH), 1, 0)

	if report != nil && report.Best != nil {
		if _, err := t.canvas.Render(report.Best, w, h); err != nil {
			t.logger.Warn("preview render failed", zap.Error(err))
		} else {
			t.blit(ConvertImage(t.canvas.Image(), outW, outH), outW+2, 0)
		}
	}

	t.drawText(0, sh-1, t.status(report, improved), tcell.StyleDefault.Reverse(true), sw)
	t.screen.Show()
}

func (t *Terminal) status(report *genetic.Report, improved int) string {
	elapsed := time.Since(t.started).Truncate(time.Second)
	if report == nil {
		return fmt.Sprintf(" waiting for first generation  %s  q: quit ", elapsed)
	}
	return fmt.Sprintf(" gen %d  fitness %.4f%%  polygons %d  mean %.4f  improvements %d  %s  q: quit ",
		report.Generation, report.BestFitness*100, report.Polygons, report.Stats.Mean, improved, elapsed)
}

func (t *Terminal) blit(p *Preview, x0, y0 int) {
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			c := p.Cells[y*p.Width+x]
			t.screen.SetContent(x0+x, y0+y, c.Rune, nil, c.Style)
		}
	}
}

func (t *Terminal) drawText(x, y int, s string, style tcell.Style, width int) {
	col := x
	for _, r := range s {
		if col >= width {
			return
		}
		t.screen.SetContent(col, y, r, nil, style)
		col++
	}
	for ; col < width; col++ {
		t.screen.SetContent(col, y, ' ', nil, style)
	}
}
