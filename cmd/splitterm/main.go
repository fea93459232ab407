// Command splitterm is a minimal host for the terminal core: it loads
// configuration, builds the initial pane layout, and drives the
// orchestrator's Tick event against a RenderSink that draws nothing.
//
// A real GUI frontend (window creation, a pixel-drawing backend, physical
// key decoding, clipboard integration) lives in a separate binary; this
// entry point exists to exercise the core end to end without one.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/quietcompute/splitterm/internal/config"
	"github.com/quietcompute/splitterm/internal/grid"
	imgpkg "github.com/quietcompute/splitterm/internal/image"
	"github.com/quietcompute/splitterm/internal/layout"
	"github.com/quietcompute/splitterm/internal/orchestrator"
	"github.com/quietcompute/splitterm/internal/panemgr"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (defaults are used if absent)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("splitterm: %v", err)
	}

	panes, err := panemgr.New(cfg.Terminal.Cols, cfg.Terminal.Rows, cfg.Terminal.Scrollback, cfg.Terminal.Shell)
	if err != nil {
		log.Fatalf("splitterm: failed to start initial pane: %v", err)
	}

	sink := newConsoleSink(cfg.Terminal.FontSize)
	if err := applyStartupLayout(panes, sink, cfg); err != nil {
		log.Printf("splitterm: startup layout: %v", err)
	}
	orch := orchestrator.New(panes, sink, cfg.Window.Width, cfg.Window.Height)

	runTicks(orch)
}

// applyStartupLayout splits the initial pane into the configured startup
// arrangement: two panes stacked or side by side, or a four-pane grid.
func applyStartupLayout(panes *panemgr.Manager, sink orchestrator.RenderSink, cfg config.Config) error {
	if cfg.Startup.Panes <= 1 {
		return nil
	}

	window := layout.Rect{Width: cfg.Window.Width, Height: cfg.Window.Height}
	cellW, cellH := sink.CellDimensions()

	switch {
	case cfg.Startup.Layout == config.LayoutHorizontal && cfg.Startup.Panes == 2:
		_, err := panes.SplitActivePaneWithRatio(layout.Horizontal, window, cellW, cellH, cfg.Startup.SplitRatio)
		return err
	case cfg.Startup.Layout == config.LayoutVertical && cfg.Startup.Panes == 2:
		_, err := panes.SplitActivePaneWithRatio(layout.Vertical, window, cellW, cellH, cfg.Startup.VerticalRatio)
		return err
	case cfg.Startup.Layout == config.LayoutGrid && cfg.Startup.Panes == 4:
		if _, err := panes.SplitActivePaneWithRatio(layout.Horizontal, window, cellW, cellH, cfg.Startup.SplitRatio); err != nil {
			return err
		}
		panes.SetActivePane(0)
		if _, err := panes.SplitActivePaneWithRatio(layout.Vertical, window, cellW, cellH, cfg.Startup.VerticalRatio); err != nil {
			return err
		}
		panes.SetActivePane(1)
		if _, err := panes.SplitActivePaneWithRatio(layout.Vertical, window, cellW, cellH, cfg.Startup.VerticalRatio); err != nil {
			return err
		}
		panes.SetActivePane(0)
		return nil
	default:
		log.Printf("unsupported startup layout %q with %d panes, using single pane", cfg.Startup.Layout, cfg.Startup.Panes)
		return nil
	}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// runTicks drives the orchestrator's Tick event on a fixed schedule, the
// same role a GUI event source's frame callback plays in a real frontend.
func runTicks(orch *orchestrator.Orchestrator) {
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		shouldExit, err := orch.Handle(orchestrator.Tick{})
		if err != nil {
			log.Printf("splitterm: tick error: %v", err)
			continue
		}
		if shouldExit {
			os.Exit(0)
		}
	}
}

// consoleSink is a bare-bones RenderSink whose drawing calls are no-ops,
// standing in for a real pixel backend. It only tracks the cell size
// derived from the font size.
type consoleSink struct {
	cellW, cellH float64
}

func newConsoleSink(fontSize float64) *consoleSink {
	return &consoleSink{cellW: fontSize * 0.6, cellH: fontSize * 1.2}
}

func (s *consoleSink) CellDimensions() (w, h float64) { return s.cellW, s.cellH }
func (s *consoleSink) Clear()                         {}
func (s *consoleSink) Present()                       {}
func (s *consoleSink) SetFontSize(size float64) {
	s.cellW, s.cellH = size*0.6, size*1.2
}

func (s *consoleSink) RenderPane(g *grid.Grid, cursor orchestrator.CursorSnapshot, offsetX, offsetY, width, height int) {
}

func (s *consoleSink) DrawBorder(x, y, w, h int) {}

func (s *consoleSink) DrawSelectionHighlight(col, row int, cellW, cellH float64, offX, offY int) {}

func (s *consoleSink) DrawImage(img *imgpkg.TerminalImage, x, y, w, h int) {}
