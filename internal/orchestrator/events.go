// Package orchestrator wires external input events to the panemgr.Manager
// and selection.Selection, and drives per-tick PTY draining and redraw
// requests against a caller-supplied RenderSink. The windowing event
// source, the pixel-drawing backend, and physical-key decoding remain the
// host frontend's concern; this package only consumes the already-decoded
// Event stream and calls out through RenderSink.
package orchestrator

import (
	"github.com/quietcompute/splitterm/internal/emulator"
	"github.com/quietcompute/splitterm/internal/grid"
	"github.com/quietcompute/splitterm/internal/image"
	"github.com/quietcompute/splitterm/internal/keys"
)

// Event is the sum type of everything the core consumes from the event
// source.
type Event interface{ isEvent() }

// Resize reports a new window size in pixels.
type Resize struct{ Width, Height int }

// Key reports a physical key press or release, already decoded to a
// logical key and modifier set.
type Key struct {
	Key     keys.Key
	Mod     keys.Mod
	Pressed bool
}

// Modifiers reports a standalone modifier-state change (no key attached).
type Modifiers struct{ Mod keys.Mod }

// MouseDown reports a mouse button press at window-pixel coordinates.
type MouseDown struct{ X, Y int }

// MouseUp reports a mouse button release at window-pixel coordinates.
type MouseUp struct{ X, Y int }

// MouseMove reports mouse motion at window-pixel coordinates.
type MouseMove struct{ X, Y int }

// ImeCommit reports text committed by the platform IME.
type ImeCommit struct{ Text string }

// Tick is the periodic scheduler event: the main frame pump, which also
// advances the cursor blink.
type Tick struct{}

func (Resize) isEvent()    {}
func (Key) isEvent()       {}
func (Modifiers) isEvent() {}
func (MouseDown) isEvent() {}
func (MouseUp) isEvent()   {}
func (MouseMove) isEvent() {}
func (ImeCommit) isEvent() {}
func (Tick) isEvent()      {}

// CursorSnapshot is the cursor state handed to RenderPane, mirroring
// emulator.CursorState without exposing the emulator package to callers
// that only need the render contract.
type CursorSnapshot = emulator.CursorState

// RenderSink is the renderer contract: a pixel-drawing backend the
// orchestrator drives once per redraw, never the reverse.
type RenderSink interface {
	CellDimensions() (w, h float64)
	Clear()
	Present()
	RenderPane(g *grid.Grid, cursor CursorSnapshot, offsetX, offsetY, width, height int)
	DrawBorder(x, y, w, h int)
	DrawSelectionHighlight(col, row int, cellW, cellH float64, offX, offY int)
	DrawImage(img *image.TerminalImage, x, y, w, h int)
	SetFontSize(size float64)
}
