package orchestrator

import (
	"time"

	"github.com/quietcompute/splitterm/internal/keys"
	"github.com/quietcompute/splitterm/internal/layout"
	"github.com/quietcompute/splitterm/internal/panemgr"
	"github.com/quietcompute/splitterm/internal/selection"
)

// blinkInterval is the cursor blink period.
const blinkInterval = 500 * time.Millisecond

// Orchestrator wires decoded Events to a panemgr.Manager and a
// selection.Selection, and drives the render loop against a RenderSink.
// It owns no goroutines of its own: the caller's event source invokes
// Handle once per event and Render once per frame, so everything here runs
// on the single main-loop thread.
type Orchestrator struct {
	panes          *panemgr.Manager
	sel            *selection.Selection
	sink           RenderSink
	windowW        int
	windowH        int
	cellW          float64
	cellH          float64
	mods           keys.Mod
	markMode       bool
	fontSize       float64
	selPaneID      layout.PaneID
	selecting      bool
	lastBlink      time.Time
	cursorOn       bool
	draggingBorder bool
}

// defaultFontSize seeds the font-size shortcuts until the host applies its
// configured size via SetFontSize.
const defaultFontSize = 14

// New creates an Orchestrator around an already-constructed pane manager
// and render sink, sized to the given initial window geometry.
func New(panes *panemgr.Manager, sink RenderSink, windowWidth, windowHeight int) *Orchestrator {
	cellW, cellH := sink.CellDimensions()
	return &Orchestrator{
		panes:    panes,
		sel:      selection.New(),
		sink:     sink,
		windowW:  windowWidth,
		windowH:  windowHeight,
		cellW:    cellW,
		cellH:    cellH,
		fontSize: defaultFontSize,
		cursorOn: true,
	}
}

// SetFontSize applies a new font size through the sink, re-reads the
// resulting cell dimensions, and resizes every pane to the new geometry.
func (o *Orchestrator) SetFontSize(size float64) error {
	if size < 1 {
		return nil
	}
	o.fontSize = size
	o.sink.SetFontSize(size)
	o.cellW, o.cellH = o.sink.CellDimensions()
	return o.panes.ResizeAllPanes(o.windowRect(), o.cellW, o.cellH)
}

func (o *Orchestrator) windowRect() layout.Rect {
	return layout.Rect{X: 0, Y: 0, Width: o.windowW, Height: o.windowH}
}

// Handle dispatches one decoded Event. It returns shouldExit=true once the
// last pane's shell has exited, mirroring panemgr.ProcessAllPTYOutput.
func (o *Orchestrator) Handle(ev Event) (shouldExit bool, err error) {
	switch e := ev.(type) {
	case Resize:
		o.windowW, o.windowH = e.Width, e.Height
		err = o.panes.ResizeAllPanes(o.windowRect(), o.cellW, o.cellH)
	case Key:
		if e.Pressed {
			err = o.handleKey(e.Key, e.Mod)
		}
	case Modifiers:
		o.mods = e.Mod
	case MouseDown:
		o.handleMouseDown(e.X, e.Y)
	case MouseUp:
		o.draggingBorder = false
		o.selecting = false
	case MouseMove:
		o.handleMouseMove(e.X, e.Y)
	case ImeCommit:
		err = o.panes.WriteInput([]byte(e.Text))
	case Tick:
		shouldExit, err = o.tick()
	}
	return shouldExit, err
}

func (o *Orchestrator) handleKey(k keys.Key, mod keys.Mod) error {
	if o.markMode && k == keys.KeyEsc && mod == keys.ModNone {
		o.markMode = false
		o.sel.Clear()
		return nil
	}

	if sc := keys.ClassifyShortcut(k, mod); sc != keys.ShortcutNone {
		return o.handleShortcut(sc)
	}

	if o.markMode {
		o.handleMarkModeKey(k)
		return nil
	}

	b, ok := keys.Translate(k, mod)
	if !ok {
		return nil
	}
	return o.panes.WriteInput(b)
}

func (o *Orchestrator) handleShortcut(sc keys.Shortcut) error {
	switch sc {
	case keys.ShortcutFocusLeft:
		o.panes.FocusDirection(o.windowRect(), panemgr.DirLeft)
	case keys.ShortcutFocusRight:
		o.panes.FocusDirection(o.windowRect(), panemgr.DirRight)
	case keys.ShortcutFocusUp:
		o.panes.FocusDirection(o.windowRect(), panemgr.DirUp)
	case keys.ShortcutFocusDown:
		o.panes.FocusDirection(o.windowRect(), panemgr.DirDown)
	case keys.ShortcutFocusNext:
		o.panes.FocusNext()
	case keys.ShortcutFocusPrev:
		o.panes.FocusPrev()
	case keys.ShortcutSplitVertical:
		_, err := o.panes.SplitActivePane(layout.Vertical, o.windowRect(), o.cellW, o.cellH)
		return err
	case keys.ShortcutSplitHorizontal:
		_, err := o.panes.SplitActivePane(layout.Horizontal, o.windowRect(), o.cellW, o.cellH)
		return err
	case keys.ShortcutClosePane:
		_, err := o.panes.CloseActivePane(o.windowRect(), o.cellW, o.cellH)
		return err
	case keys.ShortcutToggleBroadcast:
		o.panes.ToggleBroadcast()
	case keys.ShortcutToggleMarkMode:
		o.markMode = !o.markMode
		if o.markMode {
			o.beginMarkSelection()
		} else {
			o.sel.Clear()
		}
	case keys.ShortcutFontIncrease:
		return o.SetFontSize(o.fontSize + 1)
	case keys.ShortcutFontDecrease:
		return o.SetFontSize(o.fontSize - 1)
	case keys.ShortcutCopy, keys.ShortcutPaste, keys.ShortcutToggleHelp:
		// Clipboard integration and the help overlay belong to the host
		// frontend; the orchestrator only classifies the shortcut for it
		// to act on (SelectedText feeds the copy path).
	}
	return nil
}

// beginMarkSelection anchors the selection at the active pane's cursor, so
// the first arrow-key move in mark mode extends from where the user is.
func (o *Orchestrator) beginMarkSelection() {
	p, ok := o.panes.ActivePane()
	if !ok {
		return
	}
	col, row := p.Terminal().CursorPosition()
	o.selPaneID = p.ID()
	o.sel.StartAt(col, row)
}

// handleMarkModeKey moves the selection's active endpoint by arrow keys in
// mark mode, per the glossary's "keyboard-driven selection".
func (o *Orchestrator) handleMarkModeKey(k keys.Key) {
	p, ok := o.panes.Pane(o.selPaneID)
	if !ok {
		return
	}
	col, row := o.sel.End.Col, o.sel.End.Row
	switch k {
	case keys.KeyUp:
		row--
	case keys.KeyDown:
		row++
	case keys.KeyLeft:
		col--
	case keys.KeyRight:
		col++
	default:
		return
	}
	g := p.Terminal().Grid()
	col = clampInt(col, 0, g.Cols()-1)
	row = clampInt(row, 0, g.Rows()-1)
	o.sel.UpdateEnd(col, row)
}

// cellAt maps a window-pixel position to the pane under it and the cell
// within that pane's grid.
func (o *Orchestrator) cellAt(x, y int) (id layout.PaneID, col, row int, ok bool) {
	for _, pr := range o.panes.Layout().CalculateRects(o.windowRect()) {
		r := pr.Rect
		if x < r.X || x >= r.X+r.Width || y < r.Y || y >= r.Y+r.Height {
			continue
		}
		col = int(float64(x-r.X) / o.cellW)
		row = int(float64(y-r.Y) / o.cellH)
		return pr.PaneID, col, row, true
	}
	return 0, 0, 0, false
}

func (o *Orchestrator) handleMouseDown(x, y int) {
	if o.panes.IsNearBorder(x, y, o.windowRect()) {
		o.draggingBorder = true
		return
	}
	id, col, row, ok := o.cellAt(x, y)
	if !ok {
		return
	}
	o.selPaneID = id
	o.selecting = true
	o.sel.StartAt(col, row)
}

func (o *Orchestrator) handleMouseMove(x, y int) {
	if o.draggingBorder {
		_, _ = o.panes.UpdateBorderAt(x, y, o.windowRect(), o.cellW, o.cellH)
		return
	}
	if !o.selecting {
		return
	}
	id, col, row, ok := o.cellAt(x, y)
	if !ok || id != o.selPaneID {
		return
	}
	o.sel.UpdateEnd(col, row)
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// tick drains every pane's PTY output, advances the cursor blink, and
// triggers a redraw when anything changed.
func (o *Orchestrator) tick() (shouldExit bool, err error) {
	hasOutput, shouldExit, err := o.panes.ProcessAllPTYOutput(o.windowRect(), o.cellW, o.cellH)
	if err != nil {
		return shouldExit, err
	}

	blinked := false
	if time.Since(o.lastBlink) >= blinkInterval {
		o.cursorOn = !o.cursorOn
		o.lastBlink = time.Now()
		blinked = true
	}

	if hasOutput || blinked {
		o.Render()
	}
	return shouldExit, nil
}

// Render draws every pane's grid, the active-pane border (when more than
// one pane exists), the selection highlight, and any pending images.
func (o *Orchestrator) Render() {
	o.sink.Clear()

	rects := o.panes.Layout().CalculateRects(o.windowRect())
	multiPane := len(rects) > 1

	for _, pr := range rects {
		p, ok := o.panes.Pane(pr.PaneID)
		if !ok {
			continue
		}

		cursor := p.Terminal().Cursor()
		if !o.cursorOn {
			cursor.Visible = false
		}
		o.sink.RenderPane(p.Terminal().Grid(), cursor, pr.Rect.X, pr.Rect.Y, pr.Rect.Width, pr.Rect.Height)

		for _, img := range p.Terminal().Images() {
			px := pr.Rect.X + int(float64(img.Col)*o.cellW)
			py := pr.Rect.Y + int(float64(img.Row)*o.cellH)
			o.sink.DrawImage(&img, px, py, int(float64(img.WidthCells)*o.cellW), int(float64(img.HeightCells)*o.cellH))
		}

		if multiPane && pr.PaneID == o.panes.ActivePaneID() {
			o.sink.DrawBorder(pr.Rect.X, pr.Rect.Y, pr.Rect.Width, pr.Rect.Height)
		}

		if o.sel.Active && pr.PaneID == o.selPaneID {
			for row := 0; row < p.Terminal().Grid().Rows(); row++ {
				for col := 0; col < p.Terminal().Grid().Cols(); col++ {
					if o.sel.Contains(col, row) {
						x := pr.Rect.X + int(float64(col)*o.cellW)
						y := pr.Rect.Y + int(float64(row)*o.cellH)
						o.sink.DrawSelectionHighlight(col, row, o.cellW, o.cellH, x, y)
					}
				}
			}
		}

		p.ClearRedrawFlag()
	}

	o.sink.Present()
}

// Selection exposes the current selection model, so a caller can extract
// copied text via selection.Selection.GetText.
func (o *Orchestrator) Selection() *selection.Selection { return o.sel }

// SelectedText extracts the text covered by the active selection from the
// grid it was made over. The host hands this to the system clipboard on the
// copy shortcut; the clipboard itself stays external.
func (o *Orchestrator) SelectedText() (string, bool) {
	if !o.sel.Active {
		return "", false
	}
	p, ok := o.panes.Pane(o.selPaneID)
	if !ok {
		return "", false
	}
	return o.sel.GetText(p.Terminal().Grid()), true
}

// Panes exposes the underlying pane manager.
func (o *Orchestrator) Panes() *panemgr.Manager { return o.panes }
