// Package panemgr owns the set of live panes, their layout tree, and focus
// and broadcast state, and drives per-tick PTY draining across all of them.
package panemgr

import (
	"log"

	"github.com/quietcompute/splitterm/internal/apperror"
	"github.com/quietcompute/splitterm/internal/layout"
	"github.com/quietcompute/splitterm/internal/pane"
)

// direction is a focus-movement direction for FocusDirection.
type direction int

const (
	DirLeft direction = iota
	DirRight
	DirUp
	DirDown
)

// Manager owns every pane, the split layout, and which pane has focus.
type Manager struct {
	panes            map[layout.PaneID]*pane.Pane
	layout           *layout.Layout
	activePaneID     layout.PaneID
	broadcastEnabled bool
	shell            string
	scrollback       int
}

// New creates a manager with a single pane filling the given size.
func New(cols, rows, scrollback int, shell string) (*Manager, error) {
	initial, err := pane.New(0, cols, rows, scrollback, shell)
	if err != nil {
		return nil, err
	}
	initial.SetActive(true)

	return &Manager{
		panes:        map[layout.PaneID]*pane.Pane{0: initial},
		layout:       layout.New(),
		activePaneID: 0,
		shell:        shell,
		scrollback:   scrollback,
	}, nil
}

// ActivePaneID returns the currently focused pane's ID.
func (m *Manager) ActivePaneID() layout.PaneID { return m.activePaneID }

// ActivePane returns the currently focused pane, if it exists.
func (m *Manager) ActivePane() (*pane.Pane, bool) {
	p, ok := m.panes[m.activePaneID]
	return p, ok
}

// Pane returns the pane with the given ID, if it exists.
func (m *Manager) Pane(id layout.PaneID) (*pane.Pane, bool) {
	p, ok := m.panes[id]
	return p, ok
}

// Panes returns every live pane, unordered.
func (m *Manager) Panes() map[layout.PaneID]*pane.Pane { return m.panes }

// Layout returns the split layout tree.
func (m *Manager) Layout() *layout.Layout { return m.layout }

// ActivePaneRect returns the active pane's on-screen rectangle.
func (m *Manager) ActivePaneRect(windowRect layout.Rect) (layout.Rect, bool) {
	for _, pr := range m.layout.CalculateRects(windowRect) {
		if pr.PaneID == m.activePaneID {
			return pr.Rect, true
		}
	}
	return layout.Rect{}, false
}

// IsBroadcastEnabled reports whether input fans out to every pane.
func (m *Manager) IsBroadcastEnabled() bool { return m.broadcastEnabled }

// ToggleBroadcast flips broadcast mode.
func (m *Manager) ToggleBroadcast() {
	m.broadcastEnabled = !m.broadcastEnabled
	log.Printf("broadcast mode: %v", m.broadcastEnabled)
}

// SetActivePane focuses the given pane, if it exists.
func (m *Manager) SetActivePane(id layout.PaneID) bool {
	p, ok := m.panes[id]
	if !ok {
		return false
	}
	if old, ok := m.panes[m.activePaneID]; ok {
		old.SetActive(false)
	}
	m.activePaneID = id
	p.SetActive(true)
	return true
}

// SplitActivePane splits the active pane in the given direction at an even
// ratio, spawning a new pane to fill the freed space.
func (m *Manager) SplitActivePane(dir layout.SplitDirection, windowRect layout.Rect, cellW, cellH float64) (layout.PaneID, error) {
	return m.SplitActivePaneWithRatio(dir, windowRect, cellW, cellH, 0.5)
}

// SplitActivePaneWithRatio splits the active pane at the given ratio.
func (m *Manager) SplitActivePaneWithRatio(dir layout.SplitDirection, windowRect layout.Rect, cellW, cellH, ratio float64) (layout.PaneID, error) {
	activeID := m.activePaneID

	newID, ok := m.layout.SplitWithRatio(activeID, dir, ratio)
	if !ok {
		return 0, apperror.Rendering("failed to split pane in layout", nil)
	}

	rects := m.layout.CalculateRects(windowRect)
	var newRect layout.Rect
	found := false
	for _, pr := range rects {
		if pr.PaneID == newID {
			newRect, found = pr.Rect, true
			break
		}
	}
	if !found {
		return 0, apperror.Rendering("failed to calculate new pane rect", nil)
	}

	cols := cellsFor(newRect.Width, cellW)
	rows := cellsFor(newRect.Height, cellH)
	log.Printf("split active pane %d: new_id=%d, cols=%d, rows=%d, shell=%s", activeID, newID, cols, rows, m.shell)

	newPane, err := pane.New(newID, cols, rows, m.scrollback, m.shell)
	if err != nil {
		log.Printf("failed to create new pane %d: %v", newID, err)
		return 0, err
	}
	m.panes[newID] = newPane

	if err := m.ResizeAllPanes(windowRect, cellW, cellH); err != nil {
		return 0, err
	}

	log.Printf("split pane %d, created pane %d", activeID, newID)
	return newID, nil
}

// ClosePane removes the given pane, refusing if it's the last one.
func (m *Manager) ClosePane(id layout.PaneID, windowRect layout.Rect, cellW, cellH float64) (bool, error) {
	if len(m.panes) <= 1 {
		log.Printf("cannot close the last pane")
		return false, nil
	}

	if !m.layout.Remove(id) {
		log.Printf("failed to remove pane %d from layout", id)
		return false, nil
	}

	if p, ok := m.panes[id]; ok {
		_ = p.Close()
	}
	delete(m.panes, id)

	if m.activePaneID == id {
		for next := range m.panes {
			m.SetActivePane(next)
			break
		}
	}

	if err := m.ResizeAllPanes(windowRect, cellW, cellH); err != nil {
		return false, err
	}

	log.Printf("closed pane %d", id)
	return true, nil
}

// CloseActivePane closes the currently focused pane.
func (m *Manager) CloseActivePane(windowRect layout.Rect, cellW, cellH float64) (bool, error) {
	return m.ClosePane(m.activePaneID, windowRect, cellW, cellH)
}

// ProcessAllPTYOutput drains every pane's PTY output, closing any pane whose
// process has exited. It reports whether any pane produced output, and
// whether the application should exit because the last pane died.
func (m *Manager) ProcessAllPTYOutput(windowRect layout.Rect, cellW, cellH float64) (hasOutput, shouldExit bool, err error) {
	var deadPanes []layout.PaneID

	for id, p := range m.panes {
		out, perr := p.ProcessOutput()
		if perr != nil {
			log.Printf("error processing pty output for pane %d: %v", id, perr)
		}
		hasOutput = hasOutput || out

		if !p.IsAlive() {
			deadPanes = append(deadPanes, id)
		}
	}

	for _, id := range deadPanes {
		log.Printf("pane %d process exited, closing pane", id)

		if len(m.panes) == 1 {
			log.Printf("last pane exited, application should exit")
			return hasOutput, true, nil
		}

		if _, cerr := m.ClosePane(id, windowRect, cellW, cellH); cerr != nil {
			log.Printf("failed to close dead pane %d: %v", id, cerr)
		}
	}

	return hasOutput, false, nil
}

// WriteInput sends data to the active pane, or every pane when broadcast
// mode is enabled.
func (m *Manager) WriteInput(data []byte) error {
	if m.broadcastEnabled {
		for _, p := range m.panes {
			if err := p.WriteInput(data); err != nil {
				return err
			}
		}
		return nil
	}
	if p, ok := m.panes[m.activePaneID]; ok {
		return p.WriteInput(data)
	}
	return nil
}

// ResizeAllPanes recomputes every pane's rectangle from the layout and
// resizes each pane to match.
func (m *Manager) ResizeAllPanes(windowRect layout.Rect, cellW, cellH float64) error {
	for _, pr := range m.layout.CalculateRects(windowRect) {
		p, ok := m.panes[pr.PaneID]
		if !ok {
			log.Printf("pane %d not found in manager", pr.PaneID)
			continue
		}
		cols := cellsFor(pr.Rect.Width, cellW)
		rows := cellsFor(pr.Rect.Height, cellH)
		p.Terminal().SetCellSize(cellW, cellH)
		if err := p.Resize(cols, rows); err != nil {
			return err
		}
	}
	return nil
}

// FocusNext moves focus to the next pane in pre-order.
func (m *Manager) FocusNext() bool { return m.stepFocus(1) }

// FocusPrev moves focus to the previous pane in pre-order.
func (m *Manager) FocusPrev() bool { return m.stepFocus(-1) }

func (m *Manager) stepFocus(delta int) bool {
	ids := m.layout.AllPaneIDs()
	if len(ids) <= 1 {
		return false
	}
	for i, id := range ids {
		if id == m.activePaneID {
			next := (i + delta + len(ids)) % len(ids)
			return m.SetActivePane(ids[next])
		}
	}
	return false
}

// FocusDirection moves focus to the nearest pane in the given direction,
// using Manhattan distance between rect centers.
func (m *Manager) FocusDirection(windowRect layout.Rect, dir direction) bool {
	rects := m.layout.CalculateRects(windowRect)

	var current layout.Rect
	found := false
	for _, pr := range rects {
		if pr.PaneID == m.activePaneID {
			current, found = pr.Rect, true
			break
		}
	}
	if !found {
		return false
	}

	curCX := current.X + current.Width/2
	curCY := current.Y + current.Height/2

	var best layout.PaneID
	bestDist := -1
	haveBest := false

	for _, pr := range rects {
		if pr.PaneID == m.activePaneID {
			continue
		}
		cx := pr.Rect.X + pr.Rect.Width/2
		cy := pr.Rect.Y + pr.Rect.Height/2

		inDirection := false
		switch dir {
		case DirLeft:
			inDirection = cx < curCX
		case DirRight:
			inDirection = cx > curCX
		case DirUp:
			inDirection = cy < curCY
		case DirDown:
			inDirection = cy > curCY
		}
		if !inDirection {
			continue
		}

		dist := absInt(cx-curCX) + absInt(cy-curCY)
		if !haveBest || dist < bestDist || (dist == bestDist && pr.PaneID < best) {
			bestDist = dist
			best = pr.PaneID
			haveBest = true
		}
	}

	if !haveBest {
		return false
	}
	return m.SetActivePane(best)
}

// UpdateBorderAt drags the border found at (x, y) by layout.FindBorderAt to
// match the mouse position, then resizes every pane to match.
func (m *Manager) UpdateBorderAt(x, y int, windowRect layout.Rect, cellW, cellH float64) (bool, error) {
	border, ok := m.layout.FindBorderAt(x, y, windowRect)
	if !ok {
		return false, nil
	}

	var newRatio float64
	switch border.Direction {
	case layout.Horizontal:
		newRatio = clamp01(float64(y-windowRect.Y)/float64(windowRect.Height), 0.1, 0.9)
	case layout.Vertical:
		newRatio = clamp01(float64(x-windowRect.X)/float64(windowRect.Width), 0.1, 0.9)
	}

	if !m.layout.UpdateSplitRatioAt(x, y, windowRect, newRatio) {
		return false, nil
	}

	if err := m.ResizeAllPanes(windowRect, cellW, cellH); err != nil {
		return false, err
	}
	return true, nil
}

// IsNearBorder reports whether (x, y) is near a split boundary.
func (m *Manager) IsNearBorder(x, y int, windowRect layout.Rect) bool {
	_, ok := m.layout.FindBorderAt(x, y, windowRect)
	return ok
}

func cellsFor(pixels int, cellSize float64) int {
	cols := int(float64(pixels) / cellSize)
	if cols < 1 {
		return 1
	}
	return cols
}

func clamp01(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
