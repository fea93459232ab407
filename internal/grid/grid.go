// Package grid implements the terminal cell buffer: a flat cell array with a
// scrollback ring and per-frame dirty tracking.
package grid

// Pos identifies a cell by column and row.
type Pos struct {
	Col, Row int
}

// Grid is a cols*rows array of cells plus a bounded scrollback of evicted
// rows and the set of cells changed since the last ClearDirty call.
type Grid struct {
	cells         []Cell
	cols, rows    int
	scrollback    [][]Cell
	maxScrollback int
	dirty         map[Pos]struct{}
	fullRedraw    bool
}

// New creates a grid of the given size with cols*rows blank cells.
func New(cols, rows, maxScrollback int) *Grid {
	cells := make([]Cell, cols*rows)
	for i := range cells {
		cells[i] = Blank()
	}
	return &Grid{
		cells:         cells,
		cols:          cols,
		rows:          rows,
		maxScrollback: maxScrollback,
		dirty:         make(map[Pos]struct{}),
		fullRedraw:    true,
	}
}

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Resize changes the grid dimensions, discarding cell content and forcing a
// full redraw. No attempt is made to preserve existing content across a
// dimension change.
func (g *Grid) Resize(cols, rows int) {
	g.cols = cols
	g.rows = rows
	cells := make([]Cell, cols*rows)
	for i := range cells {
		cells[i] = Blank()
	}
	g.cells = cells
	g.fullRedraw = true
	g.dirty = make(map[Pos]struct{})
}

func (g *Grid) inBounds(col, row int) bool {
	return col >= 0 && col < g.cols && row >= 0 && row < g.rows
}

// Get returns the cell at (col, row) and whether it was in bounds.
func (g *Grid) Get(col, row int) (Cell, bool) {
	if !g.inBounds(col, row) {
		return Cell{}, false
	}
	return g.cells[row*g.cols+col], true
}

// Set writes a cell, marking it dirty only if it actually changed.
func (g *Grid) Set(col, row int, cell Cell) {
	if !g.inBounds(col, row) {
		return
	}
	idx := row*g.cols + col
	if g.cells[idx] != cell {
		g.cells[idx] = cell
		g.dirty[Pos{col, row}] = struct{}{}
	}
}

// Clear resets every cell to blank and forces a full redraw.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Blank()
	}
	g.fullRedraw = true
	g.dirty = make(map[Pos]struct{})
}

// ClearRow resets one row to blank cells and marks every cell in it dirty.
func (g *Grid) ClearRow(row int) {
	if row < 0 || row >= g.rows {
		return
	}
	start := row * g.cols
	for i := start; i < start+g.cols; i++ {
		g.cells[i] = Blank()
	}
	for col := 0; col < g.cols; col++ {
		g.dirty[Pos{col, row}] = struct{}{}
	}
}

// ScrollUp moves the top `lines` rows into scrollback (evicting the oldest
// scrollback row once maxScrollback is exceeded), shifts remaining content
// up, and blanks the newly exposed bottom rows. A no-op when lines is 0 or
// would scroll the whole screen away.
func (g *Grid) ScrollUp(lines int) {
	if lines <= 0 || lines >= g.rows {
		return
	}

	for i := 0; i < lines; i++ {
		start := i * g.cols
		line := make([]Cell, g.cols)
		copy(line, g.cells[start:start+g.cols])
		g.scrollback = append(g.scrollback, line)
		if len(g.scrollback) > g.maxScrollback {
			g.scrollback = g.scrollback[1:]
		}
	}

	shift := lines * g.cols
	copy(g.cells, g.cells[shift:])

	clearStart := (g.rows - lines) * g.cols
	for i := clearStart; i < len(g.cells); i++ {
		g.cells[i] = Blank()
	}

	g.fullRedraw = true
	g.dirty = make(map[Pos]struct{})
}

// ScrollDown shifts content down by `lines` rows, discarding the bottom rows
// and blanking the newly exposed top rows. A no-op when lines is 0 or would
// scroll the whole screen away.
func (g *Grid) ScrollDown(lines int) {
	if lines <= 0 || lines >= g.rows {
		return
	}

	shift := lines * g.cols
	copy(g.cells[shift:], g.cells[:g.cols*(g.rows-lines)])

	clearEnd := lines * g.cols
	for i := 0; i < clearEnd; i++ {
		g.cells[i] = Blank()
	}

	g.fullRedraw = true
	g.dirty = make(map[Pos]struct{})
}

// Row returns a slice view of one row's cells.
func (g *Grid) Row(row int) ([]Cell, bool) {
	if row < 0 || row >= g.rows {
		return nil, false
	}
	start := row * g.cols
	return g.cells[start : start+g.cols], true
}

// NeedsFullRedraw reports whether the entire grid must be repainted.
func (g *Grid) NeedsFullRedraw() bool { return g.fullRedraw }

// DirtyCells returns the set of cell positions changed since ClearDirty.
func (g *Grid) DirtyCells() map[Pos]struct{} { return g.dirty }

// ClearDirty clears dirty tracking; call after a frame has been rendered.
func (g *Grid) ClearDirty() {
	g.dirty = make(map[Pos]struct{})
	g.fullRedraw = false
}

// ScrollbackLen returns the number of rows currently retained in scrollback.
func (g *Grid) ScrollbackLen() int { return len(g.scrollback) }
