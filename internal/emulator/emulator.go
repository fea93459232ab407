// Package emulator implements the VT/ANSI terminal emulator: a Grid plus
// cursor and SGR state driven by vtparse callbacks.
package emulator

import (
	"image"

	"github.com/quietcompute/splitterm/internal/color"
	"github.com/quietcompute/splitterm/internal/grid"
	imgpkg "github.com/quietcompute/splitterm/internal/image"
	"github.com/quietcompute/splitterm/internal/vtparse"
)

const tabStop = 8

// CursorState is a snapshot of the cursor for rendering.
type CursorState struct {
	Col, Row int
	Visible  bool
}

// Emulator owns a Grid, the cursor, current SGR rendition, and the image
// sniffers, and feeds them from a vtparse.Parser driven over a raw byte
// stream.
type Emulator struct {
	g *grid.Grid

	cursorCol, cursorRow int
	cursorVisible        bool

	fg, bg      color.Color
	attrs       grid.CellAttributes
	savedCursor *CursorState

	parser *vtparse.Parser

	kitty  *imgpkg.KittyParser
	sixel  *imgpkg.SixelParser
	images []imgpkg.TerminalImage

	cellWidthPx, cellHeightPx float64
}

// New creates an emulator over a cols x rows grid with the given scrollback
// capacity (in rows).
func New(cols, rows, scrollback int) *Emulator {
	e := &Emulator{
		g:             grid.New(cols, rows, scrollback),
		cursorVisible: true,
		fg:            color.White,
		bg:            color.Black,
		kitty:         imgpkg.NewKittyParser(),
		sixel:         imgpkg.NewSixelParser(),
		cellWidthPx:   10.0,
		cellHeightPx:  20.0,
	}
	e.parser = vtparse.New(vtparse.Handler{
		Print:     e.print,
		Execute:   e.execute,
		HandleCsi: e.csiDispatch,
		HandleEsc: e.escDispatch,
		HandleOsc: e.oscDispatch,
	})
	return e
}

// Grid returns the underlying cell grid.
func (e *Emulator) Grid() *grid.Grid { return e.g }

// CursorPosition returns the current cursor column and row.
func (e *Emulator) CursorPosition() (col, row int) { return e.cursorCol, e.cursorRow }

// CursorVisible reports whether the cursor should be drawn.
func (e *Emulator) CursorVisible() bool { return e.cursorVisible }

// Cursor returns a snapshot of the cursor for rendering.
func (e *Emulator) Cursor() CursorState {
	return CursorState{Col: e.cursorCol, Row: e.cursorRow, Visible: e.cursorVisible}
}

// SetCellSize sets the pixel dimensions used to convert an image's pixel
// size into a cell span.
func (e *Emulator) SetCellSize(w, h float64) {
	if w > 0 {
		e.cellWidthPx = w
	}
	if h > 0 {
		e.cellHeightPx = h
	}
}

// Resize changes the grid dimensions and clamps the cursor back on screen.
func (e *Emulator) Resize(cols, rows int) {
	e.g.Resize(cols, rows)
	if e.cursorCol > cols-1 {
		e.cursorCol = max0(cols - 1)
	}
	if e.cursorRow > rows-1 {
		e.cursorRow = max0(rows - 1)
	}
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// Images returns the images decoded so far.
func (e *Emulator) Images() []imgpkg.TerminalImage { return e.images }

// ProcessBytes feeds a chunk of PTY output through the VT parser and the
// image sniffers.
func (e *Emulator) ProcessBytes(data []byte) {
	for _, b := range data {
		e.parser.Advance(b)
		if img, ok := e.kitty.ProcessByte(b); ok {
			e.addImage(img)
		}
		if img, ok := e.sixel.ProcessByte(b); ok {
			e.addImage(img)
		}
	}
}

func (e *Emulator) addImage(img image.Image) {
	bounds := img.Bounds()
	widthCells := max1(ceilDiv(float64(bounds.Dx()), e.cellWidthPx))
	heightCells := max1(ceilDiv(float64(bounds.Dy()), e.cellHeightPx))

	e.images = append(e.images, imgpkg.TerminalImage{
		Image:       img,
		Row:         e.cursorRow,
		Col:         e.cursorCol,
		WidthCells:  widthCells,
		HeightCells: heightCells,
	})

	e.cursorRow += heightCells
	if e.cursorRow >= e.g.Rows() {
		e.cursorRow = e.g.Rows() - 1
	}
}

func ceilDiv(n, d float64) int {
	if d <= 0 {
		return 1
	}
	q := n / d
	i := int(q)
	if float64(i) < q {
		i++
	}
	return i
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func (e *Emulator) print(r rune) {
	if e.cursorCol >= e.g.Cols() {
		e.cursorCol = 0
		e.cursorRow++
		if e.cursorRow >= e.g.Rows() {
			e.g.ScrollUp(1)
			e.cursorRow = e.g.Rows() - 1
		}
	}

	e.g.Set(e.cursorCol, e.cursorRow, grid.Cell{
		Ch:         r,
		Foreground: e.fg,
		Background: e.bg,
		Attrs:      e.attrs,
	})
	e.cursorCol++
}

func (e *Emulator) execute(b byte) {
	switch b {
	case '\n':
		e.lineFeed()
	case '\r':
		e.cursorCol = 0
	case '\b':
		if e.cursorCol > 0 {
			e.cursorCol--
		}
	case '\t':
		e.cursorCol = ((e.cursorCol / tabStop) + 1) * tabStop
		if e.cursorCol >= e.g.Cols() {
			e.cursorCol = e.g.Cols() - 1
		}
	case 0x07: // BEL
	}
}

func (e *Emulator) lineFeed() {
	e.cursorRow++
	if e.cursorRow >= e.g.Rows() {
		e.g.ScrollUp(1)
		e.cursorRow = e.g.Rows() - 1
	}
}

func (e *Emulator) escDispatch(intermediate, final byte) {
	switch final {
	case 'c': // RIS - reset to initial state
		e.g.Clear()
		e.cursorCol, e.cursorRow = 0, 0
		e.cursorVisible = true
		e.fg, e.bg = color.White, color.Black
		e.attrs = grid.CellAttributes{}
		e.savedCursor = nil
		e.images = nil
	}
}

func (e *Emulator) csiDispatch(params vtparse.Params, intermediate, final byte) {
	switch final {
	case 'H', 'f':
		row := params.ParamOr(0, 1)
		col := params.ParamOr(1, 1)
		e.cursorRow = clamp(row-1, 0, e.g.Rows()-1)
		e.cursorCol = clamp(col-1, 0, e.g.Cols()-1)
	case 'A':
		n := params.ParamOr(0, 1)
		e.cursorRow = clamp(e.cursorRow-n, 0, e.g.Rows()-1)
	case 'B':
		n := params.ParamOr(0, 1)
		e.cursorRow = clamp(e.cursorRow+n, 0, e.g.Rows()-1)
	case 'C':
		n := params.ParamOr(0, 1)
		e.cursorCol = clamp(e.cursorCol+n, 0, e.g.Cols()-1)
	case 'D':
		n := params.ParamOr(0, 1)
		e.cursorCol = clamp(e.cursorCol-n, 0, e.g.Cols()-1)
	case 'J':
		e.eraseInDisplay(params.ParamOr(0, 0))
	case 'K':
		e.eraseInLine(params.ParamOr(0, 0))
	case 'm':
		e.setSGR(params)
	case 's':
		cs := e.Cursor()
		e.savedCursor = &cs
	case 'u':
		if e.savedCursor != nil {
			e.cursorCol, e.cursorRow = e.savedCursor.Col, e.savedCursor.Row
		}
	}
}

func clamp(v, lo, hi int) int {
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

func (e *Emulator) eraseInDisplay(mode int) {
	switch mode {
	case 0:
		for col := e.cursorCol; col < e.g.Cols(); col++ {
			e.g.Set(col, e.cursorRow, grid.Blank())
		}
		for row := e.cursorRow + 1; row < e.g.Rows(); row++ {
			e.g.ClearRow(row)
		}
	case 1:
		for row := 0; row < e.cursorRow; row++ {
			e.g.ClearRow(row)
		}
		for col := 0; col <= e.cursorCol; col++ {
			e.g.Set(col, e.cursorRow, grid.Blank())
		}
	case 2, 3:
		e.g.Clear()
	}
}

func (e *Emulator) eraseInLine(mode int) {
	switch mode {
	case 0:
		for col := e.cursorCol; col < e.g.Cols(); col++ {
			e.g.Set(col, e.cursorRow, grid.Blank())
		}
	case 1:
		for col := 0; col <= e.cursorCol; col++ {
			e.g.Set(col, e.cursorRow, grid.Blank())
		}
	case 2:
		e.g.ClearRow(e.cursorRow)
	}
}

func (e *Emulator) setSGR(params vtparse.Params) {
	if params.Len() == 0 {
		e.fg, e.bg = color.White, color.Black
		e.attrs = grid.CellAttributes{}
		return
	}

	for i := 0; i < params.Len(); i++ {
		n := params.Raw(i)
		switch {
		case n == 0:
			e.fg, e.bg = color.White, color.Black
			e.attrs = grid.CellAttributes{}
		case n == 1:
			e.attrs.Bold = true
		case n == 3:
			e.attrs.Italic = true
		case n == 4:
			e.attrs.Underline = true
		case n == 7:
			e.attrs.Inverse = true
		case n == 22:
			e.attrs.Bold = false
		case n == 23:
			e.attrs.Italic = false
		case n == 24:
			e.attrs.Underline = false
		case n == 27:
			e.attrs.Inverse = false
		case n >= 30 && n <= 37:
			e.fg = color.Ansi256(uint8(n - 30))
		case n >= 90 && n <= 97:
			e.fg = color.Ansi256(uint8(n - 90 + 8))
		case n >= 40 && n <= 47:
			e.bg = color.Ansi256(uint8(n - 40))
		case n >= 100 && n <= 107:
			e.bg = color.Ansi256(uint8(n - 100 + 8))
		case n == 38:
			if i+2 < params.Len() && params.Raw(i+1) == 5 {
				e.fg = color.Ansi256(uint8(params.Raw(i + 2)))
				i += 2
			}
		case n == 48:
			if i+2 < params.Len() && params.Raw(i+1) == 5 {
				e.bg = color.Ansi256(uint8(params.Raw(i + 2)))
				i += 2
			}
		case n == 39:
			e.fg = color.White
		case n == 49:
			e.bg = color.Black
		}
	}
}

// oscDispatch is a deliberate no-op: window title, default-color query, and
// hyperlink OSC sequences are terminal chrome owned by the host
// application, not cell-grid state.
func (e *Emulator) oscDispatch(data []byte) {}
