package grid

import "github.com/quietcompute/splitterm/internal/color"

// CellAttributes carries the SGR rendition flags that apply to a cell.
type CellAttributes struct {
	Bold      bool
	Italic    bool
	Underline bool
	Inverse   bool
}

// Cell is a single grid position: one rune plus its rendition.
type Cell struct {
	Ch         rune
	Foreground color.Color
	Background color.Color
	Attrs      CellAttributes
}

// Blank returns the default empty cell: a space on the default palette, with
// no attributes set.
func Blank() Cell {
	return Cell{
		Ch:         ' ',
		Foreground: color.White,
		Background: color.Black,
	}
}
