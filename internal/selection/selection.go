// Package selection implements mouse-drag text selection over a Grid:
// start/end positions, activation on drag, and extraction of the covered
// text.
package selection

import (
	"strings"

	"github.com/quietcompute/splitterm/internal/grid"
)

// Pos is a (col, row) cell position.
type Pos struct {
	Col, Row int
}

// Selection tracks a drag-selected span of cells. It becomes active only
// once the end position diverges from the start, so a plain click never
// selects anything.
type Selection struct {
	Start  Pos
	End    Pos
	Active bool
}

// New creates an empty, inactive selection.
func New() *Selection {
	return &Selection{}
}

// StartAt begins a selection at (col, row). It stays inactive until
// UpdateEnd moves away from this point.
func (s *Selection) StartAt(col, row int) {
	s.Start = Pos{col, row}
	s.End = Pos{col, row}
	s.Active = false
}

// UpdateEnd moves the selection's end position, activating the selection
// once it differs from the start.
func (s *Selection) UpdateEnd(col, row int) {
	s.End = Pos{col, row}
	if s.Start != s.End {
		s.Active = true
	}
}

// Clear deactivates the selection and resets both endpoints to the origin.
func (s *Selection) Clear() {
	s.Active = false
	s.Start = Pos{}
	s.End = Pos{}
}

// Contains reports whether (col, row) falls within the selected span.
func (s *Selection) Contains(col, row int) bool {
	if !s.Active {
		return false
	}

	start, end := s.normalized()

	if row < start.Row || row > end.Row {
		return false
	}

	if start.Row == end.Row {
		return col >= start.Col && col <= end.Col
	}

	switch row {
	case start.Row:
		return col >= start.Col
	case end.Row:
		return col <= end.Col
	default:
		return true
	}
}

func (s *Selection) normalized() (start, end Pos) {
	if s.Start.Row < s.End.Row || (s.Start.Row == s.End.Row && s.Start.Col <= s.End.Col) {
		return s.Start, s.End
	}
	return s.End, s.Start
}

// GetText extracts the selected text from g, joining rows with newlines.
func (s *Selection) GetText(g *grid.Grid) string {
	if !s.Active {
		return ""
	}

	start, end := s.normalized()

	var b strings.Builder
	for row := start.Row; row <= end.Row; row++ {
		if row >= g.Rows() {
			break
		}

		rowStart := 0
		if row == start.Row {
			rowStart = start.Col
		}
		rowEnd := g.Cols() - 1
		if row == end.Row {
			rowEnd = end.Col
		}

		for col := rowStart; col <= rowEnd; col++ {
			if col >= g.Cols() {
				break
			}
			if cell, ok := g.Get(col, row); ok && cell.Ch != 0 {
				b.WriteRune(cell.Ch)
			}
		}

		if row < end.Row {
			b.WriteByte('\n')
		}
	}

	return b.String()
}
