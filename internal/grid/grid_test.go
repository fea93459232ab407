package grid

import "testing"

func TestNewGridAllBlank(t *testing.T) {
	g := New(10, 5, 100)
	if g.Cols() != 10 || g.Rows() != 5 {
		t.Fatalf("dims = (%d,%d), want (10,5)", g.Cols(), g.Rows())
	}
	for row := 0; row < 5; row++ {
		for col := 0; col < 10; col++ {
			c, ok := g.Get(col, row)
			if !ok || c != Blank() {
				t.Fatalf("Get(%d,%d) = %+v,%v, want blank,true", col, row, c, ok)
			}
		}
	}
	if !g.NeedsFullRedraw() {
		t.Error("new grid should need full redraw")
	}
}

func TestSetOnlyDirtiesOnChange(t *testing.T) {
	g := New(4, 4, 10)
	g.ClearDirty()

	g.Set(1, 1, Blank()) // identical write, must not dirty
	if len(g.DirtyCells()) != 0 {
		t.Fatalf("identical Set dirtied cells: %v", g.DirtyCells())
	}

	cell := Cell{Ch: 'x'}
	g.Set(1, 1, cell)
	if _, dirty := g.DirtyCells()[Pos{1, 1}]; !dirty {
		t.Fatal("changed Set did not mark cell dirty")
	}
	if len(g.DirtyCells()) != 1 {
		t.Fatalf("expected exactly 1 dirty cell, got %d", len(g.DirtyCells()))
	}
}

func TestSetOutOfBoundsIgnored(t *testing.T) {
	g := New(4, 4, 10)
	g.Set(-1, 0, Cell{Ch: 'x'})
	g.Set(0, 4, Cell{Ch: 'x'})
	g.Set(4, 0, Cell{Ch: 'x'})
	if len(g.DirtyCells()) != 0 {
		t.Fatalf("out-of-bounds Set dirtied cells: %v", g.DirtyCells())
	}
}

func TestResizeDiscardsContentAndForcesRedraw(t *testing.T) {
	g := New(4, 4, 10)
	g.Set(0, 0, Cell{Ch: 'x'})
	g.ClearDirty()

	g.Resize(8, 2)
	if g.Cols() != 8 || g.Rows() != 2 {
		t.Fatalf("dims after resize = (%d,%d), want (8,2)", g.Cols(), g.Rows())
	}
	if len(g.cells) != 16 {
		t.Fatalf("cells len = %d, want cols*rows=16", len(g.cells))
	}
	if !g.NeedsFullRedraw() {
		t.Error("resize must force full redraw")
	}
	c, _ := g.Get(0, 0)
	if c != Blank() {
		t.Error("resize must discard prior content")
	}
}

func TestScrollUpMovesTopRowsToScrollback(t *testing.T) {
	g := New(3, 3, 10)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			g.Set(col, row, Cell{Ch: rune('0' + row)})
		}
	}
	g.ClearDirty()

	g.ScrollUp(1)

	if g.ScrollbackLen() != 1 {
		t.Fatalf("ScrollbackLen = %d, want 1", g.ScrollbackLen())
	}
	// Row 0 (was row 1) should now hold what was row 1's content.
	c, _ := g.Get(0, 0)
	if c.Ch != '1' {
		t.Errorf("row 0 after scroll = %q, want '1'", c.Ch)
	}
	// Bottom row must be blanked.
	c, _ = g.Get(0, 2)
	if c != Blank() {
		t.Errorf("bottom row after scroll = %+v, want blank", c)
	}
	if !g.NeedsFullRedraw() {
		t.Error("scroll must force full redraw")
	}
}

func TestScrollUpMultipleRowsKeepsScrollbackOrder(t *testing.T) {
	g := New(2, 4, 10)
	for row := 0; row < 4; row++ {
		g.Set(0, row, Cell{Ch: rune('0' + row)})
	}

	g.ScrollUp(2)

	if g.ScrollbackLen() != 2 {
		t.Fatalf("ScrollbackLen = %d, want 2", g.ScrollbackLen())
	}
	// The evicted rows must land in scrollback oldest-first.
	if g.scrollback[0][0].Ch != '0' || g.scrollback[1][0].Ch != '1' {
		t.Errorf("scrollback rows = %q,%q, want '0','1'",
			g.scrollback[0][0].Ch, g.scrollback[1][0].Ch)
	}
	c, _ := g.Get(0, 0)
	if c.Ch != '2' {
		t.Errorf("row 0 after ScrollUp(2) = %q, want '2'", c.Ch)
	}
	for row := 2; row < 4; row++ {
		c, _ := g.Get(0, row)
		if c != Blank() {
			t.Errorf("row %d should be blank after ScrollUp(2)", row)
		}
	}
}

func TestScrollUpNoOpEdges(t *testing.T) {
	g := New(3, 3, 10)
	g.Set(0, 0, Cell{Ch: 'a'})
	g.ClearDirty()

	g.ScrollUp(0)
	if len(g.DirtyCells()) != 0 || g.NeedsFullRedraw() {
		t.Error("ScrollUp(0) must be a no-op")
	}

	g.ScrollUp(3) // >= rows
	c, _ := g.Get(0, 0)
	if c.Ch != 'a' {
		t.Error("ScrollUp(lines>=rows) must be a no-op")
	}
}

func TestScrollbackCapEviction(t *testing.T) {
	g := New(2, 2, 1) // max_scrollback = 1
	g.Set(0, 0, Cell{Ch: 'a'})
	g.ScrollUp(1)
	g.Set(0, 0, Cell{Ch: 'b'})
	g.ScrollUp(1)

	if g.ScrollbackLen() != 1 {
		t.Fatalf("ScrollbackLen = %d, want capped at 1", g.ScrollbackLen())
	}
}

func TestScrollDownBlanksTopShiftsDown(t *testing.T) {
	g := New(2, 3, 10)
	for row := 0; row < 3; row++ {
		g.Set(0, row, Cell{Ch: rune('0' + row)})
	}
	g.ClearDirty()

	g.ScrollDown(1)

	c, _ := g.Get(0, 0)
	if c != Blank() {
		t.Errorf("top row after scroll down = %+v, want blank", c)
	}
	c, _ = g.Get(0, 1)
	if c.Ch != '0' {
		t.Errorf("row 1 after scroll down = %q, want '0'", c.Ch)
	}
}

func TestClearRowMarksEntireRowDirty(t *testing.T) {
	g := New(3, 2, 10)
	g.Set(0, 1, Cell{Ch: 'x'})
	g.ClearDirty()

	g.ClearRow(1)
	for col := 0; col < 3; col++ {
		if _, dirty := g.DirtyCells()[Pos{col, 1}]; !dirty {
			t.Errorf("col %d of cleared row not marked dirty", col)
		}
	}
	c, _ := g.Get(0, 1)
	if c != Blank() {
		t.Error("ClearRow did not blank the cell")
	}
}

func TestRowView(t *testing.T) {
	g := New(3, 2, 10)
	g.Set(1, 0, Cell{Ch: 'y'})
	row, ok := g.Row(0)
	if !ok || len(row) != 3 || row[1].Ch != 'y' {
		t.Fatalf("Row(0) = %v,%v, want 3 cells with [1].Ch='y'", row, ok)
	}
	if _, ok := g.Row(5); ok {
		t.Error("Row(5) should report out of bounds")
	}
}
