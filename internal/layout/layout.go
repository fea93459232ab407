// Package layout implements the binary pane-split tree: a recursive sum
// type of leaf panes and ratio-split branches, rectangle calculation, and
// border hit-testing for interactive resize.
package layout

// PaneID identifies a leaf pane within the tree.
type PaneID int

// SplitDirection is the orientation of a Branch's split.
type SplitDirection int

const (
	// Horizontal stacks the two children top/bottom.
	Horizontal SplitDirection = iota
	// Vertical places the two children side by side.
	Vertical
)

// Rect is an axis-aligned pixel rectangle.
type Rect struct {
	X, Y, Width, Height int
}

// Node is a LayoutNode: either a Leaf or a Branch.
type Node interface {
	isNode()
}

// Leaf is a single pane occupying its parent's rectangle.
type Leaf struct {
	PaneID PaneID
}

func (Leaf) isNode() {}

// Branch splits its rectangle between two children at Ratio (the first
// child's share of the split axis, clamped to [0.1, 0.9] both when the split
// is created and when it is interactively adjusted).
type Branch struct {
	Direction SplitDirection
	Ratio     float64
	First     Node
	Second    Node
}

func (*Branch) isNode() {}

// borderTolerance is how close (in pixels) a point must be to a split line
// to count as "near the border" for hit-testing and drag resize.
const borderTolerance = 10

// Layout owns the split tree and the next pane ID to allocate.
type Layout struct {
	root   Node
	nextID PaneID
}

// New creates a layout with a single pane (ID 0).
func New() *Layout {
	return &Layout{root: Leaf{PaneID: 0}, nextID: 1}
}

// Root returns the tree's root node.
func (l *Layout) Root() Node { return l.root }

// NextID allocates and returns the next pane ID.
func (l *Layout) NextID() PaneID {
	id := l.nextID
	l.nextID++
	return id
}

// Split splits the target pane in the given direction at an even 0.5 ratio,
// returning the new pane's ID, or false if target wasn't found.
func (l *Layout) Split(target PaneID, dir SplitDirection) (PaneID, bool) {
	return l.SplitWithRatio(target, dir, 0.5)
}

// SplitWithRatio splits the target pane at the given ratio (the target
// keeps the first/ratio share; the new pane takes the rest). The new ID is
// only consumed on success, so a failed split never burns an ID.
func (l *Layout) SplitWithRatio(target PaneID, dir SplitDirection, ratio float64) (PaneID, bool) {
	newID := l.nextID
	if splitNode(&l.root, target, dir, newID, clampRatio(ratio)) {
		l.nextID++
		return newID, true
	}
	return 0, false
}

func splitNode(node *Node, target PaneID, dir SplitDirection, newID PaneID, ratio float64) bool {
	switch n := (*node).(type) {
	case Leaf:
		if n.PaneID != target {
			return false
		}
		*node = &Branch{
			Direction: dir,
			Ratio:     ratio,
			First:     Leaf{PaneID: n.PaneID},
			Second:    Leaf{PaneID: newID},
		}
		return true
	case *Branch:
		return splitNode(&n.First, target, dir, newID, ratio) ||
			splitNode(&n.Second, target, dir, newID, ratio)
	default:
		return false
	}
}

// Remove deletes target, replacing its parent branch with the sibling. The
// root pane (the last remaining pane) can never be removed.
func (l *Layout) Remove(target PaneID) bool {
	if leaf, ok := l.root.(Leaf); ok {
		if leaf.PaneID == target {
			return false
		}
	}
	return removeNode(&l.root, target)
}

func removeNode(node *Node, target PaneID) bool {
	branch, ok := (*node).(*Branch)
	if !ok {
		return false
	}

	if leaf, ok := branch.First.(Leaf); ok && leaf.PaneID == target {
		*node = branch.Second
		return true
	}
	if leaf, ok := branch.Second.(Leaf); ok && leaf.PaneID == target {
		*node = branch.First
		return true
	}

	return removeNode(&branch.First, target) || removeNode(&branch.Second, target)
}

// PaneRect pairs a pane ID with its on-screen rectangle.
type PaneRect struct {
	PaneID PaneID
	Rect   Rect
}

// CalculateRects returns every pane's rectangle within windowRect.
func (l *Layout) CalculateRects(windowRect Rect) []PaneRect {
	var rects []PaneRect
	calculateNodeRects(l.root, windowRect, &rects)
	return rects
}

func calculateNodeRects(node Node, rect Rect, rects *[]PaneRect) {
	switch n := node.(type) {
	case Leaf:
		*rects = append(*rects, PaneRect{PaneID: n.PaneID, Rect: rect})
	case *Branch:
		first, second := splitRect(rect, n.Direction, n.Ratio)
		calculateNodeRects(n.First, first, rects)
		calculateNodeRects(n.Second, second, rects)
	}
}

func splitRect(rect Rect, dir SplitDirection, ratio float64) (first, second Rect) {
	switch dir {
	case Horizontal:
		firstHeight := int(float64(rect.Height) * ratio)
		secondHeight := satSub(rect.Height, firstHeight)
		first = Rect{X: rect.X, Y: rect.Y, Width: rect.Width, Height: firstHeight}
		second = Rect{X: rect.X, Y: rect.Y + firstHeight, Width: rect.Width, Height: secondHeight}
	case Vertical:
		firstWidth := int(float64(rect.Width) * ratio)
		secondWidth := satSub(rect.Width, firstWidth)
		first = Rect{X: rect.X, Y: rect.Y, Width: firstWidth, Height: rect.Height}
		second = Rect{X: rect.X + firstWidth, Y: rect.Y, Width: secondWidth, Height: rect.Height}
	}
	return
}

func satSub(a, b int) int {
	if b >= a {
		return 0
	}
	return a - b
}

// AllPaneIDs returns every pane ID in the tree, in pre-order.
func (l *Layout) AllPaneIDs() []PaneID {
	var ids []PaneID
	collectPaneIDs(l.root, &ids)
	return ids
}

func collectPaneIDs(node Node, ids *[]PaneID) {
	switch n := node.(type) {
	case Leaf:
		*ids = append(*ids, n.PaneID)
	case *Branch:
		collectPaneIDs(n.First, ids)
		collectPaneIDs(n.Second, ids)
	}
}

// UpdateSplitRatioAt finds the branch whose boundary is near (x, y) and sets
// its ratio to newRatio (clamped to [0.1, 0.9]). Reports whether a boundary
// was found. Ties among overlapping boundaries resolve to the first match in
// pre-order.
func (l *Layout) UpdateSplitRatioAt(x, y int, windowRect Rect, newRatio float64) bool {
	return updateRatioInNode(&l.root, x, y, windowRect, newRatio)
}

func updateRatioInNode(node *Node, x, y int, rect Rect, newRatio float64) bool {
	branch, ok := (*node).(*Branch)
	if !ok {
		return false
	}

	if nearBoundary(branch.Direction, branch.Ratio, rect, x, y) {
		branch.Ratio = clampRatio(newRatio)
		return true
	}

	first, second := splitRect(rect, branch.Direction, branch.Ratio)
	return updateRatioInNode(&branch.First, x, y, first, newRatio) ||
		updateRatioInNode(&branch.Second, x, y, second, newRatio)
}

func clampRatio(r float64) float64 {
	if r < 0.1 {
		return 0.1
	}
	if r > 0.9 {
		return 0.9
	}
	return r
}

func nearBoundary(dir SplitDirection, ratio float64, rect Rect, x, y int) bool {
	switch dir {
	case Horizontal:
		splitY := rect.Y + int(float64(rect.Height)*ratio)
		return y >= splitY-borderTolerance && y <= splitY+borderTolerance
	case Vertical:
		splitX := rect.X + int(float64(rect.Width)*ratio)
		return x >= splitX-borderTolerance && x <= splitX+borderTolerance
	}
	return false
}

// Border describes a branch boundary found near a point.
type Border struct {
	Direction SplitDirection
	Ratio     float64
}

// FindBorderAt reports the first branch boundary, in pre-order, that lies
// within borderTolerance pixels of (x, y), if any. It is not necessarily the
// closest one.
func (l *Layout) FindBorderAt(x, y int, windowRect Rect) (Border, bool) {
	return findBorderInNode(l.root, x, y, windowRect)
}

func findBorderInNode(node Node, x, y int, rect Rect) (Border, bool) {
	branch, ok := node.(*Branch)
	if !ok {
		return Border{}, false
	}

	if nearBoundary(branch.Direction, branch.Ratio, rect, x, y) {
		return Border{Direction: branch.Direction, Ratio: branch.Ratio}, true
	}

	first, second := splitRect(rect, branch.Direction, branch.Ratio)
	if b, ok := findBorderInNode(branch.First, x, y, first); ok {
		return b, true
	}
	return findBorderInNode(branch.Second, x, y, second)
}
