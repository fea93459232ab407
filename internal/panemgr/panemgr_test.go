package panemgr

import (
	"testing"

	"github.com/quietcompute/splitterm/internal/layout"
)

const testShell = "/bin/sh"

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := New(80, 24, 1000, testShell)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return m
}

func TestNewManagerSinglePane(t *testing.T) {
	m := newTestManager(t)
	if m.ActivePaneID() != 0 {
		t.Fatalf("ActivePaneID() = %d, want 0", m.ActivePaneID())
	}
	if len(m.Panes()) != 1 {
		t.Fatalf("len(Panes()) = %d, want 1", len(m.Panes()))
	}
	p, ok := m.ActivePane()
	if !ok || !p.IsActive() {
		t.Fatal("expected the single pane to be active")
	}
}

func TestSetActivePaneSwitchesFocus(t *testing.T) {
	m := newTestManager(t)
	window := layout.Rect{X: 0, Y: 0, Width: 800, Height: 600}
	newID, err := m.SplitActivePane(layout.Vertical, window, 10, 20)
	if err != nil {
		t.Fatalf("SplitActivePane() error = %v", err)
	}

	if !m.SetActivePane(newID) {
		t.Fatal("expected SetActivePane to succeed for the new pane")
	}
	if m.ActivePaneID() != newID {
		t.Fatalf("ActivePaneID() = %d, want %d", m.ActivePaneID(), newID)
	}

	old, _ := m.Pane(0)
	if old.IsActive() {
		t.Fatal("expected previously active pane to be deactivated")
	}
}

func TestSetActivePaneUnknownIDFails(t *testing.T) {
	m := newTestManager(t)
	if m.SetActivePane(99) {
		t.Fatal("expected SetActivePane to fail for an unknown pane")
	}
}

func TestSplitActivePaneAddsPaneAndResizes(t *testing.T) {
	m := newTestManager(t)
	window := layout.Rect{X: 0, Y: 0, Width: 800, Height: 400}

	newID, err := m.SplitActivePaneWithRatio(layout.Vertical, window, 10, 20, 0.25)
	if err != nil {
		t.Fatalf("SplitActivePaneWithRatio() error = %v", err)
	}
	if len(m.Panes()) != 2 {
		t.Fatalf("len(Panes()) = %d, want 2", len(m.Panes()))
	}
	if _, ok := m.Pane(newID); !ok {
		t.Fatal("expected new pane to be present in the manager")
	}
}

func TestClosePaneRefusesLastPane(t *testing.T) {
	m := newTestManager(t)
	window := layout.Rect{X: 0, Y: 0, Width: 800, Height: 600}

	closed, err := m.ClosePane(0, window, 10, 20)
	if err != nil {
		t.Fatalf("ClosePane() error = %v", err)
	}
	if closed {
		t.Fatal("expected ClosePane to refuse closing the only pane")
	}
}

func TestClosePaneReassignsActiveFocus(t *testing.T) {
	m := newTestManager(t)
	window := layout.Rect{X: 0, Y: 0, Width: 800, Height: 600}

	newID, err := m.SplitActivePane(layout.Horizontal, window, 10, 20)
	if err != nil {
		t.Fatalf("SplitActivePane() error = %v", err)
	}
	m.SetActivePane(newID)

	closed, err := m.ClosePane(newID, window, 10, 20)
	if err != nil {
		t.Fatalf("ClosePane() error = %v", err)
	}
	if !closed {
		t.Fatal("expected ClosePane to succeed with more than one pane present")
	}
	if m.ActivePaneID() == newID {
		t.Fatal("expected focus to move off the closed pane")
	}
	if len(m.Panes()) != 1 {
		t.Fatalf("len(Panes()) = %d, want 1", len(m.Panes()))
	}
}

func TestFocusDirectionTiesBreakByAscendingPaneID(t *testing.T) {
	m := newTestManager(t)
	window := layout.Rect{X: 0, Y: 0, Width: 800, Height: 600}

	if _, err := m.SplitActivePaneWithRatio(layout.Horizontal, window, 10, 20, 0.5); err != nil {
		t.Fatalf("first split: %v", err)
	}
	// Splitting the active pane again (rather than its new sibling) nests
	// the new pane under the first split: the tree is now
	// Branch{Branch{Leaf0, Leaf2}, Leaf1}, whose pre-order traversal visits
	// pane 2 before pane 1 despite pane 1 having the lower ID.
	if _, err := m.SplitActivePaneWithRatio(layout.Vertical, window, 10, 20, 0.75); err != nil {
		t.Fatalf("second split: %v", err)
	}

	// At this ratio, panes 1 and 2 sit at equal Manhattan distance to the
	// right of pane 0's center, so the tie must resolve to the lower ID
	// (pane 1), not the traversal-first candidate (pane 2).
	if !m.FocusDirection(window, DirRight) {
		t.Fatal("expected FocusDirection to find a pane to the right")
	}
	if m.ActivePaneID() != 1 {
		t.Fatalf("ActivePaneID() = %d, want 1 (ascending-id tie-break, not traversal order)", m.ActivePaneID())
	}
}

func TestFocusDirectionAcrossNestedSplits(t *testing.T) {
	m := newTestManager(t)
	window := layout.Rect{X: 0, Y: 0, Width: 100, Height: 100}

	// Pane 0 on top, panes 1 and 2 side by side below.
	id1, err := m.SplitActivePane(layout.Horizontal, window, 1, 1)
	if err != nil {
		t.Fatalf("horizontal split: %v", err)
	}
	m.SetActivePane(id1)
	if _, err := m.SplitActivePane(layout.Vertical, window, 1, 1); err != nil {
		t.Fatalf("vertical split: %v", err)
	}

	m.SetActivePane(1)
	if !m.FocusDirection(window, DirRight) {
		t.Fatal("expected a pane to the right of pane 1")
	}
	if m.ActivePaneID() != 2 {
		t.Fatalf("after focus right, active = %d, want 2", m.ActivePaneID())
	}

	if !m.FocusDirection(window, DirUp) {
		t.Fatal("expected a pane above pane 2")
	}
	if m.ActivePaneID() != 0 {
		t.Fatalf("after focus up, active = %d, want 0", m.ActivePaneID())
	}
}

func TestFocusNextWraps(t *testing.T) {
	m := newTestManager(t)
	window := layout.Rect{X: 0, Y: 0, Width: 800, Height: 600}
	id1, _ := m.SplitActivePane(layout.Vertical, window, 10, 20)

	if !m.FocusNext() {
		t.Fatal("expected FocusNext to succeed with two panes")
	}
	after := m.ActivePaneID()
	if !m.FocusNext() {
		t.Fatal("expected FocusNext to succeed again")
	}
	if m.ActivePaneID() == after {
		t.Fatal("expected FocusNext to wrap back around")
	}

	_ = id1
}

func TestFocusNextSinglePaneNoop(t *testing.T) {
	m := newTestManager(t)
	if m.FocusNext() {
		t.Fatal("FocusNext should report false with only one pane")
	}
}

func TestToggleBroadcastAndWriteInputDoesNotPanic(t *testing.T) {
	m := newTestManager(t)
	if m.IsBroadcastEnabled() {
		t.Fatal("broadcast should start disabled")
	}
	m.ToggleBroadcast()
	if !m.IsBroadcastEnabled() {
		t.Fatal("expected broadcast enabled after toggle")
	}

	if err := m.WriteInput([]byte("echo hi\n")); err != nil {
		t.Fatalf("WriteInput() error = %v", err)
	}
}

func TestIsNearBorderAndUpdateBorderAt(t *testing.T) {
	m := newTestManager(t)
	window := layout.Rect{X: 0, Y: 0, Width: 100, Height: 50}
	_, err := m.SplitActivePaneWithRatio(layout.Vertical, window, 1, 1, 0.5)
	if err != nil {
		t.Fatalf("SplitActivePaneWithRatio() error = %v", err)
	}

	if !m.IsNearBorder(50, 25, window) {
		t.Fatal("expected a border near the split line")
	}

	updated, err := m.UpdateBorderAt(50, 25, window, 1, 1)
	if err != nil {
		t.Fatalf("UpdateBorderAt() error = %v", err)
	}
	if !updated {
		t.Fatal("expected UpdateBorderAt to find and move the border")
	}
}
