package editor

import (
	"testing"

	"jmt/core"
	"jmt/geometry"
)

func newTestSession() *Session {
	d := core.NewDiagram(core.DiagramStateMachine, "test")
	return NewSession(d)
}

// TestAlignmentExpandsParent covers aligning two child states to the
// right, where the target line falls outside the parent,
// expands the parent's right edge by the shortfall plus margin and shifts
// a sibling of the parent by the same amount.
func TestAlignmentExpandsParent(t *testing.T) {
	s := newTestSession()
	d := s.Diagram

	p := core.State{ID: core.NewElementId(), Name: "P", Rect: geometry.NewRect(0, 0, 400, 300)}
	d.States = append(d.States, p)
	s.containment.UpdateNodeRegion(p.ID) // no containing state — joins the root region

	c1 := core.State{ID: core.NewElementId(), Rect: geometry.NewRect(20, 40, 80, 60)}
	// c2 already reaches the parent's right edge at x=430, beyond the
	// parent's own width of 400 — Align Right will pull c1 to the same
	// line, and expand_parent_to_contain must widen P to cover both.
	c2 := core.State{ID: core.NewElementId(), Rect: geometry.NewRect(350, 40, 80, 60)}
	d.States = append(d.States, c1, c2)
	// UpdateNodeRegion finds P as the smallest containing state and, since
	// P has no region yet, synthesises P's default region before placing
	// c1 in it; c2 then lands in that same region.
	s.containment.UpdateNodeRegion(c1.ID)
	s.containment.UpdateNodeRegion(c2.ID)

	parent, _ := d.State(p.ID)
	if len(parent.Regions) == 0 {
		t.Fatal("expected parent to get a default region")
	}

	sibling := core.State{ID: core.NewElementId(), Rect: geometry.NewRect(500, 0, 100, 100)}
	d.States = append(d.States, sibling)
	s.containment.UpdateNodeRegion(sibling.ID) // puts it in the root region alongside P
	siblingBefore := sibling.Rect

	s.Selection.ReplaceWith([]core.ElementId{c1.ID, c2.ID})
	s.Align(AlignRight)

	pAfter, _ := d.State(p.ID)
	if pAfter.Rect.X2 <= 400 {
		t.Errorf("expected parent's right edge to expand beyond 400, got %v", pAfter.Rect.X2)
	}

	siblingAfter, _ := d.State(sibling.ID)
	shift := pAfter.Rect.X2 - 400
	if siblingAfter.Rect.X1 != siblingBefore.X1+shift {
		t.Errorf("expected sibling to shift right by %v, got shift %v", shift, siblingAfter.Rect.X1-siblingBefore.X1)
	}
}

// TestUndoAfterDrag covers dragging a state and then undoing, which
// restores its original rectangle, consuming exactly one snapshot.
func TestUndoAfterDrag(t *testing.T) {
	s := newTestSession()
	d := s.Diagram

	state := core.State{ID: core.NewElementId(), Rect: geometry.NewRect(100, 100, 100, 80)}
	d.States = append(d.States, state)
	before := state.Rect

	s.Select(state.ID)
	s.BeginDrag(geometry.Point{X: 150, Y: 140}, false)
	s.ContinueDrag(geometry.Point{X: 200, Y: 140})
	s.EndDrag(geometry.Point{X: 200, Y: 140})

	moved, _ := d.State(state.ID)
	if moved.Rect == before {
		t.Fatal("expected drag to move the state")
	}

	if !s.Undo() {
		t.Fatal("expected Undo to succeed")
	}
	restored, ok := d.State(state.ID)
	if !ok {
		t.Fatal("state missing after undo")
	}
	if restored.Rect != before {
		t.Errorf("rect after undo = %v, want %v", restored.Rect, before)
	}
}

func TestSelectionToggleMarksExplicitOrder(t *testing.T) {
	sel := newSelection()
	a, b := core.NewElementId(), core.NewElementId()
	sel.Toggle(a)
	sel.Toggle(b)
	if !sel.ExplicitOrder() {
		t.Error("expected ctrl-click toggling to mark explicit order")
	}
	if ids := sel.IDs(); len(ids) != 2 || ids[0] != a || ids[1] != b {
		t.Errorf("unexpected selection order: %v", ids)
	}
	sel.Toggle(a)
	if sel.Contains(a) {
		t.Error("expected second toggle to remove a")
	}
}

func TestMarqueeReplacesSelectionAndClearsExplicitOrder(t *testing.T) {
	sel := newSelection()
	a := core.NewElementId()
	sel.Toggle(a)
	sel.ReplaceWith(nil)
	if sel.ExplicitOrder() {
		t.Error("expected ReplaceWith to clear explicit order")
	}
	if sel.Len() != 0 {
		t.Error("expected empty selection after ReplaceWith(nil)")
	}
}

func TestHistoryPushUndoRedo(t *testing.T) {
	h := NewHistory(2)
	h.Push([]byte("v1"))
	h.Push([]byte("v2"))

	prev, ok := h.Undo([]byte("v3"))
	if !ok || string(prev) != "v2" {
		t.Fatalf("Undo = %q, %v; want v2, true", prev, ok)
	}
	next, ok := h.Redo([]byte("v3-undone"))
	if !ok || string(next) != "v3" {
		t.Fatalf("Redo = %q, %v; want v3, true", next, ok)
	}
}

func TestHistoryCapacityDropsOldest(t *testing.T) {
	h := NewHistory(1)
	h.Push([]byte("v1"))
	h.Push([]byte("v2"))
	if len(h.undo) != 1 {
		t.Fatalf("expected capacity-1 history to hold only 1 entry, got %d", len(h.undo))
	}
	if string(h.undo[0]) != "v2" {
		t.Errorf("expected oldest entry dropped, kept %q", h.undo[0])
	}
}

// TestAddPseudoStateRejectsSecondInitialInSameRegion covers the
// duplicate-Initial rejection: a second Initial placed in the same region
// as an existing one is refused, pushes no undo entry, and leaves the
// mode untouched.
func TestAddPseudoStateRejectsSecondInitialInSameRegion(t *testing.T) {
	s := newTestSession()
	s.Mode = ModeAddInitial

	first := s.AddPseudoState(core.PseudoInitial, geometry.Point{X: 100, Y: 100}, false)
	if !first.IsOK() {
		t.Fatalf("expected first Initial to succeed, got %v", first.Kind)
	}
	if len(s.Diagram.PseudoStates) != 1 {
		t.Fatalf("expected 1 pseudo-state, got %d", len(s.Diagram.PseudoStates))
	}
	s.Mode = ModeAddInitial // AddPseudoState auto-transitions to EnterConnect; reset for the test
	undoDepth := len(s.history.undo) // the first, accepted Initial pushed one snapshot

	result := s.AddPseudoState(core.PseudoInitial, geometry.Point{X: 110, Y: 110}, false)
	if result.IsOK() {
		t.Fatal("expected second Initial in the same region to be rejected")
	}
	if result.Kind != core.DuplicateInitial {
		t.Errorf("rejection kind = %v, want DuplicateInitial", result.Kind)
	}
	if len(s.Diagram.PseudoStates) != 1 {
		t.Errorf("expected rejected Initial not to be added, got %d pseudo-states", len(s.Diagram.PseudoStates))
	}
	if len(s.history.undo) != undoDepth {
		t.Error("expected no undo entry to be pushed for a rejected Initial")
	}
}

func TestDoubleClickPlacesOnlyOneState(t *testing.T) {
	s := newTestSession()
	s.Mode = ModeAddState

	s.Click(geometry.Point{X: 100, Y: 100}, false)
	if len(s.Diagram.States) != 1 {
		t.Fatalf("expected 1 state after first click, got %d", len(s.Diagram.States))
	}
	if s.Mode != ModeAddState {
		t.Errorf("expected mode to remain AddState after single click, got %v", s.Mode)
	}

	s.Click(geometry.Point{X: 103, Y: 101}, false)
	if len(s.Diagram.States) != 1 {
		t.Fatalf("expected double-click not to place a second state, got %d states", len(s.Diagram.States))
	}
	if s.Mode != ModeArrow {
		t.Errorf("expected mode to return to Arrow after double-click, got %v", s.Mode)
	}
}
