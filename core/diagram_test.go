package core

import (
	"testing"

	"jmt/geometry"
)

func TestNewDiagramHasRootRegion(t *testing.T) {
	d := NewDiagram(DiagramStateMachine, "untitled")
	root, ok := d.Region(d.RootRegionID)
	if !ok {
		t.Fatal("expected root region to exist")
	}
	if !root.IsRoot {
		t.Error("expected root region's IsRoot to be true")
	}
}

func TestFindAtPrefersSmallestArea(t *testing.T) {
	d := NewDiagram(DiagramStateMachine, "test")
	big := State{ID: NewElementId(), Rect: geometry.NewRect(0, 0, 200, 200)}
	small := State{ID: NewElementId(), Rect: geometry.NewRect(50, 50, 40, 40)}
	d.States = append(d.States, big, small)

	id, kind, ok := d.FindAt(geometry.Point{X: 60, Y: 60}, NilElementId)
	if !ok || id != small.ID || kind != KindState {
		t.Fatalf("FindAt = %v, %v, %v; want %v, State, true", id, kind, ok, small.ID)
	}
}

func TestFindAtSkipsExcludedID(t *testing.T) {
	d := NewDiagram(DiagramStateMachine, "test")
	outer := State{ID: NewElementId(), Rect: geometry.NewRect(0, 0, 200, 200)}
	inner := State{ID: NewElementId(), Rect: geometry.NewRect(50, 50, 40, 40)}
	d.States = append(d.States, outer, inner)

	id, _, ok := d.FindAt(geometry.Point{X: 60, Y: 60}, inner.ID)
	if !ok || id != outer.ID {
		t.Fatalf("FindAt excluding inner = %v, %v; want %v, true", id, ok, outer.ID)
	}
}

func TestTranslateMovesStateAndItsRegions(t *testing.T) {
	d := NewDiagram(DiagramStateMachine, "test")
	s := State{ID: NewElementId(), Rect: geometry.NewRect(0, 0, 200, 200)}
	d.States = append(d.States, s)
	region := Region{ID: NewElementId(), ParentStateID: s.ID, Rect: geometry.NewRect(10, 30, 180, 160)}
	d.Regions = append(d.Regions, region)
	d.States[0].Regions = []ElementId{region.ID}

	if res := d.Translate(s.ID, 5, 7); res != OK {
		t.Fatalf("Translate = %v, want OK", res)
	}

	moved, _ := d.State(s.ID)
	if moved.Rect.X1 != 5 || moved.Rect.Y1 != 7 {
		t.Errorf("state rect = %v, want origin (5,7)", moved.Rect)
	}
	movedRegion, _ := d.Region(region.ID)
	if movedRegion.Rect.X1 != 15 || movedRegion.Rect.Y1 != 37 {
		t.Errorf("region rect = %v, want origin (15,37)", movedRegion.Rect)
	}
}

func TestTranslateUnknownIDReturnsNotFound(t *testing.T) {
	d := NewDiagram(DiagramStateMachine, "test")
	if res := d.Translate(NewElementId(), 1, 1); res != NotFound {
		t.Fatalf("Translate on unknown id = %v, want NotFound", res)
	}
}

func TestDeleteStateRemovesRegionsAndIncidentConnections(t *testing.T) {
	d := NewDiagram(DiagramStateMachine, "test")
	parent := State{ID: NewElementId(), Rect: geometry.NewRect(0, 0, 200, 200)}
	region := Region{ID: NewElementId(), ParentStateID: parent.ID, Rect: geometry.NewRect(0, 20, 200, 180)}
	child := State{ID: NewElementId(), Rect: geometry.NewRect(10, 30, 50, 40), ParentRegionID: &region.ID}
	other := State{ID: NewElementId(), Rect: geometry.NewRect(300, 0, 50, 40)}
	region.Children = []ElementId{child.ID}
	parent.Regions = []ElementId{region.ID}

	d.States = append(d.States, parent, child, other)
	d.Regions = append(d.Regions, region)
	conn := Connection{ID: NewElementId(), SourceID: child.ID, TargetID: other.ID}
	d.Connections = append(d.Connections, conn)

	if res := d.Delete(parent.ID); res != OK {
		t.Fatalf("Delete = %v, want OK", res)
	}
	if _, ok := d.State(parent.ID); ok {
		t.Error("expected parent to be gone")
	}
	if _, ok := d.State(child.ID); ok {
		t.Error("expected child to be deleted along with its region")
	}
	if _, ok := d.Region(region.ID); ok {
		t.Error("expected region to be deleted")
	}
	if len(d.Connections) != 0 {
		t.Errorf("expected incident connection to be removed, got %d left", len(d.Connections))
	}
	if _, ok := d.State(other.ID); !ok {
		t.Error("expected unrelated state to survive")
	}
}

func TestCloneIsIndependentOfOriginal(t *testing.T) {
	d := NewDiagram(DiagramStateMachine, "test")
	s := State{ID: NewElementId(), Rect: geometry.NewRect(0, 0, 100, 100)}
	d.States = append(d.States, s)
	aux := AuxEntity{ID: NewElementId(), AuxKind: KindActor, Rect: geometry.NewRect(0, 0, 10, 10), Attrs: map[string]string{"k": "v"}}
	d.Aux = append(d.Aux, aux)

	clone := d.Clone()
	clone.States[0].Rect.X1 = 999
	clone.Aux[0].Attrs["k"] = "changed"

	if d.States[0].Rect.X1 == 999 {
		t.Error("expected original state rect to be unaffected by clone mutation")
	}
	if d.Aux[0].Attrs["k"] == "changed" {
		t.Error("expected original Attrs map to be unaffected by clone mutation")
	}
}

func TestContentBoundsEmptyDiagram(t *testing.T) {
	d := NewDiagram(DiagramStateMachine, "test")
	if _, ok := d.ContentBounds(); ok {
		t.Error("expected ContentBounds to report false for an empty diagram")
	}
}

func TestContentBoundsUnionsAllElements(t *testing.T) {
	d := NewDiagram(DiagramStateMachine, "test")
	d.States = append(d.States, State{ID: NewElementId(), Rect: geometry.NewRect(0, 0, 50, 50)})
	d.PseudoStates = append(d.PseudoStates, PseudoState{ID: NewElementId(), Rect: geometry.NewRect(-20, 100, 10, 10)})

	bounds, ok := d.ContentBounds()
	if !ok {
		t.Fatal("expected ContentBounds to succeed")
	}
	if bounds.X1 != -20 || bounds.Y2 != 110 {
		t.Errorf("bounds = %v, want X1=-20, Y2=110", bounds)
	}
}
