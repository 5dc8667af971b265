package registry

import (
	"testing"

	"jmt/core"
	"jmt/geometry"
)

func TestNewDiagramBecomesActive(t *testing.T) {
	r := New()
	id := r.NewDiagram(core.DiagramStateMachine)

	active, ok := r.Active()
	if !ok || active != id {
		t.Fatalf("Active() = %v, %v; want %v, true", active, ok, id)
	}
	if r.Session(id) == nil {
		t.Fatal("expected a session for the new tab")
	}
}

func TestSetActiveDiagramRejectsUnknownTab(t *testing.T) {
	r := New()
	r.NewDiagram(core.DiagramStateMachine)
	if r.SetActiveDiagram(NewTabId()) {
		t.Fatal("expected SetActiveDiagram to reject an unopened tab")
	}
}

func TestCloseDiagramRequiresConfirmationWhenDirty(t *testing.T) {
	r := New()
	id := r.NewDiagram(core.DiagramStateMachine)
	s := r.Session(id)
	s.AddElement(core.KindState, geometry.Point{X: 50, Y: 50}, false)

	ok, needsConfirmation := r.CloseDiagram(id, false)
	if ok || !needsConfirmation {
		t.Fatalf("CloseDiagram(force=false) = %v, %v; want false, true", ok, needsConfirmation)
	}

	ok, _ = r.CloseDiagram(id, true)
	if !ok {
		t.Fatal("expected forced close to succeed")
	}
	if r.Session(id) != nil {
		t.Fatal("expected tab to be gone after close")
	}
}

func TestSaveClearsDirtyAndLoadOpensNewTab(t *testing.T) {
	r := New()
	id := r.NewDiagram(core.DiagramStateMachine)
	s := r.Session(id)
	s.AddElement(core.KindState, geometry.Point{X: 50, Y: 50}, false)
	if !r.IsDirty(id) {
		t.Fatal("expected tab to be dirty after adding an element")
	}

	data, err := r.Save(id)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if r.IsDirty(id) {
		t.Fatal("expected Save to clear the dirty flag")
	}

	newID, err := r.Load(data)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if newID == id {
		t.Fatal("expected Load to open a distinct tab")
	}
	if len(r.Session(newID).Diagram.States) != 1 {
		t.Fatal("expected loaded diagram to retain its one state")
	}
}
