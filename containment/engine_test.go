package containment

import (
	"testing"

	"jmt/core"
	"jmt/geometry"
)

func newTestDiagram() *core.Diagram {
	d := core.NewDiagram(core.DiagramStateMachine, "test")
	return d
}

// TestReparentOnDrag covers dragging a child state into a parent state,
// which re-parents it into the parent's sole region.
func TestReparentOnDrag(t *testing.T) {
	d := newTestDiagram()
	eng := New(d)

	p := core.State{ID: core.NewElementId(), Name: "P", Rect: geometry.NewRect(50, 50, 350, 350)}
	d.States = append(d.States, p)
	eng.addDefaultRegion(&d.States[0])

	c := core.State{ID: core.NewElementId(), Name: "C", Rect: geometry.NewRect(450, 450, 100, 100)}
	d.States = append(d.States, c)
	cID := d.States[1].ID

	// drag C to land fully inside P
	d.States[1].Rect = geometry.NewRect(150, 150, 100, 100)
	eng.UpdateAllNodeRegions()

	child, ok := d.State(cID)
	if !ok {
		t.Fatal("child state missing")
	}
	if child.ParentRegionID == nil {
		t.Fatal("expected child to be re-parented into a region")
	}
	region, ok := d.Region(*child.ParentRegionID)
	if !ok {
		t.Fatal("parent region missing")
	}
	if region.ParentStateID != d.States[0].ID {
		t.Error("expected child's region to belong to P")
	}
	found := false
	for _, id := range region.Children {
		if id == cID {
			found = true
		}
	}
	if !found {
		t.Error("expected region.Children to contain C")
	}
}

// TestPartialContainmentSurfaces covers a state straddling its parent's
// edge getting flagged with a containment error.
func TestPartialContainmentSurfaces(t *testing.T) {
	d := newTestDiagram()
	eng := New(d)

	p := core.State{ID: core.NewElementId(), Name: "P", Rect: geometry.NewRect(50, 50, 350, 350)}
	d.States = append(d.States, p)
	eng.addDefaultRegion(&d.States[0])
	region := d.Regions[len(d.Regions)-1]

	c := core.State{ID: core.NewElementId(), Name: "C", Rect: geometry.NewRect(150, 150, 100, 100), ParentRegionID: &region.ID}
	d.States = append(d.States, c)
	for i := range d.Regions {
		if d.Regions[i].ID == region.ID {
			d.Regions[i].Children = append(d.Regions[i].Children, c.ID)
		}
	}

	// straddle P's right edge: two corners inside, two outside
	d.States[1].Rect = geometry.NewRect(350, 150, 100, 100)
	eng.DetectPartialContainment()

	child, _ := d.State(c.ID)
	if !child.HasError {
		t.Error("expected HasError = true for straddling state")
	}
}

// TestTranslateWithChildrenIsInvertible covers the translate/invert
// round-trip law: translating by (dx, dy) then by (-dx, -dy) restores
// every descendant's original rectangle.
func TestTranslateWithChildrenIsInvertible(t *testing.T) {
	d := newTestDiagram()
	eng := New(d)

	p := core.State{ID: core.NewElementId(), Rect: geometry.NewRect(0, 0, 300, 300)}
	d.States = append(d.States, p)
	eng.addDefaultRegion(&d.States[0])
	region := d.Regions[len(d.Regions)-1]

	c := core.State{ID: core.NewElementId(), Rect: geometry.NewRect(50, 50, 50, 50), ParentRegionID: &region.ID}
	d.States = append(d.States, c)
	for i := range d.Regions {
		if d.Regions[i].ID == region.ID {
			d.Regions[i].Children = append(d.Regions[i].Children, c.ID)
		}
	}

	before := d.States[0].Rect
	beforeChild := d.States[1].Rect

	eng.TranslateWithChildren(d.States[0].ID, 37, -12, nil)
	eng.TranslateWithChildren(d.States[0].ID, -37, 12, nil)

	if d.States[0].Rect != before {
		t.Errorf("parent rect not restored: got %v want %v", d.States[0].Rect, before)
	}
	if d.States[1].Rect != beforeChild {
		t.Errorf("child rect not restored: got %v want %v", d.States[1].Rect, beforeChild)
	}
}

func TestRecalculateRegionsKeepsStateUnionInvariant(t *testing.T) {
	d := newTestDiagram()
	eng := New(d)
	s := core.State{ID: core.NewElementId(), Rect: geometry.NewRect(0, 0, 200, 200)}
	d.States = append(d.States, s)
	eng.addDefaultRegion(&d.States[0])
	eng.addDefaultRegion(&d.States[0])

	d.States[0].Rect = geometry.NewRect(0, 0, 200, 400)
	eng.RecalculateRegions(d.States[0].ID)

	var unionY2 float64
	for _, rid := range d.States[0].Regions {
		r, _ := d.Region(rid)
		if r.Rect.Y2 > unionY2 {
			unionY2 = r.Rect.Y2
		}
	}
	if unionY2 != d.States[0].Rect.Y2 {
		t.Errorf("region union Y2 %v does not match state Y2 %v", unionY2, d.States[0].Rect.Y2)
	}
}
