package render

import (
	"jmt/core"
	"jmt/geometry"
	"jmt/routing"
)

// ConnectionHitTolerance is the perpendicular-distance threshold within
// which a point counts as "on" a connection's segment.
const ConnectionHitTolerance = 10.0

// HitTest is the precise inverse of PaintOrder: innermost node by
// smallest rectangle area wins (core.Diagram.FindAt already implements
// this for nodes); failing that, the nearest connection whose nearest
// segment is within ConnectionHitTolerance; failing that, any label
// whose bounding box contains point. Returns ok=false if nothing is hit.
func HitTest(d *core.Diagram, point geometry.Point) (core.ElementId, core.Kind, bool) {
	if id, kind, ok := d.FindAt(point, core.NilElementId); ok {
		return id, kind, true
	}

	if id, ok := hitConnection(d, point); ok {
		return id, core.KindConnection, true
	}

	for i := range d.Connections {
		c := &d.Connections[i]
		if routing.IsNearLabel(c, point) {
			return c.ID, core.KindConnection, true
		}
	}

	return core.NilElementId, 0, false
}

// hitConnection returns the connection with the nearest segment to
// point, among those within ConnectionHitTolerance.
func hitConnection(d *core.Diagram, point geometry.Point) (core.ElementId, bool) {
	bestDist := ConnectionHitTolerance
	var bestID core.ElementId
	found := false

	for i := range d.Connections {
		c := &d.Connections[i]
		for _, seg := range c.Segments {
			dist := seg.DistanceTo(point)
			if dist <= ConnectionHitTolerance && (!found || dist < bestDist) {
				bestDist, bestID, found = dist, c.ID, true
			}
		}
	}
	return bestID, found
}
