// Package routing produces renderable polylines for connections and
// positions multiple connections that share one side of a node. It is a
// two-phase router: phase one picks a side for each endpoint (sticky
// across moves), phase two assigns per-side slot offsets and expands the
// final three-segment stub geometry, following a clearance ladder and an
// alignment-priority slot rule.
package routing

import (
	"jmt/core"
	"jmt/geometry"
)

// AssignSides picks source and target sides for a single connection,
// given the current rectangles of its two endpoints, following a
// clearance-first priority ladder.
func AssignSides(sourceBounds, targetBounds geometry.Rect, stub float64) (core.Side, core.Side) {
	if sourceBounds.Y2+2*stub <= targetBounds.Y1 {
		return core.SideBottom, core.SideTop
	}
	if sourceBounds.Y1 >= targetBounds.Y2+2*stub {
		return core.SideTop, core.SideBottom
	}
	if sourceBounds.X2 < targetBounds.X1 {
		return core.SideRight, core.SideLeft
	}
	return core.SideLeft, core.SideRight
}

// sidePoint returns the point on the given side of bounds, offset along
// the side's own axis by offset.
func sidePoint(bounds geometry.Rect, side core.Side, offset float64) geometry.Point {
	switch side {
	case core.SideTop:
		return geometry.Point{X: bounds.X1 + bounds.Width()/2 + offset, Y: bounds.Y1}
	case core.SideBottom:
		return geometry.Point{X: bounds.X1 + bounds.Width()/2 + offset, Y: bounds.Y2}
	case core.SideLeft:
		return geometry.Point{X: bounds.X1, Y: bounds.Y1 + bounds.Height()/2 + offset}
	case core.SideRight:
		return geometry.Point{X: bounds.X2, Y: bounds.Y1 + bounds.Height()/2 + offset}
	default:
		return bounds.Center()
	}
}

// stubPoint returns the point `stub` units outward from point, in the
// direction implied by side.
func stubPoint(point geometry.Point, side core.Side, stub float64) geometry.Point {
	switch side {
	case core.SideTop:
		return geometry.Point{X: point.X, Y: point.Y - stub}
	case core.SideBottom:
		return geometry.Point{X: point.X, Y: point.Y + stub}
	case core.SideLeft:
		return geometry.Point{X: point.X - stub, Y: point.Y}
	case core.SideRight:
		return geometry.Point{X: point.X + stub, Y: point.Y}
	default:
		return point
	}
}

// ComputeSegments fills in conn.Segments from its already-chosen sides and
// slot offsets: source point -> source stub -> target stub -> target point.
// Source and target each carry their own offset because the two ends sit
// on different nodes (and usually different sides); collapsing them into
// one shared field would make each end's slot depend on map-iteration
// order over the other end's bucket.
func ComputeSegments(conn *core.Connection, sourceBounds, targetBounds geometry.Rect, stub float64) {
	if conn.IsSelf() {
		computeSelfSegments(conn, sourceBounds, stub)
		return
	}

	sourcePoint := sidePoint(sourceBounds, conn.SourceSide, conn.SourceSlotOffset)
	targetPoint := sidePoint(targetBounds, conn.TargetSide, conn.TargetSlotOffset)
	sourceStub := stubPoint(sourcePoint, conn.SourceSide, stub)
	targetStub := stubPoint(targetPoint, conn.TargetSide, stub)

	conn.Segments = []geometry.Segment{
		{Start: sourcePoint, End: sourceStub},
		{Start: sourceStub, End: targetStub},
		{Start: targetStub, End: targetPoint},
	}
}

// computeSelfSegments builds the distinct arc route for a self-connection:
// out of one side at SourceSlotOffset, a loop reaching three stub lengths
// outward, and back into the same side a fixed 15 units further along it.
// Slot assignment ignores the
// target node for alignment purposes when the connection is a self-loop,
// so only the source offset is meaningful here.
func computeSelfSegments(conn *core.Connection, bounds geometry.Rect, stub float64) {
	side := conn.SourceSide
	if side == core.SideNone {
		side = core.SideRight
	}
	const selfLoopSpan = 15.0
	loopOut := stub * 3
	p1 := sidePoint(bounds, side, conn.SourceSlotOffset)
	p2 := sidePoint(bounds, side, conn.SourceSlotOffset+selfLoopSpan)
	s1 := stubPoint(p1, side, loopOut)
	s2 := stubPoint(p2, side, loopOut)

	conn.Segments = []geometry.Segment{
		{Start: p1, End: s1},
		{Start: s1, End: s2},
		{Start: s2, End: p2},
	}
}
