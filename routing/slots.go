package routing

import (
	"sort"

	"jmt/core"
	"jmt/geometry"
)

// bucketKey groups connections that share one side of one element.
type bucketKey struct {
	Element core.ElementId
	Side    core.Side
}

type bucketEntry struct {
	connIndex    int  // index into d.Connections
	isSource     bool // true if this element is the connection's source
	otherID      core.ElementId
	otherAligned bool
	otherAxisPos float64 // other endpoint's centre position along the side axis
}

// AssignAllSlots recomputes slot offsets for every (element, side) bucket
// in the diagram and then recomputes every connection's segments. A
// non-self connection whose sides are still unset gets them from
// AssignSides first; sides already chosen are left as they are. This is
// the entry point called after load, after end_drag, after undo/redo —
// anywhere a geometry mutation invalidates previously assigned slots.
func AssignAllSlots(d *core.Diagram) {
	buckets := map[bucketKey][]bucketEntry{}

	for i := range d.Connections {
		c := &d.Connections[i]
		if c.IsSelf() {
			continue
		}
		if c.SourceSide == core.SideNone || c.TargetSide == core.SideNone {
			sourceRect, _, sOK := d.Bounds(c.SourceID)
			targetRect, _, tOK := d.Bounds(c.TargetID)
			if sOK && tOK {
				c.SourceSide, c.TargetSide = AssignSides(sourceRect, targetRect, d.Settings.StubLength)
			}
		}
		if c.SourceSide != core.SideNone {
			k := bucketKey{c.SourceID, c.SourceSide}
			buckets[k] = append(buckets[k], bucketEntry{connIndex: i, isSource: true, otherID: c.TargetID})
		}
		if c.TargetSide != core.SideNone {
			k := bucketKey{c.TargetID, c.TargetSide}
			buckets[k] = append(buckets[k], bucketEntry{connIndex: i, isSource: false, otherID: c.SourceID})
		}
	}

	tolerance := d.Settings.AlignmentTolerance
	step := d.Settings.SlotStep

	for key, entries := range buckets {
		rect, _, ok := d.Bounds(key.Element)
		if !ok {
			continue
		}
		axisCenter := sideAxisCenter(rect, key.Side)

		for i := range entries {
			otherRect, _, ok := d.Bounds(entries[i].otherID)
			if !ok {
				continue
			}
			otherCenter := sideAxisCenter(otherRect, key.Side)
			entries[i].otherAxisPos = otherCenter
			entries[i].otherAligned = abs(otherCenter-axisCenter) <= tolerance
		}

		offsets := assignBucketOffsets(entries, step)
		for i, e := range entries {
			if e.isSource {
				d.Connections[e.connIndex].SourceSlotOffset = offsets[i]
			} else {
				d.Connections[e.connIndex].TargetSlotOffset = offsets[i]
			}
		}
	}

	// Self connections keep whatever slot they were given at creation;
	// only their segments need recomputing, same as everything else.
	for i := range d.Connections {
		c := &d.Connections[i]
		sourceRect, _, sOK := d.Bounds(c.SourceID)
		targetRect, _, tOK := d.Bounds(c.TargetID)
		if !sOK {
			continue
		}
		if c.IsSelf() {
			ComputeSegments(c, sourceRect, sourceRect, d.Settings.StubLength)
			continue
		}
		if !tOK {
			continue
		}
		ComputeSegments(c, sourceRect, targetRect, d.Settings.StubLength)
	}
}

// sideAxisCenter returns the centre coordinate of rect along the axis that
// runs parallel to side: x for top/bottom, y for left/right.
func sideAxisCenter(rect geometry.Rect, side core.Side) float64 {
	if side.IsVertical() {
		return rect.X1 + rect.Width()/2
	}
	return rect.Y1 + rect.Height()/2
}

// assignBucketOffsets performs the five-step slot assignment for one
// (element, side) bucket. Connections that share the
// same other-endpoint (a pair of opposing transitions between the same two
// elements) are treated as one group and given one shared slot — they are
// the same line, drawn in both directions. Aligned groups take the centre
// slot(s); non-aligned groups sort by the other endpoint's position and
// fan out from the aligned block; with no aligned groups at all, everyone
// is centred around 0 in sorted order.
func assignBucketOffsets(entries []bucketEntry, step float64) []float64 {
	offsets := make([]float64, len(entries))

	type group struct {
		otherID core.ElementId
		aligned bool
		axisPos float64
		members []int
	}
	order := []core.ElementId{}
	groups := map[core.ElementId]*group{}
	for i, e := range entries {
		g, ok := groups[e.otherID]
		if !ok {
			g = &group{otherID: e.otherID, aligned: e.otherAligned, axisPos: e.otherAxisPos}
			groups[e.otherID] = g
			order = append(order, e.otherID)
		}
		g.members = append(g.members, i)
	}

	var alignedGroups, otherGroups []*group
	for _, id := range order {
		g := groups[id]
		if g.aligned {
			alignedGroups = append(alignedGroups, g)
		} else {
			otherGroups = append(otherGroups, g)
		}
	}

	setGroupOffset := func(g *group, off float64) {
		for _, idx := range g.members {
			offsets[idx] = off
		}
	}

	if len(alignedGroups) == 0 {
		sort.Slice(otherGroups, func(a, b int) bool { return otherGroups[a].axisPos < otherGroups[b].axisPos })
		n := len(otherGroups)
		for rank, g := range otherGroups {
			setGroupOffset(g, (float64(rank)-float64(n-1)/2)*step)
		}
		return offsets
	}

	n := len(alignedGroups)
	for rank, g := range alignedGroups {
		setGroupOffset(g, (float64(rank)-float64(n-1)/2)*step)
	}

	sort.Slice(otherGroups, func(a, b int) bool { return otherGroups[a].axisPos < otherGroups[b].axisPos })

	half := len(otherGroups) / 2
	low := otherGroups[:half]
	high := otherGroups[half:]

	aligned0 := (float64(n-1) / 2) * step
	for rank, g := range high {
		setGroupOffset(g, aligned0+step*float64(rank+1))
	}
	alignedMin := -(float64(n-1) / 2) * step
	for rank := range low {
		g := low[len(low)-1-rank]
		setGroupOffset(g, alignedMin-step*float64(rank+1))
	}

	return offsets
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
