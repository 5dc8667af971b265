package editor

import (
	"sort"

	"jmt/core"
	"jmt/geometry"
	"jmt/routing"
)

// AddElement places a new element of kind centred on point, sized to the
// diagram's minimum, and assigns it to the innermost suitable region.
// If switchToArrow, the mode returns to ModeArrow afterward.
func (s *Session) AddElement(kind core.Kind, point geometry.Point, switchToArrow bool) core.ElementId {
	s.pushSnapshot()

	id := core.NewElementId()
	switch kind {
	case core.KindState:
		w, h := s.Diagram.Settings.MinStateWidth, s.Diagram.Settings.MinStateHeight
		rect := geometry.NewRect(point.X-w/2, point.Y-h/2, w, h)
		s.Diagram.States = append(s.Diagram.States, core.State{ID: id, Name: "State", Rect: rect})
	case core.KindPseudoState:
		w, h := core.PseudoChoice.DefaultSize()
		rect := geometry.NewRect(point.X-w/2, point.Y-h/2, w, h)
		s.Diagram.PseudoStates = append(s.Diagram.PseudoStates, core.PseudoState{ID: id, Kind: core.PseudoChoice, Rect: rect})
	default:
		w, h := s.Diagram.Settings.MinStateWidth, s.Diagram.Settings.MinStateHeight
		rect := geometry.NewRect(point.X-w/2, point.Y-h/2, w, h)
		s.Diagram.Aux = append(s.Diagram.Aux, core.AuxEntity{ID: id, AuxKind: kind, Rect: rect, Attrs: map[string]string{}})
	}

	if kind.IsContainmentParticipant() {
		s.containment.UpdateNodeRegion(id)
	}

	if switchToArrow {
		s.SetMode(ModeArrow)
	}
	return id
}

// AddPseudoState places a pseudo-state of a specific kind, the variant of
// AddElement used by the Add-Initial/Add-Final/etc. modes, which need a
// kind the uniform core.Kind cannot express on its own. Rejects a second
// Initial in the same region: no element is created, no snapshot is
// pushed, and the mode does not change.
func (s *Session) AddPseudoState(kind core.PseudoStateKind, point geometry.Point, switchToArrow bool) core.OpResult {
	if kind == core.PseudoInitial {
		if regionID, ok := s.containment.RegionForPoint(point); ok && s.regionHasInitial(regionID) {
			return core.Fail(core.DuplicateInitial, "region already has an Initial")
		}
	}

	s.pushSnapshot()
	w, h := kind.DefaultSize()
	id := core.NewElementId()
	rect := geometry.NewRect(point.X-w/2, point.Y-h/2, w, h)
	s.Diagram.PseudoStates = append(s.Diagram.PseudoStates, core.PseudoState{ID: id, Kind: kind, Rect: rect})
	s.containment.UpdateNodeRegion(id)

	if kind == core.PseudoInitial || kind == core.PseudoFinal {
		// Adding an Initial or Final auto-transitions to EnterConnect; the
		// next click picks the source for a new transition, same as the
		// first click of plain Connect mode.
		s.Mode = ModeEnterConnect
	} else if switchToArrow {
		s.SetMode(ModeArrow)
	}
	return core.Ok(id)
}

// regionHasInitial reports whether regionID already contains a PseudoInitial.
func (s *Session) regionHasInitial(regionID core.ElementId) bool {
	region, ok := s.Diagram.Region(regionID)
	if !ok {
		return false
	}
	for _, childID := range region.Children {
		if p, ok := s.Diagram.PseudoState(childID); ok && p.Kind == core.PseudoInitial {
			return true
		}
	}
	return false
}

// BeginDrag resolves the begin_drag priority ladder: resize corner, then
// region separator, then label, then element move, then marquee/lasso.
func (s *Session) BeginDrag(point geometry.Point, ctrl bool) {
	settings := s.Diagram.Settings

	if id, ok := s.resizableCornerAt(point, settings.CornerTolerance); ok {
		s.pushSnapshot()
		s.drag = dragState{kind: dragResize, start: point, last: point, resizeID: id.elementID, resizeCorner: id.corner}
		s.Mode = ModeResize
		return
	}

	if stateID, sepIndex, ok := s.separatorAt(point, settings.SeparatorTolerance); ok {
		s.pushSnapshot()
		s.drag = dragState{kind: dragMoveSeparator, start: point, last: point, sepStateID: stateID, sepIndex: sepIndex}
		s.Mode = ModeMoveRegionSeparator
		return
	}

	if connID, ok := s.labelAt(point); ok {
		s.pushSnapshot()
		if conn, ok := s.Diagram.Connection(connID); ok {
			conn.LabelSelected = true
		}
		s.drag = dragState{kind: dragMoveLabel, start: point, last: point, labelConnID: connID}
		return
	}

	if id, _, ok := s.Diagram.FindAt(point, core.NilElementId); ok {
		if !s.Selection.Contains(id) {
			if ctrl {
				s.ToggleSelect(id)
			} else {
				s.Select(id)
			}
		}
		s.pushSnapshot()
		s.drag = dragState{kind: dragMoveSelection, start: point, last: point}
		s.Mode = ModeMove
		return
	}

	if s.Mode == ModeLasso {
		s.drag = dragState{kind: dragLasso, start: point, last: point, lassoPoints: []geometry.Point{point}}
		return
	}
	s.drag = dragState{kind: dragMarquee, start: point, last: point}
	s.Mode = ModeSelectRect
}

type cornerHit struct {
	elementID core.ElementId
	corner    geometry.Corner
}

func (s *Session) resizableCornerAt(point geometry.Point, tolerance float64) (cornerHit, bool) {
	for _, id := range s.Selection.IDs() {
		state, ok := s.Diagram.State(id)
		if !ok {
			continue
		}
		if corner := geometry.CornerAt(state.Rect, point, tolerance); corner != geometry.NotCorner {
			return cornerHit{elementID: id, corner: corner}, true
		}
	}
	return cornerHit{}, false
}

func (s *Session) separatorAt(point geometry.Point, tolerance float64) (core.ElementId, int, bool) {
	for i := range s.Diagram.States {
		state := &s.Diagram.States[i]
		if len(state.Regions) < 2 {
			continue
		}
		for idx := 0; idx < len(state.Regions)-1; idx++ {
			r, ok := s.Diagram.Region(state.Regions[idx])
			if !ok {
				continue
			}
			var near bool
			if state.RegionOrientation == core.Horizontal {
				near = abs(point.X-r.Rect.X2) <= tolerance && point.Y >= r.Rect.Y1 && point.Y <= r.Rect.Y2
			} else {
				near = abs(point.Y-r.Rect.Y2) <= tolerance && point.X >= r.Rect.X1 && point.X <= r.Rect.X2
			}
			if near {
				return state.ID, idx, true
			}
		}
	}
	return core.NilElementId, 0, false
}

func (s *Session) labelAt(point geometry.Point) (core.ElementId, bool) {
	for i := range s.Diagram.Connections {
		c := &s.Diagram.Connections[i]
		if routing.IsNearLabel(c, point) {
			return c.ID, true
		}
	}
	return core.NilElementId, false
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// ContinueDrag applies the delta since the drag's last position to
// whatever sub-mode BeginDrag entered.
func (s *Session) ContinueDrag(point geometry.Point) {
	dx := point.X - s.drag.last.X
	dy := point.Y - s.drag.last.Y
	s.drag.last = point

	switch s.drag.kind {
	case dragResize:
		s.Diagram.ResizeCorner(s.drag.resizeID, s.drag.resizeCorner, dx, dy)
		s.containment.RecalculateRegions(s.drag.resizeID)
	case dragMoveSelection:
		visited := map[core.ElementId]bool{}
		for _, id := range s.Selection.IDs() {
			s.containment.TranslateWithChildren(id, dx, dy, visited)
		}
	case dragMoveSeparator:
		s.moveSeparator(dy, dx)
	case dragMoveLabel:
		if conn, ok := s.Diagram.Connection(s.drag.labelConnID); ok {
			conn.LabelOffset = conn.LabelOffset.Add(dx, dy)
		}
	case dragMarquee:
		// nothing to mutate; end_drag reads s.drag.start/last directly.
	case dragLasso:
		s.drag.lassoPoints = append(s.drag.lassoPoints, point)
	}
}

// moveSeparator clamps the separator between two adjacent regions so
// neither shrinks below the diagram's minimum.
func (s *Session) moveSeparator(dy, dx float64) {
	state, ok := s.Diagram.State(s.drag.sepStateID)
	if !ok || s.drag.sepIndex+1 >= len(state.Regions) {
		return
	}
	a, okA := s.Diagram.Region(state.Regions[s.drag.sepIndex])
	b, okB := s.Diagram.Region(state.Regions[s.drag.sepIndex+1])
	if !okA || !okB {
		return
	}
	minH := s.Diagram.Settings.MinStateHeight
	if state.RegionOrientation == core.Horizontal {
		newSplit := a.Rect.X2 + dx
		if newSplit-a.Rect.X1 < minH || b.Rect.X2-newSplit < minH {
			return
		}
		a.Rect.X2 = newSplit
		b.Rect.X1 = newSplit
	} else {
		newSplit := a.Rect.Y2 + dy
		if newSplit-a.Rect.Y1 < minH || b.Rect.Y2-newSplit < minH {
			return
		}
		a.Rect.Y2 = newSplit
		b.Rect.Y1 = newSplit
	}
}

// EndDrag finalises whatever BeginDrag/ContinueDrag were doing: region
// membership and partial-containment detection for moves/resizes, or
// full-containment selection replacement for marquee/lasso. No additional
// snapshot is pushed.
func (s *Session) EndDrag(point geometry.Point) {
	switch s.drag.kind {
	case dragResize, dragMoveSelection:
		s.containment.UpdateAllNodeRegions()
		s.containment.DetectPartialContainment()
		for i := range s.Diagram.Connections {
			recomputeConnectionGeometry(s.Diagram, &s.Diagram.Connections[i])
		}
		s.Mode = ModeArrow
	case dragMoveSeparator:
		s.Mode = ModeArrow
	case dragMoveLabel:
		if conn, ok := s.Diagram.Connection(s.drag.labelConnID); ok {
			conn.LabelSelected = false
		}
	case dragMarquee:
		rect := rectFromPoints(s.drag.start, point)
		s.Selection.ReplaceWith(containedElements(s.Diagram, rect))
		if s.Mode == ModeSelectRect {
			s.Mode = ModeArrow
		}
	case dragLasso:
		s.Selection.ReplaceWith(containedElementsInPolygon(s.Diagram, s.drag.lassoPoints))
	}
	s.drag = dragState{}
}

func rectFromPoints(a, b geometry.Point) geometry.Rect {
	x1, x2 := a.X, b.X
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	y1, y2 := a.Y, b.Y
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return geometry.Rect{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

func containedElements(d *core.Diagram, rect geometry.Rect) []core.ElementId {
	var out []core.ElementId
	for _, id := range d.Iter(nil) {
		bounds, kind, ok := d.Bounds(id)
		if !ok || kind == core.KindRegion || kind == core.KindConnection {
			continue
		}
		if geometry.ContainsRect(rect, bounds) {
			out = append(out, id)
		}
	}
	return out
}

func containedElementsInPolygon(d *core.Diagram, polygon []geometry.Point) []core.ElementId {
	var out []core.ElementId
	for _, id := range d.Iter(nil) {
		bounds, kind, ok := d.Bounds(id)
		if !ok || kind == core.KindRegion || kind == core.KindConnection {
			continue
		}
		corners := []geometry.Point{bounds.TopLeft(), bounds.TopRight(), bounds.BottomLeft(), bounds.BottomRight()}
		all := true
		for _, c := range corners {
			if !geometry.PointInPolygon(c, polygon) {
				all = false
				break
			}
		}
		if all {
			out = append(out, id)
		}
	}
	return out
}

// recomputeConnectionGeometry refreshes one connection's sides (if
// unset) and segments from its endpoints' current rectangles.
func recomputeConnectionGeometry(d *core.Diagram, c *core.Connection) {
	sourceRect, _, sOK := d.Bounds(c.SourceID)
	if !sOK {
		return
	}
	if c.IsSelf() {
		if c.SourceSide == core.SideNone {
			c.SourceSide = core.SideRight
		}
		routing.ComputeSegments(c, sourceRect, sourceRect, d.Settings.StubLength)
		return
	}
	targetRect, _, tOK := d.Bounds(c.TargetID)
	if !tOK {
		return
	}
	if c.SourceSide == core.SideNone || c.TargetSide == core.SideNone {
		c.SourceSide, c.TargetSide = routing.AssignSides(sourceRect, targetRect, d.Settings.StubLength)
	}
	routing.ComputeSegments(c, sourceRect, targetRect, d.Settings.StubLength)
}

// StartConnection records sourceID as the pending source of a new
// connection and enters ModeConnect.
func (s *Session) StartConnection(sourceID core.ElementId) {
	s.pendingSource = &sourceID
	s.Mode = ModeConnect
}

// CompleteConnection validates targetID against the pending source,
// creates the Connection, assigns sides and slots for both endpoints, and
// pushes one undo snapshot. Returns the new connection's id and false if
// validation failed (target == source, or target's kind refuses incoming
// connections).
func (s *Session) CompleteConnection(targetID core.ElementId) (core.ElementId, bool) {
	if s.pendingSource == nil {
		return core.NilElementId, false
	}
	sourceID := *s.pendingSource
	if targetID == sourceID {
		return core.NilElementId, false
	}
	if p, ok := s.Diagram.PseudoState(targetID); ok && !p.Kind.CanBeTarget() {
		return core.NilElementId, false
	}
	if p, ok := s.Diagram.PseudoState(sourceID); ok && !p.Kind.CanBeSource() {
		return core.NilElementId, false
	}

	s.pushSnapshot()

	conn := core.Connection{ID: core.NewElementId(), SourceID: sourceID, TargetID: targetID}
	s.Diagram.Connections = append(s.Diagram.Connections, conn)
	routing.AssignAllSlots(s.Diagram)

	s.pendingSource = nil
	s.Mode = ModeArrow
	return conn.ID, true
}

// connectPairwiseAlongSelection performs the immediate pairwise
// auto-connect: entering Connect with >=2 already selected elements
// connects them 1->2, 2->3, ... in selection order and returns to Arrow.
func (s *Session) connectPairwiseAlongSelection() {
	ids := s.Selection.IDs()
	if len(ids) < 2 {
		return
	}
	s.pushSnapshot()
	for i := 0; i < len(ids)-1; i++ {
		conn := core.Connection{ID: core.NewElementId(), SourceID: ids[i], TargetID: ids[i+1]}
		s.Diagram.Connections = append(s.Diagram.Connections, conn)
	}
	routing.AssignAllSlots(s.Diagram)
	s.Mode = ModeArrow
}

// AlignMode selects which line elements align to.
type AlignMode int

const (
	AlignLeft AlignMode = iota
	AlignRight
	AlignTop
	AlignBottom
	AlignCenterH
	AlignCenterV
)

// orderedSelectionBounds returns the selection's elements and their
// current rectangles, ordered by explicit selection order if set,
// otherwise by position along axis (x for horizontal ops, y for vertical).
func (s *Session) orderedSelectionBounds(horizontalAxis bool) ([]core.ElementId, []geometry.Rect) {
	ids := s.Selection.IDs()
	bounds := make([]geometry.Rect, len(ids))
	for i, id := range ids {
		r, _, _ := s.Diagram.Bounds(id)
		bounds[i] = r
	}
	if s.Selection.ExplicitOrder() {
		return ids, bounds
	}
	type pair struct {
		id core.ElementId
		r  geometry.Rect
	}
	pairs := make([]pair, len(ids))
	for i := range ids {
		pairs[i] = pair{ids[i], bounds[i]}
	}
	sort.Slice(pairs, func(a, b int) bool {
		if horizontalAxis {
			return pairs[a].r.X1 < pairs[b].r.X1
		}
		return pairs[a].r.Y1 < pairs[b].r.Y1
	})
	outIDs := make([]core.ElementId, len(pairs))
	outRects := make([]geometry.Rect, len(pairs))
	for i, p := range pairs {
		outIDs[i] = p.id
		outRects[i] = p.r
	}
	return outIDs, outRects
}

// Align moves every selected element onto the line implied by mode:
// centroid for the two centre modes, shared bound otherwise. Pushes one
// snapshot and expands every moved element's ancestors to contain it.
func (s *Session) Align(mode AlignMode) {
	ids, bounds := s.orderedSelectionBounds(mode == AlignLeft || mode == AlignRight || mode == AlignCenterV)
	if len(ids) == 0 {
		return
	}
	s.pushSnapshot()

	var target float64
	switch mode {
	case AlignLeft:
		target = bounds[0].X1
		for _, r := range bounds[1:] {
			if r.X1 < target {
				target = r.X1
			}
		}
	case AlignRight:
		target = bounds[0].X2
		for _, r := range bounds[1:] {
			if r.X2 > target {
				target = r.X2
			}
		}
	case AlignTop:
		target = bounds[0].Y1
		for _, r := range bounds[1:] {
			if r.Y1 < target {
				target = r.Y1
			}
		}
	case AlignBottom:
		target = bounds[0].Y2
		for _, r := range bounds[1:] {
			if r.Y2 > target {
				target = r.Y2
			}
		}
	case AlignCenterH:
		sum := 0.0
		for _, r := range bounds {
			sum += r.Center().X
		}
		target = sum / float64(len(bounds))
	case AlignCenterV:
		sum := 0.0
		for _, r := range bounds {
			sum += r.Center().Y
		}
		target = sum / float64(len(bounds))
	}

	for i, id := range ids {
		r := bounds[i]
		var dx, dy float64
		switch mode {
		case AlignLeft:
			dx = target - r.X1
		case AlignRight:
			dx = target - r.X2
		case AlignTop:
			dy = target - r.Y1
		case AlignBottom:
			dy = target - r.Y2
		case AlignCenterH:
			dx = target - r.Center().X
		case AlignCenterV:
			dy = target - r.Center().Y
		}
		s.containment.TranslateWithChildren(id, dx, dy, nil)
		s.containment.ExpandParentToContain(id)
	}
	s.containment.DetectPartialContainment()
}

// DistributeAxis selects which axis distribute() spaces along.
type DistributeAxis int

const (
	DistributeHorizontal DistributeAxis = iota
	DistributeVertical
)

// Distribute spaces the selection evenly edge-to-edge along axis, with at
// least MinSeparation between adjacent rectangles. The first element stays
// fixed; the last stays in place unless the MinSeparation floor pushes it
// outward. Pushes one snapshot.
func (s *Session) Distribute(axis DistributeAxis) {
	ids, bounds := s.orderedSelectionBounds(axis == DistributeHorizontal)
	if len(ids) < 3 {
		return
	}
	s.pushSnapshot()

	minSep := s.Diagram.Settings.MinSeparation
	if axis == DistributeHorizontal {
		totalWidth := 0.0
		for _, r := range bounds {
			totalWidth += r.Width()
		}
		span := bounds[len(bounds)-1].X2 - bounds[0].X1
		gap := (span - totalWidth) / float64(len(bounds)-1)
		if gap < minSep {
			gap = minSep
		}
		x := bounds[0].X1
		for i, id := range ids {
			dx := x - bounds[i].X1
			s.containment.TranslateWithChildren(id, dx, 0, nil)
			x += bounds[i].Width() + gap
		}
	} else {
		totalHeight := 0.0
		for _, r := range bounds {
			totalHeight += r.Height()
		}
		span := bounds[len(bounds)-1].Y2 - bounds[0].Y1
		gap := (span - totalHeight) / float64(len(bounds)-1)
		if gap < minSep {
			gap = minSep
		}
		y := bounds[0].Y1
		for i, id := range ids {
			dy := y - bounds[i].Y1
			s.containment.TranslateWithChildren(id, 0, dy, nil)
			y += bounds[i].Height() + gap
		}
	}
	for _, id := range ids {
		s.containment.ExpandParentToContain(id)
	}
	s.containment.DetectPartialContainment()
}

// DeleteSelection deletes every selected element (which also deletes its
// incident connections) and pushes one snapshot.
func (s *Session) DeleteSelection() {
	ids := s.Selection.IDs()
	if len(ids) == 0 {
		return
	}
	s.pushSnapshot()
	for _, id := range ids {
		s.Diagram.Delete(id)
	}
	s.Selection.Clear()
}

// NudgeSelection translates every selected element by (dx, dy), intended
// to be called with exactly one of dx, dy nonzero and equal to +/-1. Push
// undo only on the first nudge of an uncommitted keyboard burst; call
// EndNudgeBurst when the key is released to arm the next push.
func (s *Session) NudgeSelection(dx, dy float64) {
	if !s.nudgeBurst {
		s.pushSnapshot()
		s.nudgeBurst = true
	}
	visited := map[core.ElementId]bool{}
	for _, id := range s.Selection.IDs() {
		s.containment.TranslateWithChildren(id, dx, dy, visited)
	}
}

// EndNudgeBurst finalises a nudge burst: region membership refresh,
// partial-containment detection, and arming the next NudgeSelection call
// to push a fresh snapshot.
func (s *Session) EndNudgeBurst() {
	if !s.nudgeBurst {
		return
	}
	s.containment.UpdateAllNodeRegions()
	s.containment.DetectPartialContainment()
	s.nudgeBurst = false
}
