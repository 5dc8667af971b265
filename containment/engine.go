// Package containment keeps the State/Region tree consistent with
// geometry: resolving which region a point or a moving node belongs in,
// re-parenting after a move, recomputing region bounds, and flagging
// partial containment. It is the single most intricate subsystem in the
// model, built around an innermost-container-wins, exclude-id-aware
// containment search over JMT's nested State/Region tree.
package containment

import (
	"log/slog"

	"jmt/core"
	"jmt/geometry"
)

// Engine wraps a *core.Diagram and exposes its containment operations as
// methods.
type Engine struct {
	D *core.Diagram
}

func New(d *core.Diagram) *Engine { return &Engine{D: d} }

// FindStateAtPointExcluding returns the innermost State (smallest rectangle
// area) whose rectangle contains point, skipping excludeID. Uses current
// in-memory region bounds.
func (e *Engine) FindStateAtPointExcluding(point geometry.Point, excludeID *core.ElementId) (core.ElementId, bool) {
	bestArea := -1.0
	var bestID core.ElementId
	found := false
	for i := range e.D.States {
		s := &e.D.States[i]
		if excludeID != nil && s.ID == *excludeID {
			continue
		}
		if !s.Rect.ContainsPoint(point) {
			continue
		}
		area := s.Rect.Area()
		if !found || area < bestArea {
			bestArea, bestID, found = area, s.ID, true
		}
	}
	return bestID, found
}

// FindRegionAtPointForNode returns the innermost Region whose rectangle
// contains point AND whose parent state is strictly larger than nodeArea,
// preventing a node from finding its own interior as a parent (which
// would otherwise loop forever chasing an ever-smaller container). If
// no such region exists, it returns the diagram's root region.
func (e *Engine) FindRegionAtPointForNode(point geometry.Point, nodeArea float64, excludeID *core.ElementId) core.ElementId {
	bestArea := -1.0
	var bestID core.ElementId
	found := false

	for i := range e.D.Regions {
		r := &e.D.Regions[i]
		if r.IsRoot {
			continue
		}
		if excludeID != nil && r.ParentStateID == *excludeID {
			continue
		}
		if !r.Rect.ContainsPoint(point) {
			continue
		}
		parent, ok := e.D.State(r.ParentStateID)
		if !ok || parent.Rect.Area() <= nodeArea {
			continue
		}
		area := r.Rect.Area()
		if !found || area < bestArea {
			bestArea, bestID, found = area, r.ID, true
		}
	}
	if !found {
		return e.D.RootRegionID
	}
	return bestID
}

// AssignToRegion sets node's parent region and ensures membership in the
// region's children vector, removing it from any previous region first.
func (e *Engine) AssignToRegion(nodeID, regionID core.ElementId) {
	e.removeFromAllRegions(nodeID)

	if r, ok := e.D.Region(regionID); ok {
		if !containsID(r.Children, nodeID) {
			r.Children = append(r.Children, nodeID)
		}
	}
	e.setParentRegion(nodeID, regionID)
}

func (e *Engine) removeFromAllRegions(nodeID core.ElementId) {
	for i := range e.D.Regions {
		e.D.Regions[i].Children = removeID(e.D.Regions[i].Children, nodeID)
	}
}

func (e *Engine) setParentRegion(nodeID, regionID core.ElementId) {
	if s, ok := e.D.State(nodeID); ok {
		s.ParentRegionID = &regionID
		return
	}
	if p, ok := e.D.PseudoState(nodeID); ok {
		p.ParentRegionID = &regionID
	}
}

// UpdateNodeRegion recomputes node's correct parent region from its
// current rectangle: refresh region bounds throughout the diagram, find a
// suitable parent state (the smallest state strictly larger than the node
// whose rectangle contains the node's centre; a default region is
// synthesised if it has none), find a region inside that state, and
// assign the node there.
func (e *Engine) UpdateNodeRegion(nodeID core.ElementId) {
	rect, _, ok := e.D.Bounds(nodeID)
	if !ok {
		slog.Debug("UpdateNodeRegion called on an id with no bounds", "id", nodeID)
		return
	}

	e.refreshAllRegionBounds()

	// A state no larger than the node is never its parent, or the two
	// could end up inside each other's regions.
	nodeArea, center := rect.Area(), rect.Center()
	var parent *core.State
	for i := range e.D.States {
		s := &e.D.States[i]
		if s.ID == nodeID || s.Rect.Area() <= nodeArea || !s.Rect.ContainsPoint(center) {
			continue
		}
		if parent == nil || s.Rect.Area() < parent.Rect.Area() {
			parent = s
		}
	}
	if parent == nil {
		e.AssignToRegion(nodeID, e.D.RootRegionID)
		return
	}

	if len(parent.Regions) == 0 {
		e.addDefaultRegion(parent)
	}

	regionID := e.regionInsideStateForNode(parent, rect)
	e.AssignToRegion(nodeID, regionID)
}

// regionInsideStateForNode picks, among parent's own regions, the one
// whose rectangle contains the node's centre; ties resolved by centre
// containment.
func (e *Engine) regionInsideStateForNode(parent *core.State, nodeRect geometry.Rect) core.ElementId {
	center := nodeRect.Center()
	for _, regionID := range parent.Regions {
		r, ok := e.D.Region(regionID)
		if !ok {
			continue
		}
		if r.Rect.ContainsPoint(center) {
			return r.ID
		}
	}
	// fall back to the first region (e.g. node centre on a separator).
	if len(parent.Regions) > 0 {
		return parent.Regions[0]
	}
	return e.D.RootRegionID
}

// RegionForPoint resolves, without mutating the diagram, the region an
// element centred at point would be assigned to by UpdateNodeRegion: the
// innermost already-existing region inside the innermost containing state.
// ok is false when the containing state has no regions yet (UpdateNodeRegion
// would synthesise one via addDefaultRegion), so there is no existing region
// to report and therefore nothing it could already contain.
func (e *Engine) RegionForPoint(point geometry.Point) (regionID core.ElementId, ok bool) {
	parentID, found := e.FindStateAtPointExcluding(point, nil)
	if !found {
		return e.D.RootRegionID, true
	}
	parent, _ := e.D.State(parentID)
	if len(parent.Regions) == 0 {
		return core.ElementId{}, false
	}
	centered := geometry.Rect{X1: point.X, Y1: point.Y, X2: point.X, Y2: point.Y}
	return e.regionInsideStateForNode(parent, centered), true
}

func (e *Engine) addDefaultRegion(s *core.State) {
	r := core.Region{
		ID:            core.NewElementId(),
		Name:          "Region",
		Rect:          s.Rect,
		ParentStateID: s.ID,
		Orientation:   s.RegionOrientation,
	}
	e.D.Regions = append(e.D.Regions, r)
	s.Regions = append(s.Regions, r.ID)
	e.RecalculateRegions(s.ID)
}

// UpdateAllNodeRegions calls UpdateNodeRegion for every state and
// pseudo-state, used at drag-end.
func (e *Engine) UpdateAllNodeRegions() {
	ids := make([]core.ElementId, 0, len(e.D.States)+len(e.D.PseudoStates))
	for i := range e.D.States {
		ids = append(ids, e.D.States[i].ID)
	}
	for i := range e.D.PseudoStates {
		ids = append(ids, e.D.PseudoStates[i].ID)
	}
	for _, id := range ids {
		e.UpdateNodeRegion(id)
	}
}

func (e *Engine) refreshAllRegionBounds() {
	for i := range e.D.States {
		e.RecalculateRegions(e.D.States[i].ID)
	}
}

// RecalculateRegions recomputes each region's rectangle from the state's
// rectangle and the region list's orientation, with siblings retaining
// their share-of-state ratio (as opposed to naive equal division).
func (e *Engine) RecalculateRegions(stateID core.ElementId) {
	s, ok := e.D.State(stateID)
	if !ok || len(s.Regions) == 0 {
		return
	}

	header := s.HeaderHeight(e.D.Settings)
	interior := geometry.Rect{X1: s.Rect.X1, Y1: s.Rect.Y1 + header, X2: s.Rect.X2, Y2: s.Rect.Y2}

	regions := make([]*core.Region, 0, len(s.Regions))
	for _, id := range s.Regions {
		if r, ok := e.D.Region(id); ok {
			regions = append(regions, r)
		}
	}
	if len(regions) == 0 {
		return
	}

	orientation := s.RegionOrientation
	ratios := shareRatios(regions, orientation, interior)

	if orientation == core.Horizontal {
		x := interior.X1
		width := interior.Width()
		for i, r := range regions {
			w := width * ratios[i]
			r.Rect = geometry.Rect{X1: x, Y1: interior.Y1, X2: x + w, Y2: interior.Y2}
			r.Orientation = orientation
			x += w
		}
		// last region's right edge pinned exactly to interior's.
		regions[len(regions)-1].Rect.X2 = interior.X2
	} else {
		y := interior.Y1
		height := interior.Height()
		for i, r := range regions {
			h := height * ratios[i]
			r.Rect = geometry.Rect{X1: interior.X1, Y1: y, X2: interior.X2, Y2: y + h}
			r.Orientation = orientation
			y += h
		}
		regions[len(regions)-1].Rect.Y2 = interior.Y2
	}

	s.Rect = unionStateRect(s.Rect, regions, header)
}

// shareRatios returns, for each region, the fraction of the tiling axis it
// currently occupies (its prior extent divided by the sum of all prior
// extents). If no region has a positive extent (all are zero-sized along
// the tiling axis) each gets an equal share.
func shareRatios(regions []*core.Region, orientation core.Orientation, interior geometry.Rect) []float64 {
	extents := make([]float64, len(regions))
	total := 0.0
	for i, r := range regions {
		var ext float64
		if orientation == core.Horizontal {
			ext = r.Rect.Width()
		} else {
			ext = r.Rect.Height()
		}
		if ext < 0 {
			ext = 0
		}
		extents[i] = ext
		total += ext
	}
	ratios := make([]float64, len(regions))
	if total <= 0 {
		for i := range ratios {
			ratios[i] = 1.0 / float64(len(regions))
		}
		return ratios
	}
	for i, ext := range extents {
		ratios[i] = ext / total
	}
	return ratios
}

// unionStateRect keeps a composite state's own rectangle equal to the
// union of its regions: header band above, regions tiled below.
func unionStateRect(current geometry.Rect, regions []*core.Region, header float64) geometry.Rect {
	minX, minY := regions[0].Rect.X1, current.Y1
	maxX, maxY := regions[0].Rect.X2, regions[0].Rect.Y2
	for _, r := range regions {
		if r.Rect.X1 < minX {
			minX = r.Rect.X1
		}
		if r.Rect.X2 > maxX {
			maxX = r.Rect.X2
		}
		if r.Rect.Y2 > maxY {
			maxY = r.Rect.Y2
		}
	}
	return geometry.Rect{X1: minX, Y1: minY, X2: maxX, Y2: maxY}
}

// DetectPartialContainment sets HasError on any state/pseudo-state node
// whose rectangle has 1, 2, or 3 corners inside its parent region (full
// containment or total exteriority is permitted transitionally).
func (e *Engine) DetectPartialContainment() {
	check := func(nodeRect geometry.Rect, parentRegionID *core.ElementId) bool {
		if parentRegionID == nil {
			return false
		}
		r, ok := e.D.Region(*parentRegionID)
		if !ok {
			return false
		}
		n := geometry.CornersIn(nodeRect, r.Rect)
		return n > 0 && n < 4
	}
	for i := range e.D.States {
		e.D.States[i].HasError = check(e.D.States[i].Rect, e.D.States[i].ParentRegionID)
	}
	for i := range e.D.PseudoStates {
		e.D.PseudoStates[i].HasError = check(e.D.PseudoStates[i].Rect, e.D.PseudoStates[i].ParentRegionID)
	}
}

// TranslateWithChildren translates nodeID and every descendant node (via
// its regions) exactly once; a visited-id set prevents double translation
// for, e.g., a state and a pseudo-state that both happen to be selected.
func (e *Engine) TranslateWithChildren(nodeID core.ElementId, dx, dy float64, visited map[core.ElementId]bool) {
	if visited == nil {
		visited = map[core.ElementId]bool{}
	}
	if visited[nodeID] {
		return
	}
	visited[nodeID] = true

	e.D.Translate(nodeID, dx, dy)

	s, ok := e.D.State(nodeID)
	if !ok {
		return
	}
	for _, regionID := range s.Regions {
		r, ok := e.D.Region(regionID)
		if !ok {
			continue
		}
		for _, childID := range r.Children {
			e.TranslateWithChildren(childID, dx, dy, visited)
		}
	}
}

// ExpandParentToContain checks whether node's rectangle escapes its parent
// region in any direction; if so it expands the parent State on that side
// by the shortfall plus a margin, translates siblings of node's parent
// state on the opposite side of the expansion to preserve their relative
// positions, and recurses to the grandparent.
func (e *Engine) ExpandParentToContain(nodeID core.ElementId) {
	const margin = 20.0

	nodeRect, _, ok := e.D.Bounds(nodeID)
	if !ok {
		return
	}
	var parentRegionID *core.ElementId
	if s, ok := e.D.State(nodeID); ok {
		parentRegionID = s.ParentRegionID
	} else if p, ok := e.D.PseudoState(nodeID); ok {
		parentRegionID = p.ParentRegionID
	}
	if parentRegionID == nil {
		return
	}
	region, ok := e.D.Region(*parentRegionID)
	if !ok || region.IsRoot {
		return
	}
	parentState, ok := e.D.State(region.ParentStateID)
	if !ok {
		return
	}

	dxLeft := region.Rect.X1 - nodeRect.X1
	dxRight := nodeRect.X2 - region.Rect.X2
	dyTop := region.Rect.Y1 - nodeRect.Y1
	dyBottom := nodeRect.Y2 - region.Rect.Y2

	expanded := false
	grandparentShift := geometry.Point{}

	if dxLeft > 0 {
		shortfall := dxLeft + margin
		e.shiftSiblingsOfState(parentState.ID, -shortfall, 0, siblingSideLeft)
		parentState.Rect.X1 -= shortfall
		grandparentShift.X -= shortfall
		expanded = true
	}
	if dxRight > 0 {
		shortfall := dxRight + margin
		e.shiftSiblingsOfState(parentState.ID, shortfall, 0, siblingSideRight)
		parentState.Rect.X2 += shortfall
		grandparentShift.X += shortfall
		expanded = true
	}
	if dyTop > 0 {
		shortfall := dyTop + margin
		e.shiftSiblingsOfState(parentState.ID, 0, -shortfall, siblingSideTop)
		parentState.Rect.Y1 -= shortfall
		grandparentShift.Y -= shortfall
		expanded = true
	}
	if dyBottom > 0 {
		shortfall := dyBottom + margin
		e.shiftSiblingsOfState(parentState.ID, 0, shortfall, siblingSideBottom)
		parentState.Rect.Y2 += shortfall
		grandparentShift.Y += shortfall
		expanded = true
	}

	if !expanded {
		return
	}

	e.RecalculateRegions(parentState.ID)
	e.ExpandParentToContain(parentState.ID)
}

type siblingSide int

const (
	siblingSideLeft siblingSide = iota
	siblingSideRight
	siblingSideTop
	siblingSideBottom
)

// shiftSiblingsOfState translates every state sharing stateID's parent
// region, other than stateID itself, that lies on the named side of it —
// so an expansion doesn't visually overlap them.
func (e *Engine) shiftSiblingsOfState(stateID core.ElementId, dx, dy float64, side siblingSide) {
	s, ok := e.D.State(stateID)
	if !ok || s.ParentRegionID == nil {
		return
	}
	region, ok := e.D.Region(*s.ParentRegionID)
	if !ok {
		return
	}
	for _, siblingID := range region.Children {
		if siblingID == stateID {
			continue
		}
		rect, _, ok := e.D.Bounds(siblingID)
		if !ok {
			continue
		}
		onSide := false
		switch side {
		case siblingSideLeft:
			onSide = rect.X2 <= s.Rect.X1
		case siblingSideRight:
			onSide = rect.X1 >= s.Rect.X2
		case siblingSideTop:
			onSide = rect.Y2 <= s.Rect.Y1
		case siblingSideBottom:
			onSide = rect.Y1 >= s.Rect.Y2
		}
		if onSide {
			e.TranslateWithChildren(siblingID, dx, dy, nil)
		}
	}
}

func containsID(ids []core.ElementId, target core.ElementId) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}

func removeID(ids []core.ElementId, target core.ElementId) []core.ElementId {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}
