package core

import "jmt/geometry"

// Metadata holds optional diagram bookkeeping fields.
type Metadata struct {
	Created string
	Version string
}

// Diagram holds every element of one open diagram plus its settings.
// Collections are ordered slices, not maps, so that persistence preserves
// element order for deterministic diffs. Lookup by ElementId is a linear
// scan over the relevant slice rather than a side index.
type Diagram struct {
	Type     DiagramType
	Name     string
	FilePath string
	Settings Settings
	Metadata Metadata

	States       []State
	Regions      []Region
	PseudoStates []PseudoState
	Connections  []Connection
	Aux          []AuxEntity

	RootRegionID ElementId
}

// NewDiagram creates an empty diagram of the given type with a root
// region already minted.
func NewDiagram(t DiagramType, name string) *Diagram {
	d := &Diagram{
		Type:     t,
		Name:     name,
		Settings: DefaultSettings(),
	}
	root := Region{
		ID:     NewElementId(),
		Name:   "root",
		Rect:   geometry.NewRect(0, 0, 2000, 2000),
		IsRoot: true,
	}
	d.Regions = append(d.Regions, root)
	d.RootRegionID = root.ID
	return d
}

// --- State accessors ---

func (d *Diagram) StateIndex(id ElementId) int {
	for i := range d.States {
		if d.States[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Diagram) State(id ElementId) (*State, bool) {
	if i := d.StateIndex(id); i >= 0 {
		return &d.States[i], true
	}
	return nil, false
}

// --- Region accessors ---

func (d *Diagram) RegionIndex(id ElementId) int {
	for i := range d.Regions {
		if d.Regions[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Diagram) Region(id ElementId) (*Region, bool) {
	if i := d.RegionIndex(id); i >= 0 {
		return &d.Regions[i], true
	}
	return nil, false
}

// --- PseudoState accessors ---

func (d *Diagram) PseudoStateIndex(id ElementId) int {
	for i := range d.PseudoStates {
		if d.PseudoStates[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Diagram) PseudoState(id ElementId) (*PseudoState, bool) {
	if i := d.PseudoStateIndex(id); i >= 0 {
		return &d.PseudoStates[i], true
	}
	return nil, false
}

// --- Connection accessors ---

func (d *Diagram) ConnectionIndex(id ElementId) int {
	for i := range d.Connections {
		if d.Connections[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Diagram) Connection(id ElementId) (*Connection, bool) {
	if i := d.ConnectionIndex(id); i >= 0 {
		return &d.Connections[i], true
	}
	return nil, false
}

// --- Aux accessors ---

func (d *Diagram) AuxIndex(id ElementId) int {
	for i := range d.Aux {
		if d.Aux[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Diagram) AuxEntity(id ElementId) (*AuxEntity, bool) {
	if i := d.AuxIndex(id); i >= 0 {
		return &d.Aux[i], true
	}
	return nil, false
}

// Bounds returns the rectangle and kind of any element (state, pseudo-state
// or auxiliary entity) by id, or ok=false if id is stale or is a
// connection/region (which are addressed separately).
func (d *Diagram) Bounds(id ElementId) (geometry.Rect, Kind, bool) {
	if s, ok := d.State(id); ok {
		return s.Rect, KindState, true
	}
	if p, ok := d.PseudoState(id); ok {
		return p.Rect, KindPseudoState, true
	}
	if a, ok := d.AuxEntity(id); ok {
		return a.Rect, a.AuxKind, true
	}
	return geometry.Rect{}, 0, false
}

// FindAt returns the innermost element (smallest bounding-rect area) whose
// bounds contain point, skipping excludeID. States and pseudo-states are
// considered; connections and labels are hit-tested separately by the
// render package, which layers in paint order and a perpendicular-distance
// threshold rather than bare area.
func (d *Diagram) FindAt(point geometry.Point, excludeID ElementId) (ElementId, Kind, bool) {
	bestArea := -1.0
	var bestID ElementId
	var bestKind Kind
	found := false

	consider := func(id ElementId, rect geometry.Rect, kind Kind) {
		if id == excludeID {
			return
		}
		if !rect.ContainsPoint(point) {
			return
		}
		area := rect.Area()
		if !found || area < bestArea {
			bestArea, bestID, bestKind, found = area, id, kind, true
		}
	}

	for i := range d.States {
		consider(d.States[i].ID, d.States[i].Rect, KindState)
	}
	for i := range d.PseudoStates {
		consider(d.PseudoStates[i].ID, d.PseudoStates[i].Rect, KindPseudoState)
	}
	for i := range d.Aux {
		consider(d.Aux[i].ID, d.Aux[i].Rect, d.Aux[i].AuxKind)
	}
	return bestID, bestKind, found
}

// Translate moves an element by (dx, dy). For a State, its regions' bounds
// translate with it; descendants are handled by the containment engine's
// TranslateWithChildren, not here — Translate alone moves exactly one
// element's own rectangle.
func (d *Diagram) Translate(id ElementId, dx, dy float64) ErrorKind {
	if s, ok := d.State(id); ok {
		s.Rect = s.Rect.Translate(dx, dy)
		for i := range d.Regions {
			if d.Regions[i].ParentStateID == id {
				d.Regions[i].Rect = d.Regions[i].Rect.Translate(dx, dy)
			}
		}
		return OK
	}
	if p, ok := d.PseudoState(id); ok {
		p.Rect = p.Rect.Translate(dx, dy)
		return OK
	}
	if a, ok := d.AuxEntity(id); ok {
		a.Rect = a.Rect.Translate(dx, dy)
		return OK
	}
	return NotFound
}

// ResizeCorner resizes a State from one of its corners, clamped to the
// diagram's minimum state dimensions. Pseudo-states are never resizable.
func (d *Diagram) ResizeCorner(id ElementId, corner geometry.Corner, dx, dy float64) ErrorKind {
	s, ok := d.State(id)
	if !ok {
		return NotFound
	}
	s.Rect = geometry.ResizeCorner(s.Rect, corner, dx, dy, d.Settings.MinStateWidth, d.Settings.MinStateHeight)
	return OK
}

// Delete removes an element. For a State, it recursively deletes its
// regions and everything inside them; for any element it also removes
// every incident connection.
func (d *Diagram) Delete(id ElementId) ErrorKind {
	if i := d.StateIndex(id); i >= 0 {
		d.deleteStateContents(id)
		d.removeFromParentRegion(id)
		i = d.StateIndex(id) // deleting descendants may have shifted the slice
		d.States = append(d.States[:i], d.States[i+1:]...)
		d.removeIncidentConnections(id)
		return OK
	}
	if i := d.PseudoStateIndex(id); i >= 0 {
		d.removeFromParentRegion(id)
		d.PseudoStates = append(d.PseudoStates[:i], d.PseudoStates[i+1:]...)
		d.removeIncidentConnections(id)
		return OK
	}
	if i := d.AuxIndex(id); i >= 0 {
		d.Aux = append(d.Aux[:i], d.Aux[i+1:]...)
		d.removeIncidentConnections(id)
		return OK
	}
	if i := d.ConnectionIndex(id); i >= 0 {
		d.Connections = append(d.Connections[:i], d.Connections[i+1:]...)
		return OK
	}
	return NotFound
}

func (d *Diagram) deleteStateContents(stateID ElementId) {
	s, ok := d.State(stateID)
	if !ok {
		return
	}
	for _, regionID := range append([]ElementId{}, s.Regions...) {
		r, ok := d.Region(regionID)
		if !ok {
			continue
		}
		for _, childID := range append([]ElementId{}, r.Children...) {
			d.Delete(childID)
		}
		if ri := d.RegionIndex(regionID); ri >= 0 {
			d.Regions = append(d.Regions[:ri], d.Regions[ri+1:]...)
		}
	}
}

func (d *Diagram) removeFromParentRegion(id ElementId) {
	for i := range d.Regions {
		d.Regions[i].Children = removeID(d.Regions[i].Children, id)
	}
}

func (d *Diagram) removeIncidentConnections(id ElementId) {
	kept := d.Connections[:0]
	for _, c := range d.Connections {
		if c.SourceID == id || c.TargetID == id {
			continue
		}
		kept = append(kept, c)
	}
	d.Connections = kept
}

func removeID(ids []ElementId, target ElementId) []ElementId {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

// Iter returns the ids of every element of the given kind, or of every
// element if kind is nil.
func (d *Diagram) Iter(kind *Kind) []ElementId {
	var ids []ElementId
	add := func(id ElementId, k Kind) {
		if kind == nil || *kind == k {
			ids = append(ids, id)
		}
	}
	for i := range d.States {
		add(d.States[i].ID, KindState)
	}
	for i := range d.Regions {
		add(d.Regions[i].ID, KindRegion)
	}
	for i := range d.PseudoStates {
		add(d.PseudoStates[i].ID, KindPseudoState)
	}
	for i := range d.Connections {
		add(d.Connections[i].ID, KindConnection)
	}
	for i := range d.Aux {
		add(d.Aux[i].ID, d.Aux[i].AuxKind)
	}
	return ids
}

// ContentBounds returns the tight bounding rectangle of every element in
// the diagram, used to size the scroll area and as the basis for the
// raster exporter's autocrop.
func (d *Diagram) ContentBounds() (geometry.Rect, bool) {
	first := true
	var bounds geometry.Rect
	grow := func(r geometry.Rect) {
		if first {
			bounds, first = r, false
			return
		}
		if r.X1 < bounds.X1 {
			bounds.X1 = r.X1
		}
		if r.Y1 < bounds.Y1 {
			bounds.Y1 = r.Y1
		}
		if r.X2 > bounds.X2 {
			bounds.X2 = r.X2
		}
		if r.Y2 > bounds.Y2 {
			bounds.Y2 = r.Y2
		}
	}
	for i := range d.States {
		grow(d.States[i].Rect)
	}
	for i := range d.PseudoStates {
		grow(d.PseudoStates[i].Rect)
	}
	for i := range d.Aux {
		grow(d.Aux[i].Rect)
	}
	return bounds, !first
}

// Clone returns a deep copy of the diagram, deep-copying slices and any
// nested maps.
func (d *Diagram) Clone() *Diagram {
	if d == nil {
		return nil
	}
	c := *d
	c.States = append([]State(nil), d.States...)
	c.Regions = make([]Region, len(d.Regions))
	for i, r := range d.Regions {
		c.Regions[i] = r
		c.Regions[i].Children = append([]ElementId(nil), r.Children...)
	}
	for i := range c.States {
		c.States[i].Regions = append([]ElementId(nil), d.States[i].Regions...)
	}
	c.PseudoStates = append([]PseudoState(nil), d.PseudoStates...)
	c.Connections = make([]Connection, len(d.Connections))
	for i, conn := range d.Connections {
		c.Connections[i] = conn
		c.Connections[i].Segments = append([]geometry.Segment(nil), conn.Segments...)
	}
	c.Aux = make([]AuxEntity, len(d.Aux))
	for i, a := range d.Aux {
		c.Aux[i] = a
		if a.Attrs != nil {
			c.Aux[i].Attrs = make(map[string]string, len(a.Attrs))
			for k, v := range a.Attrs {
				c.Aux[i].Attrs[k] = v
			}
		}
	}
	return &c
}
