package core

import "jmt/geometry"

// State is a node in a state-machine or activity diagram that may own
// Regions: entry/do/exit activity strings, an optional fill color
// override, and transient has_error/has_focus flags.
type State struct {
	ID                     ElementId
	Name                   string
	Rect                   geometry.Rect
	FillColor              *geometry.Color
	ShowActivitiesOverride *bool
	Entry, Do, Exit        string
	RegionOrientation      Orientation
	Regions                []ElementId // ordered child Region ids
	ParentRegionID         *ElementId
	HasError               bool `json:"-"`
	HasFocus               bool `json:"-"`
}

// IsComposite reports whether this state owns at least one region.
func (s *State) IsComposite() bool { return len(s.Regions) > 0 }

// effectiveShowActivities resolves the diagram-wide default against this
// state's optional override.
func (s *State) effectiveShowActivities(settings Settings) bool {
	if s.ShowActivitiesOverride != nil {
		return *s.ShowActivitiesOverride
	}
	return settings.ShowActivities
}

// HasActivities reports whether entry/do/exit text is present.
func (s *State) HasActivities() bool {
	return s.Entry != "" || s.Do != "" || s.Exit != ""
}

// HeaderHeight returns the height reserved at the top of the state for its
// name and, when applicable, its entry/do/exit activity lines.
func (s *State) HeaderHeight(settings Settings) float64 {
	if s.effectiveShowActivities(settings) && s.HasActivities() {
		return 40
	}
	return 25
}

// Region is a container inside a composite State that tiles the state's
// interior along one axis.
type Region struct {
	ID            ElementId
	Name          string
	Rect          geometry.Rect
	ParentStateID ElementId
	Children      []ElementId // ordered State and PseudoState ids
	Orientation   Orientation
	HasFocus      bool `json:"-"`
	IsRoot        bool // the diagram-level sentinel region
}

// PseudoState is an Initial/Final/Choice/Junction/Fork/Join marker.
type PseudoState struct {
	ID             ElementId
	Name           string
	Kind           PseudoStateKind
	Rect           geometry.Rect
	ParentRegionID *ElementId
	HasError       bool `json:"-"`
	HasFocus       bool `json:"-"`
}

// Connection is a directed edge (transition) between two elements.
// Segments are derived, never persisted.
type Connection struct {
	ID                     ElementId
	SourceID, TargetID     ElementId
	Event, Guard, Action   string
	SourceSide, TargetSide Side
	SourceSlotOffset       float64
	TargetSlotOffset       float64
	LabelOffset            geometry.Point
	Selected               bool               `json:"-"`
	LabelSelected          bool               `json:"-"`
	Segments               []geometry.Segment `json:"-"` // not persisted; recomputed
}

// Label returns the event[guard]/action text for this connection, in the
// conventional UML transition label format. Guard and action are appended
// only when non-empty; text passes through unmodified — no
// special-casing of an "else" guard.
func (c *Connection) Label() string {
	label := c.Event
	if c.Guard != "" {
		label += "[" + c.Guard + "]"
	}
	if c.Action != "" {
		label += "/" + c.Action
	}
	return label
}

// IsSelf reports whether this connection's source and target are the same
// element, the explicit self-connection case.
func (c *Connection) IsSelf() bool { return c.SourceID == c.TargetID }

// Midpoint returns the point at half the total arc length of Segments, or
// the zero Point if there are no segments yet.
func (c *Connection) Midpoint() geometry.Point {
	if len(c.Segments) == 0 {
		return geometry.Point{}
	}
	total := 0.0
	for _, s := range c.Segments {
		total += s.Length()
	}
	half := total / 2
	acc := 0.0
	for _, s := range c.Segments {
		segLen := s.Length()
		if acc+segLen >= half {
			remaining := half - acc
			t := 0.0
			if segLen > 0 {
				t = remaining / segLen
			}
			return geometry.Point{
				X: s.Start.X + t*(s.End.X-s.Start.X),
				Y: s.Start.Y + t*(s.End.Y-s.Start.Y),
			}
		}
		acc += segLen
	}
	return c.Segments[len(c.Segments)-1].End
}

// LabelPosition returns where this connection's label should be drawn:
// the midpoint plus LabelOffset (default zero offset means directly on the
// midpoint).
func (c *Connection) LabelPosition() geometry.Point {
	mid := c.Midpoint()
	return mid.Add(c.LabelOffset.X, c.LabelOffset.Y)
}

// AuxEntity is the uniform shape shared by the per-diagram-type auxiliary
// entities (Lifeline, Actor, UseCase, SystemBoundary, Action, Swimlane,
// ObjectNode, CombinedFragment, UseCaseRelationship, Message, ControlFlow).
// They participate in selection and dragging but never in the containment
// engine (Kind.IsContainmentParticipant). Free-form, element-specific
// string attributes live in Attrs — a small set of named strings rather
// than one struct field per diagram type.
type AuxEntity struct {
	ID      ElementId
	AuxKind Kind
	Name    string
	Rect    geometry.Rect
	// From and To are set instead of Rect for entities defined by two endpoints
	// (UseCaseRelationship, Message, ControlFlow).
	From, To *ElementId
	Attrs    map[string]string
	HasFocus bool `json:"-"`
}

func (a *AuxEntity) Bounds() geometry.Rect { return a.Rect }
