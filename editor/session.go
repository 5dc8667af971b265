// Package editor implements the selection and edit-mode state machine,
// the interaction-operation verbs the input layer calls, and
// snapshot-based undo/redo. Session is a single struct that owns a
// diagram, a mode, a selection, and a history manager, and exposes one
// method per user-facing verb, over JMT's State/Region/Connection model
// and its mode set.
package editor

import (
	"time"

	"jmt/containment"
	"jmt/core"
	"jmt/geometry"
	"jmt/persistence"
	"jmt/routing"
)

// dragKind discriminates what continue_drag/end_drag apply the delta to.
type dragKind int

const (
	dragNone dragKind = iota
	dragResize
	dragMoveSelection
	dragMoveSeparator
	dragMoveLabel
	dragMarquee
	dragLasso
)

type dragState struct {
	kind         dragKind
	start        geometry.Point
	last         geometry.Point
	resizeID     core.ElementId
	resizeCorner geometry.Corner
	sepStateID   core.ElementId
	sepIndex     int
	labelConnID  core.ElementId
	lassoPoints  []geometry.Point
}

// clickRecord supports a core-owned double-click clock: double-click
// detection can't rely solely on the toolkit's own click signal, which
// fires both single and double on the second click.
type clickRecord struct {
	at    time.Time
	point geometry.Point
	valid bool
}

// Session is the ephemeral, non-persisted editing state layered over a
// *core.Diagram: selection, mode, history, and in-progress drag/click
// state. Deliberately kept out of core.Diagram (see DESIGN.md) so the
// persisted model stays exactly the data that goes to disk.
type Session struct {
	Diagram     *core.Diagram
	containment *containment.Engine
	Selection   *Selection
	Mode        Mode
	history     *History
	Dirty       bool

	pendingSource *core.ElementId // Connect mode: the chosen source element
	drag          dragState
	lastClick     clickRecord
	nudgeBurst    bool // true after the first nudge of an uncommitted keyboard burst

	// AuxKind is consulted when Mode == ModeAddAux to know which
	// auxiliary entity kind to place next.
	AuxKind core.Kind
}

// NewSession wraps d in a fresh editing session in ModeArrow with empty
// selection and history.
func NewSession(d *core.Diagram) *Session {
	return &Session{
		Diagram:     d,
		containment: containment.New(d),
		Selection:   newSelection(),
		Mode:        ModeArrow,
		history:     NewHistory(DefaultHistoryCapacity),
	}
}

// pushSnapshot serialises the current diagram and pushes it onto the undo
// stack before the operation mutates anything. Called at the start of
// every operation that pushes exactly one snapshot.
func (s *Session) pushSnapshot() {
	data, err := persistence.Save(s.Diagram)
	if err != nil {
		return
	}
	s.history.Push(data)
	s.Dirty = true
}

// Undo restores the most recent undo snapshot, pushing the current state
// onto redo, and recomputes every connection's segments since they are
// never serialised.
func (s *Session) Undo() bool {
	current, err := persistence.Save(s.Diagram)
	if err != nil {
		return false
	}
	snapshot, ok := s.history.Undo(current)
	if !ok {
		return false
	}
	s.restore(snapshot)
	return true
}

// Redo mirrors Undo.
func (s *Session) Redo() bool {
	current, err := persistence.Save(s.Diagram)
	if err != nil {
		return false
	}
	snapshot, ok := s.history.Redo(current)
	if !ok {
		return false
	}
	s.restore(snapshot)
	return true
}

func (s *Session) restore(snapshot []byte) {
	d, err := persistence.Load(snapshot)
	if err != nil {
		return
	}
	*s.Diagram = *d
	s.containment = containment.New(s.Diagram)
	routing.AssignAllSlots(s.Diagram)
	s.Dirty = true
}

// Select replaces the selection with exactly id.
func (s *Session) Select(id core.ElementId) { s.Selection.Set(id) }

// ToggleSelect adds or removes id from the selection (ctrl-click).
func (s *Session) ToggleSelect(id core.ElementId) { s.Selection.Toggle(id) }

// ClearSelection empties the selection.
func (s *Session) ClearSelection() { s.Selection.Clear() }
