package editor

import (
	"time"

	"jmt/core"
	"jmt/geometry"
)

// pseudoModeKind maps a pseudo-state Add* mode to the PseudoStateKind
// AddPseudoState places, which AddElement's uniform core.Kind cannot
// express.
func pseudoModeKind(mode Mode) (core.PseudoStateKind, bool) {
	switch mode {
	case ModeAddInitial:
		return core.PseudoInitial, true
	case ModeAddFinal:
		return core.PseudoFinal, true
	case ModeAddChoice:
		return core.PseudoChoice, true
	case ModeAddJunction:
		return core.PseudoJunction, true
	case ModeAddFork:
		return core.PseudoFork, true
	case ModeAddJoin:
		return core.PseudoJoin, true
	default:
		return "", false
	}
}

// Click is the input layer's entry point for a left-click at point,
// dispatching per the current mode.
func (s *Session) Click(point geometry.Point, ctrl bool) {
	settings := s.Diagram.Settings

	switch {
	case s.Mode == ModeEnterConnect:
		if id, _, ok := s.Diagram.FindAt(point, core.NilElementId); ok {
			s.StartConnection(id)
		}
		return

	case s.Mode == ModeConnect:
		if id, _, ok := s.Diagram.FindAt(point, core.NilElementId); ok {
			if s.pendingSource == nil {
				s.StartConnection(id)
			} else {
				s.CompleteConnection(id)
			}
		}
		return

	case s.Mode == ModeAddState:
		s.clickAdd(point, settings, func(p geometry.Point, toArrow bool) { s.AddElement(core.KindState, p, toArrow) })
		return

	case s.Mode == ModeAddAux:
		kind := s.AuxKind
		s.clickAdd(point, settings, func(p geometry.Point, toArrow bool) { s.AddElement(kind, p, toArrow) })
		return

	default:
		if pk, ok := pseudoModeKind(s.Mode); ok {
			s.clickAdd(point, settings, func(p geometry.Point, toArrow bool) { s.AddPseudoState(pk, p, toArrow) })
			return
		}
	}

	// Arrow and every other mode: a bare click just updates selection;
	// drag start/end is handled by BeginDrag/EndDrag.
	if id, _, ok := s.Diagram.FindAt(point, core.NilElementId); ok {
		if ctrl {
			s.ToggleSelect(id)
		} else {
			s.Select(id)
		}
	} else if !ctrl {
		s.ClearSelection()
	}
}

// clickAdd implements the double-click placement rule shared by every
// Add* mode: a single click places one element and stays in the mode; a
// second click within DoubleClickMs and DoubleClickDist of the first
// transitions to Arrow without placing a second instance. The core owns
// this clock because the toolkit's own click signal fires both single-
// and double-click events on the second click.
func (s *Session) clickAdd(point geometry.Point, settings core.Settings, place func(p geometry.Point, toArrow bool)) {
	isDouble := s.lastClick.valid &&
		time.Since(s.lastClick.at) <= time.Duration(settings.DoubleClickMs)*time.Millisecond &&
		point.Distance(s.lastClick.point) <= settings.DoubleClickDist

	if isDouble {
		s.lastClick = clickRecord{}
		s.SetMode(ModeArrow)
		return
	}

	place(point, false)
	s.lastClick = clickRecord{at: time.Now(), point: point, valid: true}
}

// RightClick implements the right-click cancellation rule: from any Add*
// or Connect mode, return to Arrow and clear any pending connection
// source.
func (s *Session) RightClick() {
	if s.Mode.IsAdd() || s.Mode == ModeConnect || s.Mode == ModeEnterConnect {
		s.SetMode(ModeArrow)
	}
}

// Escape transitions to Arrow from any mode. If a drag is in progress, it
// is cancelled by restoring the pre-drag snapshot rather than completing
// it.
func (s *Session) Escape() {
	if s.drag.kind != dragNone {
		s.Undo()
		s.drag = dragState{}
	}
	s.SetMode(ModeArrow)
}

// EnterConnectMode enters Connect mode; if two or more elements are
// already selected, it immediately creates pairwise connections along the
// selection order and returns to Arrow instead of waiting for clicks.
func (s *Session) EnterConnectMode() {
	if s.Selection.Len() >= 2 {
		s.connectPairwiseAlongSelection()
		return
	}
	s.Mode = ModeConnect
}
