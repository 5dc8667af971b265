package editor

// Mode is the editor's current interaction mode, covering the full
// Arrow/Add*/Connect/Resize/Move family.
type Mode int

const (
	ModeArrow Mode = iota
	ModeLasso
	ModeSelectRect
	ModeConnect
	ModeEnterConnect // transitional between Add-Initial/Final and Connect
	ModeResize
	ModeMove
	ModeMoveRegionSeparator

	ModeAddState
	ModeAddInitial
	ModeAddFinal
	ModeAddChoice
	ModeAddJunction
	ModeAddFork
	ModeAddJoin
	ModeAddAux // the auxiliary diagram-type add modes share one mode; AuxKind on the session says which
)

func (m Mode) String() string {
	switch m {
	case ModeArrow:
		return "Arrow"
	case ModeLasso:
		return "Lasso"
	case ModeSelectRect:
		return "SelectRect"
	case ModeConnect:
		return "Connect"
	case ModeEnterConnect:
		return "EnterConnect"
	case ModeResize:
		return "Resize"
	case ModeMove:
		return "Move"
	case ModeMoveRegionSeparator:
		return "MoveRegionSeparator"
	case ModeAddState:
		return "AddState"
	case ModeAddInitial:
		return "AddInitial"
	case ModeAddFinal:
		return "AddFinal"
	case ModeAddChoice:
		return "AddChoice"
	case ModeAddJunction:
		return "AddJunction"
	case ModeAddFork:
		return "AddFork"
	case ModeAddJoin:
		return "AddJoin"
	case ModeAddAux:
		return "AddAux"
	default:
		return "Unknown"
	}
}

// IsAdd reports whether mode is one of the Add* placement modes.
func (m Mode) IsAdd() bool {
	switch m {
	case ModeAddState, ModeAddInitial, ModeAddFinal, ModeAddChoice,
		ModeAddJunction, ModeAddFork, ModeAddJoin, ModeAddAux:
		return true
	default:
		return false
	}
}

// SetMode changes the session's mode: a right-click from Add*/Connect
// clears any pending connection source, and leaving Connect/Add* always
// returns to a clean slate rather than carrying over half-finished state.
func (s *Session) SetMode(mode Mode) {
	if s.Mode == ModeConnect || s.Mode.IsAdd() {
		s.pendingSource = nil
		s.lastClick = clickRecord{}
	}
	s.Mode = mode
}
