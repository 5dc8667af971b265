package core

// Kind discriminates the tagged Element union. Every element collection in
// a Diagram is addressed uniformly through it rather than through Go's own
// type system, dispatching by an explicit type switch across the full
// UML element vocabulary.
type Kind int

const (
	KindState Kind = iota
	KindRegion
	KindPseudoState
	KindConnection
	KindLifeline
	KindActor
	KindUseCase
	KindSystemBoundary
	KindAction
	KindSwimlane
	KindObjectNode
	KindCombinedFragment
	KindUseCaseRelationship
	KindMessage
	KindControlFlow
)

func (k Kind) String() string {
	switch k {
	case KindState:
		return "State"
	case KindRegion:
		return "Region"
	case KindPseudoState:
		return "PseudoState"
	case KindConnection:
		return "Connection"
	case KindLifeline:
		return "Lifeline"
	case KindActor:
		return "Actor"
	case KindUseCase:
		return "UseCase"
	case KindSystemBoundary:
		return "SystemBoundary"
	case KindAction:
		return "Action"
	case KindSwimlane:
		return "Swimlane"
	case KindObjectNode:
		return "ObjectNode"
	case KindCombinedFragment:
		return "CombinedFragment"
	case KindUseCaseRelationship:
		return "UseCaseRelationship"
	case KindMessage:
		return "Message"
	case KindControlFlow:
		return "ControlFlow"
	default:
		return "Unknown"
	}
}

// IsContainmentParticipant reports whether elements of this kind take
// part in the containment/regions engine. Only state-diagram elements
// do; auxiliary entities may still be selected, dragged and aligned,
// they just never re-parent.
func (k Kind) IsContainmentParticipant() bool {
	return k == KindState || k == KindPseudoState
}

// DiagramType is the kind of UML diagram a Diagram represents.
type DiagramType string

const (
	DiagramStateMachine DiagramType = "state-machine"
	DiagramSequence     DiagramType = "sequence"
	DiagramUseCase      DiagramType = "use-case"
	DiagramActivity     DiagramType = "activity"
)

// PseudoStateKind enumerates the pseudo-state variants.
type PseudoStateKind string

const (
	PseudoInitial  PseudoStateKind = "initial"
	PseudoFinal    PseudoStateKind = "final"
	PseudoChoice   PseudoStateKind = "choice"
	PseudoJunction PseudoStateKind = "junction"
	PseudoFork     PseudoStateKind = "fork"
	PseudoJoin     PseudoStateKind = "join"
)

// DefaultSize returns the (width, height) a freshly placed pseudo-state of
// this kind gets.
func (k PseudoStateKind) DefaultSize() (float64, float64) {
	switch k {
	case PseudoChoice:
		return 30, 30
	case PseudoFork, PseudoJoin:
		return 60, 8
	default: // Initial, Final, Junction
		return 20, 20
	}
}

// ShouldBeSquare reports whether this pseudo-state kind is rendered as a
// square/circle rather than a bar.
func (k PseudoStateKind) ShouldBeSquare() bool {
	switch k {
	case PseudoInitial, PseudoFinal, PseudoChoice, PseudoJunction:
		return true
	default:
		return false
	}
}

// CanBeSource reports whether a connection may originate from a
// pseudo-state of this kind.
func (k PseudoStateKind) CanBeSource() bool {
	return k != PseudoFinal && k != PseudoJoin
}

// CanBeTarget reports whether a connection may terminate at a pseudo-state
// of this kind.
func (k PseudoStateKind) CanBeTarget() bool {
	return k != PseudoInitial && k != PseudoFork
}

// Side identifies which edge of a rectangle a connection attaches to.
type Side int

const (
	SideNone Side = iota
	SideTop
	SideBottom
	SideLeft
	SideRight
)

func (s Side) Opposite() Side {
	switch s {
	case SideTop:
		return SideBottom
	case SideBottom:
		return SideTop
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	default:
		return SideNone
	}
}

func (s Side) IsVertical() bool   { return s == SideTop || s == SideBottom }
func (s Side) IsHorizontal() bool { return s == SideLeft || s == SideRight }

// Orientation describes the axis along which a state's regions tile its
// interior. One orientation is shared by every region of a given state.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)
