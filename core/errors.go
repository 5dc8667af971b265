package core

// ErrorKind tags the outcome of a mutating core operation. The core never
// panics on a user-reachable path; every such path returns a value
// carrying one of these instead of a Go error.
type ErrorKind string

const (
	// OK is the zero value: the operation succeeded.
	OK ErrorKind = ""

	// NotFound means the operation referenced a stale ElementId. It is a
	// no-op, never an escalation.
	NotFound ErrorKind = "not_found"

	// InvalidGeometry means a resize attempted to go below the minimum
	// size; the core clamps it silently and does not return this except
	// where a caller specifically asked to be told.
	InvalidGeometry ErrorKind = "invalid_geometry"

	// InvalidTarget means a connection's target is not permitted by its
	// kind (e.g. incoming to an Initial, or self-target without an
	// explicit self route).
	InvalidTarget ErrorKind = "invalid_target"

	// DuplicateInitial means a second Initial was attempted in one region.
	DuplicateInitial ErrorKind = "duplicate_initial"

	// PersistenceError is surfaced verbatim from the persistence package.
	PersistenceError ErrorKind = "persistence_error"
)

// OpResult is returned by editor.Session.AddPseudoState, the one editor
// operation with a rejection its caller must tell apart from success;
// the other editor operations return a plain value or nothing.
// Kind == OK means success; ElementID carries whatever id the caller most
// likely wants back (e.g. the id of a newly created element).
type OpResult struct {
	Kind      ErrorKind
	ElementID ElementId
	Message   string
}

func Ok(id ElementId) OpResult { return OpResult{Kind: OK, ElementID: id} }

func Fail(kind ErrorKind, msg string) OpResult {
	return OpResult{Kind: kind, Message: msg}
}

func (r OpResult) IsOK() bool { return r.Kind == OK }
