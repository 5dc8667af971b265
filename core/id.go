package core

import "github.com/google/uuid"

// ElementId uniquely and stably identifies any addressable object in a
// diagram: a State, Region, PseudoState, Connection, or any auxiliary
// entity. It is generated once at creation time and never reused.
type ElementId = uuid.UUID

// NewElementId returns a fresh, random ElementId.
func NewElementId() ElementId {
	return uuid.New()
}

// NilElementId is the zero value, used where an id field is genuinely
// optional and a pointer would be overkill (e.g. map lookups that treat
// the zero UUID as "absent").
var NilElementId = uuid.Nil
