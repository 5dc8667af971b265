// Package registry implements a mapping from tab to open diagram, a
// current-tab pointer, and the creation/close/dirty-flag API the
// interaction surface needs to manage several open diagrams in one
// process: a plain struct, explicit methods, no interfaces, no
// generics.
package registry

import (
	"fmt"

	"github.com/google/uuid"

	"jmt/core"
	"jmt/editor"
	"jmt/persistence"
)

// TabId identifies one open diagram tab, the same uuid.UUID shape as
// core.ElementId for the same reason: stable identity independent of
// position in any slice.
type TabId = uuid.UUID

// NewTabId mints a fresh TabId.
func NewTabId() TabId { return uuid.New() }

// entry bundles one open diagram's session; the dirty flag is
// editor.Session.Dirty itself (set on every pushed snapshot, cleared on
// save), so the registry doesn't keep a second copy of it.
type entry struct {
	session *editor.Session
}

// Registry owns every open diagram tab and tracks which one is active.
// It carries no mutex; it is driven from one event-loop goroutine, same
// as the editor.Session it wraps.
type Registry struct {
	tabs   map[TabId]*entry
	order  []TabId
	active TabId
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{tabs: map[TabId]*entry{}}
}

// NewDiagram creates a fresh diagram of kind, opens a tab for it, makes
// it active, and returns the new TabId.
func (r *Registry) NewDiagram(kind core.DiagramType) TabId {
	d := core.NewDiagram(kind, "untitled")
	return r.Open(d)
}

// Open registers an already-constructed diagram under a new tab, makes
// it active, and returns the TabId.
func (r *Registry) Open(d *core.Diagram) TabId {
	id := NewTabId()
	r.tabs[id] = &entry{session: editor.NewSession(d)}
	r.order = append(r.order, id)
	r.active = id
	return id
}

// Session returns the editor.Session for tabID, or nil if no such tab is
// open.
func (r *Registry) Session(tabID TabId) *editor.Session {
	if e, ok := r.tabs[tabID]; ok {
		return e.session
	}
	return nil
}

// Active returns the currently active tab and whether any tab is open.
func (r *Registry) Active() (TabId, bool) {
	if _, ok := r.tabs[r.active]; !ok {
		return TabId{}, false
	}
	return r.active, true
}

// ActiveSession is a convenience wrapper over Active and Session.
func (r *Registry) ActiveSession() *editor.Session {
	id, ok := r.Active()
	if !ok {
		return nil
	}
	return r.Session(id)
}

// SetActiveDiagram switches the current tab, if tabID is open.
func (r *Registry) SetActiveDiagram(tabID TabId) bool {
	if _, ok := r.tabs[tabID]; !ok {
		return false
	}
	r.active = tabID
	return true
}

// TabIDs returns every open tab in the order it was opened.
func (r *Registry) TabIDs() []TabId {
	return append([]TabId(nil), r.order...)
}

// IsDirty reports whether tabID has unsaved changes.
func (r *Registry) IsDirty(tabID TabId) bool {
	e, ok := r.tabs[tabID]
	return ok && e.session.Dirty
}

// Save serialises tabID's diagram and clears its dirty flag, per the
// interaction API's "save(tab_id) -> bytes".
func (r *Registry) Save(tabID TabId) ([]byte, error) {
	e, ok := r.tabs[tabID]
	if !ok {
		return nil, fmt.Errorf("registry: unknown tab %s", tabID)
	}
	data, err := persistence.Save(e.session.Diagram)
	if err != nil {
		return nil, err
	}
	e.session.Dirty = false
	return data, nil
}

// Load deserialises data into a new diagram, opens a tab for it, and
// returns the new TabId, per the interaction API's "load(bytes) ->
// tab_id".
func (r *Registry) Load(data []byte) (TabId, error) {
	d, err := persistence.Load(data)
	if err != nil {
		return TabId{}, err
	}
	return r.Open(d), nil
}

// CloseDiagram closes tabID. If the tab is dirty and force is false, the
// close is refused (ok=false, needsConfirmation=true) so the chrome can
// prompt the user: closing a dirty tab requires confirmation, a signal
// surfaced to chrome.
func (r *Registry) CloseDiagram(tabID TabId, force bool) (ok bool, needsConfirmation bool) {
	e, exists := r.tabs[tabID]
	if !exists {
		return false, false
	}
	if e.session.Dirty && !force {
		return false, true
	}
	delete(r.tabs, tabID)
	for i, id := range r.order {
		if id == tabID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if r.active == tabID {
		r.active = TabId{}
		if len(r.order) > 0 {
			r.active = r.order[len(r.order)-1]
		}
	}
	return true, false
}
