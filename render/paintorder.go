// Package render implements paint order and hit testing, plus the
// raster export pipeline. Its dispatch-by-pass idiom generalizes "pick
// one renderer for the whole diagram" to "walk every element in a
// fixed pass order" within a single diagram.
package render

import (
	"sort"

	"jmt/core"
)

// Pass discriminates which drawing routine an Entry belongs to: the same
// connection id appears once in PassConnection (its line/arrowhead) and,
// if it carries a label, again in PassLabel (its caption), since a
// connection has no separate label id of its own.
type Pass int

const (
	PassNode Pass = iota
	PassConnection
	PassLabel
)

// Entry names one element in paint order, its kind, and which drawing
// pass it belongs to, so a caller can dispatch to the right per-kind
// routine without a second lookup.
type Entry struct {
	ID   core.ElementId
	Kind core.Kind
	Pass Pass
}

// PaintOrder returns every element of d in paint order: nodes sorted by
// rectangle area largest-first (so smaller descendants paint on top of
// their containers), then every connection, then every label — a
// background-first/foreground-last convention of painting nodes before
// connections before overlays.
func PaintOrder(d *core.Diagram) []Entry {
	type areaEntry struct {
		Entry
		area float64
	}

	nodes := make([]areaEntry, 0, len(d.States)+len(d.PseudoStates)+len(d.Aux))
	for i := range d.States {
		nodes = append(nodes, areaEntry{Entry{d.States[i].ID, core.KindState, PassNode}, d.States[i].Rect.Area()})
	}
	for i := range d.PseudoStates {
		nodes = append(nodes, areaEntry{Entry{d.PseudoStates[i].ID, core.KindPseudoState, PassNode}, d.PseudoStates[i].Rect.Area()})
	}
	for i := range d.Aux {
		nodes = append(nodes, areaEntry{Entry{d.Aux[i].ID, d.Aux[i].AuxKind, PassNode}, d.Aux[i].Rect.Area()})
	}
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].area > nodes[j].area })

	out := make([]Entry, 0, len(nodes)+2*len(d.Connections))
	for _, n := range nodes {
		out = append(out, n.Entry)
	}
	for i := range d.Connections {
		out = append(out, Entry{d.Connections[i].ID, core.KindConnection, PassConnection})
	}
	for i := range d.Connections {
		if d.Connections[i].Label() != "" {
			out = append(out, Entry{d.Connections[i].ID, core.KindConnection, PassLabel})
		}
	}
	return out
}
