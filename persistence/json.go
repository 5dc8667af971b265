// Package persistence serialises a core.Diagram to and from the JMT
// on-disk format: indented encoding/json, one file per diagram.
// Connection segments are never serialised; Load recomputes them by
// running slot assignment across every (element, side) bucket.
package persistence

import (
	"encoding/json"
	"fmt"

	"jmt/core"
	"jmt/routing"
)

// FileExtension is the on-disk extension for a saved diagram.
const FileExtension = ".jmt"

// Save serialises d to an indented JSON byte sequence.
func Save(d *core.Diagram) ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("persistence: save: %w", err)
	}
	return data, nil
}

// Load deserialises data into a new Diagram and recomputes every
// connection's sides, slots, and segments, since none of those are
// trusted from the wire format.
func Load(data []byte) (*core.Diagram, error) {
	var d core.Diagram
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("persistence: load: %w", err)
	}
	for i := range d.Connections {
		c := &d.Connections[i]
		if c.IsSelf() {
			continue
		}
		sourceRect, _, sOK := d.Bounds(c.SourceID)
		targetRect, _, tOK := d.Bounds(c.TargetID)
		if !sOK || !tOK {
			continue
		}
		c.SourceSide, c.TargetSide = routing.AssignSides(sourceRect, targetRect, d.Settings.StubLength)
	}
	routing.AssignAllSlots(&d)
	return &d, nil
}
