package routing

import (
	"jmt/core"
	"jmt/geometry"
)

// LabelDimensions estimates the pixel size of a connection's rendered
// label text using a fixed per-character estimate: ~6px per character
// at a 10pt font, fixed 12px line height.
func LabelDimensions(conn *core.Connection) (width, height float64) {
	label := conn.Label()
	width = float64(len(label)) * 6.0
	if width < 10 {
		width = 10
	}
	return width, 12.0
}

// LabelBounds returns the bounding rectangle of conn's label, centred
// horizontally on LabelPosition and aligned at its bottom, or false if the
// connection has no segments yet (no midpoint to anchor to).
func LabelBounds(conn *core.Connection) (geometry.Rect, bool) {
	if len(conn.Segments) == 0 {
		return geometry.Rect{}, false
	}
	pos := conn.LabelPosition()
	width, height := LabelDimensions(conn)
	return geometry.NewRect(pos.X-width/2, pos.Y-height, width, height), true
}

// IsNearLabel reports whether point falls within conn's label bounds, for
// label hit-testing during selection.
func IsNearLabel(conn *core.Connection, point geometry.Point) bool {
	bounds, ok := LabelBounds(conn)
	if !ok {
		return false
	}
	return bounds.ContainsPoint(point)
}
