// Package geometry contains the pure functions the diagram core uses to
// reason about points, rectangles, line segments and polygons. Nothing in
// this package touches a diagram, an element id, or an editing mode; it is
// safe for any other package to import.
package geometry

import "math"

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{p.X + dx, p.Y + dy}
}

// Rect is an axis-aligned rectangle defined by its two corners.
// X1,Y1 is the top-left corner; X2,Y2 is the bottom-right corner.
type Rect struct {
	X1, Y1, X2, Y2 float64
}

// NewRect builds a Rect from a position and a size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X1: x, Y1: y, X2: x + w, Y2: y + h}
}

func (r Rect) Width() float64  { return r.X2 - r.X1 }
func (r Rect) Height() float64 { return r.Y2 - r.Y1 }

func (r Rect) Center() Point {
	return Point{(r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2}
}

func (r Rect) Area() float64 { return r.Width() * r.Height() }

func (r Rect) TopLeft() Point     { return Point{r.X1, r.Y1} }
func (r Rect) TopRight() Point    { return Point{r.X2, r.Y1} }
func (r Rect) BottomLeft() Point  { return Point{r.X1, r.Y2} }
func (r Rect) BottomRight() Point { return Point{r.X2, r.Y2} }

// Translate returns r shifted by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{r.X1 + dx, r.Y1 + dy, r.X2 + dx, r.Y2 + dy}
}

// Expand returns r grown by margin on every side.
func (r Rect) Expand(margin float64) Rect {
	return Rect{r.X1 - margin, r.Y1 - margin, r.X2 + margin, r.Y2 + margin}
}

// ContainsPoint reports whether p lies within r, closed intervals on both axes.
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.X1 && p.X <= r.X2 && p.Y >= r.Y1 && p.Y <= r.Y2
}

// ContainsRect reports whether all four corners of inner lie within outer.
func ContainsRect(outer, inner Rect) bool {
	return inner.X1 >= outer.X1 && inner.X2 <= outer.X2 &&
		inner.Y1 >= outer.Y1 && inner.Y2 <= outer.Y2
}

// Overlaps reports axis-aligned overlap between a and b; edge-touching alone
// does not count as overlap.
func Overlaps(a, b Rect) bool {
	return a.X1 < b.X2 && a.X2 > b.X1 && a.Y1 < b.Y2 && a.Y2 > b.Y1
}

// CornersIn counts how many of r's four corners lie inside parent (closed
// intervals). Used to detect partial containment: 1-3 means straddling.
func CornersIn(r, parent Rect) int {
	n := 0
	for _, c := range []Point{r.TopLeft(), r.TopRight(), r.BottomLeft(), r.BottomRight()} {
		if parent.ContainsPoint(c) {
			n++
		}
	}
	return n
}

// ResizeCorner moves the named corner of r by (dx, dy), clamping so the
// result never goes below minW/minH. The opposite corner's coordinates are
// left untouched.
func ResizeCorner(r Rect, corner Corner, dx, dy, minW, minH float64) Rect {
	switch corner {
	case NE:
		x2 := r.X2 + dx
		y1 := r.Y1 + dy
		if x2-r.X1 < minW {
			x2 = r.X1 + minW
		}
		if r.Y2-y1 < minH {
			y1 = r.Y2 - minH
		}
		return Rect{r.X1, y1, x2, r.Y2}
	case NW:
		x1 := r.X1 + dx
		y1 := r.Y1 + dy
		if r.X2-x1 < minW {
			x1 = r.X2 - minW
		}
		if r.Y2-y1 < minH {
			y1 = r.Y2 - minH
		}
		return Rect{x1, y1, r.X2, r.Y2}
	case SE:
		x2 := r.X2 + dx
		y2 := r.Y2 + dy
		if x2-r.X1 < minW {
			x2 = r.X1 + minW
		}
		if y2-r.Y1 < minH {
			y2 = r.Y1 + minH
		}
		return Rect{r.X1, r.Y1, x2, y2}
	case SW:
		x1 := r.X1 + dx
		y2 := r.Y2 + dy
		if r.X2-x1 < minW {
			x1 = r.X2 - minW
		}
		if y2-r.Y1 < minH {
			y2 = r.Y1 + minH
		}
		return Rect{x1, r.Y1, r.X2, y2}
	default:
		return r
	}
}

// Corner identifies one of the four corners of a rectangle.
type Corner int

const (
	NotCorner Corner = iota
	NE
	NW
	SE
	SW
)

// CornerAt returns which corner of bounds p is within tolerance of, checking
// both inside and outside the edge so a resize can start by dragging in
// either direction. NotCorner if none qualify.
func CornerAt(bounds Rect, p Point, tolerance float64) Corner {
	inLeft := p.X >= bounds.X1-tolerance && p.X <= bounds.X1+tolerance
	inRight := p.X >= bounds.X2-tolerance && p.X <= bounds.X2+tolerance
	inTop := p.Y >= bounds.Y1-tolerance && p.Y <= bounds.Y1+tolerance
	inBottom := p.Y >= bounds.Y2-tolerance && p.Y <= bounds.Y2+tolerance

	switch {
	case inLeft && inTop:
		return NW
	case inRight && inTop:
		return NE
	case inLeft && inBottom:
		return SW
	case inRight && inBottom:
		return SE
	default:
		return NotCorner
	}
}

// Segment is a straight line between two points.
type Segment struct {
	Start, End Point
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 {
	return s.Start.Distance(s.End)
}

// Midpoint returns the point halfway between Start and End.
func (s Segment) Midpoint() Point {
	return Point{(s.Start.X + s.End.X) / 2, (s.Start.Y + s.End.Y) / 2}
}

// DistanceTo returns the closed-interval perpendicular distance from p to
// the segment, collapsing to endpoint distance outside the segment's
// parameter range.
func (s Segment) DistanceTo(p Point) float64 {
	dx := s.End.X - s.Start.X
	dy := s.End.Y - s.Start.Y

	lengthSq := dx*dx + dy*dy
	if lengthSq == 0 {
		return s.Start.Distance(p)
	}

	t := ((p.X-s.Start.X)*dx + (p.Y-s.Start.Y)*dy) / lengthSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	proj := Point{s.Start.X + t*dx, s.Start.Y + t*dy}
	return proj.Distance(p)
}

// IsNear reports whether p is within tolerance of the segment, with a
// bounding-box short-circuit before the perpendicular distance check.
func (s Segment) IsNear(p Point, tolerance float64) bool {
	minX := math.Min(s.Start.X, s.End.X) - tolerance
	maxX := math.Max(s.Start.X, s.End.X) + tolerance
	minY := math.Min(s.Start.Y, s.End.Y) - tolerance
	maxY := math.Max(s.Start.Y, s.End.Y) + tolerance

	if p.X < minX || p.X > maxX || p.Y < minY || p.Y > maxY {
		return false
	}
	return s.DistanceTo(p) <= tolerance
}

// PointInPolygon reports whether p lies inside the polygon defined by the
// ordered vertex list, using ray-casting parity.
func PointInPolygon(p Point, polygon []Point) bool {
	n := len(polygon)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi, vj := polygon[i], polygon[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) {
			xIntersect := (vj.X-vi.X)*(p.Y-vi.Y)/(vj.Y-vi.Y) + vi.X
			if p.X < xIntersect {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// Color is an RGBA color, matching the pixel format render.Rasterize emits.
type Color struct {
	R, G, B, A uint8
}

var (
	Black     = Color{0, 0, 0, 255}
	White     = Color{255, 255, 255, 255}
	Gray      = Color{128, 128, 128, 255}
	Red       = Color{220, 30, 30, 255}
	StateFill = Color{255, 255, 204, 255} // default state fill: light yellow
)
