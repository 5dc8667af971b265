package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"jmt/core"
	"jmt/geometry"
	"jmt/routing"
)

// Rasterize walks d in PaintOrder and renders it into an *image.RGBA at
// the given zoom factor as a pure-software raster pipeline. No external
// graphics dependency is used — rectangles and polylines are
// filled/stroked directly against the standard library's
// image/color/draw, and labels are drawn as a placeholder box rather
// than shaped glyphs, since text layout would otherwise need a
// font-rendering dependency that external graphics libraries are
// deliberately kept out of this pipeline. If autocrop is true, the
// canvas is sized to the diagram's tight content bounds plus margin
// diagram units (margin*zoom pixels) on every side instead of a fixed
// page size.
func Rasterize(d *core.Diagram, zoom float64, autocrop bool, margin int) *image.RGBA {
	bounds, ok := contentBoundsForRaster(d, autocrop, margin)
	if !ok {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}

	w := int(math.Ceil(bounds.Width() * zoom))
	h := int(math.Ceil(bounds.Height() * zoom))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: toRGBA(geometry.White)}, image.Point{}, draw.Src)

	project := func(p geometry.Point) (int, int) {
		x := (p.X - bounds.X1) * zoom
		y := (p.Y - bounds.Y1) * zoom
		return int(math.Round(x)), int(math.Round(y))
	}

	for _, entry := range PaintOrder(d) {
		switch entry.Pass {
		case PassNode:
			rasterizeNode(img, d, entry, project)
		case PassConnection:
			rasterizeConnection(img, d, entry.ID, project)
		case PassLabel:
			rasterizeLabel(img, d, entry.ID, project)
		}
	}
	return img
}

// contentBoundsForRaster picks the tight content bounds (grown by margin)
// when autocrop is requested, or the diagram's root region otherwise.
func contentBoundsForRaster(d *core.Diagram, autocrop bool, margin int) (geometry.Rect, bool) {
	if autocrop {
		bounds, ok := d.ContentBounds()
		if !ok {
			return geometry.Rect{}, false
		}
		return bounds.Expand(float64(margin)), true
	}
	if root, ok := d.Region(d.RootRegionID); ok {
		return root.Rect, true
	}
	return geometry.Rect{}, false
}

func rasterizeNode(img *image.RGBA, d *core.Diagram, entry Entry, project func(geometry.Point) (int, int)) {
	rect, _, ok := d.Bounds(entry.ID)
	if !ok {
		return
	}
	fill := d.Settings.DefaultFill
	stroke := d.Settings.DefaultStroke
	if s, ok := d.State(entry.ID); ok && s.HasError {
		stroke = geometry.Red
	}
	if p, ok := d.PseudoState(entry.ID); ok && p.HasError {
		stroke = geometry.Red
	}
	fillRect(img, rect, fill, project)
	strokeRect(img, rect, stroke, project)
}

func rasterizeConnection(img *image.RGBA, d *core.Diagram, id core.ElementId, project func(geometry.Point) (int, int)) {
	c, ok := d.Connection(id)
	if !ok {
		return
	}
	col := geometry.Black
	if c.Selected {
		col = geometry.Color{R: 30, G: 90, B: 220, A: 255}
	}
	for _, seg := range c.Segments {
		drawLine(img, seg.Start, seg.End, col, project)
	}
}

func rasterizeLabel(img *image.RGBA, d *core.Diagram, id core.ElementId, project func(geometry.Point) (int, int)) {
	c, ok := d.Connection(id)
	if !ok {
		return
	}
	rect, ok := routing.LabelBounds(c)
	if !ok {
		return
	}
	fillRect(img, rect, geometry.White, project)
	strokeRect(img, rect, geometry.Gray, project)
}

func fillRect(img *image.RGBA, rect geometry.Rect, col geometry.Color, project func(geometry.Point) (int, int)) {
	x1, y1 := project(rect.TopLeft())
	x2, y2 := project(rect.BottomRight())
	draw.Draw(img, image.Rect(x1, y1, x2, y2), &image.Uniform{C: toRGBA(col)}, image.Point{}, draw.Src)
}

func strokeRect(img *image.RGBA, rect geometry.Rect, col geometry.Color, project func(geometry.Point) (int, int)) {
	drawLine(img, rect.TopLeft(), rect.TopRight(), col, project)
	drawLine(img, rect.TopRight(), rect.BottomRight(), col, project)
	drawLine(img, rect.BottomRight(), rect.BottomLeft(), col, project)
	drawLine(img, rect.BottomLeft(), rect.TopLeft(), col, project)
}

// drawLine rasterizes a single straight segment with Bresenham's
// algorithm, the same pixel-exact approach a character-cell renderer
// uses for box-drawing lines, adapted here from character cells to
// individual pixels.
func drawLine(img *image.RGBA, from, to geometry.Point, col geometry.Color, project func(geometry.Point) (int, int)) {
	x0, y0 := project(from)
	x1, y1 := project(to)
	c := toRGBA(col)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		img.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func toRGBA(c geometry.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// EncodePNG wraps image/png's encoder; the raster pipeline exposes only
// this one output format.
func EncodePNG(img *image.RGBA, w io.Writer) error {
	return png.Encode(w, img)
}
