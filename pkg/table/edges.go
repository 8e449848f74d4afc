package table

import (
	"github.com/pyhub-apps/pdftables-golang/internal/logging"
	"github.com/pyhub-apps/pdftables-golang/pkg/geometry"
	"github.com/pyhub-apps/pdftables-golang/pkg/pdf"
)

// ExtractEdges converts a page's drawn objects into axis-aligned edges.
// Rectangles contribute their four sides, lines and curves their
// axis-aligned segments. Diagonal segments are dropped without comment;
// malformed geometry (NaN, infinite or inverted) is skipped with a warning.
// Edges shorter than minLength are discarded. The result is unordered.
func ExtractEdges(objs pdf.Objects, minLength float64) []geometry.Edge {
	log := logging.Logger()
	var edges []geometry.Edge
	keep := func(e geometry.Edge) {
		if e.Length() >= minLength {
			edges = append(edges, e)
		}
	}

	for _, r := range pdf.DeduplicateRectangles(objs.Rects) {
		box := r.GetBBox()
		if !box.Valid() {
			log.Warn("skipping malformed rectangle", "bbox", box)
			continue
		}
		for _, e := range geometry.RectToEdges(box) {
			keep(e)
		}
	}

	for _, l := range pdf.DeduplicateLines(objs.Lines) {
		p0, p1 := geometry.Point{X: l.X0, Y: l.Y0}, geometry.Point{X: l.X1, Y: l.Y1}
		if !p0.Finite() || !p1.Finite() {
			log.Warn("skipping malformed line", "x0", l.X0, "y0", l.Y0, "x1", l.X1, "y1", l.Y1)
			continue
		}
		if e, ok := geometry.LineToEdge(p0, p1); ok {
			keep(e)
		}
	}

	for _, c := range objs.Curves {
		finite := true
		for _, p := range c.Points {
			finite = finite && p.Finite()
		}
		if !finite {
			log.Warn("skipping malformed curve", "points", len(c.Points))
			continue
		}
		for _, e := range geometry.CurveToEdges(c.Points) {
			keep(e)
		}
	}

	return edges
}

// splitEdges separates edges by orientation
func splitEdges(edges []geometry.Edge) (horizontal, vertical []geometry.Edge) {
	for _, e := range edges {
		if e.Orientation == geometry.Vertical {
			vertical = append(vertical, e)
		} else {
			horizontal = append(horizontal, e)
		}
	}
	return horizontal, vertical
}
