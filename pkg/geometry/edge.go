package geometry

import (
	"fmt"
	"math"
)

// AxisTolerance is the largest off-axis drift (in page units) a segment may
// have and still be treated as horizontal or vertical.
const AxisTolerance = 0.5

// Orientation of an axis-aligned edge
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "v"
	}
	return "h"
}

// Edge is an axis-aligned segment. Horizontal edges have Top == Bottom,
// vertical edges have X0 == X1. Edges are values; every transform returns
// a new edge.
type Edge struct {
	X0          float64
	Top         float64
	X1          float64
	Bottom      float64
	Orientation Orientation
}

// NewHorizontalEdge creates a horizontal edge at y spanning x0..x1
func NewHorizontalEdge(y, x0, x1 float64) Edge {
	return Edge{X0: math.Min(x0, x1), X1: math.Max(x0, x1), Top: y, Bottom: y, Orientation: Horizontal}
}

// NewVerticalEdge creates a vertical edge at x spanning top..bottom
func NewVerticalEdge(x, top, bottom float64) Edge {
	return Edge{X0: x, X1: x, Top: math.Min(top, bottom), Bottom: math.Max(top, bottom), Orientation: Vertical}
}

// Length returns the extent of the edge along its orientation.
func (e Edge) Length() float64 {
	if e.Orientation == Vertical {
		return e.Bottom - e.Top
	}
	return e.X1 - e.X0
}

// Position is the fixed coordinate of the edge: top for horizontal edges,
// x0 for vertical ones.
func (e Edge) Position() float64 {
	if e.Orientation == Vertical {
		return e.X0
	}
	return e.Top
}

// Span returns the start and end of the edge along its orientation.
func (e Edge) Span() (float64, float64) {
	if e.Orientation == Vertical {
		return e.Top, e.Bottom
	}
	return e.X0, e.X1
}

// MoveTo returns a copy of e shifted to a new fixed coordinate.
func (e Edge) MoveTo(pos float64) Edge {
	if e.Orientation == Vertical {
		e.X0, e.X1 = pos, pos
	} else {
		e.Top, e.Bottom = pos, pos
	}
	return e
}

// WithSpan returns a copy of e with a new start/end along its orientation.
func (e Edge) WithSpan(start, end float64) Edge {
	if e.Orientation == Vertical {
		e.Top, e.Bottom = start, end
	} else {
		e.X0, e.X1 = start, end
	}
	return e
}

// BBox returns the (possibly zero-area) box covered by the edge.
func (e Edge) BBox() BBox {
	return BBox{X0: e.X0, Top: e.Top, X1: e.X1, Bottom: e.Bottom}
}

// Valid reports whether the edge has finite coordinates.
func (e Edge) Valid() bool {
	return e.BBox().Valid()
}

func (e Edge) String() string {
	return fmt.Sprintf("%s(%.2f,%.2f,%.2f,%.2f)", e.Orientation, e.X0, e.Top, e.X1, e.Bottom)
}

// RectToEdges decomposes a box into its top, bottom, left and right edges.
func RectToEdges(b BBox) [4]Edge {
	return [4]Edge{
		NewHorizontalEdge(b.Top, b.X0, b.X1),
		NewHorizontalEdge(b.Bottom, b.X0, b.X1),
		NewVerticalEdge(b.X0, b.Top, b.Bottom),
		NewVerticalEdge(b.X1, b.Top, b.Bottom),
	}
}

// LineToEdge converts a segment into an edge. It returns false when the
// segment drifts more than AxisTolerance off both axes, or when either
// endpoint is not finite.
func LineToEdge(p0, p1 Point) (Edge, bool) {
	if !p0.Finite() || !p1.Finite() {
		return Edge{}, false
	}
	dx := math.Abs(p1.X - p0.X)
	dy := math.Abs(p1.Y - p0.Y)
	switch {
	case dy <= AxisTolerance && dx >= dy:
		return NewHorizontalEdge((p0.Y+p1.Y)/2, p0.X, p1.X), true
	case dx <= AxisTolerance:
		return NewVerticalEdge((p0.X+p1.X)/2, p0.Y, p1.Y), true
	}
	return Edge{}, false
}

// CurveToEdges approximates a curve by the axis-aligned segments between
// consecutive points. Diagonal runs are dropped, so true curvature is lost.
func CurveToEdges(points []Point) []Edge {
	var edges []Edge
	for i := 1; i < len(points); i++ {
		if e, ok := LineToEdge(points[i-1], points[i]); ok && e.Length() > 0 {
			edges = append(edges, e)
		}
	}
	return edges
}
