// Package geometry provides the bounding-box and edge primitives used by
// table detection. Coordinates are in page space with the origin at the
// top-left corner, so Top <= Bottom for every valid box.
package geometry

import (
	"errors"
	"math"
)

// ErrEmptyInput is returned when an aggregate is requested over no boxes.
var ErrEmptyInput = errors.New("geometry: empty input")

// BBox represents a rectangular area (x0, top, x1, bottom)
type BBox struct {
	X0     float64 `json:"x0" yaml:"x0"`
	Top    float64 `json:"top" yaml:"top"`
	X1     float64 `json:"x1" yaml:"x1"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
}

// Width returns the width of the bounding box
func (b BBox) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the height of the bounding box
func (b BBox) Height() float64 {
	return b.Bottom - b.Top
}

// Valid reports whether all coordinates are finite and the box is not inverted.
func (b BBox) Valid() bool {
	for _, v := range [...]float64{b.X0, b.Top, b.X1, b.Bottom} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return b.X0 <= b.X1 && b.Top <= b.Bottom
}

// IsEmpty reports whether the box has zero area.
func (b BBox) IsEmpty() bool {
	return b.Width() <= 0 || b.Height() <= 0
}

// Contains checks if a point is within the bounding box (edges inclusive)
func (b BBox) Contains(x, y float64) bool {
	return x >= b.X0 && x <= b.X1 && y >= b.Top && y <= b.Bottom
}

// Center returns the centroid of the box.
func (b BBox) Center() Point {
	return Point{X: (b.X0 + b.X1) / 2, Y: (b.Top + b.Bottom) / 2}
}

// Intersects checks if two bounding boxes intersect
func (b BBox) Intersects(other BBox) bool {
	_, ok := BBoxOverlap(b, other)
	return ok
}

// BBoxOverlap returns the overlapping rectangle of a and b. Boxes that only
// touch produce a zero-area overlap and still report true. NaN coordinates
// never overlap anything.
func BBoxOverlap(a, b BBox) (BBox, bool) {
	o := BBox{
		X0:     math.Max(a.X0, b.X0),
		Top:    math.Max(a.Top, b.Top),
		X1:     math.Min(a.X1, b.X1),
		Bottom: math.Min(a.Bottom, b.Bottom),
	}
	// Written as negated comparisons so NaN falls through to false.
	if !(o.X0 <= o.X1) || !(o.Top <= o.Bottom) {
		return BBox{}, false
	}
	return o, true
}

// MergeBBoxes returns the smallest box containing every input box.
func MergeBBoxes(boxes []BBox) (BBox, error) {
	if len(boxes) == 0 {
		return BBox{}, ErrEmptyInput
	}
	m := boxes[0]
	for _, b := range boxes[1:] {
		m.X0 = math.Min(m.X0, b.X0)
		m.Top = math.Min(m.Top, b.Top)
		m.X1 = math.Max(m.X1, b.X1)
		m.Bottom = math.Max(m.Bottom, b.Bottom)
	}
	return m, nil
}

// ResizeBBox grows b by dx on the left and right and by dy on the top and
// bottom. Negative deltas shrink the box; it collapses to its centre line
// rather than inverting.
func ResizeBBox(b BBox, dx, dy float64) BBox {
	r := BBox{X0: b.X0 - dx, Top: b.Top - dy, X1: b.X1 + dx, Bottom: b.Bottom + dy}
	if r.X0 > r.X1 {
		c := (b.X0 + b.X1) / 2
		r.X0, r.X1 = c, c
	}
	if r.Top > r.Bottom {
		c := (b.Top + b.Bottom) / 2
		r.Top, r.Bottom = c, c
	}
	return r
}

// Point represents a 2D point
type Point struct {
	X, Y float64
}

// Finite reports whether both coordinates are finite numbers.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
