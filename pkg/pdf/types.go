package pdf

import (
	"github.com/pyhub-apps/pdftables-golang/pkg/geometry"
)

// ObjectType represents the type of PDF object
type ObjectType string

const (
	ObjectTypeChar  ObjectType = "char"
	ObjectTypeLine  ObjectType = "line"
	ObjectTypeRect  ObjectType = "rect"
	ObjectTypeCurve ObjectType = "curve"
)

// BoundingBox represents a rectangular area in top-left-origin page space
type BoundingBox = geometry.BBox

// Point represents a 2D point
type Point = geometry.Point

// Objects represents the drawn and text objects of one page
type Objects struct {
	Chars  []CharObject
	Lines  []LineObject
	Rects  []RectObject
	Curves []CurveObject
}

// Len returns the total number of objects
func (o Objects) Len() int {
	return len(o.Chars) + len(o.Lines) + len(o.Rects) + len(o.Curves)
}

// CharObject represents a character in the PDF. Y0 is the top of the glyph
// box and Y1 its bottom.
type CharObject struct {
	Text     string
	Font     string
	FontSize float64
	X0       float64
	Y0       float64
	X1       float64
	Y1       float64
}

// GetType returns the object type
func (c CharObject) GetType() ObjectType {
	return ObjectTypeChar
}

// GetBBox returns the character's bounding box
func (c CharObject) GetBBox() BoundingBox {
	return BoundingBox{X0: c.X0, Top: c.Y0, X1: c.X1, Bottom: c.Y1}
}

// LineObject represents a stroked straight segment from (X0,Y0) to (X1,Y1)
type LineObject struct {
	X0          float64
	Y0          float64
	X1          float64
	Y1          float64
	Width       float64
	StrokeColor Color
}

// GetType returns the object type
func (l LineObject) GetType() ObjectType {
	return ObjectTypeLine
}

// GetBBox returns the line's bounding box
func (l LineObject) GetBBox() BoundingBox {
	return BoundingBox{
		X0:     min(l.X0, l.X1),
		Top:    min(l.Y0, l.Y1),
		X1:     max(l.X0, l.X1),
		Bottom: max(l.Y0, l.Y1),
	}
}

// RectObject represents a rectangle in the PDF
type RectObject struct {
	X0          float64
	Y0          float64
	X1          float64
	Y1          float64
	Width       float64
	StrokeColor Color
	FillColor   Color
	NonStroking bool
}

// GetType returns the object type
func (r RectObject) GetType() ObjectType {
	return ObjectTypeRect
}

// GetBBox returns the rectangle's bounding box
func (r RectObject) GetBBox() BoundingBox {
	return BoundingBox{X0: r.X0, Top: r.Y0, X1: r.X1, Bottom: r.Y1}
}

// CurveObject represents a curve in the PDF as its sequence of points
type CurveObject struct {
	Points      []Point
	StrokeColor Color
	Width       float64
}

// GetType returns the object type
func (c CurveObject) GetType() ObjectType {
	return ObjectTypeCurve
}

// GetBBox returns the curve's bounding box
func (c CurveObject) GetBBox() BoundingBox {
	if len(c.Points) == 0 {
		return BoundingBox{}
	}

	b := BoundingBox{X0: c.Points[0].X, Top: c.Points[0].Y, X1: c.Points[0].X, Bottom: c.Points[0].Y}
	for _, p := range c.Points[1:] {
		b.X0 = min(b.X0, p.X)
		b.Top = min(b.Top, p.Y)
		b.X1 = max(b.X1, p.X)
		b.Bottom = max(b.Bottom, p.Y)
	}
	return b
}

// Color represents an RGB color
type Color struct {
	R, G, B uint8
	A       uint8 // Alpha channel
}

// Word is a run of characters on one line with no gap wider than the
// extraction tolerance.
type Word struct {
	Text       string
	X0         float64
	Y0         float64
	X1         float64
	Y1         float64
	Characters []CharObject
}

// GetBBox returns the word's bounding box
func (w Word) GetBBox() BoundingBox {
	return BoundingBox{X0: w.X0, Top: w.Y0, X1: w.X1, Bottom: w.Y1}
}
