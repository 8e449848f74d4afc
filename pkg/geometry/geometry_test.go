package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBBoxOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b BBox
		want BBox
		ok   bool
	}{
		{
			name: "partial overlap",
			a:    BBox{0, 0, 10, 10},
			b:    BBox{5, 5, 15, 15},
			want: BBox{5, 5, 10, 10},
			ok:   true,
		},
		{
			name: "contained",
			a:    BBox{0, 0, 100, 100},
			b:    BBox{10, 20, 30, 40},
			want: BBox{10, 20, 30, 40},
			ok:   true,
		},
		{
			name: "touching edges",
			a:    BBox{0, 0, 10, 10},
			b:    BBox{10, 0, 20, 10},
			want: BBox{10, 0, 10, 10},
			ok:   true,
		},
		{
			name: "disjoint",
			a:    BBox{0, 0, 10, 10},
			b:    BBox{20, 20, 30, 30},
			ok:   false,
		},
		{
			name: "nan never overlaps",
			a:    BBox{math.NaN(), 0, 10, 10},
			b:    BBox{0, 0, 10, 10},
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := BBoxOverlap(tt.a, tt.b)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestMergeBBoxes(t *testing.T) {
	_, err := MergeBBoxes(nil)
	require.ErrorIs(t, err, ErrEmptyInput)

	m, err := MergeBBoxes([]BBox{{10, 10, 20, 20}, {0, 15, 5, 40}, {12, 2, 30, 3}})
	require.NoError(t, err)
	assert.Equal(t, BBox{0, 2, 30, 40}, m)
}

func TestResizeBBox(t *testing.T) {
	b := BBox{10, 10, 20, 30}
	assert.Equal(t, BBox{7, 8, 23, 32}, ResizeBBox(b, 3, 2))

	shrunk := ResizeBBox(b, -10, -1)
	assert.Equal(t, 15.0, shrunk.X0)
	assert.Equal(t, 15.0, shrunk.X1)
	assert.Equal(t, BBox{15, 11, 15, 29}, shrunk)
}

func TestBBoxValid(t *testing.T) {
	assert.True(t, BBox{0, 0, 1, 1}.Valid())
	assert.True(t, BBox{1, 1, 1, 1}.Valid())
	assert.False(t, BBox{2, 0, 1, 1}.Valid())
	assert.False(t, BBox{0, 0, math.Inf(1), 1}.Valid())
	assert.True(t, BBox{1, 1, 1, 1}.IsEmpty())
}

func TestRectToEdges(t *testing.T) {
	edges := RectToEdges(BBox{0, 0, 100, 50})

	assert.Equal(t, NewHorizontalEdge(0, 0, 100), edges[0])
	assert.Equal(t, NewHorizontalEdge(50, 0, 100), edges[1])
	assert.Equal(t, NewVerticalEdge(0, 0, 50), edges[2])
	assert.Equal(t, NewVerticalEdge(100, 0, 50), edges[3])
	for _, e := range edges {
		assert.True(t, e.Valid())
	}
	assert.Equal(t, 100.0, edges[0].Length())
	assert.Equal(t, 50.0, edges[2].Length())
}

func TestLineToEdge(t *testing.T) {
	e, ok := LineToEdge(Point{100, 20}, Point{0, 20})
	require.True(t, ok)
	assert.Equal(t, Horizontal, e.Orientation)
	assert.Equal(t, 0.0, e.X0)
	assert.Equal(t, 100.0, e.X1)

	e, ok = LineToEdge(Point{5, 80}, Point{5.2, 10})
	require.True(t, ok)
	assert.Equal(t, Vertical, e.Orientation)
	assert.InDelta(t, 5.1, e.X0, 1e-9)
	assert.Equal(t, 10.0, e.Top)
	assert.Equal(t, 80.0, e.Bottom)

	_, ok = LineToEdge(Point{0, 0}, Point{50, 50})
	assert.False(t, ok, "diagonal segments are rejected")

	_, ok = LineToEdge(Point{math.NaN(), 0}, Point{50, 0})
	assert.False(t, ok)
}

func TestCurveToEdges(t *testing.T) {
	// Rounded-corner box: straight runs survive, the diagonal corner is lost.
	pts := []Point{{0, 10}, {0, 50}, {10, 60}, {90, 60}}
	edges := CurveToEdges(pts)
	require.Len(t, edges, 2)
	assert.Equal(t, Vertical, edges[0].Orientation)
	assert.Equal(t, Horizontal, edges[1].Orientation)
	assert.Equal(t, 80.0, edges[1].Length())

	assert.Empty(t, CurveToEdges([]Point{{0, 0}}))
}

func TestEdgeMoveAndSpan(t *testing.T) {
	h := NewHorizontalEdge(10, 0, 50)
	moved := h.MoveTo(12)
	assert.Equal(t, 12.0, moved.Top)
	assert.Equal(t, 12.0, moved.Bottom)
	assert.Equal(t, 10.0, h.Top, "original edge is untouched")

	v := NewVerticalEdge(3, 0, 10).WithSpan(-5, 20)
	start, end := v.Span()
	assert.Equal(t, -5.0, start)
	assert.Equal(t, 20.0, end)
	assert.Equal(t, 3.0, v.Position())
}
