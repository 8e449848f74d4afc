package table

import (
	"math"
	"slices"
	"sort"

	"github.com/tidwall/rtree"

	"github.com/pyhub-apps/pdftables-golang/pkg/cluster"
	"github.com/pyhub-apps/pdftables-golang/pkg/geometry"
)

// findIntersections records every point where a vertical edge crosses a
// horizontal edge within tolerance. The scan is O(H·V); callers bound it
// with Settings.MaxEdges. Points are returned sorted top to bottom, then
// left to right, without duplicates.
func findIntersections(horizontal, vertical []geometry.Edge, tolerance float64) []geometry.Point {
	var tr rtree.RTreeG[geometry.Point]
	for _, v := range vertical {
		for _, h := range horizontal {
			if h.Top < v.Top-tolerance || h.Top > v.Bottom+tolerance {
				continue
			}
			if v.X0 < h.X0-tolerance || v.X0 > h.X1+tolerance {
				continue
			}
			p := geometry.Point{X: v.X0, Y: h.Top}
			at := [2]float64{p.X, p.Y}
			exists := false
			tr.Search(at, at, func(_, _ [2]float64, _ geometry.Point) bool {
				exists = true
				return false
			})
			if !exists {
				tr.Insert(at, at, p)
			}
		}
	}

	points := make([]geometry.Point, 0, tr.Len())
	tr.Scan(func(_, _ [2]float64, p geometry.Point) bool {
		points = append(points, p)
		return true
	})
	sortPoints(points)
	return points
}

func sortPoints(points []geometry.Point) {
	sort.Slice(points, func(i, j int) bool {
		if points[i].Y != points[j].Y {
			return points[i].Y < points[j].Y
		}
		return points[i].X < points[j].X
	})
}

// edgeIndex maps a snapped position to the joined edges lying on it
type edgeIndex map[float64][]geometry.Edge

func newEdgeIndex(edges []geometry.Edge) edgeIndex {
	ix := make(edgeIndex, len(edges))
	for _, e := range edges {
		ix[e.Position()] = append(ix[e.Position()], e)
	}
	return ix
}

// covers reports whether one edge at pos spans start..end within tolerance
func (ix edgeIndex) covers(pos, start, end, tolerance float64) bool {
	for _, e := range ix[pos] {
		s, t := e.Span()
		if s-tolerance <= start && t+tolerance >= end {
			return true
		}
	}
	return false
}

// buildCells turns intersection points into cells. For each point, the
// candidate rectangles reach to the intersections below it (same x) and to
// its right (same y), nearest first. A candidate whose four sides are all
// backed by an edge is taken. When strict is false and no such candidate
// exists, the nearest candidate is taken if three of its sides are backed.
// Non-strict construction also anchors cells at perimeterPoints, so a table
// missing one outer border keeps its outermost row or column.
func buildCells(points []geometry.Point, horizontal, vertical []geometry.Edge, tolerance float64, strict bool) []geometry.BBox {
	hIndex, vIndex := newEdgeIndex(horizontal), newEdgeIndex(vertical)

	if !strict {
		if extra := perimeterPoints(points, horizontal, vertical, tolerance); len(extra) > 0 {
			points = append(slices.Clone(points), extra...)
			sortPoints(points)
		}
	}
	byX, byY := pointsByAxis(points)

	var cells []geometry.BBox
	for _, p := range points {
		below := after(byX[p.X], func(q geometry.Point) bool { return q.Y > p.Y })
		right := after(byY[p.Y], func(q geometry.Point) bool { return q.X > p.X })
		if len(below) == 0 || len(right) == 0 {
			continue
		}

		if cell, ok := closedCell(p, below, right, hIndex, vIndex, tolerance); ok {
			cells = append(cells, cell)
			continue
		}
		if strict {
			continue
		}

		b, r := below[0], right[0]
		sides := 0
		for _, backed := range []bool{
			hIndex.covers(p.Y, p.X, r.X, tolerance),
			hIndex.covers(b.Y, p.X, r.X, tolerance),
			vIndex.covers(p.X, p.Y, b.Y, tolerance),
			vIndex.covers(r.X, p.Y, b.Y, tolerance),
		} {
			if backed {
				sides++
			}
		}
		if sides >= 3 {
			cells = append(cells, geometry.BBox{X0: p.X, Top: p.Y, X1: r.X, Bottom: b.Y})
		}
	}
	return cells
}

// pointsByAxis groups sorted points by x and by y. Each group keeps the
// (y, x) order of the input.
func pointsByAxis(points []geometry.Point) (byX, byY map[float64][]geometry.Point) {
	byX = map[float64][]geometry.Point{}
	byY = map[float64][]geometry.Point{}
	for _, p := range points {
		byX[p.X] = append(byX[p.X], p)
		byY[p.Y] = append(byY[p.Y], p)
	}
	return byX, byY
}

// edgeEnd is one end of an edge: at is the coordinate along the edge, pos
// the edge's snapped position
type edgeEnd struct {
	at, pos float64
}

// perimeterPoints returns corners where no rule crosses: the free ends of
// edges that take part in the grid, when at least two such ends line up
// within tolerance. Aligned ends are moved to their mean. Ends already
// within tolerance of an intersection are left out.
func perimeterPoints(points []geometry.Point, horizontal, vertical []geometry.Edge, tolerance float64) []geometry.Point {
	byX, byY := pointsByAxis(points)
	x := func(p geometry.Point) float64 { return p.X }
	y := func(p geometry.Point) float64 { return p.Y }

	seen := map[geometry.Point]bool{}
	var extra []geometry.Point
	add := func(p geometry.Point, line []geometry.Point, along func(geometry.Point) float64, at float64) {
		if seen[p] || nearAny(line, along, at, tolerance) {
			return
		}
		seen[p] = true
		extra = append(extra, p)
	}

	for _, group := range alignedEnds(horizontal, byY, x, tolerance) {
		mean := cluster.Mean(group, func(e edgeEnd) float64 { return e.at })
		for _, e := range group {
			add(geometry.Point{X: mean, Y: e.pos}, byY[e.pos], x, mean)
		}
	}
	for _, group := range alignedEnds(vertical, byX, y, tolerance) {
		mean := cluster.Mean(group, func(e edgeEnd) float64 { return e.at })
		for _, e := range group {
			add(geometry.Point{X: e.pos, Y: mean}, byX[e.pos], y, mean)
		}
	}
	return extra
}

// alignedEnds clusters the ends of crossed edges by their coordinate along
// the edge and keeps clusters that hold ends of at least two edges
func alignedEnds(edges []geometry.Edge, crossings map[float64][]geometry.Point, along func(geometry.Point) float64, tolerance float64) [][]edgeEnd {
	var ends []edgeEnd
	for _, e := range edges {
		start, end := e.Span()
		line := crossings[e.Position()]
		crossed := slices.ContainsFunc(line, func(p geometry.Point) bool {
			a := along(p)
			return a >= start-tolerance && a <= end+tolerance
		})
		if crossed {
			ends = append(ends, edgeEnd{at: start, pos: e.Position()}, edgeEnd{at: end, pos: e.Position()})
		}
	}

	var aligned [][]edgeEnd
	for _, group := range cluster.ClusterObjects(ends, func(e edgeEnd) float64 { return e.at }, tolerance) {
		// both ends of one short edge do not count as alignment
		if slices.ContainsFunc(group, func(e edgeEnd) bool { return e.pos != group[0].pos }) {
			aligned = append(aligned, group)
		}
	}
	return aligned
}

func nearAny(line []geometry.Point, along func(geometry.Point) float64, at, tolerance float64) bool {
	return slices.ContainsFunc(line, func(p geometry.Point) bool {
		return math.Abs(along(p)-at) <= tolerance
	})
}

// closedCell finds the nearest rectangle anchored at p with all four sides
// backed. The left and top sides extend monotonically, so the search stops
// at the first point they fail to reach.
func closedCell(p geometry.Point, below, right []geometry.Point, hIndex, vIndex edgeIndex, tolerance float64) (geometry.BBox, bool) {
	for _, b := range below {
		if !vIndex.covers(p.X, p.Y, b.Y, tolerance) {
			break
		}
		for _, r := range right {
			if !hIndex.covers(p.Y, p.X, r.X, tolerance) {
				break
			}
			if hIndex.covers(b.Y, p.X, r.X, tolerance) && vIndex.covers(r.X, p.Y, b.Y, tolerance) {
				return geometry.BBox{X0: p.X, Top: p.Y, X1: r.X, Bottom: b.Y}, true
			}
		}
	}
	return geometry.BBox{}, false
}

// after returns the tail of a sorted slice starting at the first element
// satisfying pred
func after(sorted []geometry.Point, pred func(geometry.Point) bool) []geometry.Point {
	i := sort.Search(len(sorted), func(i int) bool { return pred(sorted[i]) })
	return sorted[i:]
}
