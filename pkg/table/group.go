package table

import (
	"math"
	"sort"

	"github.com/tidwall/rtree"

	"github.com/pyhub-apps/pdftables-golang/pkg/cluster"
	"github.com/pyhub-apps/pdftables-golang/pkg/geometry"
)

// unionFind is a disjoint-set forest over cell indices
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(i int) int {
	for uf.parent[i] != i {
		uf.parent[i] = uf.parent[uf.parent[i]]
		i = uf.parent[i]
	}
	return i
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	switch {
	case uf.rank[ra] < uf.rank[rb]:
		uf.parent[ra] = rb
	case uf.rank[ra] > uf.rank[rb]:
		uf.parent[rb] = ra
	default:
		uf.parent[rb] = ra
		uf.rank[ra]++
	}
}

// shareSide reports whether a and b touch along a segment of positive
// length: a vertical side of one lies on a vertical side of the other, or a
// horizontal side on a horizontal side, within tolerance. Boxes that meet
// only at a corner do not share a side.
func shareSide(a, b geometry.BBox, tolerance float64) bool {
	near := func(u, v float64) bool { return math.Abs(u-v) <= tolerance }
	if near(a.X1, b.X0) || near(b.X1, a.X0) {
		if min(a.Bottom, b.Bottom)-max(a.Top, b.Top) > 0 {
			return true
		}
	}
	if near(a.Bottom, b.Top) || near(b.Bottom, a.Top) {
		if min(a.X1, b.X1)-max(a.X0, b.X0) > 0 {
			return true
		}
	}
	return false
}

// groupCells partitions cells into connected components; two cells are
// connected when they share a side segment (see shareSide). Cells are first
// sorted top to bottom, then left to right, and components come out in the
// order of their first cell, which makes the result independent of input
// order.
func groupCells(cells []geometry.BBox, tolerance float64) [][]geometry.BBox {
	if len(cells) == 0 {
		return nil
	}

	sorted := append([]geometry.BBox(nil), cells...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Top != sorted[j].Top {
			return sorted[i].Top < sorted[j].Top
		}
		return sorted[i].X0 < sorted[j].X0
	})

	var tr rtree.RTreeG[int]
	for i, c := range sorted {
		tr.Insert([2]float64{c.X0, c.Top}, [2]float64{c.X1, c.Bottom}, i)
	}

	uf := newUnionFind(len(sorted))
	for i, c := range sorted {
		near := geometry.ResizeBBox(c, tolerance, tolerance)
		tr.Search([2]float64{near.X0, near.Top}, [2]float64{near.X1, near.Bottom},
			func(_, _ [2]float64, j int) bool {
				if j > i && shareSide(c, sorted[j], tolerance) {
					uf.union(i, j)
				}
				return true
			})
	}

	var groups [][]geometry.BBox
	slot := map[int]int{}
	for i, c := range sorted {
		root := uf.find(i)
		g, ok := slot[root]
		if !ok {
			g = len(groups)
			slot[root] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], c)
	}
	return groups
}

// layoutCells arranges one component into rows. Row and column coordinates
// are the distinct cell tops and left edges; each row has one slot per
// column, nil where no cell starts.
func layoutCells(cells []geometry.BBox) []Row {
	top := func(b geometry.BBox) float64 { return b.Top }
	left := func(b geometry.BBox) float64 { return b.X0 }

	var columns []float64
	for _, col := range cluster.ClusterObjects(cells, left, 0) {
		columns = append(columns, col[0].X0)
	}
	columnOf := make(map[float64]int, len(columns))
	for i, x := range columns {
		columnOf[x] = i
	}

	var rows []Row
	for _, members := range cluster.ClusterObjects(cells, top, 0) {
		row := Row{Cells: make([]*geometry.BBox, len(columns))}
		for _, c := range members {
			row.Cells[columnOf[c.X0]] = &c
		}
		row.BBox, _ = geometry.MergeBBoxes(members)
		rows = append(rows, row)
	}
	return rows
}
