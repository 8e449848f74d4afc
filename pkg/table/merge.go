package table

import (
	"sort"

	"github.com/pyhub-apps/pdftables-golang/pkg/cluster"
	"github.com/pyhub-apps/pdftables-golang/pkg/geometry"
)

// snapEdges aligns edges of one orientation whose positions lie within
// tolerance of each other. Each cluster moves to the arithmetic mean of its
// members' positions.
func snapEdges(edges []geometry.Edge, tolerance float64) []geometry.Edge {
	if len(edges) == 0 {
		return nil
	}
	position := func(e geometry.Edge) float64 { return e.Position() }

	snapped := make([]geometry.Edge, 0, len(edges))
	for _, group := range cluster.ClusterObjects(edges, position, tolerance) {
		mean := cluster.Mean(group, position)
		for _, e := range group {
			snapped = append(snapped, e.MoveTo(mean))
		}
	}
	return snapped
}

// joinEdges merges collinear edges of one orientation whose gap along the
// line is at most tolerance. Edges must already be snapped so that collinear
// edges share an exact position.
func joinEdges(edges []geometry.Edge, tolerance float64) []geometry.Edge {
	if len(edges) == 0 {
		return nil
	}

	sorted := append([]geometry.Edge(nil), edges...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Position() != sorted[j].Position() {
			return sorted[i].Position() < sorted[j].Position()
		}
		si, _ := sorted[i].Span()
		sj, _ := sorted[j].Span()
		return si < sj
	})

	joined := []geometry.Edge{sorted[0]}
	for _, e := range sorted[1:] {
		last := &joined[len(joined)-1]
		lastStart, lastEnd := last.Span()
		start, end := e.Span()
		if e.Position() == last.Position() && start <= lastEnd+tolerance {
			*last = last.WithSpan(lastStart, max(lastEnd, end))
			continue
		}
		joined = append(joined, e)
	}
	return joined
}

// mergeEdges snaps then joins each orientation separately
func mergeEdges(edges []geometry.Edge, snapTolerance, joinTolerance float64) (horizontal, vertical []geometry.Edge) {
	h, v := splitEdges(edges)
	horizontal = joinEdges(snapEdges(h, snapTolerance), joinTolerance)
	vertical = joinEdges(snapEdges(v, snapTolerance), joinTolerance)
	return horizontal, vertical
}
