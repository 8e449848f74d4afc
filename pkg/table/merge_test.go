package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyhub-apps/pdftables-golang/pkg/geometry"
)

func distinctPositions(edges []geometry.Edge) int {
	seen := map[float64]bool{}
	for _, e := range edges {
		seen[e.Position()] = true
	}
	return len(seen)
}

func TestSnapEdgesUsesClusterMean(t *testing.T) {
	edges := []geometry.Edge{
		geometry.NewHorizontalEdge(10, 0, 50),
		geometry.NewHorizontalEdge(12, 60, 90),
		geometry.NewHorizontalEdge(40, 0, 50),
	}

	snapped := snapEdges(edges, 3)

	require.Len(t, snapped, 3)
	assert.Equal(t, 11.0, snapped[0].Top)
	assert.Equal(t, 11.0, snapped[1].Top)
	assert.Equal(t, 40.0, snapped[2].Top)
	assert.Equal(t, 10.0, edges[0].Top, "input edges are not modified")
}

func TestSnapEdgesMonotoneInTolerance(t *testing.T) {
	var edges []geometry.Edge
	for _, x := range []float64{0, 0.5, 1.7, 3.2, 3.3, 6, 9.5, 10, 14, 14.1} {
		edges = append(edges, geometry.NewVerticalEdge(x, 0, 100))
	}

	prev := len(edges)
	for tol := 0.0; tol <= 8; tol += 0.5 {
		n := distinctPositions(snapEdges(edges, tol))
		assert.LessOrEqual(t, n, prev, "tolerance %.1f", tol)
		prev = n
	}
	assert.Equal(t, 1, prev)
}

func TestJoinEdges(t *testing.T) {
	edges := []geometry.Edge{
		geometry.NewHorizontalEdge(5, 42, 100),
		geometry.NewHorizontalEdge(5, 0, 40),
		geometry.NewHorizontalEdge(5, 150, 200),
		geometry.NewHorizontalEdge(9, 0, 40),
	}

	joined := joinEdges(edges, 3)
	require.Len(t, joined, 3)
	assert.Equal(t, geometry.NewHorizontalEdge(5, 0, 100), joined[0])
	assert.Equal(t, geometry.NewHorizontalEdge(5, 150, 200), joined[1])
	assert.Equal(t, geometry.NewHorizontalEdge(9, 0, 40), joined[2])

	assert.Len(t, joinEdges(edges, 1), 4)
	assert.Nil(t, joinEdges(nil, 3))
}

func TestJoinEdgesContained(t *testing.T) {
	edges := []geometry.Edge{
		geometry.NewVerticalEdge(1, 0, 100),
		geometry.NewVerticalEdge(1, 20, 30),
	}

	joined := joinEdges(edges, 0)
	require.Len(t, joined, 1)
	assert.Equal(t, 100.0, joined[0].Bottom)
}
