package table

import (
	"math"
	"slices"

	"github.com/pyhub-apps/pdftables-golang/internal/logging"
	"github.com/pyhub-apps/pdftables-golang/pkg/geometry"
)

// explicitEdges turns caller-supplied rule coordinates into edges spanning
// the full extent of the other axis. Fewer than two usable coordinates on
// either axis yields no edges.
func explicitEdges(verticals, horizontals []float64) []geometry.Edge {
	xs, ys := finiteSorted(verticals), finiteSorted(horizontals)
	if len(xs) < 2 || len(ys) < 2 {
		return nil
	}

	top, bottom := ys[0], ys[len(ys)-1]
	left, right := xs[0], xs[len(xs)-1]

	edges := make([]geometry.Edge, 0, len(xs)+len(ys))
	for _, x := range xs {
		edges = append(edges, geometry.NewVerticalEdge(x, top, bottom))
	}
	for _, y := range ys {
		edges = append(edges, geometry.NewHorizontalEdge(y, left, right))
	}
	return edges
}

func finiteSorted(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			logging.Logger().Warn("skipping non-finite explicit rule", "value", v)
			continue
		}
		out = append(out, v)
	}
	slices.Sort(out)
	return slices.Compact(out)
}
