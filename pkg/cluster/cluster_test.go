package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClusterList(t *testing.T) {
	tests := []struct {
		name      string
		values    []float64
		tolerance float64
		want      [][]int
	}{
		{
			name:      "empty",
			values:    nil,
			tolerance: 1,
			want:      nil,
		},
		{
			name:      "single value",
			values:    []float64{4},
			tolerance: 1,
			want:      [][]int{{0}},
		},
		{
			name:      "unsorted input",
			values:    []float64{10, 1, 11, 2, 30},
			tolerance: 3,
			want:      [][]int{{1, 3}, {0, 2}, {4}},
		},
		{
			name:      "chained gaps stay in one cluster",
			values:    []float64{0, 2, 4, 6},
			tolerance: 2,
			want:      [][]int{{0, 1, 2, 3}},
		},
		{
			name:      "ties keep input order",
			values:    []float64{5, 5, 5},
			tolerance: 0,
			want:      [][]int{{0, 1, 2}},
		},
		{
			name:      "zero tolerance splits distinct values",
			values:    []float64{1, 1.5, 1},
			tolerance: 0,
			want:      [][]int{{0, 2}, {1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClusterList(tt.values, tt.tolerance))
		})
	}
}

func TestClusterListMonotoneInTolerance(t *testing.T) {
	values := []float64{0, 0.5, 1.7, 3.2, 3.3, 6, 9.5, 10, 14}
	prev := len(values) + 1
	for tol := 0.0; tol <= 6; tol += 0.25 {
		n := len(ClusterList(values, tol))
		assert.LessOrEqual(t, n, prev, "tolerance %.2f", tol)
		prev = n
	}
}

func TestClusterObjects(t *testing.T) {
	type word struct {
		text string
		x    float64
	}
	words := []word{{"c", 200}, {"a", 1}, {"b", 101}, {"a2", 2}, {"b2", 99}}

	clusters := ClusterObjects(words, func(w word) float64 { return w.x }, 3)

	assert.Equal(t, [][]word{
		{{"a", 1}, {"a2", 2}},
		{{"b", 101}, {"b2", 99}},
		{{"c", 200}},
	}, clusters)
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean([]float64{}, func(v float64) float64 { return v }))
	assert.Equal(t, 2.0, Mean([]float64{1, 2, 3}, func(v float64) float64 { return v }))
}
