// Package cluster groups one-dimensional keys that lie within a tolerance
// of each other.
package cluster

import (
	"sort"
)

// ClusterList groups the indices of values into clusters. Indices are sorted
// by value (ties keep input order) and swept once from left to right; a new
// cluster starts whenever the gap to the previous value exceeds tolerance.
//
// Values must be finite. NaN or Inf keys give unspecified grouping.
func ClusterList(values []float64, tolerance float64) [][]int {
	if len(values) == 0 {
		return nil
	}

	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return values[order[i]] < values[order[j]]
	})

	clusters := [][]int{}
	current := []int{order[0]}
	last := values[order[0]]

	for _, idx := range order[1:] {
		v := values[idx]
		if v-last > tolerance {
			clusters = append(clusters, current)
			current = []int{idx}
		} else {
			current = append(current, idx)
		}
		last = v
	}
	clusters = append(clusters, current)

	return clusters
}

// ClusterObjects applies ClusterList to key(obj) and returns the original
// objects. Clusters come out in ascending key order; within a cluster the
// objects keep their input order.
func ClusterObjects[T any](objects []T, key func(T) float64, tolerance float64) [][]T {
	values := make([]float64, len(objects))
	for i, obj := range objects {
		values[i] = key(obj)
	}

	indexClusters := ClusterList(values, tolerance)
	result := make([][]T, 0, len(indexClusters))
	for _, idxs := range indexClusters {
		sort.Ints(idxs)
		group := make([]T, len(idxs))
		for i, idx := range idxs {
			group[i] = objects[idx]
		}
		result = append(result, group)
	}

	return result
}

// Mean returns the arithmetic mean of key over objs, or 0 for an empty slice.
func Mean[T any](objs []T, key func(T) float64) float64 {
	if len(objs) == 0 {
		return 0
	}
	var sum float64
	for _, o := range objs {
		sum += key(o)
	}
	return sum / float64(len(objs))
}
