package knn

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"lwpls/distance"
)

// Search returns the k nearest reference rows for every query row, exactly.
//
// Contracts:
//   - ref (n×p) and queries (m×p) must be non-empty with matching p.
//   - k ≥ 1; k > n is clamped to n (observable via Neighbors.K).
//   - Result row i corresponds to query row i, sorted ascending by squared
//     distance with ties broken by ascending reference index.
//
// Errors: ErrEmptyReference, ErrEmptyQuery, ErrBadK, ErrDimensionMismatch,
// plus whitening failures from the distance package for Mahalanobis.
//
// Complexity: O(m·n·(p + log n)).
func Search(ref, queries mat.Matrix, k int, opts Options) (*Neighbors, error) {
	n, p := ref.Dims()
	if n == 0 || p == 0 {
		return nil, ErrEmptyReference
	}
	m, q := queries.Dims()
	if m == 0 || q == 0 {
		return nil, ErrEmptyQuery
	}
	if p != q {
		return nil, ErrDimensionMismatch
	}
	if k < 1 {
		return nil, ErrBadK
	}
	if k > n {
		k = n // explicit clamp, reported back via Neighbors.K
	}

	// One-time metric setup: Mahalanobis whitens both sides here, so the
	// per-query loop below is metric-agnostic squared Euclidean.
	searchRef, searchQ := ref, queries
	if opts.Metric == distance.Mahalanobis {
		w, err := distance.NewWhitener(ref, opts.Ridge)
		if err != nil {
			return nil, err
		}
		if searchRef, err = w.Whiten(ref); err != nil {
			return nil, err
		}
		if searchQ, err = w.Whiten(queries); err != nil {
			return nil, err
		}
	}

	// Materialize reference rows once; they are revisited for every query.
	refRows := make([][]float64, n)
	for i := 0; i < n; i++ {
		refRows[i] = mat.Row(nil, i, searchRef)
	}

	res := &Neighbors{
		Indices:   make([][]int, m),
		Distances: make([][]float64, m),
		K:         k,
	}

	qRow := make([]float64, p)
	dist := make([]float64, n)
	order := make([]int, n)
	var i, j int
	var err error
	for i = 0; i < m; i++ {
		mat.Row(qRow, i, searchQ)
		for j = 0; j < n; j++ {
			if dist[j], err = distance.SquaredEuclidean(refRows[j], qRow); err != nil {
				return nil, err
			}
			order[j] = j
		}
		// Ascending distance; equal distances keep ascending reference index.
		sort.Slice(order, func(a, b int) bool {
			if dist[order[a]] != dist[order[b]] {
				return dist[order[a]] < dist[order[b]]
			}
			return order[a] < order[b]
		})

		idx := make([]int, k)
		dst := make([]float64, k)
		for j = 0; j < k; j++ {
			idx[j] = order[j]
			dst[j] = dist[order[j]]
		}
		res.Indices[i] = idx
		res.Distances[i] = dst
	}

	return res, nil
}
