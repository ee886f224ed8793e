package knn

import (
	"errors"

	"lwpls/distance"
)

var (
	// ErrEmptyReference indicates a reference set with no rows or no columns.
	ErrEmptyReference = errors.New("knn: empty reference set")

	// ErrEmptyQuery indicates a query set with no rows or no columns.
	ErrEmptyQuery = errors.New("knn: empty query set")

	// ErrBadK indicates k < 1. A search that cannot return at least one
	// neighbor per query would produce empty neighborhoods downstream.
	ErrBadK = errors.New("knn: k must be >= 1")

	// ErrDimensionMismatch indicates reference and query column counts differ.
	ErrDimensionMismatch = errors.New("knn: dimension mismatch")
)

// Options configures Search.
//
// Fields:
//   - Metric — distance.Euclidean (default) or distance.Mahalanobis.
//   - Ridge  — covariance jitter forwarded to the Mahalanobis whitener;
//     0 (default) keeps strict singular-covariance failure.
type Options struct {
	Metric distance.Metric
	Ridge  float64
}

// DefaultOptions returns the documented defaults: Euclidean metric, no ridge.
func DefaultOptions() Options {
	return Options{Metric: distance.Euclidean, Ridge: 0}
}

// Neighbors is the result of a Search over m query rows: two parallel lists
// of length m, where entry i holds the K nearest reference-row indices for
// query i and their squared distances, ascending by distance.
//
// Indices never refer to rows outside the reference set, and every inner
// slice has exactly K entries, where K = min(requested k, reference rows).
type Neighbors struct {
	// Indices[i] are the reference-row indices nearest to query i.
	Indices [][]int

	// Distances[i][j] is the squared distance from query i to reference row
	// Indices[i][j].
	Distances [][]float64

	// K is the effective neighborhood size after clamping to the
	// reference-set size.
	K int
}

// Len returns the number of queries the result covers.
func (n *Neighbors) Len() int { return len(n.Indices) }
