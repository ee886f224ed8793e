// Package knn performs exact nearest-neighbor search over observation rows.
//
// 🚀 What does it provide?
//
//	Search takes a reference set (n×p) and a query set (m×p) and returns, for
//	every query row, the indices and squared distances of its k nearest
//	reference rows — exact brute force, no index structure, no approximation.
//
// Guarantees:
//
//   - Neighbors are sorted ascending by distance; equal distances are broken
//     by ascending original reference index, so results are fully
//     deterministic.
//   - k is clamped to the reference-set size; the effective value is exposed
//     as Neighbors.K so callers (and tests) can observe the clamp.
//   - For the Mahalanobis metric the whitening transform is derived from the
//     reference set once per Search call and reused across all queries.
//
// Failure modes (fail-fast sentinels, no retries):
//
//   - ErrEmptyReference — reference set has no rows or no columns.
//   - ErrBadK           — k < 1.
//   - ErrDimensionMismatch — column counts differ between sets.
//   - distance.ErrSingularCovariance — propagated from whitening setup.
//
// Complexity: O(m·n·(p + log n)) — distances plus a per-query sort.
package knn
