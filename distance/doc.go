// Package distance computes pairwise squared distances between observation
// rows under the Euclidean and Mahalanobis metrics.
//
// 🚀 What does it provide?
//
//   - Pairwise: a full n_ref×n_query matrix of squared distances between two
//     observation sets sharing a column layout.
//   - Whitener: a one-time linear transform derived from the reference set's
//     covariance, turning Mahalanobis distance into plain Euclidean distance
//     in the whitened space. Build it once, reuse it for every query batch.
//   - SquaredEuclidean: the scalar row-pair kernel the rest of the library
//     builds on.
//
// Metric semantics:
//
//   - Euclidean: Σ_j (a_j − b_j)², no setup, no side effects.
//   - Mahalanobis: estimate the uncorrected covariance of the reference set
//     (divide by n, not n−1), factorize it with Cholesky (p > 1) or take the
//     scalar inverse square root (p == 1), whiten both sides by the inverse
//     upper factor, then measure Euclidean distance in whitened coordinates.
//
// A singular (non positive-definite) covariance fails with
// ErrSingularCovariance. There is no automatic fallback to Euclidean; callers
// that need resilience can set Options.Ridge to add a diagonal jitter term
// before factorization. The default is 0: strict failure.
//
// Complexity:
//
//	Pairwise  — O(n·m·p) (+ O(n·p² + p³) covariance/Cholesky setup, Mahalanobis only)
//	Whitener  — O(n·p² + p³) to build, O(r·p²) per Whiten of r rows
//
// All functions validate fail-fast and return sentinel errors checkable with
// errors.Is; inputs are never mutated.
package distance
