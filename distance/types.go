package distance

import "errors"

// Metric selects how pairwise distances are measured.
//
//   - Euclidean   — squared Euclidean distance on raw coordinates.
//   - Mahalanobis — squared Euclidean distance after whitening by the
//     reference set's inverse Cholesky factor.
type Metric int

const (
	// Euclidean squared distance; no setup cost, no failure modes.
	Euclidean Metric = iota

	// Mahalanobis squared distance; requires a positive-definite covariance
	// estimate of the reference set (see ErrSingularCovariance).
	Mahalanobis
)

// String returns the configuration-surface name of the metric.
func (m Metric) String() string {
	switch m {
	case Euclidean:
		return "euclidean"
	case Mahalanobis:
		return "mahalanobis"
	default:
		return "unknown"
	}
}

// Options configures pairwise distance computation.
//
// Fields:
//   - Metric — Euclidean (default) or Mahalanobis.
//   - Ridge  — non-negative jitter λ added to the covariance diagonal before
//     Cholesky factorization (Mahalanobis only). The default 0 keeps the
//     strict contract: a singular covariance fails with
//     ErrSingularCovariance rather than being silently regularized.
type Options struct {
	Metric Metric
	Ridge  float64
}

// DefaultOptions returns the documented defaults: Euclidean metric, no ridge.
func DefaultOptions() Options {
	return Options{Metric: Euclidean, Ridge: 0}
}

// maxCondition is the largest covariance condition number the whitener
// accepts. Factorizations above it carry no usable precision in double
// arithmetic and are treated as singular.
const maxCondition = 1e14

var (
	// ErrEmptyMatrix indicates an observation matrix with zero rows or columns.
	ErrEmptyMatrix = errors.New("distance: empty observation matrix")

	// ErrDimensionMismatch indicates reference and query sets with different
	// column counts, or a vector pair of different lengths.
	ErrDimensionMismatch = errors.New("distance: dimension mismatch")

	// ErrSingularCovariance indicates the reference covariance is not
	// positive definite, so no whitening transform exists. Callers may retry
	// with Options.Ridge > 0 or fall back to the Euclidean metric themselves;
	// this package never does either automatically.
	ErrSingularCovariance = errors.New("distance: singular covariance matrix")

	// ErrUnknownMetric indicates an unrecognized Metric value.
	ErrUnknownMetric = errors.New("distance: unknown metric")

	// ErrBadRidge indicates a negative or non-finite ridge term.
	ErrBadRidge = errors.New("distance: ridge must be finite and >= 0")
)
