package distance

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// SquaredEuclidean returns Σ_j (a_j − b_j)² for two observation rows.
// The two slices must have equal, non-zero length.
//
// Complexity: O(p).
func SquaredEuclidean(a, b []float64) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, ErrEmptyMatrix
	}
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}
	var d, diff float64
	for j := range a {
		diff = a[j] - b[j]
		d += diff * diff
	}

	return d, nil
}

// Whitener maps observation rows into a space where Mahalanobis distance
// equals Euclidean distance. It is built once from a reference set and may be
// reused for any number of query batches with the same column layout.
//
// With Σ = UᵀU the upper-Cholesky factorization of the reference covariance,
// a whitened row is x·U⁻¹: then (x−y)·Σ⁻¹·(x−y)ᵀ = ‖(x−y)·U⁻¹‖².
// Means need not be subtracted — they cancel in every row difference.
type Whitener struct {
	winv *mat.Dense // p×p inverse upper Cholesky factor (1×1 inverse std when p == 1)
	cols int
}

// NewWhitener estimates the uncorrected covariance (divide by n) of the
// reference set, adds ridge·I to its diagonal, and inverts its upper Cholesky
// factor. A covariance that is not positive definite, or whose factorization
// is conditioned worse than maxCondition, fails with ErrSingularCovariance;
// ridge = 0 keeps that strict behavior.
//
// Complexity: O(n·p² + p³).
func NewWhitener(ref mat.Matrix, ridge float64) (*Whitener, error) {
	if ridge < 0 || math.IsNaN(ridge) || math.IsInf(ridge, 0) {
		return nil, ErrBadRidge
	}
	n, p := ref.Dims()
	if n == 0 || p == 0 {
		return nil, ErrEmptyMatrix
	}

	// Column means of the reference set.
	means := make([]float64, p)
	var i, j, k int
	for i = 0; i < n; i++ {
		for j = 0; j < p; j++ {
			means[j] += ref.At(i, j)
		}
	}
	invN := 1.0 / float64(n)
	for j = 0; j < p; j++ {
		means[j] *= invN
	}

	// p == 1: the whitening transform is the scalar inverse standard deviation.
	if p == 1 {
		var v, d float64
		for i = 0; i < n; i++ {
			d = ref.At(i, 0) - means[0]
			v += d * d
		}
		v = v*invN + ridge
		if v <= 0 {
			return nil, ErrSingularCovariance
		}

		return &Whitener{winv: mat.NewDense(1, 1, []float64{1 / math.Sqrt(v)}), cols: 1}, nil
	}

	// Uncorrected covariance S = Xcᵀ·Xc / n, upper triangle first, mirrored after.
	cov := make([]float64, p*p)
	row := make([]float64, p)
	for i = 0; i < n; i++ {
		for j = 0; j < p; j++ {
			row[j] = ref.At(i, j) - means[j]
		}
		for j = 0; j < p; j++ {
			for k = j; k < p; k++ {
				cov[j*p+k] += row[j] * row[k]
			}
		}
	}
	var v float64
	for j = 0; j < p; j++ {
		for k = j; k < p; k++ {
			v = cov[j*p+k] * invN
			if j == k {
				v += ridge
			}
			cov[j*p+k] = v
			cov[k*p+j] = v
		}
	}

	// Cholesky factorization; failure means singular / not positive definite.
	var chol mat.Cholesky
	if !chol.Factorize(mat.NewSymDense(p, cov)) {
		return nil, ErrSingularCovariance
	}
	// An exactly rank-deficient covariance can slip through Factorize when
	// the zero pivot rounds to a tiny positive value; the condition number
	// exposes it.
	if chol.Cond() > maxCondition {
		return nil, ErrSingularCovariance
	}
	u := mat.NewTriDense(p, mat.Upper, nil)
	chol.UTo(u)
	uinv := mat.NewTriDense(p, mat.Upper, nil)
	if err := uinv.InverseTri(u); err != nil {
		// A Condition error here means the factor is numerically unusable;
		// the strict contract surfaces it as a singular covariance.
		return nil, ErrSingularCovariance
	}
	winv := mat.NewDense(p, p, nil)
	winv.Copy(uinv)

	return &Whitener{winv: winv, cols: p}, nil
}

// Whiten returns x·U⁻¹, the whitened copy of x. Column count must match the
// reference set the Whitener was built from. The input is never mutated.
//
// Complexity: O(r·p²) for r input rows.
func (w *Whitener) Whiten(x mat.Matrix) (*mat.Dense, error) {
	r, c := x.Dims()
	if r == 0 || c == 0 {
		return nil, ErrEmptyMatrix
	}
	if c != w.cols {
		return nil, ErrDimensionMismatch
	}
	out := mat.NewDense(r, w.cols, nil)
	out.Mul(x, w.winv)

	return out, nil
}

// Pairwise computes the full matrix of squared distances between every
// reference row and every query row: out[i, j] = d²(ref_i, query_j), shape
// n_ref × n_query. For the Mahalanobis metric the whitening transform is
// derived from ref once and applied to both sides.
//
// Errors: ErrEmptyMatrix, ErrDimensionMismatch, ErrUnknownMetric and, for
// Mahalanobis, ErrSingularCovariance / ErrBadRidge from NewWhitener.
//
// Complexity: O(n·m·p) plus the one-time whitening setup.
func Pairwise(ref, queries mat.Matrix, opts Options) (*mat.Dense, error) {
	n, p := ref.Dims()
	m, q := queries.Dims()
	if n == 0 || p == 0 || m == 0 || q == 0 {
		return nil, ErrEmptyMatrix
	}
	if p != q {
		return nil, ErrDimensionMismatch
	}

	switch opts.Metric {
	case Euclidean:
		return pairwiseEuclidean(ref, queries), nil
	case Mahalanobis:
		w, err := NewWhitener(ref, opts.Ridge)
		if err != nil {
			return nil, err
		}
		wr, err := w.Whiten(ref)
		if err != nil {
			return nil, err
		}
		wq, err := w.Whiten(queries)
		if err != nil {
			return nil, err
		}

		return pairwiseEuclidean(wr, wq), nil
	default:
		return nil, ErrUnknownMetric
	}
}

// pairwiseEuclidean fills the n_ref × n_query squared-Euclidean matrix.
// Shapes are validated by the caller.
func pairwiseEuclidean(ref, queries mat.Matrix) *mat.Dense {
	n, p := ref.Dims()
	m, _ := queries.Dims()
	out := mat.NewDense(n, m, nil)

	a := make([]float64, p)
	b := make([]float64, p)
	var i, j, t int
	var d, diff float64
	for j = 0; j < m; j++ { // query-outer: each query row is extracted once
		mat.Row(b, j, queries)
		for i = 0; i < n; i++ {
			mat.Row(a, i, ref)
			d = 0
			for t = 0; t < p; t++ {
				diff = a[t] - b[t]
				d += diff * diff
			}
			out.Set(i, j, d)
		}
	}

	return out
}
