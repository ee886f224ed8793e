package mlr

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrEmptyMatrix indicates an X or Y with zero rows or columns.
	ErrEmptyMatrix = errors.New("mlr: empty observation matrix")

	// ErrDimensionMismatch indicates X/Y row counts differ, or a prediction
	// input whose column count differs from the training set.
	ErrDimensionMismatch = errors.New("mlr: dimension mismatch")

	// ErrBadWeights indicates observation weights of the wrong length, with
	// negative or non-finite entries, or summing to zero.
	ErrBadWeights = errors.New("mlr: invalid observation weights")

	// ErrSingularDesign indicates the weighted normal-equations matrix is not
	// positive definite, or conditioned too badly to solve; the least-squares
	// solution is not unique.
	ErrSingularDesign = errors.New("mlr: singular design matrix")
)

// maxCondition is the largest normal-equations condition number Fit accepts.
// Factorizations above it carry no usable precision in double arithmetic and
// are treated as singular.
const maxCondition = 1e14

// Model is a fitted weighted least-squares regression: ŷ = x·B + Intercept.
// Immutable after Fit.
type Model struct {
	B         *mat.Dense // p×q coefficients
	Intercept []float64  // length q
}

// Fit solves the weighted least-squares problem with an intercept.
//
// Contracts match pls.Fit: X is n×p, Y is n×q with equal row counts; weights
// is nil (uniform) or length n, non-negative with positive sum, renormalized
// to sum 1 and never mutated.
//
// Errors: ErrEmptyMatrix, ErrDimensionMismatch, ErrBadWeights,
// ErrSingularDesign.
func Fit(X, Y mat.Matrix, weights []float64) (*Model, error) {
	n, p := X.Dims()
	if n == 0 || p == 0 {
		return nil, ErrEmptyMatrix
	}
	yn, q := Y.Dims()
	if yn == 0 || q == 0 {
		return nil, ErrEmptyMatrix
	}
	if yn != n {
		return nil, ErrDimensionMismatch
	}
	w, err := normalizeWeights(weights, n)
	if err != nil {
		return nil, err
	}

	// Weighted column means of both blocks.
	xm := make([]float64, p)
	ym := make([]float64, q)
	var i, j, k int
	for i = 0; i < n; i++ {
		for j = 0; j < p; j++ {
			xm[j] += w[i] * X.At(i, j)
		}
		for k = 0; k < q; k++ {
			ym[k] += w[i] * Y.At(i, k)
		}
	}

	// Normal equations on centered data: A = Xcᵀ·diag(w)·Xc (p×p, symmetric),
	// rhs = Xcᵀ·diag(w)·Yc (p×q).
	a := make([]float64, p*p)
	rhs := mat.NewDense(p, q, nil)
	xr := make([]float64, p)
	var wv float64
	for i = 0; i < n; i++ {
		for j = 0; j < p; j++ {
			xr[j] = X.At(i, j) - xm[j]
		}
		for j = 0; j < p; j++ {
			wv = w[i] * xr[j]
			if wv == 0 {
				continue
			}
			for k = j; k < p; k++ {
				a[j*p+k] += wv * xr[k]
			}
			for k = 0; k < q; k++ {
				rhs.Set(j, k, rhs.At(j, k)+wv*(Y.At(i, k)-ym[k]))
			}
		}
	}
	for j = 0; j < p; j++ {
		for k = j + 1; k < p; k++ {
			a[k*p+j] = a[j*p+k]
		}
	}

	var chol mat.Cholesky
	if !chol.Factorize(mat.NewSymDense(p, a)) {
		return nil, ErrSingularDesign
	}
	// A rank-deficient design can slip through Factorize when the zero pivot
	// rounds to a tiny positive value; the condition number exposes it.
	if chol.Cond() > maxCondition {
		return nil, ErrSingularDesign
	}
	B := mat.NewDense(p, q, nil)
	if err := chol.SolveTo(B, rhs); err != nil {
		return nil, ErrSingularDesign
	}

	intercept := make([]float64, q)
	for k = 0; k < q; k++ {
		s := ym[k]
		for j = 0; j < p; j++ {
			s -= xm[j] * B.At(j, k)
		}
		intercept[k] = s
	}

	return &Model{B: B, Intercept: intercept}, nil
}

// Predict returns the r×q predictions ŷ = x·B + Intercept.
//
// Errors: ErrEmptyMatrix, ErrDimensionMismatch.
func (m *Model) Predict(Xnew mat.Matrix) (*mat.Dense, error) {
	r, c := Xnew.Dims()
	if r == 0 || c == 0 {
		return nil, ErrEmptyMatrix
	}
	p, q := m.B.Dims()
	if c != p {
		return nil, ErrDimensionMismatch
	}

	out := mat.NewDense(r, q, nil)
	var i, j, k int
	var s float64
	for i = 0; i < r; i++ {
		for k = 0; k < q; k++ {
			s = m.Intercept[k]
			for j = 0; j < p; j++ {
				s += Xnew.At(i, j) * m.B.At(j, k)
			}
			out.Set(i, k, s)
		}
	}

	return out, nil
}

// normalizeWeights validates weights and returns a fresh copy summing to 1.
// nil means uniform weights.
func normalizeWeights(weights []float64, n int) ([]float64, error) {
	w := make([]float64, n)
	if weights == nil {
		u := 1.0 / float64(n)
		for i := range w {
			w[i] = u
		}

		return w, nil
	}
	if len(weights) != n {
		return nil, ErrBadWeights
	}
	var sum float64
	for i, v := range weights {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ErrBadWeights
		}
		w[i] = v
		sum += v
	}
	if sum <= 0 {
		return nil, ErrBadWeights
	}
	floats.Scale(1/sum, w)

	return w, nil
}
