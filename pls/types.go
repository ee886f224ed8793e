package pls

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrEmptyMatrix indicates an X or Y with zero rows or columns.
	ErrEmptyMatrix = errors.New("pls: empty observation matrix")

	// ErrDimensionMismatch indicates X and Y row counts differ, or a
	// prediction input whose column count differs from the training set.
	ErrDimensionMismatch = errors.New("pls: dimension mismatch")

	// ErrBadNLV indicates a negative requested latent-variable count at fit
	// time. (Prediction-time requests are clamped, never rejected.)
	ErrBadNLV = errors.New("pls: nlv must be >= 0")

	// ErrBadWeights indicates observation weights of the wrong length, with
	// negative or non-finite entries, or summing to zero.
	ErrBadWeights = errors.New("pls: invalid observation weights")
)

// degenerateTol is the numeric threshold under which a direction norm or a
// score scale is treated as zero, marking the component degenerate.
const degenerateTol = 1e-12

// Options configures Fit.
//
// Fields:
//   - NLV   — number of latent variables to extract; clamped to min(n, p).
//   - Scale — divide each column by its weighted (uncorrected) standard
//     deviation after centering. Constant columns keep scale 1.
type Options struct {
	NLV   int
	Scale bool
}

// DefaultOptions returns Options{NLV: 1}. The latent-variable count is the
// main tuning knob of the method; callers are expected to set it.
func DefaultOptions() Options {
	return Options{NLV: 1}
}

// Model is a fitted weighted kernel-PLS factorization. It is exclusively
// owned by its creator and immutable after Fit; every accessor allocates its
// own output.
//
// With Xs the centered/scaled training predictors, the stored matrices
// satisfy T = Xs·R, and predictions at any a ≤ NLV use only the first a
// columns of R and C.
type Model struct {
	T *mat.Dense // n×NLV scores
	P *mat.Dense // p×NLV X-loadings
	W *mat.Dense // p×NLV raw direction vectors
	R *mat.Dense // p×NLV regression basis (scores of new data = Xs·R)
	C *mat.Dense // q×NLV Y-loadings

	// TT[a] is the weighted sum of squares of score column a.
	TT []float64

	// Centering/scaling state and the normalized observation weights used at
	// fit time.
	XMeans, XScales []float64
	YMeans, YScales []float64
	Weights         []float64

	// NLV is the effective latent-variable count after clamping to min(n, p).
	NLV int

	// DegenerateLVs lists zero-based component indices retained as zero
	// vectors because no direction could be extracted with numerical
	// confidence. Non-fatal diagnostic; such components contribute nothing.
	DegenerateLVs []int
}

// clampLV restricts a prediction-time latent-variable request to [0, NLV].
func (m *Model) clampLV(a int) int {
	if a < 0 {
		return 0
	}
	if a > m.NLV {
		return m.NLV
	}

	return a
}
