package pls

import "gonum.org/v1/gonum/mat"

// Coefficients reconstructs the regression coefficients of the fitted model
// truncated to its first a latent variables, expressed in the original
// (uncentered, unscaled) units: B is p×q and intercept has length q, such
// that ŷ = x·B + intercept.
//
// a is clamped to [0, NLV]; a = 0 yields zero coefficients and the weighted
// response means as intercept.
func (m *Model) Coefficients(a int) (*mat.Dense, []float64, error) {
	a = m.clampLV(a)
	p := len(m.XMeans)
	q := len(m.YMeans)

	// B = R[:, :a]·C[:, :a]ᵀ on the centered/scaled blocks, then rescaled
	// back to original units column by column.
	B := mat.NewDense(p, q, nil)
	var j, k, l int
	var s float64
	for j = 0; j < p; j++ {
		for k = 0; k < q; k++ {
			s = 0
			for l = 0; l < a; l++ {
				s += m.R.At(j, l) * m.C.At(k, l)
			}
			B.Set(j, k, s*m.YScales[k]/m.XScales[j])
		}
	}

	// Intercept recovered from the weighted means keeps training predictions
	// unbiased.
	intercept := make([]float64, q)
	for k = 0; k < q; k++ {
		s = m.YMeans[k]
		for j = 0; j < p; j++ {
			s -= m.XMeans[j] * B.At(j, k)
		}
		intercept[k] = s
	}

	return B, intercept, nil
}

// Predict returns the m×q response predictions of Xnew using the first a
// latent variables. a is clamped to [0, NLV]; fitting once at a large count
// and predicting at every smaller one is exact and cheap.
//
// Errors: ErrEmptyMatrix, ErrDimensionMismatch.
func (m *Model) Predict(Xnew mat.Matrix, a int) (*mat.Dense, error) {
	r, c := Xnew.Dims()
	if r == 0 || c == 0 {
		return nil, ErrEmptyMatrix
	}
	if c != len(m.XMeans) {
		return nil, ErrDimensionMismatch
	}

	B, intercept, err := m.Coefficients(a)
	if err != nil {
		return nil, err
	}
	q := len(m.YMeans)
	out := mat.NewDense(r, q, nil)
	var i, j, k int
	var s float64
	for i = 0; i < r; i++ {
		for k = 0; k < q; k++ {
			s = intercept[k]
			for j = 0; j < c; j++ {
				s += Xnew.At(i, j) * B.At(j, k)
			}
			out.Set(i, k, s)
		}
	}

	return out, nil
}

// Transform returns the r×a score matrix of Xnew: each row is centered and
// scaled with the training statistics, then projected on the first a basis
// columns of R. a is clamped to [1, NLV] (a score matrix needs at least one
// column).
//
// Errors: ErrEmptyMatrix, ErrDimensionMismatch.
func (m *Model) Transform(Xnew mat.Matrix, a int) (*mat.Dense, error) {
	r, c := Xnew.Dims()
	if r == 0 || c == 0 {
		return nil, ErrEmptyMatrix
	}
	if c != len(m.XMeans) {
		return nil, ErrDimensionMismatch
	}
	a = m.clampLV(a)
	if a < 1 {
		a = 1
	}
	if m.NLV == 0 {
		return nil, ErrBadNLV
	}

	out := mat.NewDense(r, a, nil)
	xs := make([]float64, c)
	var i, j, l int
	var s float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			xs[j] = (Xnew.At(i, j) - m.XMeans[j]) / m.XScales[j]
		}
		for l = 0; l < a; l++ {
			s = 0
			for j = 0; j < c; j++ {
				s += xs[j] * m.R.At(j, l)
			}
			out.Set(i, l, s)
		}
	}

	return out, nil
}
