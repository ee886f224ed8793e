package pls_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"lwpls/pls"
)

// randDense fills an r×c matrix with deterministic uniform values.
func randDense(rng *rand.Rand, r, c int) *mat.Dense {
	data := make([]float64, r*c)
	for i := range data {
		data[i] = rng.Float64()*2 - 1
	}
	return mat.NewDense(r, c, data)
}

// linearResponse builds Y = X·b + intercept, one response column.
func linearResponse(X *mat.Dense, b []float64, intercept float64) *mat.Dense {
	n, p := X.Dims()
	Y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		s := intercept
		for j := 0; j < p; j++ {
			s += X.At(i, j) * b[j]
		}
		Y.Set(i, 0, s)
	}
	return Y
}

// TestFit_ExactLinearRecovery: with as many latent variables as predictors
// and a noiseless linear response, the model must reproduce the generating
// map on unseen rows.
func TestFit_ExactLinearRecovery(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	X := randDense(rng, 30, 4)
	b := []float64{2, -1, 0.5, 3}
	Y := linearResponse(X, b, 1.5)

	m, err := pls.Fit(X, Y, nil, pls.Options{NLV: 4})
	require.NoError(t, err)
	require.Equal(t, 4, m.NLV)

	Xnew := randDense(rng, 10, 4)
	want := linearResponse(Xnew, b, 1.5)
	got, err := m.Predict(Xnew, 4)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		assert.InDelta(t, want.At(i, 0), got.At(i, 0), 1e-8, "row %d", i)
	}
}

// TestFit_MultiResponse exercises the SVD direction extraction with q = 2
// and checks exact recovery at full rank.
func TestFit_MultiResponse(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	X := randDense(rng, 40, 4)
	b1 := []float64{1, 0, -2, 0.5}
	b2 := []float64{-0.5, 3, 1, 0}
	Y := mat.NewDense(40, 2, nil)
	Y.SetCol(0, linearResponse(X, b1, 0.2).RawMatrix().Data)
	Y.SetCol(1, linearResponse(X, b2, -1).RawMatrix().Data)

	m, err := pls.Fit(X, Y, nil, pls.Options{NLV: 4})
	require.NoError(t, err)

	Xnew := randDense(rng, 6, 4)
	got, err := m.Predict(Xnew, 4)
	require.NoError(t, err)
	want1 := linearResponse(Xnew, b1, 0.2)
	want2 := linearResponse(Xnew, b2, -1)
	for i := 0; i < 6; i++ {
		assert.InDelta(t, want1.At(i, 0), got.At(i, 0), 1e-6, "row %d col 0", i)
		assert.InDelta(t, want2.At(i, 0), got.At(i, 1), 1e-6, "row %d col 1", i)
	}
}

// TestFit_TruncationIdempotence: fitting N components and predicting with a
// must equal fitting a components outright — the component sequence is
// greedy and never depends on the requested count.
func TestFit_TruncationIdempotence(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	X := randDense(rng, 25, 5)
	Y := linearResponse(X, []float64{1, 2, 3, 4, 5}, 0)
	// Perturb so no truncation is trivially exact.
	for i := 0; i < 25; i++ {
		Y.Set(i, 0, Y.At(i, 0)+0.3*(rng.Float64()-0.5))
	}

	full, err := pls.Fit(X, Y, nil, pls.Options{NLV: 5})
	require.NoError(t, err)
	Xnew := randDense(rng, 8, 5)

	for a := 0; a <= 5; a++ {
		short, err := pls.Fit(X, Y, nil, pls.Options{NLV: a})
		require.NoError(t, err)

		wantB, wantI, err := short.Coefficients(a)
		require.NoError(t, err)
		gotB, gotI, err := full.Coefficients(a)
		require.NoError(t, err)
		assert.True(t, mat.EqualApprox(wantB, gotB, 1e-10), "a=%d coefficients", a)
		for k := range wantI {
			assert.InDelta(t, wantI[k], gotI[k], 1e-10, "a=%d intercept", a)
		}

		if a == 0 {
			continue
		}
		want, err := short.Predict(Xnew, a)
		require.NoError(t, err)
		got, err := full.Predict(Xnew, a)
		require.NoError(t, err)
		assert.True(t, mat.EqualApprox(want, got, 1e-10), "a=%d predictions", a)
	}
}

// TestFit_ZeroWeightRowsAreIgnored: rows carrying zero weight must not
// influence the fit at all — the model equals one fitted on the positive-
// weight subset alone.
func TestFit_ZeroWeightRowsAreIgnored(t *testing.T) {
	rng := rand.New(rand.NewSource(10))
	X := randDense(rng, 20, 3)
	Y := linearResponse(X, []float64{1, -2, 0.5}, 0.7)
	for i := 0; i < 20; i++ {
		Y.Set(i, 0, Y.At(i, 0)+0.1*(rng.Float64()-0.5))
	}

	w := make([]float64, 20)
	for i := 0; i < 10; i++ {
		w[i] = 1
	}
	weighted, err := pls.Fit(X, Y, w, pls.Options{NLV: 3})
	require.NoError(t, err)

	Xsub := mat.DenseCopyOf(X.Slice(0, 10, 0, 3))
	Ysub := mat.DenseCopyOf(Y.Slice(0, 10, 0, 1))
	subset, err := pls.Fit(Xsub, Ysub, nil, pls.Options{NLV: 3})
	require.NoError(t, err)

	Xnew := randDense(rng, 5, 3)
	pw, err := weighted.Predict(Xnew, 3)
	require.NoError(t, err)
	ps, err := subset.Predict(Xnew, 3)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(pw, ps, 1e-10))
}

// TestFit_ScaleOption: column scaling must not break exact recovery even
// when predictor magnitudes differ by six orders.
func TestFit_ScaleOption(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	n := 30
	X := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		X.Set(i, 0, (rng.Float64()*2-1)*1e-3)
		X.Set(i, 1, (rng.Float64()*2-1)*1e3)
	}
	b := []float64{250, 0.004}
	Y := linearResponse(X, b, -3)

	m, err := pls.Fit(X, Y, nil, pls.Options{NLV: 2, Scale: true})
	require.NoError(t, err)

	Xnew := mat.NewDense(4, 2, []float64{
		0.0004, 120,
		-0.0007, -380,
		0.0001, 560,
		-0.0002, -40,
	})
	want := linearResponse(Xnew, b, -3)
	got, err := m.Predict(Xnew, 2)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		assert.InDelta(t, want.At(i, 0), got.At(i, 0), 1e-6, "row %d", i)
	}
}

// TestFit_ClampsNLV: requesting more components than min(n, p) clamps and
// reports the effective count.
func TestFit_ClampsNLV(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	X := randDense(rng, 10, 3)
	Y := linearResponse(X, []float64{1, 1, 1}, 0)

	m, err := pls.Fit(X, Y, nil, pls.Options{NLV: 50})
	require.NoError(t, err)
	assert.Equal(t, 3, m.NLV)
	assert.Len(t, m.TT, 3)
}

// TestFit_DegenerateComponents: a duplicated predictor column exhausts the
// cross-product after one component; the second is recorded degenerate,
// kept as zeros, and contributes nothing to predictions.
func TestFit_DegenerateComponents(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	n := 20
	X := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		v := rng.Float64()*2 - 1
		X.Set(i, 0, v)
		X.Set(i, 1, v)
	}
	Y := linearResponse(X, []float64{1, 0}, 0)

	m, err := pls.Fit(X, Y, nil, pls.Options{NLV: 2})
	require.NoError(t, err)
	require.Contains(t, m.DegenerateLVs, 1, "second component must be flagged")

	Xnew := mat.NewDense(2, 2, []float64{0.3, 0.3, -0.8, -0.8})
	p1, err := m.Predict(Xnew, 1)
	require.NoError(t, err)
	p2, err := m.Predict(Xnew, 2)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(p1, p2, 1e-12), "zero component must not change predictions")
}

// TestCoefficients_MeanOnly: a = 0 yields zero coefficients and the weighted
// response mean as intercept.
func TestCoefficients_MeanOnly(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{1, 2, 3, 4, 5, 6, 7, 8})
	Y := mat.NewDense(4, 1, []float64{10, 20, 30, 40})

	m, err := pls.Fit(X, Y, nil, pls.Options{NLV: 2})
	require.NoError(t, err)

	B, intercept, err := m.Coefficients(0)
	require.NoError(t, err)
	assert.True(t, mat.Equal(B, mat.NewDense(2, 1, nil)))
	assert.InDelta(t, 25.0, intercept[0], 1e-12)

	got, err := m.Predict(mat.NewDense(1, 2, []float64{100, -7}), 0)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, got.At(0, 0), 1e-12)
}

// TestTransform_MatchesTrainingScores: projecting the training block must
// reproduce the stored score matrix.
func TestTransform_MatchesTrainingScores(t *testing.T) {
	rng := rand.New(rand.NewSource(14))
	X := randDense(rng, 15, 4)
	Y := linearResponse(X, []float64{1, 0, -1, 2}, 0)

	m, err := pls.Fit(X, Y, nil, pls.Options{NLV: 3})
	require.NoError(t, err)

	scores, err := m.Transform(X, 3)
	require.NoError(t, err)
	r, c := scores.Dims()
	require.Equal(t, 15, r)
	require.Equal(t, 3, c)
	for i := 0; i < 15; i++ {
		for l := 0; l < 3; l++ {
			assert.InDelta(t, m.T.At(i, l), scores.At(i, l), 1e-10, "(%d,%d)", i, l)
		}
	}
}

// TestFit_InputErrors exercises the validation sentinels.
func TestFit_InputErrors(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
	Y := mat.NewDense(3, 1, []float64{1, 2, 3})

	_, err := pls.Fit(X, mat.NewDense(2, 1, []float64{1, 2}), nil, pls.DefaultOptions())
	assert.ErrorIs(t, err, pls.ErrDimensionMismatch)

	_, err = pls.Fit(X, Y, nil, pls.Options{NLV: -1})
	assert.ErrorIs(t, err, pls.ErrBadNLV)

	_, err = pls.Fit(X, Y, []float64{1, 2}, pls.DefaultOptions())
	assert.ErrorIs(t, err, pls.ErrBadWeights)

	_, err = pls.Fit(X, Y, []float64{1, -1, 1}, pls.DefaultOptions())
	assert.ErrorIs(t, err, pls.ErrBadWeights)

	_, err = pls.Fit(X, Y, []float64{0, 0, 0}, pls.DefaultOptions())
	assert.ErrorIs(t, err, pls.ErrBadWeights)

	m, err := pls.Fit(X, Y, nil, pls.DefaultOptions())
	require.NoError(t, err)
	_, err = m.Predict(mat.NewDense(1, 3, []float64{1, 2, 3}), 1)
	assert.ErrorIs(t, err, pls.ErrDimensionMismatch)
	_, err = m.Transform(mat.NewDense(1, 3, []float64{1, 2, 3}), 1)
	assert.ErrorIs(t, err, pls.ErrDimensionMismatch)
}
