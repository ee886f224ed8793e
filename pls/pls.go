package pls

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Fit computes a weighted kernel-PLS factorization of (X, Y).
//
// Contracts:
//   - X is n×p, Y is n×q, n ≥ 1, p ≥ 1, q ≥ 1, equal row counts.
//   - weights is nil (uniform) or length n, non-negative, finite, positive sum;
//     it is renormalized to sum 1 and never mutated.
//   - opts.NLV ≥ 0; values above min(n, p) are clamped (see Model.NLV).
//
// Errors: ErrEmptyMatrix, ErrDimensionMismatch, ErrBadNLV, ErrBadWeights.
// Rank deficiency is never an error: degenerate components are kept as zero
// vectors and reported through Model.DegenerateLVs.
func Fit(X, Y mat.Matrix, weights []float64, opts Options) (*Model, error) {
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
	if opts.NLV < 0 {
		return nil, ErrBadNLV
	}

	w, err := normalizeWeights(weights, n)
	if err != nil {
		return nil, err
	}

	// Explicit clamp: more components than min(n, p) cannot exist.
	nlv := opts.NLV
	if maxLV := min(n, p); nlv > maxLV {
		nlv = maxLV
	}

	// Weighted centering (and optional scaling) of both blocks.
	xmeans, xscales := weightedMoments(X, w, opts.Scale)
	ymeans, yscales := weightedMoments(Y, w, opts.Scale)
	Xc := centerScale(X, xmeans, xscales)
	Yc := centerScale(Y, ymeans, yscales)

	// Weighted cross-product XtY = Xcᵀ·diag(w)·Yc — the matrix the kernel
	// algorithm factorizes and deflates; X itself is never deflated.
	XtY := mat.NewDense(p, q, nil)
	var i, j, k int
	var wy float64
	for i = 0; i < n; i++ {
		xr := Xc.RawRowView(i)
		yr := Yc.RawRowView(i)
		for k = 0; k < q; k++ {
			wy = w[i] * yr[k]
			if wy == 0 {
				continue
			}
			for j = 0; j < p; j++ {
				XtY.Set(j, k, XtY.At(j, k)+xr[j]*wy)
			}
		}
	}

	m := &Model{
		T:       mat.NewDense(n, max(nlv, 1), nil),
		P:       mat.NewDense(p, max(nlv, 1), nil),
		W:       mat.NewDense(p, max(nlv, 1), nil),
		R:       mat.NewDense(p, max(nlv, 1), nil),
		C:       mat.NewDense(q, max(nlv, 1), nil),
		TT:      make([]float64, nlv),
		XMeans:  xmeans,
		XScales: xscales,
		YMeans:  ymeans,
		YScales: yscales,
		Weights: w,
		NLV:     nlv,
	}

	// Retained basis columns, kept as plain slices for the hot loops.
	rcols := make([][]float64, 0, nlv)
	pcols := make([][]float64, 0, nlv)

	wv := make([]float64, p)
	r := make([]float64, p)
	tvec := make([]float64, n)
	cvec := make([]float64, q)
	pvec := make([]float64, p)
	var a, t int
	var dp, s, tt float64
	for a = 0; a < nlv; a++ {
		// Dominant direction of the (deflated) cross-product.
		if !dominantDirection(XtY, q, wv) {
			m.DegenerateLVs = append(m.DegenerateLVs, a)
			rcols = append(rcols, make([]float64, p))
			pcols = append(pcols, make([]float64, p))
			continue
		}

		// Orthogonalize against previous X-loadings through the retained
		// basis, so r is a combination of original variables.
		copy(r, wv)
		for j = 0; j < a; j++ {
			dp = floats.Dot(wv, pcols[j])
			if dp == 0 {
				continue
			}
			floats.AddScaled(r, -dp, rcols[j])
		}

		// Score vector and its weighted scale.
		tt = 0
		for i = 0; i < n; i++ {
			xr := Xc.RawRowView(i)
			s = 0
			for t = 0; t < p; t++ {
				s += xr[t] * r[t]
			}
			tvec[i] = s
			tt += w[i] * s * s
		}
		if tt <= degenerateTol {
			m.DegenerateLVs = append(m.DegenerateLVs, a)
			rcols = append(rcols, make([]float64, p))
			pcols = append(pcols, make([]float64, p))
			continue
		}

		// Y-loading c = XtYᵀ·r / tt.
		for k = 0; k < q; k++ {
			s = 0
			for j = 0; j < p; j++ {
				s += XtY.At(j, k) * r[j]
			}
			cvec[k] = s / tt
		}

		// X-loading p = Xcᵀ·diag(w)·t / tt.
		for j = 0; j < p; j++ {
			pvec[j] = 0
		}
		for i = 0; i < n; i++ {
			s = w[i] * tvec[i]
			if s == 0 {
				continue
			}
			xr := Xc.RawRowView(i)
			for j = 0; j < p; j++ {
				pvec[j] += xr[j] * s
			}
		}
		for j = 0; j < p; j++ {
			pvec[j] /= tt
		}

		// Deflate the cross-product: XtY -= tt·p·cᵀ.
		for j = 0; j < p; j++ {
			if pvec[j] == 0 {
				continue
			}
			for k = 0; k < q; k++ {
				XtY.Set(j, k, XtY.At(j, k)-tt*pvec[j]*cvec[k])
			}
		}

		// Store the component.
		m.W.SetCol(a, wv)
		m.R.SetCol(a, r)
		m.P.SetCol(a, pvec)
		m.C.SetCol(a, cvec)
		m.T.SetCol(a, tvec)
		m.TT[a] = tt
		rc := make([]float64, p)
		copy(rc, r)
		pc := make([]float64, p)
		copy(pc, pvec)
		rcols = append(rcols, rc)
		pcols = append(pcols, pc)
	}

	return m, nil
}

// dominantDirection writes the unit-norm dominant direction of XtY into dst.
// For a single response the normalized cross-product column is used directly;
// for multiple responses it is the first left singular vector. Returns false
// when no direction can be extracted with numerical confidence.
func dominantDirection(XtY *mat.Dense, q int, dst []float64) bool {
	p := len(dst)
	if q == 1 {
		for j := 0; j < p; j++ {
			dst[j] = XtY.At(j, 0)
		}
		nrm := floats.Norm(dst, 2)
		if nrm <= degenerateTol || math.IsNaN(nrm) {
			return false
		}
		floats.Scale(1/nrm, dst)

		return true
	}

	var svd mat.SVD
	if !svd.Factorize(XtY, mat.SVDThin) {
		return false
	}
	sv := svd.Values(nil)
	if len(sv) == 0 || sv[0] <= degenerateTol {
		return false
	}
	var u mat.Dense
	svd.UTo(&u)
	for j := 0; j < p; j++ {
		dst[j] = u.At(j, 0)
	}

	return true
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

// weightedMoments returns the weighted column means of x and, when scale is
// set, the weighted uncorrected standard deviations (constant columns keep
// scale 1). Weights are assumed normalized to sum 1.
func weightedMoments(x mat.Matrix, w []float64, scale bool) (means, scales []float64) {
	n, c := x.Dims()
	means = make([]float64, c)
	scales = make([]float64, c)
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < c; j++ {
			means[j] += w[i] * x.At(i, j)
		}
	}
	for j = 0; j < c; j++ {
		scales[j] = 1
	}
	if !scale {
		return means, scales
	}

	var d float64
	vars := make([]float64, c)
	for i = 0; i < n; i++ {
		for j = 0; j < c; j++ {
			d = x.At(i, j) - means[j]
			vars[j] += w[i] * d * d
		}
	}
	for j = 0; j < c; j++ {
		if vars[j] > 0 {
			scales[j] = math.Sqrt(vars[j])
		}
	}

	return means, scales
}

// centerScale returns a fresh dense copy of x with columns centered by means
// and divided by scales.
func centerScale(x mat.Matrix, means, scales []float64) *mat.Dense {
	n, c := x.Dims()
	out := mat.NewDense(n, c, nil)
	var i, j int
	for i = 0; i < n; i++ {
		row := out.RawRowView(i)
		for j = 0; j < c; j++ {
			row[j] = (x.At(i, j) - means[j]) / scales[j]
		}
	}

	return out
}
