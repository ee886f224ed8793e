package locw

import (
	"gonum.org/v1/gonum/mat"

	"lwpls/knn"
	"lwpls/pls"
)

// PredictLV is the latent-variable-specialized orchestrator: it fits each
// query's local kernel-PLS model once, at the maximum count in nlvs, and
// produces predictions for every requested count by slicing the fitted basis
// instead of refitting. Returns one m×q prediction matrix per entry of nlvs,
// in the same order.
//
// The sliced predictions equal independent fits at each count exactly (the
// greedy component sequence does not depend on the requested total), so this
// is the cheap path for tuning the latent-variable count. Counts above what a
// neighborhood can support are clamped per the pls contract; negative counts
// clamp to 0 (weighted-mean prediction).
//
// scale selects weighted autoscaling of the local blocks (pls.Options.Scale).
// All other contracts match Predict, including the classification shortcut:
// a response-homogeneous neighborhood emits its constant for every requested
// count without fitting.
func PredictLV(Xtrain, Ytrain, X mat.Matrix, nbrs *knn.Neighbors, listw [][]float64, nlvs []int, scale bool, opts Options) ([]*mat.Dense, error) {
	n, p, q, m, err := validateInputs(Xtrain, Ytrain, X, nbrs, listw)
	if err != nil {
		return nil, err
	}
	if len(nlvs) == 0 {
		return nil, ErrNoLVCounts
	}
	maxLV := nlvs[0]
	for _, a := range nlvs[1:] {
		if a > maxLV {
			maxLV = a
		}
	}
	if maxLV < 0 {
		maxLV = 0
	}

	outs := make([]*mat.Dense, len(nlvs))
	for v := range outs {
		outs[v] = mat.NewDense(m, q, nil)
	}

	err = forEachQuery(m, opts.Workers, func(i int) error {
		Xs, Ys, w, err := gatherNeighborhood(Xtrain, Ytrain, n, nbrs.Indices[i], listw, i)
		if err != nil {
			return err
		}

		if c, ok := homogeneousResponse(Ys, q); ok {
			for v := range outs {
				outs[v].Set(i, 0, c)
			}

			return nil
		}

		// One fit at the maximum requested count…
		model, err := pls.Fit(Xs, Ys, w, pls.Options{NLV: maxLV, Scale: scale})
		if err != nil {
			return err
		}
		// …then a sliced prediction per count.
		xq := queryRow(X, i, p)
		for v, a := range nlvs {
			pred, err := model.Predict(xq, a)
			if err != nil {
				return err
			}
			for k := 0; k < q; k++ {
				outs[v].Set(i, k, pred.At(0, k))
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return outs, nil
}
