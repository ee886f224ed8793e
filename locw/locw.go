package locw

import (
	"runtime"
	"sync"

	"gonum.org/v1/gonum/mat"

	"lwpls/knn"
)

// Predict runs the generic locally-weighted pipeline: for every query row of
// X, gather its neighborhood from (Xtrain, Ytrain), apply the classification
// shortcut where possible, otherwise fit one local model with the supplied
// fitter and predict the single query row. Returns an m×q matrix whose row i
// answers query row i.
//
// Contracts:
//   - Xtrain (n×p) and Ytrain (n×q) share row count; X is m×p.
//   - nbrs covers all m queries; indices refer to Xtrain rows; every
//     neighborhood is non-empty.
//   - listw is nil (unweighted fits) or holds one weight vector per query,
//     each matching its neighborhood length. Weight semantics belong to the
//     fitter (pls/mlr renormalize to sum 1).
//
// The batch either succeeds entirely or fails with the first error
// encountered; no retries, no partial output.
func Predict(Xtrain, Ytrain, X mat.Matrix, nbrs *knn.Neighbors, listw [][]float64, fitter Fitter, opts Options) (*mat.Dense, error) {
	n, p, q, m, err := validateInputs(Xtrain, Ytrain, X, nbrs, listw)
	if err != nil {
		return nil, err
	}
	if fitter == nil {
		return nil, ErrNilFitter
	}

	out := mat.NewDense(m, q, nil)
	err = forEachQuery(m, opts.Workers, func(i int) error {
		Xs, Ys, w, err := gatherNeighborhood(Xtrain, Ytrain, n, nbrs.Indices[i], listw, i)
		if err != nil {
			return err
		}

		// Classification shortcut: a response-homogeneous neighborhood needs
		// no regression — its single value is the prediction.
		if c, ok := homogeneousResponse(Ys, q); ok {
			out.Set(i, 0, c)
			return nil
		}

		model, err := fitter.Fit(Xs, Ys, w)
		if err != nil {
			return err
		}
		pred, err := model.Predict(queryRow(X, i, p))
		if err != nil {
			return err
		}
		for k := 0; k < q; k++ {
			out.Set(i, k, pred.At(0, k))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// validateInputs checks the shared contracts of Predict and PredictLV and
// returns the relevant dimensions.
func validateInputs(Xtrain, Ytrain, X mat.Matrix, nbrs *knn.Neighbors, listw [][]float64) (n, p, q, m int, err error) {
	n, p = Xtrain.Dims()
	if n == 0 || p == 0 {
		return 0, 0, 0, 0, ErrEmptyMatrix
	}
	yn, yq := Ytrain.Dims()
	if yn == 0 || yq == 0 {
		return 0, 0, 0, 0, ErrEmptyMatrix
	}
	if yn != n {
		return 0, 0, 0, 0, ErrDimensionMismatch
	}
	xm, xp := X.Dims()
	if xm == 0 || xp == 0 {
		return 0, 0, 0, 0, ErrEmptyMatrix
	}
	if xp != p {
		return 0, 0, 0, 0, ErrDimensionMismatch
	}
	if nbrs == nil || nbrs.Len() != xm || len(nbrs.Distances) != xm {
		return 0, 0, 0, 0, ErrBadNeighborList
	}
	if listw != nil && len(listw) != xm {
		return 0, 0, 0, 0, ErrBadNeighborList
	}

	return n, p, yq, xm, nil
}

// gatherNeighborhood materializes the neighborhood blocks for query i and
// resolves its weight vector (nil when listw is nil).
func gatherNeighborhood(Xtrain, Ytrain mat.Matrix, n int, idx []int, listw [][]float64, i int) (*mat.Dense, *mat.Dense, []float64, error) {
	k := len(idx)
	if k == 0 {
		return nil, nil, nil, ErrEmptyNeighborhood
	}
	_, p := Xtrain.Dims()
	_, q := Ytrain.Dims()
	Xs := mat.NewDense(k, p, nil)
	Ys := mat.NewDense(k, q, nil)
	for r, id := range idx {
		if id < 0 || id >= n {
			return nil, nil, nil, ErrBadNeighborList
		}
		mat.Row(Xs.RawRowView(r), id, Xtrain)
		mat.Row(Ys.RawRowView(r), id, Ytrain)
	}

	var w []float64
	if listw != nil {
		w = listw[i]
		if w != nil && len(w) != k {
			return nil, nil, nil, ErrBadNeighborList
		}
	}

	return Xs, Ys, w, nil
}

// homogeneousResponse reports whether the single-column response block holds
// one constant value, and returns it.
func homogeneousResponse(Ys *mat.Dense, q int) (float64, bool) {
	if q != 1 {
		return 0, false
	}
	k, _ := Ys.Dims()
	c := Ys.At(0, 0)
	for r := 1; r < k; r++ {
		if Ys.At(r, 0) != c {
			return 0, false
		}
	}

	return c, true
}

// queryRow extracts query i of X as a 1×p matrix.
func queryRow(X mat.Matrix, i, p int) *mat.Dense {
	xq := mat.NewDense(1, p, nil)
	mat.Row(xq.RawRowView(0), i, X)

	return xq
}

// forEachQuery runs fn(i) for i in [0, m) on a worker pool. Each index is
// handled by exactly one worker; the first error is retained and returned
// after the pool drains. workers ≤ 0 defaults to GOMAXPROCS.
func forEachQuery(m, workers int, fn func(i int) error) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > m {
		workers = m
	}
	if workers == 1 {
		for i := 0; i < m; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}

		return nil
	}

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	jobs := make(chan int)
	for wkr := 0; wkr < workers; wkr++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := fn(i); err != nil {
					errOnce.Do(func() { firstErr = err })
				}
			}
		}()
	}
	for i := 0; i < m; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return firstErr
}
