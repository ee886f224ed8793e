package locw

import (
	"gonum.org/v1/gonum/mat"

	"lwpls/distance"
	"lwpls/knn"
	"lwpls/wdist"
)

// KNNOptions configures the full locally-weighted PLS pipeline run by
// PredictKNN: neighbor search, kernel weighting and latent-variable
// orchestration from one place.
//
// Fields:
//   - K             — neighborhood size (clamped to the training-set size).
//   - Metric, Ridge — neighbor-search metric and covariance jitter (see knn).
//   - H, OutlierFactor, Squared — kernel parameters (see wdist). The kernel
//     receives the squared distances produced by the search.
//   - NLVs          — latent-variable counts to predict at; one output
//     matrix per entry.
//   - Scale         — weighted autoscaling of the local blocks.
//   - Workers       — worker-pool size (≤ 0 means GOMAXPROCS).
type KNNOptions struct {
	K             int
	Metric        distance.Metric
	Ridge         float64
	H             float64
	OutlierFactor float64
	Squared       bool
	NLVs          []int
	Scale         bool
	Workers       int
}

// DefaultKNNOptions returns the documented pipeline defaults: K = 10,
// Euclidean metric, H = 2, OutlierFactor = 4, a single latent-variable count
// of 2, no scaling, one worker per CPU.
func DefaultKNNOptions() KNNOptions {
	return KNNOptions{
		K:             10,
		Metric:        distance.Euclidean,
		H:             2,
		OutlierFactor: 4,
		NLVs:          []int{2},
	}
}

// PredictKNN runs the whole pipeline for a query batch:
//
//	queries → knn.Search → wdist.Weights → PredictLV
//
// It returns one m×q prediction matrix per requested latent-variable count.
// Any stage failure (bad shapes, singular covariance, empty counts) aborts
// the call with that stage's sentinel error.
func PredictKNN(Xtrain, Ytrain, X mat.Matrix, o KNNOptions) ([]*mat.Dense, error) {
	nbrs, err := knn.Search(Xtrain, X, o.K, knn.Options{Metric: o.Metric, Ridge: o.Ridge})
	if err != nil {
		return nil, err
	}

	kopts := wdist.Options{H: o.H, OutlierFactor: o.OutlierFactor, Squared: o.Squared}
	listw := make([][]float64, nbrs.Len())
	for i := range listw {
		if listw[i], err = wdist.Weights(nbrs.Distances[i], kopts); err != nil {
			return nil, err
		}
	}

	return PredictLV(Xtrain, Ytrain, X, nbrs, listw, o.NLVs, o.Scale, Options{Workers: o.Workers})
}
