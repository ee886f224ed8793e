// Package locw_test provides runnable examples for the locally-weighted
// pipeline, executable via "go test -run Example".
package locw_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"lwpls/knn"
	"lwpls/locw"
)

// ExamplePredictKNN runs the full pipeline on two flat response regions.
// Each query's neighborhood is response-homogeneous, so the classification
// shortcut emits the region's value directly.
func ExamplePredictKNN() {
	// Training set: two groups of 1-D observations with constant responses.
	Xtrain := mat.NewDense(6, 1, []float64{0, 1, 2, 10, 11, 12})
	Ytrain := mat.NewDense(6, 1, []float64{0, 0, 0, 1, 1, 1})

	// Two queries, one inside each group.
	X := mat.NewDense(2, 1, []float64{1.2, 10.8})

	o := locw.DefaultKNNOptions()
	o.K = 3
	o.NLVs = []int{1}

	preds, err := locw.PredictKNN(Xtrain, Ytrain, X, o)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Printf("query 1 -> %.0f\nquery 2 -> %.0f\n", preds[0].At(0, 0), preds[0].At(1, 0))
	// Output:
	// query 1 -> 0
	// query 2 -> 1
}

// ExamplePredict_nearestNeighbor shows the generic orchestrator collapsing
// to exact nearest-neighbor lookup when neighborhoods hold a single row.
func ExamplePredict_nearestNeighbor() {
	Xtrain := mat.NewDense(3, 1, []float64{0, 5, 10})
	Ytrain := mat.NewDense(3, 1, []float64{100, 200, 300})
	X := mat.NewDense(1, 1, []float64{4})

	nbrs, err := knn.Search(Xtrain, X, 1, knn.DefaultOptions())
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	out, err := locw.Predict(Xtrain, Ytrain, X, nbrs, nil, locw.MLRFitter{}, locw.DefaultOptions())
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Printf("%.0f\n", out.At(0, 0))
	// Output: 200
}
