package locw

import (
	"errors"

	"gonum.org/v1/gonum/mat"

	"lwpls/mlr"
	"lwpls/pls"
)

var (
	// ErrEmptyMatrix indicates a training or query matrix with zero rows or
	// columns.
	ErrEmptyMatrix = errors.New("locw: empty observation matrix")

	// ErrDimensionMismatch indicates inconsistent shapes between the training
	// blocks and the query set.
	ErrDimensionMismatch = errors.New("locw: dimension mismatch")

	// ErrNilFitter indicates that no fitting procedure was supplied.
	ErrNilFitter = errors.New("locw: nil fitter")

	// ErrBadNeighborList indicates neighbor or weight lists whose lengths or
	// indices do not match the query and training sets.
	ErrBadNeighborList = errors.New("locw: neighbor/weight lists inconsistent with inputs")

	// ErrEmptyNeighborhood indicates a query whose neighbor list is empty.
	// Neighbor search with k ≥ 1 prevents this by construction; hitting it
	// means a caller bug.
	ErrEmptyNeighborhood = errors.New("locw: empty neighborhood")

	// ErrNoLVCounts indicates PredictLV was called with no latent-variable
	// counts.
	ErrNoLVCounts = errors.New("locw: no latent-variable counts requested")
)

// Model predicts responses for new observation rows. Implementations are
// ephemeral inside the orchestrator: created per query, used once, discarded.
type Model interface {
	Predict(x mat.Matrix) (*mat.Dense, error)
}

// Fitter fits a Model on a weighted neighborhood. Any model family honoring
// this contract plugs into Predict: the orchestrator selects the fitter once
// at setup time and calls it per query, never sharing state across queries.
//
// weights may be nil (unweighted) and must otherwise match X's row count;
// implementations must not retain or mutate their inputs.
type Fitter interface {
	Fit(X, Y mat.Matrix, weights []float64) (Model, error)
}

// Options configures orchestration.
//
// Fields:
//   - Workers — worker-pool size; ≤ 0 uses GOMAXPROCS. Results do not depend
//     on the value: output row i is exclusively owned by the worker running
//     query i.
type Options struct {
	Workers int
}

// DefaultOptions returns Options{Workers: 0} (one worker per CPU).
func DefaultOptions() Options {
	return Options{}
}

// PLSFitter adapts weighted kernel PLS to the Fitter contract. The local
// model predicts at its full (clamped) latent-variable count; use PredictLV
// to evaluate several counts from one fit.
type PLSFitter struct {
	Opts pls.Options
}

// Fit implements Fitter.
func (f PLSFitter) Fit(X, Y mat.Matrix, weights []float64) (Model, error) {
	m, err := pls.Fit(X, Y, weights, f.Opts)
	if err != nil {
		return nil, err
	}

	return plsModel{m}, nil
}

// plsModel fixes the prediction latent-variable count to the fitted maximum.
type plsModel struct {
	m *pls.Model
}

func (p plsModel) Predict(x mat.Matrix) (*mat.Dense, error) {
	return p.m.Predict(x, p.m.NLV)
}

// MLRFitter adapts weighted multiple linear regression to the Fitter
// contract.
type MLRFitter struct{}

// Fit implements Fitter.
func (MLRFitter) Fit(X, Y mat.Matrix, weights []float64) (Model, error) {
	m, err := mlr.Fit(X, Y, weights)
	if err != nil {
		return nil, err
	}

	return m, nil
}
