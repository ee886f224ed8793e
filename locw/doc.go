// Package locw orchestrates locally-weighted prediction: one model per query
// point, fitted on that query's neighborhood only, used once and discarded.
//
// 🚀 How does it work?
//
//	For every query row i, given its neighbor indices and (optionally)
//	neighbor weights:
//	  (a) gather the neighborhood rows of the training set
//	  (b) if Y has one column and every neighborhood response is identical,
//	      emit that value directly — the classification shortcut, no fit
//	  (c) otherwise fit a local model on the weighted neighborhood
//	  (d) predict the single query row
//	Output row i always answers query row i, whatever order workers finish in.
//
// Two orchestration variants:
//
//   - Predict   — generic: any Fitter (kernel PLS, plain least squares, or a
//     caller-supplied fit/predict pair) selected once at setup time.
//   - PredictLV — latent-variable specialized: fits kernel PLS once per query
//     at the maximum requested latent-variable count and slices the fitted
//     basis for every smaller count instead of refitting. This is what makes
//     grid search over (neighborhood size × latent-variable count) tractable.
//
// PredictKNN composes the whole pipeline — neighbor search, kernel weighting,
// PredictLV — from a single option set.
//
// Concurrency:
//
//	Queries are independent units of work executed on a shared-memory worker
//	pool (Options.Workers; ≤ 0 means GOMAXPROCS). Workers pull query indices
//	from a channel and write only their own output rows, so the scatter/gather
//	needs no locks. The shared training matrices and neighbor lists are
//	read-only. There is no cancellation, retry or timeout: the call either
//	returns the full prediction set or the first error encountered.
//
// Failure modes:
//
//   - ErrEmptyNeighborhood — a query has no neighbors (a caller/config bug:
//     neighbor search with k ≥ 1 prevents it by construction).
//   - ErrBadNeighborList — list lengths or indices inconsistent with inputs.
//   - ErrNilFitter, ErrEmptyMatrix, ErrDimensionMismatch, ErrNoLVCounts.
//   - Any local fit error (e.g. mlr.ErrSingularDesign) aborts the batch.
package locw
