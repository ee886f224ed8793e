// Package lwpls is a locally-weighted latent-variable prediction engine:
// fit one small model per query point, on that query's nearest neighbors,
// weighted by how close they are.
//
// 🚀 What is lwpls?
//
//	A pure-Go library that combines:
//		• Distance geometry: squared Euclidean & Mahalanobis (whitened) metrics
//		• Neighbor search: exact brute-force k-NN with deterministic tie-breaks
//		• Kernel weighting: robust MAD-scaled exponential weights with outlier clipping
//		• Kernel PLS: fast latent-variable factorization with cross-product deflation
//		• Local orchestration: one weighted fit per query, executed in parallel
//
// ✨ Why choose lwpls?
//
//   - Exact – no approximate indexes, no stochastic fitting; fixed seeds everywhere
//   - Tunable – predict at every latent-variable count from a single fit per query
//   - Polymorphic – any fit/predict pair plugs into the orchestrator (PLS, MLR, …)
//   - Deterministic – output row i always answers query row i, whatever the worker order
//
// Everything is organized under six subpackages:
//
//	distance/ — pairwise squared distances + Mahalanobis whitening
//	knn/      — exact nearest-neighbor search over observation rows
//	wdist/    — distance → weight transform (robust exponential kernel)
//	pls/      — weighted kernel partial least squares (fit, transform, predict)
//	mlr/      — weighted multiple linear regression (alternative local fitter)
//	locw/     — the locally-weighted prediction orchestrator
//
// Typical pipeline:
//
//	queries → knn.Search → wdist.Weights → locw.PredictLV → predictions per nlv
//
// or in one call:
//
//	preds, err := locw.PredictKNN(Xtrain, Ytrain, X, locw.DefaultKNNOptions())
//
// Matrices are gonum mat.Dense values; rows are observations, columns are
// variables. See each package's doc.go for contracts, errors and complexity.
package lwpls
