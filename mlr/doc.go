// Package mlr implements weighted multiple linear regression with an
// intercept — a plain least-squares alternative to the kernel-PLS fitter.
//
// It exists mainly to plug into the local-prediction orchestrator: locw
// treats any fit/predict pair polymorphically, and mlr is the smallest real
// model family exercising that contract. Mathematically it coincides with a
// PLS model fitted at full rank (nlv = p), without latent-variable
// truncation.
//
// The fit centers both blocks by their weighted means and solves the normal
// equations (Xcᵀ·diag(w)·Xc)·B = Xcᵀ·diag(w)·Yc by Cholesky factorization.
// A design matrix that is not positive definite (collinear or too few
// observations) fails with ErrSingularDesign — unlike PLS, plain least
// squares has no safe degenerate recovery.
//
// Complexity: O(n·p² + p³) fit, O(r·p·q) predict.
package mlr
