// Package pls implements weighted kernel partial least squares — the
// latent-variable factorization used as the fitting primitive of this
// library.
//
// 🚀 What is kernel PLS?
//
//	PLS extracts an orthogonal sequence of latent variables: linear
//	combinations of the predictors chosen to maximize explained covariance
//	with the responses (response-aware principal components). The kernel
//	variant never deflates the n×p data matrix itself; it works on the much
//	smaller p×q weighted cross-product XtY = Xᵀ·diag(w)·Y, deflating that
//	after every extracted component. For each component a:
//
//	  1. direction w_a = dominant direction of XtY
//	     (the normalized cross-product column when q == 1, the first left
//	     singular vector otherwise)
//	  2. r_a = w_a orthogonalized against all previous X-loadings through the
//	     retained basis R — so scores of new data are X·R directly, with no
//	     deflated copies of X anywhere
//	  3. score t_a = X·r_a, weighted scale tt_a = t_aᵀ·diag(w)·t_a
//	  4. Y-loading c_a = XtYᵀ·r_a / tt_a, X-loading p_a = Xᵀ·diag(w)·t_a / tt_a
//	  5. deflation: XtY ← XtY − tt_a·p_a·c_aᵀ
//
// ✨ Key properties:
//
//   - Truncation for free: a model fitted with nlv = N predicts at any
//     a ≤ N by slicing the first a columns of R and C; the results equal a
//     direct fit with nlv = a exactly (the greedy component sequence does not
//     depend on the requested count).
//   - Weighted throughout: observation weights (renormalized to sum 1) enter
//     the means, the optional scaling, the cross-product and the score
//     scales; distance-derived neighbor weights plug straight in.
//   - Degeneracy is not fatal: a component whose direction norm or score
//     scale is numerically zero (collinear or duplicate predictor columns) is
//     retained as a zero vector contributing nothing, and its index is
//     recorded in Model.DegenerateLVs as a diagnostic.
//   - nlv > min(n, p) is clamped, not rejected; Model.NLV reports the
//     effective count.
//
// Complexity: O(nlv·(n·p + p·q) + nlv·p·q) time for q == 1;
// multi-response adds one p×q SVD per component. Space O(n·nlv + p·nlv).
package pls
