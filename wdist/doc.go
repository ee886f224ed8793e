// Package wdist converts neighbor distances into non-negative weights with a
// robust decreasing-exponential kernel.
//
// 🚀 How are weights computed?
//
//	Given distances d and sharpness h:
//	  1. med = median(d), mad = median(|d − med|)
//	  2. cutoff = med + OutlierFactor·mad — distances beyond it get weight 0
//	  3. w_i = exp(−d_i / (h·mad)) for d_i ≤ cutoff, else 0
//	  4. w is divided by max(w), so the closest in-range neighbor weighs 1
//
// Smaller h means faster decay and a more local model; the MAD scaling makes
// the kernel width adapt to each neighborhood's own dispersion, and the
// cutoff suppresses outlying neighbors entirely.
//
// Degenerate neighborhoods — mad = 0 (at least half the distances identical),
// every weight clipped to 0, or a non-finite normalization — fall back to
// all-ones: every neighbor equally trusted.
//
// Options.Squared squares the distances before the transform, turning the
// kernel into a Gaussian (RBF) form.
//
// Weights is pure: no side effects, inputs never mutated.
//
// Complexity: O(k log k) for the medians, O(k) otherwise.
package wdist
