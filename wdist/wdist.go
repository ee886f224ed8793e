package wdist

import (
	"errors"
	"math"
	"sort"
)

var (
	// ErrEmptyDistances indicates an empty distance vector.
	ErrEmptyDistances = errors.New("wdist: empty distance vector")

	// ErrBadSharpness indicates h ≤ 0 or non-finite.
	ErrBadSharpness = errors.New("wdist: sharpness h must be finite and > 0")

	// ErrBadOutlierFactor indicates a negative or non-finite outlier factor.
	ErrBadOutlierFactor = errors.New("wdist: outlier factor must be finite and >= 0")

	// ErrNegativeDistance indicates a negative or non-finite distance value.
	ErrNegativeDistance = errors.New("wdist: distances must be finite and >= 0")
)

// Options configures the distance-to-weight transform.
//
// Fields:
//   - H — kernel sharpness; smaller values decay faster (more local).
//   - OutlierFactor — MAD multiples beyond the median after which a neighbor
//     is clipped to zero weight.
//   - Squared — square the distances first, giving a Gaussian (RBF) kernel.
type Options struct {
	H             float64
	OutlierFactor float64
	Squared       bool
}

// DefaultOptions returns the kernel defaults: H = 2, OutlierFactor = 4.
func DefaultOptions() Options {
	return Options{H: 2, OutlierFactor: 4}
}

// Weights maps a neighbor-distance vector to normalized kernel weights.
// See the package documentation for the exact algorithm.
//
// The returned slice has len(d) entries in [0, 1]; either the maximum is
// exactly 1, or the neighborhood is degenerate and every entry is 1.
func Weights(d []float64, opts Options) ([]float64, error) {
	if len(d) == 0 {
		return nil, ErrEmptyDistances
	}
	if opts.H <= 0 || math.IsNaN(opts.H) || math.IsInf(opts.H, 0) {
		return nil, ErrBadSharpness
	}
	if opts.OutlierFactor < 0 || math.IsNaN(opts.OutlierFactor) || math.IsInf(opts.OutlierFactor, 0) {
		return nil, ErrBadOutlierFactor
	}

	k := len(d)
	dd := make([]float64, k)
	for i, v := range d {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ErrNegativeDistance
		}
		if opts.Squared {
			v *= v
		}
		dd[i] = v
	}

	med := median(dd)
	abs := make([]float64, k)
	for i, v := range dd {
		abs[i] = math.Abs(v - med)
	}
	mad := median(abs)

	w := make([]float64, k)
	if mad == 0 {
		// Degenerate dispersion: the kernel scale collapses, so every
		// neighbor is equally trusted.
		return ones(w), nil
	}

	cutoff := med + opts.OutlierFactor*mad
	scale := opts.H * mad
	var wmax float64
	for i, v := range dd {
		if v > cutoff {
			w[i] = 0
			continue
		}
		w[i] = math.Exp(-v / scale)
		if w[i] > wmax {
			wmax = w[i]
		}
	}
	if wmax == 0 || math.IsNaN(wmax) || math.IsInf(wmax, 0) {
		return ones(w), nil
	}
	for i := range w {
		w[i] /= wmax
		if math.IsNaN(w[i]) || math.IsInf(w[i], 0) {
			return ones(w), nil
		}
	}

	return w, nil
}

// median returns the midpoint-interpolated median of v without mutating it.
func median(v []float64) float64 {
	s := make([]float64, len(v))
	copy(s, v)
	sort.Float64s(s)

	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}

	return 0.5 * (s[n/2-1] + s[n/2])
}

// ones overwrites w with the all-ones fallback and returns it.
func ones(w []float64) []float64 {
	for i := range w {
		w[i] = 1
	}

	return w
}
