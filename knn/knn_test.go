package knn_test

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"lwpls/distance"
	"lwpls/knn"
)

// emptyMatrix is a 0×0 mat.Matrix for validation tests.
type emptyMatrix struct{}

func (emptyMatrix) Dims() (int, int)    { return 0, 0 }
func (emptyMatrix) At(_, _ int) float64 { return 0 }
func (e emptyMatrix) T() mat.Matrix     { return e }

// randDense fills an r×c matrix with deterministic uniform values.
func randDense(rng *rand.Rand, r, c int) *mat.Dense {
	data := make([]float64, r*c)
	for i := range data {
		data[i] = rng.Float64()*2 - 1
	}
	return mat.NewDense(r, c, data)
}

// bruteNearest sorts all reference rows for one query by squared Euclidean
// distance with the same tie rule Search documents.
func bruteNearest(ref *mat.Dense, query []float64) ([]int, []float64) {
	n, _ := ref.Dims()
	dist := make([]float64, n)
	order := make([]int, n)
	for i := 0; i < n; i++ {
		d, _ := distance.SquaredEuclidean(ref.RawRowView(i), query)
		dist[i] = d
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		if dist[order[a]] != dist[order[b]] {
			return dist[order[a]] < dist[order[b]]
		}
		return order[a] < order[b]
	})
	sorted := make([]float64, n)
	for i, j := range order {
		sorted[i] = dist[j]
	}
	return order, sorted
}

// TestSearch_MatchesBruteForce compares a full k = n search against the
// reference brute-force ordering on random data.
func TestSearch_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	ref := randDense(rng, 20, 3)
	queries := randDense(rng, 5, 3)

	nbrs, err := knn.Search(ref, queries, 20, knn.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, 5, nbrs.Len())
	require.Equal(t, 20, nbrs.K)

	for i := 0; i < 5; i++ {
		wantIdx, wantDist := bruteNearest(ref, queries.RawRowView(i))
		assert.Equal(t, wantIdx, nbrs.Indices[i], "query %d order", i)
		for j := range wantDist {
			assert.InDelta(t, wantDist[j], nbrs.Distances[i][j], 1e-12, "query %d rank %d", i, j)
		}
	}
}

// TestSearch_ClampsK verifies k > n is clamped and reported via Neighbors.K.
func TestSearch_ClampsK(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	ref := randDense(rng, 7, 2)
	queries := randDense(rng, 3, 2)

	nbrs, err := knn.Search(ref, queries, 100, knn.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 7, nbrs.K)
	for i := range nbrs.Indices {
		assert.Len(t, nbrs.Indices[i], 7)
		assert.Len(t, nbrs.Distances[i], 7)
	}
}

// TestSearch_TiesByIndex pins the deterministic tie rule: equal distances
// keep ascending reference index.
func TestSearch_TiesByIndex(t *testing.T) {
	ref := mat.NewDense(4, 1, []float64{0, 1, 1, 2})
	queries := mat.NewDense(1, 1, []float64{1})

	nbrs, err := knn.Search(ref, queries, 4, knn.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 0, 3}, nbrs.Indices[0])
	assert.Equal(t, []float64{0, 0, 1, 1}, nbrs.Distances[0])
}

// TestSearch_SortedAscending confirms every neighbor list is non-decreasing
// in distance.
func TestSearch_SortedAscending(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	ref := randDense(rng, 30, 4)
	queries := randDense(rng, 6, 4)

	nbrs, err := knn.Search(ref, queries, 10, knn.DefaultOptions())
	require.NoError(t, err)
	for i := range nbrs.Distances {
		assert.True(t, sort.Float64sAreSorted(nbrs.Distances[i]), "query %d", i)
	}
}

// TestSearch_MahalanobisUnivariate: with one column, whitening rescales all
// distances by the same factor, so the neighbor ordering must match the
// Euclidean one.
func TestSearch_MahalanobisUnivariate(t *testing.T) {
	ref := mat.NewDense(6, 1, []float64{0.4, 2.1, 1.3, 0.9, 3.5, 1.8})
	queries := mat.NewDense(2, 1, []float64{1.0, 2.9})

	euc, err := knn.Search(ref, queries, 6, knn.DefaultOptions())
	require.NoError(t, err)
	mah, err := knn.Search(ref, queries, 6, knn.Options{Metric: distance.Mahalanobis})
	require.NoError(t, err)

	assert.Equal(t, euc.Indices, mah.Indices)
}

// TestSearch_MahalanobisSingular propagates the whitener failure unchanged.
func TestSearch_MahalanobisSingular(t *testing.T) {
	ref := mat.NewDense(3, 2, []float64{1, 1, 2, 2, 3, 3}) // duplicated column
	queries := mat.NewDense(1, 2, []float64{2, 2})

	_, err := knn.Search(ref, queries, 2, knn.Options{Metric: distance.Mahalanobis})
	assert.ErrorIs(t, err, distance.ErrSingularCovariance)
}

// TestSearch_InputErrors exercises the validation sentinels.
func TestSearch_InputErrors(t *testing.T) {
	ref := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	queries := mat.NewDense(1, 2, []float64{1, 2})

	_, err := knn.Search(emptyMatrix{}, queries, 1, knn.DefaultOptions())
	assert.ErrorIs(t, err, knn.ErrEmptyReference)

	_, err = knn.Search(ref, emptyMatrix{}, 1, knn.DefaultOptions())
	assert.ErrorIs(t, err, knn.ErrEmptyQuery)

	_, err = knn.Search(ref, queries, 0, knn.DefaultOptions())
	assert.ErrorIs(t, err, knn.ErrBadK)

	_, err = knn.Search(ref, mat.NewDense(1, 3, []float64{1, 2, 3}), 1, knn.DefaultOptions())
	assert.ErrorIs(t, err, knn.ErrDimensionMismatch)
}
