package tabu_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rbenhaddou/tabutour/geo"
	"github.com/rbenhaddou/tabutour/matrix"
)

// rngSeeded mirrors the engine's seed policy for tests that drive
// InitialTour directly.
func rngSeeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// randomCities returns n seeded cities scattered on a plane; coordinates
// are generic (x,y) pairs, distances come from EuclideanMatrix.
func randomCities(n int, seed int64) []geo.City {
	rng := rand.New(rand.NewSource(seed))
	out := make([]geo.City, n)
	for i := range out {
		out[i] = geo.City{
			Name: string(rune('a' + i)),
			Lon:  10 * rng.Float64(),
			Lat:  10 * rng.Float64(),
		}
	}

	return out
}

// randomEuclidean builds the distance matrix of randomCities(n, seed).
func randomEuclidean(t *testing.T, n int, seed int64) *matrix.Dense {
	t.Helper()
	m, err := geo.EuclideanMatrix(randomCities(n, seed))
	require.NoError(t, err)

	return m
}
