package geo

import (
	"errors"
	"math"

	"github.com/rbenhaddou/tabutour/matrix"
)

// ErrTooFewCities is returned when fewer than two cities are supplied.
var ErrTooFewCities = errors.New("geo: at least two cities required")

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// EuclideanMatrix builds the symmetric pairwise distance matrix treating
// (Lon, Lat) as planar (x, y) coordinates. Diagonal entries are zero.
//
// Complexity: O(n²) time and space.
func EuclideanMatrix(cities []City) (*matrix.Dense, error) {
	return buildMatrix(cities, func(a, b City) float64 {
		var (
			dx = a.Lon - b.Lon
			dy = a.Lat - b.Lat
		)

		return math.Sqrt(dx*dx + dy*dy)
	})
}

// HaversineMatrix builds the symmetric pairwise great-circle distance
// matrix in kilometers from real lon/lat coordinates.
//
// Complexity: O(n²) time and space.
func HaversineMatrix(cities []City) (*matrix.Dense, error) {
	return buildMatrix(cities, func(a, b City) float64 {
		return haversineKm(a.Lat, a.Lon, b.Lat, b.Lon)
	})
}

// buildMatrix fills an n×n Dense with d(i,j)=fn(c_i,c_j) for i≠j.
// Symmetry is enforced structurally by computing each unordered pair once.
func buildMatrix(cities []City, fn func(a, b City) float64) (*matrix.Dense, error) {
	var n = len(cities)
	if n < 2 {
		return nil, ErrTooFewCities
	}

	m, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}

	var (
		i, j int
		d    float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			d = fn(cities[i], cities[j])
			if err = m.Set(i, j, d); err != nil {
				return nil, err
			}
			if err = m.Set(j, i, d); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// haversineKm computes the great-circle distance between two points in km.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	var (
		lat1Rad = toRadians(lat1)
		lat2Rad = toRadians(lat2)
		dLat    = toRadians(lat2 - lat1)
		dLon    = toRadians(lon2 - lon1)
	)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
