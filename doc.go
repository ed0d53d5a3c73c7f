// Package tabutour is a Tabu Search toolkit for the symmetric Travelling
// Salesman Problem, built around a fixed set of geographic cities.
//
// 🚀 What is tabutour?
//
//	A deterministic, seed-reproducible metaheuristic solver:
//		• tabu/   — the search engine: neighborhoods (swap / 2-opt segment
//		            reversal), tabu memory with tenure expiry, aspiration
//		            criterion, termination policies, optional parallel scoring
//		• geo/    — city records, the built-in 22-city Morocco set, Euclidean
//		            and haversine distance-matrix builders, xlsx loading
//		• matrix/ — the dense distance-matrix container
//
// ✨ Why choose tabutour?
//
//   - Deterministic – fixed seed ⇒ identical tours, even with parallel scoring
//   - Strict failure semantics – malformed input fails fast, never mid-search
//   - Practical – CLI and HTTP front ends under cmd/tabutour
//
// Typical usage:
//
//	dist, _ := geo.EuclideanMatrix(geo.Morocco())
//	res, err := tabu.Solve(ctx, dist, tabu.DefaultOptions())
//
// The solver is a heuristic: it minimizes aggressively but offers no
// exact-optimality guarantee.
package tabutour
