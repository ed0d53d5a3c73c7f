// Package tabu - fail-fast validation of options and distance matrices.
//
// Everything here runs before the engine enters its Initializing state:
// a malformed configuration or matrix never reaches the search loop.
//
// Design principles:
//   - Deterministic, side-effect free functions.
//   - No logging, no panics on user input - only sentinel errors from types.go.
//   - O(n²) worst-case where n is the matrix order; no hidden allocations.
package tabu

import (
	"math"

	"github.com/rbenhaddou/tabutour/matrix"
)

// symTol is the structural tolerance for symmetry/diagonal checks.
// It is independent from Options.Eps (which governs "improvement").
const symTol = 1e-12

// validateAll verifies Options and the distance matrix, returning the
// matrix order n on success. This is the single gate in front of Solve.
//
// Complexity: O(n²) time, O(1) extra space.
func validateAll(dist matrix.Matrix, opts Options) (int, error) {
	var (
		n   int
		err error
	)

	// Stage 1: Options-only sanity.
	if err = validateOptionsStandalone(opts); err != nil {
		return 0, err
	}

	// Stage 2: matrix shape and values (symmetry always enforced: the
	// solver targets the symmetric TSP).
	if n, err = validateDistMatrix(dist, symTol); err != nil {
		return 0, err
	}

	// Stage 3: start vertex range (after n is known).
	if opts.StartVertex < 0 || opts.StartVertex >= n {
		return 0, ErrStartOutOfRange
	}

	return n, nil
}

// validateOptionsStandalone checks internal consistency of Options without
// referencing the matrix.
//
// Complexity: O(1).
func validateOptionsStandalone(opts Options) error {
	if opts.Tenure <= 0 {
		return ErrBadTenure
	}
	if opts.MaxIterations <= 0 {
		return ErrBadIterations
	}
	// Optional knobs follow the "0 ⇒ disabled" policy; negatives are undefined.
	if opts.MaxStale < 0 || opts.TargetCost < 0 || opts.TimeLimit < 0 || opts.Workers < 0 {
		return ErrDimensionMismatch
	}
	// A negative epsilon would invert the acceptance rule x < b − Eps.
	if opts.Eps < 0 {
		return ErrDimensionMismatch
	}

	// Closed enums: reject anything outside the declared variants.
	switch opts.MoveFamily {
	case Swap, SegmentReversal:
		// ok
	default:
		return ErrUnknownMoveFamily
	}
	switch opts.InitStrategy {
	case InitIdentity, InitRandomShuffle, InitNearestNeighbor:
		// ok
	default:
		return ErrUnknownInitStrategy
	}

	return nil
}

// validateDistMatrix performs full matrix validation:
//   - non-nil, square, n ≥ 2,
//   - diagonal ≈ 0 (|a_ii| ≤ tol),
//   - all entries finite (NaN/±Inf rejected: the core has no notion of a
//     missing edge, so a non-finite distance is a configuration error),
//   - no negative entries,
//   - |a_ij − a_ji| ≤ tol (symmetric TSP only).
//
// Returns n (matrix order) on success.
//
// Complexity: O(n²).
func validateDistMatrix(dist matrix.Matrix, tol float64) (int, error) {
	// Stage 1: shape checks.
	if dist == nil {
		return 0, ErrNilMatrix
	}
	var (
		nr = dist.Rows()
		nc = dist.Cols()
	)
	if nr != nc || nr <= 0 {
		return 0, ErrNonSquare
	}
	if nr < 2 {
		// A single city admits no tour; reject before Initializing.
		return 0, ErrDimensionMismatch
	}
	var n = nr

	// Stage 2: per-entry checks.
	var (
		i, j     int     // loop indices
		aij, aji float64 // entries a[i][j] and a[j][i]
		abs      float64 // scratch for |value|
		err      error
	)

	// Diagonal: a_ii ≈ 0 within tol.
	for i = 0; i < n; i++ {
		if aij, err = dist.At(i, i); err != nil {
			return 0, ErrDimensionMismatch
		}
		if math.IsNaN(aij) || math.IsInf(aij, 0) {
			return 0, ErrNonFiniteWeight
		}
		abs = aij
		if abs < 0 {
			abs = -abs
		}
		if abs > tol {
			return 0, ErrNonZeroDiagonal
		}
	}

	// Off-diagonal: finite, non-negative.
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i == j {
				continue // diagonal already checked
			}
			if aij, err = dist.At(i, j); err != nil {
				return 0, ErrDimensionMismatch
			}
			if math.IsNaN(aij) || math.IsInf(aij, 0) {
				return 0, ErrNonFiniteWeight
			}
			if aij < 0 {
				return 0, ErrNegativeWeight
			}
		}
	}

	// Symmetry over the upper triangle.
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if aij, err = dist.At(i, j); err != nil {
				return 0, ErrDimensionMismatch
			}
			if aji, err = dist.At(j, i); err != nil {
				return 0, ErrDimensionMismatch
			}
			abs = aij - aji
			if abs < 0 {
				abs = -abs
			}
			if abs > tol {
				return 0, ErrAsymmetry
			}
		}
	}

	return n, nil
}
