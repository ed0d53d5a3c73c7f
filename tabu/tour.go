// Package tabu - tour encoding: permutation invariants, cost, moves,
// initial-tour construction.
//
// A tour is an open permutation of the n city indices; the cycle closes
// implicitly from the last position back to the first. All helpers keep
// the permutation invariant tight: a tour is never partially invalid.
//
// Design:
//   - No logging, no panics on user input - only sentinel errors from types.go.
//   - O(n) time for most helpers; copies are explicit, never hidden.
//   - Deterministic behavior with clear pre/post-conditions.
package tabu

import (
	"math"
	"math/rand"

	"github.com/rbenhaddou/tabutour/matrix"
)

// roundScale controls final cost stabilization precision (1e-9).
// Avoids tiny FP drifts across platforms without affecting correctness.
const roundScale = 1e9

// round1e9 returns x rounded to 1e-9 absolute precision.
//
// Complexity: O(1).
func round1e9(x float64) float64 {
	return math.Round(x*roundScale) / roundScale
}

// ValidatePermutation checks that perm is a permutation of {0..n-1} of
// length n. It allocates a single O(n) boolean marker slice.
//
// Returns ErrDimensionMismatch for n ≤ 0, ErrInvalidTour for any shape
// violation (wrong length, out-of-range element, duplicate).
//
// Complexity: O(n) time, O(n) space.
func ValidatePermutation(perm []int, n int) error {
	if n <= 0 {
		return ErrDimensionMismatch
	}
	if len(perm) != n {
		return ErrInvalidTour
	}
	seen := make([]bool, n)

	var i, v int
	for i = 0; i < n; i++ {
		v = perm[i]
		if v < 0 || v >= n {
			return ErrInvalidTour
		}
		if seen[v] {
			return ErrInvalidTour
		}
		seen[v] = true
	}

	return nil
}

// CopyTour returns an independent copy of perm.
//
// Complexity: O(n) time and space.
func CopyTour(perm []int) []int {
	out := make([]int, len(perm))
	copy(out, perm)

	return out
}

// RotateToStart returns a fresh copy of perm cyclically shifted so that it
// begins at the city index start. The input is never mutated.
//
// Returns ErrInvalidTour when start does not occur in perm.
//
// Complexity: O(n) time, O(n) space.
func RotateToStart(perm []int, start int) ([]int, error) {
	var (
		n     = len(perm)
		pivot = -1
		i     int
	)
	for i = 0; i < n; i++ {
		if perm[i] == start {
			pivot = i
			break
		}
	}
	if pivot == -1 {
		return nil, ErrInvalidTour
	}

	out := make([]int, n)
	for i = 0; i < n; i++ {
		out[i] = perm[(pivot+i)%n]
	}

	return out, nil
}

// TourCost sums dist[perm[k]][perm[(k+1) mod n]] over k ∈ [0,n): the total
// length of the implicitly closed cycle.
//
// Contract:
//   - perm must be a permutation of {0..n-1} where n is the matrix order
//     (ErrInvalidTour otherwise).
//   - Every traversed entry must be finite and non-negative
//     (ErrNonFiniteWeight / ErrNegativeWeight).
//
// The result is stabilized to 1e-9.
//
// Complexity: O(n) time, O(n) space (permutation check).
func TourCost(dist matrix.Matrix, perm []int) (float64, error) {
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
	if err := ValidatePermutation(perm, nr); err != nil {
		return 0, err
	}

	var (
		sum float64
		i   int
		w   float64
		err error
		n   = nr
	)
	for i = 0; i < n; i++ {
		w, err = dist.At(perm[i], perm[(i+1)%n])
		if err != nil {
			return 0, ErrDimensionMismatch
		}
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return 0, ErrNonFiniteWeight
		}
		if w < 0 {
			return 0, ErrNegativeWeight
		}
		sum += w
	}

	return round1e9(sum), nil
}

// ApplyMove returns a new tour with mv applied under the given family.
// The caller's slice is never mutated.
//
// Contract: 0 ≤ mv.I < mv.J < len(perm) (ErrDimensionMismatch otherwise).
// The permutation invariant is preserved by construction: both families
// only rearrange existing elements.
//
// Complexity: O(n) time and space (the copy dominates).
func ApplyMove(perm []int, mv Move, family MoveFamily) ([]int, error) {
	if mv.I < 0 || mv.J <= mv.I || mv.J >= len(perm) {
		return nil, ErrDimensionMismatch
	}
	switch family {
	case Swap, SegmentReversal:
		// ok
	default:
		return nil, ErrUnknownMoveFamily
	}

	out := CopyTour(perm)
	applyMoveInPlace(out, mv, family)

	return out, nil
}

// applyMoveInPlace mutates perm directly. Engine-private: the engine owns
// its working copy, so in-place application is safe and allocation-free.
// Bounds are the caller's responsibility.
func applyMoveInPlace(perm []int, mv Move, family MoveFamily) {
	if family == Swap {
		perm[mv.I], perm[mv.J] = perm[mv.J], perm[mv.I]
		return
	}
	reverseSegmentInPlace(perm, mv.I, mv.J)
}

// reverseSegmentInPlace reverses positions [i..j] of perm, i ≤ j.
//
// Complexity: O(j−i) time, O(1) space.
func reverseSegmentInPlace(perm []int, i, j int) {
	for i < j {
		perm[i], perm[j] = perm[j], perm[i]
		i++
		j--
	}
}

// InitialTour builds the starting permutation of length n per the
// configured strategy. The result always begins at opts.StartVertex.
//
// Determinism: InitRandomShuffle consumes rng (seeded by the engine);
// the other strategies are RNG-free.
//
// Complexity: O(n) for identity/shuffle, O(n²) for nearest-neighbor.
func InitialTour(dist matrix.Matrix, n int, opts Options, rng *rand.Rand) ([]int, error) {
	if n < 2 {
		return nil, ErrDimensionMismatch
	}
	if opts.StartVertex < 0 || opts.StartVertex >= n {
		return nil, ErrStartOutOfRange
	}

	switch opts.InitStrategy {
	case InitIdentity:
		return identityRing(n, opts.StartVertex), nil

	case InitRandomShuffle:
		perm, err := permRange(n, rng)
		if err != nil {
			return nil, err
		}

		return RotateToStart(perm, opts.StartVertex)

	case InitNearestNeighbor:
		return nearestNeighborTour(dist, n, opts.StartVertex)

	default:
		return nil, ErrUnknownInitStrategy
	}
}

// identityRing returns [start, start+1, …, n−1, 0, …, start−1]: the
// canonical identity tour rotated to the requested start.
//
// Complexity: O(n) time and space.
func identityRing(n, start int) []int {
	out := make([]int, n)

	var i, pos int
	for i = start; i < n; i++ {
		out[pos] = i
		pos++
	}
	for i = 0; i < start; i++ {
		out[pos] = i
		pos++
	}

	return out
}

// nearestNeighborTour builds a tour greedily: from the current city, move
// to the closest unvisited one; ties break on the smallest index so the
// construction is fully deterministic.
//
// Complexity: O(n²) time, O(n) space.
func nearestNeighborTour(dist matrix.Matrix, n, start int) ([]int, error) {
	var (
		out     = make([]int, 0, n)
		visited = make([]bool, n)
		cur     = start
	)
	out = append(out, start)
	visited[start] = true

	var (
		step, j, next int
		w, best       float64
		err           error
	)
	for step = 1; step < n; step++ {
		next = -1
		best = math.Inf(1)
		for j = 0; j < n; j++ {
			if visited[j] {
				continue
			}
			if w, err = dist.At(cur, j); err != nil {
				return nil, ErrDimensionMismatch
			}
			// Strict < keeps the smallest index on ties.
			if w < best {
				best = w
				next = j
			}
		}
		if next == -1 {
			// Unreachable on validated matrices; guard the invariant anyway.
			return nil, ErrInvalidTour
		}
		out = append(out, next)
		visited[next] = true
		cur = next
	}

	return out, nil
}
