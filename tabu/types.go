// Package tabu - option surface, result type, and strict sentinel errors.
//
// All errors produced by this package are the sentinels below (optionally
// wrapped with context by callers). Validation happens up front in
// validate.go; the engine itself fails only on internal invariant
// violations (ErrInvalidTour), which indicate a bug, never expected input.
package tabu

import (
	"errors"
	"time"
)

// Sentinel errors. Configuration-class errors are returned before the
// search starts; ErrInvalidTour is an internal invariant violation.
var (
	// ErrNilMatrix is returned when the distance matrix is nil.
	ErrNilMatrix = errors.New("tabu: nil distance matrix")

	// ErrNonSquare is returned when the distance matrix is not square.
	ErrNonSquare = errors.New("tabu: distance matrix is not square")

	// ErrDimensionMismatch covers shape violations: fewer than two cities,
	// out-of-range move indices, inconsistent tour lengths, and nonsensical
	// negative option values without a dedicated sentinel.
	ErrDimensionMismatch = errors.New("tabu: dimension mismatch")

	// ErrNonZeroDiagonal is returned when some d(i,i) deviates from zero.
	ErrNonZeroDiagonal = errors.New("tabu: non-zero diagonal entry")

	// ErrNegativeWeight is returned on any negative distance entry.
	ErrNegativeWeight = errors.New("tabu: negative distance entry")

	// ErrNonFiniteWeight is returned on NaN or ±Inf distance entries.
	// Numeric instability in the input is a fatal configuration error.
	ErrNonFiniteWeight = errors.New("tabu: non-finite distance entry")

	// ErrAsymmetry is returned when d(i,j) ≠ d(j,i) beyond tolerance.
	ErrAsymmetry = errors.New("tabu: asymmetric distance matrix")

	// ErrBadTenure is returned when Tenure is not a positive integer.
	ErrBadTenure = errors.New("tabu: tenure must be positive")

	// ErrBadIterations is returned when MaxIterations is not positive.
	ErrBadIterations = errors.New("tabu: max iterations must be positive")

	// ErrStartOutOfRange is returned when StartVertex ∉ [0..n-1].
	ErrStartOutOfRange = errors.New("tabu: start vertex out of range")

	// ErrUnknownMoveFamily is returned for a MoveFamily outside the enum.
	ErrUnknownMoveFamily = errors.New("tabu: unknown move family")

	// ErrUnknownInitStrategy is returned for an InitStrategy outside the enum.
	ErrUnknownInitStrategy = errors.New("tabu: unknown initial-tour strategy")

	// ErrInvalidTour signals that a sequence is not a permutation of all
	// city indices. Surfacing from the engine it indicates an engine bug.
	ErrInvalidTour = errors.New("tabu: tour is not a permutation of all cities")
)

// MoveFamily selects the neighborhood structure. It is a closed enum fixed
// once at configuration time; the engine never switches families mid-run.
type MoveFamily uint8

const (
	// SegmentReversal reverses the positions [i..j] of the tour (2-opt).
	SegmentReversal MoveFamily = iota

	// Swap exchanges the cities at positions i and j.
	Swap
)

// String implements fmt.Stringer for logs and test output.
func (f MoveFamily) String() string {
	switch f {
	case SegmentReversal:
		return "segment-reversal"
	case Swap:
		return "swap"
	default:
		return "unknown"
	}
}

// InitStrategy selects how the starting tour is built.
type InitStrategy uint8

const (
	// InitIdentity starts from the ring StartVertex, StartVertex+1, …, wrapped.
	InitIdentity InitStrategy = iota

	// InitRandomShuffle starts from a seeded Fisher–Yates permutation,
	// rotated so the tour begins at StartVertex.
	InitRandomShuffle

	// InitNearestNeighbor greedily extends from StartVertex to the closest
	// unvisited city, ties broken by the smallest index.
	InitNearestNeighbor
)

// String implements fmt.Stringer for logs and test output.
func (s InitStrategy) String() string {
	switch s {
	case InitIdentity:
		return "identity"
	case InitRandomShuffle:
		return "random-shuffle"
	case InitNearestNeighbor:
		return "nearest-neighbor"
	default:
		return "unknown"
	}
}

// Move is a candidate transformation of the current tour, parameterized by
// an unordered position pair in canonical form I < J. The family it acts
// under is fixed per run, so the pair alone identifies the move.
type Move struct {
	I int // first position, 0 ≤ I < J
	J int // second position, J ≤ n-1
}

// key packs the canonical pair into a single word for tabu bookkeeping.
// Safe for any realistic n (positions fit 32 bits each).
func (mv Move) key() uint64 {
	return uint64(uint32(mv.I))<<32 | uint64(uint32(mv.J))
}

// Options configures one search run. The zero value is NOT valid; start
// from DefaultOptions and override what you need.
//
// Zero-value policy for optional knobs: MaxStale==0, TargetCost==0,
// TimeLimit==0 and Workers≤1 disable the respective feature.
type Options struct {
	// MoveFamily selects swap or segment-reversal neighborhoods.
	MoveFamily MoveFamily

	// Tenure is the number of iterations an applied move's key stays
	// forbidden. Must be positive.
	Tenure int

	// MaxIterations bounds the total number of iterations. Must be positive.
	MaxIterations int

	// MaxStale stops the run after this many consecutive iterations without
	// a best-cost improvement. 0 disables the criterion.
	MaxStale int

	// TargetCost stops the run once the best-known cost is ≤ this value.
	// 0 disables the criterion (all valid tours have non-negative cost).
	TargetCost float64

	// InitStrategy selects the starting tour construction.
	InitStrategy InitStrategy

	// Seed drives all randomness (InitRandomShuffle). seed==0 resolves to a
	// fixed internal default, so the zero value is still deterministic.
	Seed int64

	// StartVertex anchors the reported tour: the result permutation is
	// rotated to begin at this index. Must lie in [0..n-1].
	StartVertex int

	// Eps is the strict-improvement tolerance: a cost x improves on best b
	// iff x < b − Eps. Must be non-negative; keep it small (≤1e-9) or the
	// aspiration criterion becomes stricter than "new best".
	Eps float64

	// TimeLimit is a soft wall-clock budget checked once per iteration.
	// Exceeding it terminates the run with the best tour found so far.
	// 0 means unlimited.
	TimeLimit time.Duration

	// Workers parallelizes candidate scoring (read-only phase) across this
	// many goroutines. Results are identical to sequential mode. ≤1 keeps
	// the scan sequential.
	Workers int

	// OnImprove, when non-nil, is invoked after every best-cost improvement
	// with the iteration index and the new best cost. Called synchronously
	// from the search loop; keep it cheap.
	OnImprove func(iteration int, cost float64)
}

// DefaultOptions returns the canonical starting configuration:
// 2-opt segment reversals, tenure 10, 1000 iterations, nearest-neighbor
// initialization, deterministic default seed.
func DefaultOptions() Options {
	return Options{
		MoveFamily:    SegmentReversal,
		Tenure:        10,
		MaxIterations: 1000,
		InitStrategy:  InitNearestNeighbor,
		Eps:           defaultEps,
	}
}

// defaultEps keeps improvement comparisons stable against FP noise without
// masking genuine improvements at the problem's scale.
const defaultEps = 1e-9

// Result is the outcome of one completed (or cancelled) run.
type Result struct {
	// Tour is the best permutation found, rotated to begin at StartVertex.
	// len(Tour) == n; the cycle closes implicitly from Tour[n-1] to Tour[0].
	Tour []int

	// Cost is the total cycle distance of Tour, stabilized to 1e-9.
	Cost float64

	// FoundAt is the iteration at which Tour was first reached
	// (0 when the initial tour was never improved).
	FoundAt int

	// Iterations is the number of iterations actually executed.
	Iterations int
}
