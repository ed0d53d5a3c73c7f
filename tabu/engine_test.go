// Package tabu_test pins the engine's testable properties: permutation
// safety, best-cost monotonicity, seed determinism (sequential and
// parallel), termination accounting, aspiration, and fail-fast
// configuration errors.
package tabu_test

import (
	"context"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/rbenhaddou/tabutour/geo"
	"github.com/rbenhaddou/tabutour/matrix"
	"github.com/rbenhaddou/tabutour/tabu"
)

// squareOptions is the reference configuration for the unit-square
// example: swap family, tenure 2, 50 iterations, identity start.
func squareOptions() tabu.Options {
	opts := tabu.DefaultOptions()
	opts.MoveFamily = tabu.Swap
	opts.Tenure = 2
	opts.MaxIterations = 50
	opts.InitStrategy = tabu.InitIdentity

	return opts
}

func TestSolve_UnitSquareConvergesToPerimeter(t *testing.T) {
	m := unitSquare(t)

	for _, family := range []tabu.MoveFamily{tabu.Swap, tabu.SegmentReversal} {
		opts := squareOptions()
		opts.MoveFamily = family

		res, err := tabu.Solve(context.Background(), m, opts)
		require.NoError(t, err, "family=%s", family)
		assert.InDelta(t, 4.0, res.Cost, 1e-9, "family=%s", family)
		require.NoError(t, tabu.ValidatePermutation(res.Tour, 4))
		assert.Equal(t, 0, res.Tour[0], "tour must start at StartVertex")
	}
}

func TestSolve_UncrossesBadStart(t *testing.T) {
	// Same four corners but listed so the identity tour crosses itself:
	// the engine must recover the 4.0 perimeter from a 2+2√2 start.
	m, err := geo.EuclideanMatrix([]geo.City{
		{Name: "a", Lon: 0, Lat: 0},
		{Name: "b", Lon: 1, Lat: 1},
		{Name: "c", Lon: 0, Lat: 1},
		{Name: "d", Lon: 1, Lat: 0},
	})
	require.NoError(t, err)

	for _, family := range []tabu.MoveFamily{tabu.Swap, tabu.SegmentReversal} {
		opts := squareOptions()
		opts.MoveFamily = family

		res, err := tabu.Solve(context.Background(), m, opts)
		require.NoError(t, err)
		assert.InDelta(t, 4.0, res.Cost, 1e-9, "family=%s", family)
		assert.Positive(t, res.FoundAt, "improvement over the crossed start must be recorded")
	}
}

func TestSolve_TwoCities(t *testing.T) {
	m, err := geo.EuclideanMatrix([]geo.City{
		{Name: "a", Lon: 0, Lat: 0},
		{Name: "b", Lon: 3, Lat: 0},
	})
	require.NoError(t, err)

	opts := squareOptions()
	opts.MaxIterations = 5

	res, err := tabu.Solve(context.Background(), m, opts)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, res.Cost, 1e-9, "only tour costs 2·d(0,1)")
	assert.Equal(t, 5, res.Iterations, "two-city runs still execute the configured iterations")
	require.NoError(t, tabu.ValidatePermutation(res.Tour, 2))
}

func TestSolve_BestCostMonotoneNonIncreasing(t *testing.T) {
	m := randomEuclidean(t, 12, 5)

	var improvements []float64
	opts := tabu.DefaultOptions()
	opts.MaxIterations = 300
	opts.InitStrategy = tabu.InitRandomShuffle
	opts.Seed = 99
	opts.OnImprove = func(_ int, cost float64) {
		improvements = append(improvements, cost)
	}

	res, err := tabu.Solve(context.Background(), m, opts)
	require.NoError(t, err)
	require.NoError(t, tabu.ValidatePermutation(res.Tour, 12))

	require.NotEmpty(t, improvements, "a shuffled 12-city start should improve at least once")
	for i := 1; i < len(improvements); i++ {
		assert.Less(t, improvements[i], improvements[i-1],
			"best-known cost must be strictly decreasing across improvements")
	}
	assert.InDelta(t, improvements[len(improvements)-1], res.Cost, 1e-9)
}

func TestSolve_SeedDeterminism(t *testing.T) {
	m := randomEuclidean(t, 10, 21)

	opts := tabu.DefaultOptions()
	opts.MaxIterations = 200
	opts.InitStrategy = tabu.InitRandomShuffle
	opts.Seed = 1234

	base, err := tabu.Solve(context.Background(), m, opts)
	require.NoError(t, err)

	for run := 0; run < 3; run++ {
		res, err := tabu.Solve(context.Background(), m, opts)
		require.NoError(t, err)
		if diff := cmp.Diff(base, res); diff != "" {
			t.Fatalf("run %d diverged from baseline (-want +got):\n%s", run, diff)
		}
	}
}

func TestSolve_ParallelMatchesSequential(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := randomEuclidean(t, 14, 77)

	opts := tabu.DefaultOptions()
	opts.MaxIterations = 150
	opts.InitStrategy = tabu.InitNearestNeighbor

	seq, err := tabu.Solve(context.Background(), m, opts)
	require.NoError(t, err)

	for _, workers := range []int{2, 4, 9} {
		par := opts
		par.Workers = workers

		res, err := tabu.Solve(context.Background(), m, par)
		require.NoError(t, err)
		if diff := cmp.Diff(seq, res); diff != "" {
			t.Fatalf("workers=%d diverged from sequential (-want +got):\n%s", workers, diff)
		}
	}
}

func TestSolve_ExactIterationCount(t *testing.T) {
	m := randomEuclidean(t, 6, 3)

	opts := tabu.DefaultOptions()
	opts.MaxIterations = 7

	res, err := tabu.Solve(context.Background(), m, opts)
	require.NoError(t, err)
	assert.Equal(t, 7, res.Iterations,
		"without TargetCost/MaxStale the run executes exactly MaxIterations")
}

func TestSolve_MaxStaleStopsEarly(t *testing.T) {
	// The identity tour on the unit square is already optimal, so every
	// iteration is non-improving and the stale counter drives termination.
	m := unitSquare(t)

	opts := squareOptions()
	opts.MaxIterations = 100
	opts.MaxStale = 3

	res, err := tabu.Solve(context.Background(), m, opts)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Iterations)
	assert.InDelta(t, 4.0, res.Cost, 1e-9)
	assert.Equal(t, 0, res.FoundAt, "initial tour was never improved")
}

func TestSolve_TargetCostStopsEarly(t *testing.T) {
	m := unitSquare(t)

	opts := squareOptions()
	opts.TargetCost = 4.0

	res, err := tabu.Solve(context.Background(), m, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Iterations,
		"target met by the initial tour fires after the first completed iteration")
	assert.LessOrEqual(t, res.Cost, 4.0)
}

func TestSolve_TimeLimitTerminates(t *testing.T) {
	m := randomEuclidean(t, 10, 8)

	opts := tabu.DefaultOptions()
	opts.MaxIterations = 1 << 20
	opts.TimeLimit = 1 // 1ns: expires before the first iteration

	res, err := tabu.Solve(context.Background(), m, opts)
	require.NoError(t, err, "an exceeded budget terminates, it does not fail")
	assert.Less(t, res.Iterations, opts.MaxIterations)
	require.NoError(t, tabu.ValidatePermutation(res.Tour, 10))
}

func TestSolve_ContextCancellation(t *testing.T) {
	m := randomEuclidean(t, 10, 8)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancelled before the first iteration

	opts := tabu.DefaultOptions()
	opts.MaxIterations = 1000

	res, err := tabu.Solve(ctx, m, opts)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, res.Iterations)
	require.NoError(t, tabu.ValidatePermutation(res.Tour, 10),
		"cancellation still surfaces the best tour found so far")
}

func TestSolve_ConfigurationErrors(t *testing.T) {
	valid := unitSquare(t)

	t.Run("matrix", func(t *testing.T) {
		negative, err := matrix.NewDenseFromRows([][]float64{{0, -1}, {-1, 0}})
		require.NoError(t, err)
		nan, err := matrix.NewDenseFromRows([][]float64{{0, math.NaN()}, {math.NaN(), 0}})
		require.NoError(t, err)
		inf, err := matrix.NewDenseFromRows([][]float64{{0, math.Inf(1)}, {math.Inf(1), 0}})
		require.NoError(t, err)
		asym, err := matrix.NewDenseFromRows([][]float64{{0, 1}, {2, 0}})
		require.NoError(t, err)
		diag, err := matrix.NewDenseFromRows([][]float64{{1, 1}, {1, 0}})
		require.NoError(t, err)
		rect, err := matrix.NewDense(2, 3)
		require.NoError(t, err)
		single, err := matrix.NewDense(1, 1)
		require.NoError(t, err)

		cases := []struct {
			name string
			dist matrix.Matrix
			want error
		}{
			{"nil matrix", nil, tabu.ErrNilMatrix},
			{"negative entry", negative, tabu.ErrNegativeWeight},
			{"NaN entry", nan, tabu.ErrNonFiniteWeight},
			{"Inf entry", inf, tabu.ErrNonFiniteWeight},
			{"asymmetric", asym, tabu.ErrAsymmetry},
			{"non-zero diagonal", diag, tabu.ErrNonZeroDiagonal},
			{"non-square", rect, tabu.ErrNonSquare},
			{"single city", single, tabu.ErrDimensionMismatch},
		}
		for _, tc := range cases {
			_, err := tabu.Solve(context.Background(), tc.dist, tabu.DefaultOptions())
			assert.ErrorIs(t, err, tc.want, tc.name)
		}
	})

	t.Run("options", func(t *testing.T) {
		mutate := func(fn func(*tabu.Options)) tabu.Options {
			opts := tabu.DefaultOptions()
			fn(&opts)
			return opts
		}

		cases := []struct {
			name string
			opts tabu.Options
			want error
		}{
			{"zero tenure", mutate(func(o *tabu.Options) { o.Tenure = 0 }), tabu.ErrBadTenure},
			{"negative tenure", mutate(func(o *tabu.Options) { o.Tenure = -3 }), tabu.ErrBadTenure},
			{"zero iterations", mutate(func(o *tabu.Options) { o.MaxIterations = 0 }), tabu.ErrBadIterations},
			{"negative stale", mutate(func(o *tabu.Options) { o.MaxStale = -1 }), tabu.ErrDimensionMismatch},
			{"negative target", mutate(func(o *tabu.Options) { o.TargetCost = -1 }), tabu.ErrDimensionMismatch},
			{"negative eps", mutate(func(o *tabu.Options) { o.Eps = -1 }), tabu.ErrDimensionMismatch},
			{"negative workers", mutate(func(o *tabu.Options) { o.Workers = -2 }), tabu.ErrDimensionMismatch},
			{"bad family", mutate(func(o *tabu.Options) { o.MoveFamily = tabu.MoveFamily(9) }), tabu.ErrUnknownMoveFamily},
			{"bad strategy", mutate(func(o *tabu.Options) { o.InitStrategy = tabu.InitStrategy(9) }), tabu.ErrUnknownInitStrategy},
			{"start out of range", mutate(func(o *tabu.Options) { o.StartVertex = 4 }), tabu.ErrStartOutOfRange},
			{"negative start", mutate(func(o *tabu.Options) { o.StartVertex = -1 }), tabu.ErrStartOutOfRange},
		}
		for _, tc := range cases {
			_, err := tabu.Solve(context.Background(), valid, tc.opts)
			assert.ErrorIs(t, err, tc.want, tc.name)
		}
	})
}

func TestSolve_MoroccoImprovesOnShuffledStart(t *testing.T) {
	// End-to-end smoke on the built-in data set: tabu search must beat a
	// shuffled start on 22 cities by a wide margin.
	dist, err := geo.EuclideanMatrix(geo.Morocco())
	require.NoError(t, err)

	opts := tabu.DefaultOptions()
	opts.InitStrategy = tabu.InitRandomShuffle
	opts.Seed = 7
	opts.MaxIterations = 500

	res, err := tabu.Solve(context.Background(), dist, opts)
	require.NoError(t, err)
	require.NoError(t, tabu.ValidatePermutation(res.Tour, 22))

	// The shuffled start for this seed is far above any sensible tour.
	initial, err := tabu.InitialTour(dist, 22, opts, rngSeeded(7))
	require.NoError(t, err)
	initialCost, err := tabu.TourCost(dist, initial)
	require.NoError(t, err)
	assert.Less(t, res.Cost, initialCost)
}
