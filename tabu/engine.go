// Package tabu - the search engine: iterate / evaluate / select / update.
//
// The engine is a three-state machine:
//
//	Initializing → Iterating → Terminated
//
// Initializing builds the starting tour and a fresh tabu memory; Iterating
// repeats neighborhood scan → admissible selection → move application →
// memory update until a termination criterion fires; Terminated exposes the
// best tour found. There is no re-entry: every Solve call creates a fresh
// searchState, so independent runs may execute concurrently.
//
// Within one iteration, candidate scoring is read-only against the current
// tour, the prefetched weights, and the tabu memory; it is therefore
// parallelized across Workers goroutines without locks. The final selection
// re-applies the deterministic (cost, enumeration index) tie-break, making
// results independent of scheduling.
//
// Design:
//   - Deterministic: seeded RNG only; fixed Seed ⇒ identical runs.
//   - Strict sentinels from types.go; the loop itself cannot fail on valid
//     input - invariant violations surface as ErrInvalidTour (engine bug).
//   - Hot-path discipline: weights prefetched into a flat []float64 buffer;
//     moves applied in place on the engine-owned working tour; the only
//     per-iteration allocations happen in the parallel fan-out.
package tabu

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/rbenhaddou/tabutour/matrix"
)

// searchState is the complete mutable state of one run. Owned exclusively
// by the Solve call that created it; discarded when Solve returns.
type searchState struct {
	cur      []int   // current tour (open permutation)
	curCost  float64 // cost of cur, accumulated from deltas
	best     []int   // best tour seen
	bestCost float64 // cost of best
	foundAt  int     // iteration at which best was reached (0 = initial tour)
	stale    int     // consecutive iterations without best-cost improvement
	iters    int     // iterations executed so far
}

// Solve runs one Tabu Search on dist and returns the best tour found.
//
// Failure semantics: malformed options or matrices fail fast with a
// configuration sentinel before Initializing. After that the run always
// reaches Terminated; ctx cancellation is the only mid-run exit and still
// returns the best result found so far alongside the context's error.
//
// Complexity: O(MaxIterations · n²) time, O(n²) space (weight prefetch and
// the materialized pair list).
func Solve(ctx context.Context, dist matrix.Matrix, opts Options) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// --- Fail fast: nothing below runs on malformed input.
	n, err := validateAll(dist, opts)
	if err != nil {
		return Result{}, err
	}

	// --- Initializing.
	w, err := prefetchWeights(dist, n)
	if err != nil {
		return Result{}, err
	}
	at := func(u, v int) float64 { return w[u*n+v] } // zero-allocation accessor

	rng := rngFromSeed(opts.Seed)
	cur, err := InitialTour(dist, n, opts, rng)
	if err != nil {
		return Result{}, err
	}

	// Baseline cost summed from the prefetched buffer so that delta
	// accumulation below stays on the exact same operands.
	var curCost float64
	var k int
	for k = 0; k < n; k++ {
		curCost += at(cur[k], cur[(k+1)%n])
	}

	st := &searchState{
		cur:      cur,
		curCost:  curCost,
		best:     CopyTour(cur),
		bestCost: curCost,
	}
	mem := newTabuMemory()
	pairs := enumeratePairs(n)

	eps := opts.Eps
	if eps < 0 {
		eps = 0 // validateOptionsStandalone forbids this; keep the rule well-posed
	}

	workers := opts.Workers
	if workers > len(pairs) {
		workers = len(pairs)
	}

	var (
		useDeadline bool
		deadline    time.Time
	)
	if opts.TimeLimit > 0 {
		useDeadline = true
		deadline = time.Now().Add(opts.TimeLimit)
	}

	// --- Iterating.
	var iter int
	for iter = 1; iter <= opts.MaxIterations; iter++ {
		// Cooperative cancellation: once per iteration, never mid-scan.
		if cerr := ctx.Err(); cerr != nil {
			res, ferr := finalize(st, opts)
			if ferr != nil {
				return Result{}, ferr
			}

			return res, cerr
		}
		// Soft wall-clock budget counts as a termination criterion.
		if useDeadline && time.Now().After(deadline) {
			break
		}

		// 1-3. Scan the neighborhood and select the best admissible
		// candidate (not tabu, or tabu but aspiration-qualified).
		var (
			idx   int
			delta float64
			found bool
		)
		if workers > 1 {
			idx, delta, found = scanParallel(workers, pairs, st, mem, at, n, iter, eps, opts.MoveFamily)
		} else {
			idx, delta, found = scanRange(0, len(pairs), pairs, st, mem, at, n, iter, eps, opts.MoveFamily)
		}

		if found {
			// 5. Apply the chosen move, forbid its key, track the best.
			mv := pairs[idx]
			applyMoveInPlace(st.cur, mv, opts.MoveFamily)
			st.curCost += delta
			mem.forbid(mv.key(), iter, opts.Tenure)

			if st.curCost < st.bestCost-eps {
				st.bestCost = st.curCost
				copy(st.best, st.cur)
				st.foundAt = iter
				st.stale = 0
				if opts.OnImprove != nil {
					opts.OnImprove(iter, round1e9(st.bestCost))
				}
			} else {
				st.stale++
			}
		} else {
			// 4. Everything tabu and nothing aspiration-qualified: a no-op
			// iteration. It still advances counters, guaranteeing eventual
			// termination.
			st.stale++
		}

		mem.purgeExpired(iter)
		st.iters = iter

		// 6. Termination policy beyond the loop bound.
		if opts.TargetCost > 0 && st.bestCost <= opts.TargetCost {
			break
		}
		if opts.MaxStale > 0 && st.stale >= opts.MaxStale {
			break
		}
	}

	// --- Terminated.
	return finalizeChecked(st, opts, n)
}

// finalize rotates the best tour to the configured start vertex and
// stabilizes the cost.
func finalize(st *searchState, opts Options) (Result, error) {
	best, err := RotateToStart(st.best, opts.StartVertex)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Tour:       best,
		Cost:       round1e9(st.bestCost),
		FoundAt:    st.foundAt,
		Iterations: st.iters,
	}, nil
}

// finalizeChecked additionally re-validates the permutation invariant.
// A failure here is an engine bug, surfaced as ErrInvalidTour rather than
// silently returning a corrupt tour.
func finalizeChecked(st *searchState, opts Options, n int) (Result, error) {
	res, err := finalize(st, opts)
	if err != nil {
		return Result{}, err
	}
	if err = ValidatePermutation(res.Tour, n); err != nil {
		return Result{}, err
	}

	return res, nil
}

// scanRange scores candidates pairs[lo:hi] against the current tour and
// returns the admissible one with the lowest resulting cost, together with
// its delta. Ties keep the earliest enumeration index (strict < below).
// found==false means every candidate in the range is tabu and none
// qualifies for aspiration.
//
// Read-only with respect to st, mem, and the weight buffer: safe to run
// concurrently over disjoint ranges.
//
// Complexity: O(hi−lo).
func scanRange(lo, hi int, pairs []Move, st *searchState, mem *tabuMemory,
	at func(u, v int) float64, n, iter int, eps float64, family MoveFamily,
) (int, float64, bool) {
	var (
		bestIdx   = -1
		bestCand  float64
		bestDelta float64
		p         int
		d, cand   float64
	)
	for p = lo; p < hi; p++ {
		d = moveDelta(at, st.cur, n, pairs[p], family)
		cand = st.curCost + d

		// Aspiration: a tabu move is admissible anyway when it would yield
		// a strict new best-known cost.
		if mem.isTabu(pairs[p].key(), iter) && !(cand < st.bestCost-eps) {
			continue
		}
		if bestIdx == -1 || cand < bestCand {
			bestIdx = p
			bestCand = cand
			bestDelta = d
		}
	}

	return bestIdx, bestDelta, bestIdx != -1
}

// scanParallel fans scanRange out over `workers` disjoint chunks and merges
// the per-worker winners with the same (cost, index) tie-break, so the
// outcome matches the sequential scan exactly.
//
// Complexity: O(len(pairs)/workers) per goroutine plus O(workers) merge.
func scanParallel(workers int, pairs []Move, st *searchState, mem *tabuMemory,
	at func(u, v int) float64, n, iter int, eps float64, family MoveFamily,
) (int, float64, bool) {
	type slot struct {
		idx   int
		delta float64
		found bool
	}

	var (
		total = len(pairs)
		chunk = (total + workers - 1) / workers
		slots = make([]slot, workers)
		wg    sync.WaitGroup
		w     int
	)
	for w = 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > total {
			hi = total
		}
		if lo >= hi {
			slots[w] = slot{idx: -1}
			continue
		}

		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			idx, delta, found := scanRange(lo, hi, pairs, st, mem, at, n, iter, eps, family)
			slots[w] = slot{idx: idx, delta: delta, found: found}
		}(w, lo, hi)
	}
	wg.Wait()

	// Deterministic merge: lowest candidate cost wins; equal costs keep the
	// lowest enumeration index. Chunks are index-ordered, so scanning slots
	// in worker order and requiring strict improvement realizes exactly the
	// sequential tie-break.
	var (
		bestIdx   = -1
		bestCand  = math.Inf(1)
		bestDelta float64
	)
	for w = 0; w < workers; w++ {
		if !slots[w].found {
			continue
		}
		cand := st.curCost + slots[w].delta
		if bestIdx == -1 || cand < bestCand {
			bestIdx = slots[w].idx
			bestCand = cand
			bestDelta = slots[w].delta
		}
	}

	return bestIdx, bestDelta, bestIdx != -1
}

// prefetchWeights copies dist into a flat row-major buffer to remove
// interface indirection from the hot loops. validateAll has already
// checked the matrix; the per-entry guards are kept defensive.
//
// Complexity: O(n²) time and space.
func prefetchWeights(dist matrix.Matrix, n int) ([]float64, error) {
	w := make([]float64, n*n)

	var (
		i, j int
		x    float64
		err  error
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if x, err = dist.At(i, j); err != nil {
				return nil, ErrDimensionMismatch
			}
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return nil, ErrNonFiniteWeight
			}
			if x < 0 {
				return nil, ErrNegativeWeight
			}
			w[i*n+j] = x
		}
	}

	return w, nil
}
