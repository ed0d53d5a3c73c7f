// Package tabu implements a Tabu Search engine for the symmetric
// Travelling Salesman Problem over a precomputed distance matrix.
//
// The search walks the space of city permutations: each iteration it
// enumerates a deterministic neighborhood of candidate moves (pairwise
// swaps or 2-opt segment reversals), scores every candidate with an O(1)
// incremental delta, discards candidates whose move key is tabu unless
// the aspiration criterion holds (the move would yield a new best-known
// cost), applies the best admissible candidate, and forbids its key for
// the configured tenure.
//
// Guarantees:
//   - Output tours are always permutations of all city indices.
//   - Best-known cost is non-increasing across iterations.
//   - Fixed Seed + fixed Options ⇒ identical results across runs, also
//     when candidate scoring is parallelized (Workers > 1): the final
//     selection re-applies the deterministic tie-break, so the outcome
//     is independent of goroutine scheduling.
//   - A run performs exactly MaxIterations iterations unless TargetCost,
//     MaxStale, TimeLimit, or context cancellation stops it earlier.
//
// Design principles (shared across this module):
//   - Deterministic: explicit seeded RNG; no time-based randomness.
//   - Strict sentinels: only errors from types.go; no fmt.Errorf in hot paths.
//   - No logging, no panics on user input; convergence reporting goes
//     through the optional Options.OnImprove hook.
//   - Hot-path discipline: distance matrix prefetched into a flat buffer;
//     no hidden allocations inside the iteration loop.
//
// Use Solve as the single entry point:
//
//	res, err := tabu.Solve(ctx, dist, tabu.DefaultOptions())
//
// The algorithm is a heuristic: it offers no optimality guarantee, only
// the invariants above.
package tabu
