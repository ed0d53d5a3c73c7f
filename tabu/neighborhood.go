// Package tabu - neighborhood enumeration and O(1) move deltas.
//
// The neighborhood of a tour is one candidate Move per unordered position
// pair (i,j), i<j, enumerated in lexicographic order. The order is part of
// the engine's contract: tie-breaking picks the earliest candidate, so a
// deterministic enumeration keeps runs reproducible, also under parallel
// scoring.
//
// Deltas are computed incrementally from the edges a move touches instead
// of re-summing the whole cycle. The algebra mirrors classic 2-opt:
//
//	reversal of [i..j]: Δ = d(a,c) + d(b,d) − d(a,b) − d(c,d)
//	  with a=T[i−1], b=T[i], c=T[j], d=T[j+1] (indices mod n).
//
// Swap deltas need explicit special cases when the two positions are
// adjacent on the cycle (including the wrap pair (0,n−1)), because the
// naive four-edge formula would double-count the shared edge.
//
// All deltas here are exact under symmetric matrices; the engine's cost
// accumulation therefore stays numerically consistent with TourCost up to
// FP associativity, which round1e9 absorbs on output.
package tabu

// enumeratePairs returns all Moves (i,j), 0 ≤ i < j ≤ n−1, in lexicographic
// order. One entry per unordered pair: swap(i,j) ≡ swap(j,i) and the
// reversal of [i..j] under cycle symmetry are emitted exactly once, and the
// identity move (i==j) never appears.
//
// Complexity: O(n²) time and space (materialized once per run).
func enumeratePairs(n int) []Move {
	out := make([]Move, 0, n*(n-1)/2)

	var i, j int
	for i = 0; i < n-1; i++ {
		for j = i + 1; j < n; j++ {
			out = append(out, Move{I: i, J: j})
		}
	}

	return out
}

// moveDelta returns the exact cost change of applying mv to perm under
// family, reading distances through the prefetched accessor at.
//
// Contract: perm is a valid permutation of length n ≥ 2 and mv is in
// canonical form 0 ≤ I < J ≤ n−1 (the engine enumerates only such moves).
//
// Complexity: O(1).
func moveDelta(at func(u, v int) float64, perm []int, n int, mv Move, family MoveFamily) float64 {
	if family == Swap {
		return swapDelta(at, perm, n, mv.I, mv.J)
	}

	return reversalDelta(at, perm, n, mv.I, mv.J)
}

// reversalDelta is the 2-opt delta for reversing positions [i..j].
// Reversing the entire tour (i==0, j==n−1) re-traverses the same cycle in
// the opposite direction: Δ=0 under symmetry.
func reversalDelta(at func(u, v int) float64, perm []int, n, i, j int) float64 {
	if i == 0 && j == n-1 {
		return 0
	}

	var (
		a = perm[(i-1+n)%n] // predecessor of the segment
		b = perm[i]         // segment head
		c = perm[j]         // segment tail
		d = perm[(j+1)%n]   // successor of the segment
	)

	return (at(a, c) + at(b, d)) - (at(a, b) + at(c, d))
}

// swapDelta is the delta for exchanging the cities at positions i and j.
// Cases, from most to least special:
//   - n==2: the two-city cycle is invariant under any swap.
//   - wrap-adjacency (i==0, j==n−1): T[j] immediately precedes T[i].
//   - direct adjacency (j==i+1): T[i] immediately precedes T[j].
//   - general: the four touched edges are disjoint.
func swapDelta(at func(u, v int) float64, perm []int, n, i, j int) float64 {
	if n == 2 {
		return 0
	}

	var (
		ti = perm[i]
		tj = perm[j]
	)

	if i == 0 && j == n-1 {
		// Cycle order ... c, tj, ti, b ...  →  ... c, ti, tj, b ...
		var (
			c = perm[j-1]
			b = perm[i+1]
		)

		return (at(c, ti) + at(tj, b)) - (at(c, tj) + at(ti, b))
	}

	if j == i+1 {
		// Cycle order ... a, ti, tj, e ...  →  ... a, tj, ti, e ...
		// The shared edge (ti,tj) keeps its undirected cost.
		var (
			a = perm[(i-1+n)%n]
			e = perm[(j+1)%n]
		)

		return (at(a, tj) + at(ti, e)) - (at(a, ti) + at(tj, e))
	}

	// Disjoint neighborhoods around both positions.
	var (
		a = perm[(i-1+n)%n] // predecessor of position i
		b = perm[i+1]       // successor of position i (i < j−1 < n−1)
		c = perm[j-1]       // predecessor of position j
		e = perm[(j+1)%n]   // successor of position j
	)

	return (at(a, tj) + at(tj, b) + at(c, ti) + at(ti, e)) -
		(at(a, ti) + at(ti, b) + at(c, tj) + at(tj, e))
}
