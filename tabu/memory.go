// Package tabu - short-term memory of recently applied moves.
package tabu

// tabuMemory maps canonical move keys to the iteration at which the move
// becomes allowed again. It is owned exclusively by one engine run; the
// lifecycle is a single search.
//
// Policy (documented decision): the engine forbids the *applied move's own
// key*, not its inverse. Both conventions are common; this one matches the
// reference behavior of the system this solver models and, with canonical
// keys, also covers the inverse for self-inverse families (a swap or a
// segment reversal undoes itself, so the reverse move shares the key).
//
// Concurrency: reads (isTabu) are safe from multiple goroutines as long as
// no forbid/purgeExpired is in flight. The engine writes only between
// scoring phases, so the parallel scan needs no locking.
type tabuMemory struct {
	expiry map[uint64]int // move key → first iteration the move is allowed again
}

// newTabuMemory returns an empty memory.
func newTabuMemory() *tabuMemory {
	return &tabuMemory{expiry: make(map[uint64]int)}
}

// isTabu reports whether key is forbidden at iteration: an entry exists
// with expiry > iteration.
//
// Complexity: O(1).
func (m *tabuMemory) isTabu(key uint64, iteration int) bool {
	exp, ok := m.expiry[key]

	return ok && exp > iteration
}

// forbid inserts or overwrites the entry for key with
// expiry = iteration + tenure. Tenure must be positive (validated once,
// up front, in validateOptionsStandalone).
//
// Complexity: O(1).
func (m *tabuMemory) forbid(key uint64, iteration, tenure int) {
	m.expiry[key] = iteration + tenure
}

// purgeExpired removes entries whose expiry ≤ iteration, bounding memory
// to the set of currently forbidden moves.
//
// Complexity: O(len) time.
func (m *tabuMemory) purgeExpired(iteration int) {
	var key uint64
	var exp int
	for key, exp = range m.expiry {
		if exp <= iteration {
			delete(m.expiry, key)
		}
	}
}

// size returns the number of live entries (expired-but-unpurged included).
// Used by tests to pin expiry semantics.
func (m *tabuMemory) size() int {
	return len(m.expiry)
}
