package tabu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTabuMemory_ExpirySemantics(t *testing.T) {
	m := newTabuMemory()
	key := Move{I: 1, J: 4}.key()

	assert.False(t, m.isTabu(key, 1), "fresh memory must not forbid anything")

	// Forbid at iteration 3 with tenure 2 ⇒ expiry = 5.
	m.forbid(key, 3, 2)
	assert.True(t, m.isTabu(key, 3))
	assert.True(t, m.isTabu(key, 4))
	assert.False(t, m.isTabu(key, 5), "expiry ≤ current must be allowed")
	assert.False(t, m.isTabu(key, 6))
}

func TestTabuMemory_ForbidOverwrites(t *testing.T) {
	m := newTabuMemory()
	key := Move{I: 0, J: 2}.key()

	m.forbid(key, 1, 2) // expiry 3
	m.forbid(key, 4, 5) // refreshed: expiry 9
	assert.True(t, m.isTabu(key, 8))
	assert.False(t, m.isTabu(key, 9))
	assert.Equal(t, 1, m.size(), "overwrite must not duplicate entries")
}

func TestTabuMemory_PurgeExpired(t *testing.T) {
	m := newTabuMemory()
	m.forbid(Move{I: 0, J: 1}.key(), 1, 2) // expiry 3
	m.forbid(Move{I: 0, J: 2}.key(), 1, 9) // expiry 10
	assert.Equal(t, 2, m.size())

	m.purgeExpired(3)
	assert.Equal(t, 1, m.size(), "expired entry must be removed")
	assert.True(t, m.isTabu(Move{I: 0, J: 2}.key(), 3), "live entry must survive purge")
}

func TestMoveKey_CanonicalAndDistinct(t *testing.T) {
	// Distinct pairs yield distinct keys; the canonical form I<J means the
	// "reverse" of a move shares its key by construction.
	a := Move{I: 1, J: 2}.key()
	b := Move{I: 1, J: 3}.key()
	c := Move{I: 2, J: 3}.key()
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, b, c)
	assert.Equal(t, a, Move{I: 1, J: 2}.key())
}
