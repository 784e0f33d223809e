package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaAlloc(t *testing.T) {
	a := NewArena(0)

	b, err := a.Alloc(16, 8)
	require.NoError(t, err)
	assert.Len(t, b, 16)
	for _, c := range b {
		assert.Zero(t, c)
	}

	// Blocks from the same chunk never overlap.
	b2, err := a.Alloc(16, 8)
	require.NoError(t, err)
	copy(b, "aaaaaaaaaaaaaaaa")
	copy(b2, "bbbbbbbbbbbbbbbb")
	assert.Equal(t, "aaaaaaaaaaaaaaaa", string(b))
	assert.Equal(t, "bbbbbbbbbbbbbbbb", string(b2))
}

func TestArenaAlignment(t *testing.T) {
	a := NewArena(0)

	_, err := a.Alloc(3, 1)
	require.NoError(t, err)
	used := a.Used()

	_, err = a.Alloc(8, 8)
	require.NoError(t, err)
	// 3 bytes used, so 5 bytes of padding precede the aligned block.
	assert.Equal(t, used+5+8, a.Used())
}

func TestArenaRejectsBadArguments(t *testing.T) {
	a := NewArena(0)

	_, err := a.Alloc(-1, 1)
	assert.Error(t, err)

	_, err = a.Alloc(8, 3)
	assert.Error(t, err)

	_, err = a.Alloc(8, 0)
	assert.Error(t, err)
}

func TestArenaExhaustion(t *testing.T) {
	a := NewArena(arenaChunkSize) // room for exactly one chunk

	_, err := a.Alloc(1024, 1)
	require.NoError(t, err)

	// A second chunk would exceed the limit.
	_, err = a.Alloc(arenaChunkSize, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrArenaExhausted)

	// Small allocations inside the existing chunk still work.
	_, err = a.Alloc(16, 1)
	assert.NoError(t, err)
}

func TestArenaOversizedAllocation(t *testing.T) {
	a := NewArena(0)

	// Larger than a chunk: gets a dedicated chunk of exactly that size.
	b, err := a.Alloc(arenaChunkSize*2, 1)
	require.NoError(t, err)
	assert.Len(t, b, arenaChunkSize*2)
}

func TestArenaChains(t *testing.T) {
	a := NewArena(0)

	// More total bytes than one chunk holds; the arena chains chunks
	// instead of failing at a fixed cap.
	for i := 0; i < 100; i++ {
		_, err := a.Alloc(1024, 1)
		require.NoError(t, err)
	}
	assert.Equal(t, 100*1024, a.Used())
}

func TestArenaReset(t *testing.T) {
	a := NewArena(arenaChunkSize)

	_, err := a.Alloc(1024, 1)
	require.NoError(t, err)
	require.NotZero(t, a.Used())

	a.Reset()
	assert.Zero(t, a.Used())

	// The recycled chunk serves new allocations without new storage, so a
	// limit-bounded arena can run many parses back to back.
	for i := 0; i < 3; i++ {
		_, err = a.Alloc(arenaChunkSize, 1)
		require.NoError(t, err)
		a.Reset()
	}
}

func TestArenaIntern(t *testing.T) {
	a := NewArena(0)

	buf := []byte("hello world")
	s, err := a.Intern(string(buf))
	require.NoError(t, err)

	// Mutating the original buffer cannot touch the interned copy.
	buf[0] = 'X'
	assert.Equal(t, "hello world", s)

	empty, err := a.Intern("")
	require.NoError(t, err)
	assert.Equal(t, "", empty)
}

func TestArenaInternExhaustion(t *testing.T) {
	a := NewArena(arenaChunkSize)
	_, err := a.Alloc(arenaChunkSize, 1)
	require.NoError(t, err)

	_, err = a.Intern("does not fit")
	assert.ErrorIs(t, err, ErrArenaExhausted)
}

func TestMiniArenaAddressStability(t *testing.T) {
	var m miniArena[Literal]

	first := m.alloc()
	first.Int = 7

	// Allocate well past several block boundaries.
	for i := 0; i < miniArenaBlock*4; i++ {
		m.alloc()
	}
	assert.Equal(t, int64(7), first.Int)

	m.reset()
	again := m.alloc()
	assert.Zero(t, again.Int)
}
