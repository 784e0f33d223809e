package compiler

import (
	"errors"
	"fmt"
	"unsafe"
)

const (
	arenaChunkSize = 64 * 1024

	// DefaultArenaLimit bounds the total backing storage an Arena may
	// acquire. Exceeding it is a hard, reportable failure rather than a
	// silent nil result.
	DefaultArenaLimit = 16 << 20
)

// ErrArenaExhausted is returned when an allocation would push the arena past
// its configured capacity limit.
var ErrArenaExhausted = errors.New("arena capacity exhausted")

// Arena is a chunked bump allocator. Allocation is an O(1) offset bump;
// there is no per-object free. Every block handed out stays valid and
// unmoved until Reset releases the whole region at once.
//
// Instead of failing at a single fixed cap, the arena chains additional
// fixed-size chunks up to an overall byte limit.
type Arena struct {
	cur   []byte   // active chunk
	off   int      // bump offset into cur
	free  [][]byte // chunks recycled by Reset, oldest first
	used  int      // bytes handed out (including alignment padding)
	total int      // bytes of backing storage acquired
	limit int
}

// NewArena returns an arena bounded by limit bytes of backing storage;
// limit <= 0 selects DefaultArenaLimit.
func NewArena(limit int) *Arena {
	if limit <= 0 {
		limit = DefaultArenaLimit
	}
	return &Arena{limit: limit}
}

// Alloc returns a zeroed block of exactly size bytes, aligned to align
// (a power of two) within the arena, or ErrArenaExhausted.
func (a *Arena) Alloc(size, align int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("arena: negative allocation size %d", size)
	}
	if align <= 0 || align&(align-1) != 0 {
		return nil, fmt.Errorf("arena: alignment %d is not a power of two", align)
	}

	pad := 0
	if rem := a.off % align; rem != 0 {
		pad = align - rem
	}
	if a.cur == nil || a.off+pad+size > len(a.cur) {
		if err := a.grow(size); err != nil {
			return nil, err
		}
		pad = 0
	}

	start := a.off + pad
	b := a.cur[start : start+size : start+size]
	a.off = start + size
	a.used += pad + size
	return b, nil
}

// grow makes a chunk with room for at least size bytes the active chunk,
// recycling chunks released by Reset before acquiring new storage.
func (a *Arena) grow(size int) error {
	for len(a.free) > 0 {
		chunk := a.free[0]
		a.free = a.free[1:]
		if len(chunk) >= size {
			a.cur = chunk
			a.off = 0
			return nil
		}
	}

	chunk := arenaChunkSize
	if size > chunk {
		chunk = size
	}
	if chunk > a.limit-a.total {
		return ErrArenaExhausted
	}
	a.cur = make([]byte, chunk)
	a.total += chunk
	a.off = 0
	return nil
}

// Intern copies s into arena-owned storage and returns a string view of it,
// so the text stays valid after the buffer s was sliced from is gone.
// Allocated blocks are never written again, which keeps the view immutable;
// interned strings are only invalidated by Reset.
func (a *Arena) Intern(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	b, err := a.Alloc(len(s), 1)
	if err != nil {
		return "", err
	}
	copy(b, s)
	return unsafe.String(unsafe.SliceData(b), len(b)), nil
}

// Reset reclaims the whole region for reuse without returning backing
// storage to the garbage collector. Everything previously allocated from
// the arena is invalid afterwards.
func (a *Arena) Reset() {
	if a.cur != nil {
		a.free = append(a.free, a.cur)
		a.cur = nil
	}
	a.off = 0
	a.used = 0
}

// Used reports the bytes handed out since the last Reset.
func (a *Arena) Used() int { return a.used }

const miniArenaBlock = 64

// miniArena is a typed slab allocator for AST nodes. Blocks are appended to
// only within their fixed capacity, so node addresses stay stable for the
// life of the slab; reset releases every node at once while keeping the
// backing blocks for reuse.
type miniArena[T any] struct {
	blocks [][]T
}

func (m *miniArena[T]) alloc() *T {
	n := len(m.blocks)
	if n == 0 || len(m.blocks[n-1]) == cap(m.blocks[n-1]) {
		m.blocks = append(m.blocks, make([]T, 0, miniArenaBlock))
		n++
	}
	blk := &m.blocks[n-1]
	var zero T
	*blk = append(*blk, zero)
	return &(*blk)[len(*blk)-1]
}

func (m *miniArena[T]) reset() {
	for i := range m.blocks {
		m.blocks[i] = m.blocks[i][:0]
	}
}
