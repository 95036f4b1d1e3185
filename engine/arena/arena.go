// Package arena provides the per-frame bump allocators used by the UI core.
//
// Nothing handed out by an arena is freed individually. Memory is reclaimed in
// bulk by Clear (or PopTo), and is NOT zeroed when it is handed out again.
package arena

import "unsafe"

const defaultChunkSize = 64 * 1024

// Arena is a chunked byte bump allocator. Returned slices never move: growing
// the arena appends a chunk instead of reallocating the existing ones.
type Arena struct {
	chunkSize int
	chunks    [][]byte
	cur       int // index of the chunk being filled
	off       int // fill offset inside chunks[cur]
	base      int // logical position of chunks[cur][0]
}

// New creates an arena that allocates chunkSize bytes at a time.
func New(chunkSize int) *Arena {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	return &Arena{chunkSize: chunkSize}
}

// Push reserves size bytes aligned to align and returns them. align must be a
// power of two; values <= 1 mean unaligned.
func (a *Arena) Push(size, align int) []byte {
	if size < 0 {
		size = 0
	}
	if align < 1 {
		align = 1
	}
	for {
		if a.cur < len(a.chunks) {
			c := a.chunks[a.cur]
			start := alignUp(&c, a.off, align)
			if start+size <= len(c) {
				a.off = start + size
				return c[start : start+size : start+size]
			}
			// Current chunk exhausted; move on and account for the tail we skip.
			a.base += len(c)
			a.cur++
			a.off = 0
			continue
		}
		n := a.chunkSize
		if size+align > n {
			n = size + align
		}
		a.chunks = append(a.chunks, make([]byte, n))
	}
}

// PushString copies s into the arena and returns a string that aliases the
// arena memory. The result is valid until the arena is cleared.
func (a *Arena) PushString(s string) string {
	if len(s) == 0 {
		return ""
	}
	b := a.Push(len(s), 1)
	copy(b, s)
	return unsafe.String(&b[0], len(b))
}

// Pos returns the current logical position.
func (a *Arena) Pos() int { return a.base + a.off }

// PopTo rewinds the arena to pos, which must come from a previous Pos call.
func (a *Arena) PopTo(pos int) {
	if pos <= 0 {
		a.cur, a.off, a.base = 0, 0, 0
		return
	}
	if pos >= a.Pos() {
		return
	}
	for pos < a.base && a.cur > 0 {
		a.cur--
		a.base -= len(a.chunks[a.cur])
	}
	a.off = pos - a.base
}

// Clear rewinds the arena to its start. Chunks are kept for reuse.
func (a *Arena) Clear() { a.PopTo(0) }

// Cap reports the total bytes reserved by the arena.
func (a *Arena) Cap() int {
	n := 0
	for _, c := range a.chunks {
		n += len(c)
	}
	return n
}

func alignUp(c *[]byte, off, align int) int {
	if align == 1 || len(*c) == 0 {
		return off
	}
	addr := uintptr(unsafe.Pointer(&(*c)[0])) + uintptr(off)
	pad := int((uintptr(align) - addr%uintptr(align)) % uintptr(align))
	return off + pad
}
