// Package scratch provides reusable byte buffers for building transient
// strings (labels, formatted stats) without per-frame heap churn.
//
// Usage:
//
//	s := scratch.Begin()
//	defer s.End()
//	label := s.Sprintf("HP %d/%d", hp, max)
//
// Strings returned by the *View* helpers alias the buffer and are only valid
// until the buffer is written again or released. Use StringFrom (copy) or copy
// the bytes into a longer-lived arena when the string must outlive End.
package scratch

import (
	"fmt"
	"strconv"
	"sync"
	"unicode/utf8"
	"unsafe"
)

const defaultCapacity = 1024

// Buffer is a growable byte buffer acquired with Begin and released with End.
type Buffer struct {
	buf []byte
}

var pool = sync.Pool{
	New: func() any { return &Buffer{buf: make([]byte, 0, defaultCapacity)} },
}

// Begin acquires an empty scratch buffer.
func Begin() *Buffer {
	b := pool.Get().(*Buffer)
	b.buf = b.buf[:0]
	return b
}

// End releases the buffer. It must not be used afterwards.
func (b *Buffer) End() {
	if b == nil {
		return
	}
	b.buf = b.buf[:0]
	pool.Put(b)
}

// Reset clears the buffer length without freeing memory.
func (b *Buffer) Reset() { b.buf = b.buf[:0] }

// Len returns the current length.
func (b *Buffer) Len() int { return len(b.buf) }

// Cap returns the current capacity.
func (b *Buffer) Cap() int { return cap(b.buf) }

// Mark returns a bookmark to later slice the output.
func (b *Buffer) Mark() int { return len(b.buf) }

// Bytes returns the whole buffer.
func (b *Buffer) Bytes() []byte { return b.buf }

// BytesFrom returns the bytes produced since mark.
func (b *Buffer) BytesFrom(mark int) []byte { return b.buf[mark:] }

// StringFrom copies the bytes produced since mark into a new string.
func (b *Buffer) StringFrom(mark int) string { return string(b.buf[mark:]) }

// StringViewFrom returns a zero-copy view of the bytes since mark.
func (b *Buffer) StringViewFrom(mark int) string {
	v := b.buf[mark:]
	if len(v) == 0 {
		return ""
	}
	return unsafe.String(&v[0], len(v))
}

// String copies the whole buffer into a new string.
func (b *Buffer) String() string { return string(b.buf) }

// ----- Append primitives (chainable) -----

func (b *Buffer) B(p []byte) *Buffer { b.buf = append(b.buf, p...); return b }

func (b *Buffer) S(s string) *Buffer { b.buf = append(b.buf, s...); return b }

func (b *Buffer) C(c byte) *Buffer { b.buf = append(b.buf, c); return b }

func (b *Buffer) R(r rune) *Buffer { b.buf = utf8.AppendRune(b.buf, r); return b }

// I appends a base-10 integer.
func (b *Buffer) I(v int) *Buffer { b.buf = strconv.AppendInt(b.buf, int64(v), 10); return b }

// U appends an unsigned base-10 integer.
func (b *Buffer) U(v uint) *Buffer { b.buf = strconv.AppendUint(b.buf, uint64(v), 10); return b }

// F64 appends a float with prec digits after the decimal point.
func (b *Buffer) F64(v float64, prec int) *Buffer {
	b.buf = strconv.AppendFloat(b.buf, v, 'f', prec, 64)
	return b
}

// Bool appends "true"/"false".
func (b *Buffer) Bool(v bool) *Buffer { b.buf = strconv.AppendBool(b.buf, v); return b }

// Hex appends an integer in hexadecimal without "0x".
func (b *Buffer) Hex(u uint64) *Buffer { b.buf = strconv.AppendUint(b.buf, u, 16); return b }

// Pad appends n copies of c.
func (b *Buffer) Pad(n int, c byte) *Buffer {
	for i := 0; i < n; i++ {
		b.buf = append(b.buf, c)
	}
	return b
}

// Appendf formats according to format and appends the result.
func (b *Buffer) Appendf(format string, args ...any) *Buffer {
	b.buf = fmt.Appendf(b.buf, format, args...)
	return b
}

// Sprintf appends the formatted text and returns a view of it. The view is
// valid until the buffer is written again or released.
func (b *Buffer) Sprintf(format string, args ...any) string {
	mark := b.Mark()
	b.Appendf(format, args...)
	return b.StringViewFrom(mark)
}
