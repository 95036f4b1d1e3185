package arena

const defaultPoolChunk = 256

// Pool is a typed slab allocator with stable pointers. Slots handed out by
// Alloc are recycled after Clear without being zeroed.
type Pool[T any] struct {
	chunkLen int
	chunks   [][]T
	n        int
}

// NewPool creates a pool that grows chunkLen slots at a time.
func NewPool[T any](chunkLen int) *Pool[T] {
	p := &Pool[T]{}
	p.init(chunkLen)
	return p
}

func (p *Pool[T]) init(chunkLen int) {
	if chunkLen <= 0 {
		chunkLen = defaultPoolChunk
	}
	p.chunkLen = chunkLen
}

// Alloc returns the next slot. The slot may hold data from a previous
// generation; callers must assign every field they read later.
func (p *Pool[T]) Alloc() *T {
	if p.chunkLen == 0 {
		p.init(0)
	}
	ci, si := p.n/p.chunkLen, p.n%p.chunkLen
	if ci == len(p.chunks) {
		p.chunks = append(p.chunks, make([]T, p.chunkLen))
	}
	p.n++
	return &p.chunks[ci][si]
}

// Len returns the number of live slots.
func (p *Pool[T]) Len() int { return p.n }

// Clear makes every slot available again.
func (p *Pool[T]) Clear() { p.n = 0 }

// Cap returns the number of slots reserved.
func (p *Pool[T]) Cap() int { return len(p.chunks) * p.chunkLen }
