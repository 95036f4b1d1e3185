package ui

type bucket struct{ first, last *Box }

// table maps keys to the boxes built in the current frame. It is cleared at
// every BeginFrame.
type table struct {
	buckets []bucket
}

func newTable(n int) table {
	if n <= 0 {
		n = 4096
	}
	return table{buckets: make([]bucket, n)}
}

func (t *table) clear() { clear(t.buckets) }

func (t *table) slot(k Key) *bucket { return &t.buckets[uint64(k)%uint64(len(t.buckets))] }

// insert appends b at the tail of its bucket.
func (t *table) insert(b *Box) {
	bk := t.slot(b.key)
	b.hashNext = nil
	b.hashPrev = bk.last
	if bk.last != nil {
		bk.last.hashNext = b
	} else {
		bk.first = b
	}
	bk.last = b
}

func (t *table) lookup(k Key) *Box {
	if k == 0 || len(t.buckets) == 0 {
		return nil
	}
	for b := t.slot(k).first; b != nil; b = b.hashNext {
		if b.key == k {
			return b
		}
	}
	return nil
}
