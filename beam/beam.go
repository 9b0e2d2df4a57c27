package beam

import "sort"

// Comparer is the ordering a Beam ranks by. Compare returns a negative number
// when the receiver should rank ahead of the argument.
type Comparer[T any] interface {
	Compare(T) int
}

type entry[T any] struct {
	item T
	seq  uint64
}

// Beam is a size-capped collection kept sorted best-first. Pushing past the
// cap evicts the worst element. Two items that compare equal are both kept,
// in insertion order: an internal sequence number breaks ties for the sort
// only and never leaks into ranking decisions callers can observe.
type Beam[T Comparer[T]] struct {
	size    int
	nextSeq uint64
	entries []entry[T]
}

// New creates a beam holding at most size elements. Size is clamped to 1.
func New[T Comparer[T]](size int) *Beam[T] {
	if size < 1 {
		size = 1
	}
	return &Beam[T]{size: size}
}

// Push inserts the item at its rank, dropping the worst element if the beam
// is over capacity.
func (b *Beam[T]) Push(item T) {
	e := entry[T]{item: item, seq: b.nextSeq}
	b.nextSeq++

	i := sort.Search(len(b.entries), func(i int) bool {
		if result := item.Compare(b.entries[i].item); result != 0 {
			return result < 0
		}
		return e.seq < b.entries[i].seq
	})
	if i >= b.size {
		return
	}

	b.entries = append(b.entries, entry[T]{})
	copy(b.entries[i+1:], b.entries[i:])
	b.entries[i] = e
	if len(b.entries) > b.size {
		b.entries = b.entries[:b.size]
	}
}

// Items returns the elements best-first.
func (b *Beam[T]) Items() []T {
	res := make([]T, len(b.entries))
	for i, e := range b.entries {
		res[i] = e.item
	}
	return res
}

// Best returns the top-ranked element, or false for an empty beam.
func (b *Beam[T]) Best() (T, bool) {
	if len(b.entries) == 0 {
		var zero T
		return zero, false
	}
	return b.entries[0].item, true
}

func (b *Beam[T]) Len() int {
	return len(b.entries)
}

// Size is the configured capacity.
func (b *Beam[T]) Size() int {
	return b.size
}
