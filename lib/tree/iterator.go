package tree

import (
	"iter"

	"github.com/benz9527/xtree/lib/infra"
)

type cursorSource[K infra.OrderedKey, V any] interface {
	first() handle
	next(h handle) handle
	keyOf(h handle) K
	valOf(h handle) V
	setValOf(h handle, val V)
	modVersion() uint64
}

// Iterator is a forward-only in-order cursor. Independent cursors
// can walk the same tree. Any structural mutation performed after the
// cursor was obtained invalidates it, overwriting a value does not.
//
//	for it := tree.Begin(); it.Valid(); it.Next() {
//		_ = it.Key()
//	}
type Iterator[K infra.OrderedKey, V any] struct {
	src     cursorSource[K, V]
	h       handle
	version uint64
}

func newIterator[K infra.OrderedKey, V any](src cursorSource[K, V], h handle) Iterator[K, V] {
	return Iterator[K, V]{
		src:     src,
		h:       h,
		version: src.modVersion(),
	}
}

func (it Iterator[K, V]) isStale() bool {
	return it.src == nil || it.version != it.src.modVersion()
}

// Valid is false at the end and for a stale cursor.
func (it Iterator[K, V]) Valid() bool {
	return it.h != nilHandle && !it.isStale()
}

func (it *Iterator[K, V]) Next() {
	if !it.Valid() {
		return
	}
	it.h = it.src.next(it.h)
}

// Key returns the zero value if the cursor is not valid.
func (it Iterator[K, V]) Key() K {
	if !it.Valid() {
		var zero K
		return zero
	}
	return it.src.keyOf(it.h)
}

// Val returns the zero value if the cursor is not valid.
func (it Iterator[K, V]) Val() V {
	if !it.Valid() {
		var zero V
		return zero
	}
	return it.src.valOf(it.h)
}

func (it Iterator[K, V]) SetVal(val V) error {
	if !it.Valid() {
		return ErrStaleIterator
	}
	it.src.setValOf(it.h, val)
	return nil
}

// Equal reports whether both cursors are positioned at the same node
// of the same tree. End cursors of one tree are equal.
func (it Iterator[K, V]) Equal(other Iterator[K, V]) bool {
	return it.src == other.src && it.h == other.h
}

// all stops once the tree is structurally mutated by the loop body.
func all[K infra.OrderedKey, V any](src cursorSource[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for it := newIterator[K, V](src, src.first()); it.Valid(); it.Next() {
			if !yield(it.Key(), it.Val()) {
				return
			}
		}
	}
}
