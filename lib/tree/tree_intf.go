package tree

import (
	"errors"
	"io"
	"iter"

	"github.com/benz9527/xtree/lib/infra"
)

type Direction int8

const (
	Left Direction = -1 + iota
	Root
	Right
)

func (dir Direction) String() string {
	switch dir {
	case Left:
		return "Left"
	case Root:
		return "Root"
	case Right:
		return "Right"
	default:
	}
	return "Unknown"
}

var (
	ErrKeyNotFound     = errors.New("[xtree] key not found")
	ErrReplaceDisabled = errors.New("[xtree] replace disabled")
	ErrStaleIterator   = errors.New("[xtree] iterator is invalid or stale")
)

// BSTNode is a read-only view of a node in the unbalanced tree.
// An absent link is returned as nil.
type BSTNode[K infra.OrderedKey, V any] interface {
	Key() K
	Val() V
	Left() BSTNode[K, V]
	Right() BSTNode[K, V]
	Parent() BSTNode[K, V]
}

// AVLNode is a read-only view of a node in the AVL tree.
// Balance is height(right) - height(left), negative means left-heavy.
type AVLNode[K infra.OrderedKey, V any] interface {
	Key() K
	Val() V
	Balance() int8
	Left() AVLNode[K, V]
	Right() AVLNode[K, V]
	Parent() AVLNode[K, V]
}

// OrderedMap is the common dictionary surface of the trees.
// Neither implementation is safe for concurrent use. Callers have to
// serialize access externally, a writer's rebalancing walk transiently
// breaks both the ordering and the height invariants.
type OrderedMap[K infra.OrderedKey, V any] interface {
	Len() int64
	Empty() bool
	// Insert overwrites the value of an existing key in place.
	// If ifNotPresent is true, an existing key is left untouched
	// and ErrReplaceDisabled is returned.
	Insert(key K, val V, ifNotPresent ...bool) error
	// Remove is a no-op if the key is absent.
	Remove(key K) (V, bool)
	// Find returns the end iterator if the key is absent.
	Find(key K) Iterator[K, V]
	// At returns ErrKeyNotFound if the key is absent.
	At(key K) (V, error)
	Begin() Iterator[K, V]
	End() Iterator[K, V]
	All() iter.Seq2[K, V]
	Foreach(action func(idx int64, key K, val V) bool)
	Clear()
	// IsBalanced reports whether every node's subtree heights differ
	// by at most one. It is a diagnostic, computed from scratch.
	IsBalanced() bool
	// Validate checks the ordering and link invariants, plus the
	// balance metadata for AVL. All violations are aggregated.
	Validate() error
	Print(w io.Writer) error
}

type BSTree[K infra.OrderedKey, V any] interface {
	OrderedMap[K, V]
	Root() BSTNode[K, V]
}

type AVLTree[K infra.OrderedKey, V any] interface {
	OrderedMap[K, V]
	Root() AVLNode[K, V]
}
