package tree

import (
	"github.com/benz9527/xtree/lib/infra"
)

// handle addresses a node slot in the arena.
type handle uint32

// Slot 0 is reserved, it is the absent link.
const nilHandle handle = 0

// xNode carries the per-variant metadata in meta.
// struct{} for the unbalanced tree and the int8 balance factor for AVL.
type xNode[K infra.OrderedKey, V any, M any] struct {
	parent handle
	left   handle
	right  handle
	key    K
	val    V
	meta   M
}

// xNodeArena is the sole owner of the tree nodes. The links between
// nodes are handles, so rotations and node swaps never touch
// memory that is not owned by the arena.
// The pointer returned by at is valid until the next alloc.
type xNodeArena[K infra.OrderedKey, V any, M any] struct {
	nodes []xNode[K, V, M]
	free  []handle
}

func newNodeArena[K infra.OrderedKey, V any, M any](capacity int) *xNodeArena[K, V, M] {
	if capacity < 0 {
		capacity = 0
	}
	return &xNodeArena[K, V, M]{
		nodes: make([]xNode[K, V, M], 1, capacity+1), // non-zero handle
	}
}

func (arena *xNodeArena[K, V, M]) alloc(key K, val V, parent handle) handle {
	n := xNode[K, V, M]{
		key:    key,
		val:    val,
		parent: parent,
	}
	if size := len(arena.free); size > 0 {
		h := arena.free[size-1]
		arena.free = arena.free[:size-1]
		arena.nodes[h] = n
		return h
	}
	arena.nodes = append(arena.nodes, n)
	return handle(len(arena.nodes) - 1)
}

// release zeroes the slot so the key and value can be collected.
func (arena *xNodeArena[K, V, M]) release(h handle) {
	if h == nilHandle {
		// impossible run to here
		panic( /* debug assertion */ "[xtree] release the nil handle")
	}
	arena.nodes[h] = xNode[K, V, M]{}
	arena.free = append(arena.free, h)
}

func (arena *xNodeArena[K, V, M]) at(h handle) *xNode[K, V, M] {
	return &arena.nodes[h]
}

// slots includes the reserved slot and the free slots.
func (arena *xNodeArena[K, V, M]) slots() int {
	return len(arena.nodes)
}

func (arena *xNodeArena[K, V, M]) reset() {
	clear(arena.nodes)
	arena.nodes = arena.nodes[:1]
	arena.free = arena.free[:0]
}

type bstNodeRef[K infra.OrderedKey, V any] struct {
	core *bstCore[K, V, struct{}]
	h    handle
}

func newBSTNodeRef[K infra.OrderedKey, V any](core *bstCore[K, V, struct{}], h handle) BSTNode[K, V] {
	if h == nilHandle {
		return nil
	}
	return bstNodeRef[K, V]{core: core, h: h}
}

func (ref bstNodeRef[K, V]) Key() K { return ref.core.node(ref.h).key }
func (ref bstNodeRef[K, V]) Val() V { return ref.core.node(ref.h).val }

func (ref bstNodeRef[K, V]) Left() BSTNode[K, V] {
	return newBSTNodeRef[K, V](ref.core, ref.core.node(ref.h).left)
}

func (ref bstNodeRef[K, V]) Right() BSTNode[K, V] {
	return newBSTNodeRef[K, V](ref.core, ref.core.node(ref.h).right)
}

func (ref bstNodeRef[K, V]) Parent() BSTNode[K, V] {
	return newBSTNodeRef[K, V](ref.core, ref.core.node(ref.h).parent)
}

type avlNodeRef[K infra.OrderedKey, V any] struct {
	core *bstCore[K, V, int8]
	h    handle
}

func newAVLNodeRef[K infra.OrderedKey, V any](core *bstCore[K, V, int8], h handle) AVLNode[K, V] {
	if h == nilHandle {
		return nil
	}
	return avlNodeRef[K, V]{core: core, h: h}
}

func (ref avlNodeRef[K, V]) Key() K        { return ref.core.node(ref.h).key }
func (ref avlNodeRef[K, V]) Val() V        { return ref.core.node(ref.h).val }
func (ref avlNodeRef[K, V]) Balance() int8 { return ref.core.node(ref.h).meta }

func (ref avlNodeRef[K, V]) Left() AVLNode[K, V] {
	return newAVLNodeRef[K, V](ref.core, ref.core.node(ref.h).left)
}

func (ref avlNodeRef[K, V]) Right() AVLNode[K, V] {
	return newAVLNodeRef[K, V](ref.core, ref.core.node(ref.h).right)
}

func (ref avlNodeRef[K, V]) Parent() AVLNode[K, V] {
	return newAVLNodeRef[K, V](ref.core, ref.core.node(ref.h).parent)
}
