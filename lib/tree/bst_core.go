package tree

import (
	"github.com/benz9527/xtree/lib/infra"
	"github.com/benz9527/xtree/lib/xlog"
)

// bstCore is the structural skeleton shared by the unbalanced tree
// and the AVL tree. It knows nothing about balance, the AVL tree
// drives the rebalancing on top of the mutation points returned here.
type bstCore[K infra.OrderedKey, V any, M any] struct {
	arena          *xNodeArena[K, V, M]
	root           handle
	count          int64
	version        uint64 // bumped by every structural mutation
	cmp            infra.OrderedKeyComparator[K]
	isRmBorrowSucc bool
	logger         xlog.XLogger
	stats          *treeStats
}

func newBSTCore[K infra.OrderedKey, V any, M any](cfg *treeCfg, component string) *bstCore[K, V, M] {
	core := &bstCore[K, V, M]{
		arena:          newNodeArena[K, V, M](cfg.capacity),
		cmp:            infra.OrderedKeyAscCompare[K],
		isRmBorrowSucc: cfg.isRmBorrowSucc,
	}
	if cfg.isDesc {
		core.cmp = infra.OrderedKeyDescCompare[K]
	}
	if cfg.logger != nil {
		core.logger = cfg.logger.Named(component)
	}
	if cfg.statsName != nil {
		core.stats = newTreeStats(component, *cfg.statsName)
	}
	return core
}

func (core *bstCore[K, V, M]) node(h handle) *xNode[K, V, M] {
	return core.arena.at(h)
}

func (core *bstCore[K, V, M]) direction(h handle) Direction {
	if h == nilHandle {
		// impossible run to here
		panic( /* debug assertion */ "[xtree] nil node without direction")
	}
	p := core.node(h).parent
	if p == nilHandle {
		return Root
	}
	if core.node(p).left == h {
		return Left
	}
	return Right
}

// replaceChild links n into the slot of old under p, or makes n the
// root if p is absent. The parent link of n is left to the caller.
func (core *bstCore[K, V, M]) replaceChild(p, old, n handle) {
	if p == nilHandle {
		core.root = n
		return
	}
	pn := core.node(p)
	if pn.left == old {
		pn.left = n
	} else if pn.right == old {
		pn.right = n
	} else {
		// impossible run to here
		panic( /* debug assertion */ "[xtree] replace a child which is not linked to the parent")
	}
}

func (core *bstCore[K, V, M]) minimum(h handle) handle {
	for ; h != nilHandle && core.node(h).left != nilHandle; h = core.node(h).left {
	}
	return h
}

func (core *bstCore[K, V, M]) maximum(h handle) handle {
	for ; h != nilHandle && core.node(h).right != nilHandle; h = core.node(h).right {
	}
	return h
}

// The pred node of the current node is its previous node in sorted order.
func (core *bstCore[K, V, M]) pred(x handle) handle {
	if x == nilHandle {
		return nilHandle
	}
	if l := core.node(x).left; l != nilHandle {
		return core.maximum(l)
	}

	aux := core.node(x).parent
	// Backtrack to the first ancestor reached by a left turn.
	for aux != nilHandle && x == core.node(aux).left {
		x = aux
		aux = core.node(aux).parent
	}
	return aux
}

// The succ node of the current node is its next node in sorted order.
func (core *bstCore[K, V, M]) succ(x handle) handle {
	if x == nilHandle {
		return nilHandle
	}
	if r := core.node(x).right; r != nilHandle {
		return core.minimum(r)
	}

	aux := core.node(x).parent
	// Backtrack to the first ancestor reached by a right turn.
	for aux != nilHandle && x == core.node(aux).right {
		x = aux
		aux = core.node(aux).parent
	}
	return aux
}

func (core *bstCore[K, V, M]) search(key K) handle {
	for aux := core.root; aux != nilHandle; {
		n := core.node(aux)
		res := core.cmp(key, n.key)
		if res == 0 {
			return aux
		} else if res > 0 {
			aux = n.right
		} else {
			aux = n.left
		}
	}
	return nilHandle
}

// insertNode attaches a new leaf or overwrites the value of an existing
// key. It returns the node holding the key and whether it is new.
func (core *bstCore[K, V, M]) insertNode(key K, val V, ifNotPresent ...bool) (handle, bool, error) {
	if core.root == nilHandle {
		core.root = core.arena.alloc(key, val, nilHandle)
		core.count++
		core.version++
		core.stats.RecordNodeCount(1)
		return core.root, true, nil
	}

	var (
		x, y = core.root, nilHandle
		res  int64
	)
	for x != nilHandle {
		y = x
		n := core.node(x)
		res = core.cmp(key, n.key)
		if /* equal */ res == 0 {
			if /* disabled */ len(ifNotPresent) > 0 && ifNotPresent[0] {
				return x, false, ErrReplaceDisabled
			}
			n.val = val
			return x, false, nil
		} else /* less */ if res < 0 {
			x = n.left
		} else /* greater */ {
			x = n.right
		}
	}

	z := core.arena.alloc(key, val, y)
	if res < 0 {
		core.node(y).left = z
	} else {
		core.node(y).right = z
	}
	core.count++
	core.version++
	core.stats.RecordNodeCount(1)
	return z, true, nil
}

/*
nodeSwap transposes the positions of n1 and n2 in the link graph. The
payload and the metadata stay with the nodes, the caller decides
whether the metadata follows the position.

n2 is the direct child of n1 (pred case):

	    |                  |
	    N1                 N2
	   /  \    swap       /  \
	  N2   R  =======>   N1   R
	 /                  /
	L                  L
*/
func (core *bstCore[K, V, M]) nodeSwap(n1, n2 handle) {
	if n1 == n2 || n1 == nilHandle || n2 == nilHandle {
		return
	}
	x1, x2 := core.node(n1), core.node(n2)

	n1p, n1l, n1r := x1.parent, x1.left, x1.right
	n2p, n2l, n2r := x2.parent, x2.left, x2.right
	n1IsLeft := n1p != nilHandle && core.node(n1p).left == n1
	n2IsLeft := n2p != nilHandle && core.node(n2p).left == n2

	x1.parent, x2.parent = n2p, n1p
	x1.left, x2.left = n2l, n1l
	x1.right, x2.right = n2r, n1r

	// One is the direct parent of the other.
	switch {
	case n1r == n2:
		x2.right = n1
		x1.parent = n2
	case n2r == n1:
		x1.right = n2
		x2.parent = n1
	case n1l == n2:
		x2.left = n1
		x1.parent = n2
	case n2l == n1:
		x1.left = n2
		x2.parent = n1
	default:
	}

	if n1p != nilHandle && n1p != n2 {
		if n1IsLeft {
			core.node(n1p).left = n2
		} else {
			core.node(n1p).right = n2
		}
	}
	if n1r != nilHandle && n1r != n2 {
		core.node(n1r).parent = n2
	}
	if n1l != nilHandle && n1l != n2 {
		core.node(n1l).parent = n2
	}

	if n2p != nilHandle && n2p != n1 {
		if n2IsLeft {
			core.node(n2p).left = n1
		} else {
			core.node(n2p).right = n1
		}
	}
	if n2r != nilHandle && n2r != n1 {
		core.node(n2r).parent = n1
	}
	if n2l != nilHandle && n2l != n1 {
		core.node(n2l).parent = n1
	}

	if core.root == n1 {
		core.root = n2
	} else if core.root == n2 {
		core.root = n1
	}
}

/*
detach removes z from the structure and releases its slot.

r1: z has two children. Swap z with its pred (or succ) by node-swap,
the metadata is swapped back so that it belongs to the position.
Then z has at most one child. Enter r2.

r2: z has at most one child. Re-parent the child to z's parent.

It returns the parent of the removed position, the side z occupied
under it and z's value.
*/
func (core *bstCore[K, V, M]) detach(z handle) (handle, Direction, V) {
	zn := core.node(z)
	if /* r1 */ zn.left != nilHandle && zn.right != nilHandle {
		var y handle
		if core.isRmBorrowSucc {
			y = core.succ(z)
		} else {
			y = core.pred(z)
		}
		core.nodeSwap(z, y)
		yn := core.node(y)
		zn.meta, yn.meta = yn.meta, zn.meta
	}

	/* r2 */
	if zn.left != nilHandle && zn.right != nilHandle {
		// impossible run to here
		panic( /* debug assertion */ "[xtree] detach a node with two children, violate (r2)")
	}
	child := zn.left
	if child == nilHandle {
		child = zn.right
	}
	p, dir, val := zn.parent, core.direction(z), zn.val
	core.replaceChild(p, z, child)
	if child != nilHandle {
		core.node(child).parent = p
	}

	core.arena.release(z)
	core.count--
	core.version++
	core.stats.RecordNodeCount(-1)
	return p, dir, val
}

// postOrder visits children before their parent with an explicit
// stack, the unbalanced tree height is unbounded.
// visit may release the visited node.
func (core *bstCore[K, V, M]) postOrder(visit func(h handle)) {
	stack := make([]handle, 0, 32)
	defer func() {
		clear(stack)
	}()

	var last handle
	for aux := core.root; aux != nilHandle || len(stack) > 0; {
		if aux != nilHandle {
			stack = append(stack, aux)
			aux = core.node(aux).left
			continue
		}
		top := stack[len(stack)-1]
		if r := core.node(top).right; r != nilHandle && r != last {
			aux = r
			continue
		}
		stack = stack[:len(stack)-1]
		visit(top)
		last = top
	}
}

// Inorder traversal to implement the DFS.
func (core *bstCore[K, V, M]) foreach(action func(idx int64, key K, val V) bool) {
	if core.root == nilHandle {
		return
	}
	stack := make([]handle, 0, 32)
	defer func() {
		clear(stack)
	}()

	idx := int64(0)
	for aux := core.root; aux != nilHandle || len(stack) > 0; {
		for ; aux != nilHandle; aux = core.node(aux).left {
			stack = append(stack, aux)
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := core.node(top)
		if !action(idx, n.key, n.val) {
			return
		}
		idx++
		aux = n.right
	}
}

// clear frees children before parents.
func (core *bstCore[K, V, M]) clear() {
	if core.root == nilHandle {
		return
	}
	core.postOrder(core.arena.release)
	core.arena.reset()
	core.stats.RecordNodeCount(-core.count)
	core.root = nilHandle
	core.count = 0
	core.version++
}

// heights returns the subtree height per handle, the nil handle is 0.
func (core *bstCore[K, V, M]) heights() (hs []int32, balanced bool) {
	hs = make([]int32, core.arena.slots())
	balanced = true
	core.postOrder(func(h handle) {
		n := core.node(h)
		hl, hr := hs[n.left], hs[n.right]
		if diff := hr - hl; diff > 1 || diff < -1 {
			balanced = false
		}
		hs[h] = max(hl, hr) + 1
	})
	return hs, balanced
}

func (core *bstCore[K, V, M]) isBalanced() bool {
	_, balanced := core.heights()
	return balanced
}

func (core *bstCore[K, V, M]) at(key K) (V, error) {
	var zero V
	h := core.search(key)
	if h == nilHandle {
		return zero, ErrKeyNotFound
	}
	return core.node(h).val, nil
}

// cursorSource

func (core *bstCore[K, V, M]) first() handle { return core.minimum(core.root) }
func (core *bstCore[K, V, M]) next(h handle) handle { return core.succ(h) }
func (core *bstCore[K, V, M]) keyOf(h handle) K { return core.node(h).key }
func (core *bstCore[K, V, M]) valOf(h handle) V { return core.node(h).val }
func (core *bstCore[K, V, M]) setValOf(h handle, val V) { core.node(h).val = val }
func (core *bstCore[K, V, M]) modVersion() uint64 { return core.version }
