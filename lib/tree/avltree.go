package tree

import (
	"io"
	"iter"

	"go.uber.org/zap"

	"github.com/benz9527/xtree/lib/infra"
)

// References:
// https://en.wikipedia.org/wiki/AVL_tree
// avltree properties:
// p1. For every node, |height(left) - height(right)| <= 1.
// p2. The balance factor is height(right) - height(left), so
//   a negative balance means left-heavy. A steady-state balance is
//   -1, 0 or +1. +2/-2 only exists inside a rebalancing walk.
// Every walk ends "locally resolved" (a rotation or a balance
// update absorbed the height change) or by passing the root.

const avlComponent = "avltree"

var _ AVLTree[int, struct{}] = (*avlTree[int, struct{}])(nil)

type avlTree[K infra.OrderedKey, V any] struct {
	core *bstCore[K, V, int8]
}

func (tree *avlTree[K, V]) Len() int64 {
	return tree.core.count
}

func (tree *avlTree[K, V]) Empty() bool {
	return tree.core.root == nilHandle
}

func (tree *avlTree[K, V]) Root() AVLNode[K, V] {
	return newAVLNodeRef[K, V](tree.core, tree.core.root)
}

func (tree *avlTree[K, V]) Insert(key K, val V, ifNotPresent ...bool) error {
	z, inserted, err := tree.core.insertNode(key, val, ifNotPresent...)
	if err != nil || !inserted {
		return err
	}
	tree.insertRebalance(z)
	return nil
}

/*
x is the node whose subtree height grew, p is its parent.
Adjust p's balance by the side of x.

im1: p's balance becomes 0. The height of p did not change, stop.

im2: p's balance becomes -1/+1. The height of p grew by one,
propagate with (p, p.parent).

im3: p's balance becomes -2/+2, x is on the same side as its taller child.
Single rotation at p, both balances reset to 0, stop.

	      P(-2)                X(0)
	      /     r-rotate(P)    / \
	    X(-1)   ==========>   N   P(0)
	    /
	  N

im4: p's balance becomes -2/+2, x's taller child is on the opposite side.
Double rotation, rotate x first then p. The final balances depend on
the balance of x's inner child G before the rotations.

	    P(-2)                  P                  G
	    /     l-rotate(X)     /    r-rotate(P)   / \
	  X(+1)   ==========>    G     ==========>  X   P
	     \                  /
	      G                X
*/
func (tree *avlTree[K, V]) insertRebalance(x handle) {
	core := tree.core
	steps := int64(0)
	defer func() {
		tree.walkDone(opInsert, steps)
	}()

	for p := core.node(x).parent; p != nilHandle; x, p = p, core.node(p).parent {
		steps++
		pn, xn := core.node(p), core.node(x)
		if pn.left == x {
			pn.meta--
		} else {
			pn.meta++
		}

		switch pn.meta {
		case /* im1 */ 0:
			return
		case /* im2 */ -1, 1:
			continue
		case -2:
			if /* im3 */ xn.meta == -1 {
				core.rightRotate(p)
				pn.meta, xn.meta = 0, 0
			} else /* im4 */ {
				g := xn.right
				gn := core.node(g)
				core.leftRotate(x)
				core.rightRotate(p)
				switch gn.meta {
				case -1:
					xn.meta, pn.meta = 0, 1
				case 0:
					xn.meta, pn.meta = 0, 0
				case 1:
					xn.meta, pn.meta = -1, 0
				default:
					// impossible run to here
					panic( /* debug assertion */ "[avltree] insert violate (im4), unknown inner balance")
				}
				gn.meta = 0
			}
			return
		case 2:
			if /* im3 */ xn.meta == 1 {
				core.leftRotate(p)
				pn.meta, xn.meta = 0, 0
			} else /* im4 */ {
				g := xn.left
				gn := core.node(g)
				core.rightRotate(x)
				core.leftRotate(p)
				switch gn.meta {
				case 1:
					xn.meta, pn.meta = 0, -1
				case 0:
					xn.meta, pn.meta = 0, 0
				case -1:
					xn.meta, pn.meta = 1, 0
				default:
					// impossible run to here
					panic( /* debug assertion */ "[avltree] insert violate (im4), unknown inner balance")
				}
				gn.meta = 0
			}
			return
		default:
			// impossible run to here
			panic( /* debug assertion */ "[avltree] insert violate, balance out of range")
		}
	}
}

func (tree *avlTree[K, V]) Remove(key K) (V, bool) {
	z := tree.core.search(key)
	if z == nilHandle {
		var zero V
		return zero, false
	}
	p, dir, val := tree.core.detach(z)
	switch dir {
	case Left:
		tree.removeRebalance(p, 1)
	case Right:
		tree.removeRebalance(p, -1)
	default:
		// The root was removed, nothing above to rebalance.
	}
	return val, true
}

/*
p is the parent of the removed position, delta is the balance
correction at p (+1 if the left side lost height, -1 for the right side).
The effective balance is p.balance + delta.

rm1: effective -1/+1. The height of p did not change, stop.

rm2: effective 0. The height of p shrank, propagate to p.parent.

rm3: effective -2/+2, the taller child C leans to the same side.
Single rotation at p, both balances reset to 0. The height shrank,
propagate.

	      P(-2)                C(0)
	      / \    r-rotate(P)   / \
	   C(-1) x   ==========>  Cl  P(0)
	   /                           \
	  Cl                            x

rm4: effective -2/+2, the taller child C is balanced.
Single rotation at p, the height did not change, stop.

	      P(-2)                C(+1)
	      / \    r-rotate(P)   / \
	   C(0)  x   ==========>  Cl  P(-1)
	   / \                       / \
	  Cl  Cr                    Cr  x

rm5: effective -2/+2, the taller child C leans to the opposite side.
Double rotation, rotate C then p. The final balances depend on the
balance of C's inner child G before the rotations. The height shrank,
propagate.

Unlike insertion, several rotations may cascade up to the root.
*/
func (tree *avlTree[K, V]) removeRebalance(p handle, delta int8) {
	core := tree.core
	steps := int64(0)
	defer func() {
		tree.walkDone(opRemove, steps)
	}()

	for p != nilHandle {
		steps++
		pn := core.node(p)
		gp := pn.parent
		// The side is taken before any rotation moves p down.
		nextDelta := int8(0)
		if gp != nilHandle {
			if core.node(gp).left == p {
				nextDelta = 1
			} else {
				nextDelta = -1
			}
		}

		switch bal := pn.meta + delta; bal {
		case /* rm1 */ -1, 1:
			pn.meta = bal
			return
		case /* rm2 */ 0:
			pn.meta = 0
		case -2:
			c := pn.left
			cn := core.node(c)
			switch cn.meta {
			case /* rm3 */ -1:
				core.rightRotate(p)
				pn.meta, cn.meta = 0, 0
			case /* rm4 */ 0:
				core.rightRotate(p)
				pn.meta, cn.meta = -1, 1
				return
			case /* rm5 */ 1:
				g := cn.right
				gn := core.node(g)
				core.leftRotate(c)
				core.rightRotate(p)
				switch gn.meta {
				case 1:
					pn.meta, cn.meta = 0, -1
				case 0:
					pn.meta, cn.meta = 0, 0
				case -1:
					pn.meta, cn.meta = 1, 0
				default:
					// impossible run to here
					panic( /* debug assertion */ "[avltree] remove violate (rm5), unknown inner balance")
				}
				gn.meta = 0
			default:
				// impossible run to here
				panic( /* debug assertion */ "[avltree] remove violate, child balance out of range")
			}
		case 2:
			c := pn.right
			cn := core.node(c)
			switch cn.meta {
			case /* rm3 */ 1:
				core.leftRotate(p)
				pn.meta, cn.meta = 0, 0
			case /* rm4 */ 0:
				core.leftRotate(p)
				pn.meta, cn.meta = 1, -1
				return
			case /* rm5 */ -1:
				g := cn.left
				gn := core.node(g)
				core.rightRotate(c)
				core.leftRotate(p)
				switch gn.meta {
				case -1:
					pn.meta, cn.meta = 0, 1
				case 0:
					pn.meta, cn.meta = 0, 0
				case 1:
					pn.meta, cn.meta = -1, 0
				default:
					// impossible run to here
					panic( /* debug assertion */ "[avltree] remove violate (rm5), unknown inner balance")
				}
				gn.meta = 0
			default:
				// impossible run to here
				panic( /* debug assertion */ "[avltree] remove violate, child balance out of range")
			}
		default:
			// impossible run to here
			panic( /* debug assertion */ "[avltree] remove violate, balance out of range")
		}
		p, delta = gp, nextDelta
	}
}

func (tree *avlTree[K, V]) walkDone(op string, steps int64) {
	tree.core.stats.RecordRebalanceWalk(op, steps)
	if tree.core.logger == nil {
		return
	}
	tree.core.logger.Debug("[avltree] rebalance walk done",
		zap.String("op", op),
		zap.Int64("steps", steps),
		zap.Int64("len", tree.core.count),
	)
}

func (tree *avlTree[K, V]) Find(key K) Iterator[K, V] {
	return newIterator[K, V](tree.core, tree.core.search(key))
}

func (tree *avlTree[K, V]) At(key K) (V, error) {
	return tree.core.at(key)
}

func (tree *avlTree[K, V]) Begin() Iterator[K, V] {
	return newIterator[K, V](tree.core, tree.core.first())
}

func (tree *avlTree[K, V]) End() Iterator[K, V] {
	return newIterator[K, V](tree.core, nilHandle)
}

func (tree *avlTree[K, V]) All() iter.Seq2[K, V] {
	return all[K, V](tree.core)
}

func (tree *avlTree[K, V]) Foreach(action func(idx int64, key K, val V) bool) {
	tree.core.foreach(action)
}

func (tree *avlTree[K, V]) Clear() {
	tree.core.clear()
}

func (tree *avlTree[K, V]) IsBalanced() bool {
	return tree.core.isBalanced()
}

func (tree *avlTree[K, V]) Validate() error {
	return validate(tree.core, avlComponent, balanceMetaCheck[K, V])
}

func (tree *avlTree[K, V]) Print(w io.Writer) error {
	return printTree(w, tree.core, func(n *xNode[K, V, int8]) string {
		return formatBalance(n.meta)
	})
}

func NewAVLTree[K infra.OrderedKey, V any](opts ...TreeOption) AVLTree[K, V] {
	return &avlTree[K, V]{
		core: newBSTCore[K, V, int8](newTreeCfg(opts...), avlComponent),
	}
}
