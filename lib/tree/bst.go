package tree

import (
	"io"
	"iter"

	"github.com/benz9527/xtree/lib/infra"
)

const bstComponent = "bstree"

var _ BSTree[int, struct{}] = (*bsTree[int, struct{}])(nil)

// bsTree is the unbalanced binary search tree. Its height is bounded
// only by the number of keys, sequential inserts degrade into a list.
type bsTree[K infra.OrderedKey, V any] struct {
	core *bstCore[K, V, struct{}]
}

func (tree *bsTree[K, V]) Len() int64 {
	return tree.core.count
}

func (tree *bsTree[K, V]) Empty() bool {
	return tree.core.root == nilHandle
}

func (tree *bsTree[K, V]) Root() BSTNode[K, V] {
	return newBSTNodeRef[K, V](tree.core, tree.core.root)
}

func (tree *bsTree[K, V]) Insert(key K, val V, ifNotPresent ...bool) error {
	_, _, err := tree.core.insertNode(key, val, ifNotPresent...)
	return err
}

func (tree *bsTree[K, V]) Remove(key K) (V, bool) {
	z := tree.core.search(key)
	if z == nilHandle {
		var zero V
		return zero, false
	}
	_, _, val := tree.core.detach(z)
	return val, true
}

func (tree *bsTree[K, V]) Find(key K) Iterator[K, V] {
	return newIterator[K, V](tree.core, tree.core.search(key))
}

func (tree *bsTree[K, V]) At(key K) (V, error) {
	return tree.core.at(key)
}

func (tree *bsTree[K, V]) Begin() Iterator[K, V] {
	return newIterator[K, V](tree.core, tree.core.first())
}

func (tree *bsTree[K, V]) End() Iterator[K, V] {
	return newIterator[K, V](tree.core, nilHandle)
}

func (tree *bsTree[K, V]) All() iter.Seq2[K, V] {
	return all[K, V](tree.core)
}

func (tree *bsTree[K, V]) Foreach(action func(idx int64, key K, val V) bool) {
	tree.core.foreach(action)
}

func (tree *bsTree[K, V]) Clear() {
	tree.core.clear()
}

func (tree *bsTree[K, V]) IsBalanced() bool {
	return tree.core.isBalanced()
}

func (tree *bsTree[K, V]) Validate() error {
	return validate(tree.core, bstComponent, noMetaCheck[K, V])
}

func (tree *bsTree[K, V]) Print(w io.Writer) error {
	return printTree[K, V, struct{}](w, tree.core, nil)
}

func NewBSTree[K infra.OrderedKey, V any](opts ...TreeOption) BSTree[K, V] {
	return &bsTree[K, V]{
		core: newBSTCore[K, V, struct{}](newTreeCfg(opts...), bstComponent),
	}
}
