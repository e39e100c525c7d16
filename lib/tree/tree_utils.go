package tree

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/benz9527/xtree/lib/infra"
)

// metaCheck reports a violation of the per-variant metadata of h.
// hs are the subtree heights indexed by handle.
type metaCheck[K infra.OrderedKey, V any, M any] func(core *bstCore[K, V, M], h handle, hs []int32) error

func noMetaCheck[K infra.OrderedKey, V any](*bstCore[K, V, struct{}], handle, []int32) error {
	return nil
}

func balanceMetaCheck[K infra.OrderedKey, V any](core *bstCore[K, V, int8], h handle, hs []int32) error {
	n := core.node(h)
	var merr error
	if actual := hs[n.right] - hs[n.left]; actual != int32(n.meta) {
		merr = multierr.Append(merr, fmt.Errorf("[avltree] key %v balance %d, actual %d", n.key, n.meta, actual))
	}
	if n.meta > 1 || n.meta < -1 {
		merr = multierr.Append(merr, fmt.Errorf("[avltree] key %v balance %d out of range", n.key, n.meta))
	}
	return merr
}

// Post-order traversal to validate the tree properties.
// v1. Keys are strictly ordered by the comparator along every path.
// v2. The parent link of every child points back to its parent.
// v3. The root has no parent and the node count matches.
// v4. The variant metadata holds (AVL balance == subtree heights diff).
func validate[K infra.OrderedKey, V any, M any](core *bstCore[K, V, M], component string, check metaCheck[K, V, M]) error {
	var merr error
	if core.root != nilHandle && core.node(core.root).parent != nilHandle {
		merr = multierr.Append(merr, fmt.Errorf("[%s] root has a parent", component))
	}

	hs, _ := core.heights()
	count := int64(0)
	core.postOrder(func(h handle) {
		count++
		n := core.node(h)
		if /* v2 */ n.left != nilHandle && core.node(n.left).parent != h {
			merr = multierr.Append(merr, fmt.Errorf("[%s] key %v left child parent link is broken", component, n.key))
		}
		if /* v2 */ n.right != nilHandle && core.node(n.right).parent != h {
			merr = multierr.Append(merr, fmt.Errorf("[%s] key %v right child parent link is broken", component, n.key))
		}
		if /* v4 */ check != nil {
			merr = multierr.Append(merr, check(core, h, hs))
		}
	})
	if /* v3 */ count != core.count {
		merr = multierr.Append(merr, fmt.Errorf("[%s] node count %d, actual %d", component, core.count, count))
	}

	/* v1 */
	prev, started := *new(K), false
	// Bounded by the count in case the links form a cycle.
	for h, i := core.first(), int64(0); h != nilHandle && i <= core.count; h, i = core.next(h), i+1 {
		key := core.node(h).key
		if started && core.cmp(prev, key) >= 0 {
			merr = multierr.Append(merr, fmt.Errorf("[%s] key %v is not ordered after %v", component, key, prev))
		}
		prev, started = key, true
	}

	if merr == nil {
		return nil
	}
	err := infra.WrapErrorStack(merr, fmt.Sprintf("[%s] validate", component))
	if core.logger != nil {
		core.logger.ErrorStack(err, "tree invariants violated")
	}
	return err
}
