package tree

// BinaryNode is a plain pointer-linked binary tree node.
type BinaryNode[T comparable] struct {
	Val   T
	Left  *BinaryNode[T]
	Right *BinaryNode[T]
}

// EqualPaths reports whether every root-to-leaf path has the same
// number of nodes. A leaf has no children, a node with one child is
// not an end of path. The empty tree is trivially true.
func EqualPaths[T comparable](root *BinaryNode[T]) bool {
	if root == nil {
		return true
	}

	type frame struct {
		node  *BinaryNode[T]
		depth int
	}
	stack := make([]frame, 0, 32)
	defer func() {
		clear(stack)
	}()
	stack = append(stack, frame{node: root, depth: 1})

	leafDepth := -1
	for size := len(stack); size > 0; size = len(stack) {
		top := stack[size-1]
		stack = stack[:size-1]
		n := top.node
		if n.Left == nil && n.Right == nil {
			if leafDepth < 0 {
				leafDepth = top.depth
			} else if leafDepth != top.depth {
				return false
			}
			continue
		}
		if n.Right != nil {
			stack = append(stack, frame{node: n.Right, depth: top.depth + 1})
		}
		if n.Left != nil {
			stack = append(stack, frame{node: n.Left, depth: top.depth + 1})
		}
	}
	return true
}
