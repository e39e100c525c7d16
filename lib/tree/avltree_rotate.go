package tree

import (
	"go.uber.org/zap"
)

/*
		 |                         |
		 X                         Y
		/ \     leftRotate(X)     / \
	   L   Y    ============>    X   Yr
		  / \                   / \
		Yl   Yr                L   Yl
*/
func (core *bstCore[K, V, M]) leftRotate(x handle) {
	xn := core.node(x)
	y := xn.right
	if x == nilHandle || y == nilHandle {
		// impossible run to here
		panic( /* debug assertion */ "[xtree] left rotate node x is nil or x.right is nil")
	}
	yn := core.node(y)

	p := xn.parent
	core.replaceChild(p, x, y)
	yn.parent = p

	xn.right = yn.left
	if yn.left != nilHandle {
		core.node(yn.left).parent = x
	}
	yn.left = x
	xn.parent = y

	core.stats.IncreaseRotationCount(Left)
	if core.logger != nil {
		core.logger.Debug("[xtree] left rotate", zap.Any("pivot", yn.key), zap.Any("node", xn.key))
	}
}

/*
		   |                         |
		   X                         Y
		  / \     rightRotate(X)    / \
		 Y   R    ============>    Yl  X
		/ \                           / \
	  Yl   Yr                        Yr  R
*/
func (core *bstCore[K, V, M]) rightRotate(x handle) {
	xn := core.node(x)
	y := xn.left
	if x == nilHandle || y == nilHandle {
		// impossible run to here
		panic( /* debug assertion */ "[xtree] right rotate node x is nil or x.left is nil")
	}
	yn := core.node(y)

	p := xn.parent
	core.replaceChild(p, x, y)
	yn.parent = p

	xn.left = yn.right
	if yn.right != nilHandle {
		core.node(yn.right).parent = x
	}
	yn.right = x
	xn.parent = y

	core.stats.IncreaseRotationCount(Right)
	if core.logger != nil {
		core.logger.Debug("[xtree] right rotate", zap.Any("pivot", yn.key), zap.Any("node", xn.key))
	}
}
