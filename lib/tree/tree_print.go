package tree

import (
	"fmt"
	"io"
	"strconv"

	"github.com/benz9527/xtree/lib/infra"
)

// printTree writes the tree sideways, the right subtree above its
// parent and the left subtree below.
//
//	       /------+ 3
//	|------+ 2
//	       \------+ 1
func printTree[K infra.OrderedKey, V any, M any](
	w io.Writer,
	core *bstCore[K, V, M],
	label func(n *xNode[K, V, M]) string,
) error {
	if core.root == nilHandle {
		_, err := io.WriteString(w, "<empty>\n")
		return err
	}
	p := &treePrinter[K, V, M]{w: w, core: core, label: label}
	p.print(core.root, "", Root)
	return p.err
}

type treePrinter[K infra.OrderedKey, V any, M any] struct {
	w     io.Writer
	core  *bstCore[K, V, M]
	label func(n *xNode[K, V, M]) string
	err   error
}

func (p *treePrinter[K, V, M]) print(h handle, prefix string, dir Direction) {
	if p.err != nil || h == nilHandle {
		return
	}
	n := p.core.node(h)
	if n.right != nilHandle {
		t := "       "
		if dir == Left {
			t = "|      "
		}
		p.print(n.right, prefix+t, Right)
	}

	var branch string
	switch dir {
	case Root:
		branch = "|------+ "
	case Left:
		branch = "\\------+ "
	case Right:
		branch = "/------+ "
	default:
	}
	line := fmt.Sprintf("%s%s%v", prefix, branch, n.key)
	if p.label != nil {
		if s := p.label(n); len(s) > 0 {
			line += " " + s
		}
	}
	if _, err := io.WriteString(p.w, line+"\n"); err != nil {
		p.err = err
		return
	}

	if n.left != nilHandle {
		t := "       "
		if dir == Right {
			t = "|      "
		}
		p.print(n.left, prefix+t, Left)
	}
}

func formatBalance(balance int8) string {
	if balance > 0 {
		return "(+" + strconv.Itoa(int(balance)) + ")"
	}
	return "(" + strconv.Itoa(int(balance)) + ")"
}
