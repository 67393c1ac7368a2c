package region

import (
	"fmt"
	"strings"
)

/*
Dump renders the tree in-order with parentheses around every subtree, e.g.

	Region 10: => ((12)7(9))

Each node shows its priority; Leftist regions also show the node's npl as
"priority:npl".
*/
func (r *Region[T]) Dump() string {
	if r.size == 0 {
		return "Empty heap."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Region %d: => ", r.rank)
	r.dump(&sb, r.root)
	return sb.String()
}

func (r *Region[T]) String() string {
	return r.Dump()
}

func (r *Region[T]) dump(sb *strings.Builder, n *node[T]) {
	if n == nil {
		return
	}
	sb.WriteByte('(')
	r.dump(sb, n.left)
	if r.structure == Leftist {
		fmt.Fprintf(sb, "%d:%d", r.prio.Priority(n.item), n.npl)
	} else {
		fmt.Fprintf(sb, "%d", r.prio.Priority(n.item))
	}
	r.dump(sb, n.right)
	sb.WriteByte(')')
}
