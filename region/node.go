package region

/*
node is a single element of a Region's tree. A node exclusively owns its two
children; merge moves ownership around but never lets two parents point at
the same child.
*/
type node[T any] struct {
	item T

	left  *node[T]
	right *node[T]

	// Null path length, only maintained under the Leftist discipline.
	npl int
}

func newNode[T any](item T) *node[T] {
	return &node[T]{item: item}
}

// npl of a missing child is -1, which makes a leaf 0.
func nplOf[T any](n *node[T]) int {
	if n == nil {
		return -1
	}
	return n.npl
}

// detach severs the node from its children and returns them.
func (n *node[T]) detach() (*node[T], *node[T]) {
	left, right := n.left, n.right
	n.left = nil
	n.right = nil
	n.npl = 0
	return left, right
}

func (n *node[T]) swapChildren() {
	n.left, n.right = n.right, n.left
}

// clone deep-copies the subtree rooted at n.
func (n *node[T]) clone() *node[T] {
	if n == nil {
		return nil
	}
	return &node[T]{
		item:  n.item,
		npl:   n.npl,
		left:  n.left.clone(),
		right: n.right.clone(),
	}
}

/*
preorder visits every node of the subtree exactly once, parent before its
children. An explicit stack is used so very deep skew trees can't exhaust the
goroutine stack. Children are read before visit is called, so visit may
rewire the node it is given.
*/
func (n *node[T]) preorder(visit func(*node[T])) {
	if n == nil {
		return
	}
	stack := make([]*node[T], 0, 16)
	stack = append(stack, n)
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		left, right := top.left, top.right
		visit(top)

		if right != nil {
			stack = append(stack, right)
		}
		if left != nil {
			stack = append(stack, left)
		}
	}
}
