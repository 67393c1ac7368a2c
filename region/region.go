/*
Package region implements a mergeable priority heap of work items.

A Region orders its items through an injected PriorityFn under a Min or Max
polarity, and keeps its binary tree balanced with either the Skew or the
Leftist discipline. Every operation (insert, extract, merge, reconfigure) is
built on one two-tree merge primitive.

A Region missing any part of its configuration is inert: it refuses inserts
and always reports itself as empty. The zero value is an inert Region.
*/
package region

import (
	"fmt"
)

type Region[T any] struct {
	root *node[T]
	size int

	prio      *PriorityFn[T]
	polarity  Polarity
	structure Structure

	// Used by the irrigator to order whole regions against each other, it has
	// nothing to do with the priorities of the items inside.
	rank int
}

/*
Create a new Region. An invalid configuration (nil priority function, unset
polarity or structure, rank <= 0) yields an inert Region rather than an error.
*/
func New[T any](prio *PriorityFn[T], polarity Polarity, structure Structure, rank int) *Region[T] {
	if prio == nil || !polarity.valid() || !structure.valid() || rank <= 0 {
		return &Region[T]{}
	}
	return &Region[T]{
		prio:      prio,
		polarity:  polarity,
		structure: structure,
		rank:      rank,
	}
}

// Inert reports whether the region lacks a usable configuration.
func (r *Region[T]) Inert() bool {
	return r.prio == nil || !r.polarity.valid() || !r.structure.valid()
}

func (r *Region[T]) Len() int {
	return r.size
}

func (r *Region[T]) Rank() int {
	return r.rank
}

func (r *Region[T]) PriorityFn() *PriorityFn[T] {
	return r.prio
}

func (r *Region[T]) Polarity() Polarity {
	return r.polarity
}

func (r *Region[T]) Structure() Structure {
	return r.structure
}

/*
Insert adds an item to the region. It returns false, leaving the region
untouched, when the region is inert or the item's priority is not positive.
*/
func (r *Region[T]) Insert(item T) bool {
	if r.Inert() {
		return false
	}
	if r.prio.Priority(item) <= 0 {
		return false
	}

	r.root = r.merge(r.root, newNode(item))
	r.size++
	return true
}

/*
Next removes and returns the top item: the lowest priority under Min, the
highest under Max. The root's two subtrees are merged to form the new root.
*/
func (r *Region[T]) Next() (T, error) {
	if r.size == 0 {
		var zero T
		return zero, ErrEmptyRegion
	}

	top := r.root
	left, right := top.detach()
	r.root = r.merge(left, right)
	r.size--
	return top.item, nil
}

// Peek returns the top item without removing it.
func (r *Region[T]) Peek() (T, error) {
	if r.size == 0 {
		var zero T
		return zero, ErrEmptyRegion
	}
	return r.root.item, nil
}

/*
Merge moves every item of other into r. Afterwards other is empty, though it
keeps its configuration. Merging a region into itself does nothing.

Both regions must share the same PriorityFn, polarity and structure, otherwise
ErrIncompatibleRegions is returned and neither side is modified.
*/
func (r *Region[T]) Merge(other *Region[T]) error {
	if r == other {
		return nil
	}
	if r.prio != other.prio {
		return fmt.Errorf("%w: priority functions differ (%v, %v)", ErrIncompatibleRegions, r.prio, other.prio)
	}
	if r.structure != other.structure {
		return fmt.Errorf("%w: structures differ (%s, %s)", ErrIncompatibleRegions, r.structure, other.structure)
	}
	if r.polarity != other.polarity {
		return fmt.Errorf("%w: polarities differ (%s, %s)", ErrIncompatibleRegions, r.polarity, other.polarity)
	}

	r.root = r.merge(r.root, other.root)
	r.size += other.size

	other.root = nil
	other.size = 0
	return nil
}

/*
SetPriorityFn swaps the priority function and polarity, then rebuilds the tree
from the existing nodes. An invalid argument clears the region to inert.
*/
func (r *Region[T]) SetPriorityFn(prio *PriorityFn[T], polarity Polarity) {
	if prio == nil || !polarity.valid() {
		r.Clear()
		return
	}

	r.prio = prio
	r.polarity = polarity
	r.rebuild()
}

/*
SetStructure switches the balancing discipline, then rebuilds the tree from
the existing nodes. An invalid argument clears the region to inert.
*/
func (r *Region[T]) SetStructure(structure Structure) {
	if !structure.valid() {
		r.Clear()
		return
	}

	r.structure = structure
	r.rebuild()
}

// Clear drops every item and leaves the region inert. The rank is kept.
func (r *Region[T]) Clear() {
	r.root = nil
	r.size = 0
	r.prio = nil
	r.polarity = PolarityUnset
	r.structure = StructureUnset
}

// Clone returns a deep copy sharing no nodes with r.
func (r *Region[T]) Clone() *Region[T] {
	return &Region[T]{
		root:      r.root.clone(),
		size:      r.size,
		prio:      r.prio,
		polarity:  r.polarity,
		structure: r.structure,
		rank:      r.rank,
	}
}

// Items returns the region's items in pre-order, top item first.
func (r *Region[T]) Items() []T {
	items := make([]T, 0, r.size)
	r.root.preorder(func(n *node[T]) {
		items = append(items, n.item)
	})
	return items
}

// ====== Helper functions =======

/*
rebuild re-merges every node of the current tree, one singleton at a time,
under the current configuration. Nodes are reused, so item identities and the
count survive untouched.
*/
func (r *Region[T]) rebuild() {
	old := r.root
	r.root = nil
	r.size = 0

	old.preorder(func(n *node[T]) {
		n.detach()
		r.root = r.merge(r.root, n)
		r.size++
	})
}

// before reports whether a must sit above b under the region's polarity.
func (r *Region[T]) before(a, b *node[T]) bool {
	pa, pb := r.prio.Priority(a.item), r.prio.Priority(b.item)
	if r.polarity == Max {
		return pa >= pb
	}
	return pa <= pb
}

/*
merge is the two-tree merge primitive every operation is built on:
    1. An empty side yields the other side.
    2. The root that wins under the polarity becomes h1.
    3. h1's right subtree is merged with h2.
    4. Skew: h1's children are swapped unconditionally.
       Leftist: h1's children are swapped if npl(left) < npl(right) and h1's
       npl is recomputed.
*/
func (r *Region[T]) merge(h1, h2 *node[T]) *node[T] {
	if h1 == nil {
		return h2
	}
	if h2 == nil {
		return h1
	}

	if !r.before(h1, h2) {
		h1, h2 = h2, h1
	}

	h1.right = r.merge(h1.right, h2)

	switch r.structure {
	case Skew:
		h1.swapChildren()
	case Leftist:
		if nplOf(h1.left) < nplOf(h1.right) {
			h1.swapChildren()
		}
		h1.npl = 1 + min(nplOf(h1.left), nplOf(h1.right))
	}

	return h1
}
