/*
Package irrigator schedules work across many regions, each one a mergeable
priority heap of items. The Irrigator is a fixed-capacity binary min-heap of
regions ordered by rank; serving an item always pulls from the lowest-ranked
region that still holds something.
*/
package irrigator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/contribsys/irrigator/region"
	"github.com/contribsys/irrigator/util"
)

var (
	Name    = "Irrigator"
	Version = "0.1.0"
)

var ErrInvalidCapacity = errors.New("capacity must be positive")

// The array is 1-indexed: slot 0 is never used, the parent of slot i is i/2
// and its children are 2i and 2i+1.
const rootIndex = 1

type Irrigator[T any] struct {
	regions  []*region.Region[T]
	count    int
	capacity int
	usable   int

	logger util.Logger
}

/*
New creates an Irrigator able to hold capacity regions, less the reserved
headroom (see [ReservedSlots]).
*/
func New[T any](capacity int, opts ...Option) (*Irrigator[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}

	o := &Options{ReservedSlots: ReservedSlots}
	for _, opt := range opts {
		opt(o)
	}
	if o.Logger == nil {
		o.Logger = util.Log()
	}
	if o.ReservedSlots < 0 || o.ReservedSlots > capacity {
		return nil, fmt.Errorf("%w: %d reserved of %d", ErrInvalidCapacity, o.ReservedSlots, capacity)
	}

	return &Irrigator[T]{
		regions:  make([]*region.Region[T], capacity+1),
		capacity: capacity,
		usable:   capacity - o.ReservedSlots,
		logger:   o.Logger,
	}, nil
}

// Len returns the number of regions currently held.
func (irr *Irrigator[T]) Len() int {
	return irr.count
}

// Cap returns how many regions can be held at once.
func (irr *Irrigator[T]) Cap() int {
	return irr.usable
}

/*
AddRegion admits a deep copy of r, leaving the caller's region untouched and
independently owned. It returns false when the irrigator is full.
*/
func (irr *Irrigator[T]) AddRegion(r *region.Region[T]) bool {
	if irr.count >= irr.usable {
		irr.logger.Debugf("Irrigator full, rejecting region %d", r.Rank())
		return false
	}
	irr.push(r.Clone())
	return true
}

/*
NextRegion removes and returns the region with the lowest rank. Ownership of
the returned region passes to the caller.
*/
func (irr *Irrigator[T]) NextRegion() (*region.Region[T], bool) {
	if irr.count == 0 {
		return nil, false
	}

	top := irr.regions[rootIndex]
	irr.regions[rootIndex] = irr.regions[irr.count]
	irr.regions[irr.count] = nil
	irr.count--
	irr.down(rootIndex)

	return top, true
}

/*
NthRegion removes and returns the region that ranks n-th lowest (1-based).
The n-1 regions popped ahead of it are put back, so the remaining regions stay
in heap order. Costs O(n log C).
*/
func (irr *Irrigator[T]) NthRegion(n int) (*region.Region[T], bool) {
	if n <= 0 || n > irr.count {
		return nil, false
	}

	ahead := make([]*region.Region[T], 0, n-1)
	var nth *region.Region[T]
	for i := 1; i <= n; i++ {
		r, _ := irr.NextRegion()
		if i == n {
			nth = r
		} else {
			ahead = append(ahead, r)
		}
	}

	for _, r := range ahead {
		irr.push(r)
	}
	return nth, true
}

/*
SetPriorityFn swaps the priority function and polarity of the n-th ranked
region, rebuilding its tree. The region keeps its rank and is re-admitted.
*/
func (irr *Irrigator[T]) SetPriorityFn(prio *region.PriorityFn[T], polarity region.Polarity, n int) bool {
	target, ok := irr.NthRegion(n)
	if !ok {
		return false
	}

	target.SetPriorityFn(prio, polarity)
	irr.logger.Debugf("Region %d now ordered by %v (%s)", target.Rank(), prio, polarity)
	irr.push(target)
	return true
}

// SetStructure switches the balancing discipline of the n-th ranked region.
func (irr *Irrigator[T]) SetStructure(structure region.Structure, n int) bool {
	target, ok := irr.NthRegion(n)
	if !ok {
		return false
	}

	target.SetStructure(structure)
	irr.logger.Debugf("Region %d now %s", target.Rank(), structure)
	irr.push(target)
	return true
}

/*
NextItem serves one item from the lowest-ranked region that has any. Empty
regions met on the way are dropped for good. The serving region goes back in
only while it still has items. Returns false once no region has anything
left.
*/
func (irr *Irrigator[T]) NextItem() (T, bool) {
	var zero T

	for {
		top, ok := irr.NextRegion()
		if !ok {
			return zero, false
		}

		if top.Len() == 0 {
			irr.logger.Debugf("Dropping exhausted region %d", top.Rank())
			continue
		}

		item, err := top.Next()
		if err != nil {
			irr.logger.WithError(err).Warnf("Region %d reported items it did not have", top.Rank())
			continue
		}
		if top.Len() > 0 {
			irr.push(top)
		}
		return item, true
	}
}

// Dump renders the rank tree in-order, e.g. "((30)10(20))".
func (irr *Irrigator[T]) Dump() string {
	var sb strings.Builder
	irr.dump(&sb, rootIndex)
	return sb.String()
}

func (irr *Irrigator[T]) dump(sb *strings.Builder, index int) {
	if index > irr.count {
		return
	}
	sb.WriteByte('(')
	irr.dump(sb, index*2)
	sb.WriteString(strconv.Itoa(irr.regions[index].Rank()))
	irr.dump(sb, index*2+1)
	sb.WriteByte(')')
}

// ====== Helper functions =======

// push places an owned region in the next free slot and sifts it up. The
// caller has already checked capacity.
func (irr *Irrigator[T]) push(r *region.Region[T]) {
	irr.count++
	irr.regions[irr.count] = r
	irr.up(irr.count)
}

func (irr *Irrigator[T]) less(i, j int) bool {
	return irr.regions[i].Rank() < irr.regions[j].Rank()
}

func (irr *Irrigator[T]) swap(i, j int) {
	irr.regions[i], irr.regions[j] = irr.regions[j], irr.regions[i]
}

func (irr *Irrigator[T]) up(i int) {
	for i > rootIndex {
		parent := i / 2
		if !irr.less(i, parent) {
			break
		}
		irr.swap(i, parent)
		i = parent
	}
}

func (irr *Irrigator[T]) down(i int) {
	for {
		left := 2 * i
		right := left + 1
		smallest := i

		if left <= irr.count && irr.less(left, smallest) {
			smallest = left
		}
		if right <= irr.count && irr.less(right, smallest) {
			smallest = right
		}
		if smallest == i {
			return
		}
		irr.swap(i, smallest)
		i = smallest
	}
}
