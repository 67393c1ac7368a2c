package irrigator_test

import (
	"bytes"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contribsys/irrigator"
	"github.com/contribsys/irrigator/region"
	"github.com/contribsys/irrigator/util"
)

type job struct {
	id       int
	priority int
}

var byPriority = region.NewPriorityFn("priority", func(j job) int { return j.priority })

func newRegion(rank int, priorities ...int) *region.Region[job] {
	r := region.New(byPriority, region.Min, region.Skew, rank)
	for i, p := range priorities {
		r.Insert(job{id: rank*1000 + i, priority: p})
	}
	return r
}

func quietLogger(t *testing.T) (util.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l, err := util.NewLogger("debug", &util.LogHandler{Writer: &buf, Plain: true})
	require.NoError(t, err)
	return l, &buf
}

func newIrrigator(t *testing.T, capacity int, opts ...irrigator.Option) *irrigator.Irrigator[job] {
	t.Helper()
	l, _ := quietLogger(t)
	irr, err := irrigator.New[job](capacity, append([]irrigator.Option{irrigator.WithLogger(l)}, opts...)...)
	require.NoError(t, err)
	return irr
}

func TestNewInvalidCapacity(t *testing.T) {
	t.Parallel()

	for _, capacity := range []int{0, -3} {
		irr, err := irrigator.New[job](capacity)
		assert.ErrorIs(t, err, irrigator.ErrInvalidCapacity)
		assert.Nil(t, irr)
	}

	_, err := irrigator.New[job](3, irrigator.WithReservedSlots(4))
	assert.ErrorIs(t, err, irrigator.ErrInvalidCapacity)
}

func TestNextRegionByRank(t *testing.T) {
	t.Parallel()

	irr := newIrrigator(t, 5)
	for _, rank := range []int{30, 10, 20, 5} {
		assert.True(t, irr.AddRegion(newRegion(rank)))
	}
	assert.Equal(t, 4, irr.Len())

	// one slot of the nominal capacity is held back
	assert.Equal(t, 4, irr.Cap())
	assert.False(t, irr.AddRegion(newRegion(1)))

	for _, want := range []int{5, 10, 20, 30} {
		r, ok := irr.NextRegion()
		require.True(t, ok)
		assert.Equal(t, want, r.Rank())
	}
	_, ok := irr.NextRegion()
	assert.False(t, ok)
}

func TestReservedSlots(t *testing.T) {
	t.Parallel()

	irr := newIrrigator(t, 2, irrigator.WithReservedSlots(0))
	assert.Equal(t, 2, irr.Cap())
	assert.True(t, irr.AddRegion(newRegion(1)))
	assert.True(t, irr.AddRegion(newRegion(2)))
	assert.False(t, irr.AddRegion(newRegion(3)))

	tiny := newIrrigator(t, 1)
	assert.Equal(t, 0, tiny.Cap())
	assert.False(t, tiny.AddRegion(newRegion(1)))
}

func TestAddRegionCopies(t *testing.T) {
	t.Parallel()

	irr := newIrrigator(t, 4)
	original := newRegion(7, 3, 1, 2)
	require.True(t, irr.AddRegion(original))

	_, err := original.Next()
	require.NoError(t, err)
	original.Insert(job{priority: 99})
	assert.Equal(t, 3, original.Len())

	stored, ok := irr.NextRegion()
	require.True(t, ok)
	assert.NotSame(t, original, stored)
	assert.Equal(t, 3, stored.Len())

	top, err := stored.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, top.priority)
}

func TestNthRegion(t *testing.T) {
	t.Parallel()

	irr := newIrrigator(t, 10)
	for _, rank := range []int{40, 10, 50, 30, 20} {
		require.True(t, irr.AddRegion(newRegion(rank, 1)))
	}

	_, ok := irr.NthRegion(0)
	assert.False(t, ok)
	_, ok = irr.NthRegion(6)
	assert.False(t, ok)
	assert.Equal(t, 5, irr.Len())

	second, ok := irr.NthRegion(2)
	require.True(t, ok)
	assert.Equal(t, 20, second.Rank())
	assert.Equal(t, 4, irr.Len())

	last, ok := irr.NthRegion(4)
	require.True(t, ok)
	assert.Equal(t, 50, last.Rank())

	assert.Equal(t, []int{10, 30, 40}, drainRanks(irr))
}

func TestSetPriorityFn(t *testing.T) {
	t.Parallel()

	irr := newIrrigator(t, 5)
	require.True(t, irr.AddRegion(newRegion(10, 5, 8, 2)))
	require.True(t, irr.AddRegion(newRegion(20, 4)))

	assert.False(t, irr.SetPriorityFn(byPriority, region.Max, 3))
	assert.True(t, irr.SetPriorityFn(byPriority, region.Max, 1))
	assert.Equal(t, 2, irr.Len())

	r, ok := irr.NextRegion()
	require.True(t, ok)
	assert.Equal(t, 10, r.Rank())
	assert.Equal(t, region.Max, r.Polarity())
	assert.Equal(t, 3, r.Len())

	top, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, 8, top.priority)
}

func TestSetStructure(t *testing.T) {
	t.Parallel()

	irr := newIrrigator(t, 5)
	require.True(t, irr.AddRegion(newRegion(10, 1)))
	require.True(t, irr.AddRegion(newRegion(20, 9, 7, 8)))

	assert.False(t, irr.SetStructure(region.Leftist, 0))
	assert.True(t, irr.SetStructure(region.Leftist, 2))

	assert.Equal(t, []int{10, 20}, drainRanks(irr))
}

func TestSetStructureInvalidEmptiesRegion(t *testing.T) {
	t.Parallel()

	irr := newIrrigator(t, 5)
	require.True(t, irr.AddRegion(newRegion(10, 1, 2)))
	require.True(t, irr.AddRegion(newRegion(20, 3)))

	assert.True(t, irr.SetStructure(region.StructureUnset, 1))
	assert.Equal(t, 2, irr.Len())

	// the cleared region is skipped and dropped
	item, ok := irr.NextItem()
	require.True(t, ok)
	assert.Equal(t, 3, item.priority)
	assert.Equal(t, 0, irr.Len())
}

func TestNextItem(t *testing.T) {
	t.Parallel()

	l, buf := quietLogger(t)
	irr, err := irrigator.New[job](6, irrigator.WithLogger(l))
	require.NoError(t, err)

	require.True(t, irr.AddRegion(newRegion(5)))
	require.True(t, irr.AddRegion(newRegion(10, 7, 3)))
	require.True(t, irr.AddRegion(newRegion(2)))
	require.True(t, irr.AddRegion(newRegion(20, 1)))

	var got []int
	for {
		item, ok := irr.NextItem()
		if !ok {
			break
		}
		got = append(got, item.priority)
	}

	assert.Equal(t, []int{3, 7, 1}, got)
	assert.Equal(t, 0, irr.Len())
	assert.Contains(t, buf.String(), "Dropping exhausted region 2")
	assert.Contains(t, buf.String(), "Dropping exhausted region 5")

	_, ok := irr.NextItem()
	assert.False(t, ok)
}

func TestNextItemEmptyIrrigator(t *testing.T) {
	t.Parallel()

	irr := newIrrigator(t, 3)
	_, ok := irr.NextItem()
	assert.False(t, ok)

	require.True(t, irr.AddRegion(newRegion(1)))
	_, ok = irr.NextItem()
	assert.False(t, ok)
	assert.Equal(t, 0, irr.Len())
}

func TestDump(t *testing.T) {
	t.Parallel()

	irr := newIrrigator(t, 5)
	assert.Equal(t, "", irr.Dump())
	for _, rank := range []int{30, 10, 20} {
		irr.AddRegion(newRegion(rank))
	}
	assert.Equal(t, "((30)10(20))", irr.Dump())
}

func TestRandomRanks(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	irr := newIrrigator(t, 200)

	ranks := make([]int, 0, 150)
	for i := 0; i < 150; i++ {
		rank := rng.Intn(500) + 1
		ranks = append(ranks, rank)
		require.True(t, irr.AddRegion(newRegion(rank, rng.Intn(50)+1)))
	}
	sort.Ints(ranks)

	third, ok := irr.NthRegion(3)
	require.True(t, ok)
	assert.Equal(t, ranks[2], third.Rank())
	ranks = append(ranks[:2], ranks[3:]...)

	assert.Equal(t, ranks, drainRanks(irr))
}

func drainRanks(irr *irrigator.Irrigator[job]) []int {
	var out []int
	for {
		r, ok := irr.NextRegion()
		if !ok {
			return out
		}
		out = append(out, r.Rank())
	}
}
