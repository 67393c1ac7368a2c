package region

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyRegion         = errors.New("region is empty")
	ErrIncompatibleRegions = errors.New("regions are incompatible")
)

// Polarity selects whether the lowest or the highest priority item surfaces
// at the top of a Region.
type Polarity int

const (
	PolarityUnset Polarity = iota
	Min
	Max
)

func (p Polarity) String() string {
	switch p {
	case Min:
		return "min"
	case Max:
		return "max"
	default:
		return "unset"
	}
}

func (p Polarity) valid() bool {
	return p == Min || p == Max
}

// ParsePolarity accepts "min" or "max".
func ParsePolarity(s string) (Polarity, error) {
	switch s {
	case "min", "minheap":
		return Min, nil
	case "max", "maxheap":
		return Max, nil
	}
	return PolarityUnset, fmt.Errorf("Invalid polarity: %q", s)
}

// Structure is the balancing discipline applied on every merge step.
type Structure int

const (
	StructureUnset Structure = iota
	Skew
	Leftist
)

func (s Structure) String() string {
	switch s {
	case Skew:
		return "skew"
	case Leftist:
		return "leftist"
	default:
		return "unset"
	}
}

func (s Structure) valid() bool {
	return s == Skew || s == Leftist
}

// ParseStructure accepts "skew" or "leftist".
func ParseStructure(s string) (Structure, error) {
	switch s {
	case "skew":
		return Skew, nil
	case "leftist":
		return Leftist, nil
	}
	return StructureUnset, fmt.Errorf("Invalid structure: %q", s)
}

/*
PriorityFn maps an item to its scheduling priority. A value <= 0 marks the
item as unschedulable under this function.

Regions hold a shared reference to a PriorityFn and two regions are only
compatible when they point at the very same PriorityFn, never when two
functions merely behave alike.
*/
type PriorityFn[T any] struct {
	name string
	fn   func(T) int
}

func NewPriorityFn[T any](name string, fn func(T) int) *PriorityFn[T] {
	if fn == nil {
		return nil
	}
	return &PriorityFn[T]{name: name, fn: fn}
}

func (p *PriorityFn[T]) Name() string {
	return p.name
}

func (p *PriorityFn[T]) Priority(item T) int {
	return p.fn(item)
}

func (p *PriorityFn[T]) String() string {
	return p.name
}
