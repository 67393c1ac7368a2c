package irrigator

import "github.com/contribsys/irrigator/util"

// ReservedSlots is how many of the nominal capacity's slots are held back as
// headroom by default. An irrigator built with capacity C admits C-1 regions.
const ReservedSlots = 1

// Options holds configuration options for the [Irrigator].
type Options struct {
	ReservedSlots int
	Logger        util.Logger
}

// Option is a function that configures [Options].
type Option func(*Options)

// WithReservedSlots sets how many slots of the capacity are never filled.
// Zero makes the whole nominal capacity usable.
func WithReservedSlots(n int) Option {
	return func(o *Options) {
		o.ReservedSlots = n
	}
}

// WithLogger routes the irrigator's debug output to l.
func WithLogger(l util.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}
