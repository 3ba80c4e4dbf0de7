package crcdriver

import (
	"github.com/chronos-tachyon/assert"
)

// DefaultMaxClients is the number of client records a Driver holds unless
// WithMaxClients says otherwise.
const DefaultMaxClients = 64

// Option represents a configuration option for Driver.
type Option func(*options)

type options struct {
	maxClients uint
	tracers    []Tracer
}

func (o *options) reset() {
	*o = options{
		maxClients: DefaultMaxClients,
		tracers:    nil,
	}
}

func (o *options) apply(opts []Option) {
	for _, opt := range opts {
		opt(o)
	}
}

// WithMaxClients specifies the maximum number of live client records.  Zero
// removes the limit.
func WithMaxClients(n uint) Option {
	return func(o *options) { o.maxClients = n }
}

// WithTracers specifies the list of Tracer instances which will receive
// Events as the Driver arbitrates.  Completely replaces any previous list.
func WithTracers(tracers ...Tracer) Option {
	for _, tr := range tracers {
		assert.NotNil(&tr)
	}
	if len(tracers) == 0 {
		tracers = nil
	} else {
		tmp := make([]Tracer, len(tracers))
		copy(tmp, tracers)
		tracers = tmp
	}
	return func(o *options) { o.tracers = tracers }
}
