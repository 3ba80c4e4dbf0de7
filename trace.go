package crcdriver

import (
	"github.com/rs/zerolog"
)

// Tracer is an interface which callers can implement in order to receive
// Events.  Events describe each transition of the Driver's arbitration
// state.
//
// OnEvent is called with the Driver's lock held and must not call back into
// the Driver.
type Tracer interface {
	OnEvent(Event)
}

// Event is a collection of fields describing one arbitration transition.
// Algorithm is meaningful for RequestEvent, StartEvent and RejectEvent;
// Status for RejectEvent; Result for CompleteEvent, OrphanEvent and
// DiscardEvent.
type Event struct {
	Type      EventType
	Client    ClientID
	Algorithm Algorithm
	Status    Status
	Result    Checksum32
}

// type NoOpTracer {{{

// NoOpTracer is an implementation of Tracer that does nothing.
type NoOpTracer struct{}

// OnEvent fulfills Tracer.
func (NoOpTracer) OnEvent(event Event) {}

var _ Tracer = NoOpTracer{}

// }}}

// type TracerFunc {{{

// TracerFunc is an implementation of Tracer that calls a function.
type TracerFunc func(Event)

// OnEvent fulfills Tracer.
func (tr TracerFunc) OnEvent(event Event) {
	tr(event)
}

var _ Tracer = TracerFunc(nil)

// }}}

// type logTracer {{{

// Log returns a Tracer implementation which will log each Event at Trace
// priority.
func Log(logger zerolog.Logger) Tracer {
	return logTracer{logger: logger}
}

type logTracer struct {
	logger zerolog.Logger
}

// OnEvent fulfills Tracer.
func (tr logTracer) OnEvent(event Event) {
	e := tr.logger.Trace().
		Stringer("type", event.Type).
		Uint32("client", uint32(event.Client))
	switch event.Type {
	case RequestEvent, StartEvent:
		e = e.Stringer("algorithm", event.Algorithm)
	case RejectEvent:
		e = e.Stringer("algorithm", event.Algorithm).
			Stringer("status", event.Status)
	case CompleteEvent, OrphanEvent, DiscardEvent:
		e = e.Stringer("result", event.Result)
	}
	e.Msg("OnEvent")
}

var _ Tracer = logTracer{}

// }}}
