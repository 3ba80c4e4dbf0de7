package crcdriver

import (
	"fmt"

	"github.com/chronos-tachyon/enumhelper"
)

// EventType indicates the type of an Event.
type EventType byte

const (
	// RequestEvent indicates that a client's computation request was
	// accepted and recorded as pending.
	RequestEvent EventType = iota

	// StartEvent indicates that the unit accepted a pending request and
	// the client now owns the unit.
	StartEvent

	// RejectEvent indicates that the unit refused to start a pending
	// request.  The client has been notified and its request dropped.
	RejectEvent

	// CompleteEvent indicates that a result was routed to the owning
	// client.
	CompleteEvent

	// OrphanEvent indicates that a result arrived while no client owned
	// the unit.  The result was discarded.
	OrphanEvent

	// DiscardEvent indicates that a result arrived for a client that no
	// longer exists.  The result was discarded.
	DiscardEvent

	// IdleEvent indicates that a scan found no eligible request and the
	// unit was powered down.
	IdleEvent

	// TerminateEvent indicates that a client's record was destroyed.
	TerminateEvent
)

var eventTypeData = []enumhelper.EnumData{
	{GoName: "RequestEvent", Name: "request"},
	{GoName: "StartEvent", Name: "start"},
	{GoName: "RejectEvent", Name: "reject"},
	{GoName: "CompleteEvent", Name: "complete"},
	{GoName: "OrphanEvent", Name: "orphan"},
	{GoName: "DiscardEvent", Name: "discard"},
	{GoName: "IdleEvent", Name: "idle"},
	{GoName: "TerminateEvent", Name: "terminate"},
}

// GoString returns the Go string representation of this EventType constant.
func (e EventType) GoString() string {
	return enumhelper.DereferenceEnumData("EventType", eventTypeData, uint(e)).GoName
}

// String returns the string representation of this EventType constant.
func (e EventType) String() string {
	return enumhelper.DereferenceEnumData("EventType", eventTypeData, uint(e)).Name
}

// MarshalJSON returns the JSON representation of this EventType constant.
func (e EventType) MarshalJSON() ([]byte, error) {
	return enumhelper.MarshalEnumToJSON("EventType", eventTypeData, uint(e))
}

var _ fmt.GoStringer = EventType(0)
var _ fmt.Stringer = EventType(0)
