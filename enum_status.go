package crcdriver

import (
	"fmt"

	"github.com/chronos-tachyon/enumhelper"
)

// Status is the outcome reported to a client's callback, and the immediate
// outcome of asking an Engine to start a computation.
type Status byte

const (
	// SuccessStatus indicates that the operation succeeded.
	SuccessStatus Status = iota

	// FailStatus indicates a generic failure.
	FailStatus

	// BusyStatus indicates that the client or the unit already has work
	// outstanding.
	BusyStatus

	// InvalidStatus indicates an invalid argument, or a request made
	// before the buffer and callback were registered.
	InvalidStatus

	// SizeStatus indicates that the buffer is too large for the unit.
	SizeStatus

	// NoSupportStatus indicates an unrecognized command or slot number.
	NoSupportStatus

	// NoMemStatus indicates that no client record could be allocated.
	NoMemStatus
)

var statusData = []enumhelper.EnumData{
	{GoName: "SuccessStatus", Name: "success"},
	{GoName: "FailStatus", Name: "fail"},
	{GoName: "BusyStatus", Name: "busy"},
	{GoName: "InvalidStatus", Name: "invalid"},
	{GoName: "SizeStatus", Name: "size"},
	{GoName: "NoSupportStatus", Name: "nosupport"},
	{GoName: "NoMemStatus", Name: "nomem"},
}

var statusCodes = [...]int{
	SuccessStatus:   0,
	FailStatus:      -1,
	BusyStatus:      -2,
	InvalidStatus:   -6,
	SizeStatus:      -7,
	NoSupportStatus: -10,
	NoMemStatus:     -9,
}

// IsValid returns true if s is a valid Status constant.
func (s Status) IsValid() bool {
	return s >= SuccessStatus && s <= NoMemStatus
}

// Code returns the kernel return code for s, as seen by client processes.
// Zero is success and failures are negative.
func (s Status) Code() int {
	if !s.IsValid() {
		return statusCodes[FailStatus]
	}
	return statusCodes[s]
}

// Err returns nil for SuccessStatus and a StatusError for anything else.
func (s Status) Err() error {
	if s == SuccessStatus {
		return nil
	}
	return StatusError{Status: s}
}

// GoString returns the Go string representation of this Status constant.
func (s Status) GoString() string {
	if !s.IsValid() {
		return fmt.Sprintf("Status(%d)", uint(s))
	}
	return enumhelper.DereferenceEnumData("Status", statusData, uint(s)).GoName
}

// String returns the string representation of this Status constant.
func (s Status) String() string {
	if !s.IsValid() {
		return fmt.Sprintf("%d", uint(s))
	}
	return enumhelper.DereferenceEnumData("Status", statusData, uint(s)).Name
}

// MarshalJSON returns the JSON representation of this Status constant.
func (s Status) MarshalJSON() ([]byte, error) {
	if !s.IsValid() {
		return []byte(s.String()), nil
	}
	return enumhelper.MarshalEnumToJSON("Status", statusData, uint(s))
}

var _ fmt.GoStringer = Status(0)
var _ fmt.Stringer = Status(0)
