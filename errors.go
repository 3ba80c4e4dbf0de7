package crcdriver

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownClient is returned when a client record cannot be found,
	// typically because the client has terminated.
	ErrUnknownClient = errors.New("unknown client")

	// ErrOutOfMemory is returned when a new client record cannot be
	// allocated.
	ErrOutOfMemory = errors.New("client record allocation failed")

	// ErrInvalidAlgorithm is returned when a client names an unrecognized
	// algorithm selector.
	ErrInvalidAlgorithm = errors.New("unrecognized algorithm selector")

	// ErrBusy is returned when a client already has an outstanding
	// request.
	ErrBusy = errors.New("request already outstanding")

	// ErrNotRegistered is returned when a client requests a computation
	// before registering both a buffer and a callback.
	ErrNotRegistered = errors.New("buffer or callback not registered")

	// ErrNotSupported is returned for unrecognized command or slot numbers.
	ErrNotSupported = errors.New("not supported")
)

// StatusError wraps a non-success Status as an error.
type StatusError struct {
	Status Status
}

// Error fulfills the error interface.
func (err StatusError) Error() string {
	return fmt.Sprintf("status %s (%d)", err.Status, err.Status.Code())
}

var _ error = StatusError{}

// SyscallError is returned by the Driver's client-facing methods.  Status is
// the outcome the client process observes; Err is the underlying cause.
type SyscallError struct {
	Op     string
	Client ClientID
	Status Status
	Err    error
}

// Error fulfills the error interface.
func (err SyscallError) Error() string {
	return fmt.Sprintf("%s: client %d: %v [%s]", err.Op, uint32(err.Client), err.Err, err.Status)
}

// Unwrap returns the underlying cause.
func (err SyscallError) Unwrap() error {
	return err.Err
}

var _ error = SyscallError{}

// StatusOf returns the Status a client observes for err.  A nil error is
// SuccessStatus.
func StatusOf(err error) Status {
	if err == nil {
		return SuccessStatus
	}

	var se SyscallError
	if errors.As(err, &se) {
		return se.Status
	}

	var ste StatusError
	if errors.As(err, &ste) {
		return ste.Status
	}

	return statusForCause(err)
}

func statusForCause(err error) Status {
	switch {
	case errors.Is(err, ErrOutOfMemory):
		return NoMemStatus
	case errors.Is(err, ErrUnknownClient):
		return InvalidStatus
	case errors.Is(err, ErrInvalidAlgorithm):
		return InvalidStatus
	case errors.Is(err, ErrNotRegistered):
		return InvalidStatus
	case errors.Is(err, ErrBusy):
		return BusyStatus
	case errors.Is(err, ErrNotSupported):
		return NoSupportStatus
	default:
		return FailStatus
	}
}

func syscallError(op string, id ClientID, err error) error {
	if err == nil {
		return nil
	}
	return SyscallError{
		Op:     op,
		Client: id,
		Status: statusForCause(err),
		Err:    err,
	}
}
