package crcdriver

import (
	"testing"
)

type fakeStart struct {
	buf []byte
	alg Algorithm
}

// fakeEngine is a scripted Engine.  Compute consumes one entry of statuses
// per call (SuccessStatus once they run out) and fails the test if a second
// computation is started while one is in flight.
type fakeEngine struct {
	t        *testing.T
	statuses []Status
	starts   []fakeStart
	inFlight int
	disables int
	version  uint32
}

func newFakeEngine(t *testing.T, statuses ...Status) *fakeEngine {
	return &fakeEngine{t: t, statuses: statuses, version: 0x202}
}

func (e *fakeEngine) Compute(buf []byte, alg Algorithm) Status {
	status := SuccessStatus
	if len(e.statuses) != 0 {
		status = e.statuses[0]
		e.statuses = e.statuses[1:]
	}
	e.starts = append(e.starts, fakeStart{buf: buf, alg: alg})
	if status == SuccessStatus {
		if e.inFlight != 0 {
			e.t.Errorf("Compute accepted with %d computation(s) already in flight", e.inFlight)
		}
		e.inFlight++
	}
	return status
}

func (e *fakeEngine) Version() uint32 { return e.version }

func (e *fakeEngine) Disable() { e.disables++ }

// finish completes the computation in flight and routes result to d.
func (e *fakeEngine) finish(d *Driver, result uint32) {
	if e.inFlight == 0 {
		e.t.Errorf("finish called with no computation in flight")
	} else {
		e.inFlight--
	}
	d.ReceiveResult(result)
}

var _ Engine = (*fakeEngine)(nil)

type upcallRecord struct {
	status Status
	result uint
	arg    uint
}

// recorder is a Callback that remembers every upcall.
type recorder struct {
	calls []upcallRecord
}

func (r *recorder) Schedule(status Status, result uint, arg uint) {
	r.calls = append(r.calls, upcallRecord{status: status, result: result, arg: arg})
}

var _ Callback = (*recorder)(nil)

// register gives id a buffer and a fresh recorder.
func register(t *testing.T, d *Driver, id ClientID, buf []byte) *recorder {
	t.Helper()
	r := new(recorder)
	if err := d.Subscribe(id, 0, r); err != nil {
		t.Fatalf("Subscribe(%d) failed: %v", uint32(id), err)
	}
	if err := d.Allow(id, 0, buf); err != nil {
		t.Fatalf("Allow(%d) failed: %v", uint32(id), err)
	}
	return r
}

func submit(t *testing.T, d *Driver, id ClientID, alg Algorithm) {
	t.Helper()
	if _, err := d.Command(id, ComputeCommand, alg.Selector()); err != nil {
		t.Fatalf("Command(%d, compute, %v) failed: %v", uint32(id), alg, err)
	}
}
