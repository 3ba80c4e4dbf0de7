// Package crcdriver gives many untrusted clients shared access to a single
// CRC computation unit.
//
// A client first registers a callback with Subscribe and a buffer with
// Allow, then requests a computation with Command.  Requests are recorded
// per client and started on the unit one at a time; the result is delivered
// later through the client's callback.
//
// The Driver must be registered as the Engine's client:
//
//	d := crcdriver.New(engine)
//	engine.SetClient(d)
//
package crcdriver

import (
	"sync"
)

const (
	opAllow     = "allow"
	opSubscribe = "subscribe"
	opCommand   = "command"
)

// Driver arbitrates a single Engine among many clients.  It is safe for
// concurrent use.
type Driver struct {
	mu      sync.Mutex
	engine  Engine
	store   *Store
	tracers []Tracer

	// if isServing, the unit is computing a CRC for the serving client
	serving   ClientID
	isServing bool

	// upcalls waiting for delivery, in scheduling order; if delivering,
	// some goroutine is draining them
	upcalls    *[]upcall
	delivering bool
}

// New constructs and returns a new Driver for the given Engine.
func New(engine Engine, opts ...Option) *Driver {
	var o options
	o.reset()
	o.apply(opts)

	return &Driver{
		engine:  engine,
		store:   NewStore(o.maxClients),
		tracers: o.tracers,
	}
}

// Allow attaches buf to the client's record, replacing any previous buffer.
// A nil buf removes the buffer.  Only slot 0 is supported.
//
// The unit reads buf while a computation for the client is in flight; the
// client must not modify it until the callback fires.
func (d *Driver) Allow(id ClientID, slot uint, buf []byte) error {
	if slot != 0 {
		return syscallError(opAllow, id, ErrNotSupported)
	}

	d.mu.Lock()
	defer d.unlockAndDeliver()

	err := d.store.Enter(id, func(rec *Record) {
		rec.buffer = buf
	})
	return syscallError(opAllow, id, err)
}

// Subscribe attaches cb to the client's record, replacing any previous
// callback.  A nil cb removes the callback.  Only slot 0 is supported.
//
// The callback is invoked as cb.Schedule(status, result, 0), where status
// reports whether the computation succeeded and result is the raw CRC word
// when it did.  BusyStatus and SizeStatus indicate that the unit refused
// the computation.
//
// Callbacks are invoked without the Driver's lock held and may call back
// into the Driver.  They are invoked one at a time in the order they were
// scheduled, so a callback that blocks delays every later callback.
func (d *Driver) Subscribe(id ClientID, slot uint, cb Callback) error {
	if slot != 0 {
		return syscallError(opSubscribe, id, ErrNotSupported)
	}

	d.mu.Lock()
	defer d.unlockAndDeliver()

	err := d.store.Enter(id, func(rec *Record) {
		rec.callback = cb
	})
	return syscallError(opSubscribe, id, err)
}

// Command runs a driver command on behalf of a client.
//
//   - ProbeCommand returns a non-zero value.
//   - VersionCommand returns the unit's version value.
//   - ComputeCommand requests a CRC over the client's buffer, using the
//     algorithm whose selector is arg.
//
// A successful ComputeCommand means the request is queued; the callback
// fires when it completes.  Each client may have only one request
// outstanding at a time.
func (d *Driver) Command(id ClientID, cmd Command, arg uint) (uint, error) {
	switch cmd {
	case ProbeCommand:
		return 1, nil

	case VersionCommand:
		d.mu.Lock()
		version := d.engine.Version()
		d.mu.Unlock()
		return uint(version), nil

	case ComputeCommand:
		return 0, d.request(id, arg)

	default:
		return 0, syscallError(opCommand, id, ErrNotSupported)
	}
}

// Terminate destroys the record of a client whose process has ended.  A
// computation already running for it is allowed to finish and its result is
// discarded.
func (d *Driver) Terminate(id ClientID) {
	d.mu.Lock()
	defer d.unlockAndDeliver()

	if d.store.Terminate(id) {
		d.emit(Event{Type: TerminateEvent, Client: id})
	}
}

// ReceiveResult fulfills EngineClient.  It routes the unit's result to the
// client that owns the unit and then starts the next pending request.
func (d *Driver) ReceiveResult(result uint32) {
	d.mu.Lock()
	defer d.unlockAndDeliver()

	if !d.isServing {
		d.emit(Event{Type: OrphanEvent, Result: Checksum32(result)})
		return
	}

	id := d.serving
	if rec, err := d.store.Lookup(id); err == nil {
		d.schedule(rec.callback, SuccessStatus, uint(result))
		rec.clearPending()
		d.emit(Event{Type: CompleteEvent, Client: id, Result: Checksum32(result)})
	} else {
		d.emit(Event{Type: DiscardEvent, Client: id, Result: Checksum32(result)})
	}

	d.serving = 0
	d.isServing = false
	d.serveWaitingClients()
}

// Serving returns the client which currently owns the unit, if any.
func (d *Driver) Serving() (ClientID, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.serving, d.isServing
}

// Pending returns the algorithm of the client's outstanding request, if
// any.  Returns ErrUnknownClient if the client has no record.
func (d *Driver) Pending(id ClientID) (Algorithm, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	rec, err := d.store.Lookup(id)
	if err != nil {
		return 0, false, err
	}
	alg, ok := rec.Pending()
	return alg, ok, nil
}

// NumClients returns the number of live client records.
func (d *Driver) NumClients() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.store.Len()
}

func (d *Driver) request(id ClientID, selector uint) error {
	alg, ok := AlgorithmFromSelector(selector)
	if !ok {
		return syscallError(opCommand, id, ErrInvalidAlgorithm)
	}

	d.mu.Lock()
	defer d.unlockAndDeliver()

	var cause error
	err := d.store.Enter(id, func(rec *Record) {
		switch {
		case rec.hasPending:
			// Each client may make only one request at a time
			cause = ErrBusy
		case rec.callback == nil || rec.buffer == nil:
			cause = ErrNotRegistered
		default:
			rec.setPending(alg)
		}
	})
	if err == nil {
		err = cause
	}
	if err != nil {
		return syscallError(opCommand, id, err)
	}

	d.emit(Event{Type: RequestEvent, Client: id, Algorithm: alg})
	d.serveWaitingClients()
	return nil
}

// serveWaitingClients starts the first eligible request in store order.
// Requests the unit refuses are failed back to their clients and the scan
// moves on.  A status outside the Status enum is reported as FailStatus.  If nothing is started, the unit is powered down.
func (d *Driver) serveWaitingClients() {
	if d.isServing {
		return
	}

	found := false
	d.store.Each(func(rec *Record) bool {
		if !rec.eligible() {
			return true
		}

		alg := rec.pending
		buf := rec.buffer
		rec.buffer = nil

		status := d.engine.Compute(buf, alg)
		if !status.IsValid() {
			status = FailStatus
		}

		// Put back taken buffer
		rec.buffer = buf

		if status == SuccessStatus {
			d.serving = rec.id
			d.isServing = true
			found = true
			d.emit(Event{Type: StartEvent, Client: rec.id, Algorithm: alg})
			return false
		}

		d.schedule(rec.callback, status, 0)
		rec.clearPending()
		d.emit(Event{Type: RejectEvent, Client: rec.id, Algorithm: alg, Status: status})
		return true
	})

	if !found {
		d.engine.Disable()
		d.emit(Event{Type: IdleEvent})
	}
}

func (d *Driver) schedule(cb Callback, status Status, result uint) {
	if cb == nil {
		return
	}
	if d.upcalls == nil {
		d.upcalls = takeUpcalls()
	}
	*d.upcalls = append(*d.upcalls, upcall{callback: cb, status: status, result: result})
}

// unlockAndDeliver releases d.mu and delivers pending upcalls.  Only one
// goroutine delivers at a time, so upcalls reach clients in the order they
// were scheduled.  Upcalls scheduled while another goroutine is delivering
// are left for that goroutine, including those scheduled by a callback
// re-entering the Driver.
func (d *Driver) unlockAndDeliver() {
	if d.upcalls == nil || d.delivering {
		d.mu.Unlock()
		return
	}

	d.delivering = true
	finished := false
	defer func() {
		if !finished {
			// a callback panicked; let the next caller resume delivery
			d.mu.Lock()
			d.delivering = false
			d.mu.Unlock()
		}
	}()

	for {
		ptr := d.upcalls
		d.upcalls = nil
		if ptr == nil {
			d.delivering = false
			finished = true
			d.mu.Unlock()
			return
		}
		d.mu.Unlock()

		for _, u := range *ptr {
			u.deliver()
		}
		giveUpcalls(ptr)

		d.mu.Lock()
	}
}

func (d *Driver) emit(event Event) {
	for _, tr := range d.tracers {
		tr.OnEvent(event)
	}
}

var _ EngineClient = (*Driver)(nil)
