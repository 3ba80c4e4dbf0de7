package crcdriver

// ClientID identifies one client process.  Identities are stable for the
// lifetime of the process and are never reused after termination.
type ClientID uint32

// Callback receives upcalls from the Driver.  Schedule is invoked with the
// Status of a computation, the raw result word (meaningful only on
// success), and a third argument which is always zero.
type Callback interface {
	Schedule(status Status, result uint, arg uint)
}

// type CallbackFunc {{{

// CallbackFunc is an implementation of Callback that calls a function.
type CallbackFunc func(status Status, result uint, arg uint)

// Schedule fulfills Callback.
func (fn CallbackFunc) Schedule(status Status, result uint, arg uint) {
	fn(status, result, arg)
}

var _ Callback = CallbackFunc(nil)

// }}}

// Record holds one client's registrations and its outstanding request.
type Record struct {
	id       ClientID
	callback Callback
	buffer   []byte

	// if hasPending, the client is awaiting the result of a CRC using
	// the pending algorithm
	pending    Algorithm
	hasPending bool
}

// ID returns the identity of the client which owns this record.
func (rec *Record) ID() ClientID {
	return rec.id
}

// Pending returns the algorithm of the client's outstanding request, if any.
func (rec *Record) Pending() (Algorithm, bool) {
	return rec.pending, rec.hasPending
}

// HasCallback returns true if the client has registered a callback.
func (rec *Record) HasCallback() bool {
	return rec.callback != nil
}

// HasBuffer returns true if the client has registered a buffer.
func (rec *Record) HasBuffer() bool {
	return rec.buffer != nil
}

func (rec *Record) setPending(alg Algorithm) {
	rec.pending = alg
	rec.hasPending = true
}

func (rec *Record) clearPending() {
	rec.pending = 0
	rec.hasPending = false
}

func (rec *Record) eligible() bool {
	return rec.hasPending && rec.buffer != nil
}

// Store holds client records in registration order.  It is not safe for
// concurrent use; the Driver serializes access to it.
//
// Terminated identities are remembered for the life of the Store so that
// they are never re-created.  Identities are process slots drawn from a
// finite kernel range, so this set is bounded by that range rather than by
// capacity.
type Store struct {
	records    []*Record
	byID       map[ClientID]*Record
	terminated map[ClientID]struct{}
	capacity   uint
}

// NewStore constructs an empty Store holding at most capacity records.  A
// capacity of zero means no limit.
func NewStore(capacity uint) *Store {
	return &Store{
		byID:       make(map[ClientID]*Record),
		terminated: make(map[ClientID]struct{}),
		capacity:   capacity,
	}
}

// Len returns the number of live records.
func (s *Store) Len() int {
	return len(s.records)
}

// Enter finds the record for id, creating it if this is the client's first
// interaction, and runs fn against it.  Returns ErrUnknownClient if id has
// terminated, or ErrOutOfMemory if a new record would exceed capacity; in
// either case fn is not called.
func (s *Store) Enter(id ClientID, fn func(*Record)) error {
	rec, err := s.lookupOrCreate(id)
	if err != nil {
		return err
	}
	fn(rec)
	return nil
}

// Lookup finds the record for id without creating one.
func (s *Store) Lookup(id ClientID) (*Record, error) {
	if rec, found := s.byID[id]; found {
		return rec, nil
	}
	return nil, ErrUnknownClient
}

// Each calls fn for every record in registration order, until fn returns
// false.
func (s *Store) Each(fn func(*Record) bool) {
	for _, rec := range s.records {
		if !fn(rec) {
			return
		}
	}
}

// Terminate destroys the record for id, if any.  The identity stays
// unknown from then on.  Returns true if a record was destroyed.
func (s *Store) Terminate(id ClientID) bool {
	s.terminated[id] = struct{}{}

	rec, found := s.byID[id]
	if !found {
		return false
	}
	delete(s.byID, id)

	for i, other := range s.records {
		if other == rec {
			copy(s.records[i:], s.records[i+1:])
			s.records[len(s.records)-1] = nil
			s.records = s.records[:len(s.records)-1]
			break
		}
	}
	return true
}

func (s *Store) lookupOrCreate(id ClientID) (*Record, error) {
	if rec, found := s.byID[id]; found {
		return rec, nil
	}
	if _, dead := s.terminated[id]; dead {
		return nil, ErrUnknownClient
	}
	if s.capacity != 0 && uint(len(s.records)) >= s.capacity {
		return nil, ErrOutOfMemory
	}

	rec := &Record{id: id}
	s.records = append(s.records, rec)
	s.byID[id] = rec
	return rec, nil
}
