package crcdriver

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Check verifies the Driver's bookkeeping and returns every violation it
// finds, or nil.  It is intended for tests and debugging.
func (d *Driver) Check() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var errlist []error

	errlist = d.checkServing(errlist)
	errlist = d.store.check(errlist)

	if len(errlist) == 0 {
		return nil
	}

	if len(errlist) == 1 {
		return errlist[0]
	}

	return &multierror.Error{Errors: errlist}
}

func (d *Driver) checkServing(errlist []error) []error {
	if !d.isServing {
		if d.serving != 0 {
			errlist = append(errlist, fmt.Errorf("idle driver remembers serving client %d", uint32(d.serving)))
		}
		return errlist
	}

	rec, err := d.store.Lookup(d.serving)
	if err != nil {
		// terminated while its computation runs
		return errlist
	}
	if !rec.hasPending {
		errlist = append(errlist, fmt.Errorf("serving client %d has no pending request", uint32(d.serving)))
	}
	return errlist
}

func (s *Store) check(errlist []error) []error {
	if len(s.records) != len(s.byID) {
		errlist = append(errlist, fmt.Errorf("store holds %d records but indexes %d", len(s.records), len(s.byID)))
	}

	seen := make(map[ClientID]struct{}, len(s.records))
	for _, rec := range s.records {
		if _, dup := seen[rec.id]; dup {
			errlist = append(errlist, fmt.Errorf("client %d appears more than once", uint32(rec.id)))
		}
		seen[rec.id] = struct{}{}

		if s.byID[rec.id] != rec {
			errlist = append(errlist, fmt.Errorf("client %d is not indexed", uint32(rec.id)))
		}
		if _, dead := s.terminated[rec.id]; dead {
			errlist = append(errlist, fmt.Errorf("terminated client %d still has a record", uint32(rec.id)))
		}
	}
	return errlist
}
