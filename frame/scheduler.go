// Package frame provides the per-frame callback primitive the globe loop and
// fly-to animation are chained on.
package frame

import "time"

// ID identifies a pending callback.
type ID uint64

// Callback runs once on the next frame.
type Callback func(now time.Time)

type request struct {
	id ID
	cb Callback
}

// Scheduler queues one-shot callbacks for the next frame, like a host's
// animation-frame hook. It is driven from a single goroutine.
type Scheduler struct {
	next    ID
	pending []request

	// current is the batch being run; Cancel clears entries in place.
	current []request
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Request queues cb for the next Run. Requests made from inside a callback
// run on the following frame.
func (s *Scheduler) Request(cb Callback) ID {
	s.next++
	s.pending = append(s.pending, request{id: s.next, cb: cb})
	return s.next
}

// Cancel removes a pending callback. Unknown IDs are ignored.
func (s *Scheduler) Cancel(id ID) {
	for i := range s.current {
		if s.current[i].id == id {
			s.current[i].cb = nil
			return
		}
	}
	for i, r := range s.pending {
		if r.id == id {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

// CancelAll removes every pending callback, including the rest of a run in
// progress.
func (s *Scheduler) CancelAll() {
	s.pending = nil
	for i := range s.current {
		s.current[i].cb = nil
	}
}

// Pending returns the number of queued callbacks.
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

// Run executes the callbacks queued before the call, in request order, and
// returns how many ran.
func (s *Scheduler) Run(now time.Time) int {
	if s.current != nil {
		return 0
	}
	s.current = s.pending
	s.pending = nil
	defer func() { s.current = nil }()

	ran := 0
	for i := range s.current {
		cb := s.current[i].cb
		if cb == nil {
			continue
		}
		s.current[i].cb = nil
		cb(now)
		ran++
	}
	return ran
}
