// Package playground holds the UI state shared by the terminal and browser
// views: the selected category and the last response received.
//
// Both cells are replaced wholesale on each interaction. Each trigger
// activation takes a sequence number from Begin; its completion is reported
// through Complete or Fail. Whether a completion may overwrite the displayed
// payload is decided by the configured ordering:
//
//   - config.OrderArrival: the last completion to arrive wins, regardless of
//     activation order.
//   - config.OrderRequest: a completion is applied only if its sequence number
//     is newer than the displayed one; stale completions are discarded.
//
// Failures never replace the displayed payload.
package playground

import (
	"sync"
	"time"

	"codyplay/internal/api"
	"codyplay/internal/catalog"
	"codyplay/internal/config"
	"codyplay/internal/jsonutil"
)

// Outcome describes what Complete or Fail did with a completion.
type Outcome int

const (
	// Applied means the completion replaced the displayed payload.
	Applied Outcome = iota
	// Stale means a newer activation is already displayed; nothing changed.
	Stale
	// Failed means the request failed; the displayed payload is unchanged.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Stale:
		return "stale"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Response is the last applied completion.
type Response struct {
	Seq    uint64
	Result api.Result
	At     time.Time
}

// Failure is the most recent failed completion.
type Failure struct {
	Seq uint64
	Op  api.Operation
	Err error
	At  time.Time
}

// Snapshot is a consistent copy of the session state for rendering.
type Snapshot struct {
	Selected catalog.Category
	Last     *Response
	Failure  *Failure
	InFlight int
	Issued   uint64
}

// Output renders the last response as indented JSON, or "" when nothing has
// completed yet.
func (s Snapshot) Output() string {
	if s.Last == nil {
		return ""
	}
	return jsonutil.MustIndent(s.Last.Result.Payload)
}

// Session is safe for concurrent use.
type Session struct {
	mu       sync.Mutex
	ordering config.Ordering
	selected catalog.Category
	last     *Response
	failure  *Failure
	issued   uint64
	inFlight int
	now      func() time.Time
}

// NewSession creates a session with the default category selected.
func NewSession(ordering config.Ordering) *Session {
	if ordering == "" {
		ordering = config.OrderArrival
	}
	return &Session{
		ordering: ordering,
		selected: catalog.Default,
		now:      time.Now,
	}
}

// Ordering returns the session's completion policy.
func (s *Session) Ordering() config.Ordering {
	return s.ordering
}

// Selected returns the currently selected category.
func (s *Session) Selected() catalog.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Select replaces the selected category. It never issues a request.
// Invalid categories are ignored and reported as false.
func (s *Session) Select(c catalog.Category) bool {
	if !c.Valid() {
		return false
	}
	s.mu.Lock()
	s.selected = c
	s.mu.Unlock()
	return true
}

// Begin records a trigger activation and returns its sequence number.
// Sequence numbers start at 1 and increase by one per call.
func (s *Session) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	s.inFlight++
	return s.issued
}

// Complete reports a successful completion for seq.
func (s *Session) Complete(seq uint64, res *api.Result) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settle()

	if s.ordering == config.OrderRequest && s.last != nil && seq <= s.last.Seq {
		return Stale
	}
	s.last = &Response{Seq: seq, Result: *res, At: s.now()}
	if s.failure != nil && (s.ordering == config.OrderArrival || s.failure.Seq < seq) {
		s.failure = nil
	}
	return Applied
}

// Fail reports a failed completion for seq. The displayed payload is kept.
func (s *Session) Fail(seq uint64, op api.Operation, err error) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settle()

	if s.ordering == config.OrderRequest {
		if (s.last != nil && seq <= s.last.Seq) || (s.failure != nil && seq < s.failure.Seq) {
			return Stale
		}
	}
	s.failure = &Failure{Seq: seq, Op: op, Err: err, At: s.now()}
	return Failed
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		Selected: s.selected,
		InFlight: s.inFlight,
		Issued:   s.issued,
	}
	if s.last != nil {
		last := *s.last
		snap.Last = &last
	}
	if s.failure != nil {
		f := *s.failure
		snap.Failure = &f
	}
	return snap
}

// Output is shorthand for Snapshot().Output().
func (s *Session) Output() string {
	return s.Snapshot().Output()
}

func (s *Session) settle() {
	if s.inFlight > 0 {
		s.inFlight--
	}
}
