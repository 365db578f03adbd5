package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/etnz/positions"
	"github.com/etnz/positions/scheduler"
	"github.com/google/uuid"
)

// SessionHeader carries the session identifier, it is returned on every session scoped response.
const SessionHeader = "X-Session-ID"

// Session store limits used when none is configured.
const (
	DefaultSessionTTL  = 24 * time.Hour
	DefaultMaxSessions = 10000
)

type session struct {
	expanded *positions.Expanded
	seen     time.Time
}

// sessions holds the expand set of each client session.
//
// A session is stored only once it expands a row. Sessions idle for longer than ttl
// are removed by Sweep, and the least recently seen one is evicted when max is reached.
type sessions struct {
	mu  sync.Mutex
	set map[string]*session
	ttl time.Duration
	max int
	now func() time.Time
}

func newSessions(ttl time.Duration, max int) *sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if max <= 0 {
		max = DefaultMaxSessions
	}
	return &sessions{
		set: make(map[string]*session),
		ttl: ttl,
		max: max,
		now: time.Now,
	}
}

// id returns the session of the request, creating one when the header is missing or invalid.
// The identifier is echoed in the response header.
func (s *sessions) id(w http.ResponseWriter, r *http.Request) string {
	id := r.Header.Get(SessionHeader)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	w.Header().Set(SessionHeader, id)
	return id
}

// lookup returns the stored session id, touched, or nil. Callers hold mu.
func (s *sessions) lookup(id string) *session {
	e, ok := s.set[id]
	if !ok {
		return nil
	}
	e.seen = s.now()
	return e
}

// create stores an empty session id, evicting the least recently seen one when full. Callers hold mu.
func (s *sessions) create(id string) *session {
	if len(s.set) >= s.max {
		var oldest string
		var at time.Time
		for k, e := range s.set {
			if oldest == "" || e.seen.Before(at) {
				oldest, at = k, e.seen
			}
		}
		delete(s.set, oldest)
	}
	e := &session{expanded: positions.NewExpanded(), seen: s.now()}
	s.set[id] = e
	return e
}

// Expanded returns a copy of the expand set of session id, empty for an unknown session.
func (s *sessions) Expanded(id string) *positions.Expanded {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.lookup(id)
	if e == nil {
		return positions.NewExpanded()
	}
	return positions.NewExpanded(e.expanded.Symbols()...)
}

// Toggle flips symbol in the expand set of session id and returns whether it is now expanded.
func (s *sessions) Toggle(id, symbol string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.lookup(id)
	if e == nil {
		e = s.create(id)
	}
	expanded := e.expanded.Toggle(symbol)
	if e.expanded.Len() == 0 {
		delete(s.set, id)
	}
	return expanded
}

// Reset collapses every row of session id.
func (s *sessions) Reset(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.set, id)
}

// Sweep removes the sessions idle for longer than the ttl and returns how many were removed.
func (s *sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	limit := s.now().Add(-s.ttl)
	n := 0
	for id, e := range s.set {
		if e.seen.Before(limit) {
			delete(s.set, id)
			n++
		}
	}
	return n
}

// Len returns the number of stored sessions.
func (s *sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.set)
}

// sweepJob expires idle sessions on schedule.
type sweepJob struct {
	sessions *sessions
	metrics  *Metrics
}

var _ scheduler.Job = (*sweepJob)(nil)

func (j *sweepJob) Name() string { return "session-sweep" }

func (j *sweepJob) Run() error {
	j.sessions.Sweep()
	j.metrics.Sessions.Set(float64(j.sessions.Len()))
	return nil
}
