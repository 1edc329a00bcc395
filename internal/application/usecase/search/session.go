package search

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/course"
	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/search"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/debounce"
)

// State machine for an interactive search session.
type State int

const (
	// StateIdle: no term, or term below the minimum length; results cleared.
	StateIdle State = iota
	// StateSearching: a debounced term was accepted and the fan-out is in
	// flight.
	StateSearching
	// StateSettled: every source of the latest fan-out has settled.
	StateSettled
)

func (s State) String() string {
	switch s {
	case StateSearching:
		return "searching"
	case StateSettled:
		return "settled"
	default:
		return "idle"
	}
}

// Single coarse message shown when a whole search cycle fails. Raw backend
// errors never reach the client.
const searchUnavailableMessage = "Search is currently unavailable. Please try again."

const searchTimeout = 10 * time.Second

// Snapshot is the externally visible session state at one point in time.
type Snapshot struct {
	State   State
	Results search.UnifiedResults
	Error   string
}

// Session drives interactive search: keystrokes go through the debouncer,
// each accepted term starts a fan-out tagged with a sequence number, and a
// settle is applied only if it is still the latest issued. A slow superseded
// search can therefore never overwrite a newer one's results.
type Session struct {
	uc       *UnifiedSearchUseCase
	deb      *debounce.Debouncer[string]
	onChange func(Snapshot)

	mu      sync.Mutex
	seq     uint64
	state   State
	results search.UnifiedResults
	errMsg  string
	filters course.Filters
	term    string
	closed  bool
}

// NewSession creates a session. onChange, if non-nil, is invoked with a
// snapshot after every state transition; it may be called from background
// goroutines.
func NewSession(uc *UnifiedSearchUseCase, delay time.Duration, onChange func(Snapshot)) *Session {
	s := &Session{
		uc:       uc,
		onChange: onChange,
		state:    StateIdle,
		results:  search.Empty(),
	}
	s.deb = debounce.New(delay, s.dispatch)
	return s
}

// Update feeds a new raw term through the debouncer. Only the final stable
// value of a burst triggers a search cycle.
func (s *Session) Update(term string) {
	s.deb.Update(term)
}

// SetFilters changes the active filters and immediately re-runs the current
// term, bypassing the debounce window: a filter click is a deliberate action,
// not a keystroke burst.
func (s *Session) SetFilters(filters course.Filters) {
	s.mu.Lock()
	s.filters = filters
	term := s.term
	s.mu.Unlock()
	s.dispatch(term)
}

// Clear resets to idle immediately and invalidates any in-flight fan-out.
func (s *Session) Clear() {
	s.mu.Lock()
	s.seq++
	s.term = ""
	s.state = StateIdle
	s.results = search.Empty()
	s.errMsg = ""
	snap := s.snapshotLocked()
	cb := s.onChange
	s.mu.Unlock()

	if cb != nil {
		cb(snap)
	}
}

// Close stops the debouncer and marks the session dead. Late settles after
// Close are dropped silently.
func (s *Session) Close() {
	s.deb.Stop()
	s.mu.Lock()
	s.closed = true
	s.seq++
	s.mu.Unlock()
}

// Snapshot returns the current state, results and error.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{State: s.state, Results: s.results, Error: s.errMsg}
}

func (s *Session) dispatch(term string) {
	trimmed := strings.TrimSpace(term)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.term = term

	if utf8.RuneCountInString(trimmed) < MinTermLength {
		s.seq++
		s.state = StateIdle
		s.results = search.Empty()
		s.errMsg = ""
		snap := s.snapshotLocked()
		cb := s.onChange
		s.mu.Unlock()
		if cb != nil {
			cb(snap)
		}
		return
	}

	s.seq++
	seq := s.seq
	s.state = StateSearching
	filters := s.filters
	snap := s.snapshotLocked()
	cb := s.onChange
	s.mu.Unlock()

	if cb != nil {
		cb(snap)
	}

	go s.run(seq, trimmed, filters)
}

func (s *Session) run(seq uint64, term string, filters course.Filters) {
	ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
	defer cancel()

	out, err := s.uc.Execute(ctx, SearchInput{Term: term, Filters: filters})

	s.mu.Lock()
	if s.closed || seq != s.seq {
		// Superseded by a newer term, a clear, or a close.
		s.mu.Unlock()
		return
	}
	if err != nil {
		s.results = search.Empty()
		s.errMsg = searchUnavailableMessage
	} else {
		s.results = out.Results
		s.errMsg = ""
	}
	s.state = StateSettled
	snap := s.snapshotLocked()
	cb := s.onChange
	s.mu.Unlock()

	if cb != nil {
		cb(snap)
	}
}
