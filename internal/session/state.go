package session

import (
	"context"
	"log"
	"sync"

	"github.com/i474232898/weather-forecast-view/internal/weather"
)

// Status is the outcome of the most recent completed search.
type Status string

const (
	StatusUnset    Status = "unset"
	StatusFound    Status = "found"
	StatusNotFound Status = "notFound"
	StatusFailed   Status = "failed"
)

// Lookup performs one classified forecast lookup. *weather.Service satisfies it.
type Lookup interface {
	Lookup(ctx context.Context, city string) weather.Outcome
}

// State is the state of one forecast view session.
//
// Overlapping searches are resolved in favour of the latest submission: a new
// Submit cancels the context of the one in flight, and results of superseded
// searches are discarded.
type State struct {
	mu sync.Mutex

	lookup Lookup
	clock  weather.Clock

	query        string // input box contents
	searchedCity string // city text of the last completed search
	batch        weather.Batch
	showBatch    bool   // whether batch is on display
	expanded     string // "" means nothing expanded
	status       Status

	generation uint64
	cancel     context.CancelFunc
}

// New creates an empty session. A nil clock uses the system clock.
func New(lookup Lookup, clock weather.Clock) *State {
	if clock == nil {
		clock = weather.RealClock{}
	}
	return &State{
		lookup: lookup,
		clock:  clock,
		status: StatusUnset,
	}
}

// SetQuery records the current input box contents.
func (s *State) SetQuery(text string) {
	s.mu.Lock()
	s.query = text
	s.mu.Unlock()
}

// Query returns the current input box contents.
func (s *State) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Submit searches for city and applies the outcome. It returns false when the
// search was superseded by a newer Submit before it completed, in which case
// the state is left to the newer search.
func (s *State) Submit(ctx context.Context, city string) bool {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.generation++
	gen := s.generation
	s.cancel = cancel
	s.query = city
	s.mu.Unlock()

	outcome := s.lookup.Lookup(ctx, city)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		log.Printf("DEBUG: discarding superseded search for %q (%s)", city, outcome.Kind)
		return false
	}
	s.cancel = nil
	s.searchedCity = city

	switch outcome.Kind {
	case weather.OutcomeFound:
		s.batch = outcome.Batch
		s.expanded = weather.TodayKey(s.clock.Now(), outcome.Batch.City.TimezoneOffset)
		s.status = StatusFound
		s.showBatch = true
	case weather.OutcomeNotFound:
		// The previous batch is kept but no longer displayed.
		s.status = StatusNotFound
		s.showBatch = false
	default:
		// Whatever was on display stays there.
		s.status = StatusFailed
	}
	return true
}

// Toggle expands key, or collapses it when it is already the expanded one.
// At most one date is expanded at a time.
func (s *State) Toggle(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.expanded == key {
		s.expanded = ""
		return
	}
	s.expanded = key
}

// Expanded returns the expanded date key, or "" when nothing is expanded.
func (s *State) Expanded() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expanded
}

// Status returns the status of the last completed search.
func (s *State) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// View derives the display model from the current state. Groups are
// recomputed on every call.
func (s *State) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return buildView(s.status, s.searchedCity, s.query, s.batch, s.showBatch, s.expanded)
}
