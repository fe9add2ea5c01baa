package chat

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionTTL is how long an untouched widget survives.
const DefaultSessionTTL = 30 * time.Minute

// Sessions maps visitor session ids to their widgets.
type Sessions struct {
	newWidget func() *Widget
	ttl       time.Duration
	now       func() time.Time

	mu      sync.Mutex
	entries map[string]*session
}

type session struct {
	widget   *Widget
	lastSeen time.Time
}

// NewSessions creates a registry. newWidget builds the widget for each new
// visitor; ttl <= 0 uses DefaultSessionTTL.
func NewSessions(newWidget func() *Widget, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{
		newWidget: newWidget,
		ttl:       ttl,
		now:       time.Now,
		entries:   make(map[string]*session),
	}
}

// Get returns the widget for id and refreshes its idle timer.
func (s *Sessions) Get(id string) (*Widget, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = s.now()
	return e.widget, true
}

// Create starts a session with a fresh id.
func (s *Sessions) Create() (string, *Widget) {
	id := uuid.NewString()
	w := s.newWidget()
	s.mu.Lock()
	s.entries[id] = &session{widget: w, lastSeen: s.now()}
	s.mu.Unlock()
	return id, w
}

// Resolve returns the widget for id, creating a new session when id is
// unknown. The returned id is the one the caller should keep.
func (s *Sessions) Resolve(id string) (string, *Widget) {
	if id != "" {
		if w, ok := s.Get(id); ok {
			return id, w
		}
	}
	return s.Create()
}

// Peek returns the snapshot for id without starting a session. Unknown ids
// see what a fresh widget would show.
func (s *Sessions) Peek(id string) Snapshot {
	if id != "" {
		if w, ok := s.Get(id); ok {
			return w.Snapshot()
		}
	}
	return s.newWidget().Snapshot()
}

// Len counts live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Evict drops sessions idle longer than the TTL and returns how many.
func (s *Sessions) Evict() int {
	cutoff := s.now().Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.entries {
		if e.lastSeen.Before(cutoff) {
			delete(s.entries, id)
			n++
		}
	}
	return n
}

// RunJanitor evicts idle sessions every interval until ctx ends.
func (s *Sessions) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Evict()
		}
	}
}
