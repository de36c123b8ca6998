package auth

import (
	"sync"

	"github.com/google/uuid"
)

// Sessions tracks the sessions opened by Login so Logout can revoke a token
// before it expires. The registry is process-local.
type Sessions struct {
	mu     sync.RWMutex
	active map[string]Principal
}

// NewSessions returns an empty registry.
func NewSessions() *Sessions {
	return &Sessions{active: make(map[string]Principal)}
}

// Open registers a new session for p under a fresh id and returns the stored principal.
func (s *Sessions) Open(p Principal) *Principal {
	p.SessionID = uuid.NewString()
	s.mu.Lock()
	s.active[p.SessionID] = p
	s.mu.Unlock()
	return &p
}

// Close ends the session. It reports whether the session was active.
func (s *Sessions) Close(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.active[id]; !ok {
		return false
	}
	delete(s.active, id)
	return true
}

// Active reports whether id belongs to an open session.
func (s *Sessions) Active(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.active[id]
	return ok
}

// Len returns the number of open sessions.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.active)
}
