// internal/store/memory.go
//
// In-memory session store.
// Sessions live for one browser session; nothing survives a restart.
//
// Characteristics:
//   - Stores *game.Session objects keyed by ID in a map.
//   - Update serialises every mutation behind one mutex, so a session is
//     never touched by two requests at once.
//   - Sessions idle for longer than the TTL are swept when a new one is created.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/rigaguess/internal/game"
)

// ErrNotFound is returned for unknown or expired session IDs.
var ErrNotFound = errors.New("session not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Create adds a new session, evicting idle ones first.
	Create(ctx context.Context, s *game.Session) error

	// Update runs fn on the session with exclusive access. Reads go
	// through Update too, so a view is never built from a half-applied action.
	Update(ctx context.Context, id string, fn func(*game.Session) error) error

	// Delete forgets a session.
	Delete(ctx context.Context, id string) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.Mutex
	sessions map[string]*game.Session
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore constructs a new in-memory Store. A ttl <= 0 disables eviction.
func NewMemoryStore(ttl time.Duration) Store {
	return &memory{
		sessions: make(map[string]*game.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *memory) Create(ctx context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()
	m.sessions[s.ID] = s
	return nil
}

func (m *memory) Update(ctx context.Context, id string, fn func(*game.Session) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.live(id)
	if !ok {
		return ErrNotFound
	}
	return fn(s)
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// live returns the session if present and not expired. Caller holds mu.
func (m *memory) live(id string) (*game.Session, bool) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	if m.expired(s) {
		delete(m.sessions, id)
		return nil, false
	}
	return s, true
}

func (m *memory) expired(s *game.Session) bool {
	return m.ttl > 0 && m.now().Sub(s.LastActivity) > m.ttl
}

// sweepLocked drops idle sessions. Caller holds mu.
func (m *memory) sweepLocked() {
	n := 0
	for id, s := range m.sessions {
		if m.expired(s) {
			delete(m.sessions, id)
			n++
		}
	}
	if n > 0 {
		log.Debug().Int("evicted", n).Int("live", len(m.sessions)).Msg("swept idle sessions")
	}
}
