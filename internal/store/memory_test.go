package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/robalobadob/rigaguess/internal/game"
)

func newSession(id string, last time.Time) *game.Session {
	return &game.Session{ID: id, LastActivity: last}
}

func TestUpdateUnknown(t *testing.T) {
	st := NewMemoryStore(time.Hour)
	err := st.Update(context.Background(), "missing", func(*game.Session) error { return nil })
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdatePropagatesError(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore(time.Hour)
	if err := st.Create(ctx, newSession("a", time.Now())); err != nil {
		t.Fatal(err)
	}
	boom := errors.New("boom")
	if err := st.Update(ctx, "a", func(s *game.Session) error {
		s.Score = 7
		return boom
	}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	var score int
	_ = st.Update(ctx, "a", func(s *game.Session) error { score = s.Score; return nil })
	if score != 7 {
		t.Fatalf("score = %d; want 7", score)
	}
}

func TestExpiry(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemoryStore(time.Hour).(*memory)
	m.now = func() time.Time { return base }

	_ = m.Create(ctx, newSession("old", base.Add(-2*time.Hour)))
	_ = m.Create(ctx, newSession("fresh", base.Add(-time.Minute)))

	if err := m.Update(ctx, "old", func(*game.Session) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expired session to be gone, got %v", err)
	}
	if err := m.Update(ctx, "fresh", func(*game.Session) error { return nil }); err != nil {
		t.Fatalf("fresh session: %v", err)
	}

	// Creating sweeps whatever has gone idle since.
	m.now = func() time.Time { return base.Add(3 * time.Hour) }
	_ = m.Create(ctx, newSession("new", base.Add(3*time.Hour)))
	if len(m.sessions) != 1 {
		t.Fatalf("expected 1 live session after sweep, got %d", len(m.sessions))
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore(0)
	_ = st.Create(ctx, newSession("a", time.Time{}))
	if err := st.Update(ctx, "a", func(*game.Session) error { return nil }); err != nil {
		t.Fatalf("ttl 0 must never expire: %v", err)
	}
	_ = st.Delete(ctx, "a")
	if err := st.Update(ctx, "a", func(*game.Session) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
