package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spacesedan/sentilens/internal/sentiment"
)

// Store keeps the live sessions of the HTTP surface in memory.
type Store struct {
	deps     Deps
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func NewStore(deps Deps) *Store {
	return &Store{deps: deps, sessions: make(map[uuid.UUID]*Session)}
}

// Analyzers returns the analyzers shared by every session of the store.
func (st *Store) Analyzers() *sentiment.Analyzers { return st.deps.Analyzers }

func (st *Store) Create() *Session {
	s := New(st.deps)
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	slog.Info("[SessionStore] Session created", slog.String("session", s.ID.String()))
	return s
}

func (st *Store) Get(id uuid.UUID) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

func (st *Store) Delete(id uuid.UUID) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Prune drops sessions idle for longer than maxIdle and returns how many were
// dropped.
func (st *Store) Prune(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	st.mu.Lock()
	defer st.mu.Unlock()

	dropped := 0
	for id, s := range st.sessions {
		if s.LastUsed().Before(cutoff) {
			delete(st.sessions, id)
			dropped++
		}
	}
	if dropped > 0 {
		slog.Info("[SessionStore] Idle sessions pruned",
			slog.Int("dropped", dropped),
			slog.Int("remaining", len(st.sessions)))
	}
	return dropped
}
