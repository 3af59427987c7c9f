package memory

import (
	"context"
	"sync"
	"time"

	dom "example.com/fieldops/internal/domain/session"
)

// SessionRepository keeps sessions in process memory. Sessions are lost on
// restart, which is fine for a single dashboard instance.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]dom.Session
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]dom.Session)}
}

func (r *SessionRepository) Create(ctx context.Context, s *dom.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = *s
	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id string) (*dom.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, dom.ErrSessionNotFound
	}
	return &s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return dom.ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, s := range r.sessions {
		if s.Expired(now) {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}
