// Package memory keeps browser sessions in process memory. Sessions are lost
// on restart; intended for development and single-instance deployments.
package memory

import (
	"context"
	"sync"
	"time"

	"investiga-web/internal/domain"
	"investiga-web/internal/repository"
)

type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func NewSessionRepository() repository.SessionRepository {
	return &sessionRepository{sessions: make(map[string]domain.Session)}
}

func (r *sessionRepository) Get(_ context.Context, id string) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clone(s), nil
}

func (r *sessionRepository) Save(_ context.Context, s *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = *clone(*s)
	return nil
}

func (r *sessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *sessionRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, s := range r.sessions {
		if s.IsExpired(now) {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}

// clone copies the slices and the user so callers never share state with the store
func clone(s domain.Session) *domain.Session {
	out := s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	out.Cookies = append([]domain.BackendCookie(nil), s.Cookies...)
	out.Notices = append([]domain.Notice(nil), s.Notices...)
	return &out
}
