package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"investiga-web/internal/domain"
	"investiga-web/internal/logger"
	"investiga-web/internal/repository"
	"investiga-web/internal/security"

	"github.com/google/uuid"
)

var ErrSessionExpired = errors.New("session expired")

type sessionService struct {
	repo   repository.SessionRepository
	tokens security.TokenManager
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionService(repo repository.SessionRepository, tokens security.TokenManager, ttl time.Duration) SessionService {
	return &sessionService{repo: repo, tokens: tokens, ttl: ttl, now: time.Now}
}

// New builds a session that is not stored until its first Save
func (s *sessionService) New() *domain.Session {
	now := s.now().UTC()
	return &domain.Session{
		ID:        uuid.NewString(),
		UI:        domain.DefaultUIState(),
		CreatedOn: now,
		ExpiresOn: now.Add(s.ttl),
	}
}

func (s *sessionService) Start(ctx context.Context) (*domain.Session, string, error) {
	sess := s.New()
	if err := s.repo.Save(ctx, sess); err != nil {
		return nil, "", fmt.Errorf("failed to save session: %w", err)
	}
	token, err := s.Token(sess)
	if err != nil {
		return nil, "", err
	}
	return sess, token, nil
}

func (s *sessionService) Resume(ctx context.Context, token string) (*domain.Session, error) {
	claims, err := s.tokens.ValidateToken(token, security.TokenTypeSession)
	if err != nil {
		return nil, err
	}
	sess, err := s.repo.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if sess.IsExpired(s.now()) {
		if err := s.repo.Delete(ctx, sess.ID); err != nil {
			logger.Warn("Failed to delete expired session", "session_id", sess.ID, "error", err)
		}
		return nil, ErrSessionExpired
	}
	return sess, nil
}

func (s *sessionService) Save(ctx context.Context, sess *domain.Session) error {
	if err := s.repo.Save(ctx, sess); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Token signs a cookie value for sess, valid until the session expires
func (s *sessionService) Token(sess *domain.Session) (string, error) {
	var userID int32
	if sess.User != nil {
		userID = sess.User.ID
	}
	ttl := sess.ExpiresOn.Sub(s.now())
	if ttl <= 0 {
		ttl = s.ttl
	}
	token, err := s.tokens.GenerateSessionToken(sess.ID, userID, ttl)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, nil
}

func (s *sessionService) End(ctx context.Context, sess *domain.Session) error {
	if err := s.repo.Delete(ctx, sess.ID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *sessionService) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired sessions: %w", err)
	}
	return n, nil
}
