package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"investiga-web/internal/cache"
	"investiga-web/internal/domain"
	"investiga-web/internal/logger"
	"investiga-web/internal/repository"
)

var ErrNoCredentials = errors.New("backend issued no session credentials")

type authService struct {
	repo repository.AuthRepository
}

func NewAuthService(repo repository.AuthRepository) AuthService {
	return &authService{repo: repo}
}

func (s *authService) Login(ctx context.Context, sess *domain.Session, creds domain.Credentials) error {
	creds.Email = strings.TrimSpace(strings.ToLower(creds.Email))
	logger.EnterMethod("authService.Login", "email", creds.Email)
	user, cookies, err := s.repo.Login(ctx, creds)
	if err != nil {
		logger.ExitMethodWithError("authService.Login", err, "email", creds.Email)
		return err
	}
	if len(cookies) == 0 {
		logger.ExitMethodWithError("authService.Login", ErrNoCredentials, "email", creds.Email)
		return ErrNoCredentials
	}
	sess.User = user
	sess.Cookies = cookies
	logger.InfoContext(ctx, "User logged in", "user_id", user.ID, "session_id", sess.ID)
	logger.ExitMethod("authService.Login", "userID", user.ID)
	return nil
}

func (s *authService) Register(ctx context.Context, sess *domain.Session, reg domain.Registration) error {
	reg.Email = strings.TrimSpace(strings.ToLower(reg.Email))
	logger.EnterMethod("authService.Register", "email", reg.Email)
	user, cookies, err := s.repo.Register(ctx, reg)
	if err != nil {
		logger.ExitMethodWithError("authService.Register", err, "email", reg.Email)
		return err
	}
	// Some deployments require verification before issuing credentials
	if len(cookies) > 0 {
		sess.User = user
		sess.Cookies = cookies
	}
	logger.InfoContext(ctx, "User registered", "user_id", user.ID, "session_id", sess.ID)
	logger.ExitMethod("authService.Register", "userID", user.ID, "credentials", len(cookies) > 0)
	return nil
}

// Logout always clears the local session state, even when the backend call fails
func (s *authService) Logout(ctx context.Context, sess *domain.Session, scope *cache.Scope) error {
	logger.EnterMethod("authService.Logout", "sessionID", sess.ID)
	var err error
	if sess.IsAuthenticated() {
		err = s.repo.Logout(repository.WithCredentials(ctx, sess.Cookies))
	}
	sess.User = nil
	sess.Cookies = nil
	if scope != nil {
		scope.Clear()
	}
	if err != nil && !errors.Is(err, domain.ErrUnauthenticated) {
		logger.ExitMethodWithError("authService.Logout", err, "sessionID", sess.ID)
		return fmt.Errorf("failed to log out: %w", err)
	}
	logger.ExitMethod("authService.Logout", "sessionID", sess.ID)
	return nil
}

// Refresh reloads the current user through the cache; an expired backend
// session logs the browser session out.
func (s *authService) Refresh(ctx context.Context, sess *domain.Session, scope *cache.Scope) (*domain.CurrentUser, error) {
	if !sess.IsAuthenticated() {
		return nil, domain.ErrUnauthenticated
	}
	ctx = repository.WithCredentials(ctx, sess.Cookies)
	user, err := cache.Fetch(ctx, scope, cache.CurrentUserKey, s.repo.Me)
	if errors.Is(err, domain.ErrUnauthenticated) {
		sess.User = nil
		sess.Cookies = nil
		scope.Clear()
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	sess.User = user
	return user, nil
}

func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	return s.repo.ForgotPassword(ctx, strings.TrimSpace(strings.ToLower(email)))
}

func (s *authService) ResetPassword(ctx context.Context, token, password string) error {
	return s.repo.ResetPassword(ctx, token, password)
}

func (s *authService) VerifyEmail(ctx context.Context, sess *domain.Session, scope *cache.Scope, token string) error {
	logger.EnterMethod("authService.VerifyEmail", "sessionID", sess.ID)
	if err := s.repo.VerifyEmail(repository.WithCredentials(ctx, sess.Cookies), token); err != nil {
		logger.ExitMethodWithError("authService.VerifyEmail", err, "sessionID", sess.ID)
		return err
	}
	logger.ExitMethod("authService.VerifyEmail", "sessionID", sess.ID)
	if sess.User != nil {
		sess.User.IsVerified = true
	}
	if scope != nil {
		scope.Invalidate(cache.CurrentUserKey)
	}
	return nil
}
