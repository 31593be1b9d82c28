package rest

import (
	"context"
	"net/http"

	"investiga-web/internal/domain"
	"investiga-web/internal/repository"
)

type authRepository struct {
	c *Client
}

func NewAuthRepository(c *Client) repository.AuthRepository {
	return &authRepository{c: c}
}

func (r *authRepository) Login(ctx context.Context, creds domain.Credentials) (*domain.CurrentUser, []domain.BackendCookie, error) {
	var user domain.CurrentUser
	res, err := r.c.do(ctx, call{op: "auth.login", method: http.MethodPost, path: "/auth/login", body: creds}, &user)
	if err != nil {
		return nil, nil, err
	}
	return &user, toBackendCookies(res.cookies), nil
}

func (r *authRepository) Register(ctx context.Context, reg domain.Registration) (*domain.CurrentUser, []domain.BackendCookie, error) {
	var user domain.CurrentUser
	res, err := r.c.do(ctx, call{op: "auth.register", method: http.MethodPost, path: "/auth/register", body: reg}, &user)
	if err != nil {
		return nil, nil, err
	}
	return &user, toBackendCookies(res.cookies), nil
}

func (r *authRepository) Me(ctx context.Context) (*domain.CurrentUser, error) {
	var user domain.CurrentUser
	if _, err := r.c.do(ctx, call{op: "auth.me", method: http.MethodGet, path: "/auth/me"}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *authRepository) Logout(ctx context.Context) error {
	_, err := r.c.do(ctx, call{op: "auth.logout", method: http.MethodPost, path: "/auth/logout"}, nil)
	return err
}

func (r *authRepository) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	_, err := r.c.do(ctx, call{op: "auth.forgot_password", method: http.MethodPost, path: "/auth/forgot-password", body: body}, nil)
	return err
}

func (r *authRepository) ResetPassword(ctx context.Context, token, password string) error {
	body := map[string]string{"token": token, "password": password}
	_, err := r.c.do(ctx, call{op: "auth.reset_password", method: http.MethodPost, path: "/auth/reset-password", body: body}, nil)
	return err
}

func (r *authRepository) VerifyEmail(ctx context.Context, token string) error {
	body := map[string]string{"token": token}
	_, err := r.c.do(ctx, call{op: "auth.verify_email", method: http.MethodPost, path: "/auth/verify-email", body: body}, nil)
	return err
}
