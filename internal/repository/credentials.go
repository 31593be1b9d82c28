package repository

import (
	"context"

	"investiga-web/internal/domain"
)

type credentialsKey struct{}

// WithCredentials attaches the backend cookies of the current session to ctx.
// Every backend call made with the returned context replays them.
func WithCredentials(ctx context.Context, cookies []domain.BackendCookie) context.Context {
	return context.WithValue(ctx, credentialsKey{}, cookies)
}

// CredentialsFrom returns the cookies attached by WithCredentials
func CredentialsFrom(ctx context.Context) []domain.BackendCookie {
	cookies, _ := ctx.Value(credentialsKey{}).([]domain.BackendCookie)
	return cookies
}
