package http

import (
	"context"
	"log/slog"

	"investiga-web/internal/cache"
	"investiga-web/internal/domain"
	"investiga-web/internal/logger"
	"investiga-web/internal/notify"
)

type stateKey struct{}

// requestState is created by the outermost middleware and filled in as the
// request moves inward, so the error boundary sees the session too.
type requestState struct {
	requestID string
	loc       notify.Localizer
	session   *domain.Session
	scope     *cache.Scope
	unsaved   bool // session was built for this request and is not stored yet
}

func withState(ctx context.Context, st *requestState) context.Context {
	return context.WithValue(ctx, stateKey{}, st)
}

func stateFrom(ctx context.Context) *requestState {
	if st, ok := ctx.Value(stateKey{}).(*requestState); ok {
		return st
	}
	return &requestState{loc: notify.For(notify.Supported[0])}
}

func (st *requestState) log() *slog.Logger {
	l := logger.WithRequest(st.requestID)
	if st.session != nil {
		l = l.With("session_id", st.session.ID)
		if st.session.User != nil {
			l = l.With("user_id", st.session.User.ID)
		}
	}
	return l
}

func (st *requestState) user() *domain.CurrentUser {
	if st.session == nil {
		return nil
	}
	return st.session.User
}

func (st *requestState) notice(n domain.Notice) {
	if st.session != nil {
		st.session.PushNotice(n)
	}
}
