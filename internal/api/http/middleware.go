package http

import (
	"errors"
	"net/http"
	"net/url"
	"runtime/debug"
	"time"

	"investiga-web/internal/config"
	"investiga-web/internal/domain"
	"investiga-web/internal/notify"
	"investiga-web/internal/repository"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const requestIDHeader = "X-Request-ID"

// requestID attaches the request id and the visitor's language
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		st := &requestState{
			requestID: id,
			loc:       notify.FromAcceptLanguage(r.Header.Get("Accept-Language"), s.fallback),
		}
		next.ServeHTTP(w, r.WithContext(withState(r.Context(), st)))
	})
}

// recoverer is the error boundary: a panic anywhere below renders the generic
// error page with a reference the visitor can report.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				st := stateFrom(r.Context())
				st.log().Error("Panic while serving request",
					"path", r.URL.Path, "panic", rec, "stack", string(debug.Stack()))
				s.renderFailure(w, r, http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)

		status := sw.status
		if status == 0 {
			status = http.StatusOK
		}
		route := routeName(r)
		if s.deps.Metrics != nil {
			s.deps.Metrics.ObserveRequest(route, r.Method, status, time.Since(start))
		}
		// The query string may carry passwords (strength meter) or tokens
		stateFrom(r.Context()).log().Debug("Request served",
			"route", route, "method", r.Method, "path", r.URL.Path, "status", status, "duration", time.Since(start))
	})
}

func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if name := route.GetName(); name != "" {
			return name
		}
	}
	return "unknown"
}

// withSession resumes the browser session or starts a new one, and forwards
// the stored backend credentials on the request context.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := stateFrom(r.Context())
		ctx := r.Context()

		var sess *domain.Session
		if c, err := r.Cookie(s.deps.Config.Session.CookieName); err == nil && c.Value != "" {
			sess, err = s.deps.Sessions.Resume(ctx, c.Value)
			if err != nil {
				st.log().Debug("Discarding session cookie", "error", err)
				sess = nil
			}
		}
		if sess == nil {
			sess = s.deps.Sessions.New()
			st.unsaved = true
		}
		st.session = sess
		st.scope = s.deps.Cache.Scoped(sess.ID)

		if sess.IsAuthenticated() {
			credCtx := repository.WithCredentials(ctx, sess.Cookies)
			if _, err := s.deps.Auth.Refresh(credCtx, sess, st.scope); err != nil {
				if errors.Is(err, domain.ErrUnauthenticated) {
					st.log().Info("Backend session expired, logging out")
				} else {
					st.log().Warn("Failed to refresh current user", "error", err)
				}
			}
		}
		ctx = repository.WithCredentials(ctx, sess.Cookies)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authorize enforces config.RouteAccess for the matched route
func (s *Server) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := stateFrom(r.Context())
		level := config.GetAccessLevel(routeName(r))
		if level == config.AccessPublic {
			next.ServeHTTP(w, r)
			return
		}

		user := st.user()
		if user == nil || user.ID == 0 {
			st.notice(st.loc.Denied(domain.ErrUnauthenticated))
			target := "/login"
			if r.Method == http.MethodGet {
				target += "?next=" + url.QueryEscape(r.URL.RequestURI())
			}
			s.redirect(w, r, target)
			return
		}

		switch level {
		case config.AccessVerified:
			if !user.IsVerified {
				st.notice(st.loc.Denied(domain.ErrUnverifiedEmail))
				s.redirect(w, r, "/profile")
				return
			}
		case config.AccessSystemAdmin:
			if !user.IsAdmin() {
				st.log().Warn("Access denied", "route", routeName(r), "path", r.URL.Path)
				s.renderStatus(w, r, http.StatusForbidden)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
