package http

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"

	"investiga-web/internal/domain"
	"investiga-web/internal/enrollment"
	"investiga-web/internal/logger"
	"investiga-web/internal/notify"
	"investiga-web/internal/sanitize"
	"investiga-web/internal/utils"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"safeHTML":    sanitize.HTML,
	"projectURL":  projectURL,
	"statusLabel": enrollment.StatusLabel,
	"add":         func(a, b int32) int32 { return a + b },
	"sub":         func(a, b int32) int32 { return a - b },
	"hasID":       hasID,
	"date":        formatDate,
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"derefID": func(id *int32) int32 {
		if id == nil {
			return 0
		}
		return *id
	},
}

type views struct {
	pages map[string]*template.Template
}

// loadViews parses every page together with the shared layout and partials
func loadViews() (*views, error) {
	base, err := template.New("layout.html").Funcs(funcs).
		ParseFS(templateFS, "templates/layout.html", "templates/partials.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	v := &views{pages: make(map[string]*template.Template)}
	for _, file := range files {
		name := path.Base(file)
		if name == "layout.html" || name == "partials.html" {
			continue
		}
		t, err := template.Must(base.Clone()).ParseFS(templateFS, file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		v.pages[strings.TrimSuffix(name, ".html")] = t
	}
	return v, nil
}

// page is the data every template receives
type page struct {
	Title     string
	User      *domain.CurrentUser
	UI        domain.UIState
	Notices   []domain.Notice
	Lang      string
	Path      string
	RequestID string
	Data      any

	loc notify.Localizer
}

// T translates a catalog key in the visitor's language
func (p *page) T(key string, args ...any) string {
	return p.loc.T(key, args...)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) {
	st := stateFrom(r.Context())
	p := &page{
		Title:     st.loc.T(title),
		User:      st.user(),
		UI:        domain.DefaultUIState(),
		Lang:      st.loc.Tag().String(),
		Path:      r.URL.Path,
		RequestID: st.requestID,
		Data:      data,
		loc:       st.loc,
	}
	if st.session != nil {
		p.UI = st.session.UI
		p.Notices = st.session.PopNotices()
	}

	t, ok := s.views.pages[name]
	if !ok {
		st.log().Error("Unknown template", "template", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", p); err != nil {
		st.log().Error("Failed to render template", "template", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if err := s.commit(w, r); err != nil {
		st.log().Error("Failed to save session", "error", err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// redirect saves the session and sends the browser to target with 303
func (s *Server) redirect(w http.ResponseWriter, r *http.Request, target string) {
	if err := s.commit(w, r); err != nil {
		stateFrom(r.Context()).log().Error("Failed to save session", "error", err)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// commit persists the session and refreshes its cookie. A new session is
// only stored once it carries a user, a notice or UI changes.
func (s *Server) commit(w http.ResponseWriter, r *http.Request) error {
	st := stateFrom(r.Context())
	if st.session == nil {
		return nil
	}
	if st.unsaved && st.session.IsPristine() {
		return nil
	}
	if err := s.deps.Sessions.Save(r.Context(), st.session); err != nil {
		return err
	}
	st.unsaved = false
	token, err := s.deps.Sessions.Token(st.session)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.deps.Config.Session.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  st.session.ExpiresOn,
		HttpOnly: true,
		Secure:   s.deps.Config.Session.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

type failureData struct {
	Status      int
	Reference   string
	ReportToken string
	Retry       string
}

// renderFailure shows the generic error page with a reportable reference
func (s *Server) renderFailure(w http.ResponseWriter, r *http.Request, status int) {
	st := stateFrom(r.Context())
	data := failureData{Status: status, Reference: uuid.NewString(), Retry: r.URL.RequestURI()}
	if s.deps.Tokens != nil {
		token, err := s.deps.Tokens.GenerateReportToken(data.Reference)
		if err != nil {
			st.log().Error("Failed to sign report token", "error", err)
		}
		data.ReportToken = token
	}
	st.log().Error("Request failed", "reference", data.Reference, "path", r.URL.Path, "status", status)
	s.render(w, r, status, "error", "Something went wrong", data)
}

type statusData struct {
	Status  int
	Message string
}

// renderStatus shows a plain 403 or 404 page
func (s *Server) renderStatus(w http.ResponseWriter, r *http.Request, status int) {
	data := statusData{Status: status}
	title := "Not found"
	data.Message = "The requested resource does not exist."
	if status == http.StatusForbidden {
		title = "Not allowed"
		data.Message = "You do not have permission for this action."
	}
	s.render(w, r, status, "status", title, data)
}

// fail maps a service error to the page the visitor sees
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	st := stateFrom(r.Context())
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.renderStatus(w, r, http.StatusNotFound)
	case errors.Is(err, domain.ErrForbidden):
		s.renderStatus(w, r, http.StatusForbidden)
	case errors.Is(err, domain.ErrUnauthenticated):
		st.notice(st.loc.Denied(err))
		s.redirect(w, r, "/login?next="+escapeNext(r))
	default:
		st.log().Error("Unexpected error", "path", r.URL.Path, "error", err)
		s.renderFailure(w, r, http.StatusInternalServerError)
	}
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.renderStatus(w, r, http.StatusNotFound)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode JSON response", "error", err)
	}
}

func projectURL(id int32, name string) string {
	s := slug.Make(name)
	if s == "" {
		s = "proyecto"
	}
	return fmt.Sprintf("/projects/%d/%s", id, s)
}

func hasID(ids []int32, id int32) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func formatDate(s string) string {
	d, err := utils.ParseDate(s)
	if err != nil {
		return s
	}
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, d.Month, d.Year)
}

// safeNext only accepts local absolute paths as post-login targets
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

func escapeNext(r *http.Request) string {
	if r.Method != http.MethodGet {
		return ""
	}
	return url.QueryEscape(r.URL.RequestURI())
}

// back returns the local page the form was posted from
func back(r *http.Request, fallback string) string {
	ref := r.Referer()
	if ref == "" {
		return fallback
	}
	if i := strings.Index(ref, "://"); i >= 0 {
		rest := ref[i+3:]
		host, p, _ := strings.Cut(rest, "/")
		if host != r.Host {
			return fallback
		}
		ref = "/" + p
	}
	return safeNext(ref)
}
