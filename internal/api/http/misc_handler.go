package http

import (
	"net/http"
	"strings"

	"investiga-web/internal/domain"
	"investiga-web/internal/notify"
	"investiga-web/internal/password"
	"investiga-web/internal/security"

	"github.com/gorilla/mux"
)

const maxReportLength = 4000

func (s *Server) registerMiscRoutes(r *mux.Router) {
	r.HandleFunc("/profile", s.profile).Methods("GET").Name("profile")
	r.HandleFunc("/ui/sidebar", s.toggleSidebar).Methods("POST").Name("ui.sidebar")
	r.HandleFunc("/ui/color-scheme", s.setColorScheme).Methods("POST").Name("ui.color")
	r.HandleFunc("/password/strength", s.passwordStrength).Methods("GET").Name("password.strength")
	r.HandleFunc("/report-issue", s.reportPage).Methods("GET").Name("report")
	r.HandleFunc("/report-issue", s.submitReport).Methods("POST").Name("report.submit")
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type membershipRow struct {
	domain.Enrollment
	URL string
}

type profileData struct {
	User        *domain.User
	Memberships []membershipRow
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	data := profileData{}
	user, err := s.deps.Users.Get(r.Context(), st.user().ID)
	if err != nil {
		st.log().Warn("Failed to load profile", "error", err)
		st.notice(st.loc.LoadFailed(notify.EntityUsers, err))
	} else {
		data.User = user
		for _, e := range user.Enrollments {
			row := membershipRow{Enrollment: e}
			if e.Project != nil {
				row.URL = projectURL(e.Project.ID, e.Project.Name)
			}
			data.Memberships = append(data.Memberships, row)
		}
	}
	s.render(w, r, http.StatusOK, "profile", "My profile", data)
}

// toggleSidebar flips the sidebar, or sets it when open=true|false is posted
func (s *Server) toggleSidebar(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	switch r.PostFormValue("open") {
	case "true":
		st.session.UI.SidebarOpen = true
	case "false":
		st.session.UI.SidebarOpen = false
	default:
		st.session.UI.SidebarOpen = !st.session.UI.SidebarOpen
	}
	s.uiUpdated(w, r)
}

func (s *Server) setColorScheme(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	switch domain.ColorScheme(r.PostFormValue("scheme")) {
	case domain.ColorSchemeDark:
		st.session.UI.ColorScheme = domain.ColorSchemeDark
	case domain.ColorSchemeLight:
		st.session.UI.ColorScheme = domain.ColorSchemeLight
	default:
		if st.session.UI.ColorScheme == domain.ColorSchemeDark {
			st.session.UI.ColorScheme = domain.ColorSchemeLight
		} else {
			st.session.UI.ColorScheme = domain.ColorSchemeDark
		}
	}
	s.uiUpdated(w, r)
}

// uiUpdated answers script requests with the new state and forms with a redirect
func (s *Server) uiUpdated(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		if err := s.commit(w, r); err != nil {
			st.log().Error("Failed to save session", "error", err)
		}
		writeJSON(w, http.StatusOK, st.session.UI)
		return
	}
	s.redirect(w, r, back(r, "/"))
}

type strengthResponse struct {
	Score int `json:"score"`
	password.Phrase
}

func (s *Server) passwordStrength(w http.ResponseWriter, r *http.Request) {
	score := password.Strength(r.URL.Query().Get("pw"))
	writeJSON(w, http.StatusOK, strengthResponse{Score: score, Phrase: password.PhraseFor(score)})
}

type reportData struct {
	Reference   string
	Token       string
	Path        string
	Email       string
	Description string
}

// reference returns the error reference proven by token, or "" when it does not match
func (s *Server) reportReference(reference, token string) string {
	if reference == "" || token == "" || s.deps.Tokens == nil {
		return ""
	}
	claims, err := s.deps.Tokens.ValidateToken(token, security.TokenTypeReport)
	if err != nil || claims.SessionID != reference {
		return ""
	}
	return reference
}

func (s *Server) reportPage(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	q := r.URL.Query()
	data := reportData{Path: safeNext(q.Get("path"))}
	if ref := s.reportReference(q.Get("ref"), q.Get("token")); ref != "" {
		data.Reference = ref
		data.Token = q.Get("token")
	}
	if u := st.user(); u != nil {
		data.Email = u.Email
	}
	s.render(w, r, http.StatusOK, "report", "Report a problem", data)
}

func (s *Server) submitReport(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	data := reportData{
		Token:       r.PostFormValue("token"),
		Path:        safeNext(r.PostFormValue("path")),
		Email:       strings.TrimSpace(r.PostFormValue("email")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
	}
	data.Reference = s.reportReference(r.PostFormValue("reference"), data.Token)

	if data.Description == "" {
		st.notice(st.loc.Invalid(notify.OpReportIssue, "Please describe what happened"))
		s.render(w, r, http.StatusUnprocessableEntity, "report", "Report a problem", data)
		return
	}
	if runes := []rune(data.Description); len(runes) > maxReportLength {
		data.Description = string(runes[:maxReportLength])
	}

	report := domain.IssueReport{
		Reference:   data.Reference,
		Path:        data.Path,
		Description: data.Description,
		Email:       data.Email,
		UserAgent:   r.UserAgent(),
	}
	if err := s.deps.Reports.SendIssueReport(r.Context(), report); err != nil {
		st.log().Error("Failed to send issue report", "reference", data.Reference, "error", err)
		st.notice(st.loc.Failure(notify.OpReportIssue, err))
		s.render(w, r, http.StatusBadGateway, "report", "Report a problem", data)
		return
	}
	st.notice(st.loc.Success(notify.OpReportIssue))
	s.redirect(w, r, "/")
}
