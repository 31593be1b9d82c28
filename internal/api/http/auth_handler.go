package http

import (
	"net/http"
	"strings"

	"investiga-web/internal/domain"
	"investiga-web/internal/notify"
	"investiga-web/internal/password"

	"github.com/gorilla/mux"
)

func (s *Server) registerAuthRoutes(r *mux.Router) {
	r.HandleFunc("/login", s.loginPage).Methods("GET").Name("login")
	r.HandleFunc("/login", s.login).Methods("POST").Name("login.submit")
	r.HandleFunc("/register", s.registerPage).Methods("GET").Name("register")
	r.HandleFunc("/register", s.register).Methods("POST").Name("register.submit")
	r.HandleFunc("/logout", s.logout).Methods("POST").Name("logout")
	r.HandleFunc("/forgot-password", s.forgotPage).Methods("GET").Name("forgot")
	r.HandleFunc("/forgot-password", s.forgot).Methods("POST").Name("forgot.submit")
	r.HandleFunc("/reset-password", s.resetPage).Methods("GET").Name("reset")
	r.HandleFunc("/reset-password", s.reset).Methods("POST").Name("reset.submit")
	r.HandleFunc("/verify-email", s.verifyEmail).Methods("GET").Name("verify")
}

type authForm struct {
	Email    string
	Name     string
	LastName string
	Next     string
	Token    string
	Strength password.Phrase
}

func (s *Server) loginPage(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	next := safeNext(r.URL.Query().Get("next"))
	if st.session.IsAuthenticated() {
		s.redirect(w, r, next)
		return
	}
	s.render(w, r, http.StatusOK, "login", "Log in", authForm{Next: next})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	creds := domain.Credentials{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
	next := safeNext(r.PostFormValue("next"))
	form := authForm{Email: creds.Email, Next: next}

	if creds.Email == "" || creds.Password == "" {
		st.notice(st.loc.Invalid(notify.OpLogin, "Email and password are required"))
		s.render(w, r, http.StatusUnprocessableEntity, "login", "Log in", form)
		return
	}
	if err := s.deps.Auth.Login(r.Context(), st.session, creds); err != nil {
		st.log().Info("Login rejected", "error", err)
		st.notice(st.loc.Failure(notify.OpLogin, err))
		s.render(w, r, http.StatusUnprocessableEntity, "login", "Log in", form)
		return
	}
	// Anonymous reads carry no request state
	st.scope.Clear()
	st.notice(st.loc.Success(notify.OpLogin))
	s.redirect(w, r, next)
}

func (s *Server) registerPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "register", "Create account", authForm{Strength: password.PhraseFor(0)})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	reg := domain.Registration{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
		Name:     strings.TrimSpace(r.PostFormValue("name")),
		LastName: strings.TrimSpace(r.PostFormValue("last_name")),
	}
	form := authForm{Email: reg.Email, Name: reg.Name, LastName: reg.LastName, Strength: password.PhraseFor(password.Strength(reg.Password))}

	if reg.Password != r.PostFormValue("confirm_password") {
		st.notice(st.loc.Invalid(notify.OpRegister, "Passwords do not match"))
		s.render(w, r, http.StatusUnprocessableEntity, "register", "Create account", form)
		return
	}
	if err := s.deps.Auth.Register(r.Context(), st.session, reg); err != nil {
		st.notice(st.loc.Failure(notify.OpRegister, err))
		s.render(w, r, http.StatusUnprocessableEntity, "register", "Create account", form)
		return
	}
	st.scope.Clear()
	st.notice(st.loc.Success(notify.OpRegister))
	if st.session.IsAuthenticated() {
		s.redirect(w, r, "/profile")
		return
	}
	s.redirect(w, r, "/login")
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	if err := s.deps.Auth.Logout(r.Context(), st.session, st.scope); err != nil {
		st.log().Warn("Backend logout failed", "error", err)
	}
	st.notice(st.loc.Success(notify.OpLogout))
	s.redirect(w, r, "/")
}

func (s *Server) forgotPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "forgot", "Recover password", authForm{})
}

func (s *Server) forgot(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	email := strings.TrimSpace(r.PostFormValue("email"))
	if err := s.deps.Auth.ForgotPassword(r.Context(), email); err != nil {
		st.notice(st.loc.Failure(notify.OpForgotPassword, err))
		s.render(w, r, http.StatusUnprocessableEntity, "forgot", "Recover password", authForm{Email: email})
		return
	}
	st.notice(st.loc.Success(notify.OpForgotPassword))
	s.redirect(w, r, "/login")
}

func (s *Server) resetPage(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		s.renderStatus(w, r, http.StatusNotFound)
		return
	}
	s.render(w, r, http.StatusOK, "reset", "New password", authForm{Token: token, Strength: password.PhraseFor(0)})
}

func (s *Server) reset(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	token := r.PostFormValue("token")
	pw := r.PostFormValue("password")
	form := authForm{Token: token, Strength: password.PhraseFor(password.Strength(pw))}

	if pw != r.PostFormValue("confirm_password") {
		st.notice(st.loc.Invalid(notify.OpResetPassword, "Passwords do not match"))
		s.render(w, r, http.StatusUnprocessableEntity, "reset", "New password", form)
		return
	}
	if err := s.deps.Auth.ResetPassword(r.Context(), token, pw); err != nil {
		st.notice(st.loc.Failure(notify.OpResetPassword, err))
		s.render(w, r, http.StatusUnprocessableEntity, "reset", "New password", form)
		return
	}
	st.notice(st.loc.Success(notify.OpResetPassword))
	s.redirect(w, r, "/login")
}

func (s *Server) verifyEmail(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	token := r.URL.Query().Get("token")
	if token == "" {
		s.renderStatus(w, r, http.StatusNotFound)
		return
	}
	if err := s.deps.Auth.VerifyEmail(r.Context(), st.session, st.scope, token); err != nil {
		st.notice(st.loc.Failure(notify.OpVerifyEmail, err))
		s.redirect(w, r, "/")
		return
	}
	st.notice(st.loc.Success(notify.OpVerifyEmail))
	if st.session.IsAuthenticated() {
		s.redirect(w, r, "/profile")
		return
	}
	s.redirect(w, r, "/login")
}
