package http

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"investiga-web/internal/domain"
	"investiga-web/internal/enrollment"
	"investiga-web/internal/notify"
	"investiga-web/internal/utils"

	"github.com/gorilla/mux"
)

func (s *Server) registerEnrollmentRoutes(r *mux.Router) {
	r.HandleFunc("/projects/{id:[0-9]+}/enrollment/{action}", s.enrollmentAction).Methods("POST").Name("enrollment.act")
	r.HandleFunc("/projects/{id:[0-9]+}/requests/{userId:[0-9]+}/{action}", s.requestAction).Methods("POST").Name("requests.act")
	r.HandleFunc("/projects/{id:[0-9]+}/invitations", s.sendInvitation).Methods("POST").Name("invitations.send")
}

// enrollmentAction handles the viewer's own request or invitation
func (s *Server) enrollmentAction(w http.ResponseWriter, r *http.Request) {
	id, ok := s.projectID(w, r)
	if !ok {
		return
	}
	action, ok := enrollment.ParseAction(mux.Vars(r)["action"])
	if !ok || !action.Dispatchable() || action.NeedsTarget() {
		s.renderStatus(w, r, http.StatusNotFound)
		return
	}
	s.dispatch(w, r, enrollment.Command{
		Action:    action,
		ProjectID: id,
		Message:   r.PostFormValue("message"),
	})
}

// requestAction handles an admin resolving another user's record
func (s *Server) requestAction(w http.ResponseWriter, r *http.Request) {
	id, ok := s.projectID(w, r)
	if !ok {
		return
	}
	userID, err := utils.ParseID(mux.Vars(r)["userId"])
	if err != nil {
		s.renderStatus(w, r, http.StatusNotFound)
		return
	}
	action, ok := enrollment.ParseAction(mux.Vars(r)["action"])
	if !ok || !action.Dispatchable() || !action.NeedsTarget() || action == enrollment.ActionInvite {
		s.renderStatus(w, r, http.StatusNotFound)
		return
	}
	s.dispatch(w, r, enrollment.Command{
		Action:    action,
		ProjectID: id,
		UserID:    userID,
		Message:   r.PostFormValue("message"),
	})
}

func (s *Server) sendInvitation(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	id, ok := s.projectID(w, r)
	if !ok {
		return
	}
	userID, err := utils.ParseID(r.PostFormValue("user_id"))
	if err != nil {
		st.notice(st.loc.Invalid(notify.OpInvite, "The user id is invalid"))
		s.redirect(w, r, "/projects/"+strconv.Itoa(int(id)))
		return
	}
	s.dispatch(w, r, enrollment.Command{
		Action:    enrollment.ActionInvite,
		ProjectID: id,
		UserID:    userID,
		Message:   r.PostFormValue("message"),
	})
}

// dispatch runs cmd for the current session and returns to the project page
// with the resulting notice queued.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, cmd enrollment.Command) {
	st := stateFrom(r.Context())
	cmd.Actor = st.user()
	cmd.SessionID = st.session.ID

	notice, err := s.deps.Dispatcher.Dispatch(r.Context(), st.scope, st.loc, cmd)
	st.notice(notice)

	project := "/projects/" + strconv.Itoa(int(cmd.ProjectID))
	if errors.Is(err, domain.ErrUnauthenticated) {
		s.redirect(w, r, "/login?next="+url.QueryEscape(project))
		return
	}
	s.redirect(w, r, back(r, project))
}
