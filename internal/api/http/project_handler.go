package http

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"investiga-web/internal/domain"
	"investiga-web/internal/enrollment"
	"investiga-web/internal/notify"
	"investiga-web/internal/service"
	"investiga-web/internal/utils"

	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"
)

const projectPageSize = 12

var sortableColumns = map[string]bool{
	"name":          true,
	"startDate":     true,
	"favoriteCount": true,
	"createdOn":     true,
}

func (s *Server) registerProjectRoutes(r *mux.Router) {
	r.HandleFunc("/", s.listProjects).Methods("GET").Name("home")
	r.HandleFunc("/projects", s.listProjects).Methods("GET").Name("projects.list")
	r.HandleFunc("/projects", s.createProject).Methods("POST").Name("projects.create")
	r.HandleFunc("/projects/new", s.newProject).Methods("GET").Name("projects.new")
	r.HandleFunc("/projects/{id:[0-9]+}", s.shortProject).Methods("GET").Name("projects.short")
	r.HandleFunc("/projects/{id:[0-9]+}/edit", s.editProject).Methods("GET").Name("projects.edit")
	r.HandleFunc("/projects/{id:[0-9]+}/edit", s.updateProject).Methods("POST").Name("projects.update")
	r.HandleFunc("/projects/{id:[0-9]+}/delete", s.deleteProject).Methods("POST").Name("projects.delete")
	r.HandleFunc("/projects/{id:[0-9]+}/favorite", s.favoriteProject).Methods("POST").Name("projects.favorite")
	r.HandleFunc("/projects/{id:[0-9]+}/{slug}", s.showProject).Methods("GET").Name("projects.show")
}

type projectRow struct {
	domain.Project
	URL    string
	Status string
}

type listFilters struct {
	Search        string
	InstitutionID int32
	FacilityID    int32
	DepartmentID  int32
	InterestIDs   []int32
	DateFrom      string
	DateTo        string
	Sort          string
	Order         string
}

type projectListData struct {
	Filters listFilters
	Options *service.FormOptions
	Rows    []projectRow
	Total   int32
	Page    int32
	Pages   int32
	PrevURL string
	NextURL string
}

// parseProjectQuery reads the search form. Malformed filters are dropped.
func parseProjectQuery(values url.Values) (domain.ProjectQuery, listFilters, int32) {
	id := func(key string) int32 {
		v, err := utils.ParseID(values.Get(key))
		if err != nil {
			return 0
		}
		return v
	}
	date := func(key string) string {
		d, err := utils.ParseDate(values.Get(key))
		if err != nil {
			return ""
		}
		return d.String()
	}

	f := listFilters{
		Search:        strings.TrimSpace(values.Get("q")),
		InstitutionID: id("institution"),
		FacilityID:    id("facility"),
		DepartmentID:  id("department"),
		DateFrom:      date("from"),
		DateTo:        date("to"),
	}
	if ids, err := utils.ParseIDList(values["interest"]); err == nil {
		f.InterestIDs = ids
	}
	if sortableColumns[values.Get("sort")] {
		f.Sort = values.Get("sort")
		f.Order = string(domain.SortDesc)
		if strings.EqualFold(values.Get("order"), string(domain.SortAsc)) {
			f.Order = string(domain.SortAsc)
		}
	}

	limit, offset, page := utils.Pagination(values.Get("page"), projectPageSize)
	q := domain.ProjectQuery{
		Search:               f.Search,
		InstitutionID:        f.InstitutionID,
		FacilityID:           f.FacilityID,
		ResearchDepartmentID: f.DepartmentID,
		InterestIDs:          f.InterestIDs,
		DateFrom:             f.DateFrom,
		DateTo:               f.DateTo,
		SortBy:               f.Sort,
		Order:                domain.SortDirection(f.Order),
		Limit:                limit,
		Offset:               offset,
	}
	return q, f, page
}

func pageURL(r *http.Request, page int32) string {
	v := r.URL.Query()
	v.Set("page", strconv.Itoa(int(page)))
	return "/projects?" + v.Encode()
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	q, filters, current := parseProjectQuery(r.URL.Query())

	var result *domain.ProjectPage
	var options *service.FormOptions
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		result, err = s.deps.Projects.Search(ctx, st.scope, q)
		return err
	})
	g.Go(func() (err error) {
		options, err = s.deps.Catalog.FormOptions(ctx, st.scope)
		return err
	})
	if err := g.Wait(); err != nil {
		s.fail(w, r, err)
		return
	}

	data := projectListData{
		Filters: filters,
		Options: options,
		Total:   result.Total,
		Page:    current,
		Pages:   utils.TotalPages(result.Total, projectPageSize),
	}
	for _, p := range result.Projects {
		data.Rows = append(data.Rows, projectRow{
			Project: p,
			URL:     projectURL(p.ID, p.Name),
			Status:  enrollment.StatusLabel(p.MyRequest),
		})
	}
	if current > 1 {
		data.PrevURL = pageURL(r, current-1)
	}
	if current < data.Pages {
		data.NextURL = pageURL(r, current+1)
	}
	s.render(w, r, http.StatusOK, "projects", "Research projects", data)
}

// affordance is one control rendered for an enrollment record
type affordance struct {
	Action  enrollment.Action
	Label   string
	Path    string
	View    bool
	Message string
	Note    bool
}

func affordances(loc notify.Localizer, actions []enrollment.Action, rec *domain.EnrollmentRecord, path func(enrollment.Action) string) []affordance {
	out := make([]affordance, 0, len(actions))
	for _, a := range actions {
		out = append(out, affordance{
			Action:  a,
			Label:   loc.T(a.Label()),
			Path:    path(a),
			View:    a.IsView(),
			Message: a.Message(rec),
			Note:    a.TakesNote(),
		})
	}
	return out
}

type requestRow struct {
	Record  domain.EnrollmentRecord
	Status  string
	Actions []affordance
}

type memberRow struct {
	domain.Enrollment
	Actions []affordance
}

type projectDetail struct {
	Project   *domain.Project
	URL       string
	Status    string
	Actions   []affordance
	Duration  *utils.DateDifference
	CanManage bool
	Requests  []requestRow
	Members   []memberRow
}

func (s *Server) projectID(w http.ResponseWriter, r *http.Request) (int32, bool) {
	id, err := utils.ParseID(mux.Vars(r)["id"])
	if err != nil {
		s.renderStatus(w, r, http.StatusNotFound)
		return 0, false
	}
	return id, true
}

func (s *Server) shortProject(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	id, ok := s.projectID(w, r)
	if !ok {
		return
	}
	p, err := s.deps.Projects.Get(r.Context(), st.scope, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.redirect(w, r, projectURL(p.ID, p.Name))
}

func (s *Server) showProject(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	id, ok := s.projectID(w, r)
	if !ok {
		return
	}
	p, err := s.deps.Projects.Get(r.Context(), st.scope, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	canonical := projectURL(p.ID, p.Name)
	if r.URL.Path != canonical {
		http.Redirect(w, r, canonical, http.StatusMovedPermanently)
		return
	}

	data := projectDetail{Project: p, URL: canonical}
	if d, ok := utils.ProjectDuration(p.StartDate, p.EndDate); ok {
		data.Duration = &d
	}

	user := st.user()
	role := domain.EnrollmentRole("")
	if user != nil {
		role = p.RoleOf(user.ID)
	}
	data.CanManage = role.CanManage() || user.IsAdmin()

	// Leaders own the project and have no requester controls
	if role != domain.EnrollmentRoleLeader {
		data.Status = enrollment.StatusLabel(p.MyRequest)
		actions, err := enrollment.For(p.MyRequest, enrollment.Requester)
		if err != nil {
			st.log().Warn("Unrecognized enrollment status", "project_id", p.ID, "error", err)
		}
		data.Actions = affordances(st.loc, actions, p.MyRequest, func(a enrollment.Action) string {
			return "/projects/" + strconv.Itoa(int(p.ID)) + "/enrollment/" + string(a)
		})
	}

	if data.CanManage {
		for _, m := range p.Enrollments {
			row := memberRow{Enrollment: m}
			if m.User != nil {
				userID := m.User.ID
				row.Actions = affordances(st.loc, enrollment.ForMembership(m), nil, func(a enrollment.Action) string {
					return adminActionPath(p.ID, userID, a)
				})
			}
			data.Members = append(data.Members, row)
		}

		records, err := s.deps.Projects.Requests(r.Context(), st.scope, p.ID)
		if err != nil && !errors.Is(err, domain.ErrForbidden) {
			s.fail(w, r, err)
			return
		}
		for _, rec := range records {
			if rec.CurrentStatus() == domain.EnrollmentStatusAccepted {
				continue // listed with the members
			}
			actions, err := enrollment.For(&rec, enrollment.Admin)
			if err != nil {
				st.log().Warn("Unrecognized enrollment status", "project_id", p.ID, "user_id", rec.UserID, "error", err)
			}
			data.Requests = append(data.Requests, requestRow{
				Record: rec,
				Status: enrollment.StatusLabel(&rec),
				Actions: affordances(st.loc, actions, &rec, func(a enrollment.Action) string {
					return adminActionPath(p.ID, rec.UserID, a)
				}),
			})
		}
	}

	s.render(w, r, http.StatusOK, "project", p.Name, data)
}

func adminActionPath(projectID, userID int32, a enrollment.Action) string {
	return "/projects/" + strconv.Itoa(int(projectID)) + "/requests/" + strconv.Itoa(int(userID)) + "/" + string(a)
}

type projectFormData struct {
	ID      int32
	Input   domain.ProjectInput
	Options *service.FormOptions
}

// parseProjectForm returns the input and, when invalid, the catalog key explaining why
func parseProjectForm(r *http.Request) (domain.ProjectInput, string) {
	if err := r.ParseForm(); err != nil {
		return domain.ProjectInput{}, "An unexpected error occurred. Please try again."
	}
	in := domain.ProjectInput{
		Name:        strings.TrimSpace(r.PostFormValue("name")),
		Description: r.PostFormValue("description"),
		StartDate:   strings.TrimSpace(r.PostFormValue("start_date")),
		IsDown:      r.PostFormValue("is_down") == "on",
		InterestIDs: []int32{},
	}
	if end := strings.TrimSpace(r.PostFormValue("end_date")); end != "" {
		in.EndDate = &end
	}
	var err error
	if in.InstitutionID, err = utils.ParseOptionalID(r.PostFormValue("institution_id")); err != nil {
		return in, "The selected institution is invalid"
	}
	if in.FacilityID, err = utils.ParseOptionalID(r.PostFormValue("facility_id")); err != nil {
		return in, "The selected facility is invalid"
	}
	if in.ResearchDepartmentID, err = utils.ParseOptionalID(r.PostFormValue("department_id")); err != nil {
		return in, "The selected research department is invalid"
	}
	ids, err := utils.ParseIDList(r.PostForm["interest_ids"])
	if err != nil {
		return in, "The selected interests are invalid"
	}
	if ids != nil {
		in.InterestIDs = ids
	}

	if in.Name == "" {
		return in, "The name is required"
	}
	if _, err := utils.ParseDate(in.StartDate); err != nil {
		return in, "The start date must use yyyy-mm-dd"
	}
	if err := utils.ValidateProjectDates(in.StartDate, in.EndDate); err != nil {
		return in, "The end date must be after the start"
	}
	return in, ""
}

func inputFromProject(p *domain.Project) domain.ProjectInput {
	in := domain.ProjectInput{
		Name:        p.Name,
		Description: p.Description,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		IsDown:      p.IsDown,
		InterestIDs: []int32{},
	}
	if p.Institution != nil {
		in.InstitutionID = &p.Institution.ID
	}
	if p.Facility != nil {
		in.FacilityID = &p.Facility.ID
	}
	if p.ResearchDepartment != nil {
		in.ResearchDepartmentID = &p.ResearchDepartment.ID
	}
	for _, i := range p.Interests {
		in.InterestIDs = append(in.InterestIDs, i.ID)
	}
	return in
}

func (s *Server) renderProjectForm(w http.ResponseWriter, r *http.Request, status int, data projectFormData) {
	st := stateFrom(r.Context())
	options, err := s.deps.Catalog.FormOptions(r.Context(), st.scope)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	data.Options = options
	title := "New project"
	if data.ID != 0 {
		title = "Edit project"
	}
	s.render(w, r, status, "project_form", title, data)
}

func (s *Server) newProject(w http.ResponseWriter, r *http.Request) {
	s.renderProjectForm(w, r, http.StatusOK, projectFormData{Input: domain.ProjectInput{InterestIDs: []int32{}}})
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	in, invalid := parseProjectForm(r)
	if invalid != "" {
		st.notice(st.loc.SaveInvalid(notify.EntityProject, invalid))
		s.renderProjectForm(w, r, http.StatusUnprocessableEntity, projectFormData{Input: in})
		return
	}
	p, err := s.deps.Projects.Create(r.Context(), st.scope, in)
	if err != nil {
		st.notice(st.loc.SaveFailed(notify.EntityProject, err))
		s.renderProjectForm(w, r, http.StatusUnprocessableEntity, projectFormData{Input: in})
		return
	}
	st.log().Info("Project created", "project_id", p.ID)
	st.notice(st.loc.Saved(notify.EntityProject))
	s.redirect(w, r, projectURL(p.ID, p.Name))
}

// managedProject loads the project and checks the viewer may change it
func (s *Server) managedProject(w http.ResponseWriter, r *http.Request) (*domain.Project, bool) {
	st := stateFrom(r.Context())
	id, ok := s.projectID(w, r)
	if !ok {
		return nil, false
	}
	p, err := s.deps.Projects.Get(r.Context(), st.scope, id)
	if err != nil {
		s.fail(w, r, err)
		return nil, false
	}
	user := st.user()
	if user == nil || !(user.IsAdmin() || p.RoleOf(user.ID).CanManage()) {
		s.renderStatus(w, r, http.StatusForbidden)
		return nil, false
	}
	return p, true
}

func (s *Server) editProject(w http.ResponseWriter, r *http.Request) {
	p, ok := s.managedProject(w, r)
	if !ok {
		return
	}
	s.renderProjectForm(w, r, http.StatusOK, projectFormData{ID: p.ID, Input: inputFromProject(p)})
}

func (s *Server) updateProject(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	p, ok := s.managedProject(w, r)
	if !ok {
		return
	}
	in, invalid := parseProjectForm(r)
	if invalid != "" {
		st.notice(st.loc.SaveInvalid(notify.EntityProject, invalid))
		s.renderProjectForm(w, r, http.StatusUnprocessableEntity, projectFormData{ID: p.ID, Input: in})
		return
	}
	updated, err := s.deps.Projects.Update(r.Context(), st.scope, p.ID, in)
	if err != nil {
		st.notice(st.loc.SaveFailed(notify.EntityProject, err))
		s.renderProjectForm(w, r, http.StatusUnprocessableEntity, projectFormData{ID: p.ID, Input: in})
		return
	}
	st.notice(st.loc.Saved(notify.EntityProject))
	s.redirect(w, r, projectURL(updated.ID, updated.Name))
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	p, ok := s.managedProject(w, r)
	if !ok {
		return
	}
	if err := s.deps.Projects.Delete(r.Context(), st.scope, p.ID); err != nil {
		st.notice(st.loc.DeleteFailed(notify.EntityProject, err))
		s.redirect(w, r, projectURL(p.ID, p.Name))
		return
	}
	st.log().Info("Project deleted", "project_id", p.ID)
	st.notice(st.loc.Deleted(notify.EntityProject))
	s.redirect(w, r, "/projects")
}

func (s *Server) favoriteProject(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	id, ok := s.projectID(w, r)
	if !ok {
		return
	}
	favorite := r.PostFormValue("favorite") == "true"
	if err := s.deps.Projects.SetFavorite(r.Context(), st.scope, id, favorite); err != nil {
		st.notice(st.loc.Failure(notify.OpFavorite, err))
	} else {
		st.notice(st.loc.Success(notify.OpFavorite))
	}
	s.redirect(w, r, back(r, "/projects/"+strconv.Itoa(int(id))))
}
