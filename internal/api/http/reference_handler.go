package http

import (
	"context"
	"net/http"
	"strings"

	"investiga-web/internal/cache"
	"investiga-web/internal/domain"
	"investiga-web/internal/notify"
	"investiga-web/internal/service"
	"investiga-web/internal/utils"

	"github.com/gorilla/mux"
)

const referenceResources = "institutions|facilities|research-departments|interests"

func (s *Server) registerReferenceRoutes(r *mux.Router) {
	base := "/admin/{resource:" + referenceResources + "}"
	r.HandleFunc("/admin/users", s.listUsers).Methods("GET").Name("users.list")
	r.HandleFunc(base, s.listReference).Methods("GET").Name("reference.list")
	r.HandleFunc(base, s.createReference).Methods("POST").Name("reference.create")
	r.HandleFunc(base+"/new", s.newReference).Methods("GET").Name("reference.new")
	r.HandleFunc(base+"/{id:[0-9]+}/edit", s.editReference).Methods("GET").Name("reference.edit")
	r.HandleFunc(base+"/{id:[0-9]+}/edit", s.updateReference).Methods("POST").Name("reference.update")
	r.HandleFunc(base+"/{id:[0-9]+}/delete", s.deleteReference).Methods("POST").Name("reference.delete")
}

type referenceRow struct {
	ID     int32
	Name   string
	Detail string
	Web    string
}

// referenceFields selects which inputs a resource's form shows
type referenceFields struct {
	Description  bool
	Abbreviation bool
	Web          bool
	Institution  bool
	Facility     bool
}

// referenceAdmin adapts one typed reference service to the shared admin pages
type referenceAdmin struct {
	resource string
	entity   notify.Entity
	title    string
	fields   referenceFields

	list   func(ctx context.Context, scope *cache.Scope) ([]referenceRow, error)
	get    func(ctx context.Context, id int32) (domain.ReferenceInput, error)
	create func(ctx context.Context, scope *cache.Scope, in domain.ReferenceInput) error
	update func(ctx context.Context, scope *cache.Scope, id int32, in domain.ReferenceInput) error
	remove func(ctx context.Context, scope *cache.Scope, id int32) error
}

func newReferenceAdmin[T any](resource string, entity notify.Entity, title string, fields referenceFields,
	svc service.ReferenceService[T, domain.ReferenceInput], row func(T) referenceRow, input func(T) domain.ReferenceInput) *referenceAdmin {
	return &referenceAdmin{
		resource: resource,
		entity:   entity,
		title:    title,
		fields:   fields,
		list: func(ctx context.Context, scope *cache.Scope) ([]referenceRow, error) {
			items, err := svc.List(ctx, scope)
			if err != nil {
				return nil, err
			}
			rows := make([]referenceRow, 0, len(items))
			for _, item := range items {
				rows = append(rows, row(item))
			}
			return rows, nil
		},
		get: func(ctx context.Context, id int32) (domain.ReferenceInput, error) {
			item, err := svc.Get(ctx, id)
			if err != nil {
				return domain.ReferenceInput{}, err
			}
			return input(*item), nil
		},
		create: func(ctx context.Context, scope *cache.Scope, in domain.ReferenceInput) error {
			_, err := svc.Create(ctx, scope, in)
			return err
		},
		update: func(ctx context.Context, scope *cache.Scope, id int32, in domain.ReferenceInput) error {
			_, err := svc.Update(ctx, scope, id, in)
			return err
		},
		remove: svc.Delete,
	}
}

func newReferenceAdmins(c *service.Catalog) map[string]*referenceAdmin {
	if c == nil {
		return map[string]*referenceAdmin{}
	}
	admins := []*referenceAdmin{
		newReferenceAdmin("institutions", notify.EntityInstitution, "Institutions",
			referenceFields{Description: true, Web: true}, c.Institutions,
			func(i domain.Institution) referenceRow {
				return referenceRow{ID: i.ID, Name: i.Name, Detail: i.Description, Web: i.Web}
			},
			func(i domain.Institution) domain.ReferenceInput {
				return domain.ReferenceInput{Name: i.Name, Description: i.Description, Web: i.Web}
			}),
		newReferenceAdmin("facilities", notify.EntityFacility, "Facilities",
			referenceFields{Abbreviation: true, Web: true, Institution: true}, c.Facilities,
			func(f domain.Facility) referenceRow {
				row := referenceRow{ID: f.ID, Name: f.Name, Detail: f.Abbreviation, Web: f.Web}
				if f.Institution != nil {
					row.Detail = strings.TrimSpace(f.Abbreviation + " · " + f.Institution.Name)
				}
				return row
			},
			func(f domain.Facility) domain.ReferenceInput {
				in := domain.ReferenceInput{Name: f.Name, Abbreviation: f.Abbreviation, Web: f.Web}
				if f.Institution != nil {
					in.InstitutionID = &f.Institution.ID
				}
				return in
			}),
		newReferenceAdmin("research-departments", notify.EntityResearchDepartment, "Research departments",
			referenceFields{Web: true, Facility: true}, c.Departments,
			func(d domain.ResearchDepartment) referenceRow {
				row := referenceRow{ID: d.ID, Name: d.Name, Web: d.Web}
				if d.Facility != nil {
					row.Detail = d.Facility.Name
					if d.Facility.Institution != nil {
						row.Detail += " · " + d.Facility.Institution.Name
					}
				}
				return row
			},
			func(d domain.ResearchDepartment) domain.ReferenceInput {
				in := domain.ReferenceInput{Name: d.Name, Web: d.Web}
				if d.Facility != nil {
					in.FacilityID = &d.Facility.ID
				}
				return in
			}),
		newReferenceAdmin("interests", notify.EntityInterest, "Interests",
			referenceFields{}, c.Interests,
			func(i domain.Interest) referenceRow { return referenceRow{ID: i.ID, Name: i.Name} },
			func(i domain.Interest) domain.ReferenceInput { return domain.ReferenceInput{Name: i.Name} }),
	}
	out := make(map[string]*referenceAdmin, len(admins))
	for _, a := range admins {
		out[a.resource] = a
	}
	return out
}

type referenceListData struct {
	Resource string
	Rows     []referenceRow
}

type referenceFormData struct {
	Resource     string
	ID           int32
	Input        domain.ReferenceInput
	Fields       referenceFields
	Institutions []domain.Institution
	Facilities   []domain.Facility
}

func (s *Server) referenceAdminFor(w http.ResponseWriter, r *http.Request) (*referenceAdmin, bool) {
	a, ok := s.reference[mux.Vars(r)["resource"]]
	if !ok {
		s.renderStatus(w, r, http.StatusNotFound)
	}
	return a, ok
}

func (s *Server) listReference(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	a, ok := s.referenceAdminFor(w, r)
	if !ok {
		return
	}
	rows, err := a.list(r.Context(), st.scope)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "reference_list", a.title, referenceListData{Resource: a.resource, Rows: rows})
}

func (s *Server) renderReferenceForm(w http.ResponseWriter, r *http.Request, status int, a *referenceAdmin, id int32, in domain.ReferenceInput) {
	st := stateFrom(r.Context())
	data := referenceFormData{Resource: a.resource, ID: id, Input: in, Fields: a.fields}
	var err error
	if a.fields.Institution {
		data.Institutions, err = s.deps.Catalog.Institutions.List(r.Context(), st.scope)
	}
	if err == nil && a.fields.Facility {
		data.Facilities, err = s.deps.Catalog.Facilities.List(r.Context(), st.scope)
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, status, "reference_form", a.title, data)
}

func parseReferenceForm(r *http.Request, fields referenceFields) domain.ReferenceInput {
	in := domain.ReferenceInput{Name: strings.TrimSpace(r.PostFormValue("name"))}
	if fields.Description {
		in.Description = strings.TrimSpace(r.PostFormValue("description"))
	}
	if fields.Abbreviation {
		in.Abbreviation = strings.TrimSpace(r.PostFormValue("abbreviation"))
	}
	if fields.Web {
		in.Web = strings.TrimSpace(r.PostFormValue("web"))
	}
	if fields.Institution {
		in.InstitutionID, _ = utils.ParseOptionalID(r.PostFormValue("institution_id"))
	}
	if fields.Facility {
		in.FacilityID, _ = utils.ParseOptionalID(r.PostFormValue("facility_id"))
	}
	return in
}

func (s *Server) newReference(w http.ResponseWriter, r *http.Request) {
	a, ok := s.referenceAdminFor(w, r)
	if !ok {
		return
	}
	s.renderReferenceForm(w, r, http.StatusOK, a, 0, domain.ReferenceInput{})
}

func (s *Server) createReference(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	a, ok := s.referenceAdminFor(w, r)
	if !ok {
		return
	}
	in := parseReferenceForm(r, a.fields)
	if in.Name == "" {
		st.notice(st.loc.SaveInvalid(a.entity, "The name is required"))
		s.renderReferenceForm(w, r, http.StatusUnprocessableEntity, a, 0, in)
		return
	}
	if err := a.create(r.Context(), st.scope, in); err != nil {
		st.notice(st.loc.SaveFailed(a.entity, err))
		s.renderReferenceForm(w, r, http.StatusUnprocessableEntity, a, 0, in)
		return
	}
	st.notice(st.loc.Saved(a.entity))
	s.redirect(w, r, "/admin/"+a.resource)
}

func (s *Server) editReference(w http.ResponseWriter, r *http.Request) {
	a, ok := s.referenceAdminFor(w, r)
	if !ok {
		return
	}
	id, err := utils.ParseID(mux.Vars(r)["id"])
	if err != nil {
		s.renderStatus(w, r, http.StatusNotFound)
		return
	}
	in, err := a.get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.renderReferenceForm(w, r, http.StatusOK, a, id, in)
}

func (s *Server) updateReference(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	a, ok := s.referenceAdminFor(w, r)
	if !ok {
		return
	}
	id, err := utils.ParseID(mux.Vars(r)["id"])
	if err != nil {
		s.renderStatus(w, r, http.StatusNotFound)
		return
	}
	in := parseReferenceForm(r, a.fields)
	if in.Name == "" {
		st.notice(st.loc.SaveInvalid(a.entity, "The name is required"))
		s.renderReferenceForm(w, r, http.StatusUnprocessableEntity, a, id, in)
		return
	}
	if err := a.update(r.Context(), st.scope, id, in); err != nil {
		st.notice(st.loc.SaveFailed(a.entity, err))
		s.renderReferenceForm(w, r, http.StatusUnprocessableEntity, a, id, in)
		return
	}
	st.notice(st.loc.Saved(a.entity))
	s.redirect(w, r, "/admin/"+a.resource)
}

func (s *Server) deleteReference(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	a, ok := s.referenceAdminFor(w, r)
	if !ok {
		return
	}
	id, err := utils.ParseID(mux.Vars(r)["id"])
	if err != nil {
		s.renderStatus(w, r, http.StatusNotFound)
		return
	}
	if err := a.remove(r.Context(), st.scope, id); err != nil {
		st.notice(st.loc.DeleteFailed(a.entity, err))
	} else {
		st.log().Info("Reference data deleted", "resource", a.resource, "id", id)
		st.notice(st.loc.Deleted(a.entity))
	}
	s.redirect(w, r, "/admin/"+a.resource)
}

type userListData struct {
	Users []domain.User
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r.Context())
	users, err := s.deps.Users.List(r.Context(), st.scope)
	if err != nil {
		st.notice(st.loc.LoadFailed(notify.EntityUsers, err))
		s.render(w, r, http.StatusOK, "users", "Users", userListData{})
		return
	}
	s.render(w, r, http.StatusOK, "users", "Users", userListData{Users: users})
}
