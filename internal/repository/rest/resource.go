package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"investiga-web/internal/domain"
	"investiga-web/internal/repository"
)

// Resource is the generic CRUD client for one backend collection
type Resource[T any, In any] struct {
	c    *Client
	name string
}

func NewResource[T any, In any](c *Client, name string) *Resource[T, In] {
	return &Resource[T, In]{c: c, name: strings.Trim(name, "/")}
}

func relationsQuery(relations []string) url.Values {
	if len(relations) == 0 {
		return nil
	}
	return url.Values{"relations": {strings.Join(relations, ",")}}
}

func (r *Resource[T, In]) path(id int32) string {
	if id == 0 {
		return "/" + r.name
	}
	return fmt.Sprintf("/%s/%d", r.name, id)
}

func (r *Resource[T, In]) op(verb string) string {
	return r.name + "." + verb
}

func (r *Resource[T, In]) List(ctx context.Context, relations ...string) ([]T, error) {
	var items []T
	req := call{op: r.op("list"), method: http.MethodGet, path: r.path(0), query: relationsQuery(relations)}
	if _, err := r.c.do(ctx, req, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (r *Resource[T, In]) GetByID(ctx context.Context, id int32, relations ...string) (*T, error) {
	var item T
	req := call{op: r.op("get"), method: http.MethodGet, path: r.path(id), query: relationsQuery(relations)}
	if _, err := r.c.do(ctx, req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Resource[T, In]) Create(ctx context.Context, in In) (*T, error) {
	var item T
	if _, err := r.c.do(ctx, call{op: r.op("create"), method: http.MethodPost, path: r.path(0), body: in}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Resource[T, In]) Update(ctx context.Context, id int32, in In) (*T, error) {
	var item T
	if _, err := r.c.do(ctx, call{op: r.op("update"), method: http.MethodPut, path: r.path(id), body: in}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Resource[T, In]) Delete(ctx context.Context, id int32) error {
	_, err := r.c.do(ctx, call{op: r.op("delete"), method: http.MethodDelete, path: r.path(id)}, nil)
	return err
}

func NewInstitutionRepository(c *Client) repository.InstitutionRepository {
	return NewResource[domain.Institution, domain.ReferenceInput](c, "institutions")
}

func NewFacilityRepository(c *Client) repository.FacilityRepository {
	return NewResource[domain.Facility, domain.ReferenceInput](c, "facilities")
}

func NewDepartmentRepository(c *Client) repository.DepartmentRepository {
	return NewResource[domain.ResearchDepartment, domain.ReferenceInput](c, "research-departments")
}

func NewInterestRepository(c *Client) repository.InterestRepository {
	return NewResource[domain.Interest, domain.ReferenceInput](c, "interests")
}

func NewUserRepository(c *Client) repository.UserRepository {
	return NewResource[domain.User, domain.User](c, "users")
}
