package rest

import (
	"context"
	"net/http"

	"investiga-web/internal/domain"
	"investiga-web/internal/repository"
)

type projectRepository struct {
	c *Client
}

func NewProjectRepository(c *Client) repository.ProjectRepository {
	return &projectRepository{c: c}
}

func (r *projectRepository) Search(ctx context.Context, q domain.ProjectQuery) (*domain.ProjectPage, error) {
	var page domain.ProjectPage
	if _, err := r.c.do(ctx, call{op: "projects.search", method: http.MethodGet, path: "/projects", query: q.Values()}, &page); err != nil {
		return nil, err
	}
	if page.Projects == nil {
		page.Projects = []domain.Project{}
	}
	return &page, nil
}

func (r *projectRepository) GetByID(ctx context.Context, id int32) (*domain.Project, error) {
	var p domain.Project
	if _, err := r.c.do(ctx, call{op: "projects.get", method: http.MethodGet, path: idPath("/projects/%d", id)}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepository) Create(ctx context.Context, in domain.ProjectInput) (*domain.Project, error) {
	var p domain.Project
	if _, err := r.c.do(ctx, call{op: "projects.create", method: http.MethodPost, path: "/projects", body: in}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepository) Update(ctx context.Context, id int32, in domain.ProjectInput) (*domain.Project, error) {
	var p domain.Project
	if _, err := r.c.do(ctx, call{op: "projects.update", method: http.MethodPut, path: idPath("/projects/%d", id), body: in}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.c.do(ctx, call{op: "projects.delete", method: http.MethodDelete, path: idPath("/projects/%d", id)}, nil)
	return err
}

func (r *projectRepository) SetFavorite(ctx context.Context, id int32, favorite bool) error {
	method := http.MethodPost
	if !favorite {
		method = http.MethodDelete
	}
	_, err := r.c.do(ctx, call{op: "projects.favorite", method: method, path: idPath("/projects/favorite/%d", id)}, nil)
	return err
}

func (r *projectRepository) ListRequests(ctx context.Context, id int32) ([]domain.EnrollmentRecord, error) {
	var records []domain.EnrollmentRecord
	if _, err := r.c.do(ctx, call{op: "projects.requests", method: http.MethodGet, path: idPath("/projects/%d/requests", id)}, &records); err != nil {
		return nil, err
	}
	return records, nil
}
