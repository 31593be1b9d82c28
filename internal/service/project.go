package service

import (
	"context"

	"investiga-web/internal/cache"
	"investiga-web/internal/domain"
	"investiga-web/internal/logger"
	"investiga-web/internal/repository"
	"investiga-web/internal/sanitize"
)

type projectService struct {
	repo repository.ProjectRepository
}

func NewProjectService(repo repository.ProjectRepository) ProjectService {
	return &projectService{repo: repo}
}

func (s *projectService) Search(ctx context.Context, scope *cache.Scope, q domain.ProjectQuery) (*domain.ProjectPage, error) {
	key := cache.ProjectListKey(q.Values().Encode())
	return cache.Fetch(ctx, scope, key, func(ctx context.Context) (*domain.ProjectPage, error) {
		return s.repo.Search(ctx, q)
	})
}

func (s *projectService) Get(ctx context.Context, scope *cache.Scope, id int32) (*domain.Project, error) {
	return cache.Fetch(ctx, scope, cache.ProjectKey(id), func(ctx context.Context) (*domain.Project, error) {
		return s.repo.GetByID(ctx, id)
	})
}

func (s *projectService) Requests(ctx context.Context, scope *cache.Scope, id int32) ([]domain.EnrollmentRecord, error) {
	return cache.Fetch(ctx, scope, cache.ProjectRequestsKey(id), func(ctx context.Context) ([]domain.EnrollmentRecord, error) {
		return s.repo.ListRequests(ctx, id)
	})
}

func (s *projectService) Create(ctx context.Context, scope *cache.Scope, in domain.ProjectInput) (*domain.Project, error) {
	logger.EnterMethod("projectService.Create", "name", in.Name)
	in.Description = sanitize.String(in.Description)
	p, err := s.repo.Create(ctx, in)
	if err != nil {
		logger.ExitMethodWithError("projectService.Create", err, "name", in.Name)
		return nil, err
	}
	scope.InvalidatePrefix(cache.ProjectListPrefix)
	scope.Invalidate(cache.CurrentUserKey)
	logger.ExitMethod("projectService.Create", "projectID", p.ID)
	return p, nil
}

func (s *projectService) Update(ctx context.Context, scope *cache.Scope, id int32, in domain.ProjectInput) (*domain.Project, error) {
	logger.EnterMethod("projectService.Update", "projectID", id)
	in.Description = sanitize.String(in.Description)
	p, err := s.repo.Update(ctx, id, in)
	if err != nil {
		logger.ExitMethodWithError("projectService.Update", err, "projectID", id)
		return nil, err
	}
	scope.Invalidate(cache.ProjectKey(id))
	scope.InvalidatePrefix(cache.ProjectListPrefix)
	logger.ExitMethod("projectService.Update", "projectID", id)
	return p, nil
}

func (s *projectService) Delete(ctx context.Context, scope *cache.Scope, id int32) error {
	logger.EnterMethod("projectService.Delete", "projectID", id)
	if err := s.repo.Delete(ctx, id); err != nil {
		logger.ExitMethodWithError("projectService.Delete", err, "projectID", id)
		return err
	}
	scope.Invalidate(cache.ProjectKey(id), cache.ProjectRequestsKey(id), cache.CurrentUserKey)
	scope.InvalidatePrefix(cache.ProjectListPrefix)
	logger.ExitMethod("projectService.Delete", "projectID", id)
	return nil
}

func (s *projectService) SetFavorite(ctx context.Context, scope *cache.Scope, id int32, favorite bool) error {
	logger.EnterMethod("projectService.SetFavorite", "projectID", id, "favorite", favorite)
	if err := s.repo.SetFavorite(ctx, id, favorite); err != nil {
		logger.ExitMethodWithError("projectService.SetFavorite", err, "projectID", id)
		return err
	}
	logger.ExitMethod("projectService.SetFavorite", "projectID", id)
	scope.Invalidate(cache.ProjectKey(id))
	scope.InvalidatePrefix(cache.ProjectListPrefix)
	return nil
}
