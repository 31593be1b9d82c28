package service

import (
	"context"
	"strings"

	"investiga-web/internal/cache"
	"investiga-web/internal/domain"
	"investiga-web/internal/logger"
	"investiga-web/internal/repository"

	"golang.org/x/sync/errgroup"
)

type referenceService[T any, In any] struct {
	repo      repository.ResourceRepository[T, In]
	resource  string
	relations []string
}

// NewReferenceService caches the list of resource, loaded with the given relations
func NewReferenceService[T any, In any](repo repository.ResourceRepository[T, In], resource string, relations ...string) ReferenceService[T, In] {
	return &referenceService[T, In]{repo: repo, resource: resource, relations: relations}
}

func (s *referenceService[T, In]) listKey() string {
	return cache.ReferenceListKey(s.resource, strings.Join(s.relations, ","))
}

func (s *referenceService[T, In]) List(ctx context.Context, scope *cache.Scope) ([]T, error) {
	return cache.Fetch(ctx, scope, s.listKey(), func(ctx context.Context) ([]T, error) {
		return s.repo.List(ctx, s.relations...)
	})
}

func (s *referenceService[T, In]) Get(ctx context.Context, id int32) (*T, error) {
	return s.repo.GetByID(ctx, id, s.relations...)
}

func (s *referenceService[T, In]) Create(ctx context.Context, scope *cache.Scope, in In) (*T, error) {
	logger.EnterMethod("referenceService.Create", "resource", s.resource)
	item, err := s.repo.Create(ctx, in)
	if err != nil {
		logger.ExitMethodWithError("referenceService.Create", err, "resource", s.resource)
		return nil, err
	}
	s.invalidate(scope)
	logger.ExitMethod("referenceService.Create", "resource", s.resource)
	return item, nil
}

func (s *referenceService[T, In]) Update(ctx context.Context, scope *cache.Scope, id int32, in In) (*T, error) {
	logger.EnterMethod("referenceService.Update", "resource", s.resource, "id", id)
	item, err := s.repo.Update(ctx, id, in)
	if err != nil {
		logger.ExitMethodWithError("referenceService.Update", err, "resource", s.resource, "id", id)
		return nil, err
	}
	s.invalidate(scope)
	logger.ExitMethod("referenceService.Update", "resource", s.resource, "id", id)
	return item, nil
}

func (s *referenceService[T, In]) Delete(ctx context.Context, scope *cache.Scope, id int32) error {
	logger.EnterMethod("referenceService.Delete", "resource", s.resource, "id", id)
	if err := s.repo.Delete(ctx, id); err != nil {
		logger.ExitMethodWithError("referenceService.Delete", err, "resource", s.resource, "id", id)
		return err
	}
	s.invalidate(scope)
	logger.ExitMethod("referenceService.Delete", "resource", s.resource, "id", id)
	return nil
}

// invalidate drops every cached list of this resource, whatever relations it was loaded with
func (s *referenceService[T, In]) invalidate(scope *cache.Scope) {
	scope.InvalidatePrefix(s.resource + "?")
}

// Catalog groups the reference collections used by the project form and filters
type Catalog struct {
	Institutions InstitutionService
	Facilities   FacilityService
	Departments  DepartmentService
	Interests    InterestService
}

type FormOptions struct {
	Institutions []domain.Institution
	Facilities   []domain.Facility
	Departments  []domain.ResearchDepartment
	Interests    []domain.Interest
}

// FormOptions loads every option list in parallel; the first failure cancels the rest
func (c *Catalog) FormOptions(ctx context.Context, scope *cache.Scope) (*FormOptions, error) {
	var out FormOptions
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Institutions, err = c.Institutions.List(ctx, scope)
		return err
	})
	g.Go(func() (err error) {
		out.Facilities, err = c.Facilities.List(ctx, scope)
		return err
	})
	g.Go(func() (err error) {
		out.Departments, err = c.Departments.List(ctx, scope)
		return err
	})
	g.Go(func() (err error) {
		out.Interests, err = c.Interests.List(ctx, scope)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
