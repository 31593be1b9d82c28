package service

import (
	"context"
	"testing"
	"time"

	"investiga-web/internal/cache"
	"investiga-web/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProjectService_GetIsCached(t *testing.T) {
	repo := new(MockProjectRepo)
	svc := NewProjectService(repo)
	scope := cache.NewQueryCache(time.Minute, nil).Scoped("s")
	ctx := context.Background()

	repo.On("GetByID", ctx, int32(5)).Return(&domain.Project{ID: 5, Name: "Genómica"}, nil).Once()

	p1, err := svc.Get(ctx, scope, 5)
	require.NoError(t, err)
	p2, err := svc.Get(ctx, scope, 5)
	require.NoError(t, err)
	assert.Same(t, p1, p2)
	repo.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestProjectService_SetFavoriteInvalidates(t *testing.T) {
	repo := new(MockProjectRepo)
	svc := NewProjectService(repo)
	scope := cache.NewQueryCache(time.Minute, nil).Scoped("s")
	ctx := context.Background()

	q := domain.ProjectQuery{Search: "bio"}
	repo.On("GetByID", ctx, int32(5)).Return(&domain.Project{ID: 5}, nil)
	repo.On("Search", ctx, q).Return(&domain.ProjectPage{Total: 1}, nil)
	_, _ = svc.Get(ctx, scope, 5)
	_, _ = svc.Search(ctx, scope, q)

	repo.On("SetFavorite", ctx, int32(5), true).Return(nil)
	require.NoError(t, svc.SetFavorite(ctx, scope, 5, true))

	_, ok := scope.Peek(cache.ProjectKey(5))
	assert.False(t, ok)
	_, ok = scope.Peek(cache.ProjectListKey(q.Values().Encode()))
	assert.False(t, ok)
}

func TestProjectService_FailedUpdateKeepsCache(t *testing.T) {
	repo := new(MockProjectRepo)
	svc := NewProjectService(repo)
	scope := cache.NewQueryCache(time.Minute, nil).Scoped("s")
	ctx := context.Background()

	repo.On("GetByID", ctx, int32(5)).Return(&domain.Project{ID: 5, Name: "old"}, nil)
	_, _ = svc.Get(ctx, scope, 5)

	repo.On("Update", ctx, int32(5), mock.Anything).Return(nil, assert.AnError)
	_, err := svc.Update(ctx, scope, 5, domain.ProjectInput{Name: "new"})
	assert.ErrorIs(t, err, assert.AnError)

	v, ok := scope.Peek(cache.ProjectKey(5))
	require.True(t, ok)
	assert.Equal(t, "old", v.(*domain.Project).Name)
}

func TestProjectService_CreateSanitizesDescription(t *testing.T) {
	repo := new(MockProjectRepo)
	svc := NewProjectService(repo)
	scope := cache.NewQueryCache(time.Minute, nil).Scoped("s")

	repo.On("Create", mock.Anything, mock.MatchedBy(func(in domain.ProjectInput) bool {
		return in.Description == "<p>ok</p>"
	})).Return(&domain.Project{ID: 9}, nil)

	p, err := svc.Create(context.Background(), scope, domain.ProjectInput{Name: "x", Description: `<p onclick="x()">ok</p><script>bad()</script>`})
	require.NoError(t, err)
	assert.Equal(t, int32(9), p.ID)
	repo.AssertExpectations(t)
}
