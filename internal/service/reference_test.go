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

func TestReferenceService_ListCachedAndInvalidated(t *testing.T) {
	repo := new(MockResourceRepo[domain.Facility, domain.ReferenceInput])
	svc := NewReferenceService[domain.Facility, domain.ReferenceInput](repo, "facilities", "institution")
	scope := cache.NewQueryCache(time.Minute, nil).Scoped("s")
	ctx := context.Background()

	repo.On("List", ctx, []string{"institution"}).Return([]domain.Facility{{ID: 1, Name: "Ciencias"}}, nil)

	items, err := svc.List(ctx, scope)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	_, _ = svc.List(ctx, scope)
	repo.AssertNumberOfCalls(t, "List", 1)

	repo.On("Delete", ctx, int32(1)).Return(nil)
	require.NoError(t, svc.Delete(ctx, scope, 1))

	_, _ = svc.List(ctx, scope)
	repo.AssertNumberOfCalls(t, "List", 2)
}

func TestCatalog_FormOptions(t *testing.T) {
	ctx := context.Background()
	scope := cache.NewQueryCache(time.Minute, nil).Scoped("s")

	inst := new(MockResourceRepo[domain.Institution, domain.ReferenceInput])
	fac := new(MockResourceRepo[domain.Facility, domain.ReferenceInput])
	dep := new(MockResourceRepo[domain.ResearchDepartment, domain.ReferenceInput])
	intr := new(MockResourceRepo[domain.Interest, domain.ReferenceInput])

	inst.On("List", mock.Anything, []string(nil)).Return([]domain.Institution{{ID: 1}}, nil)
	fac.On("List", mock.Anything, []string(nil)).Return([]domain.Facility{{ID: 2}}, nil)
	dep.On("List", mock.Anything, []string(nil)).Return([]domain.ResearchDepartment{{ID: 3}}, nil)
	intr.On("List", mock.Anything, []string(nil)).Return([]domain.Interest{{ID: 4}, {ID: 5}}, nil)

	c := &Catalog{
		Institutions: NewReferenceService[domain.Institution, domain.ReferenceInput](inst, "institutions"),
		Facilities:   NewReferenceService[domain.Facility, domain.ReferenceInput](fac, "facilities"),
		Departments:  NewReferenceService[domain.ResearchDepartment, domain.ReferenceInput](dep, "research-departments"),
		Interests:    NewReferenceService[domain.Interest, domain.ReferenceInput](intr, "interests"),
	}

	opts, err := c.FormOptions(ctx, scope)
	require.NoError(t, err)
	assert.Len(t, opts.Institutions, 1)
	assert.Len(t, opts.Facilities, 1)
	assert.Len(t, opts.Departments, 1)
	assert.Len(t, opts.Interests, 2)
}

func TestCatalog_FormOptionsFailure(t *testing.T) {
	scope := cache.NewQueryCache(time.Minute, nil).Scoped("s")

	inst := new(MockResourceRepo[domain.Institution, domain.ReferenceInput])
	fac := new(MockResourceRepo[domain.Facility, domain.ReferenceInput])
	dep := new(MockResourceRepo[domain.ResearchDepartment, domain.ReferenceInput])
	intr := new(MockResourceRepo[domain.Interest, domain.ReferenceInput])

	inst.On("List", mock.Anything, mock.Anything).Return([]domain.Institution{}, nil)
	fac.On("List", mock.Anything, mock.Anything).Return(nil, assert.AnError)
	dep.On("List", mock.Anything, mock.Anything).Return([]domain.ResearchDepartment{}, nil)
	intr.On("List", mock.Anything, mock.Anything).Return([]domain.Interest{}, nil)

	c := &Catalog{
		Institutions: NewReferenceService[domain.Institution, domain.ReferenceInput](inst, "institutions"),
		Facilities:   NewReferenceService[domain.Facility, domain.ReferenceInput](fac, "facilities"),
		Departments:  NewReferenceService[domain.ResearchDepartment, domain.ReferenceInput](dep, "research-departments"),
		Interests:    NewReferenceService[domain.Interest, domain.ReferenceInput](intr, "interests"),
	}

	_, err := c.FormOptions(context.Background(), scope)
	assert.ErrorIs(t, err, assert.AnError)
}
