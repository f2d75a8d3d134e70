package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart_edu_quiz/internal/app/form"
	"smart_edu_quiz/internal/common"
	"smart_edu_quiz/internal/domain/model"
)

func TestCategoryService_EnsureDefaultsIsIdempotent(t *testing.T) {
	f := newFixture(t)
	svc := NewCategoryService(f.categories)
	ctx := context.Background()
	f.category(t, "Math")

	created, err := svc.EnsureDefaults(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(model.DefaultCategories)-1, created)

	created, err = svc.EnsureDefaults(ctx)
	require.NoError(t, err)
	assert.Zero(t, created)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(model.DefaultCategories))
}

func TestCategoryService_Create(t *testing.T) {
	f := newFixture(t)
	svc := NewCategoryService(f.categories)
	ctx := context.Background()
	teacher := f.viewer(t, "teach", model.RoleTeacher)
	student := f.viewer(t, "stud", model.RoleStudent)

	c, err := svc.Create(ctx, teacher, form.CategoryForm{Name: "Geography", Description: "Maps and places"})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultCategoryIcon, c.Icon)

	got, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Geography", got.Name)

	_, err = svc.Create(ctx, student, form.CategoryForm{Name: "Art", Description: "x"})
	assert.ErrorIs(t, err, common.ErrForbidden)

	_, err = svc.Create(ctx, teacher, form.CategoryForm{Name: "Art"})
	assert.ErrorIs(t, err, common.ErrValidation)
}
