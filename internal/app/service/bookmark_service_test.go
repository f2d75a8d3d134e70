package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart_edu_quiz/internal/domain/model"
)

func TestBookmarkService_ToggleAndList(t *testing.T) {
	f := newFixture(t)
	svc := NewBookmarkService(f.quizzes, f.store)
	ctx := context.Background()
	teacher := f.viewer(t, "teach", model.RoleTeacher)
	cat := f.category(t, "History")
	_, qs := f.quiz(t, "Kings", cat.ID, teacher.User.ID, "A", "B", "C")

	for _, id := range []int64{qs[2].ID, qs[0].ID, 424242} {
		on, err := svc.Toggle(ctx, sid, id)
		require.NoError(t, err)
		assert.True(t, on)
	}

	list, err := svc.List(ctx, sid)
	require.NoError(t, err)
	require.Len(t, list, 2, "unknown ids are skipped")
	assert.Equal(t, qs[2].ID, list[0].ID, "bookmark order is kept")

	on, err := svc.Toggle(ctx, sid, qs[2].ID)
	require.NoError(t, err)
	assert.False(t, on)

	list, err = svc.List(ctx, sid)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, qs[0].ID, list[0].ID)

	empty, err := svc.List(ctx, "other-browser")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
