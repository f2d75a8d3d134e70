package service

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"smart_edu_quiz/internal/common/security"
	"smart_edu_quiz/internal/domain/model"
	"smart_edu_quiz/internal/domain/repository"
	"smart_edu_quiz/internal/domain/repository/inmem"
	"smart_edu_quiz/internal/platform/session"
)

type fixture struct {
	db         *inmem.DB
	users      repository.UserRepository
	categories repository.CategoryRepository
	quizzes    repository.QuizRepository
	attempts   repository.AttemptRepository
	store      *session.MemoryStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	security.InitJWT([]byte("test-secret"), time.Hour)

	db := inmem.NewDB()
	clock := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	db.SetClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	})
	return &fixture{
		db:         db,
		users:      inmem.NewUserRepository(db),
		categories: inmem.NewCategoryRepository(db),
		quizzes:    inmem.NewQuizRepository(db),
		attempts:   inmem.NewAttemptRepository(db),
		store:      session.NewMemoryStore(),
	}
}

func (f *fixture) viewer(t *testing.T, username string, role model.Role) *model.Viewer {
	t.Helper()
	u := &model.User{Username: username, HashedPassword: "x"}
	p := &model.Profile{Role: role}
	require.NoError(t, f.users.CreateWithProfile(context.Background(), u, p))
	return &model.Viewer{User: *u, Profile: *p}
}

func (f *fixture) category(t *testing.T, name string) *model.Category {
	t.Helper()
	c := &model.Category{Name: name, Icon: model.DefaultCategoryIcon, Description: name + " quizzes"}
	require.NoError(t, f.categories.Create(context.Background(), c))
	return c
}

// quiz creates a quiz whose questions have the given correct answers. The
// question text is the index, so tests can find the correct answer by text.
func (f *fixture) quiz(t *testing.T, title string, categoryID, teacherID int64, correct ...string) (*model.Quiz, []model.Question) {
	t.Helper()
	qs := make([]model.Question, len(correct))
	for i, c := range correct {
		qs[i] = model.Question{
			Text:          string(rune('a' + i)),
			CorrectAnswer: c,
			Option1:       c,
			Option2:       "X",
			Option3:       "Y",
			Option4:       "Z",
		}
	}
	qz := &model.Quiz{Title: title, Slug: title, CategoryID: categoryID, CreatedByID: teacherID}
	require.NoError(t, f.quizzes.CreateWithQuestions(context.Background(), qz, qs))
	return qz, qs
}

func (f *fixture) attempt(t *testing.T, userID, quizID int64, score, total int) {
	t.Helper()
	a := &model.QuizAttempt{UserID: userID, QuizID: quizID, Score: score, TotalQuestions: total}
	require.NoError(t, f.attempts.CreateAttempt(context.Background(), a))
}

func (f *fixture) sessionService(limit int) *QuizSessionService {
	return NewQuizSessionService(f.quizzes, f.attempts, f.store, limit, time.Minute, rand.New(rand.NewSource(7)))
}
