package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart_edu_quiz/internal/common"
	"smart_edu_quiz/internal/domain/model"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestPgUserRepository_CreateWithProfile(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPgUserRepository(db)
	now := time.Now()
	section := "10A"

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("sita", "sita@example.com", "Sita Rai", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), now))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO profiles`)).
		WithArgs(int64(7), "student", "10A", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	user := &model.User{Username: "sita", Email: "sita@example.com", FullName: "Sita Rai", HashedPassword: "hash"}
	profile := &model.Profile{Role: model.RoleStudent, ClassSection: &section}
	require.NoError(t, repo.CreateWithProfile(context.Background(), user, profile))

	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, int64(7), profile.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgUserRepository_CreateWithProfileConflict(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPgUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	err := repo.CreateWithProfile(context.Background(), &model.User{Username: "sita"}, &model.Profile{Role: model.RoleStudent})
	assert.ErrorIs(t, err, common.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgUserRepository_FindByUsernameNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPgUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE username = $1`)).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestPgUserRepository_FindProfileByUserID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPgUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM profiles WHERE user_id = $1`)).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "role", "class_section", "department"}).
			AddRow(int64(3), "teacher", nil, "Science"))

	p, err := repo.FindProfileByUserID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, model.RoleTeacher, p.Role)
	assert.Nil(t, p.ClassSection)
	require.NotNil(t, p.Department)
	assert.Equal(t, "Science", *p.Department)
}

func TestPgCategoryRepository_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPgCategoryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, icon, description FROM categories ORDER BY id ASC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "icon", "description"}).
			AddRow(int64(1), "Math", "➕", "Mathematics quizzes").
			AddRow(int64(2), "Science", "🔬", "Science quizzes"))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Science", got[1].Name)
}

func TestPgCategoryRepository_FindByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPgCategoryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM categories WHERE id = $1`)).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 99)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestPgQuizRepository_CreateWithQuestions(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPgQuizRepository(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO quizzes`)).
		WithArgs("Fractions", "fractions", int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(11), now))
	prep := mock.ExpectPrepare(regexp.QuoteMeta(`INSERT INTO questions`))
	prep.ExpectQuery().
		WithArgs(int64(11), "1/2+1/2?", "1", "1", "2", "0", "1/4").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(100)))
	prep.ExpectQuery().
		WithArgs(int64(11), "2*3?", "6", "5", "6", "7", "8").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(101)))
	mock.ExpectCommit()

	quiz := &model.Quiz{Title: "Fractions", Slug: "fractions", CategoryID: 1, CreatedByID: 2}
	questions := []model.Question{
		{Text: "1/2+1/2?", CorrectAnswer: "1", Option1: "1", Option2: "2", Option3: "0", Option4: "1/4"},
		{Text: "2*3?", CorrectAnswer: "6", Option1: "5", Option2: "6", Option3: "7", Option4: "8"},
	}
	require.NoError(t, repo.CreateWithQuestions(context.Background(), quiz, questions))

	assert.Equal(t, int64(11), quiz.ID)
	assert.Equal(t, int64(100), questions[0].ID)
	assert.Equal(t, int64(11), questions[1].QuizID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgQuizRepository_FindQuestionsByIDs(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPgQuizRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM questions WHERE id IN ($1,$2)`)).
		WithArgs(int64(5), int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "quiz_id", "text", "correct_answer", "option1", "option2", "option3", "option4"}).
			AddRow(int64(5), int64(1), "Q5", "A", "A", "B", "C", "D").
			AddRow(int64(9), int64(1), "Q9", "B", "A", "B", "C", "D"))

	got, err := repo.FindQuestionsByIDs(context.Background(), []int64{5, 9})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	empty, err := repo.FindQuestionsByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgAttemptRepository_UpdateScoreMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPgAttemptRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE quiz_attempts SET score = $1 WHERE id = $2`)).
		WithArgs(2, int64(40)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.UpdateScore(context.Background(), 40, 2), common.ErrNotFound)
}

func TestPgAttemptRepository_ListRecentByUser(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPgAttemptRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE a.user_id = $1 ORDER BY a.completed_at DESC, a.id DESC LIMIT $2`)).
		WithArgs(int64(4), 3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "username", "quiz_id", "title", "quiz_created_at",
			"category_id", "name", "icon", "score", "total_questions", "completed_at"}).
			AddRow(int64(8), int64(4), "sita", int64(11), "Fractions", now, int64(1), "Math", "➕", 2, 3, now))

	got, err := repo.ListRecentByUser(context.Background(), 4, 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Fractions", got[0].QuizTitle)
	assert.Equal(t, "Math", got[0].CategoryName)
	assert.Equal(t, 3, got[0].Total)
}
