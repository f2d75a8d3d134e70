package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"smart_edu_quiz/internal/common"
	"smart_edu_quiz/internal/domain/model"
)

type QuizRepository interface {
	// CreateWithQuestions inserts the quiz and its questions in one transaction,
	// setting generated IDs.
	CreateWithQuestions(ctx context.Context, quiz *model.Quiz, questions []model.Question) error
	FindByID(ctx context.Context, id int64) (*model.Quiz, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]model.Quiz, error)
	CountByCreator(ctx context.Context, userID int64) (int, error)
	ListQuestions(ctx context.Context, quizID int64) ([]model.Question, error)
	FindQuestionsByIDs(ctx context.Context, ids []int64) ([]model.Question, error)
}

type pgQuizRepository struct {
	db *sql.DB
}

func NewPgQuizRepository(db *sql.DB) QuizRepository {
	return &pgQuizRepository{db: db}
}

const questionColumns = `id, quiz_id, text, correct_answer, option1, option2, option3, option4`

func (r *pgQuizRepository) CreateWithQuestions(ctx context.Context, quiz *model.Quiz, questions []model.Question) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("pgQuizRepository.CreateWithQuestions begin: %w", err)
	}
	defer tx.Rollback() // Rollback if not committed

	query := `INSERT INTO quizzes (title, slug, category_id, created_by)
	          VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err = tx.QueryRowContext(ctx, query, quiz.Title, quiz.Slug, quiz.CategoryID, quiz.CreatedByID).
		Scan(&quiz.ID, &quiz.CreatedAt)
	if err != nil {
		return fmt.Errorf("pgQuizRepository.CreateWithQuestions quiz: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO questions (quiz_id, text, correct_answer, option1, option2, option3, option4)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`)
	if err != nil {
		return fmt.Errorf("pgQuizRepository.CreateWithQuestions prepare: %w", err)
	}
	defer stmt.Close()

	for i := range questions {
		q := &questions[i]
		q.QuizID = quiz.ID
		if err := stmt.QueryRowContext(ctx, q.QuizID, q.Text, q.CorrectAnswer, q.Option1, q.Option2, q.Option3, q.Option4).Scan(&q.ID); err != nil {
			return fmt.Errorf("pgQuizRepository.CreateWithQuestions question %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("pgQuizRepository.CreateWithQuestions commit: %w", err)
	}
	return nil
}

func (r *pgQuizRepository) FindByID(ctx context.Context, id int64) (*model.Quiz, error) {
	query := `SELECT id, title, slug, category_id, created_by, created_at FROM quizzes WHERE id = $1`
	q := &model.Quiz{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&q.ID, &q.Title, &q.Slug, &q.CategoryID, &q.CreatedByID, &q.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgQuizRepository.FindByID: %w", err)
	}
	return q, nil
}

func (r *pgQuizRepository) ListByCategory(ctx context.Context, categoryID int64) ([]model.Quiz, error) {
	query := `SELECT id, title, slug, category_id, created_by, created_at
	          FROM quizzes WHERE category_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("pgQuizRepository.ListByCategory query: %w", err)
	}
	defer rows.Close()

	quizzes := []model.Quiz{}
	for rows.Next() {
		var q model.Quiz
		if err := rows.Scan(&q.ID, &q.Title, &q.Slug, &q.CategoryID, &q.CreatedByID, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgQuizRepository.ListByCategory scan: %w", err)
		}
		quizzes = append(quizzes, q)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgQuizRepository.ListByCategory rows.Err: %w", err)
	}
	return quizzes, nil
}

func (r *pgQuizRepository) CountByCreator(ctx context.Context, userID int64) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM quizzes WHERE created_by = $1`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("pgQuizRepository.CountByCreator: %w", err)
	}
	return n, nil
}

func (r *pgQuizRepository) ListQuestions(ctx context.Context, quizID int64) ([]model.Question, error) {
	return r.queryQuestions(ctx, "ListQuestions",
		`SELECT `+questionColumns+` FROM questions WHERE quiz_id = $1 ORDER BY id ASC`, quizID)
}

func (r *pgQuizRepository) FindQuestionsByIDs(ctx context.Context, ids []int64) ([]model.Question, error) {
	if len(ids) == 0 {
		return []model.Question{}, nil
	}
	// Placeholders for ids like ($1, $2, $3)
	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT %s FROM questions WHERE id IN (%s) ORDER BY id ASC`, questionColumns, strings.Join(placeholders, ","))
	return r.queryQuestions(ctx, "FindQuestionsByIDs", query, args...)
}

func (r *pgQuizRepository) queryQuestions(ctx context.Context, op, query string, args ...interface{}) ([]model.Question, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgQuizRepository.%s query: %w", op, err)
	}
	defer rows.Close()

	questions := []model.Question{}
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.QuizID, &q.Text, &q.CorrectAnswer, &q.Option1, &q.Option2, &q.Option3, &q.Option4); err != nil {
			return nil, fmt.Errorf("pgQuizRepository.%s scan: %w", op, err)
		}
		questions = append(questions, q)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgQuizRepository.%s rows.Err: %w", op, err)
	}
	return questions, nil
}
