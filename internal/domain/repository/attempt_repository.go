package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"smart_edu_quiz/internal/common"
	"smart_edu_quiz/internal/domain/model"
)

type AttemptRepository interface {
	CreateAttempt(ctx context.Context, attempt *model.QuizAttempt) error
	CreateAnswer(ctx context.Context, answer *model.UserAnswer) error
	UpdateScore(ctx context.Context, attemptID int64, score int) error
	FindByID(ctx context.Context, id int64) (*model.QuizAttempt, error)
	// ListAnswers returns the answers of an attempt in recording order, with
	// question text and correct answer filled in.
	ListAnswers(ctx context.Context, attemptID int64) ([]model.UserAnswer, error)
	// ListRecords returns every attempt joined with user, quiz and category.
	ListRecords(ctx context.Context) ([]model.AttemptRecord, error)
	// ListRecentByUser returns at most limit records of userID, newest first.
	ListRecentByUser(ctx context.Context, userID int64, limit int) ([]model.AttemptRecord, error)
}

type pgAttemptRepository struct {
	db *sql.DB
}

func NewPgAttemptRepository(db *sql.DB) AttemptRepository {
	return &pgAttemptRepository{db: db}
}

func (r *pgAttemptRepository) CreateAttempt(ctx context.Context, a *model.QuizAttempt) error {
	query := `INSERT INTO quiz_attempts (user_id, quiz_id, score, total_questions)
	          VALUES ($1, $2, $3, $4) RETURNING id, completed_at`
	err := r.db.QueryRowContext(ctx, query, a.UserID, a.QuizID, a.Score, a.TotalQuestions).Scan(&a.ID, &a.CompletedAt)
	if err != nil {
		return fmt.Errorf("pgAttemptRepository.CreateAttempt: %w", err)
	}
	return nil
}

func (r *pgAttemptRepository) CreateAnswer(ctx context.Context, ua *model.UserAnswer) error {
	query := `INSERT INTO user_answers (attempt_id, question_id, selected_answer, is_correct)
	          VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, ua.AttemptID, ua.QuestionID, ua.SelectedAnswer, ua.IsCorrect).Scan(&ua.ID)
	if err != nil {
		return fmt.Errorf("pgAttemptRepository.CreateAnswer: %w", err)
	}
	return nil
}

func (r *pgAttemptRepository) UpdateScore(ctx context.Context, attemptID int64, score int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE quiz_attempts SET score = $1 WHERE id = $2`, score, attemptID)
	if err != nil {
		return fmt.Errorf("pgAttemptRepository.UpdateScore: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgAttemptRepository.UpdateScore rows affected: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgAttemptRepository) FindByID(ctx context.Context, id int64) (*model.QuizAttempt, error) {
	query := `SELECT id, user_id, quiz_id, score, total_questions, completed_at FROM quiz_attempts WHERE id = $1`
	a := &model.QuizAttempt{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.UserID, &a.QuizID, &a.Score, &a.TotalQuestions, &a.CompletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgAttemptRepository.FindByID: %w", err)
	}
	return a, nil
}

func (r *pgAttemptRepository) ListAnswers(ctx context.Context, attemptID int64) ([]model.UserAnswer, error) {
	query := `SELECT ua.id, ua.attempt_id, ua.question_id, ua.selected_answer, ua.is_correct, q.text, q.correct_answer
	          FROM user_answers ua
	          JOIN questions q ON q.id = ua.question_id
	          WHERE ua.attempt_id = $1
	          ORDER BY ua.id ASC`
	rows, err := r.db.QueryContext(ctx, query, attemptID)
	if err != nil {
		return nil, fmt.Errorf("pgAttemptRepository.ListAnswers query: %w", err)
	}
	defer rows.Close()

	answers := []model.UserAnswer{}
	for rows.Next() {
		var ua model.UserAnswer
		if err := rows.Scan(&ua.ID, &ua.AttemptID, &ua.QuestionID, &ua.SelectedAnswer, &ua.IsCorrect,
			&ua.QuestionText, &ua.CorrectAnswer); err != nil {
			return nil, fmt.Errorf("pgAttemptRepository.ListAnswers scan: %w", err)
		}
		answers = append(answers, ua)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgAttemptRepository.ListAnswers rows.Err: %w", err)
	}
	return answers, nil
}

const recordSelect = `SELECT a.id, a.user_id, u.username, a.quiz_id, qz.title, qz.created_at,
	                 c.id, c.name, c.icon, a.score, a.total_questions, a.completed_at
	          FROM quiz_attempts a
	          JOIN users u ON u.id = a.user_id
	          JOIN quizzes qz ON qz.id = a.quiz_id
	          JOIN categories c ON c.id = qz.category_id`

func (r *pgAttemptRepository) ListRecords(ctx context.Context) ([]model.AttemptRecord, error) {
	return r.queryRecords(ctx, "ListRecords", recordSelect+` ORDER BY a.id ASC`)
}

func (r *pgAttemptRepository) ListRecentByUser(ctx context.Context, userID int64, limit int) ([]model.AttemptRecord, error) {
	return r.queryRecords(ctx, "ListRecentByUser",
		recordSelect+` WHERE a.user_id = $1 ORDER BY a.completed_at DESC, a.id DESC LIMIT $2`, userID, limit)
}

func (r *pgAttemptRepository) queryRecords(ctx context.Context, op, query string, args ...interface{}) ([]model.AttemptRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgAttemptRepository.%s query: %w", op, err)
	}
	defer rows.Close()

	records := []model.AttemptRecord{}
	for rows.Next() {
		var rec model.AttemptRecord
		if err := rows.Scan(&rec.AttemptID, &rec.UserID, &rec.Username, &rec.QuizID, &rec.QuizTitle, &rec.QuizCreatedAt,
			&rec.CategoryID, &rec.CategoryName, &rec.CategoryIcon, &rec.Score, &rec.Total, &rec.CompletedAt); err != nil {
			return nil, fmt.Errorf("pgAttemptRepository.%s scan: %w", op, err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgAttemptRepository.%s rows.Err: %w", op, err)
	}
	return records, nil
}
