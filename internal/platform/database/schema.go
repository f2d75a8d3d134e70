package database

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username VARCHAR(150) NOT NULL UNIQUE,
		email VARCHAR(254) NOT NULL DEFAULT '',
		full_name VARCHAR(150) NOT NULL DEFAULT '',
		hashed_password TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		role VARCHAR(10) NOT NULL CHECK (role IN ('student', 'teacher')),
		class_section VARCHAR(50),
		department VARCHAR(100)
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		icon VARCHAR(50) NOT NULL DEFAULT '📚',
		description TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS quizzes (
		id BIGSERIAL PRIMARY KEY,
		title VARCHAR(200) NOT NULL,
		slug VARCHAR(220) NOT NULL,
		category_id BIGINT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
		created_by BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS questions (
		id BIGSERIAL PRIMARY KEY,
		quiz_id BIGINT NOT NULL REFERENCES quizzes(id) ON DELETE CASCADE,
		text TEXT NOT NULL,
		correct_answer VARCHAR(200) NOT NULL,
		option1 VARCHAR(200) NOT NULL,
		option2 VARCHAR(200) NOT NULL,
		option3 VARCHAR(200) NOT NULL,
		option4 VARCHAR(200) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS quiz_attempts (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		quiz_id BIGINT NOT NULL REFERENCES quizzes(id) ON DELETE CASCADE,
		score INT NOT NULL DEFAULT 0,
		total_questions INT NOT NULL,
		completed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS user_answers (
		id BIGSERIAL PRIMARY KEY,
		attempt_id BIGINT NOT NULL REFERENCES quiz_attempts(id) ON DELETE CASCADE,
		question_id BIGINT NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
		selected_answer VARCHAR(200) NOT NULL DEFAULT '',
		is_correct BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_quizzes_category ON quizzes(category_id)`,
	`CREATE INDEX IF NOT EXISTS idx_attempts_user ON quiz_attempts(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_answers_attempt ON user_answers(attempt_id)`,
}

// Migrate creates missing tables. It is safe to run on every start.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate statement %d: %w", i+1, err)
		}
	}
	return nil
}
