package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"smart_edu_quiz/internal/common"
	"smart_edu_quiz/internal/domain/model"
)

type UserRepository interface {
	// CreateWithProfile inserts the user and its profile together and sets
	// user.ID and profile.UserID.
	CreateWithProfile(ctx context.Context, user *model.User, profile *model.Profile) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindProfileByUserID(ctx context.Context, userID int64) (*model.Profile, error)
	CountByRole(ctx context.Context, role model.Role) (int, error)
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

func (r *pgUserRepository) CreateWithProfile(ctx context.Context, user *model.User, profile *model.Profile) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("pgUserRepository.CreateWithProfile begin: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO users (username, email, full_name, hashed_password)
	          VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err = tx.QueryRowContext(ctx, query, user.Username, user.Email, user.FullName, user.HashedPassword).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint violation
			return fmt.Errorf("user with given username already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.CreateWithProfile user: %w", err)
	}

	profile.UserID = user.ID
	_, err = tx.ExecContext(ctx, `INSERT INTO profiles (user_id, role, class_section, department) VALUES ($1, $2, $3, $4)`,
		profile.UserID, string(profile.Role), profile.ClassSection, profile.Department)
	if err != nil {
		return fmt.Errorf("pgUserRepository.CreateWithProfile profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("pgUserRepository.CreateWithProfile commit: %w", err)
	}
	return nil
}

func (r *pgUserRepository) findOne(ctx context.Context, op, where string, arg interface{}) (*model.User, error) {
	query := `SELECT id, username, email, full_name, hashed_password, created_at FROM users WHERE ` + where
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.FullName, &user.HashedPassword, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.%s: %w", op, err)
	}
	return user, nil
}

func (r *pgUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, "FindByUsername", "username = $1", username)
}

func (r *pgUserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return r.findOne(ctx, "FindByID", "id = $1", id)
}

func (r *pgUserRepository) FindProfileByUserID(ctx context.Context, userID int64) (*model.Profile, error) {
	query := `SELECT user_id, role, class_section, department FROM profiles WHERE user_id = $1`
	p := &model.Profile{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&p.UserID, &p.Role, &p.ClassSection, &p.Department)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindProfileByUserID: %w", err)
	}
	return p, nil
}

func (r *pgUserRepository) CountByRole(ctx context.Context, role model.Role) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles WHERE role = $1`, string(role)).Scan(&n); err != nil {
		return 0, fmt.Errorf("pgUserRepository.CountByRole: %w", err)
	}
	return n, nil
}
