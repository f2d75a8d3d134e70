package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"smart_edu_quiz/internal/common"
	"smart_edu_quiz/internal/domain/model"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id int64) (*model.Category, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]model.Category, error)
}

type pgCategoryRepository struct {
	db *sql.DB
}

func NewPgCategoryRepository(db *sql.DB) CategoryRepository {
	return &pgCategoryRepository{db: db}
}

func (r *pgCategoryRepository) Create(ctx context.Context, c *model.Category) error {
	query := `INSERT INTO categories (name, icon, description) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, c.Name, c.Icon, c.Description).Scan(&c.ID); err != nil {
		return fmt.Errorf("pgCategoryRepository.Create: %w", err)
	}
	return nil
}

func (r *pgCategoryRepository) FindByID(ctx context.Context, id int64) (*model.Category, error) {
	query := `SELECT id, name, icon, description FROM categories WHERE id = $1`
	c := &model.Category{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Icon, &c.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgCategoryRepository.FindByID: %w", err)
	}
	return c, nil
}

func (r *pgCategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM categories WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("pgCategoryRepository.ExistsByName: %w", err)
	}
	return exists, nil
}

func (r *pgCategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, icon, description FROM categories ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("pgCategoryRepository.List query: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.Description); err != nil {
			return nil, fmt.Errorf("pgCategoryRepository.List scan: %w", err)
		}
		categories = append(categories, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgCategoryRepository.List rows.Err: %w", err)
	}
	return categories, nil
}
