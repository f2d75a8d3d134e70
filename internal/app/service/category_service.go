package service

import (
	"context"
	"fmt"

	"smart_edu_quiz/internal/app/form"
	"smart_edu_quiz/internal/common"
	"smart_edu_quiz/internal/domain/model"
	"smart_edu_quiz/internal/domain/repository"
	"smart_edu_quiz/internal/platform/logger"
)

type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// EnsureDefaults creates every default category missing by name. It runs once
// at startup and returns how many were created.
func (s *CategoryService) EnsureDefaults(ctx context.Context) (int, error) {
	created := 0
	for _, def := range model.DefaultCategories {
		exists, err := s.categoryRepo.ExistsByName(ctx, def.Name)
		if err != nil {
			return created, fmt.Errorf("checking category %q: %w", def.Name, err)
		}
		if exists {
			continue
		}
		c := def
		if err := s.categoryRepo.Create(ctx, &c); err != nil {
			return created, fmt.Errorf("creating category %q: %w", def.Name, err)
		}
		created++
	}
	if created > 0 {
		logger.Default.Info("default categories created", created)
	}
	return created, nil
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id int64) (*model.Category, error) {
	return s.categoryRepo.FindByID(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, viewer *model.Viewer, f form.CategoryForm) (*model.Category, error) {
	if !viewer.IsTeacher() {
		return nil, fmt.Errorf("only teachers can create categories: %w", common.ErrForbidden)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	c := &model.Category{Name: f.Name, Icon: f.Icon, Description: f.Description}
	if err := s.categoryRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	logger.Default.Info("category created", c.Name, viewer.User)
	return c, nil
}
