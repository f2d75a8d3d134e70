package inmem

import (
	"context"

	"smart_edu_quiz/internal/common"
	"smart_edu_quiz/internal/domain/model"
	"smart_edu_quiz/internal/domain/repository"
)

type categoryRepository struct {
	db *DB
}

func NewCategoryRepository(db *DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (repo *categoryRepository) Create(_ context.Context, c *model.Category) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	c.ID = repo.db.nextID()
	cat := *c
	repo.db.categories[cat.ID] = &cat
	return nil
}

func (repo *categoryRepository) FindByID(_ context.Context, id int64) (*model.Category, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if c, ok := repo.db.categories[id]; ok {
		cat := *c
		return &cat, nil
	}
	return nil, common.ErrNotFound
}

func (repo *categoryRepository) ExistsByName(_ context.Context, name string) (bool, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, c := range repo.db.categories {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (repo *categoryRepository) List(_ context.Context) ([]model.Category, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	out := make([]model.Category, 0, len(repo.db.categories))
	for _, id := range sortedKeys(repo.db.categories) {
		out = append(out, *repo.db.categories[id])
	}
	return out, nil
}
