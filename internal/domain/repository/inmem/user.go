package inmem

import (
	"context"
	"fmt"

	"smart_edu_quiz/internal/common"
	"smart_edu_quiz/internal/domain/model"
	"smart_edu_quiz/internal/domain/repository"
)

type userRepository struct {
	db *DB
}

func NewUserRepository(db *DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (repo *userRepository) CreateWithProfile(_ context.Context, user *model.User, profile *model.Profile) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, u := range repo.db.users {
		if u.Username == user.Username {
			return fmt.Errorf("user with given username already exists: %w", common.ErrConflict)
		}
	}

	user.ID = repo.db.nextID()
	user.CreatedAt = repo.db.now()
	profile.UserID = user.ID

	u, p := *user, *profile
	repo.db.users[u.ID] = &u
	repo.db.profiles[p.UserID] = &p
	return nil
}

func (repo *userRepository) FindByUsername(_ context.Context, username string) (*model.User, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, u := range repo.db.users {
		if u.Username == username {
			usr := *u
			return &usr, nil
		}
	}
	return nil, common.ErrNotFound
}

func (repo *userRepository) FindByID(_ context.Context, id int64) (*model.User, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if u, ok := repo.db.users[id]; ok {
		usr := *u
		return &usr, nil
	}
	return nil, common.ErrNotFound
}

func (repo *userRepository) FindProfileByUserID(_ context.Context, userID int64) (*model.Profile, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if p, ok := repo.db.profiles[userID]; ok {
		prof := *p
		return &prof, nil
	}
	return nil, common.ErrNotFound
}

func (repo *userRepository) CountByRole(_ context.Context, role model.Role) (int, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	n := 0
	for _, p := range repo.db.profiles {
		if p.Role == role {
			n++
		}
	}
	return n, nil
}
