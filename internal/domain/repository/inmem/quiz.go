package inmem

import (
	"context"
	"fmt"
	"sort"

	"smart_edu_quiz/internal/common"
	"smart_edu_quiz/internal/domain/model"
	"smart_edu_quiz/internal/domain/repository"
)

type quizRepository struct {
	db *DB
}

func NewQuizRepository(db *DB) repository.QuizRepository {
	return &quizRepository{db: db}
}

func (repo *quizRepository) CreateWithQuestions(_ context.Context, quiz *model.Quiz, questions []model.Question) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.categories[quiz.CategoryID]; !ok {
		return fmt.Errorf("category %d: %w", quiz.CategoryID, common.ErrNotFound)
	}

	quiz.ID = repo.db.nextID()
	quiz.CreatedAt = repo.db.now()
	qz := *quiz
	repo.db.quizzes[qz.ID] = &qz

	for i := range questions {
		questions[i].ID = repo.db.nextID()
		questions[i].QuizID = quiz.ID
		q := questions[i]
		repo.db.questions[q.ID] = &q
	}
	return nil
}

func (repo *quizRepository) FindByID(_ context.Context, id int64) (*model.Quiz, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if q, ok := repo.db.quizzes[id]; ok {
		qz := *q
		return &qz, nil
	}
	return nil, common.ErrNotFound
}

func (repo *quizRepository) ListByCategory(_ context.Context, categoryID int64) ([]model.Quiz, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	out := []model.Quiz{}
	for _, id := range sortedKeys(repo.db.quizzes) {
		if q := repo.db.quizzes[id]; q.CategoryID == categoryID {
			out = append(out, *q)
		}
	}
	// Newest first, matching the Postgres ordering.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (repo *quizRepository) CountByCreator(_ context.Context, userID int64) (int, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	n := 0
	for _, q := range repo.db.quizzes {
		if q.CreatedByID == userID {
			n++
		}
	}
	return n, nil
}

func (repo *quizRepository) ListQuestions(_ context.Context, quizID int64) ([]model.Question, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	out := []model.Question{}
	for _, id := range sortedKeys(repo.db.questions) {
		if q := repo.db.questions[id]; q.QuizID == quizID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (repo *quizRepository) FindQuestionsByIDs(_ context.Context, ids []int64) ([]model.Question, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	out := []model.Question{}
	for _, id := range sortedKeys(repo.db.questions) {
		if wanted[id] {
			out = append(out, *repo.db.questions[id])
		}
	}
	return out, nil
}
