package inmem

import (
	"context"
	"fmt"
	"sort"

	"smart_edu_quiz/internal/common"
	"smart_edu_quiz/internal/domain/model"
	"smart_edu_quiz/internal/domain/repository"
)

type attemptRepository struct {
	db *DB
}

func NewAttemptRepository(db *DB) repository.AttemptRepository {
	return &attemptRepository{db: db}
}

func (repo *attemptRepository) CreateAttempt(_ context.Context, a *model.QuizAttempt) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.users[a.UserID]; !ok {
		return fmt.Errorf("user %d: %w", a.UserID, common.ErrNotFound)
	}
	if _, ok := repo.db.quizzes[a.QuizID]; !ok {
		return fmt.Errorf("quiz %d: %w", a.QuizID, common.ErrNotFound)
	}

	a.ID = repo.db.nextID()
	a.CompletedAt = repo.db.now()
	att := *a
	repo.db.attempts[att.ID] = &att
	return nil
}

func (repo *attemptRepository) CreateAnswer(_ context.Context, ua *model.UserAnswer) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.attempts[ua.AttemptID]; !ok {
		return fmt.Errorf("attempt %d: %w", ua.AttemptID, common.ErrNotFound)
	}

	ua.ID = repo.db.nextID()
	ans := *ua
	ans.QuestionText, ans.CorrectAnswer = "", ""
	repo.db.answers[ans.ID] = &ans
	return nil
}

func (repo *attemptRepository) UpdateScore(_ context.Context, attemptID int64, score int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	a, ok := repo.db.attempts[attemptID]
	if !ok {
		return common.ErrNotFound
	}
	a.Score = score
	return nil
}

func (repo *attemptRepository) FindByID(_ context.Context, id int64) (*model.QuizAttempt, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if a, ok := repo.db.attempts[id]; ok {
		att := *a
		return &att, nil
	}
	return nil, common.ErrNotFound
}

func (repo *attemptRepository) ListAnswers(_ context.Context, attemptID int64) ([]model.UserAnswer, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	out := []model.UserAnswer{}
	for _, id := range sortedKeys(repo.db.answers) {
		ua := *repo.db.answers[id]
		if ua.AttemptID != attemptID {
			continue
		}
		q, ok := repo.db.questions[ua.QuestionID]
		if !ok {
			continue
		}
		ua.QuestionText = q.Text
		ua.CorrectAnswer = q.CorrectAnswer
		out = append(out, ua)
	}
	return out, nil
}

// record joins an attempt with its user, quiz and category. It must be called
// with the read lock held.
func (repo *attemptRepository) record(a *model.QuizAttempt) (model.AttemptRecord, bool) {
	u, ok := repo.db.users[a.UserID]
	if !ok {
		return model.AttemptRecord{}, false
	}
	qz, ok := repo.db.quizzes[a.QuizID]
	if !ok {
		return model.AttemptRecord{}, false
	}
	c, ok := repo.db.categories[qz.CategoryID]
	if !ok {
		return model.AttemptRecord{}, false
	}
	return model.AttemptRecord{
		AttemptID:     a.ID,
		UserID:        u.ID,
		Username:      u.Username,
		QuizID:        qz.ID,
		QuizTitle:     qz.Title,
		QuizCreatedAt: qz.CreatedAt,
		CategoryID:    c.ID,
		CategoryName:  c.Name,
		CategoryIcon:  c.Icon,
		Score:         a.Score,
		Total:         a.TotalQuestions,
		CompletedAt:   a.CompletedAt,
	}, true
}

func (repo *attemptRepository) ListRecords(_ context.Context) ([]model.AttemptRecord, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	out := []model.AttemptRecord{}
	for _, id := range sortedKeys(repo.db.attempts) {
		if rec, ok := repo.record(repo.db.attempts[id]); ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (repo *attemptRepository) ListRecentByUser(_ context.Context, userID int64, limit int) ([]model.AttemptRecord, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	out := []model.AttemptRecord{}
	for _, id := range sortedKeys(repo.db.attempts) {
		a := repo.db.attempts[id]
		if a.UserID != userID {
			continue
		}
		if rec, ok := repo.record(a); ok {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CompletedAt.Equal(out[j].CompletedAt) {
			return out[i].AttemptID > out[j].AttemptID
		}
		return out[i].CompletedAt.After(out[j].CompletedAt)
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
