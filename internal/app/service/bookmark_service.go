package service

import (
	"context"
	"fmt"

	"smart_edu_quiz/internal/domain/model"
	"smart_edu_quiz/internal/domain/repository"
	"smart_edu_quiz/internal/platform/session"
)

// BookmarkService keeps bookmarks in the browser session only; they are never
// persisted.
type BookmarkService struct {
	quizRepo repository.QuizRepository
	store    session.Store
}

func NewBookmarkService(quizRepo repository.QuizRepository, store session.Store) *BookmarkService {
	return &BookmarkService{quizRepo: quizRepo, store: store}
}

// Toggle flips membership of questionID and reports the new state.
func (s *BookmarkService) Toggle(ctx context.Context, sid string, questionID int64) (bool, error) {
	on, err := session.ToggleBookmark(ctx, s.store, sid, questionID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle bookmark: %w", err)
	}
	return on, nil
}

// List returns the bookmarked questions that still exist, in bookmark order.
func (s *BookmarkService) List(ctx context.Context, sid string) ([]model.Question, error) {
	ids, err := session.Bookmarks(ctx, s.store, sid)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookmarks: %w", err)
	}
	found, err := s.quizRepo.FindQuestionsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	byID := make(map[int64]model.Question, len(found))
	for _, q := range found {
		byID[q.ID] = q
	}
	out := make([]model.Question, 0, len(found))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}
