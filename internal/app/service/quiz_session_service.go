package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"smart_edu_quiz/internal/common"
	"smart_edu_quiz/internal/domain/model"
	"smart_edu_quiz/internal/domain/repository"
	"smart_edu_quiz/internal/platform/logger"
	"smart_edu_quiz/internal/platform/session"
)

// QuizSessionService drives one student through one quiz. Progress lives in
// the session store under model.QuizSessionKey until the attempt is submitted.
type QuizSessionService struct {
	quizRepo    repository.QuizRepository
	attemptRepo repository.AttemptRepository
	store       session.Store
	limit       int
	lockTTL     time.Duration

	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewQuizSessionService(
	quizRepo repository.QuizRepository,
	attemptRepo repository.AttemptRepository,
	store session.Store,
	limit int,
	lockTTL time.Duration,
	rng *rand.Rand,
) *QuizSessionService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &QuizSessionService{
		quizRepo:    quizRepo,
		attemptRepo: attemptRepo,
		store:       store,
		limit:       limit,
		lockTTL:     lockTTL,
		rng:         rng,
	}
}

// QuizPage is everything needed to render the current question.
type QuizPage struct {
	Quiz       model.Quiz
	Questions  []model.Question
	Current    model.Question
	Index      int
	UserAnswer string
	Progress   float64
	IsLast     bool
	Bookmarked []int64
}

// AdvanceResult holds either the next page or, after submission, the attempt.
type AdvanceResult struct {
	Page    *QuizPage
	Attempt *model.QuizAttempt
}

func (r *AdvanceResult) Submitted() bool { return r.Attempt != nil }

type AttemptResult struct {
	Attempt    model.QuizAttempt
	Quiz       model.Quiz
	Percentage float64
	Answers    []model.UserAnswer
}

// Load starts the quiz when no state exists and otherwise only reads it.
func (s *QuizSessionService) Load(ctx context.Context, sid string, userID, quizID int64) (*QuizPage, error) {
	quiz, state, questions, err := s.start(ctx, sid, userID, quizID)
	if err != nil {
		return nil, err
	}
	return s.page(ctx, sid, quiz, state, questions)
}

// Advance records answer and applies action. An answer that is not one of the
// current question's options is dropped. Moving next from the last question
// submits the attempt exactly once.
func (s *QuizSessionService) Advance(ctx context.Context, sid string, userID, quizID int64, action model.QuizAction, answer string) (*AdvanceResult, error) {
	quiz, state, questions, err := s.start(ctx, sid, userID, quizID)
	if err != nil {
		return nil, err
	}

	key := model.QuizSessionKey(quizID, userID)
	if answer != "" && !questions[state.CurrentIndex].HasOption(answer) {
		logger.Default.Warn("ignoring answer that is not an option", key)
		answer = ""
	}
	if state.Apply(action, answer) {
		attempt, err := s.submit(ctx, sid, userID, quiz, state, questions)
		if err != nil {
			return nil, err
		}
		return &AdvanceResult{Attempt: attempt}, nil
	}

	if err := s.store.Set(ctx, sid, key, state); err != nil {
		return nil, fmt.Errorf("failed to save quiz state: %w", err)
	}
	page, err := s.page(ctx, sid, quiz, state, questions)
	if err != nil {
		return nil, err
	}
	return &AdvanceResult{Page: page}, nil
}

// Results returns a finished attempt of userID. Attempts of other users are
// reported as ErrForbidden.
func (s *QuizSessionService) Results(ctx context.Context, attemptID, userID int64) (*AttemptResult, error) {
	attempt, err := s.attemptRepo.FindByID(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, fmt.Errorf("attempt %d: %w", attemptID, common.ErrForbidden)
	}
	quiz, err := s.quizRepo.FindByID(ctx, attempt.QuizID)
	if err != nil {
		return nil, err
	}
	answers, err := s.attemptRepo.ListAnswers(ctx, attempt.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load answers: %w", err)
	}
	return &AttemptResult{
		Attempt:    *attempt,
		Quiz:       *quiz,
		Percentage: attempt.Percentage(),
		Answers:    answers,
	}, nil
}

// start reloads the saved state or creates a new one. A saved state whose
// questions no longer all exist is replaced.
func (s *QuizSessionService) start(ctx context.Context, sid string, userID, quizID int64) (*model.Quiz, *model.QuizSessionState, []model.Question, error) {
	quiz, err := s.quizRepo.FindByID(ctx, quizID)
	if err != nil {
		return nil, nil, nil, err
	}
	key := model.QuizSessionKey(quiz.ID, userID)

	state := &model.QuizSessionState{}
	found, err := s.store.Get(ctx, sid, key, state)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load quiz state: %w", err)
	}
	if found && len(state.QuestionIDs) > 0 {
		stored, err := s.quizRepo.FindQuestionsByIDs(ctx, state.QuestionIDs)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to load questions: %w", err)
		}
		if ordered, ok := model.OrderQuestions(state.QuestionIDs, stored); ok {
			state.Clamp()
			if state.Valid() {
				return quiz, state, ordered, nil
			}
		}
		logger.Default.Warn("stale quiz state, restarting", key)
	}

	all, err := s.quizRepo.ListQuestions(ctx, quiz.ID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load questions: %w", err)
	}
	if len(all) == 0 {
		return nil, nil, nil, common.ErrEmptyQuiz
	}
	ids := make([]int64, len(all))
	for i, q := range all {
		ids[i] = q.ID
	}

	s.rngMu.Lock()
	state = model.NewQuizSessionState(ids, s.limit, s.rng)
	s.rngMu.Unlock()

	if err := s.store.Set(ctx, sid, key, state); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to save quiz state: %w", err)
	}
	ordered, _ := model.OrderQuestions(state.QuestionIDs, all)
	return quiz, state, ordered, nil
}

// submit grades the state and persists the attempt. Attempt, answers and score
// are separate writes, so a failure part way leaves a partial attempt behind.
func (s *QuizSessionService) submit(ctx context.Context, sid string, userID int64, quiz *model.Quiz, state *model.QuizSessionState, questions []model.Question) (*model.QuizAttempt, error) {
	key := model.QuizSessionKey(quiz.ID, userID)
	unlock, err := s.store.Lock(ctx, "submit:"+sid+":"+key, s.lockTTL)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// A request that held the lock before us may already have submitted.
	var current model.QuizSessionState
	found, err := s.store.Get(ctx, sid, key, &current)
	if err != nil {
		return nil, fmt.Errorf("failed to load quiz state: %w", err)
	}
	if !found {
		return nil, common.ErrSubmitInProgress
	}

	attempt := &model.QuizAttempt{
		UserID:         userID,
		QuizID:         quiz.ID,
		TotalQuestions: len(questions),
	}
	if err := s.attemptRepo.CreateAttempt(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to create attempt: %w", err)
	}

	score, answers := state.Grade(questions)
	for i := range answers {
		answers[i].AttemptID = attempt.ID
		if err := s.attemptRepo.CreateAnswer(ctx, &answers[i]); err != nil {
			logger.Default.Error("partial quiz submission", attempt.ID, err)
			return nil, fmt.Errorf("failed to record answer %d: %w", i+1, err)
		}
	}
	if err := s.attemptRepo.UpdateScore(ctx, attempt.ID, score); err != nil {
		return nil, fmt.Errorf("failed to save score: %w", err)
	}
	attempt.Score = score

	if err := s.store.Delete(ctx, sid, key); err != nil {
		return nil, fmt.Errorf("failed to clear quiz state: %w", err)
	}
	logger.Default.Info("quiz submitted", quiz.ID, userID, fmt.Sprintf("%d/%d", score, attempt.TotalQuestions))
	return attempt, nil
}

func (s *QuizSessionService) page(ctx context.Context, sid string, quiz *model.Quiz, state *model.QuizSessionState, questions []model.Question) (*QuizPage, error) {
	bookmarked, err := session.Bookmarks(ctx, s.store, sid)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookmarks: %w", err)
	}
	return &QuizPage{
		Quiz:       *quiz,
		Questions:  questions,
		Current:    questions[state.CurrentIndex],
		Index:      state.CurrentIndex,
		UserAnswer: state.CurrentAnswer(),
		Progress:   state.Progress(),
		IsLast:     state.IsLast(),
		Bookmarked: bookmarked,
	}, nil
}
