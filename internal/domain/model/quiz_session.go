package model

import (
	"fmt"
	"math/rand"
)

type QuizAction string

const (
	ActionNone     QuizAction = ""
	ActionPrevious QuizAction = "previous"
	ActionNext     QuizAction = "next"
)

// QuizSessionState is the in-progress state of one user taking one quiz. It is
// stored in the session under QuizSessionKey.
type QuizSessionState struct {
	QuestionIDs  []int64        `json:"question_ids"`
	CurrentIndex int            `json:"current_index"`
	Answers      map[int]string `json:"answers"`
}

func QuizSessionKey(quizID, userID int64) string {
	return fmt.Sprintf("quiz_%d_%d", quizID, userID)
}

// NewQuizSessionState fixes a random order of at most limit questions.
func NewQuizSessionState(questionIDs []int64, limit int, rng *rand.Rand) *QuizSessionState {
	shuffled := make([]int64, len(questionIDs))
	copy(shuffled, questionIDs)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if limit > 0 && limit < len(shuffled) {
		shuffled = shuffled[:limit]
	}
	return &QuizSessionState{
		QuestionIDs:  shuffled,
		CurrentIndex: 0,
		Answers:      map[int]string{},
	}
}

// Valid reports whether the state can drive a quiz page.
func (s *QuizSessionState) Valid() bool {
	if s == nil || len(s.QuestionIDs) == 0 {
		return false
	}
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.QuestionIDs) {
		return false
	}
	for idx := range s.Answers {
		if idx < 0 || idx >= len(s.QuestionIDs) {
			return false
		}
	}
	return true
}

// Clamp forces CurrentIndex into range and drops answers for indexes that
// no longer exist.
func (s *QuizSessionState) Clamp() {
	if s.CurrentIndex >= len(s.QuestionIDs) {
		s.CurrentIndex = len(s.QuestionIDs) - 1
	}
	if s.CurrentIndex < 0 {
		s.CurrentIndex = 0
	}
	if s.Answers == nil {
		s.Answers = map[int]string{}
	}
	for idx := range s.Answers {
		if idx < 0 || idx >= len(s.QuestionIDs) {
			delete(s.Answers, idx)
		}
	}
}

func (s *QuizSessionState) IsLast() bool {
	return s.CurrentIndex == len(s.QuestionIDs)-1
}

// Record stores a non-empty answer for the current question.
func (s *QuizSessionState) Record(answer string) {
	if answer == "" {
		return
	}
	if s.Answers == nil {
		s.Answers = map[int]string{}
	}
	s.Answers[s.CurrentIndex] = answer
}

func (s *QuizSessionState) Previous() {
	if s.CurrentIndex > 0 {
		s.CurrentIndex--
	}
}

// Next moves forward and reports true when the quiz must be submitted instead.
func (s *QuizSessionState) Next() bool {
	if s.CurrentIndex < len(s.QuestionIDs)-1 {
		s.CurrentIndex++
		return false
	}
	return true
}

// Apply records answer and performs action. It returns true when the action
// completes the quiz.
func (s *QuizSessionState) Apply(action QuizAction, answer string) bool {
	s.Record(answer)
	switch action {
	case ActionPrevious:
		s.Previous()
	case ActionNext:
		return s.Next()
	}
	return false
}

func (s *QuizSessionState) CurrentAnswer() string {
	return s.Answers[s.CurrentIndex]
}

// Progress is the 1-based position of the current question as a percentage.
func (s *QuizSessionState) Progress() float64 {
	if len(s.QuestionIDs) == 0 {
		return 0
	}
	return float64(s.CurrentIndex+1) / float64(len(s.QuestionIDs)) * 100
}

// Grade compares the recorded answers with questions, which must be in the
// fixed session order. A missing answer is recorded as "" and never correct.
func (s *QuizSessionState) Grade(questions []Question) (int, []UserAnswer) {
	score := 0
	answers := make([]UserAnswer, 0, len(questions))
	for idx, q := range questions {
		selected, answered := s.Answers[idx]
		correct := answered && selected == q.CorrectAnswer
		if correct {
			score++
		}
		answers = append(answers, UserAnswer{
			QuestionID:     q.ID,
			SelectedAnswer: selected,
			IsCorrect:      correct,
		})
	}
	return score, answers
}

// OrderQuestions arranges questions in the order of ids. It returns false when
// any id has no matching question.
func OrderQuestions(ids []int64, questions []Question) ([]Question, bool) {
	byID := make(map[int64]Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	ordered := make([]Question, 0, len(ids))
	for _, id := range ids {
		q, ok := byID[id]
		if !ok {
			return nil, false
		}
		ordered = append(ordered, q)
	}
	return ordered, true
}
