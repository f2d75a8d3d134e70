package model

import (
	"math"
	"time"
)

type QuizAttempt struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	QuizID         int64     `json:"quiz_id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	CompletedAt    time.Time `json:"completed_at"`
}

// Percentage is the score as a percentage of total questions, rounded to two
// decimals. An attempt without questions scores 0.
func (a QuizAttempt) Percentage() float64 {
	if a.TotalQuestions == 0 {
		return 0
	}
	return Round2(float64(a.Score) / float64(a.TotalQuestions) * 100)
}

type UserAnswer struct {
	ID             int64  `json:"id"`
	AttemptID      int64  `json:"attempt_id"`
	QuestionID     int64  `json:"question_id"`
	SelectedAnswer string `json:"selected_answer"`
	IsCorrect      bool   `json:"is_correct"`

	QuestionText  string `json:"question_text,omitempty"`  // For display
	CorrectAnswer string `json:"correct_answer,omitempty"` // For display
}

// AttemptRecord is an attempt joined with its user, quiz and category, the
// input of dashboard aggregation.
type AttemptRecord struct {
	AttemptID     int64
	UserID        int64
	Username      string
	QuizID        int64
	QuizTitle     string
	QuizCreatedAt time.Time
	CategoryID    int64
	CategoryName  string
	CategoryIcon  string
	Score         int
	Total         int
	CompletedAt   time.Time
}

func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}
