package model

import "time"

type Quiz struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	CategoryID  int64     `json:"category_id"`
	CreatedByID int64     `json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type Question struct {
	ID            int64  `json:"id"`
	QuizID        int64  `json:"quiz_id"`
	Text          string `json:"text"`
	CorrectAnswer string `json:"-"`
	Option1       string `json:"option1"`
	Option2       string `json:"option2"`
	Option3       string `json:"option3"`
	Option4       string `json:"option4"`
}

// MaxAnswerLen is the longest option or answer a question can store.
const MaxAnswerLen = 200

func (q Question) Options() []string {
	return []string{q.Option1, q.Option2, q.Option3, q.Option4}
}

// HasOption reports whether answer is exactly one of the four options.
func (q Question) HasOption(answer string) bool {
	for _, o := range q.Options() {
		if o == answer {
			return true
		}
	}
	return false
}
