package model

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(i + 1)
	}
	return out
}

func TestNewQuizSessionStateLimitsAndKeepsUnique(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	st := NewQuizSessionState(ids(50), 30, rng)

	require.Len(t, st.QuestionIDs, 30)
	assert.Equal(t, 0, st.CurrentIndex)
	assert.Empty(t, st.Answers)

	seen := map[int64]bool{}
	for _, id := range st.QuestionIDs {
		assert.False(t, seen[id], "duplicate question id %d", id)
		assert.True(t, id >= 1 && id <= 50)
		seen[id] = true
	}
}

func TestNewQuizSessionStateFewerThanLimit(t *testing.T) {
	st := NewQuizSessionState(ids(3), 30, rand.New(rand.NewSource(1)))
	assert.ElementsMatch(t, []int64{1, 2, 3}, st.QuestionIDs)
}

func TestNewQuizSessionStateDoesNotMutateInput(t *testing.T) {
	in := ids(10)
	NewQuizSessionState(in, 30, rand.New(rand.NewSource(7)))
	assert.Equal(t, ids(10), in)
}

func TestApplyPreviousNext(t *testing.T) {
	st := &QuizSessionState{QuestionIDs: ids(3), Answers: map[int]string{}}

	assert.False(t, st.Apply(ActionPrevious, "A"))
	assert.Equal(t, 0, st.CurrentIndex, "previous from index 0 stays at 0")
	assert.Equal(t, "A", st.Answers[0])

	assert.False(t, st.Apply(ActionNext, ""))
	assert.Equal(t, 1, st.CurrentIndex)
	_, recorded := st.Answers[1]
	assert.False(t, recorded, "empty answer is not recorded")

	assert.False(t, st.Apply(ActionNext, "B"))
	assert.Equal(t, 2, st.CurrentIndex)
	assert.True(t, st.IsLast())

	assert.True(t, st.Apply(ActionNext, "C"), "next on last index submits")
	assert.Equal(t, 2, st.CurrentIndex)
	assert.Equal(t, map[int]string{0: "A", 1: "B", 2: "C"}, st.Answers)

	assert.False(t, st.Apply(ActionPrevious, ""))
	assert.Equal(t, 1, st.CurrentIndex)
}

func TestApplyWithoutActionOnlyRecords(t *testing.T) {
	st := &QuizSessionState{QuestionIDs: ids(2), CurrentIndex: 1}
	assert.False(t, st.Apply(ActionNone, "X"))
	assert.Equal(t, 1, st.CurrentIndex)
	assert.Equal(t, "X", st.CurrentAnswer())
}

func TestValid(t *testing.T) {
	var nilState *QuizSessionState
	assert.False(t, nilState.Valid())
	assert.False(t, (&QuizSessionState{}).Valid())
	assert.False(t, (&QuizSessionState{QuestionIDs: ids(2), CurrentIndex: 2}).Valid())
	assert.False(t, (&QuizSessionState{QuestionIDs: ids(2), Answers: map[int]string{5: "x"}}).Valid())
	assert.True(t, (&QuizSessionState{QuestionIDs: ids(2), CurrentIndex: 1, Answers: map[int]string{0: "x"}}).Valid())
}

func TestGradeScenario(t *testing.T) {
	questions := []Question{
		{ID: 11, CorrectAnswer: "A"},
		{ID: 12, CorrectAnswer: "B"},
		{ID: 13, CorrectAnswer: "C"},
	}
	st := &QuizSessionState{
		QuestionIDs: []int64{11, 12, 13},
		Answers:     map[int]string{0: "A", 1: "X", 2: "C"},
	}

	score, answers := st.Grade(questions)

	assert.Equal(t, 2, score)
	require.Len(t, answers, 3)
	assert.Equal(t, UserAnswer{QuestionID: 11, SelectedAnswer: "A", IsCorrect: true}, answers[0])
	assert.Equal(t, UserAnswer{QuestionID: 12, SelectedAnswer: "X", IsCorrect: false}, answers[1])
	assert.Equal(t, UserAnswer{QuestionID: 13, SelectedAnswer: "C", IsCorrect: true}, answers[2])

	attempt := QuizAttempt{Score: score, TotalQuestions: len(answers)}
	assert.Equal(t, 66.67, attempt.Percentage())
}

func TestGradeMissingAnswerNeverMatches(t *testing.T) {
	questions := []Question{{ID: 1, CorrectAnswer: ""}, {ID: 2, CorrectAnswer: "a "}}
	st := &QuizSessionState{QuestionIDs: []int64{1, 2}, Answers: map[int]string{1: "a"}}

	score, answers := st.Grade(questions)

	assert.Equal(t, 0, score)
	assert.Equal(t, "", answers[0].SelectedAnswer)
	assert.False(t, answers[0].IsCorrect)
	assert.False(t, answers[1].IsCorrect, "comparison is exact")
}

func TestOrderQuestions(t *testing.T) {
	qs := []Question{{ID: 1}, {ID: 2}, {ID: 3}}

	ordered, ok := OrderQuestions([]int64{3, 1, 2}, qs)
	require.True(t, ok)
	assert.Equal(t, []int64{3, 1, 2}, []int64{ordered[0].ID, ordered[1].ID, ordered[2].ID})

	_, ok = OrderQuestions([]int64{4}, qs)
	assert.False(t, ok)
}

func TestPercentageZeroTotal(t *testing.T) {
	assert.Equal(t, 0.0, QuizAttempt{}.Percentage())
	assert.Equal(t, 100.0, QuizAttempt{Score: 3, TotalQuestions: 3}.Percentage())
}

func TestQuizSessionKey(t *testing.T) {
	assert.Equal(t, "quiz_7_3", QuizSessionKey(7, 3))
}

func TestClamp(t *testing.T) {
	st := &QuizSessionState{QuestionIDs: []int64{1, 2}, CurrentIndex: 5, Answers: map[int]string{0: "A", 4: "B", -1: "C"}}
	st.Clamp()
	assert.Equal(t, 1, st.CurrentIndex)
	assert.Equal(t, map[int]string{0: "A"}, st.Answers)
	assert.True(t, st.Valid())

	st = &QuizSessionState{QuestionIDs: []int64{1}, CurrentIndex: -3}
	st.Clamp()
	assert.Equal(t, 0, st.CurrentIndex)
	assert.NotNil(t, st.Answers)
}
