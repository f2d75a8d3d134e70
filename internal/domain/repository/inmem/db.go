// Package inmem holds map-backed repositories for development and tests.
package inmem

import (
	"sort"
	"sync"
	"time"

	"smart_edu_quiz/internal/domain/model"
)

// DB is the shared in-memory dataset. Every repository built from the same
// DB sees the same rows.
type DB struct {
	mutex sync.RWMutex
	pk    int64
	now   func() time.Time

	users      map[int64]*model.User
	profiles   map[int64]*model.Profile
	categories map[int64]*model.Category
	quizzes    map[int64]*model.Quiz
	questions  map[int64]*model.Question
	attempts   map[int64]*model.QuizAttempt
	answers    map[int64]*model.UserAnswer
}

func NewDB() *DB {
	return &DB{
		now:        time.Now,
		users:      map[int64]*model.User{},
		profiles:   map[int64]*model.Profile{},
		categories: map[int64]*model.Category{},
		quizzes:    map[int64]*model.Quiz{},
		questions:  map[int64]*model.Question{},
		attempts:   map[int64]*model.QuizAttempt{},
		answers:    map[int64]*model.UserAnswer{},
	}
}

// SetClock replaces the timestamp source used for created_at and completed_at.
func (db *DB) SetClock(now func() time.Time) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.now = now
}

// nextID must be called with the write lock held.
func (db *DB) nextID() int64 {
	db.pk++
	return db.pk
}

func sortedKeys[T any](table map[int64]T) []int64 {
	keys := make([]int64, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
