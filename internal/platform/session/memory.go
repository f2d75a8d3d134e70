package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"smart_edu_quiz/internal/common"
)

// MemoryStore is a process-local Store for development and tests.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]map[string][]byte
	locks    map[string]time.Time
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: map[string]map[string][]byte{},
		locks:    map[string]time.Time{},
		now:      time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, sid, key string, dst interface{}) (bool, error) {
	s.mu.Lock()
	raw, ok := s.sessions[sid][key]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("MemoryStore.Get decode %s: %w", key, err)
	}
	return true, nil
}

func (s *MemoryStore) Set(_ context.Context, sid, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("MemoryStore.Set encode %s: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessions[sid] == nil {
		s.sessions[sid] = map[string][]byte{}
	}
	s.sessions[sid][key] = raw
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sid, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions[sid], key)
	return nil
}

func (s *MemoryStore) Destroy(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	return nil
}

func (s *MemoryStore) Lock(_ context.Context, name string, ttl time.Duration) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if exp, held := s.locks[name]; held && now.Before(exp) {
		return nil, common.ErrSubmitInProgress
	}
	exp := now.Add(ttl)
	s.locks[name] = exp
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.locks[name].Equal(exp) {
			delete(s.locks, name)
		}
	}, nil
}
