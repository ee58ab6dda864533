package store

import (
	"context"
	"sync"
)

type memoryStore struct {
	mutex   sync.RWMutex
	token   string
	present bool
}

// NewMemory builds an in-memory credential store. Tokens saved here do
// not survive a process restart; it exists for tests and dev runs.
func NewMemory(Config) Store {
	return &memoryStore{}
}

func (s *memoryStore) Save(_ context.Context, token string) error {
	s.mutex.Lock()
	s.token = token
	s.present = true
	s.mutex.Unlock()
	return nil
}

func (s *memoryStore) Load(context.Context) (string, bool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if !s.present {
		return "", false, nil
	}
	return s.token, true, nil
}

func (s *memoryStore) Clear(context.Context) error {
	s.mutex.Lock()
	s.token = ""
	s.present = false
	s.mutex.Unlock()
	return nil
}

func (s *memoryStore) Stats(context.Context) (map[string]any, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return map[string]any{
		"type":    "memory",
		"present": s.present,
	}, nil
}

func (s *memoryStore) Close(context.Context) error {
	return nil
}
