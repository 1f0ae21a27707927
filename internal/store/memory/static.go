package memory

import (
	"context"
	"sync"
)

// StaticData keeps node static data in process memory. State is lost on
// restart, which makes it suitable for tests and one-shot CLI runs.
type StaticData struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewStaticData() *StaticData {
	return &StaticData{data: make(map[string]string)}
}

func (s *StaticData) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *StaticData) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *StaticData) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.data, k)
	}
	return nil
}

// Len reports the number of stored keys.
func (s *StaticData) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
