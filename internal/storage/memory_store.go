package storage

import (
	"sync"

	"github.com/julianstephens/boardprep/internal/constants"
)

// MemoryStore is a process-local Provider. Nothing survives Close.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string][]byte)
	}
	return nil
}

// Load behaves like Init; an in-memory store has nothing to find
func (s *MemoryStore) Load() error {
	return s.Init()
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	s.values = nil
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Read(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		return nil, false, ErrNotLoaded
	}
	v, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *MemoryStore) Write(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		return ErrNotLoaded
	}
	s.values[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemoryStore) GetConfigPath() string {
	return constants.MemoryConfig
}
