package storage

import (
	"sort"
	"strings"
	"sync"
)

// MemoryStore keeps every key in process memory. It backs ":memory:"
// sessions and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Init() error { return nil }
func (s *MemoryStore) Load() error { return nil }

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *MemoryStore) Keys(prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return matchingKeys(s.data, prefix), nil
}

func (s *MemoryStore) GetConfigPath() string {
	return MemoryLocation
}

func matchingKeys(data map[string]string, prefix string) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
