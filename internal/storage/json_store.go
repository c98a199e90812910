package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bytedance/sonic"

	"github.com/julianstephens/learnnova/internal/constants"
)

type jsonFile struct {
	Version   int               `json:"version"`
	UpdatedAt time.Time         `json:"updated_at"`
	Entries   map[string]string `json:"entries"`
}

// JSONStore persists every key into a single JSON document, rewritten in
// full on each change.
type JSONStore struct {
	mu    sync.Mutex
	path  string
	store *jsonFile
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &jsonFile{
		Version: 1,
		Entries: make(map[string]string),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &jsonFile{}
	if err := sonic.ConfigStd.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.store.Entries == nil {
		s.store.Entries = make(map[string]string)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes to a temp file and renames it over the target so a crash
// mid-write never truncates the document.
func (s *JSONStore) save() error {
	s.store.UpdatedAt = time.Now().UTC()
	data, err := sonic.ConfigStd.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return "", false, ErrNotLoaded
	}
	v, ok := s.store.Entries[key]
	return v, ok, nil
}

func (s *JSONStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return ErrNotLoaded
	}
	s.store.Entries[key] = value
	return s.save()
}

func (s *JSONStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return ErrNotLoaded
	}
	if _, ok := s.store.Entries[key]; !ok {
		return nil
	}
	delete(s.store.Entries, key)
	return s.save()
}

func (s *JSONStore) Keys(prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return nil, ErrNotLoaded
	}
	return matchingKeys(s.store.Entries, prefix), nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
