package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/kmoroz/repodelve/internal/content"
)

// JSONStore caches repository lists in a local JSON file.
type JSONStore struct {
	filePath string
	mutex    sync.RWMutex
	data     map[string]jsonEntry
}

type jsonEntry struct {
	Repos     []content.Repository `json:"repos"`
	FetchedAt time.Time            `json:"fetched_at"`
}

// NewJSONStore opens (or creates) the cache file at filePath.
func NewJSONStore(filePath string) (*JSONStore, error) {
	store := &JSONStore{
		filePath: filePath,
		data:     make(map[string]jsonEntry),
	}

	if _, err := os.Stat(filePath); err == nil {
		if err := store.loadFromFile(); err != nil {
			return nil, fmt.Errorf("loading content cache: %w", err)
		}
	}
	return store, nil
}

func (s *JSONStore) loadFromFile() error {
	file, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}
	return json.Unmarshal(file, &s.data)
}

// saveToFile writes the whole cache back to disk. Caller holds the lock.
func (s *JSONStore) saveToFile() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0644)
}

// SaveRepos stores the repository list for a username and flushes to disk.
func (s *JSONStore) SaveRepos(username string, repos []content.Repository) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.data[username] = jsonEntry{Repos: repos, FetchedAt: time.Now()}
	return s.saveToFile()
}

// LoadRepos returns the cached list for a username, if present.
func (s *JSONStore) LoadRepos(username string) ([]content.Repository, bool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	entry, ok := s.data[username]
	if !ok {
		return nil, false, nil
	}
	return entry.Repos, true, nil
}

// Close is a no-op; every save already flushes.
func (s *JSONStore) Close() error {
	return nil
}
