// Package store persists the set of links the pipeline has already handled
// so later runs never refetch or re-emit them.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Entry records when a link was first processed.
type Entry struct {
	Title     string `json:"title"`
	Timestamp string `json:"timestamp"`
}

// SeenStore is a JSON-file-backed map of link -> Entry. It is loaded once at
// pipeline start, updated in memory during the run, and fully rewritten on
// Save.
type SeenStore struct {
	path  string
	mu    sync.RWMutex
	links map[string]Entry
}

func New(path string) *SeenStore {
	return &SeenStore{
		path:  path,
		links: make(map[string]Entry),
	}
}

// Load reads the store file. A missing file means a fresh start, not an error.
func (s *SeenStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read seen store: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	links := make(map[string]Entry)
	if err := json.Unmarshal(data, &links); err != nil {
		return fmt.Errorf("failed to unmarshal seen store: %w", err)
	}
	s.links = links
	return nil
}

// Save rewrites the whole store file, pretty-printed with literal URLs.
func (s *SeenStore) Save() error {
	s.mu.RLock()
	links := make(map[string]Entry, len(s.links))
	for k, v := range s.links {
		links[k] = v
	}
	s.mu.RUnlock()

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create seen store file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(links); err != nil {
		return fmt.Errorf("failed to encode seen store: %w", err)
	}
	return nil
}

// Has reports whether the link was already processed, in this run or a
// previous one.
func (s *SeenStore) Has(link string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.links[link]
	return ok
}

// Add marks a link as processed. Visible to Has immediately, persisted on the
// next Save.
func (s *SeenStore) Add(link, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links[link] = Entry{
		Title:     title,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func (s *SeenStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.links)
}
