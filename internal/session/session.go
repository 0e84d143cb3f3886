package session

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Document represents a remembered editing session for a single file
type Document struct {
	ID       string `json:"id"`
	Path     string `json:"path"`
	Cursor   int    `json:"cursor"`
	MTime    int64  `json:"mtime"`
	Hash     string `json:"hash"`
	LastOpen int64  `json:"last_open"`
}

// Store represents the set of known document sessions
type Store struct {
	Documents map[string]*Document `json:"documents"` // path -> session
}

// NewStore creates a new empty session store
func NewStore() *Store {
	return &Store{
		Documents: make(map[string]*Document),
	}
}

// Load reads sessions from the sessions file
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewStore(), nil
		}
		return nil, err
	}

	var store Store
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, err
	}

	if store.Documents == nil {
		store.Documents = make(map[string]*Document)
	}

	return &store, nil
}

// Save writes sessions to the sessions file
func (s *Store) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create sessions directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sessions: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write sessions file: %w", err)
	}

	return nil
}

// ComputeHash computes SHA256 hash of a file
func ComputeHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("sha256:%x", h.Sum(nil)), nil
}

// Open returns the session for a file, creating one on first open.
// The stored cursor is discarded when the file changed on disk since
// the last visit.
func (s *Store) Open(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	mtime := info.ModTime().Unix()

	doc, exists := s.Documents[path]
	if !exists {
		doc = &Document{
			ID:   uuid.New().String(),
			Path: path,
		}
		s.Documents[path] = doc
	}

	// Fast path: unchanged mtime means the cursor is still valid
	if exists && mtime != doc.MTime {
		hash, err := ComputeHash(path)
		if err != nil {
			return nil, err
		}
		if hash != doc.Hash {
			doc.Cursor = 0
		}
	}

	doc.MTime = mtime
	doc.LastOpen = time.Now().Unix()
	return doc, nil
}

// Update records the cursor position and on-disk fingerprint for a file
func (s *Store) Update(path string, cursor int) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	hash, err := ComputeHash(path)
	if err != nil {
		return err
	}

	doc, exists := s.Documents[path]
	if !exists {
		doc = &Document{
			ID:   uuid.New().String(),
			Path: path,
		}
		s.Documents[path] = doc
	}

	doc.Cursor = cursor
	doc.MTime = info.ModTime().Unix()
	doc.Hash = hash
	doc.LastOpen = time.Now().Unix()

	return nil
}

// Recent returns session paths ordered by last open time, newest first
func (s *Store) Recent() []string {
	paths := make([]string, 0, len(s.Documents))
	for path := range s.Documents {
		paths = append(paths, path)
	}
	sort.Slice(paths, func(i, j int) bool {
		a, b := s.Documents[paths[i]], s.Documents[paths[j]]
		if a.LastOpen != b.LastOpen {
			return a.LastOpen > b.LastOpen
		}
		return paths[i] < paths[j]
	})
	return paths
}

// Forget drops the session for a file
func (s *Store) Forget(path string) {
	delete(s.Documents, path)
}

// LastOpenTime returns the last open time for a file
func (s *Store) LastOpenTime(path string) time.Time {
	if doc, exists := s.Documents[path]; exists {
		return time.Unix(doc.LastOpen, 0)
	}
	return time.Time{}
}
