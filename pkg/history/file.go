package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pathlight/pathlight/pkg/errors"
)

// FileStore persists visits as one JSON file per session under a directory.
// It suits single-user CLI sessions; concurrent processes sharing a directory
// are not coordinated.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
	cap     int
}

// NewFileStore creates a file-based history store.
// If baseDir is empty, defaults to ~/.config/pathlight/history/.
// cap limits retained visits per session; cap <= 0 means unbounded.
func NewFileStore(baseDir string, cap int) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "pathlight", "history")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	return &FileStore{baseDir: baseDir, cap: cap}, nil
}

func (s *FileStore) sessionPath(sessionID string) string {
	return filepath.Join(s.baseDir, sessionID+".json")
}

func (s *FileStore) load(sessionID string) ([]Visit, error) {
	data, err := os.ReadFile(s.sessionPath(sessionID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history file: %w", err)
	}

	var vs []Visit
	if err := json.Unmarshal(data, &vs); err != nil {
		return nil, fmt.Errorf("parse history: %w", err)
	}
	return vs, nil
}

// Append records a visit, rewriting the session's file.
func (s *FileStore) Append(ctx context.Context, v Visit) error {
	if err := errors.ValidateSessionID(v.SessionID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	vs, err := s.load(v.SessionID)
	if err != nil {
		return err
	}
	vs = append(vs, v)
	if s.cap > 0 && len(vs) > s.cap {
		vs = vs[len(vs)-s.cap:]
	}

	data, err := json.MarshalIndent(vs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := os.WriteFile(s.sessionPath(v.SessionID), data, 0600); err != nil {
		return fmt.Errorf("write history file: %w", err)
	}
	return nil
}

// Recent returns up to n visits for the session, newest first.
func (s *FileStore) Recent(ctx context.Context, sessionID string, n int) ([]Visit, error) {
	if err := errors.ValidateSessionID(sessionID); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	vs, err := s.load(sessionID)
	if err != nil {
		return nil, err
	}
	if n <= 0 || n > len(vs) {
		n = len(vs)
	}

	out := make([]Visit, 0, n)
	for i := len(vs) - 1; i >= len(vs)-n; i-- {
		out = append(out, vs[i])
	}
	return out, nil
}

// Clear removes the session's history file.
func (s *FileStore) Clear(ctx context.Context, sessionID string) error {
	if err := errors.ValidateSessionID(sessionID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.sessionPath(sessionID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove history file: %w", err)
	}
	return nil
}

// Close does nothing for the file store.
func (s *FileStore) Close() error { return nil }

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
