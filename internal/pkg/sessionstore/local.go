// Package sessionstore persists the local-override session to disk so a
// bypass login survives process restarts until explicit logout or a
// managed login replaces it.
package sessionstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pintando7/escolinha/internal/app/models"
	"github.com/pintando7/escolinha/internal/pkg/logger"
)

// Store reads and writes the persisted local session file.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a session store rooted at the given file path. The
// parent directory is created if missing.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", dir).Msg("Failed to create session directory")
		return nil, fmt.Errorf("failed to create session directory %s: %w", dir, err)
	}

	return &Store{path: path}, nil
}

// Save writes the session atomically: the file is first written to a
// temporary sibling and then renamed into place.
func (s *Store) Save(session *models.LocalSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to persist session file: %w", err)
	}

	logger.Info().Str("username", session.Username).Msg("Local session persisted")
	return nil
}

// Load returns the persisted session, or nil when none exists.
func (s *Store) Load() (*models.LocalSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var session models.LocalSession
	if err := json.Unmarshal(data, &session); err != nil {
		// A corrupt session file is treated as no session
		logger.Warn().Err(err).Str("path", s.path).Msg("Discarding unreadable session file")
		return nil, nil
	}
	return &session, nil
}

// Clear removes the persisted session. Missing files are not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
