package prefs

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/matzehuels/barbell/pkg/errors"
)

// FileStorage stores each key as a file in a directory.
type FileStorage struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStorage creates a file-based store.
// If baseDir is empty, defaults to ~/.config/barbell/prefs/
func NewFileStorage(baseDir string) (*FileStorage, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "barbell", "prefs")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create prefs dir: %w", err)
	}
	return &FileStorage{baseDir: baseDir}, nil
}

func (s *FileStorage) keyPath(key string) (string, error) {
	if err := errors.ValidateKey(key); err != nil {
		return "", err
	}
	return filepath.Join(s.baseDir, url.QueryEscape(key)+".json"), nil
}

func (s *FileStorage) Get(ctx context.Context, key string) (string, bool, error) {
	path, err := s.keyPath(key)
	if err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read prefs file: %w", err)
	}
	return string(data), true, nil
}

func (s *FileStorage) Set(ctx context.Context, key, value string) error {
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(path, []byte(value), 0600); err != nil {
		return fmt.Errorf("write prefs file: %w", err)
	}
	return nil
}

func (s *FileStorage) Delete(ctx context.Context, key string) error {
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove prefs file: %w", err)
	}
	return nil
}

func (s *FileStorage) Close() error { return nil }

// Path returns the base directory for preference files.
func (s *FileStorage) Path() string {
	return s.baseDir
}

var _ Storage = (*FileStorage)(nil)
