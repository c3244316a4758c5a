package credential

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store is the persistence port for the API credential. Implementations
// must survive process restarts; the gate is their only writer.
type Store interface {
	Get() (string, error)
	Set(value string) error
	Delete() error
}

// FileStore persists the credential in a single file under the user's
// config directory, mode 0600.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed credential store.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultStorePath returns the default credential file location.
func DefaultStorePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".dashchat", "credential")
	}
	return filepath.Join(homeDir, ".dashchat", "credential")
}

// Get reads the stored credential. A missing file is an empty
// credential, not an error.
func (s *FileStore) Get() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read credential: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Set writes the credential to disk.
func (s *FileStore) Set(value string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create credential directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(value), 0600); err != nil {
		return fmt.Errorf("write credential: %w", err)
	}
	return nil
}

// Delete removes the stored credential. Deleting an absent credential
// is not an error.
func (s *FileStore) Delete() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}

// MemoryStore keeps the credential in memory. Used by tests and
// one-shot invocations that must not touch the user's key file.
type MemoryStore struct {
	value string
}

func (s *MemoryStore) Get() (string, error)   { return s.value, nil }
func (s *MemoryStore) Set(value string) error { s.value = value; return nil }
func (s *MemoryStore) Delete() error          { s.value = ""; return nil }
