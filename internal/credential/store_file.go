package credential

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore persists the credential as a single file on the device.
// Mode 0600: the token is a live secret.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed credential store at path. The parent
// directory is created on first write.
func NewFileStore(path string) (*FileStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("credential file path is required")
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Read() (string, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoCredential
		}
		return "", fmt.Errorf("read credential file: %w", err)
	}
	token := strings.TrimSpace(string(b))
	if token == "" {
		return "", ErrNoCredential
	}
	return token, nil
}

func (s *FileStore) Write(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("mkdir credential dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write credential file: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credential file: %w", err)
	}
	return nil
}
