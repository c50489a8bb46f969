package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileStore keeps each key in its own file under a private directory,
// e.g. ~/.pioneersx/token and ~/.pioneersx/user.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

var _ Store = (*FileStore)(nil)

// NewFileStore returns a store rooted at dir. The directory is created
// lazily on first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// DefaultDir returns ~/.pioneersx.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".pioneersx"), nil
}

// Dir returns the directory the store writes to.
func (f *FileStore) Dir() string { return f.dir }

func (f *FileStore) Token(_ context.Context) (string, error) {
	data, err := f.read(KeyToken)
	if err != nil {
		return "", fmt.Errorf("session.FileStore.Token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (f *FileStore) SetToken(_ context.Context, token string) error {
	if err := f.write(KeyToken, []byte(token)); err != nil {
		return fmt.Errorf("session.FileStore.SetToken: %w", err)
	}
	return nil
}

func (f *FileStore) User(_ context.Context) (json.RawMessage, error) {
	data, err := f.read(KeyUser)
	if err != nil {
		return nil, fmt.Errorf("session.FileStore.User: %w", err)
	}
	return decodeUser(data), nil
}

func (f *FileStore) SetUser(_ context.Context, user json.RawMessage) error {
	if err := validateUser(user); err != nil {
		return err
	}
	if err := f.write(KeyUser, user); err != nil {
		return fmt.Errorf("session.FileStore.SetUser: %w", err)
	}
	return nil
}

func (f *FileStore) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range []string{KeyToken, KeyUser} {
		if err := os.Remove(f.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("session.FileStore.Clear: %w", err)
		}
	}
	return nil
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, key)
}

func (f *FileStore) read(key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

// write replaces the file atomically: write to .tmp, then rename.
func (f *FileStore) write(key string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return fmt.Errorf("create %s: %w", f.dir, err)
	}
	tmp := f.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, f.path(key)); err != nil {
		os.Remove(tmp) //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("rename %s: %w", key, err)
	}
	return nil
}
