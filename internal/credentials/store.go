package credentials

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/desertthunder/spotthings/internal/shared"
	"github.com/natefinch/atomic"
)

// Store loads and saves the single credential record.
type Store interface {
	// Load returns (nil, nil) when no credential has been saved yet.
	Load(ctx context.Context) (*Credential, error)
	// Save replaces the stored record.
	Save(ctx context.Context, cred *Credential) error
}

// FileStore implements [Store] on a JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates a [FileStore] for path. The file is not touched until the first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the file the store reads and writes.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the credential file.
func (s *FileStore) Load(ctx context.Context) (*Credential, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", shared.ErrIO, s.path, err)
	}

	var cred Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", shared.ErrIO, s.path, err)
	}
	if err := cred.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s holds a partial record: %v", shared.ErrIO, s.path, err)
	}

	return &cred, nil
}

// Save atomically overwrites the credential file with mode 0600. Partial records are rejected
// so the file is either absent or fully populated.
func (s *FileStore) Save(ctx context.Context, cred *Credential) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if cred == nil {
		return fmt.Errorf("%w: nil credential", shared.ErrInvalidInput)
	}
	if err := cred.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("%w: encode credential: %v", shared.ErrIO, err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("%w: create %s: %v", shared.ErrIO, dir, err)
		}
	}

	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%w: write %s: %v", shared.ErrIO, s.path, err)
	}

	if err := os.Chmod(s.path, 0600); err != nil {
		return fmt.Errorf("%w: chmod %s: %v", shared.ErrIO, s.path, err)
	}

	return nil
}

// MemoryStore implements [Store] in memory.
type MemoryStore struct {
	mu   sync.RWMutex
	cred *Credential
}

// NewMemoryStore creates a [MemoryStore], optionally seeded with cred.
func NewMemoryStore(cred *Credential) *MemoryStore {
	return &MemoryStore{cred: cred.Clone()}
}

func (s *MemoryStore) Load(ctx context.Context) (*Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cred.Clone(), nil
}

func (s *MemoryStore) Save(ctx context.Context, cred *Credential) error {
	if cred == nil {
		return fmt.Errorf("%w: nil credential", shared.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = cred.Clone()
	return nil
}
