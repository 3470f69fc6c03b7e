package tokenstore

import (
	"context"
	"fmt"
	"os"

	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"
)

const (
	dirPerm  = 0o700
	filePerm = 0o600
)

// FileStore keeps each token as a plain file named after its key directly
// under the storage directory.
type FileStore struct {
	dir    string
	dv     *diskv.Diskv
	logger *zap.Logger
}

// NewFileStore creates dir, including missing parents, and returns a store
// rooted there.
func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("token storage directory is required")
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create token storage %s: %w", dir, err)
	}

	// Simplest transform function: put all the data files into the base dir.
	flatTransform := func(s string) []string { return []string{} }

	dv := diskv.New(diskv.Options{
		BasePath:     dir,
		Transform:    flatTransform,
		CacheSizeMax: 0,
		PathPerm:     dirPerm,
		FilePerm:     filePerm,
	})

	logger.Debug("Token file store ready", zap.String("dir", dir))

	return &FileStore{dir: dir, dv: dv, logger: logger}, nil
}

// Dir returns the storage directory.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) Load(_ context.Context, key string) (string, bool, error) {
	if !s.dv.Has(key) {
		return "", false, nil
	}

	b, err := s.dv.Read(key)
	if err != nil {
		return "", false, fmt.Errorf("failed to read cached token: %w", err)
	}

	s.logger.Debug("Loaded cached token", zap.String("cache_key", key))
	return string(b), len(b) > 0, nil
}

func (s *FileStore) Save(_ context.Context, key string, token string) error {
	if err := s.dv.Write(key, []byte(token)); err != nil {
		return fmt.Errorf("failed to write cached token: %w", err)
	}

	s.logger.Debug("Saved token to file cache", zap.String("cache_key", key))
	return nil
}

var _ Store = (*FileStore)(nil)
