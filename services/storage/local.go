package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
)

// LocalSink writes artifacts below a root directory. Each file is written
// to a temporary sibling and renamed into place.
type LocalSink struct {
	Root string
}

func NewLocalSink(root string) *LocalSink {
	return &LocalSink{Root: root}
}

func (s *LocalSink) Location() string { return s.Root }

func (s *LocalSink) Put(_ context.Context, key string, data []byte) error {
	path := filepath.Join(s.Root, filepath.FromSlash(key))
	return WriteFileAtomic(path, data, 0o644)
}

// WriteFileAtomic writes data to path via a temp file in the same directory
// and a rename, creating parent directories as needed.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.partial")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return multierr.Append(fmt.Errorf("write %s: %w", path, err), tmp.Close())
	}
	if err = tmp.Sync(); err != nil {
		return multierr.Append(fmt.Errorf("sync %s: %w", path, err), tmp.Close())
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err = os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}
