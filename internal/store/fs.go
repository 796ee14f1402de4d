package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"emotiview/internal/artifact"
)

// FS is a Store backed by a directory tree rooted at a single output root.
// Writes go to a uniquely named temp file and are renamed into place, so a
// consumer scanning the root never observes a partial artifact.
type FS struct {
	root string
}

// OpenFS returns a filesystem store rooted at root, creating it if needed.
// The root is resolved to an absolute path so later operations do not depend
// on the process working directory.
func OpenFS(root string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create store root %s: %w", abs, err)
	}
	return &FS{root: abs}, nil
}

// Root returns the absolute root directory.
func (s *FS) Root() string { return s.root }

// PathOf returns the absolute filesystem path for key.
func (s *FS) PathOf(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(key))
}

func (s *FS) Put(key string, data []byte) error {
	dst := s.PathOf(key)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create folder for %s: %w", key, err)
	}
	tmp := filepath.Join(filepath.Dir(dst), ".tmp-"+uuid.NewString())
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("publish %s: %w", key, err)
	}
	return nil
}

func (s *FS) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(s.PathOf(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, artifact.NotFound(key, err)
		}
		return nil, err
	}
	return data, nil
}

func (s *FS) Exists(key string) (bool, error) {
	_, err := os.Stat(s.PathOf(key))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (s *FS) List(prefix string) ([]string, error) {
	var keys []string
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".tmp-") {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *FS) Delete(key string) error {
	err := os.Remove(s.PathOf(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *FS) Close() error { return nil }
