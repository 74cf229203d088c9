// Package storage keeps uploaded images on disk for the lifetime of one
// comparison.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	dirPerm  = 0o755
	filePerm = 0o600

	defaultName = "upload"
)

var ErrOutsideStore = errors.New("path is outside the upload directory")

// TempStore writes uploads under unique names inside a single directory.
// It holds no per-file state, so one store is shared by all requests.
type TempStore struct {
	dir string
}

// NewTempStore creates dir if it does not exist yet.
func NewTempStore(dir string) (*TempStore, error) {
	if dir == "" {
		return nil, errors.New("upload directory must not be empty")
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &TempStore{dir: dir}, nil
}

func (s *TempStore) Dir() string {
	return s.dir
}

// Save copies r verbatim into a fresh file named "<uuid>_<base(name)>" and
// returns its path. A partially written file is removed before returning.
func (s *TempStore) Save(name string, r io.Reader) (string, error) {
	path := filepath.Join(s.dir, uuid.NewString()+"_"+sanitizeName(name))

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close %s: %w", path, err)
	}

	return path, nil
}

// Remove deletes every given path and returns all failures joined.
// Empty paths are skipped.
func (s *TempStore) Remove(paths ...string) error {
	var errs []error
	for _, p := range paths {
		if p == "" {
			continue
		}
		if !s.owns(p) {
			errs = append(errs, fmt.Errorf("remove %s: %w", p, ErrOutsideStore))
			continue
		}
		if err := os.Remove(p); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", p, err))
		}
	}
	return errors.Join(errs...)
}

func (s *TempStore) owns(path string) bool {
	rel, err := filepath.Rel(s.dir, path)
	if err != nil {
		return false
	}
	return rel != "." && !strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel)
}

// sanitizeName keeps only the final element of a client supplied filename.
func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(filepath.Clean("/" + name))
	if name == "/" || name == "." || name == "" {
		return defaultName
	}
	return name
}
