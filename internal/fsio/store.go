package fsio

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const defaultFileMode os.FileMode = 0644

// Store reads and writes project files through an afero filesystem
type Store struct {
	fs   afero.Fs
	root string
}

// New wraps an existing filesystem; paths are used as given
func New(fs afero.Fs) *Store {
	return &Store{fs: fs}
}

// NewOsStore returns a store rooted at root on the real filesystem.
// Relative paths resolve against root.
func NewOsStore(root string) *Store {
	return &Store{
		fs:   afero.NewBasePathFs(afero.NewOsFs(), root),
		root: root,
	}
}

// Fs returns the underlying filesystem
func (s *Store) Fs() afero.Fs {
	return s.fs
}

// ReadFile returns the whole content of path
func (s *Store) ReadFile(path string) ([]byte, error) {
	return afero.ReadFile(s.fs, s.resolve(path))
}

// WriteFile replaces the content of path, keeping its permissions
func (s *Store) WriteFile(path string, data []byte) error {
	name := s.resolve(path)
	mode := defaultFileMode
	if info, err := s.fs.Stat(name); err == nil {
		mode = info.Mode().Perm()
	}
	return afero.WriteFile(s.fs, name, data, mode)
}

// ReadLines returns the content of path split on newlines
func (s *Store) ReadLines(path string) ([]string, error) {
	data, err := s.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(string(data), "\n"), nil
}

// resolve maps absolute paths under root to root-relative ones
func (s *Store) resolve(path string) string {
	if s.root == "" || !filepath.IsAbs(path) {
		return path
	}
	if rel, err := filepath.Rel(s.root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}
