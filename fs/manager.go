package fs

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileSystem wraps the Afero Fs interface
type FileSystem struct {
	Fs afero.Fs
}

// NewMemoryFileSystem creates a new in-memory file system
func NewMemoryFileSystem() *FileSystem {
	return &FileSystem{
		Fs: afero.NewMemMapFs(),
	}
}

// NewOsFileSystem creates a new OS-based file system
func NewOsFileSystem() *FileSystem {
	return &FileSystem{
		Fs: afero.NewOsFs(),
	}
}

// WriteFile creates path with the given content, overwriting an existing
// file. Missing parent directories are created first. The returned bool
// reports whether the parent directory had to be created.
//
// The write is not transactional: a failure after the directory was created
// leaves the directory in place.
func (fs *FileSystem) WriteFile(path string, content string) (bool, error) {
	dir := filepath.Dir(path)
	createdDir := false
	if !fs.IsDir(dir) {
		if err := fs.Fs.MkdirAll(dir, 0755); err != nil {
			return false, fmt.Errorf("error creating directory %s: %w", dir, err)
		}
		createdDir = true
	}

	if err := afero.WriteFile(fs.Fs, path, []byte(content), 0644); err != nil {
		return createdDir, fmt.Errorf("error writing file %s: %w", path, err)
	}
	return createdDir, nil
}

// ReadFile returns the content of path.
func (fs *FileSystem) ReadFile(path string) (string, error) {
	b, err := afero.ReadFile(fs.Fs, path)
	if err != nil {
		return "", fmt.Errorf("error reading file %s: %w", path, err)
	}
	return string(b), nil
}

// Exists reports whether a regular file exists at path.
func (fs *FileSystem) Exists(path string) bool {
	info, err := fs.Fs.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsDir checks if a path is a directory
func (fs *FileSystem) IsDir(path string) bool {
	info, err := fs.Fs.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
