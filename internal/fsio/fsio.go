// Package fsio is the file-system collaborator the editor core talks
// to. Sessions depend only on the FileSystem interface, so tests swap
// in an in-memory implementation.
package fsio

import (
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	"espedit/internal/errors"
)

// FileSystem abstracts the storage backend for document bytes.
type FileSystem interface {
	Read(path string) ([]byte, error)
	Write(path string, data []byte) error
	ListDir(path string) ([]string, error)
}

// OS is the real file-system implementation.
type OS struct{}

// NewOS returns the operating-system backed FileSystem.
func NewOS() OS {
	return OS{}
}

// Read returns the file contents, classifying the error.
func (OS) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, classify("failed to read file", path, err)
	}
	return data, nil
}

// Write persists data atomically: the file is never observed half
// written, even if the process dies mid-save.
func (OS) Write(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return classify("failed to create directory", filepath.Dir(path), err)
	}
	if err := renameio.WriteFile(path, data, 0644); err != nil {
		return classify("failed to write file", path, err)
	}
	return nil
}

// ListDir returns the full paths of the directory's entries.
func (OS) ListDir(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, classify("failed to list directory", path, err)
	}
	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		paths = append(paths, filepath.Join(path, entry.Name()))
	}
	return paths, nil
}

func classify(msg, path string, err error) error {
	kind := errors.FileOperationFailed
	switch {
	case os.IsNotExist(err):
		kind = errors.FileNotFound
	case os.IsPermission(err):
		kind = errors.PermissionDenied
	}
	return errors.NewFileError(msg, path, kind, err)
}
