// Package vfs is the read-only file system seam used by the loader and the
// resource locator. Data may live in a plain directory, a ZIP archive or
// memory; callers never touch the real file system directly.
package vfs

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
)

var (
	ErrEmptyPath          = errors.New("vfs: empty path")
	ErrUnknownArchive     = errors.New("vfs: unknown archive type")
	ErrUnsupportedArchive = errors.New("vfs: unsupported archive type")
)

// FileSystem is the collaborator interface for game data access.
type FileSystem interface {
	Open(name string) (io.ReadCloser, error)
	FileExists(name string) bool
	// FsPath describes where the file system is rooted, for diagnostics.
	FsPath() string
}

// ReadFile reads a whole file through fsys.
func ReadFile(fsys FileSystem, name string) ([]byte, error) {
	rc, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Factory picks a file system implementation for p, resolved against parent.
// Existing files are treated as archives chosen by extension, anything else
// as a directory view.
func Factory(parent FileSystem, p string) (FileSystem, error) {
	if p == "" {
		return nil, ErrEmptyPath
	}

	if parent.FileExists(p) {
		switch strings.ToLower(path.Ext(p)) {
		case ".zip":
			z, err := NewZip(parent, p)
			if err != nil {
				return nil, fmt.Errorf("vfs: open zip %s: %w", p, err)
			}
			return z, nil
		case ".bin":
			return nil, fmt.Errorf("%w: cd image %s", ErrUnsupportedArchive, p)
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnknownArchive, p)
		}
	}

	return NewDirectoryLimited(parent, p), nil
}

func cleanName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	return strings.TrimPrefix(path.Clean("/"+name), "/")
}

func notExist(op, name string) error {
	return &fs.PathError{Op: op, Path: name, Err: fs.ErrNotExist}
}
