package vfs

import (
	"io"
	"path"
)

// DirectoryLimited exposes a sub directory of a parent file system.
type DirectoryLimited struct {
	parent FileSystem
	dir    string
}

func NewDirectoryLimited(parent FileSystem, dir string) *DirectoryLimited {
	return &DirectoryLimited{parent: parent, dir: cleanName(dir)}
}

func (d *DirectoryLimited) Open(name string) (io.ReadCloser, error) {
	return d.parent.Open(path.Join(d.dir, cleanName(name)))
}

func (d *DirectoryLimited) FileExists(name string) bool {
	return d.parent.FileExists(path.Join(d.dir, cleanName(name)))
}

func (d *DirectoryLimited) FsPath() string {
	return path.Join(d.parent.FsPath(), d.dir)
}
