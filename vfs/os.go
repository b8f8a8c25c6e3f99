package vfs

import (
	"io"
	"os"
	"path/filepath"
)

// OS is rooted at a host directory. It is the only implementation that
// reads the host file system.
type OS struct {
	root string
}

func NewOS(root string) *OS {
	return &OS{root: root}
}

func (o *OS) Open(name string) (io.ReadCloser, error) {
	return os.Open(o.resolve(name))
}

func (o *OS) FileExists(name string) bool {
	info, err := os.Stat(o.resolve(name))
	return err == nil && !info.IsDir()
}

func (o *OS) FsPath() string {
	return o.root
}

func (o *OS) resolve(name string) string {
	return filepath.Join(o.root, filepath.FromSlash(cleanName(name)))
}
