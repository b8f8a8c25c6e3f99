package vfs

import (
	"archive/zip"
	"bytes"
	"io"
	"path"
	"strings"
)

// Zip serves files out of a ZIP archive read through a parent file system.
// Names are matched case-insensitively since game data is usually upper case.
type Zip struct {
	name  string
	files map[string]*zip.File
}

func NewZip(parent FileSystem, name string) (*Zip, error) {
	data, err := ReadFile(parent, name)
	if err != nil {
		return nil, err
	}
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	z := &Zip{
		name:  path.Join(parent.FsPath(), cleanName(name)),
		files: make(map[string]*zip.File, len(r.File)),
	}
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		z.files[zipKey(f.Name)] = f
	}
	return z, nil
}

func (z *Zip) Open(name string) (io.ReadCloser, error) {
	f, ok := z.files[zipKey(name)]
	if !ok {
		return nil, notExist("open", name)
	}
	return f.Open()
}

func (z *Zip) FileExists(name string) bool {
	_, ok := z.files[zipKey(name)]
	return ok
}

func (z *Zip) FsPath() string {
	return z.name
}

func zipKey(name string) string {
	return strings.ToLower(cleanName(name))
}
