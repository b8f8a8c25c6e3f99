package vfs

import (
	"bytes"
	"io"
)

// Memory is an in-memory file system, mostly for tests and tools.
type Memory struct {
	files map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{files: map[string][]byte{}}
}

// Add stores data under name, replacing any previous content.
func (m *Memory) Add(name string, data []byte) *Memory {
	m.files[cleanName(name)] = data
	return m
}

func (m *Memory) Remove(name string) {
	delete(m.files, cleanName(name))
}

func (m *Memory) Open(name string) (io.ReadCloser, error) {
	data, ok := m.files[cleanName(name)]
	if !ok {
		return nil, notExist("open", name)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *Memory) FileExists(name string) bool {
	_, ok := m.files[cleanName(name)]
	return ok
}

func (m *Memory) FsPath() string {
	return "mem:"
}
