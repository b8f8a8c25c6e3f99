// Package lvl reads LVL archives: a directory of named files, where every
// file is a sequence of id-keyed chunks (paths, cameras, animations).
//
// Layout, little endian:
//
//	archive: "LVLA" | count u32 | count × {nameLen u16 | name | offset u32 | size u32} | data
//	file:    count u32 | count × {id u32 | kind [4]byte | size u32 | data}
package lvl

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	ErrBadMagic  = errors.New("lvl: bad archive magic")
	ErrTruncated = errors.New("lvl: truncated data")
)

var magic = [4]byte{'L', 'V', 'L', 'A'}

// Smallest encoded sizes of a directory entry and a chunk header.
const (
	entrySize       = 10
	chunkHeaderSize = 12
)

// Archive is a decoded LVL directory; file bodies share the input buffer.
type Archive struct {
	files []*File
	index map[string]*File
}

type File struct {
	Name   string
	data   []byte
	chunks []Chunk
	parsed bool
}

type Chunk struct {
	ID   uint32
	Kind string
	Data []byte
}

// Read decodes an archive from r.
func Read(r io.Reader) (*Archive, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("lvl: read: %w", err)
	}
	return Parse(data)
}

// Parse decodes an archive held in memory.
func Parse(data []byte) (*Archive, error) {
	if len(data) < 8 {
		return nil, ErrTruncated
	}
	if !bytes.Equal(data[:4], magic[:]) {
		return nil, ErrBadMagic
	}
	count := binary.LittleEndian.Uint32(data[4:8])
	if int64(count) > int64(len(data)-8)/entrySize {
		return nil, fmt.Errorf("%w: %d files in %d bytes", ErrTruncated, count, len(data))
	}

	a := &Archive{index: make(map[string]*File, count)}
	off := 8
	for i := uint32(0); i < count; i++ {
		if off+2 > len(data) {
			return nil, ErrTruncated
		}
		nameLen := int(binary.LittleEndian.Uint16(data[off:]))
		off += 2
		if off+nameLen+8 > len(data) {
			return nil, ErrTruncated
		}
		name := string(data[off : off+nameLen])
		off += nameLen
		start := int(binary.LittleEndian.Uint32(data[off:]))
		size := int(binary.LittleEndian.Uint32(data[off+4:]))
		off += 8
		if start < 0 || size < 0 || start+size > len(data) {
			return nil, fmt.Errorf("%w: file %s", ErrTruncated, name)
		}

		f := &File{Name: name, data: data[start : start+size]}
		a.files = append(a.files, f)
		a.index[strings.ToUpper(name)] = f
	}
	return a, nil
}

// FileByName looks a file up ignoring case.
func (a *Archive) FileByName(name string) (*File, bool) {
	f, ok := a.index[strings.ToUpper(name)]
	return f, ok
}

func (a *Archive) Files() []*File {
	return a.files
}

// Chunks decodes the file's chunk table on first use.
func (f *File) Chunks() ([]Chunk, error) {
	if f.parsed {
		return f.chunks, nil
	}
	data := f.data
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: file %s", ErrTruncated, f.Name)
	}
	count := binary.LittleEndian.Uint32(data)
	if int64(count) > int64(len(data)-4)/chunkHeaderSize {
		return nil, fmt.Errorf("%w: file %s: %d chunks in %d bytes", ErrTruncated, f.Name, count, len(data))
	}
	off := 4
	var chunks []Chunk
	for i := uint32(0); i < count; i++ {
		if off+chunkHeaderSize > len(data) {
			return nil, fmt.Errorf("%w: file %s chunk %d", ErrTruncated, f.Name, i)
		}
		id := binary.LittleEndian.Uint32(data[off:])
		kind := string(data[off+4 : off+8])
		size := int(binary.LittleEndian.Uint32(data[off+8:]))
		off += chunkHeaderSize
		if off+size > len(data) {
			return nil, fmt.Errorf("%w: file %s chunk %d", ErrTruncated, f.Name, id)
		}
		chunks = append(chunks, Chunk{ID: id, Kind: kind, Data: data[off : off+size]})
		off += size
	}
	f.chunks = chunks
	f.parsed = true
	return chunks, nil
}

// ChunkByID returns the first chunk with the given id.
func (f *File) ChunkByID(id uint32) (*Chunk, bool) {
	chunks, err := f.Chunks()
	if err != nil {
		return nil, false
	}
	for i := range chunks {
		if chunks[i].ID == id {
			return &chunks[i], true
		}
	}
	return nil, false
}

// ChunkByKind returns the first chunk of the given four character kind.
func (f *File) ChunkByKind(kind string) (*Chunk, bool) {
	chunks, err := f.Chunks()
	if err != nil {
		return nil, false
	}
	for i := range chunks {
		if chunks[i].Kind == kind {
			return &chunks[i], true
		}
	}
	return nil, false
}
