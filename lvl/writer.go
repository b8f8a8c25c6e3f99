package lvl

import (
	"bytes"
	"encoding/binary"
)

// Builder assembles an archive. It is used by tools and test fixtures.
type Builder struct {
	files []*FileBuilder
}

type FileBuilder struct {
	name   string
	chunks []Chunk
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) File(name string) *FileBuilder {
	fb := &FileBuilder{name: name}
	b.files = append(b.files, fb)
	return fb
}

// Chunk appends a chunk; kind is padded or cut to four bytes.
func (fb *FileBuilder) Chunk(id uint32, kind string, data []byte) *FileBuilder {
	fb.chunks = append(fb.chunks, Chunk{ID: id, Kind: kind, Data: data})
	return fb
}

func (fb *FileBuilder) bytes() []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(fb.chunks)))
	for _, c := range fb.chunks {
		var kind [4]byte
		copy(kind[:], c.Kind)
		_ = binary.Write(&buf, binary.LittleEndian, c.ID)
		buf.Write(kind[:])
		_ = binary.Write(&buf, binary.LittleEndian, uint32(len(c.Data)))
		buf.Write(c.Data)
	}
	return buf.Bytes()
}

func (b *Builder) Bytes() []byte {
	bodies := make([][]byte, len(b.files))
	header := 8
	for i, f := range b.files {
		bodies[i] = f.bytes()
		header += 2 + len(f.name) + 8
	}

	var buf bytes.Buffer
	buf.Write(magic[:])
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(b.files)))
	off := header
	for i, f := range b.files {
		_ = binary.Write(&buf, binary.LittleEndian, uint16(len(f.name)))
		buf.WriteString(f.name)
		_ = binary.Write(&buf, binary.LittleEndian, uint32(off))
		_ = binary.Write(&buf, binary.LittleEndian, uint32(len(bodies[i])))
		off += len(bodies[i])
	}
	for _, body := range bodies {
		buf.Write(body)
	}
	return buf.Bytes()
}
