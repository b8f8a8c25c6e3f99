package gridmap

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/alive/vfs"
)

//go:embed bindings.yaml
var defaultBindings []byte

// Bindings maps object type codes of the path object table to script names.
type Bindings struct {
	Objects map[uint32]string `yaml:"objects"`
}

// DefaultBindings returns the table built into the binary.
func DefaultBindings() *Bindings {
	b, err := ParseBindings(defaultBindings)
	if err != nil {
		panic(err)
	}
	return b
}

func ParseBindings(data []byte) (*Bindings, error) {
	var b Bindings
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("gridmap: bindings: %w", err)
	}
	if b.Objects == nil {
		b.Objects = map[uint32]string{}
	}
	for code, name := range b.Objects {
		if name == "" {
			return nil, fmt.Errorf("gridmap: bindings: code %d has no script", code)
		}
	}
	return &b, nil
}

// LoadBindings reads a bindings table from fsys.
func LoadBindings(fsys vfs.FileSystem, name string) (*Bindings, error) {
	data, err := vfs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("gridmap: bindings: %w", err)
	}
	return ParseBindings(data)
}

// Script returns the script bound to an object type code.
func (b *Bindings) Script(code uint32) (string, bool) {
	if b == nil {
		return "", false
	}
	name, ok := b.Objects[code]
	return name, ok
}
