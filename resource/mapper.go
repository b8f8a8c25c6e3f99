package resource

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// AnimMapping says where an animation lives inside one data set: a file
// inside some LVL archive, the chunk id in that file and the animation index
// in the chunk.
type AnimMapping struct {
	File      string `yaml:"file"`
	ID        uint32 `yaml:"id"`
	AnimIndex int    `yaml:"anim_index"`
}

// FileLocation is an LVL archive that contains a mapped file.
type FileLocation struct {
	Lvl string `yaml:"lvl"`
	Psx bool   `yaml:"psx"`
}

// Mapper holds the per data set mapping tables.
type Mapper struct {
	Animations    map[string]map[string][]AnimMapping  `yaml:"animations"`
	FileLocations map[string]map[string][]FileLocation `yaml:"file_locations"`
}

// ParseMapper decodes a yaml mapping table.
func ParseMapper(data []byte) (*Mapper, error) {
	var m Mapper
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("resource: unmarshal mapping: %w", err)
	}
	return &m, nil
}

// FindAnimation returns the mappings of name in dataSet.
func (m *Mapper) FindAnimation(name, dataSet string) ([]AnimMapping, bool) {
	if m == nil {
		return nil, false
	}
	anims, ok := m.Animations[dataSet]
	if !ok {
		return nil, false
	}
	mapping, ok := anims[name]
	return mapping, ok && len(mapping) > 0
}

// FindFileLocation returns the LVL archives holding file in dataSet.
func (m *Mapper) FindFileLocation(dataSet, file string) ([]FileLocation, bool) {
	if m == nil {
		return nil, false
	}
	files, ok := m.FileLocations[dataSet]
	if !ok {
		return nil, false
	}
	if locs, ok := files[file]; ok {
		return locs, len(locs) > 0
	}
	for name, locs := range files {
		if strings.EqualFold(name, file) {
			return locs, len(locs) > 0
		}
	}
	return nil, false
}
