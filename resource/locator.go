package resource

import (
	"bytes"
	"fmt"

	"github.com/milk9111/alive/anim"
	"github.com/milk9111/alive/logger"
	"github.com/milk9111/alive/lvl"
	"github.com/milk9111/alive/path"
	"github.com/milk9111/alive/vfs"
	"go.uber.org/zap"
)

const cameraChunkKind = "Bits"

// Locator resolves resource names against the active data sets.
type Locator struct {
	mapper *Mapper
	paths  *DataPaths
	log    *zap.Logger

	archives map[string]*lvl.Archive
}

func NewLocator(mapper *Mapper, paths *DataPaths, log *zap.Logger) *Locator {
	return &Locator{
		mapper:   mapper,
		paths:    paths,
		log:      logger.OrNop(log),
		archives: map[string]*lvl.Archive{},
	}
}

// Locate finds an animation by name. Mod data sets are checked for a
// "<name>.anim" override; base data sets go through the mapping tables.
// A miss is not an error.
func (l *Locator) Locate(name string) (*anim.Animation, bool) {
	for _, fs := range l.paths.Active() {
		if fs.IsMod {
			if a, ok := l.locateModAnimation(fs, name); ok {
				return a, true
			}
			continue
		}

		mappings, ok := l.mapper.FindAnimation(name, fs.DataSetName)
		if !ok {
			continue
		}
		for _, m := range mappings {
			locs, ok := l.mapper.FindFileLocation(fs.DataSetName, m.File)
			if !ok {
				continue
			}
			for _, loc := range locs {
				archive, ok := l.archive(fs, loc.Lvl)
				if !ok {
					continue
				}
				file, ok := archive.FileByName(m.File)
				if !ok {
					continue
				}
				chunk, ok := file.ChunkByID(m.ID)
				if !ok {
					continue
				}
				a, err := anim.DecodeChunk(name, chunk.Data, m.AnimIndex)
				if err != nil {
					l.log.Warn("bad animation chunk",
						zap.String("resource", name),
						zap.String("data_set", fs.DataSetName),
						zap.Error(err))
					continue
				}
				l.log.Debug("located animation",
					zap.String("resource", name),
					zap.String("data_set", fs.DataSetName),
					zap.String("fs", fs.FileSystem.FsPath()),
					zap.String("lvl", loc.Lvl),
					zap.String("file", m.File),
					zap.Uint32("chunk", m.ID),
					zap.Int("anim_index", m.AnimIndex),
					zap.Bool("psx", loc.Psx))
				return a, true
			}
		}
	}
	return nil, false
}

func (l *Locator) locateModAnimation(fs FileSystemInfo, name string) (*anim.Animation, bool) {
	fn := name + ".anim"
	if !fs.FileSystem.FileExists(fn) {
		return nil, false
	}
	data, err := vfs.ReadFile(fs.FileSystem, fn)
	if err != nil {
		l.log.Warn("read mod animation", zap.String("resource", name), zap.Error(err))
		return nil, false
	}
	a, err := anim.DecodeChunk(name, data, 0)
	if err != nil {
		l.log.Warn("decode mod animation", zap.String("resource", name), zap.Error(err))
		return nil, false
	}
	return a, true
}

// LocateCamera returns the encoded image of camera cam from level archive
// lvlName. Mods may override with "<cam>.png".
func (l *Locator) LocateCamera(lvlName, cam string) ([]byte, bool) {
	for _, fs := range l.paths.Active() {
		if fs.IsMod {
			if fs.FileSystem.FileExists(cam + ".png") {
				if data, err := vfs.ReadFile(fs.FileSystem, cam+".png"); err == nil {
					return data, true
				}
			}
			continue
		}
		archive, ok := l.archive(fs, lvlName)
		if !ok {
			continue
		}
		file, ok := archive.FileByName(cam + ".CAM")
		if !ok {
			continue
		}
		chunk, ok := file.ChunkByKind(cameraChunkKind)
		if !ok {
			continue
		}
		return chunk.Data, true
	}
	return nil, false
}

// LocatePath decodes path chunk id of file inside level archive lvlName,
// using the first data set that has it.
func (l *Locator) LocatePath(lvlName, file string, id uint32) (*path.Path, error) {
	for _, fs := range l.paths.Active() {
		if fs.IsMod {
			continue
		}
		archive, ok := l.archive(fs, lvlName)
		if !ok {
			continue
		}
		f, ok := archive.FileByName(file)
		if !ok {
			continue
		}
		chunk, ok := f.ChunkByID(id)
		if !ok {
			continue
		}
		p, err := path.Decode(bytes.NewReader(chunk.Data))
		if err != nil {
			return nil, fmt.Errorf("resource: %s/%s chunk %d: %w", lvlName, file, id, err)
		}
		return p, nil
	}
	return nil, fmt.Errorf("%w: %s/%s chunk %d", ErrNotFound, lvlName, file, id)
}

// archive opens and caches a level archive of one data set.
func (l *Locator) archive(fs FileSystemInfo, lvlName string) (*lvl.Archive, bool) {
	key := fs.DataSetName + "/" + lvlName
	if a, ok := l.archives[key]; ok {
		return a, a != nil
	}
	if !fs.FileSystem.FileExists(lvlName) {
		return nil, false
	}
	rc, err := fs.FileSystem.Open(lvlName)
	if err != nil {
		l.log.Warn("open lvl", zap.String("lvl", lvlName), zap.Error(err))
		return nil, false
	}
	defer rc.Close()

	a, err := lvl.Read(rc)
	if err != nil {
		l.log.Warn("read lvl", zap.String("lvl", lvlName), zap.Error(err))
		l.archives[key] = nil
		return nil, false
	}
	l.archives[key] = a
	return a, true
}

// Forget drops cached archives, e.g. after data sets change.
func (l *Locator) Forget() {
	clear(l.archives)
}
