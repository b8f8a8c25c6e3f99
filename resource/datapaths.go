package resource

import (
	"fmt"

	"github.com/milk9111/alive/config"
	"github.com/milk9111/alive/vfs"
	"golang.org/x/sync/errgroup"
)

// FileSystemInfo is one opened data set.
type FileSystemInfo struct {
	DataSetName string
	IsMod       bool
	FileSystem  vfs.FileSystem
}

// DataPaths is the ordered list of active data sets, highest priority first.
type DataPaths struct {
	active []FileSystemInfo
}

// SetActive opens every data set through fsys. Opening runs concurrently but
// the resulting order is the configured order. On failure the previous
// active list is kept.
func (d *DataPaths) SetActive(fsys vfs.FileSystem, sets []config.DataSet) error {
	opened := make([]FileSystemInfo, len(sets))

	var g errgroup.Group
	for i, ds := range sets {
		g.Go(func() error {
			dsFs, err := vfs.Factory(fsys, ds.Path)
			if err != nil {
				return fmt.Errorf("resource: data set %s: %w", ds.Name, err)
			}
			opened[i] = FileSystemInfo{DataSetName: ds.Name, IsMod: ds.Mod, FileSystem: dsFs}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	d.active = opened
	return nil
}

// Add appends an already opened data set.
func (d *DataPaths) Add(info FileSystemInfo) {
	d.active = append(d.active, info)
}

func (d *DataPaths) Active() []FileSystemInfo {
	return d.active
}
