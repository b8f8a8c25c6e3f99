// Command pathinfo loads a path without a window and prints a summary of
// the resulting map.
package main

import (
	"bytes"
	"flag"
	"log"
	"os"

	"github.com/milk9111/alive/config"
	"github.com/milk9111/alive/gridmap"
	"github.com/milk9111/alive/logger"
	"github.com/milk9111/alive/path"
	"github.com/milk9111/alive/resource"
	"github.com/milk9111/alive/script"
	"github.com/milk9111/alive/vfs"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func main() {
	configPath := flag.String("config", "", "config file used to locate the path in a level archive")
	file := flag.String("path", "", "raw path file, used instead of -config")
	bindingsFile := flag.String("bindings", "", "object bindings yaml, defaults to the built in table")
	stopAfter := flag.Int("steps", 0, "stop after this many load steps and print the snapshot")
	logLevel := flag.String("log", "warn", "log level")
	flag.Parse()

	zlog, err := logger.New(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zlog.Sync() }()

	p, err := readPath(*configPath, *file, zlog)
	if err != nil {
		zlog.Fatal("read path", zap.Error(err))
	}

	bindings := gridmap.DefaultBindings()
	if *bindingsFile != "" {
		if bindings, err = gridmap.LoadBindings(vfs.NewOS("."), *bindingsFile); err != nil {
			zlog.Fatal("read bindings", zap.Error(err))
		}
	}

	scripts := script.NewRuntime(nil, zlog)
	deps := gridmap.Deps{
		Bindings: bindings,
		Scripts:  scriptFactory(scripts),
		Log:      zlog,
	}

	rep, err := inspect(p, deps, *stopAfter)
	if err != nil {
		zlog.Fatal("load path", zap.Error(err))
	}

	enc := yaml.NewEncoder(os.Stdout)
	defer enc.Close()
	if err := enc.Encode(rep); err != nil {
		zlog.Fatal("encode report", zap.Error(err))
	}
}

func readPath(configPath, file string, log *zap.Logger) (*path.Path, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		return path.Decode(bytes.NewReader(data))
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	var paths resource.DataPaths
	if err := paths.SetActive(vfs.NewOS("."), cfg.DataSets); err != nil {
		return nil, err
	}
	locator := resource.NewLocator(nil, &paths, log)
	return locator.LocatePath(cfg.Start.Lvl, cfg.Start.File, cfg.Start.Chunk)
}
