package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrNoDataSets = errors.New("config: no data sets configured")

// DataSet is one source of game resources. Data sets are searched in the
// order they appear in the config file.
type DataSet struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
	Mod  bool   `yaml:"mod"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// StartConfig names the level archive and path chunk to load on boot.
type StartConfig struct {
	Lvl    string  `yaml:"lvl"`
	File   string  `yaml:"file"`
	Chunk  uint32  `yaml:"chunk"`
	SpawnX float64 `yaml:"spawn_x"`
	SpawnY float64 `yaml:"spawn_y"`
}

type InputConfig struct {
	Left  []string `yaml:"left"`
	Right []string `yaml:"right"`
	Chant []string `yaml:"chant"`
}

type Config struct {
	LogLevel    string       `yaml:"log_level"`
	Window      WindowConfig `yaml:"window"`
	DataSets    []DataSet    `yaml:"data_sets"`
	ResourceMap string       `yaml:"resource_map"`
	Bindings    string       `yaml:"bindings"`
	ScriptsDir  string       `yaml:"scripts_dir"`
	HotReload   bool         `yaml:"hot_reload"`
	Start       StartConfig  `yaml:"start"`
	Input       InputConfig  `yaml:"input"`
}

// Load reads and validates a yaml config file from disk.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", filename, err)
	}
	return Parse(data)
}

// Parse decodes yaml bytes, applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Window.Width <= 0 {
		c.Window.Width = 640
	}
	if c.Window.Height <= 0 {
		c.Window.Height = 480
	}
	if c.Window.Title == "" {
		c.Window.Title = "alive"
	}
	if len(c.Input.Left) == 0 {
		c.Input.Left = []string{"ArrowLeft", "A"}
	}
	if len(c.Input.Right) == 0 {
		c.Input.Right = []string{"ArrowRight", "D"}
	}
	if len(c.Input.Chant) == 0 {
		c.Input.Chant = []string{"Digit0"}
	}
}

func (c *Config) Validate() error {
	if len(c.DataSets) == 0 {
		return ErrNoDataSets
	}
	seen := make(map[string]bool, len(c.DataSets))
	for i, ds := range c.DataSets {
		if ds.Name == "" {
			return fmt.Errorf("config: data set %d has no name", i)
		}
		if ds.Path == "" {
			return fmt.Errorf("config: data set %q has no path", ds.Name)
		}
		if seen[ds.Name] {
			return fmt.Errorf("config: duplicate data set %q", ds.Name)
		}
		seen[ds.Name] = true
	}
	if c.Start.Lvl == "" || c.Start.File == "" {
		return fmt.Errorf("config: start level requires lvl and file")
	}
	return nil
}
