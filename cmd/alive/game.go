package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/alive/config"
	"github.com/milk9111/alive/ecs"
	"github.com/milk9111/alive/ecs/component"
	"github.com/milk9111/alive/gridmap"
	"github.com/milk9111/alive/input"
	"github.com/milk9111/alive/render"
	"github.com/milk9111/alive/resource"
	"github.com/milk9111/alive/script"
	"github.com/milk9111/alive/vfs"
	"go.uber.org/zap"
)

// loadBudget is the number of loader steps run per frame.
const loadBudget = 64

type Game struct {
	cfg      *config.Config
	log      *zap.Logger
	locator  *resource.Locator
	scripts  *script.Runtime
	watcher  *script.Watcher
	keyboard *input.Keyboard
	renderer *render.Ebiten
	level    *gridmap.Level
	editor   bool

	player ecs.EntityID
	frames int
}

func NewGame(cfg *config.Config, editor bool, log *zap.Logger) (*Game, error) {
	root := vfs.NewOS(".")

	var paths resource.DataPaths
	if err := paths.SetActive(root, cfg.DataSets); err != nil {
		return nil, err
	}

	var mapper *resource.Mapper
	if cfg.ResourceMap != "" {
		data, err := vfs.ReadFile(root, cfg.ResourceMap)
		if err != nil {
			return nil, err
		}
		if mapper, err = resource.ParseMapper(data); err != nil {
			return nil, err
		}
	}

	bindings := gridmap.DefaultBindings()
	if cfg.Bindings != "" {
		b, err := gridmap.LoadBindings(root, cfg.Bindings)
		if err != nil {
			return nil, err
		}
		bindings = b
	}

	keyboard, err := input.NewKeyboard(cfg.Input)
	if err != nil {
		return nil, err
	}

	var overrides vfs.FileSystem
	if cfg.ScriptsDir != "" {
		overrides = vfs.NewOS(cfg.ScriptsDir)
	}

	g := &Game{
		cfg:      cfg,
		log:      log,
		locator:  resource.NewLocator(mapper, &paths, log),
		scripts:  script.NewRuntime(overrides, log),
		keyboard: keyboard,
		renderer: render.NewEbiten(),
		level:    gridmap.NewLevel(log),
		editor:   editor,
		player:   ecs.NoEntity,
	}
	g.level.OnReplace = func(old *gridmap.GridMap) { old.Release(g.renderer) }

	if cfg.HotReload && cfg.ScriptsDir != "" {
		w, err := script.NewWatcher(cfg.ScriptsDir)
		if err != nil {
			log.Warn("script hot reload disabled", zap.Error(err))
		} else {
			g.watcher = w
		}
	}

	if err := g.load(bindings); err != nil {
		return nil, err
	}
	return g, nil
}

// load starts loading the configured start path. The map is built over
// the following frames.
func (g *Game) load(bindings *gridmap.Bindings) error {
	start := g.cfg.Start
	p, err := g.locator.LocatePath(start.Lvl, start.File, start.Chunk)
	if err != nil {
		return err
	}
	g.level.Load(gridmap.NewLoader(p, gridmap.Deps{
		Bindings: bindings,
		Scripts: func(name string) (component.Script, error) {
			return g.scripts.New(name)
		},
		Animations: g.locator,
		Cameras: func(name string) ([]byte, bool) {
			return g.locator.LocateCamera(start.Lvl, name)
		},
		Input: g.keyboard,
		Log:   g.log,
	}))
	return nil
}

func (g *Game) Update() error {
	g.frames++
	g.keyboard.Poll()

	g.reloadScripts()
	installed, err := g.level.Advance(loadBudget)
	if err != nil {
		g.log.Warn("level", zap.Error(err))
	}
	if installed {
		g.onInstalled()
	}
	return nil
}

func (g *Game) onInstalled() {
	m := g.level.Map()
	if g.editor {
		m.SetMode(gridmap.InEditor)
		return
	}
	id, err := m.SpawnPlayer(g.cfg.Start.SpawnX, g.cfg.Start.SpawnY, g.keyboard)
	if err != nil {
		g.log.Error("spawn player", zap.Error(err))
		return
	}
	g.player = id
}

func (g *Game) reloadScripts() {
	if g.watcher == nil || g.level.Map() == nil {
		return
	}
	for _, name := range g.watcher.Drain() {
		n := g.level.Map().ReloadScripts(name)
		g.log.Info("script reloaded", zap.String("script", name), zap.Int("objects", n))
	}
}

// camera returns the top left of the camera cell the player stands in.
func (g *Game) camera() (float64, float64) {
	m := g.level.Map()
	if m == nil {
		return 0, 0
	}
	t, ok := ecs.Get[*component.Transform](m.World(), g.player, ecs.Transform)
	if !ok {
		return 0, 0
	}
	x, y, ok := m.Grid().CellAt(t.X, t.Y)
	if !ok {
		return 0, 0
	}
	bb := m.Grid().Bounds(x, y)
	return bb.L, bb.B
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.level.Render(g.renderer)
	camX, camY := g.camera()
	g.renderer.Flush(screen, camX, camY, 1)

	status := fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS())
	if p := g.level.Pending(); p != nil {
		pr := p.Progress()
		status = fmt.Sprintf("%s\nloading %s %.0f%%", status, pr.State, pr.Fraction()*100)
	}
	ebitenutil.DebugPrint(screen, status)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

func (g *Game) Close() {
	g.level.Abort()
	if m := g.level.Map(); m != nil {
		m.Release(g.renderer)
	}
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
