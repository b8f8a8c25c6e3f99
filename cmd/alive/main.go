package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/alive/config"
	"github.com/milk9111/alive/logger"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "alive.yaml", "path to the yaml config file")
	logLevel := flag.String("log", "", "log level, overrides the config file")
	editor := flag.Bool("editor", false, "start the map in editor mode")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zlog.Sync() }()

	game, err := NewGame(cfg, *editor, zlog)
	if err != nil {
		zlog.Fatal("start game", zap.Error(err))
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)

	if err := ebiten.RunGame(game); err != nil {
		zlog.Fatal("run game", zap.Error(err))
	}
}
