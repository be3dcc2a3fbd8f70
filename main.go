// Chessrules - a two-player chess board built with Ebitengine
package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/chessrules/internal/config"
	"github.com/hailam/chessrules/internal/storage"
	"github.com/hailam/chessrules/internal/ui"
)

var (
	inMemory = flag.Bool("memory", os.Getenv("CHESSRULES_MEMORY") != "", "keep games and statistics in memory only")
	dataDir  = flag.String("data", os.Getenv("CHESSRULES_DATA"), "data directory, overriding the config file")
	mute     = flag.Bool("mute", false, "disable sound effects")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Printf("Warning: %v (using defaults)", err)
		def := config.DefaultConfig
		cfg = &def
	}
	if *inMemory {
		cfg.Storage.InMemory = true
	}
	if *dataDir != "" {
		cfg.Storage.DataDir = *dataDir
	}
	if *mute {
		cfg.Sound = false
	}

	store, err := storage.NewStorage(cfg.Storage)
	if err != nil {
		log.Printf("Warning: Failed to initialize storage: %v", err)
	} else {
		defer store.Close()
	}

	game := ui.NewGame(cfg, store)

	size := cfg.Window.SquareSize * 8
	ebiten.SetWindowSize(size+ui.PanelWidth, size)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
