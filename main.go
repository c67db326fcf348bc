package main

import (
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/coinwalk/assets"
	"github.com/milk9111/coinwalk/config"
	"github.com/milk9111/coinwalk/prefabs"
)

func main() {
	cfg, err := config.Load(".env", "coinwalk", os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	prefabs.Dir = cfg.PrefabDir
	assets.Root = cfg.AssetRoot

	game, err := NewGame(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	w, h := game.CanvasSize()
	ebiten.SetWindowSize(int(w), int(h))
	ebiten.SetWindowTitle("coinwalk")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
