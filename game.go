package main

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/coinwalk/config"
	"github.com/milk9111/coinwalk/obj"
	"github.com/milk9111/coinwalk/prefabs"
	"github.com/milk9111/coinwalk/system"
)

type Game struct {
	cfg   config.Config
	spec  prefabs.WorldSpec
	start time.Time

	world   *system.World
	surface *ebitenSurface
	sound   *pickupSound

	paused bool
	quit   bool
	ui     *ebitenui.UI

	watcher *prefabs.Watcher
}

func NewGame(cfg config.Config) (*Game, error) {
	spec, err := prefabs.LoadWorldSpec()
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:     cfg,
		spec:    cfg.Apply(*spec),
		start:   time.Now(),
		surface: newEbitenSurface(),
		sound:   newPickupSound(),
	}
	if err := g.restart(); err != nil {
		return nil, err
	}
	g.ui = NewPauseUI(g)

	if cfg.Debug {
		w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			log.Printf("prefab hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// restart rebuilds the world from the current prefabs.
func (g *Game) restart() error {
	spawner, err := system.SpawnerFor(g.spec)
	if err != nil {
		log.Printf("spawn script %q unavailable, using random placement: %v", g.spec.SpawnScript, err)
		spawner = system.RandomSpawner{Seed: uint64(g.spec.Seed)}
	}

	sheets := system.AssetSheets(func(path string) {
		if g.cfg.Debug {
			log.Printf("sprite sheet %s not found, using placeholder", path)
		}
	})

	w, err := system.FromPrefabs(g.spec, spawner, sheets)
	if err != nil {
		var fallbackErr error
		w, fallbackErr = system.FromPrefabs(g.spec, system.RandomSpawner{Seed: uint64(g.spec.Seed)}, sheets)
		if fallbackErr != nil {
			return err
		}
		log.Printf("spawn script %q failed, using random placement: %v", g.spec.SpawnScript, err)
	}
	w.OnPickup(func(c *obj.Coin) {
		g.sound.Play()
		if g.cfg.Debug {
			log.Printf("coin picked up at (%.0f, %.0f), %d left", c.Position.X, c.Position.Y, w.Remaining())
		}
	})

	g.world = w
	g.paused = false
	return nil
}

func (g *Game) CanvasSize() (float64, float64) {
	b := g.world.Bounds()
	return b.Width, b.Height
}

func (g *Game) nowMs() float64 {
	return float64(time.Since(g.start).Microseconds()) / 1000
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	g.pollReload()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.setPaused(!g.paused)
	}
	if g.paused {
		g.ui.Update()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.restart(); err != nil {
			log.Printf("restart: %v", err)
		}
	}

	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		g.world.KeyDown(k.String())
	}
	for _, k := range inpututil.AppendJustReleasedKeys(nil) {
		g.world.KeyUp(k.String())
	}

	g.world.Advance(g.nowMs())
	return nil
}

func (g *Game) setPaused(paused bool) {
	g.paused = paused
	if !paused {
		// held keys may have been released while the menu had focus
		g.world.Player().Input.Clear()
		g.world.ResetClock()
	}
}

func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(change)
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("prefab watcher: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reload(change prefabs.Change) {
	log.Printf("reloading %s", change.Name())
	if change.Name() == "player.yaml" {
		spec, err := prefabs.LoadPlayerSpec()
		if err == nil {
			err = g.world.ApplyPlayerSpec(*spec)
		}
		if err != nil {
			log.Printf("reload player: %v", err)
		}
		return
	}

	if change.Name() == "world.yaml" {
		spec, err := prefabs.LoadWorldSpec()
		if err != nil {
			log.Printf("reload world: %v", err)
			return
		}
		g.spec = g.cfg.Apply(*spec)
	}
	if err := g.restart(); err != nil {
		log.Printf("reload %s: %v", change.Name(), err)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.screen = screen
	g.surface.ClearRect(g.world.Bounds())
	g.world.Draw(g.surface)

	hud := fmt.Sprintf("Coins: %d/%d", g.world.Collected(), g.world.Total())
	if g.world.Cleared() {
		hud += "  All coins collected! Press R to play again."
	}
	if g.cfg.Debug {
		p := g.world.Player()
		hud += fmt.Sprintf("\nFPS: %.2f  facing: %s  pos: (%.1f, %.1f)", ebiten.ActualFPS(), p.Facing(), p.Position.X, p.Position.Y)
	}
	ebitenutil.DebugPrint(screen, hud)

	if g.paused {
		g.ui.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return g.CanvasSize()
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
