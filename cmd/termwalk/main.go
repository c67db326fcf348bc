// Command termwalk runs the coin walk in a terminal. Terminals report key
// presses but never releases, so each press holds its direction for a short
// window that key repeat keeps extending.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/milk9111/coinwalk/assets"
	"github.com/milk9111/coinwalk/config"
	"github.com/milk9111/coinwalk/obj"
	"github.com/milk9111/coinwalk/prefabs"
	"github.com/milk9111/coinwalk/system"
)

const (
	holdDuration = 150 * time.Millisecond
	sampleRate   = beep.SampleRate(44100)
)

type termGame struct {
	cfg     config.Config
	spec    prefabs.WorldSpec
	screen  tcell.Screen
	surface *cellSurface
	world   *system.World
	start   time.Time

	holds *keyHolds

	audioInit bool
}

func newTermGame(cfg config.Config, screen tcell.Screen) (*termGame, error) {
	spec, err := prefabs.LoadWorldSpec()
	if err != nil {
		return nil, err
	}
	g := &termGame{
		cfg:    cfg,
		spec:   cfg.Apply(*spec),
		screen: screen,
		start:  time.Now(),
		holds:  newKeyHolds(holdDuration),
	}
	if err := g.restart(); err != nil {
		return nil, err
	}
	g.surface = newCellSurface(screen, g.world.Bounds())

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.Printf("audio initialization failed: %v", err)
	} else {
		g.audioInit = true
	}
	return g, nil
}

func (g *termGame) restart() error {
	spawner, err := system.SpawnerFor(g.spec)
	if err != nil {
		log.Printf("spawn script %q unavailable, using random placement: %v", g.spec.SpawnScript, err)
		spawner = system.RandomSpawner{Seed: uint64(g.spec.Seed)}
	}
	w, err := system.FromPrefabs(g.spec, spawner, system.AssetSheets(nil))
	if err != nil {
		return err
	}
	w.OnPickup(func(c *obj.Coin) {
		g.playPickup()
		log.Printf("coin picked up at (%.0f, %.0f), %d left", c.Position.X, c.Position.Y, w.Remaining())
	})
	g.world = w
	g.holds.reset()
	return nil
}

func (g *termGame) playPickup() {
	if !g.audioInit {
		return
	}
	sine, err := generators.SineTone(sampleRate, 988)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(120*time.Millisecond), sine))
}

func (g *termGame) nowMs() float64 {
	return float64(time.Since(g.start).Microseconds()) / 1000
}

// handleInput returns false once the player asks to quit.
func (g *termGame) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		key := string(ev.Rune())
		if key == "r" || key == "R" {
			if err := g.restart(); err != nil {
				log.Printf("restart: %v", err)
			}
			return true
		}
		if d, fresh, ok := g.holds.press(key, time.Now()); ok && fresh {
			g.world.Player().Input.Press(d)
		}

	case *tcell.EventResize:
		g.screen.Sync()
		g.surface.resize()
	}
	return true
}

func (g *termGame) releaseExpired(now time.Time) {
	for _, d := range g.holds.expire(now) {
		g.world.Player().Input.Release(d)
	}
}

func (g *termGame) tick() {
	g.releaseExpired(time.Now())
	g.world.Frame(g.nowMs(), g.surface)

	hud := fmt.Sprintf("Coins: %d/%d  WASD move, R restart, Esc quit", g.world.Collected(), g.world.Total())
	if g.world.Cleared() {
		hud = fmt.Sprintf("All %d coins collected! R to play again, Esc to quit", g.world.Total())
	}
	g.surface.text(hud, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	g.screen.Show()
}

func (g *termGame) run() {
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return
			}
		case <-ticker.C:
			g.tick()
		}
	}
}

func (g *termGame) cleanup() {
	if g.audioInit {
		speaker.Close()
	}
	g.screen.Fini()
}

func main() {
	cfg, err := config.Load(".env", "termwalk", os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	prefabs.Dir = cfg.PrefabDir
	assets.Root = cfg.AssetRoot

	// the screen owns stdout while running
	log.SetOutput(io.Discard)
	if cfg.Debug {
		f, err := os.Create("termwalk.log")
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	g, err := newTermGame(cfg, screen)
	if err != nil {
		screen.Fini()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer g.cleanup()
	g.run()
}
