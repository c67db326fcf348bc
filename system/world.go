package system

import (
	"github.com/milk9111/coinwalk/common"
	"github.com/milk9111/coinwalk/component"
	"github.com/milk9111/coinwalk/obj"
)

// PickupFunc is called for every coin the player collects.
type PickupFunc func(c *obj.Coin)

// World owns the player and the active coins and steps them once per frame.
type World struct {
	canvas common.Rect
	player *obj.Player
	coins  []*obj.Coin

	total     int
	collected int
	score     int
	clock     Clock
	onPickup  []PickupFunc
}

// NewWorld takes ownership of player and coins.
func NewWorld(canvas common.Rect, player *obj.Player, coins []*obj.Coin) *World {
	return &World{
		canvas: canvas,
		player: player,
		coins:  coins,
		total:  len(coins),
	}
}

func (w *World) Player() *obj.Player { return w.player }
func (w *World) Bounds() common.Rect { return w.canvas }

// Coins returns the active coins. The slice is owned by the world.
func (w *World) Coins() []*obj.Coin { return w.coins }

func (w *World) Remaining() int { return len(w.coins) }
func (w *World) Total() int     { return w.total }
func (w *World) Collected() int { return w.collected }

// Score sums the value of every collected coin.
func (w *World) Score() int { return w.score }

// Cleared reports whether every coin has been picked up.
func (w *World) Cleared() bool { return w.total > 0 && len(w.coins) == 0 }

func (w *World) OnPickup(fn PickupFunc) {
	if fn == nil {
		return
	}
	w.onPickup = append(w.onPickup, fn)
}

// Update animates the coins, moves the player and then removes every coin
// the player overlaps.
func (w *World) Update(dtMs float64) {
	if w == nil || w.player == nil {
		return
	}

	for _, e := range w.entities() {
		e.Update(dtMs)
	}

	pb := w.player.Bounds()
	kept := w.coins[:0]
	for _, c := range w.coins {
		if !c.Overlaps(pb) {
			kept = append(kept, c)
			continue
		}
		w.collected++
		w.score += c.Value
		for _, fn := range w.onPickup {
			fn(c)
		}
	}
	for i := len(kept); i < len(w.coins); i++ {
		w.coins[i] = nil
	}
	w.coins = kept
}

// Draw renders coins first so the player is on top.
func (w *World) Draw(s component.Surface) {
	if w == nil || s == nil {
		return
	}
	for _, e := range w.entities() {
		e.Draw(s)
	}
}

// entities lists the coins followed by the player, the order both Update and
// Draw walk them in.
func (w *World) entities() []obj.Entity {
	out := make([]obj.Entity, 0, len(w.coins)+1)
	for _, c := range w.coins {
		out = append(out, c)
	}
	if w.player != nil {
		out = append(out, w.player)
	}
	return out
}

func (w *World) KeyDown(key string) {
	if w.player != nil {
		w.player.Input.KeyDown(key)
	}
}

func (w *World) KeyUp(key string) {
	if w.player != nil {
		w.player.Input.KeyUp(key)
	}
}

// Frame runs one callback of the host's frame loop: clear, draw, then update
// with the time since the previous frame.
func (w *World) Frame(nowMs float64, s component.Surface) {
	if s != nil {
		s.ClearRect(w.canvas)
	}
	w.Draw(s)
	w.Advance(nowMs)
}

// Advance updates the world by the time elapsed since the previous Advance
// or Frame. Hosts that draw separately from updating call this directly.
func (w *World) Advance(nowMs float64) {
	w.Update(w.clock.Tick(nowMs))
}

// ResetClock makes the next Frame use a zero delta, e.g. after a pause.
func (w *World) ResetClock() {
	w.clock.Reset()
}
