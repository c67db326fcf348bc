package system

import (
	"fmt"
	"image/color"

	"github.com/milk9111/coinwalk/common"
	"github.com/milk9111/coinwalk/component"
	"github.com/milk9111/coinwalk/obj"
	"github.com/milk9111/coinwalk/prefabs"
)

// SheetLoader resolves a sprite spec to an image. frames is the number of
// frames the sheet must hold.
type SheetLoader func(spec prefabs.SpriteSpec, frames int, tint color.Color) (component.Image, error)

type BuildConfig struct {
	World  prefabs.WorldSpec
	Player prefabs.PlayerSpec
	Coin   prefabs.CoinSpec

	// Spawner places coins. Nil uses a RandomSpawner seeded from World.Seed.
	Spawner Spawner
	// Sheets loads sprite sheets. Nil draws entities as colored boxes.
	Sheets SheetLoader
}

// Build creates a world with the player centred on the canvas and coins
// placed by the spawner.
func Build(cfg BuildConfig) (*World, error) {
	canvas := cfg.World.Canvas.Rect()
	if canvas.Width <= 0 || canvas.Height <= 0 {
		return nil, fmt.Errorf("system: canvas %vx%v is empty", canvas.Width, canvas.Height)
	}
	if cfg.World.Coins < 0 {
		return nil, fmt.Errorf("system: world %s: %w: %d coins", cfg.World.Name, ErrNegativeCount, cfg.World.Coins)
	}

	player, err := buildPlayer(cfg, canvas)
	if err != nil {
		return nil, err
	}

	spawner := cfg.Spawner
	if spawner == nil {
		spawner = RandomSpawner{Seed: uint64(cfg.World.Seed)}
	}
	size := common.Vec{X: cfg.Coin.Width, Y: cfg.Coin.Height}
	positions, err := spawner.Positions(canvas, size, cfg.World.Coins)
	if err != nil {
		return nil, fmt.Errorf("system: spawn coins: %w", err)
	}

	coins := make([]*obj.Coin, 0, len(positions))
	for _, pos := range positions {
		c, err := buildCoin(cfg, pos)
		if err != nil {
			return nil, err
		}
		coins = append(coins, c)
	}

	return NewWorld(canvas, player, coins), nil
}

func buildPlayer(cfg BuildConfig, canvas common.Rect) (*obj.Player, error) {
	ps := cfg.Player
	clips, err := ps.ClipTable()
	if err != nil {
		return nil, err
	}
	initial, err := ps.InitialClip.Clip()
	if err != nil {
		return nil, fmt.Errorf("system: player %s initial clip: %w", ps.Name, err)
	}

	pos := common.Vec{X: canvas.X + canvas.Width/2, Y: canvas.Y + canvas.Height/2}
	sprite, err := obj.NewSprite(obj.KindPlayer, pos, ps.Width, ps.Height, ps.Color.Color, ps.Sprite.Columns)
	if err != nil {
		return nil, err
	}
	if err := bindSheet(cfg.Sheets, sprite, ps.Sprite, maxFrame(clips, initial)+1, ps.Color.Color); err != nil {
		return nil, err
	}
	sprite.SetAnimation(initial)

	speed := ps.Speed
	if speed == 0 {
		speed = obj.DefaultPlayerSpeed
	}
	return obj.NewPlayer(sprite, clips, speed, canvas)
}

func buildCoin(cfg BuildConfig, pos common.Vec) (*obj.Coin, error) {
	cs := cfg.Coin
	clip, err := cs.Clip.Clip()
	if err != nil {
		return nil, fmt.Errorf("system: coin %s clip: %w", cs.Name, err)
	}
	sprite, err := obj.NewSprite(obj.KindCoin, pos, cs.Width, cs.Height, cs.Color.Color, cs.Sprite.Columns)
	if err != nil {
		return nil, err
	}
	if err := bindSheet(cfg.Sheets, sprite, cs.Sprite, clip.End+1, cs.Color.Color); err != nil {
		return nil, err
	}
	sprite.SetAnimation(clip)

	coin := obj.NewCoin(sprite)
	if cs.Value > 0 {
		coin.Value = cs.Value
	}
	return coin, nil
}

func bindSheet(load SheetLoader, s *obj.Sprite, spec prefabs.SpriteSpec, frames int, tint color.Color) error {
	if load == nil {
		return nil
	}
	img, err := load(spec, frames, tint)
	if err != nil {
		return err
	}
	return s.SetSprite(img, spec.Source.Rect())
}

func maxFrame(clips obj.ClipTable, extra component.Clip) int {
	m := extra.End
	for _, c := range clips {
		m = max(m, c.End)
	}
	return m
}

// ApplyPlayerSpec pushes tunable player values into a running world.
func (w *World) ApplyPlayerSpec(ps prefabs.PlayerSpec) error {
	if w == nil || w.player == nil {
		return nil
	}
	clips, err := ps.ClipTable()
	if err != nil {
		return err
	}
	if err := w.player.SetClips(clips); err != nil {
		return err
	}
	if ps.Speed > 0 {
		w.player.SetSpeed(ps.Speed)
	}
	return nil
}
