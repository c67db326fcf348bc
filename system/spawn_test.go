package system

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/milk9111/coinwalk/common"
	"github.com/milk9111/coinwalk/component"
	"github.com/milk9111/coinwalk/prefabs"
)

var coinSize = common.Vec{X: 32, Y: 32}

func assertInside(t *testing.T, positions []common.Vec, area common.Rect, size common.Vec) {
	t.Helper()
	for i, p := range positions {
		if p.X < area.X || p.Y < area.Y || p.X+size.X > area.Right() || p.Y+size.Y > area.Bottom() {
			t.Fatalf("position %d (%v) leaves %v", i, p, area)
		}
	}
}

func TestRandomSpawner(t *testing.T) {
	a, err := RandomSpawner{Seed: 42}.Positions(testCanvas, coinSize, 10)
	if err != nil {
		t.Fatalf("Positions: %v", err)
	}
	if len(a) != 10 {
		t.Fatalf("expected 10 positions, got %d", len(a))
	}
	assertInside(t, a, testCanvas, coinSize)

	b, _ := RandomSpawner{Seed: 42}.Positions(testCanvas, coinSize, 10)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed must give same layout, differ at %d", i)
		}
	}

	c, _ := RandomSpawner{Seed: 7}.Positions(testCanvas, coinSize, 10)
	if c[0] == a[0] {
		t.Fatalf("different seeds gave identical first position")
	}
}

func TestScriptSpawnerEmbeddedScripts(t *testing.T) {
	for _, name := range []string{"scatter", "ring"} {
		t.Run(name, func(t *testing.T) {
			s, err := LoadScriptSpawner(name, 3)
			if err != nil {
				t.Fatalf("LoadScriptSpawner: %v", err)
			}
			positions, err := s.Positions(testCanvas, coinSize, 12)
			if err != nil {
				t.Fatalf("Positions: %v", err)
			}
			if len(positions) != 12 {
				t.Fatalf("expected 12 positions, got %d", len(positions))
			}
			assertInside(t, positions, testCanvas, coinSize)
		})
	}
}

func TestScriptSpawnerRing(t *testing.T) {
	s, err := LoadScriptSpawner("ring", 0)
	if err != nil {
		t.Fatalf("LoadScriptSpawner: %v", err)
	}
	positions, err := s.Positions(testCanvas, coinSize, 4)
	if err != nil {
		t.Fatalf("Positions: %v", err)
	}
	cx, cy := (800.0-32)/2, (600.0-32)/2
	if math.Abs(positions[0].X-(cx+200)) > 1e-9 || math.Abs(positions[0].Y-cy) > 1e-9 {
		t.Fatalf("unexpected first ring position %v", positions[0])
	}
}

func TestScriptSpawnerInline(t *testing.T) {
	area := common.Rect{X: 10, Y: 20, Width: 100, Height: 100}
	cases := []struct {
		name    string
		src     string
		want    []common.Vec
		wantErr error
	}{
		{
			name: "fixed",
			src:  `positions := [{x: 1, y: 2}, {x: 3.5, y: count}]`,
			want: []common.Vec{{X: 11, Y: 22}, {X: 13.5, Y: 25}},
		},
		{
			name:    "undefined",
			src:     `other := 1`,
			wantErr: ErrNoPositions,
		},
		{
			name: "bad_item",
			src:  `positions := [1]`,
		},
		{
			name: "syntax",
			src:  `positions := [`,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := &ScriptSpawner{Name: c.name, Source: []byte(c.src)}
			got, err := s.Positions(area, coinSize, 5)
			if c.want == nil {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				if c.wantErr != nil && !errors.Is(err, c.wantErr) {
					t.Fatalf("expected %v, got %v", c.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Positions: %v", err)
			}
			if len(got) != len(c.want) {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
			for i := range got {
				if got[i] != c.want[i] {
					t.Fatalf("expected %v, got %v", c.want, got)
				}
			}
		})
	}
}

func TestBuildFromPrefabs(t *testing.T) {
	world, err := prefabs.LoadWorldSpec()
	if err != nil {
		t.Fatalf("LoadWorldSpec: %v", err)
	}
	player, err := prefabs.LoadPlayerSpec()
	if err != nil {
		t.Fatalf("LoadPlayerSpec: %v", err)
	}
	coin, err := prefabs.LoadCoinSpec()
	if err != nil {
		t.Fatalf("LoadCoinSpec: %v", err)
	}

	var requested []int
	loader := func(spec prefabs.SpriteSpec, frames int, tint color.Color) (component.Image, error) {
		requested = append(requested, frames)
		return nil, nil
	}

	w, err := Build(BuildConfig{World: *world, Player: *player, Coin: *coin, Spawner: RandomSpawner{Seed: 1}, Sheets: loader})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if w.Remaining() != 10 || w.Total() != 10 {
		t.Fatalf("expected 10 coins, got %d", w.Remaining())
	}
	p := w.Player()
	if p.Position != (common.Vec{X: 400, Y: 300}) || p.Width != 40 || p.Facing().String() != "down" {
		t.Fatalf("unexpected player %v %vx%v %s", p.Position, p.Width, p.Height, p.Facing())
	}
	if clip := p.Animation().Clip(); clip != (component.Clip{Start: 7, End: 7, FrameDurationMs: 200}) {
		t.Fatalf("unexpected initial clip %+v", clip)
	}
	if len(requested) != 11 || requested[0] != 12 || requested[1] != 8 {
		t.Fatalf("unexpected sheet requests %v", requested)
	}
	for _, c := range w.Coins() {
		if c.Animation().Clip().FrameCount() != 8 || c.Value != 1 {
			t.Fatalf("unexpected coin %+v", c.Animation().Clip())
		}
	}
	assertInside(t, positionsOf(w), testCanvas, coinSize)
}

func positionsOf(w *World) []common.Vec {
	out := make([]common.Vec, 0, w.Remaining())
	for _, c := range w.Coins() {
		out = append(out, c.Position)
	}
	return out
}

func TestBuildRejectsBadConfig(t *testing.T) {
	player, _ := prefabs.LoadPlayerSpec()
	coin, _ := prefabs.LoadCoinSpec()

	_, err := Build(BuildConfig{World: prefabs.WorldSpec{}, Player: *player, Coin: *coin})
	if err == nil {
		t.Fatalf("expected error for empty canvas")
	}

	world := prefabs.WorldSpec{Canvas: prefabs.CanvasSpec{Width: 800, Height: 600}, Coins: 1}
	bad := *coin
	bad.Sprite.Columns = 0
	_, err = Build(BuildConfig{World: world, Player: *player, Coin: bad})
	if !errors.Is(err, component.ErrInvalidSheetColumns) {
		t.Fatalf("expected ErrInvalidSheetColumns, got %v", err)
	}
}

func TestNegativeCoinCountIsRejected(t *testing.T) {
	player, _ := prefabs.LoadPlayerSpec()
	coin, _ := prefabs.LoadCoinSpec()
	world := prefabs.WorldSpec{Name: "bad", Canvas: prefabs.CanvasSpec{Width: 800, Height: 600}, Coins: -1}

	w, err := Build(BuildConfig{World: world, Player: *player, Coin: *coin})
	if !errors.Is(err, ErrNegativeCount) || w != nil {
		t.Fatalf("expected ErrNegativeCount from Build, got %v", err)
	}

	if _, err := (RandomSpawner{Seed: 1}).Positions(testCanvas, coinSize, -1); !errors.Is(err, ErrNegativeCount) {
		t.Fatalf("expected ErrNegativeCount from RandomSpawner, got %v", err)
	}

	script, err := LoadScriptSpawner("scatter", 1)
	if err != nil {
		t.Fatalf("LoadScriptSpawner: %v", err)
	}
	if _, err := script.Positions(testCanvas, coinSize, -1); !errors.Is(err, ErrNegativeCount) {
		t.Fatalf("expected ErrNegativeCount from ScriptSpawner, got %v", err)
	}
}

func TestApplyPlayerSpec(t *testing.T) {
	w := NewWorld(testCanvas, newPlayer(t, 100, 100), nil)
	spec, _ := prefabs.LoadPlayerSpec()
	spec.Speed = 1

	if err := w.ApplyPlayerSpec(*spec); err != nil {
		t.Fatalf("ApplyPlayerSpec: %v", err)
	}
	w.KeyDown("s")
	w.Update(10)
	if w.Player().Position.Y != 110 {
		t.Fatalf("expected new speed to apply, got y=%v", w.Player().Position.Y)
	}
}
