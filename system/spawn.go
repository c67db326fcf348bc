package system

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/coinwalk/common"
	"github.com/milk9111/coinwalk/prefabs"
)

var (
	ErrNoPositions   = errors.New("system: spawn script did not define positions")
	ErrNegativeCount = errors.New("system: spawn count is negative")
)

const scriptTimeout = time.Second

// Spawner picks top-left positions for count items of the given size inside
// area.
type Spawner interface {
	Positions(area common.Rect, size common.Vec, count int) ([]common.Vec, error)
}

// RandomSpawner places items uniformly so they start fully inside area.
type RandomSpawner struct {
	Seed uint64
}

func (s RandomSpawner) Positions(area common.Rect, size common.Vec, count int) ([]common.Vec, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCount, count)
	}
	rng := rand.New(rand.NewPCG(s.Seed, s.Seed^0x9e3779b97f4a7c15))
	spanX := max(area.Width-size.X, 0)
	spanY := max(area.Height-size.Y, 0)

	out := make([]common.Vec, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, common.Vec{
			X: area.X + rng.Float64()*spanX,
			Y: area.Y + rng.Float64()*spanY,
		})
	}
	return out, nil
}

// ScriptSpawner delegates placement to a tengo script. The script sees
// width, height, size_w, size_h, count and seed, and must define positions
// as an array of {x, y} maps relative to the area origin.
type ScriptSpawner struct {
	Name   string
	Source []byte
	Seed   int64
}

// LoadScriptSpawner reads a script from the prefab scripts.
func LoadScriptSpawner(name string, seed int64) (*ScriptSpawner, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("system: load spawn script %s: %w", name, err)
	}
	return &ScriptSpawner{Name: name, Source: src, Seed: seed}, nil
}

func (s *ScriptSpawner) Positions(area common.Rect, size common.Vec, count int) ([]common.Vec, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCount, count)
	}
	script := tengo.NewScript(s.Source)
	script.SetImports(stdlib.GetModuleMap("math", "rand"))
	vars := map[string]any{
		"width":  area.Width,
		"height": area.Height,
		"size_w": size.X,
		"size_h": size.Y,
		"count":  count,
		"seed":   s.Seed,
	}
	for name, v := range vars {
		if err := script.Add(name, v); err != nil {
			return nil, fmt.Errorf("system: script %s: bind %s: %w", s.Name, name, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), scriptTimeout)
	defer cancel()
	compiled, err := script.RunContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("system: script %s: %w", s.Name, err)
	}

	if !compiled.IsDefined("positions") {
		return nil, fmt.Errorf("%w (%s)", ErrNoPositions, s.Name)
	}
	raw := compiled.Get("positions").Array()

	out := make([]common.Vec, 0, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("system: script %s: positions[%d] is %T, want map", s.Name, i, item)
		}
		x, okX := toFloat(m["x"])
		y, okY := toFloat(m["y"])
		if !okX || !okY {
			return nil, fmt.Errorf("system: script %s: positions[%d] needs numeric x and y", s.Name, i)
		}
		out = append(out, common.Vec{X: area.X + x, Y: area.Y + y})
	}
	return out, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
