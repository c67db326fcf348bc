package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/coinwalk/common"
	"github.com/milk9111/coinwalk/component"
	"github.com/milk9111/coinwalk/obj"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type WorldSpec struct {
	Name        string     `yaml:"name"`
	Canvas      CanvasSpec `yaml:"canvas"`
	Coins       int        `yaml:"coins"`
	Seed        int64      `yaml:"seed"`
	SpawnScript string     `yaml:"spawn_script"`
}

type CanvasSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func (c CanvasSpec) Rect() common.Rect {
	return common.Rect{Width: c.Width, Height: c.Height}
}

func LoadWorldSpec() (*WorldSpec, error) {
	spec, err := LoadSpec[WorldSpec]("world.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type PlayerSpec struct {
	Name        string              `yaml:"name"`
	Width       float64             `yaml:"width"`
	Height      float64             `yaml:"height"`
	Color       YAMLColor           `yaml:"color"`
	Speed       float64             `yaml:"speed"`
	Sprite      SpriteSpec          `yaml:"sprite"`
	InitialClip ClipSpec            `yaml:"initial_clip"`
	Clips       map[string]ClipSpec `yaml:"clips"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// ClipTable converts the named clips into a table keyed by facing.
func (p *PlayerSpec) ClipTable() (obj.ClipTable, error) {
	table := make(obj.ClipTable, len(p.Clips))
	for name, cs := range p.Clips {
		f, ok := obj.ParseFacing(name)
		if !ok {
			return nil, fmt.Errorf("prefabs: player %s: unknown facing %q", p.Name, name)
		}
		clip, err := cs.Clip()
		if err != nil {
			return nil, fmt.Errorf("prefabs: player %s clip %s: %w", p.Name, name, err)
		}
		table[f] = clip
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

type CoinSpec struct {
	Name   string     `yaml:"name"`
	Width  float64    `yaml:"width"`
	Height float64    `yaml:"height"`
	Color  YAMLColor  `yaml:"color"`
	Value  int        `yaml:"value"`
	Sprite SpriteSpec `yaml:"sprite"`
	Clip   ClipSpec   `yaml:"clip"`
}

func LoadCoinSpec() (*CoinSpec, error) {
	spec, err := LoadSpec[CoinSpec]("coin.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type SpriteSpec struct {
	Image   string   `yaml:"image"`
	Columns int      `yaml:"columns"`
	Source  RectSpec `yaml:"source"`
}

type RectSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func (r RectSpec) Rect() common.Rect {
	return common.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

type ClipSpec struct {
	Start           int     `yaml:"start"`
	End             int     `yaml:"end"`
	Loop            bool    `yaml:"loop"`
	FrameDurationMs float64 `yaml:"frame_duration_ms"`
}

func (c ClipSpec) Clip() (component.Clip, error) {
	return component.NewClip(c.Start, c.End, c.Loop, c.FrameDurationMs)
}

// YAMLColor accepts a CSS color name ("red") or #RRGGBB[AA].
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

func ParseColor(v string) (color.Color, error) {
	v = strings.TrimSpace(v)
	if named, ok := colornames.Map[strings.ToLower(v)]; ok {
		return named, nil
	}

	s := strings.TrimPrefix(v, "#")
	if len(s) != 6 && len(s) != 8 {
		return nil, fmt.Errorf("invalid color format: %s", v)
	}

	parse := func(start int) (uint8, error) {
		n, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(n), err
	}

	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i < len(s)/2; i++ {
		b, err := parse(i * 2)
		if err != nil {
			return nil, fmt.Errorf("invalid color %s: %w", v, err)
		}
		rgba[i] = b
	}

	return color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}, nil
}
