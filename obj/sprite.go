package obj

import (
	"fmt"
	"image/color"

	"github.com/milk9111/coinwalk/common"
	"github.com/milk9111/coinwalk/component"
)

// Kind discriminates the entity variants sharing Sprite.
type Kind int

const (
	KindPlayer Kind = iota
	KindCoin
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindCoin:
		return "coin"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Entity is anything the world updates and draws.
type Entity interface {
	Update(dtMs float64)
	Draw(s component.Surface)
	Bounds() common.Rect
}

// Sprite is an animated, positioned box drawn from a sprite sheet grid.
type Sprite struct {
	Position common.Vec
	Width    float64
	Height   float64
	Color    color.Color
	Kind     Kind

	cols  int
	sheet component.Image
	cell  common.Rect
	anim  component.Animation
}

// NewSprite creates a sprite whose sheet has cols frames per row.
func NewSprite(kind Kind, pos common.Vec, width, height float64, c color.Color, cols int) (*Sprite, error) {
	if cols <= 0 {
		return nil, fmt.Errorf("%w: %s has %d", component.ErrInvalidSheetColumns, kind, cols)
	}
	return &Sprite{
		Position: pos,
		Width:    width,
		Height:   height,
		Color:    c,
		Kind:     kind,
		cols:     cols,
	}, nil
}

// SetSprite binds the sheet and the size of one cell. Animation state is
// left alone.
func (s *Sprite) SetSprite(sheet component.Image, cell common.Rect) error {
	if cell.Width <= 0 || cell.Height <= 0 {
		return fmt.Errorf("obj: %s source rect %vx%v is empty", s.Kind, cell.Width, cell.Height)
	}
	s.sheet = sheet
	s.cell = cell
	return nil
}

// SetAnimation restarts the sprite on clip.
func (s *Sprite) SetAnimation(clip component.Clip) {
	s.anim.SetAnimation(clip)
}

func (s *Sprite) UpdateFrame(dtMs float64) {
	s.anim.Update(dtMs)
}

func (s *Sprite) Animation() *component.Animation { return &s.anim }
func (s *Sprite) Sheet() component.Image          { return s.sheet }

func (s *Sprite) Bounds() common.Rect {
	return common.Rect{X: s.Position.X, Y: s.Position.Y, Width: s.Width, Height: s.Height}
}

// Draw renders the current frame, or a box in the sprite's color when no
// sheet is bound.
func (s *Sprite) Draw(surface component.Surface) {
	if s == nil || surface == nil {
		return
	}
	if s.sheet == nil {
		if s.Color != nil {
			surface.FillRect(s.Bounds(), s.Color)
		}
		return
	}
	s.anim.Draw(surface, s.sheet, s.cell, s.cols, s.Bounds())
}
