package obj

import (
	"fmt"
	"math"

	"github.com/milk9111/coinwalk/common"
	"github.com/milk9111/coinwalk/component"
)

const (
	// DefaultPlayerSpeed is in pixels per millisecond.
	DefaultPlayerSpeed = 0.5
	// DefaultAnimationDelay is the per-frame duration of the walk clips.
	DefaultAnimationDelay = 200.0
)

// Facing is the movement classification that selects the player's clip.
type Facing int

const (
	FacingUp Facing = iota
	FacingDown
	FacingLeft
	FacingRight
	FacingIdle
)

func (f Facing) String() string {
	switch f {
	case FacingUp:
		return "up"
	case FacingDown:
		return "down"
	case FacingLeft:
		return "left"
	case FacingRight:
		return "right"
	case FacingIdle:
		return "idle"
	default:
		return fmt.Sprintf("facing(%d)", int(f))
	}
}

// ParseFacing is the inverse of Facing.String.
func ParseFacing(s string) (Facing, bool) {
	for f := FacingUp; f <= FacingIdle; f++ {
		if f.String() == s {
			return f, true
		}
	}
	return 0, false
}

// ClipTable maps every facing to the clip it plays.
type ClipTable map[Facing]component.Clip

// DefaultPlayerClips matches the quartermaster NESW sheet (3 columns, 4 rows).
func DefaultPlayerClips() ClipTable {
	clip := func(start, end int) component.Clip {
		return component.Clip{Start: start, End: end, Loop: true, FrameDurationMs: DefaultAnimationDelay}
	}
	return ClipTable{
		FacingUp:    clip(0, 2),
		FacingRight: clip(3, 5),
		FacingDown:  clip(6, 8),
		FacingIdle:  clip(7, 7),
		FacingLeft:  clip(9, 11),
	}
}

// Validate checks that every facing has a valid clip.
func (t ClipTable) Validate() error {
	for f := FacingUp; f <= FacingIdle; f++ {
		c, ok := t[f]
		if !ok {
			return fmt.Errorf("obj: no clip for facing %s", f)
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("obj: facing %s: %w", f, err)
		}
	}
	return nil
}

// Player is the keyboard-driven sprite. It is kept inside Canvas.
type Player struct {
	*Sprite

	Input  *Input
	Canvas common.Rect

	clips    ClipTable
	speed    float64
	velocity common.Vec
	previous Facing
	current  Facing
}

// NewPlayer wraps sprite with movement. canvas is the clamping region.
func NewPlayer(sprite *Sprite, clips ClipTable, speed float64, canvas common.Rect) (*Player, error) {
	if sprite == nil {
		return nil, fmt.Errorf("obj: player sprite is nil")
	}
	if err := clips.Validate(); err != nil {
		return nil, err
	}
	sprite.Kind = KindPlayer
	return &Player{
		Sprite:   sprite,
		Input:    NewInput(),
		Canvas:   canvas,
		clips:    clips,
		speed:    speed,
		previous: FacingDown,
		current:  FacingDown,
	}, nil
}

func (p *Player) Velocity() common.Vec { return p.velocity }
func (p *Player) Facing() Facing       { return p.current }
func (p *Player) Speed() float64       { return p.speed }
func (p *Player) Held() []Direction    { return p.Input.Held() }

func (p *Player) SetSpeed(speed float64) { p.speed = speed }

// SetClips swaps the clip table. The playing clip is kept until the next
// facing change.
func (p *Player) SetClips(clips ClipTable) error {
	if err := clips.Validate(); err != nil {
		return err
	}
	p.clips = clips
	return nil
}

// Update runs one simulation step: velocity, facing, integration, clamping
// and finally the frame timer.
func (p *Player) Update(dtMs float64) {
	p.setVelocity()
	p.setMovementAnimation()

	p.Position = p.Position.Plus(p.velocity.Times(dtMs))

	p.constrainToCanvas()

	p.UpdateFrame(dtMs)
}

func (p *Player) setVelocity() {
	var v common.Vec
	for _, d := range p.Input.held {
		v = v.Plus(d.Unit())
	}
	p.velocity = v.Normalize().Times(p.speed)
}

func (p *Player) setMovementAnimation() {
	vx, vy := p.velocity.X, p.velocity.Y
	if math.Abs(vy) > math.Abs(vx) {
		switch {
		case vy > 0:
			p.current = FacingDown
		case vy < 0:
			p.current = FacingUp
		default:
			p.current = FacingIdle
		}
	} else {
		switch {
		case vx > 0:
			p.current = FacingRight
		case vx < 0:
			p.current = FacingLeft
		default:
			p.current = FacingIdle
		}
	}

	if p.current != p.previous {
		p.SetAnimation(p.clips[p.current])
	}
	p.previous = p.current
}

// constrainToCanvas corrects at most one edge per call, checked in the order
// top, bottom, left, right.
func (p *Player) constrainToCanvas() {
	c := p.Canvas
	switch {
	case p.Position.Y < c.Y:
		p.Position.Y = c.Y
	case p.Position.Y+p.Height > c.Bottom():
		p.Position.Y = c.Bottom() - p.Height
	case p.Position.X < c.X:
		p.Position.X = c.X
	case p.Position.X+p.Width > c.Right():
		p.Position.X = c.Right() - p.Width
	}
}
