package obj

import "github.com/milk9111/coinwalk/common"

// Direction is a held movement key.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Unit is the axis contribution of d: up/down move y by -1/+1 and left/right
// move x by -1/+1.
func (d Direction) Unit() common.Vec {
	switch d {
	case DirUp:
		return common.Vec{Y: -1}
	case DirDown:
		return common.Vec{Y: 1}
	case DirLeft:
		return common.Vec{X: -1}
	case DirRight:
		return common.Vec{X: 1}
	default:
		return common.Vec{}
	}
}

var keyDirections = map[string]Direction{
	"w": DirUp,
	"s": DirDown,
	"a": DirLeft,
	"d": DirRight,
	"W": DirUp,
	"S": DirDown,
	"A": DirLeft,
	"D": DirRight,
}

// DirectionForKey maps a symbolic key name to a direction.
func DirectionForKey(key string) (Direction, bool) {
	d, ok := keyDirections[key]
	return d, ok
}

// Input holds the set of held directions in press order.
type Input struct {
	held []Direction
}

func NewInput() *Input {
	return &Input{}
}

// Press adds d unless it is already held.
func (i *Input) Press(d Direction) {
	if i.IsHeld(d) {
		return
	}
	i.held = append(i.held, d)
}

// Release removes d if it is held.
func (i *Input) Release(d Direction) {
	for idx, h := range i.held {
		if h == d {
			i.held = append(i.held[:idx], i.held[idx+1:]...)
			return
		}
	}
}

// KeyDown presses the direction mapped to key. Unknown keys are ignored.
func (i *Input) KeyDown(key string) {
	if d, ok := DirectionForKey(key); ok {
		i.Press(d)
	}
}

// KeyUp releases the direction mapped to key. Unknown keys are ignored.
func (i *Input) KeyUp(key string) {
	if d, ok := DirectionForKey(key); ok {
		i.Release(d)
	}
}

func (i *Input) IsHeld(d Direction) bool {
	for _, h := range i.held {
		if h == d {
			return true
		}
	}
	return false
}

// Held returns a copy of the held directions.
func (i *Input) Held() []Direction {
	return append([]Direction(nil), i.held...)
}

func (i *Input) Clear() {
	i.held = i.held[:0]
}
