package component

import (
	"errors"
	"fmt"

	"github.com/milk9111/coinwalk/common"
)

var (
	ErrInvalidClip         = errors.New("component: invalid clip")
	ErrInvalidSheetColumns = errors.New("component: sheet columns must be positive")
)

// Clip is a contiguous range of frames on a sprite sheet. Frames are laid
// out left-to-right, top-to-bottom.
type Clip struct {
	Start           int
	End             int
	Loop            bool
	FrameDurationMs float64
}

// NewClip builds a validated clip.
func NewClip(start, end int, loop bool, frameDurationMs float64) (Clip, error) {
	c := Clip{Start: start, End: end, Loop: loop, FrameDurationMs: frameDurationMs}
	if err := c.Validate(); err != nil {
		return Clip{}, err
	}
	return c, nil
}

func (c Clip) Validate() error {
	if c.Start < 0 || c.End < c.Start {
		return fmt.Errorf("%w: frames [%d, %d]", ErrInvalidClip, c.Start, c.End)
	}
	if c.FrameDurationMs <= 0 {
		return fmt.Errorf("%w: frame duration %v", ErrInvalidClip, c.FrameDurationMs)
	}
	return nil
}

func (c Clip) FrameCount() int { return c.End - c.Start + 1 }

// Animation advances through a Clip using elapsed milliseconds. The zero
// value holds frame 0 and never advances.
type Animation struct {
	clip    Clip
	current int
	elapsed float64
	done    bool
}

// SetAnimation replaces the clip and restarts it, even when clip equals the
// clip already playing.
func (a *Animation) SetAnimation(clip Clip) {
	a.clip = clip
	a.current = clip.Start
	a.elapsed = 0
	a.done = false
}

// Update accumulates dt and advances as many frames as fit into it. A
// non-looping clip stops on its last frame and ignores further updates.
func (a *Animation) Update(dtMs float64) {
	if a == nil || a.done || a.clip.FrameDurationMs <= 0 || dtMs <= 0 {
		return
	}
	a.elapsed += dtMs
	for a.elapsed >= a.clip.FrameDurationMs {
		a.elapsed -= a.clip.FrameDurationMs
		a.current++
		if a.current > a.clip.End {
			if a.clip.Loop {
				a.current = a.clip.Start
				continue
			}
			a.current = a.clip.End
			a.done = true
			a.elapsed = 0
			return
		}
	}
}

func (a *Animation) Frame() int       { return a.current }
func (a *Animation) Clip() Clip       { return a.clip }
func (a *Animation) Elapsed() float64 { return a.elapsed }

// Done reports whether a non-looping clip has reached its last frame.
func (a *Animation) Done() bool { return a.done }

// SourceRect returns the sheet region of the current frame. cell supplies the
// frame size; its position is ignored.
func (a *Animation) SourceRect(cell common.Rect, cols int) common.Rect {
	if cols <= 0 {
		cols = 1
	}
	col := a.current % cols
	row := a.current / cols
	return common.Rect{
		X:      float64(col) * cell.Width,
		Y:      float64(row) * cell.Height,
		Width:  cell.Width,
		Height: cell.Height,
	}
}

// Draw blits the current frame of sheet into dst.
func (a *Animation) Draw(s Surface, sheet Image, cell common.Rect, cols int, dst common.Rect) {
	if a == nil || s == nil || sheet == nil {
		return
	}
	s.DrawImageRegion(sheet, a.SourceRect(cell, cols), dst)
}
