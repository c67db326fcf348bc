package component

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/milk9111/coinwalk/common"
)

func mustClip(t *testing.T, start, end int, loop bool, dur float64) Clip {
	t.Helper()
	c, err := NewClip(start, end, loop, dur)
	if err != nil {
		t.Fatalf("NewClip(%d, %d): %v", start, end, err)
	}
	return c
}

func TestNewClipValidation(t *testing.T) {
	cases := []struct {
		name  string
		start int
		end   int
		dur   float64
		ok    bool
	}{
		{"single_frame", 7, 7, 200, true},
		{"range", 0, 7, 150, true},
		{"reversed", 5, 3, 100, false},
		{"negative_start", -1, 2, 100, false},
		{"zero_duration", 0, 2, 0, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewClip(c.start, c.end, true, c.dur)
			if c.ok && err != nil {
				t.Fatalf("expected valid clip, got %v", err)
			}
			if !c.ok && !errors.Is(err, ErrInvalidClip) {
				t.Fatalf("expected ErrInvalidClip, got %v", err)
			}
		})
	}
}

func TestAnimationLoopingFrameMath(t *testing.T) {
	const dur = 100.0
	clip := mustClip(t, 3, 5, true, dur)

	for k := 0; k <= 10; k++ {
		var a Animation
		a.SetAnimation(clip)
		for i := 0; i < k; i++ {
			a.Update(dur / 4)
			a.Update(dur / 4)
			a.Update(dur / 2)
		}
		want := clip.Start + k%clip.FrameCount()
		if a.Frame() != want {
			t.Fatalf("k=%d: expected frame %d, got %d", k, want, a.Frame())
		}
	}
}

func TestAnimationLargeDeltaAdvancesManyFrames(t *testing.T) {
	var a Animation
	a.SetAnimation(mustClip(t, 0, 7, true, 150))

	a.Update(150*11 + 20)
	if a.Frame() != 3 {
		t.Fatalf("expected frame 3 after 11 frame periods, got %d", a.Frame())
	}
	if a.Elapsed() != 20 {
		t.Fatalf("expected 20ms carried over, got %v", a.Elapsed())
	}
}

func TestAnimationNonLoopingHoldsLastFrame(t *testing.T) {
	var a Animation
	a.SetAnimation(mustClip(t, 2, 4, false, 50))

	a.Update(1000)
	if a.Frame() != 4 || !a.Done() {
		t.Fatalf("expected to hold frame 4, got %d done=%v", a.Frame(), a.Done())
	}

	a.Update(50)
	a.Update(5000)
	if a.Frame() != 4 {
		t.Fatalf("frame moved after clip finished: %d", a.Frame())
	}
}

func TestAnimationFrameStaysInRange(t *testing.T) {
	clips := []Clip{
		mustClip(t, 7, 7, true, 200),
		mustClip(t, 7, 7, false, 200),
		mustClip(t, 9, 11, true, 200),
		mustClip(t, 0, 7, false, 150),
	}
	deltas := []float64{0, 16, 16.7, 199, 200, 201, 999, 3, 4000}

	for _, clip := range clips {
		var a Animation
		a.SetAnimation(clip)
		for _, dt := range deltas {
			a.Update(dt)
			if a.Frame() < clip.Start || a.Frame() > clip.End {
				t.Fatalf("clip %+v: frame %d out of range after dt=%v", clip, a.Frame(), dt)
			}
		}
	}
}

func TestSetAnimationResets(t *testing.T) {
	clip := mustClip(t, 6, 8, true, 200)

	var a Animation
	a.SetAnimation(clip)
	a.Update(250)
	if a.Frame() != 7 || a.Elapsed() != 50 {
		t.Fatalf("unexpected state before reset: frame=%d elapsed=%v", a.Frame(), a.Elapsed())
	}

	a.SetAnimation(clip)
	if a.Frame() != 6 || a.Elapsed() != 0 {
		t.Fatalf("same clip must restart: frame=%d elapsed=%v", a.Frame(), a.Elapsed())
	}

	var done Animation
	done.SetAnimation(mustClip(t, 0, 1, false, 10))
	done.Update(100)
	done.SetAnimation(clip)
	if done.Done() || done.Frame() != 6 {
		t.Fatalf("SetAnimation must clear finished state")
	}
}

func TestZeroAnimationIsInert(t *testing.T) {
	var a Animation
	a.Update(1000)
	if a.Frame() != 0 {
		t.Fatalf("zero animation advanced to %d", a.Frame())
	}
}

type drawCall struct {
	src, dst common.Rect
}

type recordingSurface struct {
	draws []drawCall
}

func (r *recordingSurface) DrawImageRegion(_ Image, src, dst common.Rect) {
	r.draws = append(r.draws, drawCall{src: src, dst: dst})
}
func (r *recordingSurface) FillRect(common.Rect, color.Color) {}
func (r *recordingSurface) ClearRect(common.Rect)             {}

func TestAnimationDrawSheetCell(t *testing.T) {
	sheet := image.NewRGBA(image.Rect(0, 0, 144, 256))
	cell := common.Rect{X: 48, Y: 128, Width: 48, Height: 64}
	dst := common.Rect{X: 10, Y: 20, Width: 40, Height: 40}

	cases := []struct {
		frame int
		want  common.Rect
	}{
		{0, common.Rect{X: 0, Y: 0, Width: 48, Height: 64}},
		{5, common.Rect{X: 96, Y: 64, Width: 48, Height: 64}},
		{7, common.Rect{X: 48, Y: 128, Width: 48, Height: 64}},
		{11, common.Rect{X: 96, Y: 192, Width: 48, Height: 64}},
	}

	for _, c := range cases {
		var a Animation
		a.SetAnimation(mustClip(t, c.frame, c.frame, true, 100))

		s := &recordingSurface{}
		a.Draw(s, sheet, cell, 3, dst)
		if len(s.draws) != 1 {
			t.Fatalf("frame %d: expected one draw, got %d", c.frame, len(s.draws))
		}
		if s.draws[0].src != c.want || s.draws[0].dst != dst {
			t.Fatalf("frame %d: got src=%v dst=%v, want src=%v", c.frame, s.draws[0].src, s.draws[0].dst, c.want)
		}
	}
}
