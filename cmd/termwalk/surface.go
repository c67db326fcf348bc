package main

import (
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/coinwalk/common"
	"github.com/milk9111/coinwalk/component"
)

const block = '█'

// cellSurface rasterizes canvas pixels onto terminal cells. Each cell covers
// canvas.Width/cols by canvas.Height/rows pixels; the bottom row is kept for
// the HUD.
type cellSurface struct {
	screen tcell.Screen
	canvas common.Rect
	cols   int
	rows   int
}

func newCellSurface(screen tcell.Screen, canvas common.Rect) *cellSurface {
	s := &cellSurface{screen: screen, canvas: canvas}
	s.resize()
	return s
}

func (s *cellSurface) resize() {
	w, h := s.screen.Size()
	s.cols = max(w, 1)
	s.rows = max(h-1, 1)
}

func (s *cellSurface) cellW() float64 { return s.canvas.Width / float64(s.cols) }
func (s *cellSurface) cellH() float64 { return s.canvas.Height / float64(s.rows) }

// cells returns the cell span whose centres fall inside r.
func (s *cellSurface) cells(r common.Rect) (x0, y0, x1, y1 int) {
	cw, ch := s.cellW(), s.cellH()
	x0 = max(int((r.X-s.canvas.X)/cw+0.5), 0)
	y0 = max(int((r.Y-s.canvas.Y)/ch+0.5), 0)
	x1 = min(int((r.Right()-s.canvas.X)/cw+0.5), s.cols)
	y1 = min(int((r.Bottom()-s.canvas.Y)/ch+0.5), s.rows)
	// never let a small sprite vanish between cell centres
	if x1 <= x0 && x0 < s.cols {
		x1 = x0 + 1
	}
	if y1 <= y0 && y0 < s.rows {
		y1 = y0 + 1
	}
	return x0, y0, x1, y1
}

func (s *cellSurface) DrawImageRegion(img component.Image, src, dst common.Rect) {
	pix, ok := img.(image.Image)
	if !ok || dst.Width <= 0 || dst.Height <= 0 {
		return
	}
	cw, ch := s.cellW(), s.cellH()
	x0, y0, x1, y1 := s.cells(dst)
	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			// sample the source pixel under the cell centre
			px := s.canvas.X + (float64(cx)+0.5)*cw
			py := s.canvas.Y + (float64(cy)+0.5)*ch
			u := (px - dst.X) / dst.Width
			v := (py - dst.Y) / dst.Height
			sx := int(src.X + clamp01(u)*(src.Width-1))
			sy := int(src.Y + clamp01(v)*(src.Height-1))
			c := pix.At(sx, sy)
			if _, _, _, a := c.RGBA(); a < 0x8000 {
				continue
			}
			s.screen.SetContent(cx, cy, block, nil, tcell.StyleDefault.Foreground(toTcell(c)))
		}
	}
}

func (s *cellSurface) FillRect(dst common.Rect, c color.Color) {
	style := tcell.StyleDefault.Foreground(toTcell(c))
	x0, y0, x1, y1 := s.cells(dst)
	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			s.screen.SetContent(cx, cy, block, nil, style)
		}
	}
}

func (s *cellSurface) ClearRect(r common.Rect) {
	if r == s.canvas {
		s.screen.Clear()
		return
	}
	x0, y0, x1, y1 := s.cells(r)
	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			s.screen.SetContent(cx, cy, ' ', nil, tcell.StyleDefault)
		}
	}
}

// text writes a line on the HUD row.
func (s *cellSurface) text(msg string, style tcell.Style) {
	x := 0
	for _, r := range msg {
		if x >= s.cols {
			return
		}
		s.screen.SetContent(x, s.rows, r, nil, style)
		x++
	}
}

func toTcell(c color.Color) tcell.Color {
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
