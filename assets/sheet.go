package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Root is prepended to relative sheet paths.
var Root = "."

// Sheet describes a sprite sheet grid.
type Sheet struct {
	Path    string
	Columns int
	Frames  int
	CellW   int
	CellH   int
	Tint    color.Color
}

func (s Sheet) rows() int {
	if s.Columns <= 0 {
		return 1
	}
	return (s.Frames + s.Columns - 1) / s.Columns
}

// LoadSheet decodes the sheet from disk. When the file does not exist a
// placeholder sheet of the same grid is generated and generated is true.
func LoadSheet(s Sheet) (img image.Image, generated bool, err error) {
	if s.Columns <= 0 || s.CellW <= 0 || s.CellH <= 0 {
		return nil, false, fmt.Errorf("assets: invalid sheet grid %dx(%dx%d) for %q", s.Columns, s.CellW, s.CellH, s.Path)
	}
	if s.Path != "" {
		b, err := os.ReadFile(resolve(s.Path))
		switch {
		case err == nil:
			img, _, err := image.Decode(bytes.NewReader(b))
			if err != nil {
				return nil, false, fmt.Errorf("assets: decode %s: %w", s.Path, err)
			}
			return img, false, nil
		case !errors.Is(err, fs.ErrNotExist):
			return nil, false, fmt.Errorf("assets: read %s: %w", s.Path, err)
		}
	}
	return Placeholder(s), true, nil
}

// Placeholder draws one tinted cell per frame. Each cell carries a bar whose
// width grows with the frame index so animation is visible.
func Placeholder(s Sheet) *image.RGBA {
	rows := s.rows()
	img := image.NewRGBA(image.Rect(0, 0, s.Columns*s.CellW, rows*s.CellH))

	tint := s.Tint
	if tint == nil {
		tint = color.RGBA{R: 0xff, G: 0x00, B: 0xff, A: 0xff}
	}
	shade := shadeOf(tint)

	for f := 0; f < s.Frames; f++ {
		x0 := (f % s.Columns) * s.CellW
		y0 := (f / s.Columns) * s.CellH
		cell := image.Rect(x0+1, y0+1, x0+s.CellW-1, y0+s.CellH-1)
		draw.Draw(img, cell, image.NewUniform(tint), image.Point{}, draw.Src)

		barW := (s.CellW - 4) * (f + 1) / s.Frames
		bar := image.Rect(x0+2, y0+s.CellH-6, x0+2+barW, y0+s.CellH-3)
		draw.Draw(img, bar, image.NewUniform(shade), image.Point{}, draw.Src)
	}
	return img
}

func shadeOf(c color.Color) color.Color {
	r, g, b, a := c.RGBA()
	return color.RGBA64{R: uint16(r / 2), G: uint16(g / 2), B: uint16(b / 2), A: uint16(a)}
}

func resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	s := filepath.FromSlash(strings.TrimPrefix(filepath.ToSlash(path), "../"))
	return filepath.Join(Root, s)
}
