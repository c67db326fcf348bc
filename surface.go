package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/coinwalk/common"
	"github.com/milk9111/coinwalk/component"
)

// ebitenSurface draws the world onto the current ebiten screen. Decoded
// sheets are uploaded to the GPU once and cached.
type ebitenSurface struct {
	screen *ebiten.Image
	pixel  *ebiten.Image
	cache  map[component.Image]*ebiten.Image
}

func newEbitenSurface() *ebitenSurface {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &ebitenSurface{
		pixel: pixel,
		cache: make(map[component.Image]*ebiten.Image),
	}
}

func (s *ebitenSurface) image(img component.Image) *ebiten.Image {
	if e, ok := img.(*ebiten.Image); ok {
		return e
	}
	if e, ok := s.cache[img]; ok {
		return e
	}
	src, ok := img.(image.Image)
	if !ok {
		return nil
	}
	e := ebiten.NewImageFromImage(src)
	s.cache[img] = e
	return e
}

func (s *ebitenSurface) DrawImageRegion(img component.Image, src, dst common.Rect) {
	if s.screen == nil || src.Width <= 0 || src.Height <= 0 {
		return
	}
	sheet := s.image(img)
	if sheet == nil {
		return
	}
	r := image.Rect(int(src.X), int(src.Y), int(src.Right()), int(src.Bottom()))
	sub, ok := sheet.SubImage(r).(*ebiten.Image)
	if !ok {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(dst.Width/src.Width, dst.Height/src.Height)
	op.GeoM.Translate(dst.X, dst.Y)
	op.Filter = ebiten.FilterNearest
	s.screen.DrawImage(sub, op)
}

func (s *ebitenSurface) FillRect(dst common.Rect, c color.Color) {
	if s.screen == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(dst.Width, dst.Height)
	op.GeoM.Translate(dst.X, dst.Y)
	op.ColorScale.ScaleWithColor(c)
	s.screen.DrawImage(s.pixel, op)
}

func (s *ebitenSurface) ClearRect(r common.Rect) {
	if s.screen == nil {
		return
	}
	rect := image.Rect(int(r.X), int(r.Y), int(r.Right()), int(r.Bottom()))
	if sub, ok := s.screen.SubImage(rect).(*ebiten.Image); ok {
		sub.Clear()
	}
}
