package component

import (
	"image"
	"image/color"

	"github.com/milk9111/coinwalk/common"
)

// Image is an opaque sprite sheet handle. Both image.Image and *ebiten.Image
// satisfy it.
type Image interface {
	Bounds() image.Rectangle
}

// Surface is the 2D drawing target the simulation renders into.
type Surface interface {
	// DrawImageRegion draws region src of img scaled into dst.
	DrawImageRegion(img Image, src, dst common.Rect)
	FillRect(dst common.Rect, c color.Color)
	ClearRect(r common.Rect)
}
