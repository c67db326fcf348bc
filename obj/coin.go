package obj

import "github.com/milk9111/coinwalk/common"

// Coin is a collectible that only animates in place.
type Coin struct {
	*Sprite

	// Value is added to the world's collected total on pickup.
	Value int
}

func NewCoin(sprite *Sprite) *Coin {
	sprite.Kind = KindCoin
	return &Coin{Sprite: sprite, Value: 1}
}

func (c *Coin) Update(dtMs float64) {
	c.UpdateFrame(dtMs)
}

// Overlaps reports whether the coin intersects r.
func (c *Coin) Overlaps(r common.Rect) bool {
	return c.Bounds().Intersects(r)
}
