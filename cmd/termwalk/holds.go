package main

import (
	"time"

	"github.com/milk9111/coinwalk/obj"
)

// keyHolds turns terminal key presses into held directions that expire
// unless repeated. Keys mapping to the same direction share one hold.
type keyHolds struct {
	hold  time.Duration
	until map[obj.Direction]time.Time
}

func newKeyHolds(hold time.Duration) *keyHolds {
	return &keyHolds{hold: hold, until: make(map[obj.Direction]time.Time)}
}

// press extends the hold for key's direction. fresh is true when the
// direction was not already held.
func (h *keyHolds) press(key string, now time.Time) (d obj.Direction, fresh, ok bool) {
	d, ok = obj.DirectionForKey(key)
	if !ok {
		return d, false, false
	}
	_, held := h.until[d]
	h.until[d] = now.Add(h.hold)
	return d, !held, true
}

// expire drops and returns the directions whose hold ran out before now.
func (h *keyHolds) expire(now time.Time) []obj.Direction {
	var out []obj.Direction
	for d, until := range h.until {
		if now.After(until) {
			out = append(out, d)
			delete(h.until, d)
		}
	}
	return out
}

func (h *keyHolds) reset() {
	clear(h.until)
}
