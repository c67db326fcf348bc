package assets

import (
	"encoding/binary"
	"math"
)

// PickupTone renders a short decaying sine chirp as 16-bit little-endian
// stereo PCM, the format ebiten's audio player consumes.
func PickupTone(sampleRate int, freq float64, durationMs int) []byte {
	n := sampleRate * durationMs / 1000
	if n <= 0 {
		return nil
	}
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		env := 1 - float64(i)/float64(n)
		// second half jumps a fifth up, the classic coin blip
		f := freq
		if i > n/3 {
			f = freq * 1.5
		}
		v := int16(math.Sin(2*math.Pi*f*t) * env * 0.3 * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))
	}
	return buf
}
