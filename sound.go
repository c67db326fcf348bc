package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/coinwalk/assets"
)

const sampleRate = 44100

type pickupSound struct {
	player *audio.Player
}

func newPickupSound() *pickupSound {
	ctx := audio.NewContext(sampleRate)
	return &pickupSound{
		player: ctx.NewPlayerFromBytes(assets.PickupTone(sampleRate, 988, 120)),
	}
}

func (s *pickupSound) Play() {
	if s == nil || s.player == nil {
		return
	}
	if err := s.player.Rewind(); err != nil {
		log.Printf("pickup sound: %v", err)
		return
	}
	s.player.Play()
}
