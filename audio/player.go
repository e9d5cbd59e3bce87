package audio

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"torus-snake/game"
	"torus-snake/game/manager"
)

// Player turns game events into sound effects.
type Player struct {
	mu     sync.Mutex
	volume float64
	rate   beep.SampleRate
	play   func(beep.Streamer)
	played int
	mixer  *beep.Mixer
}

// NewPlayer opens the default audio device.
func NewPlayer(volume float64) (*Player, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio init: %w", err)
	}
	mixer := &beep.Mixer{}
	speaker.Play(mixer)

	p := newPlayer(volume, SampleRate, func(s beep.Streamer) {
		speaker.Lock()
		mixer.Add(s)
		speaker.Unlock()
	})
	p.mixer = mixer
	return p, nil
}

// Open returns a player, or nil with a logged warning when no audio device is usable.
func Open(volume float64, log *slog.Logger) *Player {
	p, err := NewPlayer(volume)
	if err != nil {
		log.Warn("audio disabled", "err", err)
		return nil
	}
	return p
}

func newPlayer(volume float64, rate beep.SampleRate, play func(beep.Streamer)) *Player {
	return &Player{volume: volume, rate: rate, play: play}
}

// Sound returns the effect for an event, or nil if the event is silent.
func (p *Player) Sound(ev manager.Event) beep.Streamer {
	switch ev {
	case manager.EventAte:
		return BiteSound(p.volume, p.rate)
	case manager.EventDied:
		return DeathSound(p.volume, p.rate)
	}
	return nil
}

func (p *Player) Observe(info game.FrameInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, ev := range info.Events {
		if s := p.Sound(ev); s != nil {
			p.play(s)
			p.played++
		}
	}
}

// Played counts the effects started so far
func (p *Player) Played() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played
}

// Close silences anything still playing.
func (p *Player) Close() {
	if p.mixer == nil {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
}
