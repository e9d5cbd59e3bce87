// Package audio synthesises the game's sound effects with beep.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

const SampleRate = beep.SampleRate(44100)

const (
	biteDuration   = 120 * time.Millisecond
	biteAttack     = 5 * time.Millisecond
	biteRelease    = 90 * time.Millisecond
	deathDuration  = 450 * time.Millisecond
	deathAttack    = 10 * time.Millisecond
	deathRelease   = 300 * time.Millisecond
	deathStartFreq = 220.0
	deathEndFreq   = 55.0
)

type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
)

// tone is an oscillator whose frequency glides linearly from freq to endFreq.
type tone struct {
	freq     float64
	endFreq  float64
	phase    float64
	length   int
	position int
	wave     Wave
	rate     beep.SampleRate
}

// NewTone returns a fixed-pitch oscillator.
func NewTone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return NewGlide(freq, freq, d, wave, rate)
}

// NewGlide returns an oscillator sweeping from one pitch to another over d.
func NewGlide(from, to float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &tone{
		freq:    from,
		endFreq: to,
		length:  rate.N(d),
		wave:    wave,
		rate:    rate,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.length {
			return i, i > 0
		}

		var v float64
		switch t.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (t.phase - 0.5)
		}
		samples[i][0], samples[i][1] = v, v

		progress := float64(t.position) / float64(t.length)
		freq := t.freq + (t.endFreq-t.freq)*progress
		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// envelope fades a stream in over attack and out over the final release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func NewEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) gain() float64 {
	g := 1.0
	if e.attack > 0 && e.position < e.attack {
		g = float64(e.position) / float64(e.attack)
	}
	if remaining := e.total - e.position; e.release > 0 && remaining < e.release {
		g = math.Min(g, float64(remaining)/float64(e.release))
	}
	return math.Max(g, 0)
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		g := e.gain()
		samples[i][0] *= g
		samples[i][1] *= g
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume scales a stream linearly; zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// BiteSound is a short two-partial chime played when food is eaten.
func BiteSound(vol float64, rate beep.SampleRate) beep.Streamer {
	fund := NewEnvelope(NewTone(660, biteDuration, WaveSine, rate), biteDuration, biteAttack, biteRelease, rate)
	over := NewEnvelope(NewTone(1320, biteDuration, WaveSine, rate), biteDuration, biteAttack, biteRelease/2, rate)
	return withVolume(beep.Mix(withVolume(fund, 0.7), withVolume(over, 0.3)), vol)
}

// DeathSound is a falling saw buzz played on self-collision.
func DeathSound(vol float64, rate beep.SampleRate) beep.Streamer {
	buzz := NewGlide(deathStartFreq, deathEndFreq, deathDuration, WaveSaw, rate)
	return withVolume(NewEnvelope(buzz, deathDuration, deathAttack, deathRelease, rate), vol)
}
