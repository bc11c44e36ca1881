package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// Sound identifies a sound effect.
type Sound int

const (
	SoundEat       Sound = iota // pellet or ejected mass
	SoundEatPlayer              // another player's cell
	SoundSplit
	SoundEject
	SoundVirus
	SoundDeath
	soundCount
)

func (s Sound) String() string {
	switch s {
	case SoundEat:
		return "eat"
	case SoundEatPlayer:
		return "eat_player"
	case SoundSplit:
		return "split"
	case SoundEject:
		return "eject"
	case SoundVirus:
		return "virus"
	case SoundDeath:
		return "death"
	default:
		return "unknown"
	}
}

// tone is one decaying note, started delay after the sound begins.
type tone struct {
	freq     float64
	duration time.Duration
	wave     Wave
	volume   float64
	delay    time.Duration
}

var sounds = [soundCount][]tone{
	SoundEat: {
		{480, 60 * time.Millisecond, WaveSine, 0.1, 0},
	},
	SoundEatPlayer: {
		{350, 120 * time.Millisecond, WaveSine, 0.2, 0},
		{250, 100 * time.Millisecond, WaveSine, 0.15, 50 * time.Millisecond},
	},
	SoundSplit: {
		{300, 80 * time.Millisecond, WaveTriangle, 0.18, 0},
		{450, 60 * time.Millisecond, WaveTriangle, 0.14, 30 * time.Millisecond},
	},
	SoundEject: {
		{180, 50 * time.Millisecond, WaveTriangle, 0.12, 0},
	},
	SoundVirus: {
		{200, 150 * time.Millisecond, WaveSaw, 0.18, 0},
		{350, 80 * time.Millisecond, WaveSquare, 0.12, 40 * time.Millisecond},
		{150, 100 * time.Millisecond, WaveSaw, 0.1, 80 * time.Millisecond},
	},
	SoundDeath: {
		{180, 300 * time.Millisecond, WaveSaw, 0.25, 0},
		{100, 250 * time.Millisecond, WaveSaw, 0.2, 80 * time.Millisecond},
	},
}

// Length returns how long the sound plays.
func (s Sound) Length() time.Duration {
	if s < 0 || s >= soundCount {
		return 0
	}
	var longest time.Duration
	for _, t := range sounds[s] {
		if end := t.delay + t.duration; end > longest {
			longest = end
		}
	}
	return longest
}

// NewSound builds the streamer for s at the given master volume.
// Returns nil for an unknown sound.
func NewSound(s Sound, master float64, rate beep.SampleRate) beep.Streamer {
	if s < 0 || s >= soundCount {
		return nil
	}

	tones := sounds[s]
	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		note := NewDecay(NewOscillator(t.freq, t.duration, t.wave, rate), t.duration, t.volume, rate)
		if t.delay > 0 {
			note = beep.Seq(beep.Silence(rate.N(t.delay)), note)
		}
		parts = append(parts, note)
	}

	var mixed beep.Streamer
	if len(parts) == 1 {
		mixed = parts[0]
	} else {
		mixed = beep.Mix(parts...)
	}
	return newVolume(mixed, master)
}
