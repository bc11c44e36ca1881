// Package audio plays the arena's sound effects through the system speaker.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/arena/config"
	"github.com/pthm-cable/arena/game"
)

// minGap is the shortest interval between two plays of the same sound.
// Pellets are eaten most ticks; without it the pops smear into a drone.
const minGap = 60 * time.Millisecond

// Player mixes sound effects into the speaker. The zero value is not
// usable; create one with NewPlayer. A Player that was never initialized,
// or is muted, drops every sound.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rate        beep.SampleRate
	volume      float64
	enabled     bool
	muted       bool
	initialized bool

	now      func() time.Time
	lastPlay [soundCount]time.Time
	played   [soundCount]int
}

// NewPlayer creates a player from the audio settings.
func NewPlayer(cfg config.AudioConfig) *Player {
	rate := cfg.SampleRate
	if rate <= 0 {
		rate = 44100
	}
	return &Player{
		mixer:   &beep.Mixer{},
		rate:    beep.SampleRate(rate),
		volume:  cfg.MasterVolume,
		enabled: cfg.Enabled,
		now:     time.Now,
	}
}

// Init opens the speaker. Does nothing when audio is disabled.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || !p.enabled {
		return nil
	}

	if err := speaker.Init(p.rate, p.rate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("initializing speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops all sounds and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

// SetMuted silences or restores playback.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
}

// Muted reports whether playback is silenced.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Played returns how many times s has been started.
func (p *Player) Played(s Sound) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if s < 0 || s >= soundCount {
		return 0
	}
	return p.played[s]
}

// Play starts sound s unless it played within the last minGap.
// Reports whether the sound was started.
func (p *Player) Play(s Sound) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if s < 0 || s >= soundCount || p.muted || !p.enabled {
		return false
	}
	now := p.now()
	if last := p.lastPlay[s]; !last.IsZero() && now.Sub(last) < minGap {
		return false
	}
	p.lastPlay[s] = now
	p.played[s]++

	if !p.initialized {
		return true
	}
	streamer := NewSound(s, p.volume, p.rate)
	speaker.Lock()
	p.mixer.Add(streamer)
	speaker.Unlock()
	return true
}

// HandleEvents plays the sounds for one tick's or action's events.
// Death drowns out everything else.
func (p *Player) HandleEvents(ev game.Events) {
	if ev.Died {
		p.Play(SoundDeath)
		return
	}
	if ev.VirusHits > 0 {
		p.Play(SoundVirus)
	}
	if ev.CellsEaten > 0 {
		p.Play(SoundEatPlayer)
	}
	if ev.Splits > 0 {
		p.Play(SoundSplit)
	}
	if ev.Ejects > 0 {
		p.Play(SoundEject)
	}
	if ev.FoodEaten > 0 || ev.EjectedEaten > 0 {
		p.Play(SoundEat)
	}
}
