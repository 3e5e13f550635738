// Package sfx plays short synthesized sound effects for the showcase scenes.
package sfx

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	// DefaultSampleRate is used when Config.SampleRate is zero.
	DefaultSampleRate = 44100
	// ChimeDuration is the length of one landing chime.
	ChimeDuration = 180 * time.Millisecond

	chimeDecay = 18.0
)

// deckPitches are the chime fundamentals per destination deck.
var deckPitches = []float64{659.25, 880}

// Config controls audio output.
type Config struct {
	Enabled    bool
	Volume     float64 // 0..1
	SampleRate int
}

// DefaultConfig enables audio at half volume.
func DefaultConfig() Config {
	return Config{Enabled: true, Volume: 0.5, SampleRate: DefaultSampleRate}
}

// LoadConfig reads SHOWCASE_AUDIO (bool) and SHOWCASE_VOLUME (0-100) on top
// of DefaultConfig. Malformed values are ignored.
func LoadConfig() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("SHOWCASE_AUDIO"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Enabled = b
		}
	}
	if v := os.Getenv("SHOWCASE_VOLUME"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Volume = math.Max(0, math.Min(1, float64(n)/100))
		}
	}
	return cfg
}

// Player mixes effects into one stream. It works without a speaker, which
// lets tools and tests pull samples from Mixer directly; Init routes the mix
// to the default audio device.
type Player struct {
	mu      sync.Mutex
	cfg     Config
	rate    beep.SampleRate
	mixer   *beep.Mixer
	playing bool
}

// NewPlayer creates a silent player.
func NewPlayer(cfg Config) *Player {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultSampleRate
	}
	return &Player{
		cfg:   cfg,
		rate:  beep.SampleRate(cfg.SampleRate),
		mixer: &beep.Mixer{},
	}
}

// Init opens the audio device and starts playing the mix. It is a no-op when
// audio is disabled or already running.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.cfg.Enabled || p.playing {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("showcase: init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.playing = true
	return nil
}

// Close drops queued effects and releases the audio device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.withMixer(p.mixer.Clear)
	if p.playing {
		speaker.Close()
		p.playing = false
	}
}

// Mixer returns the stream all effects are added to.
func (p *Player) Mixer() *beep.Mixer { return p.mixer }

// SampleRate returns the output sample rate.
func (p *Player) SampleRate() beep.SampleRate { return p.rate }

// Pending returns how many effects are still sounding.
func (p *Player) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	p.withMixer(func() { n = p.mixer.Len() })
	return n
}

// CardLanded plays a chime pitched by the deck the card landed on.
func (p *Player) CardLanded(deck int) {
	if !p.cfg.Enabled || p.cfg.Volume <= 0 {
		return
	}
	pitch := deckPitches[0]
	if deck >= 0 && deck < len(deckPitches) {
		pitch = deckPitches[deck]
	}
	s, err := Chime(p.rate, pitch, p.cfg.Volume)
	if err != nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.withMixer(func() { p.mixer.Add(s) })
}

// withMixer runs fn while the speaker is not reading the mixer.
func (p *Player) withMixer(fn func()) {
	if p.playing {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn()
}

// Chime synthesizes a short bell: a fundamental and its octave under an
// exponential decay, ChimeDuration long.
func Chime(rate beep.SampleRate, freq, volume float64) (beep.Streamer, error) {
	fund, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, fmt.Errorf("showcase: chime: %w", err)
	}
	over, err := generators.SineTone(rate, 2*freq)
	if err != nil {
		return nil, fmt.Errorf("showcase: chime overtone: %w", err)
	}
	tone := beep.Mix(withVolume(fund, 0.7), withVolume(over, 0.3))
	shaped := &decay{streamer: beep.Take(rate.N(ChimeDuration), tone), rate: rate, k: chimeDecay}
	return withVolume(shaped, volume), nil
}

// withVolume scales s linearly; zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// decay multiplies a stream by exp(-k*t).
type decay struct {
	streamer beep.Streamer
	rate     beep.SampleRate
	k        float64
	pos      int
}

func (d *decay) Stream(samples [][2]float64) (int, bool) {
	n, ok := d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := math.Exp(-d.k * float64(d.pos) / float64(d.rate))
		samples[i][0] *= g
		samples[i][1] *= g
		d.pos++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }
