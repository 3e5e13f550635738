package showcase

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// RepeatForever makes a tween cycle until stopped.
const RepeatForever = -1

// Lerp maps a progress value in [0, 1] to an animated value.
type Lerp func(t float64) float64

// LinearLerp interpolates linearly from a to b.
func LinearLerp(a, b float64) Lerp {
	return func(t float64) float64 {
		return a + (b-a)*t
	}
}

// ParabolicLerp returns the quadratic through (0, start), (0.5, peak) and
// (1, end). A peak above both ends makes an arc; in screen space where Y grows
// downward, pass a peak smaller than both ends to arc upward.
func ParabolicLerp(start, end, peak float64) Lerp {
	a := 2*end + 2*start - 4*peak
	b := 4*peak - 3*start - end
	c := start
	return func(t float64) float64 {
		return (a*t+b)*t + c
	}
}

// Timeline drives a set of tweens from a virtual clock in milliseconds. The
// clock only moves when Update or Advance is called.
type Timeline struct {
	now      float64
	tweens   []*Tween
	updating bool
}

// NewTimeline creates an empty timeline at time zero.
func NewTimeline() *Timeline {
	return &Timeline{}
}

// Now returns the current clock value.
func (tl *Timeline) Now() float64 {
	return tl.now
}

// NewTween registers a tween of the given duration. It does nothing until
// Start is called. A nil easing means ease.Linear.
func (tl *Timeline) NewTween(durationMS float64, easing ease.TweenFunc) *Tween {
	if easing == nil {
		easing = ease.Linear
	}
	tw := &Tween{
		DurationMS: durationMS,
		Easing:     easing,
		timeline:   tl,
	}
	tl.tweens = append(tl.tweens, tw)
	return tw
}

// Remove unregisters tw. It is stopped first.
func (tl *Timeline) Remove(tw *Tween) {
	tw.Stop()
	for i, t := range tl.tweens {
		if t == tw {
			copy(tl.tweens[i:], tl.tweens[i+1:])
			tl.tweens[len(tl.tweens)-1] = nil
			tl.tweens = tl.tweens[:len(tl.tweens)-1]
			return
		}
	}
}

// Len returns the number of registered tweens.
func (tl *Timeline) Len() int {
	return len(tl.tweens)
}

// Advance moves the clock forward by deltaMS.
func (tl *Timeline) Advance(deltaMS float64) {
	tl.Update(tl.now + deltaMS)
}

// Update sets the clock to now and steps every tween that was playing before
// the call, in registration order. Tweens started from a callback during the
// call are first stepped on the next call.
func (tl *Timeline) Update(now float64) {
	tl.now = now
	tl.updating = true
	n := len(tl.tweens)
	for i := 0; i < n && i < len(tl.tweens); i++ {
		tw := tl.tweens[i]
		if !tw.playing || tw.deferred {
			continue
		}
		tw.step(now)
	}
	tl.updating = false
	for _, tw := range tl.tweens {
		tw.deferred = false
	}
}

// Reset stops every tween and rewinds the clock to zero.
func (tl *Timeline) Reset() {
	for _, tw := range tl.tweens {
		tw.Stop()
	}
	tl.now = 0
}

// Tween animates a progress value from 0 to 1 over DurationMS, shaped by
// Easing. Callers map progress onto properties with Lerp functions in OnUpdate.
type Tween struct {
	DurationMS float64
	Easing     ease.TweenFunc
	// Repeat is the number of extra cycles; RepeatForever cycles until stopped.
	Repeat int

	OnUpdate   func(progress float64)
	OnRepeat   func()
	OnComplete func()

	timeline *Timeline
	startAt  float64
	cycle    int
	playing  bool
	deferred bool
	curve    *gween.Tween
}

// Start begins playback with the tween's zero point at clock time at.
func (tw *Tween) Start(at float64) {
	tw.startAt = at
	tw.cycle = 0
	tw.playing = true
	tw.deferred = tw.timeline != nil && tw.timeline.updating
	tw.curve = gween.New(0, 1, float32(tw.DurationMS), tw.Easing)
}

// Stop halts playback without firing OnComplete.
func (tw *Tween) Stop() {
	tw.playing = false
	tw.deferred = false
}

// IsPlaying reports whether the tween is running.
func (tw *Tween) IsPlaying() bool {
	return tw.playing
}

// StartedAt returns the clock time passed to the last Start.
func (tw *Tween) StartedAt() float64 {
	return tw.startAt
}

func (tw *Tween) step(now float64) {
	elapsed := now - tw.startAt
	if elapsed < 0 {
		return
	}
	d := tw.DurationMS
	if d <= 0 {
		tw.finish()
		return
	}

	if tw.Repeat != 0 {
		cycles := int(math.Floor(elapsed / d))
		for tw.cycle < cycles && (tw.Repeat < 0 || tw.cycle < tw.Repeat) {
			tw.cycle++
			if tw.OnRepeat != nil {
				tw.OnRepeat()
			}
			if !tw.playing {
				return
			}
		}
	}

	local := elapsed - float64(tw.cycle)*d
	if local >= d {
		tw.finish()
		return
	}
	v, _ := tw.curve.Set(float32(local))
	if tw.OnUpdate != nil {
		tw.OnUpdate(float64(v))
	}
}

func (tw *Tween) finish() {
	tw.playing = false
	if tw.OnUpdate != nil {
		tw.OnUpdate(1)
	}
	if tw.OnComplete != nil {
		tw.OnComplete()
	}
}
