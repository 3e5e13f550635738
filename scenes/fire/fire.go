// Package fire implements "Phoenix Flame": two additive particle emitters, a
// ring of rising flame trails around a pulsing blaze core.
package fire

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/phanxgames/showcase"
)

// Title is the selector label of the scene.
const Title = "Phoenix Flame"

// Texture name prefixes. Frames are numbered from 1.
const (
	TrailPrefix = "trail-"
	BlazePrefix = "blaze-"

	trailFrames = 4
	blazeFrames = 2
)

const padding = 15.0

// safeArea is the local region the effect is guaranteed to stay inside.
var safeArea = showcase.Rect{X: -200, Y: -310, Width: 400, Height: 450}

// Trail tuning.
const (
	trailLifeMS     = 450.0
	trailMax        = 7
	trailIntervalMS = 70.0
	trailRadius     = 90.0
	trailOffsetY    = -10.0
	trailScaleX     = 1.5
	trailScaleY0    = 0.1
	trailScaleY1    = 0.3
)

var (
	trailArc   = showcase.Range{Min: 0.25 * math.Pi, Max: 0.75 * math.Pi}
	trailSpeed = showcase.Range{Min: -0.39, Max: -0.42}
)

// Blaze tuning.
const (
	blazeLifeMS     = 600.0
	blazeMax        = 3
	blazeIntervalMS = 210.0
	blazeSpeedY     = -0.1
	blazeScaleEnd   = 1.0
)

// Config configures a Scene.
type Config struct {
	// Rand drives spawn randomness. Defaults to a time-seeded source.
	Rand *rand.Rand
}

type trailFrame struct {
	tex *showcase.Texture
	at  float64 // life fraction at which the frame starts
}

type trailData struct {
	sequence int
	frame    int
	speedY   float64
}

type trailShared struct {
	sequences [][]trailFrame
	colors    gradient
	rnd       *rand.Rand
}

type blazeShared struct {
	textures []*showcase.Texture
	colors   gradient
	rnd      *rand.Rand
}

// Scene renders the flame.
type Scene struct {
	showcase.BaseScene

	trail *showcase.Emitter[trailData, trailShared]
	blaze *showcase.Emitter[struct{}, blazeShared]
}

// New builds both emitters from the trail-N and blaze-N textures.
func New(textures showcase.TextureSource, cfg Config) *Scene {
	rnd := cfg.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	trail := &trailShared{
		sequences: make([][]trailFrame, 2),
		colors:    newGradient(0xff6600, 0x660000),
		rnd:       rnd,
	}
	for i := 0; i < trailFrames; i++ {
		tex := textures.Texture(fmt.Sprintf("%s%d", TrailPrefix, i+1))
		at := float64(i) / trailFrames
		trail.sequences[0] = append(trail.sequences[0], trailFrame{tex: tex, at: at})
		trail.sequences[1] = append(trail.sequences[1], trailFrame{tex: tex.Mirrored(true, false), at: at})
	}

	blaze := &blazeShared{
		colors: newGradient(0xffbb00, 0x660000),
		rnd:    rnd,
	}
	for i := 0; i < blazeFrames; i++ {
		tex := textures.Texture(fmt.Sprintf("%s%d", BlazePrefix, i+1))
		blaze.textures = append(blaze.textures, tex, tex.Mirrored(true, false), tex.Mirrored(false, true))
	}

	s := &Scene{}
	s.Init("phoenix-flame", Title, s)

	s.trail = showcase.NewEmitter("trail", showcase.EmitterConfig[trailData, trailShared]{
		AutoSpawn:    showcase.SpawnEvery(trailIntervalMS),
		MaxParticles: trailMax,
		Texture:      trail.sequences[0][0].tex,
		LifetimeMS:   trailLifeMS,
		OnSpawn:      spawnTrail,
		OnUpdate:     updateTrail,
		Shared:       trail,
	})
	s.blaze = showcase.NewEmitter("blaze", showcase.EmitterConfig[struct{}, blazeShared]{
		AutoSpawn:    showcase.SpawnEvery(blazeIntervalMS),
		MaxParticles: blazeMax,
		Texture:      blaze.textures[0],
		LifetimeMS:   blazeLifeMS,
		OnSpawn:      spawnBlaze,
		OnUpdate:     updateBlaze,
		Shared:       blaze,
	})

	root := s.Node()
	root.AddChild(s.trail.Node)
	root.AddChild(s.blaze.Node)
	return s
}

func between(rnd *rand.Rand, r showcase.Range) float64 {
	return r.Min + rnd.Float64()*(r.Max-r.Min)
}

func spawnTrail(p *showcase.Particle[trailData], shared *trailShared) {
	p.Data.sequence = shared.rnd.IntN(len(shared.sequences))
	p.Data.frame = 0
	p.Data.speedY = between(shared.rnd, trailSpeed)

	n := p.Node
	n.Texture = shared.sequences[p.Data.sequence][0].tex
	n.SetAnchor(0.5, 1)
	n.Color = shared.colors.At(0)
	n.BlendMode = showcase.BlendAdd

	arc := between(shared.rnd, trailArc)
	n.SetPosition(math.Cos(arc)*trailRadius, trailOffsetY+math.Sin(arc)*trailRadius)
	n.SetScale(trailScaleX, trailScaleY0)
	n.SetRotation((arc - math.Pi/2) / 3)
}

func updateTrail(p *showcase.Particle[trailData], shared *trailShared, deltaMS float64) {
	t := p.AgeMS / p.MaxLifeMS
	n := p.Node

	frames := shared.sequences[p.Data.sequence]
	for i := len(frames) - 1; i > p.Data.frame; i-- {
		if t >= frames[i].at {
			n.Texture = frames[i].tex
			p.Data.frame = i
			break
		}
	}

	n.SetPosition(n.X, n.Y+p.Data.speedY*deltaMS)
	n.SetScale(trailScaleX, trailScaleY0+math.Pow(t, 0.3)*(trailScaleY1-trailScaleY0))
	n.Color = shared.colors.At(t)
}

func spawnBlaze(p *showcase.Particle[struct{}], shared *blazeShared) {
	n := p.Node
	n.Texture = shared.textures[shared.rnd.IntN(len(shared.textures))]
	n.SetAnchor(0.5, 0.5)
	n.Color = shared.colors.At(0)
	n.BlendMode = showcase.BlendAdd
	n.SetAlpha(1)
	n.SetPosition(0, 0)
	n.SetScale(0, 0)
	n.SetRotation(shared.rnd.Float64() * 2 * math.Pi)
}

func updateBlaze(p *showcase.Particle[struct{}], shared *blazeShared, deltaMS float64) {
	t := p.AgeMS / p.MaxLifeMS
	n := p.Node
	k := math.Pow(t, 0.3) * blazeScaleEnd
	n.SetScale(k, k)
	n.SetAlpha(math.Pow(1-t, 0.4))
	n.Color = shared.colors.At(t)
	n.SetPosition(n.X, n.Y+blazeSpeedY*deltaMS)
}

// Reset kills every live particle.
func (s *Scene) Reset() {
	s.trail.Reset()
	s.blaze.Reset()
}

// Resize fits the safe area into w x h with padding.
func (s *Scene) Resize(w, h float64) {
	s.BaseScene.Resize(w, h)
	tw := w - 2*padding
	th := h - 2*padding
	k := math.Min(tw/safeArea.Width, th/safeArea.Height)
	root := s.Node()
	root.SetScale(k, k)
	root.SetPosition(padding+tw/2, padding+th/2-k*(safeArea.Height/2+safeArea.Y))
}

// Update advances both emitters.
func (s *Scene) Update(deltaMS float64) bool {
	if !s.BaseScene.Update(deltaMS) {
		return false
	}
	s.blaze.Update(deltaMS)
	s.trail.Update(deltaMS)
	return true
}

// Destroy releases both particle pools.
func (s *Scene) Destroy() {
	if s.Destroyed() {
		return
	}
	s.trail.Destroy()
	s.blaze.Destroy()
	s.BaseScene.Destroy()
}

// Counts reports live particles per emitter.
func (s *Scene) Counts() (trail, blaze int) {
	return s.trail.ActiveCount(), s.blaze.ActiveCount()
}

// Status is a one-line summary for monitors.
func (s *Scene) Status() string {
	return fmt.Sprintf("trail %d/%d | blaze %d/%d | pooled %d",
		s.trail.ActiveCount(), trailMax, s.blaze.ActiveCount(), blazeMax,
		s.trail.PoolSize()+s.blaze.PoolSize())
}
