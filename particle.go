package showcase

import "math"

// DefaultParticleLifetimeMS is the lifetime of a particle whose OnSpawn does
// not set MaxLifeMS.
const DefaultParticleLifetimeMS = 100

// Particle is one pooled emitter element: a sprite node, its age, and a typed
// payload owned by the emitter's callbacks.
type Particle[T any] struct {
	Node      *Node
	AgeMS     float64
	MaxLifeMS float64
	Data      T
}

// reset returns the particle to its canonical dead state.
func (p *Particle[T]) reset(tex *Texture, lifetime float64) {
	var zero T
	p.AgeMS = 0
	p.MaxLifeMS = lifetime
	p.Data = zero

	n := p.Node
	n.X, n.Y = 0, 0
	n.ScaleX, n.ScaleY = 1, 1
	n.Rotation = 0
	n.PivotX, n.PivotY = 0, 0
	n.Alpha = 1
	n.Color = ColorWhite
	n.BlendMode = BlendNormal
	n.Texture = tex
	n.Visible = false
	n.transformDirty = true
}

// SpawnInfo is the auto-spawn accumulator. TimePassed is the time since the
// last consumed spawn interval; Amount is how many particles the last
// auto-spawn actually produced.
type SpawnInfo struct {
	Amount     int
	TimePassed float64
}

// AutoSpawnFunc decides how many particles to spawn this tick and how much
// accumulated time that consumes. Unconsumed time carries to the next tick.
type AutoSpawnFunc func(info SpawnInfo) (count int, consumedMS float64)

// SpawnEvery spawns one particle per elapsed interval. Over any split of a
// total time T into ticks it produces floor(T/interval) spawns.
func SpawnEvery(intervalMS float64) AutoSpawnFunc {
	return func(info SpawnInfo) (int, float64) {
		if intervalMS <= 0 {
			return 0, 0
		}
		n := math.Floor(info.TimePassed / intervalMS)
		return int(n), n * intervalMS
	}
}

// EmitterConfig configures an Emitter. T is the per-particle payload and S the
// state shared by all particles of the emitter.
type EmitterConfig[T, S any] struct {
	AutoSpawn AutoSpawnFunc
	// MaxParticles caps the active count; 0 means unbounded.
	MaxParticles int
	// Texture is assigned to every particle node on reset; OnSpawn may
	// replace it per particle.
	Texture    *Texture
	LifetimeMS float64

	OnSpawn  func(p *Particle[T], shared *S)
	OnUpdate func(p *Particle[T], shared *S, deltaMS float64)
	OnKill   func(p *Particle[T], shared *S)

	Shared *S
}

// Emitter owns a container node, the ordered list of live particles and a pool
// of dead ones. The pool only grows.
type Emitter[T, S any] struct {
	Node *Node

	config EmitterConfig[T, S]
	active []*Particle[T]
	pool   []*Particle[T]
	info   SpawnInfo
	total  int
}

// NewEmitter creates an emitter whose particles are children of its Node.
func NewEmitter[T, S any](name string, cfg EmitterConfig[T, S]) *Emitter[T, S] {
	if cfg.LifetimeMS <= 0 {
		cfg.LifetimeMS = DefaultParticleLifetimeMS
	}
	if cfg.Shared == nil {
		cfg.Shared = new(S)
	}
	return &Emitter[T, S]{
		Node:   NewContainer(name),
		config: cfg,
	}
}

// Shared returns the shared state passed to every callback.
func (e *Emitter[T, S]) Shared() *S {
	return e.config.Shared
}

// Info returns the auto-spawn accumulator.
func (e *Emitter[T, S]) Info() SpawnInfo {
	return e.info
}

// ActiveCount returns the number of live particles.
func (e *Emitter[T, S]) ActiveCount() int {
	return len(e.active)
}

// PoolSize returns the number of dead particles ready for reuse.
func (e *Emitter[T, S]) PoolSize() int {
	return len(e.pool)
}

// Allocated returns how many particles the emitter has ever created.
func (e *Emitter[T, S]) Allocated() int {
	return e.total
}

// Active returns the live particles in spawn order. The slice must not be
// modified.
func (e *Emitter[T, S]) Active() []*Particle[T] {
	return e.active
}

// Update ages every live particle, kills those past their lifetime, runs
// OnUpdate on the survivors and then auto-spawns.
func (e *Emitter[T, S]) Update(deltaMS float64) {
	live := e.active[:0]
	for _, p := range e.active {
		p.AgeMS += deltaMS
		if p.AgeMS >= p.MaxLifeMS {
			e.kill(p)
			continue
		}
		live = append(live, p)
	}
	clear(e.active[len(live):])
	e.active = live

	if e.config.OnUpdate != nil {
		for _, p := range e.active {
			e.config.OnUpdate(p, e.config.Shared, deltaMS)
		}
	}

	if e.config.AutoSpawn == nil {
		return
	}
	e.info.TimePassed += deltaMS
	count, consumed := e.config.AutoSpawn(e.info)
	if count <= 0 {
		return
	}
	spawned := 0
	for spawned < count && e.SpawnParticle() {
		spawned++
	}
	e.info.Amount = spawned
	e.info.TimePassed -= consumed
	if e.info.TimePassed < 0 {
		e.info.TimePassed = 0
	}
}

// SpawnParticle activates one particle. It returns false when the emitter is
// at MaxParticles.
func (e *Emitter[T, S]) SpawnParticle() bool {
	if e.config.MaxParticles > 0 && len(e.active) >= e.config.MaxParticles {
		return false
	}
	var p *Particle[T]
	if n := len(e.pool); n > 0 {
		p = e.pool[n-1]
		e.pool[n-1] = nil
		e.pool = e.pool[:n-1]
	} else {
		p = &Particle[T]{Node: NewSprite(e.Node.Name+"-particle", nil)}
		p.reset(e.config.Texture, e.config.LifetimeMS)
		e.total++
	}
	e.active = append(e.active, p)
	p.Node.Visible = true
	e.Node.AddChild(p.Node)
	if e.config.OnSpawn != nil {
		e.config.OnSpawn(p, e.config.Shared)
	}
	return true
}

// Reset kills every live particle and clears the spawn accumulator.
func (e *Emitter[T, S]) Reset() {
	for _, p := range e.active {
		e.kill(p)
	}
	clear(e.active)
	e.active = e.active[:0]
	e.info = SpawnInfo{}
}

// Destroy kills all particles and releases the pool and node.
func (e *Emitter[T, S]) Destroy() {
	e.Reset()
	for _, p := range e.pool {
		p.Node.Dispose()
	}
	e.pool = nil
	e.Node.Dispose()
}

func (e *Emitter[T, S]) kill(p *Particle[T]) {
	p.Node.RemoveFromParent()
	if e.config.OnKill != nil {
		e.config.OnKill(p, e.config.Shared)
	}
	p.reset(e.config.Texture, e.config.LifetimeMS)
	e.pool = append(e.pool, p)
}
