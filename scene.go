package showcase

// Scene is a self-contained animated demo mounted by the App. Implementations
// embed BaseScene for the shared visibility/playback state machine and
// override Reset, Resize and Update.
type Scene interface {
	Title() string
	// Node is the scene's root container.
	Node() *Node
	// Reset returns the scene to its initial animation state.
	Reset()
	// Resize lays the scene out inside a w x h area.
	Resize(w, h float64)
	// Update advances the scene by deltaMS and reports whether it was active.
	Update(deltaMS float64) bool
	// Toggle shows or hides the scene. Showing with autoPlayOrReset plays it;
	// hiding always stops it and resets it when autoPlayOrReset is set.
	Toggle(visible, autoPlayOrReset bool)
	Play()
	Stop()
	IsPlaying() bool
	Visible() bool
	// Destroy releases everything the scene owns. Calling it twice is a no-op.
	Destroy()
}

// BaseScene implements the Scene lifecycle shared by every variant. Variants
// embed it and call Init with themselves so Toggle dispatches to their Reset,
// Play and Stop.
type BaseScene struct {
	root      *Node
	title     string
	self      Scene
	playing   bool
	destroyed bool
	width     float64
	height    float64
}

// Init creates the root container and binds the embedding scene. It starts
// hidden and stopped.
func (b *BaseScene) Init(name, title string, self Scene) {
	b.root = NewContainer(name)
	b.root.Visible = false
	b.title = title
	b.self = self
}

// Title returns the button label of the scene.
func (b *BaseScene) Title() string { return b.title }

// Node returns the scene's root container.
func (b *BaseScene) Node() *Node { return b.root }

// Reset is a no-op; variants override it.
func (b *BaseScene) Reset() {}

// Resize records the available area.
func (b *BaseScene) Resize(w, h float64) {
	b.width, b.height = w, h
}

// Size returns the area passed to the last Resize.
func (b *BaseScene) Size() (w, h float64) {
	return b.width, b.height
}

// Update reports whether the scene should advance: it must be visible,
// playing and not destroyed.
func (b *BaseScene) Update(deltaMS float64) bool {
	return !b.destroyed && b.root.Visible && b.playing
}

// Toggle implements the show/hide transition.
func (b *BaseScene) Toggle(visible, autoPlayOrReset bool) {
	if b.destroyed {
		return
	}
	b.root.Visible = visible
	if visible {
		if autoPlayOrReset {
			b.dispatch().Play()
		}
		return
	}
	s := b.dispatch()
	s.Stop()
	if autoPlayOrReset {
		s.Reset()
	}
}

func (b *BaseScene) dispatch() Scene {
	if b.self != nil {
		return b.self
	}
	return b
}

// Play starts playback.
func (b *BaseScene) Play() {
	if b.destroyed {
		return
	}
	b.playing = true
}

// Stop pauses playback.
func (b *BaseScene) Stop() {
	b.playing = false
}

// IsPlaying reports whether the scene is playing.
func (b *BaseScene) IsPlaying() bool { return b.playing }

// Visible reports whether the scene's root is shown.
func (b *BaseScene) Visible() bool {
	return !b.destroyed && b.root.Visible
}

// Destroyed reports whether Destroy has run.
func (b *BaseScene) Destroyed() bool { return b.destroyed }

// Destroy stops the scene and disposes its node tree.
func (b *BaseScene) Destroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true
	b.playing = false
	b.root.Dispose()
}
