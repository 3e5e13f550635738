package showcase

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// DefaultIntroText is shown until the first scene is selected.
const DefaultIntroText = "Select a scene"

// AppConfig configures an App.
type AppConfig struct {
	// Textures resolves the selector's button texture.
	Textures TextureSource
	// ButtonTexture names the selector button texture. Defaults to "button".
	ButtonTexture string
	// Font is used for the intro text and button labels. Defaults to
	// DefaultFont(32).
	Font Font
	// IntroText defaults to DefaultIntroText.
	IntroText string
	// ScreenshotDir is where screenshot script steps write PNGs. Defaults to
	// "screenshots".
	ScreenshotDir string
}

// App is the scene host. It owns the scenes, the selector bar and the intro
// text, forwards resize and tick events, and switches the visible scene when
// a selector button is tapped.
type App struct {
	root       *Node
	background *Node
	game       *Node
	ui         *Node

	selector *Selector
	intro    *Node
	scenes   []Scene

	width, height float64
	contentHeight float64

	// ClearColor fills the screen before drawing.
	ClearColor Color

	store  EventStore
	debug  bool
	stats  debugStats
	input  inputState
	rend   renderer
	runner *ScriptRunner

	screenshotDir   string
	screenshotQueue []string

	destroyed bool
}

// NewApp creates an App with an empty selector.
func NewApp(cfg AppConfig) *App {
	if cfg.ButtonTexture == "" {
		cfg.ButtonTexture = "button"
	}
	if cfg.Font == nil {
		cfg.Font = DefaultFont(selectorFontSize)
	}
	if cfg.IntroText == "" {
		cfg.IntroText = DefaultIntroText
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	var buttonTex *Texture
	if cfg.Textures != nil {
		buttonTex = cfg.Textures.Texture(cfg.ButtonTexture)
	}

	a := &App{
		root:          NewContainer("stage"),
		background:    NewContainer("background-container"),
		game:          NewContainer("game-container"),
		ui:            NewContainer("ui-container"),
		selector:      NewSelector(buttonTex, cfg.Font),
		ClearColor:    Color{0, 0, 0, 1},
		screenshotDir: cfg.ScreenshotDir,
	}
	a.root.AddChild(a.background)
	a.root.AddChild(a.game)
	a.root.AddChild(a.ui)

	a.selector.OnSelect = a.Select
	a.input.onTap = func(n *Node, x, y float64) {
		a.emit(AppEvent{Type: EventTap, Node: n.Name, X: x, Y: y})
	}
	a.ui.AddChild(a.selector.Node)

	a.intro = NewText("intro-text", cfg.IntroText, cfg.Font)
	a.intro.SetAnchor(0.5, 0.5)
	a.game.AddChild(a.intro)
	return a
}

// Root returns the stage node.
func (a *App) Root() *Node { return a.root }

// Background returns the container drawn behind all scenes.
func (a *App) Background() *Node { return a.background }

// Selector returns the scene selector bar.
func (a *App) Selector() *Selector { return a.selector }

// Scenes returns the mounted scenes in order. The slice must not be modified.
func (a *App) Scenes() []Scene { return a.scenes }

// IntroVisible reports whether the intro text is shown.
func (a *App) IntroVisible() bool { return a.intro.Visible }

// Size returns the last size passed to Resize.
func (a *App) Size() (w, h float64) { return a.width, a.height }

// ContentHeight returns the height available to scenes above the selector.
func (a *App) ContentHeight() float64 { return a.contentHeight }

// SetEventStore sets the optional event sink.
func (a *App) SetEventStore(store EventStore) { a.store = store }

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are printed, and
// per-frame timing stats are logged to stderr.
func (a *App) SetDebugMode(enabled bool) {
	a.debug = enabled
	globalDebug = enabled
}

// SetScriptRunner attaches a script runner; it is stepped at the start of
// every Update.
func (a *App) SetScriptRunner(r *ScriptRunner) { a.runner = r }

func (a *App) emit(evt AppEvent) {
	if a.store != nil {
		a.store.EmitEvent(evt)
	}
}

// AddScene mounts a scene hidden, adds its selector button and relayouts.
func (a *App) AddScene(scene Scene) {
	if a.destroyed {
		return
	}
	a.scenes = append(a.scenes, scene)
	a.game.AddChild(scene.Node())
	scene.Toggle(false, true)
	a.selector.AddButton(scene)
	a.emit(AppEvent{Type: EventSceneAdded, Scene: scene.Title()})
	if a.width > 0 && a.height > 0 {
		a.Resize(a.width, a.height)
	}
}

// RemoveScene destroys and unmounts a scene. It reports false if the scene
// was not mounted. The intro text returns when no scene remains visible, and
// the remaining buttons are refitted.
func (a *App) RemoveScene(scene Scene) bool {
	idx := a.indexOf(scene)
	if idx < 0 {
		return false
	}
	copy(a.scenes[idx:], a.scenes[idx+1:])
	a.scenes[len(a.scenes)-1] = nil
	a.scenes = a.scenes[:len(a.scenes)-1]

	a.selector.RemoveButton(scene)
	scene.Destroy()
	a.emit(AppEvent{Type: EventSceneRemoved, Scene: scene.Title()})

	if a.ActiveScene() == nil {
		a.intro.Visible = true
	}
	if a.width > 0 && a.height > 0 {
		a.Resize(a.width, a.height)
	}
	return true
}

func (a *App) indexOf(scene Scene) int {
	for i, s := range a.scenes {
		if s == scene {
			return i
		}
	}
	return -1
}

// ActiveScene returns the visible scene, or nil.
func (a *App) ActiveScene() Scene {
	for _, s := range a.scenes {
		if s.Visible() {
			return s
		}
	}
	return nil
}

// SceneByTitle returns the mounted scene with the given title, or nil.
func (a *App) SceneByTitle(title string) Scene {
	for _, s := range a.scenes {
		if s.Title() == title {
			return s
		}
	}
	return nil
}

// Select switches to scene. The first selection only shows it, selecting
// the visible scene again does nothing, and otherwise the visible scene is
// hidden (stopped and reset) before the new one is shown.
func (a *App) Select(scene Scene) {
	if a.indexOf(scene) < 0 {
		return
	}
	from := a.ActiveScene()
	a.intro.Visible = false

	switch {
	case from == nil:
		scene.Toggle(true, true)
	case from == scene:
		return
	default:
		from.Toggle(false, true)
		a.emit(AppEvent{Type: EventSceneHidden, Scene: from.Title()})
		scene.Toggle(true, true)
	}
	debugf("scene %q selected", scene.Title())
	a.emit(AppEvent{Type: EventSceneShown, Scene: scene.Title()})
}

// Resize lays out the selector, the intro text and every scene for a w x h
// display.
func (a *App) Resize(w, h float64) {
	if a.destroyed {
		return
	}
	a.width, a.height = w, h
	a.contentHeight = a.selector.Resize(w, h)
	a.intro.SetPosition(w/2, a.contentHeight/2)
	for _, s := range a.scenes {
		s.Resize(w, a.contentHeight)
	}
	debugf("resized to %.0fx%.0f (content height %.1f)", w, h, a.contentHeight)
	a.emit(AppEvent{Type: EventResize, W: w, H: h})
}

// Update runs one frame: script step, input, node callbacks, then every
// scene's Update.
func (a *App) Update(deltaMS float64) {
	if a.destroyed {
		return
	}
	var t0 time.Time
	if a.debug {
		t0 = time.Now()
	}

	if a.runner != nil {
		a.runner.step(a)
	}
	a.input.process(a.root)
	updateNodeCallbacks(a.root, deltaMS)
	for _, s := range a.scenes {
		s.Update(deltaMS)
	}

	if a.debug {
		a.stats.updateTime = time.Since(t0)
	}
}

// Draw renders the stage onto screen.
func (a *App) Draw(screen *ebiten.Image) {
	if a.destroyed {
		return
	}
	var t0 time.Time
	if a.debug {
		t0 = time.Now()
	}

	if a.ClearColor.A > 0 {
		screen.Fill(a.ClearColor.toRGBA())
	}
	a.rend.render(screen, a.root)

	if a.debug {
		a.stats.drawTime = time.Since(t0)
		a.stats.drawCalls = a.rend.drawCalls
		debugLog(a.stats)
	}
	a.flushScreenshots(screen)
}

// Destroy removes every scene, then disposes the selector and stage. Later
// calls are no-ops.
func (a *App) Destroy() {
	if a.destroyed {
		return
	}
	a.destroyed = true
	for len(a.scenes) > 0 {
		a.RemoveScene(a.scenes[0])
	}
	a.selector.Destroy()
	a.root.Dispose()
	a.runner = nil
}

// --- Synthetic input ---

// InjectPress queues a pointer press at screen coordinates. Queued events are
// consumed one per Update, ahead of real input.
func (a *App) InjectPress(x, y float64) { a.input.injectPress(x, y) }

// InjectRelease queues a pointer release at screen coordinates.
func (a *App) InjectRelease(x, y float64) { a.input.injectRelease(x, y) }

// InjectClick queues a press followed by a release. Consumes two frames.
func (a *App) InjectClick(x, y float64) {
	a.InjectPress(x, y)
	a.InjectRelease(x, y)
}

// InjectDrag queues a press at (fromX, fromY), frames-2 interpolated moves and
// a release at (toX, toY).
func (a *App) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	a.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		a.InjectPress(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	a.InjectRelease(toX, toY)
}

// InjectWheel queues a wheel event at screen coordinates.
func (a *App) InjectWheel(x, y, dx, dy float64) { a.input.injectWheel(x, y, dx, dy) }

// PendingInput returns the number of queued synthetic events.
func (a *App) PendingInput() int { return len(a.input.injectQueue) }
