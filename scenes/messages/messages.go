// Package messages implements "Magic Words": a scrollable chat feed loaded
// from a remote conversation, with inline emoji images and speaker avatars.
package messages

import (
	"context"
	"fmt"
	"maps"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/showcase"
)

// Title is the selector label of the scene.
const Title = "Magic Words"

// Status captions.
const (
	LoadingText = "Loading…"
	FailedText  = "Failed to load.\nTap to retry."
)

const (
	margin       = 10.0
	maxFeedWidth = 700.0
	initialSize  = 500.0
)

var (
	feedBackground = showcase.ColorHex(0x0d0b14)
	statusColor    = showcase.ColorHex(0xf2efff)
)

// Config configures a Scene.
type Config struct {
	// Source provides the conversation. Defaults to NewFetcher(DefaultURL).
	Source Source
	// Font is used inside message boxes. Defaults to an 18px Go Regular face.
	Font showcase.Font
	// StatusFont renders the loading and error captions. Defaults to 22px.
	StatusFont showcase.Font
	// Context bounds every load. Defaults to context.Background.
	Context context.Context
	// Textures may provide showcase.PlaceholderIconName for unknown emoji
	// tokens. Without it they render the magenta placeholder.
	Textures showcase.TextureLookup
}

type avatar struct {
	tex  *showcase.Texture
	side Side
}

// anywhere is a hit shape that accepts every point.
type anywhere struct{}

func (anywhere) Contains(x, y float64) bool { return true }

// Scene shows the conversation once every image has arrived. Until then it
// shows a status caption; a failed load can be retried by tapping.
type Scene struct {
	showcase.BaseScene

	font        showcase.Font
	loader      *showcase.Loader[*assets]
	placeholder *showcase.Texture

	status     *showcase.Node
	background *showcase.Node
	list       *showcase.ScrollList
	boxes      []*MessageBox

	conversation *Conversation
	emojis       map[string]*showcase.Texture
	avatars      map[string]avatar

	lastW, lastH float64
}

// New creates the scene and starts loading immediately.
func New(cfg Config) *Scene {
	if cfg.Source == nil {
		cfg.Source = NewFetcher(DefaultURL)
	}
	if cfg.Font == nil {
		cfg.Font = showcase.DefaultFont(18)
	}
	if cfg.StatusFont == nil {
		cfg.StatusFont = showcase.DefaultFont(22)
	}

	s := &Scene{
		font:    cfg.Font,
		emojis:  make(map[string]*showcase.Texture),
		avatars: make(map[string]avatar),
		lastW:   initialSize,
		lastH:   initialSize,
	}
	s.Init("magic-words", Title, s)
	root := s.Node()
	if cfg.Textures != nil {
		s.placeholder, _ = cfg.Textures.Lookup(showcase.PlaceholderIconName)
	}

	s.background = showcase.NewRect("feed-background", initialSize, initialSize, feedBackground)
	s.background.Visible = false
	root.AddChild(s.background)

	s.list = showcase.NewScrollList("feed", initialSize, initialSize)
	s.list.Spacing = margin
	s.list.Padding = margin
	s.list.Node.Visible = false
	root.AddChild(s.list.Node)

	s.status = showcase.NewText("status", LoadingText, cfg.StatusFont)
	s.status.TextBlock.Align = showcase.TextAlignCenter
	s.status.TextBlock.Color = statusColor
	s.status.Interactable = true
	s.status.HitShape = anywhere{}
	s.status.OnClick = func(showcase.ClickContext) {
		if s.loader.State() == showcase.LoadError {
			s.startLoading()
		}
	}
	root.AddChild(s.status)

	src := cfg.Source
	s.loader = showcase.NewLoader(cfg.Context, func(ctx context.Context) (*assets, error) {
		return fetchAssets(ctx, src)
	})
	s.loader.OnReady = s.build
	s.loader.OnError = func(error) {
		s.setStatus(FailedText)
	}
	s.startLoading()
	return s
}

func (s *Scene) startLoading() {
	if s.Destroyed() {
		return
	}
	st := s.loader.State()
	if st == showcase.LoadLoading || st == showcase.LoadReady {
		return
	}
	s.setStatus(LoadingText)
	s.loader.Start()
}

func (s *Scene) setStatus(caption string) {
	if s.Destroyed() {
		return
	}
	s.status.TextBlock.SetContent(caption)
	s.status.SetAnchor(0.5, 0.5)
	s.status.Visible = true
}

// build turns the loaded images into textures and creates one message box per
// dialogue line. Runs on the frame thread.
func (s *Scene) build(a *assets) {
	conv := a.conversation
	s.conversation = conv
	for i, e := range conv.Emojies {
		s.emojis[e.Name] = showcase.NewTexture("emoji-"+e.Name, ebiten.NewImageFromImage(a.emojis[i]))
	}
	for i, av := range conv.Avatars {
		tex := showcase.NewTexture("avatar-"+av.Name, ebiten.NewImageFromImage(a.avatars[i]))
		s.avatars[av.Name] = avatar{tex: tex, side: av.Position}
	}

	icons := s.emojis
	if s.placeholder != nil {
		icons = maps.Clone(s.emojis)
		icons[showcase.PlaceholderIconName] = s.placeholder
	}
	for _, m := range conv.Dialogue {
		av, ok := s.avatars[m.Name]
		if !ok {
			av = avatar{tex: showcase.WhiteTexture(), side: SideLeft}
		}
		box := NewMessageBox(m.Name, m.Text, av.side, av.tex, icons, s.font, s.lastW)
		box.Node.X = margin
		s.boxes = append(s.boxes, box)
		s.list.AddItem(box.Node)
	}

	s.status.Visible = false
	s.background.Visible = true
	s.list.Node.Visible = true
	s.Resize(s.lastW, s.lastH)
}

// Reset scrolls back to the first message.
func (s *Scene) Reset() {
	s.list.ScrollToTop()
}

// Resize centers a feed of at most 700px width and re-wraps every message.
// It never reloads.
func (s *Scene) Resize(w, h float64) {
	s.BaseScene.Resize(w, h)
	s.lastW, s.lastH = w, h
	tw := math.Min(w, maxFeedWidth)
	th := h - margin

	s.Node().SetPosition((w-tw)/2, 0)
	s.status.SetPosition(tw/2, th/2)

	for _, b := range s.boxes {
		b.SetWidth(tw - 2*margin)
	}
	showcase.SetPolygonPoints(s.background, showcase.RectPoints(tw, th))
	s.list.SetSize(tw, th)
	s.list.Relayout()
}

// Update commits finished loads, even while the scene is hidden.
func (s *Scene) Update(deltaMS float64) bool {
	if s.Destroyed() {
		return false
	}
	s.loader.Poll()
	return s.BaseScene.Update(deltaMS)
}

// Destroy cancels any load in flight and frees the fetched images.
func (s *Scene) Destroy() {
	if s.Destroyed() {
		return
	}
	s.loader.Close()
	for _, b := range s.boxes {
		b.Destroy()
	}
	s.boxes = nil
	for name, t := range s.emojis {
		t.Image.Deallocate()
		delete(s.emojis, name)
	}
	for name, a := range s.avatars {
		a.tex.Image.Deallocate()
		delete(s.avatars, name)
	}
	s.BaseScene.Destroy()
}

// LoadState reports the loader state.
func (s *Scene) LoadState() showcase.LoadState { return s.loader.State() }

// Err returns the last load error.
func (s *Scene) Err() error { return s.loader.Err() }

// Wait blocks until the load in flight settles. For tools without a frame
// loop.
func (s *Scene) Wait(ctx context.Context) error { return s.loader.Wait(ctx) }

// Retry restarts a failed load. It does nothing once the scene is destroyed.
func (s *Scene) Retry() {
	if !s.Destroyed() && s.loader.State() == showcase.LoadError {
		s.startLoading()
	}
}

// Boxes returns the message boxes in dialogue order.
func (s *Scene) Boxes() []*MessageBox { return s.boxes }

// List returns the scrolling feed.
func (s *Scene) List() *showcase.ScrollList { return s.list }

// StatusNode returns the caption node shown while loading or after a failure.
func (s *Scene) StatusNode() *showcase.Node { return s.status }

// Emoji returns the texture loaded for an emoji name.
func (s *Scene) Emoji(name string) (*showcase.Texture, bool) {
	t, ok := s.emojis[name]
	return t, ok
}

// Status is a one-line summary for monitors.
func (s *Scene) Status() string {
	switch s.loader.State() {
	case showcase.LoadReady:
		return fmt.Sprintf("%d messages | %d emojis | scroll %.0f/%.0f",
			len(s.boxes), len(s.emojis), s.list.Offset(), s.list.MaxOffset())
	case showcase.LoadError:
		return fmt.Sprintf("error: %v", s.loader.Err())
	default:
		return s.loader.State().String()
	}
}
