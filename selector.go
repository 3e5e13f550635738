package showcase

import (
	"math"
	"strings"
)

const (
	selectorLabelRatio    = 0.9 // label fits within this share of the button
	selectorSeparation    = 2.0
	selectorBottomPadding = 5.0
	selectorSidePadding   = 5.0
	selectorMaxHeightFrac = 0.3
	selectorFontSize      = 32
)

type selectorButton struct {
	scene  Scene
	node   *Node
	sprite *Node
	label  *Node
}

// Selector is the bottom button bar: one button per scene, stacked bottom-up
// and scaled to fit the lower part of the screen.
type Selector struct {
	Node *Node
	// OnSelect is called with the scene whose button was tapped.
	OnSelect func(Scene)

	texture *Texture
	font    Font
	buttons []*selectorButton
	stack   *Node
}

// NewSelector creates an empty selector whose buttons use tex as background
// and font for labels.
func NewSelector(tex *Texture, font Font) *Selector {
	s := &Selector{
		Node:    NewContainer("scene-selector"),
		texture: tex,
		font:    font,
		stack:   NewContainer("buttons"),
	}
	s.Node.AddChild(s.stack)
	return s
}

// Len returns the number of buttons.
func (s *Selector) Len() int {
	return len(s.buttons)
}

// Button returns the button node for scene, or nil.
func (s *Selector) Button(scene Scene) *Node {
	for _, b := range s.buttons {
		if b.scene == scene {
			return b.sprite
		}
	}
	return nil
}

// AddButton appends a button labelled with the scene's title.
func (s *Selector) AddButton(scene Scene) {
	title := scene.Title()
	b := &selectorButton{
		scene: scene,
		node:  NewContainer(strings.ReplaceAll(strings.ToLower(title), " ", "-") + "-button"),
	}

	b.sprite = NewSprite("button", s.texture)
	b.sprite.Interactable = true
	b.sprite.OnClick = func(ClickContext) {
		if s.OnSelect != nil {
			s.OnSelect(scene)
		}
	}
	b.node.AddChild(b.sprite)

	bw, bh := b.sprite.Size()
	b.label = NewText("label", title, s.font)
	b.label.TextBlock.Color = Color{0, 0, 0, 1}
	b.label.TextBlock.Align = TextAlignCenter
	b.label.SetAnchor(0.5, 0.5)
	b.label.SetPosition(bw/2, bh/2)
	if tw, th := b.label.Size(); tw > 0 && th > 0 {
		k := math.Min(bw*selectorLabelRatio/tw, bh*selectorLabelRatio/th)
		b.label.SetScale(k, k)
	}
	b.node.AddChild(b.label)

	s.buttons = append(s.buttons, b)
	s.stack.AddChild(b.node)
	s.rearrange()
}

// RemoveButton removes the scene's button. It reports whether one existed.
func (s *Selector) RemoveButton(scene Scene) bool {
	for i, b := range s.buttons {
		if b.scene != scene {
			continue
		}
		copy(s.buttons[i:], s.buttons[i+1:])
		s.buttons[len(s.buttons)-1] = nil
		s.buttons = s.buttons[:len(s.buttons)-1]
		b.node.Dispose()
		s.rearrange()
		return true
	}
	return false
}

// rearrange stacks buttons upward from the selector origin, centered
// horizontally.
func (s *Selector) rearrange() {
	for i, b := range s.buttons {
		bw, bh := b.sprite.Size()
		b.node.SetPosition(-bw/2, -float64(i+1)*bh-float64(i)*selectorSeparation)
	}
}

// stackSize returns the unscaled bounds of the button stack.
func (s *Selector) stackSize() (w, h float64) {
	for i, b := range s.buttons {
		bw, bh := b.sprite.Size()
		w = math.Max(w, bw)
		h += bh
		if i > 0 {
			h += selectorSeparation
		}
	}
	return w, h
}

// Resize fits the button stack into the bottom of a w x h screen and returns
// the height left for scene content above it.
func (s *Selector) Resize(w, h float64) float64 {
	s.Node.SetPosition(w/2, h-selectorBottomPadding)
	sw, sh := s.stackSize()
	if sw == 0 || sh == 0 {
		return h
	}
	maxW := w - 2*selectorSidePadding
	maxH := h*selectorMaxHeightFrac - selectorBottomPadding
	k := math.Min(maxW/sw, maxH/sh)
	s.Node.SetScale(k, k)
	return h - sh*k
}

// Destroy disposes every button.
func (s *Selector) Destroy() {
	s.buttons = nil
	s.Node.Dispose()
}
