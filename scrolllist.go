package showcase

import "math"

// DefaultWheelStep is the scroll distance in pixels per wheel notch.
const DefaultWheelStep = 40.0

// ScrollList is a clipped vertical list of nodes. It scrolls with the mouse
// wheel and by dragging anywhere inside its viewport.
type ScrollList struct {
	*Node

	content *Node
	items   []*Node

	width, height float64
	// Spacing is the vertical gap between items.
	Spacing float64
	// Padding is the empty space above the first and below the last item.
	Padding float64
	// WheelStep is the distance scrolled per wheel notch.
	WheelStep float64

	offset        float64
	contentHeight float64
}

// NewScrollList creates a w x h scroll viewport.
func NewScrollList(name string, w, h float64) *ScrollList {
	l := &ScrollList{
		Node:      NewContainer(name),
		content:   NewContainer(name + "-content"),
		WheelStep: DefaultWheelStep,
	}
	l.Node.AddChild(l.content)
	l.Node.Interactable = true
	l.Node.OnWheel = func(ctx WheelContext) {
		l.ScrollBy(-ctx.DeltaY * l.WheelStep)
	}
	l.Node.OnDrag = func(ctx DragContext) {
		// Drags are in screen space; undo the list's own scale.
		sy := l.Node.WorldTransform()[3]
		if sy == 0 {
			return
		}
		l.ScrollBy(-ctx.DeltaY / sy)
	}
	l.SetSize(w, h)
	return l
}

// Items returns the list items in order. The slice must not be modified.
func (l *ScrollList) Items() []*Node { return l.items }

// Len returns the number of items.
func (l *ScrollList) Len() int { return len(l.items) }

// ViewSize returns the viewport size.
func (l *ScrollList) ViewSize() (w, h float64) { return l.width, l.height }

// ContentHeight returns the stacked height of all items.
func (l *ScrollList) ContentHeight() float64 { return l.contentHeight }

// Offset returns how far the content is scrolled down.
func (l *ScrollList) Offset() float64 { return l.offset }

// MaxOffset returns the largest valid Offset.
func (l *ScrollList) MaxOffset() float64 {
	return math.Max(0, l.contentHeight-l.height)
}

// SetSize resizes the viewport and clamps the scroll offset.
func (l *ScrollList) SetSize(w, h float64) {
	l.width, l.height = w, h
	l.Node.Clip = &Rect{Width: w, Height: h}
	l.Node.HitShape = HitRect{Width: w, Height: h}
	l.ScrollTo(l.offset)
}

// AddItem appends n below the last item.
func (l *ScrollList) AddItem(n *Node) {
	l.items = append(l.items, n)
	l.content.AddChild(n)
	l.Relayout()
}

// Clear disposes every item and scrolls to the top.
func (l *ScrollList) Clear() {
	for _, n := range l.items {
		n.Dispose()
	}
	clear(l.items)
	l.items = l.items[:0]
	l.Relayout()
	l.ScrollToTop()
}

// Relayout restacks items from their current bounds so that each item's top
// edge sits Spacing below the previous one. Call it after resizing items.
func (l *ScrollList) Relayout() {
	y := l.Padding
	for i, n := range l.items {
		if i > 0 {
			y += l.Spacing
		}
		b := n.Bounds()
		n.SetPosition(n.X, y+n.Y-b.Y)
		y += b.Height
	}
	l.contentHeight = y + l.Padding
	l.ScrollTo(l.offset)
}

// ScrollBy moves the content by dy, clamped to the valid range.
func (l *ScrollList) ScrollBy(dy float64) {
	l.ScrollTo(l.offset + dy)
}

// ScrollTo sets the scroll offset, clamped to [0, MaxOffset].
func (l *ScrollList) ScrollTo(offset float64) {
	l.offset = math.Min(math.Max(offset, 0), l.MaxOffset())
	l.content.SetPosition(0, -l.offset)
}

// ScrollToTop resets the scroll offset.
func (l *ScrollList) ScrollToTop() {
	l.ScrollTo(0)
}
