package messages

import (
	"math"

	"github.com/phanxgames/showcase"
)

const (
	minBoxWidth   = 350.0
	border        = 3.0
	cornerRadius  = 16.0
	avatarSize    = 80.0
	nameHeight    = 20.0
	textPadding   = 16.0
	arcSegments   = 8
	nameTextScale = 0.9
)

var (
	borderColor   = showcase.ColorHex(0x00ffff)
	avatarBgColor = showcase.ColorHex(0x888888)
	nameBgColor   = showcase.ColorHex(0xffff00)
	textColor     = showcase.ColorHex(0x000000)
	bubbleColors  = map[Side]showcase.Color{SideLeft: showcase.ColorHex(0x00aa00), SideRight: showcase.ColorHex(0x00ff00)}
)

// MessageBox is one chat bubble: an avatar column with a name plate and a
// rounded bubble holding the message text. Left bubbles put the avatar on the
// left and round their right corners; right bubbles mirror that.
type MessageBox struct {
	Node *showcase.Node

	side   Side
	frame  *showcase.Node
	bubble *showcase.Node
	avatar *showcase.Node
	text   *showcase.RichText

	width, height float64
}

// NewMessageBox builds a bubble for person's message and lays it out at width.
func NewMessageBox(person, message string, side Side, avatarTex *showcase.Texture,
	emojis map[string]*showcase.Texture, font showcase.Font, width float64) *MessageBox {
	if side != SideRight {
		side = SideLeft
	}
	b := &MessageBox{
		Node:   showcase.NewContainer("message-" + person),
		side:   side,
		frame:  showcase.NewPolygon("bubble-border", nil),
		bubble: showcase.NewPolygon("bubble", nil),
		avatar: showcase.NewContainer("avatar"),
	}
	b.frame.Color = borderColor
	b.bubble.Color = bubbleColors[side]
	b.bubble.SetPosition(border, border)

	columnH := avatarSize + nameHeight + border
	b.avatar.AddChild(showcase.NewRect("avatar-border", avatarSize+2*border, columnH+2*border, borderColor))
	b.avatar.ChildAt(0).SetPosition(-border, -border)
	b.avatar.AddChild(showcase.NewRect("avatar-bg", avatarSize, columnH, avatarBgColor))

	pic := showcase.NewSprite("avatar-picture", avatarTex)
	pic.SetAnchor(0.5, 0.5)
	pic.SetPosition(avatarSize/2, avatarSize/2)
	if w, h := pic.Size(); w > 0 && h > 0 {
		k := math.Min(avatarSize/w, avatarSize/h)
		pic.SetScale(k, k)
	}
	b.avatar.AddChild(pic)

	plateBorder := showcase.NewRect("name-border", avatarSize+2*border, nameHeight+2*border, borderColor)
	plateBorder.SetPosition(-border, avatarSize)
	b.avatar.AddChild(plateBorder)
	plate := showcase.NewRect("name-bg", avatarSize, nameHeight, nameBgColor)
	plate.SetPosition(0, avatarSize+border)
	b.avatar.AddChild(plate)

	name := showcase.NewText("name", person, font)
	name.TextBlock.Color = textColor
	name.SetAnchor(0.5, 0.5)
	name.SetPosition(avatarSize/2, avatarSize+border+nameHeight/2)
	if w, h := name.Size(); w > 0 && h > 0 {
		k := nameTextScale * math.Min(avatarSize/w, nameHeight/h)
		name.SetScale(k, k)
	}
	b.avatar.AddChild(name)

	b.text = showcase.NewRichText("message", message, showcase.RichTextStyle{
		Font:      font,
		Color:     textColor,
		Icons:     emojis,
		WrapWidth: minBoxWidth,
	})

	b.Node.AddChild(b.frame)
	b.Node.AddChild(b.bubble)
	b.Node.AddChild(b.avatar)
	b.Node.AddChild(b.text.Node)

	b.SetWidth(width)
	return b
}

// Side returns which edge the bubble hugs.
func (b *MessageBox) Side() Side { return b.side }

// Text returns the message layout.
func (b *MessageBox) Text() *showcase.RichText { return b.text }

// Size returns the unscaled box size. The node is scaled down when the
// requested width is below the minimum.
func (b *MessageBox) Size() (w, h float64) { return b.width, b.height }

// SetWidth lays the box out for the given width, rewrapping the message.
func (b *MessageBox) SetWidth(width float64) {
	w := math.Max(width, minBoxWidth)
	k := 1.0
	if width < minBoxWidth && width > 0 {
		k = width / minBoxWidth
	}
	b.Node.SetScale(k, k)

	b.text.SetWrapWidth(w - 3*border - 2*textPadding - avatarSize)
	_, textH := b.text.Size()
	h := math.Max(3*border+avatarSize+nameHeight, 2*border+2*textPadding+textH)

	if b.side == SideLeft {
		b.avatar.SetPosition(border, border)
		b.text.Node.SetPosition(2*border+avatarSize+textPadding, border+textPadding)
	} else {
		b.avatar.SetPosition(w-border-avatarSize, border)
		b.text.Node.SetPosition(border+textPadding, border+textPadding)
	}
	showcase.SetPolygonPoints(b.frame, bubblePoints(w, h, cornerRadius+border, b.side))
	showcase.SetPolygonPoints(b.bubble, bubblePoints(w-2*border, h-2*border, cornerRadius, b.side))
	b.width, b.height = w, h
}

// Destroy releases the pooled text nodes and the box.
func (b *MessageBox) Destroy() {
	b.text.Destroy()
	b.Node.Dispose()
}

// bubblePoints outlines a w x h box whose corners away from the avatar are
// rounded.
func bubblePoints(w, h, r float64, side Side) []showcase.Vec2 {
	r = math.Min(r, math.Min(w, h)/2)
	pts := make([]showcase.Vec2, 0, 2*(arcSegments+1)+2)
	if side == SideLeft {
		pts = append(pts, showcase.Vec2{X: 0, Y: 0})
		pts = showcase.ArcPoints(pts, w-r, r, r, -math.Pi/2, 0, arcSegments)
		pts = showcase.ArcPoints(pts, w-r, h-r, r, 0, math.Pi/2, arcSegments)
		return append(pts, showcase.Vec2{X: 0, Y: h})
	}
	pts = append(pts, showcase.Vec2{X: w, Y: 0}, showcase.Vec2{X: w, Y: h})
	pts = showcase.ArcPoints(pts, r, h-r, r, math.Pi/2, math.Pi, arcSegments)
	return showcase.ArcPoints(pts, r, r, r, math.Pi, 3*math.Pi/2, arcSegments)
}
