package showcase

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// renderer walks a node tree depth-first and draws every visible sprite,
// polygon and text node straight to the target in tree order.
type renderer struct {
	vertBuf   []ebiten.Vertex
	drawCalls int
	imgOp     ebiten.DrawImageOptions
	triOp     ebiten.DrawTrianglesOptions
}

// render updates world transforms and draws root's subtree onto target.
func (r *renderer) render(target *ebiten.Image, root *Node) {
	r.drawCalls = 0
	r.traverse(target, root, identityTransform, 1, false)
}

func (r *renderer) traverse(target *ebiten.Image, n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool) {
	if !n.Visible {
		if parentRecomputed {
			n.transformDirty = true
		}
		return
	}

	recompute := n.transformDirty || parentRecomputed
	if recompute {
		local := computeLocalTransform(n)
		n.worldTransform = multiplyAffine(parentTransform, local)
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}
	if n.worldAlpha <= 0 {
		// Children were skipped; recompute them once the node shows again.
		if recompute {
			n.transformDirty = true
		}
		return
	}

	if n.Clip != nil {
		clip := clipBounds(n.worldTransform, *n.Clip).Intersect(target.Bounds())
		if clip.Empty() {
			return
		}
		target = target.SubImage(clip).(*ebiten.Image)
	}

	switch n.Type {
	case NodeTypeSprite:
		r.drawSprite(target, n)
	case NodeTypePolygon:
		r.drawPolygon(target, n)
	case NodeTypeText:
		r.drawText(target, n)
	}

	for _, child := range n.children {
		r.traverse(target, child, n.worldTransform, n.worldAlpha, recompute)
	}
}

// clipBounds returns the integer screen rectangle covering the transformed
// local rect.
func clipBounds(m [6]float64, rc Rect) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	corners := [4][2]float64{
		{rc.X, rc.Y}, {rc.X + rc.Width, rc.Y},
		{rc.X, rc.Y + rc.Height}, {rc.X + rc.Width, rc.Y + rc.Height},
	}
	for _, c := range corners {
		x, y := transformPoint(m, c[0], c[1])
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}
	return image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
}

// geoM converts an affine matrix into an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// tint returns the node color with world alpha applied.
func tint(n *Node) Color {
	return Color{n.Color.R, n.Color.G, n.Color.B, n.Color.A * n.worldAlpha}
}

func (r *renderer) drawSprite(target *ebiten.Image, n *Node) {
	tex := n.Texture
	if tex == nil || tex.Image == nil {
		return
	}
	op := &r.imgOp
	op.GeoM.Reset()
	// Scale the source image to the texture's logical size.
	b := tex.Image.Bounds()
	if b.Dx() > 0 && b.Dy() > 0 && (float64(b.Dx()) != tex.Width || float64(b.Dy()) != tex.Height) {
		op.GeoM.Scale(tex.Width/float64(b.Dx()), tex.Height/float64(b.Dy()))
	}
	if tex.FlipX {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(tex.Width, 0)
	}
	if tex.FlipY {
		op.GeoM.Scale(1, -1)
		op.GeoM.Translate(0, tex.Height)
	}
	world := geoM(n.worldTransform)
	op.GeoM.Concat(world)

	c := tint(n)
	op.ColorScale.Reset()
	op.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
	op.Blend = n.BlendMode.EbitenBlend()
	op.Filter = ebiten.FilterLinear
	target.DrawImage(tex.Image, op)
	r.drawCalls++
}

func (r *renderer) drawPolygon(target *ebiten.Image, n *Node) {
	if len(n.Vertices) == 0 || len(n.Indices) == 0 {
		return
	}
	if cap(r.vertBuf) < len(n.Vertices) {
		r.vertBuf = make([]ebiten.Vertex, len(n.Vertices))
	}
	dst := r.vertBuf[:len(n.Vertices)]
	transformVertices(n.Vertices, dst, n.worldTransform, tint(n))
	r.triOp.Blend = n.BlendMode.EbitenBlend()
	target.DrawTriangles(dst, n.Indices, ensureWhitePixel(), &r.triOp)
	r.drawCalls++
}

func (r *renderer) drawText(target *ebiten.Image, n *Node) {
	tb := n.TextBlock
	if tb == nil || tb.Font == nil {
		return
	}
	face := tb.Font.Face()
	if face == nil {
		return
	}
	lines := tb.layout()
	lh := tb.lineHeight()
	c := tint(n)
	c = Color{c.R * tb.Color.R, c.G * tb.Color.G, c.B * tb.Color.B, c.A * tb.Color.A}
	world := geoM(n.worldTransform)

	for i, l := range lines {
		if l.end == l.start {
			continue
		}
		op := &text.DrawOptions{}
		var x float64
		switch tb.Align {
		case TextAlignCenter:
			x = (tb.measuredW - l.width) / 2
		case TextAlignRight:
			x = tb.measuredW - l.width
		}
		op.GeoM.Translate(x, float64(i)*lh)
		op.GeoM.Concat(world)
		op.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
		op.Blend = n.BlendMode.EbitenBlend()
		op.Filter = ebiten.FilterLinear
		text.Draw(target, tb.Content[l.start:l.end], face, op)
		r.drawCalls++
	}
}
