package showcase

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Polygon ---

// NewPolygon creates an untextured convex polygon from the given vertices.
// The polygon is drawn with a shared 1x1 white pixel image; color comes from
// the node's Color field.
func NewPolygon(name string, points []Vec2) *Node {
	n := &Node{Name: name, Type: NodeTypePolygon}
	nodeDefaults(n)
	SetPolygonPoints(n, points)
	return n
}

// NewRect creates a filled rectangle polygon with its top-left at the origin.
func NewRect(name string, w, h float64, c Color) *Node {
	n := NewPolygon(name, RectPoints(w, h))
	n.Color = c
	return n
}

// SetPolygonPoints replaces the polygon's vertices, reusing backing arrays
// when possible. Uses fan triangulation (convex polygons).
func SetPolygonPoints(n *Node, points []Vec2) {
	verts, inds := buildPolygonFan(points)

	if cap(n.Vertices) >= len(verts) {
		n.Vertices = n.Vertices[:len(verts)]
		copy(n.Vertices, verts)
	} else {
		n.Vertices = verts
	}
	if cap(n.Indices) >= len(inds) {
		n.Indices = n.Indices[:len(inds)]
		copy(n.Indices, inds)
	} else {
		n.Indices = inds
	}
	n.polyAABB = computeMeshAABB(n.Vertices)
}

// RectPoints returns the corners of a w x h rectangle at the origin.
func RectPoints(w, h float64) []Vec2 {
	return []Vec2{{0, 0}, {w, 0}, {w, h}, {0, h}}
}

// ArcPoints appends points along a circular arc from startAngle to endAngle
// (radians, clockwise in screen space) centered at (cx, cy).
func ArcPoints(dst []Vec2, cx, cy, radius, startAngle, endAngle float64, segments int) []Vec2 {
	if segments < 1 {
		segments = 1
	}
	step := (endAngle - startAngle) / float64(segments)
	for i := 0; i <= segments; i++ {
		sin, cos := math.Sincos(startAngle + step*float64(i))
		dst = append(dst, Vec2{cx + cos*radius, cy + sin*radius})
	}
	return dst
}

// RoundedRectPoints returns the outline of a w x h rectangle whose corners are
// quarter circles of the given radius. The radius is clamped to half the
// shorter side.
func RoundedRectPoints(w, h, radius float64, segments int) []Vec2 {
	radius = math.Min(radius, math.Min(w, h)/2)
	if radius <= 0 {
		return RectPoints(w, h)
	}
	pts := make([]Vec2, 0, 4*(segments+1))
	pts = ArcPoints(pts, w-radius, radius, radius, -math.Pi/2, 0, segments)
	pts = ArcPoints(pts, w-radius, h-radius, radius, 0, math.Pi/2, segments)
	pts = ArcPoints(pts, radius, h-radius, radius, math.Pi/2, math.Pi, segments)
	pts = ArcPoints(pts, radius, radius, radius, math.Pi, 3*math.Pi/2, segments)
	return pts
}

// buildPolygonFan generates vertices and indices for a fan-triangulated polygon.
// N vertices, 3*(N-2) indices.
func buildPolygonFan(points []Vec2) ([]ebiten.Vertex, []uint16) {
	n := len(points)
	if n < 3 {
		return nil, nil
	}

	verts := make([]ebiten.Vertex, n)
	inds := make([]uint16, (n-2)*3)

	for i, p := range points {
		verts[i] = ebiten.Vertex{
			DstX:   float32(p.X),
			DstY:   float32(p.Y),
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		}
	}

	// Fan triangulation: vertex 0 is the hub.
	for i := 0; i < n-2; i++ {
		inds[i*3+0] = 0
		inds[i*3+1] = uint16(i + 1)
		inds[i*3+2] = uint16(i + 2)
	}

	return verts, inds
}

// transformVertices applies an affine transform and color tint to src vertices,
// writing the result into dst. dst must be at least len(src) in length.
//
// Color components are premultiplied by the tint's alpha, which already has
// worldAlpha baked in.
func transformVertices(src, dst []ebiten.Vertex, transform [6]float64, tint Color) {
	a, b, c, d, tx, ty := transform[0], transform[1], transform[2], transform[3], transform[4], transform[5]
	cr := float32(tint.R)
	cg := float32(tint.G)
	cb := float32(tint.B)
	ca := float32(tint.A)

	for i := range src {
		s := &src[i]
		ox := float64(s.DstX)
		oy := float64(s.DstY)
		dst[i] = ebiten.Vertex{
			DstX:   float32(a*ox + c*oy + tx),
			DstY:   float32(b*ox + d*oy + ty),
			SrcX:   s.SrcX,
			SrcY:   s.SrcY,
			ColorR: s.ColorR * cr * ca,
			ColorG: s.ColorG * cg * ca,
			ColorB: s.ColorB * cb * ca,
			ColorA: s.ColorA * ca,
		}
	}
}

// computeMeshAABB scans DstX/DstY of the given vertices and returns
// the axis-aligned bounding box in local space.
func computeMeshAABB(verts []ebiten.Vertex) Rect {
	if len(verts) == 0 {
		return Rect{}
	}
	minX := float64(verts[0].DstX)
	minY := float64(verts[0].DstY)
	maxX := minX
	maxY := minY
	for i := 1; i < len(verts); i++ {
		x := float64(verts[i].DstX)
		y := float64(verts[i].DstY)
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// --- White pixel singleton (no sync.Once — the frame loop is single-threaded) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// WhiteTexture returns a texture backed by the shared white pixel, scaled by
// sprites to draw solid rectangles (for example placeholder avatars).
func WhiteTexture() *Texture {
	return NewTexture("white", ensureWhitePixel())
}
