package showcase

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// computeLocalTransform computes the local affine matrix from the node's
// transform properties. Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Translate(-PivotX, -PivotY) -> Scale -> Rotate -> Translate(X, Y)
func computeLocalTransform(n *Node) [6]float64 {
	sx := n.ScaleX
	sy := n.ScaleY

	sin, cos := math.Sincos(n.Rotation)

	preTx := -n.PivotX * sx
	preTy := -n.PivotY * sy

	ra := cos * sx
	rb := sin * sx
	rc := -sin * sy
	rd := cos * sy
	rtx := cos*preTx - sin*preTy
	rty := sin*preTx + cos*preTy

	return [6]float64{ra, rb, rc, rd, rtx + n.X, rty + n.Y}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ≈ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// updateWorldTransform recomputes a node's worldTransform and worldAlpha.
// parentRecomputed indicates whether the parent was recomputed this frame,
// which forces recomputation of this node even if it's not dirty.
func updateWorldTransform(n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		local := computeLocalTransform(n)
		n.worldTransform = multiplyAffine(parentTransform, local)
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}

	for _, child := range n.children {
		updateWorldTransform(child, n.worldTransform, n.worldAlpha, recompute)
	}
}

// WorldTransform walks the ancestor chain and returns the node's current
// world matrix. Unlike the cached matrix used for drawing, it is always in
// sync with fields written since the last frame.
func (n *Node) WorldTransform() [6]float64 {
	local := computeLocalTransform(n)
	if n.Parent == nil {
		return local
	}
	return multiplyAffine(n.Parent.WorldTransform(), local)
}

// setFromMatrix decomposes an affine matrix (no skew) into X, Y, Rotation and
// scale, honoring the node's pivot.
func (n *Node) setFromMatrix(m [6]float64) {
	sx := math.Hypot(m[0], m[1])
	rot := math.Atan2(m[1], m[0])
	sy := 0.0
	if sx != 0 {
		sy = (m[0]*m[3] - m[2]*m[1]) / sx
	}
	n.ScaleX = sx
	n.ScaleY = sy
	n.Rotation = rot
	// Translation carries -RS*pivot; add it back to recover X/Y.
	n.X = m[4] + m[0]*n.PivotX + m[2]*n.PivotY
	n.Y = m[5] + m[1]*n.PivotX + m[3]*n.PivotY
	n.transformDirty = true
}

// --- Transform property setters ---

// SetPosition sets the node's local X and Y and marks it dirty.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
	n.transformDirty = true
}

// SetScale sets the node's ScaleX and ScaleY and marks it dirty.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX = sx
	n.ScaleY = sy
	n.transformDirty = true
}

// SetRotation sets the node's rotation (in radians) and marks it dirty.
func (n *Node) SetRotation(r float64) {
	n.Rotation = r
	n.transformDirty = true
}

// SetPivot sets the node's PivotX and PivotY and marks it dirty.
func (n *Node) SetPivot(px, py float64) {
	n.PivotX = px
	n.PivotY = py
	n.transformDirty = true
}

// SetAlpha sets the node's alpha and marks it dirty.
func (n *Node) SetAlpha(a float64) {
	n.Alpha = a
	n.transformDirty = true
}

// MarkDirty marks the node's transform as dirty, forcing recomputation
// on the next frame. Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// --- Coordinate conversion ---

// WorldToLocal converts a world-space point to this node's local coordinate space.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	inv := invertAffine(n.WorldTransform())
	return transformPoint(inv, wx, wy)
}

// LocalToWorld converts a local-space point to world-space.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return transformPoint(n.WorldTransform(), lx, ly)
}

// ConvertPoint maps a point from from's local space into to's local space.
func ConvertPoint(from, to *Node, x, y float64) (float64, float64) {
	wx, wy := from.LocalToWorld(x, y)
	return to.WorldToLocal(wx, wy)
}

// --- Bounds ---

// Bounds returns the axis-aligned box covering n and its visible descendants,
// in the coordinate space of n's parent. Containers contribute only through
// their children. An empty subtree yields a zero Rect at the node's position.
func (n *Node) Bounds() Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	accumulateBounds(n, computeLocalTransform(n), &minX, &minY, &maxX, &maxY)
	if minX > maxX {
		return Rect{X: n.X, Y: n.Y}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

func accumulateBounds(n *Node, m [6]float64, minX, minY, maxX, maxY *float64) {
	if !n.Visible {
		return
	}
	if n.Type != NodeTypeContainer {
		var ox, oy float64
		if n.Type == NodeTypePolygon {
			ox, oy = n.polyAABB.X, n.polyAABB.Y
		}
		w, h := n.Size()
		if w > 0 || h > 0 {
			for _, c := range [4][2]float64{{ox, oy}, {w, oy}, {ox, h}, {w, h}} {
				x, y := transformPoint(m, c[0], c[1])
				*minX = math.Min(*minX, x)
				*minY = math.Min(*minY, y)
				*maxX = math.Max(*maxX, x)
				*maxY = math.Max(*maxY, y)
			}
		}
	}
	for _, child := range n.children {
		accumulateBounds(child, multiplyAffine(m, computeLocalTransform(child)), minX, minY, maxX, maxY)
	}
}
