package showcase

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// HitShape is used for custom hit testing regions in local coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// ClickContext carries tap/click event data.
type ClickContext struct {
	Node    *Node
	GlobalX float64
	GlobalY float64
	LocalX  float64
	LocalY  float64
}

// WheelContext carries mouse wheel event data.
type WheelContext struct {
	Node    *Node
	GlobalX float64
	GlobalY float64
	DeltaX  float64
	DeltaY  float64
}

// --- ID counter ---

// nodeIDCounter is a plain counter (no atomic — the frame loop is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is the fundamental scene graph element. A single flat struct is used for
// all node types to avoid interface dispatch on the hot path.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	PivotX   float64
	PivotY   float64

	// Computed during traversal
	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	// Visibility & interaction
	Alpha        float64
	Visible      bool
	Interactable bool

	// Metadata
	UserData any

	// Sprite fields (NodeTypeSprite)
	Texture   *Texture
	BlendMode BlendMode
	Color     Color

	// Polygon fields (NodeTypePolygon)
	Vertices []ebiten.Vertex
	Indices  []uint16
	polyAABB Rect

	// Text fields (NodeTypeText)
	TextBlock *TextBlock

	// Clip restricts drawing of this node's subtree to a local-space rectangle.
	Clip *Rect

	// Hit testing
	HitShape HitShape

	// Per-node callbacks (nil by default)
	OnClick  func(ClickContext)
	OnDrag   func(DragContext)
	OnWheel  func(WheelContext)
	OnUpdate func(deltaMS float64)

	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.transformDirty = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewSprite creates a sprite node that renders a texture. A nil texture
// renders nothing but still participates in layout and hit testing.
func NewSprite(name string, tex *Texture) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite, Texture: tex}
	nodeDefaults(n)
	return n
}

// NewText creates a text node with the given content and font.
func NewText(name string, content string, font Font) *Node {
	n := &Node{
		Name: name,
		Type: NodeTypeText,
		TextBlock: &TextBlock{
			Content:     content,
			Font:        font,
			Color:       ColorWhite,
			layoutDirty: true,
		},
	}
	nodeDefaults(n)
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("showcase: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("showcase: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("showcase: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("showcase: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	if index < 0 || index > len(n.children) {
		panic("showcase: child index out of range")
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	markSubtreeDirty(child)
}

// ReparentChild moves child under n while keeping its on-screen placement:
// the child's local position, rotation and scale are recomputed so that its
// world transform is unchanged.
func (n *Node) ReparentChild(child *Node) {
	world := child.WorldTransform()
	n.AddChild(child)
	local := multiplyAffine(invertAffine(n.WorldTransform()), world)
	child.setFromMatrix(local)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.Parent != n {
		panic("showcase: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		markSubtreeDirty(child)
	}
	clear(n.children)
	n.children = n.children[:0]
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// LastChild returns the last (front-most) child, or nil when empty.
func (n *Node) LastChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[len(n.children)-1]
}

// --- Size ---

// Size returns the node's unscaled local width and height. Sprites report
// their texture size, text nodes their measured block, polygons their
// bounding box width/height. Containers report zero.
func (n *Node) Size() (w, h float64) {
	switch n.Type {
	case NodeTypeSprite:
		if n.Texture != nil {
			return n.Texture.Width, n.Texture.Height
		}
	case NodeTypeText:
		if n.TextBlock != nil {
			return n.TextBlock.Measure()
		}
	case NodeTypePolygon:
		return n.polyAABB.X + n.polyAABB.Width, n.polyAABB.Y + n.polyAABB.Height
	}
	return 0, 0
}

// ScaledSize returns Size multiplied by the node's own scale.
func (n *Node) ScaledSize() (w, h float64) {
	w, h = n.Size()
	return w * n.ScaleX, h * n.ScaleY
}

// SetAnchor sets the pivot as a fraction of the node's current size.
func (n *Node) SetAnchor(ax, ay float64) {
	w, h := n.Size()
	n.SetPivot(ax*w, ay*h)
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.HitShape = nil
	n.Texture = nil
	n.TextBlock = nil
	n.Vertices = nil
	n.Indices = nil
	n.Clip = nil
	n.UserData = nil
	n.OnClick = nil
	n.OnDrag = nil
	n.OnWheel = nil
	n.OnUpdate = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}

// updateNodeCallbacks runs OnUpdate for every visible node in the subtree.
func updateNodeCallbacks(n *Node, deltaMS float64) {
	if !n.Visible {
		return
	}
	if n.OnUpdate != nil {
		n.OnUpdate(deltaMS)
	}
	for i := 0; i < len(n.children); i++ {
		updateNodeCallbacks(n.children[i], deltaMS)
	}
}
