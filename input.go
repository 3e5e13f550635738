package showcase

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// defaultDragDeadZone is how far a pointer may travel between press and
// release and still count as a tap.
const defaultDragDeadZone = 8.0

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// DragContext carries drag data. DeltaX/DeltaY are relative to the previous
// drag event.
type DragContext struct {
	Node    *Node
	GlobalX float64
	GlobalY float64
	DeltaX  float64
	DeltaY  float64
}

// pointerEvent is a single press/move/release sample, real or injected.
type pointerEvent struct {
	x, y    float64
	pressed bool
	wheelX  float64
	wheelY  float64
	wheel   bool
}

// inputState runs the tap/drag state machine for a single logical pointer.
// Mouse and the first active touch both drive it.
type inputState struct {
	hitBuf []*Node

	down         bool
	dragging     bool
	downNode     *Node
	startX       float64
	startY       float64
	lastX, lastY float64
	deadZone     float64

	injectQueue []pointerEvent

	// onTap observes every completed tap before OnClick dispatch.
	onTap func(n *Node, x, y float64)

	touchIDs    []ebiten.TouchID
	touch       ebiten.TouchID
	touchActive bool
}

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise the node's Size. Containers with no HitShape
// are not hit-testable.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	w, h := n.Size()
	if w == 0 && h == 0 {
		return false
	}
	return lx >= 0 && lx <= w && ly >= 0 && ly <= h
}

// collectInteractable walks the tree in painter order, appending interactable
// nodes to buf. Hidden subtrees and subtrees whose Clip excludes (x, y) are
// skipped.
func collectInteractable(n *Node, x, y float64, buf []*Node) []*Node {
	if !n.Visible {
		return buf
	}
	if n.Clip != nil {
		if lx, ly := n.WorldToLocal(x, y); !n.Clip.Contains(lx, ly) {
			return buf
		}
	}
	if n.Interactable {
		buf = append(buf, n)
	}
	for _, child := range n.children {
		buf = collectInteractable(child, x, y, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node under (x, y), or nil.
func (in *inputState) hitTest(root *Node, x, y float64) *Node {
	in.hitBuf = collectInteractable(root, x, y, in.hitBuf[:0])
	defer clear(in.hitBuf)

	// Reverse painter order: topmost visual node first.
	for i := len(in.hitBuf) - 1; i >= 0; i-- {
		n := in.hitBuf[i]
		lx, ly := n.WorldToLocal(x, y)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// process consumes one injected event if any are queued, otherwise polls
// mouse, touch and wheel state from ebiten.
func (in *inputState) process(root *Node) {
	if len(in.injectQueue) > 0 {
		evt := in.injectQueue[0]
		copy(in.injectQueue, in.injectQueue[1:])
		in.injectQueue = in.injectQueue[:len(in.injectQueue)-1]
		if evt.wheel {
			in.dispatchWheel(root, evt.x, evt.y, evt.wheelX, evt.wheelY)
		} else {
			in.pointer(root, evt.x, evt.y, evt.pressed)
		}
		return
	}

	if in.processTouch(root) {
		return
	}

	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		in.pointer(root, x, y, true)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		in.pointer(root, x, y, false)
	case in.down && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		in.pointer(root, x, y, true)
	}

	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		in.dispatchWheel(root, x, y, wx, wy)
	}
}

// processTouch tracks the first touch that went down. Returns true if a touch
// event was handled this frame.
func (in *inputState) processTouch(root *Node) bool {
	if in.touchActive {
		if inpututil.IsTouchJustReleased(in.touch) {
			tx, ty := inpututil.TouchPositionInPreviousTick(in.touch)
			in.touchActive = false
			in.pointer(root, float64(tx), float64(ty), false)
			return true
		}
		tx, ty := ebiten.TouchPosition(in.touch)
		in.pointer(root, float64(tx), float64(ty), true)
		return true
	}
	in.touchIDs = inpututil.AppendJustPressedTouchIDs(in.touchIDs[:0])
	if len(in.touchIDs) == 0 {
		return false
	}
	in.touch = in.touchIDs[0]
	in.touchActive = true
	tx, ty := ebiten.TouchPosition(in.touch)
	in.pointer(root, float64(tx), float64(ty), true)
	return true
}

// pointer advances the tap/drag state machine with one sample.
func (in *inputState) pointer(root *Node, x, y float64, pressed bool) {
	deadZone := in.deadZone
	if deadZone == 0 {
		deadZone = defaultDragDeadZone
	}

	switch {
	case pressed && !in.down:
		in.down = true
		in.dragging = false
		in.downNode = in.hitTest(root, x, y)
		in.startX, in.startY = x, y
		in.lastX, in.lastY = x, y

	case pressed && in.down:
		if x == in.lastX && y == in.lastY {
			return
		}
		if !in.dragging && math.Hypot(x-in.startX, y-in.startY) > deadZone {
			in.dragging = true
		}
		if in.dragging {
			fireDrag(in.downNode, DragContext{
				GlobalX: x, GlobalY: y,
				DeltaX: x - in.lastX, DeltaY: y - in.lastY,
			})
		}
		in.lastX, in.lastY = x, y

	case !pressed && in.down:
		target := in.hitTest(root, x, y)
		if !in.dragging && in.downNode != nil && target == in.downNode {
			if in.onTap != nil {
				in.onTap(target, x, y)
			}
			fireClick(target, x, y)
		}
		in.down = false
		in.dragging = false
		in.downNode = nil
	}
}

// fireClick invokes OnClick on n or its nearest ancestor that has one.
func fireClick(n *Node, x, y float64) {
	for ; n != nil; n = n.Parent {
		if n.OnClick != nil {
			lx, ly := n.WorldToLocal(x, y)
			n.OnClick(ClickContext{Node: n, GlobalX: x, GlobalY: y, LocalX: lx, LocalY: ly})
			return
		}
	}
}

// fireDrag invokes OnDrag on n or its nearest ancestor that has one.
func fireDrag(n *Node, ctx DragContext) {
	for ; n != nil; n = n.Parent {
		if n.OnDrag != nil {
			ctx.Node = n
			n.OnDrag(ctx)
			return
		}
	}
}

// dispatchWheel routes a wheel event to the node under the cursor, bubbling
// up to the first ancestor with OnWheel.
func (in *inputState) dispatchWheel(root *Node, x, y, dx, dy float64) {
	for n := in.hitTest(root, x, y); n != nil; n = n.Parent {
		if n.OnWheel != nil {
			n.OnWheel(WheelContext{Node: n, GlobalX: x, GlobalY: y, DeltaX: dx, DeltaY: dy})
			return
		}
	}
}

// --- Synthetic input ---

// injectPress queues a press at screen coordinates; the queue is drained one
// event per frame.
func (in *inputState) injectPress(x, y float64) {
	in.injectQueue = append(in.injectQueue, pointerEvent{x: x, y: y, pressed: true})
}

func (in *inputState) injectRelease(x, y float64) {
	in.injectQueue = append(in.injectQueue, pointerEvent{x: x, y: y})
}

func (in *inputState) injectWheel(x, y, dx, dy float64) {
	in.injectQueue = append(in.injectQueue, pointerEvent{x: x, y: y, wheel: true, wheelX: dx, wheelY: dy})
}
