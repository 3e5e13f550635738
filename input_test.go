package showcase

import "testing"

func drain(in *inputState, root *Node) {
	for len(in.injectQueue) > 0 {
		in.process(root)
	}
}

func newHitSprite(name string, x, y, w, h float64) *Node {
	n := NewSprite(name, sizedTexture(name, w, h))
	n.SetPosition(x, y)
	n.Interactable = true
	return n
}

func TestInput_TapFiresClick(t *testing.T) {
	root := NewContainer("root")
	btn := newHitSprite("btn", 100, 100, 50, 20)
	root.AddChild(btn)

	var got ClickContext
	clicks := 0
	btn.OnClick = func(ctx ClickContext) { clicks++; got = ctx }

	var in inputState
	in.injectPress(110, 105)
	in.injectRelease(112, 106)
	drain(&in, root)

	if clicks != 1 {
		t.Fatalf("clicks = %d, want 1", clicks)
	}
	if got.LocalX != 12 || got.LocalY != 6 || got.GlobalX != 112 {
		t.Errorf("click ctx = %+v", got)
	}
}

func TestInput_ReleaseOutsideNoClick(t *testing.T) {
	root := NewContainer("root")
	btn := newHitSprite("btn", 0, 0, 50, 20)
	root.AddChild(btn)
	clicks := 0
	btn.OnClick = func(ClickContext) { clicks++ }

	var in inputState
	in.deadZone = 1000 // only the target check matters here
	in.injectPress(10, 10)
	in.injectRelease(300, 300)
	drain(&in, root)

	if clicks != 0 {
		t.Errorf("clicks = %d, want 0", clicks)
	}
}

func TestInput_DragSuppressesClick(t *testing.T) {
	root := NewContainer("root")
	list := newHitSprite("list", 0, 0, 200, 200)
	root.AddChild(list)

	clicks := 0
	var deltas []float64
	list.OnClick = func(ClickContext) { clicks++ }
	list.OnDrag = func(ctx DragContext) { deltas = append(deltas, ctx.DeltaY) }

	var in inputState
	in.injectPress(50, 50)
	in.injectPress(50, 55) // inside the dead zone
	in.injectPress(50, 70) // starts dragging
	in.injectPress(50, 80)
	in.injectRelease(50, 80)
	drain(&in, root)

	if clicks != 0 {
		t.Errorf("clicks = %d, want 0 after drag", clicks)
	}
	if len(deltas) != 2 || deltas[0] != 15 || deltas[1] != 10 {
		t.Errorf("drag deltas = %v, want [15 10]", deltas)
	}
}

func TestInput_ClickBubblesToAncestor(t *testing.T) {
	root := NewContainer("root")
	box := NewContainer("box")
	root.AddChild(box)
	label := newHitSprite("label", 0, 0, 40, 40)
	box.AddChild(label)

	var handler *Node
	box.OnClick = func(ctx ClickContext) { handler = ctx.Node }

	var in inputState
	in.injectPress(5, 5)
	in.injectRelease(5, 5)
	drain(&in, root)

	if handler != box {
		t.Error("click did not bubble to the ancestor handler")
	}
}

func TestInput_TopmostWins(t *testing.T) {
	root := NewContainer("root")
	below := newHitSprite("below", 0, 0, 100, 100)
	above := newHitSprite("above", 0, 0, 100, 100)
	root.AddChild(below)
	root.AddChild(above)

	var hit string
	below.OnClick = func(ClickContext) { hit = "below" }
	above.OnClick = func(ClickContext) { hit = "above" }

	var in inputState
	in.injectPress(50, 50)
	in.injectRelease(50, 50)
	drain(&in, root)

	if hit != "above" {
		t.Errorf("hit = %q, want above", hit)
	}
}

func TestInput_HiddenSubtreeSkipped(t *testing.T) {
	root := NewContainer("root")
	scene := NewContainer("scene")
	root.AddChild(scene)
	btn := newHitSprite("btn", 0, 0, 100, 100)
	scene.AddChild(btn)
	clicks := 0
	btn.OnClick = func(ClickContext) { clicks++ }
	scene.Visible = false

	var in inputState
	in.injectPress(50, 50)
	in.injectRelease(50, 50)
	drain(&in, root)

	if clicks != 0 {
		t.Error("hidden node received a click")
	}
}

func TestInput_ClipExcludesHiddenPart(t *testing.T) {
	root := NewContainer("root")
	view := NewContainer("view")
	view.SetPosition(0, 100)
	view.Clip = &Rect{Width: 100, Height: 50}
	root.AddChild(view)
	// Spans local y 40..80; only 40..50 is inside the clip.
	item := newHitSprite("item", 0, 40, 100, 40)
	view.AddChild(item)
	clicks := 0
	item.OnClick = func(ClickContext) { clicks++ }

	tests := []struct {
		x, y float64
		want int
	}{
		{50, 170, 0}, // drawn outside the viewport
		{50, 145, 1},
	}
	for _, tt := range tests {
		clicks = 0
		var in inputState
		in.injectPress(tt.x, tt.y)
		in.injectRelease(tt.x, tt.y)
		drain(&in, root)
		if clicks != tt.want {
			t.Errorf("tap at (%v, %v): clicks = %d, want %v", tt.x, tt.y, clicks, tt.want)
		}
	}
}

func TestInput_NonInteractableParentStillTraversed(t *testing.T) {
	root := NewContainer("root")
	panel := NewContainer("panel")
	panel.SetPosition(100, 0)
	root.AddChild(panel)
	btn := newHitSprite("btn", 0, 0, 10, 10)
	panel.AddChild(btn)
	clicks := 0
	btn.OnClick = func(ClickContext) { clicks++ }

	var in inputState
	in.injectPress(105, 5)
	in.injectRelease(105, 5)
	drain(&in, root)

	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestInput_HitShapes(t *testing.T) {
	tests := []struct {
		name  string
		shape HitShape
		x, y  float64
		want  bool
	}{
		{"rect inside", HitRect{X: 0, Y: 0, Width: 10, Height: 10}, 5, 5, true},
		{"rect edge", HitRect{X: 0, Y: 0, Width: 10, Height: 10}, 10, 10, true},
		{"rect outside", HitRect{X: 0, Y: 0, Width: 10, Height: 10}, 11, 5, false},
		{"circle inside", HitCircle{CenterX: 5, CenterY: 5, Radius: 5}, 7, 7, true},
		{"circle outside", HitCircle{CenterX: 5, CenterY: 5, Radius: 5}, 9, 9, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewContainer("n")
			n.HitShape = tt.shape
			if got := nodeContainsLocal(n, tt.x, tt.y); got != tt.want {
				t.Errorf("contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestInput_WheelBubbles(t *testing.T) {
	root := NewContainer("root")
	list := NewContainer("list")
	root.AddChild(list)
	item := newHitSprite("item", 0, 0, 100, 30)
	list.AddChild(item)

	var got WheelContext
	list.OnWheel = func(ctx WheelContext) { got = ctx }

	var in inputState
	in.injectWheel(10, 10, 0, -2)
	drain(&in, root)

	if got.Node != list || got.DeltaY != -2 {
		t.Errorf("wheel ctx = %+v", got)
	}
}

func TestInput_QueueDrainsOnePerFrame(t *testing.T) {
	root := NewContainer("root")
	var in inputState
	in.injectPress(1, 1)
	in.injectRelease(1, 1)
	in.process(root)
	if len(in.injectQueue) != 1 {
		t.Errorf("queue len = %d after one frame, want 1", len(in.injectQueue))
	}
}

func TestApp_InjectDrag(t *testing.T) {
	app := newTestApp()
	app.InjectDrag(10, 10, 200, 200, 4)
	if app.PendingInput() != 4 {
		t.Fatalf("queued = %d, want 4", app.PendingInput())
	}
	q := app.input.injectQueue
	if !q[0].pressed || q[3].pressed {
		t.Error("drag should start with a press and end with a release")
	}
	if q[3].x != 200 || q[3].y != 200 {
		t.Errorf("release at (%v, %v)", q[3].x, q[3].y)
	}

	app2 := newTestApp()
	app2.InjectDrag(0, 0, 10, 10, 0)
	if app2.PendingInput() != 2 {
		t.Errorf("min frames drag queued %d, want 2", app2.PendingInput())
	}
}
