package showcase

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestLinearLerp(t *testing.T) {
	l := LinearLerp(10, 20)
	tests := []struct{ in, want float64 }{{0, 10}, {0.5, 15}, {1, 20}}
	for _, tt := range tests {
		if got := l(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("lerp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParabolicLerpPassesThroughPeak(t *testing.T) {
	tests := []struct {
		start, end, peak float64
	}{
		{0, 0, 100},
		{0, 0, -100},
		{-50, 30, -200},
		{5, 5, 5},
	}
	for _, tt := range tests {
		l := ParabolicLerp(tt.start, tt.end, tt.peak)
		if got := l(0); math.Abs(got-tt.start) > 1e-9 {
			t.Errorf("f(0) = %v, want %v", got, tt.start)
		}
		if got := l(0.5); math.Abs(got-tt.peak) > 1e-9 {
			t.Errorf("f(0.5) = %v, want %v", got, tt.peak)
		}
		if got := l(1); math.Abs(got-tt.end) > 1e-9 {
			t.Errorf("f(1) = %v, want %v", got, tt.end)
		}
	}
}

func TestTweenCompletes(t *testing.T) {
	tl := NewTimeline()
	tw := tl.NewTween(100, nil)
	var last float64
	completed := 0
	tw.OnUpdate = func(p float64) { last = p }
	tw.OnComplete = func() { completed++ }
	tw.Start(0)

	tl.Update(50)
	if math.Abs(last-0.5) > 1e-4 {
		t.Errorf("progress at 50ms = %v, want 0.5", last)
	}
	tl.Update(150)
	if last != 1 {
		t.Errorf("progress after end = %v, want 1", last)
	}
	if completed != 1 {
		t.Errorf("completed = %d, want 1", completed)
	}
	if tw.IsPlaying() {
		t.Error("tween should stop after completing")
	}
	tl.Update(300)
	if completed != 1 {
		t.Errorf("completed = %d after extra update, want 1", completed)
	}
}

func TestTweenEasing(t *testing.T) {
	tests := []struct {
		name   string
		easing ease.TweenFunc
		at     float64
		want   float64
	}{
		{"in-out quad quarter", ease.InOutQuad, 25, 0.125},
		{"in-out quad half", ease.InOutQuad, 50, 0.5},
		{"in-out quad three quarters", ease.InOutQuad, 75, 0.875},
		{"out cubic quarter", ease.OutCubic, 25, 1 - 0.75*0.75*0.75},
		{"out cubic half", ease.OutCubic, 50, 0.875},
		{"in quad half", ease.InQuad, 50, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := NewTimeline()
			tw := tl.NewTween(100, tt.easing)
			var got float64
			tw.OnUpdate = func(p float64) { got = p }
			tw.Start(0)
			tl.Update(tt.at)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("progress at %vms = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestTweenEasingRestartsEachCycle(t *testing.T) {
	tl := NewTimeline()
	tw := tl.NewTween(100, ease.InOutQuad)
	tw.Repeat = 1
	var got float64
	repeats := 0
	tw.OnUpdate = func(p float64) { got = p }
	tw.OnRepeat = func() { repeats++ }
	tw.Start(0)

	tl.Update(75)
	if math.Abs(got-0.875) > 1e-6 {
		t.Fatalf("first cycle at 75ms = %v, want 0.875", got)
	}
	tl.Update(125)
	if repeats != 1 {
		t.Fatalf("repeats = %d, want 1", repeats)
	}
	if math.Abs(got-0.125) > 1e-6 {
		t.Errorf("second cycle at 25ms = %v, want 0.125", got)
	}
}

func TestTweenRepeatFiresOncePerCycle(t *testing.T) {
	tl := NewTimeline()
	tw := tl.NewTween(100, nil)
	tw.Repeat = RepeatForever
	repeats := 0
	tw.OnRepeat = func() { repeats++ }
	tw.Start(0)

	tl.Update(99)
	if repeats != 0 {
		t.Fatalf("repeats = %d at 99ms, want 0", repeats)
	}
	tl.Update(100)
	if repeats != 1 {
		t.Fatalf("repeats = %d at 100ms, want 1", repeats)
	}
	// A long frame crosses several cycles.
	tl.Update(450)
	if repeats != 4 {
		t.Fatalf("repeats = %d at 450ms, want 4", repeats)
	}
	if !tw.IsPlaying() {
		t.Error("forever tween stopped")
	}
}

func TestTweenFiniteRepeat(t *testing.T) {
	tl := NewTimeline()
	tw := tl.NewTween(10, nil)
	tw.Repeat = 2
	repeats, completed := 0, 0
	tw.OnRepeat = func() { repeats++ }
	tw.OnComplete = func() { completed++ }
	tw.Start(0)

	tl.Update(1000)
	if repeats != 2 || completed != 1 {
		t.Errorf("repeats=%d completed=%d, want 2 and 1", repeats, completed)
	}
}

func TestTweenStartedDuringUpdateIsDeferred(t *testing.T) {
	tl := NewTimeline()
	second := tl.NewTween(100, nil)
	first := tl.NewTween(10, nil)
	updates := 0
	second.OnUpdate = func(float64) { updates++ }
	first.OnComplete = func() { second.Start(tl.Now()) }
	first.Start(0)

	tl.Update(20)
	if updates != 0 {
		t.Errorf("second tween stepped in the call that started it (%d updates)", updates)
	}
	tl.Update(30)
	if updates != 1 {
		t.Errorf("updates = %d, want 1", updates)
	}
}

func TestTweenNotBeforeStart(t *testing.T) {
	tl := NewTimeline()
	tw := tl.NewTween(100, nil)
	called := false
	tw.OnUpdate = func(float64) { called = true }
	tw.Start(500)
	tl.Update(400)
	if called {
		t.Error("tween stepped before its start time")
	}
}

func TestTimelineReset(t *testing.T) {
	tl := NewTimeline()
	tw := tl.NewTween(100, nil)
	tw.Start(0)
	tl.Update(10)
	tl.Reset()
	if tw.IsPlaying() || tl.Now() != 0 {
		t.Errorf("after reset playing=%v now=%v", tw.IsPlaying(), tl.Now())
	}
}

func TestTimelineRemove(t *testing.T) {
	tl := NewTimeline()
	a := tl.NewTween(1, nil)
	tl.NewTween(1, nil)
	tl.Remove(a)
	if tl.Len() != 1 {
		t.Errorf("Len = %d, want 1", tl.Len())
	}
}
