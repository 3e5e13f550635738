package showcase

import (
	"math"
	"testing"
)

type recordingStore struct {
	events []AppEvent
}

func (r *recordingStore) EmitEvent(evt AppEvent) { r.events = append(r.events, evt) }

func (r *recordingStore) types() []AppEventType {
	out := make([]AppEventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

func TestApp_AddSceneMountsHidden(t *testing.T) {
	app := newTestApp()
	s := newTestScene("Ace of Shadows")
	app.AddScene(s)

	if s.Visible() || s.IsPlaying() {
		t.Error("added scene should start hidden and stopped")
	}
	if s.Node().Parent != app.game {
		t.Error("scene not mounted in the game container")
	}
	if app.Selector().Len() != 1 || app.Selector().Button(s) == nil {
		t.Error("no selector button for scene")
	}
	if !app.IntroVisible() {
		t.Error("intro should be visible before any selection")
	}
	if app.ActiveScene() != nil {
		t.Error("no scene should be active")
	}
}

func TestApp_SelectTransitions(t *testing.T) {
	app := newTestApp()
	cards := newTestScene("Ace of Shadows")
	fire := newTestScene("Phoenix Flame")
	app.AddScene(cards)
	app.AddScene(fire)

	// First selection only shows.
	app.Select(cards)
	if !cards.Visible() || !cards.IsPlaying() {
		t.Fatal("first selection did not show and play")
	}
	if app.IntroVisible() {
		t.Error("intro still visible after selection")
	}

	// Same scene is ignored.
	app.Select(cards)
	if cards.plays != 1 {
		t.Errorf("reselect played again: plays = %d", cards.plays)
	}

	// Switching hides, stops and resets the old scene.
	resets := cards.resets
	app.Select(fire)
	if cards.Visible() || cards.IsPlaying() || cards.resets != resets+1 {
		t.Errorf("old scene: visible=%v playing=%v resets=%d", cards.Visible(), cards.IsPlaying(), cards.resets)
	}
	if !fire.Visible() || !fire.IsPlaying() {
		t.Error("new scene not shown and playing")
	}
	if app.ActiveScene() != fire {
		t.Error("ActiveScene != fire")
	}
}

func TestApp_SelectUnmountedIgnored(t *testing.T) {
	app := newTestApp()
	stray := newTestScene("Stray")
	app.Select(stray)
	if stray.Visible() || !app.IntroVisible() {
		t.Error("unmounted scene was selected")
	}
}

func TestApp_RemoveScene(t *testing.T) {
	app := newTestApp()
	a := newTestScene("A")
	b := newTestScene("B")
	app.AddScene(a)
	app.AddScene(b)
	app.Select(a)

	if app.RemoveScene(newTestScene("unknown")) {
		t.Error("removing an unknown scene reported true")
	}
	if !app.RemoveScene(a) {
		t.Fatal("RemoveScene(a) = false")
	}
	if !a.Destroyed() {
		t.Error("removed scene not destroyed")
	}
	if !app.IntroVisible() {
		t.Error("intro should return when no scene is visible")
	}
	if len(app.Scenes()) != 1 || app.Scenes()[0] != b {
		t.Errorf("Scenes = %v", app.Scenes())
	}
	if app.Selector().Len() != 1 || app.Selector().Button(a) != nil {
		t.Error("button of removed scene still present")
	}
	if app.RemoveScene(a) {
		t.Error("second removal reported true")
	}
}

func TestApp_RemoveHiddenSceneKeepsIntroHidden(t *testing.T) {
	app := newTestApp()
	a := newTestScene("A")
	b := newTestScene("B")
	app.AddScene(a)
	app.AddScene(b)
	app.Select(a)
	app.RemoveScene(b)
	if app.IntroVisible() {
		t.Error("intro shown while a scene is still visible")
	}
}

func TestApp_RemoveSceneRefitsSelector(t *testing.T) {
	app := newTestApp()
	a := newTestScene("A")
	b := newTestScene("B")
	app.AddScene(a)
	app.AddScene(b)
	app.Resize(300, 600)

	// Width-bound: k = (300-10)/200 = 1.45 for one or two buttons.
	if want := 600 - (2*testButtonH+selectorSeparation)*1.45; math.Abs(app.ContentHeight()-want) > 1e-9 {
		t.Fatalf("content height = %v, want %v", app.ContentHeight(), want)
	}
	app.RemoveScene(b)
	want := 600 - testButtonH*1.45
	if math.Abs(app.ContentHeight()-want) > 1e-9 {
		t.Errorf("content height after removal = %v, want %v", app.ContentHeight(), want)
	}
	if w, h := a.Size(); w != 300 || math.Abs(h-want) > 1e-9 {
		t.Errorf("remaining scene sized %vx%v, want 300x%v", w, h, want)
	}
}

func TestApp_Resize(t *testing.T) {
	app := newTestApp()
	a := newTestScene("A")
	b := newTestScene("B")
	app.AddScene(a)
	app.AddScene(b)
	app.Resize(800, 600)

	stackH := 2*testButtonH + selectorSeparation
	k := math.Min((800-2*selectorSidePadding)/testButtonW, (600*selectorMaxHeightFrac-selectorBottomPadding)/stackH)
	want := 600 - stackH*k
	if math.Abs(app.ContentHeight()-want) > 1e-9 {
		t.Errorf("ContentHeight = %v, want %v", app.ContentHeight(), want)
	}
	for _, s := range []*testScene{a, b} {
		if w, h := s.Size(); w != 800 || h != app.ContentHeight() {
			t.Errorf("%s size = %vx%v", s.Title(), w, h)
		}
	}
	if app.intro.X != 400 || app.intro.Y != want/2 {
		t.Errorf("intro at (%v, %v), want (400, %v)", app.intro.X, app.intro.Y, want/2)
	}
}

func TestApp_AddSceneAfterResizeRelayouts(t *testing.T) {
	app := newTestApp()
	app.Resize(800, 600)
	s := newTestScene("A")
	app.AddScene(s)
	if w, _ := s.Size(); w != 800 {
		t.Errorf("late scene not resized: width %v", w)
	}
}

func TestApp_UpdateTicksOnlyActiveScene(t *testing.T) {
	app := newTestApp()
	a := newTestScene("A")
	b := newTestScene("B")
	app.AddScene(a)
	app.AddScene(b)
	app.Select(b)

	for i := 0; i < 3; i++ {
		app.Update(16)
	}
	if a.updates != 0 || b.updates != 3 {
		t.Errorf("updates a=%d b=%d, want 0 and 3", a.updates, b.updates)
	}
}

func TestApp_TapSelectsScene(t *testing.T) {
	app := newTestApp()
	a := newTestScene("A")
	b := newTestScene("B")
	app.AddScene(a)
	app.AddScene(b)
	app.Resize(800, 600)

	// Button 1 (B) sits above button 0; hit its center.
	btn := app.Selector().Button(b)
	x, y := btn.LocalToWorld(testButtonW/2, testButtonH/2)
	app.InjectClick(x, y)
	app.Update(16)
	app.Update(16)

	if app.ActiveScene() != b {
		t.Errorf("ActiveScene = %v, want B", app.ActiveScene())
	}
}

func TestApp_Events(t *testing.T) {
	app := newTestApp()
	store := &recordingStore{}
	app.SetEventStore(store)

	a := newTestScene("A")
	b := newTestScene("B")
	app.AddScene(a)
	app.AddScene(b)
	app.Select(a)
	app.Select(b)
	app.Resize(640, 480)
	app.RemoveScene(b)

	want := []AppEventType{
		EventSceneAdded, EventSceneAdded,
		EventSceneShown,
		EventSceneHidden, EventSceneShown,
		EventResize,
		EventSceneRemoved, EventResize,
	}
	got := store.types()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
	if store.events[3].Scene != "A" || store.events[4].Scene != "B" {
		t.Errorf("transition events carry %q/%q", store.events[3].Scene, store.events[4].Scene)
	}
	if store.events[5].W != 640 || store.events[5].H != 480 {
		t.Errorf("resize event = %+v", store.events[5])
	}
}

func TestApp_Destroy(t *testing.T) {
	app := newTestApp()
	a := newTestScene("A")
	b := newTestScene("B")
	app.AddScene(a)
	app.AddScene(b)
	app.Select(a)

	app.Destroy()
	app.Destroy() // idempotent

	if !a.Destroyed() || !b.Destroyed() {
		t.Error("scenes not destroyed")
	}
	if len(app.Scenes()) != 0 {
		t.Error("scenes still mounted")
	}
	if !app.Root().IsDisposed() {
		t.Error("stage not disposed")
	}

	// Calls after destroy are no-ops.
	app.AddScene(newTestScene("late"))
	app.Update(16)
	app.Resize(100, 100)
	if len(app.Scenes()) != 0 {
		t.Error("scene added after destroy")
	}
}

func TestApp_SceneByTitle(t *testing.T) {
	app := newTestApp()
	a := newTestScene("Magic Words")
	app.AddScene(a)
	if app.SceneByTitle("Magic Words") != a {
		t.Error("SceneByTitle did not find the scene")
	}
	if app.SceneByTitle("nope") != nil {
		t.Error("SceneByTitle found a missing scene")
	}
}

func TestApp_TapPublishesEvent(t *testing.T) {
	app := newTestApp()
	store := &recordingStore{}
	app.SetEventStore(store)
	a := newTestScene("A")
	app.AddScene(a)
	app.Resize(800, 600)

	btn := app.Selector().Button(a)
	x, y := btn.LocalToWorld(testButtonW/2, testButtonH/2)
	app.InjectClick(x, y)
	app.Update(16)
	app.Update(16)

	want := []AppEventType{EventSceneAdded, EventResize, EventTap, EventSceneShown}
	got := store.types()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
	if tap := store.events[2]; tap.X != x || tap.Y != y || tap.Node == "" {
		t.Errorf("tap event = %+v", tap)
	}
}
