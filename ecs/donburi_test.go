package ecs

import (
	"testing"

	"github.com/phanxgames/showcase"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []showcase.AppEvent
	AppEventType.Subscribe(world, func(w donburi.World, e showcase.AppEvent) {
		received = append(received, e)
	})

	store.EmitEvent(showcase.AppEvent{Type: showcase.EventSceneShown, Scene: "Ace of Shadows"})
	store.EmitEvent(showcase.AppEvent{Type: showcase.EventResize, W: 800, H: 600})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("received %d events before processing", len(received))
	}
	AppEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.Type != showcase.EventSceneShown || e.Scene != "Ace of Shadows" {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.Type != showcase.EventResize || e.W != 800 || e.H != 600 {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	AppEventType.Subscribe(world, func(w donburi.World, e showcase.AppEvent) {
		count1++
	})
	AppEventType.Subscribe(world, func(w donburi.World, e showcase.AppEvent) {
		count2++
	})

	store.EmitEvent(showcase.AppEvent{Type: showcase.EventTap})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

// stubScene is the smallest Scene an App will mount.
type stubScene struct {
	showcase.BaseScene
}

func newStubScene(title string) *stubScene {
	s := &stubScene{}
	s.Init(title, title, s)
	return s
}

func TestSceneTracker_FollowsApp(t *testing.T) {
	world := donburi.NewWorld()
	tracker := NewSceneTracker(world)

	app := showcase.NewApp(showcase.AppConfig{
		Textures: showcase.TextureMap{"button": {Name: "button", Width: 200, Height: 50}},
	})
	app.SetEventStore(NewDonburiStore(world))

	a, b := newStubScene("A"), newStubScene("B")
	app.AddScene(a)
	app.AddScene(b)
	app.Select(a)
	app.Select(b)
	AppEventType.ProcessEvents(world)

	if tracker.Active != "B" {
		t.Errorf("Active = %q, want B", tracker.Active)
	}
	if len(tracker.Scenes) != 2 {
		t.Errorf("Scenes = %v", tracker.Scenes)
	}

	app.RemoveScene(b)
	AppEventType.ProcessEvents(world)
	if tracker.Active != "" || len(tracker.Scenes) != 1 || tracker.Scenes[0] != "A" {
		t.Errorf("after remove: active %q, scenes %v", tracker.Active, tracker.Scenes)
	}
}
