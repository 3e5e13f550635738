package ecs

import (
	"github.com/phanxgames/showcase"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// AppEventType is the donburi event type for showcase app events.
var AppEventType = events.NewEventType[showcase.AppEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a donburi world. Events are
// queued on AppEventType until ProcessEvents runs.
func NewDonburiStore(world donburi.World) showcase.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event showcase.AppEvent) {
	AppEventType.Publish(s.world, event)
}

// SceneTracker is a ready-made subscriber that keeps the title of the scene
// currently shown and counts taps.
type SceneTracker struct {
	Active string
	Scenes []string
	Taps   int
}

// NewSceneTracker subscribes a tracker to world.
func NewSceneTracker(world donburi.World) *SceneTracker {
	t := &SceneTracker{}
	AppEventType.Subscribe(world, t.handle)
	return t
}

func (t *SceneTracker) handle(_ donburi.World, e showcase.AppEvent) {
	switch e.Type {
	case showcase.EventSceneAdded:
		t.Scenes = append(t.Scenes, e.Scene)
	case showcase.EventSceneRemoved:
		for i, s := range t.Scenes {
			if s == e.Scene {
				t.Scenes = append(t.Scenes[:i], t.Scenes[i+1:]...)
				break
			}
		}
		if t.Active == e.Scene {
			t.Active = ""
		}
	case showcase.EventSceneShown:
		t.Active = e.Scene
	case showcase.EventSceneHidden:
		if t.Active == e.Scene {
			t.Active = ""
		}
	case showcase.EventTap:
		t.Taps++
	}
}
