package showcase

// AppEventType identifies an AppEvent.
type AppEventType uint8

const (
	EventSceneAdded      AppEventType = iota // a scene was mounted
	EventSceneRemoved                        // a scene was destroyed and unmounted
	EventSceneShown                          // a scene was toggled visible
	EventSceneHidden                         // a scene was toggled hidden
	EventResize                              // the display area changed
	EventTap                                 // a tap landed on a node
)

var appEventNames = [...]string{
	EventSceneAdded:   "scene-added",
	EventSceneRemoved: "scene-removed",
	EventSceneShown:   "scene-shown",
	EventSceneHidden:  "scene-hidden",
	EventResize:       "resize",
	EventTap:          "tap",
}

func (t AppEventType) String() string {
	if int(t) < len(appEventNames) {
		return appEventNames[t]
	}
	return "unknown"
}

// AppEvent carries app-shell notifications to an EventStore.
type AppEvent struct {
	Type  AppEventType
	Scene string // scene title, when relevant
	Node  string // node name for taps
	X, Y  float64
	W, H  float64
}

// EventStore receives app events. The ecs package provides a donburi-backed
// implementation.
type EventStore interface {
	EmitEvent(event AppEvent)
}
