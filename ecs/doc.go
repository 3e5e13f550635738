// Package ecs bridges showcase app events into a donburi world.
//
// [NewDonburiStore] returns a [showcase.EventStore] that publishes every
// app event (scene added, removed, shown, hidden, resize, tap) as a typed
// donburi event. Subscribe to [AppEventType] in your ECS systems and drain
// the queue once per frame with ProcessEvents.
//
// Usage:
//
//	world := donburi.NewWorld()
//	app.SetEventStore(ecs.NewDonburiStore(world))
//	ecs.AppEventType.Subscribe(world, onAppEvent)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
