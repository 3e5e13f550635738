// Package showcase hosts interactive animated demo scenes on [Ebitengine].
//
// An [App] mounts any number of [Scene] values, shows a button bar to switch
// between them, and ticks the visible scene forward every frame. Only one
// scene is visible at a time; hiding a scene stops and resets it.
//
// # Quick start
//
//	app := showcase.NewApp(showcase.AppConfig{Textures: bundle})
//	app.AddScene(cards.New(bundle, cards.Config{}))
//	app.AddScene(fire.New(bundle, fire.Config{}))
//	if err := showcase.Run(app, showcase.RunConfig{Title: "Showcase"}); err != nil {
//		log.Fatal(err)
//	}
//
// For full control, call [App.Update] and [App.Draw] from your own
// [ebiten.Game], or wrap the app with [NewGame].
//
// # Scene graph
//
// Everything visible is a [Node]: containers, sprites, polygons and text.
// Children inherit their parent's transform and alpha. Pivots are in local
// pixels; [Node.SetAnchor] sets them as a fraction of the node's size.
//
// # Building blocks
//
// Scenes are assembled from a few engines that are useful on their own:
//
//   - [Timeline] and [Tween]: a virtual-clock tween scheduler backed by [gween].
//   - [Emitter]: a pooled particle emitter with a generic per-particle payload.
//   - [RichText]: word-wrapped text with inline {icon} tokens.
//   - [Loader]: a cancelable background load whose result is committed on the
//     frame thread.
//   - [ScrollList]: a clipped list scrolled by wheel or drag.
//
// Assets come from any [TextureSource]; [LoadBundle] reads a JSON manifest of
// images and TexturePacker atlases from an [io/fs.FS].
//
// # Debugging
//
// [App.SetDebugMode] turns on per-frame timing, tree sanity checks and
// diagnostic logging to stderr. A [ScriptRunner] replays scripted selections,
// clicks and screenshots for automated runs.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package showcase
