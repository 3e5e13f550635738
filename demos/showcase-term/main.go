// showcase-term runs the showcase scenes without a window and shows their
// state in the terminal. Press 1-3 to switch scenes, q to quit.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/showcase"
	"github.com/phanxgames/showcase/assets"
	"github.com/phanxgames/showcase/ecs"
	"github.com/phanxgames/showcase/scenes"
	"github.com/phanxgames/showcase/term"

	"github.com/yohamta/donburi"
)

func main() {
	url := flag.String("url", os.Getenv("SHOWCASE_CONVERSATION_URL"), "Magic Words conversation endpoint")
	tick := flag.Duration("tick", 16*time.Millisecond, "Frame interval")
	width := flag.Float64("width", term.DefaultWidth, "Virtual stage width")
	height := flag.Float64("height", term.DefaultHeight, "Virtual stage height")
	flag.Parse()

	bundle, err := showcase.LoadBundle(assets.FS, assets.Manifest)
	if err != nil {
		log.Fatalf("Failed to load assets: %v", err)
	}

	world := donburi.NewWorld()
	tracker := ecs.NewSceneTracker(world)

	app := showcase.NewApp(showcase.AppConfig{Textures: bundle})
	defer app.Destroy()
	app.SetEventStore(ecs.NewDonburiStore(world))
	app.Resize(*width, *height)
	scenes.Add(app, scenes.New(bundle, scenes.Options{ConversationURL: *url}))

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to initialize screen: %v", err)
	}
	defer screen.Fini()

	m := term.New(screen, app)
	m.OnStep = func() { ecs.AppEventType.ProcessEvents(world) }
	m.Extra = func() string {
		active := tracker.Active
		if active == "" {
			active = "none"
		}
		return fmt.Sprintf("active: %s  mounted: %d  taps: %d", active, len(tracker.Scenes), tracker.Taps)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := m.Run(ctx, *tick); err != nil && ctx.Err() == nil {
		screen.Fini()
		log.Fatal(err)
	}
}
