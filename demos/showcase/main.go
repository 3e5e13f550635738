// showcase opens the three-scene demo: Ace of Shadows, Magic Words and
// Phoenix Flame, switched from the selector bar along the bottom edge.
package main

import (
	"flag"
	"io/fs"
	"log"
	"os"

	"github.com/phanxgames/showcase"
	"github.com/phanxgames/showcase/assets"
	"github.com/phanxgames/showcase/scenes"
	"github.com/phanxgames/showcase/sfx"
)

func main() {
	audioCfg := sfx.LoadConfig()

	assetDir := flag.String("assets", "", "Directory holding manifest.json (default: embedded assets)")
	url := flag.String("url", os.Getenv("SHOWCASE_CONVERSATION_URL"), "Magic Words conversation endpoint")
	width := flag.Int("width", 1280, "Window width")
	height := flag.Int("height", 720, "Window height")
	showFPS := flag.Bool("fps", true, "Show the FPS widget")
	debug := flag.Bool("debug", false, "Log debug diagnostics to stderr")
	audio := flag.Bool("audio", audioCfg.Enabled, "Play card landing chimes")
	scriptPath := flag.String("script", "", "JSON script to run (select, click, wait, screenshot...)")
	start := flag.String("scene", "", "Title of the scene to show on launch")
	flag.Parse()

	var fsys fs.FS = assets.FS
	if *assetDir != "" {
		fsys = os.DirFS(*assetDir)
	}
	bundle, err := showcase.LoadBundle(fsys, assets.Manifest)
	if err != nil {
		log.Fatalf("Failed to load assets: %v", err)
	}
	log.Printf("Loaded %d textures from bundles %v", len(bundle.Names()), bundle.BundleNames())

	audioCfg.Enabled = *audio
	player := sfx.NewPlayer(audioCfg)
	if err := player.Init(); err != nil {
		log.Printf("Audio disabled: %v", err)
		player = sfx.NewPlayer(sfx.Config{})
	}
	defer player.Close()

	app := showcase.NewApp(showcase.AppConfig{Textures: bundle})
	defer app.Destroy()
	scenes.Add(app, scenes.New(bundle, scenes.Options{
		ConversationURL: *url,
		OnCardLanded:    player.CardLanded,
	}))

	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.Fatalf("Failed to read script: %v", err)
		}
		runner, err := showcase.LoadScript(data)
		if err != nil {
			log.Fatalf("Failed to load script: %v", err)
		}
		app.SetScriptRunner(runner)
	}
	if *start != "" {
		s := app.SceneByTitle(*start)
		if s == nil {
			log.Fatalf("Unknown scene %q", *start)
		}
		app.Select(s)
	}

	log.Printf("Starting showcase...")
	if err := showcase.Run(app, showcase.RunConfig{
		Title:     "Showcase",
		Width:     *width,
		Height:    *height,
		ShowFPS:   *showFPS,
		Debug:     *debug,
		Resizable: true,
	}); err != nil {
		log.Fatal(err)
	}
}
