package showcase

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	Debug   bool
	// Resizable lets the window (and so the layout) change size.
	Resizable bool
}

// Game adapts an App to ebiten.Game. Ticks are fed to the App as elapsed
// milliseconds at the current TPS, and layout changes become App.Resize calls.
type Game struct {
	app  *App
	w, h int
}

// NewGame wraps app.
func NewGame(app *App) *Game {
	return &Game{app: app}
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	g.app.Update(1000 / float64(tps))
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.app.Draw(screen)
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		g.app.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// Run opens a window and runs app until the window is closed.
func Run(app *App, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	if cfg.Title == "" {
		cfg.Title = "Showcase"
	}
	app.SetDebugMode(cfg.Debug)
	if cfg.ShowFPS {
		app.Root().AddChild(NewFPSWidget())
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if err := ebiten.RunGame(NewGame(app)); err != nil {
		return fmt.Errorf("showcase: run: %w", err)
	}
	return nil
}
