// Package term drives a showcase App without a window and mirrors its state
// on a terminal. It is useful over SSH and in CI, where no GPU is available.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/showcase"
)

// StatusReporter is implemented by scenes that can summarize their state in
// one line.
type StatusReporter interface {
	Status() string
}

// Virtual stage size used when the App has not been sized yet.
const (
	DefaultWidth  = 1280
	DefaultHeight = 720
)

var (
	styleHeader = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleActive = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleIdle   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleFooter = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Monitor ticks an App and renders a status table onto a tcell screen.
type Monitor struct {
	// OnStep runs after every App update.
	OnStep func()
	// Extra, when set, is drawn after a blank row below the scene table.
	Extra func() string

	screen  tcell.Screen
	app     *showcase.App
	frames  int
	elapsed float64
	paused  bool
}

// New binds app to an initialized screen.
func New(screen tcell.Screen, app *showcase.App) *Monitor {
	if w, h := app.Size(); w == 0 || h == 0 {
		app.Resize(DefaultWidth, DefaultHeight)
	}
	return &Monitor{screen: screen, app: app}
}

// Frames returns how many frames were stepped.
func (m *Monitor) Frames() int { return m.frames }

// Paused reports whether stepping is suspended.
func (m *Monitor) Paused() bool { return m.paused }

// Step advances the App by one frame of deltaMS unless paused.
func (m *Monitor) Step(deltaMS float64) {
	if m.paused {
		return
	}
	m.app.Update(deltaMS)
	m.frames++
	m.elapsed += deltaMS
	if m.OnStep != nil {
		m.OnStep()
	}
}

// HandleEvent reacts to a terminal event. It returns false when the user asks
// to quit.
//
//	1-9    select scene
//	r      reset the active scene
//	space  pause or resume
//	q, Esc quit
func (m *Monitor) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			r := ev.Rune()
			switch {
			case r == 'q':
				return false
			case r == ' ':
				m.paused = !m.paused
			case r == 'r':
				if s := m.app.ActiveScene(); s != nil {
					s.Toggle(false, true)
					s.Toggle(true, true)
				}
			case r >= '1' && r <= '9':
				scenes := m.app.Scenes()
				if i := int(r - '1'); i < len(scenes) {
					m.app.Select(scenes[i])
				}
			}
		}
	case *tcell.EventResize:
		m.screen.Sync()
	}
	return true
}

// Draw renders the status table and shows it.
func (m *Monitor) Draw() {
	m.screen.Clear()
	w, h := m.app.Size()
	state := "running"
	if m.paused {
		state = "paused"
	}
	m.text(0, 0, styleHeader, fmt.Sprintf("showcase  %.0fx%.0f  frame %d  %.1fs  %s", w, h, m.frames, m.elapsed/1000, state))

	active := m.app.ActiveScene()
	row := 2
	if active == nil {
		m.text(0, row, styleIdle, showcase.DefaultIntroText)
		row += 2
	}
	for i, s := range m.app.Scenes() {
		marker, style := ' ', styleIdle
		if s == active {
			marker, style = '>', styleActive
		}
		line := fmt.Sprintf("%c %d %-16s", marker, i+1, s.Title())
		if r, ok := s.(StatusReporter); ok {
			line += "  " + r.Status()
		}
		m.text(0, row, style, line)
		row++
	}
	if m.Extra != nil {
		m.text(0, row+1, styleIdle, m.Extra())
	}

	_, sh := m.screen.Size()
	m.text(0, sh-1, styleFooter, "1-9 select  r reset  space pause  q quit")
	m.screen.Show()
}

func (m *Monitor) text(x, y int, style tcell.Style, s string) {
	sw, sh := m.screen.Size()
	if y < 0 || y >= sh {
		return
	}
	for _, r := range s {
		if x >= sw {
			return
		}
		m.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// Run steps and redraws every tick until ctx ends or the user quits.
func (m *Monitor) Run(ctx context.Context, tick time.Duration) error {
	if tick <= 0 {
		tick = time.Second / 60
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := m.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	deltaMS := float64(tick) / float64(time.Millisecond)
	m.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !m.HandleEvent(ev) {
				return nil
			}
			m.Draw()
		case <-ticker.C:
			m.Step(deltaMS)
			m.Draw()
		}
	}
}
