package showcase

import (
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// monoFont is a measurement-only font: every rune is charW wide.
type monoFont struct {
	charW float64
	lh    float64
	size  float64
}

func newMonoFont() *monoFont {
	return &monoFont{charW: 10, lh: 20, size: 16}
}

func (f *monoFont) MeasureString(s string) (float64, float64) {
	return float64(utf8.RuneCountInString(s)) * f.charW, f.lh
}

func (f *monoFont) LineHeight() float64 { return f.lh }
func (f *monoFont) Size() float64       { return f.size }
func (f *monoFont) Face() text.Face     { return nil }

// sizedTexture returns a texture with dimensions but no image.
func sizedTexture(name string, w, h float64) *Texture {
	return &Texture{Name: name, Width: w, Height: h}
}

// testScene records lifecycle calls.
type testScene struct {
	BaseScene
	resets, plays, stops, updates int
}

func newTestScene(title string) *testScene {
	s := &testScene{}
	s.Init(title, title, s)
	return s
}

func (s *testScene) Reset() { s.resets++ }

func (s *testScene) Play() {
	s.BaseScene.Play()
	s.plays++
}

func (s *testScene) Stop() {
	s.BaseScene.Stop()
	s.stops++
}

func (s *testScene) Update(deltaMS float64) bool {
	if !s.BaseScene.Update(deltaMS) {
		return false
	}
	s.updates++
	return true
}

const (
	testButtonW = 200.0
	testButtonH = 50.0
)

func newTestApp() *App {
	return NewApp(AppConfig{
		Textures: TextureMap{"button": sizedTexture("button", testButtonW, testButtonH)},
		Font:     newMonoFont(),
	})
}
