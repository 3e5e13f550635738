package showcase

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Texture is a named, shareable image handle. Textures are shared by pointer
// across nodes and scenes and never copied; mirrored variants share the same
// underlying image.
type Texture struct {
	Name   string
	Image  *ebiten.Image
	Width  float64
	Height float64
	FlipX  bool
	FlipY  bool
}

// NewTexture wraps an image. A nil image yields a zero-size texture.
func NewTexture(name string, img *ebiten.Image) *Texture {
	t := &Texture{Name: name, Image: img}
	if img != nil {
		b := img.Bounds()
		t.Width = float64(b.Dx())
		t.Height = float64(b.Dy())
	}
	return t
}

// Mirrored returns a texture that shares t's image but is drawn flipped on the
// requested axes (relative to t's own flips).
func (t *Texture) Mirrored(flipX, flipY bool) *Texture {
	m := *t
	m.FlipX = t.FlipX != flipX
	m.FlipY = t.FlipY != flipY
	switch {
	case flipX && flipY:
		m.Name = t.Name + "-mirror-xy"
	case flipX:
		m.Name = t.Name + "-mirror-x"
	case flipY:
		m.Name = t.Name + "-mirror-y"
	}
	return &m
}

// TextureSource resolves textures by name from a preloaded set.
type TextureSource interface {
	Texture(name string) *Texture
}

// TextureLookup is a TextureSource that can report a missing name instead of
// falling back to the placeholder. Bundle and TextureMap implement it.
type TextureLookup interface {
	TextureSource
	Lookup(name string) (*Texture, bool)
}

// TextureMap is the simplest TextureSource. Missing names resolve to the
// magenta placeholder.
type TextureMap map[string]*Texture

// Texture returns the named texture or the placeholder.
func (m TextureMap) Texture(name string) *Texture {
	if t, ok := m[name]; ok {
		return t
	}
	debugf("texture %q not found, using magenta placeholder", name)
	return Placeholder()
}

// Lookup reports whether name is present, without falling back.
func (m TextureMap) Lookup(name string) (*Texture, bool) {
	t, ok := m[name]
	return t, ok
}

// magenta placeholder singleton (no sync.Once — the frame loop is single-threaded)
var placeholderTexture *Texture

const placeholderSize = 32

// Placeholder returns the shared magenta texture used for missing resources.
func Placeholder() *Texture {
	if placeholderTexture == nil {
		img := ebiten.NewImage(placeholderSize, placeholderSize)
		img.Fill(color.RGBA{R: 255, G: 0, B: 255, A: 255})
		placeholderTexture = NewTexture("placeholder", img)
	}
	return placeholderTexture
}

// --- Atlas ---

// Atlas holds one or more atlas page images and a map of named sub-textures.
type Atlas struct {
	// Pages contains the atlas page images indexed by page number.
	Pages    []*ebiten.Image
	textures map[string]*Texture
}

// Texture returns the named sub-texture or the magenta placeholder.
func (a *Atlas) Texture(name string) *Texture {
	if t, ok := a.textures[name]; ok {
		return t
	}
	debugf("atlas region %q not found, using magenta placeholder", name)
	return Placeholder()
}

// Names returns the region names in unspecified order.
func (a *Atlas) Names() []string {
	names := make([]string, 0, len(a.textures))
	for name := range a.textures {
		names = append(names, name)
	}
	return names
}

// LoadAtlas parses TexturePacker JSON data and associates the given page images.
// Supports both the hash format (single "frames" object) and the array format
// ("textures" array with per-page frame lists).
func LoadAtlas(jsonData []byte, pages []*ebiten.Image) (*Atlas, error) {
	// Probe top-level keys to detect format.
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("showcase: failed to parse atlas JSON: %w", err)
	}

	atlas := &Atlas{
		Pages:    pages,
		textures: make(map[string]*Texture),
	}

	if probe.Textures != nil {
		if err := parseArrayFormat(probe.Textures, atlas); err != nil {
			return nil, err
		}
	} else if probe.Frames != nil {
		if err := parseHashFrames(probe.Frames, 0, atlas); err != nil {
			return nil, err
		}
	} else {
		return nil, fmt.Errorf("showcase: atlas JSON has neither \"frames\" nor \"textures\" key")
	}

	return atlas, nil
}

// AtlasPageNames returns the page image file names referenced by TexturePacker
// JSON, in page order: "meta.image" for the hash format, one entry per
// "textures" element for the array format.
func AtlasPageNames(jsonData []byte) ([]string, error) {
	var probe struct {
		Meta struct {
			Image string `json:"image"`
		} `json:"meta"`
		Textures []jsonTexturePage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("showcase: failed to parse atlas JSON: %w", err)
	}
	if len(probe.Textures) > 0 {
		names := make([]string, len(probe.Textures))
		for i, p := range probe.Textures {
			names[i] = p.Image
		}
		return names, nil
	}
	if probe.Meta.Image == "" {
		return nil, fmt.Errorf("showcase: atlas JSON names no page image")
	}
	return []string{probe.Meta.Image}, nil
}

// --- JSON structure types ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame jsonRect `json:"frame"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}

// parseHashFrames parses the hash format: {"name": {frame...}, ...}
func parseHashFrames(raw json.RawMessage, page int, atlas *Atlas) error {
	var frames map[string]jsonFrame
	if err := json.Unmarshal(raw, &frames); err != nil {
		return fmt.Errorf("showcase: failed to parse atlas frames: %w", err)
	}
	for name, f := range frames {
		tex, err := atlas.frameTexture(name, f, page)
		if err != nil {
			return err
		}
		atlas.textures[name] = tex
	}
	return nil
}

// parseArrayFormat parses the array format: [{"image":"...", "frames":{...}}, ...]
func parseArrayFormat(raw json.RawMessage, atlas *Atlas) error {
	var textures []jsonTexturePage
	if err := json.Unmarshal(raw, &textures); err != nil {
		return fmt.Errorf("showcase: failed to parse atlas textures array: %w", err)
	}
	for i, tex := range textures {
		for name, f := range tex.Frames {
			t, err := atlas.frameTexture(name, f, i)
			if err != nil {
				return err
			}
			atlas.textures[name] = t
		}
	}
	return nil
}

func (a *Atlas) frameTexture(name string, f jsonFrame, page int) (*Texture, error) {
	if page >= len(a.Pages) || a.Pages[page] == nil {
		return nil, fmt.Errorf("showcase: atlas region %q references missing page %d", name, page)
	}
	rect := image.Rect(f.Frame.X, f.Frame.Y, f.Frame.X+f.Frame.W, f.Frame.Y+f.Frame.H)
	sub := a.Pages[page].SubImage(rect).(*ebiten.Image)
	return &Texture{
		Name:   name,
		Image:  sub,
		Width:  float64(f.Frame.W),
		Height: float64(f.Frame.H),
	}, nil
}
