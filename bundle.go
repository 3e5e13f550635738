package showcase

import (
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// manifest is the asset manifest format:
//
//	{"bundles": [{"name": "default", "assets": [{"alias": "card-back", "src": "images/card.png"}]}]}
//
// Sources ending in .json are TexturePacker atlases; every other source is
// decoded as a single image.
type manifest struct {
	Bundles []struct {
		Name   string `json:"name"`
		Assets []struct {
			Alias string `json:"alias"`
			Src   string `json:"src"`
		} `json:"assets"`
	} `json:"bundles"`
}

// Bundle is a TextureSource populated from an asset manifest. Atlas frames are
// registered under their frame name and under the name without extension.
type Bundle struct {
	bundles  []string
	textures map[string]*Texture
	atlases  map[string]*Atlas
}

// LoadBundle reads the manifest at manifestPath from fsys and decodes every
// asset it lists. Asset paths are relative to the manifest.
func LoadBundle(fsys fs.FS, manifestPath string) (*Bundle, error) {
	data, err := fs.ReadFile(fsys, manifestPath)
	if err != nil {
		return nil, fmt.Errorf("showcase: read manifest: %w", err)
	}
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("showcase: parse manifest %s: %w", manifestPath, err)
	}

	b := &Bundle{
		textures: make(map[string]*Texture),
		atlases:  make(map[string]*Atlas),
	}
	base := path.Dir(manifestPath)
	for _, bundle := range m.Bundles {
		b.bundles = append(b.bundles, bundle.Name)
		for _, asset := range bundle.Assets {
			if asset.Alias == "" || asset.Src == "" {
				return nil, fmt.Errorf("showcase: bundle %q: asset needs alias and src", bundle.Name)
			}
			src := path.Join(base, asset.Src)
			if strings.EqualFold(path.Ext(src), ".json") {
				if err := b.loadAtlas(fsys, asset.Alias, src); err != nil {
					return nil, err
				}
				continue
			}
			img, err := decodeImage(fsys, src)
			if err != nil {
				return nil, err
			}
			b.textures[asset.Alias] = NewTexture(asset.Alias, img)
		}
	}
	debugf("bundle loaded: %d textures, %d atlases", len(b.textures), len(b.atlases))
	return b, nil
}

func (b *Bundle) loadAtlas(fsys fs.FS, alias, src string) error {
	data, err := fs.ReadFile(fsys, src)
	if err != nil {
		return fmt.Errorf("showcase: read atlas %s: %w", src, err)
	}
	names, err := AtlasPageNames(data)
	if err != nil {
		return fmt.Errorf("showcase: atlas %s: %w", src, err)
	}
	pages := make([]*ebiten.Image, len(names))
	for i, name := range names {
		if pages[i], err = decodeImage(fsys, path.Join(path.Dir(src), name)); err != nil {
			return err
		}
	}
	atlas, err := LoadAtlas(data, pages)
	if err != nil {
		return fmt.Errorf("showcase: atlas %s: %w", src, err)
	}
	b.atlases[alias] = atlas
	for name, tex := range atlas.textures {
		b.textures[name] = tex
		if trimmed := strings.TrimSuffix(name, path.Ext(name)); trimmed != name {
			if _, taken := b.textures[trimmed]; !taken {
				b.textures[trimmed] = tex
			}
		}
	}
	return nil
}

func decodeImage(fsys fs.FS, name string) (*ebiten.Image, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("showcase: open image: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("showcase: decode image %s: %w", name, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

// Texture returns the named texture or the magenta placeholder.
func (b *Bundle) Texture(name string) *Texture {
	if t, ok := b.textures[name]; ok {
		return t
	}
	debugf("bundle texture %q not found, using magenta placeholder", name)
	return Placeholder()
}

// Lookup reports whether name is present, without falling back.
func (b *Bundle) Lookup(name string) (*Texture, bool) {
	t, ok := b.textures[name]
	return t, ok
}

// MustTexture returns the named texture and panics if it is missing.
func (b *Bundle) MustTexture(name string) *Texture {
	t, ok := b.textures[name]
	if !ok {
		panic(fmt.Sprintf("showcase: bundle has no texture %q", name))
	}
	return t
}

// Atlas returns the atlas registered under alias, or nil.
func (b *Bundle) Atlas(alias string) *Atlas { return b.atlases[alias] }

// BundleNames returns the manifest bundle names in order.
func (b *Bundle) BundleNames() []string { return b.bundles }

// Names returns every texture name, sorted.
func (b *Bundle) Names() []string {
	names := make([]string, 0, len(b.textures))
	for name := range b.textures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Add registers tex under name, replacing any existing entry.
func (b *Bundle) Add(name string, tex *Texture) {
	if b.textures == nil {
		b.textures = make(map[string]*Texture)
	}
	b.textures[name] = tex
}
