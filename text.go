package showcase

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

// Font is the interface for text measurement and layout.
type Font interface {
	MeasureString(text string) (width, height float64)
	LineHeight() float64
	// Size is the nominal font size in pixels.
	Size() float64
	// Face returns the face used for drawing, or nil for measurement-only fonts.
	Face() text.Face
}

// --- TextBlock ---

// TextBlock holds text content, formatting, and cached layout state.
type TextBlock struct {
	Content    string
	Font       Font
	Align      TextAlign
	WrapWidth  float64 // 0 = no wrapping
	Color      Color
	LineHeight float64 // override; 0 = use Font.LineHeight()

	layoutDirty bool
	measuredW   float64
	measuredH   float64
	lines       []wrappedLine
}

// SetContent replaces the text and invalidates the layout.
func (tb *TextBlock) SetContent(s string) {
	if tb.Content == s {
		return
	}
	tb.Content = s
	tb.layoutDirty = true
}

// Invalidate forces a relayout on the next measurement, e.g. after changing
// Font or WrapWidth directly.
func (tb *TextBlock) Invalidate() {
	tb.layoutDirty = true
}

// lineHeight returns the effective line height for this text block.
func (tb *TextBlock) lineHeight() float64 {
	if tb.LineHeight > 0 {
		return tb.LineHeight
	}
	if tb.Font != nil {
		return tb.Font.LineHeight()
	}
	return 0
}

// Measure returns the laid-out width and height of the block.
func (tb *TextBlock) Measure() (w, h float64) {
	tb.layout()
	return tb.measuredW, tb.measuredH
}

// NumLines returns the number of laid-out lines.
func (tb *TextBlock) NumLines() int {
	return len(tb.layout())
}

// Line returns the content of laid-out line i, trailing spaces included.
func (tb *TextBlock) Line(i int) string {
	lines := tb.layout()
	return tb.Content[lines[i].start:lines[i].end]
}

func (tb *TextBlock) layout() []wrappedLine {
	if !tb.layoutDirty {
		return tb.lines
	}
	tb.layoutDirty = false
	tb.lines = tb.lines[:0]
	tb.measuredW = 0
	tb.measuredH = 0
	if tb.Font == nil || tb.Content == "" {
		return tb.lines
	}
	tb.lines = wrapText(tb.lines, tb.Font, tb.Content, tb.WrapWidth)
	for _, l := range tb.lines {
		if l.width > tb.measuredW {
			tb.measuredW = l.width
		}
	}
	tb.measuredH = float64(len(tb.lines)) * tb.lineHeight()
	return tb.lines
}

// --- Word wrap ---

// wrappedLine is one line produced by wrapText. Content[start:end] is the line
// including trailing spaces; next is where the following line starts (past a
// consumed newline). width excludes trailing spaces.
type wrappedLine struct {
	start, end, next int
	width            float64
}

// wrapText breaks s into lines no wider than maxWidth, breaking at spaces and
// explicit newlines. Words wider than maxWidth get a line of their own and are
// never split. maxWidth <= 0 disables wrapping.
func wrapText(dst []wrappedLine, f Font, s string, maxWidth float64) []wrappedLine {
	measure := func(a, b int) float64 {
		for b > a && s[b-1] == ' ' {
			b--
		}
		if b == a {
			return 0
		}
		w, _ := f.MeasureString(s[a:b])
		return w
	}

	paraStart := 0
	for paraStart <= len(s) {
		paraEnd := strings.IndexByte(s[paraStart:], '\n')
		next := len(s) + 1
		if paraEnd < 0 {
			paraEnd = len(s)
		} else {
			paraEnd += paraStart
			next = paraEnd + 1
		}

		lineStart, lineEnd := paraStart, paraStart
		i := paraStart
		for i < paraEnd {
			ws := i
			for i < paraEnd && s[i] == ' ' {
				i++
			}
			for i < paraEnd && s[i] != ' ' {
				i++
			}
			te := i
			for i < paraEnd && s[i] == ' ' {
				i++
			}
			if maxWidth > 0 && lineEnd > lineStart && measure(lineStart, te) > maxWidth {
				dst = append(dst, wrappedLine{start: lineStart, end: lineEnd, next: ws, width: measure(lineStart, lineEnd)})
				lineStart = ws
			}
			lineEnd = i
		}
		lineNext := next
		if lineNext > len(s) {
			lineNext = len(s)
		}
		dst = append(dst, wrappedLine{start: lineStart, end: paraEnd, next: lineNext, width: measure(lineStart, paraEnd)})
		paraStart = next
	}
	return dst
}

// --- TTFFont ---

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face *text.GoTextFace
	size float64
	lh   float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("showcase: failed to parse TTF data: %w", err)
	}
	return NewTTFFont(source, size), nil
}

// NewTTFFont creates a font of the given size from an already parsed source.
func NewTTFFont(source *text.GoTextFaceSource, size float64) *TTFFont {
	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}
	m := face.Metrics()
	return &TTFFont{
		face: face,
		size: size,
		lh:   m.HAscent + m.HDescent + m.HLineGap,
	}
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Size returns the font size.
func (f *TTFFont) Size() float64 {
	return f.size
}

// Face returns the underlying GoTextFace.
func (f *TTFFont) Face() text.Face {
	return f.face
}

var defaultFontSource *text.GoTextFaceSource

// DefaultFont returns the Go Regular typeface at the given size. Panics if the
// embedded font data cannot be parsed.
func DefaultFont(size float64) *TTFFont {
	if defaultFontSource == nil {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			panic(fmt.Sprintf("showcase: embedded font: %v", err))
		}
		defaultFontSource = src
	}
	return NewTTFFont(defaultFontSource, size)
}

// --- FaceFont ---

// FaceFont is a fixed-size bitmap font backed by basicfont.Face7x13. It needs
// no font data and is used for debug overlays.
type FaceFont struct {
	face *text.GoXFace
}

// NewFaceFont returns the 7x13 bitmap face.
func NewFaceFont() *FaceFont {
	return &FaceFont{face: text.NewGoXFace(basicfont.Face7x13)}
}

// MeasureString returns the width and height of the rendered text.
func (f *FaceFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.LineHeight())
}

// LineHeight returns the face's line advance.
func (f *FaceFont) LineHeight() float64 {
	m := f.face.Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}

// Size returns the nominal pixel height.
func (f *FaceFont) Size() float64 {
	return 13
}

// Face returns the underlying GoXFace.
func (f *FaceFont) Face() text.Face {
	return f.face
}
