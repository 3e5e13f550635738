package showcase

import (
	"math"
	"regexp"
	"strings"
)

// SegmentKind tags a rich-text Segment.
type SegmentKind uint8

const (
	SegmentText SegmentKind = iota // plain text run
	SegmentIcon                    // inline icon, Content is the icon name
)

func (k SegmentKind) String() string {
	if k == SegmentIcon {
		return "icon"
	}
	return "text"
}

// Segment is a contiguous run of plain text or a single icon token.
type Segment struct {
	Kind    SegmentKind
	Content string
}

var iconToken = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// Tokenize splits raw into text and icon segments. Icon tokens are written
// {name}; everything between tokens, whitespace included, becomes a text
// segment. Empty text between adjacent tokens is omitted.
func Tokenize(raw string) []Segment {
	var segs []Segment
	last := 0
	for _, m := range iconToken.FindAllStringSubmatchIndex(raw, -1) {
		if m[0] > last {
			segs = append(segs, Segment{Kind: SegmentText, Content: raw[last:m[0]]})
		}
		segs = append(segs, Segment{Kind: SegmentIcon, Content: raw[m[2]:m[3]]})
		last = m[1]
	}
	if last < len(raw) {
		segs = append(segs, Segment{Kind: SegmentText, Content: raw[last:]})
	}
	return segs
}

// DefaultIconScale is the icon height as a multiple of the font size.
const DefaultIconScale = 1.2

// DefaultWrapWidth is used when a RichTextStyle leaves WrapWidth at zero.
const DefaultWrapWidth = 500

// PlaceholderIconName names the fallback icon for unknown tokens.
const PlaceholderIconName = "unknown-emoji"

// RichTextStyle configures a RichText.
type RichTextStyle struct {
	Font  Font
	Color Color
	// WrapWidth limits line width; zero means DefaultWrapWidth.
	WrapWidth float64
	// Icons maps token names to textures. Unknown names use Placeholder,
	// then Icons[PlaceholderIconName], then the magenta placeholder.
	Icons       map[string]*Texture
	Placeholder *Texture
	IconScale   float64
}

// TextRun is one laid-out piece of rich text. Text runs always sit on a single
// line.
type TextRun struct {
	Kind    SegmentKind
	Content string
	X, Y    float64
	W, H    float64
	Node    *Node
}

// RichText lays out text mixed with inline icons inside its Node, wrapping
// greedily at the wrap width. Text and icon nodes are pooled and reused across
// layouts.
type RichText struct {
	Node *Node

	raw   string
	style RichTextStyle
	runs  []TextRun

	width, height float64

	textPool  []*Node
	iconPools map[string][]*Node

	// line being built
	lineStart int
	lineH     float64
	cursorX   float64
	cursorY   float64

	layoutCount int
	destroyed   bool
}

// NewRichText creates a rich text block and lays it out immediately.
func NewRichText(name, raw string, style RichTextStyle) *RichText {
	if style.WrapWidth <= 0 {
		style.WrapWidth = DefaultWrapWidth
	}
	if style.IconScale <= 0 {
		style.IconScale = DefaultIconScale
	}
	if style.Color == (Color{}) {
		style.Color = ColorWhite
	}
	rt := &RichText{
		Node:      NewContainer(name),
		raw:       raw,
		style:     style,
		iconPools: make(map[string][]*Node),
	}
	rt.relayout()
	return rt
}

// Text returns the raw source string.
func (rt *RichText) Text() string {
	return rt.raw
}

// WrapWidth returns the current wrap width.
func (rt *RichText) WrapWidth() float64 {
	return rt.style.WrapWidth
}

// SetText replaces the source string. Unchanged text is a no-op.
func (rt *RichText) SetText(raw string) {
	if rt.destroyed || raw == rt.raw {
		return
	}
	rt.raw = raw
	rt.relayout()
}

// SetWrapWidth changes the wrap width. An unchanged width is a no-op.
func (rt *RichText) SetWrapWidth(w float64) {
	if rt.destroyed || w == rt.style.WrapWidth {
		return
	}
	rt.style.WrapWidth = w
	rt.relayout()
}

// Runs returns the laid-out runs in reading order. The slice must not be
// modified.
func (rt *RichText) Runs() []TextRun {
	return rt.runs
}

// Size returns the bounds of the laid-out content.
func (rt *RichText) Size() (w, h float64) {
	return rt.width, rt.height
}

// Destroy releases all pooled nodes. Later calls are no-ops.
func (rt *RichText) Destroy() {
	if rt.destroyed {
		return
	}
	rt.destroyed = true
	rt.recycle()
	for _, n := range rt.textPool {
		n.Dispose()
	}
	for _, pool := range rt.iconPools {
		for _, n := range pool {
			n.Dispose()
		}
	}
	rt.textPool = nil
	rt.iconPools = nil
	rt.Node.Dispose()
}

// recycle detaches every current run node and returns it to its pool.
func (rt *RichText) recycle() {
	for _, r := range rt.runs {
		r.Node.RemoveFromParent()
		if r.Kind == SegmentText {
			rt.textPool = append(rt.textPool, r.Node)
		} else {
			key := r.Node.Texture.Name
			rt.iconPools[key] = append(rt.iconPools[key], r.Node)
		}
	}
	clear(rt.runs)
	rt.runs = rt.runs[:0]
}

func (rt *RichText) relayout() {
	rt.layoutCount++
	rt.recycle()
	rt.width, rt.height = 0, 0
	rt.cursorX, rt.cursorY = 0, 0
	rt.lineStart = 0
	rt.lineH = 0

	f := rt.style.Font
	if f == nil {
		return
	}
	wrap := rt.style.WrapWidth
	iconH := f.Size() * rt.style.IconScale

	segs := Tokenize(rt.raw)
	for i := 0; i < len(segs); i++ {
		seg := segs[i]
		if rt.cursorX > wrap {
			rt.breakLine()
		}

		if seg.Kind == SegmentIcon {
			tex := rt.icon(seg.Content)
			w := iconH
			if tex.Height > 0 {
				w = tex.Width * iconH / tex.Height
			}
			if rt.cursorX > 0 && rt.cursorX+w > wrap {
				rt.breakLine()
			}
			rt.addIcon(seg.Content, tex, w, iconH)
			continue
		}

		if seg.Content == "" {
			continue
		}
		lines := wrapText(nil, f, seg.Content, wrap-rt.cursorX)
		if rt.cursorX > 0 && lines[0].width > wrap-rt.cursorX {
			rt.breakLine()
			lines = wrapText(lines[:0], f, seg.Content, wrap)
		}
		if len(lines) > 1 {
			first := strings.TrimRight(seg.Content[:lines[0].end], " ")
			rest := seg.Content[lines[0].next:]
			if first != "" {
				rt.addText(first, lines[0].width)
			}
			segs = append(segs, Segment{})
			copy(segs[i+2:], segs[i+1:])
			segs[i+1] = Segment{Kind: SegmentText, Content: rest}
			rt.breakLine()
			continue
		}
		w, _ := f.MeasureString(seg.Content)
		rt.addText(seg.Content, w)
	}
	if rt.lineStart < len(rt.runs) {
		rt.breakLine()
	}
}

// icon resolves a token name to a texture, falling back to the placeholder.
func (rt *RichText) icon(name string) *Texture {
	if tex, ok := rt.style.Icons[name]; ok && tex != nil {
		return tex
	}
	debugf("rich text: unknown icon %q", name)
	if rt.style.Placeholder != nil {
		return rt.style.Placeholder
	}
	if tex := rt.style.Icons[PlaceholderIconName]; tex != nil {
		return tex
	}
	return Placeholder()
}

func (rt *RichText) addText(content string, w float64) {
	var n *Node
	if k := len(rt.textPool); k > 0 {
		n = rt.textPool[k-1]
		rt.textPool[k-1] = nil
		rt.textPool = rt.textPool[:k-1]
		n.TextBlock.Font = rt.style.Font
		n.TextBlock.SetContent(content)
		n.TextBlock.Invalidate()
	} else {
		n = NewText(rt.Node.Name+"-text", content, rt.style.Font)
	}
	n.TextBlock.Color = rt.style.Color
	h := rt.style.Font.LineHeight()
	rt.place(n, SegmentText, content, w, h)
}

func (rt *RichText) addIcon(name string, tex *Texture, w, h float64) {
	var n *Node
	pool := rt.iconPools[tex.Name]
	if k := len(pool); k > 0 {
		n = pool[k-1]
		pool[k-1] = nil
		rt.iconPools[tex.Name] = pool[:k-1]
	} else {
		n = NewSprite(rt.Node.Name+"-icon", tex)
	}
	n.Texture = tex
	if tex.Width > 0 && tex.Height > 0 {
		n.SetScale(w/tex.Width, h/tex.Height)
	}
	rt.place(n, SegmentIcon, name, w, h)
}

func (rt *RichText) place(n *Node, kind SegmentKind, content string, w, h float64) {
	n.SetPosition(rt.cursorX, rt.cursorY)
	rt.Node.AddChild(n)
	rt.runs = append(rt.runs, TextRun{
		Kind:    kind,
		Content: content,
		X:       rt.cursorX,
		Y:       rt.cursorY,
		W:       w,
		H:       h,
		Node:    n,
	})
	rt.cursorX += w
	rt.lineH = math.Max(rt.lineH, h)
	rt.width = math.Max(rt.width, rt.cursorX)
}

// breakLine bottom-aligns the runs of the current line and moves the cursor
// to the start of the next one. Empty lines still advance by a line height.
func (rt *RichText) breakLine() {
	lh := rt.lineH
	if rt.lineStart == len(rt.runs) {
		lh = rt.style.Font.LineHeight()
	}
	for i := rt.lineStart; i < len(rt.runs); i++ {
		r := &rt.runs[i]
		r.Y = rt.cursorY + lh - r.H
		r.Node.SetPosition(r.X, r.Y)
	}
	rt.lineStart = len(rt.runs)
	rt.cursorY += lh
	rt.cursorX = 0
	rt.lineH = 0
	rt.height = rt.cursorY
}
