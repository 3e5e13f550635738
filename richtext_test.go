package showcase

import (
	"math"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []Segment
	}{
		{"Hi {smile} there", []Segment{
			{SegmentText, "Hi "}, {SegmentIcon, "smile"}, {SegmentText, " there"},
		}},
		{"{a}{b}", []Segment{{SegmentIcon, "a"}, {SegmentIcon, "b"}}},
		{"plain", []Segment{{SegmentText, "plain"}}},
		{"{not a token}", []Segment{{SegmentText, "{not a token}"}}},
		{"{}", []Segment{{SegmentText, "{}"}}},
		{"x{y_1}", []Segment{{SegmentText, "x"}, {SegmentIcon, "y_1"}}},
		{"", nil},
	}
	for _, tt := range tests {
		got := Tokenize(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Tokenize(%q)[%d] = %v, want %v", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func testStyle(wrap float64) RichTextStyle {
	return RichTextStyle{
		Font:        newMonoFont(),
		WrapWidth:   wrap,
		Icons:       map[string]*Texture{"smile": sizedTexture("smile", 10, 10)},
		Placeholder: sizedTexture(PlaceholderIconName, 10, 10),
	}
}

func TestRichTextSingleLine(t *testing.T) {
	rt := NewRichText("rt", "Hi {smile} there", testStyle(500))
	runs := rt.Runs()
	want := []struct {
		kind    SegmentKind
		content string
	}{
		{SegmentText, "Hi "}, {SegmentIcon, "smile"}, {SegmentText, " there"},
	}
	if len(runs) != len(want) {
		t.Fatalf("runs = %d, want %d", len(runs), len(want))
	}
	prevX := -1.0
	for i, r := range runs {
		if r.Kind != want[i].kind || r.Content != want[i].content {
			t.Errorf("run %d = %v %q, want %v %q", i, r.Kind, r.Content, want[i].kind, want[i].content)
		}
		if r.X < prevX {
			t.Errorf("run %d X = %v decreased from %v", i, r.X, prevX)
		}
		prevX = r.X
	}
	// Trailing space of "Hi " advances the cursor.
	if runs[1].X != 30 {
		t.Errorf("icon X = %v, want 30", runs[1].X)
	}
	if math.Abs(runs[1].H-16*DefaultIconScale) > 1e-9 {
		t.Errorf("icon height = %v, want %v", runs[1].H, 16*DefaultIconScale)
	}
	// Icon and text share a line and are bottom aligned.
	if math.Abs((runs[0].Y+runs[0].H)-(runs[1].Y+runs[1].H)) > 1e-9 {
		t.Errorf("runs not bottom aligned: %v+%v vs %v+%v", runs[0].Y, runs[0].H, runs[1].Y, runs[1].H)
	}
	if rt.Node.NumChildren() != 3 {
		t.Errorf("children = %d, want 3", rt.Node.NumChildren())
	}
}

func TestRichTextUnknownIconUsesPlaceholder(t *testing.T) {
	style := testStyle(500)
	rt := NewRichText("rt", "oh {nope}", style)
	runs := rt.Runs()
	if len(runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(runs))
	}
	if runs[1].Content != "nope" || runs[1].Node.Texture != style.Placeholder {
		t.Errorf("unknown icon run = %q texture %v", runs[1].Content, runs[1].Node.Texture.Name)
	}
}

func TestRichTextUnknownIconFallsBackToIconMap(t *testing.T) {
	style := testStyle(500)
	fallback := sizedTexture("bundle-unknown", 10, 10)
	style.Placeholder = nil
	style.Icons = map[string]*Texture{
		"smile":             style.Icons["smile"],
		PlaceholderIconName: fallback,
	}
	rt := NewRichText("rt", "{smile}{nope}", style)
	runs := rt.Runs()
	if len(runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(runs))
	}
	if runs[0].Node.Texture != style.Icons["smile"] {
		t.Errorf("known icon texture = %q", runs[0].Node.Texture.Name)
	}
	if runs[1].Node.Texture != fallback {
		t.Errorf("unknown icon texture = %q, want %q", runs[1].Node.Texture.Name, fallback.Name)
	}
}

func TestRichTextSplitsSegmentMidLine(t *testing.T) {
	rt := NewRichText("rt", "abcde{smile}one two three four", testStyle(100))
	runs := rt.Runs()
	// abcde | smile | one / two three / four
	if len(runs) != 5 {
		t.Fatalf("runs = %+v", runs)
	}
	first := runs[2]
	remaining := 100 - first.X
	if first.Content != "one" {
		t.Errorf("first part = %q, want %q", first.Content, "one")
	}
	if first.W > remaining {
		t.Errorf("first part width %v exceeds remaining %v", first.W, remaining)
	}
	second := runs[3]
	if second.X != 0 || second.Y <= first.Y {
		t.Errorf("second part at (%v, %v), want a new line below %v", second.X, second.Y, first.Y)
	}
	if second.Content != "two three" || runs[4].Content != "four" {
		t.Errorf("continuation = %q, %q", second.Content, runs[4].Content)
	}
	for _, r := range runs {
		if r.Kind == SegmentText && r.X+r.W > 100 {
			t.Errorf("run %q overflows: x=%v w=%v", r.Content, r.X, r.W)
		}
	}
}

func TestRichTextWrapsWholeSegmentWhenFirstLineCannotFit(t *testing.T) {
	rt := NewRichText("rt", "abcdefg{smile}hijklm", testStyle(100))
	runs := rt.Runs()
	if len(runs) != 3 {
		t.Fatalf("runs = %+v", runs)
	}
	if runs[2].Content != "hijklm" || runs[2].X != 0 || runs[2].Y <= runs[0].Y {
		t.Errorf("segment not moved to a fresh line: %+v", runs[2])
	}
}

func TestRichTextIconWrapsFirst(t *testing.T) {
	rt := NewRichText("rt", "abcdefghi{smile}", testStyle(100))
	runs := rt.Runs()
	if runs[1].X != 0 || runs[1].Y <= runs[0].Y {
		t.Errorf("icon should wrap to a new line: %+v", runs[1])
	}
}

func TestRichTextEmptySegmentsEmitNothing(t *testing.T) {
	rt := NewRichText("rt", "{smile}{smile}", testStyle(500))
	if got := len(rt.Runs()); got != 2 {
		t.Errorf("runs = %d, want 2", got)
	}
}

func TestRichTextNewlines(t *testing.T) {
	rt := NewRichText("rt", "ab\ncd", testStyle(500))
	runs := rt.Runs()
	if len(runs) != 2 || runs[1].X != 0 || runs[1].Y != 20 {
		t.Errorf("runs = %+v", runs)
	}
	if _, h := rt.Size(); h != 40 {
		t.Errorf("height = %v, want 40", h)
	}
}

func TestRichTextUnchangedInputsAreNoOps(t *testing.T) {
	rt := NewRichText("rt", "Hi {smile}", testStyle(500))
	before := rt.layoutCount
	rt.SetText("Hi {smile}")
	rt.SetWrapWidth(500)
	if rt.layoutCount != before {
		t.Errorf("layouts = %d, want %d", rt.layoutCount, before)
	}
	rt.SetWrapWidth(200)
	rt.SetText("Bye")
	if rt.layoutCount != before+2 {
		t.Errorf("layouts = %d, want %d", rt.layoutCount, before+2)
	}
}

func TestRichTextReusesPooledNodes(t *testing.T) {
	rt := NewRichText("rt", "a {smile} b", testStyle(500))
	old := map[*Node]bool{}
	for _, r := range rt.Runs() {
		old[r.Node] = true
	}
	rt.SetText("c {smile}")
	for _, r := range rt.Runs() {
		if !old[r.Node] {
			t.Errorf("run %q got a fresh node", r.Content)
		}
	}
	if len(rt.textPool) != 1 {
		t.Errorf("text pool = %d, want 1", len(rt.textPool))
	}
	if rt.Runs()[0].Node.TextBlock.Content != "c " {
		t.Errorf("reused node content = %q", rt.Runs()[0].Node.TextBlock.Content)
	}
}

func TestRichTextDestroy(t *testing.T) {
	rt := NewRichText("rt", "a {smile}", testStyle(500))
	rt.Destroy()
	rt.Destroy()
	if !rt.Node.IsDisposed() {
		t.Error("node not disposed")
	}
	rt.SetText("ignored")
	if rt.Text() != "a {smile}" {
		t.Error("SetText after Destroy should be ignored")
	}
}
