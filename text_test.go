package showcase

import "testing"

func lineStrings(s string, lines []wrappedLine) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = s[l.start:l.end]
	}
	return out
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width float64
		want  []string
	}{
		{"no wrap", "aaa bbb ccc", 0, []string{"aaa bbb ccc"}},
		{"fits", "aaa bbb", 70, []string{"aaa bbb"}},
		{"breaks at space", "aaa bbb ccc", 75, []string{"aaa bbb ", "ccc"}},
		{"long word alone", "a bbbbbbbbbb c", 50, []string{"a ", "bbbbbbbbbb ", "c"}},
		{"newline", "ab\ncd", 0, []string{"ab", "cd"}},
		{"trailing newline", "ab\n", 0, []string{"ab", ""}},
		{"leading spaces kept", "  ab", 0, []string{"  ab"}},
	}
	f := newMonoFont()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lineStrings(tt.in, wrapText(nil, f, tt.in, tt.width))
			if len(got) != len(tt.want) {
				t.Fatalf("lines = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestWrapTextWidthExcludesTrailingSpaces(t *testing.T) {
	lines := wrapText(nil, newMonoFont(), "aaa bbb ccc", 75)
	if lines[0].width != 70 {
		t.Errorf("width = %v, want 70", lines[0].width)
	}
	if lines[0].next != 8 {
		t.Errorf("next = %d, want 8", lines[0].next)
	}
}

func TestTextBlockMeasure(t *testing.T) {
	n := NewText("t", "aaa bbb ccc", newMonoFont())
	n.TextBlock.WrapWidth = 75
	n.TextBlock.Invalidate()
	w, h := n.TextBlock.Measure()
	if w != 70 || h != 40 {
		t.Errorf("Measure = (%v, %v), want (70, 40)", w, h)
	}
	if n.TextBlock.NumLines() != 2 || n.TextBlock.Line(1) != "ccc" {
		t.Errorf("lines = %d, second %q", n.TextBlock.NumLines(), n.TextBlock.Line(1))
	}

	n.TextBlock.SetContent("")
	if w, h := n.TextBlock.Measure(); w != 0 || h != 0 {
		t.Errorf("empty Measure = (%v, %v)", w, h)
	}
}

func TestTextNodeSize(t *testing.T) {
	n := NewText("t", "abcd", newMonoFont())
	w, h := n.Size()
	if w != 40 || h != 20 {
		t.Errorf("Size = (%v, %v), want (40, 20)", w, h)
	}
}
