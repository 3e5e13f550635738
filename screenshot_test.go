package showcase

import "testing"

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-spawn", "after-spawn"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueueAppend(t *testing.T) {
	app := newTestApp()
	app.Screenshot("a")
	app.Screenshot("b")
	if len(app.screenshotQueue) != 2 || app.screenshotQueue[0] != "a" || app.screenshotQueue[1] != "b" {
		t.Errorf("queue = %v, want [a b]", app.screenshotQueue)
	}
}

func TestScreenshotDirDefault(t *testing.T) {
	if dir := newTestApp().screenshotDir; dir != "screenshots" {
		t.Errorf("screenshotDir = %q, want %q", dir, "screenshots")
	}
}

func TestUnpremultiply(t *testing.T) {
	pix := []byte{
		64, 32, 0, 128,  // half alpha
		10, 20, 30, 255, // opaque untouched
		0, 0, 0, 0,      // transparent untouched
	}
	unpremultiply(pix)
	want := []byte{127, 63, 0, 128, 10, 20, 30, 255, 0, 0, 0, 0}
	for i := range want {
		if pix[i] != want[i] {
			t.Errorf("pix[%d] = %d, want %d", i, pix[i], want[i])
		}
	}
}
