package messages

import (
	"context"
	"errors"
	"image"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// monoFont is a measurement-only font: every rune is 10px wide.
type monoFont struct{}

func (monoFont) MeasureString(s string) (float64, float64) {
	return float64(utf8.RuneCountInString(s)) * 10, 20
}

func (monoFont) LineHeight() float64 { return 20 }
func (monoFont) Size() float64       { return 18 }
func (monoFont) Face() text.Face     { return nil }

func testConversation() *Conversation {
	return &Conversation{
		Dialogue: []Message{
			{Name: "Sheldon", Text: "Hi {smile} there"},
			{Name: "Penny", Text: "Hey"},
			{Name: "Stranger", Text: "who?"},
		},
		Emojies: []Asset{{Name: "smile", URL: "img/smile.png"}},
		Avatars: []Avatar{
			{Name: "Sheldon", URL: "img/sheldon.png", Position: SideRight},
			{Name: "Penny", URL: "img/penny.png", Position: SideLeft},
		},
	}
}

// fakeSource serves a fixed conversation and 8x8 images.
type fakeSource struct {
	mu       sync.Mutex
	conv     *Conversation
	err      error
	calls    int
	block    chan struct{}
	canceled chan struct{}
}

func (f *fakeSource) FetchConversation(ctx context.Context) (*Conversation, error) {
	f.mu.Lock()
	f.calls++
	conv, err, block, canceled := f.conv, f.err, f.block, f.canceled
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			if canceled != nil {
				close(canceled)
			}
			return nil, ctx.Err()
		}
	}
	return conv, err
}

func (f *fakeSource) FetchImage(ctx context.Context, url string) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 8, 8)), nil
}

func (f *fakeSource) set(conv *Conversation, err error) {
	f.mu.Lock()
	f.conv, f.err = conv, err
	f.mu.Unlock()
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

var errOffline = errors.New("offline")

func newTestScene(src Source) *Scene {
	return New(Config{Source: src, Font: monoFont{}, StatusFont: monoFont{}})
}

func waitLoaded(t *testing.T, s *Scene) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Wait(ctx); err != nil {
		t.Fatalf("Wait: %v", err)
	}
}
