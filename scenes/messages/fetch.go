package messages

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"time"

	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// DefaultURL is the public conversation endpoint.
const DefaultURL = "https://private-624120-softgamesassignment.apiary-mock.com/v2/magicwords"

// DefaultTimeout bounds every request made by a Fetcher from NewFetcher.
const DefaultTimeout = 15 * time.Second

// maxParallelFetches limits concurrent image downloads.
const maxParallelFetches = 6

// maxBodySize caps how much of a response is read.
const maxBodySize = 8 << 20

// Source provides the conversation and the images it references.
type Source interface {
	FetchConversation(ctx context.Context) (*Conversation, error)
	FetchImage(ctx context.Context, url string) (image.Image, error)
}

// Fetcher is the HTTP Source. Relative image URLs resolve against URL.
type Fetcher struct {
	URL    string
	Client *http.Client
}

// NewFetcher returns a Fetcher for endpoint with a timeout-bound client.
func NewFetcher(endpoint string) *Fetcher {
	if endpoint == "" {
		endpoint = DefaultURL
	}
	return &Fetcher{URL: endpoint, Client: &http.Client{Timeout: DefaultTimeout}}
}

func (f *Fetcher) client() *http.Client {
	if f.Client != nil {
		return f.Client
	}
	return http.DefaultClient
}

func (f *Fetcher) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("showcase: request %s: %w", target, err)
	}
	req.Header.Set("Cache-Control", "no-store")
	resp, err := f.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("showcase: get %s: %w", target, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s (%d)", ErrBadStatus, target, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("showcase: read %s: %w", target, err)
	}
	return body, nil
}

// FetchConversation downloads and validates the conversation.
func (f *Fetcher) FetchConversation(ctx context.Context) (*Conversation, error) {
	body, err := f.get(ctx, f.URL)
	if err != nil {
		return nil, err
	}
	return ParseConversation(body)
}

// FetchImage downloads and decodes a PNG, JPEG, GIF or WebP image.
func (f *Fetcher) FetchImage(ctx context.Context, ref string) (image.Image, error) {
	target, err := f.resolve(ref)
	if err != nil {
		return nil, err
	}
	body, err := f.get(ctx, target)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("showcase: decode %s: %w", target, err)
	}
	return img, nil
}

func (f *Fetcher) resolve(ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("showcase: bad image url %q: %w", ref, err)
	}
	if u.IsAbs() {
		return ref, nil
	}
	base, err := url.Parse(f.URL)
	if err != nil {
		return "", fmt.Errorf("showcase: bad endpoint %q: %w", f.URL, err)
	}
	return base.ResolveReference(u).String(), nil
}

// assets is everything a load produces, before any GPU image exists.
type assets struct {
	conversation *Conversation
	emojis       []image.Image // parallel to conversation.Emojies
	avatars      []image.Image // parallel to conversation.Avatars
}

// fetchAssets loads the conversation, then every emoji and avatar image
// concurrently. The first failure cancels the remaining downloads.
func fetchAssets(ctx context.Context, src Source) (*assets, error) {
	conv, err := src.FetchConversation(ctx)
	if err != nil {
		return nil, err
	}
	a := &assets{
		conversation: conv,
		emojis:       make([]image.Image, len(conv.Emojies)),
		avatars:      make([]image.Image, len(conv.Avatars)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelFetches)
	fetch := func(dst []image.Image, i int, kind, name, ref string) {
		g.Go(func() error {
			img, err := src.FetchImage(gctx, ref)
			if err != nil {
				return fmt.Errorf("showcase: %s %q: %w", kind, name, err)
			}
			dst[i] = img
			return nil
		})
	}
	for i, e := range conv.Emojies {
		fetch(a.emojis, i, "emoji", e.Name, e.URL)
	}
	for i, av := range conv.Avatars {
		fetch(a.avatars, i, "avatar", av.Name, av.URL)
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return a, nil
}
