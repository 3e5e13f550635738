// Package scenes assembles the three showcase scenes in selector order.
package scenes

import (
	"github.com/phanxgames/showcase"
	"github.com/phanxgames/showcase/scenes/cards"
	"github.com/phanxgames/showcase/scenes/fire"
	"github.com/phanxgames/showcase/scenes/messages"
)

// Options tweaks the scenes built by New. The zero value gives the defaults.
type Options struct {
	// ConversationURL overrides messages.DefaultURL.
	ConversationURL string
	// OnCardLanded is called each time a card settles on deck 0 or 1.
	OnCardLanded func(deck int)
}

// New builds Ace of Shadows, Magic Words and Phoenix Flame.
func New(textures showcase.TextureSource, opts Options) []showcase.Scene {
	deck := cards.New(textures, cards.Config{})
	if opts.OnCardLanded != nil {
		deck.OnCardLanded = func(_ *showcase.Node, i int) { opts.OnCardLanded(i) }
	}

	url := opts.ConversationURL
	if url == "" {
		url = messages.DefaultURL
	}
	chatCfg := messages.Config{Source: messages.NewFetcher(url)}
	if l, ok := textures.(showcase.TextureLookup); ok {
		chatCfg.Textures = l
	}
	chat := messages.New(chatCfg)

	return []showcase.Scene{deck, chat, fire.New(textures, fire.Config{})}
}

// Add mounts every scene on app.
func Add(app *showcase.App, scenes []showcase.Scene) {
	for _, s := range scenes {
		app.AddScene(s)
	}
}
