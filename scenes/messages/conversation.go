package messages

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrInvalidConversation is returned when a response does not have the
	// expected shape.
	ErrInvalidConversation = errors.New("showcase: invalid conversation")
	// ErrBadStatus is returned for non-2xx HTTP responses.
	ErrBadStatus = errors.New("showcase: unexpected HTTP status")
)

// Side is the edge of the feed a speaker's messages hug.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Message is one line of dialogue.
type Message struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// Asset names a remote image.
type Asset struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Avatar is a speaker's picture and side.
type Avatar struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Position Side   `json:"position"`
}

// Conversation is the payload of the conversation endpoint. Emoji tokens in
// message text look like {name} and refer to Emojies by name.
type Conversation struct {
	Dialogue []Message `json:"dialogue"`
	Emojies  []Asset   `json:"emojies"`
	Avatars  []Avatar  `json:"avatars"`
}

// AvatarFor returns the avatar registered for name.
func (c *Conversation) AvatarFor(name string) (Avatar, bool) {
	for _, a := range c.Avatars {
		if a.Name == name {
			return a, true
		}
	}
	return Avatar{}, false
}

// ParseConversation decodes and validates a conversation. All three arrays
// must be present, every entry must carry its string fields, and avatar
// positions must be "left" or "right".
func ParseConversation(data []byte) (*Conversation, error) {
	var raw struct {
		Dialogue *[]*struct {
			Name *string `json:"name"`
			Text *string `json:"text"`
		} `json:"dialogue"`
		Emojies *[]*struct {
			Name *string `json:"name"`
			URL  *string `json:"url"`
		} `json:"emojies"`
		Avatars *[]*struct {
			Name     *string `json:"name"`
			URL      *string `json:"url"`
			Position *string `json:"position"`
		} `json:"avatars"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConversation, err)
	}
	switch {
	case raw.Dialogue == nil:
		return nil, invalid("missing dialogue")
	case raw.Emojies == nil:
		return nil, invalid("missing emojies")
	case raw.Avatars == nil:
		return nil, invalid("missing avatars")
	}

	c := &Conversation{
		Dialogue: make([]Message, 0, len(*raw.Dialogue)),
		Emojies:  make([]Asset, 0, len(*raw.Emojies)),
		Avatars:  make([]Avatar, 0, len(*raw.Avatars)),
	}
	for i, m := range *raw.Dialogue {
		if m == nil || m.Name == nil || m.Text == nil {
			return nil, invalid("dialogue[%d]: needs name and text", i)
		}
		c.Dialogue = append(c.Dialogue, Message{Name: *m.Name, Text: *m.Text})
	}
	for i, e := range *raw.Emojies {
		if e == nil || e.Name == nil || e.URL == nil {
			return nil, invalid("emojies[%d]: needs name and url", i)
		}
		c.Emojies = append(c.Emojies, Asset{Name: *e.Name, URL: *e.URL})
	}
	for i, a := range *raw.Avatars {
		if a == nil || a.Name == nil || a.URL == nil || a.Position == nil {
			return nil, invalid("avatars[%d]: needs name, url and position", i)
		}
		side := Side(*a.Position)
		if side != SideLeft && side != SideRight {
			return nil, invalid("avatars[%d]: bad position %q", i, *a.Position)
		}
		c.Avatars = append(c.Avatars, Avatar{Name: *a.Name, URL: *a.URL, Position: side})
	}
	return c, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidConversation}, args...)...)
}
