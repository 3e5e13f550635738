// Package cards implements "Ace of Shadows": a deck of cards that rotates in
// place while, once a second, the top card flies in an arc onto the other deck.
package cards

import (
	"fmt"
	"math"

	"github.com/phanxgames/showcase"
)

// Title is the selector label of the scene.
const Title = "Ace of Shadows"

// CardTexture is the texture name used for every card.
const CardTexture = "card-back"

const (
	DefaultNumCards = 144

	cardSeparation = 0.3
	deckOffsetX    = 40.0
	padding        = 15.0

	deckRotationMS = 4000.0
	flightMS       = 2000.0
	triggerMS      = 1000.0
	peakHeight     = 100.0
	extraFlips     = -2.0
)

// Config configures a Scene.
type Config struct {
	// NumCards is the size of the card pool. Defaults to DefaultNumCards.
	NumCards int
}

// Scene moves a fixed pool of cards between two decks.
type Scene struct {
	showcase.BaseScene

	// OnCardLanded is called when a flying card settles on a deck.
	OnCardLanded func(card *showcase.Node, deck int)

	numCards   int
	cardW      float64
	cardH      float64
	decks      [2]*showcase.Node
	flying     *showcase.Node
	activeDeck int
	landed     int

	timeline     *showcase.Timeline
	deckSpin     *showcase.Tween
	trigger      *showcase.Tween
	flights      []*showcase.Tween
	gatherBuffer []*showcase.Node
}

// New creates the scene with every card stacked on the first deck.
func New(textures showcase.TextureSource, cfg Config) *Scene {
	if cfg.NumCards <= 0 {
		cfg.NumCards = DefaultNumCards
	}
	tex := textures.Texture(CardTexture)

	s := &Scene{
		numCards: cfg.NumCards,
		cardW:    tex.Width,
		cardH:    tex.Height,
		flying:   showcase.NewContainer("flying-cards"),
		timeline: showcase.NewTimeline(),
	}
	s.Init("ace-of-shadows", Title, s)
	root := s.Node()

	for i := range s.decks {
		s.decks[i] = showcase.NewContainer(fmt.Sprintf("deck-%d", i+1))
		root.AddChild(s.decks[i])
	}
	root.AddChild(s.flying)

	for i := 0; i < s.numCards; i++ {
		card := showcase.NewSprite(fmt.Sprintf("card-%d", i), tex)
		card.SetPivot(math.Round(s.cardW/2), math.Round(s.cardH/2))
		s.decks[0].AddChild(card)
	}

	diag := s.cardDiagonal()
	y := (s.baseHeight() - diag) / 2
	s.decks[0].SetPosition(-deckOffsetX, y)
	s.decks[1].SetPosition(deckOffsetX, y)

	s.deckSpin = s.timeline.NewTween(deckRotationMS, nil)
	s.deckSpin.Repeat = showcase.RepeatForever
	s.deckSpin.OnUpdate = s.spinDecks

	s.trigger = s.timeline.NewTween(triggerMS, nil)
	s.trigger.Repeat = showcase.RepeatForever
	s.trigger.OnRepeat = s.launch

	s.Reset()
	return s
}

func (s *Scene) cardDiagonal() float64 {
	return math.Hypot(s.cardW, s.cardH)
}

func (s *Scene) baseHeight() float64 {
	return float64(s.numCards-1)*cardSeparation + peakHeight + s.cardDiagonal()
}

// Reset gathers every card back onto the first deck and restarts the
// animation from time zero.
func (s *Scene) Reset() {
	s.timeline.Reset()

	cards := s.gatherBuffer[:0]
	for _, c := range []*showcase.Node{s.decks[0], s.decks[1], s.flying} {
		cards = append(cards, c.Children()...)
	}
	for i, card := range cards {
		s.decks[0].AddChild(card)
		card.Name = fmt.Sprintf("card-%d", i)
		card.SetPosition(0, -float64(i)*cardSeparation)
		card.SetScale(1, 1)
		card.SetRotation(0)
	}
	clear(cards)
	s.gatherBuffer = cards[:0]

	s.activeDeck = 0
	s.landed = 0
	s.deckSpin.Start(0)
	s.trigger.Start(0)
}

// Resize scales the decks and the flight arc to fit w x h with padding.
func (s *Scene) Resize(w, h float64) {
	s.BaseScene.Resize(w, h)
	tw := w - 2*padding
	th := h - 2*padding
	baseW := s.cardDiagonal() + 2*deckOffsetX
	k := math.Min(tw/baseW, th/s.baseHeight())
	root := s.Node()
	root.SetScale(k, k)
	root.SetPosition(padding+tw/2, padding+th/2)
}

// Update advances the animation clock by deltaMS.
func (s *Scene) Update(deltaMS float64) bool {
	if !s.BaseScene.Update(deltaMS) {
		return false
	}
	s.timeline.Advance(deltaMS)
	return true
}

// Destroy stops every tween and disposes the cards.
func (s *Scene) Destroy() {
	if s.Destroyed() {
		return
	}
	s.timeline.Reset()
	s.flights = nil
	s.OnCardLanded = nil
	s.BaseScene.Destroy()
}

func (s *Scene) spinDecks(progress float64) {
	rot := 2 * math.Pi * progress
	for _, deck := range s.decks {
		for _, card := range deck.Children() {
			card.SetRotation(rot)
		}
	}
}

func (s *Scene) airborne() int {
	n := 0
	for _, tw := range s.flights {
		if tw.IsPlaying() {
			n++
		}
	}
	return n
}

// launch sends the top card of the active deck toward the other deck. When
// the active deck is empty it switches decks, but only once no card from it
// is still in the air.
func (s *Scene) launch() {
	src := s.decks[s.activeDeck]
	if src.NumChildren() == 0 {
		if s.airborne() > 0 {
			return
		}
		s.activeDeck = (s.activeDeck + 1) % len(s.decks)
		src = s.decks[s.activeDeck]
		if src.NumChildren() == 0 {
			return
		}
	}
	dstIndex := (s.activeDeck + 1) % len(s.decks)
	dst := s.decks[dstIndex]

	card := src.LastChild()
	s.flying.ReparentChild(card)
	startX, startY, startRot := card.X, card.Y, card.Rotation

	targetIndex := dst.NumChildren() + s.airborne()
	endX, endY := showcase.ConvertPoint(dst, s.flying, 0, -float64(targetIndex)*cardSeparation)
	endRot := startRot + 2*math.Pi*(extraFlips+flightMS/deckRotationMS)
	_, peakY := showcase.ConvertPoint(src, s.flying, 0, -float64(s.numCards-1)*cardSeparation-peakHeight)

	lerpX := showcase.LinearLerp(startX, endX)
	lerpY := showcase.ParabolicLerp(startY, endY, peakY)
	lerpRot := showcase.LinearLerp(startRot, endRot)

	tw := s.flightTween()
	tw.OnUpdate = func(t float64) {
		card.X = lerpX(t)
		card.Y = lerpY(t)
		card.Rotation = lerpRot(t)
		card.MarkDirty()
	}
	tw.OnComplete = func() {
		dst.AddChild(card)
		card.SetPosition(0, -float64(dst.NumChildren()-1)*cardSeparation)
		tw.OnUpdate = nil
		tw.OnComplete = nil
		s.landed++
		if s.OnCardLanded != nil {
			s.OnCardLanded(card, dstIndex)
		}
	}
	tw.Start(s.timeline.Now())
}

// flightTween returns an idle flight tween, allocating one if all are busy.
func (s *Scene) flightTween() *showcase.Tween {
	for _, tw := range s.flights {
		if !tw.IsPlaying() {
			return tw
		}
	}
	tw := s.timeline.NewTween(flightMS, nil)
	s.flights = append(s.flights, tw)
	return tw
}

// Counts reports how many cards sit on each deck and how many are flying.
func (s *Scene) Counts() (deckA, deckB, flying int) {
	return s.decks[0].NumChildren(), s.decks[1].NumChildren(), s.flying.NumChildren()
}

// ActiveDeck returns the index of the deck cards are currently taken from.
func (s *Scene) ActiveDeck() int { return s.activeDeck }

// Deck returns deck i (0 or 1).
func (s *Scene) Deck(i int) *showcase.Node { return s.decks[i] }

// Status is a one-line summary for monitors.
func (s *Scene) Status() string {
	a, b, f := s.Counts()
	return fmt.Sprintf("deck A %d | deck B %d | flying %d | landed %d | t=%.0fms", a, b, f, s.landed, s.timeline.Now())
}
