// Package engine implements the Evolution round engine.
//
// A Game owns its players, the watering hole and the deck, and drives each
// round through the Deal, Action, Reveal, Feed and Bag steps. Strategies are
// consulted through the Chooser interface and only ever see read-only
// observations of the game.
package engine

import (
	"fmt"
	"math/rand/v2"
	"sort"
)

const (
	MaxPopulation       = 7
	MaxBodySize         = 7
	MaxTraits           = 3
	HardShellProtection = 4
	CardsPerExtinction  = 2
	BaseHandSize        = 3
	MinPlayers          = 3
	MaxPlayers          = 8

	MaxCarnivoreFood = 8
	MaxTraitFood     = 3
	CarnivoreCards   = 2*MaxCarnivoreFood + 1 // 17
	TraitCards       = 2*MaxTraitFood + 1     // 7
	DeckSize         = CarnivoreCards + (NumTraits-1)*TraitCards
)

// ---------------------------------------------------------------------------
// Traits
// ---------------------------------------------------------------------------

// Trait is a modifier on a species. Trait values are declared in the
// lexicographic order of their names, so comparing two traits compares
// their names.
type Trait uint8

const (
	Ambush Trait = iota
	Burrowing
	Carnivore
	Climbing
	Cooperation
	FatTissue
	Fertile
	Foraging
	HardShell
	Herding
	Horns
	LongNeck
	PackHunting
	Scavenger
	Symbiosis
	WarningCall

	NumTraits = 16
)

var traitNames = [NumTraits]string{
	Ambush:      "ambush",
	Burrowing:   "burrowing",
	Carnivore:   "carnivore",
	Climbing:    "climbing",
	Cooperation: "cooperation",
	FatTissue:   "fat-tissue",
	Fertile:     "fertile",
	Foraging:    "foraging",
	HardShell:   "hard-shell",
	Herding:     "herding",
	Horns:       "horns",
	LongNeck:    "long-neck",
	PackHunting: "pack-hunting",
	Scavenger:   "scavenger",
	Symbiosis:   "symbiosis",
	WarningCall: "warning-call",
}

// String returns the trait's canonical name.
func (t Trait) String() string {
	if int(t) < NumTraits {
		return traitNames[t]
	}
	return fmt.Sprintf("trait(%d)", uint8(t))
}

// Valid reports whether t is one of the sixteen traits.
func (t Trait) Valid() bool { return int(t) < NumTraits }

// ParseTrait looks a trait up by its canonical name.
func ParseTrait(name string) (Trait, bool) {
	for i, n := range traitNames {
		if n == name {
			return Trait(i), true
		}
	}
	return 0, false
}

// TraitNames returns the canonical names of all traits in order.
func TraitNames() []string {
	out := make([]string, NumTraits)
	copy(out, traitNames[:])
	return out
}

// ---------------------------------------------------------------------------
// Cards
// ---------------------------------------------------------------------------

// Card is a species card: a food value played at the watering hole and a
// trait usable on a species.
type Card struct {
	Food  int
	Trait Trait
}

// NewCard returns a card after checking its food value against the trait's
// range.
func NewCard(food int, t Trait) (Card, error) {
	c := Card{Food: food, Trait: t}
	if !c.Valid() {
		return Card{}, fmt.Errorf("card %d %s: food value out of range [%d, %d]", food, t, -c.maxFood(), c.maxFood())
	}
	return c, nil
}

func (c Card) maxFood() int {
	if c.Trait == Carnivore {
		return MaxCarnivoreFood
	}
	return MaxTraitFood
}

// Valid reports whether the card's trait exists and its food value is in
// range for that trait.
func (c Card) Valid() bool {
	if !c.Trait.Valid() {
		return false
	}
	m := c.maxFood()
	return c.Food >= -m && c.Food <= m
}

// String renders the card as "trait(+food)".
func (c Card) String() string {
	return fmt.Sprintf("%s(%+d)", c.Trait, c.Food)
}

// Compare orders cards by trait name, then by food value.
func (c Card) Compare(o Card) int {
	switch {
	case c.Trait < o.Trait:
		return -1
	case c.Trait > o.Trait:
		return 1
	case c.Food < o.Food:
		return -1
	case c.Food > o.Food:
		return 1
	}
	return 0
}

// StandardDeck returns the full 122 card deck in card order.
func StandardDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for t := Trait(0); int(t) < NumTraits; t++ {
		m := MaxTraitFood
		if t == Carnivore {
			m = MaxCarnivoreFood
		}
		for f := -m; f <= m; f++ {
			deck = append(deck, Card{Food: f, Trait: t})
		}
	}
	return deck
}

// ShuffledDeck returns the standard deck shuffled by a PCG seeded with
// seed. Seed 0 returns the deck in card order.
func ShuffledDeck(seed uint64) []Card {
	deck := StandardDeck()
	if seed == 0 {
		return deck
	}
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	r.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	return deck
}

// SortCards sorts cards in place by card order.
func SortCards(cards []Card) {
	sort.SliceStable(cards, func(i, j int) bool { return cards[i].Compare(cards[j]) < 0 })
}

// maxCardsOf returns how many cards of trait t the standard deck holds.
func maxCardsOf(t Trait) int {
	if t == Carnivore {
		return CarnivoreCards
	}
	return TraitCards
}
