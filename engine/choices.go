package engine

import (
	"fmt"
	"slices"
)

// ---------------------------------------------------------------------------
// Action choices
// ---------------------------------------------------------------------------

// Growth spends the hand card at Card to grow the species at Species.
type Growth struct {
	Species int
	Card    int
}

// BoardTrade spends the hand card at Card for a new species on the right of
// the domain, evolving it with the traits of the cards at Traits.
type BoardTrade struct {
	Card   int
	Traits []int
}

// TraitTrade replaces trait Trait of species Species with the trait of the
// hand card at Card.
type TraitTrade struct {
	Species int
	Trait   int
	Card    int
}

// ActionChoice is a player's whole Action step. Card indices refer to the
// hand before the choice is applied, and no index may appear twice. Board
// trades are applied first, so growths and trait trades may address the
// species they create.
type ActionChoice struct {
	FoodCard          int
	PopulationGrowths []Growth
	BodyGrowths       []Growth
	BoardTrades       []BoardTrade
	TraitTrades       []TraitTrade
}

// cardIndices lists every hand index the choice spends, in field order.
func (c ActionChoice) cardIndices() []int {
	idxs := []int{c.FoodCard}
	for _, bt := range c.BoardTrades {
		idxs = append(idxs, bt.Card)
		idxs = append(idxs, bt.Traits...)
	}
	for _, g := range c.PopulationGrowths {
		idxs = append(idxs, g.Card)
	}
	for _, g := range c.BodyGrowths {
		idxs = append(idxs, g.Card)
	}
	for _, tt := range c.TraitTrades {
		idxs = append(idxs, tt.Card)
	}
	return idxs
}

// Validate checks the choice's indices against a player without changing
// it: every card index distinct and in the hand, every species index in the
// domain as it will be after the board trades, and every trait index on
// that species.
func (c ActionChoice) Validate(p *Player) error {
	seen := make(map[int]bool)
	for _, i := range c.cardIndices() {
		if i < 0 || i >= len(p.hand) {
			return choiceErr("card index %d out of range (hand size %d)", i, len(p.hand))
		}
		if seen[i] {
			return choiceErr("card index %d used twice", i)
		}
		seen[i] = true
	}

	traitCounts := make([]int, 0, p.domain.Len()+len(c.BoardTrades))
	for _, s := range p.domain.species {
		traitCounts = append(traitCounts, s.TraitCount())
	}
	for _, bt := range c.BoardTrades {
		if len(bt.Traits) > MaxTraits {
			return choiceErr("board trade with %d traits, at most %d", len(bt.Traits), MaxTraits)
		}
		traitCounts = append(traitCounts, len(bt.Traits))
	}
	for _, g := range slices.Concat(c.PopulationGrowths, c.BodyGrowths) {
		if g.Species < 0 || g.Species >= len(traitCounts) {
			return choiceErr("growth species %d out of range (%d species)", g.Species, len(traitCounts))
		}
	}
	for _, tt := range c.TraitTrades {
		if tt.Species < 0 || tt.Species >= len(traitCounts) {
			return choiceErr("trait trade species %d out of range (%d species)", tt.Species, len(traitCounts))
		}
		if tt.Trait < 0 || tt.Trait >= traitCounts[tt.Species] {
			return choiceErr("trait index %d out of range (%d traits)", tt.Trait, traitCounts[tt.Species])
		}
	}
	return nil
}

// applyAction validates c and applies it to p, returning the card played as
// food. On error p may be partly changed, so callers apply to a clone.
func applyAction(p *Player, c ActionChoice) (Card, error) {
	if err := c.Validate(p); err != nil {
		return Card{}, err
	}
	cards := p.removeCards(c.cardIndices())

	for _, bt := range c.BoardTrades {
		idx := p.domain.Add(Right)
		s := p.domain.At(idx)
		for _, ti := range bt.Traits {
			if err := s.Evolve(cards[ti].Trait); err != nil {
				return Card{}, fmt.Errorf("%w: board trade: %w", ErrInvalidChoice, err)
			}
		}
	}
	for _, g := range c.PopulationGrowths {
		if err := p.domain.At(g.Species).Breed(); err != nil {
			return Card{}, fmt.Errorf("%w: species %d: %w", ErrInvalidChoice, g.Species, err)
		}
	}
	for _, g := range c.BodyGrowths {
		if err := p.domain.At(g.Species).Grow(); err != nil {
			return Card{}, fmt.Errorf("%w: species %d: %w", ErrInvalidChoice, g.Species, err)
		}
	}
	for _, tt := range c.TraitTrades {
		if err := p.domain.At(tt.Species).ExchangeTrait(tt.Trait, cards[tt.Card].Trait); err != nil {
			return Card{}, fmt.Errorf("%w: species %d: %w", ErrInvalidChoice, tt.Species, err)
		}
	}
	return cards[c.FoodCard], nil
}

// ---------------------------------------------------------------------------
// Feed choices
// ---------------------------------------------------------------------------

// FeedKind tells which kind of feeding a FeedChoice is.
type FeedKind uint8

const (
	KindAbstain FeedKind = iota
	KindFeed
	KindStore
	KindAttack
)

var feedKindNames = [...]string{"abstain", "feed", "store", "attack"}

func (k FeedKind) String() string {
	if int(k) < len(feedKindNames) {
		return feedKindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// FeedChoice is one feeding. Fields not used by the kind are zero, so
// choices compare with ==.
//
// Opponent is a rank in turn order counted from the player after the
// current one; the rank equal to the number of opponents is the current
// player itself.
type FeedChoice struct {
	Kind     FeedKind
	Species  int
	Amount   int
	Opponent int
	Defender int
}

// Abstain ends the player's feeding for the round.
func Abstain() FeedChoice { return FeedChoice{Kind: KindAbstain} }

// Feed feeds a vegetarian species from the watering hole.
func Feed(species int) FeedChoice { return FeedChoice{Kind: KindFeed, Species: species} }

// Store moves amount tokens into a FatTissue species' fat store.
func Store(species, amount int) FeedChoice {
	return FeedChoice{Kind: KindStore, Species: species, Amount: amount}
}

// Attack has a carnivore attack species defender of the opponent at rank
// opponent.
func Attack(species, opponent, defender int) FeedChoice {
	return FeedChoice{Kind: KindAttack, Species: species, Opponent: opponent, Defender: defender}
}

func (c FeedChoice) String() string {
	switch c.Kind {
	case KindAbstain:
		return "abstain"
	case KindFeed:
		return fmt.Sprintf("feed(%d)", c.Species)
	case KindStore:
		return fmt.Sprintf("store(%d, %d)", c.Species, c.Amount)
	case KindAttack:
		return fmt.Sprintf("attack(%d, %d, %d)", c.Species, c.Opponent, c.Defender)
	}
	return c.Kind.String()
}
