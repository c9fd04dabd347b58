package engine

import "fmt"

// Player is one seat at the table.
type Player struct {
	id     int
	domain *Domain
	bag    int
	hand   []Card
}

// NewPlayer returns a player with an empty domain, bag and hand.
func NewPlayer(id int) *Player {
	return &Player{id: id, domain: &Domain{}}
}

// RestorePlayer builds a player from explicit values.
func RestorePlayer(id int, domain *Domain, bag int, hand []Card) (*Player, error) {
	if id < 1 {
		return nil, configErr("player id %d must be positive", id)
	}
	if bag < 0 {
		return nil, configErr("player %d: negative bag %d", id, bag)
	}
	if domain == nil {
		domain = &Domain{}
	}
	for _, c := range hand {
		if !c.Valid() {
			return nil, configErr("player %d: invalid card %s", id, c)
		}
	}
	return &Player{id: id, domain: domain, bag: bag, hand: append([]Card(nil), hand...)}, nil
}

// ID returns the player's id, unique within a game.
func (p *Player) ID() int { return p.id }

// Domain returns the player's species. The domain is not a copy.
func (p *Player) Domain() *Domain { return p.domain }

// Bag returns the food banked in earlier rounds.
func (p *Player) Bag() int { return p.bag }

// HandSize returns the number of cards in hand.
func (p *Player) HandSize() int { return len(p.hand) }

func (p *Player) String() string { return fmt.Sprintf("player %d", p.id) }

// Hand returns a copy of the player's cards in hand order.
func (p *Player) Hand() []Card {
	out := make([]Card, len(p.hand))
	copy(out, p.hand)
	return out
}

// Score is the bag plus the total population and trait count of the domain.
func (p *Player) Score() int {
	return p.bag + p.domain.PopulationCount() + p.domain.TraitCount()
}

// pushCards puts cards at the front of the hand, keeping their order.
func (p *Player) pushCards(cards []Card) {
	if len(cards) == 0 {
		return
	}
	hand := make([]Card, 0, len(cards)+len(p.hand))
	hand = append(hand, cards...)
	p.hand = append(hand, p.hand...)
}

// removeCards takes the cards at the given (distinct, in range) indices out
// of the hand and returns them keyed by index.
func (p *Player) removeCards(idxs []int) map[int]Card {
	taken := make(map[int]Card, len(idxs))
	for _, i := range idxs {
		taken[i] = p.hand[i]
	}
	kept := p.hand[:0:0]
	for i, c := range p.hand {
		if _, ok := taken[i]; !ok {
			kept = append(kept, c)
		}
	}
	p.hand = kept
	return taken
}

// Clone returns a deep copy.
func (p *Player) Clone() *Player {
	return &Player{id: p.id, domain: p.domain.Clone(), bag: p.bag, hand: p.Hand()}
}
