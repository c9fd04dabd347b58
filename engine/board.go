package engine

// Board holds the watering hole and the cards played as food. Cards are
// present only between the Action and Reveal steps.
type Board struct {
	food  int
	cards []Card
}

// Food returns the number of tokens at the watering hole.
func (b *Board) Food() int { return b.food }

// Cards returns the cards waiting to be revealed, in play order.
func (b *Board) Cards() []Card {
	if b.cards == nil {
		return nil
	}
	out := make([]Card, len(b.cards))
	copy(out, b.cards)
	return out
}

// takeFood removes n tokens at once.
func (b *Board) takeFood(n int) error {
	if n > b.food {
		return ruleErr("take food", "%d requested, %d at the watering hole", n, b.food)
	}
	b.food -= n
	return nil
}

func (b *Board) playCard(c Card) {
	b.cards = append(b.cards, c)
}

// applyCards adds each played card's food value in play order. Negative
// values remove up to that many tokens; the watering hole never drops below
// zero, so order matters.
func (b *Board) applyCards() {
	for _, c := range b.cards {
		b.food = max(0, b.food+c.Food)
	}
	b.cards = nil
}
