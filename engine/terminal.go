package engine

// ---------------------------------------------------------------------------
// End of game
// ---------------------------------------------------------------------------

// fullDealSize returns how many cards the next Deal step needs.
func (g *Game) fullDealSize() int {
	n := 0
	for _, p := range g.players {
		n += g.Rules.dealSize(p.domain.Len())
	}
	return n
}

// IsOver reports whether fewer than two players remain or the deck cannot
// cover another full deal.
func (g *Game) IsOver() bool {
	return len(g.players) < 2 || len(g.deck) < g.fullDealSize()
}

// ---------------------------------------------------------------------------
// State hash
// ---------------------------------------------------------------------------

// StateHash returns a 64-bit FNV-1a hash over everything that affects play:
// players in round order with their domains, bags and hands, the watering
// hole, played cards, the deck and the turn. Equal games hash equal.
func (g *Game) StateHash() uint64 {
	h := uint64(14695981039346656037) // FNV-1a offset basis
	const prime = uint64(1099511628211)
	mix := func(v int) {
		h ^= uint64(int64(v))
		h *= prime
	}
	card := func(c Card) {
		mix(int(c.Trait)<<8 | (c.Food + MaxCarnivoreFood))
	}

	for i, p := range g.players {
		mix(p.id)
		mix(p.bag)
		if g.skipped[i] {
			mix(-1)
		}
		for _, s := range p.domain.species {
			mix(s.population<<16 | s.bodySize<<8 | s.food<<4 | s.fat)
			for _, t := range s.traits {
				mix(int(t))
			}
			mix(-2) // end of species
		}
		for _, c := range p.hand {
			card(c)
		}
		mix(-3) // end of player
	}
	mix(g.board.food)
	for _, c := range g.board.cards {
		card(c)
	}
	for _, c := range g.deck {
		card(c)
	}
	mix(g.current)
	return h
}
