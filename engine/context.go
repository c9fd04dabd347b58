package engine

import "github.com/sirupsen/logrus"

// The types in this file bind an entity to its game by index so that an
// operation can reach across entities (feeding the watering hole, a
// neighbor, a refund from the deck). They are built for one operation and
// never stored.

// speciesRef locates a species by player and domain index.
type speciesRef struct {
	player  int
	species int
}

// ---------------------------------------------------------------------------
// Species in game
// ---------------------------------------------------------------------------

type speciesCtx struct {
	g   *Game
	ref speciesRef
}

func (g *Game) speciesAt(player, species int) speciesCtx {
	return speciesCtx{g: g, ref: speciesRef{player: player, species: species}}
}

func (c speciesCtx) domain() *Domain { return c.g.players[c.ref.player].domain }

func (c speciesCtx) get() *Species { return c.domain().At(c.ref.species) }

// eat moves one token from the watering hole to the species.
func (c speciesCtx) eat() bool {
	s := c.get()
	if c.g.board.food == 0 || !s.CanEat() {
		return false
	}
	c.g.board.food--
	s.Eat()
	return true
}

// feed eats up to Eats() tokens, then, with Cooperation, has the right
// neighbor feed once per token eaten.
func (c speciesCtx) feed() {
	s := c.get()
	eaten := 0
	for range s.Eats() {
		if !c.eat() {
			break
		}
		eaten++
	}
	if !s.HasTrait(Cooperation) || c.ref.species+1 >= c.domain().Len() {
		return
	}
	right := c.g.speciesAt(c.ref.player, c.ref.species+1)
	for range eaten {
		right.feed()
	}
}

// store moves n tokens from the watering hole to the fat store.
func (c speciesCtx) store(n int) error {
	if err := c.g.board.takeFood(n); err != nil {
		return err
	}
	if err := c.get().Store(n); err != nil {
		c.g.board.food += n
		return err
	}
	return nil
}

// ---------------------------------------------------------------------------
// Player in game
// ---------------------------------------------------------------------------

type playerCtx struct {
	g   *Game
	idx int
}

func (g *Game) playerAt(idx int) playerCtx { return playerCtx{g: g, idx: idx} }

func (c playerCtx) get() *Player { return c.g.players[c.idx] }

// refund deals replacement cards for extinct species, as far as the deck
// allows.
func (c playerCtx) refund(extinctions int) {
	n := min(extinctions*c.g.Rules.CardsPerExtinction, len(c.g.deck))
	if n <= 0 {
		return
	}
	cards := c.g.deck[:n:n]
	c.g.deck = c.g.deck[n:]
	c.get().pushCards(cards)
}

// scavenge feeds every Scavenger species once, going around the table from
// this player. The list is collected before anyone eats.
func (c playerCtx) scavenge() {
	n := len(c.g.players)
	var refs []speciesRef
	for k := range n {
		pi := (c.idx + k) % n
		for si, s := range c.g.players[pi].domain.species {
			if s.HasTrait(Scavenger) {
				refs = append(refs, speciesRef{player: pi, species: si})
			}
		}
	}
	for _, r := range refs {
		c.g.speciesAt(r.player, r.species).feed()
	}
}

// ---------------------------------------------------------------------------
// Board in game
// ---------------------------------------------------------------------------

// reveal adds the played cards to the watering hole, then runs the once per
// round trait passes in order: Fertile species breed, LongNeck species feed,
// and every species digests its fat.
func (g *Game) reveal() {
	g.board.applyCards()
	for _, r := range g.speciesWith(Fertile) {
		_ = g.speciesAt(r.player, r.species).get().Breed()
	}
	for _, r := range g.speciesWith(LongNeck) {
		g.speciesAt(r.player, r.species).feed()
	}
	for _, p := range g.players {
		for _, s := range p.domain.species {
			s.DigestFat()
		}
	}
	g.log.WithFields(logrus.Fields{"round": g.round, "food": g.board.food}).Debug("Revealed.")
}

// speciesWith lists every species with trait t in round order.
func (g *Game) speciesWith(t Trait) []speciesRef {
	var refs []speciesRef
	for pi, p := range g.players {
		for si, s := range p.domain.species {
			if s.HasTrait(t) {
				refs = append(refs, speciesRef{player: pi, species: si})
			}
		}
	}
	return refs
}

// ---------------------------------------------------------------------------
// Situation
// ---------------------------------------------------------------------------

// situation is one attack: an attacking species and a defending species,
// possibly in the same domain.
type situation struct {
	g        *Game
	attacker speciesRef
	defender speciesRef
}

// fight resolves the attack. Horns cost the attacker one population first.
// The defender then loses one population. An extinct species earns its
// owner a refund; a surviving attacker feeds. Scavengers eat last.
func (s situation) fight() {
	g := s.g
	att, def := s.attacker, s.defender
	sameDomain := att.player == def.player

	attackerExtinct := false
	if g.speciesAt(def.player, def.species).get().HasTrait(Horns) {
		attackerExtinct = g.players[att.player].domain.Kill(att.species)
		if attackerExtinct && sameDomain && def.species > att.species {
			def.species--
		}
	}

	if g.players[def.player].domain.Kill(def.species) {
		g.playerAt(def.player).refund(1)
		if !attackerExtinct && sameDomain && att.species > def.species {
			att.species--
		}
		g.log.WithFields(logrus.Fields{"round": g.round, "player": g.players[def.player].id}).
			Debug("Species went extinct.")
	}

	if attackerExtinct {
		g.playerAt(att.player).refund(1)
	} else {
		g.speciesAt(att.player, att.species).feed()
	}
	g.playerAt(att.player).scavenge()
}
