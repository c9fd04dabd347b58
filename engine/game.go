package engine

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Game holds the complete state of one Evolution game and drives its
// rounds. Players are kept in round order: index 0 is the starting player of
// the current round. choosers[i] answers for players[i].
type Game struct {
	Rules Rules

	// OnEject, when set, is called after a player is removed for a bad or
	// missing choice.
	OnEject func(playerID int, reason error)

	players  []*Player
	choosers []Chooser
	current  int // index of the acting player, -1 when every player is skipped
	skipped  map[int]bool
	board    Board
	deck     []Card
	round    int
	ejected  []int

	log logrus.FieldLogger
}

// ---------------------------------------------------------------------------
// Construction
// ---------------------------------------------------------------------------

// NewGame seats one player per chooser, with ids counting up from 1, and
// builds the standard deck. A zero seed leaves the deck in card order;
// any other seed shuffles it deterministically.
func NewGame(choosers []Chooser, seed uint64, rules Rules) (*Game, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if n := len(choosers); n < rules.MinPlayers || n > rules.MaxPlayers {
		return nil, configErr("%d players, need %d to %d", n, rules.MinPlayers, rules.MaxPlayers)
	}
	players := make([]*Player, len(choosers))
	for i := range players {
		players[i] = NewPlayer(i + 1)
	}
	return newGame(players, choosers, 0, ShuffledDeck(seed), rules), nil
}

// NewGameFromState builds a game in the middle of a round from explicit
// players, watering hole and deck, as read from a configuration. The deck
// composition over every hand plus the deck must fit within the standard
// deck: at most 17 Carnivore cards and 7 of each other trait.
func NewGameFromState(players []*Player, choosers []Chooser, wateringHole int, deck []Card, rules Rules) (*Game, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if n := len(players); n < rules.MinPlayers || n > rules.MaxPlayers {
		return nil, configErr("%d players, need %d to %d", n, rules.MinPlayers, rules.MaxPlayers)
	}
	if len(choosers) != len(players) {
		return nil, configErr("%d choosers for %d players", len(choosers), len(players))
	}
	if wateringHole < 0 {
		return nil, configErr("negative watering hole %d", wateringHole)
	}
	ids := make(map[int]bool, len(players))
	var counts [NumTraits]int
	for _, p := range players {
		if p == nil {
			return nil, configErr("missing player")
		}
		if ids[p.id] {
			return nil, configErr("duplicate player id %d", p.id)
		}
		ids[p.id] = true
		for _, c := range p.hand {
			counts[c.Trait]++
		}
	}
	for _, c := range deck {
		if !c.Valid() {
			return nil, configErr("invalid card %s in deck", c)
		}
		counts[c.Trait]++
	}
	for t, n := range counts {
		if limit := maxCardsOf(Trait(t)); n > limit {
			return nil, configErr("%d %s cards, at most %d", n, Trait(t), limit)
		}
	}
	return newGame(players, choosers, wateringHole, append([]Card(nil), deck...), rules), nil
}

func newGame(players []*Player, choosers []Chooser, wateringHole int, deck []Card, rules Rules) *Game {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	return &Game{
		Rules:    rules,
		players:  players,
		choosers: append([]Chooser(nil), choosers...),
		current:  0,
		skipped:  make(map[int]bool),
		board:    Board{food: wateringHole},
		deck:     deck,
		log:      discard,
	}
}

// SetLogger replaces the game's logger. The default discards everything.
func (g *Game) SetLogger(l logrus.FieldLogger) {
	if l != nil {
		g.log = l
	}
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// Players returns copies of the players in round order.
func (g *Game) Players() []*Player {
	out := make([]*Player, len(g.players))
	for i, p := range g.players {
		out[i] = p.Clone()
	}
	return out
}

// NumPlayers returns how many players remain.
func (g *Game) NumPlayers() int { return len(g.players) }

// WateringHole returns the food at the watering hole.
func (g *Game) WateringHole() int { return g.board.food }

// PlayedCards returns the cards played as food this round and not yet
// revealed.
func (g *Game) PlayedCards() []Card { return g.board.Cards() }

// DeckLen returns the number of cards left in the deck.
func (g *Game) DeckLen() int { return len(g.deck) }

// Deck returns a copy of the remaining deck in deal order.
func (g *Game) Deck() []Card { return append([]Card(nil), g.deck...) }

// RoundNumber returns how many rounds have started.
func (g *Game) RoundNumber() int { return g.round }

// CurrentPlayer returns the id of the acting player. ok is false when every
// player has been skipped.
func (g *Game) CurrentPlayer() (id int, ok bool) {
	if g.current < 0 || g.current >= len(g.players) {
		return 0, false
	}
	return g.players[g.current].id, true
}

// Ejected returns the ids of ejected players in ejection order.
func (g *Game) Ejected() []int { return append([]int(nil), g.ejected...) }

// IsSkipped reports whether the player with the given id is out of the
// current feeding.
func (g *Game) IsSkipped(id int) bool {
	for i, p := range g.players {
		if p.id == id {
			return g.skipped[i]
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Turn order
// ---------------------------------------------------------------------------

// advanceStartingPlayer moves the starting player to the end of the order
// and starts the next round with the new first player.
func (g *Game) advanceStartingPlayer() {
	if len(g.players) > 1 {
		g.players = append(g.players[1:], g.players[0])
		g.choosers = append(g.choosers[1:], g.choosers[0])
	}
	g.resetTurn()
}

// resetTurn makes the first player current and clears the skip set.
func (g *Game) resetTurn() {
	clear(g.skipped)
	if len(g.players) == 0 {
		g.current = -1
		return
	}
	g.current = 0
}

// advanceCurrentPlayer moves to the next player who has not been skipped,
// or to none when everyone has been.
func (g *Game) advanceCurrentPlayer() {
	n := len(g.players)
	if g.current < 0 || n == 0 || len(g.skipped) >= n {
		g.current = -1
		return
	}
	next := (g.current + 1) % n
	for g.skipped[next] {
		next = (next + 1) % n
	}
	g.current = next
}

// skipCurrentPlayer removes the acting player from the rest of the feeding.
func (g *Game) skipCurrentPlayer() {
	if g.current < 0 {
		return
	}
	g.skipped[g.current] = true
	g.advanceCurrentPlayer()
}

// ejectCurrentPlayer removes the acting player from the game. The player
// after it becomes current; skip marks move with their players.
func (g *Game) ejectCurrentPlayer(reason error) {
	i := g.current
	if i < 0 {
		return
	}
	p := g.players[i]
	g.log.WithFields(logrus.Fields{"round": g.round, "player": p.id}).
		WithError(reason).Warn("Player ejected.")
	if g.OnEject != nil {
		defer g.OnEject(p.id, reason)
	}

	g.players = append(g.players[:i], g.players[i+1:]...)
	g.choosers = append(g.choosers[:i], g.choosers[i+1:]...)
	skipped := make(map[int]bool, len(g.skipped))
	for j := range g.skipped {
		switch {
		case j < i:
			skipped[j] = true
		case j > i:
			skipped[j-1] = true
		}
	}
	g.skipped = skipped
	g.ejected = append(g.ejected, p.id)

	n := len(g.players)
	if n == 0 || len(g.skipped) >= n {
		g.current = -1
		return
	}
	next := i % n
	for g.skipped[next] {
		next = (next + 1) % n
	}
	g.current = next
}

// opponentIndex turns an opponent rank, counted from the player after
// current in turn order, into an absolute player index. The rank one past
// the last opponent names the current player.
func (g *Game) opponentIndex(rank int) int {
	return (g.current + rank + 1) % len(g.players)
}
