package engine

import (
	"context"
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// scripted answers from fixed lists. An exhausted action list passes, which
// ejects; an exhausted feed list passes, which skips.
type scripted struct {
	actions []*ActionChoice
	feeds   []*FeedChoice
	err     error

	starts   int
	feedObs  []FeedObservation
	feedAsks int
}

func (s *scripted) Start(context.Context, DealObservation) error {
	s.starts++
	return nil
}

func (s *scripted) ChooseAction(context.Context, ActionObservation) (*ActionChoice, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.actions) == 0 {
		return nil, nil
	}
	c := s.actions[0]
	s.actions = s.actions[1:]
	return c, nil
}

func (s *scripted) ChooseFeed(_ context.Context, obs FeedObservation) (*FeedChoice, error) {
	s.feedAsks++
	s.feedObs = append(s.feedObs, obs)
	if s.err != nil {
		return nil, s.err
	}
	if len(s.feeds) == 0 {
		return nil, nil
	}
	c := s.feeds[0]
	s.feeds = s.feeds[1:]
	return c, nil
}

func feedPtr(c FeedChoice) *FeedChoice { return &c }

func mustSpecies(t *testing.T, pop, body, food, fat int, traits ...Trait) *Species {
	t.Helper()
	s, err := RestoreSpecies(pop, body, food, fat, traits)
	if err != nil {
		t.Fatalf("RestoreSpecies: %v", err)
	}
	return s
}

func mustPlayer(t *testing.T, id, bag int, hand []Card, species ...*Species) *Player {
	t.Helper()
	d, err := NewDomain(species...)
	if err != nil {
		t.Fatalf("NewDomain: %v", err)
	}
	p, err := RestorePlayer(id, d, bag, hand)
	if err != nil {
		t.Fatalf("RestorePlayer: %v", err)
	}
	return p
}

// newTestGame builds a game from players, giving each a scripted chooser.
func newTestGame(t *testing.T, wateringHole int, deck []Card, players ...*Player) (*Game, []*scripted) {
	t.Helper()
	choosers := make([]Chooser, len(players))
	scripts := make([]*scripted, len(players))
	for i := range players {
		scripts[i] = &scripted{}
		choosers[i] = scripts[i]
	}
	g, err := NewGameFromState(players, choosers, wateringHole, deck, DefaultRules())
	if err != nil {
		t.Fatalf("NewGameFromState: %v", err)
	}
	return g, scripts
}

func playerIDs(g *Game) []int {
	ids := make([]int, len(g.players))
	for i, p := range g.players {
		ids[i] = p.id
	}
	return ids
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ---------------------------------------------------------------------------
// Construction
// ---------------------------------------------------------------------------

func TestNewGamePlayerCount(t *testing.T) {
	for _, n := range []int{0, 2, 9} {
		_, err := NewGame(make([]Chooser, n), 1, DefaultRules())
		if !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("%d players: err = %v, want ErrInvalidConfiguration", n, err)
		}
	}
	choosers := []Chooser{&scripted{}, &scripted{}, &scripted{}}
	g, err := NewGame(choosers, 1, DefaultRules())
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if !equalInts(playerIDs(g), []int{1, 2, 3}) {
		t.Errorf("ids = %v, want [1 2 3]", playerIDs(g))
	}
	if g.DeckLen() != DeckSize {
		t.Errorf("deck = %d, want %d", g.DeckLen(), DeckSize)
	}
	if g.WateringHole() != 0 || g.RoundNumber() != 0 {
		t.Errorf("fresh game has food %d, round %d", g.WateringHole(), g.RoundNumber())
	}
}

func TestNewGameFromStateRejects(t *testing.T) {
	p := func(id int) *Player { return NewPlayer(id) }
	none := []Chooser{&scripted{}, &scripted{}, &scripted{}}

	tests := []struct {
		name    string
		players []*Player
		hole    int
		deck    []Card
	}{
		{"duplicate id", []*Player{p(1), p(2), p(2)}, 0, nil},
		{"negative watering hole", []*Player{p(1), p(2), p(3)}, -1, nil},
		{"invalid card", []*Player{p(1), p(2), p(3)}, 0, []Card{{Food: 5, Trait: Horns}}},
		{"too many of a trait", []*Player{p(1), p(2), p(3)}, 0, func() []Card {
			var deck []Card
			for range TraitCards + 1 {
				deck = append(deck, Card{Food: 0, Trait: Horns})
			}
			return deck
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGameFromState(tt.players, none, tt.hole, tt.deck, DefaultRules())
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("err = %v, want ErrInvalidConfiguration", err)
			}
		})
	}
}

func TestHandCardsCountAgainstDeck(t *testing.T) {
	hand := make([]Card, TraitCards)
	for i := range hand {
		hand[i] = Card{Food: 0, Trait: Ambush}
	}
	players := []*Player{
		mustPlayer(t, 1, 0, hand),
		NewPlayer(2),
		NewPlayer(3),
	}
	choosers := []Chooser{&scripted{}, &scripted{}, &scripted{}}
	_, err := NewGameFromState(players, choosers, 0, []Card{{Food: 1, Trait: Ambush}}, DefaultRules())
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("err = %v, want ErrInvalidConfiguration", err)
	}
}

// ---------------------------------------------------------------------------
// Turn order
// ---------------------------------------------------------------------------

func TestSkipAndAdvance(t *testing.T) {
	g, _ := newTestGame(t, 0, nil, NewPlayer(1), NewPlayer(2), NewPlayer(3))

	g.skipCurrentPlayer() // player 1
	if id, _ := g.CurrentPlayer(); id != 2 {
		t.Fatalf("current = %d, want 2", id)
	}
	g.advanceCurrentPlayer()
	if id, _ := g.CurrentPlayer(); id != 3 {
		t.Fatalf("current = %d, want 3", id)
	}
	g.advanceCurrentPlayer() // wraps past skipped player 1
	if id, _ := g.CurrentPlayer(); id != 2 {
		t.Fatalf("current = %d, want 2", id)
	}
	if !g.IsSkipped(1) || g.IsSkipped(2) {
		t.Errorf("skip marks wrong: 1=%v 2=%v", g.IsSkipped(1), g.IsSkipped(2))
	}
	g.skipCurrentPlayer()
	g.skipCurrentPlayer()
	if _, ok := g.CurrentPlayer(); ok {
		t.Error("every player skipped but a current player remains")
	}
}

func TestEjectMovesSkipMarks(t *testing.T) {
	g, _ := newTestGame(t, 0, nil, NewPlayer(1), NewPlayer(2), NewPlayer(3), NewPlayer(4))
	var ejected []int
	g.OnEject = func(id int, reason error) {
		if !errors.Is(reason, ErrInvalidChoice) {
			t.Errorf("reason = %v", reason)
		}
		ejected = append(ejected, id)
	}

	g.skipCurrentPlayer() // 1 skipped, 2 current
	g.ejectCurrentPlayer(choiceErr("test"))

	if !equalInts(playerIDs(g), []int{1, 3, 4}) {
		t.Fatalf("players = %v", playerIDs(g))
	}
	if id, _ := g.CurrentPlayer(); id != 3 {
		t.Errorf("current = %d, want 3", id)
	}
	if !g.IsSkipped(1) || g.IsSkipped(3) || g.IsSkipped(4) {
		t.Error("skip mark did not follow player 1")
	}
	if !equalInts(ejected, []int{2}) || !equalInts(g.Ejected(), []int{2}) {
		t.Errorf("ejected = %v / %v, want [2]", ejected, g.Ejected())
	}
}

func TestEjectLastPlayerWraps(t *testing.T) {
	g, _ := newTestGame(t, 0, nil, NewPlayer(1), NewPlayer(2), NewPlayer(3))
	g.advanceCurrentPlayer()
	g.advanceCurrentPlayer()
	g.ejectCurrentPlayer(choiceErr("test"))
	if id, _ := g.CurrentPlayer(); id != 1 {
		t.Errorf("current = %d, want 1", id)
	}
}

func TestAdvanceStartingPlayerRotates(t *testing.T) {
	g, scripts := newTestGame(t, 0, nil, NewPlayer(1), NewPlayer(2), NewPlayer(3))
	g.advanceStartingPlayer()
	if !equalInts(playerIDs(g), []int{2, 3, 1}) {
		t.Fatalf("order = %v, want [2 3 1]", playerIDs(g))
	}
	if g.choosers[0] != scripts[1] {
		t.Error("choosers did not rotate with players")
	}
}

func TestOpponentIndex(t *testing.T) {
	g, _ := newTestGame(t, 0, nil, NewPlayer(1), NewPlayer(2), NewPlayer(3))
	g.advanceCurrentPlayer() // player 2 at index 1
	for rank, want := range []int{2, 0, 1} {
		if got := g.opponentIndex(rank); got != want {
			t.Errorf("rank %d: index %d, want %d", rank, got, want)
		}
	}
}
