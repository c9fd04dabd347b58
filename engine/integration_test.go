//go:build integration

package engine_test

// Full games between silly players, checking invariants after every round.
//
// Run: go test -tags integration -run TestIntegration ./engine/

import (
	"context"
	"testing"

	engine "github.com/nixpulvis/hell/engine"
	"github.com/nixpulvis/hell/engine/agent"
)

func checkInvariants(t *testing.T, g *engine.Game, round int) {
	t.Helper()
	cards := g.DeckLen()
	for _, p := range g.Players() {
		cards += p.HandSize()
		if p.Bag() < 0 {
			t.Fatalf("round %d: player %d bag %d", round, p.ID(), p.Bag())
		}
		for i, s := range p.Domain().Species() {
			if err := s.Validate(); err != nil {
				t.Fatalf("round %d: player %d species %d: %v", round, p.ID(), i, err)
			}
			if s.IsExtinct() {
				t.Fatalf("round %d: player %d keeps an extinct species", round, p.ID())
			}
			if s.Food() != 0 {
				t.Fatalf("round %d: food left on species after bag", round)
			}
		}
	}
	if cards > engine.DeckSize {
		t.Fatalf("round %d: %d cards in play", round, cards)
	}
}

func TestIntegrationSillyGames(t *testing.T) {
	for seed := uint64(1); seed <= 25; seed++ {
		n := 3 + int(seed%6)
		choosers := make([]engine.Chooser, n)
		for i := range choosers {
			choosers[i] = agent.Silly{}
		}
		g, err := engine.NewGame(choosers, seed, engine.DefaultRules())
		if err != nil {
			t.Fatal(err)
		}
		for !g.IsOver() {
			if err := g.Round(context.Background()); err != nil {
				t.Fatalf("seed %d round %d: %v", seed, g.RoundNumber(), err)
			}
			checkInvariants(t, g, g.RoundNumber())
		}
		if len(g.Ejected()) != 0 {
			t.Errorf("seed %d: silly players ejected: %v", seed, g.Ejected())
		}
		if len(g.Winners()) == 0 {
			t.Errorf("seed %d: no winner", seed)
		}
	}
}

func TestIntegrationDeterministic(t *testing.T) {
	play := func() uint64 {
		choosers := []engine.Chooser{agent.Silly{}, agent.Silly{}, agent.Silly{}, agent.Silly{}}
		g, err := engine.NewGame(choosers, 99, engine.DefaultRules())
		if err != nil {
			t.Fatal(err)
		}
		if err := g.Run(context.Background()); err != nil {
			t.Fatal(err)
		}
		return g.StateHash()
	}
	if a, b := play(), play(); a != b {
		t.Errorf("same seed ended in different states: %x vs %x", a, b)
	}
}
