// Package agent implements strategies that play through engine.Chooser.
package agent

import (
	"context"
	"sort"

	engine "github.com/nixpulvis/hell/engine"
)

// Silly is the deterministic house strategy. It needs no state between
// calls, so one value can serve any number of players.
type Silly struct{}

var _ engine.Chooser = Silly{}

// Start ignores the deal.
func (Silly) Start(context.Context, engine.DealObservation) error { return nil }

// ChooseAction returns SillyAction for the observing player.
func (Silly) ChooseAction(_ context.Context, obs engine.ActionObservation) (*engine.ActionChoice, error) {
	return SillyAction(obs.Player), nil
}

// ChooseFeed returns SillyFeed for the observation.
func (Silly) ChooseFeed(_ context.Context, obs engine.FeedObservation) (*engine.FeedChoice, error) {
	return SillyFeed(obs), nil
}

// SillyAction sorts the hand by card order and spends it from the lowest
// card up: the first card feeds the watering hole, the next two buy a new
// species with one trait, the fourth breeds it, a fifth grows it, and a
// sixth replaces its trait. With fewer than four cards only the food card is
// played. An empty hand gives nil.
func SillyAction(p *engine.Player) *engine.ActionChoice {
	order := sortedHand(p.Hand())
	if len(order) == 0 {
		return nil
	}
	choice := &engine.ActionChoice{FoodCard: order[0]}
	if len(order) < 4 {
		return choice
	}
	fresh := p.Domain().Len()
	choice.BoardTrades = []engine.BoardTrade{{Card: order[1], Traits: []int{order[2]}}}
	choice.PopulationGrowths = []engine.Growth{{Species: fresh, Card: order[3]}}
	if len(order) > 4 {
		choice.BodyGrowths = []engine.Growth{{Species: fresh, Card: order[4]}}
	}
	if len(order) > 5 {
		choice.TraitTrades = []engine.TraitTrade{{Species: fresh, Trait: 0, Card: order[5]}}
	}
	return choice
}

// sortedHand returns hand indices in card order.
func sortedHand(hand []engine.Card) []int {
	order := make([]int, len(hand))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return hand[order[a]].Compare(hand[order[b]]) < 0
	})
	return order
}

// SillyFeed picks the best legal feeding by CompareFeedChoices, never
// attacking its own species. It returns nil when nothing is left to choose.
func SillyFeed(obs engine.FeedObservation) *engine.FeedChoice {
	var considered []engine.FeedChoice
	for _, c := range obs.Choices() {
		if c.Kind == engine.KindAttack && c.Opponent == obs.SelfRank() {
			continue
		}
		considered = append(considered, c)
	}
	if len(considered) == 0 {
		return nil
	}
	sort.SliceStable(considered, func(i, j int) bool {
		return CompareFeedChoices(obs, considered[i], considered[j]) < 0
	})
	best := considered[0]
	return &best
}
