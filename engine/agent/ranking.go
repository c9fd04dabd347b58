package agent

import (
	"cmp"

	engine "github.com/nixpulvis/hell/engine"
)

// CompareSpecies orders species best first: larger population, then more
// food, then larger body. It returns a negative number when a is better.
func CompareSpecies(a, b *engine.Species) int {
	if c := cmp.Compare(b.Population(), a.Population()); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Food(), a.Food()); c != 0 {
		return c
	}
	return cmp.Compare(b.BodySize(), a.BodySize())
}

// kindRank puts stores first, then feeds, then attacks, and abstaining last.
func kindRank(k engine.FeedKind) int {
	switch k {
	case engine.KindStore:
		return 0
	case engine.KindFeed:
		return 1
	case engine.KindAttack:
		return 2
	}
	return 3
}

// CompareFeedChoices orders feedings best first. Stores rank by amount, then
// by species; feeds by species; attacks by attacker, then by defender.
func CompareFeedChoices(obs engine.FeedObservation, a, b engine.FeedChoice) int {
	if c := cmp.Compare(kindRank(a.Kind), kindRank(b.Kind)); c != 0 {
		return c
	}
	own := obs.Player.Domain()
	switch a.Kind {
	case engine.KindStore:
		if c := cmp.Compare(b.Amount, a.Amount); c != 0 {
			return c
		}
		return CompareSpecies(own.At(a.Species), own.At(b.Species))
	case engine.KindFeed:
		return CompareSpecies(own.At(a.Species), own.At(b.Species))
	case engine.KindAttack:
		if c := CompareSpecies(own.At(a.Species), own.At(b.Species)); c != 0 {
			return c
		}
		return CompareSpecies(obs.Target(a.Opponent).At(a.Defender), obs.Target(b.Opponent).At(b.Defender))
	}
	return 0
}
