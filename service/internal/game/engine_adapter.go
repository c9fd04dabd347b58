// internal/game/engine_adapter.go: bridge between engine.Game and Session.
package game

import (
	"slices"

	"github.com/google/uuid"
	engine "github.com/nixpulvis/hell/engine"
	"github.com/nixpulvis/hell/service/internal/remote"
)

// connIDOf returns the connection ID of a remote chooser, or a fresh ID for
// choosers that run in process.
func connIDOf(ch engine.Chooser) uuid.UUID {
	if rc, ok := ch.(*remote.Chooser); ok {
		return rc.ID
	}
	return uuid.New()
}

// seat finds the seat of an engine player ID.
func (s *Session) seat(playerID int) (Seat, bool) {
	for _, seat := range s.Seats {
		if seat.PlayerID == playerID {
			return seat, true
		}
	}
	return Seat{}, false
}

// ejectedIDs returns the ejected player IDs in ascending order.
// Assumes lock is held by caller.
func (s *Session) ejectedIDs() []int {
	ids := make([]int, 0, len(s.ejected))
	for id := range s.ejected {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// scoresPayload converts engine scores into an event payload value.
func scoresPayload(scores []engine.Score) []map[string]int {
	out := make([]map[string]int, len(scores))
	for i, sc := range scores {
		out[i] = map[string]int{"playerId": sc.ID, "score": sc.Score}
	}
	return out
}

// traitNames converts engine traits to their canonical names.
func traitNames(traits []engine.Trait) []string {
	out := make([]string, len(traits))
	for i, t := range traits {
		out[i] = t.String()
	}
	return out
}

// speciesToObf converts one species board. Species are always public.
func speciesToObf(sp *engine.Species) ObfSpecies {
	return ObfSpecies{
		Population: sp.Population(),
		BodySize:   sp.BodySize(),
		Food:       sp.Food(),
		Fat:        sp.Fat(),
		Traits:     traitNames(sp.Traits()),
	}
}

// cardToObf converts a hand card for its owner.
func cardToObf(c engine.Card) ObfCard {
	return ObfCard{Food: c.Food, Trait: c.Trait.String()}
}
