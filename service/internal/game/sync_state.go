// internal/game/sync_state.go
package game

import (
	"strconv"

	"github.com/google/uuid"
)

// ObfCard is a hand card, only ever shown to its owner.
type ObfCard struct {
	Food  int    `json:"food"`
	Trait string `json:"trait"`
}

// ObfSpecies is a species board as every player sees it.
type ObfSpecies struct {
	Population int      `json:"population"`
	BodySize   int      `json:"bodySize"`
	Food       int      `json:"food"`
	Fat        int      `json:"fat,omitempty"`
	Traits     []string `json:"traits"`
}

// ObfPlayerState represents the state of a single player, obfuscated for a specific observer.
type ObfPlayerState struct {
	PlayerID      int          `json:"playerId"`
	ConnID        uuid.UUID    `json:"connId"`
	Info          string       `json:"info"`
	Species       []ObfSpecies `json:"species"`
	IsCurrentTurn bool         `json:"isCurrentTurn"`
	Skipped       bool         `json:"skipped"`
	// Bag and Hand are populated only for the player requesting the state ('self').
	Bag  *int      `json:"bag,omitempty"`
	Hand []ObfCard `json:"hand,omitempty"`
}

// ObfGameState represents the overall game state, obfuscated for a specific observer.
type ObfGameState struct {
	GameID          uuid.UUID        `json:"gameId"`
	Round           int              `json:"round"`
	GameOver        bool             `json:"gameOver"`
	CurrentPlayerID int              `json:"currentPlayerId,omitempty"`
	WateringHole    int              `json:"wateringHole"`
	DeckSize        int              `json:"deckSize"`
	Players         []ObfPlayerState `json:"players"`
	Ejected         []int            `json:"ejected,omitempty"`
	StateHash       string           `json:"stateHash"`
}

// GetCurrentObfuscatedGameState generates a snapshot of the game state,
// tailored to the perspective of the requesting player (`forPlayer`).
// Opponents are visible only through their species; their hands and bags
// are never included. Pass 0 for a spectator view.
// This function assumes the game lock is HELD by the caller.
func (s *Session) GetCurrentObfuscatedGameState(forPlayer int) ObfGameState {
	obf := ObfGameState{
		GameID:       s.ID,
		Round:        s.Engine.RoundNumber(),
		GameOver:     s.GameOver || s.Engine.IsOver(),
		WateringHole: s.Engine.WateringHole(),
		DeckSize:     s.Engine.DeckLen(),
		Ejected:      s.ejectedIDs(),
		StateHash:    strconv.FormatUint(s.Engine.StateHash(), 16),
	}
	current, hasCurrent := s.Engine.CurrentPlayer()
	if hasCurrent && !obf.GameOver {
		obf.CurrentPlayerID = current
	}

	players := s.Engine.Players()
	obf.Players = make([]ObfPlayerState, len(players))
	for i, p := range players {
		ps := ObfPlayerState{
			PlayerID:      p.ID(),
			IsCurrentTurn: obf.CurrentPlayerID == p.ID(),
			Skipped:       s.Engine.IsSkipped(p.ID()),
		}
		if seat, ok := s.seat(p.ID()); ok {
			ps.ConnID = seat.ConnID
			ps.Info = seat.Info
		}
		species := p.Domain().Species()
		ps.Species = make([]ObfSpecies, len(species))
		for j, sp := range species {
			ps.Species[j] = speciesToObf(sp)
		}

		if p.ID() == forPlayer {
			bag := p.Bag()
			ps.Bag = &bag
			hand := p.Hand()
			ps.Hand = make([]ObfCard, len(hand))
			for j, c := range hand {
				ps.Hand[j] = cardToObf(c)
			}
		}
		obf.Players[i] = ps
	}
	return obf
}

// sendSyncState sends the obfuscated state to one player.
// Assumes lock is held by caller.
func (s *Session) sendSyncState(playerID int) {
	if s.BroadcastToPlayerFn == nil {
		return
	}
	state := s.GetCurrentObfuscatedGameState(playerID)
	s.BroadcastToPlayerFn(playerID, GameEvent{
		Type:     EventPrivateSyncState,
		PlayerID: playerID,
		Round:    state.Round,
		State:    &state,
	})
}

// broadcastSyncStateToAll sends every remaining player their own view.
// Assumes lock is held by caller.
func (s *Session) broadcastSyncStateToAll() {
	for _, p := range s.Engine.Players() {
		s.sendSyncState(p.ID())
	}
}
