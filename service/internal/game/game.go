// internal/game/game.go
package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	engine "github.com/nixpulvis/hell/engine"
	"github.com/nixpulvis/hell/service/internal/history"
	"github.com/sirupsen/logrus"
)

// OnGameEndFunc defines the signature for a callback function executed when a game ends.
// It receives the game ID, the winning player IDs and the final scores.
type OnGameEndFunc func(gameID uuid.UUID, winners []int, scores []engine.Score)

// GameEventType represents the type of a session event.
type GameEventType string

// Constants defining the GameEvent types published by a session.
const (
	EventRoundStarted     GameEventType = "round_started"      // Public: a new round was dealt.
	EventPlayerEjected    GameEventType = "player_ejected"     // Public: a player was removed for a bad or missing answer.
	EventRoundFinished    GameEventType = "round_finished"     // Public: bags were filled, scores attached.
	EventGameOver         GameEventType = "game_over"          // Public: the game ended, includes results.
	EventPrivateSyncState GameEventType = "private_sync_state" // Private: obfuscated state for one player.
)

// GameEvent is the standard structure for broadcasting session changes.
type GameEvent struct {
	Type     GameEventType `json:"type"`
	PlayerID int           `json:"playerId,omitempty"` // Player the event is about, if any.
	Round    int           `json:"round"`

	Payload map[string]interface{} `json:"payload,omitempty"` // Additional arbitrary data.

	State *ObfGameState `json:"state,omitempty"` // Obfuscated state for sync events.
}

// Seat binds one engine player to the connection that answers for it.
type Seat struct {
	PlayerID int
	ConnID   uuid.UUID
	Info     string
	Chooser  engine.Chooser
}

// closer is implemented by choosers that hold a connection.
type closer interface {
	Close(code websocket.StatusCode, reason string)
}

// Session runs one Evolution game on behalf of the dealer.
type Session struct {
	ID uuid.UUID // Unique identifier for this session.

	Seats  []Seat       // One seat per player, in player id order.
	Engine *engine.Game // The authoritative game state.

	GameOver bool
	Mu       sync.Mutex // Protects Engine and GameOver.

	// Communication Callbacks
	BroadcastFn         func(ev GameEvent)               // Sends an event to every observer.
	BroadcastToPlayerFn func(playerID int, ev GameEvent) // Sends an event to a single player.
	OnGameEnd           OnGameEndFunc                    // Callback executed when the game finishes.
	Publisher           history.Publisher                // Records events outside the process.

	log     logrus.FieldLogger
	ejected map[int]string // player id -> reason
}

// NewSession seats the given choosers as players 1..n and builds the engine
// with a deck shuffled by seed and wateringHole tokens already on the board.
func NewSession(choosers []engine.Chooser, infos []string, seed uint64, wateringHole int, log logrus.FieldLogger) (*Session, error) {
	if len(infos) != len(choosers) {
		return nil, fmt.Errorf("%d choosers but %d infos", len(choosers), len(infos))
	}
	players := make([]*engine.Player, len(choosers))
	for i := range choosers {
		players[i] = engine.NewPlayer(i + 1)
	}
	eng, err := engine.NewGameFromState(players, choosers, wateringHole, engine.ShuffledDeck(seed), engine.DefaultRules())
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}

	id, _ := uuid.NewRandom()
	s := &Session{
		ID:        id,
		Engine:    eng,
		Publisher: history.Nop{},
		log:       log.WithField("game", id),
		ejected:   make(map[int]string),
	}
	s.Seats = make([]Seat, len(choosers))
	for i, ch := range choosers {
		s.Seats[i] = Seat{PlayerID: i + 1, ConnID: connIDOf(ch), Info: infos[i], Chooser: ch}
	}
	eng.SetLogger(s.log)
	eng.OnEject = s.handleEject
	return s, nil
}

// Run plays rounds until the game is over or ctx is done, then ends the
// game. Chooser failures never abort Run; they eject the player.
func (s *Session) Run(ctx context.Context) error {
	s.log.WithField("players", len(s.Seats)).Info("Game started.")
	for {
		if err := ctx.Err(); err != nil {
			s.closeAll(websocket.StatusGoingAway, "server shutting down")
			return err
		}

		s.Mu.Lock()
		if s.Engine.IsOver() {
			s.Mu.Unlock()
			break
		}
		round := s.Engine.RoundNumber() + 1
		s.fireEvent(ctx, GameEvent{
			Type:    EventRoundStarted,
			Round:   round,
			Payload: map[string]interface{}{"deckSize": s.Engine.DeckLen(), "wateringHole": s.Engine.WateringHole()},
		})
		err := s.Engine.Round(ctx)
		s.Mu.Unlock()

		if errors.Is(err, engine.ErrResourceExhausted) {
			break
		}
		if err != nil && ctx.Err() != nil {
			s.closeAll(websocket.StatusGoingAway, "server shutting down")
			return fmt.Errorf("round %d: %w", round, err)
		}
		if err != nil {
			s.closeAll(websocket.StatusInternalError, "game aborted")
			return fmt.Errorf("round %d: %w", round, err)
		}

		s.Mu.Lock()
		s.fireEvent(ctx, GameEvent{
			Type:    EventRoundFinished,
			Round:   s.Engine.RoundNumber(),
			Payload: map[string]interface{}{"scores": scoresPayload(s.Engine.Scores())},
		})
		s.broadcastSyncStateToAll()
		s.Mu.Unlock()
	}
	s.EndGame(ctx)
	return nil
}

// EndGame marks the game finished, publishes the results, calls OnGameEnd
// and closes the remaining connections. Safe to call once the engine is
// over or when the session is abandoned.
func (s *Session) EndGame(ctx context.Context) {
	s.Mu.Lock()
	if s.GameOver {
		s.Mu.Unlock()
		return
	}
	s.GameOver = true
	scores := s.Engine.Scores()
	winners := s.Engine.Winners()
	s.fireEvent(ctx, GameEvent{
		Type:  EventGameOver,
		Round: s.Engine.RoundNumber(),
		Payload: map[string]interface{}{
			"scores":  scoresPayload(scores),
			"winners": winners,
			"ejected": s.ejectedIDs(),
		},
	})
	s.log.WithFields(logrus.Fields{"winners": winners, "rounds": s.Engine.RoundNumber()}).Info("Game over.")
	s.Mu.Unlock()

	if s.OnGameEnd != nil {
		s.OnGameEnd(s.ID, winners, scores)
	}
	s.closeAll(websocket.StatusNormalClosure, "game over")
}

// Scoreboard returns one line per remaining player, best first:
//
//	1 player id: 3 info: "silly" score: 12
//
// Players sharing a score share a place.
func (s *Session) Scoreboard() []string {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	scores := s.Engine.Scores()
	lines := make([]string, len(scores))
	place := 0
	for i, sc := range scores {
		if i == 0 || sc.Score != scores[i-1].Score {
			place = i + 1
		}
		info := ""
		if seat, ok := s.seat(sc.ID); ok {
			info = seat.Info
		}
		lines[i] = fmt.Sprintf("%d player id: %d info: %q score: %d", place, sc.ID, info, sc.Score)
	}
	return lines
}

// Ejected returns why each ejected player was removed.
func (s *Session) Ejected() map[int]string {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	out := make(map[int]string, len(s.ejected))
	for id, reason := range s.ejected {
		out[id] = reason
	}
	return out
}

// handleEject is the engine's OnEject hook. It runs inside Engine.Round,
// so the lock is held by Run.
func (s *Session) handleEject(playerID int, reason error) {
	s.ejected[playerID] = reason.Error()
	s.fireEvent(context.Background(), GameEvent{
		Type:     EventPlayerEjected,
		PlayerID: playerID,
		Round:    s.Engine.RoundNumber(),
		Payload:  map[string]interface{}{"reason": reason.Error()},
	})
	if seat, ok := s.seat(playerID); ok {
		if c, ok := seat.Chooser.(closer); ok {
			c.Close(websocket.StatusPolicyViolation, "ejected")
		}
	}
}

// fireEvent broadcasts an event via BroadcastFn and records it with the
// Publisher. Publishing failures are logged, never fatal.
// Assumes lock is held by caller.
func (s *Session) fireEvent(ctx context.Context, ev GameEvent) {
	if s.BroadcastFn != nil {
		s.BroadcastFn(ev)
	}
	if s.Publisher == nil {
		return
	}
	rec := history.Event{
		ID:      uuid.New(),
		GameID:  s.ID,
		Type:    string(ev.Type),
		Round:   ev.Round,
		Time:    time.Now().UTC(),
		Payload: ev.Payload,
	}
	if ev.PlayerID != 0 {
		if rec.Payload == nil {
			rec.Payload = map[string]interface{}{}
		}
		rec.Payload["playerId"] = ev.PlayerID
	}
	if err := s.Publisher.Publish(ctx, rec); err != nil {
		s.log.WithError(err).WithField("event", ev.Type).Warn("Publish failed.")
	}
}

// closeAll closes every seat whose chooser holds a connection.
func (s *Session) closeAll(code websocket.StatusCode, reason string) {
	for _, seat := range s.Seats {
		if c, ok := seat.Chooser.(closer); ok {
			c.Close(code, reason)
		}
	}
}
