package engine

import "context"

// Chooser is a strategy answering for one player. The game calls it
// synchronously and never has two requests outstanding.
//
// ChooseAction and ChooseFeed return nil to pass. Any error, like an
// invalid choice, ejects the player. Implementations talking to something
// that may not answer must bound the call themselves.
type Chooser interface {
	// Start is told the player's state after the deal. Errors are logged
	// and otherwise ignored.
	Start(ctx context.Context, obs DealObservation) error
	ChooseAction(ctx context.Context, obs ActionObservation) (*ActionChoice, error)
	ChooseFeed(ctx context.Context, obs FeedObservation) (*FeedChoice, error)
}

// DealObservation is what a player sees after the deal.
type DealObservation struct {
	WateringHole int
	Player       *Player
}

// ActionObservation is what the current player sees when choosing an
// action: its own full state and the domains of the players before and
// after it in round order.
type ActionObservation struct {
	Player *Player
	Before []*Domain
	After  []*Domain
}

// FeedObservation is what the current player sees when feeding: its own
// full state, the watering hole, and the opponents' domains in turn order
// starting after the current player. Opponents' hands and bags are never
// part of an observation.
type FeedObservation struct {
	Player       *Player
	WateringHole int
	Opponents    []*Domain
}

// SelfRank is the opponent rank naming the observing player's own domain.
func (o FeedObservation) SelfRank() int { return len(o.Opponents) }

// Target returns the domain an opponent rank refers to.
func (o FeedObservation) Target(rank int) *Domain {
	if rank == o.SelfRank() {
		return o.Player.domain
	}
	if rank < 0 || rank >= len(o.Opponents) {
		return nil
	}
	return o.Opponents[rank]
}

// ---------------------------------------------------------------------------
// Projections
// ---------------------------------------------------------------------------

func (g *Game) dealObservation(idx int) DealObservation {
	return DealObservation{WateringHole: g.board.food, Player: g.players[idx].Clone()}
}

func (g *Game) actionObservation(idx int) ActionObservation {
	obs := ActionObservation{Player: g.players[idx].Clone()}
	for i, p := range g.players {
		switch {
		case i < idx:
			obs.Before = append(obs.Before, p.domain.Clone())
		case i > idx:
			obs.After = append(obs.After, p.domain.Clone())
		}
	}
	return obs
}

func (g *Game) feedObservation(idx int) FeedObservation {
	obs := FeedObservation{Player: g.players[idx].Clone(), WateringHole: g.board.food}
	n := len(g.players)
	for k := 1; k < n; k++ {
		obs.Opponents = append(obs.Opponents, g.players[(idx+k)%n].domain.Clone())
	}
	return obs
}
