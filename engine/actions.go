package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"
)

// Step names a phase of the round.
type Step uint8

const (
	StepDeal Step = iota
	StepAction
	StepReveal
	StepFeed
	StepBag
)

var stepNames = [...]string{"deal", "action", "reveal", "feed", "bag"}

func (s Step) String() string {
	if int(s) < len(stepNames) {
		return stepNames[s]
	}
	return fmt.Sprintf("step(%d)", uint8(s))
}

// ---------------------------------------------------------------------------
// Round
// ---------------------------------------------------------------------------

// Run plays rounds until the game is over. The context is checked between
// steps; a cancelled context stops the game with its error.
func (g *Game) Run(ctx context.Context) error {
	for !g.IsOver() {
		err := g.Round(ctx)
		if errors.Is(err, ErrResourceExhausted) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Round plays Deal, one Action per player, Reveal, Feed until the watering
// hole is empty or everyone is skipped, and Bag. It returns
// ErrResourceExhausted, having changed nothing, when the deck cannot cover
// the deal.
func (g *Game) Round(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := g.Deal(ctx); err != nil {
		return err
	}
	g.round++
	log := g.log.WithField("round", g.round)
	log.WithField("players", len(g.players)).Info("Round started.")

	steps := []struct {
		step Step
		run  func(context.Context) error
	}{
		{StepAction, g.ActionStep},
		{StepReveal, g.RevealStep},
		{StepFeed, g.FeedStep},
		{StepBag, g.BagStep},
	}
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		log.WithField("step", s.step).Debug("Step started.")
		if err := s.run(ctx); err != nil {
			return fmt.Errorf("%s step: %w", s.step, err)
		}
	}
	log.WithField("players", len(g.players)).Info("Round finished.")
	return nil
}

// ---------------------------------------------------------------------------
// Deal
// ---------------------------------------------------------------------------

// Deal gives every player without species a new one and deals each player
// three cards plus one per species from the front of the deck. Players are
// told their state afterwards.
func (g *Game) Deal(ctx context.Context) error {
	if need := g.fullDealSize(); need > len(g.deck) {
		return fmt.Errorf("%w: deal needs %d cards, %d left", ErrResourceExhausted, need, len(g.deck))
	}
	for _, p := range g.players {
		if p.domain.IsEmpty() {
			p.domain.Add(Right)
		}
	}
	for _, p := range g.players {
		n := g.Rules.dealSize(p.domain.Len())
		cards := g.deck[:n:n]
		g.deck = g.deck[n:]
		p.pushCards(cards)
	}
	g.resetTurn()
	for i := range g.players {
		if err := g.choosers[i].Start(ctx, g.dealObservation(i)); err != nil {
			g.log.WithFields(logrus.Fields{"player": g.players[i].id}).
				WithError(err).Debug("Start notification failed.")
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Action
// ---------------------------------------------------------------------------

// ActionStep asks each player in round order for an action. A valid action
// is applied in full; anything else ejects the player.
func (g *Game) ActionStep(ctx context.Context) error {
	turns := len(g.players)
	for range turns {
		if g.current < 0 {
			break
		}
		g.actionTurn(ctx)
	}
	return nil
}

func (g *Game) actionTurn(ctx context.Context) {
	i := g.current
	choice, err := g.choosers[i].ChooseAction(ctx, g.actionObservation(i))
	if err != nil {
		g.ejectCurrentPlayer(fmt.Errorf("%w: %w", ErrChooserFailure, err))
		return
	}
	if choice == nil {
		g.ejectCurrentPlayer(choiceErr("no action chosen"))
		return
	}
	next := g.players[i].Clone()
	food, err := applyAction(next, *choice)
	if err != nil {
		g.ejectCurrentPlayer(err)
		return
	}
	g.players[i] = next
	g.board.playCard(food)
	g.advanceCurrentPlayer()
}

// ---------------------------------------------------------------------------
// Reveal
// ---------------------------------------------------------------------------

// RevealStep turns the played cards into food and runs the Fertile,
// LongNeck and fat passes, then hands the turn back to the starting player.
func (g *Game) RevealStep(context.Context) error {
	g.reveal()
	g.resetTurn()
	return nil
}

// ---------------------------------------------------------------------------
// Feed
// ---------------------------------------------------------------------------

// FeedStep repeats feedings until the turn is over.
func (g *Game) FeedStep(ctx context.Context) error {
	for !g.feedingIsOver() {
		g.feedTurn(ctx)
	}
	return nil
}

// FeedOnce makes a single feeding for the current player, then moves the
// turn on. It does nothing once the Feed step is over.
func (g *Game) FeedOnce(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !g.feedingIsOver() {
		g.feedTurn(ctx)
	}
	return nil
}

// feedingIsOver reports whether the watering hole is empty or every player
// is out of the feeding.
func (g *Game) feedingIsOver() bool {
	return g.board.food == 0 || g.current < 0 || len(g.players) == 0
}

// feedTurn makes one feeding for the current player. With no legal
// choices, or when the chooser passes, the player is skipped.
func (g *Game) feedTurn(ctx context.Context) {
	i := g.current
	obs := g.feedObservation(i)
	choices := obs.Choices()
	if len(choices) == 0 {
		g.skipCurrentPlayer()
		return
	}

	choice, ok := AutoChoice(choices, obs.SelfRank())
	if !ok {
		c, err := g.choosers[i].ChooseFeed(ctx, obs)
		if err != nil {
			g.ejectCurrentPlayer(fmt.Errorf("%w: %w", ErrChooserFailure, err))
			return
		}
		if c == nil {
			g.skipCurrentPlayer()
			return
		}
		if !slices.Contains(choices, *c) {
			g.ejectCurrentPlayer(choiceErr("%s is not a legal feeding", c))
			return
		}
		choice = *c
	}

	if err := g.applyFeed(choice); err != nil {
		g.ejectCurrentPlayer(err)
		return
	}
	if choice.Kind != KindAbstain {
		g.advanceCurrentPlayer()
	}
}

// applyFeed carries out a legal feeding for the current player.
func (g *Game) applyFeed(c FeedChoice) error {
	i := g.current
	switch c.Kind {
	case KindAbstain:
		g.skipCurrentPlayer()
	case KindFeed:
		g.speciesAt(i, c.Species).feed()
	case KindStore:
		if err := g.speciesAt(i, c.Species).store(c.Amount); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidChoice, err)
		}
	case KindAttack:
		situation{
			g:        g,
			attacker: speciesRef{player: i, species: c.Species},
			defender: speciesRef{player: g.opponentIndex(c.Opponent), species: c.Defender},
		}.fight()
	default:
		return choiceErr("unknown feeding kind %s", c.Kind)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Bag
// ---------------------------------------------------------------------------

// BagStep culls every domain, refunds cards for extinctions, moves the food
// the survivors ate into their owners' bags and rotates the starting player.
func (g *Game) BagStep(context.Context) error {
	for i, p := range g.players {
		extinctions, food := p.domain.Harvest()
		g.playerAt(i).refund(extinctions)
		p.bag += food
		if extinctions > 0 {
			g.log.WithFields(logrus.Fields{"round": g.round, "player": p.id, "extinctions": extinctions}).
				Debug("Species culled.")
		}
	}
	g.advanceStartingPlayer()
	return nil
}
