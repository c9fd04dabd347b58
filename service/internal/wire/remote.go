// internal/wire/remote.go
package wire

import (
	"encoding/json"
	"fmt"

	engine "github.com/nixpulvis/hell/engine"
)

// Messages of the remote player protocol. After sign-up (an info string
// answered with "ok") the dealer sends:
//
//	start  [watering_hole, bag, [species...], [card...]]          no reply
//	choose [[domain...before], [domain...after]]                   reply Action4
//	feed   [bag, [species...], [card...], watering_hole, [domain...]] reply feed choice
//
// Action4 is [food_card, [["population",s,c]...], [["body",s,c]...],
// [[card, trait_card...]...], [[s,t,c]...]]. A feed choice is false
// (abstain), s (feed), [s,n] (store) or [s,o,d] (attack); null passes.

// SignUpOK is the dealer's answer to a sign-up.
const SignUpOK = "ok"

// RemotePlayerID is the id a remote player gives itself; the protocol never
// tells a player its id.
const RemotePlayerID = 1

// ---------------------------------------------------------------------------
// start
// ---------------------------------------------------------------------------

// EncodeStart renders the post-deal notification.
func EncodeStart(obs engine.DealObservation) []any {
	return []any{
		obs.WateringHole,
		obs.Player.Bag(),
		EncodeDomain(obs.Player.Domain()),
		EncodeCards(obs.Player.Hand()),
	}
}

// DecodeStart parses the post-deal notification.
func DecodeStart(b []byte) (engine.DealObservation, error) {
	elems, err := decodeArray(b, "start")
	if err != nil {
		return engine.DealObservation{}, err
	}
	if len(elems) != 4 {
		return engine.DealObservation{}, malformed("start: want 4 elements, got %d", len(elems))
	}
	wh, err := decodeNat(elems[0], "watering hole")
	if err != nil {
		return engine.DealObservation{}, err
	}
	p, err := decodeSelf(elems[1], elems[2], elems[3])
	if err != nil {
		return engine.DealObservation{}, err
	}
	return engine.DealObservation{WateringHole: wh, Player: p}, nil
}

// decodeSelf rebuilds the receiving player from its bag, species and cards.
func decodeSelf(rawBag, rawSpecies, rawCards []byte) (*engine.Player, error) {
	bag, err := decodeNat(rawBag, "bag")
	if err != nil {
		return nil, err
	}
	domain, err := DecodeDomain(rawSpecies)
	if err != nil {
		return nil, err
	}
	hand, err := DecodeCards(rawCards)
	if err != nil {
		return nil, err
	}
	p, err := engine.RestorePlayer(RemotePlayerID, domain, bag, hand)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return p, nil
}

// ---------------------------------------------------------------------------
// choose
// ---------------------------------------------------------------------------

// EncodeChoose renders an action request. The player's own state was sent
// with start.
func EncodeChoose(obs engine.ActionObservation) []any {
	return []any{EncodeDomains(obs.Before), EncodeDomains(obs.After)}
}

// DecodeChoose parses an action request.
func DecodeChoose(b []byte) (before, after []*engine.Domain, err error) {
	elems, err := decodeArray(b, "choose")
	if err != nil {
		return nil, nil, err
	}
	if len(elems) != 2 {
		return nil, nil, malformed("choose: want 2 elements, got %d", len(elems))
	}
	if before, err = DecodeDomains(elems[0]); err != nil {
		return nil, nil, err
	}
	if after, err = DecodeDomains(elems[1]); err != nil {
		return nil, nil, err
	}
	return before, after, nil
}

// EncodeAction renders an Action4.
func EncodeAction(c engine.ActionChoice) []any {
	gp := make([]any, len(c.PopulationGrowths))
	for i, g := range c.PopulationGrowths {
		gp[i] = []any{"population", g.Species, g.Card}
	}
	gb := make([]any, len(c.BodyGrowths))
	for i, g := range c.BodyGrowths {
		gb[i] = []any{"body", g.Species, g.Card}
	}
	bt := make([]any, len(c.BoardTrades))
	for i, t := range c.BoardTrades {
		cards := []any{t.Card}
		for _, tc := range t.Traits {
			cards = append(cards, tc)
		}
		bt[i] = cards
	}
	rt := make([]any, len(c.TraitTrades))
	for i, t := range c.TraitTrades {
		rt[i] = []any{t.Species, t.Trait, t.Card}
	}
	return []any{c.FoodCard, gp, gb, bt, rt}
}

// DecodeAction parses an Action4. Only the shape is checked; indices are
// validated against the player by the game.
func DecodeAction(b []byte) (engine.ActionChoice, error) {
	var c engine.ActionChoice
	elems, err := decodeArray(b, "action")
	if err != nil {
		return c, err
	}
	if len(elems) != 5 {
		return c, malformed("action: want 5 elements, got %d", len(elems))
	}
	if c.FoodCard, err = decodeNat(elems[0], "food card"); err != nil {
		return c, err
	}
	if c.PopulationGrowths, err = decodeGrowths(elems[1], "population"); err != nil {
		return c, err
	}
	if c.BodyGrowths, err = decodeGrowths(elems[2], "body"); err != nil {
		return c, err
	}
	if c.BoardTrades, err = decodeBoardTrades(elems[3]); err != nil {
		return c, err
	}
	if c.TraitTrades, err = decodeTraitTrades(elems[4]); err != nil {
		return c, err
	}
	return c, nil
}

// decodeNats parses an array of natural numbers of length in [lo, hi].
func decodeNats(b []byte, what string, lo, hi int) ([]int, error) {
	elems, err := decodeArray(b, what)
	if err != nil {
		return nil, err
	}
	if len(elems) < lo || len(elems) > hi {
		return nil, malformed("%s: want %d to %d numbers, got %d", what, lo, hi, len(elems))
	}
	ns := make([]int, len(elems))
	for i, e := range elems {
		if ns[i], err = decodeNat(e, what); err != nil {
			return nil, err
		}
	}
	return ns, nil
}

func decodeGrowths(b []byte, label string) ([]engine.Growth, error) {
	elems, err := decodeArray(b, label+" growths")
	if err != nil {
		return nil, err
	}
	gs := make([]engine.Growth, len(elems))
	for i, e := range elems {
		parts, err := decodeArray(e, label+" growth")
		if err != nil {
			return nil, err
		}
		if len(parts) != 3 {
			return nil, malformed("%s growth: want [%q, species, card], got %d elements", label, label, len(parts))
		}
		var got string
		if err := json.Unmarshal(parts[0], &got); err != nil || got != label {
			return nil, malformed("%s growth: want label %q, got %s", label, label, parts[0])
		}
		if gs[i].Species, err = decodeNat(parts[1], "species index"); err != nil {
			return nil, err
		}
		if gs[i].Card, err = decodeNat(parts[2], "card index"); err != nil {
			return nil, err
		}
	}
	return gs, nil
}

func decodeBoardTrades(b []byte) ([]engine.BoardTrade, error) {
	elems, err := decodeArray(b, "board trades")
	if err != nil {
		return nil, err
	}
	bts := make([]engine.BoardTrade, len(elems))
	for i, e := range elems {
		ns, err := decodeNats(e, "board trade", 1, 1+engine.MaxTraits)
		if err != nil {
			return nil, err
		}
		bts[i] = engine.BoardTrade{Card: ns[0], Traits: ns[1:]}
	}
	return bts, nil
}

func decodeTraitTrades(b []byte) ([]engine.TraitTrade, error) {
	elems, err := decodeArray(b, "trait trades")
	if err != nil {
		return nil, err
	}
	tts := make([]engine.TraitTrade, len(elems))
	for i, e := range elems {
		ns, err := decodeNats(e, "trait trade", 3, 3)
		if err != nil {
			return nil, err
		}
		tts[i] = engine.TraitTrade{Species: ns[0], Trait: ns[1], Card: ns[2]}
	}
	return tts, nil
}

// ---------------------------------------------------------------------------
// feed
// ---------------------------------------------------------------------------

// EncodeFeedState renders a feeding request. Opponents appear by domain
// only.
func EncodeFeedState(obs engine.FeedObservation) []any {
	return []any{
		obs.Player.Bag(),
		EncodeDomain(obs.Player.Domain()),
		EncodeCards(obs.Player.Hand()),
		obs.WateringHole,
		EncodeDomains(obs.Opponents),
	}
}

// DecodeFeedState parses a feeding request.
func DecodeFeedState(b []byte) (engine.FeedObservation, error) {
	elems, err := decodeArray(b, "feed state")
	if err != nil {
		return engine.FeedObservation{}, err
	}
	if len(elems) != 5 {
		return engine.FeedObservation{}, malformed("feed state: want 5 elements, got %d", len(elems))
	}
	p, err := decodeSelf(elems[0], elems[1], elems[2])
	if err != nil {
		return engine.FeedObservation{}, err
	}
	wh, err := decodeNat(elems[3], "watering hole")
	if err != nil {
		return engine.FeedObservation{}, err
	}
	opponents, err := DecodeDomains(elems[4])
	if err != nil {
		return engine.FeedObservation{}, err
	}
	return engine.FeedObservation{Player: p, WateringHole: wh, Opponents: opponents}, nil
}

// EncodeFeedChoice renders a feed choice; nil renders as null.
func EncodeFeedChoice(c *engine.FeedChoice) any {
	if c == nil {
		return nil
	}
	switch c.Kind {
	case engine.KindFeed:
		return c.Species
	case engine.KindStore:
		return []any{c.Species, c.Amount}
	case engine.KindAttack:
		return []any{c.Species, c.Opponent, c.Defender}
	}
	return false
}

// DecodeFeedChoice parses a feed choice. null gives nil.
func DecodeFeedChoice(b []byte) (*engine.FeedChoice, error) {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, malformed("feed choice: %v", err)
	}
	var c engine.FeedChoice
	switch v := v.(type) {
	case nil:
		return nil, nil
	case bool:
		if v {
			return nil, malformed("feed choice: true is not a choice")
		}
		c = engine.Abstain()
	case float64:
		n, err := decodeNat(b, "feed choice")
		if err != nil {
			return nil, err
		}
		c = engine.Feed(n)
	case []any:
		ns, err := decodeNats(b, "feed choice", 2, 3)
		if err != nil {
			return nil, err
		}
		if len(ns) == 2 {
			if ns[1] < 1 {
				return nil, malformed("feed choice: store amount must be positive")
			}
			c = engine.Store(ns[0], ns[1])
		} else {
			c = engine.Attack(ns[0], ns[1], ns[2])
		}
	default:
		return nil, malformed("feed choice: unexpected %s", b)
	}
	return &c, nil
}
