// internal/wire/config.go
package wire

import (
	"encoding/json"
	"fmt"

	engine "github.com/nixpulvis/hell/engine"
)

// Configuration is a game between steps: [[player...], watering_hole,
// [card...]].
type Configuration struct {
	Players      []*engine.Player
	WateringHole int
	Deck         []engine.Card
}

// ConfigurationOf captures a game's current state.
func ConfigurationOf(g *engine.Game) Configuration {
	return Configuration{
		Players:      g.Players(),
		WateringHole: g.WateringHole(),
		Deck:         g.Deck(),
	}
}

// MarshalJSON implements json.Marshaler.
func (c Configuration) MarshalJSON() ([]byte, error) {
	players := make([]any, len(c.Players))
	for i, p := range c.Players {
		players[i] = EncodePlayer(p)
	}
	return json.Marshal([]any{players, c.WateringHole, EncodeCards(c.Deck)})
}

// UnmarshalJSON implements json.Unmarshaler. Only the shape is checked here;
// Game applies the player count and deck composition rules.
func (c *Configuration) UnmarshalJSON(b []byte) error {
	elems, err := decodeArray(b, "configuration")
	if err != nil {
		return err
	}
	if len(elems) != 3 {
		return malformed("configuration: want 3 elements, got %d", len(elems))
	}
	rawPlayers, err := decodeArray(elems[0], "players")
	if err != nil {
		return err
	}
	players := make([]*engine.Player, len(rawPlayers))
	for i, raw := range rawPlayers {
		if players[i], err = DecodePlayer(raw); err != nil {
			return fmt.Errorf("player %d: %w", i, err)
		}
	}
	wh, err := decodeNat(elems[1], "watering hole")
	if err != nil {
		return err
	}
	deck, err := DecodeCards(elems[2])
	if err != nil {
		return err
	}
	*c = Configuration{Players: players, WateringHole: wh, Deck: deck}
	return nil
}

// Game builds a game from the configuration, one chooser per player.
func (c Configuration) Game(choosers []engine.Chooser) (*engine.Game, error) {
	return engine.NewGameFromState(c.Players, choosers, c.WateringHole, c.Deck, engine.DefaultRules())
}
