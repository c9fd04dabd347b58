package agent

import (
	engine "github.com/nixpulvis/hell/engine"
	lua "github.com/yuin/gopher-lua"
)

// Field names of the tables handed to Lua strategies. Indices inside the
// tables are 0-based, matching engine.FeedChoice.
const (
	fieldKind     = "kind"
	fieldSpecies  = "species"
	fieldAmount   = "amount"
	fieldOpponent = "opponent"
	fieldDefender = "defender"

	fieldPopulation = "population"
	fieldBody       = "body"
	fieldFood       = "food"
	fieldFat        = "fat"
	fieldTraits     = "traits"

	fieldWateringHole = "watering_hole"
	fieldBag          = "bag"
	fieldDomain       = "domain"
	fieldOpponents    = "opponents"
	fieldSelfRank     = "self_rank"
)

// encodeChoice turns a feeding into a Lua table.
func encodeChoice(L *lua.LState, c engine.FeedChoice) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, fieldKind, lua.LString(c.Kind.String()))
	switch c.Kind {
	case engine.KindFeed:
		L.SetField(t, fieldSpecies, lua.LNumber(c.Species))
	case engine.KindStore:
		L.SetField(t, fieldSpecies, lua.LNumber(c.Species))
		L.SetField(t, fieldAmount, lua.LNumber(c.Amount))
	case engine.KindAttack:
		L.SetField(t, fieldSpecies, lua.LNumber(c.Species))
		L.SetField(t, fieldOpponent, lua.LNumber(c.Opponent))
		L.SetField(t, fieldDefender, lua.LNumber(c.Defender))
	}
	return t
}

// encodeChoices turns feedings into a Lua array, keeping their order.
func encodeChoices(L *lua.LState, choices []engine.FeedChoice) *lua.LTable {
	t := L.NewTable()
	for _, c := range choices {
		t.Append(encodeChoice(L, c))
	}
	return t
}

func encodeSpecies(L *lua.LState, s *engine.Species) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, fieldPopulation, lua.LNumber(s.Population()))
	L.SetField(t, fieldBody, lua.LNumber(s.BodySize()))
	L.SetField(t, fieldFood, lua.LNumber(s.Food()))
	L.SetField(t, fieldFat, lua.LNumber(s.Fat()))
	traits := L.NewTable()
	for _, tr := range s.Traits() {
		traits.Append(lua.LString(tr.String()))
	}
	L.SetField(t, fieldTraits, traits)
	return t
}

func encodeDomain(L *lua.LState, d *engine.Domain) *lua.LTable {
	t := L.NewTable()
	for _, s := range d.Species() {
		t.Append(encodeSpecies(L, s))
	}
	return t
}

// encodeFeedObservation exposes what the player may see: its own domain and
// bag, the watering hole, and the opponents' domains.
func encodeFeedObservation(L *lua.LState, obs engine.FeedObservation) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, fieldWateringHole, lua.LNumber(obs.WateringHole))
	L.SetField(t, fieldBag, lua.LNumber(obs.Player.Bag()))
	L.SetField(t, fieldDomain, encodeDomain(L, obs.Player.Domain()))
	opponents := L.NewTable()
	for _, d := range obs.Opponents {
		opponents.Append(encodeDomain(L, d))
	}
	L.SetField(t, fieldOpponents, opponents)
	L.SetField(t, fieldSelfRank, lua.LNumber(obs.SelfRank()))
	return t
}
