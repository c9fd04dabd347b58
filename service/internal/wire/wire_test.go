package wire

import (
	"encoding/json"
	"testing"

	engine "github.com/nixpulvis/hell/engine"
	"github.com/nixpulvis/hell/engine/agent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func mustSpecies(t *testing.T, pop, body, food, fat int, traits ...engine.Trait) *engine.Species {
	t.Helper()
	s, err := engine.RestoreSpecies(pop, body, food, fat, traits)
	require.NoError(t, err)
	return s
}

// ---------------------------------------------------------------------------
// Traits and cards
// ---------------------------------------------------------------------------

func TestDecodeTraitSuggestsClosest(t *testing.T) {
	tr, err := DecodeTrait("long-neck")
	require.NoError(t, err)
	assert.Equal(t, engine.LongNeck, tr)

	for name, want := range map[string]string{
		"hardshell":    "hard-shell",
		"carnivor":     "carnivore",
		"warning_call": "warning-call",
	} {
		_, err := DecodeTrait(name)
		assert.ErrorIs(t, err, ErrMalformed)
		assert.ErrorContains(t, err, `did you mean "`+want+`"`)
	}
}

func TestCardEncoding(t *testing.T) {
	c := engine.Card{Food: -2, Trait: engine.FatTissue}
	assert.JSONEq(t, `[-2,"fat-tissue"]`, mustJSON(t, EncodeCard(c)))

	got, err := DecodeCard([]byte(`[8,"carnivore"]`))
	require.NoError(t, err)
	assert.Equal(t, engine.Card{Food: 8, Trait: engine.Carnivore}, got)

	for _, raw := range []string{`[4,"horns"]`, `[1]`, `["1","horns"]`, `[1,"horn"]`, `{}`} {
		_, err := DecodeCard([]byte(raw))
		assert.ErrorIs(t, err, ErrMalformed, raw)
	}
}

// ---------------------------------------------------------------------------
// Species and domains
// ---------------------------------------------------------------------------

func TestSpeciesEncoding(t *testing.T) {
	tests := []struct {
		name    string
		species *engine.Species
		want    string
	}{
		{
			name:    "lean",
			species: mustSpecies(t, 3, 2, 1, 0, engine.Carnivore),
			want:    `[["food",1],["body",2],["population",3],["traits",["carnivore"]]]`,
		},
		{
			name:    "fat",
			species: mustSpecies(t, 2, 4, 0, 3, engine.FatTissue, engine.Horns),
			want:    `[["food",0],["body",4],["population",2],["traits",["fat-tissue","horns"]],["fat-food",3]]`,
		},
		{
			name:    "no traits",
			species: engine.NewSpecies(),
			want:    `[["food",0],["body",0],["population",1],["traits",[]]]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.JSONEq(t, tt.want, mustJSON(t, EncodeSpecies(tt.species)))

			got, err := DecodeSpecies([]byte(tt.want))
			require.NoError(t, err)
			assert.Equal(t, tt.species.Population(), got.Population())
			assert.Equal(t, tt.species.BodySize(), got.BodySize())
			assert.Equal(t, tt.species.Food(), got.Food())
			assert.Equal(t, tt.species.Fat(), got.Fat())
			assert.Equal(t, tt.species.Traits(), got.Traits())
		})
	}
}

func TestDecodeSpeciesRejects(t *testing.T) {
	for name, raw := range map[string]string{
		"extinct":         `[["food",0],["body",0],["population",0],["traits",[]]]`,
		"overfed":         `[["food",3],["body",0],["population",2],["traits",[]]]`,
		"fat, no tissue":  `[["food",0],["body",2],["population",1],["traits",[]],["fat-food",1]]`,
		"labels swapped":  `[["body",0],["food",0],["population",1],["traits",[]]]`,
		"missing traits":  `[["food",0],["body",0],["population",1]]`,
		"negative body":   `[["food",0],["body",-1],["population",1],["traits",[]]]`,
		"duplicate trait": `[["food",0],["body",0],["population",1],["traits",["horns","horns"]]]`,
		"not an array":    `{"food":0}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeSpecies([]byte(raw))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestDomainsEncoding(t *testing.T) {
	a, err := engine.NewDomain(mustSpecies(t, 1, 0, 0, 0), mustSpecies(t, 2, 1, 1, 0, engine.Climbing))
	require.NoError(t, err)
	empty, err := engine.NewDomain()
	require.NoError(t, err)

	raw := mustJSON(t, EncodeDomains([]*engine.Domain{a, empty}))
	got, err := DecodeDomains([]byte(raw))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].Len())
	assert.Equal(t, []engine.Trait{engine.Climbing}, got[0].At(1).Traits())
	assert.Zero(t, got[1].Len())

	_, err = DecodeDomains([]byte(`null`))
	assert.ErrorIs(t, err, ErrMalformed)
}

// ---------------------------------------------------------------------------
// Configurations
// ---------------------------------------------------------------------------

const configuration = `[
  [
    [["id",1],["species",[[["food",0],["body",0],["population",1],["traits",[]]]]],["bag",0]],
    [["id",2],["species",[]],["bag",3],["cards",[[1,"horns"]]]],
    [["id",3],["species",[]],["bag",0]]
  ],
  5,
  [[-1,"ambush"],[2,"carnivore"]]
]`

func TestConfigurationRoundTrip(t *testing.T) {
	var c Configuration
	require.NoError(t, json.Unmarshal([]byte(configuration), &c))

	require.Len(t, c.Players, 3)
	assert.Equal(t, 5, c.WateringHole)
	assert.Equal(t, []engine.Card{{Food: -1, Trait: engine.Ambush}, {Food: 2, Trait: engine.Carnivore}}, c.Deck)
	assert.Equal(t, 2, c.Players[1].ID())
	assert.Equal(t, 3, c.Players[1].Bag())
	assert.Equal(t, []engine.Card{{Food: 1, Trait: engine.Horns}}, c.Players[1].Hand())
	assert.Equal(t, 1, c.Players[0].Domain().Len())

	assert.JSONEq(t, configuration, mustJSON(t, c))
}

func TestConfigurationGame(t *testing.T) {
	var c Configuration
	require.NoError(t, json.Unmarshal([]byte(configuration), &c))
	g, err := c.Game([]engine.Chooser{agent.Silly{}, agent.Silly{}, agent.Silly{}})
	require.NoError(t, err)

	assert.JSONEq(t, configuration, mustJSON(t, ConfigurationOf(g)))
}

func TestConfigurationRejects(t *testing.T) {
	for name, raw := range map[string]string{
		"two elements":     `[[], 0]`,
		"negative hole":    `[[], -1, []]`,
		"bad player":       `[[[["id",1]]], 0, []]`,
		"bad card":         `[[], 0, [[9,"horns"]]]`,
		"players not list": `[{}, 0, []]`,
	} {
		t.Run(name, func(t *testing.T) {
			var c Configuration
			assert.ErrorIs(t, json.Unmarshal([]byte(raw), &c), ErrMalformed)
		})
	}
}

// ---------------------------------------------------------------------------
// Remote protocol
// ---------------------------------------------------------------------------

func TestStartRoundTrip(t *testing.T) {
	d, err := engine.NewDomain(mustSpecies(t, 2, 1, 0, 0, engine.Foraging))
	require.NoError(t, err)
	hand := []engine.Card{{Food: 0, Trait: engine.Scavenger}, {Food: -3, Trait: engine.Symbiosis}}
	p, err := engine.RestorePlayer(7, d, 4, hand)
	require.NoError(t, err)

	raw := mustJSON(t, EncodeStart(engine.DealObservation{WateringHole: 6, Player: p}))
	got, err := DecodeStart([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, 6, got.WateringHole)
	assert.Equal(t, RemotePlayerID, got.Player.ID())
	assert.Equal(t, 4, got.Player.Bag())
	assert.Equal(t, hand, got.Player.Hand())
	assert.Equal(t, []engine.Trait{engine.Foraging}, got.Player.Domain().At(0).Traits())
}

func TestChooseRoundTrip(t *testing.T) {
	one, err := engine.NewDomain(engine.NewSpecies())
	require.NoError(t, err)
	empty, err := engine.NewDomain()
	require.NoError(t, err)

	raw := mustJSON(t, EncodeChoose(engine.ActionObservation{
		Before: []*engine.Domain{one},
		After:  []*engine.Domain{empty, one},
	}))
	before, after, err := DecodeChoose([]byte(raw))
	require.NoError(t, err)
	assert.Len(t, before, 1)
	assert.Len(t, after, 2)
	assert.Equal(t, 1, after[1].Len())
}

func TestActionEncoding(t *testing.T) {
	choice := engine.ActionChoice{
		FoodCard:          0,
		PopulationGrowths: []engine.Growth{{Species: 1, Card: 2}},
		BodyGrowths:       []engine.Growth{{Species: 1, Card: 3}},
		BoardTrades:       []engine.BoardTrade{{Card: 1, Traits: []int{4}}},
		TraitTrades:       []engine.TraitTrade{{Species: 0, Trait: 0, Card: 5}},
	}
	const want = `[0,[["population",1,2]],[["body",1,3]],[[1,4]],[[0,0,5]]]`
	assert.JSONEq(t, want, mustJSON(t, EncodeAction(choice)))

	got, err := DecodeAction([]byte(want))
	require.NoError(t, err)
	assert.Equal(t, choice, got)

	got, err = DecodeAction([]byte(`[2,[],[],[],[]]`))
	require.NoError(t, err)
	assert.Equal(t, 2, got.FoodCard)
	assert.Empty(t, got.BoardTrades)
}

func TestDecodeActionRejects(t *testing.T) {
	for name, raw := range map[string]string{
		"four elements":      `[0,[],[],[]]`,
		"negative food card": `[-1,[],[],[],[]]`,
		"wrong growth label": `[0,[["body",0,1]],[],[],[]]`,
		"short growth":       `[0,[["population",0]],[],[],[]]`,
		"empty board trade":  `[0,[],[],[[]],[]]`,
		"too many traits":    `[0,[],[],[[1,2,3,4,5]],[]]`,
		"short trait trade":  `[0,[],[],[],[[0,1]]]`,
		"fractional index":   `[0.5,[],[],[],[]]`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeAction([]byte(raw))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestFeedStateRoundTrip(t *testing.T) {
	self, err := engine.NewDomain(mustSpecies(t, 2, 2, 0, 0, engine.Carnivore))
	require.NoError(t, err)
	p, err := engine.RestorePlayer(3, self, 1, []engine.Card{{Food: 1, Trait: engine.Herding}})
	require.NoError(t, err)
	prey, err := engine.NewDomain(mustSpecies(t, 1, 0, 0, 0))
	require.NoError(t, err)
	obs := engine.FeedObservation{Player: p, WateringHole: 3, Opponents: []*engine.Domain{prey}}

	got, err := DecodeFeedState([]byte(mustJSON(t, EncodeFeedState(obs))))
	require.NoError(t, err)
	assert.Equal(t, 3, got.WateringHole)
	assert.Equal(t, 1, got.Player.Bag())
	require.Len(t, got.Opponents, 1)
	assert.Equal(t, obs.Choices(), got.Choices())
}

func TestFeedChoiceEncoding(t *testing.T) {
	tests := []struct {
		raw  string
		want *engine.FeedChoice
	}{
		{`null`, nil},
		{`false`, &engine.FeedChoice{Kind: engine.KindAbstain}},
		{`2`, &engine.FeedChoice{Kind: engine.KindFeed, Species: 2}},
		{`[1,2]`, &engine.FeedChoice{Kind: engine.KindStore, Species: 1, Amount: 2}},
		{`[0,1,2]`, &engine.FeedChoice{Kind: engine.KindAttack, Species: 0, Opponent: 1, Defender: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := DecodeFeedChoice([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.JSONEq(t, tt.raw, mustJSON(t, EncodeFeedChoice(tt.want)))
		})
	}
}

func TestDecodeFeedChoiceRejects(t *testing.T) {
	for _, raw := range []string{`true`, `-1`, `1.5`, `"feed"`, `[1]`, `[1,0]`, `[0,1,2,3]`, `{}`, `[`} {
		_, err := DecodeFeedChoice([]byte(raw))
		assert.ErrorIs(t, err, ErrMalformed, raw)
	}
}
