// internal/wire/wire.go

// Package wire encodes engine values in the compact JSON-array format used
// by configurations and the remote player protocol.
//
// Every entity is a JSON array. Labelled fields are two-element arrays,
// e.g. a species is
//
//	[["food",1],["body",2],["population",3],["traits",["carnivore"]]]
//
// with an optional trailing ["fat-food",n] when fat is stored.
package wire

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/agnivade/levenshtein"
	engine "github.com/nixpulvis/hell/engine"
)

// ErrMalformed is wrapped by every decoding error.
var ErrMalformed = errors.New("malformed message")

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}

// ---------------------------------------------------------------------------
// Decoding helpers
// ---------------------------------------------------------------------------

// decodeArray splits a JSON array into its raw elements.
func decodeArray(b []byte, what string) ([]json.RawMessage, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(b, &elems); err != nil {
		return nil, malformed("%s: want an array: %v", what, err)
	}
	if elems == nil {
		return nil, malformed("%s: want an array, got null", what)
	}
	return elems, nil
}

// decodeNat decodes a natural number.
func decodeNat(b []byte, what string) (int, error) {
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return 0, malformed("%s: want a natural number: %v", what, err)
	}
	if n < 0 {
		return 0, malformed("%s: %d is negative", what, n)
	}
	return n, nil
}

// decodeField decodes a ["label", value] pair and returns the value.
func decodeField(b []byte, label string) (json.RawMessage, error) {
	pair, err := decodeArray(b, label)
	if err != nil {
		return nil, err
	}
	if len(pair) != 2 {
		return nil, malformed("%s: want [label, value], got %d elements", label, len(pair))
	}
	var got string
	if err := json.Unmarshal(pair[0], &got); err != nil || got != label {
		return nil, malformed("want label %q, got %s", label, pair[0])
	}
	return pair[1], nil
}

func decodeNatField(b []byte, label string) (int, error) {
	v, err := decodeField(b, label)
	if err != nil {
		return 0, err
	}
	return decodeNat(v, label)
}

// ---------------------------------------------------------------------------
// Traits and cards
// ---------------------------------------------------------------------------

// DecodeTrait parses a trait name. Unknown names are reported along with the
// closest valid one.
func DecodeTrait(name string) (engine.Trait, error) {
	if t, ok := engine.ParseTrait(name); ok {
		return t, nil
	}
	return 0, malformed("unknown trait %q, did you mean %q?", name, closestTrait(name))
}

func closestTrait(name string) string {
	best, bestDist := "", -1
	for _, n := range engine.TraitNames() {
		if d := levenshtein.ComputeDistance(name, n); bestDist < 0 || d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}

func encodeTraits(ts []engine.Trait) []string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.String()
	}
	return names
}

func decodeTraits(b []byte) ([]engine.Trait, error) {
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return nil, malformed("traits: want an array of names: %v", err)
	}
	ts := make([]engine.Trait, len(names))
	for i, n := range names {
		t, err := DecodeTrait(n)
		if err != nil {
			return nil, err
		}
		ts[i] = t
	}
	return ts, nil
}

// EncodeCard renders a card as [food, "trait"].
func EncodeCard(c engine.Card) []any {
	return []any{c.Food, c.Trait.String()}
}

// DecodeCard parses [food, "trait"], checking the food range.
func DecodeCard(b []byte) (engine.Card, error) {
	elems, err := decodeArray(b, "card")
	if err != nil {
		return engine.Card{}, err
	}
	if len(elems) != 2 {
		return engine.Card{}, malformed("card: want [food, trait], got %d elements", len(elems))
	}
	var food int
	if err := json.Unmarshal(elems[0], &food); err != nil {
		return engine.Card{}, malformed("card food: %v", err)
	}
	var name string
	if err := json.Unmarshal(elems[1], &name); err != nil {
		return engine.Card{}, malformed("card trait: %v", err)
	}
	t, err := DecodeTrait(name)
	if err != nil {
		return engine.Card{}, err
	}
	c, err := engine.NewCard(food, t)
	if err != nil {
		return engine.Card{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return c, nil
}

// EncodeCards renders a list of cards.
func EncodeCards(cs []engine.Card) []any {
	out := make([]any, len(cs))
	for i, c := range cs {
		out[i] = EncodeCard(c)
	}
	return out
}

// DecodeCards parses a list of cards.
func DecodeCards(b []byte) ([]engine.Card, error) {
	elems, err := decodeArray(b, "cards")
	if err != nil {
		return nil, err
	}
	cs := make([]engine.Card, len(elems))
	for i, e := range elems {
		if cs[i], err = DecodeCard(e); err != nil {
			return nil, err
		}
	}
	return cs, nil
}

// ---------------------------------------------------------------------------
// Species and domains
// ---------------------------------------------------------------------------

// EncodeSpecies renders a species, adding ["fat-food",n] only when fat is
// stored.
func EncodeSpecies(s *engine.Species) []any {
	out := []any{
		[]any{"food", s.Food()},
		[]any{"body", s.BodySize()},
		[]any{"population", s.Population()},
		[]any{"traits", encodeTraits(s.Traits())},
	}
	if s.Fat() > 0 {
		out = append(out, []any{"fat-food", s.Fat()})
	}
	return out
}

// DecodeSpecies parses a species and checks its invariants.
func DecodeSpecies(b []byte) (*engine.Species, error) {
	fields, err := decodeArray(b, "species")
	if err != nil {
		return nil, err
	}
	if len(fields) != 4 && len(fields) != 5 {
		return nil, malformed("species: want 4 or 5 fields, got %d", len(fields))
	}
	food, err := decodeNatField(fields[0], "food")
	if err != nil {
		return nil, err
	}
	body, err := decodeNatField(fields[1], "body")
	if err != nil {
		return nil, err
	}
	pop, err := decodeNatField(fields[2], "population")
	if err != nil {
		return nil, err
	}
	raw, err := decodeField(fields[3], "traits")
	if err != nil {
		return nil, err
	}
	traits, err := decodeTraits(raw)
	if err != nil {
		return nil, err
	}
	fat := 0
	if len(fields) == 5 {
		if fat, err = decodeNatField(fields[4], "fat-food"); err != nil {
			return nil, err
		}
	}
	s, err := engine.RestoreSpecies(pop, body, food, fat, traits)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return s, nil
}

// EncodeDomain renders a domain as a list of species.
func EncodeDomain(d *engine.Domain) []any {
	species := d.Species()
	out := make([]any, len(species))
	for i, s := range species {
		out[i] = EncodeSpecies(s)
	}
	return out
}

// DecodeDomain parses a list of species.
func DecodeDomain(b []byte) (*engine.Domain, error) {
	elems, err := decodeArray(b, "domain")
	if err != nil {
		return nil, err
	}
	species := make([]*engine.Species, len(elems))
	for i, e := range elems {
		if species[i], err = DecodeSpecies(e); err != nil {
			return nil, fmt.Errorf("species %d: %w", i, err)
		}
	}
	d, err := engine.NewDomain(species...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return d, nil
}

// EncodeDomains renders a list of domains.
func EncodeDomains(ds []*engine.Domain) []any {
	out := make([]any, len(ds))
	for i, d := range ds {
		out[i] = EncodeDomain(d)
	}
	return out
}

// DecodeDomains parses a list of domains.
func DecodeDomains(b []byte) ([]*engine.Domain, error) {
	elems, err := decodeArray(b, "domains")
	if err != nil {
		return nil, err
	}
	ds := make([]*engine.Domain, len(elems))
	for i, e := range elems {
		if ds[i], err = DecodeDomain(e); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// ---------------------------------------------------------------------------
// Players
// ---------------------------------------------------------------------------

// EncodePlayer renders [["id",n],["species",...],["bag",n]], adding
// ["cards",...] only when the hand is not empty.
func EncodePlayer(p *engine.Player) []any {
	out := []any{
		[]any{"id", p.ID()},
		[]any{"species", EncodeDomain(p.Domain())},
		[]any{"bag", p.Bag()},
	}
	if p.HandSize() > 0 {
		out = append(out, []any{"cards", EncodeCards(p.Hand())})
	}
	return out
}

// DecodePlayer parses a player.
func DecodePlayer(b []byte) (*engine.Player, error) {
	fields, err := decodeArray(b, "player")
	if err != nil {
		return nil, err
	}
	if len(fields) != 3 && len(fields) != 4 {
		return nil, malformed("player: want 3 or 4 fields, got %d", len(fields))
	}
	id, err := decodeNatField(fields[0], "id")
	if err != nil {
		return nil, err
	}
	raw, err := decodeField(fields[1], "species")
	if err != nil {
		return nil, err
	}
	domain, err := DecodeDomain(raw)
	if err != nil {
		return nil, err
	}
	bag, err := decodeNatField(fields[2], "bag")
	if err != nil {
		return nil, err
	}
	var hand []engine.Card
	if len(fields) == 4 {
		if raw, err = decodeField(fields[3], "cards"); err != nil {
			return nil, err
		}
		if hand, err = DecodeCards(raw); err != nil {
			return nil, err
		}
	}
	p, err := engine.RestorePlayer(id, domain, bag, hand)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return p, nil
}
