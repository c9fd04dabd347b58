package engine

import "fmt"

// Species is a single species board. Fields are only changed through the
// mutators below, each of which keeps the species invariants:
//
//	food <= population
//	fat <= body size, and fat == 0 without FatTissue
//	at most MaxTraits distinct traits
type Species struct {
	population int
	bodySize   int
	traits     []Trait
	food       int
	fat        int
}

// NewSpecies returns a species with population 1, body size 0 and no traits.
func NewSpecies() *Species {
	return &Species{population: 1}
}

// RestoreSpecies builds a species from explicit values, rejecting any
// combination that breaks an invariant. Extinct species cannot be restored.
func RestoreSpecies(population, bodySize, food, fat int, traits []Trait) (*Species, error) {
	s := &Species{
		population: population,
		bodySize:   bodySize,
		traits:     append([]Trait(nil), traits...),
		food:       food,
		fat:        fat,
	}
	if population < 1 {
		return nil, ruleErr("restore", "population %d below 1", population)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks every species invariant.
func (s *Species) Validate() error {
	switch {
	case s.population < 0 || s.population > MaxPopulation:
		return ruleErr("validate", "population %d out of range [0, %d]", s.population, MaxPopulation)
	case s.bodySize < 0 || s.bodySize > MaxBodySize:
		return ruleErr("validate", "body size %d out of range [0, %d]", s.bodySize, MaxBodySize)
	case len(s.traits) > MaxTraits:
		return ruleErr("validate", "%d traits, at most %d allowed", len(s.traits), MaxTraits)
	case s.food < 0 || s.food > s.population:
		return ruleErr("validate", "food %d exceeds population %d", s.food, s.population)
	case s.fat < 0 || s.fat > s.bodySize:
		return ruleErr("validate", "fat %d exceeds body size %d", s.fat, s.bodySize)
	case s.fat > 0 && !s.HasTrait(FatTissue):
		return ruleErr("validate", "fat stored without %s", FatTissue)
	}
	for i, t := range s.traits {
		if !t.Valid() {
			return ruleErr("validate", "unknown trait %d", uint8(t))
		}
		for _, u := range s.traits[:i] {
			if u == t {
				return ruleErr("validate", "duplicate trait %s", t)
			}
		}
	}
	return nil
}

// Population returns the number of individuals.
func (s *Species) Population() int { return s.population }

// BodySize returns the body size.
func (s *Species) BodySize() int { return s.bodySize }

// Food returns the tokens eaten this round.
func (s *Species) Food() int { return s.food }

// Fat returns the tokens in the fat store.
func (s *Species) Fat() int { return s.fat }

// TraitCount returns the number of traits.
func (s *Species) TraitCount() int { return len(s.traits) }

// Traits returns a copy of the species' traits in order.
func (s *Species) Traits() []Trait {
	out := make([]Trait, len(s.traits))
	copy(out, s.traits)
	return out
}

// HasTrait reports whether t is among the species' traits.
func (s *Species) HasTrait(t Trait) bool {
	return s.traitIndex(t) >= 0
}

func (s *Species) traitIndex(t Trait) int {
	for i, u := range s.traits {
		if u == t {
			return i
		}
	}
	return -1
}

// IsExtinct reports whether the population has reached 0.
func (s *Species) IsExtinct() bool { return s.population == 0 }

// Clone returns a deep copy.
func (s *Species) Clone() *Species {
	c := *s
	c.traits = s.Traits()
	return &c
}

func (s *Species) String() string {
	return fmt.Sprintf("species(pop=%d body=%d food=%d fat=%d traits=%v)",
		s.population, s.bodySize, s.food, s.fat, s.traits)
}

// ---------------------------------------------------------------------------
// Growth
// ---------------------------------------------------------------------------

// Breed adds one to the population.
func (s *Species) Breed() error {
	if s.population >= MaxPopulation {
		return ruleErr("breed", "population already at %d", MaxPopulation)
	}
	s.population++
	return nil
}

// Grow adds one to the body size.
func (s *Species) Grow() error {
	if s.bodySize >= MaxBodySize {
		return ruleErr("grow", "body size already at %d", MaxBodySize)
	}
	s.bodySize++
	return nil
}

// Evolve appends a new trait.
func (s *Species) Evolve(t Trait) error {
	switch {
	case !t.Valid():
		return ruleErr("evolve", "unknown trait %d", uint8(t))
	case s.HasTrait(t):
		return ruleErr("evolve", "already has %s", t)
	case len(s.traits) >= MaxTraits:
		return ruleErr("evolve", "already has %d traits", MaxTraits)
	}
	s.traits = append(s.traits, t)
	return nil
}

// ExchangeTrait replaces the trait at index i with t. Replacing a trait with
// itself is allowed. Any fat is discarded when the replaced trait is
// FatTissue, since the fat belonged to the discarded card.
func (s *Species) ExchangeTrait(i int, t Trait) error {
	if i < 0 || i >= len(s.traits) {
		return ruleErr("exchange", "trait index %d out of range (%d traits)", i, len(s.traits))
	}
	if !t.Valid() {
		return ruleErr("exchange", "unknown trait %d", uint8(t))
	}
	if j := s.traitIndex(t); j >= 0 && j != i {
		return ruleErr("exchange", "%s already present at index %d", t, j)
	}
	if s.traits[i] == FatTissue {
		s.fat = 0
	}
	s.traits[i] = t
	return nil
}

// ---------------------------------------------------------------------------
// Food
// ---------------------------------------------------------------------------

// Eats returns how many tokens one feeding takes.
func (s *Species) Eats() int {
	if s.HasTrait(Foraging) {
		return 2
	}
	return 1
}

// CanEat reports whether the species is still hungry.
func (s *Species) CanEat() bool { return s.food < s.population }

// Eat takes one food token. It reports false, leaving the token with the
// caller, when the species is already fed.
func (s *Species) Eat() bool {
	if !s.CanEat() {
		return false
	}
	s.food++
	return true
}

// CanStore returns the remaining fat capacity. ok is false without
// FatTissue or when the fat store is full.
func (s *Species) CanStore() (capacity int, ok bool) {
	if !s.HasTrait(FatTissue) {
		return 0, false
	}
	capacity = s.bodySize - s.fat
	return capacity, capacity > 0
}

// Store puts n tokens in the fat store.
func (s *Species) Store(n int) error {
	if n < 1 {
		return ruleErr("store", "amount %d must be positive", n)
	}
	if !s.HasTrait(FatTissue) {
		return ruleErr("store", "no %s", FatTissue)
	}
	if s.fat+n > s.bodySize {
		return ruleErr("store", "%d fat plus %d exceeds body size %d", s.fat, n, s.bodySize)
	}
	s.fat += n
	return nil
}

// DigestFat moves stored fat into food, up to the remaining hunger.
func (s *Species) DigestFat() {
	if !s.HasTrait(FatTissue) {
		return
	}
	n := min(s.population-s.food, s.fat)
	s.fat -= n
	s.food += n
}

// ---------------------------------------------------------------------------
// Population loss
// ---------------------------------------------------------------------------

// Kill removes one from the population, dropping any food above the new
// population. It reports whether the species is now extinct.
func (s *Species) Kill() bool {
	if s.population == 0 {
		return true
	}
	s.population--
	s.food = min(s.food, s.population)
	return s.population == 0
}

// Cull kills until the population equals the food. It reports whether this
// call made the species extinct; a second call is a no-op returning false.
func (s *Species) Cull() bool {
	if s.population == 0 {
		return false
	}
	for s.food < s.population {
		s.Kill()
	}
	return s.population == 0
}

// harvest drains the food and leaves a population equal to the amount
// drained. Only valid right after Cull; see Domain.Harvest.
func (s *Species) harvest() int {
	n := s.food
	s.food = 0
	s.population = n
	return n
}
