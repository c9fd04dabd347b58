package engine

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// Species
// ---------------------------------------------------------------------------

func TestRestoreSpeciesRejectsBrokenInvariants(t *testing.T) {
	tests := []struct {
		name                 string
		pop, body, food, fat int
		traits               []Trait
	}{
		{"extinct", 0, 0, 0, 0, nil},
		{"overpopulated", MaxPopulation + 1, 0, 0, 0, nil},
		{"oversized", 1, MaxBodySize + 1, 0, 0, nil},
		{"overfed", 2, 0, 3, 0, nil},
		{"fat without fat tissue", 1, 3, 0, 1, nil},
		{"fat above body size", 1, 2, 0, 3, []Trait{FatTissue}},
		{"duplicate trait", 1, 0, 0, 0, []Trait{Horns, Horns}},
		{"too many traits", 1, 0, 0, 0, []Trait{Horns, Ambush, Climbing, Herding}},
		{"unknown trait", 1, 0, 0, 0, []Trait{Trait(NumTraits)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RestoreSpecies(tt.pop, tt.body, tt.food, tt.fat, tt.traits)
			if !errors.Is(err, ErrRuleViolation) {
				t.Errorf("err = %v, want ErrRuleViolation", err)
			}
		})
	}
}

func TestGrowthLimits(t *testing.T) {
	s := mustSpecies(t, MaxPopulation, MaxBodySize, 0, 0)
	if err := s.Breed(); !errors.Is(err, ErrRuleViolation) {
		t.Errorf("Breed at max: %v", err)
	}
	if err := s.Grow(); !errors.Is(err, ErrRuleViolation) {
		t.Errorf("Grow at max: %v", err)
	}
	var re *RuleError
	if err := s.Breed(); !errors.As(err, &re) || re.Op != "breed" {
		t.Errorf("Breed error = %v, want *RuleError with op breed", err)
	}
	if s.Population() != MaxPopulation || s.BodySize() != MaxBodySize {
		t.Error("failed mutation changed the species")
	}
}

func TestEvolveAndExchange(t *testing.T) {
	s := NewSpecies()
	for _, tr := range []Trait{Horns, Climbing, FatTissue} {
		if err := s.Evolve(tr); err != nil {
			t.Fatalf("Evolve(%s): %v", tr, err)
		}
	}
	if err := s.Evolve(Ambush); err == nil {
		t.Error("fourth trait accepted")
	}
	if err := s.ExchangeTrait(0, Climbing); err == nil {
		t.Error("exchange created a duplicate")
	}
	if err := s.ExchangeTrait(3, Ambush); err == nil {
		t.Error("exchange out of range accepted")
	}
	if err := s.ExchangeTrait(1, Climbing); err != nil {
		t.Errorf("exchange with itself: %v", err)
	}
	if err := s.ExchangeTrait(0, Ambush); err != nil {
		t.Fatalf("exchange: %v", err)
	}
	want := []Trait{Ambush, Climbing, FatTissue}
	for i, tr := range s.Traits() {
		if tr != want[i] {
			t.Errorf("trait %d = %s, want %s", i, tr, want[i])
		}
	}
}

func TestExchangeFatTissueDropsFat(t *testing.T) {
	s := mustSpecies(t, 2, 4, 0, 3, FatTissue)
	if err := s.ExchangeTrait(0, FatTissue); err != nil {
		t.Fatal(err)
	}
	if s.Fat() != 0 {
		t.Errorf("fat = %d after replacing fat tissue, want 0", s.Fat())
	}
}

func TestEatStoreDigest(t *testing.T) {
	s := mustSpecies(t, 2, 3, 1, 0, FatTissue)
	if !s.Eat() || s.Eat() {
		t.Fatal("species should eat exactly once more")
	}
	if capacity, ok := s.CanStore(); !ok || capacity != 3 {
		t.Fatalf("CanStore = %d, %v", capacity, ok)
	}
	if err := s.Store(4); err == nil {
		t.Error("stored beyond body size")
	}
	if err := s.Store(3); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.CanStore(); ok {
		t.Error("full fat store still accepts food")
	}

	hungry := mustSpecies(t, 4, 3, 2, 3, FatTissue)
	hungry.DigestFat()
	if hungry.Food() != 4 || hungry.Fat() != 1 {
		t.Errorf("after digest food=%d fat=%d, want 4 and 1", hungry.Food(), hungry.Fat())
	}
}

func TestForagingEatsTwo(t *testing.T) {
	if NewSpecies().Eats() != 1 {
		t.Error("plain species eats 1")
	}
	if mustSpecies(t, 1, 0, 0, 0, Foraging).Eats() != 2 {
		t.Error("forager eats 2")
	}
}

func TestKillDropsExcessFood(t *testing.T) {
	s := mustSpecies(t, 3, 0, 3, 0)
	if s.Kill() {
		t.Fatal("extinct after one kill")
	}
	if s.Food() != 2 {
		t.Errorf("food = %d, want 2", s.Food())
	}
}

func TestCullReportsExtinctionOnce(t *testing.T) {
	s := mustSpecies(t, 3, 0, 0, 0)
	if !s.Cull() {
		t.Fatal("starving species survived the cull")
	}
	if !s.IsExtinct() {
		t.Fatal("not extinct")
	}
	if s.Cull() {
		t.Error("second cull reported a new extinction")
	}

	fed := mustSpecies(t, 4, 0, 2, 0)
	if fed.Cull() || fed.Population() != 2 {
		t.Errorf("cull of fed species: pop %d", fed.Population())
	}
}

// ---------------------------------------------------------------------------
// Domain
// ---------------------------------------------------------------------------

func TestDomainAddSides(t *testing.T) {
	d, _ := NewDomain(mustSpecies(t, 2, 0, 0, 0))
	if i := d.Add(Left); i != 0 || d.At(1).Population() != 2 {
		t.Error("Add(Left) did not prepend")
	}
	if i := d.Add(Right); i != 2 {
		t.Errorf("Add(Right) = %d, want 2", i)
	}
	if d.At(3) != nil || d.At(-1) != nil {
		t.Error("At out of range should be nil")
	}
	left, right := d.Neighbors(0)
	if left != nil || right != d.At(1) {
		t.Error("Neighbors(0) wrong")
	}
}

func TestNewDomainRejectsExtinct(t *testing.T) {
	s := NewSpecies()
	s.Kill()
	if _, err := NewDomain(s); !errors.Is(err, ErrRuleViolation) {
		t.Errorf("err = %v", err)
	}
}

func TestDomainHarvest(t *testing.T) {
	d, _ := NewDomain(
		mustSpecies(t, 3, 0, 1, 0),
		mustSpecies(t, 2, 0, 0, 0),
		mustSpecies(t, 4, 1, 4, 0, Horns),
	)
	extinctions, food := d.Harvest()
	if extinctions != 1 || food != 5 {
		t.Fatalf("Harvest = %d, %d, want 1, 5", extinctions, food)
	}
	if d.Len() != 2 {
		t.Fatalf("len = %d, want 2", d.Len())
	}
	if d.At(0).Population() != 1 || d.At(0).Food() != 0 {
		t.Errorf("first survivor %v", d.At(0))
	}
	if d.At(1).Population() != 4 || d.At(1).Food() != 0 {
		t.Errorf("second survivor %v", d.At(1))
	}
	if d.TraitCount() != 1 || d.PopulationCount() != 5 {
		t.Errorf("counts %d traits %d population", d.TraitCount(), d.PopulationCount())
	}
}

func TestPlayerScore(t *testing.T) {
	p := mustPlayer(t, 1, 6, nil,
		mustSpecies(t, 3, 0, 0, 0, Horns, Climbing),
		mustSpecies(t, 1, 0, 0, 0),
	)
	if got := p.Score(); got != 6+4+2 {
		t.Errorf("score = %d, want 12", got)
	}
}

func TestPushAndRemoveCards(t *testing.T) {
	a, b, c := Card{1, Ambush}, Card{2, Horns}, Card{-1, Fertile}
	p := mustPlayer(t, 1, 0, []Card{c})
	p.pushCards([]Card{a, b})
	hand := p.Hand()
	if len(hand) != 3 || hand[0] != a || hand[1] != b || hand[2] != c {
		t.Fatalf("hand = %v", hand)
	}
	taken := p.removeCards([]int{2, 0})
	if taken[0] != a || taken[2] != c {
		t.Errorf("taken = %v", taken)
	}
	if h := p.Hand(); len(h) != 1 || h[0] != b {
		t.Errorf("hand after remove = %v", h)
	}
}
