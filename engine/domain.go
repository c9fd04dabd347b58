package engine

// Side selects where Domain.Add places a new species.
type Side uint8

const (
	Left Side = iota
	Right
)

// Domain is a player's ordered row of species. Adjacency matters: the right
// neighbor of a Cooperation species is fed by it, and neighbors drive
// Symbiosis and WarningCall. A domain never holds an extinct species.
type Domain struct {
	species []*Species
}

// NewDomain builds a domain from existing species, rejecting extinct or
// invalid ones.
func NewDomain(species ...*Species) (*Domain, error) {
	d := &Domain{}
	for i, s := range species {
		if s == nil || s.IsExtinct() {
			return nil, ruleErr("domain", "species %d is extinct", i)
		}
		if err := s.Validate(); err != nil {
			return nil, err
		}
		d.species = append(d.species, s)
	}
	return d, nil
}

// Len returns the number of species.
func (d *Domain) Len() int { return len(d.species) }

// IsEmpty reports whether the domain has no species.
func (d *Domain) IsEmpty() bool { return len(d.species) == 0 }

// At returns the species at index i, or nil when i is out of range.
func (d *Domain) At(i int) *Species {
	if i < 0 || i >= len(d.species) {
		return nil
	}
	return d.species[i]
}

// Neighbors returns the species left and right of index i. Either may be nil.
func (d *Domain) Neighbors(i int) (left, right *Species) {
	return d.At(i - 1), d.At(i + 1)
}

// Species returns the species in order. The slice is a copy; the species
// are not.
func (d *Domain) Species() []*Species {
	out := make([]*Species, len(d.species))
	copy(out, d.species)
	return out
}

// Add places a default species on the given side and returns its index.
func (d *Domain) Add(side Side) int {
	s := NewSpecies()
	if side == Left {
		d.species = append([]*Species{s}, d.species...)
		return 0
	}
	d.species = append(d.species, s)
	return len(d.species) - 1
}

// Kill removes one population from species i, removing the species when it
// goes extinct. It reports whether it went extinct.
func (d *Domain) Kill(i int) bool {
	s := d.At(i)
	if s == nil {
		return false
	}
	if !s.Kill() {
		return false
	}
	d.remove(i)
	return true
}

func (d *Domain) remove(i int) {
	d.species = append(d.species[:i], d.species[i+1:]...)
}

// Harvest culls every species, removes the extinct ones, then drains the food
// of the survivors. It returns the number of extinctions and the food
// drained.
func (d *Domain) Harvest() (extinctions, food int) {
	kept := d.species[:0]
	for _, s := range d.species {
		if s.Cull() {
			extinctions++
			continue
		}
		kept = append(kept, s)
	}
	for i := len(kept); i < len(d.species); i++ {
		d.species[i] = nil
	}
	d.species = kept
	for _, s := range d.species {
		food += s.harvest()
	}
	return extinctions, food
}

// TraitCount returns the number of traits across all species.
func (d *Domain) TraitCount() int {
	n := 0
	for _, s := range d.species {
		n += s.TraitCount()
	}
	return n
}

// PopulationCount returns the population across all species.
func (d *Domain) PopulationCount() int {
	n := 0
	for _, s := range d.species {
		n += s.population
	}
	return n
}

// Clone returns a deep copy.
func (d *Domain) Clone() *Domain {
	c := &Domain{species: make([]*Species, len(d.species))}
	for i, s := range d.species {
		c.species[i] = s.Clone()
	}
	return c
}
