package engine

// Rules holds the table settings a game is created with.
type Rules struct {
	MinPlayers         int
	MaxPlayers         int
	CardsPerExtinction int // cards refunded for each extinct species
	BaseHandSize       int // cards dealt per round on top of one per species
}

// DefaultRules returns the standard Evolution settings.
func DefaultRules() Rules {
	return Rules{
		MinPlayers:         MinPlayers,
		MaxPlayers:         MaxPlayers,
		CardsPerExtinction: CardsPerExtinction,
		BaseHandSize:       BaseHandSize,
	}
}

// Validate rejects settings outside the supported table sizes and deals.
func (r Rules) Validate() error {
	switch {
	case r.MinPlayers < 2 || r.MinPlayers > MaxPlayers:
		return configErr("min players %d out of range [2, %d]", r.MinPlayers, MaxPlayers)
	case r.MaxPlayers < r.MinPlayers || r.MaxPlayers > MaxPlayers:
		return configErr("max players %d out of range [%d, %d]", r.MaxPlayers, r.MinPlayers, MaxPlayers)
	case r.CardsPerExtinction < 0:
		return configErr("negative cards per extinction %d", r.CardsPerExtinction)
	case r.BaseHandSize < 1:
		return configErr("base hand size %d below 1", r.BaseHandSize)
	}
	return nil
}

// dealSize returns how many cards a player with n species is dealt.
func (r Rules) dealSize(species int) int {
	return r.BaseHandSize + max(species, 1)
}

// ---------------------------------------------------------------------------
// Trait predicates
// ---------------------------------------------------------------------------

// CanAttack reports whether attacker may attack target, given the target's
// left and right neighbors (either may be nil).
func CanAttack(attacker, target, left, right *Species) bool {
	if !attacker.HasTrait(Carnivore) {
		return false
	}
	if target.HasTrait(Burrowing) && target.food == target.population {
		return false
	}
	if target.HasTrait(Climbing) && !attacker.HasTrait(Climbing) {
		return false
	}
	if target.HasTrait(HardShell) && attackStrength(attacker) < target.bodySize+HardShellProtection {
		return false
	}
	if target.HasTrait(Herding) && attacker.population <= target.population {
		return false
	}
	if target.HasTrait(Symbiosis) && right != nil && right.bodySize > target.bodySize {
		return false
	}
	if !attacker.HasTrait(Ambush) && (warns(left) || warns(right)) {
		return false
	}
	return true
}

// attackStrength is the body size an attacker brings against a hard shell.
func attackStrength(s *Species) int {
	if s.HasTrait(PackHunting) {
		return s.population + s.bodySize
	}
	return s.bodySize
}

func warns(s *Species) bool {
	return s != nil && s.HasTrait(WarningCall)
}
