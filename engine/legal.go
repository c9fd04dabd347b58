package engine

// Choices returns every legal feeding for the observing player, in a fixed
// order: species by species, a species' stores before its meal, attacks on
// opponents in turn order before attacks on the player's own species.
// Abstain is offered once, ahead of the first store or attack. No choices
// are returned when the watering hole is empty.
func (o FeedObservation) Choices() []FeedChoice {
	if o.WateringHole == 0 {
		return nil
	}
	var choices []FeedChoice
	abstain := func() {
		for _, c := range choices {
			if c.Kind == KindAbstain {
				return
			}
		}
		choices = append(choices, Abstain())
	}

	own := o.Player.domain
	for i, s := range own.species {
		if capacity, ok := s.CanStore(); ok {
			abstain()
			for k := 1; k <= min(capacity, o.WateringHole); k++ {
				choices = append(choices, Store(i, k))
			}
		}
		if !s.CanEat() {
			continue
		}
		if !s.HasTrait(Carnivore) {
			choices = append(choices, Feed(i))
			continue
		}
		abstain()
		for rank, d := range o.Opponents {
			for j, target := range d.species {
				left, right := d.Neighbors(j)
				if CanAttack(s, target, left, right) {
					choices = append(choices, Attack(i, rank, j))
				}
			}
		}
		for j, target := range own.species {
			if j == i {
				continue
			}
			left, right := own.Neighbors(j)
			if CanAttack(s, target, left, right) {
				choices = append(choices, Attack(i, o.SelfRank(), j))
			}
		}
	}
	return choices
}

// AutoChoice picks the feeding the game makes without asking, if there is
// one sensible choice. It walks the choices in order:
//
//   - a store replaces any earlier pick; stores into a second species mean
//     the player must choose, otherwise the largest amount stands
//   - a feed replaces an earlier attack, is ignored after a store, and a
//     second vegetarian after a feed means the player must choose
//   - an attack is ignored once a store or feed is picked; otherwise a
//     second attack on an opponent means the player must choose
//
// Attacks on the player's own species are never picked. The walk depends
// on the order Choices produces, so an attack conflict seen before any feed
// still defers to the player.
func AutoChoice(choices []FeedChoice, selfRank int) (FeedChoice, bool) {
	var pick *FeedChoice
	for _, c := range choices {
		switch c.Kind {
		case KindStore:
			if pick != nil && pick.Kind == KindStore {
				if pick.Species != c.Species {
					return FeedChoice{}, false
				}
				if pick.Amount > c.Amount {
					continue
				}
			}
			pick = &c
		case KindFeed:
			switch {
			case pick == nil || pick.Kind == KindAttack:
				pick = &c
			case pick.Kind == KindFeed:
				if pick.Species != c.Species {
					return FeedChoice{}, false
				}
				pick = &c
			}
		case KindAttack:
			if c.Opponent == selfRank {
				continue
			}
			if pick == nil {
				pick = &c
				continue
			}
			if pick.Kind == KindAttack {
				return FeedChoice{}, false
			}
		}
	}
	if pick == nil {
		return FeedChoice{}, false
	}
	return *pick, true
}
