package game

import "sort"

// SidePot is a slice of the round's wagers that a subset of seats can win.
// Unequal all-in contributions produce one pot per contribution level.
type SidePot struct {
	Amount   int
	Eligible []int // seats that can win this pot
	CappedAt int   // total contribution level this pot covers up to
}

// ComputePots splits the round's wagers into pots by contribution level.
//
// Distinct TotalRoundBet levels are walked in ascending order; every player
// who contributed at least a level funds that tier, but only non-folded
// contributors are eligible to win it. The rollover carried into this round
// is added to the first emitted pot. A tier whose contributors have all
// folded has no possible winner; its chips fold into the next tier, or into
// the returned residual if it is the last. The residual becomes rollover so
// no chips are created or destroyed.
//
// The degenerate no-contribution case yields a single pot of the whole pot
// with every seat eligible.
func ComputePots(players []*Player, pot, carry int) (pots []SidePot, residual int) {
	levelSet := make(map[int]bool)
	for _, p := range players {
		if p.TotalRoundBet > 0 {
			levelSet[p.TotalRoundBet] = true
		}
	}

	if len(levelSet) == 0 {
		all := make([]int, len(players))
		for i := range players {
			all[i] = i
		}
		return []SidePot{{Amount: pot, Eligible: all}}, 0
	}

	levels := make([]int, 0, len(levelSet))
	for l := range levelSet {
		levels = append(levels, l)
	}
	sort.Ints(levels)

	prev := 0
	pending := 0 // unawardable tier chips rolled into the next tier
	for _, level := range levels {
		amount := pending
		var eligible []int
		for _, p := range players {
			if p.TotalRoundBet >= level {
				amount += level - prev
				if !p.Folded {
					eligible = append(eligible, p.Seat)
				}
			}
		}
		prev = level

		if len(eligible) == 0 {
			pending = amount
			continue
		}
		pending = 0
		if amount == 0 {
			continue
		}
		// Consecutive tiers with the same eligible seats are one pot.
		if n := len(pots); n > 0 && equalSeats(pots[n-1].Eligible, eligible) {
			pots[n-1].Amount += amount
			pots[n-1].CappedAt = level
			continue
		}
		pots = append(pots, SidePot{Amount: amount, Eligible: eligible, CappedAt: level})
	}

	if len(pots) > 0 {
		pots[0].Amount += carry
	} else {
		pending += carry
	}

	return pots, pending
}

func equalSeats(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// potTotal sums pot amounts for conservation checks
func potTotal(pots []SidePot) int {
	total := 0
	for _, p := range pots {
		total += p.Amount
	}
	return total
}
