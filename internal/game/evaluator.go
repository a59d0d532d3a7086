package game

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lox/kicker/internal/deck"
)

// HandCategory ranks the composite hand formed by the board card plus the
// player cards in a pot's composition, best first.
type HandCategory int

const (
	HighCard HandCategory = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

func (c HandCategory) String() string {
	return [...]string{
		"high card", "pair", "two pair", "three of a kind", "straight",
		"flush", "full house", "four of a kind", "straight flush",
	}[c]
}

// HandCard is one player card entering a pot's composition. Eligible marks
// whether its owner can win the pot; eliminated players' cards participate
// in composition only.
type HandCard struct {
	Seat     int
	Card     deck.Card
	Eligible bool
}

// PotOutcome describes how a single pot resolves: one or more winning seats
// splitting it, or a rollover into the next round.
type PotOutcome struct {
	Winners  []int
	Category HandCategory
	Reason   string
	Rollover bool
}

// compositeCard is a card on the table during evaluation
type compositeCard struct {
	card     deck.Card
	seat     int // -1 for the board
	eligible bool
}

func (cc compositeCard) board() bool { return cc.seat < 0 }

// EvaluatePot ranks the composite hand and applies the award rule: the pot
// goes to the eligible player(s) whose own card is a member of the
// rank-defining group. A sole maker wins outright; joint makers of a
// single-value group (or tied high cards) split evenly. Two pair and full
// house span two card values, so no single player owns them and they always
// roll over, as does any deciding card owned by the board or only by
// eliminated players.
func EvaluatePot(board deck.Card, entries []HandCard) PotOutcome {
	cards := make([]compositeCard, 0, len(entries)+1)
	cards = append(cards, compositeCard{card: board, seat: -1})
	for _, e := range entries {
		cards = append(cards, compositeCard{card: e.Card, seat: e.Seat, eligible: e.Eligible})
	}

	values := make([]int, len(cards))
	for i, c := range cards {
		values[i] = c.card.Value()
	}
	sort.Ints(values)

	// Straights and flushes need the full five-card composition.
	full := len(cards) == 5

	flush := full
	for _, c := range cards {
		if c.card.Suit != board.Suit {
			flush = false
			break
		}
	}

	straight := full
	for i := 1; i < len(values) && straight; i++ {
		if values[i] != values[i-1]+1 {
			straight = false
		}
	}
	wheel := full && values[0] == 2 && values[1] == 3 && values[2] == 4 && values[3] == 5 && values[4] == 14
	if wheel {
		straight = true
	}

	groups := groupByValue(cards)

	var quads, trips *valueGroup
	var pairs []*valueGroup
	for _, g := range groups {
		switch {
		case g.count >= 4:
			quads = g
		case g.count == 3:
			trips = g
		case g.count == 2:
			pairs = append(pairs, g)
		}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].value > pairs[j].value })

	switch {
	case straight && flush:
		return resolveRun(StraightFlush, fmt.Sprintf("Straight Flush (%s)", board.Suit), cards, wheel)

	case quads != nil:
		return resolveGroup(FourOfAKind, fmt.Sprintf("Four %ss", deck.Rank(quads.value)), quads, cards)

	case trips != nil && len(pairs) > 0:
		reason := fmt.Sprintf("Full House, %ss full of %ss - no outright owner",
			deck.Rank(trips.value), deck.Rank(pairs[0].value))
		return PotOutcome{Category: FullHouse, Reason: reason, Rollover: true}

	case flush:
		return resolveRun(Flush, fmt.Sprintf("Flush (%s)", board.Suit), cards, false)

	case straight:
		name := "Straight"
		if wheel {
			name = "Straight (Wheel)"
		}
		return resolveRun(Straight, name, cards, wheel)

	case trips != nil:
		return resolveGroup(ThreeOfAKind, fmt.Sprintf("Three %ss", deck.Rank(trips.value)), trips, cards)

	case len(pairs) >= 2:
		reason := fmt.Sprintf("Two Pair, %ss and %ss - no outright owner",
			deck.Rank(pairs[0].value), deck.Rank(pairs[1].value))
		return PotOutcome{Category: TwoPair, Reason: reason, Rollover: true}

	case len(pairs) == 1:
		name := fmt.Sprintf("Pair of %ss", deck.Rank(pairs[0].value))
		if pairs[0].board {
			name += " (with board)"
		}
		return resolveGroup(OnePair, name, pairs[0], cards)

	default:
		return resolveHighCard(cards)
	}
}

// valueGroup collects the cards sharing one value: the rank-defining group
// for pairs, trips and quads.
type valueGroup struct {
	value int
	count int
	seats []int // player seats holding a card of this value
	elig  []int // the eligible subset of seats
	board bool
}

func groupByValue(cards []compositeCard) []*valueGroup {
	byValue := make(map[int]*valueGroup)
	for _, c := range cards {
		g := byValue[c.card.Value()]
		if g == nil {
			g = &valueGroup{value: c.card.Value()}
			byValue[c.card.Value()] = g
		}
		g.count++
		if c.board() {
			g.board = true
		} else {
			g.seats = append(g.seats, c.seat)
			if c.eligible {
				g.elig = append(g.elig, c.seat)
			}
		}
	}
	groups := make([]*valueGroup, 0, len(byValue))
	for _, g := range byValue {
		groups = append(groups, g)
	}
	return groups
}

// resolveGroup awards a single-value group (pair, trips, quads) to its
// makers: one eligible maker wins, several split, none rolls over.
func resolveGroup(cat HandCategory, name string, g *valueGroup, cards []compositeCard) PotOutcome {
	reason := name + kickerNote(cards, map[int]bool{g.value: true})

	switch len(g.elig) {
	case 0:
		return PotOutcome{Category: cat, Reason: reason + " - no eligible maker", Rollover: true}
	case 1:
		return PotOutcome{Winners: g.elig, Category: cat, Reason: reason}
	default:
		return PotOutcome{Winners: g.elig, Category: cat, Reason: reason + " - split"}
	}
}

// resolveRun awards straights, flushes and straight flushes to the owner of
// the deciding high card. Card values in a run are distinct, so there is at
// most one owner; a board-owned high card rolls over.
func resolveRun(cat HandCategory, name string, cards []compositeCard, wheel bool) PotOutcome {
	var top *compositeCard
	for i := range cards {
		c := &cards[i]
		if wheel && c.card.Value() == 14 {
			continue // the ace plays low in the wheel
		}
		if top == nil || c.card.Value() > top.card.Value() {
			top = c
		}
	}

	high := fmt.Sprintf("%s, %s high", name, top.card.Rank)
	if top.board() {
		return PotOutcome{Category: cat, Reason: high + " - board high", Rollover: true}
	}
	if !top.eligible {
		return PotOutcome{Category: cat, Reason: high + " - no eligible maker", Rollover: true}
	}
	return PotOutcome{Winners: []int{top.seat}, Category: cat, Reason: high}
}

func resolveHighCard(cards []compositeCard) PotOutcome {
	best := 0
	for _, c := range cards {
		if c.card.Value() > best {
			best = c.card.Value()
		}
	}

	g := &valueGroup{value: best}
	for _, c := range cards {
		if c.card.Value() != best {
			continue
		}
		if c.board() {
			g.board = true
		} else {
			g.seats = append(g.seats, c.seat)
			if c.eligible {
				g.elig = append(g.elig, c.seat)
			}
		}
	}

	name := fmt.Sprintf("%s high", deck.Rank(best))
	if g.board {
		// The board holds the best card, so no player can beat it.
		return PotOutcome{Category: HighCard, Reason: name + " - board wins", Rollover: true}
	}
	return resolveGroup(HighCard, name, g, cards)
}

// kickerNote describes the next-highest card outside the rank-defining
// values. The kicker never decides a pot; it only describes the hand.
func kickerNote(cards []compositeCard, used map[int]bool) string {
	best := 0
	for _, c := range cards {
		if !used[c.card.Value()] && c.card.Value() > best {
			best = c.card.Value()
		}
	}
	if best == 0 {
		return ""
	}
	return fmt.Sprintf(", %s kicker", deck.Rank(best))
}

// describeWinners joins winner names for result messages
func describeWinners(players []*Player, seats []int) string {
	names := make([]string, 0, len(seats))
	for _, s := range seats {
		names = append(names, players[s].Name)
	}
	return strings.Join(names, " & ")
}
