package game

import (
	rand "math/rand/v2"

	"github.com/lox/kicker/internal/deck"
)

// raiseCap bounds bets/raises per seat per betting round so AI-vs-AI play
// cannot loop.
const raiseCap = 2

// DecisionView is the read-only state an AI policy decides from: the same
// information a human at the table has.
type DecisionView struct {
	Card           deck.Card
	Board          deck.Card
	Chips          int
	CurrentBet     int // the seat's bet this betting round
	TableBet       int // the amount every active seat must match
	FirstToAct     bool
	RaisesUsed     int
	RevealedHigher bool // a revealed, active opponent card beats ours
	Skill          AISkill
}

func (v DecisionView) toCall() int {
	return v.TableBet - v.CurrentBet
}

func (v DecisionView) canCheck() bool {
	return v.TableBet == 0 || v.CurrentBet >= v.TableBet
}

func (v DecisionView) pairsBoard() bool {
	return v.Card.Rank == v.Board.Rank
}

// Decide returns the policy's action for the view. Decisions are always legal
// for the state: amounts are clamped to the actor's chips and a raise that
// cannot exceed the table bet degrades to a call, which the round clamps to
// an all-in.
func Decide(rng *rand.Rand, v DecisionView) PlayerAction {
	toCall := v.toCall()

	// Short stack facing a bet it cannot fully call: push or fold.
	if toCall > v.Chips {
		if v.pairsBoard() || v.Skill == SkillAggressive {
			return CallAction() // clamped to an all-in call
		}
		return FoldAction()
	}

	switch v.Skill {
	case SkillCautious:
		return decideCautious(v)
	case SkillRandom:
		return decideRandom(rng, v)
	case SkillAggressive:
		return decideAggressive(rng, v)
	default:
		if v.canCheck() {
			return CheckAction()
		}
		return CallAction()
	}
}

func decideCautious(v DecisionView) PlayerAction {
	beaten := v.RevealedHigher || v.Board.Value() > v.Card.Value()
	if beaten {
		if v.canCheck() {
			return CheckAction()
		}
		return FoldAction()
	}
	if v.TableBet == 0 && v.FirstToAct && v.Chips > 0 {
		return BetAction(1) // minimum open when unopposed
	}
	if v.canCheck() {
		return CheckAction()
	}
	return CallAction()
}

func decideRandom(rng *rand.Rand, v DecisionView) PlayerAction {
	if !v.pairsBoard() && v.toCall() > 0 && rng.Float64() < 0.3 {
		return FoldAction()
	}
	if v.RaisesUsed < raiseCap && rng.Float64() < 0.2 {
		if a, ok := v.clampWager(rng.IntN(3) + 1); ok {
			return a
		}
	}
	if v.canCheck() {
		return CheckAction()
	}
	return CallAction()
}

func decideAggressive(rng *rand.Rand, v DecisionView) PlayerAction {
	if v.pairsBoard() && v.RaisesUsed < raiseCap {
		if a, ok := v.clampWager(3); ok {
			return a
		}
	}
	if v.RaisesUsed < raiseCap && rng.Float64() < 0.5 {
		if a, ok := v.clampWager(rng.IntN(2) + 1); ok {
			return a
		}
	}
	if v.canCheck() {
		return CheckAction()
	}
	return CallAction()
}

// clampWager turns a desired bet/raise size into a legal action for the
// state, clamped to the chips left after calling. A wager that cannot exceed
// the table bet falls through to check/call.
func (v DecisionView) clampWager(amount int) (PlayerAction, bool) {
	if v.TableBet == 0 {
		if amount > v.Chips {
			amount = v.Chips
		}
		if amount <= 0 {
			return PlayerAction{}, false
		}
		return BetAction(amount), true
	}

	max := v.Chips - v.toCall()
	if amount > max {
		amount = max
	}
	if amount <= 0 {
		return PlayerAction{}, false
	}
	return RaiseAction(amount), true
}
