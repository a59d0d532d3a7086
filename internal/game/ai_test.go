package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/kicker/internal/deck"
	"github.com/lox/kicker/internal/randutil"
)

func TestShortStackForcedFold(t *testing.T) {
	// 2 chips facing a call of 3, unpaired, not aggressive: forced fold.
	v := DecisionView{
		Card:     deck.MustParseCard("9h"),
		Board:    deck.MustParseCard("Kd"),
		Chips:    2,
		TableBet: 3,
		Skill:    SkillCautious,
	}
	got := Decide(randutil.New(1), v)
	assert.Equal(t, Fold, got.Kind)
}

func TestShortStackPushesWhenPaired(t *testing.T) {
	v := DecisionView{
		Card:     deck.MustParseCard("Kh"),
		Board:    deck.MustParseCard("Kd"),
		Chips:    2,
		TableBet: 3,
		Skill:    SkillCautious,
	}
	got := Decide(randutil.New(1), v)
	assert.Equal(t, Call, got.Kind)
}

func TestShortStackAggressivePushes(t *testing.T) {
	v := DecisionView{
		Card:     deck.MustParseCard("2h"),
		Board:    deck.MustParseCard("Kd"),
		Chips:    1,
		TableBet: 3,
		Skill:    SkillAggressive,
	}
	got := Decide(randutil.New(1), v)
	assert.Equal(t, Call, got.Kind)
}

func TestCautiousChecksWhenBeatenAndFree(t *testing.T) {
	v := DecisionView{
		Card:           deck.MustParseCard("9h"),
		Board:          deck.MustParseCard("4d"),
		Chips:          10,
		RevealedHigher: true,
		Skill:          SkillCautious,
	}
	got := Decide(randutil.New(1), v)
	assert.Equal(t, Check, got.Kind)
}

func TestCautiousFoldsWhenBeatenFacingBet(t *testing.T) {
	v := DecisionView{
		Card:     deck.MustParseCard("9h"),
		Board:    deck.MustParseCard("Kd"),
		Chips:    10,
		TableBet: 2,
		Skill:    SkillCautious,
	}
	got := Decide(randutil.New(1), v)
	assert.Equal(t, Fold, got.Kind)
}

func TestCautiousOpensMinimumWhenUnopposed(t *testing.T) {
	v := DecisionView{
		Card:       deck.MustParseCard("Ah"),
		Board:      deck.MustParseCard("4d"),
		Chips:      10,
		FirstToAct: true,
		Skill:      SkillCautious,
	}
	got := Decide(randutil.New(1), v)
	assert.Equal(t, Bet, got.Kind)
	assert.Equal(t, 1, got.Amount)
}

func TestCautiousCallsWithStrongCard(t *testing.T) {
	v := DecisionView{
		Card:     deck.MustParseCard("Ah"),
		Board:    deck.MustParseCard("4d"),
		Chips:    10,
		TableBet: 2,
		Skill:    SkillCautious,
	}
	got := Decide(randutil.New(1), v)
	assert.Equal(t, Call, got.Kind)
}

func TestAggressiveRaisesOnBoardPair(t *testing.T) {
	v := DecisionView{
		Card:     deck.MustParseCard("Kh"),
		Board:    deck.MustParseCard("Kd"),
		Chips:    10,
		TableBet: 2,
		Skill:    SkillAggressive,
	}
	got := Decide(randutil.New(1), v)
	assert.Equal(t, Raise, got.Kind)
	assert.Equal(t, 3, got.Amount)
}

func TestAggressiveNeverFolds(t *testing.T) {
	rng := randutil.New(7)
	for i := 0; i < 200; i++ {
		v := DecisionView{
			Card:       deck.MustParseCard("2h"),
			Board:      deck.MustParseCard("Kd"),
			Chips:      10,
			TableBet:   3,
			RaisesUsed: raiseCap,
			Skill:      SkillAggressive,
		}
		got := Decide(rng, v)
		assert.NotEqual(t, Fold, got.Kind)
	}
}

func TestRaiseCapStopsWagers(t *testing.T) {
	rng := randutil.New(3)
	for i := 0; i < 200; i++ {
		v := DecisionView{
			Card:       deck.MustParseCard("Kh"),
			Board:      deck.MustParseCard("Kd"),
			Chips:      10,
			RaisesUsed: raiseCap,
			Skill:      SkillAggressive,
		}
		got := Decide(rng, v)
		assert.NotEqual(t, Bet, got.Kind)
		assert.NotEqual(t, Raise, got.Kind)
	}
}

func TestRandomDecisionsAreAlwaysLegal(t *testing.T) {
	rng := randutil.New(11)
	for i := 0; i < 500; i++ {
		v := DecisionView{
			Card:     deck.MustParseCard("9h"),
			Board:    deck.MustParseCard("4d"),
			Chips:    1 + rng.IntN(10),
			TableBet: rng.IntN(4),
			Skill:    SkillRandom,
		}
		got := Decide(rng, v)
		switch got.Kind {
		case Bet:
			assert.Zero(t, v.TableBet, "bet into an open bet")
			assert.LessOrEqual(t, got.Amount, v.Chips)
			assert.Positive(t, got.Amount)
		case Raise:
			assert.Positive(t, v.TableBet, "raise with nothing to raise")
			assert.LessOrEqual(t, got.Amount, v.Chips-v.toCall())
			assert.Positive(t, got.Amount)
		case Check:
			assert.True(t, v.canCheck())
		case Call, Fold:
		default:
			t.Fatalf("unexpected decision %v", got)
		}
	}
}

func TestDecisionsDeterministicPerSeed(t *testing.T) {
	v := DecisionView{
		Card:     deck.MustParseCard("9h"),
		Board:    deck.MustParseCard("4d"),
		Chips:    10,
		TableBet: 2,
		Skill:    SkillRandom,
	}
	a := Decide(randutil.New(99), v)
	b := Decide(randutil.New(99), v)
	assert.Equal(t, a, b)
}
