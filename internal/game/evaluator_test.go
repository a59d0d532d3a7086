package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/kicker/internal/deck"
)

func handCards(cards ...string) []HandCard {
	out := make([]HandCard, len(cards))
	for i, c := range cards {
		out[i] = HandCard{Seat: i, Card: deck.MustParseCard(c), Eligible: true}
	}
	return out
}

func TestEvaluatePairWithBoard(t *testing.T) {
	// Board K♦, seat 0 holds K♠: a unique pair with the board wins outright.
	out := EvaluatePot(deck.MustParseCard("Kd"), handCards("Ks", "9h", "4c", "2s"))

	require.False(t, out.Rollover)
	assert.Equal(t, OnePair, out.Category)
	assert.Equal(t, []int{0}, out.Winners)
	assert.Contains(t, out.Reason, "Pair of Ks (with board)")
}

func TestEvaluatePairBetweenPlayersSplits(t *testing.T) {
	// Board 7♣; two players hold nines. Joint makers split.
	out := EvaluatePot(deck.MustParseCard("7c"), handCards("9s", "9h"))

	require.False(t, out.Rollover)
	assert.Equal(t, OnePair, out.Category)
	assert.ElementsMatch(t, []int{0, 1}, out.Winners)
	assert.Contains(t, out.Reason, "Pair of 9s")
	assert.Contains(t, out.Reason, "split")
}

func TestEvaluateThreeOfAKind(t *testing.T) {
	out := EvaluatePot(deck.MustParseCard("8d"), handCards("8s", "8h", "Ac", "2s"))

	require.False(t, out.Rollover)
	assert.Equal(t, ThreeOfAKind, out.Category)
	assert.ElementsMatch(t, []int{0, 1}, out.Winners)
}

func TestEvaluateFourOfAKindIneligibleMakerExcluded(t *testing.T) {
	entries := handCards("8s", "8h", "8c", "2s")
	entries[1].Eligible = false // all-in short stack, not in this pot
	out := EvaluatePot(deck.MustParseCard("8d"), entries)

	require.False(t, out.Rollover)
	assert.Equal(t, FourOfAKind, out.Category)
	assert.ElementsMatch(t, []int{0, 2}, out.Winners)
}

func TestEvaluateTwoPairAlwaysRollsOver(t *testing.T) {
	out := EvaluatePot(deck.MustParseCard("Kd"), handCards("Ks", "9h", "9c", "2s"))

	assert.True(t, out.Rollover)
	assert.Equal(t, TwoPair, out.Category)
	assert.Empty(t, out.Winners)
	assert.Contains(t, out.Reason, "Two Pair")
}

func TestEvaluateTwoPairOnShortComposition(t *testing.T) {
	// Value groups form on any composition size; only runs need five cards.
	out := EvaluatePot(deck.MustParseCard("7d"), handCards("7s", "9h", "9c"))

	assert.True(t, out.Rollover)
	assert.Equal(t, TwoPair, out.Category)
	assert.Empty(t, out.Winners)
}

func TestEvaluateFullHouseAlwaysRollsOver(t *testing.T) {
	out := EvaluatePot(deck.MustParseCard("Kd"), handCards("Ks", "Kh", "9c", "9s"))

	assert.True(t, out.Rollover)
	assert.Equal(t, FullHouse, out.Category)
}

func TestEvaluateStraightTopCardWins(t *testing.T) {
	// 5-6-7-8-9 with the board holding the 7: seat with the 9 owns the run.
	out := EvaluatePot(deck.MustParseCard("7d"), handCards("5s", "6h", "8c", "9s"))

	require.False(t, out.Rollover)
	assert.Equal(t, Straight, out.Category)
	assert.Equal(t, []int{3}, out.Winners)
	assert.Contains(t, out.Reason, "9 high")
}

func TestEvaluateStraightBoardHighRollsOver(t *testing.T) {
	// The board owns the top card of the run.
	out := EvaluatePot(deck.MustParseCard("9d"), handCards("5s", "6h", "7c", "8s"))

	assert.True(t, out.Rollover)
	assert.Equal(t, Straight, out.Category)
	assert.Contains(t, out.Reason, "board high")
}

func TestEvaluateWheelAcePlaysLow(t *testing.T) {
	// A-2-3-4-5: the five is the deciding card, not the ace.
	out := EvaluatePot(deck.MustParseCard("2d"), handCards("As", "3h", "4c", "5s"))

	require.False(t, out.Rollover)
	assert.Equal(t, Straight, out.Category)
	assert.Equal(t, []int{3}, out.Winners)
	assert.Contains(t, out.Reason, "Wheel")
}

func TestEvaluateFlushTopCardWins(t *testing.T) {
	out := EvaluatePot(deck.MustParseCard("2h"), handCards("Kh", "9h", "7h", "4h"))

	require.False(t, out.Rollover)
	assert.Equal(t, Flush, out.Category)
	assert.Equal(t, []int{0}, out.Winners)
}

func TestEvaluateStraightFlush(t *testing.T) {
	out := EvaluatePot(deck.MustParseCard("5h"), handCards("6h", "7h", "8h", "9h"))

	require.False(t, out.Rollover)
	assert.Equal(t, StraightFlush, out.Category)
	assert.Equal(t, []int{3}, out.Winners)
}

func TestEvaluateHighCardBoardBestRollsOver(t *testing.T) {
	out := EvaluatePot(deck.MustParseCard("Ad"), handCards("Ks", "9h", "4c", "2s"))

	assert.True(t, out.Rollover)
	assert.Equal(t, HighCard, out.Category)
	assert.Contains(t, out.Reason, "board wins")
}

func TestEvaluateHighCardPlayerWins(t *testing.T) {
	out := EvaluatePot(deck.MustParseCard("4d"), handCards("Ks", "9h", "3c", "2s"))

	require.False(t, out.Rollover)
	assert.Equal(t, HighCard, out.Category)
	assert.Equal(t, []int{0}, out.Winners)
	assert.Contains(t, out.Reason, "K high")
}

func TestEvaluateDecidingCardOwnedByIneligibleRollsOver(t *testing.T) {
	// The pair maker is an eliminated seat's card: composition only.
	entries := []HandCard{
		{Seat: 0, Card: deck.MustParseCard("9h"), Eligible: true},
		{Seat: 1, Card: deck.MustParseCard("Ks"), Eligible: false},
		{Seat: 2, Card: deck.MustParseCard("4c"), Eligible: true},
	}
	out := EvaluatePot(deck.MustParseCard("Kd"), entries)

	assert.True(t, out.Rollover)
	assert.Equal(t, OnePair, out.Category)
	assert.Contains(t, out.Reason, "no eligible maker")
}

func TestEvaluatePartialCompositionNoStraightOrFlush(t *testing.T) {
	// Fewer than five cards on the table never make a straight or flush.
	out := EvaluatePot(deck.MustParseCard("5h"), handCards("6h", "7h", "8h"))

	assert.Equal(t, HighCard, out.Category)
}
