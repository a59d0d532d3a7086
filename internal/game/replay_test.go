package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/kicker/internal/deck"
	"github.com/lox/kicker/internal/randutil"
)

func playScriptedRound(t *testing.T) *Round {
	t.Helper()
	r := testRound(t, []int{10, 10, 10, 10}, 0, "Kd", "Ks", "9h", "4c", "2s")
	require.NoError(t, r.Apply(1, BetAction(2)))
	require.NoError(t, r.Apply(2, CallAction()))
	require.NoError(t, r.Apply(3, FoldAction()))
	require.NoError(t, r.Apply(0, CallAction()))
	checkDown(t, r)
	return r
}

func finalChips(r *Round) []int {
	chips := make([]int, len(r.Players))
	for i, p := range r.Players {
		chips[i] = p.Chips
	}
	return chips
}

func TestReplayRequiresFinishedRound(t *testing.T) {
	r := testRound(t, []int{10, 10, 10, 10}, 0, "Kd", "Ks", "9h", "4c", "2s")
	assert.ErrorIs(t, r.StartReplay(), ErrIllegalAction)
}

func TestReplayRestoresStartState(t *testing.T) {
	r := playScriptedRound(t)
	require.NoError(t, r.StartReplay())

	assert.True(t, r.Replaying())
	assert.Equal(t, PhasePlaying, r.Phase)
	assert.Equal(t, 4, r.Pot, "pot back to the antes")
	for _, p := range r.Players {
		assert.Equal(t, 9, p.Chips)
		assert.False(t, p.Folded)
	}
}

func TestReplayToCompletionMatchesNaturalOutcome(t *testing.T) {
	r := playScriptedRound(t)
	wantChips := finalChips(r)
	wantResult := *r.Result

	require.NoError(t, r.StartReplay())
	for i := 0; i < 200 && r.Replaying(); i++ {
		require.NoError(t, r.AdvanceReplay())
	}
	require.False(t, r.Replaying(), "replay did not finish")

	assert.Equal(t, PhaseWinner, r.Phase)
	assert.Equal(t, wantChips, finalChips(r))
	require.NotNil(t, r.Result)
	assert.Equal(t, wantResult.WinnerDesc, r.Result.WinnerDesc)
	assert.Equal(t, wantResult.Carry, r.Result.Carry)
}

func TestCancelReplayAtAnyPointMatchesNaturalOutcome(t *testing.T) {
	for cancelAfter := 0; cancelAfter < 6; cancelAfter++ {
		r := playScriptedRound(t)
		wantChips := finalChips(r)
		wantCarry := r.Result.Carry

		require.NoError(t, r.StartReplay())
		for i := 0; i < cancelAfter && r.Replaying(); i++ {
			require.NoError(t, r.AdvanceReplay())
		}
		if r.Replaying() {
			require.NoError(t, r.CancelReplay())
		}

		assert.False(t, r.Replaying())
		assert.Equal(t, PhaseWinner, r.Phase)
		assert.Equal(t, wantChips, finalChips(r), "cancel after %d steps", cancelAfter)
		assert.Equal(t, wantCarry, r.Result.Carry, "cancel after %d steps", cancelAfter)
	}
}

func TestActionsRejectedDuringReplay(t *testing.T) {
	r := playScriptedRound(t)
	require.NoError(t, r.StartReplay())

	assert.ErrorIs(t, r.Apply(r.CurrentSeat, CheckAction()), ErrIllegalAction)
}

func TestRecorderCapturesEveryAction(t *testing.T) {
	r := testRound(t, []int{10, 10, 10, 10}, 0, "Kd", "Ks", "9h", "4c", "2s")
	require.NoError(t, r.Apply(1, BetAction(2)))
	require.NoError(t, r.Apply(2, FoldAction()))

	rec := r.Recorder()
	require.GreaterOrEqual(t, rec.Len(), 2)
	assert.Equal(t, Bet, rec.At(0).Action.Kind)
	assert.Equal(t, 1, rec.At(0).Seat)
	assert.Equal(t, Fold, rec.At(1).Action.Kind)

	// Snapshots are value copies: mutating live state leaves them intact.
	potAt0 := rec.At(0).Pot
	r.Pot += 100
	assert.Equal(t, potAt0, rec.At(0).Pot)
	r.Pot -= 100
}

func countEvents(rec *eventRecorder, et EventType) int {
	n := 0
	for _, got := range rec.types {
		if got == et {
			n++
		}
	}
	return n
}

func TestReplayDoesNotRepublishRoundEvents(t *testing.T) {
	bus := NewEventBus()
	rec := &eventRecorder{}
	bus.Subscribe(rec)

	rng := randutil.New(1)
	players := make([]*Player, 4)
	for i := range players {
		players[i] = &Player{Seat: i, Name: string(rune('A' + i)), Chips: 10}
	}
	d := deck.New(rng)
	d.Shuffle()
	d.Stack(deck.MustParseCard("Kd"), deck.MustParseCard("Ks"),
		deck.MustParseCard("9h"), deck.MustParseCard("4c"), deck.MustParseCard("2s"))

	r := NewRound(rng, players, 0, 0, WithDeck(d), WithEventBus(bus))
	require.NoError(t, r.Deal())
	require.NoError(t, r.Apply(1, BetAction(2)))
	require.NoError(t, r.Apply(2, CallAction()))
	require.NoError(t, r.Apply(3, FoldAction()))
	require.NoError(t, r.Apply(0, CallAction()))
	checkDown(t, r)

	require.Equal(t, 1, countEvents(rec, EventTypeRoundEnded))
	published := len(rec.types)

	require.NoError(t, r.StartReplay())
	for i := 0; i < 200 && r.Replaying(); i++ {
		require.NoError(t, r.AdvanceReplay())
	}
	require.False(t, r.Replaying())
	assert.Equal(t, 1, countEvents(rec, EventTypeRoundEnded), "replay re-announced the round end")
	assert.Equal(t, published, len(rec.types), "events published during replay")

	require.NoError(t, r.StartReplay())
	require.NoError(t, r.CancelReplay())
	assert.Equal(t, 1, countEvents(rec, EventTypeRoundEnded), "cancel re-announced the round end")
	assert.Equal(t, published, len(rec.types))
}

func TestRevealEntriesCarryOnlyMessages(t *testing.T) {
	r := playScriptedRound(t)

	rec := r.Recorder()
	reveals := 0
	for i := 0; i < rec.Len(); i++ {
		entry := rec.At(i)
		if entry.RevealedSeat < 0 {
			continue
		}
		reveals++
		assert.Equal(t, None, entry.Action.Kind, "reveal entry %d logged as a player action", i)
	}
	assert.NotZero(t, reveals)
}

func TestFastForwardedRoundReplaysToSameOutcome(t *testing.T) {
	rng := randutil.New(9)
	players := []*Player{
		{Seat: 0, Name: "You", Chips: 10},
		{Seat: 1, Name: "Sam", Chips: 10, Skill: SkillCautious},
		{Seat: 2, Name: "Riley", Chips: 10, Skill: SkillRandom},
		{Seat: 3, Name: "Alex", Chips: 10, Skill: SkillAggressive},
	}
	r := NewRound(rng, players, 0, 0)
	require.NoError(t, r.Deal())

	for i := 0; i < 50 && r.Phase == PhasePlaying; i++ {
		seat := r.CurrentSeat
		if seat == 0 {
			require.NoError(t, r.Apply(0, FoldAction()))
			break
		}
		action, err := r.DecideAI(seat)
		require.NoError(t, err)
		require.NoError(t, r.Apply(seat, action))
	}
	require.Equal(t, PhaseWinner, r.Phase)

	rec := r.Recorder()
	require.NotZero(t, rec.Len())
	last := rec.At(rec.Len() - 1)
	assert.Equal(t, None, last.Action.Kind, "fast-forward summary logged as a player action")

	wantChips := finalChips(r)
	wantCarry := r.Result.Carry

	require.NoError(t, r.StartReplay())
	require.NoError(t, r.CancelReplay())

	assert.Equal(t, wantChips, finalChips(r))
	assert.Equal(t, wantCarry, r.Result.Carry)
}
