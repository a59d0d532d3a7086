package game

import (
	"github.com/lox/kicker/internal/deck"
)

// RecordedAction is one replayable entry: a completed action or a card
// reveal, with a full snapshot of players and pot afterwards. Entries that
// are not player actions carry the None kind and only a message. Snapshots
// are value copies, a deliberate memory-for-simplicity trade at four seats.
type RecordedAction struct {
	Action       PlayerAction
	Seat         int
	Message      string
	Players      []Player
	Pot          int
	RevealedSeat int // -1 unless this entry is a card reveal
}

// roundStart captures the state right after the deal so a replay can rewind
// to it.
type roundStart struct {
	Players     []Player
	Pot         int
	CurrentSeat int
	Board       deck.Card
	RevealOrder []int
}

// Recorder accumulates the action log for one round. It is cleared at each
// deal and never written while the round is replaying.
type Recorder struct {
	start   *roundStart
	entries []RecordedAction
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (rec *Recorder) reset(start roundStart) {
	rec.start = &start
	rec.entries = rec.entries[:0]
}

func (rec *Recorder) record(entry RecordedAction) {
	rec.entries = append(rec.entries, entry)
}

// Len returns the number of recorded entries
func (rec *Recorder) Len() int {
	return len(rec.entries)
}

// At returns the i-th recorded entry
func (rec *Recorder) At(i int) RecordedAction {
	return rec.entries[i]
}

func (rec *Recorder) last() (RecordedAction, bool) {
	if len(rec.entries) == 0 {
		return RecordedAction{}, false
	}
	return rec.entries[len(rec.entries)-1], true
}

// StartReplay rewinds the round to the deal snapshot and enters replay mode.
// No new entries are recorded while replaying.
func (r *Round) StartReplay() error {
	if r.Phase != PhaseWinner {
		return illegalf("replay only available after the round ends")
	}
	if r.recorder.start == nil || r.recorder.Len() == 0 {
		return illegalf("no recorded round to replay")
	}

	start := r.recorder.start
	if len(start.Players) != len(r.Players) {
		return invariantf("replay log desynchronized: %d recorded seats, %d live",
			len(start.Players), len(r.Players))
	}
	r.restoreSnapshot(start.Players, start.Pot)
	r.CurrentSeat = start.CurrentSeat
	r.Board = start.Board
	r.RevealOrder = append([]int{}, start.RevealOrder...)
	r.Message = "Replaying round"
	r.Phase = PhasePlaying
	r.Result = nil
	r.SidePots = nil
	r.replaying = true
	r.replayIndex = 0
	return nil
}

// AdvanceReplay applies the next recorded snapshot. Once the log is
// exhausted it re-runs the showdown and leaves replay mode, so Replaying
// reports completion.
func (r *Round) AdvanceReplay() error {
	if !r.replaying {
		return illegalf("not replaying")
	}

	if r.replayIndex >= r.recorder.Len() {
		return r.finishReplay()
	}

	entry := r.recorder.At(r.replayIndex)
	r.replayIndex++
	r.restoreSnapshot(entry.Players, entry.Pot)
	r.CurrentSeat = entry.Seat
	r.Message = entry.Message

	if r.replayIndex >= r.recorder.Len() {
		return r.finishReplay()
	}
	return nil
}

// CancelReplay jumps straight to the last recorded snapshot and resolves the
// round with the normal showdown.
func (r *Round) CancelReplay() error {
	if !r.replaying {
		return illegalf("not replaying")
	}
	return r.finishReplay()
}

// Replaying reports whether the round is in replay mode
func (r *Round) Replaying() bool {
	return r.replaying
}

func (r *Round) finishReplay() error {
	entry, ok := r.recorder.last()
	if !ok {
		return invariantf("replay log empty at finish")
	}
	r.restoreSnapshot(entry.Players, entry.Pot)
	// The round already announced its end; the re-run showdown stays silent.
	r.showdown()
	r.replaying = false
	return nil
}

// restoreSnapshot rewrites player state and the pot from value copies
func (r *Round) restoreSnapshot(players []Player, pot int) {
	for i := range r.Players {
		*r.Players[i] = players[i]
	}
	r.Pot = pot
}
