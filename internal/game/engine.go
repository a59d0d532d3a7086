package game

import (
	"io"
	rand "math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/kicker/internal/deck"
)

// DefaultTurnTimeout is how long a human seat has to act before the engine
// folds them.
const DefaultTurnTimeout = 15 * time.Second

// Seat describes one seat when creating an engine
type Seat struct {
	Name  string
	Chips int
	Skill AISkill
}

// AIDecision is a computed decision for the AI seat currently up, surfaced
// before it is executed so a UI can show intent.
type AIDecision struct {
	Seat   int
	Action PlayerAction
}

// Snapshot is a read-only copy of the table for rendering
type Snapshot struct {
	RoundID     string
	Phase       Phase
	Players     []Player
	Board       deck.Card
	Pot         int
	CurrentSeat int
	CurrentBet  int
	Dealer      int
	Message     string
	RevealOrder []int
	SidePots    []SidePot
	Replaying   bool
	Result      *RoundResult
}

// Engine drives rounds over a fixed table of seats. All methods are safe for
// concurrent use; the engine serializes every mutation with one mutex and
// runs the round state machine inside it.
type Engine struct {
	mu sync.Mutex

	players []*Player
	round   *Round
	roundID string
	dealer  int
	carry   int
	rng     *rand.Rand
	logger  *log.Logger
	bus     EventBus
	clock   quartz.Clock
	timeout time.Duration

	turnTimer *quartz.Timer
	turnGen   int
	pending   *AIDecision
	deckFn    func() *deck.Deck
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithClock substitutes the wall clock, for tests
func WithClock(clock quartz.Clock) EngineOption {
	return func(e *Engine) { e.clock = clock }
}

// WithTurnTimeout overrides the human turn timer. Zero disables it.
func WithTurnTimeout(d time.Duration) EngineOption {
	return func(e *Engine) { e.timeout = d }
}

// WithEngineLogger sets the engine logger
func WithEngineLogger(logger *log.Logger) EngineOption {
	return func(e *Engine) { e.logger = logger }
}

// WithEngineBus publishes game events to the given bus
func WithEngineBus(bus EventBus) EngineOption {
	return func(e *Engine) { e.bus = bus }
}

// WithDeckSource supplies decks for each round, for deterministic tests
func WithDeckSource(fn func() *deck.Deck) EngineOption {
	return func(e *Engine) { e.deckFn = fn }
}

// NewEngine creates an engine over the given seats. The dealer starts at
// seat 0 and rotates each round.
func NewEngine(rng *rand.Rand, seats []Seat, opts ...EngineOption) *Engine {
	e := &Engine{
		rng:     rng,
		logger:  log.NewWithOptions(io.Discard, log.Options{}),
		clock:   quartz.NewReal(),
		timeout: DefaultTurnTimeout,
	}
	for i, s := range seats {
		e.players = append(e.players, &Player{
			Seat:  i,
			Name:  s.Name,
			Chips: s.Chips,
			Skill: s.Skill,
		})
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StartRound deals a new round. Seats at zero chips are eliminated; fewer
// than two live seats is an error.
func (e *Engine) StartRound() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.round != nil && e.round.Phase == PhasePlaying {
		return illegalf("round already in progress")
	}

	live := 0
	for _, p := range e.players {
		p.ResetForRound()
		if !p.Eliminated {
			live++
		}
	}
	if live < 2 {
		return illegalf("need at least two seats with chips")
	}

	e.roundID = uuid.NewString()
	opts := []RoundOption{WithLogger(e.logger)}
	if e.bus != nil {
		opts = append(opts, WithEventBus(e.bus))
	}
	if e.deckFn != nil {
		opts = append(opts, WithDeck(e.deckFn()))
	}
	e.round = NewRound(e.rng, e.players, e.dealer, e.carry, opts...)
	e.carry = 0

	e.logger.Info("starting round", "id", e.roundID, "dealer", e.dealer)
	if err := e.round.Deal(); err != nil {
		return err
	}
	e.onTurnChanged()
	return nil
}

// SubmitAction applies an action for the seat. Human seats cancel their turn
// timer; AI seats must act through PlayPendingAI.
func (e *Engine) SubmitAction(seat int, action PlayerAction) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.round == nil {
		return illegalf("no round in progress")
	}
	if e.players[seat].IsAI() {
		return illegalf("seat %d is AI controlled", seat)
	}
	if err := e.round.Apply(seat, action); err != nil {
		return err
	}
	e.onTurnChanged()
	return nil
}

// PendingAIDecision returns the decision the current AI seat will make, or
// nil when a human is up or the round is over. The decision is computed once
// per turn and cached, so repeated calls agree.
func (e *Engine) PendingAIDecision() *AIDecision {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending == nil {
		return nil
	}
	d := *e.pending
	return &d
}

// PlayPendingAI executes the cached AI decision for the current turn
func (e *Engine) PlayPendingAI() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.pending == nil {
		return illegalf("no AI decision pending")
	}
	d := *e.pending
	e.pending = nil
	if err := e.round.Apply(d.Seat, d.Action); err != nil {
		return err
	}
	e.onTurnChanged()
	return nil
}

// onTurnChanged refreshes the pending AI decision and the human turn timer.
// Callers hold the mutex.
func (e *Engine) onTurnChanged() {
	e.stopTurnTimer()
	e.pending = nil

	if e.round == nil || e.round.Phase != PhasePlaying || e.round.Replaying() {
		return
	}

	seat := e.round.CurrentSeat
	p := e.players[seat]
	if p.IsAI() {
		action, err := e.round.DecideAI(seat)
		if err != nil {
			e.logger.Error("AI decision failed", "seat", seat, "err", err)
			return
		}
		e.pending = &AIDecision{Seat: seat, Action: action}
		return
	}

	if e.timeout <= 0 {
		return
	}
	e.turnGen++
	gen := e.turnGen
	e.turnTimer = e.clock.AfterFunc(e.timeout, func() {
		e.onTurnTimeout(gen, seat)
	})
}

// onTurnTimeout folds a human seat that ran out the clock. The generation
// guard drops timers made stale by an action racing the fire.
func (e *Engine) onTurnTimeout(gen, seat int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.turnGen || e.round == nil || e.round.Phase != PhasePlaying {
		return
	}
	if e.round.CurrentSeat != seat {
		return
	}
	e.logger.Info("turn timed out, folding", "seat", seat)
	if err := e.round.Apply(seat, FoldAction()); err != nil {
		e.logger.Error("timeout fold rejected", "seat", seat, "err", err)
		return
	}
	e.onTurnChanged()
}

func (e *Engine) stopTurnTimer() {
	if e.turnTimer != nil {
		e.turnTimer.Stop()
		e.turnTimer = nil
	}
	e.turnGen++
}

// Result returns the finished round's outcome, or nil
func (e *Engine) Result() *RoundResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.round == nil || e.round.Result == nil {
		return nil
	}
	res := *e.round.Result
	return &res
}

// NextRound banks the finished round's rollover and rotates the dealer.
// StartRound deals the next one.
func (e *Engine) NextRound() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.round == nil || e.round.Phase != PhaseWinner {
		return illegalf("round still in progress")
	}
	if e.round.Replaying() {
		return illegalf("round is replaying")
	}
	e.carry = e.round.Result.Carry
	e.dealer = (e.dealer + 1) % len(e.players)
	e.round = nil
	e.pending = nil
	return nil
}

// StartReplay rewinds the finished round to its deal
func (e *Engine) StartReplay() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.round == nil {
		return illegalf("no round to replay")
	}
	e.stopTurnTimer()
	e.pending = nil
	return e.round.StartReplay()
}

// AdvanceReplay steps the replay forward one recorded action
func (e *Engine) AdvanceReplay() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.round == nil {
		return illegalf("no round to replay")
	}
	return e.round.AdvanceReplay()
}

// CancelReplay jumps straight back to the round's final state
func (e *Engine) CancelReplay() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.round == nil {
		return illegalf("no round to replay")
	}
	return e.round.CancelReplay()
}

// Snapshot returns a copy of the table for rendering
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		RoundID: e.roundID,
		Players: copyPlayers(e.players),
		Dealer:  e.dealer,
	}
	if e.round == nil {
		return snap
	}
	snap.Phase = e.round.Phase
	snap.Board = e.round.Board
	snap.Pot = e.round.Pot
	snap.CurrentSeat = e.round.CurrentSeat
	snap.CurrentBet = e.round.CurrentBet
	snap.Message = e.round.Message
	snap.RevealOrder = append([]int{}, e.round.RevealOrder...)
	snap.SidePots = append([]SidePot{}, e.round.SidePots...)
	snap.Replaying = e.round.Replaying()
	if e.round.Result != nil {
		res := *e.round.Result
		snap.Result = &res
	}
	return snap
}

// ChipCounts returns each seat's chip count by seat index
func (e *Engine) ChipCounts() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	counts := make([]int, len(e.players))
	for i, p := range e.players {
		counts[i] = p.Chips
	}
	return counts
}

// ToCall returns what the given seat owes to match the table bet
func (e *Engine) ToCall(seat int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.round == nil {
		return 0
	}
	return e.round.ToCall(seat)
}

// Rollover returns the carry waiting for the next deal
func (e *Engine) Rollover() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.carry
}
