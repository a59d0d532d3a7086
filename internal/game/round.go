package game

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/kicker/internal/deck"
)

const (
	ante        = 1
	maxSimSteps = 200
)

// Phase is the lifecycle of a round
type Phase int

const (
	PhaseSetup Phase = iota
	PhasePlaying
	PhaseWinner
)

func (p Phase) String() string {
	return [...]string{"setup", "playing", "winner"}[p]
}

// PotResult is the resolution of a single pot at showdown
type PotResult struct {
	Amount   int
	Winners  []int
	Share    int // chips per winner after the even split
	Reason   string
	Rollover bool
}

// RoundResult is the terminal outcome of a round
type RoundResult struct {
	WinnerDesc string
	Pots       []PotResult
	Carry      int // rollover into the next round
	Voided     bool
}

// Round is the authoritative state of one round and the only thing that
// mutates it. It is not safe for concurrent use; the Engine serializes
// access.
type Round struct {
	Players     []*Player
	Board       deck.Card
	Pot         int
	Dealer      int
	CurrentSeat int
	CurrentBet  int // amount each active seat must match this betting round
	LastRaiser  int // -1 if no bet/raise yet this betting round
	Starter     int
	RevealOrder []int
	RevealPhase int
	Phase       Phase
	Message     string
	SidePots    []SidePot
	Result      *RoundResult

	carried       int // rollover consumed by this round's deal
	baselineChips int // conservation baseline: chips + pot after the deal
	acted         int // voluntary actions this betting round
	raises        []int
	rng           *rand.Rand
	logger        *log.Logger
	bus           EventBus
	recorder      *Recorder
	deckOverride  *deck.Deck
	replaying     bool
	replayIndex   int
}

// RoundOption configures a Round
type RoundOption func(*Round)

// WithDeck supplies a prepared deck, for deterministic tests
func WithDeck(d *deck.Deck) RoundOption {
	return func(r *Round) { r.deckOverride = d }
}

// WithEventBus publishes round events to the given bus
func WithEventBus(bus EventBus) RoundOption {
	return func(r *Round) { r.bus = bus }
}

// WithLogger sets the round logger
func WithLogger(logger *log.Logger) RoundOption {
	return func(r *Round) { r.logger = logger }
}

// NewRound creates a round over the given players. Dealer is the dealing
// seat; carry is the rollover pot from the previous round, consumed by the
// deal. Call Deal to start play.
func NewRound(rng *rand.Rand, players []*Player, dealer, carry int, opts ...RoundOption) *Round {
	r := &Round{
		Players:    players,
		Dealer:     dealer,
		LastRaiser: -1,
		carried:    carry,
		raises:     make([]int, len(players)),
		rng:        rng,
		logger:     log.NewWithOptions(io.Discard, log.Options{}),
		recorder:   NewRecorder(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Recorder exposes the round's action log
func (r *Round) Recorder() *Recorder {
	return r.recorder
}

// Deal shuffles, reveals the board card, deals one card per playing seat and
// collects the ante. Seats that cannot ante are folded for the round.
func (r *Round) Deal() error {
	if r.Phase != PhaseSetup {
		return illegalf("round already dealt")
	}

	d := r.deckOverride
	if d == nil {
		d = deck.New(r.rng)
		d.Shuffle()
	}

	board, ok := d.Deal()
	if !ok {
		return invariantf("deck empty dealing board card")
	}
	r.Board = board

	r.RevealOrder = make([]int, 0, len(r.Players))
	for i := 1; i <= len(r.Players); i++ {
		r.RevealOrder = append(r.RevealOrder, (r.Dealer+i)%len(r.Players))
	}

	antes := 0
	for _, p := range r.Players {
		if !p.Eliminated && p.Chips >= ante {
			card, ok := d.Deal()
			if !ok {
				return invariantf("deck empty dealing player cards")
			}
			p.Card = card
			p.HasCard = true
			p.Revealed = false
			p.Folded = false
			p.AllIn = false
			p.CurrentBet = 0
			p.TotalRoundBet = ante
			p.Chips -= ante
			antes += ante
		} else {
			p.Folded = true
		}
	}

	r.Pot = antes + r.carried
	r.CurrentBet = 0
	r.LastRaiser = -1
	r.acted = 0
	r.RevealPhase = 0
	r.SidePots = nil
	r.Result = nil
	r.replaying = false
	r.replayIndex = 0

	first := r.nextActiveSeat(r.Dealer)
	if first < 0 {
		return invariantf("no seat can open the round")
	}
	r.CurrentSeat = first
	r.Starter = first
	r.Phase = PhasePlaying

	r.baselineChips = r.chipSum() + r.Pot

	r.recorder.reset(roundStart{
		Players:     copyPlayers(r.Players),
		Pot:         r.Pot,
		CurrentSeat: first,
		Board:       r.Board,
		RevealOrder: append([]int{}, r.RevealOrder...),
	})

	carryNote := ""
	if r.carried > 0 {
		carryNote = fmt.Sprintf(" (+$%d rollover)", r.carried)
	}
	r.Message = fmt.Sprintf("%s deals. Board: %s%s", r.Players[r.Dealer].Name, r.Board, carryNote)
	r.logger.Debug("dealt round", "board", r.Board.String(), "pot", r.Pot, "first", first)

	r.publish(RoundStartedEvent{
		Board:       r.Board,
		RevealOrder: append([]int{}, r.RevealOrder...),
		FirstSeat:   first,
		Pot:         r.Pot,
		Players:     copyPlayers(r.Players),
		timestamp:   time.Now(),
	})

	r.autoActBroke()
	return nil
}

// ToCall returns what the given seat must pay to match the table bet
func (r *Round) ToCall(seat int) int {
	p := r.Players[seat]
	toCall := r.CurrentBet - p.CurrentBet
	if toCall < 0 {
		return 0
	}
	if toCall > p.Chips {
		return p.Chips
	}
	return toCall
}

// Apply validates and applies an action for the seat, then advances the
// turn. Wager amounts are clamped to the actor's chips; a raise that cannot
// exceed the table bet degrades to an all-in call. ErrIllegalAction leaves
// the state untouched.
func (r *Round) Apply(seat int, action PlayerAction) error {
	if r.Phase != PhasePlaying {
		return illegalf("round is not in play")
	}
	if r.replaying {
		return illegalf("round is replaying")
	}
	if seat != r.CurrentSeat {
		return illegalf("seat %d acted out of turn (current %d)", seat, r.CurrentSeat)
	}
	p := r.Players[seat]
	if !p.CanAct() {
		return illegalf("seat %d cannot act", seat)
	}

	recorded := action
	var msg string

	switch action.Kind {
	case Bet:
		if r.CurrentBet != 0 {
			return illegalf("cannot bet into an open bet, raise instead")
		}
		amount := min(action.Amount, p.Chips)
		if amount <= 0 {
			return illegalf("bet must be at least 1")
		}
		p.placeBet(amount)
		r.Pot += amount
		r.CurrentBet = amount
		r.LastRaiser = seat
		r.raises[seat]++
		if p.AllIn {
			msg = fmt.Sprintf("%s went all-in with $%d", p.Name, amount)
		} else {
			msg = fmt.Sprintf("%s bet $%d", p.Name, amount)
		}
		recorded = BetAction(amount)

	case Call:
		want := r.CurrentBet - p.CurrentBet
		amount := min(want, p.Chips)
		if amount < 0 {
			amount = 0
		}
		p.placeBet(amount)
		r.Pot += amount
		switch {
		case p.AllIn && amount < want:
			msg = fmt.Sprintf("%s is all-in for $%d (can't match full bet)", p.Name, amount)
		case p.AllIn:
			msg = fmt.Sprintf("%s went all-in with $%d", p.Name, amount)
		case amount == 0:
			msg = fmt.Sprintf("%s checked", p.Name)
		default:
			msg = fmt.Sprintf("%s called $%d", p.Name, amount)
		}

	case Raise:
		if r.CurrentBet == 0 {
			return illegalf("nothing to raise, bet instead")
		}
		toCall := r.CurrentBet - p.CurrentBet
		amount := min(action.Amount, p.Chips-toCall)
		if amount <= 0 {
			// Cannot exceed the table bet: degrade to an all-in call.
			pay := min(toCall, p.Chips)
			p.placeBet(pay)
			r.Pot += pay
			msg = fmt.Sprintf("%s went all-in with $%d", p.Name, pay)
			recorded = CallAction()
			break
		}
		p.placeBet(toCall + amount)
		r.Pot += toCall + amount
		r.CurrentBet += amount
		r.LastRaiser = seat
		r.raises[seat]++
		if p.AllIn {
			msg = fmt.Sprintf("%s went all-in, raising to $%d", p.Name, r.CurrentBet)
		} else {
			msg = fmt.Sprintf("%s raised to $%d", p.Name, r.CurrentBet)
		}
		recorded = RaiseAction(amount)

	case Check:
		if r.CurrentBet != 0 && p.CurrentBet < r.CurrentBet {
			return illegalf("cannot check, $%d to call", r.CurrentBet-p.CurrentBet)
		}
		msg = fmt.Sprintf("%s checked", p.Name)

	case Fold:
		p.Folded = true
		msg = fmt.Sprintf("%s folded", p.Name)

	case AllIn:
		if p.Chips <= 0 {
			return illegalf("no chips to wager")
		}
		amount := p.Chips
		p.placeBet(amount)
		r.Pot += amount
		// Promotes to a bet or raise when the new total leads the table.
		if p.CurrentBet > r.CurrentBet {
			r.CurrentBet = p.CurrentBet
			r.LastRaiser = seat
			r.raises[seat]++
		}
		msg = fmt.Sprintf("%s is ALL IN with $%d!", p.Name, amount)

	default:
		return illegalf("unknown action %v", action.Kind)
	}

	r.acted++
	r.Message = msg
	r.logger.Debug("action applied", "seat", seat, "action", recorded.String(), "pot", r.Pot)
	r.recordAction(recorded, seat, msg, -1)
	r.publish(ActionAppliedEvent{
		Seat: seat, Action: recorded, Message: msg,
		Pot: r.Pot, CurrentBet: r.CurrentBet, timestamp: time.Now(),
	})

	r.advance()
	return nil
}

// recordAction appends a replay entry unless the round is replaying
func (r *Round) recordAction(action PlayerAction, seat int, msg string, revealedSeat int) {
	if r.replaying {
		return
	}
	r.recorder.record(RecordedAction{
		Action:       action,
		Seat:         seat,
		Message:      msg,
		Players:      copyPlayers(r.Players),
		Pot:          r.Pot,
		RevealedSeat: revealedSeat,
	})
}

func (r *Round) publish(event GameEvent) {
	if r.bus != nil && !r.replaying {
		r.bus.Publish(event)
	}
}

// activeSeats are players still in the round (not folded, not eliminated)
func (r *Round) activeSeats() []int {
	var seats []int
	for _, p := range r.Players {
		if p.IsActive() {
			seats = append(seats, p.Seat)
		}
	}
	return seats
}

// actingSeats are players who may still take betting actions
func (r *Round) actingSeats() []int {
	var seats []int
	for _, p := range r.Players {
		if p.CanAct() {
			seats = append(seats, p.Seat)
		}
	}
	return seats
}

// nextActiveSeat finds the next non-folded, non-eliminated seat clockwise of
// from, or -1.
func (r *Round) nextActiveSeat(from int) int {
	n := len(r.Players)
	for i := 1; i <= n; i++ {
		seat := (from + i) % n
		if r.Players[seat].IsActive() {
			return seat
		}
	}
	return -1
}

// nextActingSeat finds the next seat clockwise of from that can act, or -1
func (r *Round) nextActingSeat(from int) int {
	n := len(r.Players)
	for i := 1; i <= n; i++ {
		seat := (from + i) % n
		if r.Players[seat].CanAct() {
			return seat
		}
	}
	return -1
}

// advance runs the turn-advance algorithm after every applied action.
func (r *Round) advance() {
	active := r.activeSeats()

	// A single survivor ends the round immediately.
	if len(active) <= 1 {
		r.showdown()
		return
	}

	acting := r.actingSeats()
	if len(acting) == 0 {
		r.showdown()
		return
	}

	// If every human is out and at least two AI seats remain, resolve the
	// rest of the round instantly on a private copy of the state.
	if !r.replaying && r.humansOut(active) {
		r.fastForward()
		return
	}

	// A lone actor has nobody left to bet against.
	if len(acting) == 1 {
		r.revealNext()
		return
	}

	next := r.nextActingSeat(r.CurrentSeat)
	if next < 0 {
		r.showdown()
		return
	}

	// The checkpoint seat closes the betting round: the last raiser if any,
	// else the round starter, moved forward past seats that can no longer
	// act. Without the adjustment an all-in raiser would never be reached
	// and the turn would cycle forever.
	checkpoint := r.LastRaiser
	if checkpoint < 0 {
		checkpoint = r.Starter
	}
	if !r.Players[checkpoint].CanAct() {
		checkpoint = r.nextActingSeat(checkpoint - 1)
		if checkpoint < 0 {
			checkpoint = r.Starter
		}
	}

	matched := true
	for _, seat := range acting {
		if r.Players[seat].CurrentBet != r.CurrentBet {
			matched = false
			break
		}
	}

	// The betting round closes only once someone has voluntarily acted, so
	// an auto-checked broke starter does not close it before it opens.
	if next == checkpoint && r.acted > 0 && (r.CurrentBet == 0 || matched) {
		r.revealNext()
		return
	}

	r.CurrentSeat = next
	r.autoActBroke()
}

// humansOut reports whether no active human remains while two or more AI
// seats still contest the pot.
func (r *Round) humansOut(active []int) bool {
	humans, ais := 0, 0
	for _, seat := range active {
		if r.Players[seat].IsAI() {
			ais++
		} else {
			humans++
		}
	}
	return humans == 0 && ais >= 2
}

// autoActBroke checks for the current seat when it has no chips to act with.
// The seat is effectively all-in from the ante.
func (r *Round) autoActBroke() {
	if r.Phase != PhasePlaying || r.replaying {
		return
	}
	p := r.Players[r.CurrentSeat]
	if !p.CanAct() || p.Chips > 0 {
		return
	}

	p.AllIn = true
	action := CheckAction()
	msg := fmt.Sprintf("%s checks (no chips)", p.Name)
	if r.CurrentBet != 0 && p.CurrentBet < r.CurrentBet {
		// Facing a bet with nothing left: a forced zero-chip call.
		action = CallAction()
		msg = fmt.Sprintf("%s is all-in", p.Name)
	}
	r.Message = msg
	r.recordAction(action, p.Seat, msg, -1)
	r.publish(ActionAppliedEvent{
		Seat: p.Seat, Action: action, Message: msg,
		Pot: r.Pot, CurrentBet: r.CurrentBet, timestamp: time.Now(),
	})
	r.advance()
}

// revealNext turns the next card in the reveal order face up and opens a new
// betting round, or runs the showdown once every card is showing.
func (r *Round) revealNext() {
	revealer := -1
	for _, seat := range r.RevealOrder {
		p := r.Players[seat]
		if p.HasCard && !p.Revealed {
			revealer = seat
			break
		}
	}
	if revealer < 0 {
		r.showdown()
		return
	}

	p := r.Players[revealer]
	p.Revealed = true
	note := ""
	if p.Folded {
		note = " (folded)"
	}
	msg := fmt.Sprintf("%s reveals: %s%s", p.Name, p.Card, note)
	r.Message = msg
	r.logger.Debug("card revealed", "seat", revealer, "card", p.Card.String())
	r.recordAction(PlayerAction{Kind: None}, revealer, msg, revealer)
	r.publish(CardRevealedEvent{Seat: revealer, Card: p.Card, Folded: p.Folded, timestamp: time.Now()})

	r.RevealPhase++
	r.startBettingRound()
}

// startBettingRound resets per-round bets and hands the turn to the first
// non-folded seat that can act. With fewer than two actors left there is
// nothing to bet over and the reveals cascade.
func (r *Round) startBettingRound() {
	for _, p := range r.Players {
		p.CurrentBet = 0
	}
	r.CurrentBet = 0
	r.LastRaiser = -1
	for i := range r.raises {
		r.raises[i] = 0
	}

	acting := r.actingSeats()
	if len(acting) < 2 {
		r.revealNext()
		return
	}

	r.acted = 0
	r.Starter = acting[0]
	r.CurrentSeat = acting[0]
	r.autoActBroke()
}

// DecideAI computes the policy decision for an AI seat from the current
// state. It draws from the round RNG, so callers cache the result rather
// than calling twice per turn.
func (r *Round) DecideAI(seat int) (PlayerAction, error) {
	p := r.Players[seat]
	if !p.IsAI() {
		return PlayerAction{}, illegalf("seat %d is not AI controlled", seat)
	}
	if r.Phase != PhasePlaying || seat != r.CurrentSeat {
		return PlayerAction{}, illegalf("seat %d is not up", seat)
	}
	return Decide(r.rng, r.decisionView(p, r.Players, r.CurrentBet, r.Starter, r.raises)), nil
}

func (r *Round) decisionView(p *Player, players []*Player, tableBet, starter int, raises []int) DecisionView {
	revealedHigher := false
	for _, other := range players {
		if other.Seat == p.Seat || !other.Revealed || !other.IsActive() {
			continue
		}
		if other.HasCard && other.Card.Value() > p.Card.Value() {
			revealedHigher = true
			break
		}
	}
	return DecisionView{
		Card:           p.Card,
		Board:          r.Board,
		Chips:          p.Chips,
		CurrentBet:     p.CurrentBet,
		TableBet:       tableBet,
		FirstToAct:     p.Seat == starter && tableBet == 0,
		RaisesUsed:     raises[p.Seat],
		RevealedHigher: revealedHigher,
		Skill:          p.Skill,
	}
}

// fastForward resolves the rest of the round AI-vs-AI on a private copy of
// the state and commits only the final result. A bounded step count guards
// against policy loops; the raise cap makes the bound unreachable in
// practice.
func (r *Round) fastForward() {
	sim := copyPlayers(r.Players)
	players := make([]*Player, len(sim))
	for i := range sim {
		players[i] = &sim[i]
	}

	pot := r.Pot
	current := r.CurrentSeat
	tableBet := r.CurrentBet
	lastRaiser := r.LastRaiser
	starter := r.Starter
	acted := r.acted
	raises := append([]int{}, r.raises...)

	actingOf := func() []int {
		var seats []int
		for _, p := range players {
			if p.CanAct() {
				seats = append(seats, p.Seat)
			}
		}
		return seats
	}
	activeOf := func() []int {
		var seats []int
		for _, p := range players {
			if p.IsActive() {
				seats = append(seats, p.Seat)
			}
		}
		return seats
	}
	nextActing := func(from int) int {
		n := len(players)
		for i := 1; i <= n; i++ {
			seat := (from + i) % n
			if players[seat].CanAct() {
				return seat
			}
		}
		return -1
	}
	reveal := func() bool {
		for _, seat := range r.RevealOrder {
			p := players[seat]
			if p.HasCard && !p.Revealed {
				p.Revealed = true
				for _, q := range players {
					q.CurrentBet = 0
				}
				tableBet = 0
				lastRaiser = -1
				acted = 0
				for i := range raises {
					raises[i] = 0
				}
				acting := actingOf()
				if len(acting) > 0 {
					starter = acting[0]
				}
				current = -1
				return true
			}
		}
		return false
	}

	for step := 0; step < maxSimSteps; step++ {
		if len(activeOf()) <= 1 {
			break
		}
		acting := actingOf()
		if len(acting) == 0 {
			break
		}

		next := nextActing(current)
		if next < 0 {
			break
		}

		checkpoint := lastRaiser
		if checkpoint < 0 {
			checkpoint = starter
		}
		if !players[checkpoint].CanAct() {
			if adjusted := nextActing(checkpoint - 1); adjusted >= 0 {
				checkpoint = adjusted
			}
		}
		matched := true
		for _, seat := range acting {
			if players[seat].CurrentBet != tableBet {
				matched = false
				break
			}
		}

		if len(acting) == 1 || (next == checkpoint && acted > 0 && (tableBet == 0 || matched)) {
			if !reveal() {
				break
			}
			continue
		}

		current = next
		p := players[current]
		if p.Chips == 0 {
			p.AllIn = true
			continue
		}

		decision := Decide(r.rng, r.decisionView(p, players, tableBet, starter, raises))
		acted++
		switch decision.Kind {
		case Fold:
			p.Folded = true
		case Check:
		case Call:
			pay := min(tableBet-p.CurrentBet, p.Chips)
			if pay < 0 {
				pay = 0
			}
			p.placeBet(pay)
			pot += pay
		case Bet:
			amount := min(decision.Amount, p.Chips)
			p.placeBet(amount)
			pot += amount
			tableBet = amount
			lastRaiser = current
			raises[current]++
		case Raise:
			toCall := tableBet - p.CurrentBet
			amount := min(decision.Amount, p.Chips-toCall)
			if amount <= 0 {
				pay := min(toCall, p.Chips)
				p.placeBet(pay)
				pot += pay
				continue
			}
			p.placeBet(toCall + amount)
			pot += toCall + amount
			tableBet += amount
			lastRaiser = current
			raises[current]++
		case AllIn:
			amount := p.Chips
			p.placeBet(amount)
			pot += amount
			if p.CurrentBet > tableBet {
				tableBet = p.CurrentBet
				lastRaiser = current
				raises[current]++
			}
		}
	}

	// Commit the simulated result and resolve.
	for i := range r.Players {
		*r.Players[i] = sim[i]
	}
	r.Pot = pot
	msg := "Remaining seats play out automatically"
	r.Message = msg
	r.logger.Debug("fast-forwarded round", "pot", pot)
	r.recordAction(PlayerAction{Kind: None}, r.CurrentSeat, msg, -1)
	r.showdown()
}

// showdown reveals every dealt card, splits the wagers into pots, resolves
// each pot independently and finishes the round.
func (r *Round) showdown() {
	for _, p := range r.Players {
		if p.HasCard {
			p.Revealed = true
		}
	}

	pots, residual := ComputePots(r.Players, r.Pot, r.carried)
	if potTotal(pots)+residual != r.Pot {
		r.voidRound(invariantf("pot ledger mismatch: pots %d + residual %d != pot %d",
			potTotal(pots), residual, r.Pot))
		return
	}
	r.SidePots = pots

	active := r.activeSeats()
	carry := residual
	results := make([]PotResult, 0, len(pots))

	for _, pot := range pots {
		res := r.resolvePot(pot, active)
		if res.Rollover {
			carry += pot.Amount
		} else {
			for _, seat := range res.Winners {
				r.Players[seat].Chips += res.Share
			}
			carry += pot.Amount - res.Share*len(res.Winners)
		}
		results = append(results, res)
	}

	if r.chipSum()+carry != r.baselineChips {
		r.voidRound(invariantf("chip conservation broken: have %d + carry %d, want %d",
			r.chipSum(), carry, r.baselineChips))
		return
	}
	for _, p := range r.Players {
		if p.Chips < 0 {
			r.voidRound(invariantf("seat %d has negative chips", p.Seat))
			return
		}
	}

	r.Result = &RoundResult{
		WinnerDesc: r.describeResult(results),
		Pots:       results,
		Carry:      carry,
	}
	r.Message = r.Result.WinnerDesc
	r.Phase = PhaseWinner
	r.logger.Debug("round resolved", "winner", r.Result.WinnerDesc, "carry", carry)
	r.publish(RoundEndedEvent{Result: *r.Result, timestamp: time.Now()})
}

// resolvePot resolves one pot: a lone eligible seat wins outright, otherwise
// the evaluator decides. Composition includes the eligible players' cards
// plus any dealt cards of eliminated seats.
func (r *Round) resolvePot(pot SidePot, active []int) PotResult {
	eligible := make([]int, 0, len(pot.Eligible))
	for _, seat := range pot.Eligible {
		if r.Players[seat].IsActive() && r.Players[seat].HasCard {
			eligible = append(eligible, seat)
		}
	}

	if len(eligible) == 0 {
		return PotResult{Amount: pot.Amount, Reason: "No eligible players", Rollover: true}
	}
	if len(eligible) == 1 {
		reason := "Only eligible for this pot"
		if len(active) == 1 {
			reason = "Last player standing"
		}
		return PotResult{
			Amount:  pot.Amount,
			Winners: eligible,
			Share:   pot.Amount,
			Reason:  reason,
		}
	}

	entries := make([]HandCard, 0, len(r.Players))
	inPot := make(map[int]bool, len(eligible))
	for _, seat := range eligible {
		inPot[seat] = true
		entries = append(entries, HandCard{Seat: seat, Card: r.Players[seat].Card, Eligible: true})
	}
	for _, p := range r.Players {
		if p.Eliminated && p.HasCard && !inPot[p.Seat] {
			entries = append(entries, HandCard{Seat: p.Seat, Card: p.Card})
		}
	}

	outcome := EvaluatePot(r.Board, entries)
	res := PotResult{
		Amount:   pot.Amount,
		Winners:  outcome.Winners,
		Reason:   outcome.Reason,
		Rollover: outcome.Rollover,
	}
	if !outcome.Rollover && len(outcome.Winners) > 0 {
		res.Share = pot.Amount / len(outcome.Winners)
	}
	return res
}

func (r *Round) describeResult(results []PotResult) string {
	if len(results) == 0 {
		return "Pot rolls over"
	}
	// Describe the main (largest) pot; side pots show in the pot breakdown.
	main := results[0]
	for _, res := range results[1:] {
		if res.Amount > main.Amount {
			main = res
		}
	}
	if main.Rollover {
		return fmt.Sprintf("Rollover: %s", main.Reason)
	}
	return fmt.Sprintf("%s wins $%d: %s",
		describeWinners(r.Players, main.Winners), main.Share*len(main.Winners), main.Reason)
}

// voidRound aborts on a broken invariant: chips are restored from the deal
// snapshot (wagers refunded), the carry is returned untouched and the round
// ends without a winner.
func (r *Round) voidRound(err error) {
	r.logger.Error("round voided", "err", err)
	if start := r.recorder.start; start != nil {
		for i, snap := range start.Players {
			p := r.Players[i]
			p.Chips = snap.Chips + snap.TotalRoundBet
			p.CurrentBet = 0
			p.TotalRoundBet = 0
			p.AllIn = false
		}
	}
	r.Result = &RoundResult{
		WinnerDesc: fmt.Sprintf("Round voided: %v", err),
		Carry:      r.carried,
		Voided:     true,
	}
	r.Message = r.Result.WinnerDesc
	r.Phase = PhaseWinner
	r.publish(RoundEndedEvent{Result: *r.Result, timestamp: time.Now()})
}

func (r *Round) chipSum() int {
	sum := 0
	for _, p := range r.Players {
		sum += p.Chips
	}
	return sum
}
