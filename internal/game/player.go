package game

import (
	"github.com/lox/kicker/internal/deck"
)

// AISkill selects the scripted policy driving an AI seat. SkillNone marks a
// human-controlled seat.
type AISkill int

const (
	SkillNone AISkill = iota
	SkillCautious
	SkillRandom
	SkillAggressive
)

func (s AISkill) String() string {
	switch s {
	case SkillCautious:
		return "cautious"
	case SkillRandom:
		return "random"
	case SkillAggressive:
		return "aggressive"
	default:
		return "human"
	}
}

// Player represents one seat in a round. The Round owns all mutation;
// everything handed to observers is a value copy.
type Player struct {
	Seat          int
	Name          string
	Chips         int
	Card          deck.Card
	HasCard       bool
	Revealed      bool
	Folded        bool
	Eliminated    bool
	AllIn         bool
	CurrentBet    int // bet in the current betting round
	TotalRoundBet int // cumulative this round, drives side pots
	Skill         AISkill
}

// IsAI returns true if the seat is driven by an AI policy
func (p *Player) IsAI() bool {
	return p.Skill != SkillNone
}

// IsActive returns true if the player is still in the round
func (p *Player) IsActive() bool {
	return !p.Folded && !p.Eliminated
}

// CanAct returns true if the player may still take betting actions
func (p *Player) CanAct() bool {
	return p.IsActive() && !p.AllIn
}

// placeBet moves chips into the current and cumulative round bets. Callers
// clamp the amount beforehand; a bet equal to the stack marks the all-in.
func (p *Player) placeBet(amount int) {
	p.Chips -= amount
	p.CurrentBet += amount
	p.TotalRoundBet += amount
	if p.Chips == 0 {
		p.AllIn = true
	}
}

// ResetForRound clears per-round state between rounds. Chips, name, seat and
// skill persist; players at zero chips are eliminated.
func (p *Player) ResetForRound() {
	p.Card = deck.Card{}
	p.HasCard = false
	p.Revealed = false
	p.Folded = false
	p.AllIn = false
	p.CurrentBet = 0
	p.TotalRoundBet = 0
	if p.Chips <= 0 {
		p.Eliminated = true
		p.Folded = true
	}
}

// copyPlayers snapshots players by value for the recorder and for observers
func copyPlayers(players []*Player) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = *p
	}
	return out
}
