package game

import "fmt"

// ActionKind identifies a player action
type ActionKind int

const (
	Bet ActionKind = iota
	Call
	Raise
	Check
	Fold
	AllIn
	// None marks log entries that carry only a message, like card reveals
	// and the fast-forward summary. It is never a legal player action.
	None
)

func (k ActionKind) String() string {
	return [...]string{"bet", "call", "raise", "check", "fold", "allin", "none"}[k]
}

// PlayerAction is a player action with its payload. Bet and Raise carry an
// amount; the other kinds ignore it.
type PlayerAction struct {
	Kind   ActionKind
	Amount int
}

// BetAction returns a bet of the given amount
func BetAction(amount int) PlayerAction { return PlayerAction{Kind: Bet, Amount: amount} }

// RaiseAction returns a raise by the given amount on top of the call
func RaiseAction(amount int) PlayerAction { return PlayerAction{Kind: Raise, Amount: amount} }

// CallAction returns a call
func CallAction() PlayerAction { return PlayerAction{Kind: Call} }

// CheckAction returns a check
func CheckAction() PlayerAction { return PlayerAction{Kind: Check} }

// FoldAction returns a fold
func FoldAction() PlayerAction { return PlayerAction{Kind: Fold} }

// AllInAction returns an all-in for the actor's remaining chips
func AllInAction() PlayerAction { return PlayerAction{Kind: AllIn} }

// String returns a short form like "raise(2)" or "fold"
func (a PlayerAction) String() string {
	switch a.Kind {
	case Bet, Raise:
		return fmt.Sprintf("%s(%d)", a.Kind, a.Amount)
	default:
		return a.Kind.String()
	}
}
