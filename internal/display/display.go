// Package display renders table state for the terminal.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/kicker/internal/deck"
	"github.com/lox/kicker/internal/game"
)

var (
	redCard   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	blackCard = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	hidden    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	turnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	potStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	winStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true).
			Border(lipgloss.RoundedBorder()).Padding(0, 1)
	msgStyle   = lipgloss.NewStyle().Italic(true)
	tableStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
)

// Card renders a card with suit colouring
func Card(c deck.Card) string {
	s := c.String()
	if c.Suit == deck.Hearts || c.Suit == deck.Diamonds {
		return redCard.Render(s)
	}
	return blackCard.Render(s)
}

// HiddenCard renders a face-down card
func HiddenCard() string {
	return hidden.Render("[??]")
}

// Table renders the full table view for a snapshot. viewerSeat's card is
// always shown; other cards show only once revealed.
func Table(snap game.Snapshot, viewerSeat int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Board: %s    Pot: %s\n", Card(snap.Board), potStyle.Render(fmt.Sprintf("$%d", snap.Pot)))
	if snap.CurrentBet > 0 {
		fmt.Fprintf(&b, "Bet to match: $%d\n", snap.CurrentBet)
	}
	b.WriteString("\n")

	for _, p := range snap.Players {
		b.WriteString(seatLine(snap, p, viewerSeat))
		b.WriteString("\n")
	}

	if snap.Message != "" {
		b.WriteString("\n" + msgStyle.Render(snap.Message))
	}
	return tableStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func seatLine(snap game.Snapshot, p game.Player, viewerSeat int) string {
	marker := "  "
	if snap.Phase == game.PhasePlaying && p.Seat == snap.CurrentSeat {
		marker = turnStyle.Render("> ")
	}

	card := HiddenCard()
	switch {
	case !p.HasCard:
		card = dimStyle.Render("----")
	case p.Revealed || p.Seat == viewerSeat || snap.Phase == game.PhaseWinner:
		card = Card(p.Card)
	}

	var notes []string
	if p.Seat == snap.Dealer {
		notes = append(notes, "dealer")
	}
	if p.AllIn {
		notes = append(notes, "all-in")
	}
	if p.CurrentBet > 0 {
		notes = append(notes, fmt.Sprintf("bet $%d", p.CurrentBet))
	}
	note := ""
	if len(notes) > 0 {
		note = dimStyle.Render(" (" + strings.Join(notes, ", ") + ")")
	}

	line := fmt.Sprintf("%s%-12s %s  $%d%s", marker, p.Name, card, p.Chips, note)
	if p.Eliminated {
		return dimStyle.Render(fmt.Sprintf("  %-12s out", p.Name))
	}
	if p.Folded {
		return dimStyle.Render(fmt.Sprintf("  %-12s %s  $%d  folded", p.Name, card, p.Chips))
	}
	return line
}

// Result renders the round outcome with the pot breakdown
func Result(res game.RoundResult) string {
	var b strings.Builder
	b.WriteString(res.WinnerDesc)
	if len(res.Pots) > 1 {
		for i, pot := range res.Pots {
			b.WriteString("\n")
			if pot.Rollover {
				fmt.Fprintf(&b, "Pot %d ($%d): rolls over, %s", i+1, pot.Amount, pot.Reason)
			} else {
				fmt.Fprintf(&b, "Pot %d ($%d): %s", i+1, pot.Amount, pot.Reason)
			}
		}
	}
	if res.Carry > 0 {
		fmt.Fprintf(&b, "\n$%d carries to the next round", res.Carry)
	}
	return winStyle.Render(b.String())
}
