package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/kicker/internal/config"
	"github.com/lox/kicker/internal/display"
	"github.com/lox/kicker/internal/game"
	"github.com/lox/kicker/internal/randutil"
)

type PlayCmd struct {
	Config string `help:"Table config file (HCL)" type:"existingfile"`
	Seed   int64  `help:"RNG seed, 0 for time-based"`
}

func (c *PlayCmd) Run(logger *log.Logger) error {
	cfg := config.Default()
	if c.Config != "" {
		loaded, err := config.Load(c.Config)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	seed := c.Seed
	if seed == 0 {
		seed = cfg.Game.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	engine := game.NewEngine(randutil.New(seed), cfg.EngineSeats(),
		game.WithEngineLogger(logger),
		game.WithTurnTimeout(cfg.TurnTimeout()),
	)

	humanSeat := -1
	for i, s := range cfg.EngineSeats() {
		if s.Skill == game.SkillNone {
			humanSeat = i
			break
		}
	}

	in := bufio.NewScanner(os.Stdin)
	for {
		if err := engine.StartRound(); err != nil {
			fmt.Println("Game over:", err)
			return nil
		}

		if err := c.playRound(engine, humanSeat, in); err != nil {
			return err
		}

		res := engine.Result()
		if res == nil {
			return fmt.Errorf("round ended without a result")
		}
		fmt.Println(display.Result(*res))

		if humanSeat >= 0 {
			if err := c.offerReplay(engine, humanSeat, in); err != nil {
				return err
			}
		}

		if err := engine.NextRound(); err != nil {
			return err
		}

		alive := 0
		for _, chips := range engine.ChipCounts() {
			if chips > 0 {
				alive++
			}
		}
		if alive < 2 {
			fmt.Println("Game over.")
			return nil
		}
		if humanSeat >= 0 && engine.ChipCounts()[humanSeat] == 0 {
			fmt.Println("You're out of chips. The table plays on without you.")
		}

		fmt.Print("\nPress enter for the next round (q to quit): ")
		if !in.Scan() || strings.TrimSpace(in.Text()) == "q" {
			return nil
		}
	}
}

func (c *PlayCmd) playRound(engine *game.Engine, humanSeat int, in *bufio.Scanner) error {
	for {
		snap := engine.Snapshot()
		if snap.Phase != game.PhasePlaying {
			fmt.Println(display.Table(snap, humanSeat))
			return nil
		}
		fmt.Println(display.Table(snap, humanSeat))

		if pending := engine.PendingAIDecision(); pending != nil {
			fmt.Printf("%s will %s. ", snap.Players[pending.Seat].Name, pending.Action)
			fmt.Print("Press enter...")
			in.Scan()
			if err := engine.PlayPendingAI(); err != nil {
				return err
			}
			continue
		}

		if snap.CurrentSeat != humanSeat {
			// An AI turn with no pending decision resolves on the next poll.
			continue
		}

		action, quit, err := c.promptAction(engine, humanSeat, in)
		if err != nil {
			return err
		}
		if quit {
			return fmt.Errorf("quit")
		}
		if err := engine.SubmitAction(humanSeat, action); err != nil {
			fmt.Println("  ", err)
		}
	}
}

func (c *PlayCmd) promptAction(engine *game.Engine, seat int, in *bufio.Scanner) (game.PlayerAction, bool, error) {
	toCall := engine.ToCall(seat)
	if toCall > 0 {
		fmt.Printf("Your move ($%d to call) [call/raise N/fold/allin]: ", toCall)
	} else {
		fmt.Print("Your move [check/bet N/fold/allin]: ")
	}
	if !in.Scan() {
		return game.PlayerAction{}, true, nil
	}

	fields := strings.Fields(strings.ToLower(in.Text()))
	if len(fields) == 0 {
		if toCall > 0 {
			return game.CallAction(), false, nil
		}
		return game.CheckAction(), false, nil
	}

	amount := 0
	if len(fields) > 1 {
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			fmt.Println("   amount must be a number")
			return c.promptAction(engine, seat, in)
		}
		amount = n
	}

	switch fields[0] {
	case "check", "k":
		return game.CheckAction(), false, nil
	case "call", "c":
		return game.CallAction(), false, nil
	case "bet", "b":
		return game.BetAction(amount), false, nil
	case "raise", "r":
		return game.RaiseAction(amount), false, nil
	case "fold", "f":
		return game.FoldAction(), false, nil
	case "allin", "a":
		return game.AllInAction(), false, nil
	case "quit", "q":
		return game.PlayerAction{}, true, nil
	default:
		fmt.Println("   unknown action", fields[0])
		return c.promptAction(engine, seat, in)
	}
}

// offerReplay steps back through the finished round one action at a time
func (c *PlayCmd) offerReplay(engine *game.Engine, humanSeat int, in *bufio.Scanner) error {
	fmt.Print("Replay the round? [y/N]: ")
	if !in.Scan() || !strings.HasPrefix(strings.ToLower(strings.TrimSpace(in.Text())), "y") {
		return nil
	}

	if err := engine.StartReplay(); err != nil {
		return err
	}
	for {
		snap := engine.Snapshot()
		fmt.Println(display.Table(snap, humanSeat))
		if !snap.Replaying {
			return nil
		}
		fmt.Print("Enter for next action (s to skip to the end): ")
		if in.Scan() && strings.TrimSpace(in.Text()) == "s" {
			return engine.CancelReplay()
		}
		if err := engine.AdvanceReplay(); err != nil {
			return err
		}
	}
}
