package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/kicker/internal/simulator"
)

type SimulateCmd struct {
	Games   int   `help:"Number of games to play" default:"1000"`
	Workers int   `help:"Parallel workers" default:"8"`
	Seed    int64 `help:"Batch seed, 0 for time-based"`
	Chips   int   `help:"Starting chips per seat" default:"10"`
	Rounds  int   `help:"Round cap per game" default:"50"`
}

func (c *SimulateCmd) Run(logger *log.Logger) error {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	logger.Info("starting batch", "games", c.Games, "workers", c.Workers, "seed", seed)
	started := time.Now()

	runner := simulator.New(simulator.Options{
		Games:         c.Games,
		Workers:       c.Workers,
		Seed:          seed,
		StartingChips: c.Chips,
		MaxRounds:     c.Rounds,
		Logger:        logger,
	})
	stats, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("\n%d games, %d rounds in %s (seed %d)\n",
		stats.Games, stats.Rounds, time.Since(started).Round(time.Millisecond), seed)
	fmt.Printf("rollovers: %d  voided rounds: %d\n\n", stats.Rollovers, stats.VoidedRounds)

	fmt.Println("wins by seat:")
	for _, name := range sortedKeys(stats.WinsBySeat) {
		wins := stats.WinsBySeat[name]
		fmt.Printf("  %-14s %5d (%.1f%%)\n", name, wins, 100*float64(wins)/float64(stats.Games))
	}

	fmt.Println("\nwinning hands:")
	for _, reason := range sortedKeys(stats.CategoryCount) {
		fmt.Printf("  %5d  %s\n", stats.CategoryCount[reason], reason)
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return m[keys[i]] > m[keys[j]] })
	return keys
}
