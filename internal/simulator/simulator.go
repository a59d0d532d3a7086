// Package simulator runs batches of AI-only games for policy and invariant
// validation.
package simulator

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/kicker/internal/game"
	"github.com/lox/kicker/internal/randutil"
)

// Options configures a simulation batch
type Options struct {
	Games         int
	Workers       int
	Seed          int64
	StartingChips int
	MaxRounds     int // per game, guards runaway rollover loops
	Seats         []game.Seat
	Logger        *log.Logger
}

// Stats aggregates the results of a batch
type Stats struct {
	Games         int
	Rounds        int
	Rollovers     int
	VoidedRounds  int
	WinsBySeat    map[string]int // games won, by seat name
	ChipsBySeat   map[string]int // final chips summed across games
	CategoryCount map[string]int // winning pot reasons
}

// Runner executes AI-only games in parallel workers
type Runner struct {
	opts Options
}

// New creates a runner. Unset options take defaults: 4 workers, 100 games,
// 10 chips, 50 rounds per game and the three archetypes plus a second
// cautious seat.
func New(opts Options) *Runner {
	if opts.Games <= 0 {
		opts.Games = 100
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.StartingChips <= 0 {
		opts.StartingChips = 10
	}
	if opts.MaxRounds <= 0 {
		opts.MaxRounds = 50
	}
	if len(opts.Seats) == 0 {
		opts.Seats = []game.Seat{
			{Name: "Cautious-1", Skill: game.SkillCautious},
			{Name: "Cautious-2", Skill: game.SkillCautious},
			{Name: "Random", Skill: game.SkillRandom},
			{Name: "Aggressive", Skill: game.SkillAggressive},
		}
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{opts: opts}
}

// Run plays the batch and aggregates the outcomes. Each game gets its own
// RNG derived from the batch seed, so a batch is reproducible regardless of
// worker interleaving.
func (r *Runner) Run(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		WinsBySeat:    make(map[string]int),
		ChipsBySeat:   make(map[string]int),
		CategoryCount: make(map[string]int),
	}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)

	for i := 0; i < r.opts.Games; i++ {
		gameSeed := r.opts.Seed + int64(i)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := r.playGame(gameSeed)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i, gameSeed, err)
			}
			mu.Lock()
			stats.Games++
			stats.Rounds += result.rounds
			stats.Rollovers += result.rollovers
			stats.VoidedRounds += result.voided
			if result.winner != "" {
				stats.WinsBySeat[result.winner]++
			}
			for name, chips := range result.chips {
				stats.ChipsBySeat[name] += chips
			}
			for reason, n := range result.categories {
				stats.CategoryCount[reason] += n
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

type gameResult struct {
	rounds     int
	rollovers  int
	voided     int
	winner     string
	chips      map[string]int
	categories map[string]int
}

// playGame runs one game to a single surviving seat or the round cap,
// checking chip conservation after every round.
func (r *Runner) playGame(seed int64) (*gameResult, error) {
	rng := randutil.New(seed)
	engine := game.NewEngine(rng, r.opts.Seats,
		game.WithTurnTimeout(0),
		game.WithEngineLogger(r.opts.Logger),
	)

	total := r.opts.StartingChips * len(r.opts.Seats)
	res := &gameResult{
		chips:      make(map[string]int),
		categories: make(map[string]int),
	}

	for round := 0; round < r.opts.MaxRounds; round++ {
		if err := engine.StartRound(); err != nil {
			break
		}
		res.rounds++

		for steps := 0; ; steps++ {
			if steps > 10_000 {
				return nil, fmt.Errorf("round did not terminate")
			}
			if engine.PendingAIDecision() == nil {
				break
			}
			if err := engine.PlayPendingAI(); err != nil {
				return nil, fmt.Errorf("AI action rejected: %w", err)
			}
		}

		result := engine.Result()
		if result == nil {
			return nil, fmt.Errorf("round ended without a result")
		}
		if result.Voided {
			res.voided++
		}
		for _, pot := range result.Pots {
			if pot.Rollover {
				res.rollovers++
			} else {
				res.categories[pot.Reason]++
			}
		}

		// Carry is banked by NextRound; at this point it lives in the result.
		sum := result.Carry
		for _, chips := range engine.ChipCounts() {
			sum += chips
		}
		if sum != total {
			return nil, fmt.Errorf("chips not conserved: have %d, want %d", sum, total)
		}

		if err := engine.NextRound(); err != nil {
			return nil, fmt.Errorf("advancing round: %w", err)
		}

		alive, aliveName := 0, ""
		for i, chips := range engine.ChipCounts() {
			if chips > 0 {
				alive++
				aliveName = r.opts.Seats[i].Name
			}
		}
		if alive <= 1 {
			res.winner = aliveName
			break
		}
	}

	for i, chips := range engine.ChipCounts() {
		res.chips[r.opts.Seats[i].Name] = chips
	}
	if res.winner == "" {
		// Round cap reached: the chip leader takes it.
		best := -1
		for i, chips := range engine.ChipCounts() {
			if chips > best {
				best = chips
				res.winner = r.opts.Seats[i].Name
			}
		}
	}
	return res, nil
}
