// Package config loads table configuration from HCL files.
package config

import (
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/kicker/internal/game"
)

// Config is the root of a table configuration file
type Config struct {
	Game  GameConfig   `hcl:"game,block"`
	Seats []SeatConfig `hcl:"seat,block"`
}

// GameConfig holds table-wide settings
type GameConfig struct {
	StartingChips int    `hcl:"starting_chips,optional"`
	TurnTimeout   string `hcl:"turn_timeout,optional"`
	Seed          int64  `hcl:"seed,optional"`
}

// SeatConfig describes one seat at the table
type SeatConfig struct {
	Name  string `hcl:"name,label"`
	Skill string `hcl:"skill,optional"`
}

// Default returns the standard four-seat table: one human against the three
// scripted archetypes.
func Default() *Config {
	return &Config{
		Game: GameConfig{
			StartingChips: 10,
			TurnTimeout:   "15s",
		},
		Seats: []SeatConfig{
			{Name: "You", Skill: "human"},
			{Name: "Sam", Skill: "cautious"},
			{Name: "Riley", Skill: "random"},
			{Name: "Alex", Skill: "aggressive"},
		},
	}
}

// Load parses and validates an HCL config file
func Load(path string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %w", path, diags)
	}
	return decode(file.Body)
}

// Parse parses config from source bytes, for tests
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %w", filename, diags)
	}
	return decode(file.Body)
}

func decode(body hcl.Body) (*Config, error) {
	cfg := Default()
	cfg.Seats = nil
	if diags := gohcl.DecodeBody(body, nil, cfg); diags.HasErrors() {
		return nil, fmt.Errorf("decoding config: %w", diags)
	}
	if len(cfg.Seats) == 0 {
		cfg.Seats = Default().Seats
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config for playability
func (c *Config) Validate() error {
	if len(c.Seats) < 2 {
		return fmt.Errorf("need at least 2 seats, have %d", len(c.Seats))
	}
	if len(c.Seats) > 8 {
		return fmt.Errorf("at most 8 seats supported, have %d", len(c.Seats))
	}
	if c.Game.StartingChips < 1 {
		return fmt.Errorf("starting_chips must be at least 1, have %d", c.Game.StartingChips)
	}
	if c.Game.TurnTimeout != "" {
		if _, err := time.ParseDuration(c.Game.TurnTimeout); err != nil {
			return fmt.Errorf("invalid turn_timeout: %w", err)
		}
	}
	for _, s := range c.Seats {
		if _, err := ParseSkill(s.Skill); err != nil {
			return fmt.Errorf("seat %q: %w", s.Name, err)
		}
	}
	return nil
}

// TurnTimeout returns the parsed timeout, or the engine default
func (c *Config) TurnTimeout() time.Duration {
	if c.Game.TurnTimeout == "" {
		return game.DefaultTurnTimeout
	}
	d, err := time.ParseDuration(c.Game.TurnTimeout)
	if err != nil {
		return game.DefaultTurnTimeout
	}
	return d
}

// EngineSeats converts the seat configs for the engine
func (c *Config) EngineSeats() []game.Seat {
	seats := make([]game.Seat, len(c.Seats))
	for i, s := range c.Seats {
		skill, _ := ParseSkill(s.Skill)
		seats[i] = game.Seat{
			Name:  s.Name,
			Chips: c.Game.StartingChips,
			Skill: skill,
		}
	}
	return seats
}

// ParseSkill maps a config skill name to an AI archetype. Empty and "human"
// mean a human-controlled seat.
func ParseSkill(name string) (game.AISkill, error) {
	switch name {
	case "", "human":
		return game.SkillNone, nil
	case "cautious":
		return game.SkillCautious, nil
	case "random":
		return game.SkillRandom, nil
	case "aggressive":
		return game.SkillAggressive, nil
	default:
		return game.SkillNone, fmt.Errorf("unknown skill %q (want human, cautious, random or aggressive)", name)
	}
}
