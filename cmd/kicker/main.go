package main

import (
	"github.com/alecthomas/kong"
)

type CLI struct {
	Debug   bool   `help:"Enable debug logging"`
	LogFile string `help:"Write logs to a file instead of stderr" type:"path"`

	Play     PlayCmd     `cmd:"" default:"1" help:"Play a game against the AI seats"`
	Simulate SimulateCmd `cmd:"" help:"Run AI-only games and report statistics"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("kicker"),
		kong.Description("A single-card betting game with a twist: the pot only pays the player whose card makes the hand."),
		kong.UsageOnError(),
	)

	logger, cleanup, err := setupLogging(cli.Debug, cli.LogFile)
	ctx.FatalIfErrorf(err)
	defer cleanup()

	ctx.FatalIfErrorf(ctx.Run(logger))
}
