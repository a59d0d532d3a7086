package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// setupLogging builds the root logger. Interactive play logs to a file when
// asked (the table rendering owns the terminal) and discards debug output
// otherwise.
func setupLogging(debug bool, logFile string) (*log.Logger, func(), error) {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	var w io.Writer = os.Stderr
	cleanup := func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w = f
		cleanup = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
	return logger, cleanup, nil
}
