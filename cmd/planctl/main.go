package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// exitNoSchedule is returned to the shell when the search finds no valid schedule.
const exitNoSchedule = 2

var cli struct {
	Version  kong.VersionFlag
	LogLevel string `help:"Log level for diagnostics on stderr." default:"warn" enum:"debug,info,warn,error"`

	Plan     planCmd     `cmd:"" help:"Plan an itinerary from a YAML catalog."`
	Catalogs catalogsCmd `cmd:"" help:"List the catalogs in a directory."`
	Token    tokenCmd    `cmd:"" help:"Issue a signed API token for local testing."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("planctl"),
		kong.Description("Offline itinerary planning with the backtracking scheduler"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	logger := newLogger(cli.LogLevel)
	defer logger.Sync() //nolint:errcheck

	err := ctx.Run(&runContext{Out: os.Stdout, Logger: logger})
	switch {
	case err == nil:
	case errors.Is(err, errNoSchedule):
		os.Exit(exitNoSchedule)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(level string) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Encoding = "console"
	lvl := zapcore.WarnLevel
	if err := lvl.UnmarshalText([]byte(level)); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}
