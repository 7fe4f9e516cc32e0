package main

import (
	"github.com/saylorsolutions/weakcmd/cli"
	"github.com/saylorsolutions/weakcmd/env"
	flag "github.com/spf13/pflag"
	"log/slog"
)

const (
	envGoroutines = "WEAKCMD_GOROUTINES"
	envLogLevel   = "WEAKCMD_LOG_LEVEL"
)

type config struct {
	scenarios  []string
	goroutines int
	rounds     int
	logLevel   slog.Level
	json       bool
	jsonSet    bool
}

// bindFlags sets up the logging flags every scenario command accepts.
// Concurrent scenarios also get flags to control the amount of concurrency.
func bindFlags(flags *flag.FlagSet, concurrent bool) {
	flags.String("log-level", env.Val(envLogLevel, "info"), "Log level, one of debug, info, warn, or error")
	flags.Bool("json", false, "Write logs as JSON. Defaults to true when STDERR is not a terminal")
	if concurrent {
		flags.IntP("goroutines", "n", env.Int(envGoroutines, 64), "Number of goroutines used by the stress scenario")
		flags.Int("rounds", 10, "Number of rounds run by the stress scenario")
	}
}

// loadConfig reads flags set up with bindFlags after they've been parsed.
// Invalid values are returned as a [cli.UsageError].
func loadConfig(flags *flag.FlagSet, scenarioNames ...string) (*config, error) {
	cfg := config{
		scenarios:  scenarioNames,
		goroutines: 1,
		rounds:     1,
		json:       cli.MustGet(flags.GetBool("json")),
		jsonSet:    flags.Changed("json"),
	}
	logLevel := cli.MustGet(flags.GetString("log-level"))
	if err := cfg.logLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, cli.NewUsageError("invalid log level '%s': %w", logLevel, err)
	}
	if flags.Lookup("goroutines") != nil {
		cfg.goroutines = cli.MustGet(flags.GetInt("goroutines"))
		cfg.rounds = cli.MustGet(flags.GetInt("rounds"))
	}
	if cfg.goroutines < 1 {
		return nil, cli.NewUsageError("goroutines must be >= 1, got %d", cfg.goroutines)
	}
	if cfg.rounds < 1 {
		return nil, cli.NewUsageError("rounds must be >= 1, got %d", cfg.rounds)
	}
	return &cfg, nil
}
