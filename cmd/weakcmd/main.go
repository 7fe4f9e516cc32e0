package main

import (
	"fmt"
	"github.com/saylorsolutions/weakcmd/cli"
	flag "github.com/spf13/pflag"
	"golang.org/x/term"
	"io"
	"log/slog"
	"os"
	"time"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// run executes the sub-command named in args, defaulting to "all".
// Scenario output and usage go to out, and logs go to errOut.
func run(args []string, out, errOut io.Writer) error {
	set := newCommandSet(errOut)
	set.Printer().Redirect(out)
	if set.RespondUsage(args, "Runs self-checking scenarios against weak callables and commands.") {
		return nil
	}
	if len(args) == 0 {
		args = []string{"all"}
	}
	return set.Exec(args)
}

func newCommandSet(errOut io.Writer) *cli.CommandSet {
	set := cli.NewCommandSet("weakcmd")
	for _, name := range scenarioNames() {
		s := scenarios[name]
		cmd := set.AddCommand(name, s.usage).Usage("[FLAGS]")
		bindFlags(cmd.Flags(), s.concurrent)
		cmd.Does(scenarioCommand(errOut, name))
	}
	all := set.AddCommand("all", "Runs every scenario in order (default)").Usage("[FLAGS]")
	bindFlags(all.Flags(), true)
	all.Does(scenarioCommand(errOut, scenarioNames()...))
	return set
}

func scenarioCommand(errOut io.Writer, names ...string) cli.CommandFunc {
	return func(flags *flag.FlagSet, printer *cli.Printer) error {
		cfg, err := loadConfig(flags, names...)
		if err != nil {
			return err
		}
		return runScenarios(cfg, newLogger(cfg, errOut), printer)
	}
}

func runScenarios(cfg *config, logger *slog.Logger, printer *cli.Printer) error {
	for _, name := range cfg.scenarios {
		start := time.Now()
		if err := scenarios[name].run(cfg, logger, printer); err != nil {
			logger.Error("Scenario failed", "scenario", name, "error", err)
			return fmt.Errorf("scenario '%s': %w", name, err)
		}
		logger.Info("Scenario passed", "scenario", name, "elapsed", time.Since(start))
	}
	return nil
}

func newLogger(cfg *config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.logLevel}
	useJSON := cfg.json
	if !cfg.jsonSet {
		useJSON = !isTerminal(w)
	}
	if useJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
