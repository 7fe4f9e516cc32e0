package main

import (
	"errors"
	"fmt"
	"github.com/saylorsolutions/weakcmd/cli"
	"github.com/saylorsolutions/weakcmd/command"
	"github.com/saylorsolutions/weakcmd/weakfn"
	"log/slog"
	"runtime"
	"slices"
	"sync"
)

type scenario struct {
	usage      string
	concurrent bool
	run        func(cfg *config, logger *slog.Logger, printer *cli.Printer) error
}

var scenarios = map[string]scenario{
	"action":  {usage: "Executes a method action before and after its receiver is collected", run: actionScenario},
	"command": {usage: "Runs a gated command past the point where its gate closes", run: commandScenario},
	"cast":    {usage: "Dispatches boxed values through type-erased callables", run: castScenario},
	"stress":  {usage: "Subscribes and unsubscribes change handlers from many goroutines", concurrent: true, run: stressScenario},
}

func scenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

type counter struct {
	name  string
	count int
	hits  *int
}

func (c *counter) Increment() {
	c.count++
	*c.hits++
}

// awaitCollection runs the garbage collector until alive reports false, or gives up after a few cycles.
func awaitCollection(alive func() bool) bool {
	for i := 0; i < 10 && alive(); i++ {
		runtime.GC()
	}
	return !alive()
}

// actionScenario shows that an action stops running once its receiver is collected.
func actionScenario(_ *config, logger *slog.Logger, printer *cli.Printer) error {
	var hits int
	c := &counter{name: "counter", hits: &hits}
	action, err := weakfn.NewMethodAction(c, (*counter).Increment)
	if err != nil {
		return err
	}
	for range 3 {
		action.Execute()
	}
	if c.count != 3 {
		return fmt.Errorf("expected receiver count of 3, got %d", c.count)
	}
	printer.Printf("%s: executed 3 times while alive, count=%d\n", action.MethodName(), c.count)

	c = nil
	if !awaitCollection(action.IsAlive) {
		logger.Warn("Receiver was not collected, skipping dead execution check")
		return nil
	}
	action.Execute()
	if hits != 3 {
		return fmt.Errorf("expected dead action to do nothing, but hits=%d", hits)
	}
	printer.Printf("%s: receiver collected, alive=%t, hits=%d\n", action.MethodName(), action.IsAlive(), hits)
	return nil
}

// commandScenario runs a gated command past the point where its gate closes.
func commandScenario(_ *config, logger *slog.Logger, printer *cli.Printer) error {
	var total int
	cmd, err := command.NewFromFuncs(
		func() { total++ },
		func() bool { return total < 5 },
		command.WithBroadcaster(command.NewRequeryBroadcaster(logger)),
		command.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	for i := 1; i <= 6; i++ {
		cmd.Execute()
		printer.Printf("execute #%d: total=%d canExecute=%t\n", i, total, cmd.CanExecute())
	}
	if total != 5 {
		return fmt.Errorf("expected total of 5, got %d", total)
	}
	if cmd.CanExecute() {
		return errors.New("expected command to be gated off")
	}
	return nil
}

// castScenario dispatches boxed values through type-erased callables.
func castScenario(_ *config, logger *slog.Logger, printer *cli.Printer) error {
	var calls int
	positive, err := weakfn.NewFunc1(func(n int) bool {
		calls++
		return n > 0
	})
	if err != nil {
		return err
	}
	length, err := weakfn.NewFunc1(func(s string) int { return len(s) })
	if err != nil {
		return err
	}
	d := weakfn.NewDispatcher(logger)
	if err := errors.Join(d.Register("positive", positive), d.Register("length", length)); err != nil {
		return err
	}

	result, err := d.Dispatch("positive", 3)
	if err != nil {
		return err
	}
	printer.Printf("positive(3) = %v\n", result)
	result, err = d.Dispatch("length", "weak")
	if err != nil {
		return err
	}
	printer.Printf("length(\"weak\") = %v\n", result)

	_, err = d.Dispatch("positive", "3")
	if !errors.Is(err, weakfn.ErrInvalidCast) {
		return fmt.Errorf("expected an invalid cast error, got %v", err)
	}
	if calls != 1 {
		return fmt.Errorf("expected an invalid cast to skip invocation, but calls=%d", calls)
	}
	printer.Printf("positive(\"3\") rejected: %v\n", err)
	return nil
}

// stressScenario subscribes and unsubscribes distinct handlers from many goroutines, and checks that nothing is lost.
func stressScenario(cfg *config, logger *slog.Logger, printer *cli.Printer) error {
	for round := 0; round < cfg.rounds; round++ {
		broadcaster := command.NewRequeryBroadcaster(logger)
		cmd, err := command.NewFromFuncs(func() {}, func() bool { return true },
			command.WithBroadcaster(broadcaster),
			command.WithLogger(logger),
		)
		if err != nil {
			return err
		}
		var (
			notified int
			mux      sync.Mutex
		)
		handlers := make([]*command.ChangeHandler, cfg.goroutines)
		for i := range handlers {
			handlers[i] = command.OnChange(func() {
				mux.Lock()
				defer mux.Unlock()
				notified++
			})
		}

		fanOut(handlers, cmd.SubscribeChange)
		if n := cmd.Subscribers(); n != len(handlers) {
			return fmt.Errorf("round %d: expected %d subscribers, got %d", round, len(handlers), n)
		}
		cmd.RaiseChangeNotification()
		if notified != len(handlers) {
			return fmt.Errorf("round %d: expected %d notifications, got %d", round, len(handlers), notified)
		}

		fanOut(handlers, cmd.UnsubscribeChange)
		if n := cmd.Subscribers(); n != 0 {
			return fmt.Errorf("round %d: expected no subscribers, got %d", round, n)
		}
		if n := broadcaster.Len(); n != 0 {
			return fmt.Errorf("round %d: expected no broadcaster handlers, got %d", round, n)
		}
		logger.Debug("Stress round complete", "round", round, "goroutines", cfg.goroutines)
	}
	printer.Printf("%d rounds of %d concurrent subscribe/unsubscribe calls left no handlers behind\n", cfg.rounds, cfg.goroutines)
	return nil
}

func fanOut(handlers []*command.ChangeHandler, fn func(*command.ChangeHandler)) {
	var wg sync.WaitGroup
	wg.Add(len(handlers))
	for _, h := range handlers {
		go func() {
			defer wg.Done()
			runtime.Gosched()
			fn(h)
		}()
	}
	wg.Wait()
}
