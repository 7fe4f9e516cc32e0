package weakfn

import (
	"fmt"
	"github.com/saylorsolutions/weakcmd/syncx"
	"log/slog"
	"reflect"
	"sync"
)

// Dispatcher routes boxed values to named [Executor] values of any type.
// Executors that are no longer alive are dropped the next time they're looked up, or with [Dispatcher.Prune].
//
// A Dispatcher is safe for concurrent use.
type Dispatcher struct {
	mux       sync.RWMutex
	executors map[string]Executor
	logger    *slog.Logger
}

// NewDispatcher creates an empty [Dispatcher].
// The logger defaults to [slog.Default] if nil.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		executors: map[string]Executor{},
		logger:    logger,
	}
}

// Register adds or replaces the [Executor] with the given name.
// The executor's dynamic type must be comparable, which is always true for [Func1].
// An error wrapping [ErrInvalidArgument] is returned otherwise.
func (d *Dispatcher) Register(name string, exec Executor) error {
	if exec == nil {
		return fmt.Errorf("%w: nil executor for '%s'", ErrInvalidArgument, name)
	}
	if typ := reflect.TypeOf(exec); !typ.Comparable() {
		return fmt.Errorf("%w: executor type %s for '%s' is not comparable", ErrInvalidArgument, typ, name)
	}
	syncx.LockFunc(&d.mux, func() {
		d.executors[name] = exec
	})
	return nil
}

func (d *Dispatcher) UnRegister(name string) {
	syncx.LockFunc(&d.mux, func() {
		delete(d.executors, name)
	})
}

// Dispatch calls the named [Executor] with arg.
// An error wrapping [ErrNoExecutor] is returned if there is no live executor with that name,
// and errors from [Executor.ExecuteAny] are returned as is.
func (d *Dispatcher) Dispatch(name string, arg any) (any, error) {
	exec := syncx.RLockFuncT(&d.mux, func() Executor {
		return d.executors[name]
	})
	if exec == nil {
		return nil, fmt.Errorf("%w: '%s'", ErrNoExecutor, name)
	}
	if !exec.IsAlive() {
		d.remove(name, exec)
		return nil, fmt.Errorf("%w: '%s' is no longer alive", ErrNoExecutor, name)
	}
	return exec.ExecuteAny(arg)
}

// Prune removes all executors that are no longer alive, returning how many were removed.
func (d *Dispatcher) Prune() int {
	return syncx.LockFuncT(&d.mux, func() int {
		var pruned int
		for name, exec := range d.executors {
			if !exec.IsAlive() {
				delete(d.executors, name)
				d.logger.Debug("Pruned dead executor", "name", name)
				pruned++
			}
		}
		return pruned
	})
}

// Len returns the number of registered executors, including any that haven't been pruned yet.
func (d *Dispatcher) Len() int {
	return syncx.RLockFuncT(&d.mux, func() int {
		return len(d.executors)
	})
}

// remove only deletes name if it still maps to exec, since it may have been replaced concurrently.
func (d *Dispatcher) remove(name string, exec Executor) {
	syncx.LockFunc(&d.mux, func() {
		if d.executors[name] == exec {
			delete(d.executors, name)
			d.logger.Debug("Pruned dead executor", "name", name)
		}
	})
}
