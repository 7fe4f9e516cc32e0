package command

import (
	"fmt"
	"github.com/saylorsolutions/weakcmd/syncx"
	"github.com/saylorsolutions/weakcmd/weakfn"
	"log/slog"
)

var (
	ErrInvalidArgument = weakfn.ErrInvalidArgument
)

// Option configures a [Command] at construction time.
type Option func(*Command)

// WithGate sets the callable that decides whether the [Command] may execute.
// A nil gate means the [Command] can always execute.
func WithGate(gate *weakfn.Func[bool]) Option {
	return func(c *Command) {
		c.gate = gate
	}
}

// WithBroadcaster overrides the default process-wide [Instance].
func WithBroadcaster(broadcaster Broadcaster) Option {
	return func(c *Command) {
		if broadcaster != nil {
			c.broadcaster = broadcaster
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Command) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Command is an action that may be gated, with notification for when the gate may have changed.
// Failing to execute is never an error. If the action is gated off or no longer alive, then nothing happens.
//
// A Command is safe for concurrent use.
type Command struct {
	action      *weakfn.Action
	gate        *weakfn.Func[bool]
	subscribers syncx.COWList[*ChangeHandler]
	broadcaster Broadcaster
	logger      *slog.Logger
}

// New creates a [Command] that runs action.
func New(action *weakfn.Action, opts ...Option) (*Command, error) {
	if action == nil {
		return nil, fmt.Errorf("%w: nil command action", ErrInvalidArgument)
	}
	c := &Command{
		action: action,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.broadcaster == nil {
		c.broadcaster = Instance()
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c, nil
}

// NewFromFuncs wraps static functions in a [Command].
// The gate may be nil, in which case the [Command] can always execute.
func NewFromFuncs(action func(), gate func() bool, opts ...Option) (*Command, error) {
	weakAction, err := weakfn.NewAction(action)
	if err != nil {
		return nil, err
	}
	if gate != nil {
		weakGate, err := weakfn.NewFunc(gate)
		if err != nil {
			return nil, err
		}
		opts = append([]Option{WithGate(weakGate)}, opts...)
	}
	return New(weakAction, opts...)
}

// CanExecute reports whether [Command.Execute] would currently run the action.
// This calls the gate, so it should be cheap and free of side effects.
func (c *Command) CanExecute() bool {
	if c.gate == nil {
		return true
	}
	return (c.gate.IsStatic() || c.gate.IsAlive()) && c.gate.Execute()
}

// Execute runs the action if [Command.CanExecute] is true and the action is still alive.
func (c *Command) Execute() {
	if c.CanExecute() && (c.action.IsStatic() || c.action.IsAlive()) {
		c.action.Execute()
	}
}

// SubscribeChange registers handler to be notified when the [Command] should be re-evaluated.
// This does nothing if the [Command] has no gate, or handler is nil.
func (c *Command) SubscribeChange(handler *ChangeHandler) {
	if c.gate == nil || handler == nil {
		return
	}
	c.subscribers.Add(handler)
	c.broadcaster.Subscribe(handler)
	c.logger.Debug("Subscribed change handler", "handler", handler.ID(), "method", c.action.MethodName())
}

// UnsubscribeChange removes the most recent registration of handler.
// This does nothing if the [Command] has no gate, or handler is nil.
func (c *Command) UnsubscribeChange(handler *ChangeHandler) {
	if c.gate == nil || handler == nil {
		return
	}
	c.subscribers.Remove(handler)
	c.broadcaster.Unsubscribe(handler)
	c.logger.Debug("Unsubscribed change handler", "handler", handler.ID(), "method", c.action.MethodName())
}

// RaiseChangeNotification asks the [Broadcaster] to notify all of its handlers, not just the ones registered with this [Command].
func (c *Command) RaiseChangeNotification() {
	c.broadcaster.InvalidateAll()
}

// Subscribers returns the number of handlers currently registered with this [Command].
func (c *Command) Subscribers() int {
	return c.subscribers.Len()
}
