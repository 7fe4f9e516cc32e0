package weakfn

import "fmt"

// Action is a weak callable that takes no arguments and returns nothing.
type Action struct {
	callable[struct{}, struct{}]
}

// NewAction wraps a static function in an [Action].
// The function is held strongly, so it should not capture anything that's expected to be collected.
func NewAction(fn func(), opts ...Option) (*Action, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: nil action function", ErrInvalidArgument)
	}
	a := new(Action)
	a.state.Store(staticBinding(funcName(fn), func(struct{}) struct{} {
		fn()
		return struct{}{}
	}, opts))
	return a, nil
}

// NewMethodAction binds a method expression to a receiver that is only referenced weakly.
func NewMethodAction[R any](recv *R, method func(*R), opts ...Option) (*Action, error) {
	if recv == nil {
		return nil, fmt.Errorf("%w: nil receiver", ErrInvalidArgument)
	}
	if method == nil {
		return nil, fmt.Errorf("%w: nil action method", ErrInvalidArgument)
	}
	a := new(Action)
	a.state.Store(methodBinding(recv, funcName(method), func(r *R, _ struct{}) struct{} {
		method(r)
		return struct{}{}
	}, opts))
	return a, nil
}

// Execute calls the wrapped function if the [Action] is alive, and does nothing otherwise.
func (a *Action) Execute() {
	a.invoke(struct{}{})
}
