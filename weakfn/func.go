package weakfn

import "fmt"

// Func is a weak callable that takes no arguments and returns a result.
type Func[R any] struct {
	callable[struct{}, R]
}

// NewFunc wraps a static function in a [Func].
func NewFunc[R any](fn func() R, opts ...Option) (*Func[R], error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: nil function", ErrInvalidArgument)
	}
	f := new(Func[R])
	f.state.Store(staticBinding(funcName(fn), func(struct{}) R {
		return fn()
	}, opts))
	return f, nil
}

// NewMethodFunc binds a method expression to a receiver that is only referenced weakly.
func NewMethodFunc[Recv, R any](recv *Recv, method func(*Recv) R, opts ...Option) (*Func[R], error) {
	if recv == nil {
		return nil, fmt.Errorf("%w: nil receiver", ErrInvalidArgument)
	}
	if method == nil {
		return nil, fmt.Errorf("%w: nil method", ErrInvalidArgument)
	}
	f := new(Func[R])
	f.state.Store(methodBinding(recv, funcName(method), func(r *Recv, _ struct{}) R {
		return method(r)
	}, opts))
	return f, nil
}

// Execute calls the wrapped function if the [Func] is alive.
// The zero value of R is returned if it's not.
func (f *Func[R]) Execute() R {
	return f.invoke(struct{}{})
}
