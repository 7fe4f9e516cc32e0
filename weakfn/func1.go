package weakfn

import (
	"fmt"
	"reflect"
)

// Executor is a type-erased callable, used to hold differently typed callables together.
type Executor interface {
	IsAlive() bool
	// ExecuteAny checks that arg is assignable to the callable's argument type, and calls it.
	// An error wrapping [ErrInvalidCast] is returned if the check fails, and nothing is called.
	ExecuteAny(arg any) (any, error)
}

var _ Executor = (*Func1[int, bool])(nil)

// Func1 is a weak callable that takes one argument and returns a result.
type Func1[T, R any] struct {
	callable[T, R]
}

// NewFunc1 wraps a static function in a [Func1].
func NewFunc1[T, R any](fn func(T) R, opts ...Option) (*Func1[T, R], error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: nil function", ErrInvalidArgument)
	}
	f := new(Func1[T, R])
	f.state.Store(staticBinding(funcName(fn), fn, opts))
	return f, nil
}

// NewMethodFunc1 binds a method expression to a receiver that is only referenced weakly.
func NewMethodFunc1[Recv, T, R any](recv *Recv, method func(*Recv, T) R, opts ...Option) (*Func1[T, R], error) {
	if recv == nil {
		return nil, fmt.Errorf("%w: nil receiver", ErrInvalidArgument)
	}
	if method == nil {
		return nil, fmt.Errorf("%w: nil method", ErrInvalidArgument)
	}
	f := new(Func1[T, R])
	f.state.Store(methodBinding(recv, funcName(method), method, opts))
	return f, nil
}

// ExecuteWith calls the wrapped function with arg if the [Func1] is alive.
// The zero value of R is returned if it's not.
func (f *Func1[T, R]) ExecuteWith(arg T) R {
	return f.invoke(arg)
}

// Execute calls the wrapped function with the zero value of T.
func (f *Func1[T, R]) Execute() R {
	var zero T
	return f.ExecuteWith(zero)
}

// ExecuteAny satisfies [Executor].
// A nil arg is only accepted if T is a type that can be nil.
func (f *Func1[T, R]) ExecuteAny(arg any) (any, error) {
	var typed T
	if arg == nil {
		if !nillable[T]() {
			return nil, fmt.Errorf("%w: nil is not assignable to %s", ErrInvalidCast, reflect.TypeFor[T]())
		}
	} else {
		v, ok := arg.(T)
		if !ok {
			return nil, fmt.Errorf("%w: %T is not assignable to %s", ErrInvalidCast, arg, reflect.TypeFor[T]())
		}
		typed = v
	}
	return f.ExecuteWith(typed), nil
}

func nillable[T any]() bool {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}
