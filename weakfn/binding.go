package weakfn

import (
	"reflect"
	"runtime"
	"sync/atomic"
	"weak"
)

// Option configures a callable at construction time.
type Option func(*options)

type options struct {
	owner *owner
}

type owner struct {
	alive func() bool
	value func() any
}

// WithOwner scopes a callable to the lifetime of ownerObj, which is only referenced weakly.
// The callable is no longer alive once ownerObj has been collected.
// A nil ownerObj is ignored.
func WithOwner[O any](ownerObj *O) Option {
	return func(o *options) {
		if ownerObj == nil {
			return
		}
		ref := weak.Make(ownerObj)
		o.owner = &owner{
			alive: func() bool {
				return ref.Value() != nil
			},
			value: func() any {
				if v := ref.Value(); v != nil {
					return v
				}
				return nil
			},
		}
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// binding is immutable once published.
type binding[T, R any] struct {
	static bool
	name   string
	// call resolves the receiver exactly once and invokes against that snapshot.
	// It returns false without invoking anything if the binding is dead.
	call   func(arg T) (R, bool)
	alive  func() bool
	target func() any
}

func staticBinding[T, R any](name string, fn func(T) R, opts []Option) *binding[T, R] {
	o := applyOptions(opts)
	b := &binding[T, R]{
		static: true,
		name:   name,
		alive:  func() bool { return true },
		target: func() any { return nil },
	}
	if o.owner != nil {
		b.alive = o.owner.alive
		b.target = o.owner.value
	}
	ownerAlive := b.alive
	b.call = func(arg T) (R, bool) {
		if !ownerAlive() {
			var zero R
			return zero, false
		}
		return fn(arg), true
	}
	return b
}

// methodBinding must not capture recv in any closure, only the weak reference to it.
func methodBinding[Recv, T, R any](recv *Recv, name string, method func(*Recv, T) R, opts []Option) *binding[T, R] {
	o := applyOptions(opts)
	ref := weak.Make(recv)
	ownerAlive := func() bool { return true }
	b := &binding[T, R]{
		name: name,
		alive: func() bool {
			return ref.Value() != nil
		},
		target: func() any {
			if v := ref.Value(); v != nil {
				return v
			}
			return nil
		},
	}
	if o.owner != nil {
		ownerAlive = o.owner.alive
		b.alive = func() bool {
			return ref.Value() != nil && ownerAlive()
		}
		b.target = o.owner.value
	}
	b.call = func(arg T) (R, bool) {
		snapshot := ref.Value()
		if snapshot == nil || !ownerAlive() {
			var zero R
			return zero, false
		}
		return method(snapshot, arg), true
	}
	return b
}

// callable holds the state shared by all callable types.
type callable[T, R any] struct {
	state atomic.Pointer[binding[T, R]]
}

// IsAlive reports whether the callable may still be invoked.
func (c *callable[T, R]) IsAlive() bool {
	b := c.state.Load()
	return b != nil && b.alive()
}

// IsStatic reports whether the callable wraps a function without a receiver.
// This is false after MarkForDeletion.
func (c *callable[T, R]) IsStatic() bool {
	b := c.state.Load()
	return b != nil && b.static
}

// MethodName returns the runtime name of the wrapped function, or an empty string after MarkForDeletion.
func (c *callable[T, R]) MethodName() string {
	b := c.state.Load()
	if b == nil {
		return ""
	}
	return b.name
}

// Target returns the owner if one was given, or the receiver for bound callables.
// Nil is returned if there is no such object, or it has been collected.
func (c *callable[T, R]) Target() any {
	b := c.state.Load()
	if b == nil {
		return nil
	}
	return b.target()
}

// MarkForDeletion makes the callable permanently dead.
// This is safe to call multiple times from multiple goroutines.
func (c *callable[T, R]) MarkForDeletion() {
	c.state.Store(nil)
}

func (c *callable[T, R]) invoke(arg T) R {
	b := c.state.Load()
	if b == nil {
		var zero R
		return zero
	}
	result, _ := b.call(arg)
	return result
}

func funcName(fn any) string {
	f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if f == nil {
		return ""
	}
	return f.Name()
}
