/*
Package weakfn provides callables that don't keep their receiver alive.

A callable is either static or bound to a receiver.
Static callables wrap a plain function value and are held strongly, since there's no receiver lifetime to protect.
Bound callables wrap a method expression along with a receiver pointer, and the receiver is only referenced weakly.
Once the receiver is garbage collected, the callable reports that it's no longer alive and calls to it do nothing.

	counter := &Counter{}
	inc, err := weakfn.NewMethodAction(counter, (*Counter).Increment)

Note that the method is given as a method expression (like (*Counter).Increment), not a method value (like counter.Increment).
A method value or closure would capture the receiver, and the callable would keep it alive forever.
Taking the receiver as a separate parameter makes this impossible to get wrong by accident.
Static functions given to [NewAction], [NewFunc], or [NewFunc1] should likewise not capture state that's expected to be collected.

# Liveness

Liveness is polled with IsAlive, there's no notification when a receiver is collected.
An optional owner may be attached with [WithOwner], which scopes a callable to another object's lifetime.
This is useful for static functions that still conceptually belong to an object.

MarkForDeletion may be used to kill a callable immediately, regardless of when the garbage collector gets around to it.

# Type Erasure

Every [Func1] implements [Executor], which allows holding differently typed callables in one collection.
See [Dispatcher] for a registry built on this.
*/
package weakfn
