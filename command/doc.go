/*
Package command provides a gated, invokable [Command] built on weak callables from the weakfn package.

A [Command] wraps an action, and optionally a gate that decides whether the action may run.
Neither keeps its receiver alive, so a [Command] held by long-lived binding code won't leak the objects it calls into.
If the action or gate has been collected, then the [Command] quietly does nothing.

# Change Notification

Consumers that display a [Command] need to know when [Command.CanExecute] might have changed.
They register a [ChangeHandler] with [Command.SubscribeChange], and the registration is forwarded to a [Broadcaster].
Calling [Command.RaiseChangeNotification], or [RequeryBroadcaster.InvalidateAll] on the broadcaster directly, notifies every registered handler.

The default [Broadcaster] is the process-wide [Instance], which only references handlers weakly.
Each [Command] keeps its own strong list of subscribed handlers, so handlers stay registered as long as the [Command] is reachable.
That list is updated with a lock-free compare-and-swap loop, so concurrent subscriptions are never lost.

Subscriptions are ignored if the [Command] has no gate, since [Command.CanExecute] can never change in that case.
*/
package command
