package command

import (
	"errors"
	"fmt"
	"github.com/hashicorp/go-multierror"
	"github.com/saylorsolutions/weakcmd/syncx"
	"log/slog"
	"slices"
	"sync"
	"weak"
)

var (
	ErrHandlerPanic = errors.New("change handler panicked")
)

// Broadcaster is a channel that tells every registered [ChangeHandler] to re-evaluate its commands.
type Broadcaster interface {
	Subscribe(handler *ChangeHandler)
	Unsubscribe(handler *ChangeHandler)
	InvalidateAll()
}

var _ Broadcaster = (*RequeryBroadcaster)(nil)

var (
	instance *RequeryBroadcaster
	initOnce sync.Once
)

// Instance returns the process-wide [RequeryBroadcaster], which is the default for every [Command].
func Instance() *RequeryBroadcaster {
	initOnce.Do(func() {
		instance = NewRequeryBroadcaster(nil)
	})
	return instance
}

// RequeryBroadcaster is a [Broadcaster] that only holds weak references to its handlers.
// Whoever subscribes a handler is responsible for keeping it reachable for as long as it should be notified.
// Handlers that have been collected are pruned whenever the broadcaster is used.
//
// A RequeryBroadcaster is safe for concurrent use.
type RequeryBroadcaster struct {
	mux      sync.Mutex
	handlers []weak.Pointer[ChangeHandler]
	logger   *slog.Logger
}

// NewRequeryBroadcaster creates an empty [RequeryBroadcaster].
// The logger defaults to [slog.Default] if nil.
func NewRequeryBroadcaster(logger *slog.Logger) *RequeryBroadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &RequeryBroadcaster{
		logger: logger,
	}
}

func (b *RequeryBroadcaster) Subscribe(handler *ChangeHandler) {
	if handler == nil {
		return
	}
	syncx.LockFunc(&b.mux, func() {
		b.prune()
		b.handlers = append(b.handlers, weak.Make(handler))
	})
}

// Unsubscribe removes the most recent registration of handler, if any.
func (b *RequeryBroadcaster) Unsubscribe(handler *ChangeHandler) {
	if handler == nil {
		return
	}
	ref := weak.Make(handler)
	syncx.LockFunc(&b.mux, func() {
		for i := len(b.handlers) - 1; i >= 0; i-- {
			if b.handlers[i] == ref {
				b.handlers = slices.Delete(b.handlers, i, i+1)
				break
			}
		}
		b.prune()
	})
}

// Len returns the number of registered handlers that haven't been collected.
func (b *RequeryBroadcaster) Len() int {
	return len(b.live())
}

// InvalidateAll notifies every live handler.
// Panics in handlers are recovered and logged, see [RequeryBroadcaster.InvalidateAllErr] to receive them.
func (b *RequeryBroadcaster) InvalidateAll() {
	_ = b.InvalidateAllErr()
}

// InvalidateAllErr notifies every live handler, and returns an error for each handler that panicked.
// Handlers are called without holding any lock, so they may subscribe or unsubscribe freely.
func (b *RequeryBroadcaster) InvalidateAllErr() error {
	var result *multierror.Error
	for _, handler := range b.live() {
		if err := b.notify(handler); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		b.logger.Error("Failed to notify change handlers", "error", err)
		return err
	}
	return nil
}

// live prunes collected handlers and returns strong references to the rest.
func (b *RequeryBroadcaster) live() []*ChangeHandler {
	return syncx.LockFuncT(&b.mux, func() []*ChangeHandler {
		b.prune()
		handlers := make([]*ChangeHandler, 0, len(b.handlers))
		for _, ref := range b.handlers {
			if h := ref.Value(); h != nil {
				handlers = append(handlers, h)
			}
		}
		return handlers
	})
}

// prune must be called while holding the write lock.
func (b *RequeryBroadcaster) prune() {
	kept := b.handlers[:0]
	for _, ref := range b.handlers {
		if ref.Value() != nil {
			kept = append(kept, ref)
		}
	}
	if removed := len(b.handlers) - len(kept); removed > 0 {
		clear(b.handlers[len(kept):])
		b.logger.Debug("Pruned collected change handlers", "count", removed)
	}
	b.handlers = kept
}

func (b *RequeryBroadcaster) notify(handler *ChangeHandler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: handler %s: %v", ErrHandlerPanic, handler.ID(), r)
		}
	}()
	handler.Handle()
	return nil
}
