package command

import (
	"github.com/google/uuid"
)

// ChangeHandler is called when a [Command] may need to be re-evaluated.
// Handlers are compared by pointer, so the same *ChangeHandler must be used to unsubscribe.
type ChangeHandler struct {
	id uuid.UUID
	fn func()
}

// OnChange creates a [ChangeHandler] that calls fn.
func OnChange(fn func()) *ChangeHandler {
	if fn == nil {
		panic("nil change handler function")
	}
	return &ChangeHandler{
		id: uuid.New(),
		fn: fn,
	}
}

// ID uniquely identifies this handler in logs.
func (h *ChangeHandler) ID() uuid.UUID {
	return h.id
}

// Handle calls the handler function.
func (h *ChangeHandler) Handle() {
	h.fn()
}
