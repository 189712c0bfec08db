package bind

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// FanOut composes notification consumers of one request type into a
// single handler. Consumers run in registration order; a panicking
// consumer is recovered and logged so it cannot take the others (or the
// session) down with it.
type FanOut[R any] struct {
	log *slog.Logger

	mu      sync.RWMutex
	entries []fanOutEntry[R]
}

type fanOutEntry[R any] struct {
	id string
	fn func(context.Context, R)
}

// NewFanOut returns an empty FanOut. A nil logger defaults to
// slog.Default().
func NewFanOut[R any](log *slog.Logger) *FanOut[R] {
	if log == nil {
		log = slog.Default()
	}
	return &FanOut[R]{log: log}
}

// Add appends a consumer and returns its handle.
func (f *FanOut[R]) Add(fn func(context.Context, R)) string {
	id := uuid.NewString()
	f.mu.Lock()
	f.entries = append(f.entries, fanOutEntry[R]{id: id, fn: fn})
	f.mu.Unlock()
	return id
}

// Remove drops the consumer with the given handle, reporting whether it
// was present.
func (f *FanOut[R]) Remove(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.entries {
		if e.id == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of registered consumers.
func (f *FanOut[R]) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.entries)
}

// Handler returns the composed handler. It snapshots the consumer list
// per notification, so additions and removals take effect on the next
// delivery.
func (f *FanOut[R]) Handler() func(context.Context, R) {
	return func(ctx context.Context, req R) {
		f.mu.RLock()
		entries := append([]fanOutEntry[R](nil), f.entries...)
		f.mu.RUnlock()
		for _, e := range entries {
			f.dispatch(ctx, e, req)
		}
	}
}

func (f *FanOut[R]) dispatch(ctx context.Context, e fanOutEntry[R], req R) {
	defer func() {
		if r := recover(); r != nil {
			f.log.Error("notification consumer panicked",
				slog.String("handle", e.id),
				slog.Any("panic", fmt.Sprintf("%v", r)),
			)
		}
	}()
	e.fn(ctx, req)
}
