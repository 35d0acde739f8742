package middleware

import (
	"context"
	"sync"
)

type redirectKey struct{}

type redirectSlot struct {
	mu   sync.Mutex
	path string
	set  bool
}

// Navigator records redirects requested while a handler runs. The Session
// middleware performs the first one after the handler returns, unless the
// handler already wrote a response.
type Navigator struct{}

func (Navigator) Redirect(ctx context.Context, path string) {
	slot, ok := ctx.Value(redirectKey{}).(*redirectSlot)
	if !ok {
		return
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()
	if !slot.set {
		slot.path = path
		slot.set = true
	}
}

// WithRedirects gives ctx a slot for Navigator.
func WithRedirects(ctx context.Context) context.Context {
	return context.WithValue(ctx, redirectKey{}, &redirectSlot{})
}

// PendingRedirect returns the recorded redirect target, if any.
func PendingRedirect(ctx context.Context) (string, bool) {
	slot, ok := ctx.Value(redirectKey{}).(*redirectSlot)
	if !ok {
		return "", false
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()
	return slot.path, slot.set
}
