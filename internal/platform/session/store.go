// Package session keeps per-browser state (in-progress quizzes, flash
// messages, bookmarks) behind a small key-value interface.
package session

import (
	"context"
	"time"
)

// Store is a key-value store scoped by browser session id. Values are JSON
// encoded.
type Store interface {
	// Get decodes the value of key into dst and reports whether it existed.
	Get(ctx context.Context, sid, key string, dst interface{}) (bool, error)
	Set(ctx context.Context, sid, key string, value interface{}) error
	Delete(ctx context.Context, sid, key string) error
	// Destroy drops every key of the session.
	Destroy(ctx context.Context, sid string) error
	// Lock takes a short-lived exclusive lock on name. It returns
	// common.ErrSubmitInProgress when the lock is already held.
	Lock(ctx context.Context, name string, ttl time.Duration) (unlock func(), err error)
}

type ctxKey struct{}

// WithID returns a context carrying the browser session id.
func WithID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, ctxKey{}, sid)
}

// IDFromContext returns the browser session id set by WithID, or "".
func IDFromContext(ctx context.Context) string {
	sid, _ := ctx.Value(ctxKey{}).(string)
	return sid
}
